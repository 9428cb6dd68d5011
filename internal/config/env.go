package config

import (
	"fmt"
	"strconv"
	"strings"
)

// EnvPrefix is the prefix of environment variables that override settings.
const EnvPrefix = "ACTL_"

// LookupFunc reports the value of an environment variable. os.LookupEnv
// satisfies it.
type LookupFunc func(key string) (string, bool)

type envSetter func(cfg *Config, value string) error

// envMapping maps environment variable names to the setting they override.
var envMapping = map[string]envSetter{
	"ACTL_LOG_LEVEL": func(c *Config, v string) error {
		c.Log.Level = strings.ToLower(v)
		return nil
	},
	"ACTL_LOG_FORMAT": func(c *Config, v string) error {
		c.Log.Format = strings.ToLower(v)
		return nil
	},
	"ACTL_ALLOC_KIND": func(c *Config, v string) error {
		c.Alloc.Kind = strings.ToLower(v)
		return nil
	},
	"ACTL_ALLOC_LIMIT": func(c *Config, v string) error {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return err
		}
		c.Alloc.Limit = n
		return nil
	},
	"ACTL_SCRIPT_TIMEOUT": func(c *Config, v string) error {
		return c.Script.Timeout.UnmarshalText([]byte(v))
	},
	"ACTL_SCRIPT_DEBOUNCE": func(c *Config, v string) error {
		return c.Script.Debounce.UnmarshalText([]byte(v))
	},
	"ACTL_METRICS_ENABLED": func(c *Config, v string) error {
		b, err := parseBool(v)
		if err != nil {
			return err
		}
		c.Metrics.Enabled = b
		return nil
	},
	"ACTL_METRICS_NAMESPACE": func(c *Config, v string) error {
		c.Metrics.Namespace = v
		return nil
	},
}

// ApplyEnv overrides settings in cfg from environment variables.
// Empty values are treated as set.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	for name, set := range envMapping {
		v, ok := lookup(name)
		if !ok {
			continue
		}
		if err := set(cfg, v); err != nil {
			return &ValidationError{Path: envToPath(name), Message: fmt.Sprintf("from %s: %v", name, err), Value: v}
		}
	}
	return nil
}

// envToPath converts ACTL_SCRIPT_TIMEOUT to script.timeout.
func envToPath(env string) string {
	name := strings.ToLower(strings.TrimPrefix(env, EnvPrefix))
	section, setting, ok := strings.Cut(name, "_")
	if !ok {
		return name
	}
	return section + "." + setting
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0", "":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", s)
}
