// Package main is the entry point for the actl workload runner.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"maps"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/dshills/actl/internal/alloc"
	"github.com/dshills/actl/internal/config"
	"github.com/dshills/actl/internal/logging"
	"github.com/dshills/actl/internal/script"
	"github.com/dshills/actl/internal/watch"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errUsage reports bad command-line arguments.
var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// options holds the parsed command line.
type options struct {
	configPath  string
	logLevel    string
	watch       bool
	metrics     bool
	query       string
	showVersion bool
	script      string
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "actl %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	log, err := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: logging.Format(cfg.Log.Format),
		Output: stderr,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to create logger: %v\n", err)
		return 1
	}

	r := &runner{
		cfg:    cfg,
		opts:   opts,
		log:    log,
		stdout: stdout,
	}
	if opts.metrics || cfg.Metrics.Enabled {
		r.stats = &alloc.Stats{}
		r.collector = alloc.NewCollector(cfg.Metrics.Namespace, r.stats)
	}

	if !opts.watch {
		if err := r.runOnce(ctx); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	if err := r.watch(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("actl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "Path to configuration file (.toml or .yaml)")
	fs.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level override (trace, debug, info, warn, error)")
	fs.BoolVar(&opts.watch, "watch", false, "Re-run the script whenever it changes")
	fs.BoolVar(&opts.watch, "w", false, "Re-run the script whenever it changes (shorthand)")
	fs.BoolVar(&opts.metrics, "metrics", false, "Print allocator metrics after each run")
	fs.StringVar(&opts.query, "query", "", "Print a JSON path evaluated over the script's result")
	fs.StringVar(&opts.query, "q", "", "Print a JSON path evaluated over the script's result (shorthand)")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	fs.BoolVar(&opts.showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "actl - container workload runner\n\n")
		fmt.Fprintf(stderr, "Usage: actl [options] script.lua\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  actl bench.lua                       Run a script once\n")
		fmt.Fprintf(stderr, "  actl -w -metrics bench.lua           Re-run on change and print metrics\n")
		fmt.Fprintf(stderr, "  actl -q items.0 inspect.lua          Query the inspector output in result\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.showVersion {
		return opts, nil
	}

	switch fs.NArg() {
	case 1:
		opts.script = fs.Arg(0)
	case 0:
		return opts, fmt.Errorf("%w: missing script", errUsage)
	default:
		return opts, fmt.Errorf("%w: expected one script, got %d", errUsage, fs.NArg())
	}
	return opts, nil
}

// loadConfig reads the configuration file if one was given and applies the
// command-line overrides.
func loadConfig(opts options) (*config.Config, error) {
	var cfg *config.Config
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return nil, err
		}
	} else {
		cfg = config.Default()
		if err := config.ApplyEnv(cfg, os.LookupEnv); err != nil {
			return nil, err
		}
	}

	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runner executes the script with the configured providers.
type runner struct {
	cfg       *config.Config
	opts      options
	log       *logrus.Logger
	stdout    io.Writer
	stats     *alloc.Stats
	collector *alloc.Collector
}

// runOnce runs the script in a fresh runtime and prints the query and
// metrics output.
func (r *runner) runOnce(ctx context.Context) error {
	rt, err := script.New(
		script.WithTimeout(r.cfg.Script.Timeout.Std()),
		script.WithProviders(script.Providers{
			Kind:  r.cfg.AllocKind(),
			Limit: r.cfg.Alloc.Limit,
			Stats: r.stats,
		}),
		script.WithLogger(r.log),
		script.WithOutput(r.stdout),
	)
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := rt.DoFile(ctx, r.opts.script); err != nil {
		return err
	}

	if r.opts.query != "" {
		if err := r.printQuery(rt.GlobalString("result")); err != nil {
			return err
		}
	}
	if r.collector != nil {
		if err := r.printMetrics(); err != nil {
			return err
		}
	}
	return nil
}

func (r *runner) printQuery(result string) error {
	if result == "" {
		return errors.New("query: script did not set result")
	}
	if !gjson.Valid(result) {
		return errors.New("query: result is not JSON")
	}
	v := gjson.Get(result, r.opts.query)
	if !v.Exists() {
		return fmt.Errorf("query: no value at %q", r.opts.query)
	}
	fmt.Fprintln(r.stdout, v.String())
	return nil
}

func (r *runner) printMetrics() error {
	values, err := r.collector.Values()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, name := range slices.Sorted(maps.Keys(values)) {
		fmt.Fprintf(r.stdout, "%s %g\n", name, values[name])
	}
	return nil
}

// watch runs the script, then again after every change until ctx is done.
// Failed runs are logged and do not stop the loop.
func (r *runner) watch(ctx context.Context) error {
	w, err := watch.New(r.opts.script,
		watch.WithDelay(r.cfg.Script.Debounce.Std()),
		watch.WithLogger(r.log),
	)
	if err != nil {
		return err
	}
	defer w.Close()

	log := logging.WithComponent(r.log, "cli").WithField("script", r.opts.script)
	runLogged := func(ctx context.Context) {
		if err := r.runOnce(ctx); err != nil {
			log.WithError(err).Error("run failed")
		}
	}

	runLogged(ctx)
	log.Info("watching for changes")
	err = w.Run(ctx, func(ctx context.Context, ev watch.Event) {
		log.WithField("changes", ev.Count).Info("script changed")
		runLogged(ctx)
	})
	if ctx.Err() != nil {
		return nil
	}
	return err
}
