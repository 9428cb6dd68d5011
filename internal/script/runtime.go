// Package script runs Lua workloads against the containers.
//
// A Runtime owns one sandboxed gopher-lua state with the base, table,
// string and math libraries and a global "actl" module:
//
//	local a = actl.array()
//	a:push(1); a:push(2); a:insert(0, 0)
//	local l = actl.list()
//	l:push_back("x"); l:push_front("w")
//	local s = actl.string("n=") ; s:append(actl.from_int(-42))
//	result = actl.inspect(a)
//
// Container indices are zero-based and checked; a bad index raises a Lua
// error instead of reaching the unchecked container accessors.
//
// Every container a script creates draws its storage from the providers the
// Runtime was built with, so a byte budget on those providers bounds the
// script. Exceeding it aborts the run with an error matching both ErrScript
// and alloc.ErrOutOfMemory.
//
// gopher-lua states are not goroutine-safe. A Runtime serializes its own
// methods with a mutex.
package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/actl/internal/alloc"
	"github.com/dshills/actl/internal/container/list"
	"github.com/dshills/actl/internal/logging"
)

// DefaultTimeout bounds a script run when no timeout option is given.
const DefaultTimeout = 30 * time.Second

// Providers selects the storage behind script containers.
type Providers struct {
	// Kind is the provider implementation.
	Kind alloc.Kind
	// Limit is a byte budget applied separately to array values, list nodes
	// and string characters. Zero means unlimited.
	Limit int64
	// Stats, if set, records allocation traffic.
	Stats *alloc.Stats
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithTimeout bounds each run. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(r *Runtime) {
		r.timeout = d
	}
}

// WithProviders sets the storage providers for script containers.
func WithProviders(p Providers) Option {
	return func(r *Runtime) {
		r.providers = p
	}
}

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(r *Runtime) {
		if log != nil {
			r.log = logging.WithComponent(log, "script")
		}
	}
}

// WithOutput sets where the Lua print function writes.
func WithOutput(w io.Writer) Option {
	return func(r *Runtime) {
		if w != nil {
			r.out = w
		}
	}
}

// Runtime executes Lua scripts with the actl module installed.
type Runtime struct {
	L *lua.LState

	mu      sync.Mutex
	timeout time.Duration
	log     *logrus.Entry
	out     io.Writer
	closed  bool

	providers Providers
	values    alloc.Provider[lua.LValue]
	nodes     alloc.NodeProvider[list.Node[lua.LValue]]
	chars     alloc.Provider[byte]

	// oom holds the allocation failure that aborted the current run.
	oom *alloc.OutOfMemoryError
}

// New creates a runtime.
func New(opts ...Option) (*Runtime, error) {
	r := &Runtime{
		timeout:   DefaultTimeout,
		log:       logging.WithComponent(logging.Discard(), "script"),
		out:       os.Stdout,
		providers: Providers{Kind: alloc.KindHeap},
	}
	for _, opt := range opts {
		opt(r)
	}

	var err error
	p := r.providers
	if r.values, err = alloc.New[lua.LValue](p.Kind, p.Limit, p.Stats); err != nil {
		return nil, err
	}
	if r.chars, err = alloc.New[byte](p.Kind, p.Limit, p.Stats); err != nil {
		return nil, err
	}
	if r.nodes, err = alloc.NewNodes[list.Node[lua.LValue]](p.Kind, p.Limit, p.Stats); err != nil {
		return nil, err
	}

	r.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(r.L)
	r.L.SetGlobal("print", r.L.NewFunction(r.print))
	r.installModule()

	return r, nil
}

// openSafeLibraries opens only the Lua standard libraries without file,
// process or module-loading access.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// print writes its arguments separated by tabs to the runtime output.
func (r *Runtime) print(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, n)
	for i := 1; i <= n; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	fmt.Fprintln(r.out, strings.Join(parts, "\t"))
	return 0
}

// DoString runs code.
func (r *Runtime) DoString(ctx context.Context, code string) error {
	return r.run(ctx, "<string>", func() error {
		return r.L.DoString(code)
	})
}

// DoFile runs the script at path.
func (r *Runtime) DoFile(ctx context.Context, path string) error {
	return r.run(ctx, path, func() error {
		return r.L.DoFile(path)
	})
}

func (r *Runtime) run(ctx context.Context, source string, fn func() error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRuntimeClosed
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	log, _ := logging.WithRun(r.log)
	log = log.WithField("source", source)
	log.Debug("script started")
	start := time.Now()

	r.oom = nil
	r.L.SetContext(ctx)
	err := r.doWithRecovery(fn)
	r.L.RemoveContext()

	elapsed := time.Since(start)
	if err != nil {
		err = r.wrap(ctx, err)
		log.WithError(err).WithField("elapsed", elapsed).Warn("script failed")
		return err
	}
	log.WithField("elapsed", elapsed).Debug("script finished")
	return nil
}

// doWithRecovery executes a function with panic recovery.
func (r *Runtime) doWithRecovery(fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if oom, ok := rec.(*alloc.OutOfMemoryError); ok {
				r.oom = oom
				err = oom
				return
			}
			err = fmt.Errorf("lua panic: %v", rec)
		}
	}()
	return fn()
}

// wrap attaches ErrScript and the root cause the Lua error message hides.
func (r *Runtime) wrap(ctx context.Context, err error) error {
	switch {
	case r.oom != nil && !errors.Is(err, alloc.ErrOutOfMemory):
		return fmt.Errorf("%w: %w: %v", ErrScript, r.oom, err)
	case ctx.Err() != nil:
		return fmt.Errorf("%w: %w: %v", ErrScript, ctx.Err(), err)
	default:
		return fmt.Errorf("%w: %w", ErrScript, err)
	}
}

// guard converts an allocation failure inside a binding into a Lua error and
// remembers it so the run's error can report it.
func (r *Runtime) guard(fn lua.LGFunction) lua.LGFunction {
	return func(L *lua.LState) (n int) {
		defer func() {
			if rec := recover(); rec != nil {
				oom, ok := rec.(*alloc.OutOfMemoryError)
				if !ok {
					panic(rec)
				}
				r.oom = oom
				L.RaiseError("%s", oom.Error())
			}
		}()
		return fn(L)
	}
}

// Global returns a global variable value.
func (r *Runtime) Global(name string) lua.LValue {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return lua.LNil
	}
	return r.L.GetGlobal(name)
}

// GlobalString returns a global variable as a string, applying __tostring
// for containers. It returns "" for nil.
func (r *Runtime) GlobalString(name string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ""
	}
	v := r.L.GetGlobal(name)
	if v == lua.LNil {
		return ""
	}
	return r.L.ToStringMeta(v).String()
}

// Close releases the Lua state.
func (r *Runtime) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.L.Close()
	r.closed = true
	return nil
}
