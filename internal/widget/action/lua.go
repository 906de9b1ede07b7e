package action

import (
	"context"
	"fmt"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/buttongroup/internal/logging"
)

// HookName is the global function a script action must define.
const HookName = "on_value_change"

// DefaultScriptTimeout bounds a single script invocation.
const DefaultScriptTimeout = time.Second

// removedGlobals are base-library functions that load code from outside
// the script.
var removedGlobals = []string{"dofile", "loadfile", "load", "loadstring", "require", "module"}

// LuaAction runs a script's on_value_change(value) function.
//
// gopher-lua states are not goroutine-safe; calls are serialized.
// An empty value is passed to the script as nil.
type LuaAction struct {
	mu      sync.Mutex
	L       *lua.LState
	name    string
	timeout time.Duration
	logger  *logging.Logger
	closed  bool
}

// LuaOption configures a LuaAction.
type LuaOption func(*LuaAction)

// WithScriptName names the script in errors and logs.
func WithScriptName(name string) LuaOption {
	return func(a *LuaAction) {
		a.name = name
	}
}

// WithScriptTimeout bounds each invocation. Zero disables the bound.
func WithScriptTimeout(d time.Duration) LuaOption {
	return func(a *LuaAction) {
		a.timeout = d
	}
}

// WithScriptLogger sets the logger behind the script's log() function.
func WithScriptLogger(l *logging.Logger) LuaOption {
	return func(a *LuaAction) {
		a.logger = l
	}
}

// NewLuaAction compiles source in a fresh sandboxed state and checks that
// it defines on_value_change.
func NewLuaAction(source string, opts ...LuaOption) (*LuaAction, error) {
	a := &LuaAction{
		name:    "script",
		timeout: DefaultScriptTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = logging.OrNull(a.logger).WithComponent("lua").WithField("script", a.name)

	a.L = newSandbox(a.logger)

	if err := doWithRecovery(func() error { return a.L.DoString(source) }); err != nil {
		a.L.Close()
		return nil, fmt.Errorf("load %s: %w", a.name, err)
	}
	if fn := a.L.GetGlobal(HookName); fn.Type() != lua.LTFunction {
		a.L.Close()
		return nil, fmt.Errorf("load %s: %w", a.name, ErrMissingHook)
	}

	return a, nil
}

// newSandbox creates a state with only the base, table, string and math
// libraries, and without the functions in removedGlobals.
func newSandbox(logger *logging.Logger) *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range removedGlobals {
		L.SetGlobal(name, lua.LNil)
	}

	L.SetGlobal("log", L.NewFunction(func(L *lua.LState) int {
		logger.Info("%s", L.CheckString(1))
		return 0
	}))

	return L
}

// Invoke calls on_value_change(value). A Lua error or a script that
// returns a string is reported as an error.
func (a *LuaAction) Invoke(ctx context.Context, value string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrClosed
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	a.L.SetContext(ctx)
	defer a.L.RemoveContext()

	var arg lua.LValue = lua.LNil
	if value != "" {
		arg = lua.LString(value)
	}

	top := a.L.GetTop()
	err := doWithRecovery(func() error {
		return a.L.CallByParam(lua.P{
			Fn:      a.L.GetGlobal(HookName),
			NRet:    1,
			Protect: true,
		}, arg)
	})
	if err != nil {
		a.L.SetTop(top)
		return fmt.Errorf("%s: %s: %w", a.name, HookName, err)
	}

	ret := a.L.Get(-1)
	a.L.Pop(1)
	if msg, ok := ret.(lua.LString); ok {
		return fmt.Errorf("%s: %s: %s", a.name, HookName, string(msg))
	}
	return nil
}

// Close releases the interpreter. It is safe to call more than once.
func (a *LuaAction) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.closed {
		a.L.Close()
		a.closed = true
	}
	return nil
}

func doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}
