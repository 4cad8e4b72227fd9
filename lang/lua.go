package lang

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	lua "github.com/yuin/gopher-lua"
	luar "layeh.com/gopher-luar"

	"github.com/qiangli/pye/api"
)

// Lua interpreter backed by a single long-lived LState.
type Lua struct {
	state *lua.LState

	stdout io.Writer
	stderr io.Writer
}

func NewLua(cfg *api.Config) (*Lua, error) {
	r := &Lua{
		state:  lua.NewState(),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	r.state.SetGlobal("print", r.state.NewFunction(r.print))
	for k, v := range cfg.Globals {
		if err := r.Bind(k, v); err != nil {
			r.state.Close()
			return nil, err
		}
	}
	return r, nil
}

func (r *Lua) Name() string {
	return api.LangLua
}

// print writes to the current stdout stream instead of the process one.
func (r *Lua) print(L *lua.LState) int {
	top := L.GetTop()
	parts := make([]string, 0, top)
	for i := 1; i <= top; i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	io.WriteString(r.stdout, strings.Join(parts, "\t")+"\n")
	return 0
}

func (r *Lua) Eval(ctx context.Context, src string) (api.Value, error) {
	// the usual REPL trick: an expression is a chunk that returns it
	fn, err := r.state.LoadString("return " + src)
	if err != nil {
		return nil, luaFault(err)
	}
	r.state.Push(fn)
	if err := r.state.PCall(0, 1, nil); err != nil {
		return nil, luaFault(err)
	}
	v := r.state.Get(-1)
	r.state.Pop(1)
	return luaValue{v}, nil
}

func (r *Lua) Exec(ctx context.Context, src string) error {
	if err := r.state.DoString(src); err != nil {
		return luaFault(err)
	}
	return nil
}

func (r *Lua) Redirect(stdout, stderr io.Writer) func() {
	so, se := r.stdout, r.stderr
	r.stdout, r.stderr = stdout, stderr
	return func() {
		r.stdout, r.stderr = so, se
	}
}

func (r *Lua) Bind(name string, v any) error {
	r.state.SetGlobal(name, luar.New(r.state, v))
	return nil
}

func (r *Lua) Close() error {
	r.state.Close()
	return nil
}

type luaValue struct {
	v lua.LValue
}

func (r luaValue) None() bool {
	return r.v == lua.LNil
}

func (r luaValue) String() string {
	return r.v.String()
}

func luaFault(err error) error {
	var apiErr *lua.ApiError
	if errors.As(err, &apiErr) {
		kind := api.FaultRuntime
		if apiErr.Type == lua.ApiErrorSyntax {
			kind = api.FaultSyntax
		}
		msg := apiErr.Object.String()
		trace := msg
		if apiErr.StackTrace != "" {
			trace = msg + "\n" + apiErr.StackTrace
		}
		return &api.Fault{Kind: kind, Msg: msg, Trace: trace}
	}
	return &api.Fault{Kind: api.FaultRuntime, Msg: err.Error()}
}
