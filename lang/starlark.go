package lang

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/qiangli/pye/api"
)

const inputName = "<input>"

// Starlark interpreter with REPL semantics: one unfrozen module whose
// globals persist and may be reassigned across calls.
type Starlark struct {
	thread  *starlark.Thread
	globals starlark.StringDict
	opts    *syntax.FileOptions

	stdout io.Writer
	stderr io.Writer
}

func NewStarlark(cfg *api.Config) (*Starlark, error) {
	r := &Starlark{
		globals: make(starlark.StringDict),
		opts: &syntax.FileOptions{
			Set:             true,
			While:           true,
			TopLevelControl: true,
			GlobalReassign:  true,
			Recursion:       true,
		},
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	r.thread = &starlark.Thread{
		Name: "pye",
		Print: func(_ *starlark.Thread, msg string) {
			fmt.Fprintln(r.stdout, msg)
		},
	}
	for k, v := range cfg.Globals {
		if err := r.Bind(k, v); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Starlark) Name() string {
	return api.LangStarlark
}

func (r *Starlark) Eval(ctx context.Context, src string) (api.Value, error) {
	v, err := starlark.EvalOptions(r.opts, r.thread, inputName, src, r.globals)
	if err != nil {
		return nil, starFault(err)
	}
	return starValue{v}, nil
}

func (r *Starlark) Exec(ctx context.Context, src string) error {
	f, err := r.opts.Parse(inputName, src, 0)
	if err != nil {
		return starFault(err)
	}
	if err := starlark.ExecREPLChunk(f, r.thread, r.globals); err != nil {
		return starFault(err)
	}
	return nil
}

func (r *Starlark) Redirect(stdout, stderr io.Writer) func() {
	so, se := r.stdout, r.stderr
	r.stdout, r.stderr = stdout, stderr
	return func() {
		r.stdout, r.stderr = so, se
	}
}

func (r *Starlark) Bind(name string, v any) error {
	sv, err := toStarlark(v)
	if err != nil {
		return err
	}
	r.globals[name] = sv
	return nil
}

func (r *Starlark) Close() error {
	r.globals = nil
	return nil
}

type starValue struct {
	v starlark.Value
}

func (r starValue) None() bool {
	return r.v == starlark.None
}

func (r starValue) String() string {
	return r.v.String()
}

func starFault(err error) error {
	var evalErr *starlark.EvalError
	if errors.As(err, &evalErr) {
		return &api.Fault{
			Kind:  api.FaultRuntime,
			Msg:   evalErr.Msg,
			Trace: evalErr.Backtrace(),
		}
	}
	// parse and resolve errors carry positions in their text
	return &api.Fault{Kind: api.FaultSyntax, Msg: err.Error()}
}

func toStarlark(v any) (starlark.Value, error) {
	switch t := v.(type) {
	case nil:
		return starlark.None, nil
	case bool:
		return starlark.Bool(t), nil
	case int:
		return starlark.MakeInt(t), nil
	case int64:
		return starlark.MakeInt64(t), nil
	case float64:
		return starlark.Float(t), nil
	case string:
		return starlark.String(t), nil
	case []any:
		elems := make([]starlark.Value, 0, len(t))
		for _, e := range t {
			sv, err := toStarlark(e)
			if err != nil {
				return nil, err
			}
			elems = append(elems, sv)
		}
		return starlark.NewList(elems), nil
	case map[string]any:
		d := starlark.NewDict(len(t))
		for k, e := range t {
			sv, err := toStarlark(e)
			if err != nil {
				return nil, err
			}
			if err := d.SetKey(starlark.String(k), sv); err != nil {
				return nil, err
			}
		}
		return d, nil
	}
	return nil, api.UnsupportedError(fmt.Sprintf("starlark binding for %T", v))
}
