package lang

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/qiangli/pye/api"
)

// Yaegi is a Go interpreter with the standard library available.
type Yaegi struct {
	i *interp.Interpreter

	stdout io.Writer
	stderr io.Writer
}

// forward dereferences at write time so the interpreter's fixed Stdout
// option can follow Redirect swaps.
type forward struct {
	w *io.Writer
}

func (r forward) Write(p []byte) (int, error) {
	return (*r.w).Write(p)
}

func NewYaegi(cfg *api.Config) (*Yaegi, error) {
	r := &Yaegi{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	r.i = interp.New(interp.Options{
		Stdout: forward{&r.stdout},
		Stderr: forward{&r.stderr},
		Env:    toEnv(cfg.Globals),
		GoPath: os.Getenv("GOPATH"),
	})
	if err := r.i.Use(stdlib.Symbols); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Yaegi) Name() string {
	return api.LangGo
}

func (r *Yaegi) Eval(ctx context.Context, src string) (api.Value, error) {
	v, err := r.i.Eval(src)
	if err != nil {
		return nil, yaegiFault(err)
	}
	return yaegiValue{valid: v.IsValid(), repr: fmt.Sprintf("%v", v)}, nil
}

func (r *Yaegi) Exec(ctx context.Context, src string) error {
	if _, err := r.i.Eval(src); err != nil {
		return yaegiFault(err)
	}
	return nil
}

func (r *Yaegi) Redirect(stdout, stderr io.Writer) func() {
	so, se := r.stdout, r.stderr
	r.stdout, r.stderr = stdout, stderr
	return func() {
		r.stdout, r.stderr = so, se
	}
}

// Bind is not supported; host values reach the interpreter as env vars,
// set from Config.Globals at startup.
func (r *Yaegi) Bind(name string, v any) error {
	return api.UnsupportedError("go engine binding: " + name)
}

func (r *Yaegi) Close() error {
	r.i = nil
	return nil
}

type yaegiValue struct {
	valid bool
	repr  string
}

func (r yaegiValue) None() bool {
	return !r.valid
}

func (r yaegiValue) String() string {
	return r.repr
}

func yaegiFault(err error) error {
	var p interp.Panic
	if errors.As(err, &p) {
		return &api.Fault{
			Kind:  api.FaultRuntime,
			Msg:   fmt.Sprint(p.Value),
			Trace: fmt.Sprintf("%v\n%s", p.Value, p.Stack),
		}
	}
	return &api.Fault{Kind: api.FaultCompile, Msg: err.Error()}
}

func toEnv(globals map[string]any) []string {
	var env []string
	for k, v := range globals {
		env = append(env, fmt.Sprintf("%s=%v", k, v))
	}
	return env
}
