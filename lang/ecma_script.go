package lang

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/dop251/goja"

	"github.com/qiangli/pye/api"
)

// Ecma is a javascript interpreter backed by a single long-lived goja
// runtime. Note assignment is an expression in javascript, so unlike the
// other engines `x = 5` evaluates to a value.
type Ecma struct {
	vm *goja.Runtime

	stdout io.Writer
	stderr io.Writer
}

func NewEcma(cfg *api.Config) (*Ecma, error) {
	r := &Ecma{
		vm:     goja.New(),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	if err := r.vm.Set("print", r.log); err != nil {
		return nil, err
	}
	console := r.vm.NewObject()
	if err := console.Set("log", r.log); err != nil {
		return nil, err
	}
	if err := console.Set("error", r.logErr); err != nil {
		return nil, err
	}
	if err := r.vm.Set("console", console); err != nil {
		return nil, err
	}
	for k, v := range cfg.Globals {
		if err := r.Bind(k, v); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Ecma) Name() string {
	return api.LangJS
}

func (r *Ecma) log(args ...goja.Value) {
	io.WriteString(r.stdout, join(args)+"\n")
}

func (r *Ecma) logErr(args ...goja.Value) {
	io.WriteString(r.stderr, join(args)+"\n")
}

func join(args []goja.Value) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		parts = append(parts, a.String())
	}
	return strings.Join(parts, " ")
}

func (r *Ecma) Eval(ctx context.Context, src string) (api.Value, error) {
	v, err := r.vm.RunString(src)
	if err != nil {
		return nil, ecmaFault(err)
	}
	return ecmaValue{v}, nil
}

func (r *Ecma) Exec(ctx context.Context, src string) error {
	if _, err := r.vm.RunString(src); err != nil {
		return ecmaFault(err)
	}
	return nil
}

func (r *Ecma) Redirect(stdout, stderr io.Writer) func() {
	so, se := r.stdout, r.stderr
	r.stdout, r.stderr = stdout, stderr
	return func() {
		r.stdout, r.stderr = so, se
	}
}

func (r *Ecma) Bind(name string, v any) error {
	return r.vm.Set(name, v)
}

func (r *Ecma) Close() error {
	r.vm = nil
	return nil
}

type ecmaValue struct {
	v goja.Value
}

func (r ecmaValue) None() bool {
	return r.v == nil || goja.IsUndefined(r.v)
}

func (r ecmaValue) String() string {
	return r.v.String()
}

func ecmaFault(err error) error {
	var exc *goja.Exception
	if errors.As(err, &exc) {
		// Exception.String carries the js stack
		return &api.Fault{Kind: api.FaultRuntime, Msg: exc.Error(), Trace: exc.String()}
	}
	var syn *goja.CompilerSyntaxError
	if errors.As(err, &syn) {
		return &api.Fault{Kind: api.FaultSyntax, Msg: syn.Error()}
	}
	return &api.Fault{Kind: api.FaultRuntime, Msg: err.Error()}
}
