package api

import (
	"context"
	"io"
)

const (
	LangStarlark = "starlark"
	LangLua      = "lua"
	LangJS       = "js"
	LangGo       = "go"
)

// Engine is an embedded scripting runtime with a persistent global
// namespace. Bindings made by one Exec/Eval survive into the next.
// Engines are not safe for concurrent use; the bridge serializes access.
type Engine interface {
	Name() string

	// Eval evaluates src as a single expression in the global namespace.
	Eval(ctx context.Context, src string) (Value, error)

	// Exec runs src as a statement sequence in the global namespace.
	Exec(ctx context.Context, src string) error

	// Redirect replaces the engine's stdout/stderr streams and returns a
	// func restoring the previous streams.
	Redirect(stdout, stderr io.Writer) func()

	// Bind installs a host value into the global namespace.
	Bind(name string, v any) error

	Close() error
}

// Value is the result of an expression evaluation.
type Value interface {
	// None reports whether the value is the engine's absent/void value.
	None() bool

	String() string
}

type Config struct {
	// engine name. default: starlark
	Lang string

	// host values installed into the global namespace at startup
	Globals map[string]any
}

type UnsupportedError string

func (s UnsupportedError) Error() string {
	return "unsupported: " + string(s)
}
