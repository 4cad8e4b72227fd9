package api

// Fault kinds
const (
	FaultSyntax  = "syntax error"
	FaultRuntime = "runtime error"
	FaultCompile = "compile error"
)

// Fault is a script failure downgraded to data. Engines convert their
// native errors into faults so the bridge can render a diagnostic without
// knowing the runtime.
type Fault struct {
	// fault kind, one of the Fault* constants
	Kind string

	Msg string

	// full diagnostic including the originating location chain,
	// e.g. a starlark backtrace or a lua stack trace
	Trace string
}

func (r *Fault) Error() string {
	if r.Kind == "" {
		return r.Msg
	}
	return r.Kind + ": " + r.Msg
}

// Diagnostic returns the trace if the engine produced one, the plain
// error text otherwise.
func (r *Fault) Diagnostic() string {
	if r.Trace != "" {
		return r.Trace
	}
	return r.Error()
}
