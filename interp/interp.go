package interp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/qiangli/pye/api"
	"github.com/qiangli/pye/internal/log"
	"github.com/qiangli/pye/lang"
)

// fixed diagnostic returned when there is no live engine to run against
const diagNoEngine = "/* interpreter not initialized */"

// Interp owns one embedded engine and mediates every execution request
// through it. Execute calls are serialized; the engine's global namespace
// persists across calls, so bindings and imports accumulate.
type Interp struct {
	mu     sync.Mutex
	engine api.Engine
}

func New(cfg *api.Config) (*Interp, error) {
	engine, err := lang.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Interp{engine: engine}, nil
}

// Execute runs src and returns everything written to the engine's
// stdout/stderr streams during the call, in write order. src is first
// evaluated as a single expression; a non-absent result is printed to the
// captured stdout. On any evaluation fault src is re-run as a statement
// sequence, and a fault there is rendered as a diagnostic trace in the
// captured stderr. Faults never propagate to the caller; the result is
// never nil. An empty src returns "" immediately.
func (r *Interp) Execute(src string) string {
	if src == "" {
		return ""
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.engine == nil {
		return diagNoEngine
	}

	id := uuid.NewString()
	log.Debugf("exec %s lang=%s size=%d\n", id, r.engine.Name(), len(src))

	var sink bytes.Buffer
	restore := r.engine.Redirect(&sink, &sink)
	defer restore()

	r.run(context.Background(), src, &sink)

	log.Debugf("exec %s captured=%d\n", id, sink.Len())
	return sink.String()
}

func (r *Interp) run(ctx context.Context, src string, sink *bytes.Buffer) {
	v, err := r.engine.Eval(ctx, src)
	if err == nil {
		if v != nil && !v.None() {
			fmt.Fprintln(sink, v.String())
		}
		return
	}
	if err := r.engine.Exec(ctx, src); err != nil {
		fmt.Fprintln(sink, diagnostic(err))
	}
}

func diagnostic(err error) string {
	var fault *api.Fault
	if errors.As(err, &fault) {
		return fault.Diagnostic()
	}
	return err.Error()
}

// Bind installs a host value into the engine's global namespace.
func (r *Interp) Bind(name string, v any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.engine == nil {
		return api.UnsupportedError("bind: interpreter closed")
	}
	return r.engine.Bind(name, v)
}

// Close tears down the engine. Execute after Close returns a fixed
// diagnostic instead of crashing.
func (r *Interp) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.engine == nil {
		return nil
	}
	err := r.engine.Close()
	r.engine = nil
	return err
}
