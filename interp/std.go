package interp

import (
	"sync"

	"github.com/qiangli/pye/api"
	"github.com/qiangli/pye/internal/log"
)

// process-wide instance, at most one live at a time
var std struct {
	sync.Mutex
	interp *Interp
	config *api.Config
}

// SetConfig sets the config Initialize will use. No effect once the
// process-wide instance is up.
func SetConfig(cfg *api.Config) {
	std.Lock()
	defer std.Unlock()
	std.config = cfg
}

// Initialize brings up the process-wide interpreter instance exactly
// once; calling it again is a no-op. It does not fail observably: if the
// engine cannot start, the error is logged and later Execute calls
// return a fixed diagnostic.
func Initialize() {
	std.Lock()
	defer std.Unlock()
	if std.interp != nil {
		return
	}
	it, err := New(std.config)
	if err != nil {
		log.Errorf("interp: %v\n", err)
		return
	}
	std.interp = it
}

// Execute runs src on the process-wide instance. Initialize must have
// been called first; without it Execute does not crash but returns a
// fixed diagnostic.
func Execute(src string) string {
	if src == "" {
		return ""
	}
	std.Lock()
	it := std.interp
	std.Unlock()
	if it == nil {
		return diagNoEngine
	}
	return it.Execute(src)
}

// Finalize tears down the process-wide instance if there is one.
// Idempotent. Execute after Finalize is the caller's mistake; it returns
// a fixed diagnostic rather than crashing.
func Finalize() {
	std.Lock()
	defer std.Unlock()
	if std.interp == nil {
		return
	}
	if err := std.interp.Close(); err != nil {
		log.Debugf("finalize: %v\n", err)
	}
	std.interp = nil
}
