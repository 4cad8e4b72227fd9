package lang

import (
	"fmt"

	"github.com/qiangli/pye/api"
)

// New returns an engine for the configured language.
func New(cfg *api.Config) (api.Engine, error) {
	if cfg == nil {
		cfg = &api.Config{}
	}
	switch cfg.Lang {
	case "", api.LangStarlark:
		return NewStarlark(cfg)
	case api.LangLua:
		return NewLua(cfg)
	case api.LangJS, "javascript", "ecmascript":
		return NewEcma(cfg)
	case api.LangGo, "golang":
		return NewYaegi(cfg)
	}
	return nil, fmt.Errorf("unknown lang: %s", cfg.Lang)
}
