package httpapi

import (
	"sync/atomic"

	"jobfilter-engine/internal/config"
	"jobfilter-engine/internal/domain"
	"jobfilter-engine/internal/events"
	"jobfilter-engine/internal/route"
	"jobfilter-engine/internal/store"
)

type Deps struct {
	Repo store.Repository

	Hub *events.Hub

	// Atomic stores
	CfgVal *atomic.Value // stores config.Config

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Optional; the default catalog is used when nil.
	EmploymentTypes domain.EmploymentTypes

	// Filled by NewMux when nil.
	Routes *route.Table
}

func (d Deps) config() config.Config {
	return d.CfgVal.Load().(config.Config)
}
