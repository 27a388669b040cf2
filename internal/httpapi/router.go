package httpapi

import (
	"net/http"

	"jobfilter-engine/internal/filter"
	"jobfilter-engine/internal/route"
)

const (
	RouteModule = "job_filter.module"
	RouteHealth = "health"
	RouteConfig = "config"
	RouteEvents = "events"
	RouteSeed   = "seed"
)

// NewMux registers every handler under its route name. The returned mux is
// raw so main() can still attach /shutdown.
func NewMux(d Deps) *http.ServeMux {
	if d.Routes == nil {
		d.Routes = route.NewTable()
	}
	mux := http.NewServeMux()

	handle := func(name, path string, m map[string]http.HandlerFunc) {
		d.Routes.Add(name, path, methods(m)...)
		mux.HandleFunc(path, methodMux(m))
	}

	cfg := d.config()
	limiter := NewClientLimiter(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst)

	// Filter module + AJAX re-filter
	mh := ModuleHandler{Deps: d}
	handle(RouteModule, "/modules/", map[string]http.HandlerFunc{
		http.MethodGet: mh.Render, // expects /modules/{id}
	})
	oh := OffersHandler{Repo: d.Repo, Hub: d.Hub}
	handle(filter.AjaxRouteName, "/api/offers/filter", map[string]http.HandlerFunc{
		http.MethodGet:  limiter.Limit(oh.Filter),
		http.MethodPost: limiter.Limit(oh.Filter),
	})
	handle(RouteSeed, "/seed", map[string]http.HandlerFunc{
		http.MethodPost: oh.Seed,
	})

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
		Hub:         d.Hub,
	}
	handle(RouteConfig, "/config", map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	})
	handle("config.path", "/config/path", map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	})
	handle("config.validate", "/config/validate", map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	})

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	handle(RouteEvents, "/events", map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	})

	hh := HealthHandler{Routes: d.Routes}
	handle(RouteHealth, "/health", map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	})

	return mux
}

// NewHandler wraps h with the standard middleware stack.
func NewHandler(h http.Handler) http.Handler {
	return Chain(h, RequestID, AccessLog, Recover, Cors)
}
