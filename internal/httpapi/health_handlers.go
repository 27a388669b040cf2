package httpapi

import (
	"net/http"
	"time"

	"jobfilter-engine/internal/route"
)

type HealthHandler struct {
	Routes *route.Table
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	names := []string{}
	for _, rt := range h.Routes.All() {
		names = append(names, rt.Name)
	}
	writeJSON(w, map[string]any{
		"ok":     true,
		"time":   time.Now().Format(time.RFC3339),
		"routes": names,
	})
}
