package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"jobfilter-engine/internal/config"
	"jobfilter-engine/internal/filter"
	"jobfilter-engine/internal/inserttag"
	"jobfilter-engine/internal/locale"
)

// filterDeps wires the filter controller to the current config.
func (d Deps) filterDeps(cfg config.Config) filter.Deps {
	pages := inserttag.Pages(cfg.Pages)
	return filter.Deps{
		Offers:          d.Repo,
		Locations:       d.Repo,
		EmploymentTypes: d.EmploymentTypes,
		Routes:          d.Routes,
		InsertTags:      inserttag.New(cfg.InsertTags, pages),
		Pages:           pages,
		Locales:         locale.New(cfg.App.Locales),
		DefaultLocale:   cfg.App.DefaultLocale,
	}
}

type ModuleHandler struct {
	Deps Deps
}

// Render serves GET /modules/{id}.
func (h ModuleHandler) Render(w http.ResponseWriter, r *http.Request) {
	idStr := strings.Trim(strings.TrimPrefix(r.URL.Path, "/modules/"), "/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, r, http.StatusBadRequest, CodeInvalidID, "invalid module id")
		return
	}

	cfg := h.Deps.config()
	m, err := cfg.Module(id)
	if err != nil {
		writeFilterError(w, r, err, CodeRenderFailed)
		return
	}

	c := filter.New(h.Deps.filterDeps(cfg))
	body, err := c.Response(r.Context(), m, r)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Int64("module", id).Msg("render filter module")
		writeFilterError(w, r, err, CodeRenderFailed)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Language", c.Locale())
	_, _ = w.Write(body)
}
