package httpapi

import (
	"net/http"

	"github.com/rs/zerolog"

	"jobfilter-engine/internal/domain"
	"jobfilter-engine/internal/events"
	"jobfilter-engine/internal/filter"
	"jobfilter-engine/internal/store"
)

type OffersHandler struct {
	Repo store.Repository
	Hub  *events.Hub
}

type filterResponse struct {
	Count  int            `json:"count"`
	Offers []domain.Offer `json:"offers"`
}

// Filter serves the AJAX re-filter route.
func (h OffersHandler) Filter(w http.ResponseWriter, r *http.Request) {
	f := store.OfferFilter{
		Types:     filter.RequestValues(r, "types"),
		Locations: filter.RequestValues(r, "location"),
	}
	offers, err := h.Repo.FilterOffers(r.Context(), f)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("filter offers")
		writeFilterError(w, r, err, CodeFilterFailed)
		return
	}
	if offers == nil {
		offers = []domain.Offer{}
	}
	writeJSON(w, filterResponse{Count: len(offers), Offers: offers})
}

// Seed inserts demo locations and offers.
func (h OffersHandler) Seed(w http.ResponseWriter, r *http.Request) {
	added, err := store.SeedDemo(r.Context(), h.Repo)
	if err != nil {
		writeFilterError(w, r, err, CodeSeedFailed)
		return
	}
	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.OffersChanged, map[string]any{"added": added}))
	writeJSON(w, map[string]any{"ok": true, "added": added})
}
