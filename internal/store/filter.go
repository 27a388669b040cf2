package store

import (
	"encoding/json"
	"strconv"
	"strings"

	"jobfilter-engine/internal/domain"
)

// OfferFilter holds the values submitted by the filter form.
// Location values are "|"-joined id lists.
type OfferFilter struct {
	Types     []string
	Locations []string
}

func (f OfferFilter) locationIDs() map[int64]bool {
	ids := map[int64]bool{}
	for _, v := range f.Locations {
		for _, p := range strings.Split(v, "|") {
			n, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
			if err != nil {
				continue
			}
			ids[n] = true
		}
	}
	return ids
}

// Apply keeps offers matching any selected type and any selected location.
// An empty selection does not restrict.
func (f OfferFilter) Apply(offers []domain.Offer) []domain.Offer {
	types := map[string]bool{}
	for _, t := range f.Types {
		if t = strings.TrimSpace(t); t != "" {
			types[t] = true
		}
	}
	locs := f.locationIDs()

	out := make([]domain.Offer, 0, len(offers))
	for _, o := range offers {
		if len(types) > 0 && !anyString(o.EmploymentType, types) {
			continue
		}
		if len(f.Locations) > 0 && !anyID(o.LocationIDs(), locs) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func anyString(xs []string, set map[string]bool) bool {
	for _, x := range xs {
		if set[x] {
			return true
		}
	}
	return false
}

func anyID(xs []int64, set map[int64]bool) bool {
	for _, x := range xs {
		if set[x] {
			return true
		}
	}
	return false
}

func serializeStrings(xs []string) string {
	if xs == nil {
		xs = []string{}
	}
	b, _ := json.Marshal(xs)
	return string(b)
}
