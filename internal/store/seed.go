package store

import (
	"context"
	"time"

	"jobfilter-engine/internal/domain"
)

// SeedDemo inserts a small set of locations and offers and returns
// how many offers were added.
func SeedDemo(ctx context.Context, r Repository) (int, error) {
	locs := []domain.Location{
		{AddressLocality: "Berlin", PostalCode: "10115", StreetAddress: "Invalidenstr. 1", AddressCountry: "DE"},
		{AddressLocality: "Berlin", PostalCode: "10999", StreetAddress: "Oranienstr. 20", AddressCountry: "DE"},
		{AddressLocality: "Hamburg", PostalCode: "20095", StreetAddress: "Mönckebergstr. 7", AddressCountry: "DE"},
		{AddressLocality: "Munich", PostalCode: "80331", StreetAddress: "Marienplatz 8", AddressCountry: "DE"},
	}
	ids := make([]int64, 0, len(locs))
	for _, l := range locs {
		id, err := r.InsertLocation(ctx, l)
		if err != nil {
			return 0, err
		}
		ids = append(ids, id)
	}

	next := time.Now().UTC().AddDate(0, 3, 0)
	offers := []domain.Offer{
		{
			Title:          "Backend Engineer (Go)",
			Published:      true,
			EmploymentType: []string{"FULL_TIME", "PART_TIME"},
			JobLocation:    domain.SerializeIDs([]int64{ids[0], ids[1]}),
			ValidThrough:   &next,
		},
		{
			Title:          "Site Reliability Engineer",
			Published:      true,
			EmploymentType: []string{"FULL_TIME"},
			JobLocation:    domain.SerializeIDs([]int64{ids[2]}),
		},
		{
			Title:          "Working Student Data",
			Published:      true,
			EmploymentType: []string{"INTERN", "PART_TIME"},
			JobLocation:    domain.SerializeIDs([]int64{ids[1], ids[3]}),
		},
		{
			Title:          "Draft: Product Designer",
			Published:      false,
			EmploymentType: []string{"CONTRACTOR"},
			JobLocation:    domain.SerializeIDs([]int64{ids[3]}),
		},
	}

	added := 0
	for _, o := range offers {
		if _, err := r.InsertOffer(ctx, o); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}
