package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"jobfilter-engine/internal/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "jobs.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSeedAndFindAllPublished(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	added, err := SeedDemo(ctx, db)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if added != 4 {
		t.Fatalf("added = %d", added)
	}

	offers, err := db.FindAllPublished(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(offers) != 3 {
		t.Fatalf("expected 3 published offers, got %d", len(offers))
	}
	if got := offers[0].EmploymentType; len(got) != 2 || got[0] != "FULL_TIME" {
		t.Errorf("employment type = %v", got)
	}
	if offers[0].ValidThrough == nil {
		t.Error("expected valid_through on first offer")
	}

	locs, err := db.FindAllLocations(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(locs) != 4 || locs[0].AddressLocality != "Berlin" {
		t.Fatalf("unexpected locations %+v", locs)
	}
}

func TestExpiredOffersAreHidden(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	past := time.Now().UTC().Add(-time.Hour)
	if _, err := db.InsertOffer(ctx, domain.Offer{Title: "old", Published: true, ValidThrough: &past}); err != nil {
		t.Fatal(err)
	}
	if _, err := db.InsertOffer(ctx, domain.Offer{Title: "open", Published: true}); err != nil {
		t.Fatal(err)
	}
	offers, err := db.FindAllPublished(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(offers) != 1 || offers[0].Title != "open" {
		t.Fatalf("unexpected offers %+v", offers)
	}
}

func TestMalformedColumnsDecodeToNil(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	if _, err := db.Pool.ExecContext(ctx, `
INSERT INTO job_offers(title, published, employment_type, job_location)
VALUES('broken', 1, 'FULL_TIME', 'a:1:{');`); err != nil {
		t.Fatal(err)
	}
	offers, err := db.FindAllPublished(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(offers) != 1 {
		t.Fatalf("expected 1 offer, got %d", len(offers))
	}
	if offers[0].EmploymentType != nil || offers[0].LocationIDs() != nil {
		t.Errorf("expected nil attributes, got %+v", offers[0])
	}
}

func TestFilterOffers(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	if _, err := SeedDemo(ctx, db); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name string
		f    OfferFilter
		want int
	}{
		{"no selection", OfferFilter{}, 3},
		{"full time", OfferFilter{Types: []string{"FULL_TIME"}}, 2},
		{"intern or contractor", OfferFilter{Types: []string{"INTERN", "CONTRACTOR"}}, 1},
		{"berlin", OfferFilter{Locations: []string{"1|2"}}, 2},
		{"hamburg", OfferFilter{Locations: []string{"3"}}, 1},
		{"part time in munich", OfferFilter{Types: []string{"PART_TIME"}, Locations: []string{"4"}}, 1},
		{"garbage location", OfferFilter{Locations: []string{"x"}}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := db.FilterOffers(ctx, c.f)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != c.want {
				t.Errorf("got %d offers, want %d", len(got), c.want)
			}
		})
	}
}

func TestOpenRepositoryUnknownDriver(t *testing.T) {
	if _, err := OpenRepository(context.Background(), "mysql", "", ""); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestPostgresRoundTrip(t *testing.T) {
	dsn := os.Getenv("JOBFILTER_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("JOBFILTER_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	pg, err := OpenPG(ctx, dsn)
	if err != nil {
		t.Fatalf("open pg: %v", err)
	}
	defer pg.Close()

	if _, err := pg.pool.Exec(ctx, `TRUNCATE job_offers, job_locations RESTART IDENTITY`); err != nil {
		t.Fatal(err)
	}
	if _, err := SeedDemo(ctx, pg); err != nil {
		t.Fatalf("seed: %v", err)
	}
	offers, err := pg.FindAllPublished(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(offers) != 3 {
		t.Fatalf("expected 3 offers, got %d", len(offers))
	}
}
