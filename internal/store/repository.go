package store

import (
	"context"
	"fmt"

	"jobfilter-engine/internal/domain"
)

// Repository is implemented by the sqlite DB and the Postgres PG store.
type Repository interface {
	FindAllPublished(ctx context.Context) ([]domain.Offer, error)
	FindAllLocations(ctx context.Context) ([]domain.Location, error)
	FilterOffers(ctx context.Context, f OfferFilter) ([]domain.Offer, error)
	InsertOffer(ctx context.Context, o domain.Offer) (int64, error)
	InsertLocation(ctx context.Context, l domain.Location) (int64, error)
	Close() error
}

var (
	_ Repository = (*DB)(nil)
	_ Repository = (*PG)(nil)
)

// OpenRepository opens the backend named by driver.
func OpenRepository(ctx context.Context, driver, sqlitePath, postgresDSN string) (Repository, error) {
	switch driver {
	case "", "sqlite":
		db, err := Open(sqlitePath)
		if err != nil {
			return nil, err
		}
		return db, nil
	case "postgres":
		pg, err := OpenPG(ctx, postgresDSN)
		if err != nil {
			return nil, err
		}
		return pg, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
