package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"jobfilter-engine/internal/domain"
)

// PG is the Postgres backend.
type PG struct {
	pool *pgxpool.Pool
}

func OpenPG(ctx context.Context, dsn string) (*PG, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect postgres: %w", err)
	}

	p := &PG{pool: pool}
	if err := p.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

func (p *PG) Close() error {
	if p != nil && p.pool != nil {
		p.pool.Close()
	}
	return nil
}

func (p *PG) EnsureSchema(ctx context.Context) error {
	sql := `
	CREATE TABLE IF NOT EXISTS job_locations (
		id BIGSERIAL PRIMARY KEY,
		address_locality TEXT NOT NULL DEFAULT '',
		postal_code TEXT NOT NULL DEFAULT '',
		street_address TEXT NOT NULL DEFAULT '',
		address_country TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS job_offers (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		published BOOLEAN NOT NULL DEFAULT FALSE,
		employment_type TEXT NOT NULL DEFAULT '[]',
		job_location TEXT NOT NULL DEFAULT '[]',
		valid_through TIMESTAMPTZ NULL
	);

	CREATE INDEX IF NOT EXISTS idx_job_offers_published ON job_offers(published);
	`
	if _, err := p.pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

func (p *PG) FindAllPublished(ctx context.Context) ([]domain.Offer, error) {
	rows, err := p.pool.Query(ctx, `
	SELECT id, title, description, published, employment_type, job_location, valid_through
	FROM job_offers
	WHERE published AND (valid_through IS NULL OR valid_through >= now())
	ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query offers: %w", err)
	}

	offers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Offer, error) {
		var o domain.Offer
		var typesJSON string
		err := row.Scan(&o.ID, &o.Title, &o.Description, &o.Published, &typesJSON, &o.JobLocation, &o.ValidThrough)
		o.EmploymentType = domain.DeserializeStrings(typesJSON)
		return o, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan offers: %w", err)
	}
	return offers, nil
}

func (p *PG) FindAllLocations(ctx context.Context) ([]domain.Location, error) {
	rows, err := p.pool.Query(ctx, `
	SELECT id, address_locality, postal_code, street_address, address_country
	FROM job_locations
	ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query locations: %w", err)
	}

	locs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Location, error) {
		var l domain.Location
		err := row.Scan(&l.ID, &l.AddressLocality, &l.PostalCode, &l.StreetAddress, &l.AddressCountry)
		return l, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan locations: %w", err)
	}
	return locs, nil
}

func (p *PG) FilterOffers(ctx context.Context, f OfferFilter) ([]domain.Offer, error) {
	offers, err := p.FindAllPublished(ctx)
	if err != nil {
		return nil, err
	}
	return f.Apply(offers), nil
}

func (p *PG) InsertOffer(ctx context.Context, o domain.Offer) (int64, error) {
	var id int64
	err := p.pool.QueryRow(ctx, `
	INSERT INTO job_offers (title, description, published, employment_type, job_location, valid_through)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id`,
		o.Title, o.Description, o.Published, serializeStrings(o.EmploymentType), o.JobLocation, o.ValidThrough,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert offer: %w", err)
	}
	return id, nil
}

func (p *PG) InsertLocation(ctx context.Context, l domain.Location) (int64, error) {
	var id int64
	err := p.pool.QueryRow(ctx, `
	INSERT INTO job_locations (address_locality, postal_code, street_address, address_country)
	VALUES ($1, $2, $3, $4)
	RETURNING id`,
		l.AddressLocality, l.PostalCode, l.StreetAddress, l.AddressCountry,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert location: %w", err)
	}
	return id, nil
}
