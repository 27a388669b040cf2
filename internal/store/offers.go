package store

import (
	"context"
	"fmt"
	"time"

	"jobfilter-engine/internal/domain"
)

// FindAllPublished returns published offers that have not expired, by id.
func (d *DB) FindAllPublished(ctx context.Context) ([]domain.Offer, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT id, title, description, published, employment_type, job_location, valid_through
FROM job_offers
WHERE published = 1
ORDER BY id;`)
	if err != nil {
		return nil, fmt.Errorf("query offers: %w", err)
	}
	defer rows.Close()

	now := time.Now().UTC()
	var out []domain.Offer
	for rows.Next() {
		var o domain.Offer
		var published int
		var typesJSON, validStr string
		if err := rows.Scan(&o.ID, &o.Title, &o.Description, &published, &typesJSON, &o.JobLocation, &validStr); err != nil {
			return nil, err
		}
		o.Published = published == 1
		o.EmploymentType = domain.DeserializeStrings(typesJSON)
		if validStr != "" {
			if t, err := time.Parse(time.RFC3339, validStr); err == nil {
				o.ValidThrough = &t
			}
		}
		if expired(o, now) {
			continue
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// FilterOffers returns the published offers matching f.
func (d *DB) FilterOffers(ctx context.Context, f OfferFilter) ([]domain.Offer, error) {
	offers, err := d.FindAllPublished(ctx)
	if err != nil {
		return nil, err
	}
	return f.Apply(offers), nil
}

// InsertOffer stores o and returns its id.
func (d *DB) InsertOffer(ctx context.Context, o domain.Offer) (int64, error) {
	published := 0
	if o.Published {
		published = 1
	}
	valid := ""
	if o.ValidThrough != nil {
		valid = o.ValidThrough.UTC().Format(time.RFC3339)
	}
	res, err := d.Pool.ExecContext(ctx, `
INSERT INTO job_offers(title, description, published, employment_type, job_location, valid_through)
VALUES(?,?,?,?,?,?);`,
		o.Title, o.Description, published, serializeStrings(o.EmploymentType), o.JobLocation, valid)
	if err != nil {
		return 0, fmt.Errorf("insert offer: %w", err)
	}
	return res.LastInsertId()
}

func expired(o domain.Offer, now time.Time) bool {
	return o.ValidThrough != nil && o.ValidThrough.Before(now)
}
