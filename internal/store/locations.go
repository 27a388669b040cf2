package store

import (
	"context"
	"fmt"

	"jobfilter-engine/internal/domain"
)

// FindAllLocations returns every job location ordered by id.
func (d *DB) FindAllLocations(ctx context.Context) ([]domain.Location, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT id, address_locality, postal_code, street_address, address_country
FROM job_locations
ORDER BY id;`)
	if err != nil {
		return nil, fmt.Errorf("query locations: %w", err)
	}
	defer rows.Close()

	var out []domain.Location
	for rows.Next() {
		var l domain.Location
		if err := rows.Scan(&l.ID, &l.AddressLocality, &l.PostalCode, &l.StreetAddress, &l.AddressCountry); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (d *DB) InsertLocation(ctx context.Context, l domain.Location) (int64, error) {
	res, err := d.Pool.ExecContext(ctx, `
INSERT INTO job_locations(address_locality, postal_code, street_address, address_country)
VALUES(?,?,?,?);`,
		l.AddressLocality, l.PostalCode, l.StreetAddress, l.AddressCountry)
	if err != nil {
		return 0, fmt.Errorf("insert location: %w", err)
	}
	return res.LastInsertId()
}
