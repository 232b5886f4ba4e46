package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/provdir/provdir"
)

// Compile-time interface verification.
var _ provdir.ProviderService = (*ProviderService)(nil)

// ProviderService implements provdir.ProviderService using PostgreSQL.
type ProviderService struct {
	db *DB
}

// NewProviderService creates a new ProviderService.
func NewProviderService(db *DB) *ProviderService {
	return &ProviderService{db: db}
}

// SaveProvider upserts a provider record. Records carrying a profile URL that
// matches a stored row overwrite that row field by field; everything else is
// inserted as a new row. A record whose content hash matches the stored hash
// is left untouched, so updated_at only moves when something changed.
func (s *ProviderService) SaveProvider(ctx context.Context, p *provdir.Provider) error {
	if err := p.Validate(); err != nil {
		return err
	}

	hash := p.Fingerprint()
	now := time.Now().UTC().Truncate(time.Second)

	if p.ProfileURL != nil && *p.ProfileURL != "" {
		var id, existingHash string
		var createdAt, updatedAt time.Time
		err := s.db.QueryRowContext(ctx, `
			SELECT id, record_hash, created_at, updated_at FROM providers WHERE profile_url = $1
		`, *p.ProfileURL).Scan(&id, &existingHash, &createdAt, &updatedAt)

		if err != nil && err != sql.ErrNoRows {
			return err
		}
		if err == nil {
			p.ID = id
			p.CreatedAt = createdAt.UTC()
			if existingHash == hash {
				p.UpdatedAt = updatedAt.UTC()
				return nil
			}
			p.UpdatedAt = now

			_, err = s.db.ExecContext(ctx, `
				UPDATE providers
				SET name = $1, specialty = $2, image_url = $3, location = $4, phone = $5,
					has_multiple_locations = $6, is_employed_provider = $7, is_accepting_new_patients = $8,
					rating = $9, rating_count = $10, record_hash = $11, updated_at = $12
				WHERE id = $13
			`, p.Name, p.Specialty, p.ImageURL, p.Location, p.Phone,
				p.HasMultipleLocations, p.IsEmployedProvider, p.IsAcceptingNewPatients,
				p.Rating, p.RatingCount, hash, p.UpdatedAt, p.ID)
			return err
		}
	}

	p.ID = uuid.New().String()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO providers (id, name, specialty, profile_url, image_url, location, phone,
			has_multiple_locations, is_employed_provider, is_accepting_new_patients,
			rating, rating_count, record_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, p.ID, p.Name, p.Specialty, p.ProfileURL, p.ImageURL, p.Location, p.Phone,
		p.HasMultipleLocations, p.IsEmployedProvider, p.IsAcceptingNewPatients,
		p.Rating, p.RatingCount, hash, p.CreatedAt, p.UpdatedAt)

	return err
}

const providerColumns = `id, name, specialty, profile_url, image_url, location, phone,
	has_multiple_locations, is_employed_provider, is_accepting_new_patients,
	rating, rating_count, created_at, updated_at`

// FindProviderByID retrieves a provider by ID.
func (s *ProviderService) FindProviderByID(ctx context.Context, id string) (*provdir.Provider, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+providerColumns+` FROM providers WHERE id = $1
	`, id)

	p, err := scanProvider(row.Scan)
	if err == sql.ErrNoRows {
		return nil, provdir.Errorf(provdir.ENOTFOUND, "provider not found")
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// FindProviders retrieves providers matching the filter.
func (s *ProviderService) FindProviders(ctx context.Context, filter provdir.ProviderFilter) ([]*provdir.Provider, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + providerColumns + " FROM providers WHERE 1=1")

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Name != nil {
		query.WriteString(" AND name = " + arg(*filter.Name))
	}
	if filter.Specialty != nil {
		query.WriteString(" AND specialty = " + arg(*filter.Specialty))
	}
	if filter.HasPhone != nil {
		if *filter.HasPhone {
			query.WriteString(" AND phone IS NOT NULL")
		} else {
			query.WriteString(" AND phone IS NULL")
		}
	}
	if filter.HasMultipleLocations != nil {
		query.WriteString(" AND has_multiple_locations = " + arg(*filter.HasMultipleLocations))
	}

	switch filter.SortBy {
	case provdir.SortByName:
		query.WriteString(" ORDER BY name ASC")
	default:
		query.WriteString(" ORDER BY created_at ASC, id ASC")
	}

	if filter.Limit > 0 {
		query.WriteString(" LIMIT " + arg(filter.Limit))
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET " + arg(filter.Offset))
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var providers []*provdir.Provider
	for rows.Next() {
		p, err := scanProvider(rows.Scan)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}

	return providers, rows.Err()
}

// DeleteProvider permanently removes a provider.
func (s *ProviderService) DeleteProvider(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM providers WHERE id = $1", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return provdir.Errorf(provdir.ENOTFOUND, "provider not found")
	}

	return nil
}

// scanProvider reads one provider row using the given scan function,
// converting nullable columns back to pointer fields.
func scanProvider(scan func(dest ...any) error) (*provdir.Provider, error) {
	var p provdir.Provider
	var specialty, profileURL, imageURL, location, phone sql.NullString
	var rating sql.NullFloat64
	var ratingCount sql.NullInt64
	var createdAt, updatedAt time.Time

	err := scan(&p.ID, &p.Name, &specialty, &profileURL, &imageURL, &location, &phone,
		&p.HasMultipleLocations, &p.IsEmployedProvider, &p.IsAcceptingNewPatients,
		&rating, &ratingCount, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if specialty.Valid {
		p.Specialty = &specialty.String
	}
	if profileURL.Valid {
		p.ProfileURL = &profileURL.String
	}
	if imageURL.Valid {
		p.ImageURL = &imageURL.String
	}
	if location.Valid {
		p.Location = &location.String
	}
	if phone.Valid {
		p.Phone = &phone.String
	}
	if rating.Valid {
		p.Rating = &rating.Float64
	}
	if ratingCount.Valid {
		n := int(ratingCount.Int64)
		p.RatingCount = &n
	}

	p.CreatedAt = createdAt.UTC()
	p.UpdatedAt = updatedAt.UTC()

	return &p, nil
}
