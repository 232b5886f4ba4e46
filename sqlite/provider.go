package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/provdir/provdir"
)

// Compile-time interface verification.
var _ provdir.ProviderService = (*ProviderService)(nil)

// ProviderService implements provdir.ProviderService using SQLite.
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
	now := nowUTC()

	if p.ProfileURL != nil && *p.ProfileURL != "" {
		var id, existingHash, createdAt, updatedAt string
		err := s.db.QueryRowContext(ctx, `
			SELECT id, record_hash, created_at, updated_at FROM providers WHERE profile_url = ?
		`, *p.ProfileURL).Scan(&id, &existingHash, &createdAt, &updatedAt)

		if err != nil && err != sql.ErrNoRows {
			return err
		}
		if err == nil {
			p.ID = id
			p.CreatedAt, err = parseRFC3339(createdAt, "created_at")
			if err != nil {
				return err
			}
			if existingHash == hash {
				p.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at")
				return err
			}
			p.UpdatedAt = now

			_, err = s.db.ExecContext(ctx, `
				UPDATE providers
				SET name = ?, specialty = ?, image_url = ?, location = ?, phone = ?,
					has_multiple_locations = ?, is_employed_provider = ?, is_accepting_new_patients = ?,
					rating = ?, rating_count = ?, record_hash = ?, updated_at = ?
				WHERE id = ?
			`, p.Name, nullString(p.Specialty), nullString(p.ImageURL), nullString(p.Location), nullString(p.Phone),
				p.HasMultipleLocations, p.IsEmployedProvider, p.IsAcceptingNewPatients,
				nullFloat(p.Rating), nullInt(p.RatingCount), hash, formatRFC3339(p.UpdatedAt), p.ID)
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
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, nullString(p.Specialty), nullString(p.ProfileURL), nullString(p.ImageURL),
		nullString(p.Location), nullString(p.Phone),
		p.HasMultipleLocations, p.IsEmployedProvider, p.IsAcceptingNewPatients,
		nullFloat(p.Rating), nullInt(p.RatingCount), hash,
		formatRFC3339(p.CreatedAt), formatRFC3339(p.UpdatedAt))

	return err
}

const providerColumns = `id, name, specialty, profile_url, image_url, location, phone,
	has_multiple_locations, is_employed_provider, is_accepting_new_patients,
	rating, rating_count, created_at, updated_at`

// FindProviderByID retrieves a provider by ID.
func (s *ProviderService) FindProviderByID(ctx context.Context, id string) (*provdir.Provider, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+providerColumns+` FROM providers WHERE id = ?
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

	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}
	if filter.Specialty != nil {
		query.WriteString(" AND specialty = ?")
		args = append(args, *filter.Specialty)
	}
	if filter.HasPhone != nil {
		if *filter.HasPhone {
			query.WriteString(" AND phone IS NOT NULL")
		} else {
			query.WriteString(" AND phone IS NULL")
		}
	}
	if filter.HasMultipleLocations != nil {
		query.WriteString(" AND has_multiple_locations = ?")
		args = append(args, *filter.HasMultipleLocations)
	}

	switch filter.SortBy {
	case provdir.SortByName:
		query.WriteString(" ORDER BY name ASC")
	default:
		query.WriteString(" ORDER BY created_at ASC, id ASC")
	}

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
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
	result, err := s.db.ExecContext(ctx, "DELETE FROM providers WHERE id = ?", id)
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
	var createdAt, updatedAt string

	err := scan(&p.ID, &p.Name, &specialty, &profileURL, &imageURL, &location, &phone,
		&p.HasMultipleLocations, &p.IsEmployedProvider, &p.IsAcceptingNewPatients,
		&rating, &ratingCount, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	p.Specialty = stringPtr(specialty)
	p.ProfileURL = stringPtr(profileURL)
	p.ImageURL = stringPtr(imageURL)
	p.Location = stringPtr(location)
	p.Phone = stringPtr(phone)
	p.Rating = floatPtr(rating)
	p.RatingCount = intPtr(ratingCount)

	if p.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &p, nil
}
