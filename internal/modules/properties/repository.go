package properties

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Repository handles property model database operations.
// Property models are stored in plan.db; zones are stored as a JSON column
// since the engine always consumes them as a whole.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new property model repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "properties").Logger(),
	}
}

// Create stores a new property model and returns it with a generated id.
func (r *Repository) Create(p PropertyModel) (*PropertyModel, error) {
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC()
	if p.Zones == nil {
		p.Zones = []Zone{}
	}

	zonesJSON, err := json.Marshal(p.Zones)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal zones: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO property_models (id, name, zones, floor_area_m2, age_band, construction_notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, string(zonesJSON), p.FloorAreaM2, p.AgeBand, p.ConstructionNotes, p.CreatedAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to insert property model: %w", err)
	}

	return &p, nil
}

// Get retrieves a property model by id.
// Returns nil if the property model doesn't exist (not an error).
func (r *Repository) Get(id string) (*PropertyModel, error) {
	row := r.db.QueryRow(`
		SELECT id, name, zones, floor_area_m2, age_band, construction_notes, created_at
		FROM property_models WHERE id = ?
	`, id)

	p, err := scanPropertyModel(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get property model %s: %w", id, err)
	}
	return p, nil
}

// List retrieves all property models ordered by creation time (newest first).
func (r *Repository) List() ([]PropertyModel, error) {
	rows, err := r.db.Query(`
		SELECT id, name, zones, floor_area_m2, age_band, construction_notes, created_at
		FROM property_models ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list property models: %w", err)
	}
	defer rows.Close()

	var result []PropertyModel
	for rows.Next() {
		p, err := scanPropertyModel(rows)
		if err != nil {
			r.log.Warn().Err(err).Msg("Failed to scan property model row")
			continue
		}
		result = append(result, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating property models: %w", err)
	}
	return result, nil
}

// Delete removes a property model by id.
func (r *Repository) Delete(id string) error {
	_, err := r.db.Exec("DELETE FROM property_models WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete property model %s: %w", id, err)
	}
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scan logic
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPropertyModel(s scanner) (*PropertyModel, error) {
	var (
		p         PropertyModel
		zonesJSON string
		floorArea sql.NullFloat64
		ageBand   sql.NullString
		notes     sql.NullString
		createdAt int64
	)

	if err := s.Scan(&p.ID, &p.Name, &zonesJSON, &floorArea, &ageBand, &notes, &createdAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(zonesJSON), &p.Zones); err != nil {
		return nil, fmt.Errorf("failed to unmarshal zones for %s: %w", p.ID, err)
	}
	if floorArea.Valid {
		p.FloorAreaM2 = &floorArea.Float64
	}
	p.AgeBand = ageBand.String
	p.ConstructionNotes = notes.String
	p.CreatedAt = time.Unix(createdAt, 0).UTC()

	return &p, nil
}
