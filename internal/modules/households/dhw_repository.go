package households

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DHWRepository handles domestic hot water profile database operations (plan.db).
type DHWRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewDHWRepository creates a new DHW profile repository
func NewDHWRepository(db *sql.DB, log zerolog.Logger) *DHWRepository {
	return &DHWRepository{
		db:  db,
		log: log.With().Str("repository", "dhw_profiles").Logger(),
	}
}

// Create stores a new DHW profile and returns it with a generated id.
func (r *DHWRepository) Create(p DHWProfile) (*DHWProfile, error) {
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC()

	_, err := r.db.Exec(`
		INSERT INTO dhw_profiles
			(id, name, occupants, showers_per_day, baths_per_week, target_temp_c, preheat_enabled, preheat_strategy, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.Occupants, p.ShowersPerDay, p.BathsPerWeek, p.TargetTempC,
		boolToInt(p.PreheatEnabled), p.PreheatStrategy, p.CreatedAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to insert DHW profile: %w", err)
	}

	return &p, nil
}

// Get retrieves a DHW profile by id.
// Returns nil if the profile doesn't exist (not an error).
func (r *DHWRepository) Get(id string) (*DHWProfile, error) {
	row := r.db.QueryRow(`
		SELECT id, name, occupants, showers_per_day, baths_per_week, target_temp_c, preheat_enabled, preheat_strategy, created_at
		FROM dhw_profiles WHERE id = ?
	`, id)

	p, err := scanDHWProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get DHW profile %s: %w", id, err)
	}
	return p, nil
}

// List retrieves all DHW profiles ordered by creation time (newest first).
func (r *DHWRepository) List() ([]DHWProfile, error) {
	rows, err := r.db.Query(`
		SELECT id, name, occupants, showers_per_day, baths_per_week, target_temp_c, preheat_enabled, preheat_strategy, created_at
		FROM dhw_profiles ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list DHW profiles: %w", err)
	}
	defer rows.Close()

	var result []DHWProfile
	for rows.Next() {
		p, err := scanDHWProfile(rows)
		if err != nil {
			r.log.Warn().Err(err).Msg("Failed to scan DHW profile row")
			continue
		}
		result = append(result, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating DHW profiles: %w", err)
	}
	return result, nil
}

// Delete removes a DHW profile by id.
func (r *DHWRepository) Delete(id string) error {
	_, err := r.db.Exec("DELETE FROM dhw_profiles WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete DHW profile %s: %w", id, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanDHWProfile(s scanner) (*DHWProfile, error) {
	var (
		p         DHWProfile
		preheat   int
		createdAt int64
	)
	if err := s.Scan(&p.ID, &p.Name, &p.Occupants, &p.ShowersPerDay, &p.BathsPerWeek,
		&p.TargetTempC, &preheat, &p.PreheatStrategy, &createdAt); err != nil {
		return nil, err
	}
	p.PreheatEnabled = preheat != 0
	p.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &p, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
