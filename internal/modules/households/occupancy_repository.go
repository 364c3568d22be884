package households

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OccupancyRepository handles occupancy profile database operations (plan.db).
type OccupancyRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewOccupancyRepository creates a new occupancy profile repository
func NewOccupancyRepository(db *sql.DB, log zerolog.Logger) *OccupancyRepository {
	return &OccupancyRepository{
		db:  db,
		log: log.With().Str("repository", "occupancy_profiles").Logger(),
	}
}

// Create stores a new occupancy profile and returns it with a generated id.
func (r *OccupancyRepository) Create(p OccupancyProfile) (*OccupancyProfile, error) {
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC()

	_, err := r.db.Exec(`
		INSERT INTO occupancy_profiles (id, name, preset, comfort_priority, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.Preset, p.ComfortPriority, p.CreatedAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to insert occupancy profile: %w", err)
	}

	return &p, nil
}

// Get retrieves an occupancy profile by id.
// Returns nil if the profile doesn't exist (not an error).
func (r *OccupancyRepository) Get(id string) (*OccupancyProfile, error) {
	var (
		p         OccupancyProfile
		createdAt int64
	)
	err := r.db.QueryRow(`
		SELECT id, name, preset, comfort_priority, created_at
		FROM occupancy_profiles WHERE id = ?
	`, id).Scan(&p.ID, &p.Name, &p.Preset, &p.ComfortPriority, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get occupancy profile %s: %w", id, err)
	}
	p.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &p, nil
}

// List retrieves all occupancy profiles ordered by creation time (newest first).
func (r *OccupancyRepository) List() ([]OccupancyProfile, error) {
	rows, err := r.db.Query(`
		SELECT id, name, preset, comfort_priority, created_at
		FROM occupancy_profiles ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list occupancy profiles: %w", err)
	}
	defer rows.Close()

	var result []OccupancyProfile
	for rows.Next() {
		var (
			p         OccupancyProfile
			createdAt int64
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Preset, &p.ComfortPriority, &createdAt); err != nil {
			r.log.Warn().Err(err).Msg("Failed to scan occupancy profile row")
			continue
		}
		p.CreatedAt = time.Unix(createdAt, 0).UTC()
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating occupancy profiles: %w", err)
	}
	return result, nil
}

// Delete removes an occupancy profile by id.
func (r *OccupancyRepository) Delete(id string) error {
	_, err := r.db.Exec("DELETE FROM occupancy_profiles WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete occupancy profile %s: %w", id, err)
	}
	return nil
}
