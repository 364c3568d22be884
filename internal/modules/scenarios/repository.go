package scenarios

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Repository handles scenario and journey database operations (plan.db).
// Technology lists and journey steps are stored as JSON columns since the
// engine always consumes them whole.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new scenario repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "scenarios").Logger(),
	}
}

// CreateScenario stores a new scenario and returns it with a generated id.
func (r *Repository) CreateScenario(s Scenario) (*Scenario, error) {
	s.ID = uuid.NewString()
	s.CreatedAt = time.Now().UTC()
	if s.SpaceHeating == nil {
		s.SpaceHeating = []Technology{}
	}
	if s.HotWater == nil {
		s.HotWater = []Technology{}
	}

	spaceJSON, err := json.Marshal(s.SpaceHeating)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal space heating technologies: %w", err)
	}
	waterJSON, err := json.Marshal(s.HotWater)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal hot water technologies: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO scenarios (id, name, space_heating, hot_water, disruption_score, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, s.ID, s.Name, string(spaceJSON), string(waterJSON), s.DisruptionScore, s.CreatedAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to insert scenario: %w", err)
	}

	return &s, nil
}

// GetScenario retrieves a scenario by id.
// Returns nil if the scenario doesn't exist (not an error).
func (r *Repository) GetScenario(id string) (*Scenario, error) {
	row := r.db.QueryRow(`
		SELECT id, name, space_heating, hot_water, disruption_score, created_at
		FROM scenarios WHERE id = ?
	`, id)

	s, err := scanScenario(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scenario %s: %w", id, err)
	}
	return s, nil
}

// ListScenarios retrieves all scenarios ordered by creation time (newest first).
func (r *Repository) ListScenarios() ([]Scenario, error) {
	rows, err := r.db.Query(`
		SELECT id, name, space_heating, hot_water, disruption_score, created_at
		FROM scenarios ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	defer rows.Close()

	var result []Scenario
	for rows.Next() {
		s, err := scanScenario(rows)
		if err != nil {
			r.log.Warn().Err(err).Msg("Failed to scan scenario row")
			continue
		}
		result = append(result, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scenarios: %w", err)
	}
	return result, nil
}

// DeleteScenario removes a scenario by id.
func (r *Repository) DeleteScenario(id string) error {
	_, err := r.db.Exec("DELETE FROM scenarios WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete scenario %s: %w", id, err)
	}
	return nil
}

// CreateJourney stores a new journey and returns it with a generated id.
// Steps are kept in the order given; the first step is the one projection uses.
func (r *Repository) CreateJourney(j Journey) (*Journey, error) {
	j.ID = uuid.NewString()
	j.CreatedAt = time.Now().UTC()
	if j.Steps == nil {
		j.Steps = []JourneyStep{}
	}

	stepsJSON, err := json.Marshal(j.Steps)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal journey steps: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO journeys (id, name, steps, created_at)
		VALUES (?, ?, ?, ?)
	`, j.ID, j.Name, string(stepsJSON), j.CreatedAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to insert journey: %w", err)
	}

	return &j, nil
}

// GetJourney retrieves a journey by id.
// Returns nil if the journey doesn't exist (not an error).
func (r *Repository) GetJourney(id string) (*Journey, error) {
	var (
		j         Journey
		stepsJSON string
		createdAt int64
	)
	err := r.db.QueryRow(`
		SELECT id, name, steps, created_at FROM journeys WHERE id = ?
	`, id).Scan(&j.ID, &j.Name, &stepsJSON, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get journey %s: %w", id, err)
	}

	if err := json.Unmarshal([]byte(stepsJSON), &j.Steps); err != nil {
		return nil, fmt.Errorf("failed to unmarshal journey steps for %s: %w", id, err)
	}
	j.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &j, nil
}

// ListJourneys retrieves all journeys ordered by creation time (newest first).
func (r *Repository) ListJourneys() ([]Journey, error) {
	rows, err := r.db.Query(`
		SELECT id, name, steps, created_at FROM journeys ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list journeys: %w", err)
	}
	defer rows.Close()

	var result []Journey
	for rows.Next() {
		var (
			j         Journey
			stepsJSON string
			createdAt int64
		)
		if err := rows.Scan(&j.ID, &j.Name, &stepsJSON, &createdAt); err != nil {
			r.log.Warn().Err(err).Msg("Failed to scan journey row")
			continue
		}
		if err := json.Unmarshal([]byte(stepsJSON), &j.Steps); err != nil {
			r.log.Warn().Err(err).Str("journey_id", j.ID).Msg("Failed to unmarshal journey steps")
			continue
		}
		j.CreatedAt = time.Unix(createdAt, 0).UTC()
		result = append(result, j)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journeys: %w", err)
	}
	return result, nil
}

// DeleteJourney removes a journey by id.
func (r *Repository) DeleteJourney(id string) error {
	_, err := r.db.Exec("DELETE FROM journeys WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete journey %s: %w", id, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanScenario(s scanner) (*Scenario, error) {
	var (
		sc         Scenario
		spaceJSON  string
		waterJSON  string
		disruption sql.NullInt64
		createdAt  int64
	)
	if err := s.Scan(&sc.ID, &sc.Name, &spaceJSON, &waterJSON, &disruption, &createdAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(spaceJSON), &sc.SpaceHeating); err != nil {
		return nil, fmt.Errorf("failed to unmarshal space heating for %s: %w", sc.ID, err)
	}
	if err := json.Unmarshal([]byte(waterJSON), &sc.HotWater); err != nil {
		return nil, fmt.Errorf("failed to unmarshal hot water for %s: %w", sc.ID, err)
	}
	if disruption.Valid {
		v := int(disruption.Int64)
		sc.DisruptionScore = &v
	}
	sc.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &sc, nil
}
