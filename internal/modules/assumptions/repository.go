package assumptions

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// dateLayout is the storage format for validity dates
const dateLayout = "2006-01-02"

// Repository handles assumption snapshot database operations (assumptions.db).
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new assumptions repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "assumptions").Logger(),
	}
}

// Create stores a new snapshot and returns it with a generated id.
func (r *Repository) Create(s Snapshot) (*Snapshot, error) {
	s.ID = uuid.NewString()
	s.CreatedAt = time.Now().UTC()

	var validTo *string
	if s.ValidTo != nil {
		v := s.ValidTo.Format(dateLayout)
		validTo = &v
	}

	_, err := r.db.Exec(`
		INSERT INTO assumption_snapshots
			(id, region, valid_from, valid_to,
			 elec_price_p_per_kwh, elec_offpeak_price_p_per_kwh, gas_price_p_per_kwh,
			 elec_standing_p_per_day, gas_standing_p_per_day,
			 grid_intensity_g_per_kwh, gas_intensity_g_per_kwh, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.Region, s.ValidFrom.Format(dateLayout), validTo,
		s.ElecPricePPerKWh, s.ElecOffPeakPPerKWh, s.GasPricePPerKWh,
		s.ElecStandingPPerDay, s.GasStandingPPerDay,
		s.GridIntensityGPerKWh, s.GasIntensityGPerKWh, s.CreatedAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to insert assumption snapshot: %w", err)
	}

	return &s, nil
}

// Get retrieves a snapshot by id.
// Returns nil if the snapshot doesn't exist (not an error).
func (r *Repository) Get(id string) (*Snapshot, error) {
	row := r.db.QueryRow(selectColumns+" FROM assumption_snapshots WHERE id = ?", id)
	s, err := scanSnapshot(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get assumption snapshot %s: %w", id, err)
	}
	return s, nil
}

// LatestForRegion retrieves the snapshot with the most recent validity-start
// for a region. Exactly one snapshot is "latest" per region; ties on
// valid_from break on created_at so repeated imports stay deterministic.
// Returns nil if the region has no snapshots (not an error).
func (r *Repository) LatestForRegion(region string) (*Snapshot, error) {
	row := r.db.QueryRow(selectColumns+`
		FROM assumption_snapshots
		WHERE region = ?
		ORDER BY valid_from DESC, created_at DESC
		LIMIT 1
	`, region)
	s, err := scanSnapshot(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest snapshot for region %s: %w", region, err)
	}
	return s, nil
}

// List retrieves all snapshots for a region ordered by validity-start (newest
// first). An empty region returns every snapshot.
func (r *Repository) List(region string) ([]Snapshot, error) {
	query := selectColumns + " FROM assumption_snapshots"
	args := []interface{}{}
	if region != "" {
		query += " WHERE region = ?"
		args = append(args, region)
	}
	query += " ORDER BY valid_from DESC, created_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list assumption snapshots: %w", err)
	}
	defer rows.Close()

	var result []Snapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			r.log.Warn().Err(err).Msg("Failed to scan snapshot row")
			continue
		}
		result = append(result, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assumption snapshots: %w", err)
	}
	return result, nil
}

// Delete removes a snapshot by id.
func (r *Repository) Delete(id string) error {
	_, err := r.db.Exec("DELETE FROM assumption_snapshots WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete assumption snapshot %s: %w", id, err)
	}
	return nil
}

const selectColumns = `
	SELECT id, region, valid_from, valid_to,
	       elec_price_p_per_kwh, elec_offpeak_price_p_per_kwh, gas_price_p_per_kwh,
	       elec_standing_p_per_day, gas_standing_p_per_day,
	       grid_intensity_g_per_kwh, gas_intensity_g_per_kwh, created_at`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSnapshot(sc scanner) (*Snapshot, error) {
	var (
		s         Snapshot
		validFrom string
		validTo   sql.NullString
		offPeak   sql.NullFloat64
		elecStand sql.NullFloat64
		gasStand  sql.NullFloat64
		createdAt int64
	)
	if err := sc.Scan(&s.ID, &s.Region, &validFrom, &validTo,
		&s.ElecPricePPerKWh, &offPeak, &s.GasPricePPerKWh,
		&elecStand, &gasStand,
		&s.GridIntensityGPerKWh, &s.GasIntensityGPerKWh, &createdAt); err != nil {
		return nil, err
	}

	from, err := time.Parse(dateLayout, validFrom)
	if err != nil {
		return nil, fmt.Errorf("invalid valid_from for %s: %w", s.ID, err)
	}
	s.ValidFrom = from
	if validTo.Valid {
		to, err := time.Parse(dateLayout, validTo.String)
		if err != nil {
			return nil, fmt.Errorf("invalid valid_to for %s: %w", s.ID, err)
		}
		s.ValidTo = &to
	}
	if offPeak.Valid {
		s.ElecOffPeakPPerKWh = &offPeak.Float64
	}
	if elecStand.Valid {
		s.ElecStandingPPerDay = &elecStand.Float64
	}
	if gasStand.Valid {
		s.GasStandingPPerDay = &gasStand.Float64
	}
	s.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &s, nil
}
