package projection

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/assumptions"
	"github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/households"
	"github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/properties"
	"github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/scenarios"
)

// defaultHorizonYears applies when a request does not specify a horizon
const defaultHorizonYears = 10

// NotFoundError reports a referenced record that could not be resolved.
// Handlers translate it to a 404; the engine itself is never reached.
type NotFoundError struct {
	Record string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Record)
	}
	return fmt.Sprintf("%s %s not found", e.Record, e.ID)
}

// ErrEmptyJourney is returned for a journey with no steps to project.
var ErrEmptyJourney = fmt.Errorf("journey has no steps")

// ScenarioRequest is the body of POST /projections/scenario.
type ScenarioRequest struct {
	PropertyModelID       string `json:"property_model_id"`
	OccupancyProfileID    string `json:"occupancy_profile_id"`
	DHWProfileID          string `json:"dhw_profile_id"`
	ScenarioID            string `json:"scenario_id"`
	HorizonYears          int    `json:"horizon_years,omitempty"`
	AssumptionsSnapshotID string `json:"assumptions_snapshot_id,omitempty"`
	GridDecarbPath        string `json:"grid_decarb_path,omitempty"`
	Region                string `json:"region,omitempty"`
}

// JourneyRequest is the body of POST /projections/journey.
type JourneyRequest struct {
	PropertyModelID       string `json:"property_model_id"`
	OccupancyProfileID    string `json:"occupancy_profile_id"`
	DHWProfileID          string `json:"dhw_profile_id"`
	JourneyID             string `json:"journey_id"`
	HorizonYears          int    `json:"horizon_years,omitempty"`
	AssumptionsSnapshotID string `json:"assumptions_snapshot_id,omitempty"`
	GridDecarbPath        string `json:"grid_decarb_path,omitempty"`
	Region                string `json:"region,omitempty"`
}

// Service resolves the records a projection references, applies request
// defaults, runs the engine (through the memo cache when one is configured),
// and attaches reproducibility metadata.
type Service struct {
	propertyRepo  *properties.Repository
	occupancyRepo *households.OccupancyRepository
	dhwRepo       *households.DHWRepository
	scenarioRepo  *scenarios.Repository
	snapshotRepo  *assumptions.Repository
	cache         *Cache // optional, nil disables memoization
	defaultRegion string
	log           zerolog.Logger
	now           func() time.Time
}

// NewService creates a new projection service
func NewService(
	propertyRepo *properties.Repository,
	occupancyRepo *households.OccupancyRepository,
	dhwRepo *households.DHWRepository,
	scenarioRepo *scenarios.Repository,
	snapshotRepo *assumptions.Repository,
	cache *Cache,
	defaultRegion string,
	log zerolog.Logger,
) *Service {
	return &Service{
		propertyRepo:  propertyRepo,
		occupancyRepo: occupancyRepo,
		dhwRepo:       dhwRepo,
		scenarioRepo:  scenarioRepo,
		snapshotRepo:  snapshotRepo,
		cache:         cache,
		defaultRegion: defaultRegion,
		log:           log.With().Str("service", "projection").Logger(),
		now:           time.Now,
	}
}

// ProjectScenario resolves the referenced records and projects the scenario.
func (s *Service) ProjectScenario(req ScenarioRequest) (*Response, error) {
	scenario, err := s.scenarioRepo.GetScenario(req.ScenarioID)
	if err != nil {
		return nil, err
	}
	if scenario == nil {
		return nil, &NotFoundError{Record: "scenario", ID: req.ScenarioID}
	}

	return s.project(projectionContext{
		PropertyModelID:       req.PropertyModelID,
		OccupancyProfileID:    req.OccupancyProfileID,
		DHWProfileID:          req.DHWProfileID,
		Scenario:              *scenario,
		HorizonYears:          req.HorizonYears,
		AssumptionsSnapshotID: req.AssumptionsSnapshotID,
		GridDecarbPath:        req.GridDecarbPath,
		Region:                req.Region,
	})
}

// ProjectJourney resolves the journey's working scenario and projects it.
//
// The working scenario is the journey's first step for the whole horizon.
// Date-based scenario transitions mid-horizon are a documented limitation of
// the current engine, not a planned behavior change to make silently.
func (s *Service) ProjectJourney(req JourneyRequest) (*Response, error) {
	journey, err := s.scenarioRepo.GetJourney(req.JourneyID)
	if err != nil {
		return nil, err
	}
	if journey == nil {
		return nil, &NotFoundError{Record: "journey", ID: req.JourneyID}
	}
	if len(journey.Steps) == 0 {
		return nil, ErrEmptyJourney
	}

	first := journey.Steps[0]
	scenario, err := s.scenarioRepo.GetScenario(first.ScenarioID)
	if err != nil {
		return nil, err
	}
	if scenario == nil {
		return nil, &NotFoundError{Record: "scenario", ID: first.ScenarioID}
	}

	resp, err := s.project(projectionContext{
		PropertyModelID:       req.PropertyModelID,
		OccupancyProfileID:    req.OccupancyProfileID,
		DHWProfileID:          req.DHWProfileID,
		Scenario:              *scenario,
		HorizonYears:          req.HorizonYears,
		AssumptionsSnapshotID: req.AssumptionsSnapshotID,
		GridDecarbPath:        req.GridDecarbPath,
		Region:                req.Region,
	})
	if err != nil {
		return nil, err
	}
	resp.Metadata.JourneyID = journey.ID
	return resp, nil
}

// projectionContext carries a request with its scenario already resolved
type projectionContext struct {
	PropertyModelID       string
	OccupancyProfileID    string
	DHWProfileID          string
	Scenario              scenarios.Scenario
	HorizonYears          int
	AssumptionsSnapshotID string
	GridDecarbPath        string
	Region                string
}

func (s *Service) project(ctx projectionContext) (*Response, error) {
	property, err := s.propertyRepo.Get(ctx.PropertyModelID)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, &NotFoundError{Record: "property model", ID: ctx.PropertyModelID}
	}

	occupancy, err := s.occupancyRepo.Get(ctx.OccupancyProfileID)
	if err != nil {
		return nil, err
	}
	if occupancy == nil {
		return nil, &NotFoundError{Record: "occupancy profile", ID: ctx.OccupancyProfileID}
	}

	dhw, err := s.dhwRepo.Get(ctx.DHWProfileID)
	if err != nil {
		return nil, err
	}
	if dhw == nil {
		return nil, &NotFoundError{Record: "DHW profile", ID: ctx.DHWProfileID}
	}

	snapshot, err := s.resolveSnapshot(ctx.AssumptionsSnapshotID, ctx.Region)
	if err != nil {
		return nil, err
	}

	horizon := ctx.HorizonYears
	if horizon <= 0 {
		horizon = defaultHorizonYears
	}
	path := normalizePath(ctx.GridDecarbPath)
	startYear := s.now().UTC().Year()

	inputs := Inputs{
		Property:     *property,
		Occupancy:    *occupancy,
		HotWater:     *dhw,
		Scenario:     ctx.Scenario,
		Assumptions:  *snapshot,
		DecarbPath:   path,
		HorizonYears: horizon,
		StartYear:    startYear,
	}

	result := s.run(inputs)

	return &Response{
		Metadata: Metadata{
			PropertyModelID:       property.ID,
			OccupancyProfileID:    occupancy.ID,
			DHWProfileID:          dhw.ID,
			ScenarioID:            ctx.Scenario.ID,
			AssumptionsSnapshotID: snapshot.ID,
			Region:                snapshot.Region,
			GridDecarbPath:        path,
			HorizonYears:          horizon,
			StartYear:             startYear,
			EngineVersion:         EngineVersion,
			GeneratedAt:           s.now().UTC(),
		},
		Monthly: result.Monthly,
		Yearly:  result.Yearly,
		Summary: result.Summary,
	}, nil
}

// run executes the engine, consulting the memo cache when configured.
// Cache failures degrade to a fresh computation, never to a request failure.
func (s *Service) run(inputs Inputs) Result {
	if s.cache == nil {
		return Project(inputs)
	}

	key, err := Key(inputs)
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to derive projection cache key, computing directly")
		return Project(inputs)
	}

	if cached, err := s.cache.Get(key); err != nil {
		s.log.Warn().Err(err).Msg("Projection cache read failed, computing directly")
	} else if cached != nil {
		s.log.Debug().Str("key", key).Msg("Projection cache hit")
		return *cached
	}

	result := Project(inputs)
	if err := s.cache.Put(key, result); err != nil {
		s.log.Warn().Err(err).Msg("Failed to store projection in cache")
	}
	return result
}

// resolveSnapshot returns the explicitly requested snapshot, or the latest
// one for the region (request region first, configured default otherwise).
func (s *Service) resolveSnapshot(snapshotID, region string) (*assumptions.Snapshot, error) {
	if snapshotID != "" {
		snapshot, err := s.snapshotRepo.Get(snapshotID)
		if err != nil {
			return nil, err
		}
		if snapshot == nil {
			return nil, &NotFoundError{Record: "assumptions snapshot", ID: snapshotID}
		}
		return snapshot, nil
	}

	if region == "" {
		region = s.defaultRegion
	}
	snapshot, err := s.snapshotRepo.LatestForRegion(region)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, &NotFoundError{Record: "assumptions snapshot for region " + region}
	}
	return snapshot, nil
}

// normalizePath maps unknown decarbonization path ids to the central path so
// the metadata records the path actually used.
func normalizePath(path string) string {
	switch path {
	case PathCentral, PathFast, PathSlow:
		return path
	default:
		return PathCentral
	}
}
