package services

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"sort"

	"github.com/bowen700/fantasy-workplace/models"
	"github.com/bowen700/fantasy-workplace/repositories"
)

// In-memory repository fakes shared by the service tests.

type fakeSeasonRepo struct {
	seasons map[int]*models.Season
	nextID  int
}

func newFakeSeasonRepo(seasons ...*models.Season) *fakeSeasonRepo {
	r := &fakeSeasonRepo{seasons: make(map[int]*models.Season), nextID: 1}
	for _, s := range seasons {
		if s.ID == 0 {
			s.ID = r.nextID
		}
		if s.ID >= r.nextID {
			r.nextID = s.ID + 1
		}
		r.seasons[s.ID] = s
	}
	return r
}

func (r *fakeSeasonRepo) Create(_ context.Context, season *models.Season) error {
	season.ID = r.nextID
	r.nextID++
	r.seasons[season.ID] = season
	return nil
}

func (r *fakeSeasonRepo) GetByID(_ context.Context, id int) (*models.Season, error) {
	s, ok := r.seasons[id]
	if !ok {
		return nil, repositories.ErrSeasonNotFound
	}
	return s, nil
}

func (r *fakeSeasonRepo) List(_ context.Context) ([]*models.Season, error) {
	out := make([]*models.Season, 0, len(r.seasons))
	for _, s := range r.seasons {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeSeasonRepo) UpdateCurrentWeek(_ context.Context, id int, week int) error {
	s, ok := r.seasons[id]
	if !ok {
		return repositories.ErrSeasonNotFound
	}
	s.CurrentWeek = week
	return nil
}

type fakeCompetitorRepo struct {
	roster []*models.Competitor
}

func newFakeCompetitorRepo(n int) *fakeCompetitorRepo {
	roster := make([]*models.Competitor, n)
	for i := 0; i < n; i++ {
		slot := i + 1
		roster[i] = &models.Competitor{
			ID:         i + 1,
			FirstName:  "Competitor",
			Role:       models.RoleCompetitor,
			SlotNumber: &slot,
		}
	}
	return &fakeCompetitorRepo{roster: roster}
}

func (r *fakeCompetitorRepo) Create(_ context.Context, competitor *models.Competitor) error {
	competitor.ID = len(r.roster) + 1
	r.roster = append(r.roster, competitor)
	return nil
}

func (r *fakeCompetitorRepo) GetByID(_ context.Context, id int) (*models.Competitor, error) {
	for _, c := range r.roster {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, repositories.ErrCompetitorNotFound
}

// GetByEmail returns a copy, like a fresh row scan would.
func (r *fakeCompetitorRepo) GetByEmail(_ context.Context, email string) (*models.Competitor, error) {
	for _, c := range r.roster {
		if c.Email == email {
			clone := *c
			return &clone, nil
		}
	}
	return nil, repositories.ErrCompetitorNotFound
}

func (r *fakeCompetitorRepo) ListRoster(_ context.Context, slotCapacity int) ([]*models.Competitor, error) {
	out := make([]*models.Competitor, 0, len(r.roster))
	for _, c := range r.roster {
		if c.SlotNumber != nil && *c.SlotNumber <= slotCapacity {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return *out[i].SlotNumber < *out[j].SlotNumber })
	return out, nil
}

func (r *fakeCompetitorRepo) UpdateSlot(_ context.Context, id int, slotNumber *int) error {
	c, err := r.GetByID(context.Background(), id)
	if err != nil {
		return err
	}
	c.SlotNumber = slotNumber
	return nil
}

type fakeMatchupRepo struct {
	matchups []*models.Matchup
	nextID   int
}

func newFakeMatchupRepo() *fakeMatchupRepo {
	return &fakeMatchupRepo{nextID: 1}
}

func (r *fakeMatchupRepo) add(m *models.Matchup) *models.Matchup {
	m.ID = r.nextID
	r.nextID++
	r.matchups = append(r.matchups, m)
	return m
}

func (r *fakeMatchupRepo) Create(_ context.Context, _ repositories.SQLExecutor, matchup *models.Matchup) error {
	r.add(matchup)
	return nil
}

func (r *fakeMatchupRepo) CreateBatch(_ context.Context, _ repositories.SQLExecutor, matchups []*models.Matchup) error {
	for _, m := range matchups {
		r.add(m)
	}
	return nil
}

func (r *fakeMatchupRepo) GetByID(_ context.Context, id int) (*models.Matchup, error) {
	for _, m := range r.matchups {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, repositories.ErrMatchupNotFound
}

func (r *fakeMatchupRepo) ListBySeasonWeek(_ context.Context, seasonID, week int) ([]*models.Matchup, error) {
	out := make([]*models.Matchup, 0)
	for _, m := range r.matchups {
		if m.SeasonID == seasonID && m.Week == week {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeMatchupRepo) ListByCompetitorBeforeWeek(_ context.Context, seasonID, competitorID, beforeWeek int) ([]*models.Matchup, error) {
	out := make([]*models.Matchup, 0)
	for _, m := range r.matchups {
		if m.SeasonID == seasonID && m.Week < beforeWeek && m.Involves(competitorID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMatchupRepo) UpdateScores(_ context.Context, id int, aScore, bScore *float64, winnerCompetitorID *int) error {
	m, err := r.GetByID(context.Background(), id)
	if err != nil {
		return err
	}
	m.AScore = aScore
	m.BScore = bScore
	m.WinnerCompetitorID = winnerCompetitorID
	return nil
}

func (r *fakeMatchupRepo) UpdateParticipants(_ context.Context, _ repositories.SQLExecutor, id int, aCompetitorID, bCompetitorID int) error {
	m, err := r.GetByID(context.Background(), id)
	if err != nil {
		return err
	}
	m.ACompetitorID = aCompetitorID
	m.BCompetitorID = bCompetitorID
	return nil
}

func (r *fakeMatchupRepo) DeleteBySeasonWeek(_ context.Context, _ repositories.SQLExecutor, seasonID, week int) error {
	kept := r.matchups[:0]
	for _, m := range r.matchups {
		if m.SeasonID != seasonID || m.Week != week {
			kept = append(kept, m)
		}
	}
	r.matchups = kept
	return nil
}

type fakeMetricRepo struct {
	defs   map[int]*models.MetricDefinition
	order  []int
	nextID int
}

func newFakeMetricRepo(defs ...*models.MetricDefinition) *fakeMetricRepo {
	r := &fakeMetricRepo{defs: make(map[int]*models.MetricDefinition), nextID: 1}
	for _, d := range defs {
		if d.ID == 0 {
			d.ID = r.nextID
		}
		if d.ID >= r.nextID {
			r.nextID = d.ID + 1
		}
		r.defs[d.ID] = d
		r.order = append(r.order, d.ID)
	}
	return r
}

func (r *fakeMetricRepo) CreateDefinition(_ context.Context, def *models.MetricDefinition) error {
	def.ID = r.nextID
	r.nextID++
	r.defs[def.ID] = def
	r.order = append(r.order, def.ID)
	return nil
}

func (r *fakeMetricRepo) GetDefinitionByID(_ context.Context, id int) (*models.MetricDefinition, error) {
	d, ok := r.defs[id]
	if !ok {
		return nil, repositories.ErrMetricNotFound
	}
	return d, nil
}

func (r *fakeMetricRepo) ListDefinitions(_ context.Context, activeOnly bool) ([]*models.MetricDefinition, error) {
	out := make([]*models.MetricDefinition, 0, len(r.order))
	for _, id := range r.order {
		d := r.defs[id]
		if activeOnly && !d.Active {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *fakeMetricRepo) UpdateDefinition(_ context.Context, def *models.MetricDefinition) error {
	if _, ok := r.defs[def.ID]; !ok {
		return repositories.ErrMetricNotFound
	}
	r.defs[def.ID] = def
	return nil
}

type fakeSubmissionRepo struct {
	subs   []*models.MetricSubmission
	nextID int
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{nextID: 1}
}

func (r *fakeSubmissionRepo) Upsert(_ context.Context, submission *models.MetricSubmission) error {
	for _, s := range r.subs {
		if s.CompetitorID == submission.CompetitorID &&
			s.MetricID == submission.MetricID &&
			s.SeasonID == submission.SeasonID &&
			s.Week == submission.Week {
			s.Value = submission.Value
			submission.ID = s.ID
			return nil
		}
	}
	submission.ID = r.nextID
	r.nextID++
	r.subs = append(r.subs, submission)
	return nil
}

func (r *fakeSubmissionRepo) ListBySeasonWeek(_ context.Context, seasonID, week int) ([]*models.MetricSubmission, error) {
	out := make([]*models.MetricSubmission, 0)
	for _, s := range r.subs {
		if s.SeasonID == seasonID && s.Week == week {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSubmissionRepo) ListByCompetitorWeek(_ context.Context, competitorID, seasonID, week int) ([]*models.MetricSubmission, error) {
	out := make([]*models.MetricSubmission, 0)
	for _, s := range r.subs {
		if s.CompetitorID == competitorID && s.SeasonID == seasonID && s.Week == week {
			out = append(out, s)
		}
	}
	return out, nil
}

// stubDB returns a database handle whose transactions are no-ops. The
// fake repositories ignore the executor they are handed, so a service
// under test only needs Begin and Commit to succeed, or to fail when
// commitErr is set.
func stubDB(commitErr error) *sql.DB {
	return sql.OpenDB(stubConnector{commitErr: commitErr})
}

type stubConnector struct{ commitErr error }

func (c stubConnector) Connect(context.Context) (driver.Conn, error) {
	return stubConn{commitErr: c.commitErr}, nil
}

func (stubConnector) Driver() driver.Driver { return stubDriver{} }

type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) { return stubConn{}, nil }

type stubConn struct{ commitErr error }

func (stubConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("statements not supported")
}

func (stubConn) Close() error { return nil }

func (c stubConn) Begin() (driver.Tx, error) { return stubTx{commitErr: c.commitErr}, nil }

type stubTx struct{ commitErr error }

func (tx stubTx) Commit() error { return tx.commitErr }

func (stubTx) Rollback() error { return nil }

// recordingScoreService stands in for the real scorer where a test only
// cares that recalculation was triggered.
type recordingScoreService struct {
	calls [][2]int
}

func (s *recordingScoreService) RecalculateScores(_ context.Context, seasonID, week int) error {
	s.calls = append(s.calls, [2]int{seasonID, week})
	return nil
}
