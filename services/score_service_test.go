package services

import (
	"context"
	"math"
	"testing"

	"github.com/bowen700/fantasy-workplace/models"
	"github.com/bowen700/fantasy-workplace/scoring"
)

func floatEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRecalculateScoresFixedDivisor(t *testing.T) {
	ctx := context.Background()
	seasonRepo := newFakeSeasonRepo(&models.Season{ID: 1, RegularWeeks: 7, CurrentWeek: 1, SlotCapacity: 4})
	matchupRepo := newFakeMatchupRepo()
	metricRepo := newFakeMetricRepo(&models.MetricDefinition{Name: "GrossProfit", Weight: 1, Active: true})
	submissionRepo := newFakeSubmissionRepo()

	matchupRepo.add(&models.Matchup{SeasonID: 1, Week: 1, ACompetitorID: 1, BCompetitorID: 2})
	submissionRepo.subs = []*models.MetricSubmission{
		{ID: 1, CompetitorID: 1, MetricID: 1, SeasonID: 1, Week: 1, Value: 900},
		{ID: 2, CompetitorID: 2, MetricID: 1, SeasonID: 1, Week: 1, Value: 600},
	}

	svc := NewScoreService(seasonRepo, matchupRepo, metricRepo, submissionRepo, scoring.StrategyFixedDivisor, nil)
	if err := svc.RecalculateScores(ctx, 1, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := matchupRepo.matchups[0]
	if m.AScore == nil || !floatEq(*m.AScore, 3.0) {
		t.Errorf("a_score = %v, want 3.0", m.AScore)
	}
	if m.BScore == nil || !floatEq(*m.BScore, 2.0) {
		t.Errorf("b_score = %v, want 2.0", m.BScore)
	}
	if m.WinnerCompetitorID == nil || *m.WinnerCompetitorID != 1 {
		t.Errorf("winner = %v, want competitor 1", m.WinnerCompetitorID)
	}
}

func TestRecalculateScoresIsIdempotent(t *testing.T) {
	ctx := context.Background()
	seasonRepo := newFakeSeasonRepo(&models.Season{ID: 1, RegularWeeks: 7, CurrentWeek: 1, SlotCapacity: 4})
	matchupRepo := newFakeMatchupRepo()
	metricRepo := newFakeMetricRepo(&models.MetricDefinition{Name: "GrossProfit", Weight: 1, Active: true})
	submissionRepo := newFakeSubmissionRepo()

	matchupRepo.add(&models.Matchup{SeasonID: 1, Week: 1, ACompetitorID: 1, BCompetitorID: 2})
	submissionRepo.subs = []*models.MetricSubmission{
		{ID: 1, CompetitorID: 1, MetricID: 1, SeasonID: 1, Week: 1, Value: 900},
	}

	svc := NewScoreService(seasonRepo, matchupRepo, metricRepo, submissionRepo, scoring.StrategyFixedDivisor, nil)
	for i := 0; i < 3; i++ {
		if err := svc.RecalculateScores(ctx, 1, 1); err != nil {
			t.Fatalf("run %d: unexpected error: %v", i+1, err)
		}
	}

	// Repeated runs overwrite, never accumulate.
	m := matchupRepo.matchups[0]
	if m.AScore == nil || !floatEq(*m.AScore, 3.0) {
		t.Errorf("a_score after three runs = %v, want 3.0", m.AScore)
	}
	if m.BScore == nil || !floatEq(*m.BScore, 0) {
		t.Errorf("b_score after three runs = %v, want 0", m.BScore)
	}
}

func TestRecalculateScoresTieLeavesWinnerUnset(t *testing.T) {
	ctx := context.Background()
	seasonRepo := newFakeSeasonRepo(&models.Season{ID: 1, RegularWeeks: 7, CurrentWeek: 1, SlotCapacity: 4})
	matchupRepo := newFakeMatchupRepo()
	metricRepo := newFakeMetricRepo(&models.MetricDefinition{Name: "GrossProfit", Weight: 1, Active: true})
	submissionRepo := newFakeSubmissionRepo()

	winner := 1
	m := matchupRepo.add(&models.Matchup{SeasonID: 1, Week: 1, ACompetitorID: 1, BCompetitorID: 2, WinnerCompetitorID: &winner})
	submissionRepo.subs = []*models.MetricSubmission{
		{ID: 1, CompetitorID: 1, MetricID: 1, SeasonID: 1, Week: 1, Value: 300},
		{ID: 2, CompetitorID: 2, MetricID: 1, SeasonID: 1, Week: 1, Value: 300},
	}

	svc := NewScoreService(seasonRepo, matchupRepo, metricRepo, submissionRepo, scoring.StrategyFixedDivisor, nil)
	if err := svc.RecalculateScores(ctx, 1, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A stale winner from an earlier run must be cleared on a tie.
	if m.WinnerCompetitorID != nil {
		t.Errorf("winner = %v, want nil on tie", *m.WinnerCompetitorID)
	}
}

func TestRecalculateScoresEmptyWeekIsNoOp(t *testing.T) {
	ctx := context.Background()
	seasonRepo := newFakeSeasonRepo(&models.Season{ID: 1, RegularWeeks: 7, CurrentWeek: 1, SlotCapacity: 4})
	matchupRepo := newFakeMatchupRepo()
	metricRepo := newFakeMetricRepo()
	submissionRepo := newFakeSubmissionRepo()

	svc := NewScoreService(seasonRepo, matchupRepo, metricRepo, submissionRepo, scoring.StrategyFixedDivisor, nil)
	if err := svc.RecalculateScores(ctx, 1, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRecalculateScoresSeasonStrategyOverride(t *testing.T) {
	ctx := context.Background()
	override := scoring.StrategyWeightedMinMax
	seasonRepo := newFakeSeasonRepo(&models.Season{
		ID: 1, RegularWeeks: 7, CurrentWeek: 1, SlotCapacity: 4,
		ScoringStrategy: &override,
	})
	matchupRepo := newFakeMatchupRepo()
	metricRepo := newFakeMetricRepo(&models.MetricDefinition{Name: "CallsMade", Weight: 1, Active: true})
	submissionRepo := newFakeSubmissionRepo()

	m := matchupRepo.add(&models.Matchup{SeasonID: 1, Week: 1, ACompetitorID: 1, BCompetitorID: 2})
	submissionRepo.subs = []*models.MetricSubmission{
		{ID: 1, CompetitorID: 1, MetricID: 1, SeasonID: 1, Week: 1, Value: 10},
		{ID: 2, CompetitorID: 2, MetricID: 1, SeasonID: 1, Week: 1, Value: 30},
	}

	// Deployment default is fixed_divisor; the season overrides to min-max,
	// under which the field extremes land on 0 and 100.
	svc := NewScoreService(seasonRepo, matchupRepo, metricRepo, submissionRepo, scoring.StrategyFixedDivisor, nil)
	if err := svc.RecalculateScores(ctx, 1, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.AScore == nil || !floatEq(*m.AScore, 0) {
		t.Errorf("a_score = %v, want 0", m.AScore)
	}
	if m.BScore == nil || !floatEq(*m.BScore, 100) {
		t.Errorf("b_score = %v, want 100", m.BScore)
	}
}

func TestRecalculateScoresIgnoresUnscheduledSubmissions(t *testing.T) {
	ctx := context.Background()
	override := scoring.StrategyWeightedMinMax
	seasonRepo := newFakeSeasonRepo(&models.Season{
		ID: 1, RegularWeeks: 7, CurrentWeek: 1, SlotCapacity: 4,
		ScoringStrategy: &override,
	})
	matchupRepo := newFakeMatchupRepo()
	metricRepo := newFakeMetricRepo(&models.MetricDefinition{Name: "CallsMade", Weight: 1, Active: true})
	submissionRepo := newFakeSubmissionRepo()

	m := matchupRepo.add(&models.Matchup{SeasonID: 1, Week: 1, ACompetitorID: 1, BCompetitorID: 2})
	submissionRepo.subs = []*models.MetricSubmission{
		{ID: 1, CompetitorID: 1, MetricID: 1, SeasonID: 1, Week: 1, Value: 10},
		{ID: 2, CompetitorID: 2, MetricID: 1, SeasonID: 1, Week: 1, Value: 20},
		// Competitor 9 is not in any matchup; their extreme value must not
		// stretch the normalization range.
		{ID: 3, CompetitorID: 9, MetricID: 1, SeasonID: 1, Week: 1, Value: 1000},
	}

	svc := NewScoreService(seasonRepo, matchupRepo, metricRepo, submissionRepo, scoring.StrategyFixedDivisor, nil)
	if err := svc.RecalculateScores(ctx, 1, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.BScore == nil || !floatEq(*m.BScore, 100) {
		t.Errorf("b_score = %v, want 100 (range capped at scheduled max)", m.BScore)
	}
}

func TestRecalculateScoresUnknownStrategy(t *testing.T) {
	ctx := context.Background()
	bad := "elo"
	seasonRepo := newFakeSeasonRepo(&models.Season{
		ID: 1, RegularWeeks: 7, CurrentWeek: 1, SlotCapacity: 4,
		ScoringStrategy: &bad,
	})
	matchupRepo := newFakeMatchupRepo()
	matchupRepo.add(&models.Matchup{SeasonID: 1, Week: 1, ACompetitorID: 1, BCompetitorID: 2})

	svc := NewScoreService(seasonRepo, matchupRepo, newFakeMetricRepo(), newFakeSubmissionRepo(), scoring.StrategyFixedDivisor, nil)
	if err := svc.RecalculateScores(ctx, 1, 1); err == nil {
		t.Fatal("expected an error for an unknown season strategy")
	}
}
