package services

import (
	"context"
	"fmt"
	"log"

	"github.com/bowen700/fantasy-workplace/live"
	"github.com/bowen700/fantasy-workplace/models"
	"github.com/bowen700/fantasy-workplace/repositories"
	"github.com/bowen700/fantasy-workplace/scoring"
)

type ScoreService interface {
	// RecalculateScores computes score and winner for every matchup of the
	// given season week and overwrites the stored results. Safe to call
	// repeatedly: every call fully recomputes from the current submission
	// snapshot, never accumulating. A week with no matchups is a no-op.
	RecalculateScores(ctx context.Context, seasonID, week int) error
}

type scoreService struct {
	seasonRepo      repositories.SeasonRepository
	matchupRepo     repositories.MatchupRepository
	metricRepo      repositories.MetricRepository
	submissionRepo  repositories.SubmissionRepository
	defaultStrategy string
	hub             *live.Hub
}

func NewScoreService(
	seasonRepo repositories.SeasonRepository,
	matchupRepo repositories.MatchupRepository,
	metricRepo repositories.MetricRepository,
	submissionRepo repositories.SubmissionRepository,
	defaultStrategy string,
	hub *live.Hub,
) ScoreService {
	return &scoreService{
		seasonRepo:      seasonRepo,
		matchupRepo:     matchupRepo,
		metricRepo:      metricRepo,
		submissionRepo:  submissionRepo,
		defaultStrategy: defaultStrategy,
		hub:             hub,
	}
}

func (s *scoreService) RecalculateScores(ctx context.Context, seasonID, week int) error {
	season, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return fmt.Errorf("failed to load season %d for scoring: %w", seasonID, err)
	}

	matchups, err := s.matchupRepo.ListBySeasonWeek(ctx, seasonID, week)
	if err != nil {
		return fmt.Errorf("failed to load matchups for season %d week %d: %w", seasonID, week, err)
	}
	if len(matchups) == 0 {
		return nil
	}

	strategy, err := s.strategyFor(season)
	if err != nil {
		return err
	}

	metrics, err := s.metricRepo.ListDefinitions(ctx, true)
	if err != nil {
		return fmt.Errorf("failed to load metric definitions: %w", err)
	}

	submissions, err := s.submissionRepo.ListBySeasonWeek(ctx, seasonID, week)
	if err != nil {
		return fmt.Errorf("failed to load submissions for season %d week %d: %w", seasonID, week, err)
	}

	values, weekValues := indexSubmissions(matchups, submissions)

	for _, m := range matchups {
		aScore := strategy.Score(scoring.Input{
			Metrics:    metrics,
			Values:     values[m.ACompetitorID],
			WeekValues: weekValues,
		})
		bScore := strategy.Score(scoring.Input{
			Metrics:    metrics,
			Values:     values[m.BCompetitorID],
			WeekValues: weekValues,
		})

		// Strictly greater wins; equal scores (including 0-0) are a tie
		// and leave the winner unset.
		var winnerID *int
		switch {
		case aScore > bScore:
			winnerID = &m.ACompetitorID
		case bScore > aScore:
			winnerID = &m.BCompetitorID
		}

		if err := s.matchupRepo.UpdateScores(ctx, m.ID, &aScore, &bScore, winnerID); err != nil {
			return fmt.Errorf("failed to store scores for matchup %d: %w", m.ID, err)
		}
	}

	log.Printf("Recalculated scores for season %d week %d (%d matchups, strategy %s)",
		seasonID, week, len(matchups), strategy.Name())

	if s.hub != nil {
		s.hub.BroadcastToRoom(live.SeasonRoom(seasonID), live.Message{
			Type:    live.EventScoresUpdated,
			Payload: map[string]int{"season_id": seasonID, "week": week},
		})
	}
	return nil
}

func (s *scoreService) strategyFor(season *models.Season) (scoring.Strategy, error) {
	name := s.defaultStrategy
	if season.ScoringStrategy != nil && *season.ScoringStrategy != "" {
		name = *season.ScoringStrategy
	}
	strategy, err := scoring.New(name)
	if err != nil {
		return nil, fmt.Errorf("season %d: %w", season.ID, err)
	}
	return strategy, nil
}

// indexSubmissions splits the week's submission snapshot into per-competitor
// value maps and the week-wide per-metric value lists the min-max strategy
// needs. Only competitors scheduled in the week's matchups are counted.
func indexSubmissions(matchups []*models.Matchup, submissions []*models.MetricSubmission) (map[int]map[int]float64, map[int][]float64) {
	scheduled := make(map[int]bool)
	for _, m := range matchups {
		scheduled[m.ACompetitorID] = true
		scheduled[m.BCompetitorID] = true
	}

	values := make(map[int]map[int]float64)
	weekValues := make(map[int][]float64)
	for _, sub := range submissions {
		if !scheduled[sub.CompetitorID] {
			continue
		}
		if values[sub.CompetitorID] == nil {
			values[sub.CompetitorID] = make(map[int]float64)
		}
		values[sub.CompetitorID][sub.MetricID] = sub.Value
		weekValues[sub.MetricID] = append(weekValues[sub.MetricID], sub.Value)
	}
	return values, weekValues
}
