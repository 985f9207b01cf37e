package services

import (
	"context"
	"fmt"

	"github.com/bowen700/fantasy-workplace/models"
	"github.com/bowen700/fantasy-workplace/repositories"
)

type SubmitMetricInput struct {
	CompetitorID int     `json:"competitor_id"`
	MetricID     int     `json:"metric_id"`
	SeasonID     int     `json:"season_id"`
	Week         int     `json:"week"`
	Value        float64 `json:"value"`
}

type SubmissionService interface {
	// SubmitMetric upserts the raw value (latest wins) and then always
	// recomputes the affected week's scores, so displayed results stay
	// consistent with the newest submission snapshot.
	SubmitMetric(ctx context.Context, input SubmitMetricInput) (*models.MetricSubmission, error)
	ListForCompetitor(ctx context.Context, competitorID, seasonID, week int) ([]*models.MetricSubmission, error)
}

type submissionService struct {
	seasonRepo     repositories.SeasonRepository
	metricRepo     repositories.MetricRepository
	submissionRepo repositories.SubmissionRepository
	scores         ScoreService
}

func NewSubmissionService(
	seasonRepo repositories.SeasonRepository,
	metricRepo repositories.MetricRepository,
	submissionRepo repositories.SubmissionRepository,
	scores ScoreService,
) SubmissionService {
	return &submissionService{
		seasonRepo:     seasonRepo,
		metricRepo:     metricRepo,
		submissionRepo: submissionRepo,
		scores:         scores,
	}
}

func (s *submissionService) SubmitMetric(ctx context.Context, input SubmitMetricInput) (*models.MetricSubmission, error) {
	season, err := s.seasonRepo.GetByID(ctx, input.SeasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to load season %d: %w", input.SeasonID, err)
	}
	if input.Week < 1 || input.Week > season.TotalWeeks() {
		return nil, fmt.Errorf("%w: week %d of season %d", ErrWeekOutOfSeason, input.Week, input.SeasonID)
	}

	metric, err := s.metricRepo.GetDefinitionByID(ctx, input.MetricID)
	if err != nil {
		return nil, fmt.Errorf("failed to load metric %d: %w", input.MetricID, err)
	}
	if !metric.Active {
		return nil, fmt.Errorf("%w: %s", ErrMetricInactive, metric.Name)
	}

	submission := &models.MetricSubmission{
		CompetitorID: input.CompetitorID,
		MetricID:     input.MetricID,
		SeasonID:     input.SeasonID,
		Week:         input.Week,
		Value:        input.Value,
	}
	if err := s.submissionRepo.Upsert(ctx, submission); err != nil {
		return nil, fmt.Errorf("failed to store submission: %w", err)
	}

	if err := s.scores.RecalculateScores(ctx, input.SeasonID, input.Week); err != nil {
		return nil, fmt.Errorf("submission stored but scoring failed: %w", err)
	}
	return submission, nil
}

func (s *submissionService) ListForCompetitor(ctx context.Context, competitorID, seasonID, week int) ([]*models.MetricSubmission, error) {
	submissions, err := s.submissionRepo.ListByCompetitorWeek(ctx, competitorID, seasonID, week)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return submissions, nil
}
