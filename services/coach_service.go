package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/bowen700/fantasy-workplace/config"
	"github.com/bowen700/fantasy-workplace/models"
	"github.com/bowen700/fantasy-workplace/repositories"
	"github.com/bowen700/fantasy-workplace/scoring"
	"github.com/google/uuid"
)

// MetricSummary is the only shape that crosses the text-generation
// boundary: pre-aggregated per-metric numbers, no scheduling data.
type MetricSummary struct {
	Metric string  `json:"metric"`
	Unit   string  `json:"unit"`
	Value  float64 `json:"value"`
	Points float64 `json:"points"`
}

type CoachService interface {
	// WeeklySummaries aggregates one competitor's week into per-metric
	// summaries, converting each submission via the metric's formula (or
	// its divisor fallback).
	WeeklySummaries(ctx context.Context, competitorID, seasonID, week int) ([]MetricSummary, error)

	// CoachingNote sends the summaries to the external text-generation API
	// and returns the generated coaching text.
	CoachingNote(ctx context.Context, competitorID, seasonID, week int) (string, error)
}

type coachService struct {
	metricRepo     repositories.MetricRepository
	submissionRepo repositories.SubmissionRepository
	cfg            *config.Config
	httpClient     *http.Client
}

func NewCoachService(
	metricRepo repositories.MetricRepository,
	submissionRepo repositories.SubmissionRepository,
	cfg *config.Config,
) CoachService {
	return &coachService{
		metricRepo:     metricRepo,
		submissionRepo: submissionRepo,
		cfg:            cfg,
		httpClient:     &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *coachService) WeeklySummaries(ctx context.Context, competitorID, seasonID, week int) ([]MetricSummary, error) {
	metrics, err := s.metricRepo.ListDefinitions(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load metric definitions: %w", err)
	}
	submissions, err := s.submissionRepo.ListByCompetitorWeek(ctx, competitorID, seasonID, week)
	if err != nil {
		return nil, fmt.Errorf("failed to load submissions: %w", err)
	}

	byMetric := make(map[int]float64, len(submissions))
	for _, sub := range submissions {
		byMetric[sub.MetricID] = sub.Value
	}

	formula := scoring.NewFormula()
	summaries := make([]MetricSummary, 0, len(metrics))
	for _, m := range metrics {
		value, ok := byMetric[m.ID]
		if !ok {
			continue
		}
		points := formula.Score(scoring.Input{
			Metrics: []*models.MetricDefinition{m},
			Values:  map[int]float64{m.ID: value},
		})
		summaries = append(summaries, MetricSummary{
			Metric: m.Name,
			Unit:   m.Unit,
			Value:  value,
			Points: points,
		})
	}
	return summaries, nil
}

type coachRequest struct {
	RequestID string          `json:"request_id"`
	Summaries []MetricSummary `json:"summaries"`
}

type coachResponse struct {
	Text string `json:"text"`
}

func (s *coachService) CoachingNote(ctx context.Context, competitorID, seasonID, week int) (string, error) {
	if s.cfg.CoachAPIURL == "" {
		return "", ErrCoachNotConfigured
	}

	summaries, err := s.WeeklySummaries(ctx, competitorID, seasonID, week)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(coachRequest{
		RequestID: uuid.New().String(),
		Summaries: summaries,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode coach request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.CoachAPIURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build coach request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.cfg.CoachAPIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.CoachAPIKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("coach API call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("coach API returned status %d", resp.StatusCode)
	}

	var decoded coachResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode coach response: %w", err)
	}
	return decoded.Text, nil
}
