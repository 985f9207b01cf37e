package services

import (
	"context"
	"fmt"

	"github.com/bowen700/fantasy-workplace/models"
	"github.com/bowen700/fantasy-workplace/repositories"
	"github.com/bowen700/fantasy-workplace/scoring"
)

type CreateSeasonInput struct {
	Name            string  `json:"name"`
	RegularWeeks    int     `json:"regular_weeks"`
	SlotCapacity    int     `json:"slot_capacity"`
	ScoringStrategy *string `json:"scoring_strategy"`
}

type MetricDefinitionInput struct {
	Name           string  `json:"name"`
	Unit           string  `json:"unit"`
	Weight         float64 `json:"weight"`
	Active         bool    `json:"active"`
	ConversionExpr *string `json:"conversion_expr"`
}

// LeagueService covers the administrative side: seasons, the week cursor,
// and metric definitions.
type LeagueService interface {
	CreateSeason(ctx context.Context, input CreateSeasonInput) (*models.Season, error)
	GetSeason(ctx context.Context, seasonID int) (*models.Season, error)
	ListSeasons(ctx context.Context) ([]*models.Season, error)

	// AdvanceWeek moves the season's current-week cursor forward by one,
	// freezing the finished week's results into the standings.
	AdvanceWeek(ctx context.Context, seasonID int) (*models.Season, error)

	CreateMetric(ctx context.Context, input MetricDefinitionInput) (*models.MetricDefinition, error)
	ListMetrics(ctx context.Context, activeOnly bool) ([]*models.MetricDefinition, error)
	UpdateMetric(ctx context.Context, metricID int, input MetricDefinitionInput) (*models.MetricDefinition, error)
}

type leagueService struct {
	seasonRepo repositories.SeasonRepository
	metricRepo repositories.MetricRepository
}

func NewLeagueService(seasonRepo repositories.SeasonRepository, metricRepo repositories.MetricRepository) LeagueService {
	return &leagueService{
		seasonRepo: seasonRepo,
		metricRepo: metricRepo,
	}
}

func (s *leagueService) CreateSeason(ctx context.Context, input CreateSeasonInput) (*models.Season, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: season name is required", ErrInvalidInput)
	}
	if input.RegularWeeks < 1 {
		return nil, fmt.Errorf("%w: regular_weeks must be at least 1", ErrInvalidInput)
	}
	if input.SlotCapacity < 2 || input.SlotCapacity%2 != 0 {
		return nil, fmt.Errorf("%w: slot_capacity must be a positive even number", ErrInvalidInput)
	}
	if input.ScoringStrategy != nil && *input.ScoringStrategy != "" {
		if _, err := scoring.New(*input.ScoringStrategy); err != nil {
			return nil, err
		}
	}

	season := &models.Season{
		Name:            input.Name,
		RegularWeeks:    input.RegularWeeks,
		CurrentWeek:     1,
		SlotCapacity:    input.SlotCapacity,
		ScoringStrategy: input.ScoringStrategy,
	}
	if err := s.seasonRepo.Create(ctx, season); err != nil {
		return nil, err
	}
	return season, nil
}

func (s *leagueService) GetSeason(ctx context.Context, seasonID int) (*models.Season, error) {
	return s.seasonRepo.GetByID(ctx, seasonID)
}

func (s *leagueService) ListSeasons(ctx context.Context) ([]*models.Season, error) {
	return s.seasonRepo.List(ctx)
}

func (s *leagueService) AdvanceWeek(ctx context.Context, seasonID int) (*models.Season, error) {
	season, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	next := season.CurrentWeek + 1
	if next > season.TotalWeeks()+1 {
		return nil, fmt.Errorf("%w: season %d is already finished", ErrWeekOutOfSeason, seasonID)
	}
	if err := s.seasonRepo.UpdateCurrentWeek(ctx, seasonID, next); err != nil {
		return nil, err
	}
	season.CurrentWeek = next
	return season, nil
}

func (s *leagueService) CreateMetric(ctx context.Context, input MetricDefinitionInput) (*models.MetricDefinition, error) {
	if err := validateMetricInput(input); err != nil {
		return nil, err
	}
	def := &models.MetricDefinition{
		Name:           input.Name,
		Unit:           input.Unit,
		Weight:         input.Weight,
		Active:         input.Active,
		ConversionExpr: input.ConversionExpr,
	}
	if err := s.metricRepo.CreateDefinition(ctx, def); err != nil {
		return nil, err
	}
	return def, nil
}

func (s *leagueService) ListMetrics(ctx context.Context, activeOnly bool) ([]*models.MetricDefinition, error) {
	return s.metricRepo.ListDefinitions(ctx, activeOnly)
}

func (s *leagueService) UpdateMetric(ctx context.Context, metricID int, input MetricDefinitionInput) (*models.MetricDefinition, error) {
	if err := validateMetricInput(input); err != nil {
		return nil, err
	}
	def, err := s.metricRepo.GetDefinitionByID(ctx, metricID)
	if err != nil {
		return nil, err
	}
	def.Name = input.Name
	def.Unit = input.Unit
	def.Weight = input.Weight
	def.Active = input.Active
	def.ConversionExpr = input.ConversionExpr
	if err := s.metricRepo.UpdateDefinition(ctx, def); err != nil {
		return nil, err
	}
	return def, nil
}

func validateMetricInput(input MetricDefinitionInput) error {
	if input.Name == "" {
		return fmt.Errorf("%w: metric name is required", ErrInvalidInput)
	}
	if input.Weight < 0 {
		return fmt.Errorf("%w: metric weight must not be negative", ErrInvalidInput)
	}
	if input.ConversionExpr != nil && *input.ConversionExpr != "" {
		// Probe with a neutral value so malformed formulas are rejected at
		// definition time rather than silently scoring zero every week.
		if _, err := scoring.Evaluate(*input.ConversionExpr, 1); err != nil {
			return fmt.Errorf("%w: conversion_expr: %v", ErrInvalidInput, err)
		}
	}
	return nil
}
