package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/bowen700/fantasy-workplace/models"
	"github.com/bowen700/fantasy-workplace/repositories"
	"golang.org/x/sync/errgroup"
)

type StandingsService interface {
	// GetStandings derives wins, losses and point totals for the active
	// roster from regular-season matchups strictly before the season's
	// current week, and returns the entries sorted by rank.
	GetStandings(ctx context.Context, seasonID int) ([]models.StandingEntry, error)
}

type standingsService struct {
	seasonRepo     repositories.SeasonRepository
	competitorRepo repositories.CompetitorRepository
	matchupRepo    repositories.MatchupRepository
}

func NewStandingsService(
	seasonRepo repositories.SeasonRepository,
	competitorRepo repositories.CompetitorRepository,
	matchupRepo repositories.MatchupRepository,
) StandingsService {
	return &standingsService{
		seasonRepo:     seasonRepo,
		competitorRepo: competitorRepo,
		matchupRepo:    matchupRepo,
	}
}

func (s *standingsService) GetStandings(ctx context.Context, seasonID int) ([]models.StandingEntry, error) {
	season, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to load season %d for standings: %w", seasonID, err)
	}

	roster, err := s.competitorRepo.ListRoster(ctx, season.SlotCapacity)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster for season %d: %w", seasonID, err)
	}

	// The in-progress week must not count, so a competitor's ongoing
	// match never affects their own qualification. The cutoff also never
	// passes the regular-season boundary: playoff results stay out of the
	// tally, so bracket seeds derived at the semifinal and final are the
	// same seeds that shaped round one.
	cutoff := season.CurrentWeek
	if firstPlayoffWeek := season.RegularWeeks + 1; cutoff > firstPlayoffWeek {
		cutoff = firstPlayoffWeek
	}

	entries := make([]models.StandingEntry, len(roster))

	g, gCtx := errgroup.WithContext(ctx)
	for i, competitor := range roster {
		i, competitor := i, competitor
		g.Go(func() error {
			matchups, err := s.matchupRepo.ListByCompetitorBeforeWeek(gCtx, seasonID, competitor.ID, cutoff)
			if err != nil {
				return fmt.Errorf("failed to load matchups for competitor %d: %w", competitor.ID, err)
			}
			entries[i] = tally(competitor, matchups)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Wins desc, then points desc; roster (slot) order breaks full ties.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Wins != entries[j].Wins {
			return entries[i].Wins > entries[j].Wins
		}
		return entries[i].TotalPoints > entries[j].TotalPoints
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

func tally(competitor *models.Competitor, matchups []*models.Matchup) models.StandingEntry {
	entry := models.StandingEntry{
		CompetitorID: competitor.ID,
		Competitor:   competitor,
	}
	for _, m := range matchups {
		if m.WinnerCompetitorID != nil {
			if *m.WinnerCompetitorID == competitor.ID {
				entry.Wins++
			} else {
				entry.Losses++
			}
		}
		if score := m.ScoreFor(competitor.ID); score != nil {
			entry.TotalPoints += *score
		}
	}
	return entry
}
