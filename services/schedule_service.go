package services

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/bowen700/fantasy-workplace/live"
	"github.com/bowen700/fantasy-workplace/models"
	"github.com/bowen700/fantasy-workplace/repositories"
	"github.com/bowen700/fantasy-workplace/scheduling"
)

type ScheduleService interface {
	// GenerateMatchups builds the pairings for one season week: round-robin
	// below the regular-season boundary, playoff bracket above it. Existing
	// matchups are rejected unless overwrite is set, in which case the week
	// is deleted and recreated in one transaction. A playoff round whose
	// prerequisite round lacks winners yields an empty list, not an error.
	// Scores are recomputed immediately after generation.
	GenerateMatchups(ctx context.Context, seasonID, week int, overwrite bool) ([]*models.Matchup, error)

	// ShuffleWeek uniformly re-shuffles one week's existing participants,
	// with no history awareness, then recomputes that week's scores.
	ShuffleWeek(ctx context.Context, seasonID, week int) ([]*models.Matchup, error)

	// ShuffleSeason re-pairs every regular-season week with the
	// repeat-minimizing matching and recomputes scores for each week.
	ShuffleSeason(ctx context.Context, seasonID int) error
}

type scheduleService struct {
	db             *sql.DB
	seasonRepo     repositories.SeasonRepository
	competitorRepo repositories.CompetitorRepository
	matchupRepo    repositories.MatchupRepository
	standings      StandingsService
	scores         ScoreService
	hub            *live.Hub
	rng            *rand.Rand
}

func NewScheduleService(
	db *sql.DB,
	seasonRepo repositories.SeasonRepository,
	competitorRepo repositories.CompetitorRepository,
	matchupRepo repositories.MatchupRepository,
	standings StandingsService,
	scores ScoreService,
	hub *live.Hub,
) ScheduleService {
	return &scheduleService{
		db:             db,
		seasonRepo:     seasonRepo,
		competitorRepo: competitorRepo,
		matchupRepo:    matchupRepo,
		standings:      standings,
		scores:         scores,
		hub:            hub,
		rng:            rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *scheduleService) GenerateMatchups(ctx context.Context, seasonID, week int, overwrite bool) ([]*models.Matchup, error) {
	season, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to load season %d: %w", seasonID, err)
	}
	if week < 1 || week > season.TotalWeeks() {
		return nil, fmt.Errorf("%w: week %d of season %d", ErrWeekOutOfSeason, week, seasonID)
	}

	existing, err := s.matchupRepo.ListBySeasonWeek(ctx, seasonID, week)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing matchups: %w", err)
	}
	if len(existing) > 0 && !overwrite {
		return nil, ErrMatchupsAlreadyExist
	}

	playoffRound := season.PlayoffOffset(week)

	var pairings []scheduling.Pairing
	if playoffRound == 0 {
		roster, rosterErr := s.competitorRepo.ListRoster(ctx, season.SlotCapacity)
		if rosterErr != nil {
			return nil, fmt.Errorf("failed to load roster for season %d: %w", seasonID, rosterErr)
		}
		pairings, err = scheduling.RoundRobinPairings(roster, week)
		if err != nil {
			return nil, err
		}
	} else {
		pairings, err = s.playoffPairings(ctx, seasonID, week, playoffRound)
		if err != nil {
			return nil, err
		}
		if len(pairings) == 0 {
			// Prerequisite round not fully scored yet; expected transient
			// state, the caller retries later.
			return []*models.Matchup{}, nil
		}
	}

	matchups := make([]*models.Matchup, 0, len(pairings))
	for _, p := range pairings {
		matchups = append(matchups, &models.Matchup{
			SeasonID:      seasonID,
			Week:          week,
			ACompetitorID: p.A,
			BCompetitorID: p.B,
			Playoff:       playoffRound > 0,
		})
	}

	if err := s.replaceWeek(ctx, seasonID, week, matchups); err != nil {
		return nil, err
	}
	log.Printf("Generated %d matchups for season %d week %d (playoff round %d)",
		len(matchups), seasonID, week, playoffRound)

	if err := s.scores.RecalculateScores(ctx, seasonID, week); err != nil {
		return nil, fmt.Errorf("matchups generated but scoring failed: %w", err)
	}
	s.broadcastMatchups(seasonID, week)
	return matchups, nil
}

func (s *scheduleService) playoffPairings(ctx context.Context, seasonID, week, playoffRound int) ([]scheduling.Pairing, error) {
	// Seeds come from standings re-derived at every round; only round-one
	// seeding determines bracket position, later rounds just consult the
	// prior round's winners.
	seeds, err := s.standings.GetStandings(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to derive seeds for season %d: %w", seasonID, err)
	}

	var prior []*models.Matchup
	if playoffRound > scheduling.RoundQuarterfinal {
		prior, err = s.matchupRepo.ListBySeasonWeek(ctx, seasonID, week-1)
		if err != nil {
			return nil, fmt.Errorf("failed to load prior playoff round: %w", err)
		}
	}

	return scheduling.PlayoffPairings(playoffRound, seeds, prior)
}

// replaceWeek deletes any existing matchups for the week and creates the
// new set inside one transaction, so a failed write never leaves half a
// week behind.
func (s *scheduleService) replaceWeek(ctx context.Context, seasonID, week int, matchups []*models.Matchup) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	// Named return so a commit failure surfaces to the caller instead of
	// being assigned after the result has already been copied out.
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Printf("Error during rollback: %v. Original error: %v", rbErr, err)
			}
		} else if cErr := tx.Commit(); cErr != nil {
			err = fmt.Errorf("failed to commit matchup generation: %w", cErr)
		}
	}()

	if err = s.matchupRepo.DeleteBySeasonWeek(ctx, tx, seasonID, week); err != nil {
		return err
	}
	if err = s.matchupRepo.CreateBatch(ctx, tx, matchups); err != nil {
		return err
	}
	return nil
}

func (s *scheduleService) ShuffleWeek(ctx context.Context, seasonID, week int) ([]*models.Matchup, error) {
	matchups, err := s.matchupRepo.ListBySeasonWeek(ctx, seasonID, week)
	if err != nil {
		return nil, fmt.Errorf("failed to load matchups for season %d week %d: %w", seasonID, week, err)
	}
	if len(matchups) == 0 {
		return nil, ErrNothingToShuffle
	}

	ids := make([]int, 0, len(matchups)*2)
	for _, m := range matchups {
		ids = append(ids, m.ACompetitorID, m.BCompetitorID)
	}
	pairings, err := scheduling.RandomPairings(ids, s.rng)
	if err != nil {
		return nil, err
	}

	if err := s.patchWeek(ctx, seasonID, week, matchups, pairings); err != nil {
		return nil, err
	}

	shuffled, err := s.matchupRepo.ListBySeasonWeek(ctx, seasonID, week)
	if err != nil {
		return nil, fmt.Errorf("failed to reload shuffled matchups: %w", err)
	}
	return shuffled, nil
}

func (s *scheduleService) ShuffleSeason(ctx context.Context, seasonID int) error {
	season, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return fmt.Errorf("failed to load season %d: %w", seasonID, err)
	}
	roster, err := s.competitorRepo.ListRoster(ctx, season.SlotCapacity)
	if err != nil {
		return fmt.Errorf("failed to load roster for season %d: %w", seasonID, err)
	}

	weeks, err := scheduling.MinRepeatSeason(roster, season.RegularWeeks)
	if err != nil {
		return err
	}

	for i, pairings := range weeks {
		week := i + 1
		matchups, listErr := s.matchupRepo.ListBySeasonWeek(ctx, seasonID, week)
		if listErr != nil {
			return fmt.Errorf("failed to load matchups for week %d: %w", week, listErr)
		}
		if len(matchups) == 0 {
			continue
		}
		if patchErr := s.patchWeek(ctx, seasonID, week, matchups, pairings); patchErr != nil {
			return patchErr
		}
	}
	log.Printf("Season %d reshuffled across %d regular weeks", seasonID, season.RegularWeeks)
	return nil
}

// patchWeek writes new pairings into the week's existing matchup rows,
// matched one-to-one by position, then recomputes the week's scores.
func (s *scheduleService) patchWeek(ctx context.Context, seasonID, week int, matchups []*models.Matchup, pairings []scheduling.Pairing) error {
	if len(pairings) != len(matchups) {
		return fmt.Errorf("pairing count %d does not match matchup count %d for week %d",
			len(pairings), len(matchups), week)
	}
	for i, m := range matchups {
		if err := s.matchupRepo.UpdateParticipants(ctx, nil, m.ID, pairings[i].A, pairings[i].B); err != nil {
			return fmt.Errorf("failed to repair matchup %d: %w", m.ID, err)
		}
	}
	if err := s.scores.RecalculateScores(ctx, seasonID, week); err != nil {
		return fmt.Errorf("matchups repaired but scoring failed for week %d: %w", week, err)
	}
	s.broadcastMatchups(seasonID, week)
	return nil
}

func (s *scheduleService) broadcastMatchups(seasonID, week int) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastToRoom(live.SeasonRoom(seasonID), live.Message{
		Type:    live.EventMatchupsUpdated,
		Payload: map[string]int{"season_id": seasonID, "week": week},
	})
}
