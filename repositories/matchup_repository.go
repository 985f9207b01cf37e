package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bowen700/fantasy-workplace/models"
	"github.com/lib/pq"
)

var (
	ErrMatchupNotFound          = errors.New("matchup not found")
	ErrMatchupCompetitorInvalid = errors.New("matchup competitor conflict or invalid")
	ErrMatchupSelfPairing       = errors.New("matchup cannot pair a competitor against themselves")
)

type MatchupRepository interface {
	Create(ctx context.Context, exec SQLExecutor, matchup *models.Matchup) error
	CreateBatch(ctx context.Context, exec SQLExecutor, matchups []*models.Matchup) error
	GetByID(ctx context.Context, id int) (*models.Matchup, error)
	ListBySeasonWeek(ctx context.Context, seasonID, week int) ([]*models.Matchup, error)
	// ListByCompetitorBeforeWeek returns the competitor's matchups from
	// weeks strictly before the given week, the span standings count.
	ListByCompetitorBeforeWeek(ctx context.Context, seasonID, competitorID, beforeWeek int) ([]*models.Matchup, error)
	UpdateScores(ctx context.Context, id int, aScore, bScore *float64, winnerCompetitorID *int) error
	UpdateParticipants(ctx context.Context, exec SQLExecutor, id int, aCompetitorID, bCompetitorID int) error
	DeleteBySeasonWeek(ctx context.Context, exec SQLExecutor, seasonID, week int) error
}

type postgresMatchupRepository struct {
	db *sql.DB
}

func NewPostgresMatchupRepository(db *sql.DB) MatchupRepository {
	return &postgresMatchupRepository{db: db}
}

func (r *postgresMatchupRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const matchupColumns = `id, season_id, week, a_competitor_id, b_competitor_id, a_score, b_score, winner_competitor_id, playoff, created_at`

const insertMatchupQuery = `
	INSERT INTO matchups (season_id, week, a_competitor_id, b_competitor_id, a_score, b_score, winner_competitor_id, playoff)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING id, created_at`

func (r *postgresMatchupRepository) Create(ctx context.Context, exec SQLExecutor, matchup *models.Matchup) error {
	executor := r.getExecutor(exec)
	err := executor.QueryRowContext(ctx, insertMatchupQuery,
		matchup.SeasonID,
		matchup.Week,
		matchup.ACompetitorID,
		matchup.BCompetitorID,
		matchup.AScore,
		matchup.BScore,
		matchup.WinnerCompetitorID,
		matchup.Playoff,
	).Scan(&matchup.ID, &matchup.CreatedAt)
	return r.handleMatchupError(err)
}

func (r *postgresMatchupRepository) CreateBatch(ctx context.Context, exec SQLExecutor, matchups []*models.Matchup) error {
	if len(matchups) == 0 {
		return nil
	}
	executor := r.getExecutor(exec)
	for _, m := range matchups {
		err := executor.QueryRowContext(ctx, insertMatchupQuery,
			m.SeasonID,
			m.Week,
			m.ACompetitorID,
			m.BCompetitorID,
			m.AScore,
			m.BScore,
			m.WinnerCompetitorID,
			m.Playoff,
		).Scan(&m.ID, &m.CreatedAt)
		if err != nil {
			return fmt.Errorf("batch create failed for pairing %d vs %d: %w",
				m.ACompetitorID, m.BCompetitorID, r.handleMatchupError(err))
		}
	}
	return nil
}

func (r *postgresMatchupRepository) GetByID(ctx context.Context, id int) (*models.Matchup, error) {
	query := `SELECT ` + matchupColumns + ` FROM matchups WHERE id = $1`
	return r.scanMatchup(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresMatchupRepository) ListBySeasonWeek(ctx context.Context, seasonID, week int) ([]*models.Matchup, error) {
	query := `
		SELECT ` + matchupColumns + `
		FROM matchups
		WHERE season_id = $1 AND week = $2
		ORDER BY id ASC`
	return r.listMatchups(ctx, query, seasonID, week)
}

func (r *postgresMatchupRepository) ListByCompetitorBeforeWeek(ctx context.Context, seasonID, competitorID, beforeWeek int) ([]*models.Matchup, error) {
	query := `
		SELECT ` + matchupColumns + `
		FROM matchups
		WHERE season_id = $1 AND week < $3
		  AND (a_competitor_id = $2 OR b_competitor_id = $2)
		ORDER BY week ASC, id ASC`
	return r.listMatchups(ctx, query, seasonID, competitorID, beforeWeek)
}

func (r *postgresMatchupRepository) UpdateScores(ctx context.Context, id int, aScore, bScore *float64, winnerCompetitorID *int) error {
	query := `
		UPDATE matchups
		SET a_score = $1, b_score = $2, winner_competitor_id = $3
		WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, aScore, bScore, winnerCompetitorID, id)
	if err != nil {
		return r.handleMatchupError(err)
	}
	return checkAffectedRows(result, ErrMatchupNotFound)
}

func (r *postgresMatchupRepository) UpdateParticipants(ctx context.Context, exec SQLExecutor, id int, aCompetitorID, bCompetitorID int) error {
	executor := r.getExecutor(exec)
	query := `UPDATE matchups SET a_competitor_id = $1, b_competitor_id = $2 WHERE id = $3`
	result, err := executor.ExecContext(ctx, query, aCompetitorID, bCompetitorID, id)
	if err != nil {
		return r.handleMatchupError(err)
	}
	return checkAffectedRows(result, ErrMatchupNotFound)
}

func (r *postgresMatchupRepository) DeleteBySeasonWeek(ctx context.Context, exec SQLExecutor, seasonID, week int) error {
	executor := r.getExecutor(exec)
	query := `DELETE FROM matchups WHERE season_id = $1 AND week = $2`
	_, err := executor.ExecContext(ctx, query, seasonID, week)
	if err != nil {
		return fmt.Errorf("failed to delete matchups for season %d week %d: %w", seasonID, week, err)
	}
	return nil
}

func (r *postgresMatchupRepository) listMatchups(ctx context.Context, query string, args ...interface{}) ([]*models.Matchup, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matchups: %w", err)
	}
	defer rows.Close()

	matchups := make([]*models.Matchup, 0)
	for rows.Next() {
		m, scanErr := r.scanMatchup(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		matchups = append(matchups, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during matchup rows iteration: %w", err)
	}
	return matchups, nil
}

func (r *postgresMatchupRepository) scanMatchup(row interface{ Scan(...interface{}) error }) (*models.Matchup, error) {
	var m models.Matchup
	err := row.Scan(
		&m.ID,
		&m.SeasonID,
		&m.Week,
		&m.ACompetitorID,
		&m.BCompetitorID,
		&m.AScore,
		&m.BScore,
		&m.WinnerCompetitorID,
		&m.Playoff,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchupNotFound
		}
		return nil, fmt.Errorf("failed to scan matchup: %w", err)
	}
	return &m, nil
}

func (r *postgresMatchupRepository) handleMatchupError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Constraint {
		case "matchups_a_competitor_id_fkey", "matchups_b_competitor_id_fkey", "matchups_winner_competitor_id_fkey":
			return ErrMatchupCompetitorInvalid
		case "matchups_distinct_sides_check":
			return ErrMatchupSelfPairing
		}
	}
	return err
}
