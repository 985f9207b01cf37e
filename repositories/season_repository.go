package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bowen700/fantasy-workplace/models"
)

var ErrSeasonNotFound = errors.New("season not found")

type SeasonRepository interface {
	Create(ctx context.Context, season *models.Season) error
	GetByID(ctx context.Context, id int) (*models.Season, error)
	List(ctx context.Context) ([]*models.Season, error)
	UpdateCurrentWeek(ctx context.Context, id int, week int) error
}

type postgresSeasonRepository struct {
	db *sql.DB
}

func NewPostgresSeasonRepository(db *sql.DB) SeasonRepository {
	return &postgresSeasonRepository{db: db}
}

const seasonColumns = `id, name, regular_weeks, current_week, slot_capacity, scoring_strategy, created_at`

func (r *postgresSeasonRepository) Create(ctx context.Context, season *models.Season) error {
	query := `
		INSERT INTO seasons (name, regular_weeks, current_week, slot_capacity, scoring_strategy)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		season.Name,
		season.RegularWeeks,
		season.CurrentWeek,
		season.SlotCapacity,
		season.ScoringStrategy,
	).Scan(&season.ID, &season.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create season: %w", err)
	}
	return nil
}

func (r *postgresSeasonRepository) GetByID(ctx context.Context, id int) (*models.Season, error) {
	query := `SELECT ` + seasonColumns + ` FROM seasons WHERE id = $1`
	return r.scanSeason(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresSeasonRepository) List(ctx context.Context) ([]*models.Season, error) {
	query := `SELECT ` + seasonColumns + ` FROM seasons ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query seasons: %w", err)
	}
	defer rows.Close()

	seasons := make([]*models.Season, 0)
	for rows.Next() {
		s, scanErr := r.scanSeason(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		seasons = append(seasons, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during season rows iteration: %w", err)
	}
	return seasons, nil
}

func (r *postgresSeasonRepository) UpdateCurrentWeek(ctx context.Context, id int, week int) error {
	query := `UPDATE seasons SET current_week = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, week, id)
	if err != nil {
		return fmt.Errorf("failed to update season %d current week: %w", id, err)
	}
	return checkAffectedRows(result, ErrSeasonNotFound)
}

func (r *postgresSeasonRepository) scanSeason(row interface{ Scan(...interface{}) error }) (*models.Season, error) {
	var s models.Season
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.RegularWeeks,
		&s.CurrentWeek,
		&s.SlotCapacity,
		&s.ScoringStrategy,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeasonNotFound
		}
		return nil, fmt.Errorf("failed to scan season: %w", err)
	}
	return &s, nil
}
