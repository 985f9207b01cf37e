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
	ErrSubmissionNotFound          = errors.New("metric submission not found")
	ErrSubmissionCompetitorInvalid = errors.New("submission competitor conflict or invalid")
	ErrSubmissionMetricInvalid     = errors.New("submission metric conflict or invalid")
)

type SubmissionRepository interface {
	// Upsert writes the submission, replacing any earlier value for the
	// same (competitor, metric, season, week): latest wins.
	Upsert(ctx context.Context, submission *models.MetricSubmission) error
	ListBySeasonWeek(ctx context.Context, seasonID, week int) ([]*models.MetricSubmission, error)
	ListByCompetitorWeek(ctx context.Context, competitorID, seasonID, week int) ([]*models.MetricSubmission, error)
}

type postgresSubmissionRepository struct {
	db *sql.DB
}

func NewPostgresSubmissionRepository(db *sql.DB) SubmissionRepository {
	return &postgresSubmissionRepository{db: db}
}

const submissionColumns = `id, competitor_id, metric_id, season_id, week, value, created_at`

func (r *postgresSubmissionRepository) Upsert(ctx context.Context, submission *models.MetricSubmission) error {
	query := `
		INSERT INTO metric_submissions (competitor_id, metric_id, season_id, week, value)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (competitor_id, metric_id, season_id, week)
		DO UPDATE SET value = EXCLUDED.value
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		submission.CompetitorID,
		submission.MetricID,
		submission.SeasonID,
		submission.Week,
		submission.Value,
	).Scan(&submission.ID, &submission.CreatedAt)
	return r.handleSubmissionError(err)
}

func (r *postgresSubmissionRepository) ListBySeasonWeek(ctx context.Context, seasonID, week int) ([]*models.MetricSubmission, error) {
	query := `
		SELECT ` + submissionColumns + `
		FROM metric_submissions
		WHERE season_id = $1 AND week = $2
		ORDER BY competitor_id ASC, metric_id ASC`
	return r.listSubmissions(ctx, query, seasonID, week)
}

func (r *postgresSubmissionRepository) ListByCompetitorWeek(ctx context.Context, competitorID, seasonID, week int) ([]*models.MetricSubmission, error) {
	query := `
		SELECT ` + submissionColumns + `
		FROM metric_submissions
		WHERE competitor_id = $1 AND season_id = $2 AND week = $3
		ORDER BY metric_id ASC`
	return r.listSubmissions(ctx, query, competitorID, seasonID, week)
}

func (r *postgresSubmissionRepository) listSubmissions(ctx context.Context, query string, args ...interface{}) ([]*models.MetricSubmission, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query metric submissions: %w", err)
	}
	defer rows.Close()

	submissions := make([]*models.MetricSubmission, 0)
	for rows.Next() {
		var s models.MetricSubmission
		if scanErr := rows.Scan(
			&s.ID,
			&s.CompetitorID,
			&s.MetricID,
			&s.SeasonID,
			&s.Week,
			&s.Value,
			&s.CreatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan metric submission row: %w", scanErr)
		}
		submissions = append(submissions, &s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during submission rows iteration: %w", err)
	}
	return submissions, nil
}

func (r *postgresSubmissionRepository) handleSubmissionError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Constraint {
		case "metric_submissions_competitor_id_fkey":
			return ErrSubmissionCompetitorInvalid
		case "metric_submissions_metric_id_fkey":
			return ErrSubmissionMetricInvalid
		}
	}
	return err
}
