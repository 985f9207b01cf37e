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
	ErrMetricNotFound     = errors.New("metric definition not found")
	ErrMetricNameConflict = errors.New("metric name conflict")
)

type MetricRepository interface {
	CreateDefinition(ctx context.Context, def *models.MetricDefinition) error
	GetDefinitionByID(ctx context.Context, id int) (*models.MetricDefinition, error)
	ListDefinitions(ctx context.Context, activeOnly bool) ([]*models.MetricDefinition, error)
	UpdateDefinition(ctx context.Context, def *models.MetricDefinition) error
}

type postgresMetricRepository struct {
	db *sql.DB
}

func NewPostgresMetricRepository(db *sql.DB) MetricRepository {
	return &postgresMetricRepository{db: db}
}

const metricColumns = `id, name, unit, weight, active, conversion_expr, created_at`

func (r *postgresMetricRepository) CreateDefinition(ctx context.Context, def *models.MetricDefinition) error {
	query := `
		INSERT INTO metric_definitions (name, unit, weight, active, conversion_expr)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		def.Name,
		def.Unit,
		def.Weight,
		def.Active,
		def.ConversionExpr,
	).Scan(&def.ID, &def.CreatedAt)
	return r.handleMetricError(err)
}

func (r *postgresMetricRepository) GetDefinitionByID(ctx context.Context, id int) (*models.MetricDefinition, error) {
	query := `SELECT ` + metricColumns + ` FROM metric_definitions WHERE id = $1`
	return r.scanDefinition(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresMetricRepository) ListDefinitions(ctx context.Context, activeOnly bool) ([]*models.MetricDefinition, error) {
	query := `SELECT ` + metricColumns + ` FROM metric_definitions`
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query metric definitions: %w", err)
	}
	defer rows.Close()

	defs := make([]*models.MetricDefinition, 0)
	for rows.Next() {
		d, scanErr := r.scanDefinition(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		defs = append(defs, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during metric definition rows iteration: %w", err)
	}
	return defs, nil
}

func (r *postgresMetricRepository) UpdateDefinition(ctx context.Context, def *models.MetricDefinition) error {
	query := `
		UPDATE metric_definitions
		SET name = $1, unit = $2, weight = $3, active = $4, conversion_expr = $5
		WHERE id = $6`
	result, err := r.db.ExecContext(ctx, query,
		def.Name, def.Unit, def.Weight, def.Active, def.ConversionExpr, def.ID)
	if err != nil {
		return r.handleMetricError(err)
	}
	return checkAffectedRows(result, ErrMetricNotFound)
}

func (r *postgresMetricRepository) scanDefinition(row interface{ Scan(...interface{}) error }) (*models.MetricDefinition, error) {
	var d models.MetricDefinition
	err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Unit,
		&d.Weight,
		&d.Active,
		&d.ConversionExpr,
		&d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMetricNotFound
		}
		return nil, fmt.Errorf("failed to scan metric definition: %w", err)
	}
	return &d, nil
}

func (r *postgresMetricRepository) handleMetricError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Constraint == "metric_definitions_name_key" {
			return ErrMetricNameConflict
		}
	}
	return err
}
