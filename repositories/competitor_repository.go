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
	ErrCompetitorNotFound      = errors.New("competitor not found")
	ErrCompetitorEmailConflict = errors.New("competitor email conflict")
	ErrCompetitorSlotConflict  = errors.New("competitor slot number conflict")
)

type CompetitorRepository interface {
	Create(ctx context.Context, competitor *models.Competitor) error
	GetByID(ctx context.Context, id int) (*models.Competitor, error)
	GetByEmail(ctx context.Context, email string) (*models.Competitor, error)
	// ListRoster returns the active scheduling roster: competitors with a
	// non-null slot number within the given capacity, ordered by slot.
	ListRoster(ctx context.Context, slotCapacity int) ([]*models.Competitor, error)
	UpdateSlot(ctx context.Context, id int, slotNumber *int) error
}

type postgresCompetitorRepository struct {
	db *sql.DB
}

func NewPostgresCompetitorRepository(db *sql.DB) CompetitorRepository {
	return &postgresCompetitorRepository{db: db}
}

const competitorColumns = `id, first_name, last_name, email, password_hash, role, slot_number, created_at`

func (r *postgresCompetitorRepository) Create(ctx context.Context, competitor *models.Competitor) error {
	query := `
		INSERT INTO competitors (first_name, last_name, email, password_hash, role, slot_number)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		competitor.FirstName,
		competitor.LastName,
		competitor.Email,
		competitor.PasswordHash,
		competitor.Role,
		competitor.SlotNumber,
	).Scan(&competitor.ID, &competitor.CreatedAt)

	return r.handleCompetitorError(err)
}

func (r *postgresCompetitorRepository) GetByID(ctx context.Context, id int) (*models.Competitor, error) {
	query := `SELECT ` + competitorColumns + ` FROM competitors WHERE id = $1`
	return r.scanCompetitor(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresCompetitorRepository) GetByEmail(ctx context.Context, email string) (*models.Competitor, error) {
	query := `SELECT ` + competitorColumns + ` FROM competitors WHERE email = $1`
	return r.scanCompetitor(r.db.QueryRowContext(ctx, query, email))
}

func (r *postgresCompetitorRepository) ListRoster(ctx context.Context, slotCapacity int) ([]*models.Competitor, error) {
	query := `
		SELECT ` + competitorColumns + `
		FROM competitors
		WHERE role = $1 AND slot_number IS NOT NULL AND slot_number <= $2
		ORDER BY slot_number ASC`

	rows, err := r.db.QueryContext(ctx, query, models.RoleCompetitor, slotCapacity)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster: %w", err)
	}
	defer rows.Close()

	roster := make([]*models.Competitor, 0)
	for rows.Next() {
		c, scanErr := r.scanCompetitor(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		roster = append(roster, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during roster rows iteration: %w", err)
	}
	return roster, nil
}

func (r *postgresCompetitorRepository) UpdateSlot(ctx context.Context, id int, slotNumber *int) error {
	query := `UPDATE competitors SET slot_number = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, slotNumber, id)
	if err != nil {
		return r.handleCompetitorError(err)
	}
	return checkAffectedRows(result, ErrCompetitorNotFound)
}

func (r *postgresCompetitorRepository) scanCompetitor(row interface{ Scan(...interface{}) error }) (*models.Competitor, error) {
	var c models.Competitor
	err := row.Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.PasswordHash,
		&c.Role,
		&c.SlotNumber,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCompetitorNotFound
		}
		return nil, fmt.Errorf("failed to scan competitor: %w", err)
	}
	return &c, nil
}

func (r *postgresCompetitorRepository) handleCompetitorError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Constraint {
		case "competitors_email_key":
			return ErrCompetitorEmailConflict
		case "competitors_slot_number_key":
			return ErrCompetitorSlotConflict
		}
	}
	return err
}
