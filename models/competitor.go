package models

import "time"

type CompetitorRole string

const (
	RoleCompetitor CompetitorRole = "competitor"
	RoleObserver   CompetitorRole = "observer"
	RoleAdmin      CompetitorRole = "admin"
)

// Competitor is an employee account. Only competitors with a non-nil
// SlotNumber take part in scheduling; observers and waitlisted accounts
// are skipped by the roster query.
type Competitor struct {
	ID           int            `json:"id"`
	FirstName    string         `json:"first_name"`
	LastName     string         `json:"last_name"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"-"`
	Role         CompetitorRole `json:"role"`
	SlotNumber   *int           `json:"slot_number,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

func (c *Competitor) DisplayName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
