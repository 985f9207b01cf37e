package services

import "errors"

// Shared service errors, mapped to HTTP statuses by the handler layer.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Conflict: the week already has matchups and the caller did not ask
	// to overwrite them.
	ErrMatchupsAlreadyExist = errors.New("matchups already exist for this week, overwrite required to regenerate")

	// Validation and business rules.
	ErrInvalidInput       = errors.New("invalid input")
	ErrWeekOutOfSeason    = errors.New("week is outside the season's schedulable range")
	ErrMetricInactive     = errors.New("metric is not active")
	ErrNothingToShuffle   = errors.New("no matchups exist for this week to shuffle")
	ErrForbiddenOperation = errors.New("operation not allowed for the current user")

	// External collaborators that may be absent in a deployment.
	ErrCoachNotConfigured     = errors.New("coach text-generation API is not configured")
	ErrReportingNotConfigured = errors.New("report object storage is not configured")
)
