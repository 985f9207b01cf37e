package models

import "time"

// MetricDefinition describes one KPI tracked by the league.
// ConversionExpr, when set, maps a raw value to points; it is a restricted
// arithmetic expression with a single free variable for the raw value.
type MetricDefinition struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	Unit           string    `json:"unit"`
	Weight         float64   `json:"weight"`
	Active         bool      `json:"active"`
	ConversionExpr *string   `json:"conversion_expr,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// MetricSubmission is one raw KPI value for a competitor in a season week.
// Submissions are upserted, so at most one row exists per
// (competitor, metric, season, week) and the latest value wins.
type MetricSubmission struct {
	ID           int       `json:"id"`
	CompetitorID int       `json:"competitor_id"`
	MetricID     int       `json:"metric_id"`
	SeasonID     int       `json:"season_id"`
	Week         int       `json:"week"`
	Value        float64   `json:"value"`
	CreatedAt    time.Time `json:"created_at"`
}
