package models

// StandingEntry is derived from completed matchups, never stored.
// Rank is the 1-based position after sorting by wins desc, points desc;
// competitors that tie on both keep their roster order (stable sort).
type StandingEntry struct {
	CompetitorID int     `json:"competitor_id"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	TotalPoints  float64 `json:"total_points"`
	Rank         int     `json:"rank"`

	Competitor *Competitor `json:"competitor,omitempty"`
}
