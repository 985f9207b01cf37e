package models

import "time"

// Matchup is one head-to-head pairing for a season week.
// Scores stay nil until the score engine runs; the winner stays nil until
// both scores exist and differ (equal scores are a tie, not an error).
type Matchup struct {
	ID                 int       `json:"id"`
	SeasonID           int       `json:"season_id"`
	Week               int       `json:"week"`
	ACompetitorID      int       `json:"a_competitor_id"`
	BCompetitorID      int       `json:"b_competitor_id"`
	AScore             *float64  `json:"a_score,omitempty"`
	BScore             *float64  `json:"b_score,omitempty"`
	WinnerCompetitorID *int      `json:"winner_competitor_id,omitempty"`
	Playoff            bool      `json:"playoff"`
	CreatedAt          time.Time `json:"created_at"`

	// Optional linked data, populated by services for API responses.
	ACompetitor *Competitor `json:"a_competitor,omitempty"`
	BCompetitor *Competitor `json:"b_competitor,omitempty"`
}

// Involves reports whether the competitor plays in this matchup.
func (m *Matchup) Involves(competitorID int) bool {
	return m.ACompetitorID == competitorID || m.BCompetitorID == competitorID
}

// ScoreFor returns the competitor's own score field, or nil if they are
// not part of the matchup.
func (m *Matchup) ScoreFor(competitorID int) *float64 {
	switch competitorID {
	case m.ACompetitorID:
		return m.AScore
	case m.BCompetitorID:
		return m.BScore
	}
	return nil
}
