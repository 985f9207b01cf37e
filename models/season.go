package models

import "time"

// PlayoffWeeks is fixed by the bracket design: quarterfinal, semifinal, final.
const PlayoffWeeks = 3

// Season is one run of the league. RegularWeeks round-robin weeks are
// followed by PlayoffWeeks bracket weeks. SlotCapacity bounds the valid
// slot numbers and must be even, since every pairing needs two sides.
type Season struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	RegularWeeks    int       `json:"regular_weeks"`
	CurrentWeek     int       `json:"current_week"`
	SlotCapacity    int       `json:"slot_capacity"`
	ScoringStrategy *string   `json:"scoring_strategy,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// TotalWeeks is the last schedulable week number.
func (s *Season) TotalWeeks() int {
	return s.RegularWeeks + PlayoffWeeks
}

// PlayoffOffset maps an absolute week to the playoff round number
// (1 = quarterfinal, 2 = semifinal, 3 = final), or 0 for regular weeks.
func (s *Season) PlayoffOffset(week int) int {
	if week <= s.RegularWeeks {
		return 0
	}
	return week - s.RegularWeeks
}
