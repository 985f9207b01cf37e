package scheduling

import (
	"github.com/bowen700/fantasy-workplace/models"
)

// RematchWeek returns the designated rivalry week for a roster of the given
// size: the week immediately after the natural round-robin cycle of N-1
// weeks. Its pairings are defined to equal week 1's pairings. This is a
// product rule, so the delegation is explicit rather than relying on the
// rotation formula wrapping around.
func RematchWeek(rosterSize int) int {
	return rosterSize
}

// RoundRobinPairings produces the N/2 pairings for one regular-season week
// using the circle method: the first competitor in slot order stays fixed,
// the remaining N-1 rotate right by (week-1) positions, and position i is
// paired against position N-1-i.
//
// Over N-1 consecutive weeks every competitor meets every other competitor
// exactly once. The roster must be even; odd rosters are rejected rather
// than silently dropping a competitor or fabricating a bye.
func RoundRobinPairings(roster []*models.Competitor, week int) ([]Pairing, error) {
	n := len(roster)
	if n < 2 {
		return nil, ErrRosterTooSmall
	}
	if n%2 != 0 {
		return nil, ErrOddRoster
	}
	if week < 1 {
		return nil, ErrInvalidWeek
	}

	if week == RematchWeek(n) {
		return RoundRobinPairings(roster, 1)
	}

	// Arrange the week: anchor at position 0, rotated tail behind it.
	rest := n - 1
	shift := (week - 1) % rest
	arranged := make([]*models.Competitor, n)
	arranged[0] = roster[0]
	for i := 0; i < rest; i++ {
		arranged[1+(i+shift)%rest] = roster[1+i]
	}

	pairings := make([]Pairing, 0, n/2)
	for i := 0; i < n/2; i++ {
		pairings = append(pairings, Pairing{
			A: arranged[i].ID,
			B: arranged[n-1-i].ID,
		})
	}
	return pairings, nil
}
