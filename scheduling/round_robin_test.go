package scheduling

import (
	"errors"
	"testing"

	"github.com/bowen700/fantasy-workplace/models"
)

func makeRoster(n int) []*models.Competitor {
	roster := make([]*models.Competitor, n)
	for i := 0; i < n; i++ {
		roster[i] = &models.Competitor{ID: i + 1}
	}
	return roster
}

func TestRoundRobinPairingsFourCompetitors(t *testing.T) {
	roster := makeRoster(4)

	tests := []struct {
		week int
		want []Pairing
	}{
		{week: 1, want: []Pairing{{A: 1, B: 4}, {A: 2, B: 3}}},
		{week: 2, want: []Pairing{{A: 1, B: 3}, {A: 4, B: 2}}},
		{week: 3, want: []Pairing{{A: 1, B: 2}, {A: 3, B: 4}}},
		// Rivalry week repeats week one.
		{week: 4, want: []Pairing{{A: 1, B: 4}, {A: 2, B: 3}}},
	}

	for _, tt := range tests {
		got, err := RoundRobinPairings(roster, tt.week)
		if err != nil {
			t.Fatalf("week %d: unexpected error: %v", tt.week, err)
		}
		if len(got) != len(tt.want) {
			t.Fatalf("week %d: got %d pairings, want %d", tt.week, len(got), len(tt.want))
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("week %d pairing %d: got %+v, want %+v", tt.week, i, got[i], tt.want[i])
			}
		}
	}
}

func TestRoundRobinPairingsCompleteness(t *testing.T) {
	// Over N-1 weeks every competitor must meet every other exactly once.
	for _, n := range []int{4, 6, 8, 12} {
		roster := makeRoster(n)
		seen := make(map[pairKey]int)

		for week := 1; week < n; week++ {
			pairings, err := RoundRobinPairings(roster, week)
			if err != nil {
				t.Fatalf("n=%d week=%d: unexpected error: %v", n, week, err)
			}
			if len(pairings) != n/2 {
				t.Fatalf("n=%d week=%d: got %d pairings, want %d", n, week, len(pairings), n/2)
			}
			scheduled := make(map[int]bool)
			for _, p := range pairings {
				if p.A == p.B {
					t.Fatalf("n=%d week=%d: self pairing %+v", n, week, p)
				}
				if scheduled[p.A] || scheduled[p.B] {
					t.Fatalf("n=%d week=%d: competitor scheduled twice in %+v", n, week, p)
				}
				scheduled[p.A], scheduled[p.B] = true, true
				seen[normalizePair(p.A, p.B)]++
			}
		}

		wantPairs := n * (n - 1) / 2
		if len(seen) != wantPairs {
			t.Errorf("n=%d: saw %d distinct pairs over the cycle, want %d", n, len(seen), wantPairs)
		}
		for pair, count := range seen {
			if count != 1 {
				t.Errorf("n=%d: pair %+v met %d times, want 1", n, pair, count)
			}
		}
	}
}

func TestRoundRobinPairingsErrors(t *testing.T) {
	tests := []struct {
		name    string
		roster  []*models.Competitor
		week    int
		wantErr error
	}{
		{name: "odd roster", roster: makeRoster(5), week: 1, wantErr: ErrOddRoster},
		{name: "empty roster", roster: nil, week: 1, wantErr: ErrRosterTooSmall},
		{name: "single competitor", roster: makeRoster(1), week: 1, wantErr: ErrRosterTooSmall},
		{name: "week zero", roster: makeRoster(4), week: 0, wantErr: ErrInvalidWeek},
		{name: "negative week", roster: makeRoster(4), week: -3, wantErr: ErrInvalidWeek},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RoundRobinPairings(tt.roster, tt.week)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRematchWeek(t *testing.T) {
	if got := RematchWeek(8); got != 8 {
		t.Errorf("RematchWeek(8) = %d, want 8", got)
	}

	// The rivalry week must reproduce week one exactly.
	roster := makeRoster(8)
	weekOne, err := RoundRobinPairings(roster, 1)
	if err != nil {
		t.Fatalf("week 1: %v", err)
	}
	rematch, err := RoundRobinPairings(roster, RematchWeek(len(roster)))
	if err != nil {
		t.Fatalf("rematch week: %v", err)
	}
	if len(rematch) != len(weekOne) {
		t.Fatalf("got %d rematch pairings, want %d", len(rematch), len(weekOne))
	}
	for i := range weekOne {
		if rematch[i] != weekOne[i] {
			t.Errorf("rematch pairing %d: got %+v, want %+v", i, rematch[i], weekOne[i])
		}
	}
}
