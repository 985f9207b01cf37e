package scoring

import (
	"errors"
	"math"
	"testing"

	"github.com/bowen700/fantasy-workplace/models"
)

func strPtr(s string) *string { return &s }

func activeMetric(id int, name string, weight float64) *models.MetricDefinition {
	return &models.MetricDefinition{ID: id, Name: name, Weight: weight, Active: true}
}

func TestNew(t *testing.T) {
	for _, name := range []string{StrategyFixedDivisor, StrategyFormula, StrategyWeightedMinMax} {
		strategy, err := New(name)
		if err != nil {
			t.Fatalf("New(%q): unexpected error: %v", name, err)
		}
		if strategy.Name() != name {
			t.Errorf("New(%q).Name() = %q", name, strategy.Name())
		}
	}

	if _, err := New("elo"); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("New(unknown): got %v, want %v", err, ErrUnknownStrategy)
	}
}

func TestFixedDivisorScore(t *testing.T) {
	metrics := []*models.MetricDefinition{
		activeMetric(1, "GrossProfit", 1),
		activeMetric(2, "CallsMade", 1),
	}

	tests := []struct {
		name   string
		values map[int]float64
		want   float64
	}{
		{
			name:   "gross profit divided by 300",
			values: map[int]float64{1: 900},
			want:   3.0,
		},
		{
			name:   "two metrics sum",
			values: map[int]float64{1: 900, 2: 80},
			want:   5.0,
		},
		{
			name:   "no submissions scores zero",
			values: nil,
			want:   0,
		},
	}

	strategy := NewFixedDivisor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strategy.Score(Input{Metrics: metrics, Values: tt.values})
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFixedDivisorSkipsUnknownAndInactive(t *testing.T) {
	metrics := []*models.MetricDefinition{
		activeMetric(1, "UnknownMetric", 1),
		{ID: 2, Name: "GrossProfit", Weight: 1, Active: false},
	}
	got := NewFixedDivisor().Score(Input{
		Metrics: metrics,
		Values:  map[int]float64{1: 500, 2: 600},
	})
	if got != 0 {
		t.Errorf("got %v, want 0", got)
	}
}

func TestFormulaScore(t *testing.T) {
	tests := []struct {
		name   string
		metric *models.MetricDefinition
		values map[int]float64
		want   float64
	}{
		{
			name: "expression applied",
			metric: &models.MetricDefinition{
				ID: 1, Name: "Revenue", Active: true,
				ConversionExpr: strPtr("x / 500 + 1"),
			},
			values: map[int]float64{1: 1000},
			want:   3.0,
		},
		{
			name: "missing expression falls back to divisor table",
			metric: &models.MetricDefinition{
				ID: 1, Name: "GrossProfit", Active: true,
			},
			values: map[int]float64{1: 900},
			want:   3.0,
		},
		{
			name: "malformed expression contributes zero",
			metric: &models.MetricDefinition{
				ID: 1, Name: "Revenue", Active: true,
				ConversionExpr: strPtr("x +* 2"),
			},
			values: map[int]float64{1: 1000},
			want:   0,
		},
		{
			name: "division by zero contributes zero",
			metric: &models.MetricDefinition{
				ID: 1, Name: "Revenue", Active: true,
				ConversionExpr: strPtr("x / 0"),
			},
			values: map[int]float64{1: 1000},
			want:   0,
		},
		{
			name: "no submission contributes zero",
			metric: &models.MetricDefinition{
				ID: 1, Name: "Revenue", Active: true,
				ConversionExpr: strPtr("x / 500"),
			},
			values: nil,
			want:   0,
		},
	}

	strategy := NewFormula()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strategy.Score(Input{
				Metrics: []*models.MetricDefinition{tt.metric},
				Values:  tt.values,
			})
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWeightedMinMaxScore(t *testing.T) {
	metrics := []*models.MetricDefinition{activeMetric(1, "CallsMade", 2)}
	weekValues := map[int][]float64{1: {10, 20, 30}}

	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{name: "minimum normalizes to zero", value: 10, want: 0},
		{name: "midpoint normalizes to half", value: 20, want: 50},
		{name: "maximum normalizes to one", value: 30, want: 100},
	}

	strategy := NewWeightedMinMax()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strategy.Score(Input{
				Metrics:    metrics,
				Values:     map[int]float64{1: tt.value},
				WeekValues: weekValues,
			})
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWeightedMinMaxUniformFieldScoresMidpoint(t *testing.T) {
	// Everyone submitted the same value, so everyone gets the midpoint.
	metrics := []*models.MetricDefinition{activeMetric(1, "CallsMade", 1)}
	got := NewWeightedMinMax().Score(Input{
		Metrics:    metrics,
		Values:     map[int]float64{1: 40},
		WeekValues: map[int][]float64{1: {40, 40, 40}},
	})
	if math.Abs(got-50) > 1e-9 {
		t.Errorf("got %v, want 50", got)
	}
}

func TestWeightedMinMaxWeightShares(t *testing.T) {
	// Two metrics weighted 3:1; maxing both yields 75 + 25.
	metrics := []*models.MetricDefinition{
		activeMetric(1, "CallsMade", 3),
		activeMetric(2, "DealsWon", 1),
	}
	got := NewWeightedMinMax().Score(Input{
		Metrics:    metrics,
		Values:     map[int]float64{1: 50, 2: 4},
		WeekValues: map[int][]float64{1: {10, 50}, 2: {1, 4}},
	})
	if math.Abs(got-100) > 1e-9 {
		t.Errorf("got %v, want 100", got)
	}
}

func TestWeightedMinMaxZeroTotalWeight(t *testing.T) {
	metrics := []*models.MetricDefinition{activeMetric(1, "CallsMade", 0)}
	got := NewWeightedMinMax().Score(Input{
		Metrics:    metrics,
		Values:     map[int]float64{1: 40},
		WeekValues: map[int][]float64{1: {40}},
	})
	if got != 0 {
		t.Errorf("got %v, want 0", got)
	}
}

func TestAllStrategiesScoreZeroWithoutSubmissions(t *testing.T) {
	metrics := []*models.MetricDefinition{
		activeMetric(1, "GrossProfit", 1),
		activeMetric(2, "CallsMade", 2),
	}
	for _, name := range []string{StrategyFixedDivisor, StrategyFormula, StrategyWeightedMinMax} {
		strategy, err := New(name)
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		if got := strategy.Score(Input{Metrics: metrics}); got != 0 {
			t.Errorf("%s: got %v for empty submissions, want 0", name, got)
		}
	}
}
