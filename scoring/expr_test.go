package scoring

import (
	"errors"
	"math"
	"testing"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		expr string
		x    float64
		want float64
	}{
		{expr: "x / 300", x: 900, want: 3},
		{expr: "x", x: 7.5, want: 7.5},
		{expr: "42", x: 0, want: 42},
		{expr: "-x", x: 4, want: -4},
		{expr: "+x", x: 4, want: 4},
		{expr: "(x + 10) * 2", x: 5, want: 30},
		{expr: "x - 0.5", x: 1, want: 0.5},
		{expr: "value / 40", x: 80, want: 2}, // any identifier is the raw value
		{expr: "x / 2 + x / 4", x: 8, want: 6},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Evaluate(tt.expr, tt.x)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		x       float64
		wantErr error
	}{
		{name: "syntax error", expr: "x +* 2", wantErr: ErrMalformedExpression},
		{name: "empty expression", expr: "", wantErr: ErrMalformedExpression},
		{name: "function call", expr: "max(x, 1)", wantErr: ErrMalformedExpression},
		{name: "modulo not supported", expr: "x % 2", x: 5, wantErr: ErrMalformedExpression},
		{name: "string literal", expr: `"x"`, wantErr: ErrMalformedExpression},
		{name: "division by zero", expr: "x / 0", x: 1, wantErr: ErrNonFiniteResult},
		{name: "nan result", expr: "0 / 0", wantErr: ErrNonFiniteResult},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(tt.expr, tt.x)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}
