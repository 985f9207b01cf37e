package scoring

// Formula scores each active metric by evaluating its configured
// conversion expression with the raw value substituted for the free
// variable. A metric without an expression falls back to the fixed-divisor
// contribution; a malformed expression or a non-finite result contributes
// zero so one bad configuration never blocks a whole week's scoring.
type Formula struct {
	fallback *FixedDivisor
}

func NewFormula() *Formula {
	return &Formula{fallback: NewFixedDivisor()}
}

func (s *Formula) Name() string { return StrategyFormula }

func (s *Formula) Score(in Input) float64 {
	total := 0.0
	for _, m := range in.Metrics {
		if !m.Active {
			continue
		}
		value, ok := in.Values[m.ID]
		if !ok {
			continue
		}
		if m.ConversionExpr == nil || *m.ConversionExpr == "" {
			total += s.fallback.contribution(m.Name, in.Values, m.ID)
			continue
		}
		points, err := Evaluate(*m.ConversionExpr, value)
		if err != nil {
			continue
		}
		total += points
	}
	return total
}
