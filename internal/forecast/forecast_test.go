package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskCurve_Length(t *testing.T) {
	assert.Len(t, RiskCurve(4, nil), Horizon)
}

func TestRiskCurve_PerfectDiagnosticHasNoRisk(t *testing.T) {
	curve := RiskCurve(10, map[int]int{})
	assert.Equal(t, 0.0, curve[0])
	assert.Equal(t, 0.0, curve[Horizon-1])
	for _, v := range curve {
		assert.Equal(t, 0.0, v)
	}
}

func TestRiskCurve_ZeroDiagnostic(t *testing.T) {
	curve := RiskCurve(0, map[int]int{})
	assert.Equal(t, 98.7, curve[0])
	assert.Equal(t, 60.0, curve[Horizon-1])
}

func TestRiskCurve_PracticeLowersRiskOnItsDay(t *testing.T) {
	with := RiskCurve(5, map[int]int{1: 5})
	without := RiskCurve(5, map[int]int{})

	assert.Equal(t, 38.7, with[0])
	assert.Equal(t, 48.7, without[0])
	assert.Less(t, with[0], without[0])

	assert.Equal(t, without[1:], with[1:], "other days are unaffected")
}

func TestRiskCurve_RecordedZeroEqualsUnrecorded(t *testing.T) {
	assert.Equal(t, RiskCurve(3, nil), RiskCurve(3, map[int]int{7: 0}))
}

func TestRiskCurve_Properties(t *testing.T) {
	for diag := 0; diag <= DiagnosticMax; diag++ {
		curve := RiskCurve(diag, nil)
		for d, v := range curve {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 100.0)
			if d > 0 {
				assert.LessOrEqual(t, v, curve[d-1], "risk never rises without practice (diag=%d day=%d)", diag, d+1)
			}
		}
	}
}

func TestRiskCurve_MasteryCapped(t *testing.T) {
	curve := RiskCurve(9, map[int]int{30: 5})
	assert.Equal(t, 0.0, curve[Horizon-1])
}

func TestRiskCurve_IgnoresDaysOutsideHorizon(t *testing.T) {
	assert.Equal(t, RiskCurve(2, nil), RiskCurve(2, map[int]int{0: 5, 31: 5}))
}

func TestCurve_ScalesWithQuizSize(t *testing.T) {
	curve := Curve(Fraction(8, 20), map[int]float64{2: Fraction(5, 10)})
	assert.Equal(t, RiskCurve(4, map[int]int{2: 2}), curve)
	assert.Equal(t, 58.7, curve[0])
	assert.Equal(t, 20.0, curve[Horizon-1])
}

func TestFraction(t *testing.T) {
	assert.Equal(t, 0.4, Fraction(8, 20))
	assert.Equal(t, 0.0, Fraction(3, 0))
	assert.Equal(t, 1.0, Fraction(7, 5))
	assert.Equal(t, 0.0, Fraction(-1, 5))
}

func TestSummarize(t *testing.T) {
	s := Summarize(RiskCurve(0, nil))
	assert.Equal(t, 98.7, s.Start)
	assert.Equal(t, 60.0, s.End)
	assert.Equal(t, 38.7, s.Reduction)
	assert.Equal(t, 1, s.Peak)

	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestSummarize_PeakAfterPracticeDip(t *testing.T) {
	curve := []float64{40, 30, 45, 20}
	s := Summarize(curve)
	require.Equal(t, 3, s.Peak)
}

func TestRate(t *testing.T) {
	tests := []struct {
		percent float64
		grade   Grade
		risk    RiskLevel
		pred    string
	}{
		{100, GradeA, RiskLow, "PASS"},
		{85, GradeA, RiskLow, "PASS"},
		{84.9, GradeB, RiskLow, "PASS"},
		{70, GradeB, RiskLow, "PASS"},
		{50, GradeC, RiskMedium, "PASS"},
		{49.9, GradeD, RiskHigh, "FAIL"},
		{0, GradeD, RiskHigh, "FAIL"},
	}

	for _, tt := range tests {
		r := Rate(tt.percent)
		assert.Equal(t, tt.grade, r.Grade, "percent %v", tt.percent)
		assert.Equal(t, tt.risk, r.Risk, "percent %v", tt.percent)
		assert.Equal(t, tt.pred, r.Prediction(), "percent %v", tt.percent)
	}
}
