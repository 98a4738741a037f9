// Package forecast projects failure risk over the 30-day study plan.
//
// The model is deliberately simple: expected mastery starts at the
// diagnostic fraction, ramps linearly by up to RampCap over the horizon and
// gains up to PracticeCap on days with a recorded practice score. Risk is
// the remaining gap to full mastery as a percentage.
package forecast

import "math"

const (
	// Horizon is the number of days in the plan and the curve length.
	Horizon = 30

	// RampCap is the mastery gained by the end of the horizon from study
	// alone.
	RampCap = 0.4

	// PracticeCap is the extra mastery a perfect practice score adds on
	// its day.
	PracticeCap = 0.1

	// DiagnosticMax is the number of questions in the diagnostic quiz.
	DiagnosticMax = 10

	// PracticeMax is the number of questions in a daily practice quiz.
	PracticeMax = 5
)

// RiskCurve returns Horizon risk values for days 1..Horizon, each in
// [0, 100] and rounded to one decimal place. Scores are out of
// DiagnosticMax and PracticeMax.
func RiskCurve(diagnostic int, daily map[int]int) []float64 {
	practice := make(map[int]float64, len(daily))
	for d, score := range daily {
		practice[d] = Fraction(score, PracticeMax)
	}
	return Curve(Fraction(diagnostic, DiagnosticMax), practice)
}

// Curve is RiskCurve for quizzes of any size: pre is the diagnostic
// fraction correct and practice maps a day to its fraction correct.
func Curve(pre float64, practice map[int]float64) []float64 {
	curve := make([]float64, Horizon)
	for d := 1; d <= Horizon; d++ {
		improvement := float64(d) / Horizon * RampCap
		perf := practice[d]

		mastery := math.Min(pre+improvement+perf*PracticeCap, 1.0)
		curve[d-1] = math.Max(0, round1((1-mastery)*100))
	}
	return curve
}

// Fraction is score/total clamped to [0, 1]. An empty quiz counts as 0.
func Fraction(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Min(math.Max(float64(score)/float64(total), 0), 1)
}

// Summary condenses a curve into its endpoints.
type Summary struct {
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	Reduction float64 `json:"reduction"`
	// Peak is the 1-based day with the highest risk. Ties go to the
	// earliest day.
	Peak int `json:"peak_day"`
}

// Summarize reports the start, end and total reduction of a curve.
func Summarize(curve []float64) Summary {
	if len(curve) == 0 {
		return Summary{}
	}
	s := Summary{
		Start: curve[0],
		End:   curve[len(curve)-1],
		Peak:  1,
	}
	s.Reduction = round1(s.Start - s.End)
	for i, v := range curve {
		if v > curve[s.Peak-1] {
			s.Peak = i + 1
		}
	}
	return s
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
