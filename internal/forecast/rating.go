package forecast

// Grade is a letter rating for a percentage score.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
)

// RiskLevel is a coarse label for the likelihood of failing.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// PassMark is the minimum percentage predicted to pass.
const PassMark = 50.0

// Rating is the band a percentage falls into.
type Rating struct {
	Percent float64   `json:"percent"`
	Grade   Grade     `json:"grade"`
	Risk    RiskLevel `json:"risk"`
	Pass    bool      `json:"pass"`
}

// Prediction returns "PASS" or "FAIL".
func (r Rating) Prediction() string {
	if r.Pass {
		return "PASS"
	}
	return "FAIL"
}

// Rate maps a percentage to its band.
func Rate(percent float64) Rating {
	r := Rating{Percent: round1(percent), Pass: percent >= PassMark}
	switch {
	case percent >= 85:
		r.Grade, r.Risk = GradeA, RiskLow
	case percent >= 70:
		r.Grade, r.Risk = GradeB, RiskLow
	case percent >= 50:
		r.Grade, r.Risk = GradeC, RiskMedium
	default:
		r.Grade, r.Risk = GradeD, RiskHigh
	}
	return r
}
