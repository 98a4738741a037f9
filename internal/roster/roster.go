package roster

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	// MinMark and MaxMark bound a single unit test mark.
	MinMark = 0
	MaxMark = 20
)

var (
	// ErrEmptyRoster is returned when an operation needs at least one subject.
	ErrEmptyRoster = errors.New("no subjects entered")

	// ErrUnknownSubject is returned when marks are set for a subject that
	// was never added.
	ErrUnknownSubject = errors.New("unknown subject")

	// ErrMarkOutOfRange is returned for marks outside MinMark..MaxMark.
	ErrMarkOutOfRange = errors.New("mark out of range")
)

// Subject is a named subject with two unit test marks.
type Subject struct {
	Name string `json:"name"`
	UT1  int    `json:"ut1"`
	UT2  int    `json:"ut2"`
}

// Average returns the mean of the two unit test marks.
func (s Subject) Average() float64 {
	return float64(s.UT1+s.UT2) / 2
}

// Roster is the ordered list of subjects in insertion order.
// Methods never mutate the receiver; they return an updated copy.
type Roster []Subject

// Add appends new subjects with zero marks. Names are trimmed, blanks are
// dropped, and names already present are ignored, so adding the same name
// twice is a no-op.
func (r Roster) Add(names ...string) Roster {
	out := slices.Clone(r)
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if out.Index(name) >= 0 {
			continue
		}
		out = append(out, Subject{Name: name})
	}
	return out
}

// SetMarks replaces both marks of an existing subject.
func (r Roster) SetMarks(name string, ut1, ut2 int) (Roster, error) {
	i := r.Index(name)
	if i < 0 {
		return r, fmt.Errorf("%w: %q", ErrUnknownSubject, name)
	}
	if err := checkMark("UT1", ut1); err != nil {
		return r, err
	}
	if err := checkMark("UT2", ut2); err != nil {
		return r, err
	}
	out := slices.Clone(r)
	out[i].UT1 = ut1
	out[i].UT2 = ut2
	return out, nil
}

// Index returns the position of the named subject, or -1.
func (r Roster) Index(name string) int {
	name = strings.TrimSpace(name)
	return slices.IndexFunc(r, func(s Subject) bool { return s.Name == name })
}

// Find returns the named subject.
func (r Roster) Find(name string) (Subject, bool) {
	i := r.Index(name)
	if i < 0 {
		return Subject{}, false
	}
	return r[i], true
}

// Names returns subject names in insertion order.
func (r Roster) Names() []string {
	names := make([]string, len(r))
	for i, s := range r {
		names[i] = s.Name
	}
	return names
}

// Weakest returns the name of the subject with the lowest average.
func (r Roster) Weakest() (string, error) {
	return Weakest(r)
}

// Weakest returns the name of the subject with the minimum average mark.
// Ties go to the subject that was added first.
func Weakest(subjects []Subject) (string, error) {
	if len(subjects) == 0 {
		return "", ErrEmptyRoster
	}
	weakest := subjects[0]
	for _, s := range subjects[1:] {
		if s.Average() < weakest.Average() {
			weakest = s
		}
	}
	return weakest.Name, nil
}

// ParseNames splits a comma-separated list such as "Physics, Maths" into
// trimmed, non-empty names. Duplicates are kept; Add drops them.
func ParseNames(raw string) []string {
	var names []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			names = append(names, p)
		}
	}
	return names
}

func checkMark(label string, v int) error {
	if v < MinMark || v > MaxMark {
		return fmt.Errorf("%w: %s=%d (want %d-%d)", ErrMarkOutOfRange, label, v, MinMark, MaxMark)
	}
	return nil
}
