package shift

import (
	"go-vigilancia/internal/shared/timeband"
)

// Candidate is a shift being checked for conflicts before it is
// written.
type Candidate struct {
	Start string
	End   string
}

// Window is an already-planned interval the candidate is checked
// against. For continuity fragments only End is meaningful (fragments
// start at midnight).
type Window struct {
	Start string
	End   string
}

// DetectionContext carries everything the detector compares a candidate
// against. The service layer gathers it; the detector itself performs
// no I/O.
type DetectionContext struct {
	// Existing are the persisted shifts on the candidate's guard-day,
	// minus the shift being edited when this is an in-place check.
	Existing []Window
	// Fragments are continuity fragments landing on the guard-day.
	Fragments []Window
	// NextDay are the shifts on the guard's next assignment; only
	// consulted when the candidate crosses midnight.
	NextDay []Window
	// Pending are candidates already accepted earlier in the same
	// batch. Batch order decides which of two mutually conflicting
	// candidates is rejected: the first one in wins.
	Pending []Window
}

// Detector decides whether a candidate shift conflicts with the planned
// intervals around it, midnight crossings included. It is pure and
// stateless.
type Detector struct{}

func NewDetector() Detector {
	return Detector{}
}

// Detect returns true on the first conflict found; it never aggregates
// all conflicts.
func (Detector) Detect(cand Candidate, dctx DetectionContext) (bool, error) {
	s, err := timeband.ToMinutes(cand.Start)
	if err != nil {
		return false, err
	}
	e, err := timeband.ToMinutes(cand.End)
	if err != nil {
		return false, err
	}
	s, e = timeband.Wrap(s, e)

	for _, w := range dctx.Existing {
		hit, err := conflictsWithWindow(s, e, w)
		if err != nil || hit {
			return hit, err
		}
	}

	for _, w := range dctx.Pending {
		hit, err := conflictsWithWindow(s, e, w)
		if err != nil || hit {
			return hit, err
		}
	}

	for _, w := range dctx.Fragments {
		fe, err := timeband.ToMinutes(w.End)
		if err != nil {
			return false, err
		}
		if timeband.Overlaps(s, e, 0, fe) {
			return true, nil
		}
	}

	if e > timeband.MinutesPerDay {
		// the spillover tail lives on the next day in that day's own
		// coordinates
		tailEnd := e - timeband.MinutesPerDay
		for _, w := range dctx.NextDay {
			hit, err := conflictsWithWindow(0, tailEnd, w)
			if err != nil || hit {
				return hit, err
			}
		}
	}

	return false, nil
}

// conflictsWithWindow tests a candidate range against one planned
// shift. A planned shift that itself wraps is split into its today
// fragment [start,24:00) and tomorrow fragment [24:00,end) so both
// sides of its midnight crossing are honored.
func conflictsWithWindow(s, e int, w Window) (bool, error) {
	ws, err := timeband.ToMinutes(w.Start)
	if err != nil {
		return false, err
	}
	we, err := timeband.ToMinutes(w.End)
	if err != nil {
		return false, err
	}
	ws, we = timeband.Wrap(ws, we)

	if we > timeband.MinutesPerDay {
		return timeband.Overlaps(s, e, ws, timeband.MinutesPerDay) ||
			timeband.Overlaps(s, e, timeband.MinutesPerDay, we), nil
	}
	return timeband.Overlaps(s, e, ws, we), nil
}
