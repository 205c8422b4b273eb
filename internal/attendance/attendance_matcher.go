package attendance

import (
	"context"
	"errors"

	"go-vigilancia/internal/guard"
	"go-vigilancia/internal/planning"
	"go-vigilancia/internal/shared/timeband"
	"go-vigilancia/internal/shift"

	"gorm.io/gorm"
)

// Matcher compares parsed attendance against the planned shifts. Kept
// behind an interface so the greedy strategy can be swapped for a
// globally minimal assignment later without touching callers.
//
//go:generate mockgen -source=attendance_matcher.go -destination=mock/attendance_matcher_mock.go -package=mock
type Matcher interface {
	Reconcile(ctx context.Context, records []AttendanceRecord, toleranceMinutes int) ([]ReconciliationResult, error)
}

type greedyMatcher struct {
	guards      guard.Repository
	assignments planning.AssignmentRepository
	shifts      shift.Repository
}

func NewGreedyMatcher(
	guards guard.Repository,
	assignments planning.AssignmentRepository,
	shifts shift.Repository,
) Matcher {
	return &greedyMatcher{
		guards:      guards,
		assignments: assignments,
		shifts:      shifts,
	}
}

// wrappedDelta is the minute distance between two times of day on the
// 24h circle.
func wrappedDelta(a, b int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	if d > timeband.MinutesPerDay-d {
		d = timeband.MinutesPerDay - d
	}
	return d
}

// Reconcile matches each record's clock pairs, in their original order,
// against the guard's planned shifts for that date. Each planned shift
// may be claimed by at most one pair, so an early pair can force a
// later one onto a worse match.
func (m *greedyMatcher) Reconcile(ctx context.Context, records []AttendanceRecord, toleranceMinutes int) ([]ReconciliationResult, error) {
	results := make([]ReconciliationResult, 0, len(records))

	for _, rec := range records {
		res := ReconciliationResult{
			Legajo: rec.Legajo,
			Name:   rec.Name,
			Date:   rec.Date.Format("2006-01-02"),
		}

		g, err := m.guards.FindByLegajo(ctx, rec.Legajo)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				res.Status = StatusUnknownEmployee
				results = append(results, res)
				continue
			}
			return nil, err
		}

		asg, err := m.assignments.FindByGuardAndDate(ctx, g.ID.String(), rec.Date)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				res.Status = StatusNoPlan
				results = append(results, res)
				continue
			}
			return nil, err
		}

		planned, err := m.shifts.FindByAssignment(ctx, asg.ID.String(), nil)
		if err != nil {
			return nil, err
		}
		if len(planned) == 0 {
			res.Status = StatusNoPlan
			results = append(results, res)
			continue
		}

		res.Pairs = matchPairs(rec.Pairs, planned, toleranceMinutes)
		res.Status = StatusDeviated
		if len(res.Pairs) > 0 {
			allOK := true
			for _, pd := range res.Pairs {
				if !pd.WithinTolerance {
					allOK = false
					break
				}
			}
			if allOK {
				res.Status = StatusMatched
			}
		}
		results = append(results, res)
	}

	return results, nil
}

func matchPairs(pairs []ClockPair, planned []shift.Shift, tolerance int) []PairDelta {
	used := make([]bool, len(planned))
	out := make([]PairDelta, 0, len(pairs))

	for _, pair := range pairs {
		entryMin, err := timeband.ToMinutes(pair.Entry)
		if err != nil {
			continue
		}
		exitMin, err := timeband.ToMinutes(pair.Exit)
		if err != nil {
			continue
		}

		best := -1
		bestScore := 0
		for i, sh := range planned {
			if used[i] {
				continue
			}
			ps, err := timeband.ToMinutes(sh.Start)
			if err != nil {
				continue
			}
			pe, err := timeband.ToMinutes(sh.End)
			if err != nil {
				continue
			}
			score := wrappedDelta(entryMin, ps) + wrappedDelta(exitMin, pe)
			if best < 0 || score < bestScore {
				best = i
				bestScore = score
			}
		}

		if best < 0 {
			// more punches than planned shifts
			out = append(out, PairDelta{
				Entry:           pair.Entry,
				Exit:            pair.Exit,
				WithinTolerance: false,
			})
			continue
		}

		used[best] = true
		sh := planned[best]
		ps, _ := timeband.ToMinutes(sh.Start)
		pe, _ := timeband.ToMinutes(sh.End)
		ds := wrappedDelta(entryMin, ps)
		de := wrappedDelta(exitMin, pe)
		out = append(out, PairDelta{
			Entry:           pair.Entry,
			Exit:            pair.Exit,
			PlannedStart:    sh.Start,
			PlannedEnd:      sh.End,
			DeltaStart:      ds,
			DeltaEnd:        de,
			WithinTolerance: ds <= tolerance && de <= tolerance,
		})
	}

	return out
}
