package planning

import (
	"context"
	"database/sql"
	"errors"

	"go-vigilancia/internal/shared/apperror"
	"go-vigilancia/internal/shared/timeband"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DayWindow is the slice of a shift or continuity fragment the
// reconciler sees: wall-clock bounds plus the full duration the origin
// shift contributes to worked hours.
type DayWindow struct {
	Start           string
	End             string
	DurationMinutes int
}

// ShiftSource and FragmentSource are implemented by the shift package;
// declaring them here keeps the dependency pointing shift -> planning.
type ShiftSource interface {
	WithTx(tx *sql.Tx) ShiftSource
	WindowsByPlanningDay(ctx context.Context, planningDayID string) ([]DayWindow, error)
}

type FragmentSource interface {
	WithTx(tx *sql.Tx) FragmentSource
	WindowsByPlanningDay(ctx context.Context, planningDayID string) ([]DayWindow, error)
}

type DayTotals struct {
	Worked    float64 `json:"worked"`
	Fulfilled float64 `json:"fulfilled"`
}

//go:generate mockgen -source=reconciler.go -destination=mock/reconciler_mock.go -package=mock
type Reconciler interface {
	WithTx(tx *sql.Tx) Reconciler
	Recompute(ctx context.Context, planningDayID string) (DayTotals, error)
}

type reconciler struct {
	days      DayRepository
	shifts    ShiftSource
	fragments FragmentSource
	logger    *zap.Logger
}

func NewReconciler(days DayRepository, shifts ShiftSource, fragments FragmentSource, logger ...*zap.Logger) Reconciler {
	l := zap.L().Named("planning.reconciler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("planning.reconciler")
	}
	return &reconciler{days: days, shifts: shifts, fragments: fragments, logger: l}
}

func (r *reconciler) WithTx(tx *sql.Tx) Reconciler {
	return &reconciler{
		days:      r.days.WithTx(tx),
		shifts:    r.shifts.WithTx(tx),
		fragments: r.fragments.WithTx(tx),
		logger:    r.logger,
	}
}

// Recompute rebuilds the worked and fulfilled hour totals of one
// planning day from its shifts, the continuity fragments landing on it
// and its configured required windows, then writes them back.
// Re-running without an intervening mutation yields identical totals.
func (r *reconciler) Recompute(ctx context.Context, planningDayID string) (DayTotals, error) {
	day, err := r.days.FindByID(ctx, planningDayID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DayTotals{}, apperror.New(apperror.CodeNotFound, "Planning day not found", 404)
		}
		return DayTotals{}, err
	}

	shiftWindows, err := r.shifts.WindowsByPlanningDay(ctx, planningDayID)
	if err != nil {
		return DayTotals{}, err
	}
	fragmentWindows, err := r.fragments.WindowsByPlanningDay(ctx, planningDayID)
	if err != nil {
		return DayTotals{}, err
	}

	workedMinutes := 0
	coverage := make([]timeband.Interval, 0, len(shiftWindows)+len(fragmentWindows))

	for _, w := range shiftWindows {
		// worked hours count the full shift duration, spillover included
		workedMinutes += w.DurationMinutes

		s, err := timeband.ToMinutes(w.Start)
		if err != nil {
			return DayTotals{}, apperror.Wrap(err, apperror.CodeInvalidInput, "Invalid shift time", 400)
		}
		e, err := timeband.ToMinutes(w.End)
		if err != nil {
			return DayTotals{}, apperror.Wrap(err, apperror.CodeInvalidInput, "Invalid shift time", 400)
		}
		s, e = timeband.Wrap(s, e)
		if iv, ok := timeband.ClipToDay(timeband.Interval{Start: s, End: e}); ok {
			coverage = append(coverage, iv)
		}
	}

	for _, w := range fragmentWindows {
		// fragments start at 00:00 and never wrap again
		e, err := timeband.ToMinutes(w.End)
		if err != nil {
			return DayTotals{}, apperror.Wrap(err, apperror.CodeInvalidInput, "Invalid fragment time", 400)
		}
		if iv, ok := timeband.ClipToDay(timeband.Interval{Start: 0, End: e}); ok {
			coverage = append(coverage, iv)
		}
	}

	required, err := requiredWindows(day)
	if err != nil {
		return DayTotals{}, err
	}

	fulfilledMinutes := 0
	if len(required) > 0 {
		for _, cov := range timeband.MergeUnion(coverage) {
			for _, req := range required {
				if iv, ok := timeband.Intersect(cov, req); ok {
					fulfilledMinutes += iv.Len()
				}
			}
		}
	}

	totals := DayTotals{
		Worked:    timeband.HoursFromMinutes(workedMinutes),
		Fulfilled: timeband.HoursFromMinutes(fulfilledMinutes),
	}

	if err := r.days.UpdateTotals(ctx, planningDayID, totals.Worked, totals.Fulfilled); err != nil {
		return DayTotals{}, err
	}

	r.logger.Debug("planning day recomputed",
		zap.String("planning_day_id", planningDayID),
		zap.Float64("worked", totals.Worked),
		zap.Float64("fulfilled", totals.Fulfilled),
	)
	return totals, nil
}

// requiredWindows materializes the day's configured windows (0, 1 or 2)
// as minute intervals clipped to the day.
func requiredWindows(day *PlanningDay) ([]timeband.Interval, error) {
	pairs := [][2]*string{
		{day.Window1Start, day.Window1End},
		{day.Window2Start, day.Window2End},
	}

	windows := make([]timeband.Interval, 0, 2)
	for _, p := range pairs {
		if p[0] == nil || p[1] == nil {
			continue
		}
		s, err := timeband.ToMinutes(*p[0])
		if err != nil {
			return nil, apperror.Wrap(err, apperror.CodeInvalidState, "Invalid required window", 500)
		}
		e, err := timeband.ToMinutes(*p[1])
		if err != nil {
			return nil, apperror.Wrap(err, apperror.CodeInvalidState, "Invalid required window", 500)
		}
		s, e = timeband.Wrap(s, e)
		if iv, ok := timeband.ClipToDay(timeband.Interval{Start: s, End: e}); ok {
			windows = append(windows, iv)
		}
	}
	return windows, nil
}
