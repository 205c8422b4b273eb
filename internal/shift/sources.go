package shift

import (
	"context"
	"database/sql"

	"go-vigilancia/internal/planning"
)

// shiftSource and fragmentSource feed the planning reconciler without
// making the planning package depend on this one.

type shiftSource struct {
	repo Repository
}

func NewShiftSource(repo Repository) planning.ShiftSource {
	return shiftSource{repo: repo}
}

func (s shiftSource) WithTx(tx *sql.Tx) planning.ShiftSource {
	return shiftSource{repo: s.repo.WithTx(tx)}
}

func (s shiftSource) WindowsByPlanningDay(ctx context.Context, planningDayID string) ([]planning.DayWindow, error) {
	rows, err := s.repo.FindByPlanningDay(ctx, planningDayID)
	if err != nil {
		return nil, err
	}
	windows := make([]planning.DayWindow, len(rows))
	for i, sh := range rows {
		windows[i] = planning.DayWindow{
			Start:           sh.Start,
			End:             sh.End,
			DurationMinutes: sh.DurationMinutes(),
		}
	}
	return windows, nil
}

type fragmentSource struct {
	repo FragmentRepository
}

func NewFragmentSource(repo FragmentRepository) planning.FragmentSource {
	return fragmentSource{repo: repo}
}

func (s fragmentSource) WithTx(tx *sql.Tx) planning.FragmentSource {
	return fragmentSource{repo: s.repo.WithTx(tx)}
}

func (s fragmentSource) WindowsByPlanningDay(ctx context.Context, planningDayID string) ([]planning.DayWindow, error) {
	rows, err := s.repo.FindByDestinationPlanningDay(ctx, planningDayID)
	if err != nil {
		return nil, err
	}
	windows := make([]planning.DayWindow, len(rows))
	for i, f := range rows {
		windows[i] = planning.DayWindow{Start: f.Start, End: f.End}
	}
	return windows, nil
}
