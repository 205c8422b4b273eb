package shift

import (
	"context"
	"database/sql"
	"errors"

	"go-vigilancia/internal/planning"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Propagator keeps continuity fragments in sync with their origin
// shifts: a fragment exists exactly while its origin shift crosses
// midnight and the guard has a resolvable next assignment.
type Propagator struct {
	fragments   FragmentRepository
	assignments planning.AssignmentRepository
	reconciler  planning.Reconciler
	logger      *zap.Logger
}

func NewPropagator(
	fragments FragmentRepository,
	assignments planning.AssignmentRepository,
	reconciler planning.Reconciler,
	logger ...*zap.Logger,
) *Propagator {
	l := zap.L().Named("shift.propagator")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("shift.propagator")
	}
	return &Propagator{
		fragments:   fragments,
		assignments: assignments,
		reconciler:  reconciler,
		logger:      l,
	}
}

func (p *Propagator) WithTx(tx *sql.Tx) *Propagator {
	return &Propagator{
		fragments:   p.fragments.WithTx(tx),
		assignments: p.assignments.WithTx(tx),
		reconciler:  p.reconciler.WithTx(tx),
		logger:      p.logger,
	}
}

// Sync reconciles the fragment state of one shift after a create or an
// update. origin is the shift's own guard-day assignment.
func (p *Propagator) Sync(ctx context.Context, sh *Shift, origin *planning.GuardDayAssignment) error {
	frags, err := p.fragments.FindByOrigin(ctx, sh.ID.String())
	if err != nil {
		return err
	}

	if !sh.Wraps() {
		return p.dropFragments(ctx, sh, frags)
	}

	next, err := p.assignments.FindNextByGuard(ctx, origin.GuardID.String(), origin.Date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// lenient: the shift stands on its own without a fragment
			p.logger.Debug("no next assignment for wrapping shift, skipping fragment",
				zap.String("shift_id", sh.ID.String()),
				zap.String("guard_id", origin.GuardID.String()),
			)
			return p.dropFragments(ctx, sh, frags)
		}
		return err
	}

	if len(frags) == 0 {
		return p.createFragment(ctx, sh, next)
	}

	// duplicates are tolerated; the first fragment decides whether the
	// destination moved
	if frags[0].AssignmentID == next.ID && frags[0].PlanningDayID == next.PlanningDayID {
		for i := range frags {
			frags[i].End = sh.End
			if err := p.fragments.Update(ctx, &frags[i]); err != nil {
				return err
			}
		}
		_, err := p.reconciler.Recompute(ctx, next.PlanningDayID.String())
		return err
	}

	if err := p.dropFragments(ctx, sh, frags); err != nil {
		return err
	}
	return p.createFragment(ctx, sh, next)
}

// Remove deletes every fragment of a shift about to be removed and
// reconciles the days they landed on. Callers delete the shift itself
// afterwards.
func (p *Propagator) Remove(ctx context.Context, sh *Shift) error {
	frags, err := p.fragments.FindByOrigin(ctx, sh.ID.String())
	if err != nil {
		return err
	}
	return p.dropFragments(ctx, sh, frags)
}

func (p *Propagator) createFragment(ctx context.Context, sh *Shift, dest *planning.GuardDayAssignment) error {
	frag := &ContinuityFragment{
		ID:            uuid.New(),
		OriginShiftID: sh.ID,
		AssignmentID:  dest.ID,
		PlanningDayID: dest.PlanningDayID,
		Start:         "00:00",
		End:           sh.End,
	}
	if err := p.fragments.Create(ctx, frag); err != nil {
		return err
	}

	p.logger.Debug("continuity fragment created",
		zap.String("shift_id", sh.ID.String()),
		zap.String("destination_day_id", dest.PlanningDayID.String()),
		zap.String("end", sh.End),
	)
	_, err := p.reconciler.Recompute(ctx, dest.PlanningDayID.String())
	return err
}

func (p *Propagator) dropFragments(ctx context.Context, sh *Shift, frags []ContinuityFragment) error {
	if len(frags) == 0 {
		return nil
	}
	if err := p.fragments.DeleteByOrigin(ctx, sh.ID.String()); err != nil {
		return err
	}

	seen := make(map[uuid.UUID]bool, len(frags))
	for _, f := range frags {
		if seen[f.PlanningDayID] {
			continue
		}
		seen[f.PlanningDayID] = true
		if _, err := p.reconciler.Recompute(ctx, f.PlanningDayID.String()); err != nil {
			return err
		}
	}
	return nil
}
