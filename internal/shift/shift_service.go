package shift

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"go-vigilancia/internal/events"
	"go-vigilancia/internal/messaging/kafka"
	"go-vigilancia/internal/planning"
	"go-vigilancia/internal/shared/apperror"
	"go-vigilancia/internal/shared/contextutil"
	"go-vigilancia/internal/shared/timeband"
	shifterrors "go-vigilancia/internal/shift/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=shift_service.go -destination=mock/shift_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)
	BulkCreate(ctx context.Context, req BulkCreateShiftRequest) (BulkCreateShiftResponse, error)
	Update(ctx context.Context, id string, req UpdateShiftRequest) (ShiftResponse, error)
	Delete(ctx context.Context, id string) error
	DuplicateDay(ctx context.Context, req DuplicateDayRequest) (DuplicateDayResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	fragments   FragmentRepository
	assignments planning.AssignmentRepository
	days        planning.DayRepository
	reconciler  planning.Reconciler
	detector    Detector
	propagator  *Propagator
	outbox      kafka.OutboxRepository
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	fragments FragmentRepository,
	assignments planning.AssignmentRepository,
	days planning.DayRepository,
	reconciler planning.Reconciler,
) Service {
	return NewServiceWithOutbox(db, repo, fragments, assignments, days, reconciler, nil)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	fragments FragmentRepository,
	assignments planning.AssignmentRepository,
	days planning.DayRepository,
	reconciler planning.Reconciler,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("shift.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("shift.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		fragments:   fragments,
		assignments: assignments,
		days:        days,
		reconciler:  reconciler,
		detector:    NewDetector(),
		propagator:  NewPropagator(fragments, assignments, reconciler, l),
		outbox:      outboxRepo,
		logger:      l,
	}
}

// derive recomputes the end time and the diurnal/nocturnal split from
// start + duration. The three always change together.
func derive(start string, durationHours float64) (string, timeband.Split, error) {
	if durationHours <= 0 || durationHours > 24 {
		return "", timeband.Split{}, shifterrors.ErrInvalidDuration
	}
	s, err := timeband.ToMinutes(start)
	if err != nil {
		return "", timeband.Split{}, apperror.Wrap(err, apperror.CodeInvalidInput, "Invalid start time", 400)
	}
	durMin := int(math.Round(durationHours * 60))
	end := timeband.FormatMinutes(s + durMin)

	split, err := timeband.Classify(start, end)
	if err != nil {
		return "", timeband.Split{}, err
	}
	return end, split, nil
}

// detectionContext gathers everything the detector needs for one
// candidate on the given assignment. The next day's shifts are loaded
// only when the candidate wraps.
func (s *service) detectionContext(
	ctx context.Context,
	qtx Repository,
	qfr FragmentRepository,
	qas planning.AssignmentRepository,
	origin *planning.GuardDayAssignment,
	excludeID *string,
	wraps bool,
) (DetectionContext, error) {
	var dctx DetectionContext

	existing, err := qtx.FindByAssignment(ctx, origin.ID.String(), excludeID)
	if err != nil {
		return dctx, err
	}
	for _, sh := range existing {
		dctx.Existing = append(dctx.Existing, Window{Start: sh.Start, End: sh.End})
	}

	frags, err := qfr.FindByDestinationAssignment(ctx, origin.ID.String())
	if err != nil {
		return dctx, err
	}
	for _, f := range frags {
		dctx.Fragments = append(dctx.Fragments, Window{Start: f.Start, End: f.End})
	}

	if wraps {
		next, err := qas.FindNextByGuard(ctx, origin.GuardID.String(), origin.Date)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dctx, nil
			}
			return dctx, err
		}
		nextShifts, err := qtx.FindByAssignment(ctx, next.ID.String(), nil)
		if err != nil {
			return dctx, err
		}
		for _, sh := range nextShifts {
			dctx.NextDay = append(dctx.NextDay, Window{Start: sh.Start, End: sh.End})
		}
	}

	return dctx, nil
}

func (s *service) Create(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create shift requested",
		zap.String("request_id", rid),
		zap.String("assignment_id", req.AssignmentID),
		zap.String("start", req.Start),
		zap.Float64("duration_hours", req.DurationHours),
	)

	end, split, err := derive(req.Start, req.DurationHours)
	if err != nil {
		return ShiftResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ShiftResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qas := s.assignments.WithTx(tx)
	qfr := s.fragments.WithTx(tx)

	origin, err := qas.FindByID(ctx, req.AssignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ShiftResponse{}, shifterrors.ErrAssignmentNotFound
		}
		return ShiftResponse{}, err
	}

	cand := Candidate{Start: req.Start, End: end}
	dctx, err := s.detectionContext(ctx, qtx, qfr, qas, origin, nil, end <= req.Start)
	if err != nil {
		return ShiftResponse{}, err
	}
	hit, err := s.detector.Detect(cand, dctx)
	if err != nil {
		return ShiftResponse{}, apperror.Wrap(err, apperror.CodeInvalidInput, "Invalid shift time", 400)
	}
	if hit {
		return ShiftResponse{}, shifterrors.ErrShiftOverlap
	}

	sh := &Shift{
		ID:             uuid.New(),
		AssignmentID:   origin.ID,
		PlanningDayID:  origin.PlanningDayID,
		Start:          req.Start,
		DurationHours:  req.DurationHours,
		End:            end,
		DiurnalHours:   split.Diurnal,
		NocturnalHours: split.Nocturnal,
	}
	if err := qtx.Create(ctx, sh); err != nil {
		return ShiftResponse{}, err
	}

	if origin.Status != planning.StatusWorks {
		if err := qas.UpdateStatus(ctx, origin.ID.String(), planning.StatusWorks); err != nil {
			return ShiftResponse{}, err
		}
	}

	if err := s.propagator.WithTx(tx).Sync(ctx, sh, origin); err != nil {
		return ShiftResponse{}, err
	}
	if _, err := s.reconciler.WithTx(tx).Recompute(ctx, origin.PlanningDayID.String()); err != nil {
		return ShiftResponse{}, err
	}

	if err := s.queueShiftEvent(ctx, tx, events.ShiftActionScheduled, sh); err != nil {
		return ShiftResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ShiftResponse{}, err
	}

	s.logger.Info("create shift success",
		zap.String("request_id", rid),
		zap.String("shift_id", sh.ID.String()),
	)
	return mapShiftToResponse(*sh), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateShiftRequest) (ShiftResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	end, split, err := derive(req.Start, req.DurationHours)
	if err != nil {
		return ShiftResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ShiftResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qas := s.assignments.WithTx(tx)
	qfr := s.fragments.WithTx(tx)

	sh, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ShiftResponse{}, shifterrors.ErrShiftNotFound
		}
		return ShiftResponse{}, err
	}

	origin, err := qas.FindByID(ctx, sh.AssignmentID.String())
	if err != nil {
		return ShiftResponse{}, err
	}

	exclude := sh.ID.String()
	dctx, err := s.detectionContext(ctx, qtx, qfr, qas, origin, &exclude, end <= req.Start)
	if err != nil {
		return ShiftResponse{}, err
	}
	hit, err := s.detector.Detect(Candidate{Start: req.Start, End: end}, dctx)
	if err != nil {
		return ShiftResponse{}, apperror.Wrap(err, apperror.CodeInvalidInput, "Invalid shift time", 400)
	}
	if hit {
		return ShiftResponse{}, shifterrors.ErrShiftOverlap
	}

	sh.Start = req.Start
	sh.DurationHours = req.DurationHours
	sh.End = end
	sh.DiurnalHours = split.Diurnal
	sh.NocturnalHours = split.Nocturnal

	if err := qtx.Update(ctx, sh); err != nil {
		return ShiftResponse{}, err
	}

	if err := s.propagator.WithTx(tx).Sync(ctx, sh, origin); err != nil {
		return ShiftResponse{}, err
	}
	if _, err := s.reconciler.WithTx(tx).Recompute(ctx, origin.PlanningDayID.String()); err != nil {
		return ShiftResponse{}, err
	}

	if err := s.queueShiftEvent(ctx, tx, events.ShiftActionUpdated, sh); err != nil {
		return ShiftResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ShiftResponse{}, err
	}

	s.logger.Info("update shift success",
		zap.String("request_id", rid),
		zap.String("shift_id", sh.ID.String()),
	)
	return mapShiftToResponse(*sh), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qas := s.assignments.WithTx(tx)

	sh, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shifterrors.ErrShiftNotFound
		}
		return err
	}

	// fragments go first so their destinations are reconciled before
	// the origin day
	if err := s.propagator.WithTx(tx).Remove(ctx, sh); err != nil {
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	remaining, err := qtx.FindByAssignment(ctx, sh.AssignmentID.String(), nil)
	if err != nil {
		return err
	}
	if len(remaining) == 0 {
		if err := qas.UpdateStatus(ctx, sh.AssignmentID.String(), planning.StatusUnassigned); err != nil {
			return err
		}
	}

	if _, err := s.reconciler.WithTx(tx).Recompute(ctx, sh.PlanningDayID.String()); err != nil {
		return err
	}

	if err := s.queueShiftEvent(ctx, tx, events.ShiftActionRemoved, sh); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete shift success",
		zap.String("request_id", rid),
		zap.String("shift_id", id),
	)
	return nil
}

func (s *service) BulkCreate(ctx context.Context, req BulkCreateShiftRequest) (BulkCreateShiftResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BulkCreateShiftResponse{}, err
	}
	defer tx.Rollback()

	qas := s.assignments.WithTx(tx)

	origin, err := qas.FindByID(ctx, req.AssignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BulkCreateShiftResponse{}, shifterrors.ErrAssignmentNotFound
		}
		return BulkCreateShiftResponse{}, err
	}

	resp, err := s.bulkInsert(ctx, tx, origin, req.Items)
	if err != nil {
		return BulkCreateShiftResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return BulkCreateShiftResponse{}, err
	}
	return resp, nil
}

// bulkInsert evaluates the whole batch against one snapshot plus the
// list of items already accepted in this batch, preserving caller
// order: of two conflicting items the first one wins.
func (s *service) bulkInsert(
	ctx context.Context,
	tx *sql.Tx,
	origin *planning.GuardDayAssignment,
	items []BulkShiftItem,
) (BulkCreateShiftResponse, error) {
	qtx := s.repo.WithTx(tx)
	qas := s.assignments.WithTx(tx)
	qfr := s.fragments.WithTx(tx)

	anyWraps := false
	type derived struct {
		end   string
		split timeband.Split
		err   error
	}
	ds := make([]derived, len(items))
	for i, item := range items {
		ds[i].end, ds[i].split, ds[i].err = derive(item.Start, item.DurationHours)
		if ds[i].err == nil && ds[i].end <= item.Start {
			anyWraps = true
		}
	}

	snapshot, err := s.detectionContext(ctx, qtx, qfr, qas, origin, nil, anyWraps)
	if err != nil {
		return BulkCreateShiftResponse{}, err
	}

	var resp BulkCreateShiftResponse
	for i, item := range items {
		if ds[i].err != nil {
			resp.Rejected = append(resp.Rejected, RejectedShiftItem{
				Index:  i,
				Start:  item.Start,
				Reason: ds[i].err.Error(),
			})
			continue
		}

		hit, err := s.detector.Detect(Candidate{Start: item.Start, End: ds[i].end}, snapshot)
		if err != nil {
			return BulkCreateShiftResponse{}, apperror.Wrap(err, apperror.CodeInvalidInput, "Invalid shift time", 400)
		}
		if hit {
			resp.Rejected = append(resp.Rejected, RejectedShiftItem{
				Index:  i,
				Start:  item.Start,
				Reason: shifterrors.ErrShiftOverlap.Message,
			})
			continue
		}

		sh := &Shift{
			ID:             uuid.New(),
			AssignmentID:   origin.ID,
			PlanningDayID:  origin.PlanningDayID,
			Start:          item.Start,
			DurationHours:  item.DurationHours,
			End:            ds[i].end,
			DiurnalHours:   ds[i].split.Diurnal,
			NocturnalHours: ds[i].split.Nocturnal,
		}
		if err := qtx.Create(ctx, sh); err != nil {
			return BulkCreateShiftResponse{}, err
		}
		if err := s.propagator.WithTx(tx).Sync(ctx, sh, origin); err != nil {
			return BulkCreateShiftResponse{}, err
		}
		if err := s.queueShiftEvent(ctx, tx, events.ShiftActionScheduled, sh); err != nil {
			return BulkCreateShiftResponse{}, err
		}

		snapshot.Pending = append(snapshot.Pending, Window{Start: sh.Start, End: sh.End})
		resp.Created = append(resp.Created, mapShiftToResponse(*sh))
	}

	if len(resp.Created) > 0 {
		if origin.Status != planning.StatusWorks {
			if err := qas.UpdateStatus(ctx, origin.ID.String(), planning.StatusWorks); err != nil {
				return BulkCreateShiftResponse{}, err
			}
		}
		if _, err := s.reconciler.WithTx(tx).Recompute(ctx, origin.PlanningDayID.String()); err != nil {
			return BulkCreateShiftResponse{}, err
		}
	}

	return resp, nil
}

// DuplicateDay copies every shift of one guard-day onto another. The
// copy proceeds even when the hour sums disagree; the mismatch is
// surfaced as a warning, not an error.
func (s *service) DuplicateDay(ctx context.Context, req DuplicateDayRequest) (DuplicateDayResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DuplicateDayResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qas := s.assignments.WithTx(tx)
	qdays := s.days.WithTx(tx)

	dest, err := qas.FindByID(ctx, req.ToAssignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DuplicateDayResponse{}, shifterrors.ErrAssignmentNotFound
		}
		return DuplicateDayResponse{}, err
	}

	sourceShifts, err := qtx.FindByAssignment(ctx, req.FromAssignmentID, nil)
	if err != nil {
		return DuplicateDayResponse{}, err
	}
	if len(sourceShifts) == 0 {
		return DuplicateDayResponse{}, apperror.New(apperror.CodeInvalidInput, "Source day has no shifts to duplicate", 400)
	}

	items := make([]BulkShiftItem, len(sourceShifts))
	for i, sh := range sourceShifts {
		items[i] = BulkShiftItem{Start: sh.Start, DurationHours: sh.DurationHours}
	}

	bulk, err := s.bulkInsert(ctx, tx, dest, items)
	if err != nil {
		return DuplicateDayResponse{}, err
	}

	resp := DuplicateDayResponse{Created: bulk.Created, Rejected: bulk.Rejected}

	day, err := qdays.FindByID(ctx, dest.PlanningDayID.String())
	if err != nil {
		return DuplicateDayResponse{}, err
	}
	copied := 0.0
	for _, c := range resp.Created {
		copied += c.DurationHours
	}
	if day.RequiredHours > 0 && copied != day.RequiredHours {
		resp.Warnings = append(resp.Warnings, fmt.Sprintf(
			"duplicated shifts total %.2f hours but the destination day requires %.2f",
			copied, day.RequiredHours,
		))
	}
	if len(resp.Rejected) > 0 {
		resp.Warnings = append(resp.Warnings, fmt.Sprintf(
			"%d shift(s) were skipped because they overlap existing planning", len(resp.Rejected),
		))
	}

	if err := tx.Commit(); err != nil {
		return DuplicateDayResponse{}, err
	}
	return resp, nil
}

func (s *service) queueShiftEvent(ctx context.Context, tx *sql.Tx, action string, sh *Shift) error {
	if s.outbox == nil {
		return nil
	}

	payload, err := json.Marshal(events.ShiftLifecycleEvent{
		EventType:     action,
		Action:        action,
		ShiftID:       sh.ID.String(),
		AssignmentID:  sh.AssignmentID.String(),
		PlanningDayID: sh.PlanningDayID.String(),
		OccurredAt:    time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "shift",
		AggregateID:   sh.ID.String(),
		EventType:     action,
		Topic:         events.ShiftLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapShiftToResponse(sh Shift) ShiftResponse {
	return ShiftResponse{
		ID:             sh.ID.String(),
		AssignmentID:   sh.AssignmentID.String(),
		PlanningDayID:  sh.PlanningDayID.String(),
		Start:          sh.Start,
		End:            sh.End,
		DurationHours:  sh.DurationHours,
		DiurnalHours:   sh.DiurnalHours,
		NocturnalHours: sh.NocturnalHours,
	}
}
