package planning

import (
	"context"
	"database/sql"
	"errors"

	"go-vigilancia/internal/shared/apperror"
	"go-vigilancia/internal/shared/contextutil"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=planning_service.go -destination=mock/planning_service_mock.go -package=mock
type Service interface {
	GetDay(ctx context.Context, id string) (PlanningDayResponse, error)
	GetScheduleDays(ctx context.Context, scheduleID string) ([]PlanningDayResponse, error)
	RecomputeDay(ctx context.Context, id string) (DayTotals, error)
}

type service struct {
	db         *sql.DB
	days       DayRepository
	reconciler Reconciler
	logger     *zap.Logger
}

func NewService(db *sql.DB, days DayRepository, reconciler Reconciler, logger ...*zap.Logger) Service {
	l := zap.L().Named("planning.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("planning.service")
	}
	return &service{db: db, days: days, reconciler: reconciler, logger: l}
}

func (s *service) GetDay(ctx context.Context, id string) (PlanningDayResponse, error) {
	day, err := s.days.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PlanningDayResponse{}, apperror.New(apperror.CodeNotFound, "Planning day not found", 404)
		}
		return PlanningDayResponse{}, err
	}
	return mapDayToResponse(*day), nil
}

func (s *service) GetScheduleDays(ctx context.Context, scheduleID string) ([]PlanningDayResponse, error) {
	days, err := s.days.FindBySchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	out := make([]PlanningDayResponse, len(days))
	for i, d := range days {
		out[i] = mapDayToResponse(d)
	}
	return out, nil
}

func (s *service) RecomputeDay(ctx context.Context, id string) (DayTotals, error) {
	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DayTotals{}, err
	}
	defer tx.Rollback()

	totals, err := s.reconciler.WithTx(tx).Recompute(ctx, id)
	if err != nil {
		s.logger.Error("recompute day failed",
			zap.String("request_id", rid),
			zap.String("planning_day_id", id),
			zap.Error(err),
		)
		return DayTotals{}, err
	}

	if err := tx.Commit(); err != nil {
		return DayTotals{}, err
	}
	return totals, nil
}

func mapDayToResponse(d PlanningDay) PlanningDayResponse {
	return PlanningDayResponse{
		ID:             d.ID.String(),
		ScheduleID:     d.ScheduleID.String(),
		Date:           d.Date.Format("2006-01-02"),
		Window1Start:   d.Window1Start,
		Window1End:     d.Window1End,
		Window2Start:   d.Window2Start,
		Window2End:     d.Window2End,
		RequiredHours:  d.RequiredHours,
		WorkedHours:    d.WorkedHours,
		FulfilledHours: d.FulfilledHours,
	}
}
