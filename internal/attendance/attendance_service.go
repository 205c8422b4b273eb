package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"time"

	"go-vigilancia/internal/events"
	"go-vigilancia/internal/messaging/kafka"
	"go-vigilancia/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Import(ctx context.Context, file io.Reader, opts ImportOptions) (ImportResponse, error)
}

type service struct {
	db      *sql.DB
	parser  *Parser
	matcher Matcher
	outbox  kafka.OutboxRepository
	logger  *zap.Logger
}

func NewService(db *sql.DB, matcher Matcher) Service {
	return NewServiceWithOutbox(db, matcher, nil)
}

func NewServiceWithOutbox(db *sql.DB, matcher Matcher, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:      db,
		parser:  NewParser(l),
		matcher: matcher,
		outbox:  outboxRepo,
		logger:  l,
	}
}

// Import parses an uploaded sheet and, unless the caller opted out of
// verification, reconciles every record against the planned shifts.
func (s *service) Import(ctx context.Context, file io.Reader, opts ImportOptions) (ImportResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	sheet, err := LoadSheet(file)
	if err != nil {
		return ImportResponse{}, err
	}

	records, err := s.parser.Parse(sheet, opts.YearHint)
	if err != nil {
		return ImportResponse{}, err
	}
	s.logger.Info("attendance sheet parsed",
		zap.String("request_id", rid),
		zap.String("sheet", sheet.Name),
		zap.Int("records", len(records)),
	)

	var results []ReconciliationResult
	if opts.Verify {
		results, err = s.matcher.Reconcile(ctx, records, opts.ToleranceMinutes)
		if err != nil {
			return ImportResponse{}, err
		}
	} else {
		results = make([]ReconciliationResult, 0, len(records))
		for _, rec := range records {
			results = append(results, ReconciliationResult{
				Legajo: rec.Legajo,
				Name:   rec.Name,
				Date:   rec.Date.Format("2006-01-02"),
				Status: StatusUnverified,
			})
		}
	}

	resp := ImportResponse{Records: len(records), Results: results}
	for _, r := range results {
		switch r.Status {
		case StatusMatched:
			resp.Summary.Matched++
		case StatusDeviated:
			resp.Summary.Deviated++
		case StatusNoPlan:
			resp.Summary.NoPlan++
		case StatusUnknownEmployee:
			resp.Summary.UnknownEmployee++
		case StatusUnverified:
			resp.Summary.Unverified++
		}
	}

	if err := s.queueReconciledEvent(ctx, sheet.Name, opts, resp.Summary); err != nil {
		return ImportResponse{}, err
	}

	return resp, nil
}

func (s *service) queueReconciledEvent(ctx context.Context, sheetName string, opts ImportOptions, sum ImportSummary) error {
	if s.outbox == nil {
		return nil
	}

	payload, err := json.Marshal(events.AttendanceReconciledEvent{
		EventType:        "RECONCILED",
		SheetName:        sheetName,
		ToleranceMinutes: opts.ToleranceMinutes,
		Matched:          sum.Matched,
		Deviated:         sum.Deviated,
		NoPlan:           sum.NoPlan,
		UnknownEmployee:  sum.UnknownEmployee,
		Unverified:       sum.Unverified,
		OccurredAt:       time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	id := uuid.New().String()
	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            id,
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "attendance_import",
		AggregateID:   id,
		EventType:     "RECONCILED",
		Topic:         events.AttendanceReconciledTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		return err
	}

	return tx.Commit()
}
