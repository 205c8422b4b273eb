package shift

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-vigilancia/internal/planning"
	shifterrors "go-vigilancia/internal/shift/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeShiftRepo struct {
	createFn            func(ctx context.Context, s *Shift) error
	updateFn            func(ctx context.Context, s *Shift) error
	deleteFn            func(ctx context.Context, id string) error
	findByIDFn          func(ctx context.Context, id string) (*Shift, error)
	findByAssignmentFn  func(ctx context.Context, assignmentID string, excludeID *string) ([]Shift, error)
	findByPlanningDayFn func(ctx context.Context, planningDayID string) ([]Shift, error)
}

func (f *fakeShiftRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeShiftRepo) Create(ctx context.Context, s *Shift) error {
	if f.createFn != nil {
		return f.createFn(ctx, s)
	}
	return nil
}
func (f *fakeShiftRepo) Update(ctx context.Context, s *Shift) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, s)
	}
	return nil
}
func (f *fakeShiftRepo) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}
func (f *fakeShiftRepo) FindByID(ctx context.Context, id string) (*Shift, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeShiftRepo) FindByAssignment(ctx context.Context, assignmentID string, excludeID *string) ([]Shift, error) {
	if f.findByAssignmentFn != nil {
		return f.findByAssignmentFn(ctx, assignmentID, excludeID)
	}
	return nil, nil
}
func (f *fakeShiftRepo) FindByPlanningDay(ctx context.Context, planningDayID string) ([]Shift, error) {
	if f.findByPlanningDayFn != nil {
		return f.findByPlanningDayFn(ctx, planningDayID)
	}
	return nil, nil
}

type fakeFragmentRepo struct {
	createFn         func(ctx context.Context, frag *ContinuityFragment) error
	updateFn         func(ctx context.Context, frag *ContinuityFragment) error
	deleteByOriginFn func(ctx context.Context, originShiftID string) error
	findByOriginFn   func(ctx context.Context, originShiftID string) ([]ContinuityFragment, error)
	findByDestAsgFn  func(ctx context.Context, assignmentID string) ([]ContinuityFragment, error)
}

func (f *fakeFragmentRepo) WithTx(tx *sql.Tx) FragmentRepository { return f }
func (f *fakeFragmentRepo) Create(ctx context.Context, frag *ContinuityFragment) error {
	if f.createFn != nil {
		return f.createFn(ctx, frag)
	}
	return nil
}
func (f *fakeFragmentRepo) Update(ctx context.Context, frag *ContinuityFragment) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, frag)
	}
	return nil
}
func (f *fakeFragmentRepo) DeleteByOrigin(ctx context.Context, originShiftID string) error {
	if f.deleteByOriginFn != nil {
		return f.deleteByOriginFn(ctx, originShiftID)
	}
	return nil
}
func (f *fakeFragmentRepo) FindByOrigin(ctx context.Context, originShiftID string) ([]ContinuityFragment, error) {
	if f.findByOriginFn != nil {
		return f.findByOriginFn(ctx, originShiftID)
	}
	return nil, nil
}
func (f *fakeFragmentRepo) FindByDestinationAssignment(ctx context.Context, assignmentID string) ([]ContinuityFragment, error) {
	if f.findByDestAsgFn != nil {
		return f.findByDestAsgFn(ctx, assignmentID)
	}
	return nil, nil
}
func (f *fakeFragmentRepo) FindByDestinationPlanningDay(ctx context.Context, planningDayID string) ([]ContinuityFragment, error) {
	return nil, nil
}

type fakeAssignmentRepo struct {
	findByIDFn        func(ctx context.Context, id string) (*planning.GuardDayAssignment, error)
	findNextFn        func(ctx context.Context, guardID string, afterDate time.Time) (*planning.GuardDayAssignment, error)
	statusUpdates     map[string]string
	findByGuardDateFn func(ctx context.Context, guardID string, date time.Time) (*planning.GuardDayAssignment, error)
}

func (f *fakeAssignmentRepo) WithTx(tx *sql.Tx) planning.AssignmentRepository { return f }
func (f *fakeAssignmentRepo) FindByID(ctx context.Context, id string) (*planning.GuardDayAssignment, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeAssignmentRepo) FindByGuardAndDate(ctx context.Context, guardID string, date time.Time) (*planning.GuardDayAssignment, error) {
	if f.findByGuardDateFn != nil {
		return f.findByGuardDateFn(ctx, guardID, date)
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeAssignmentRepo) FindNextByGuard(ctx context.Context, guardID string, afterDate time.Time) (*planning.GuardDayAssignment, error) {
	if f.findNextFn != nil {
		return f.findNextFn(ctx, guardID, afterDate)
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeAssignmentRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	if f.statusUpdates == nil {
		f.statusUpdates = make(map[string]string)
	}
	f.statusUpdates[id] = status
	return nil
}

type fakePlanningDayRepo struct {
	day *planning.PlanningDay
}

func (f *fakePlanningDayRepo) WithTx(tx *sql.Tx) planning.DayRepository { return f }
func (f *fakePlanningDayRepo) FindByID(ctx context.Context, id string) (*planning.PlanningDay, error) {
	if f.day == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.day, nil
}
func (f *fakePlanningDayRepo) FindBySchedule(ctx context.Context, scheduleID string) ([]planning.PlanningDay, error) {
	return nil, nil
}
func (f *fakePlanningDayRepo) UpdateTotals(ctx context.Context, id string, worked, fulfilled float64) error {
	return nil
}

type fakeReconciler struct {
	recomputed []string
}

func (f *fakeReconciler) WithTx(tx *sql.Tx) planning.Reconciler { return f }
func (f *fakeReconciler) Recompute(ctx context.Context, planningDayID string) (planning.DayTotals, error) {
	f.recomputed = append(f.recomputed, planningDayID)
	return planning.DayTotals{}, nil
}

func newTestAssignment() *planning.GuardDayAssignment {
	return &planning.GuardDayAssignment{
		ID:            uuid.New(),
		GuardID:       uuid.New(),
		PlanningDayID: uuid.New(),
		Date:          time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Status:        planning.StatusUnassigned,
	}
}

func TestCreateShift_Success(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	origin := newTestAssignment()
	var created *Shift
	repo := &fakeShiftRepo{
		createFn: func(ctx context.Context, s *Shift) error {
			created = s
			return nil
		},
	}
	assignments := &fakeAssignmentRepo{
		findByIDFn: func(ctx context.Context, id string) (*planning.GuardDayAssignment, error) {
			return origin, nil
		},
	}
	rec := &fakeReconciler{}

	svc := NewService(db, repo, &fakeFragmentRepo{}, assignments, &fakePlanningDayRepo{}, rec)
	resp, err := svc.Create(context.Background(), CreateShiftRequest{
		AssignmentID:  origin.ID.String(),
		Start:         "08:00",
		DurationHours: 8,
	})

	assert.NoError(t, err)
	assert.Equal(t, "16:00", resp.End)
	assert.Equal(t, 8.0, resp.DiurnalHours)
	assert.Equal(t, 0.0, resp.NocturnalHours)
	assert.NotNil(t, created)
	assert.Equal(t, origin.PlanningDayID, created.PlanningDayID)
	assert.Equal(t, planning.StatusWorks, assignments.statusUpdates[origin.ID.String()])
	assert.Contains(t, rec.recomputed, origin.PlanningDayID.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateShift_OverlapRejected(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	origin := newTestAssignment()
	repo := &fakeShiftRepo{
		findByAssignmentFn: func(ctx context.Context, assignmentID string, excludeID *string) ([]Shift, error) {
			return []Shift{{Start: "08:00", End: "16:00"}}, nil
		},
	}
	assignments := &fakeAssignmentRepo{
		findByIDFn: func(ctx context.Context, id string) (*planning.GuardDayAssignment, error) {
			return origin, nil
		},
	}

	svc := NewService(db, repo, &fakeFragmentRepo{}, assignments, &fakePlanningDayRepo{}, &fakeReconciler{})
	_, err := svc.Create(context.Background(), CreateShiftRequest{
		AssignmentID:  origin.ID.String(),
		Start:         "15:00",
		DurationHours: 2,
	})

	assert.ErrorIs(t, err, shifterrors.ErrShiftOverlap)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateShift_InvalidDuration(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeShiftRepo{}, &fakeFragmentRepo{}, &fakeAssignmentRepo{}, &fakePlanningDayRepo{}, &fakeReconciler{})

	_, err := svc.Create(context.Background(), CreateShiftRequest{
		AssignmentID:  uuid.NewString(),
		Start:         "08:00",
		DurationHours: 0,
	})
	assert.ErrorIs(t, err, shifterrors.ErrInvalidDuration)

	_, err = svc.Create(context.Background(), CreateShiftRequest{
		AssignmentID:  uuid.NewString(),
		Start:         "08:00",
		DurationHours: 25,
	})
	assert.ErrorIs(t, err, shifterrors.ErrInvalidDuration)
}

func TestCreateShift_AssignmentNotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	svc := NewService(db, &fakeShiftRepo{}, &fakeFragmentRepo{}, &fakeAssignmentRepo{}, &fakePlanningDayRepo{}, &fakeReconciler{})
	_, err := svc.Create(context.Background(), CreateShiftRequest{
		AssignmentID:  uuid.NewString(),
		Start:         "08:00",
		DurationHours: 8,
	})

	assert.ErrorIs(t, err, shifterrors.ErrAssignmentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateShift_WrappingCreatesFragment(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	origin := newTestAssignment()
	next := newTestAssignment()
	next.GuardID = origin.GuardID
	next.Date = origin.Date.AddDate(0, 0, 1)

	var frag *ContinuityFragment
	fragments := &fakeFragmentRepo{
		createFn: func(ctx context.Context, f *ContinuityFragment) error {
			frag = f
			return nil
		},
	}
	assignments := &fakeAssignmentRepo{
		findByIDFn: func(ctx context.Context, id string) (*planning.GuardDayAssignment, error) {
			return origin, nil
		},
		findNextFn: func(ctx context.Context, guardID string, afterDate time.Time) (*planning.GuardDayAssignment, error) {
			return next, nil
		},
	}
	rec := &fakeReconciler{}

	svc := NewService(db, &fakeShiftRepo{}, fragments, assignments, &fakePlanningDayRepo{}, rec)
	resp, err := svc.Create(context.Background(), CreateShiftRequest{
		AssignmentID:  origin.ID.String(),
		Start:         "22:00",
		DurationHours: 8,
	})

	assert.NoError(t, err)
	assert.Equal(t, "06:00", resp.End)
	assert.NotNil(t, frag)
	assert.Equal(t, "00:00", frag.Start)
	assert.Equal(t, "06:00", frag.End)
	assert.Equal(t, next.PlanningDayID, frag.PlanningDayID)
	// both the fragment's day and the origin day get reconciled
	assert.Contains(t, rec.recomputed, next.PlanningDayID.String())
	assert.Contains(t, rec.recomputed, origin.PlanningDayID.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateShift_ExcludesItselfFromOverlap(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	origin := newTestAssignment()
	existing := &Shift{
		ID:            uuid.New(),
		AssignmentID:  origin.ID,
		PlanningDayID: origin.PlanningDayID,
		Start:         "08:00",
		End:           "16:00",
		DurationHours: 8,
	}

	var excluded *string
	repo := &fakeShiftRepo{
		findByIDFn: func(ctx context.Context, id string) (*Shift, error) {
			cp := *existing
			return &cp, nil
		},
		findByAssignmentFn: func(ctx context.Context, assignmentID string, excludeID *string) ([]Shift, error) {
			excluded = excludeID
			return nil, nil
		},
	}
	assignments := &fakeAssignmentRepo{
		findByIDFn: func(ctx context.Context, id string) (*planning.GuardDayAssignment, error) {
			return origin, nil
		},
	}

	svc := NewService(db, repo, &fakeFragmentRepo{}, assignments, &fakePlanningDayRepo{}, &fakeReconciler{})
	resp, err := svc.Update(context.Background(), existing.ID.String(), UpdateShiftRequest{
		Start:         "09:00",
		DurationHours: 8,
	})

	assert.NoError(t, err)
	assert.Equal(t, "17:00", resp.End)
	if assert.NotNil(t, excluded) {
		assert.Equal(t, existing.ID.String(), *excluded)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteShift_LastShiftUnassignsDay(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	origin := newTestAssignment()
	sh := &Shift{
		ID:            uuid.New(),
		AssignmentID:  origin.ID,
		PlanningDayID: origin.PlanningDayID,
		Start:         "08:00",
		End:           "16:00",
		DurationHours: 8,
	}

	repo := &fakeShiftRepo{
		findByIDFn: func(ctx context.Context, id string) (*Shift, error) {
			return sh, nil
		},
	}
	assignments := &fakeAssignmentRepo{}
	rec := &fakeReconciler{}

	svc := NewService(db, repo, &fakeFragmentRepo{}, assignments, &fakePlanningDayRepo{}, rec)
	err := svc.Delete(context.Background(), sh.ID.String())

	assert.NoError(t, err)
	assert.Equal(t, planning.StatusUnassigned, assignments.statusUpdates[origin.ID.String()])
	assert.Contains(t, rec.recomputed, origin.PlanningDayID.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkCreate_FirstConflictingItemWins(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	origin := newTestAssignment()
	assignments := &fakeAssignmentRepo{
		findByIDFn: func(ctx context.Context, id string) (*planning.GuardDayAssignment, error) {
			return origin, nil
		},
	}

	svc := NewService(db, &fakeShiftRepo{}, &fakeFragmentRepo{}, assignments, &fakePlanningDayRepo{}, &fakeReconciler{})
	resp, err := svc.BulkCreate(context.Background(), BulkCreateShiftRequest{
		AssignmentID: origin.ID.String(),
		Items: []BulkShiftItem{
			{Start: "08:00", DurationHours: 8},
			{Start: "15:00", DurationHours: 2}, // collides with the first item
			{Start: "16:00", DurationHours: 4},
		},
	})

	assert.NoError(t, err)
	assert.Len(t, resp.Created, 2)
	if assert.Len(t, resp.Rejected, 1) {
		assert.Equal(t, 1, resp.Rejected[0].Index)
		assert.Equal(t, "15:00", resp.Rejected[0].Start)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkCreate_InvalidItemReportedNotFatal(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	origin := newTestAssignment()
	assignments := &fakeAssignmentRepo{
		findByIDFn: func(ctx context.Context, id string) (*planning.GuardDayAssignment, error) {
			return origin, nil
		},
	}

	svc := NewService(db, &fakeShiftRepo{}, &fakeFragmentRepo{}, assignments, &fakePlanningDayRepo{}, &fakeReconciler{})
	resp, err := svc.BulkCreate(context.Background(), BulkCreateShiftRequest{
		AssignmentID: origin.ID.String(),
		Items: []BulkShiftItem{
			{Start: "08:00", DurationHours: 30},
			{Start: "09:00", DurationHours: 2},
		},
	})

	assert.NoError(t, err)
	assert.Len(t, resp.Created, 1)
	assert.Len(t, resp.Rejected, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDuplicateDay_WarnsOnHourMismatch(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	source := newTestAssignment()
	dest := newTestAssignment()
	destDay := &planning.PlanningDay{ID: dest.PlanningDayID, RequiredHours: 12}

	repo := &fakeShiftRepo{
		findByAssignmentFn: func(ctx context.Context, assignmentID string, excludeID *string) ([]Shift, error) {
			if assignmentID == source.ID.String() {
				return []Shift{{Start: "08:00", End: "16:00", DurationHours: 8}}, nil
			}
			return nil, nil
		},
	}
	assignments := &fakeAssignmentRepo{
		findByIDFn: func(ctx context.Context, id string) (*planning.GuardDayAssignment, error) {
			return dest, nil
		},
	}

	svc := NewService(db, repo, &fakeFragmentRepo{}, assignments, &fakePlanningDayRepo{day: destDay}, &fakeReconciler{})
	resp, err := svc.DuplicateDay(context.Background(), DuplicateDayRequest{
		FromAssignmentID: source.ID.String(),
		ToAssignmentID:   dest.ID.String(),
	})

	assert.NoError(t, err)
	assert.Len(t, resp.Created, 1)
	assert.Len(t, resp.Warnings, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDuplicateDay_EmptySourceRejected(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	dest := newTestAssignment()
	assignments := &fakeAssignmentRepo{
		findByIDFn: func(ctx context.Context, id string) (*planning.GuardDayAssignment, error) {
			return dest, nil
		},
	}

	svc := NewService(db, &fakeShiftRepo{}, &fakeFragmentRepo{}, assignments, &fakePlanningDayRepo{}, &fakeReconciler{})
	_, err := svc.DuplicateDay(context.Background(), DuplicateDayRequest{
		FromAssignmentID: uuid.NewString(),
		ToAssignmentID:   dest.ID.String(),
	})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
