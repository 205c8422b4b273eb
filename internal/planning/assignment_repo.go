package planning

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=assignment_repo.go -destination=mock/assignment_repo_mock.go -package=mock
type AssignmentRepository interface {
	WithTx(tx *sql.Tx) AssignmentRepository
	FindByID(ctx context.Context, id string) (*GuardDayAssignment, error)
	FindByGuardAndDate(ctx context.Context, guardID string, date time.Time) (*GuardDayAssignment, error)
	FindNextByGuard(ctx context.Context, guardID string, afterDate time.Time) (*GuardDayAssignment, error)
	UpdateStatus(ctx context.Context, id string, status string) error
}

type assignmentRepository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) WithTx(tx *sql.Tx) AssignmentRepository {
	return &assignmentRepository{db: r.db, tx: tx}
}

func (r *assignmentRepository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db = db.Session(&gorm.Session{})
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *assignmentRepository) FindByID(ctx context.Context, id string) (*GuardDayAssignment, error) {
	var a GuardDayAssignment
	err := r.conn(ctx).
		Where("id = ?", id).
		First(&a).Error
	return &a, err
}

func (r *assignmentRepository) FindByGuardAndDate(ctx context.Context, guardID string, date time.Time) (*GuardDayAssignment, error) {
	var a GuardDayAssignment
	err := r.conn(ctx).
		Where("guard_id = ?", guardID).
		Where("date = ?", date.Format("2006-01-02")).
		First(&a).Error
	return &a, err
}

// FindNextByGuard resolves the guard's next chronological assignment,
// used to place the continuity fragment of a midnight-crossing shift.
func (r *assignmentRepository) FindNextByGuard(ctx context.Context, guardID string, afterDate time.Time) (*GuardDayAssignment, error) {
	var a GuardDayAssignment
	err := r.conn(ctx).
		Where("guard_id = ?", guardID).
		Where("date > ?", afterDate.Format("2006-01-02")).
		Order("date ASC").
		First(&a).Error
	return &a, err
}

func (r *assignmentRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	return r.conn(ctx).
		Model(&GuardDayAssignment{}).
		Where("id = ?", id).
		Update("status", status).Error
}
