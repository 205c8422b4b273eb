package shift

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=fragment_repo.go -destination=mock/fragment_repo_mock.go -package=mock
type FragmentRepository interface {
	WithTx(tx *sql.Tx) FragmentRepository
	Create(ctx context.Context, f *ContinuityFragment) error
	Update(ctx context.Context, f *ContinuityFragment) error
	DeleteByOrigin(ctx context.Context, originShiftID string) error
	FindByOrigin(ctx context.Context, originShiftID string) ([]ContinuityFragment, error)
	FindByDestinationAssignment(ctx context.Context, assignmentID string) ([]ContinuityFragment, error)
	FindByDestinationPlanningDay(ctx context.Context, planningDayID string) ([]ContinuityFragment, error)
}

type fragmentRepository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewFragmentRepository(db *gorm.DB) FragmentRepository {
	return &fragmentRepository{db: db}
}

func (r *fragmentRepository) WithTx(tx *sql.Tx) FragmentRepository {
	return &fragmentRepository{db: r.db, tx: tx}
}

func (r *fragmentRepository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db = db.Session(&gorm.Session{})
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *fragmentRepository) Create(ctx context.Context, f *ContinuityFragment) error {
	return r.conn(ctx).Create(f).Error
}

func (r *fragmentRepository) Update(ctx context.Context, f *ContinuityFragment) error {
	return r.conn(ctx).Save(f).Error
}

func (r *fragmentRepository) DeleteByOrigin(ctx context.Context, originShiftID string) error {
	return r.conn(ctx).
		Where("origin_shift_id = ?", originShiftID).
		Delete(&ContinuityFragment{}).Error
}

func (r *fragmentRepository) FindByOrigin(ctx context.Context, originShiftID string) ([]ContinuityFragment, error) {
	var rows []ContinuityFragment
	err := r.conn(ctx).
		Where("origin_shift_id = ?", originShiftID).
		Find(&rows).Error
	return rows, err
}

func (r *fragmentRepository) FindByDestinationAssignment(ctx context.Context, assignmentID string) ([]ContinuityFragment, error) {
	var rows []ContinuityFragment
	err := r.conn(ctx).
		Where("assignment_id = ?", assignmentID).
		Find(&rows).Error
	return rows, err
}

func (r *fragmentRepository) FindByDestinationPlanningDay(ctx context.Context, planningDayID string) ([]ContinuityFragment, error) {
	var rows []ContinuityFragment
	err := r.conn(ctx).
		Where("planning_day_id = ?", planningDayID).
		Find(&rows).Error
	return rows, err
}
