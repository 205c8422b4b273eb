package shift

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=shift_repo.go -destination=mock/shift_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *Shift) error
	Update(ctx context.Context, s *Shift) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Shift, error)
	FindByAssignment(ctx context.Context, assignmentID string, excludeID *string) ([]Shift, error)
	FindByPlanningDay(ctx context.Context, planningDayID string) ([]Shift, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db = db.Session(&gorm.Session{})
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, s *Shift) error {
	return r.conn(ctx).Create(s).Error
}

func (r *repository) Update(ctx context.Context, s *Shift) error {
	return r.conn(ctx).Save(s).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.conn(ctx).
		Where("id = ?", id).
		Delete(&Shift{}).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Shift, error) {
	var s Shift
	err := r.conn(ctx).
		Where("id = ?", id).
		First(&s).Error
	return &s, err
}

func (r *repository) FindByAssignment(ctx context.Context, assignmentID string, excludeID *string) ([]Shift, error) {
	q := r.conn(ctx).
		Where("assignment_id = ?", assignmentID)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var rows []Shift
	err := q.Order("start_time ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindByPlanningDay(ctx context.Context, planningDayID string) ([]Shift, error) {
	var rows []Shift
	err := r.conn(ctx).
		Where("planning_day_id = ?", planningDayID).
		Order("start_time ASC").
		Find(&rows).Error
	return rows, err
}
