package planning

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=planning_repo.go -destination=mock/planning_repo_mock.go -package=mock
type DayRepository interface {
	WithTx(tx *sql.Tx) DayRepository
	FindByID(ctx context.Context, id string) (*PlanningDay, error)
	FindBySchedule(ctx context.Context, scheduleID string) ([]PlanningDay, error)
	UpdateTotals(ctx context.Context, id string, worked, fulfilled float64) error
}

type dayRepository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewDayRepository(db *gorm.DB) DayRepository {
	return &dayRepository{db: db}
}

func (r *dayRepository) WithTx(tx *sql.Tx) DayRepository {
	return &dayRepository{db: r.db, tx: tx}
}

func (r *dayRepository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db = db.Session(&gorm.Session{})
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *dayRepository) FindByID(ctx context.Context, id string) (*PlanningDay, error) {
	var d PlanningDay
	err := r.conn(ctx).
		Where("id = ?", id).
		First(&d).Error
	return &d, err
}

func (r *dayRepository) FindBySchedule(ctx context.Context, scheduleID string) ([]PlanningDay, error) {
	var rows []PlanningDay
	err := r.conn(ctx).
		Where("schedule_id = ?", scheduleID).
		Order("date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *dayRepository) UpdateTotals(ctx context.Context, id string, worked, fulfilled float64) error {
	return r.conn(ctx).
		Model(&PlanningDay{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"worked_hours":    worked,
			"fulfilled_hours": fulfilled,
		}).Error
}
