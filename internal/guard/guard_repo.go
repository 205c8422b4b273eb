package guard

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=guard_repo.go -destination=mock/guard_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, g *Guard) error
	FindAll(ctx context.Context) ([]Guard, error)
	FindByID(ctx context.Context, id string) (*Guard, error)
	FindByLegajo(ctx context.Context, legajo string) (*Guard, error)
	SoftDelete(ctx context.Context, id string) error
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

// conn binds the explicit tx handle into gorm when one was supplied
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db = db.Session(&gorm.Session{})
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, g *Guard) error {
	return r.conn(ctx).Create(g).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Guard, error) {
	var rows []Guard
	err := r.conn(ctx).
		Order("full_name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Guard, error) {
	var g Guard
	err := r.conn(ctx).
		Where("id = ?", id).
		First(&g).Error
	return &g, err
}

func (r *repository) FindByLegajo(ctx context.Context, legajo string) (*Guard, error) {
	var g Guard
	err := r.conn(ctx).
		Where("legajo = ?", legajo).
		First(&g).Error
	return &g, err
}

func (r *repository) SoftDelete(ctx context.Context, id string) error {
	return r.conn(ctx).
		Where("id = ?", id).
		Delete(&Guard{}).Error
}
