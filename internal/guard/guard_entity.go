package guard

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Guard struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName  string         `gorm:"column:full_name;type:varchar(150);not null"`
	Legajo    string         `gorm:"column:legajo;type:varchar(30);not null;uniqueIndex:uq_guard_legajo"`
	Phone     *string        `gorm:"column:phone;type:varchar(30)"`
	Active    bool           `gorm:"column:active;not null;default:true"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Guard) TableName() string {
	return "guards"
}
