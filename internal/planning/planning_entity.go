package planning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Schedule struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Location  string         `gorm:"column:location;type:varchar(150);not null"`
	Month     int            `gorm:"column:month;not null"`
	Year      int            `gorm:"column:year;not null"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Schedule) TableName() string {
	return "schedules"
}

// PlanningDay is one calendar date of a monthly schedule. It carries up
// to two required windows (split shifts) and the two aggregates the
// reconciler maintains: worked hours (raw shift durations) and
// fulfilled hours (coverage intersected with the required windows).
type PlanningDay struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	ScheduleID     uuid.UUID      `gorm:"column:schedule_id;type:uuid;not null;index"`
	Date           time.Time      `gorm:"column:date;type:date;not null;index"`
	Window1Start   *string        `gorm:"column:window1_start;type:varchar(5)"`
	Window1End     *string        `gorm:"column:window1_end;type:varchar(5)"`
	Window2Start   *string        `gorm:"column:window2_start;type:varchar(5)"`
	Window2End     *string        `gorm:"column:window2_end;type:varchar(5)"`
	RequiredHours  float64        `gorm:"column:required_hours;not null;default:0"`
	WorkedHours    float64        `gorm:"column:worked_hours;not null;default:0"`
	FulfilledHours float64        `gorm:"column:fulfilled_hours;not null;default:0"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (PlanningDay) TableName() string {
	return "planning_days"
}
