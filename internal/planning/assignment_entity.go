package planning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusWorks      = "WORKS"
	StatusOff        = "OFF"
	StatusAbsent     = "ABSENT"
	StatusVacation   = "VACATION"
	StatusLeave      = "LEAVE"
	StatusHoliday    = "HOLIDAY"
	StatusSick       = "SICK"
	StatusUnassigned = "UNASSIGNED"
)

// GuardDayAssignment links one guard to one calendar date. Any shift on
// the assignment forces status WORKS; removing the last shift reverts
// it to UNASSIGNED.
type GuardDayAssignment struct {
	ID            uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	GuardID       uuid.UUID      `gorm:"column:guard_id;type:uuid;not null;index"`
	PlanningDayID uuid.UUID      `gorm:"column:planning_day_id;type:uuid;not null;index"`
	Date          time.Time      `gorm:"column:date;type:date;not null;index"`
	Status        string         `gorm:"column:status;type:varchar(20);not null;default:UNASSIGNED"`
	CreatedAt     time.Time      `gorm:"column:created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (GuardDayAssignment) TableName() string {
	return "guard_day_assignments"
}
