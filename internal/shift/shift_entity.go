package shift

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Shift is a scheduled work interval for one guard-day assignment.
// End, DiurnalHours and NocturnalHours are derived from Start and
// DurationHours and always rewritten together with them.
type Shift struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	AssignmentID   uuid.UUID      `gorm:"column:assignment_id;type:uuid;not null;index"`
	PlanningDayID  uuid.UUID      `gorm:"column:planning_day_id;type:uuid;not null;index"`
	Start          string         `gorm:"column:start_time;type:varchar(5);not null"`
	DurationHours  float64        `gorm:"column:duration_hours;not null"`
	End            string         `gorm:"column:end_time;type:varchar(5);not null"`
	DiurnalHours   float64        `gorm:"column:diurnal_hours;not null;default:0"`
	NocturnalHours float64        `gorm:"column:nocturnal_hours;not null;default:0"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Shift) TableName() string {
	return "shifts"
}

// DurationMinutes returns the shift length in whole minutes.
func (s Shift) DurationMinutes() int {
	return int(math.Round(s.DurationHours * 60))
}

// Wraps reports whether the shift crosses midnight (end at or before
// start).
func (s Shift) Wraps() bool {
	return s.End <= s.Start
}

// ContinuityFragment is the portion of a midnight-crossing shift that
// lands on the guard's next assignment day. Start is always "00:00";
// End mirrors the origin shift's end.
type ContinuityFragment struct {
	ID            uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	OriginShiftID uuid.UUID      `gorm:"column:origin_shift_id;type:uuid;not null;index"`
	AssignmentID  uuid.UUID      `gorm:"column:assignment_id;type:uuid;not null;index"`
	PlanningDayID uuid.UUID      `gorm:"column:planning_day_id;type:uuid;not null;index"`
	Start         string         `gorm:"column:start_time;type:varchar(5);not null;default:00:00"`
	End           string         `gorm:"column:end_time;type:varchar(5);not null"`
	CreatedAt     time.Time      `gorm:"column:created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (ContinuityFragment) TableName() string {
	return "continuity_fragments"
}
