package events

import "time"

const ShiftLifecycleTopic = "vigilancia.shift.lifecycle.v1"

const (
	ShiftActionScheduled = "SCHEDULED"
	ShiftActionUpdated   = "UPDATED"
	ShiftActionRemoved   = "REMOVED"
)

type ShiftLifecycleEvent struct {
	EventType     string    `json:"event_type"`
	Action        string    `json:"action"`
	ShiftID       string    `json:"shift_id"`
	AssignmentID  string    `json:"assignment_id"`
	PlanningDayID string    `json:"planning_day_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}
