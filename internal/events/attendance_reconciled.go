package events

import "time"

const AttendanceReconciledTopic = "vigilancia.attendance.reconciled.v1"

type AttendanceReconciledEvent struct {
	EventType        string    `json:"event_type"`
	SheetName        string    `json:"sheet_name"`
	ToleranceMinutes int       `json:"tolerance_minutes"`
	Matched          int       `json:"matched"`
	Deviated         int       `json:"deviated"`
	NoPlan           int       `json:"no_plan"`
	UnknownEmployee  int       `json:"unknown_employee"`
	Unverified       int       `json:"unverified"`
	OccurredAt       time.Time `json:"occurred_at"`
}
