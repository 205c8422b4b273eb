package shift

type CreateShiftRequest struct {
	AssignmentID  string  `json:"assignment_id" binding:"required"`
	Start         string  `json:"start" binding:"required"`
	DurationHours float64 `json:"duration_hours" binding:"required,gt=0"`
}

type UpdateShiftRequest struct {
	Start         string  `json:"start" binding:"required"`
	DurationHours float64 `json:"duration_hours" binding:"required,gt=0"`
}

type BulkShiftItem struct {
	Start         string  `json:"start" binding:"required"`
	DurationHours float64 `json:"duration_hours" binding:"required,gt=0"`
}

type BulkCreateShiftRequest struct {
	AssignmentID string          `json:"assignment_id" binding:"required"`
	Items        []BulkShiftItem `json:"items" binding:"required,min=1,dive"`
}

type DuplicateDayRequest struct {
	FromAssignmentID string `json:"from_assignment_id" binding:"required"`
	ToAssignmentID   string `json:"to_assignment_id" binding:"required"`
}

type ShiftResponse struct {
	ID             string  `json:"id"`
	AssignmentID   string  `json:"assignment_id"`
	PlanningDayID  string  `json:"planning_day_id"`
	Start          string  `json:"start"`
	End            string  `json:"end"`
	DurationHours  float64 `json:"duration_hours"`
	DiurnalHours   float64 `json:"diurnal_hours"`
	NocturnalHours float64 `json:"nocturnal_hours"`
}

type RejectedShiftItem struct {
	Index  int    `json:"index"`
	Start  string `json:"start"`
	Reason string `json:"reason"`
}

type BulkCreateShiftResponse struct {
	Created  []ShiftResponse     `json:"created"`
	Rejected []RejectedShiftItem `json:"rejected"`
}

type DuplicateDayResponse struct {
	Created  []ShiftResponse     `json:"created"`
	Rejected []RejectedShiftItem `json:"rejected"`
	Warnings []string            `json:"warnings,omitempty"`
}
