package planning

type PlanningDayResponse struct {
	ID             string  `json:"id"`
	ScheduleID     string  `json:"schedule_id"`
	Date           string  `json:"date"`
	Window1Start   *string `json:"window1_start,omitempty"`
	Window1End     *string `json:"window1_end,omitempty"`
	Window2Start   *string `json:"window2_start,omitempty"`
	Window2End     *string `json:"window2_end,omitempty"`
	RequiredHours  float64 `json:"required_hours"`
	WorkedHours    float64 `json:"worked_hours"`
	FulfilledHours float64 `json:"fulfilled_hours"`
}
