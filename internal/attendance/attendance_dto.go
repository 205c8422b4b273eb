package attendance

import "time"

// ClockPair is one entry/exit punch on a single attendance day.
type ClockPair struct {
	Entry           string  `json:"entry"`
	Exit            string  `json:"exit"`
	DurationMinutes int     `json:"duration_minutes"`
	DiurnalHours    float64 `json:"diurnal_hours"`
	NocturnalHours  float64 `json:"nocturnal_hours"`
}

// AttendanceRecord is one employee-day extracted from the sheet.
type AttendanceRecord struct {
	Legajo         string      `json:"legajo"`
	Name           string      `json:"name"`
	Destination    string      `json:"destination"`
	Entity         string      `json:"entity"`
	Date           time.Time   `json:"date"`
	Pairs          []ClockPair `json:"pairs"`
	Holiday        bool        `json:"holiday"`
	WorkedDay      bool        `json:"worked_day"`
	DiurnalHours   float64     `json:"diurnal_hours"`
	NocturnalHours float64     `json:"nocturnal_hours"`
}

const (
	StatusMatched         = "MATCHED"
	StatusDeviated        = "DEVIATED"
	StatusUnverified      = "UNVERIFIED"
	StatusUnknownEmployee = "UNKNOWN_EMPLOYEE"
	StatusNoPlan          = "NO_PLAN"
)

// PairDelta compares one clock pair against the planned shift it was
// matched to. Planned fields are empty when no shift was left to match.
type PairDelta struct {
	Entry           string `json:"entry"`
	Exit            string `json:"exit"`
	PlannedStart    string `json:"planned_start,omitempty"`
	PlannedEnd      string `json:"planned_end,omitempty"`
	DeltaStart      int    `json:"delta_start"`
	DeltaEnd        int    `json:"delta_end"`
	WithinTolerance bool   `json:"within_tolerance"`
}

type ReconciliationResult struct {
	Legajo string      `json:"legajo"`
	Name   string      `json:"name"`
	Date   string      `json:"date"`
	Status string      `json:"status"`
	Pairs  []PairDelta `json:"pairs,omitempty"`
}

type ImportOptions struct {
	YearHint         int
	ToleranceMinutes int
	Verify           bool
}

type ImportSummary struct {
	Matched         int `json:"matched"`
	Deviated        int `json:"deviated"`
	NoPlan          int `json:"no_plan"`
	UnknownEmployee int `json:"unknown_employee"`
	Unverified      int `json:"unverified"`
}

type ImportResponse struct {
	Records int                    `json:"records"`
	Summary ImportSummary          `json:"summary"`
	Results []ReconciliationResult `json:"results"`
}
