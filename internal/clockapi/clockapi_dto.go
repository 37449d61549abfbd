package clockapi

import "go-timely/internal/domain"

// ClockRequest is the body of POST /clockin.
type ClockRequest struct {
	Action   domain.ClockAction `json:"action,omitempty"`
	Hour     string             `json:"hour"`
	Location *domain.Point      `json:"location,omitempty"`
	PhotoURL *string            `json:"photoUrl,omitempty"`
	Notes    *string            `json:"notes,omitempty"`
}

// DraftRequest is the body of POST /clockin/draft.
type DraftRequest struct {
	Action   domain.ClockAction `json:"action,omitempty"`
	Hour     string             `json:"hour"`
	Location *domain.Point      `json:"location,omitempty"`
}

type UpdateClockEventRequest struct {
	Hour     string  `json:"hour" binding:"required"`
	PhotoURL *string `json:"photoUrl,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

type HistoryParams struct {
	StartDate string
	EndDate   string
	Timezone  string
}

type HistoryDay struct {
	Date                     string              `json:"date"`
	TotalHours               float64             `json:"totalHours"`
	TotalWorkedTime          string              `json:"totalWorkedTime"`
	ExpectedHours            *float64            `json:"expectedHours,omitempty"`
	ExpectedHoursFormatted   string              `json:"expectedHoursFormatted,omitempty"`
	HoursDifference          *float64            `json:"hoursDifference,omitempty"`
	HoursDifferenceFormatted string              `json:"hoursDifferenceFormatted,omitempty"`
	Status                   string              `json:"status,omitempty"`
	Events                   []domain.ClockEvent `json:"events"`
}

type HistorySummary struct {
	TotalWorkedHours            float64  `json:"totalWorkedHours"`
	TotalWorkedHoursFormatted   string   `json:"totalWorkedHoursFormatted"`
	TotalExpectedHours          float64  `json:"totalExpectedHours"`
	TotalExpectedHoursFormatted string   `json:"totalExpectedHoursFormatted"`
	HoursDifference             float64  `json:"hoursDifference"`
	HoursDifferenceFormatted    string   `json:"hoursDifferenceFormatted"`
	Status                      string   `json:"status"`
	DaysWorked                  int      `json:"daysWorked"`
	DaysWithSchedule            int      `json:"daysWithSchedule"`
	AverageHoursPerDay          float64  `json:"averageHoursPerDay"`
	AverageHoursPerDayFormatted string   `json:"averageHoursPerDayFormatted"`
	TotalDays                   int      `json:"totalDays"`
	TotalEarnings               *float64 `json:"totalEarnings,omitempty"`
}

type HistoryResponse struct {
	Data    []HistoryDay   `json:"data"`
	Summary HistorySummary `json:"summary"`
}

type WorkScheduleDay struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type CustomHoliday struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

type UserSettings struct {
	ID             string                      `json:"id"`
	WorkSchedule   map[string]*WorkScheduleDay `json:"workSchedule,omitempty"`
	CustomHolidays []CustomHoliday             `json:"customHolidays,omitempty"`
	WorkLocation   *domain.Point               `json:"workLocation,omitempty"`
}
