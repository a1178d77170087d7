package httpapi

import (
	"time"

	"wagetrack/internal/domain"
)

// Wire shapes. Timestamps are RFC3339 UTC instants.

type wageResponse struct {
	HourlyWage int    `json:"hourly_wage"`
	UpdatedAt  string `json:"updated_at"`
}

type sessionResponse struct {
	ID           int64   `json:"id"`
	StartTime    string  `json:"start_time"`
	EndTime      *string `json:"end_time,omitempty"`
	HourlyWage   int     `json:"hourly_wage"`
	EarnedAmount *int    `json:"earned_amount,omitempty"`
}

type currentResponse struct {
	Session             sessionResponse `json:"session"`
	ElapsedSeconds      int64           `json:"elapsed_seconds"`
	CurrentEarnedAmount int             `json:"current_earned_amount"`
}

type dailySummaryResponse struct {
	Date              string `json:"date"`
	TotalEarnedAmount int    `json:"total_earned_amount"`
}

type dayEarningResponse struct {
	Date         string `json:"date"`
	EarnedAmount int    `json:"earned_amount"`
}

type monthlySummaryResponse struct {
	Year              int                  `json:"year"`
	Month             int                  `json:"month"`
	TotalEarnedAmount int                  `json:"total_earned_amount"`
	DailyBreakdown    []dayEarningResponse `json:"daily_breakdown"`
}

func toWageResponse(w *domain.WageSetting) wageResponse {
	return wageResponse{
		HourlyWage: w.HourlyWage,
		UpdatedAt:  w.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toSessionResponse(s *domain.WorkSession) sessionResponse {
	out := sessionResponse{
		ID:           s.ID,
		StartTime:    s.StartTime.UTC().Format(time.RFC3339),
		HourlyWage:   s.HourlyWage,
		EarnedAmount: s.EarnedAmount,
	}
	if s.EndTime != nil {
		end := s.EndTime.UTC().Format(time.RFC3339)
		out.EndTime = &end
	}
	return out
}

func toSessionResponses(sessions []*domain.WorkSession) []sessionResponse {
	out := make([]sessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toSessionResponse(s))
	}
	return out
}

func toMonthlySummaryResponse(m *domain.MonthlySummary) monthlySummaryResponse {
	out := monthlySummaryResponse{
		Year:              m.Year,
		Month:             m.Month,
		TotalEarnedAmount: m.TotalEarnedAmount,
		DailyBreakdown:    make([]dayEarningResponse, 0, len(m.DailyBreakdown)),
	}
	for _, d := range m.DailyBreakdown {
		out.DailyBreakdown = append(out.DailyBreakdown, dayEarningResponse(d))
	}
	return out
}
