package domain

import (
	"sort"
	"time"
)

// Calendar bucketing for summaries and list filters uses a fixed reference
// time zone so a session always lands in the same day regardless of the
// server's locale.
var SummaryLocation = time.UTC

// DailySummary is the earnings total for one calendar day. Derived on
// demand from closed sessions; never stored.
type DailySummary struct {
	Date              string
	TotalEarnedAmount int
}

// DayEarning is one entry of a monthly breakdown.
type DayEarning struct {
	Date         string
	EarnedAmount int
}

// MonthlySummary aggregates closed sessions of one calendar month.
// DailyBreakdown is sorted ascending by date with no duplicate days, and
// TotalEarnedAmount always equals the sum of its entries.
type MonthlySummary struct {
	Year              int
	Month             int
	TotalEarnedAmount int
	DailyBreakdown    []DayEarning
}

const dateLayout = "2006-01-02"

// TouchesDate reports whether the session's start date or end date falls on
// the given calendar day.
func (s *WorkSession) TouchesDate(date time.Time) bool {
	y, m, d := date.In(SummaryLocation).Date()
	if sameDay(s.StartTime, y, m, d) {
		return true
	}
	return s.EndTime != nil && sameDay(*s.EndTime, y, m, d)
}

// TouchesMonth reports whether the session's start date or end date falls
// in the given calendar month.
func (s *WorkSession) TouchesMonth(year int, month time.Month) bool {
	if sameMonth(s.StartTime, year, month) {
		return true
	}
	return s.EndTime != nil && sameMonth(*s.EndTime, year, month)
}

func sameDay(t time.Time, y int, m time.Month, d int) bool {
	ty, tm, td := t.In(SummaryLocation).Date()
	return ty == y && tm == m && td == d
}

func sameMonth(t time.Time, year int, month time.Month) bool {
	ty, tm, _ := t.In(SummaryLocation).Date()
	return ty == year && tm == month
}

// SummarizeDay sums earned amounts over closed sessions touching the given
// day. Open sessions are excluded; zero matching sessions is a zero total,
// not an error.
func SummarizeDay(sessions []*WorkSession, date time.Time) DailySummary {
	out := DailySummary{Date: date.In(SummaryLocation).Format(dateLayout)}
	for _, s := range sessions {
		if s.Open() || s.EarnedAmount == nil {
			continue
		}
		if s.TouchesDate(date) {
			out.TotalEarnedAmount += *s.EarnedAmount
		}
	}
	return out
}

// SummarizeMonth aggregates closed sessions whose end date falls in the
// given month, grouped by end-date day.
func SummarizeMonth(sessions []*WorkSession, year int, month time.Month) MonthlySummary {
	out := MonthlySummary{Year: year, Month: int(month)}

	byDay := make(map[string]int)
	for _, s := range sessions {
		if s.Open() || s.EarnedAmount == nil {
			continue
		}
		if !sameMonth(*s.EndTime, year, month) {
			continue
		}
		day := s.EndTime.In(SummaryLocation).Format(dateLayout)
		byDay[day] += *s.EarnedAmount
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	for _, day := range days {
		out.DailyBreakdown = append(out.DailyBreakdown, DayEarning{Date: day, EarnedAmount: byDay[day]})
		out.TotalEarnedAmount += byDay[day]
	}
	return out
}
