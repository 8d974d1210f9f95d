// Package billing holds the calendar arithmetic shared by arrears reporting and alert
// generation: period keys, month stepping and increase anniversaries.
package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/Dan9191/rental-service/internal/models"
)

// PeriodLayout formats a billing period key
const PeriodLayout = "2006-01"

// PeriodKey truncates t to its billing period, "YYYY-MM"
func PeriodKey(t time.Time) string {
	return t.Format(PeriodLayout)
}

// StartOfMonth returns midnight of the first day of t's month
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// Date drops the clock of t and places its calendar date in loc.
// Dates read from the database arrive as UTC midnight.
func Date(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DaysBetween counts calendar days from the date of from to the date of to, ignoring the
// clock and any DST shift in between. Both dates are read in their own locations.
func DaysBetween(from, to time.Time) int {
	a := Date(from, time.UTC)
	b := Date(to, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// AddMonths moves t by n calendar months, clamping the day to the end of the target month
// (Jan 31 + 1 month is Feb 28 or 29).
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(first); d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

// MonthsBefore moves t back n calendar months
func MonthsBefore(t time.Time, n int) time.Time {
	return AddMonths(t, -n)
}

func daysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// IsPaid reports whether any payment covers the given period key.
// Matching is by obligated period; when the money arrived does not matter.
func IsPaid(periodKey string, payments []models.Payment) bool {
	for _, p := range payments {
		if PeriodKey(p.Period) == periodKey {
			return true
		}
	}
	return false
}

// PaymentIndex maps lease id and period key to the payment covering it
type PaymentIndex map[uuid.UUID]map[string]*models.Payment

// IndexPayments builds a PaymentIndex. When a period has several payments the first one wins.
func IndexPayments(payments []models.Payment) PaymentIndex {
	idx := make(PaymentIndex)
	for i := range payments {
		p := &payments[i]
		byPeriod, ok := idx[p.LeaseID]
		if !ok {
			byPeriod = make(map[string]*models.Payment)
			idx[p.LeaseID] = byPeriod
		}
		key := PeriodKey(p.Period)
		if _, exists := byPeriod[key]; !exists {
			byPeriod[key] = p
		}
	}
	return idx
}

// Lookup returns the payment covering a lease period, if any
func (idx PaymentIndex) Lookup(leaseID uuid.UUID, periodKey string) (*models.Payment, bool) {
	p, ok := idx[leaseID][periodKey]
	return p, ok
}
