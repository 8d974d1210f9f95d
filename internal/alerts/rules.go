package alerts

import (
	"fmt"
	"time"

	"github.com/Dan9191/rental-service/internal/billing"
	"github.com/Dan9191/rental-service/internal/models"
)

const (
	expiryHorizonDays = 30
	expiryUrgentDays  = 7
	dayLayout         = "2006-01-02"
)

// Candidate is an alert a rule wants to raise. It is inserted only when no alert of the same
// kind exists for the lease since Since. A zero Since skips the lookback and leaves the
// decision to the (lease, kind, dedupe key) uniqueness alone.
type Candidate struct {
	Kind      models.AlertKind
	Message   string
	Since     time.Time
	DedupeKey string
}

// ExpiryRule raises lease_expiry within 7 days of the end date and renewal_suggested
// between 8 and 30 days.
func ExpiryRule(lease models.Lease, now time.Time) []Candidate {
	end := billing.Date(lease.EndDate, now.Location())
	days := billing.DaysBetween(now, end)
	if days <= 0 || days > expiryHorizonDays {
		return nil
	}

	c := Candidate{
		Kind:      models.AlertRenewalSuggested,
		Message:   fmt.Sprintf("Lease ends in %d days. Renewal suggested.", days),
		Since:     now.Add(-24 * time.Hour),
		DedupeKey: now.Format(dayLayout),
	}
	if days <= expiryUrgentDays {
		c.Kind = models.AlertLeaseExpiry
		c.Message = fmt.Sprintf("Lease expires in %d days.", days)
	}
	return []Candidate{c}
}

// RentDueRule raises rent_due on the due day and on the day after it
func RentDueRule(lease models.Lease, now time.Time) []Candidate {
	today := now.Day()
	var msg string
	switch lease.DueDay {
	case today:
		msg = "Rent is due today."
	case today - 1:
		msg = "Rent is due tomorrow."
	default:
		return nil
	}
	return []Candidate{{
		Kind:      models.AlertRentDue,
		Message:   msg,
		Since:     now.Add(-24 * time.Hour),
		DedupeKey: now.Format(dayLayout),
	}}
}

// OverduePeriods returns the previous and current billing periods, in that order
func OverduePeriods(now time.Time) [2]time.Time {
	current := billing.StartOfMonth(now)
	return [2]time.Time{billing.MonthsBefore(current, 1), current}
}

// OverdueRule raises payment_overdue once per unpaid period among the previous and current
// month, only after the due day has passed. paid holds the period keys that have a payment.
// The period key is the dedupe key, so an alert for one period never hides another.
func OverdueRule(lease models.Lease, now time.Time, paid map[string]bool) []Candidate {
	if now.Day() <= lease.DueDay {
		return nil
	}
	var out []Candidate
	for _, period := range OverduePeriods(now) {
		key := billing.PeriodKey(period)
		if paid[key] {
			continue
		}
		out = append(out, Candidate{
			Kind:      models.AlertPaymentOverdue,
			Message:   fmt.Sprintf("Payment overdue for period %s.", key),
			DedupeKey: key,
		})
	}
	return out
}

// IncreaseRule raises scheduled_increase during the 31 days following an increase anchor, which
// is the lease start until the first anniversary.
// Leases without a usable increase interval never qualify.
func IncreaseRule(lease models.Lease, now time.Time) []Candidate {
	if lease.Increase == nil || lease.Increase.EveryMonths <= 0 {
		return nil
	}
	today := billing.Date(now, now.Location())
	start := billing.Date(lease.StartDate, now.Location())
	anchor, _, ok := billing.Anniversaries(start, lease.Increase.EveryMonths, today)
	if !ok || !billing.InIncreaseWindow(anchor, today) {
		return nil
	}
	return []Candidate{{
		Kind:      models.AlertScheduledIncrease,
		Message:   "Rent increase applies this period per lease terms.",
		Since:     today,
		DedupeKey: today.Format(dayLayout),
	}}
}
