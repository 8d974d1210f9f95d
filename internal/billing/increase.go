package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Dan9191/rental-service/internal/models"
)

// IncreaseWindowDays is how long after an anniversary the increase stays applicable
const IncreaseWindowDays = 31

// Anniversaries finds the most recent increase anchor on or before today and the anchor
// one interval earlier. During the first interval the anchor is the lease start itself and
// previous equals latest. ok is false when everyMonths is not positive or the lease has not
// started by today.
func Anniversaries(start time.Time, everyMonths int, today time.Time) (latest, previous time.Time, ok bool) {
	if everyMonths <= 0 || start.IsZero() || start.After(today) {
		return time.Time{}, time.Time{}, false
	}

	previous = start
	next := AddMonths(start, everyMonths)
	if next.After(today) {
		return start, start, true
	}
	for {
		after := AddMonths(next, everyMonths)
		if after.After(today) {
			return next, previous, true
		}
		previous, next = next, after
	}
}

// InIncreaseWindow reports whether today falls within [anchor, anchor + 31 days]
func InIncreaseWindow(anchor, today time.Time) bool {
	end := anchor.AddDate(0, 0, IncreaseWindowDays)
	return !today.Before(anchor) && !today.After(end)
}

// ApplyIncrease returns the rent after one increase step, rounded to cents.
// A nil rule leaves the amount unchanged.
func ApplyIncrease(amount decimal.Decimal, rule *models.IncreaseRule) decimal.Decimal {
	if rule == nil {
		return amount
	}
	switch rule.Type {
	case models.IncreasePercentage:
		factor := decimal.NewFromInt(1).Add(rule.Value.Div(decimal.NewFromInt(100)))
		return amount.Mul(factor).Round(2)
	case models.IncreaseFixedAmount:
		return amount.Add(rule.Value).Round(2)
	default:
		return amount
	}
}
