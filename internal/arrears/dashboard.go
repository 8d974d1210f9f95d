package arrears

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Dan9191/rental-service/internal/billing"
	"github.com/Dan9191/rental-service/internal/models"
)

// DashboardInput is everything the dashboard is computed from
type DashboardInput struct {
	ActiveLeases []models.Lease
	// LeasePayments are the payments of ActiveLeases, used for delinquency.
	LeasePayments []models.Payment
	// Payments is every recorded payment, used for income.
	Payments     []models.Payment
	Properties   []models.PropertyStatus
	UnreadAlerts int
}

// BuildDashboard computes the portfolio figures as of now
func BuildDashboard(in DashboardInput, now time.Time) models.Dashboard {
	d := models.Dashboard{
		IncomeMonth:  decimal.Zero,
		IncomeToDate: decimal.Zero,
		Delinquency:  Delinquency(in.ActiveLeases, in.LeasePayments, now),
		Expiring:     expiring(in.ActiveLeases, now),
		Occupancy:    occupancy(in.Properties),
		UnreadAlerts: in.UnreadAlerts,
	}

	monthStart := billing.StartOfMonth(now)
	monthEnd := billing.AddMonths(monthStart, 1)
	for _, p := range in.Payments {
		d.IncomeToDate = d.IncomeToDate.Add(p.Amount)
		paidOn := billing.Date(p.PaidOn, now.Location())
		if !paidOn.Before(monthStart) && paidOn.Before(monthEnd) {
			d.IncomeMonth = d.IncomeMonth.Add(p.Amount)
		}
	}
	return d
}

func expiring(leases []models.Lease, now time.Time) models.ExpiringLeases {
	var e models.ExpiringLeases
	for i := range leases {
		if !leases[i].IsActive() {
			continue
		}
		days := billing.DaysBetween(now, billing.Date(leases[i].EndDate, now.Location()))
		if days <= 0 {
			continue
		}
		if days <= 7 {
			e.Within7++
		}
		if days <= 30 {
			e.Within30++
		}
		if days <= 60 {
			e.Within60++
		}
	}
	return e
}

func occupancy(statuses []models.PropertyStatus) models.Occupancy {
	o := models.Occupancy{Total: len(statuses)}
	for _, s := range statuses {
		switch s {
		case models.PropertyRented:
			o.Rented++
		case models.PropertyAvailable:
			o.Available++
		}
	}
	if o.Total > 0 {
		o.Percent = int(math.Round(float64(o.Rented) / float64(o.Total) * 100))
	}
	return o
}
