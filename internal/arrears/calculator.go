// Package arrears computes read-only payment status figures for active leases: the
// two-period arrears table, delinquency totals, the dashboard and owner statements.
// Every function is pure over its inputs and the given instant.
package arrears

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Dan9191/rental-service/internal/billing"
	"github.com/Dan9191/rental-service/internal/models"
)

const noRef = "—"

// Calculate builds two rows per active lease, previous period first, then the current one
func Calculate(leases []models.Lease, payments []models.Payment, asOf time.Time) models.ArrearsReport {
	current := billing.StartOfMonth(asOf)
	periods := [2]time.Time{billing.MonthsBefore(current, 1), current}
	idx := billing.IndexPayments(payments)

	report := models.ArrearsReport{
		AsOf: asOf,
		Rows: make([]models.ArrearsRow, 0, 2*len(leases)),
	}
	for i := range leases {
		lease := &leases[i]
		if !lease.IsActive() {
			continue
		}
		for _, period := range periods {
			row := models.ArrearsRow{
				LeaseID:         lease.ID,
				PropertyAddress: propertyAddress(lease),
				TenantName:      tenantName(lease),
				AmountDue:       lease.MonthlyAmount,
				DueDay:          lease.DueDay,
				Period:          billing.PeriodKey(period),
				PeriodStart:     period,
			}
			if p, ok := idx.Lookup(lease.ID, row.Period); ok {
				id, amount, paidOn := p.ID, p.Amount, p.PaidOn
				row.Paid = true
				row.PaymentID = &id
				row.AmountPaid = &amount
				row.PaidOn = &paidOn
				report.OnTrack++
			} else {
				report.Owing++
			}
			report.Rows = append(report.Rows, row)
		}
	}
	return report
}

// Delinquency counts active leases past their due day with the current or previous period
// unpaid. The amount adds the monthly rent once per unpaid period, so a lease owing both
// months counts once but contributes twice its rent.
func Delinquency(leases []models.Lease, payments []models.Payment, asOf time.Time) models.DelinquencySummary {
	current := billing.StartOfMonth(asOf)
	currentKey := billing.PeriodKey(current)
	previousKey := billing.PeriodKey(billing.MonthsBefore(current, 1))
	idx := billing.IndexPayments(payments)

	summary := models.DelinquencySummary{Amount: decimal.Zero}
	for i := range leases {
		lease := &leases[i]
		if !lease.IsActive() || asOf.Day() <= lease.DueDay {
			continue
		}
		_, paidCurrent := idx.Lookup(lease.ID, currentKey)
		_, paidPrevious := idx.Lookup(lease.ID, previousKey)
		if paidCurrent && paidPrevious {
			continue
		}
		summary.Leases++
		if !paidCurrent {
			summary.Amount = summary.Amount.Add(lease.MonthlyAmount)
		}
		if !paidPrevious {
			summary.Amount = summary.Amount.Add(lease.MonthlyAmount)
		}
	}
	return summary
}

func propertyAddress(l *models.Lease) string {
	if l.Property == nil || l.Property.Address == "" {
		return noRef
	}
	return l.Property.Address
}

func tenantName(l *models.Lease) string {
	if l.Tenant == nil || l.Tenant.Name == "" {
		return noRef
	}
	return l.Tenant.Name
}
