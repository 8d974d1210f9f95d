package arrears

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Dan9191/rental-service/internal/models"
)

func TestBuildDashboard(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	soon := testLease(1000, 10, models.LeaseActive)
	soon.EndDate = day(2024, 3, 20)
	month := testLease(500, 20, models.LeaseActive)
	month.EndDate = day(2024, 4, 10)
	later := testLease(700, 20, models.LeaseActive)
	later.EndDate = day(2024, 5, 1)
	past := testLease(700, 20, models.LeaseActive)
	past.EndDate = day(2024, 3, 1)

	payments := []models.Payment{
		payment(soon.ID, day(2024, 2, 1), day(2024, 2, 5), 1000),
		payment(soon.ID, day(2024, 3, 1), day(2024, 3, 5), 1000),
		payment(month.ID, day(2024, 2, 1), day(2024, 3, 2), 500),
	}

	d := BuildDashboard(DashboardInput{
		ActiveLeases:  []models.Lease{soon, month, later, past},
		LeasePayments: payments,
		Payments:      payments,
		Properties: []models.PropertyStatus{
			models.PropertyRented, models.PropertyRented, models.PropertyAvailable,
		},
		UnreadAlerts: 4,
	}, now)

	assert.True(t, decimal.NewFromInt(1500).Equal(d.IncomeMonth), "income month = %s", d.IncomeMonth)
	assert.True(t, decimal.NewFromInt(2500).Equal(d.IncomeToDate), "income to date = %s", d.IncomeToDate)

	assert.Equal(t, models.ExpiringLeases{Within7: 1, Within30: 2, Within60: 3}, d.Expiring)
	assert.Equal(t, models.Occupancy{Rented: 2, Available: 1, Total: 3, Percent: 67}, d.Occupancy)
	assert.Equal(t, 4, d.UnreadAlerts)

	// Due days are 10 and 20; only the day-10 lease is past due and it paid both months.
	assert.Zero(t, d.Delinquency.Leases)
}

func TestBuildDashboard_ExpiringCountsCalendarDays(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	lease := testLease(1000, 10, models.LeaseActive)
	lease.EndDate = day(2024, 11, 7)

	d := BuildDashboard(DashboardInput{ActiveLeases: []models.Lease{lease}}, time.Date(2024, 10, 31, 0, 0, 0, 0, loc))

	assert.Equal(t, models.ExpiringLeases{Within7: 1, Within30: 1, Within60: 1}, d.Expiring)
}

func TestBuildDashboard_Empty(t *testing.T) {
	d := BuildDashboard(DashboardInput{}, time.Now())

	assert.True(t, d.IncomeMonth.IsZero())
	assert.Zero(t, d.Occupancy.Percent)
	assert.Zero(t, d.Delinquency.Leases)
}
