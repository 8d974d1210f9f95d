package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Dan9191/rental-service/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPeriodKey(t *testing.T) {
	assert.Equal(t, "2024-03", PeriodKey(time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, "2024-12", PeriodKey(date(2024, 12, 1)))
	assert.Equal(t, date(2024, 3, 1), StartOfMonth(time.Date(2024, 3, 17, 15, 4, 5, 0, time.UTC)))
}

func TestMonthsBefore_YearRollover(t *testing.T) {
	got := MonthsBefore(date(2024, 1, 10), 1)
	assert.Equal(t, date(2023, 12, 10), got)
	assert.Equal(t, "2023-12", PeriodKey(MonthsBefore(StartOfMonth(date(2024, 1, 20)), 1)))
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		n    int
		want time.Time
	}{
		{"plain", date(2023, 1, 15), 6, date(2023, 7, 15)},
		{"clamps to leap february", date(2024, 1, 31), 1, date(2024, 2, 29)},
		{"clamps to february", date(2023, 1, 31), 1, date(2023, 2, 28)},
		{"crosses year forward", date(2023, 11, 30), 3, date(2024, 2, 29)},
		{"crosses year backward", date(2024, 3, 31), -4, date(2023, 11, 30)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddMonths(tt.in, tt.n))
		})
	}
}

func TestDate(t *testing.T) {
	loc := time.FixedZone("ART", -3*60*60)
	got := Date(time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC), loc)
	assert.Equal(t, time.Date(2024, 5, 20, 0, 0, 0, 0, loc), got)
}

func TestDaysBetween_IgnoresClockAndDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// Clocks fall back on 2024-11-03, so the span is 169 hours.
	now := time.Date(2024, 10, 31, 0, 0, 0, 0, loc)
	end := time.Date(2024, 11, 7, 0, 0, 0, 0, loc)
	assert.Equal(t, 7, DaysBetween(now, end))

	// Clocks spring forward on 2024-03-10, so the span is 167 hours.
	assert.Equal(t, 7, DaysBetween(time.Date(2024, 3, 5, 0, 0, 0, 0, loc), time.Date(2024, 3, 12, 0, 0, 0, 0, loc)))

	assert.Equal(t, 1, DaysBetween(time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC), date(2024, 3, 16)))
	assert.Equal(t, 0, DaysBetween(time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC), date(2024, 3, 15)))
	assert.Equal(t, -1, DaysBetween(time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC), date(2024, 3, 14)))
}

func TestIsPaid_MatchesPeriodNotPaymentDate(t *testing.T) {
	payments := []models.Payment{{
		ID:     uuid.New(),
		Period: date(2024, 3, 1),
		Amount: decimal.NewFromInt(1000),
		PaidOn: date(2024, 4, 15),
	}}

	assert.True(t, IsPaid("2024-03", payments))
	assert.False(t, IsPaid("2024-04", payments))
	assert.False(t, IsPaid("2024-03", nil))
}

func TestIndexPayments(t *testing.T) {
	leaseA, leaseB := uuid.New(), uuid.New()
	first := uuid.New()
	payments := []models.Payment{
		{ID: first, LeaseID: leaseA, Period: date(2024, 2, 1)},
		{ID: uuid.New(), LeaseID: leaseA, Period: date(2024, 2, 1)},
		{ID: uuid.New(), LeaseID: leaseB, Period: date(2024, 3, 1)},
	}

	idx := IndexPayments(payments)

	p, ok := idx.Lookup(leaseA, "2024-02")
	assert.True(t, ok)
	assert.Equal(t, first, p.ID)
	_, ok = idx.Lookup(leaseA, "2024-03")
	assert.False(t, ok)
	_, ok = idx.Lookup(uuid.New(), "2024-03")
	assert.False(t, ok)
}
