package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Dan9191/rental-service/internal/models"
)

func TestAnniversaries_SelectsMostRecentAnchor(t *testing.T) {
	latest, previous, ok := Anniversaries(date(2023, 1, 15), 6, date(2024, 2, 1))

	assert.True(t, ok)
	assert.Equal(t, date(2024, 1, 15), latest)
	assert.Equal(t, date(2023, 7, 15), previous)
	assert.True(t, InIncreaseWindow(latest, date(2024, 2, 1)))
}

func TestAnniversaries_OnAnniversaryDay(t *testing.T) {
	today := time.Date(2023, 7, 15, 9, 30, 0, 0, time.UTC)
	latest, previous, ok := Anniversaries(date(2023, 1, 15), 6, today)

	assert.True(t, ok)
	assert.Equal(t, date(2023, 7, 15), latest)
	assert.Equal(t, date(2023, 1, 15), previous)
}

func TestAnniversaries_FirstIntervalAnchorsOnStart(t *testing.T) {
	latest, previous, ok := Anniversaries(date(2024, 1, 15), 6, date(2024, 2, 1))

	assert.True(t, ok)
	assert.Equal(t, date(2024, 1, 15), latest)
	assert.Equal(t, date(2024, 1, 15), previous)
	assert.True(t, InIncreaseWindow(latest, date(2024, 1, 20)))
}

func TestAnniversaries_BeforeStart(t *testing.T) {
	_, _, ok := Anniversaries(date(2024, 1, 15), 6, date(2024, 1, 14))
	assert.False(t, ok)
}

func TestAnniversaries_InvalidInterval(t *testing.T) {
	for _, n := range []int{0, -3} {
		_, _, ok := Anniversaries(date(2020, 1, 1), n, date(2024, 2, 1))
		assert.False(t, ok, "interval %d", n)
	}
}

func TestInIncreaseWindow(t *testing.T) {
	anchor := date(2024, 1, 15)

	assert.True(t, InIncreaseWindow(anchor, anchor))
	assert.True(t, InIncreaseWindow(anchor, date(2024, 2, 15)))
	assert.False(t, InIncreaseWindow(anchor, date(2024, 2, 16)))
	assert.False(t, InIncreaseWindow(anchor, date(2024, 1, 14)))
}

func TestApplyIncrease(t *testing.T) {
	amount := decimal.NewFromInt(1000)

	pct := &models.IncreaseRule{EveryMonths: 6, Type: models.IncreasePercentage, Value: decimal.RequireFromString("12.5")}
	assert.True(t, decimal.RequireFromString("1125").Equal(ApplyIncrease(amount, pct)))

	fixed := &models.IncreaseRule{EveryMonths: 12, Type: models.IncreaseFixedAmount, Value: decimal.NewFromInt(150)}
	assert.True(t, decimal.NewFromInt(1150).Equal(ApplyIncrease(amount, fixed)))

	assert.True(t, amount.Equal(ApplyIncrease(amount, nil)))
}
