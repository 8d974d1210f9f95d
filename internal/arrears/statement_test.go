package arrears

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/rental-service/internal/models"
)

func TestBuildStatement(t *testing.T) {
	owner := models.Owner{ID: uuid.New(), Name: "Carlos Gómez"}
	line := func(amount int64, paidOn time.Time) models.StatementLine {
		return models.StatementLine{LeaseID: uuid.New(), Period: "2024-03", Amount: decimal.NewFromInt(amount), PaidOn: paidOn}
	}
	lines := []models.StatementLine{
		line(1000, day(2024, 3, 20)),
		line(500, day(2024, 3, 2)),
		line(900, day(2024, 4, 2)),
	}

	st := BuildStatement(owner, lines, day(2024, 3, 1), day(2024, 3, 31), decimal.RequireFromString("0.1"), day(2024, 4, 1))

	require.Len(t, st.Lines, 2)
	assert.Equal(t, day(2024, 3, 2), st.Lines[0].PaidOn)
	assert.Equal(t, "Carlos Gómez", st.OwnerName)
	assert.True(t, decimal.NewFromInt(1500).Equal(st.TotalCollected))
	assert.True(t, decimal.NewFromInt(150).Equal(st.Commission))
	assert.True(t, st.Expenses.IsZero())
	assert.True(t, decimal.NewFromInt(1350).Equal(st.Net))
}

func TestBuildStatement_NoMovements(t *testing.T) {
	st := BuildStatement(models.Owner{Name: "x"}, nil, day(2024, 3, 1), day(2024, 3, 31), decimal.Zero, day(2024, 4, 1))

	assert.Empty(t, st.Lines)
	assert.True(t, st.Net.IsZero())
}
