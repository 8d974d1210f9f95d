package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Dan9191/rental-service/internal/models"
)

func TestArrearsXLSX(t *testing.T) {
	paidOn := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	paid := decimal.NewFromInt(1000)
	report := models.ArrearsReport{
		AsOf: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Rows: []models.ArrearsRow{
			{LeaseID: uuid.New(), PropertyAddress: "Av. Santa Fe 100", TenantName: "Ana Pérez", AmountDue: paid, DueDay: 10, Period: "2024-02"},
			{LeaseID: uuid.New(), PropertyAddress: "Av. Santa Fe 100", TenantName: "Ana Pérez", AmountDue: paid, DueDay: 10, Period: "2024-03", Paid: true, AmountPaid: &paid, PaidOn: &paidOn},
		},
		OnTrack: 1,
		Owing:   1,
	}

	var buf bytes.Buffer
	require.NoError(t, ArrearsXLSX(&buf, report))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Arrears"}, f.GetSheetList())
	cell := func(axis string) string {
		v, err := f.GetCellValue("Arrears", axis)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, "Property", cell("A1"))
	assert.Equal(t, "2024-02", cell("C2"))
	assert.Equal(t, "no", cell("F2"))
	assert.Equal(t, "", cell("H2"))
	assert.Equal(t, "yes", cell("F3"))
	assert.Equal(t, "05/03/2024", cell("H3"))
	assert.Equal(t, "Owing", cell("A6"))
	assert.Equal(t, "1", cell("B6"))
}

func TestStatementXLSX(t *testing.T) {
	st := models.Statement{
		OwnerName: "Carlos Gómez",
		Lines: []models.StatementLine{
			{PropertyAddress: "Calle 1", TenantName: "Ana", Period: "2024-03", Amount: decimal.NewFromInt(1200), PaidOn: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)},
		},
		TotalCollected: decimal.NewFromInt(1200),
		Commission:     decimal.NewFromInt(96),
		Expenses:       decimal.Zero,
		Net:            decimal.NewFromInt(1104),
	}

	var buf bytes.Buffer
	require.NoError(t, StatementXLSX(&buf, st))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	label, _ := f.GetCellValue("Statement", "D7")
	net, _ := f.GetCellValue("Statement", "E7")
	assert.Equal(t, "Net", label)
	assert.Equal(t, "1104", net)
	paidOn, _ := f.GetCellValue("Statement", "D2")
	assert.Equal(t, "09/03/2024", paidOn)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "arrears_20240315_080000.xlsx", FileName("arrears", time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)))
}
