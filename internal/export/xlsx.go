// Package export renders reports as spreadsheets.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Dan9191/rental-service/internal/models"
)

// ContentType is the media type of the files written by this package
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const dateLayout = "02/01/2006"

// ArrearsXLSX writes the arrears report as a single-sheet workbook
func ArrearsXLSX(w io.Writer, report models.ArrearsReport) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Arrears"
	if err := newSheet(f, sheet, []string{"Property", "Tenant", "Period", "Due day", "Amount due", "Paid", "Amount paid", "Paid on"}); err != nil {
		return err
	}

	for i, r := range report.Rows {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.PropertyAddress)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.TenantName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.Period)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.DueDay)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.AmountDue.InexactFloat64())
		if r.Paid {
			f.SetCellValue(sheet, fmt.Sprintf("F%d", row), "yes")
		} else {
			f.SetCellValue(sheet, fmt.Sprintf("F%d", row), "no")
		}
		if r.AmountPaid != nil {
			f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.AmountPaid.InexactFloat64())
		}
		if r.PaidOn != nil {
			f.SetCellValue(sheet, fmt.Sprintf("H%d", row), r.PaidOn.Format(dateLayout))
		}
	}

	summary := len(report.Rows) + 3
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summary), "On track")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", summary), report.OnTrack)
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summary+1), "Owing")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", summary+1), report.Owing)

	return write(f, w)
}

// StatementXLSX writes an owner statement with its lines followed by the totals
func StatementXLSX(w io.Writer, st models.Statement) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Statement"
	if err := newSheet(f, sheet, []string{"Property", "Tenant", "Period", "Paid on", "Amount"}); err != nil {
		return err
	}

	for i, l := range st.Lines {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), l.PropertyAddress)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), l.TenantName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), l.Period)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), l.PaidOn.Format(dateLayout))
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), l.Amount.InexactFloat64())
	}

	row := len(st.Lines) + 3
	totals := []struct {
		label string
		value float64
	}{
		{"Total collected", st.TotalCollected.InexactFloat64()},
		{"Commission", st.Commission.InexactFloat64()},
		{"Expenses", st.Expenses.InexactFloat64()},
		{"Net", st.Net.InexactFloat64()},
	}
	for i, t := range totals {
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row+i), t.label)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row+i), t.value)
	}

	return write(f, w)
}

// FileName builds a timestamped attachment name for prefix
func FileName(prefix string, t time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", prefix, t.Format("20060102_150405"))
}

// newSheet renames the default sheet to name and writes the header row
func newSheet(f *excelize.File, name string, headers []string) error {
	if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		f.SetCellValue(name, cell, header)
	}
	return nil
}

func write(f *excelize.File, w io.Writer) error {
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
