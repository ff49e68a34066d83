package internal

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXSheet is the sheet name used by ExportXLSX
const XLSXSheet = "Subscriptions"

// ExportXLSX writes the CSV columns to an Excel workbook, followed by a
// blank row and a monthly total row.
func ExportXLSX(w io.Writer, subs []Subscription) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", XLSXSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := strings.Split(CSVHeader, ",")
	if err := setRow(f, 1, toCells(header)); err != nil {
		return err
	}

	for i, sub := range subs {
		row := []any{
			sub.Name,
			sub.Price,
			sub.BillingCycle.Label(),
			sub.NextBilling,
			math.Round(sub.MonthlyEquivalent()),
		}
		if err := setRow(f, i+2, row); err != nil {
			return err
		}
	}

	totalRow := len(subs) + 3
	if err := setRow(f, totalRow, []any{"合計", "", "", "", math.Round(TotalMonthly(subs))}); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if err := f.SetCellStyle(XLSXSheet, "A1", "E1", bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	yenFmt := "¥#,##0"
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: &yenFmt})
	if err != nil {
		return fmt.Errorf("creating money style: %w", err)
	}
	for _, col := range []string{"B", "E"} {
		if err := f.SetCellStyle(XLSXSheet, fmt.Sprintf("%s2", col), fmt.Sprintf("%s%d", col, totalRow), money); err != nil {
			return fmt.Errorf("styling column %s: %w", col, err)
		}
	}
	if err := f.SetColWidth(XLSXSheet, "A", "A", 28); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("addressing row %d: %w", row, err)
	}
	if err := f.SetSheetRow(XLSXSheet, cell, &cells); err != nil {
		return fmt.Errorf("writing row %d: %w", row, err)
	}
	return nil
}

func toCells(values []string) []any {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
