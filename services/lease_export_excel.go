package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const leaseSheetName = "Lease Summary"

// GenerateLeaseExcel creates an xlsx lease summary and returns the file bytes.
func GenerateLeaseExcel(data LeaseExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, leaseSheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}
	sheet := leaseSheetName

	columns := []string{"A", "B", "C", "D"}
	lastCol := columns[len(columns)-1]
	widths := []float64{34, 18, 14, 20}
	for i, col := range columns {
		if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 10},
	})
	if err != nil {
		return nil, fmt.Errorf("create label style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	rowStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create row style: %w", err)
	}

	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	// ── Title ───────────────────────────────────────────────────────────

	if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheet, "A1", sanitizeExcelCell(data.Title()))
	f.SetCellStyle(sheet, "A1", lastCol+"1", titleStyle)

	// ── Lease details ───────────────────────────────────────────────────

	details := [][2]string{
		{"Lease", data.LeaseID},
		{"Created", data.CreatedDate},
		{"Property", data.Property},
		{"Unit", data.Unit},
		{"Tenants", strings.Join(data.Tenants, ", ")},
		{"Lease type", data.LeaseType},
		{"Start date", data.StartDate},
		{"End date", data.EndDate},
		{"Payment frequency", data.PaymentFrequency.Label()},
		{"Late fee", data.LateFee},
	}
	row := 3
	for _, d := range details {
		r := fmt.Sprintf("%d", row)
		f.SetCellValue(sheet, "A"+r, d[0])
		f.SetCellStyle(sheet, "A"+r, "A"+r, labelStyle)
		f.SetCellValue(sheet, "B"+r, sanitizeExcelCell(d[1]))
		row++
	}

	// ── Rent breakdown ──────────────────────────────────────────────────

	row++
	headerRow := fmt.Sprintf("%d", row)
	headers := []string{"Description", "Amount", "Frequency", "Monthly Equivalent"}
	for i, h := range headers {
		f.SetCellValue(sheet, columns[i]+headerRow, h)
	}
	f.SetCellStyle(sheet, "A"+headerRow, lastCol+headerRow, headerStyle)
	row++

	for _, cr := range data.Rows {
		r := fmt.Sprintf("%d", row)
		f.SetCellValue(sheet, "A"+r, sanitizeExcelCell(cr.Description))
		f.SetCellValue(sheet, "B"+r, FormatMoney(data.Currency, cr.Amount))
		f.SetCellValue(sheet, "C"+r, cr.Frequency.Label())
		f.SetCellValue(sheet, "D"+r, FormatMoney(data.Currency, cr.MonthlyEquivalent))
		f.SetCellStyle(sheet, "A"+r, lastCol+r, rowStyle)
		row++
	}

	// ── Summary ─────────────────────────────────────────────────────────

	row++
	summary := [][2]string{
		{"Total monthly:", FormatMoney(data.Currency, data.Summary.TotalMonthly)},
		{"Deposit:", FormatMoney(data.Currency, data.Summary.Deposit)},
		{fmt.Sprintf("Contract value (%d months):", data.Summary.TermMonths), FormatMoney(data.Currency, data.Summary.ContractValue)},
	}
	for _, s := range summary {
		r := fmt.Sprintf("%d", row)
		f.SetCellValue(sheet, "C"+r, s[0])
		f.SetCellStyle(sheet, "C"+r, "C"+r, summaryLabelStyle)
		f.SetCellValue(sheet, "D"+r, s[1])
		f.SetCellStyle(sheet, "D"+r, "D"+r, labelStyle)
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1,
		}
	}
	return borders
}
