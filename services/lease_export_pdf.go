package services

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	pdfGrey       = &props.Color{Red: 80, Green: 80, Blue: 80}
	pdfHeaderBg   = &props.Color{Red: 33, Green: 37, Blue: 41}
	pdfSummaryBg  = &props.Color{Red: 240, Green: 240, Blue: 240}
	pdfHeaderText = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// GenerateLeasePDF renders the lease summary as an A4 portrait PDF.
func GenerateLeasePDF(data LeaseExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).
		WithTopMargin(12).
		WithRightMargin(12).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addLeaseHeader(m, data)
	addLeaseDetails(m, data)
	addChargeTable(m, data)
	addLeaseSummary(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func addLeaseHeader(m core.Maroto, data LeaseExportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(data.Title(), props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
		row.New(8).Add(
			col.New(6).Add(
				text.New("Lease: "+data.LeaseID, props.Text{Size: 9, Align: align.Left, Color: pdfGrey}),
			),
			col.New(6).Add(
				text.New("Created: "+data.CreatedDate, props.Text{Size: 9, Align: align.Right, Color: pdfGrey}),
			),
		),
		row.New(4),
	)
}

func addLeaseDetails(m core.Maroto, data LeaseExportData) {
	details := [][2]string{
		{"Property", data.Property},
		{"Unit", data.Unit},
		{"Tenants", strings.Join(data.Tenants, ", ")},
		{"Lease type", data.LeaseType},
		{"Term", fmt.Sprintf("%s to %s", data.StartDate, data.EndDate)},
		{"Payment frequency", data.PaymentFrequency.Label()},
		{"Late fee", data.LateFee},
	}
	label := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Left}
	value := props.Text{Size: 9, Align: align.Left}

	for _, d := range details {
		m.AddRows(
			row.New(6).Add(
				col.New(4).Add(text.New(d[0], label)),
				col.New(8).Add(text.New(d[1], value)),
			),
		)
	}
	m.AddRows(row.New(6))
}

func addChargeTable(m core.Maroto, data LeaseExportData) {
	headerCell := &props.Cell{BackgroundColor: pdfHeaderBg}
	header := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Center, Color: pdfHeaderText}
	headerLeft := header
	headerLeft.Align = align.Left

	m.AddRows(
		row.New(8).Add(
			col.New(5).Add(text.New("Description", headerLeft)).WithStyle(headerCell),
			col.New(2).Add(text.New("Amount", header)).WithStyle(headerCell),
			col.New(2).Add(text.New("Frequency", header)).WithStyle(headerCell),
			col.New(3).Add(text.New("Monthly Equivalent", header)).WithStyle(headerCell),
		),
	)

	base := props.Text{Size: 8, Align: align.Center}
	left := base
	left.Align = align.Left
	right := base
	right.Align = align.Right

	for _, r := range data.Rows {
		m.AddRows(
			row.New(7).Add(
				col.New(5).Add(text.New(r.Description, left)),
				col.New(2).Add(text.New(FormatMoney(data.Currency, r.Amount), right)),
				col.New(2).Add(text.New(r.Frequency.Label(), base)),
				col.New(3).Add(text.New(FormatMoney(data.Currency, r.MonthlyEquivalent), right)),
			),
		)
	}
}

func addLeaseSummary(m core.Maroto, data LeaseExportData) {
	m.AddRows(row.New(6))

	cell := &props.Cell{BackgroundColor: pdfSummaryBg}
	style := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}

	lines := [][2]string{
		{"Total Monthly Rent", FormatMoney(data.Currency, data.Summary.TotalMonthly)},
		{"Security Deposit", FormatMoney(data.Currency, data.Summary.Deposit)},
		{fmt.Sprintf("Contract Value (%d months)", data.Summary.TermMonths), FormatMoney(data.Currency, data.Summary.ContractValue)},
	}
	for _, l := range lines {
		m.AddRows(
			row.New(8).Add(
				col.New(8).Add(text.New(l[0], style)).WithStyle(cell),
				col.New(4).Add(text.New(l[1], style)).WithStyle(cell),
			),
		)
	}
}
