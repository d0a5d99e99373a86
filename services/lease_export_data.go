package services

import "github.com/shopspring/decimal"

// LeaseChargeRow is one line of the rent breakdown table in a lease export.
type LeaseChargeRow struct {
	Description       string
	Amount            decimal.Decimal
	Frequency         Frequency
	MonthlyEquivalent decimal.Decimal
}

// LeaseExportData holds everything the lease summary xlsx/pdf need.
type LeaseExportData struct {
	Currency         string
	LeaseID          string
	CreatedDate      string
	Property         string
	Unit             string
	Tenants          []string
	LeaseType        string
	StartDate        string
	EndDate          string
	PaymentFrequency Frequency
	LateFee          string
	Rows             []LeaseChargeRow
	Summary          LeaseSummary
}

// Title is the heading used in both export formats.
func (d LeaseExportData) Title() string {
	if d.Unit == "" {
		return "Lease - " + d.Property
	}
	return "Lease - " + d.Property + " / " + d.Unit
}

// BuildChargeRows turns the base rent and additional charges into table
// rows, base rent first.
func BuildChargeRows(rent string, rentFrequency Frequency, charges []Charge, descriptions []string) []LeaseChargeRow {
	rows := []LeaseChargeRow{{
		Description:       "Base rent",
		Amount:            ParseAmount(rent),
		Frequency:         rentFrequency,
		MonthlyEquivalent: ParseAmount(rent),
	}}
	for i, c := range charges {
		desc := "Additional charge"
		if i < len(descriptions) && descriptions[i] != "" {
			desc = descriptions[i]
		}
		amount := ParseAmount(c.Amount)
		rows = append(rows, LeaseChargeRow{
			Description:       desc,
			Amount:            amount,
			Frequency:         c.Frequency,
			MonthlyEquivalent: MonthlyEquivalent(amount, c.Frequency),
		})
	}
	return rows
}
