// Package services provides rent, fee and formatting calculations for the
// dashboard along with lease summary exports.
package services

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is how often a rent component is billed.
type Frequency string

const (
	Weekly    Frequency = "weekly"
	Biweekly  Frequency = "biweekly"
	Monthly   Frequency = "monthly"
	Quarterly Frequency = "quarterly"
	Annually  Frequency = "annually"
)

// Frequencies lists the billing frequencies in dropdown order.
var Frequencies = []Frequency{Weekly, Biweekly, Monthly, Quarterly, Annually}

// Valid reports whether f is one of the known billing frequencies.
func (f Frequency) Valid() bool {
	for _, known := range Frequencies {
		if f == known {
			return true
		}
	}
	return false
}

// Label returns the display name for a frequency.
func (f Frequency) Label() string {
	switch f {
	case Weekly:
		return "Weekly"
	case Biweekly:
		return "Bi-weekly"
	case Monthly:
		return "Monthly"
	case Quarterly:
		return "Quarterly"
	case Annually:
		return "Annually"
	default:
		return string(f)
	}
}

var (
	twelve    = decimal.NewFromInt(12)
	fiftyTwo  = decimal.NewFromInt(52)
	twentySix = decimal.NewFromInt(26)
	three     = decimal.NewFromInt(3)
)

// maxAmountLength bounds the accepted input; no rent or fee needs more.
const maxAmountLength = 24

var plainAmount = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)$`)

// ParseAmount parses a user-entered money string. Only plain decimal
// notation is accepted; anything else, including the empty string and
// exponent forms such as "1e6", counts as zero.
func ParseAmount(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if len(raw) > maxAmountLength || !plainAmount.MatchString(raw) {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// MonthlyEquivalent converts an amount billed at frequency f into its
// calendar-approximate monthly value. Unknown frequencies are treated as
// already monthly.
func MonthlyEquivalent(amount decimal.Decimal, f Frequency) decimal.Decimal {
	switch f {
	case Weekly:
		return amount.Mul(fiftyTwo).Div(twelve)
	case Biweekly:
		return amount.Mul(twentySix).Div(twelve)
	case Quarterly:
		return amount.Div(three)
	case Annually:
		return amount.Div(twelve)
	default:
		return amount
	}
}

// Charge is a recurring amount billed on top of base rent.
type Charge struct {
	Amount    string
	Frequency Frequency
}

// ChargesMonthly sums the monthly equivalents of all charges.
func ChargesMonthly(charges []Charge) decimal.Decimal {
	sum := decimal.Zero
	for _, c := range charges {
		sum = sum.Add(MonthlyEquivalent(ParseAmount(c.Amount), c.Frequency))
	}
	return sum
}

// TotalMonthlyRent returns base rent plus the monthly equivalent of every
// additional charge. The result is unrounded; round only for display.
func TotalMonthlyRent(rent string, charges []Charge) decimal.Decimal {
	return ParseAmount(rent).Add(ChargesMonthly(charges))
}

// LeaseTerms is the subset of lease wizard input the summary is folded from.
type LeaseTerms struct {
	Rent        string
	Charges     []Charge
	Deposit     string
	StartDate   string
	EndDate     string
	TenantCount int
}

// LeaseSummary holds the derived values shown on the review step.
type LeaseSummary struct {
	BaseRent       decimal.Decimal
	ChargesMonthly decimal.Decimal
	TotalMonthly   decimal.Decimal
	Deposit        decimal.Decimal
	TermMonths     int
	ContractValue  decimal.Decimal
	TenantCount    int
}

// SummarizeLease derives the review values from lease input. It holds no
// state and can be called on every read.
func SummarizeLease(t LeaseTerms) LeaseSummary {
	base := ParseAmount(t.Rent)
	charges := ChargesMonthly(t.Charges)
	total := base.Add(charges)
	months := LeaseTermMonths(t.StartDate, t.EndDate)

	return LeaseSummary{
		BaseRent:       base,
		ChargesMonthly: charges,
		TotalMonthly:   total,
		Deposit:        ParseAmount(t.Deposit),
		TermMonths:     months,
		ContractValue:  total.Mul(decimal.NewFromInt(int64(months))),
		TenantCount:    t.TenantCount,
	}
}

// DateLayout is the format of date inputs in the wizard forms.
const DateLayout = "2006-01-02"

// LeaseTermMonths counts the whole months covered by an inclusive date range.
// 2026-01-01..2026-12-31 is 12 months. Unparseable or reversed ranges give 0.
func LeaseTermMonths(start, end string) int {
	s, err := time.Parse(DateLayout, strings.TrimSpace(start))
	if err != nil {
		return 0
	}
	e, err := time.Parse(DateLayout, strings.TrimSpace(end))
	if err != nil {
		return 0
	}
	if e.Before(s) {
		return 0
	}

	// The end date is inclusive.
	e = e.AddDate(0, 0, 1)

	months := (e.Year()-s.Year())*12 + int(e.Month()) - int(s.Month())
	if e.Day() < s.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
