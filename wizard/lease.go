package wizard

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"propertydesk/services"
)

// Lease wizard step ids.
const (
	LeaseStepPropertyUnit = "property-unit"
	LeaseStepTerms        = "lease-terms"
	LeaseStepTenants      = "tenants"
	LeaseStepRent         = "rent"
	LeaseStepLateFees     = "late-fees"
	LeaseStepReview       = "review"
)

// LeaseSteps is the fixed step order of the lease creation wizard.
var LeaseSteps = []Step{
	{ID: LeaseStepPropertyUnit, Label: "Property & Unit"},
	{ID: LeaseStepTerms, Label: "Lease Terms"},
	{ID: LeaseStepTenants, Label: "Tenants"},
	{ID: LeaseStepRent, Label: "Rent & Charges"},
	{ID: LeaseStepLateFees, Label: "Late Fees"},
	{ID: LeaseStepReview, Label: "Review"},
}

// Lease types.
const (
	LeaseTypeFixed        = "fixed"
	LeaseTypeMonthToMonth = "month-to-month"
)

// Late fee kinds.
const (
	LateFeeFixed   = "fixed"
	LateFeePercent = "percent"
)

// AdditionalCharge is a recurring charge billed with the rent. ID is unique
// within one wizard session only.
type AdditionalCharge struct {
	ID          string
	Description string
	Amount      string
	Frequency   services.Frequency
}

// NewCharge returns an empty monthly charge with a fresh id.
func NewCharge() AdditionalCharge {
	return AdditionalCharge{ID: uuid.NewString(), Frequency: services.Monthly}
}

// LateFeePolicy is always replaced as a whole.
type LateFeePolicy struct {
	Enabled   bool
	GraceDays string
	FeeType   string
	Amount    string
}

// LeaseState is everything typed into the lease wizard so far.
type LeaseState struct {
	PropertyID       string
	UnitID           string
	LeaseType        string
	StartDate        string
	EndDate          string
	TenantIDs        []string
	RentAmount       string
	PaymentFrequency services.Frequency
	Charges          []AdditionalCharge
	Deposit          string
	LateFees         LateFeePolicy
}

// NewLeaseState returns the defaults a fresh lease wizard starts from.
func NewLeaseState(lateFees LateFeePolicy) LeaseState {
	return LeaseState{
		LeaseType:        LeaseTypeFixed,
		PaymentFrequency: services.Monthly,
		LateFees:         lateFees,
	}
}

// Terms extracts the calculator input from the state.
func (s LeaseState) Terms() services.LeaseTerms {
	charges := make([]services.Charge, 0, len(s.Charges))
	for _, c := range s.Charges {
		charges = append(charges, services.Charge{Amount: c.Amount, Frequency: c.Frequency})
	}
	return services.LeaseTerms{
		Rent:        s.RentAmount,
		Charges:     charges,
		Deposit:     s.Deposit,
		StartDate:   s.StartDate,
		EndDate:     s.EndDate,
		TenantCount: len(s.TenantIDs),
	}
}

func (s LeaseState) HasTenant(id string) bool {
	return slices.Contains(s.TenantIDs, id)
}

// ── Typed setters ───────────────────────────────────────────────────────

func SetProperty(id string) Update[LeaseState] {
	return func(s LeaseState) LeaseState { s.PropertyID = id; return s }
}

func SetUnit(id string) Update[LeaseState] {
	return func(s LeaseState) LeaseState { s.UnitID = id; return s }
}

func SetLeaseType(t string) Update[LeaseState] {
	return func(s LeaseState) LeaseState { s.LeaseType = t; return s }
}

func SetStartDate(d string) Update[LeaseState] {
	return func(s LeaseState) LeaseState { s.StartDate = d; return s }
}

func SetEndDate(d string) Update[LeaseState] {
	return func(s LeaseState) LeaseState { s.EndDate = d; return s }
}

func SetTenants(ids []string) Update[LeaseState] {
	return func(s LeaseState) LeaseState { s.TenantIDs = slices.Clone(ids); return s }
}

// ToggleTenant adds the tenant if absent and removes it otherwise.
func ToggleTenant(id string) Update[LeaseState] {
	return func(s LeaseState) LeaseState {
		if i := slices.Index(s.TenantIDs, id); i >= 0 {
			s.TenantIDs = slices.Delete(slices.Clone(s.TenantIDs), i, i+1)
			return s
		}
		s.TenantIDs = append(slices.Clone(s.TenantIDs), id)
		return s
	}
}

func SetRentAmount(v string) Update[LeaseState] {
	return func(s LeaseState) LeaseState { s.RentAmount = v; return s }
}

func SetPaymentFrequency(f services.Frequency) Update[LeaseState] {
	return func(s LeaseState) LeaseState { s.PaymentFrequency = f; return s }
}

func AddCharge(c AdditionalCharge) Update[LeaseState] {
	return func(s LeaseState) LeaseState {
		s.Charges = append(slices.Clone(s.Charges), c)
		return s
	}
}

// ReplaceCharge swaps the charge with c.ID for c. Unknown ids leave the list unchanged.
func ReplaceCharge(c AdditionalCharge) Update[LeaseState] {
	return func(s LeaseState) LeaseState {
		i := slices.IndexFunc(s.Charges, func(x AdditionalCharge) bool { return x.ID == c.ID })
		if i < 0 {
			return s
		}
		charges := slices.Clone(s.Charges)
		charges[i] = c
		s.Charges = charges
		return s
	}
}

func RemoveCharge(id string) Update[LeaseState] {
	return func(s LeaseState) LeaseState {
		s.Charges = slices.DeleteFunc(slices.Clone(s.Charges), func(x AdditionalCharge) bool { return x.ID == id })
		return s
	}
}

func SetDeposit(v string) Update[LeaseState] {
	return func(s LeaseState) LeaseState { s.Deposit = v; return s }
}

func SetLateFees(p LateFeePolicy) Update[LeaseState] {
	return func(s LeaseState) LeaseState { s.LateFees = p; return s }
}

// ParseLeaseField maps a single posted form field onto a typed setter.
// Charge fields are named "charge.<id>.<description|amount|frequency>" and
// late fee fields "late_fees.<enabled|grace_days|fee_type|amount>"; both
// rebuild their sub-value from the current state and replace it whole.
func ParseLeaseField(name, value string) (Update[LeaseState], error) {
	switch name {
	case "property_id":
		return SetProperty(value), nil
	case "unit_id":
		return SetUnit(value), nil
	case "lease_type":
		return SetLeaseType(value), nil
	case "start_date":
		return SetStartDate(value), nil
	case "end_date":
		return SetEndDate(value), nil
	case "rent_amount":
		return SetRentAmount(value), nil
	case "payment_frequency":
		return SetPaymentFrequency(services.Frequency(value)), nil
	case "deposit":
		return SetDeposit(value), nil
	case "tenant":
		return ToggleTenant(value), nil
	}

	if rest, ok := strings.CutPrefix(name, "late_fees."); ok {
		return lateFeeField(rest, value)
	}
	if rest, ok := strings.CutPrefix(name, "charge."); ok {
		return chargeField(rest, value)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

func lateFeeField(field, value string) (Update[LeaseState], error) {
	var set func(*LateFeePolicy)
	switch field {
	case "enabled":
		on := value == "on" || value == "true"
		set = func(p *LateFeePolicy) { p.Enabled = on }
	case "grace_days":
		set = func(p *LateFeePolicy) { p.GraceDays = value }
	case "fee_type":
		set = func(p *LateFeePolicy) { p.FeeType = value }
	case "amount":
		set = func(p *LateFeePolicy) { p.Amount = value }
	default:
		return nil, fmt.Errorf("%w: late_fees.%s", ErrUnknownField, field)
	}
	return func(s LeaseState) LeaseState {
		p := s.LateFees
		set(&p)
		return SetLateFees(p)(s)
	}, nil
}

func chargeField(rest, value string) (Update[LeaseState], error) {
	id, field, ok := strings.Cut(rest, ".")
	if !ok || id == "" {
		return nil, fmt.Errorf("%w: charge.%s", ErrUnknownField, rest)
	}

	var set func(*AdditionalCharge)
	switch field {
	case "description":
		set = func(c *AdditionalCharge) { c.Description = value }
	case "amount":
		set = func(c *AdditionalCharge) { c.Amount = value }
	case "frequency":
		set = func(c *AdditionalCharge) { c.Frequency = services.Frequency(value) }
	default:
		return nil, fmt.Errorf("%w: charge.%s", ErrUnknownField, rest)
	}

	return func(s LeaseState) LeaseState {
		for _, c := range s.Charges {
			if c.ID == id {
				set(&c)
				return ReplaceCharge(c)(s)
			}
		}
		return s
	}, nil
}

// ── Validation ──────────────────────────────────────────────────────────

func leaseValidators() map[string]Validator[LeaseState] {
	return map[string]Validator[LeaseState]{
		LeaseStepPropertyUnit: func(s LeaseState) []string {
			var missing []string
			if strings.TrimSpace(s.PropertyID) == "" {
				missing = append(missing, "Property is required")
			}
			if strings.TrimSpace(s.UnitID) == "" {
				missing = append(missing, "Unit is required")
			}
			return missing
		},
		LeaseStepTerms: func(s LeaseState) []string {
			if !services.HasOption(services.LeaseTypeOptions, s.LeaseType) {
				return []string{"Choose a lease type"}
			}
			return nil
		},
		// Leases may be drafted before any tenant is attached.
		LeaseStepTenants: func(LeaseState) []string { return nil },
		LeaseStepRent: func(s LeaseState) []string {
			var issues []string
			if !s.PaymentFrequency.Valid() {
				issues = append(issues, "Choose a payment frequency")
			}
			for i, c := range s.Charges {
				if !c.Frequency.Valid() {
					issues = append(issues, fmt.Sprintf("Charge %d needs a frequency", i+1))
				}
			}
			return issues
		},
		LeaseStepLateFees: func(s LeaseState) []string {
			if s.LateFees.Enabled && !services.HasOption(services.LateFeeTypeOptions, s.LateFees.FeeType) {
				return []string{"Choose a late fee type"}
			}
			return nil
		},
	}
}

// LeaseWizard is one in-progress lease creation.
type LeaseWizard struct {
	*Session[LeaseState]
}

func NewLeaseWizard(id string, initial LeaseState) *LeaseWizard {
	return &LeaseWizard{Session: NewSession(id, LeaseSteps, initial, leaseValidators())}
}

// Summary recomputes the derived review values from the current state.
func (w *LeaseWizard) Summary() services.LeaseSummary {
	return services.SummarizeLease(w.State().Terms())
}
