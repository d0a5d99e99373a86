package wizard

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"propertydesk/services"
)

// Application wizard step ids.
const (
	AppStepBasicInfo = "basic-info"
	AppStepPayment   = "payment"
	AppStepOptions   = "options"
	AppStepTerms     = "terms"
)

// ApplicationSteps is the fixed step order of the application setup wizard.
var ApplicationSteps = []Step{
	{ID: AppStepBasicInfo, Label: "Basic Info"},
	{ID: AppStepPayment, Label: "Payment"},
	{ID: AppStepOptions, Label: "Options"},
	{ID: AppStepTerms, Label: "Terms"},
}

// PaymentOption selects how applicants pay the application fee.
type PaymentOption string

const (
	PaymentNone     PaymentOption = "none"
	PaymentStandard PaymentOption = "standard"
	PaymentCustom   PaymentOption = "custom"
)

var PaymentOptions = []PaymentOption{PaymentNone, PaymentStandard, PaymentCustom}

// Valid reports whether p is one of PaymentOptions.
func (p PaymentOption) Valid() bool {
	for _, known := range PaymentOptions {
		if p == known {
			return true
		}
	}
	return false
}

func (p PaymentOption) Label() string {
	switch p {
	case PaymentNone:
		return "No application fee"
	case PaymentStandard:
		return "Standard fee"
	case PaymentCustom:
		return "Custom fee"
	default:
		return string(p)
	}
}

// Form field names whose visibility depends on the payment option.
const (
	FieldCustomFee              = "custom_fee"
	FieldApplicantPaysScreening = "applicant_pays_screening"
)

// ApplicationState is everything typed into the application wizard so far.
type ApplicationState struct {
	Name                   string
	Description            string
	Instructions           string
	PaymentOption          PaymentOption
	CustomFee              string
	ApplicantPaysScreening bool
	UnitOptional           bool
	Terms                  string
}

func NewApplicationState() ApplicationState {
	return ApplicationState{PaymentOption: PaymentStandard}
}

// FieldVisible reports whether a payment-step field is shown for the
// selected payment option. Hidden fields keep whatever value they hold.
func (s ApplicationState) FieldVisible(field string) bool {
	switch field {
	case FieldCustomFee:
		return s.PaymentOption == PaymentCustom
	case FieldApplicantPaysScreening:
		return s.PaymentOption != PaymentNone
	default:
		return true
	}
}

// Fee is the application fee charged under the selected option.
func (s ApplicationState) Fee(standard decimal.Decimal) decimal.Decimal {
	switch s.PaymentOption {
	case PaymentNone:
		return decimal.Zero
	case PaymentCustom:
		return services.ParseAmount(s.CustomFee)
	default:
		return standard
	}
}

func SetName(v string) Update[ApplicationState] {
	return func(s ApplicationState) ApplicationState { s.Name = v; return s }
}

func SetDescription(v string) Update[ApplicationState] {
	return func(s ApplicationState) ApplicationState { s.Description = v; return s }
}

func SetInstructions(v string) Update[ApplicationState] {
	return func(s ApplicationState) ApplicationState { s.Instructions = v; return s }
}

func SetPaymentOption(p PaymentOption) Update[ApplicationState] {
	return func(s ApplicationState) ApplicationState { s.PaymentOption = p; return s }
}

func SetCustomFee(v string) Update[ApplicationState] {
	return func(s ApplicationState) ApplicationState { s.CustomFee = v; return s }
}

func SetApplicantPaysScreening(v bool) Update[ApplicationState] {
	return func(s ApplicationState) ApplicationState { s.ApplicantPaysScreening = v; return s }
}

func SetUnitOptional(v bool) Update[ApplicationState] {
	return func(s ApplicationState) ApplicationState { s.UnitOptional = v; return s }
}

func SetTerms(v string) Update[ApplicationState] {
	return func(s ApplicationState) ApplicationState { s.Terms = v; return s }
}

// ParseApplicationField maps a single posted form field onto a typed setter.
func ParseApplicationField(name, value string) (Update[ApplicationState], error) {
	switch name {
	case "name":
		return SetName(value), nil
	case "description":
		return SetDescription(value), nil
	case "instructions":
		return SetInstructions(value), nil
	case "payment_option":
		return SetPaymentOption(PaymentOption(value)), nil
	case FieldCustomFee:
		return SetCustomFee(value), nil
	case FieldApplicantPaysScreening:
		return SetApplicantPaysScreening(checked(value)), nil
	case "unit_optional":
		return SetUnitOptional(checked(value)), nil
	case "terms":
		return SetTerms(value), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

func checked(v string) bool {
	return v == "on" || v == "true"
}

func applicationValidators() map[string]Validator[ApplicationState] {
	return map[string]Validator[ApplicationState]{
		AppStepBasicInfo: func(s ApplicationState) []string {
			var missing []string
			if strings.TrimSpace(s.Name) == "" {
				missing = append(missing, "Name is required")
			}
			if strings.TrimSpace(s.Instructions) == "" {
				missing = append(missing, "Instructions are required")
			}
			return missing
		},
		AppStepPayment: func(s ApplicationState) []string {
			if !s.PaymentOption.Valid() {
				return []string{"Choose how applicants pay"}
			}
			return nil
		},
		AppStepTerms: func(s ApplicationState) []string {
			if strings.TrimSpace(s.Terms) == "" {
				return []string{"Terms are required"}
			}
			return nil
		},
	}
}

// ApplicationWizard is one in-progress rental application setup.
type ApplicationWizard struct {
	*Session[ApplicationState]
	StandardFee decimal.Decimal
}

func NewApplicationWizard(id string, initial ApplicationState, standardFee decimal.Decimal) *ApplicationWizard {
	return &ApplicationWizard{
		Session:     NewSession(id, ApplicationSteps, initial, applicationValidators()),
		StandardFee: standardFee,
	}
}

// Fee is the fee applicants will be charged given the current state.
func (w *ApplicationWizard) Fee() decimal.Decimal {
	return w.State().Fee(w.StandardFee)
}
