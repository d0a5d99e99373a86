package templates

import (
	"strconv"

	"github.com/a-h/templ"
)

const leaseWizardTarget = "#lease-wizard"

// TenantOption is one selectable tenant on the tenants step.
type TenantOption struct {
	ID       string
	Name     string
	Email    string
	Selected bool
}

// ChargeRow is one editable additional charge.
type ChargeRow struct {
	ID               string
	Description      string
	Amount           string
	FrequencyOptions []SelectOption
	Monthly          string
}

// LeaseSummaryView holds the formatted review values.
type LeaseSummaryView struct {
	Property         string
	Unit             string
	LeaseType        string
	StartDate        string
	EndDate          string
	Tenants          []string
	BaseRent         string
	PaymentFrequency string
	Charges          []ChargeRow
	ChargesMonthly   string
	TotalMonthly     string
	Deposit          string
	TermMonths       int
	ContractValue    string
	LateFee          string
}

type LeaseWizardData struct {
	SessionID  string
	Steps      []StepItem
	StepID     string
	StepLabel  string
	Issues     []string
	CanProceed bool
	IsFirst    bool
	IsLast     bool

	PropertyOptions    []SelectOption
	UnitOptions        []SelectOption
	LeaseTypeOptions   []SelectOption
	FrequencyOptions   []SelectOption
	LateFeeTypeOptions []SelectOption

	StartDate  string
	EndDate    string
	RentAmount string
	Deposit    string
	Tenants    []TenantOption
	Charges    []ChargeRow

	LateFeesEnabled  bool
	LateFeeGraceDays string
	LateFeeAmount    string

	Summary LeaseSummaryView
}

func (d LeaseWizardData) url(suffix string) string {
	return "/leases/wizard/" + d.SessionID + suffix
}

// LeaseWizardPage renders the lease wizard inside the full shell.
func LeaseWizardPage(data LeaseWizardData, header HeaderData, sidebar SidebarData) templ.Component {
	return Page("New lease", header, sidebar, LeaseWizardContent(data))
}

// LeaseWizardContent is the swappable wizard body returned to HTMX requests.
func LeaseWizardContent(data LeaseWizardData) templ.Component {
	return component(func(h *htmlWriter) {
		field := data.url("/field")

		h.raw(`<div id="lease-wizard" class="card bg-base-100 shadow"><div class="card-body">`)
		h.raw(`<h1 class="card-title">New lease</h1>`)
		h.stepIndicator(data.Steps, leaseWizardTarget)
		h.raw(`<h2 class="text-lg font-semibold mb-2">`)
		h.text(data.StepLabel)
		h.raw(`</h2>`)

		switch data.StepID {
		case "property-unit":
			h.selectInput(field, leaseWizardTarget, "property_id", "Property", data.PropertyOptions, "Select a property")
			h.selectInput(field, leaseWizardTarget, "unit_id", "Unit", data.UnitOptions, "Select a unit")

		case "lease-terms":
			h.selectInput(field, leaseWizardTarget, "lease_type", "Lease type", data.LeaseTypeOptions, "")
			h.textInput(field, leaseWizardTarget, "start_date", "Start date", "date", data.StartDate)
			h.textInput(field, leaseWizardTarget, "end_date", "End date", "date", data.EndDate)

		case "tenants":
			if len(data.Tenants) == 0 {
				h.raw(`<p class="opacity-70">No tenants on file yet.</p>`)
			}
			for _, t := range data.Tenants {
				h.raw(`<label class="label cursor-pointer justify-start gap-3"><input type="checkbox" class="checkbox" name="tenant_toggle"`)
				h.flag("checked", t.Selected)
				h.attr("hx-post", field)
				h.attr("hx-vals", `{"field":"tenant","value":"`+t.ID+`"}`)
				h.attr("hx-target", leaseWizardTarget)
				h.attr("hx-swap", "outerHTML")
				h.raw(`><span class="label-text">`)
				h.text(t.Name)
				if t.Email != "" {
					h.raw(` <span class="opacity-60">`)
					h.text(t.Email)
					h.raw(`</span>`)
				}
				h.raw(`</span></label>`)
			}

		case "rent":
			h.textInput(field, leaseWizardTarget, "rent_amount", "Monthly rent", "text", data.RentAmount)
			h.selectInput(field, leaseWizardTarget, "payment_frequency", "Payment frequency", data.FrequencyOptions, "")
			h.textInput(field, leaseWizardTarget, "deposit", "Security deposit", "text", data.Deposit)

			h.raw(`<h3 class="font-semibold mt-4">Additional charges</h3>`)
			for _, c := range data.Charges {
				prefix := "charge." + c.ID + "."
				h.raw(`<div class="grid grid-cols-4 gap-2 items-end">`)
				h.textInput(field, leaseWizardTarget, prefix+"description", "Description", "text", c.Description)
				h.textInput(field, leaseWizardTarget, prefix+"amount", "Amount", "text", c.Amount)
				h.selectInput(field, leaseWizardTarget, prefix+"frequency", "Frequency", c.FrequencyOptions, "")
				h.raw(`<div><span class="text-sm opacity-70">`)
				h.text(c.Monthly)
				h.raw(`/mo</span> `)
				h.postButton(data.url("/charges/"+c.ID+"/delete"), leaseWizardTarget, "btn-ghost btn-sm", "Remove", false)
				h.raw(`</div></div>`)
			}
			h.postButton(data.url("/charges"), leaseWizardTarget, "btn-outline btn-sm mt-2", "Add charge", false)

			h.raw(`<div class="stats mt-4"><div class="stat"><div class="stat-title">Total monthly rent</div><div class="stat-value text-2xl" id="total-monthly">`)
			h.text(data.Summary.TotalMonthly)
			h.raw(`</div></div></div>`)

		case "late-fees":
			h.checkbox(field, leaseWizardTarget, "late_fees.enabled", "Charge a late fee", data.LateFeesEnabled)
			if data.LateFeesEnabled {
				h.textInput(field, leaseWizardTarget, "late_fees.grace_days", "Grace period (days)", "number", data.LateFeeGraceDays)
				h.selectInput(field, leaseWizardTarget, "late_fees.fee_type", "Fee type", data.LateFeeTypeOptions, "")
				h.textInput(field, leaseWizardTarget, "late_fees.amount", "Amount", "text", data.LateFeeAmount)
			}

		case "review":
			h.leaseReview(data.Summary)
		}

		h.issues(data.Issues)

		h.raw(`<div class="card-actions justify-between mt-6"><div>`)
		h.postButton(data.url("/cancel"), "", "btn-ghost", "Cancel", false)
		h.raw(`</div><div class="flex gap-2">`)
		if !data.IsFirst {
			h.postButton(data.url("/prev"), leaseWizardTarget, "btn-outline", "Back", false)
		}
		if data.IsLast {
			h.postButton(data.url("/submit"), leaseWizardTarget, "btn-primary", "Create lease", false)
		} else {
			h.postButton(data.url("/next"), leaseWizardTarget, "btn-primary", "Next", !data.CanProceed)
		}
		h.raw(`</div></div></div></div>`)
	})
}

func (h *htmlWriter) leaseReview(s LeaseSummaryView) {
	rows := [][2]string{
		{"Property", s.Property},
		{"Unit", s.Unit},
		{"Lease type", s.LeaseType},
		{"Start date", s.StartDate},
		{"End date", s.EndDate},
		{"Tenants", strconv.Itoa(len(s.Tenants))},
		{"Base rent", s.BaseRent + " " + s.PaymentFrequency},
		{"Additional charges (monthly)", s.ChargesMonthly},
		{"Total monthly rent", s.TotalMonthly},
		{"Security deposit", s.Deposit},
		{"Term", strconv.Itoa(s.TermMonths) + " months"},
		{"Contract value", s.ContractValue},
		{"Late fee", s.LateFee},
	}
	h.raw(`<table class="table"><tbody>`)
	for _, r := range rows {
		h.raw(`<tr><th>`)
		h.text(r[0])
		h.raw(`</th><td>`)
		h.text(r[1])
		h.raw(`</td></tr>`)
	}
	h.raw(`</tbody></table>`)

	if len(s.Tenants) > 0 {
		h.raw(`<ul class="list-disc pl-6">`)
		for _, name := range s.Tenants {
			h.raw(`<li>`)
			h.text(name)
			h.raw(`</li>`)
		}
		h.raw(`</ul>`)
	}
}
