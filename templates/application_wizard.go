package templates

import "github.com/a-h/templ"

const applicationWizardTarget = "#application-wizard"

type ApplicationWizardData struct {
	SessionID  string
	Steps      []StepItem
	StepID     string
	StepLabel  string
	Issues     []string
	CanProceed bool
	IsFirst    bool
	IsLast     bool

	Name                   string
	Description            string
	Instructions           string
	PaymentOptions         []SelectOption
	CustomFee              string
	ShowCustomFee          bool
	ApplicantPaysScreening bool
	ShowScreening          bool
	UnitOptional           bool
	Terms                  string

	// Fee is the formatted effective application fee.
	Fee string
}

func (d ApplicationWizardData) url(suffix string) string {
	return "/applications/wizard/" + d.SessionID + suffix
}

func ApplicationWizardPage(data ApplicationWizardData, header HeaderData, sidebar SidebarData) templ.Component {
	return Page("New application", header, sidebar, ApplicationWizardContent(data))
}

func ApplicationWizardContent(data ApplicationWizardData) templ.Component {
	return component(func(h *htmlWriter) {
		field := data.url("/field")
		target := applicationWizardTarget

		h.raw(`<div id="application-wizard" class="card bg-base-100 shadow"><div class="card-body">`)
		h.raw(`<h1 class="card-title">New application</h1>`)
		h.stepIndicator(data.Steps, target)
		h.raw(`<h2 class="text-lg font-semibold mb-2">`)
		h.text(data.StepLabel)
		h.raw(`</h2>`)

		switch data.StepID {
		case "basic-info":
			h.textInput(field, target, "name", "Application name", "text", data.Name)
			h.textArea(field, target, "description", "Description", data.Description)
			h.textArea(field, target, "instructions", "Instructions for applicants", data.Instructions)

		case "payment":
			h.selectInput(field, target, "payment_option", "Application fee", data.PaymentOptions, "")
			if data.ShowCustomFee {
				h.textInput(field, target, "custom_fee", "Custom fee", "text", data.CustomFee)
			}
			if data.ShowScreening {
				h.checkbox(field, target, "applicant_pays_screening", "Applicant pays the screening cost", data.ApplicantPaysScreening)
			}
			h.raw(`<div class="stats mt-4"><div class="stat"><div class="stat-title">Applicants pay</div><div class="stat-value text-2xl" id="application-fee">`)
			h.text(data.Fee)
			h.raw(`</div></div></div>`)

		case "options":
			h.checkbox(field, target, "unit_optional", "Applicants may apply without choosing a unit", data.UnitOptional)

		case "terms":
			h.textArea(field, target, "terms", "Terms and conditions", data.Terms)
		}

		h.issues(data.Issues)

		h.raw(`<div class="card-actions justify-between mt-6"><div>`)
		h.postButton(data.url("/cancel"), "", "btn-ghost", "Cancel", false)
		h.raw(`</div><div class="flex gap-2">`)
		if !data.IsFirst {
			h.postButton(data.url("/prev"), target, "btn-outline", "Back", false)
		}
		if data.IsLast {
			h.postButton(data.url("/submit"), target, "btn-primary", "Publish application", false)
		} else {
			h.postButton(data.url("/next"), target, "btn-primary", "Next", !data.CanProceed)
		}
		h.raw(`</div></div></div></div>`)
	})
}
