package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"propertydesk/services"
	"propertydesk/templates"
	"propertydesk/wizard"
)

// leaseSnapshot is what a handler copies out of a lease session while the
// registry lock is held.
type leaseSnapshot struct {
	id         string
	state      wizard.LeaseState
	steps      []wizard.Step
	current    wizard.Step
	issues     []string
	canProceed bool
	isFirst    bool
	isLast     bool
	summary    services.LeaseSummary
}

func snapshotLease(w *wizard.LeaseWizard) leaseSnapshot {
	return leaseSnapshot{
		id:         w.ID,
		state:      w.State(),
		steps:      w.Steps(),
		current:    w.CurrentStep(),
		issues:     w.Issues(),
		canProceed: w.CanProceed(),
		isFirst:    w.IsFirst(),
		isLast:     w.IsLast(),
		summary:    w.Summary(),
	}
}

// HandleLeaseWizardStart opens a new lease wizard session and redirects to it.
func HandleLeaseWizardStart(app *pocketbase.PocketBase, deps *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		initial := wizard.NewLeaseState(wizard.LateFeePolicy{
			GraceDays: strconv.Itoa(deps.Config.LateFeeGraceDays),
			FeeType:   wizard.LateFeeFixed,
			Amount:    deps.Config.LateFeeAmount,
		})
		if active := GetActiveProperty(e.Request); active != nil {
			initial = wizard.SetProperty(active.ID)(initial)
		}

		id := deps.Leases.Create(func(id string) *wizard.LeaseWizard {
			return wizard.NewLeaseWizard(id, initial)
		})
		return Redirect(e, "/leases/wizard/"+id)
	}
}

// HandleLeaseWizardView renders the current step of a lease wizard session.
func HandleLeaseWizardView(app *pocketbase.PocketBase, deps *Deps) func(*core.RequestEvent) error {
	return leaseWizardAction(app, deps, func(e *core.RequestEvent, w *wizard.LeaseWizard) error {
		return nil
	})
}

// HandleLeaseWizardField applies a single form field change.
func HandleLeaseWizardField(app *pocketbase.PocketBase, deps *Deps) func(*core.RequestEvent) error {
	return leaseWizardAction(app, deps, func(e *core.RequestEvent, w *wizard.LeaseWizard) error {
		update, err := wizard.ParseLeaseField(e.Request.FormValue("field"), e.Request.FormValue("value"))
		if err != nil {
			return err
		}
		w.Apply(update)
		return nil
	})
}

// HandleLeaseWizardNext moves forward when the current step is complete.
func HandleLeaseWizardNext(app *pocketbase.PocketBase, deps *Deps) func(*core.RequestEvent) error {
	return leaseWizardAction(app, deps, func(e *core.RequestEvent, w *wizard.LeaseWizard) error {
		if !w.Next() && !w.CanProceed() {
			SetToast(e, ToastWarning, "Please complete the required fields")
		}
		return nil
	})
}

func HandleLeaseWizardPrevious(app *pocketbase.PocketBase, deps *Deps) func(*core.RequestEvent) error {
	return leaseWizardAction(app, deps, func(e *core.RequestEvent, w *wizard.LeaseWizard) error {
		w.Previous()
		return nil
	})
}

// HandleLeaseWizardJump moves straight to the step named in the path.
func HandleLeaseWizardJump(app *pocketbase.PocketBase, deps *Deps) func(*core.RequestEvent) error {
	return leaseWizardAction(app, deps, func(e *core.RequestEvent, w *wizard.LeaseWizard) error {
		w.JumpToStep(e.Request.PathValue("step"))
		return nil
	})
}

func HandleLeaseChargeAdd(app *pocketbase.PocketBase, deps *Deps) func(*core.RequestEvent) error {
	return leaseWizardAction(app, deps, func(e *core.RequestEvent, w *wizard.LeaseWizard) error {
		w.Apply(wizard.AddCharge(wizard.NewCharge()))
		return nil
	})
}

func HandleLeaseChargeRemove(app *pocketbase.PocketBase, deps *Deps) func(*core.RequestEvent) error {
	return leaseWizardAction(app, deps, func(e *core.RequestEvent, w *wizard.LeaseWizard) error {
		w.Apply(wizard.RemoveCharge(e.Request.PathValue("cid")))
		return nil
	})
}

// HandleLeaseWizardCancel discards the session without saving anything.
func HandleLeaseWizardCancel(app *pocketbase.PocketBase, deps *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		deps.Leases.Delete(e.Request.PathValue("sid"))
		SetToast(e, ToastInfo, "Lease discarded")
		return Redirect(e, "/leases")
	}
}

// leaseWizardAction runs fn against the session named by {sid} and renders
// the resulting step. Unknown form fields answer 400; expired sessions 404.
func leaseWizardAction(app *pocketbase.PocketBase, deps *Deps, fn func(*core.RequestEvent, *wizard.LeaseWizard) error) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sid := e.Request.PathValue("sid")

		var snap leaseSnapshot
		err := deps.Leases.Do(sid, func(w *wizard.LeaseWizard) error {
			if err := fn(e, w); err != nil {
				return err
			}
			snap = snapshotLease(w)
			return nil
		})
		switch {
		case errors.Is(err, wizard.ErrSessionNotFound):
			return sessionExpired(e, "/leases/new")
		case errors.Is(err, wizard.ErrUnknownField):
			log.Printf("lease_wizard: %v", err)
			return ErrorToast(e, http.StatusBadRequest, "That field is not part of this form.")
		case err != nil:
			log.Printf("lease_wizard: session %s: %v", sid, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return renderLeaseWizard(e, app, deps, snap)
	}
}

func renderLeaseWizard(e *core.RequestEvent, app *pocketbase.PocketBase, deps *Deps, snap leaseSnapshot) error {
	data := buildLeaseWizardData(app, deps, snap)

	var component templ.Component
	if isHTMX(e) {
		component = templates.LeaseWizardContent(data)
	} else {
		component = templates.LeaseWizardPage(data, GetHeaderData(e.Request), GetSidebarData(e.Request))
	}
	return component.Render(e.Request.Context(), e.Response)
}

// sessionExpired tells the user the wizard is gone and offers a restart.
func sessionExpired(e *core.RequestEvent, restart string) error {
	if isHTMX(e) {
		return ErrorToast(e, http.StatusNotFound, "This form session has expired. Please start again.")
	}
	SetToast(e, ToastWarning, "This form session has expired. Please start again.")
	return e.Redirect(http.StatusSeeOther, restart)
}

func buildLeaseWizardData(app *pocketbase.PocketBase, deps *Deps, snap leaseSnapshot) templates.LeaseWizardData {
	s := snap.state
	currency := deps.Config.CurrencySymbol

	data := templates.LeaseWizardData{
		SessionID:  snap.id,
		Steps:      stepItems(snap.steps, snap.current, "/leases/wizard/"+snap.id),
		StepID:     snap.current.ID,
		StepLabel:  snap.current.Label,
		Issues:     snap.issues,
		CanProceed: snap.canProceed,
		IsFirst:    snap.isFirst,
		IsLast:     snap.isLast,

		LeaseTypeOptions:   selectOptions(services.LeaseTypeOptions, s.LeaseType),
		FrequencyOptions:   selectOptions(services.FrequencyOptions(), string(s.PaymentFrequency)),
		LateFeeTypeOptions: selectOptions(services.LateFeeTypeOptions, s.LateFees.FeeType),

		StartDate:  s.StartDate,
		EndDate:    s.EndDate,
		RentAmount: s.RentAmount,
		Deposit:    s.Deposit,

		LateFeesEnabled:  s.LateFees.Enabled,
		LateFeeGraceDays: s.LateFees.GraceDays,
		LateFeeAmount:    s.LateFees.Amount,
	}

	if props, err := app.FindRecordsByFilter("properties", "status = 'active'", "name", 0, 0, nil); err == nil {
		for _, p := range props {
			data.PropertyOptions = append(data.PropertyOptions, templates.SelectOption{
				Value: p.Id, Label: p.GetString("name"), Selected: p.Id == s.PropertyID,
			})
		}
	} else {
		log.Printf("lease_wizard: could not load properties: %v", err)
	}

	if s.PropertyID != "" {
		units, err := app.FindRecordsByFilter("units", "property = {:pid}", "name", 0, 0, map[string]any{"pid": s.PropertyID})
		if err == nil {
			for _, u := range units {
				label := u.GetString("name")
				if status := u.GetString("status"); status != "vacant" {
					label += " (" + status + ")"
				}
				data.UnitOptions = append(data.UnitOptions, templates.SelectOption{
					Value: u.Id, Label: label, Selected: u.Id == s.UnitID,
				})
			}
		}
	}

	if tenants, err := app.FindRecordsByFilter("tenants", "id != ''", "last_name,first_name", 0, 0, nil); err == nil {
		for _, t := range tenants {
			data.Tenants = append(data.Tenants, templates.TenantOption{
				ID:       t.Id,
				Name:     tenantName(t),
				Email:    t.GetString("email"),
				Selected: s.HasTenant(t.Id),
			})
		}
	}

	for _, c := range s.Charges {
		data.Charges = append(data.Charges, chargeRow(currency, c))
	}

	data.Summary = leaseSummaryView(app, currency, s, snap.summary)
	return data
}

func chargeRow(currency string, c wizard.AdditionalCharge) templates.ChargeRow {
	return templates.ChargeRow{
		ID:               c.ID,
		Description:      c.Description,
		Amount:           c.Amount,
		FrequencyOptions: selectOptions(services.FrequencyOptions(), string(c.Frequency)),
		Monthly:          services.FormatMoney(currency, services.MonthlyEquivalent(services.ParseAmount(c.Amount), c.Frequency)),
	}
}

// leaseSummaryView formats the derived values and resolves record names.
func leaseSummaryView(app *pocketbase.PocketBase, currency string, s wizard.LeaseState, sum services.LeaseSummary) templates.LeaseSummaryView {
	view := templates.LeaseSummaryView{
		LeaseType:        optionLabel(services.LeaseTypeOptions, s.LeaseType),
		StartDate:        s.StartDate,
		EndDate:          s.EndDate,
		BaseRent:         services.FormatMoney(currency, sum.BaseRent),
		PaymentFrequency: s.PaymentFrequency.Label(),
		ChargesMonthly:   services.FormatMoney(currency, sum.ChargesMonthly),
		TotalMonthly:     services.FormatMoney(currency, sum.TotalMonthly),
		Deposit:          services.FormatMoney(currency, sum.Deposit),
		TermMonths:       sum.TermMonths,
		ContractValue:    services.FormatMoney(currency, sum.ContractValue),
		LateFee:          lateFeeLabel(currency, s.LateFees),
	}
	if p, err := app.FindRecordById("properties", s.PropertyID); err == nil {
		view.Property = p.GetString("name")
	}
	if u, err := app.FindRecordById("units", s.UnitID); err == nil {
		view.Unit = u.GetString("name")
	}
	for _, id := range s.TenantIDs {
		if t, err := app.FindRecordById("tenants", id); err == nil {
			view.Tenants = append(view.Tenants, tenantName(t))
		}
	}
	for _, c := range s.Charges {
		view.Charges = append(view.Charges, chargeRow(currency, c))
	}
	return view
}

func lateFeeLabel(currency string, p wizard.LateFeePolicy) string {
	if !p.Enabled {
		return "None"
	}
	amount := services.ParseAmount(p.Amount)
	var fee string
	if p.FeeType == wizard.LateFeePercent {
		fee = services.FormatPercent(amount) + " of rent"
	} else {
		fee = services.FormatMoney(currency, amount)
	}
	return fee + " after " + p.GraceDays + " days"
}

func tenantName(t *core.Record) string {
	return t.GetString("first_name") + " " + t.GetString("last_name")
}

func stepItems(steps []wizard.Step, current wizard.Step, base string) []templates.StepItem {
	items := make([]templates.StepItem, len(steps))
	for i, st := range steps {
		items[i] = templates.StepItem{
			ID:      st.ID,
			Label:   st.Label,
			Current: st.Index == current.Index,
			Done:    st.Index < current.Index,
			JumpURL: base + "/jump/" + st.ID,
		}
	}
	return items
}

func selectOptions(opts []services.Option, selected string) []templates.SelectOption {
	out := make([]templates.SelectOption, len(opts))
	for i, o := range opts {
		out[i] = templates.SelectOption{Value: o.Value, Label: o.Label, Selected: o.Value == selected}
	}
	return out
}

func optionLabel(opts []services.Option, value string) string {
	for _, o := range opts {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}
