package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"propertydesk/events"
	"propertydesk/services"
	"propertydesk/templates"
	"propertydesk/wizard"
)

type applicationSnapshot struct {
	id         string
	state      wizard.ApplicationState
	steps      []wizard.Step
	current    wizard.Step
	issues     []string
	canProceed bool
	isFirst    bool
	isLast     bool
	fee        string
}

func snapshotApplication(w *wizard.ApplicationWizard) applicationSnapshot {
	return applicationSnapshot{
		id:         w.ID,
		state:      w.State(),
		steps:      w.Steps(),
		current:    w.CurrentStep(),
		issues:     w.Issues(),
		canProceed: w.CanProceed(),
		isFirst:    w.IsFirst(),
		isLast:     w.IsLast(),
		fee:        w.Fee().StringFixed(2),
	}
}

// HandleApplicationWizardStart opens a new application setup session.
func HandleApplicationWizardStart(app *pocketbase.PocketBase, deps *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		fee := deps.Config.StandardFee()
		id := deps.Applications.Create(func(id string) *wizard.ApplicationWizard {
			return wizard.NewApplicationWizard(id, wizard.NewApplicationState(), fee)
		})
		return Redirect(e, "/applications/wizard/"+id)
	}
}

func HandleApplicationWizardView(app *pocketbase.PocketBase, deps *Deps) func(*core.RequestEvent) error {
	return applicationWizardAction(deps, func(e *core.RequestEvent, w *wizard.ApplicationWizard) error {
		return nil
	})
}

// HandleApplicationWizardField applies a single form field change.
func HandleApplicationWizardField(app *pocketbase.PocketBase, deps *Deps) func(*core.RequestEvent) error {
	return applicationWizardAction(deps, func(e *core.RequestEvent, w *wizard.ApplicationWizard) error {
		update, err := wizard.ParseApplicationField(e.Request.FormValue("field"), e.Request.FormValue("value"))
		if err != nil {
			return err
		}
		w.Apply(update)
		return nil
	})
}

func HandleApplicationWizardNext(app *pocketbase.PocketBase, deps *Deps) func(*core.RequestEvent) error {
	return applicationWizardAction(deps, func(e *core.RequestEvent, w *wizard.ApplicationWizard) error {
		if !w.Next() && !w.CanProceed() {
			SetToast(e, ToastWarning, "Please complete the required fields")
		}
		return nil
	})
}

func HandleApplicationWizardPrevious(app *pocketbase.PocketBase, deps *Deps) func(*core.RequestEvent) error {
	return applicationWizardAction(deps, func(e *core.RequestEvent, w *wizard.ApplicationWizard) error {
		w.Previous()
		return nil
	})
}

func HandleApplicationWizardJump(app *pocketbase.PocketBase, deps *Deps) func(*core.RequestEvent) error {
	return applicationWizardAction(deps, func(e *core.RequestEvent, w *wizard.ApplicationWizard) error {
		w.JumpToStep(e.Request.PathValue("step"))
		return nil
	})
}

func HandleApplicationWizardCancel(app *pocketbase.PocketBase, deps *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		deps.Applications.Delete(e.Request.PathValue("sid"))
		SetToast(e, ToastInfo, "Application discarded")
		return Redirect(e, "/applications")
	}
}

// HandleApplicationWizardSubmit creates the application record once every
// step is complete and publishes the submission.
func HandleApplicationWizardSubmit(app *pocketbase.PocketBase, deps *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sid := e.Request.PathValue("sid")

		var snap applicationSnapshot
		w, err := deps.Applications.Take(sid, func(w *wizard.ApplicationWizard) error {
			if err := w.ValidateAll(); err != nil {
				st, _, _ := w.FirstInvalid()
				w.JumpToStep(st.ID)
				snap = snapshotApplication(w)
				return err
			}
			snap = snapshotApplication(w)
			return nil
		})
		switch {
		case errors.Is(err, wizard.ErrSessionNotFound):
			return sessionExpired(e, "/applications/new")
		case errors.Is(err, wizard.ErrIncomplete):
			SetToast(e, ToastError, "Please complete the "+snap.current.Label+" step before saving.")
			return renderApplicationWizard(e, deps, snap)
		case err != nil:
			log.Printf("application_submit: session %s: %v", sid, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		propertyID := ""
		if active := GetActiveProperty(e.Request); active != nil {
			propertyID = active.ID
		}
		record, err := saveApplication(app, propertyID, snap)
		if err != nil {
			deps.Applications.Restore(sid, w)
			log.Printf("application_submit: could not save application: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not save the application. Please try again.")
		}

		s := snap.state
		payload := events.ApplicationSubmission{
			Name:                   s.Name,
			Slug:                   record.GetString("slug"),
			Description:            s.Description,
			Instructions:           s.Instructions,
			PaymentOption:          string(s.PaymentOption),
			Fee:                    snap.fee,
			ApplicantPaysScreening: s.ApplicantPaysScreening,
			UnitOptional:           s.UnitOptional,
			Terms:                  s.Terms,
		}
		if err := deps.Publisher.Publish(e.Request.Context(), events.SubjectApplicationSubmitted, record.Id, payload); err != nil {
			log.Printf("application_submit: could not publish application %s: %v", record.Id, err)
		}

		SetToast(e, ToastSuccess, "Application created: "+services.ApplicationLink(record.GetString("slug")))
		return Redirect(e, "/applications")
	}
}

func saveApplication(app *pocketbase.PocketBase, propertyID string, snap applicationSnapshot) (*core.Record, error) {
	col, err := app.FindCollectionByNameOrId("applications")
	if err != nil {
		return nil, fmt.Errorf("find applications collection: %w", err)
	}

	s := snap.state
	record := core.NewRecord(col)
	record.Set("id", core.GenerateDefaultRandomId())
	record.Set("property", propertyID)
	record.Set("name", s.Name)
	record.Set("slug", services.ApplicationSlug(s.Name, record.Id))
	record.Set("description", s.Description)
	record.Set("instructions", s.Instructions)
	record.Set("payment_option", string(s.PaymentOption))
	record.Set("fee", snap.fee)
	// Hidden fields are kept in the session but only stored when they apply.
	record.Set("applicant_pays_screening", s.FieldVisible(wizard.FieldApplicantPaysScreening) && s.ApplicantPaysScreening)
	record.Set("unit_optional", s.UnitOptional)
	record.Set("terms", s.Terms)

	if err := app.Save(record); err != nil {
		return nil, fmt.Errorf("save application: %w", err)
	}
	return record, nil
}

func applicationWizardAction(deps *Deps, fn func(*core.RequestEvent, *wizard.ApplicationWizard) error) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sid := e.Request.PathValue("sid")

		var snap applicationSnapshot
		err := deps.Applications.Do(sid, func(w *wizard.ApplicationWizard) error {
			if err := fn(e, w); err != nil {
				return err
			}
			snap = snapshotApplication(w)
			return nil
		})
		switch {
		case errors.Is(err, wizard.ErrSessionNotFound):
			return sessionExpired(e, "/applications/new")
		case errors.Is(err, wizard.ErrUnknownField):
			log.Printf("application_wizard: %v", err)
			return ErrorToast(e, http.StatusBadRequest, "That field is not part of this form.")
		case err != nil:
			log.Printf("application_wizard: session %s: %v", sid, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return renderApplicationWizard(e, deps, snap)
	}
}

func renderApplicationWizard(e *core.RequestEvent, deps *Deps, snap applicationSnapshot) error {
	data := buildApplicationWizardData(deps, snap)

	var component templ.Component
	if isHTMX(e) {
		component = templates.ApplicationWizardContent(data)
	} else {
		component = templates.ApplicationWizardPage(data, GetHeaderData(e.Request), GetSidebarData(e.Request))
	}
	return component.Render(e.Request.Context(), e.Response)
}

func buildApplicationWizardData(deps *Deps, snap applicationSnapshot) templates.ApplicationWizardData {
	s := snap.state

	options := make([]templates.SelectOption, len(wizard.PaymentOptions))
	for i, p := range wizard.PaymentOptions {
		options[i] = templates.SelectOption{Value: string(p), Label: p.Label(), Selected: p == s.PaymentOption}
	}

	return templates.ApplicationWizardData{
		SessionID:  snap.id,
		Steps:      stepItems(snap.steps, snap.current, "/applications/wizard/"+snap.id),
		StepID:     snap.current.ID,
		StepLabel:  snap.current.Label,
		Issues:     snap.issues,
		CanProceed: snap.canProceed,
		IsFirst:    snap.isFirst,
		IsLast:     snap.isLast,

		Name:                   s.Name,
		Description:            s.Description,
		Instructions:           s.Instructions,
		PaymentOptions:         options,
		CustomFee:              s.CustomFee,
		ShowCustomFee:          s.FieldVisible(wizard.FieldCustomFee),
		ApplicantPaysScreening: s.ApplicantPaysScreening,
		ShowScreening:          s.FieldVisible(wizard.FieldApplicantPaysScreening),
		UnitOptional:           s.UnitOptional,
		Terms:                  s.Terms,
		Fee:                    services.FormatMoney(deps.Config.CurrencySymbol, services.ParseAmount(snap.fee)),
	}
}
