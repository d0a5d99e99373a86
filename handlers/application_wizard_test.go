package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"propertydesk/events"
	"propertydesk/testhelpers"
	"propertydesk/wizard"
)

func newApplicationSession(deps *Deps, s wizard.ApplicationState) string {
	return deps.Applications.Create(func(id string) *wizard.ApplicationWizard {
		return wizard.NewApplicationWizard(id, s, decimal.NewFromInt(50))
	})
}

func TestHandleApplicationWizardStart(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	deps, _ := newTestDeps()

	req := httptest.NewRequest(http.MethodGet, "/applications/new", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	if err := HandleApplicationWizardStart(app, deps)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	target := rec.Header().Get("HX-Redirect")
	if !strings.HasPrefix(target, "/applications/wizard/") {
		t.Fatalf("unexpected HX-Redirect %q", target)
	}
	if deps.Applications.Len() != 1 {
		t.Errorf("expected 1 session, got %d", deps.Applications.Len())
	}
}

func TestHandleApplicationWizardField_CustomFeeVisibility(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	deps, _ := newTestDeps()
	s := wizard.NewApplicationState()
	sid := newApplicationSession(deps, s)
	_ = deps.Applications.Do(sid, func(w *wizard.ApplicationWizard) error {
		w.JumpToStep(wizard.AppStepPayment)
		return nil
	})

	post := func(field, value string) string {
		req := postForm("/applications/wizard/"+sid+"/field", url.Values{"field": {field}, "value": {value}})
		req.SetPathValue("sid", sid)
		req.Header.Set("HX-Request", "true")
		rec := httptest.NewRecorder()
		if err := HandleApplicationWizardField(app, deps)(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", field, rec.Code)
		}
		return rec.Body.String()
	}

	body := post("payment_option", "standard")
	if strings.Contains(body, "custom_fee") {
		t.Error("custom fee input should be hidden for the standard fee")
	}
	testhelpers.AssertHTMLContains(t, body, "$50.00")

	body = post("payment_option", "custom")
	testhelpers.AssertHTMLContains(t, body, "custom_fee")

	body = post("custom_fee", "35")
	testhelpers.AssertHTMLContains(t, body, "$35.00")

	// Switching away keeps the hidden custom value.
	post("payment_option", "none")
	var state wizard.ApplicationState
	_ = deps.Applications.Do(sid, func(w *wizard.ApplicationWizard) error {
		state = w.State()
		return nil
	})
	if state.CustomFee != "35" {
		t.Errorf("CustomFee = %q, want 35", state.CustomFee)
	}
}

func TestHandleApplicationWizardNext_RequiresBasicInfo(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	deps, _ := newTestDeps()
	sid := newApplicationSession(deps, wizard.NewApplicationState())

	req := httptest.NewRequest(http.MethodPost, "/applications/wizard/"+sid+"/next", nil)
	req.SetPathValue("sid", sid)
	rec := httptest.NewRecorder()
	if err := HandleApplicationWizardNext(app, deps)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Name is required", "Instructions are required")
}

func TestHandleApplicationWizardSubmit_Success(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	deps, recorder := newTestDeps()
	prop := testhelpers.CreateTestProperty(t, app, "Harbour View")

	s := wizard.NewApplicationState()
	s.Name = "Harbour View Rental Application"
	s.Instructions = "Attach two payslips"
	s.PaymentOption = wizard.PaymentCustom
	s.CustomFee = "35"
	s.ApplicantPaysScreening = true
	s.Terms = "Fees are non-refundable"
	sid := newApplicationSession(deps, s)

	req := withActiveProperty(httptest.NewRequest(http.MethodPost, "/applications/wizard/"+sid+"/submit", nil), prop)
	req.SetPathValue("sid", sid)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	if err := HandleApplicationWizardSubmit(app, deps)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	testhelpers.AssertHXRedirect(t, rec.Header().Get("HX-Redirect"), "/applications")

	records, _ := app.FindAllRecords("applications")
	if len(records) != 1 {
		t.Fatalf("expected 1 application, got %d", len(records))
	}
	r := records[0]
	if r.GetString("property") != prop.Id {
		t.Errorf("property = %q, want %q", r.GetString("property"), prop.Id)
	}
	if r.GetString("fee") != "35.00" {
		t.Errorf("fee = %q, want 35.00", r.GetString("fee"))
	}
	if !strings.HasPrefix(r.GetString("slug"), "harbour-view-rental-application-") {
		t.Errorf("unexpected slug %q", r.GetString("slug"))
	}

	envs := recorder.Envelopes()
	if len(envs) != 1 || envs[0].Subject != events.SubjectApplicationSubmitted {
		t.Fatalf("expected one application event, got %+v", envs)
	}
	var payload events.ApplicationSubmission
	if err := json.Unmarshal(envs[0].Payload, &payload); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if payload.Slug != r.GetString("slug") || payload.Fee != "35.00" {
		t.Errorf("unexpected payload %+v", payload)
	}
	if deps.Applications.Len() != 0 {
		t.Error("expected session removed")
	}
}

func TestHandleApplicationWizardSubmit_MissingTerms(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	deps, recorder := newTestDeps()

	s := wizard.NewApplicationState()
	s.Name = "Elm Court"
	s.Instructions = "Bring ID"
	sid := newApplicationSession(deps, s)

	req := httptest.NewRequest(http.MethodPost, "/applications/wizard/"+sid+"/submit", nil)
	req.SetPathValue("sid", sid)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	if err := HandleApplicationWizardSubmit(app, deps)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Terms are required")
	records, _ := app.FindAllRecords("applications")
	if len(records) != 0 {
		t.Errorf("expected nothing saved, got %d", len(records))
	}
	if len(recorder.Envelopes()) != 0 {
		t.Error("expected nothing published")
	}
}

func TestHandleApplicationWizardCancel(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	deps, _ := newTestDeps()
	sid := newApplicationSession(deps, wizard.NewApplicationState())

	req := httptest.NewRequest(http.MethodPost, "/applications/wizard/"+sid+"/cancel", nil)
	req.SetPathValue("sid", sid)
	rec := httptest.NewRecorder()
	if err := HandleApplicationWizardCancel(app, deps)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/applications" {
		t.Errorf("expected redirect to /applications, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if deps.Applications.Len() != 0 {
		t.Error("expected session discarded")
	}
}

func TestHandleApplicationWizardSubmit_ConcurrentSubmitsCreateOneApplication(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	deps, recorder := newTestDeps()

	s := wizard.NewApplicationState()
	s.Name = "Elm Court"
	s.Instructions = "Bring ID"
	s.Terms = "Fees are non-refundable"
	sid := newApplicationSession(deps, s)

	handler := HandleApplicationWizardSubmit(app, deps)
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/applications/wizard/"+sid+"/submit", nil)
			req.SetPathValue("sid", sid)
			req.Header.Set("HX-Request", "true")
			if err := handler(newTestRequestEvent(app, req, httptest.NewRecorder())); err != nil {
				t.Errorf("handler error: %v", err)
			}
		}()
	}
	wg.Wait()

	records, _ := app.FindAllRecords("applications")
	if len(records) != 1 {
		t.Errorf("expected 1 application from one session, got %d", len(records))
	}
	if got := len(recorder.Envelopes()); got != 1 {
		t.Errorf("expected 1 event, got %d", got)
	}
	if deps.Applications.Len() != 0 {
		t.Error("expected session removed")
	}
}
