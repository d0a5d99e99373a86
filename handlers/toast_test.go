package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/pocketbase/pocketbase/core"

	"propertydesk/testhelpers"
	"propertydesk/wizard"
)

func newToastEvent(req *http.Request) (*core.RequestEvent, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	e := &core.RequestEvent{}
	e.Request = req
	e.Response = rec
	return e, rec
}

// triggerToast decodes the showToast payload of the HX-Trigger header.
func triggerToast(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var parsed map[string]json.RawMessage
	if err := json.Unmarshal([]byte(rec.Header().Get("HX-Trigger")), &parsed); err != nil {
		t.Fatalf("HX-Trigger is not valid JSON: %v", err)
	}
	var toast map[string]string
	if err := json.Unmarshal(parsed["showToast"], &toast); err != nil {
		t.Fatalf("showToast is not valid JSON: %v", err)
	}
	return toast
}

// flashToast decodes the flash cookie set alongside a toast, or returns nil.
func flashToast(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name != flashCookie {
			continue
		}
		raw, err := url.QueryUnescape(c.Value)
		if err != nil {
			t.Fatalf("flash cookie not query-escaped: %v", err)
		}
		var toast map[string]string
		if err := json.Unmarshal([]byte(raw), &toast); err != nil {
			t.Fatalf("flash cookie is not JSON: %v", err)
		}
		return toast
	}
	return nil
}

func TestSetToast_KindsReachHeaderAndFlashCookie(t *testing.T) {
	tests := []struct {
		kind    string
		message string
	}{
		{ToastSuccess, "Lease created"},
		{ToastError, "Please complete the Property & Unit step before saving."},
		{ToastWarning, "Please complete the required fields"},
		{ToastInfo, "Application discarded"},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			e, rec := newToastEvent(httptest.NewRequest(http.MethodPost, "/leases/wizard/x/next", nil))
			SetToast(e, tt.kind, tt.message)

			toast := triggerToast(t, rec)
			if toast["type"] != tt.kind || toast["message"] != tt.message {
				t.Errorf("showToast = %v", toast)
			}
			flash := flashToast(t, rec)
			if flash["type"] != tt.kind || flash["message"] != tt.message {
				t.Errorf("flash cookie = %v", flash)
			}
		})
	}
}

func TestSetToast_FlashCookieAttributes(t *testing.T) {
	e, rec := newToastEvent(httptest.NewRequest(http.MethodGet, "/leases/new", nil))
	SetToast(e, ToastSuccess, "Application created: /apply/elm-court-abc123")

	var flash *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == flashCookie {
			flash = c
		}
	}
	if flash == nil {
		t.Fatal("expected flash cookie")
	}
	if flash.MaxAge != 10 || flash.Path != "/" || flash.HttpOnly {
		t.Errorf("flash cookie MaxAge=%d Path=%q HttpOnly=%v", flash.MaxAge, flash.Path, flash.HttpOnly)
	}
}

func TestSetToast_MergesIntoExistingTrigger(t *testing.T) {
	e, rec := newToastEvent(httptest.NewRequest(http.MethodPost, "/leases/wizard/x/submit", nil))
	rec.Header().Set("HX-Trigger", `{"wizardStepChanged":{"step":"review"}}`)

	SetToast(e, ToastWarning, "Please complete the required fields")
	SetToast(e, ToastError, "Please complete the Rent & Charges step before saving.")

	var parsed map[string]map[string]string
	if err := json.Unmarshal([]byte(rec.Header().Get("HX-Trigger")), &parsed); err != nil {
		t.Fatalf("HX-Trigger is not valid JSON: %v", err)
	}
	if parsed["wizardStepChanged"]["step"] != "review" {
		t.Errorf("existing event lost: %v", parsed)
	}
	if parsed["showToast"]["type"] != ToastError {
		t.Errorf("expected the later toast to win, got %v", parsed["showToast"])
	}
}

func TestSetToast_ReplacesMalformedTrigger(t *testing.T) {
	e, rec := newToastEvent(httptest.NewRequest(http.MethodPost, "/leases/wizard/x/next", nil))
	rec.Header().Set("HX-Trigger", "wizardStepChanged")

	SetToast(e, ToastWarning, "Please complete the required fields")

	if toast := triggerToast(t, rec); toast["type"] != ToastWarning {
		t.Errorf("showToast = %v", toast)
	}
}

func TestErrorToast(t *testing.T) {
	tests := []struct {
		name string
		code int
		msg  string
	}{
		{"unknown field", http.StatusBadRequest, "That field is not part of this form."},
		{"missing lease", http.StatusNotFound, "Lease not found"},
		{"save failed", http.StatusInternalServerError, "Could not save the lease. Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, rec := newToastEvent(httptest.NewRequest(http.MethodPost, "/", nil))
			if err := ErrorToast(e, tt.code, tt.msg); err != nil {
				t.Fatalf("ErrorToast: %v", err)
			}

			if rec.Code != tt.code || rec.Body.String() != tt.msg {
				t.Errorf("got %d %q", rec.Code, rec.Body.String())
			}
			if rec.Header().Get("HX-Reswap") != "none" {
				t.Error("expected HX-Reswap: none")
			}
			if toast := triggerToast(t, rec); toast["type"] != ToastError || toast["message"] != tt.msg {
				t.Errorf("showToast = %v", toast)
			}
		})
	}
}

func TestSessionExpired(t *testing.T) {
	t.Run("htmx", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/leases/wizard/gone/next", nil)
		req.Header.Set("HX-Request", "true")
		e, rec := newToastEvent(req)

		if err := sessionExpired(e, "/leases/new"); err != nil {
			t.Fatalf("sessionExpired: %v", err)
		}
		if rec.Code != http.StatusNotFound || rec.Header().Get("Location") != "" {
			t.Errorf("status = %d, Location = %q", rec.Code, rec.Header().Get("Location"))
		}
		if toast := triggerToast(t, rec); toast["type"] != ToastError {
			t.Errorf("showToast = %v", toast)
		}
	})

	t.Run("plain", func(t *testing.T) {
		e, rec := newToastEvent(httptest.NewRequest(http.MethodGet, "/applications/wizard/gone", nil))

		if err := sessionExpired(e, "/applications/new"); err != nil {
			t.Fatalf("sessionExpired: %v", err)
		}
		if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/applications/new" {
			t.Errorf("status = %d, Location = %q", rec.Code, rec.Header().Get("Location"))
		}
		if flash := flashToast(t, rec); flash["type"] != ToastWarning {
			t.Errorf("flash cookie = %v, want a warning to survive the redirect", flash)
		}
	})
}

func TestRedirect(t *testing.T) {
	tests := []struct {
		name     string
		htmx     bool
		code     int
		header   string
		location string
	}{
		{"htmx", true, http.StatusOK, "HX-Redirect", "/leases"},
		{"plain", false, http.StatusSeeOther, "Location", "/leases/wizard/abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/leases/wizard/abc/submit", nil)
			if tt.htmx {
				req.Header.Set("HX-Request", "true")
			}
			e, rec := newToastEvent(req)

			if err := Redirect(e, tt.location); err != nil {
				t.Fatalf("Redirect: %v", err)
			}
			if rec.Code != tt.code {
				t.Errorf("status = %d, want %d", rec.Code, tt.code)
			}
			if got := rec.Header().Get(tt.header); got != tt.location {
				t.Errorf("%s = %q, want %q", tt.header, got, tt.location)
			}
		})
	}
}

func TestWizardToasts(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	deps, _ := newTestDeps()

	post := func(handler func(*core.RequestEvent) error, sid, action string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/leases/wizard/"+sid+"/"+action, nil)
		req.SetPathValue("sid", sid)
		req.Header.Set("HX-Request", "true")
		rec := httptest.NewRecorder()
		if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("%s: %v", action, err)
		}
		return rec
	}

	t.Run("blocked next warns", func(t *testing.T) {
		sid := newLeaseSession(deps, defaultLeaseState())
		rec := post(HandleLeaseWizardNext(app, deps), sid, "next")
		if toast := triggerToast(t, rec); toast["type"] != ToastWarning {
			t.Errorf("showToast = %v", toast)
		}
	})

	t.Run("incomplete submit names the step", func(t *testing.T) {
		sid := newLeaseSession(deps, defaultLeaseState())
		rec := post(HandleLeaseWizardSubmit(app, deps), sid, "submit")
		toast := triggerToast(t, rec)
		if toast["type"] != ToastError || toast["message"] != "Please complete the "+wizard.LeaseSteps[0].Label+" step before saving." {
			t.Errorf("showToast = %v", toast)
		}
	})

	t.Run("submit after session is gone", func(t *testing.T) {
		rec := post(HandleLeaseWizardSubmit(app, deps), "gone", "submit")
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
		if toast := triggerToast(t, rec); toast["type"] != ToastError {
			t.Errorf("showToast = %v", toast)
		}
	})
}
