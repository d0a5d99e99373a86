package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"propertydesk/testhelpers"
)

func seedLease(t *testing.T, app *pocketbase.PocketBase) *core.Record {
	t.Helper()
	prop := testhelpers.CreateTestProperty(t, app, "Harbour View")
	unit := testhelpers.CreateTestUnit(t, app, prop.Id, "2A")
	ada := testhelpers.CreateTestTenant(t, app, "Ada", "Lovelace")
	lease := testhelpers.CreateTestLease(t, app, prop.Id, unit.Id, []string{ada.Id}, "1000")
	testhelpers.CreateTestLeaseCharge(t, app, lease.Id, 1, "Parking", "120", "annually")
	testhelpers.CreateTestLeaseCharge(t, app, lease.Id, 2, "Storage", "25", "monthly")
	return lease
}

func TestHandleLeaseView_ShowsSummary(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	deps, _ := newTestDeps()
	lease := seedLease(t, app)

	req := httptest.NewRequest(http.MethodGet, "/leases/"+lease.Id, nil)
	req.SetPathValue("id", lease.Id)
	rec := httptest.NewRecorder()
	if err := HandleLeaseView(app, deps)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"Harbour View",
		"2A",
		"Ada Lovelace",
		"Parking",
		"$1,035.00",
		"/leases/"+lease.Id+"/export/pdf",
	)
}

func TestHandleLeaseView_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	deps, _ := newTestDeps()

	req := httptest.NewRequest(http.MethodGet, "/leases/missing", nil)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	if err := HandleLeaseView(app, deps)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleLeaseList(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	deps, _ := newTestDeps()
	lease := seedLease(t, app)

	req := httptest.NewRequest(http.MethodGet, "/leases", nil)
	rec := httptest.NewRecorder()
	if err := HandleLeaseList(app, deps)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Leases", "/leases/"+lease.Id, "$1,000.00", "/leases/new")
}

func TestHandleLeaseExportExcel(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	deps, _ := newTestDeps()
	lease := seedLease(t, app)

	req := httptest.NewRequest(http.MethodGet, "/leases/"+lease.Id+"/export/excel", nil)
	req.SetPathValue("id", lease.Id)
	rec := httptest.NewRecorder()
	if err := HandleLeaseExportExcel(app, deps)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("unexpected Content-Type %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "lease-"+lease.Id+".xlsx") {
		t.Errorf("unexpected Content-Disposition %q", cd)
	}
	// xlsx files are zip archives.
	if !strings.HasPrefix(rec.Body.String(), "PK") {
		t.Error("expected a zip payload")
	}
}

func TestHandleLeaseExportPDF(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	deps, _ := newTestDeps()
	lease := seedLease(t, app)

	req := httptest.NewRequest(http.MethodGet, "/leases/"+lease.Id+"/export/pdf", nil)
	req.SetPathValue("id", lease.Id)
	rec := httptest.NewRecorder()
	if err := HandleLeaseExportPDF(app, deps)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Header().Get("Content-Type") != "application/pdf" {
		t.Errorf("unexpected Content-Type %q", rec.Header().Get("Content-Type"))
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF-") {
		t.Error("expected a PDF payload")
	}
}

func TestHandleLeaseExport_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	deps, _ := newTestDeps()

	req := httptest.NewRequest(http.MethodGet, "/leases/missing/export/pdf", nil)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	if err := HandleLeaseExportPDF(app, deps)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
