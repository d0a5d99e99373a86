// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"propertydesk/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

func save(t *testing.T, app *pocketbase.PocketBase, collection string, fields map[string]any) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(collection)
	if err != nil {
		t.Fatalf("failed to find %s collection: %v", collection, err)
	}

	record := core.NewRecord(col)
	for k, v := range fields {
		record.Set(k, v)
	}

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test %s record: %v", collection, err)
	}

	return record
}

// CreateTestProperty creates an active property record with the given name and returns it.
func CreateTestProperty(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()
	return save(t, app, "properties", map[string]any{
		"name":   name,
		"city":   "Bristol",
		"status": "active",
	})
}

// CreateTestUnit creates a vacant unit in a property and returns it.
func CreateTestUnit(t *testing.T, app *pocketbase.PocketBase, propertyID, name string) *core.Record {
	t.Helper()
	return save(t, app, "units", map[string]any{
		"property":    propertyID,
		"name":        name,
		"bedrooms":    2,
		"bathrooms":   1,
		"market_rent": "1200",
		"status":      "vacant",
	})
}

// CreateTestTenant creates a tenant record and returns it.
func CreateTestTenant(t *testing.T, app *pocketbase.PocketBase, firstName, lastName string) *core.Record {
	t.Helper()
	return save(t, app, "tenants", map[string]any{
		"first_name": firstName,
		"last_name":  lastName,
		"email":      strings.ToLower(firstName) + "@example.com",
	})
}

// CreateTestContractor creates a contractor for a trade and returns it.
func CreateTestContractor(t *testing.T, app *pocketbase.PocketBase, name, trade string) *core.Record {
	t.Helper()
	return save(t, app, "contractors", map[string]any{
		"name":  name,
		"trade": trade,
		"phone": "555-0100",
	})
}

// CreateTestLease creates an active monthly fixed-term lease on a unit.
func CreateTestLease(t *testing.T, app *pocketbase.PocketBase, propertyID, unitID string, tenantIDs []string, rent string) *core.Record {
	t.Helper()
	return save(t, app, "leases", map[string]any{
		"property":          propertyID,
		"unit":              unitID,
		"tenants":           tenantIDs,
		"lease_type":        "fixed",
		"start_date":        "2026-01-01",
		"end_date":          "2026-12-31",
		"rent_amount":       rent,
		"payment_frequency": "monthly",
		"deposit":           "2000",
		"status":            "active",
	})
}

// CreateTestLeaseCharge adds an additional charge to a lease.
func CreateTestLeaseCharge(t *testing.T, app *pocketbase.PocketBase, leaseID string, sortOrder int, description, amount, frequency string) *core.Record {
	t.Helper()
	return save(t, app, "lease_charges", map[string]any{
		"lease":       leaseID,
		"sort_order":  sortOrder,
		"description": description,
		"amount":      amount,
		"frequency":   frequency,
	})
}

// CreateTestFault creates an open fault on a property; unitID may be empty.
func CreateTestFault(t *testing.T, app *pocketbase.PocketBase, propertyID, unitID, title, category string) *core.Record {
	t.Helper()
	fields := map[string]any{
		"property": propertyID,
		"title":    title,
		"category": category,
		"priority": "medium",
		"status":   "open",
	}
	if unitID != "" {
		fields["unit"] = unitID
	}
	return save(t, app, "faults", fields)
}

// CreateTestApplication creates an application form and returns it.
func CreateTestApplication(t *testing.T, app *pocketbase.PocketBase, propertyID, name string) *core.Record {
	t.Helper()
	return save(t, app, "applications", map[string]any{
		"property":       propertyID,
		"name":           name,
		"instructions":   "Fill in every field",
		"payment_option": "standard",
		"fee":            "50.00",
		"terms":          "Fees are non-refundable",
	})
}

// CreateTestApplicant creates an applicant against an application form.
func CreateTestApplicant(t *testing.T, app *pocketbase.PocketBase, applicationID, name, status string) *core.Record {
	t.Helper()
	return save(t, app, "applicants", map[string]any{
		"application": applicationID,
		"name":        name,
		"status":      status,
	})
}

// CreateTestInvoice creates an invoice for a property.
func CreateTestInvoice(t *testing.T, app *pocketbase.PocketBase, propertyID, number, amount, status string) *core.Record {
	t.Helper()
	return save(t, app, "invoices", map[string]any{
		"property": propertyID,
		"number":   number,
		"amount":   amount,
		"due_date": "2026-02-01",
		"status":   status,
	})
}

// CreateTestPayment records a payment against an invoice.
func CreateTestPayment(t *testing.T, app *pocketbase.PocketBase, invoiceID, amount string) *core.Record {
	t.Helper()
	return save(t, app, "payments", map[string]any{
		"invoice": invoiceID,
		"amount":  amount,
		"paid_on": "2026-02-01",
		"method":  "card",
	})
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHXRedirect checks that the response has an HX-Redirect header with the expected URL.
func AssertHXRedirect(t *testing.T, headerVal, expectedURL string) {
	t.Helper()

	if headerVal != expectedURL {
		t.Errorf("expected HX-Redirect %q, got %q", expectedURL, headerVal)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
