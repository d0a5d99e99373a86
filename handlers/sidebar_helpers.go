package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"

	"propertydesk/templates"
)

// BuildSidebarData constructs the SidebarData from the current request
// context. Counts are scoped to the active property when one is selected.
func BuildSidebarData(r *http.Request, app *pocketbase.PocketBase) templates.SidebarData {
	active := GetActiveProperty(r)
	data := templates.SidebarData{
		ActiveProperty: active,
		ActivePath:     r.URL.Path,
	}

	count := func(collection, filter string, params map[string]any) int {
		col, err := app.FindCollectionByNameOrId(collection)
		if err != nil {
			return 0
		}
		records, err := app.FindRecordsByFilter(col, filter, "", 0, 0, params)
		if err != nil {
			return 0
		}
		return len(records)
	}

	scope := func(field, filter string) (string, map[string]any) {
		if active == nil {
			return filter, nil
		}
		scoped := field + " = {:pid}"
		if filter != "" {
			scoped += " && " + filter
		}
		return scoped, map[string]any{"pid": active.ID}
	}

	f, p := scope("property", "")
	data.UnitCount = count("units", nonEmpty(f), p)

	f, p = scope("property", "status = 'active'")
	data.LeaseCount = count("leases", f, p)

	f, p = scope("property", "status != 'resolved'")
	data.OpenFaults = count("faults", f, p)

	f, p = scope("application.property", "status = 'pending'")
	data.PendingApplicants = count("applicants", f, p)

	f, p = scope("property", "(status = 'sent' || status = 'overdue')")
	data.UnpaidInvoices = count("invoices", f, p)

	return data
}

// nonEmpty turns an empty filter into one matching every record.
func nonEmpty(filter string) string {
	if filter == "" {
		return "id != ''"
	}
	return filter
}
