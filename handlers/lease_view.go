package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"propertydesk/services"
	"propertydesk/templates"
	"propertydesk/wizard"
)

// loadLeaseState rebuilds the wizard state of a stored lease so the same
// summary logic serves the detail page and the exports.
func loadLeaseState(app *pocketbase.PocketBase, lease *core.Record) (wizard.LeaseState, error) {
	s := wizard.LeaseState{
		PropertyID:       lease.GetString("property"),
		UnitID:           lease.GetString("unit"),
		LeaseType:        lease.GetString("lease_type"),
		StartDate:        lease.GetString("start_date"),
		EndDate:          lease.GetString("end_date"),
		TenantIDs:        lease.GetStringSlice("tenants"),
		RentAmount:       lease.GetString("rent_amount"),
		PaymentFrequency: services.Frequency(lease.GetString("payment_frequency")),
		Deposit:          lease.GetString("deposit"),
		LateFees: wizard.LateFeePolicy{
			Enabled:   lease.GetBool("late_fee_enabled"),
			GraceDays: strconv.Itoa(lease.GetInt("late_fee_grace_days")),
			FeeType:   lease.GetString("late_fee_type"),
			Amount:    lease.GetString("late_fee_amount"),
		},
	}

	charges, err := app.FindRecordsByFilter("lease_charges", "lease = {:id}", "sort_order", 0, 0, map[string]any{"id": lease.Id})
	if err != nil {
		return s, fmt.Errorf("load charges: %w", err)
	}
	for _, c := range charges {
		s.Charges = append(s.Charges, wizard.AdditionalCharge{
			ID:          c.Id,
			Description: c.GetString("description"),
			Amount:      c.GetString("amount"),
			Frequency:   services.Frequency(c.GetString("frequency")),
		})
	}
	return s, nil
}

// HandleLeaseView shows a saved lease with its rent breakdown.
func HandleLeaseView(app *pocketbase.PocketBase, deps *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		lease, err := app.FindRecordById("leases", id)
		if err != nil {
			return e.String(http.StatusNotFound, "Lease not found")
		}

		s, err := loadLeaseState(app, lease)
		if err != nil {
			log.Printf("lease_view: lease %s: %v", id, err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		data := templates.LeaseViewData{
			ID:      lease.Id,
			Status:  lease.GetString("status"),
			Summary: leaseSummaryView(app, deps.Config.CurrencySymbol, s, services.SummarizeLease(s.Terms())),
		}
		component := templates.LeaseViewPage(data, GetHeaderData(e.Request), GetSidebarData(e.Request))
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleLeaseList lists leases for the active property, newest first.
func HandleLeaseList(app *pocketbase.PocketBase, deps *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := scopedRecords(app, e.Request, "leases", "property", "", "-start_date")
		if err != nil {
			log.Printf("lease_list: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		names := recordNames(app, "properties", "name")
		units := recordNames(app, "units", "name")

		data := templates.TableData{
			Title:        "Leases",
			Columns:      []string{"Property", "Unit", "Start", "End", "Rent", "Frequency", "Status"},
			EmptyMessage: "No leases yet.",
			Actions:      []templates.Link{{Href: "/leases/new", Label: "New lease"}},
		}
		for _, r := range records {
			data.Rows = append(data.Rows, []templates.Cell{
				{Text: names[r.GetString("property")]},
				{Text: units[r.GetString("unit")], Href: "/leases/" + r.Id},
				{Text: r.GetString("start_date")},
				{Text: r.GetString("end_date")},
				{Text: services.FormatMoney(deps.Config.CurrencySymbol, services.ParseAmount(r.GetString("rent_amount")))},
				{Text: services.Frequency(r.GetString("payment_frequency")).Label()},
				{Text: r.GetString("status"), Badge: statusBadge(r.GetString("status"))},
			})
		}
		return renderTable(e, data)
	}
}

// HandleLeaseExportExcel downloads the lease summary as xlsx.
func HandleLeaseExportExcel(app *pocketbase.PocketBase, deps *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, status, err := buildLeaseExportData(app, deps, e.Request.PathValue("id"))
		if err != nil {
			log.Printf("lease_export: %v", err)
			return e.String(status, http.StatusText(status))
		}

		xlsx, err := services.GenerateLeaseExcel(data)
		if err != nil {
			log.Printf("lease_export: failed to generate Excel: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel")
		}

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="lease-%s.xlsx"`, data.LeaseID))
		e.Response.Write(xlsx)
		return nil
	}
}

// HandleLeaseExportPDF downloads the lease summary as PDF.
func HandleLeaseExportPDF(app *pocketbase.PocketBase, deps *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, status, err := buildLeaseExportData(app, deps, e.Request.PathValue("id"))
		if err != nil {
			log.Printf("lease_export: %v", err)
			return e.String(status, http.StatusText(status))
		}

		pdfBytes, err := services.GenerateLeasePDF(data)
		if err != nil {
			log.Printf("lease_export: failed to generate PDF: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF")
		}

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="lease-%s.pdf"`, data.LeaseID))
		e.Response.Write(pdfBytes)
		return nil
	}
}

func buildLeaseExportData(app *pocketbase.PocketBase, deps *Deps, id string) (services.LeaseExportData, int, error) {
	lease, err := app.FindRecordById("leases", id)
	if err != nil {
		return services.LeaseExportData{}, http.StatusNotFound, fmt.Errorf("lease %s not found: %w", id, err)
	}
	s, err := loadLeaseState(app, lease)
	if err != nil {
		return services.LeaseExportData{}, http.StatusInternalServerError, fmt.Errorf("lease %s: %w", id, err)
	}

	currency := deps.Config.CurrencySymbol
	view := leaseSummaryView(app, currency, s, services.SummarizeLease(s.Terms()))

	terms := s.Terms()
	descriptions := make([]string, len(s.Charges))
	for i, c := range s.Charges {
		descriptions[i] = c.Description
	}

	return services.LeaseExportData{
		Currency:         currency,
		LeaseID:          lease.Id,
		CreatedDate:      lease.GetDateTime("created").Time().Format(services.DateLayout),
		Property:         view.Property,
		Unit:             view.Unit,
		Tenants:          view.Tenants,
		LeaseType:        view.LeaseType,
		StartDate:        s.StartDate,
		EndDate:          s.EndDate,
		PaymentFrequency: s.PaymentFrequency,
		LateFee:          view.LateFee,
		Rows:             services.BuildChargeRows(s.RentAmount, s.PaymentFrequency, terms.Charges, descriptions),
		Summary:          services.SummarizeLease(terms),
	}, http.StatusOK, nil
}
