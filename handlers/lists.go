package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"propertydesk/services"
	"propertydesk/templates"
)

// renderTable writes the full page, or only the table for HTMX requests.
func renderTable(e *core.RequestEvent, data templates.TableData) error {
	if isHTMX(e) {
		return templates.TableContent(data).Render(e.Request.Context(), e.Response)
	}
	return templates.TablePage(data, GetHeaderData(e.Request), GetSidebarData(e.Request)).Render(e.Request.Context(), e.Response)
}

// recordNames maps record ids of a collection to one of their fields.
func recordNames(app *pocketbase.PocketBase, collection, field string) map[string]string {
	names := make(map[string]string)
	records, err := app.FindAllRecords(collection)
	if err != nil {
		log.Printf("lists: could not load %s: %v", collection, err)
		return names
	}
	for _, r := range records {
		names[r.Id] = r.GetString(field)
	}
	return names
}

func statusBadge(status string) string {
	switch status {
	case "active", "vacant", "paid", "approved", "resolved":
		return "badge-success"
	case "occupied", "sent", "pending", "assigned", "in_progress":
		return "badge-info"
	case "overdue", "rejected", "urgent", "maintenance":
		return "badge-error"
	default:
		return "badge-ghost"
	}
}

func humanLabel(value string) string {
	value = strings.ReplaceAll(value, "_", " ")
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}

// HandlePropertyList lists all properties with a button to make each active.
func HandlePropertyList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("properties", "id != ''", "name", 0, 0, nil)
		if err != nil {
			log.Printf("property_list: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		active := GetActiveProperty(e.Request)
		data := templates.TableData{
			Title:        "Properties",
			Columns:      []string{"Name", "Address", "City", "Status", ""},
			EmptyMessage: "No properties yet.",
		}
		for _, r := range records {
			action := templates.Cell{Text: "Make active", Post: "/properties/" + r.Id + "/activate"}
			if active != nil && active.ID == r.Id {
				action = templates.Cell{Text: "Active", Badge: "badge-primary"}
			}
			data.Rows = append(data.Rows, []templates.Cell{
				{Text: r.GetString("name")},
				{Text: r.GetString("address_line")},
				{Text: r.GetString("city")},
				{Text: r.GetString("status"), Badge: statusBadge(r.GetString("status"))},
				action,
			})
		}
		return renderTable(e, data)
	}
}

// HandleUnitList lists units of the active property, or every unit.
func HandleUnitList(app *pocketbase.PocketBase, deps *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := scopedRecords(app, e.Request, "units", "property", "", "name")
		if err != nil {
			log.Printf("unit_list: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		properties := recordNames(app, "properties", "name")
		data := templates.TableData{
			Title:        "Units",
			Columns:      []string{"Unit", "Property", "Bedrooms", "Bathrooms", "Market rent", "Status"},
			EmptyMessage: "No units found.",
		}
		for _, r := range records {
			data.Rows = append(data.Rows, []templates.Cell{
				{Text: r.GetString("name")},
				{Text: properties[r.GetString("property")]},
				{Text: humanize.Comma(int64(r.GetInt("bedrooms")))},
				{Text: humanize.Comma(int64(r.GetInt("bathrooms")))},
				{Text: services.FormatMoney(deps.Config.CurrencySymbol, services.ParseAmount(r.GetString("market_rent")))},
				{Text: r.GetString("status"), Badge: statusBadge(r.GetString("status"))},
			})
		}
		return renderTable(e, data)
	}
}

func HandleContractorList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("contractors", "id != ''", "name", 0, 0, nil)
		if err != nil {
			log.Printf("contractor_list: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		data := templates.TableData{
			Title:        "Contractors",
			Columns:      []string{"Name", "Trade", "Phone", "Email"},
			EmptyMessage: "No contractors yet.",
		}
		for _, r := range records {
			data.Rows = append(data.Rows, []templates.Cell{
				{Text: r.GetString("name")},
				{Text: humanLabel(r.GetString("trade")), Badge: "badge-outline"},
				{Text: r.GetString("phone")},
				{Text: r.GetString("email")},
			})
		}
		return renderTable(e, data)
	}
}

// HandleInvoiceList lists invoices of the active property with their balance.
func HandleInvoiceList(app *pocketbase.PocketBase, deps *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := scopedRecords(app, e.Request, "invoices", "property", "", "-due_date")
		if err != nil {
			log.Printf("invoice_list: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		paid := paidByInvoice(app)
		properties := recordNames(app, "properties", "name")
		currency := deps.Config.CurrencySymbol

		data := templates.TableData{
			Title:        "Invoices",
			Columns:      []string{"Number", "Property", "Due", "Amount", "Paid", "Status"},
			EmptyMessage: "No invoices found.",
		}
		for _, r := range records {
			data.Rows = append(data.Rows, []templates.Cell{
				{Text: r.GetString("number")},
				{Text: properties[r.GetString("property")]},
				{Text: r.GetString("due_date")},
				{Text: services.FormatMoney(currency, services.ParseAmount(r.GetString("amount")))},
				{Text: services.FormatMoney(currency, services.ParseAmount(paid[r.Id]))},
				{Text: r.GetString("status"), Badge: statusBadge(r.GetString("status"))},
			})
		}
		return renderTable(e, data)
	}
}

// paidByInvoice sums payments per invoice id as decimal strings.
func paidByInvoice(app *pocketbase.PocketBase) map[string]string {
	totals := make(map[string]string)
	payments, err := app.FindAllRecords("payments")
	if err != nil {
		log.Printf("invoice_list: could not load payments: %v", err)
		return totals
	}
	for _, p := range payments {
		inv := p.GetString("invoice")
		sum := services.ParseAmount(totals[inv]).Add(services.ParseAmount(p.GetString("amount")))
		totals[inv] = sum.String()
	}
	return totals
}

// HandlePaymentList lists payments received against the active property's invoices.
func HandlePaymentList(app *pocketbase.PocketBase, deps *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := scopedRecords(app, e.Request, "payments", "invoice.property", "", "-paid_on")
		if err != nil {
			log.Printf("payment_list: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		invoices := recordNames(app, "invoices", "number")
		data := templates.TableData{
			Title:        "Payments",
			Columns:      []string{"Invoice", "Paid on", "Amount", "Method"},
			EmptyMessage: "No payments recorded.",
		}
		for _, r := range records {
			data.Rows = append(data.Rows, []templates.Cell{
				{Text: invoices[r.GetString("invoice")]},
				{Text: r.GetString("paid_on")},
				{Text: services.FormatMoney(deps.Config.CurrencySymbol, services.ParseAmount(r.GetString("amount")))},
				{Text: humanLabel(r.GetString("method"))},
			})
		}
		return renderTable(e, data)
	}
}

// HandleApplicationList lists rental application forms and their public links.
func HandleApplicationList(app *pocketbase.PocketBase, deps *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := scopedRecords(app, e.Request, "applications", "property", "", "-created")
		if err != nil {
			log.Printf("application_list: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		pending := make(map[string]int)
		if applicants, err := app.FindRecordsByFilter("applicants", "status = 'pending'", "", 0, 0, nil); err == nil {
			for _, a := range applicants {
				pending[a.GetString("application")]++
			}
		}

		data := templates.TableData{
			Title:        "Applications",
			Columns:      []string{"Name", "Link", "Fee", "Pending applicants", "Created"},
			EmptyMessage: "No application forms yet.",
			Actions:      []templates.Link{{Href: "/applications/new", Label: "New application"}},
		}
		for _, r := range records {
			link := services.ApplicationLink(r.GetString("slug"))
			fee := "None"
			if r.GetString("payment_option") != "none" {
				fee = services.FormatMoney(deps.Config.CurrencySymbol, services.ParseAmount(r.GetString("fee")))
			}
			data.Rows = append(data.Rows, []templates.Cell{
				{Text: r.GetString("name")},
				{Text: link, Href: link},
				{Text: fee},
				{Text: humanize.Comma(int64(pending[r.Id]))},
				{Text: humanize.Time(r.GetDateTime("created").Time())},
			})
		}
		return renderTable(e, data)
	}
}
