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

// HandleFaultList shows the faults of the active property filtered by the
// free-text query "q" and any number of "tag" category params. HTMX requests
// get only the result table.
func HandleFaultList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := scopedRecords(app, e.Request, "faults", "property", "", "-created")
		if err != nil {
			log.Printf("fault_list: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		properties := recordNames(app, "properties", "name")
		units := recordNames(app, "units", "name")
		contractors := recordNames(app, "contractors", "name")

		faults := make([]services.FaultRow, 0, len(records))
		for _, r := range records {
			faults = append(faults, services.FaultRow{
				ID:          r.Id,
				Title:       r.GetString("title"),
				Description: r.GetString("description"),
				Category:    r.GetString("category"),
				Priority:    r.GetString("priority"),
				Status:      r.GetString("status"),
				Property:    properties[r.GetString("property")],
				Unit:        units[r.GetString("unit")],
				Contractor:  contractors[r.GetString("contractor")],
				ReportedAt:  humanize.Time(r.GetDateTime("created").Time()),
			})
		}

		query := strings.TrimSpace(e.Request.URL.Query().Get("q"))
		tags := e.Request.URL.Query()["tag"]
		matched := services.FilterFaults(faults, query, tags)

		data := templates.FaultsData{
			Query: query,
			Total: len(faults),
		}
		for _, tc := range services.FaultTagCounts(faults, tags) {
			data.Tags = append(data.Tags, templates.TagChip{Tag: tc.Tag, Count: tc.Count, Selected: tc.Selected})
		}
		for _, f := range matched {
			data.Rows = append(data.Rows, []templates.Cell{
				{Text: f.Title},
				{Text: f.Category, Badge: "badge-outline"},
				{Text: f.Priority, Badge: statusBadge(f.Priority)},
				{Text: humanLabel(f.Status), Badge: statusBadge(f.Status)},
				{Text: f.Property},
				{Text: f.Unit},
				{Text: f.Contractor},
				{Text: f.ReportedAt},
			})
		}

		if isHTMX(e) {
			return templates.FaultsContent(data).Render(e.Request.Context(), e.Response)
		}
		return templates.FaultsPage(data, GetHeaderData(e.Request), GetSidebarData(e.Request)).Render(e.Request.Context(), e.Response)
	}
}
