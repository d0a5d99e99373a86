package templates

import "github.com/a-h/templ"

type LeaseViewData struct {
	ID      string
	Status  string
	Summary LeaseSummaryView
}

func LeaseViewPage(data LeaseViewData, header HeaderData, sidebar SidebarData) templ.Component {
	return Page("Lease", header, sidebar, component(func(h *htmlWriter) {
		h.raw(`<div class="card bg-base-100 shadow"><div class="card-body"><div class="flex justify-between items-center"><h1 class="card-title">`)
		h.text("Lease - " + data.Summary.Property + " / " + data.Summary.Unit)
		h.raw(`</h1><div class="flex gap-2"><span class="badge">`)
		h.text(data.Status)
		h.raw(`</span><a class="btn btn-sm btn-outline"`)
		h.attr("href", "/leases/"+data.ID+"/export/excel")
		h.raw(`>Excel</a><a class="btn btn-sm btn-outline"`)
		h.attr("href", "/leases/"+data.ID+"/export/pdf")
		h.raw(`>PDF</a></div></div>`)
		h.leaseReview(data.Summary)

		if len(data.Summary.Charges) > 0 {
			rows := make([][]Cell, 0, len(data.Summary.Charges))
			for _, c := range data.Summary.Charges {
				freq := ""
				for _, o := range c.FrequencyOptions {
					if o.Selected {
						freq = o.Label
					}
				}
				rows = append(rows, []Cell{{Text: c.Description}, {Text: c.Amount}, {Text: freq}, {Text: c.Monthly}})
			}
			h.raw(`<h2 class="font-semibold mt-4">Additional charges</h2>`)
			h.table([]string{"Description", "Amount", "Frequency", "Monthly"}, rows, "")
		}
		h.raw(`</div></div>`)
	}))
}
