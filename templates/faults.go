package templates

import (
	"strconv"

	"github.com/a-h/templ"
)

// TagChip is one category filter chip with its fault count.
type TagChip struct {
	Tag      string
	Count    int
	Selected bool
}

type FaultsData struct {
	Query string
	Tags  []TagChip
	Rows  [][]Cell
	Total int
}

func FaultsPage(data FaultsData, header HeaderData, sidebar SidebarData) templ.Component {
	return Page("Faults", header, sidebar, component(func(h *htmlWriter) {
		h.raw(`<h1 class="text-2xl font-bold mb-4">Faults</h1>`)
		h.raw(`<form id="fault-filters" class="mb-4" hx-get="/faults" hx-target="#faults-content" hx-swap="outerHTML" hx-trigger="input changed delay:300ms from:input[name='q'], change">`)
		h.raw(`<input type="search" name="q" class="input input-bordered w-full max-w-md" placeholder="Search title, description, unit or property"`)
		h.attr("value", data.Query)
		h.raw(`><div class="flex flex-wrap gap-2 mt-3">`)
		for _, t := range data.Tags {
			h.raw(`<label class="badge badge-lg gap-1 cursor-pointer"><input type="checkbox" name="tag" class="checkbox checkbox-xs"`)
			h.attr("value", t.Tag)
			h.flag("checked", t.Selected)
			h.raw(`>`)
			h.text(t.Tag)
			h.raw(` <span class="opacity-60">`)
			h.text(strconv.Itoa(t.Count))
			h.raw(`</span></label>`)
		}
		h.raw(`</div></form>`)
		h.render(FaultsContent(data))
	}))
}

// FaultsContent is the result table swapped in when the filters change.
func FaultsContent(data FaultsData) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div id="faults-content"><p class="text-sm opacity-70 mb-2">`)
		h.text(strconv.Itoa(len(data.Rows)) + " of " + strconv.Itoa(data.Total) + " faults")
		h.raw(`</p>`)
		h.table([]string{"Title", "Category", "Priority", "Status", "Property", "Unit", "Contractor", "Reported"}, data.Rows, "No faults match the current filters.")
		h.raw(`</div>`)
	})
}
