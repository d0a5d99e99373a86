package templates

import (
	"strconv"

	"github.com/a-h/templ"
)

// Cell is one table cell. Href renders a link, Post an hx-post button and
// Badge wraps the text in a badge with that class.
type Cell struct {
	Text  string
	Href  string
	Post  string
	Badge string
}

// Link is a toolbar action above a table.
type Link struct {
	Href  string
	Label string
}

type TableData struct {
	Title        string
	Subtitle     string
	Columns      []string
	Rows         [][]Cell
	EmptyMessage string
	Actions      []Link
}

func TablePage(data TableData, header HeaderData, sidebar SidebarData) templ.Component {
	return Page(data.Title, header, sidebar, TableContent(data))
}

func TableContent(data TableData) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div id="table-content"><div class="flex items-center justify-between mb-4"><div><h1 class="text-2xl font-bold">`)
		h.text(data.Title)
		h.raw(`</h1>`)
		if data.Subtitle != "" {
			h.raw(`<p class="opacity-70">`)
			h.text(data.Subtitle)
			h.raw(`</p>`)
		}
		h.raw(`</div><div class="flex gap-2">`)
		for _, a := range data.Actions {
			h.raw(`<a class="btn btn-primary btn-sm"`)
			h.attr("href", a.Href)
			h.raw(`>`)
			h.text(a.Label)
			h.raw(`</a>`)
		}
		h.raw(`</div></div>`)
		h.table(data.Columns, data.Rows, data.EmptyMessage)
		h.raw(`</div>`)
	})
}

func (h *htmlWriter) table(columns []string, rows [][]Cell, empty string) {
	if len(rows) == 0 {
		h.raw(`<div class="alert">`)
		h.text(empty)
		h.raw(`</div>`)
		return
	}
	h.raw(`<div class="overflow-x-auto bg-base-100 rounded-box"><table class="table"><thead><tr>`)
	for _, c := range columns {
		h.raw(`<th>`)
		h.text(c)
		h.raw(`</th>`)
	}
	h.raw(`</tr></thead><tbody>`)
	for _, row := range rows {
		h.raw(`<tr>`)
		for _, c := range row {
			h.raw(`<td>`)
			h.cell(c)
			h.raw(`</td>`)
		}
		h.raw(`</tr>`)
	}
	h.raw(`</tbody></table></div><p class="text-sm opacity-60 mt-2">`)
	h.text(strconv.Itoa(len(rows)))
	h.raw(` shown</p>`)
}

func (h *htmlWriter) cell(c Cell) {
	switch {
	case c.Post != "":
		h.raw(`<button class="btn btn-xs btn-outline"`)
		h.attr("hx-post", c.Post)
		h.raw(`>`)
		h.text(c.Text)
		h.raw(`</button>`)
	case c.Href != "":
		h.raw(`<a class="link"`)
		h.attr("href", c.Href)
		h.raw(`>`)
		h.text(c.Text)
		h.raw(`</a>`)
	case c.Badge != "":
		h.raw(`<span`)
		h.attr("class", "badge "+c.Badge)
		h.raw(`>`)
		h.text(c.Text)
		h.raw(`</span>`)
	default:
		h.text(c.Text)
	}
}
