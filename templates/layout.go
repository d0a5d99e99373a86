package templates

import (
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// ActiveProperty is the property selected through the header switcher.
type ActiveProperty struct {
	ID   string
	Name string
}

// PropertySelectorItem is one entry in the header property dropdown.
type PropertySelectorItem struct {
	ID       string
	Name     string
	City     string
	IsActive bool
}

type HeaderData struct {
	ActiveProperty *ActiveProperty
	Properties     []PropertySelectorItem
}

// SidebarData drives the navigation links and their count badges.
type SidebarData struct {
	ActiveProperty    *ActiveProperty
	ActivePath        string
	UnitCount         int
	LeaseCount        int
	OpenFaults        int
	PendingApplicants int
	UnpaidInvoices    int
}

type navLink struct {
	href  string
	label string
	count int
}

const toastScript = `<script>
document.body.addEventListener("showToast", function (evt) { window.showToast(evt.detail.message, evt.detail.type); });
window.showToast = function (message, type) {
  var el = document.createElement("div");
  el.className = "alert alert-" + (type || "info");
  el.textContent = message;
  document.getElementById("toasts").appendChild(el);
  setTimeout(function () { el.remove(); }, 4000);
};
(function () {
  var m = document.cookie.match(/(?:^|; )flash_toast=([^;]*)/);
  if (!m) return;
  document.cookie = "flash_toast=; Max-Age=0; path=/";
  try { var t = JSON.parse(decodeURIComponent(m[1])); window.showToast(t.message, t.type); } catch (e) {}
})();
</script>`

// Page wraps content in the full dashboard shell.
func Page(title string, header HeaderData, sidebar SidebarData, content templ.Component) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		h.text(title)
		h.raw(` · PropertyDesk</title>`)
		h.raw(`<link href="https://cdn.jsdelivr.net/npm/daisyui@4/dist/full.min.css" rel="stylesheet">`)
		h.raw(`<script src="https://unpkg.com/htmx.org@2.0.4"></script></head><body class="min-h-screen bg-base-200">`)
		h.render(Header(header))
		h.raw(`<div class="flex">`)
		h.render(Sidebar(sidebar))
		h.raw(`<main id="main-content" class="flex-1 p-6">`)
		h.render(content)
		h.raw(`</main></div><div id="toasts" class="toast toast-end"></div>`)
		h.raw(toastScript)
		h.raw(`</body></html>`)
	})
}

func Header(data HeaderData) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<header class="navbar bg-base-100 shadow"><a href="/" class="btn btn-ghost text-xl">PropertyDesk</a><div class="flex-1"></div>`)
		h.raw(`<div class="dropdown dropdown-end"><div tabindex="0" role="button" class="btn btn-outline">`)
		if data.ActiveProperty != nil {
			h.text(data.ActiveProperty.Name)
		} else {
			h.raw(`All properties`)
		}
		h.raw(`</div><ul tabindex="0" class="dropdown-content menu bg-base-100 rounded-box w-64 shadow">`)
		for _, p := range data.Properties {
			h.raw(`<li><a`)
			h.attr("hx-post", "/properties/"+p.ID+"/activate")
			if p.IsActive {
				h.attr("class", "active")
			}
			h.raw(`>`)
			h.text(p.Name)
			if p.City != "" {
				h.raw(` <span class="text-xs opacity-60">`)
				h.text(p.City)
				h.raw(`</span>`)
			}
			h.raw(`</a></li>`)
		}
		if data.ActiveProperty != nil {
			h.raw(`<li><a hx-post="/properties/deactivate">Show all properties</a></li>`)
		}
		h.raw(`</ul></div></header>`)
	})
}

func Sidebar(data SidebarData) templ.Component {
	links := []navLink{
		{href: "/properties", label: "Properties"},
		{href: "/units", label: "Units", count: data.UnitCount},
		{href: "/leases", label: "Leases", count: data.LeaseCount},
		{href: "/faults", label: "Faults", count: data.OpenFaults},
		{href: "/applications", label: "Applications", count: data.PendingApplicants},
		{href: "/invoices", label: "Invoices", count: data.UnpaidInvoices},
		{href: "/payments", label: "Payments"},
		{href: "/contractors", label: "Contractors"},
	}
	return component(func(h *htmlWriter) {
		h.raw(`<aside class="w-60 bg-base-100 min-h-screen"><ul class="menu">`)
		for _, l := range links {
			h.raw(`<li><a`)
			h.attr("href", l.href)
			if data.ActivePath == l.href || strings.HasPrefix(data.ActivePath, l.href+"/") {
				h.attr("class", "active")
			}
			h.raw(`>`)
			h.text(l.label)
			if l.count > 0 {
				h.raw(`<span class="badge badge-sm">`)
				h.text(strconv.Itoa(l.count))
				h.raw(`</span>`)
			}
			h.raw(`</a></li>`)
		}
		h.raw(`</ul></aside>`)
	})
}

// StepItem is one entry of a wizard progress indicator.
type StepItem struct {
	ID      string
	Label   string
	Current bool
	Done    bool
	JumpURL string
}

// stepIndicator renders the clickable progress steps. Clicking any step
// jumps straight to it.
func (h *htmlWriter) stepIndicator(steps []StepItem, target string) {
	h.raw(`<ul class="steps w-full mb-6">`)
	for _, s := range steps {
		class := "step"
		if s.Done || s.Current {
			class += " step-primary"
		}
		h.raw(`<li`)
		h.attr("class", class)
		h.attr("hx-post", s.JumpURL)
		h.attr("hx-target", target)
		h.attr("hx-swap", "outerHTML")
		if s.Current {
			h.attr("aria-current", "step")
		}
		h.raw(`>`)
		h.text(s.Label)
		h.raw(`</li>`)
	}
	h.raw(`</ul>`)
}
