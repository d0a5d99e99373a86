// Package templates renders the dashboard pages as templ components.
package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// htmlWriter writes markup and remembers the first write error.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newWriter(ctx context.Context, w io.Writer) *htmlWriter {
	return &htmlWriter{ctx: ctx, w: w}
}

// raw writes trusted markup.
func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// text writes escaped text content.
func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with the value escaped.
func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// flag writes a boolean attribute when on is true.
func (h *htmlWriter) flag(name string, on bool) {
	if on {
		h.raw(" " + name)
	}
}

// render writes a child component.
func (h *htmlWriter) render(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

func component(fn func(h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		fn(h)
		return h.err
	})
}

// SelectOption is one <option> of a select input.
type SelectOption struct {
	Value    string
	Label    string
	Selected bool
}

// selectInput renders a select that posts its value for field on change.
func (h *htmlWriter) selectInput(postURL, target, field, label string, options []SelectOption, placeholder string) {
	h.raw(`<label class="form-control w-full"><div class="label"><span class="label-text">`)
	h.text(label)
	h.raw(`</span></div><select class="select select-bordered" name="value"`)
	h.htmxField(postURL, target, field)
	h.raw(`>`)
	if placeholder != "" {
		h.raw(`<option value="">`)
		h.text(placeholder)
		h.raw(`</option>`)
	}
	for _, o := range options {
		h.raw(`<option`)
		h.attr("value", o.Value)
		h.flag("selected", o.Selected)
		h.raw(`>`)
		h.text(o.Label)
		h.raw(`</option>`)
	}
	h.raw(`</select></label>`)
}

// textInput renders an input that posts its value for field on change.
func (h *htmlWriter) textInput(postURL, target, field, label, inputType, value string) {
	h.raw(`<label class="form-control w-full"><div class="label"><span class="label-text">`)
	h.text(label)
	h.raw(`</span></div><input class="input input-bordered" name="value"`)
	h.attr("type", inputType)
	h.attr("value", value)
	h.htmxField(postURL, target, field)
	h.raw(`></label>`)
}

// textArea renders a textarea that posts its value for field on change.
func (h *htmlWriter) textArea(postURL, target, field, label, value string) {
	h.raw(`<label class="form-control w-full"><div class="label"><span class="label-text">`)
	h.text(label)
	h.raw(`</span></div><textarea class="textarea textarea-bordered" rows="4" name="value"`)
	h.htmxField(postURL, target, field)
	h.raw(`>`)
	h.text(value)
	h.raw(`</textarea></label>`)
}

// checkbox renders a toggle that posts "on" or nothing for field.
func (h *htmlWriter) checkbox(postURL, target, field, label string, checked bool) {
	h.raw(`<label class="label cursor-pointer justify-start gap-3"><input type="checkbox" class="checkbox" name="value" value="on"`)
	h.flag("checked", checked)
	h.htmxField(postURL, target, field)
	h.raw(`><span class="label-text">`)
	h.text(label)
	h.raw(`</span></label>`)
}

func (h *htmlWriter) htmxField(postURL, target, field string) {
	h.attr("hx-post", postURL)
	h.attr("hx-vals", `{"field":"`+field+`"}`)
	h.attr("hx-trigger", "change")
	h.attr("hx-target", target)
	h.attr("hx-swap", "outerHTML")
}

// postButton renders a button that posts to url and swaps target.
func (h *htmlWriter) postButton(url, target, class, label string, disabled bool) {
	h.raw(`<button type="button"`)
	h.attr("class", "btn "+class)
	h.attr("hx-post", url)
	if target != "" {
		h.attr("hx-target", target)
		h.attr("hx-swap", "outerHTML")
	}
	h.flag("disabled", disabled)
	h.raw(`>`)
	h.text(label)
	h.raw(`</button>`)
}

func (h *htmlWriter) issues(list []string) {
	if len(list) == 0 {
		return
	}
	h.raw(`<div class="alert alert-warning my-4"><ul class="list-disc pl-4">`)
	for _, msg := range list {
		h.raw(`<li>`)
		h.text(msg)
		h.raw(`</li>`)
	}
	h.raw(`</ul></div>`)
}
