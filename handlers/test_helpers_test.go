package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"propertydesk/config"
	"propertydesk/events"
	"propertydesk/templates"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// newTestDeps builds handler dependencies with default config and an
// in-memory event recorder.
func newTestDeps() (*Deps, *events.Recorder) {
	rec := &events.Recorder{}
	return NewDeps(config.Default(), rec), rec
}

// postForm builds a form-encoded POST request.
func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// withActiveProperty stores prop as the active property on req.
func withActiveProperty(req *http.Request, prop *core.Record) *http.Request {
	active := &templates.ActiveProperty{ID: prop.Id, Name: prop.GetString("name")}
	return req.WithContext(context.WithValue(req.Context(), ActivePropertyKey, active))
}
