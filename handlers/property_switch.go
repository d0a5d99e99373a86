package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandlePropertyActivate sets the active property cookie and returns a full page
// redirect via HX-Redirect so the entire shell (header + sidebar) re-renders.
func HandlePropertyActivate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		propertyID := e.Request.PathValue("id")

		if _, err := app.FindRecordById("properties", propertyID); err != nil {
			return ErrorToast(e, http.StatusNotFound, "Property not found")
		}

		http.SetCookie(e.Response, &http.Cookie{
			Name:     activePropertyCookie,
			Value:    propertyID,
			Path:     "/",
			MaxAge:   60 * 60 * 24 * 30,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		SetToast(e, ToastSuccess, "Property activated")
		e.Response.Header().Set("HX-Redirect", "/units")
		return e.String(http.StatusOK, "OK")
	}
}

// HandlePropertyDeactivate clears the active property so lists show every property.
func HandlePropertyDeactivate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		clearActivePropertyCookie(e)

		SetToast(e, ToastSuccess, "Showing all properties")
		e.Response.Header().Set("HX-Redirect", "/properties")
		return e.String(http.StatusOK, "OK")
	}
}
