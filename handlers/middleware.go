package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"propertydesk/templates"
)

type contextKey string

const ActivePropertyKey contextKey = "activeProperty"
const HeaderDataKey contextKey = "headerData"
const SidebarDataKey contextKey = "sidebarData"

const activePropertyCookie = "active_property"

// GetActiveProperty extracts the active property from the request context.
func GetActiveProperty(r *http.Request) *templates.ActiveProperty {
	if val, ok := r.Context().Value(ActivePropertyKey).(*templates.ActiveProperty); ok {
		return val
	}
	return nil
}

// GetHeaderData extracts the pre-built HeaderData from the request context.
func GetHeaderData(r *http.Request) templates.HeaderData {
	if val, ok := r.Context().Value(HeaderDataKey).(templates.HeaderData); ok {
		return val
	}
	return templates.HeaderData{}
}

// GetSidebarData extracts the pre-built SidebarData from the request context.
func GetSidebarData(r *http.Request) templates.SidebarData {
	if val, ok := r.Context().Value(SidebarDataKey).(templates.SidebarData); ok {
		return val
	}
	return templates.SidebarData{}
}

// ActivePropertyMiddleware reads the "active_property" cookie, loads the
// property record, builds HeaderData with the full property list, and stores
// both in the request context so handlers and templates can use them.
func ActivePropertyMiddleware(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var active *templates.ActiveProperty

		cookie, err := e.Request.Cookie(activePropertyCookie)
		if err == nil && cookie.Value != "" {
			rec, err := app.FindRecordById("properties", cookie.Value)
			if err == nil {
				active = &templates.ActiveProperty{
					ID:   rec.Id,
					Name: rec.GetString("name"),
				}
			} else {
				log.Printf("middleware: active property %s not found, clearing cookie", cookie.Value)
				clearActivePropertyCookie(e)
			}
		}

		propertiesCol, _ := app.FindCollectionByNameOrId("properties")
		var selectorItems []templates.PropertySelectorItem
		if propertiesCol != nil {
			records, _ := app.FindRecordsByFilter(propertiesCol, "status = 'active'", "name", 0, 0, nil)
			for _, rec := range records {
				selectorItems = append(selectorItems, templates.PropertySelectorItem{
					ID:       rec.Id,
					Name:     rec.GetString("name"),
					City:     rec.GetString("city"),
					IsActive: active != nil && rec.Id == active.ID,
				})
			}
		}

		headerData := templates.HeaderData{
			ActiveProperty: active,
			Properties:     selectorItems,
		}

		ctx := context.WithValue(e.Request.Context(), ActivePropertyKey, active)
		ctx = context.WithValue(ctx, HeaderDataKey, headerData)
		e.Request = e.Request.WithContext(ctx)

		// Sidebar counts need the active property in context first.
		sidebarData := BuildSidebarData(e.Request, app)
		ctx = context.WithValue(e.Request.Context(), SidebarDataKey, sidebarData)
		e.Request = e.Request.WithContext(ctx)

		return e.Next()
	}
}

func clearActivePropertyCookie(e *core.RequestEvent) {
	http.SetCookie(e.Response, &http.Cookie{
		Name:   activePropertyCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}
