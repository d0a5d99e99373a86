package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"propertydesk/config"
	"propertydesk/events"
	"propertydesk/wizard"
)

// Deps carries the process-wide state handlers need beyond the PocketBase app.
type Deps struct {
	Config       *config.Config
	Leases       *wizard.Registry[*wizard.LeaseWizard]
	Applications *wizard.Registry[*wizard.ApplicationWizard]
	Publisher    events.Publisher
}

// NewDeps builds wizard registries sized by the configured session TTL.
func NewDeps(cfg *config.Config, pub events.Publisher) *Deps {
	return &Deps{
		Config:       cfg,
		Leases:       wizard.NewRegistry[*wizard.LeaseWizard](cfg.WizardSessionTTL),
		Applications: wizard.NewRegistry[*wizard.ApplicationWizard](cfg.WizardSessionTTL),
		Publisher:    pub,
	}
}

// scopedRecords loads records of collection, restricted to the active
// property through field when one is selected.
func scopedRecords(app *pocketbase.PocketBase, r *http.Request, collection, field, filter, sort string) ([]*core.Record, error) {
	col, err := app.FindCollectionByNameOrId(collection)
	if err != nil {
		return nil, err
	}

	params := map[string]any{}
	if active := GetActiveProperty(r); active != nil {
		scoped := field + " = {:pid}"
		if filter != "" {
			scoped += " && " + filter
		}
		filter = scoped
		params["pid"] = active.ID
	}
	return app.FindRecordsByFilter(col, nonEmpty(filter), sort, 0, 0, params)
}
