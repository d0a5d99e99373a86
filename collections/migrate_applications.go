package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"

	"propertydesk/services"
)

// MigrateApplicationSlugs gives every application form without a public
// link slug one derived from its name. Safe to call on every startup.
func MigrateApplicationSlugs(app *pocketbase.PocketBase) error {
	applicationsCol, err := app.FindCollectionByNameOrId("applications")
	if err != nil {
		return fmt.Errorf("migrate_slugs: could not find applications collection: %w", err)
	}

	missing, err := app.FindRecordsByFilter(applicationsCol, "slug = ''", "", 0, 0, nil)
	if err != nil {
		return fmt.Errorf("migrate_slugs: could not query applications: %w", err)
	}

	for _, record := range missing {
		record.Set("slug", services.ApplicationSlug(record.GetString("name"), record.Id))
		if err := app.Save(record); err != nil {
			log.Printf("migrate_slugs: failed to set slug for application %s: %v\n", record.Id, err)
			continue
		}
	}

	return nil
}
