package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
)

// MigrateUnitOccupancy marks units that sit under an active lease as
// occupied. Safe to call on every startup -- returns early if nothing to
// migrate.
func MigrateUnitOccupancy(app *pocketbase.PocketBase) error {
	leasesCol, err := app.FindCollectionByNameOrId("leases")
	if err != nil {
		return fmt.Errorf("migrate: could not find leases collection: %w", err)
	}

	activeLeases, err := app.FindRecordsByFilter(
		leasesCol,
		"status = 'active' && unit.status = 'vacant'",
		"",
		0,
		0,
		nil,
	)
	if err != nil {
		return fmt.Errorf("migrate: could not query leased vacant units: %w", err)
	}

	if len(activeLeases) == 0 {
		return nil
	}

	log.Printf("migrate: found %d active lease(s) on vacant units -- marking occupied...\n", len(activeLeases))

	for _, lease := range activeLeases {
		unit, err := app.FindRecordById("units", lease.GetString("unit"))
		if err != nil {
			log.Printf("migrate: lease %s points at missing unit %s: %v\n", lease.Id, lease.GetString("unit"), err)
			continue
		}

		unit.Set("status", "occupied")
		if err := app.Save(unit); err != nil {
			log.Printf("migrate: failed to mark unit %s occupied: %v\n", unit.Id, err)
			continue
		}

		log.Printf("migrate: unit %q (%s) -> occupied\n", unit.GetString("name"), unit.Id)
	}

	log.Println("migrate: unit occupancy migration complete.")
	return nil
}
