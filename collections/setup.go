package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"propertydesk/services"
)

// Setup programmatically creates/ensures every collection the dashboard
// reads and writes exists.
func Setup(app *pocketbase.PocketBase) {
	properties := ensureCollection(app, "properties", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "address_line", Required: false})
		c.Fields.Add(&core.TextField{Name: "city", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"active", "archived"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	units := ensureCollection(app, "units", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "property",
			Required:      true,
			CollectionId:  properties.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "bedrooms", Required: false})
		c.Fields.Add(&core.NumberField{Name: "bathrooms", Required: false})
		c.Fields.Add(&core.TextField{Name: "market_rent", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    services.UnitStatuses,
			MaxSelect: 1,
		})
	})

	tenants := ensureCollection(app, "tenants", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "first_name", Required: true})
		c.Fields.Add(&core.TextField{Name: "last_name", Required: true})
		c.Fields.Add(&core.TextField{Name: "email", Required: false})
		c.Fields.Add(&core.TextField{Name: "phone", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})

	contractors := ensureCollection(app, "contractors", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "trade",
			Required:  false,
			Values:    services.FaultCategories,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "phone", Required: false})
		c.Fields.Add(&core.TextField{Name: "email", Required: false})
	})

	// Money is stored as decimal strings so submitted values round-trip exactly.
	leases := ensureCollection(app, "leases", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "property",
			Required:      true,
			CollectionId:  properties.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "unit",
			Required:     true,
			CollectionId: units.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "tenants",
			Required:     false,
			CollectionId: tenants.Id,
			MaxSelect:    50,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "lease_type",
			Required:  true,
			Values:    optionValues(services.LeaseTypeOptions),
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "start_date", Required: false})
		c.Fields.Add(&core.TextField{Name: "end_date", Required: false})
		c.Fields.Add(&core.TextField{Name: "rent_amount", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "payment_frequency",
			Required:  true,
			Values:    optionValues(services.FrequencyOptions()),
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "deposit", Required: false})
		c.Fields.Add(&core.BoolField{Name: "late_fee_enabled"})
		c.Fields.Add(&core.NumberField{Name: "late_fee_grace_days", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "late_fee_type",
			Required:  false,
			Values:    optionValues(services.LateFeeTypeOptions),
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "late_fee_amount", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"active", "ended"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "lease_charges", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "lease",
			Required:      true,
			CollectionId:  leases.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: false})
		c.Fields.Add(&core.TextField{Name: "description", Required: false})
		c.Fields.Add(&core.TextField{Name: "amount", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "frequency",
			Required:  true,
			Values:    optionValues(services.FrequencyOptions()),
			MaxSelect: 1,
		})
	})

	applications := ensureCollection(app, "applications", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "property",
			Required:      false,
			CollectionId:  properties.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "slug", Required: false})
		c.Fields.Add(&core.TextField{Name: "description", Required: false})
		c.Fields.Add(&core.TextField{Name: "instructions", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "payment_option",
			Required:  true,
			Values:    []string{"none", "standard", "custom"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "fee", Required: false})
		c.Fields.Add(&core.BoolField{Name: "applicant_pays_screening"})
		c.Fields.Add(&core.BoolField{Name: "unit_optional"})
		c.Fields.Add(&core.TextField{Name: "terms", Required: true})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})

	ensureCollection(app, "applicants", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "application",
			Required:      true,
			CollectionId:  applications.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "email", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    services.ApplicationStatuses,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})

	ensureCollection(app, "faults", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "property",
			Required:      true,
			CollectionId:  properties.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "unit",
			Required:     false,
			CollectionId: units.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "contractor",
			Required:     false,
			CollectionId: contractors.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.TextField{Name: "title", Required: true})
		c.Fields.Add(&core.TextField{Name: "description", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "category",
			Required:  true,
			Values:    services.FaultCategories,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "priority",
			Required:  true,
			Values:    services.FaultPriorities,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    services.FaultStatuses,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})

	invoices := ensureCollection(app, "invoices", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "property",
			Required:      true,
			CollectionId:  properties.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "lease",
			Required:     false,
			CollectionId: leases.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.TextField{Name: "number", Required: true})
		c.Fields.Add(&core.TextField{Name: "amount", Required: true})
		c.Fields.Add(&core.TextField{Name: "due_date", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    services.InvoiceStatuses,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})

	ensureCollection(app, "payments", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "invoice",
			Required:      true,
			CollectionId:  invoices.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "amount", Required: true})
		c.Fields.Add(&core.TextField{Name: "paid_on", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "method",
			Required:  true,
			Values:    services.PaymentMethods,
			MaxSelect: 1,
		})
	})
}

func optionValues(opts []services.Option) []string {
	values := make([]string, len(opts))
	for i, o := range opts {
		values[i] = o.Value
	}
	return values
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
