package collections_test

import (
	"testing"

	"propertydesk/collections"
	"propertydesk/testhelpers"

	"github.com/pocketbase/pocketbase/core"
)

// expectedCollections is the full list of collections that Setup() must create.
var expectedCollections = []string{
	"properties",
	"units",
	"tenants",
	"contractors",
	"leases",
	"lease_charges",
	"applications",
	"applicants",
	"faults",
	"invoices",
	"payments",
}

func TestSetup_AllCollectionsExist(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q not found after Setup(): %v", name, err)
			continue
		}
		if col.Name != name {
			t.Errorf("expected collection name %q, got %q", name, col.Name)
		}
	}
}

func TestSetup_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	ids := make(map[string]string)
	for _, name := range expectedCollections {
		col, _ := app.FindCollectionByNameOrId(name)
		ids[name] = col.Id
	}

	collections.Setup(app)

	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q missing after second Setup(): %v", name, err)
			continue
		}
		if col.Id != ids[name] {
			t.Errorf("collection %q id changed after second Setup(): %s -> %s", name, ids[name], col.Id)
		}
	}
}

func TestSetup_Fields(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	tests := []struct {
		collection string
		fields     []string
	}{
		{"properties", []string{"name", "address_line", "city", "status", "created", "updated"}},
		{"units", []string{"property", "name", "bedrooms", "bathrooms", "market_rent", "status"}},
		{"tenants", []string{"first_name", "last_name", "email", "phone"}},
		{"leases", []string{
			"property", "unit", "tenants", "lease_type", "start_date", "end_date",
			"rent_amount", "payment_frequency", "deposit", "late_fee_enabled",
			"late_fee_grace_days", "late_fee_type", "late_fee_amount", "status",
		}},
		{"lease_charges", []string{"lease", "sort_order", "description", "amount", "frequency"}},
		{"applications", []string{
			"property", "name", "slug", "description", "instructions", "payment_option",
			"fee", "applicant_pays_screening", "unit_optional", "terms",
		}},
		{"faults", []string{"property", "unit", "contractor", "title", "description", "category", "priority", "status", "created"}},
		{"invoices", []string{"property", "lease", "number", "amount", "due_date", "status"}},
		{"payments", []string{"invoice", "amount", "paid_on", "method"}},
	}

	for _, tt := range tests {
		t.Run(tt.collection, func(t *testing.T) {
			col, err := app.FindCollectionByNameOrId(tt.collection)
			if err != nil {
				t.Fatalf("collection %q not found: %v", tt.collection, err)
			}
			for _, f := range tt.fields {
				if col.Fields.GetByName(f) == nil {
					t.Errorf("%s: missing field %q", tt.collection, f)
				}
			}
		})
	}
}

func TestSetup_LeaseRelations(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("leases")

	tenantsField, ok := col.Fields.GetByName("tenants").(*core.RelationField)
	if !ok {
		t.Fatal("leases.tenants is not a RelationField")
	}
	if tenantsField.MaxSelect <= 1 {
		t.Errorf("leases.tenants: expected multi-select, got MaxSelect=%d", tenantsField.MaxSelect)
	}

	propertyField, ok := col.Fields.GetByName("property").(*core.RelationField)
	if !ok {
		t.Fatal("leases.property is not a RelationField")
	}
	if !propertyField.CascadeDelete {
		t.Error("leases.property: expected CascadeDelete=true")
	}

	charges, _ := app.FindCollectionByNameOrId("lease_charges")
	if rf, ok := charges.Fields.GetByName("lease").(*core.RelationField); !ok || !rf.CascadeDelete {
		t.Error("lease_charges.lease: expected cascading RelationField")
	}
}

func TestSetup_SelectValues(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	tests := []struct {
		collection string
		field      string
		want       []string
	}{
		{"leases", "lease_type", []string{"fixed", "month-to-month"}},
		{"leases", "payment_frequency", []string{"weekly", "biweekly", "monthly", "quarterly", "annually"}},
		{"applications", "payment_option", []string{"none", "standard", "custom"}},
		{"faults", "status", []string{"open", "assigned", "in_progress", "resolved"}},
	}

	for _, tt := range tests {
		t.Run(tt.collection+"."+tt.field, func(t *testing.T) {
			col, _ := app.FindCollectionByNameOrId(tt.collection)
			sf, ok := col.Fields.GetByName(tt.field).(*core.SelectField)
			if !ok {
				t.Fatalf("%s.%s is not a SelectField", tt.collection, tt.field)
			}
			if len(sf.Values) != len(tt.want) {
				t.Fatalf("%s.%s values = %v, want %v", tt.collection, tt.field, sf.Values, tt.want)
			}
			for i := range tt.want {
				if sf.Values[i] != tt.want[i] {
					t.Errorf("%s.%s values = %v, want %v", tt.collection, tt.field, sf.Values, tt.want)
					break
				}
			}
		})
	}
}
