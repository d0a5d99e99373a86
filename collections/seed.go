package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type unitDef struct {
	name       string
	bedrooms   int
	bathrooms  int
	marketRent string
	status     string
}

type tenantDef struct {
	firstName string
	lastName  string
	email     string
	phone     string
}

type contractorDef struct {
	name  string
	trade string
	phone string
	email string
}

type faultDef struct {
	title       string
	description string
	category    string
	priority    string
	status      string
	unit        int // index into the property's units, -1 for common areas
	contractor  int // index into contractors, -1 when unassigned
}

type propertyDef struct {
	name        string
	addressLine string
	city        string
	units       []unitDef
	faults      []faultDef
}

// Seed populates the collections with a small demo portfolio. It is safe to
// call on every startup because it returns early if any property records
// already exist.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if properties already exist ────────────────
	propertiesCol, err := app.FindCollectionByNameOrId("properties")
	if err != nil {
		return fmt.Errorf("seed: could not find properties collection: %w", err)
	}
	existing, err := app.FindAllRecords(propertiesCol)
	if err != nil {
		return fmt.Errorf("seed: could not query properties: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: properties collection is empty – inserting seed data …")

	// ── lookup helper collections ────────────────────────────────────
	cols := make(map[string]*core.Collection)
	for _, name := range []string{"units", "tenants", "contractors", "faults", "leases", "lease_charges", "applications", "applicants", "invoices", "payments"} {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			return fmt.Errorf("seed: could not find %s collection: %w", name, err)
		}
		cols[name] = col
	}

	// ── contractors ──────────────────────────────────────────────────
	contractorDefs := []contractorDef{
		{name: "FlowRight Plumbing", trade: "plumbing", phone: "555-0101", email: "jobs@flowright.example"},
		{name: "Bright Spark Electrical", trade: "electrical", phone: "555-0102", email: "office@brightspark.example"},
		{name: "Warmth Heating Services", trade: "heating", phone: "555-0103", email: "service@warmth.example"},
	}
	var contractors []*core.Record
	for _, d := range contractorDefs {
		r := core.NewRecord(cols["contractors"])
		r.Set("name", d.name)
		r.Set("trade", d.trade)
		r.Set("phone", d.phone)
		r.Set("email", d.email)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save contractor %q: %w", d.name, err)
		}
		contractors = append(contractors, r)
	}

	// ── tenants ──────────────────────────────────────────────────────
	tenantDefs := []tenantDef{
		{firstName: "Ada", lastName: "Lovelace", email: "ada@example.com", phone: "555-0201"},
		{firstName: "Alan", lastName: "Turing", email: "alan@example.com", phone: "555-0202"},
		{firstName: "Grace", lastName: "Hopper", email: "grace@example.com", phone: "555-0203"},
		{firstName: "Edsger", lastName: "Dijkstra", email: "edsger@example.com", phone: "555-0204"},
	}
	var tenants []*core.Record
	for _, d := range tenantDefs {
		r := core.NewRecord(cols["tenants"])
		r.Set("first_name", d.firstName)
		r.Set("last_name", d.lastName)
		r.Set("email", d.email)
		r.Set("phone", d.phone)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save tenant %q: %w", d.email, err)
		}
		tenants = append(tenants, r)
	}

	// ── properties, units and faults ─────────────────────────────────
	propertyDefs := []propertyDef{
		{
			name: "Harbour View", addressLine: "12 Quay Street", city: "Portsmouth",
			units: []unitDef{
				{name: "1A", bedrooms: 1, bathrooms: 1, marketRent: "950", status: "occupied"},
				{name: "2A", bedrooms: 2, bathrooms: 1, marketRent: "1200", status: "vacant"},
				{name: "3B", bedrooms: 3, bathrooms: 2, marketRent: "1550", status: "maintenance"},
			},
			faults: []faultDef{
				{title: "Leaking kitchen tap", description: "Tap drips constantly", category: "plumbing", priority: "medium", status: "assigned", unit: 0, contractor: 0},
				{title: "No hot water", description: "Boiler pilot light keeps going out", category: "heating", priority: "urgent", status: "open", unit: 2, contractor: -1},
				{title: "Entry door intercom dead", description: "Main entrance buzzer not working", category: "security", priority: "high", status: "open", unit: -1, contractor: -1},
			},
		},
		{
			name: "Elm Court", addressLine: "4 Elm Road", city: "Bristol",
			units: []unitDef{
				{name: "Flat 1", bedrooms: 2, bathrooms: 1, marketRent: "1100", status: "vacant"},
				{name: "Flat 2", bedrooms: 1, bathrooms: 1, marketRent: "875", status: "vacant"},
			},
			faults: []faultDef{
				{title: "Sparking socket", description: "Bedroom outlet sparks when used", category: "electrical", priority: "urgent", status: "assigned", unit: 0, contractor: 1},
				{title: "Mice in storage room", description: "Droppings found near bins", category: "pest", priority: "low", status: "resolved", unit: -1, contractor: -1},
			},
		},
	}

	var firstProperty *core.Record
	var firstUnits []*core.Record
	for _, pd := range propertyDefs {
		p := core.NewRecord(propertiesCol)
		p.Set("name", pd.name)
		p.Set("address_line", pd.addressLine)
		p.Set("city", pd.city)
		p.Set("status", "active")
		if err := app.Save(p); err != nil {
			return fmt.Errorf("seed: save property %q: %w", pd.name, err)
		}

		var units []*core.Record
		for _, ud := range pd.units {
			u := core.NewRecord(cols["units"])
			u.Set("property", p.Id)
			u.Set("name", ud.name)
			u.Set("bedrooms", ud.bedrooms)
			u.Set("bathrooms", ud.bathrooms)
			u.Set("market_rent", ud.marketRent)
			u.Set("status", ud.status)
			if err := app.Save(u); err != nil {
				return fmt.Errorf("seed: save unit %q: %w", ud.name, err)
			}
			units = append(units, u)
		}

		for _, fd := range pd.faults {
			f := core.NewRecord(cols["faults"])
			f.Set("property", p.Id)
			if fd.unit >= 0 {
				f.Set("unit", units[fd.unit].Id)
			}
			if fd.contractor >= 0 {
				f.Set("contractor", contractors[fd.contractor].Id)
			}
			f.Set("title", fd.title)
			f.Set("description", fd.description)
			f.Set("category", fd.category)
			f.Set("priority", fd.priority)
			f.Set("status", fd.status)
			if err := app.Save(f); err != nil {
				return fmt.Errorf("seed: save fault %q: %w", fd.title, err)
			}
		}

		if firstProperty == nil {
			firstProperty = p
			firstUnits = units
		}
	}

	// ── one active lease with charges ────────────────────────────────
	lease := core.NewRecord(cols["leases"])
	lease.Set("property", firstProperty.Id)
	lease.Set("unit", firstUnits[0].Id)
	lease.Set("tenants", []string{tenants[0].Id, tenants[1].Id})
	lease.Set("lease_type", "fixed")
	lease.Set("start_date", "2026-01-01")
	lease.Set("end_date", "2026-12-31")
	lease.Set("rent_amount", "950")
	lease.Set("payment_frequency", "monthly")
	lease.Set("deposit", "1900")
	lease.Set("late_fee_enabled", true)
	lease.Set("late_fee_grace_days", 5)
	lease.Set("late_fee_type", "fixed")
	lease.Set("late_fee_amount", "50")
	lease.Set("status", "active")
	if err := app.Save(lease); err != nil {
		return fmt.Errorf("seed: save lease: %w", err)
	}

	chargeDefs := []struct {
		description string
		amount      string
		frequency   string
	}{
		{"Parking space", "120", "annually"},
		{"Bin collection", "15", "monthly"},
	}
	for i, cd := range chargeDefs {
		c := core.NewRecord(cols["lease_charges"])
		c.Set("lease", lease.Id)
		c.Set("sort_order", i+1)
		c.Set("description", cd.description)
		c.Set("amount", cd.amount)
		c.Set("frequency", cd.frequency)
		if err := app.Save(c); err != nil {
			return fmt.Errorf("seed: save lease charge %q: %w", cd.description, err)
		}
	}

	// ── invoices and payments ────────────────────────────────────────
	invoiceDefs := []struct {
		number  string
		amount  string
		dueDate string
		status  string
		paid    bool
	}{
		{"INV-2026-001", "975.00", "2026-01-01", "paid", true},
		{"INV-2026-002", "975.00", "2026-02-01", "sent", false},
		{"INV-2026-003", "975.00", "2026-03-01", "draft", false},
	}
	for _, d := range invoiceDefs {
		inv := core.NewRecord(cols["invoices"])
		inv.Set("property", firstProperty.Id)
		inv.Set("lease", lease.Id)
		inv.Set("number", d.number)
		inv.Set("amount", d.amount)
		inv.Set("due_date", d.dueDate)
		inv.Set("status", d.status)
		if err := app.Save(inv); err != nil {
			return fmt.Errorf("seed: save invoice %q: %w", d.number, err)
		}
		if !d.paid {
			continue
		}
		pay := core.NewRecord(cols["payments"])
		pay.Set("invoice", inv.Id)
		pay.Set("amount", d.amount)
		pay.Set("paid_on", d.dueDate)
		pay.Set("method", "bank_transfer")
		if err := app.Save(pay); err != nil {
			return fmt.Errorf("seed: save payment for %q: %w", d.number, err)
		}
	}

	// ── application form with applicants ─────────────────────────────
	application := core.NewRecord(cols["applications"])
	application.Set("property", firstProperty.Id)
	application.Set("name", "Harbour View Rental Application")
	application.Set("slug", "harbour-view-rental-application")
	application.Set("description", "Apply for available units at Harbour View")
	application.Set("instructions", "Complete every section and upload proof of income.")
	application.Set("payment_option", "standard")
	application.Set("fee", "50.00")
	application.Set("applicant_pays_screening", true)
	application.Set("terms", "Application fees are non-refundable.")
	if err := app.Save(application); err != nil {
		return fmt.Errorf("seed: save application: %w", err)
	}

	for _, a := range []struct{ name, email, status string }{
		{"Grace Hopper", "grace@example.com", "pending"},
		{"Edsger Dijkstra", "edsger@example.com", "approved"},
	} {
		r := core.NewRecord(cols["applicants"])
		r.Set("application", application.Id)
		r.Set("name", a.name)
		r.Set("email", a.email)
		r.Set("status", a.status)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save applicant %q: %w", a.name, err)
		}
	}

	log.Println("seed: all seed data inserted successfully (2 properties, 5 units, 4 tenants, 5 faults, 1 lease, 3 invoices)")
	return nil
}
