package wizard

import (
	"errors"
	"slices"
	"testing"

	"propertydesk/services"
)

func defaultLateFees() LateFeePolicy {
	return LateFeePolicy{Enabled: true, GraceDays: "5", FeeType: LateFeeFixed, Amount: "50"}
}

func TestNewLeaseState_Defaults(t *testing.T) {
	s := NewLeaseState(defaultLateFees())

	if s.LeaseType != LeaseTypeFixed {
		t.Errorf("LeaseType = %q, want %q", s.LeaseType, LeaseTypeFixed)
	}
	if s.PaymentFrequency != services.Monthly {
		t.Errorf("PaymentFrequency = %q, want monthly", s.PaymentFrequency)
	}
	if s.LateFees != defaultLateFees() {
		t.Errorf("LateFees = %+v", s.LateFees)
	}
	if len(s.TenantIDs) != 0 || len(s.Charges) != 0 {
		t.Errorf("expected no tenants or charges, got %v / %v", s.TenantIDs, s.Charges)
	}
}

func TestLeaseWizard_PropertyUnitGate(t *testing.T) {
	w := NewLeaseWizard("w1", NewLeaseState(defaultLateFees()))

	if w.Next() {
		t.Fatal("expected Next to be blocked without property and unit")
	}
	if got := w.Issues(); !slices.Equal(got, []string{"Property is required", "Unit is required"}) {
		t.Errorf("issues = %v", got)
	}

	w.Apply(SetProperty("prop1"))
	if w.Next() {
		t.Fatal("expected Next to be blocked without unit")
	}
	if got := w.Issues(); !slices.Equal(got, []string{"Unit is required"}) {
		t.Errorf("issues = %v", got)
	}

	w.Apply(SetUnit("unit1"))
	if !w.Next() {
		t.Fatal("expected Next to succeed")
	}
	if w.CurrentStep().ID != LeaseStepTerms {
		t.Errorf("current step = %q, want %q", w.CurrentStep().ID, LeaseStepTerms)
	}
}

func TestLeaseWizard_TenantsStepIsPermissive(t *testing.T) {
	w := NewLeaseWizard("w1", NewLeaseState(defaultLateFees()))
	w.JumpToStep(LeaseStepTenants)

	if !w.CanProceed() || !w.Next() {
		t.Fatal("expected tenants step to allow zero tenants")
	}
	if w.CurrentStep().ID != LeaseStepRent {
		t.Errorf("current step = %q, want %q", w.CurrentStep().ID, LeaseStepRent)
	}
}

func TestLeaseWizard_JumpPastInvalidStep(t *testing.T) {
	w := NewLeaseWizard("w1", NewLeaseState(defaultLateFees()))
	if w.CanProceed() {
		t.Fatal("expected first step to be incomplete")
	}

	w.JumpTo(len(LeaseSteps) - 1)
	if w.CurrentStep().ID != LeaseStepReview {
		t.Errorf("current step = %q, want review", w.CurrentStep().ID)
	}
	if err := w.ValidateAll(); !errors.Is(err, ErrIncomplete) {
		t.Errorf("ValidateAll = %v, want ErrIncomplete", err)
	}
}

func TestLeaseWizard_RejectsUnknownChoices(t *testing.T) {
	complete := NewLeaseState(defaultLateFees())
	complete.PropertyID = "p1"
	complete.UnitID = "u1"

	tests := []struct {
		name   string
		update Update[LeaseState]
		step   string
		issue  string
	}{
		{"lease type", SetLeaseType("yearly"), LeaseStepTerms, "Choose a lease type"},
		{"empty lease type", SetLeaseType(""), LeaseStepTerms, "Choose a lease type"},
		{"payment frequency", SetPaymentFrequency("fortnightly"), LeaseStepRent, "Choose a payment frequency"},
		{"charge frequency", AddCharge(AdditionalCharge{ID: "c1", Amount: "5", Frequency: "daily"}), LeaseStepRent, "Charge 1 needs a frequency"},
		{"late fee type", SetLateFees(LateFeePolicy{Enabled: true, FeeType: "sliding"}), LeaseStepLateFees, "Choose a late fee type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewLeaseWizard("w1", complete)
			if err := w.ValidateAll(); err != nil {
				t.Fatalf("base state should be valid: %v", err)
			}

			w.Apply(tt.update)
			if err := w.ValidateAll(); !errors.Is(err, ErrIncomplete) {
				t.Fatalf("ValidateAll = %v, want ErrIncomplete", err)
			}
			st, issues, _ := w.FirstInvalid()
			if st.ID != tt.step {
				t.Errorf("first invalid step = %q, want %q", st.ID, tt.step)
			}
			if !slices.Contains(issues, tt.issue) {
				t.Errorf("issues = %v, want %q", issues, tt.issue)
			}
		})
	}
}

func TestLeaseWizard_DisabledLateFeeTypeIgnored(t *testing.T) {
	s := NewLeaseState(LateFeePolicy{Enabled: false, FeeType: ""})
	s.PropertyID = "p1"
	s.UnitID = "u1"

	if err := NewLeaseWizard("w1", s).ValidateAll(); err != nil {
		t.Errorf("ValidateAll = %v, want nil", err)
	}
}

func TestLeaseWizard_SummaryTracksUpdates(t *testing.T) {
	w := NewLeaseWizard("w1", NewLeaseState(defaultLateFees()))
	charge := NewCharge()
	charge.Amount = "120"
	charge.Frequency = services.Annually

	steps := []struct {
		update Update[LeaseState]
		want   string
	}{
		{SetRentAmount("1000"), "1010.00"},
		{SetRentAmount("abc"), "10.00"},
		{RemoveCharge(charge.ID), "0.00"},
	}

	w.Apply(AddCharge(charge))
	for _, st := range steps {
		w.Apply(st.update)
		if got := w.Summary().TotalMonthly.StringFixed(2); got != st.want {
			t.Errorf("TotalMonthly = %s, want %s", got, st.want)
		}
	}
}

func TestToggleTenant(t *testing.T) {
	s := LeaseState{}
	s = ToggleTenant("t1")(s)
	s = ToggleTenant("t2")(s)
	if !slices.Equal(s.TenantIDs, []string{"t1", "t2"}) || !s.HasTenant("t1") {
		t.Fatalf("tenants after adding = %v", s.TenantIDs)
	}

	s = ToggleTenant("t1")(s)
	if !slices.Equal(s.TenantIDs, []string{"t2"}) || s.HasTenant("t1") {
		t.Errorf("tenants after removing = %v", s.TenantIDs)
	}
}

func TestChargeUpdates_DoNotAliasSnapshots(t *testing.T) {
	store := NewStore(LeaseState{})
	store.Update(AddCharge(AdditionalCharge{ID: "c1", Description: "Parking", Amount: "40", Frequency: services.Monthly}))

	before := store.Get()
	store.Update(ReplaceCharge(AdditionalCharge{ID: "c1", Description: "Storage", Amount: "60", Frequency: services.Monthly}))
	store.Update(AddCharge(AdditionalCharge{ID: "c2", Amount: "5"}))

	if len(before.Charges) != 1 || before.Charges[0].Description != "Parking" {
		t.Errorf("earlier snapshot changed: %+v", before.Charges)
	}
	after := store.Get()
	if len(after.Charges) != 2 || after.Charges[0].Description != "Storage" {
		t.Errorf("current charges = %+v", after.Charges)
	}
}

func TestReplaceCharge_UnknownID(t *testing.T) {
	s := LeaseState{Charges: []AdditionalCharge{{ID: "c1", Amount: "10"}}}
	s = ReplaceCharge(AdditionalCharge{ID: "nope", Amount: "99"})(s)

	if s.Charges[0].Amount != "10" {
		t.Errorf("amount = %q, want 10", s.Charges[0].Amount)
	}
}

func TestParseLeaseField(t *testing.T) {
	base := NewLeaseState(defaultLateFees())
	base.Charges = []AdditionalCharge{{ID: "c1", Description: "Pet", Amount: "25", Frequency: services.Monthly}}

	tests := []struct {
		name  string
		field string
		value string
		got   func(s LeaseState) any
		want  any
	}{
		{"property", "property_id", "p1", func(s LeaseState) any { return s.PropertyID }, "p1"},
		{"unit", "unit_id", "u1", func(s LeaseState) any { return s.UnitID }, "u1"},
		{"lease type", "lease_type", LeaseTypeMonthToMonth, func(s LeaseState) any { return s.LeaseType }, LeaseTypeMonthToMonth},
		{"start", "start_date", "2026-01-01", func(s LeaseState) any { return s.StartDate }, "2026-01-01"},
		{"end", "end_date", "2026-12-31", func(s LeaseState) any { return s.EndDate }, "2026-12-31"},
		{"rent kept raw", "rent_amount", "12x", func(s LeaseState) any { return s.RentAmount }, "12x"},
		{"frequency", "payment_frequency", "weekly", func(s LeaseState) any { return s.PaymentFrequency }, services.Weekly},
		{"deposit", "deposit", "1500", func(s LeaseState) any { return s.Deposit }, "1500"},
		{"tenant toggle", "tenant", "t9", func(s LeaseState) any { return len(s.TenantIDs) == 1 && s.TenantIDs[0] == "t9" }, true},
		{"late fee amount", "late_fees.amount", "75", func(s LeaseState) any { return s.LateFees.Amount + "/" + s.LateFees.GraceDays }, "75/5"},
		{"late fee disabled", "late_fees.enabled", "", func(s LeaseState) any { return s.LateFees.Enabled }, false},
		{"late fee type", "late_fees.fee_type", LateFeePercent, func(s LeaseState) any { return s.LateFees.FeeType }, LateFeePercent},
		{"charge amount", "charge.c1.amount", "30", func(s LeaseState) any { return s.Charges[0].Amount + "/" + s.Charges[0].Description }, "30/Pet"},
		{"charge frequency", "charge.c1.frequency", "quarterly", func(s LeaseState) any { return s.Charges[0].Frequency }, services.Quarterly},
		{"charge unknown id", "charge.zz.amount", "30", func(s LeaseState) any { return s.Charges[0].Amount }, "25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := ParseLeaseField(tt.field, tt.value)
			if err != nil {
				t.Fatalf("ParseLeaseField(%q): %v", tt.field, err)
			}
			if got := tt.got(u(base)); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseLeaseField_Unknown(t *testing.T) {
	for _, name := range []string{"bogus", "late_fees.color", "charge.c1", "charge.c1.color", "charge..amount"} {
		if _, err := ParseLeaseField(name, "x"); !errors.Is(err, ErrUnknownField) {
			t.Errorf("ParseLeaseField(%q) error = %v, want ErrUnknownField", name, err)
		}
	}
}
