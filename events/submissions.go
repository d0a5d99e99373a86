package events

// LeaseCharge is one additional charge in a submitted lease.
type LeaseCharge struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Frequency   string `json:"frequency"`
}

// LeaseSubmission is the snapshot published when the lease wizard completes.
type LeaseSubmission struct {
	PropertyID       string        `json:"property_id"`
	UnitID           string        `json:"unit_id"`
	LeaseType        string        `json:"lease_type"`
	StartDate        string        `json:"start_date"`
	EndDate          string        `json:"end_date"`
	TenantIDs        []string      `json:"tenant_ids"`
	RentAmount       string        `json:"rent_amount"`
	PaymentFrequency string        `json:"payment_frequency"`
	Charges          []LeaseCharge `json:"charges"`
	Deposit          string        `json:"deposit"`
	LateFeeEnabled   bool          `json:"late_fee_enabled"`
	LateFeeGraceDays string        `json:"late_fee_grace_days,omitempty"`
	LateFeeType      string        `json:"late_fee_type,omitempty"`
	LateFeeAmount    string        `json:"late_fee_amount,omitempty"`
	TotalMonthly     string        `json:"total_monthly"`
}

// ApplicationSubmission is the snapshot published when the application
// wizard completes.
type ApplicationSubmission struct {
	Name                   string `json:"name"`
	Slug                   string `json:"slug"`
	Description            string `json:"description"`
	Instructions           string `json:"instructions"`
	PaymentOption          string `json:"payment_option"`
	Fee                    string `json:"fee"`
	ApplicantPaysScreening bool   `json:"applicant_pays_screening"`
	UnitOptional           bool   `json:"unit_optional"`
	Terms                  string `json:"terms"`
}
