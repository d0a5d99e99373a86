package services

// Option is a value/label pair for a select input.
type Option struct {
	Value string
	Label string
}

// LeaseTypeOptions lists the lease types offered on the lease terms step.
var LeaseTypeOptions = []Option{
	{Value: "fixed", Label: "Fixed term"},
	{Value: "month-to-month", Label: "Month-to-month"},
}

// LateFeeTypeOptions lists how a late fee is computed.
var LateFeeTypeOptions = []Option{
	{Value: "fixed", Label: "Fixed amount"},
	{Value: "percent", Label: "Percent of rent"},
}

// FrequencyOptions returns the billing frequencies as select options.
func FrequencyOptions() []Option {
	opts := make([]Option, 0, len(Frequencies))
	for _, f := range Frequencies {
		opts = append(opts, Option{Value: string(f), Label: f.Label()})
	}
	return opts
}

// HasOption reports whether value is one of the options.
func HasOption(opts []Option, value string) bool {
	for _, o := range opts {
		if o.Value == value {
			return true
		}
	}
	return false
}

// FaultCategories are the tags a fault can carry.
var FaultCategories = []string{
	"plumbing",
	"electrical",
	"heating",
	"appliance",
	"structural",
	"pest",
	"security",
	"other",
}

// FaultPriorities in escalating order.
var FaultPriorities = []string{"low", "medium", "high", "urgent"}

// FaultStatuses in workflow order.
var FaultStatuses = []string{"open", "assigned", "in_progress", "resolved"}

// InvoiceStatuses in workflow order.
var InvoiceStatuses = []string{"draft", "sent", "paid", "overdue"}

// ApplicationStatuses in workflow order.
var ApplicationStatuses = []string{"pending", "approved", "rejected"}

// UnitStatuses for the units table.
var UnitStatuses = []string{"vacant", "occupied", "maintenance"}

// PaymentMethods for recorded payments.
var PaymentMethods = []string{"bank_transfer", "card", "cash", "check"}
