package billing

import (
	"spa-registry-be/internal/entity"
)

// Plan is a fixed catalogue entry. Amounts and durations are never
// user-supplied; unknown ids are rejected before any payment row exists.
type Plan struct {
	Id             string
	DisplayName    string
	Type           entity.PaymentType
	Amount         int64
	DurationMonths int
}

var catalogue = []Plan{
	{Id: "registration", DisplayName: "Registration Fee", Type: entity.PaymentTypeRegistration, Amount: 10000, DurationMonths: 12},
	{Id: "monthly", DisplayName: "Annual Fee (Monthly)", Type: entity.PaymentTypeAnnual, Amount: 5000, DurationMonths: 1},
	{Id: "quarterly", DisplayName: "Annual Fee (Quarterly)", Type: entity.PaymentTypeAnnual, Amount: 14000, DurationMonths: 3},
	{Id: "yearly", DisplayName: "Annual Fee (Yearly)", Type: entity.PaymentTypeAnnual, Amount: 48000, DurationMonths: 12},
}

// ListPlans returns the ordered catalogue. Constant data, no failure mode.
func ListPlans() []Plan {
	out := make([]Plan, len(catalogue))
	copy(out, catalogue)
	return out
}

// PlanById resolves a plan id, or nil when unknown.
func PlanById(id string) *Plan {
	for i := range catalogue {
		if catalogue[i].Id == id {
			p := catalogue[i]
			return &p
		}
	}
	return nil
}
