package models

// Subscription plans for owners. Paid plans are valid for one month from
// purchase and are debited from the owner's wallet balance.
const (
	PlanFree         = "free"
	PlanPro          = "pro"
	PlanProfessional = "professional"
)

// PlanPrices maps each plan to its price in rupiah.
var PlanPrices = map[string]int64{
	PlanFree:         0,
	PlanPro:          50000,
	PlanProfessional: 150000,
}

// IsValidPlan reports whether p is a known plan.
func IsValidPlan(p string) bool {
	_, ok := PlanPrices[p]
	return ok
}
