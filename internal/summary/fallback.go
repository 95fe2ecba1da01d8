package summary

// LowConfidenceCard is the canned answer used when no usable policy text was
// found for a domain. Every field is populated so the card renders the same
// shape either way.
func LowConfidenceCard(domain string) *PolicyCard {
	brand := domain
	if brand == "" {
		brand = "this store"
	}
	return &PolicyCard{
		Brand:        brand,
		Category:     CategoryGeneral,
		ReturnWindow: "unclear",
		RefundType:   "unclear",
		ReturnMethod: "unclear",
		Costs:        "unclear",
		Conditions: []string{
			"Return policy could not be located on the site",
		},
		RiskScore:     "50/100",
		RiskLevel:     RiskYellow,
		Benchmark:     "Most stores publish a return policy; this one could not be found automatically.",
		Tip:           "Contact the store and confirm the return terms before ordering.",
		LowConfidence: true,
	}
}
