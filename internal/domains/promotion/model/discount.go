package model

// ScopeAllows reports whether a promotion scoped as promoScope may discount a
// charge of the given scope. ALL matches either charge category.
func ScopeAllows(promoScope, requestScope string) bool {
	return promoScope == ScopeAll || promoScope == requestScope
}

// ComputeDiscount returns the discount amount for a base amount in integer
// minor units.
//
// PERCENTAGE: baseAmount*value/100, truncated, capped at MaxDiscount when
// set. FIXED_AMOUNT: the value, capped at the base amount so a discount can
// never produce a negative charge.
func ComputeDiscount(promo Promotion, baseAmount int64) int64 {
	if baseAmount <= 0 {
		return 0
	}

	var discount int64

	switch promo.Type {
	case TypePercentage:
		discount = baseAmount * promo.Value / 100
		if promo.MaxDiscount != nil && discount > *promo.MaxDiscount {
			discount = *promo.MaxDiscount
		}
	case TypeFixedAmount:
		discount = promo.Value
	default:
		return 0
	}

	if discount > baseAmount {
		discount = baseAmount
	}

	if discount < 0 {
		discount = 0
	}

	return discount
}
