package model

// AllocateDiscount splits a discount across line base amounts proportionally,
// in integer minor units, so the shares sum to the discount exactly. Each
// share is floored first; the remainder is then handed out within each line's
// remaining headroom, so no share ever exceeds its base. The caller
// guarantees discount <= sum(bases).
func AllocateDiscount(bases []int64, discount int64) []int64 {
	shares := make([]int64, len(bases))

	var totalBase int64
	for _, base := range bases {
		totalBase += base
	}

	if totalBase == 0 || discount <= 0 {
		return shares
	}

	var allocated int64

	for i, base := range bases {
		shares[i] = discount * base / totalBase
		allocated += shares[i]
	}

	remainder := discount - allocated

	for i := range shares {
		if remainder == 0 {
			break
		}

		headroom := bases[i] - shares[i]
		if headroom <= 0 {
			continue
		}

		add := remainder
		if add > headroom {
			add = headroom
		}

		shares[i] += add
		remainder -= add
	}

	return shares
}
