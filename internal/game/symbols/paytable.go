package symbols

// ClusterTiers are the saturating cluster-size tiers a payout is looked up
// by: size<10 -> tier 8, size<12 -> tier 10, size>=12 -> tier 12.
var ClusterTiers = []int{8, 10, 12}

// ScatterTiers are the saturating scatter-count tiers.
var ScatterTiers = []int{4, 5, 6}

// Paytable is P[sym][k] = credits per bet-unit for cluster size tier k.
var Paytable = map[Symbol]map[int]float64{
	SymbolFa: {
		8:  10.0,
		10: 25.0,
		12: 50.0,
	},
	SymbolZhong: {
		8:  8.0,
		10: 20.0,
		12: 40.0,
	},
	SymbolBai: {
		8:  6.0,
		10: 15.0,
		12: 30.0,
	},
	SymbolBawan: {
		8:  5.0,
		10: 10.0,
		12: 15.0,
	},
	SymbolWusuo: {
		8:  3.0,
		10: 5.0,
		12: 12.0,
	},
	SymbolWutong: {
		8:  3.0,
		10: 5.0,
		12: 12.0,
	},
	SymbolLiangsuo: {
		8:  2.0,
		10: 4.0,
		12: 10.0,
	},
	SymbolLiangtong: {
		8:  1.0,
		10: 3.0,
		12: 6.0,
	},
}

// ScatterPaytable is P[SCATTER][k] for k in {4,5,6}, expressed as credits
// per bet-unit like the cluster paytable above.
var ScatterPaytable = map[int]float64{
	4: 2.0,
	5: 5.0,
	6: 20.0,
}

// ClusterTier saturates a raw cluster size into its payout tier. Returns 0
// when size is below the smallest tier (no payout).
func ClusterTier(size int) int {
	tier := 0
	for _, t := range ClusterTiers {
		if size >= t {
			tier = t
		}
	}
	return tier
}

// ScatterTier saturates a raw scatter count into its payout tier.
func ScatterTier(count int) int {
	tier := 0
	for _, t := range ScatterTiers {
		if count >= t {
			tier = t
		}
	}
	return tier
}

// GetPayout returns P[sym][tier], or 0 if sym has no payout at that tier.
func GetPayout(sym Symbol, tier int) float64 {
	if payouts, ok := Paytable[sym]; ok {
		return payouts[tier]
	}
	return 0.0
}

// GetScatterPayout returns the scatter payout for a saturated tier.
func GetScatterPayout(tier int) float64 {
	return ScatterPaytable[tier]
}
