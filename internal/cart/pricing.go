package cart

import "github.com/shopspring/decimal"

// ComputeTotal sums unit price times quantity over entries with exact decimal
// arithmetic. Order placement reuses this exact routine, so the persisted
// order total always matches what checkout displayed.
func ComputeTotal(entries []Entry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.LineTotal())
	}
	return total
}
