package core

// SpentInWindow sums expense amounts of category whose date lies in w.
// Category matching is exact and case-sensitive; income never counts.
func SpentInWindow(txs []Transaction, category string, w Window) Money {
	total := Zero
	for _, tx := range txs {
		if tx.Kind != KindExpense || tx.Category != category {
			continue
		}
		if !w.Contains(tx.Date) {
			continue
		}
		total = total.Add(tx.Amount)
	}
	return total
}
