package checks

import "orderdata/models"

// Check is one quality finding category: its title and every canonical row
// that matched. An empty Rows slice means the category is clean, the report
// still renders it with a no-issues marker.
type Check struct {
	Title string
	Rows  []models.Row
}

// Run scans the canonical row set for the known defect categories. The
// duplicate check is a consistency probe on the dedup step, its count is
// expected to stay 0 for any input.
func Run(rows []models.Row) []Check {
	var badQty, badMargin, noSeller []models.Row
	for _, r := range rows {
		if r.Qty <= 0 {
			badQty = append(badQty, r)
		}
		if r.Margin < 0 {
			badMargin = append(badMargin, r)
		}
		if r.Seller == models.UnknownSeller {
			noSeller = append(noSeller, r)
		}
	}
	return []Check{
		{Title: "Non-positive quantity", Rows: badQty},
		{Title: "Negative margin", Rows: badMargin},
		{Title: "Missing seller", Rows: noSeller},
		{Title: "Duplicate external_id in export (expected 0)", Rows: duplicatedExternal(rows)},
	}
}

// duplicatedExternal flags rows whose external_id maps to more than one
// distinct order in the exported set.
func duplicatedExternal(rows []models.Row) []models.Row {
	ordersByExt := make(map[string]map[int64]struct{})
	for _, r := range rows {
		if ordersByExt[r.ExternalID] == nil {
			ordersByExt[r.ExternalID] = make(map[int64]struct{})
		}
		ordersByExt[r.ExternalID][r.OrderID] = struct{}{}
	}
	var res []models.Row
	for _, r := range rows {
		if len(ordersByExt[r.ExternalID]) > 1 {
			res = append(res, r)
		}
	}
	return res
}
