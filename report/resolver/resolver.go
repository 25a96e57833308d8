package resolver

import (
	"math"
	"sort"
	"time"

	"orderdata/models"
)

// Stats describes what resolution did to the raw input. The duplicate
// numbers are the visibility channel for raw-input duplicates, the canonical
// set itself never carries them.
type Stats struct {
	RawOrders       int
	DuplicateGroups int
	DroppedOrders   int
	WindowFiltered  int
	Rows            int
}

// Resolve turns the raw tables into the canonical item grain row set:
// every order gets its seller name attached (UNKNOWN_SELLER when the
// reference dangles), orders sharing an external_id collapse to the one with
// the latest date (highest id on a tie) with the losers' items dropped
// entirely, and only orders dated within the trailing window survive.
// The input slices are never mutated.
func Resolve(sellers []models.Seller, orders []models.Order, items []models.OrderItem, days int, now time.Time) ([]models.Row, Stats) {
	stats := Stats{RawOrders: len(orders)}

	sellerNames := make(map[int64]string, len(sellers))
	for _, s := range sellers {
		sellerNames[s.ID] = s.Name
	}

	// duplicate collapse, one winner per external_id
	winners := make(map[string]models.Order)
	groupSizes := make(map[string]int)
	for _, o := range orders {
		groupSizes[o.ExternalID]++
		cur, ok := winners[o.ExternalID]
		if !ok || beats(o, cur) {
			winners[o.ExternalID] = o
		}
	}
	for _, n := range groupSizes {
		if n > 1 {
			stats.DuplicateGroups++
			stats.DroppedOrders += n - 1
		}
	}

	cutoff := now.AddDate(0, 0, -days)
	var kept []models.Order
	for _, o := range winners {
		if o.Date.Before(cutoff) {
			stats.WindowFiltered++
			continue
		}
		kept = append(kept, o)
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].ID < kept[j].ID })

	itemsByOrder := make(map[int64][]models.OrderItem, len(kept))
	for _, it := range items {
		itemsByOrder[it.OrderID] = append(itemsByOrder[it.OrderID], it)
	}

	var rows []models.Row
	for _, o := range kept {
		seller, ok := sellerNames[o.SellerID]
		if !ok {
			seller = models.UnknownSeller
		}
		for _, it := range itemsByOrder[o.ID] {
			rows = append(rows, models.Row{
				OrderID:     o.ID,
				ExternalID:  o.ExternalID,
				Date:        o.Date,
				Channel:     o.Channel,
				Seller:      seller,
				Status:      o.Status,
				UpdatedAt:   o.UpdatedAt,
				DeliveredAt: o.DeliveredAt,
				Sku:         it.Sku,
				Qty:         it.Qty,
				Revenue:     it.Revenue,
				Cost:        it.Cost,
				Margin:      math.Round((it.Revenue-it.Cost)*100) / 100,
			})
		}
	}
	stats.Rows = len(rows)
	return rows, stats
}

// beats is the total order over a duplicate group: latest date wins, highest
// id breaks date ties.
func beats(a, b models.Order) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.After(b.Date)
	}
	return a.ID > b.ID
}
