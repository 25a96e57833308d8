package aggregate

import (
	"fmt"
	"sort"

	"orderdata/models"

	"github.com/shopspring/decimal"
)

type SummaryRow struct {
	Channel      string
	Seller       string
	Revenue      float64
	Cost         float64
	Margin       float64
	ItemsCount   int
	UniqueOrders int
}

type ChannelMargin struct {
	Channel string
	Margin  float64
}

type FunnelStep struct {
	Status    string
	Count     int
	StepConv  string
	TotalConv string
}

// Summarize groups the canonical rows by (channel, seller). Money columns
// are summed as decimals so 8000 orders worth of cents do not drift, then
// rounded to 2 places. Sorted by margin descending, ties kept in
// (channel, seller) order.
func Summarize(rows []models.Row) []SummaryRow {
	type sums struct {
		revenue, cost, margin decimal.Decimal
		items                 int
		orders                map[int64]struct{}
	}
	groups := make(map[[2]string]*sums)
	for _, r := range rows {
		key := [2]string{r.Channel, r.Seller}
		g, ok := groups[key]
		if !ok {
			g = &sums{orders: make(map[int64]struct{})}
			groups[key] = g
		}
		g.revenue = g.revenue.Add(decimal.NewFromFloat(r.Revenue))
		g.cost = g.cost.Add(decimal.NewFromFloat(r.Cost))
		g.margin = g.margin.Add(decimal.NewFromFloat(r.Margin))
		g.items++
		g.orders[r.OrderID] = struct{}{}
	}

	res := make([]SummaryRow, 0, len(groups))
	for key, g := range groups {
		res = append(res, SummaryRow{
			Channel:      key[0],
			Seller:       key[1],
			Revenue:      g.revenue.Round(2).InexactFloat64(),
			Cost:         g.cost.Round(2).InexactFloat64(),
			Margin:       g.margin.Round(2).InexactFloat64(),
			ItemsCount:   g.items,
			UniqueOrders: len(g.orders),
		})
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Channel != res[j].Channel {
			return res[i].Channel < res[j].Channel
		}
		return res[i].Seller < res[j].Seller
	})
	sort.SliceStable(res, func(i, j int) bool { return res[i].Margin > res[j].Margin })
	return res
}

// MarginByChannel feeds the first dashboard table and chart.
func MarginByChannel(rows []models.Row) []ChannelMargin {
	totals := make(map[string]decimal.Decimal)
	for _, r := range rows {
		totals[r.Channel] = totals[r.Channel].Add(decimal.NewFromFloat(r.Margin))
	}
	res := make([]ChannelMargin, 0, len(totals))
	for ch, m := range totals {
		res = append(res, ChannelMargin{Channel: ch, Margin: m.Round(2).InexactFloat64()})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Channel < res[j].Channel })
	return res
}

// BuildFunnel counts distinct orders per non-cancelled status and derives
// the step and cumulative conversion. The created baseline substitutes 1
// when it is 0 so an empty window still renders a funnel instead of
// dividing by zero.
func BuildFunnel(rows []models.Row) []FunnelStep {
	statusByOrder := make(map[int64]string)
	for _, r := range rows {
		statusByOrder[r.OrderID] = r.Status
	}
	counts := make(map[string]int)
	for _, st := range statusByOrder {
		counts[st]++
	}

	base := counts[models.StatusCreated]
	if base == 0 {
		base = 1
	}
	prev := base
	res := make([]FunnelStep, 0, len(models.FunnelStatuses))
	for _, st := range models.FunnelStatuses {
		count := counts[st]
		step := 0.0
		if prev > 0 {
			step = float64(count) / float64(prev) * 100
		}
		total := float64(count) / float64(base) * 100
		res = append(res, FunnelStep{
			Status:    st,
			Count:     count,
			StepConv:  fmt.Sprintf("%.1f%%", step),
			TotalConv: fmt.Sprintf("%.1f%%", total),
		})
		prev = count
	}
	return res
}
