package generator

import (
	"fmt"
	"math"
	"time"

	"orderdata/config"
	"orderdata/models"
)

// Params pins down one generation run. Now is the anchor the trailing date
// window counts back from; callers pass it in so runs stay reproducible.
type Params struct {
	Orders int
	Days   int
	Now    time.Time
}

type Dataset struct {
	Sellers []models.Seller
	Orders  []models.Order
	Items   []models.OrderItem
}

// Generate emits the full synthetic population. The dataset is intentionally
// messy: a configured share of orders reuse an already minted external_id,
// point at a seller that does not exist, carry items with qty <= 0 or get
// their revenue pushed below cost. Every decision draws from the one stream,
// so (stream, params, conf) fully determine the output.
func Generate(s *Stream, p Params, conf config.Config) Dataset {
	var ds Dataset
	for i := 1; i <= conf.Generator.Sellers; i++ {
		ds.Sellers = append(ds.Sellers, models.Seller{ID: int64(i), Name: fmt.Sprintf("Seller %03d", i)})
	}

	// already minted external ids, the duplicate defect reuses these verbatim
	var extPool []string
	now := p.Now.Truncate(time.Second)

	for oid := int64(1); oid <= int64(p.Orders); oid++ {
		var externalID string
		if len(extPool) > 0 && s.Float64() < conf.Generator.DuplicateExtIDRate {
			externalID = extPool[s.IntBetween(0, len(extPool)-1)]
		} else {
			externalID = fmt.Sprintf("ORD-%d", s.Int64Between(1_000_000_000, 9_999_999_999))
			extPool = append(extPool, externalID)
		}

		delta := s.Float64() * float64(p.Days) * 86400
		date := now.Add(-time.Duration(delta) * time.Second)
		channel := drawChannel(s)
		sellerID := int64(s.IntBetween(1, conf.Generator.Sellers))
		status := drawStatus(s)
		if s.Float64() < conf.Generator.MissingSellerRate {
			sellerID = int64(conf.Generator.Sellers + s.IntBetween(1, 3))
		}

		updatedAt := date.Add(time.Duration(s.IntBetween(1, 240)) * time.Hour)
		var deliveredAt *time.Time
		if status == models.StatusDelivered {
			d := date.Add(time.Duration(s.IntBetween(2, 30))*24*time.Hour + time.Duration(s.IntBetween(1, 12))*time.Hour)
			deliveredAt = &d
			// sometimes the last touch lands after delivery
			if s.Float64() < 0.3 {
				updatedAt = d.Add(time.Duration(s.IntBetween(1, 48)) * time.Hour)
			}
		}

		ds.Orders = append(ds.Orders, models.Order{
			ID:          oid,
			ExternalID:  externalID,
			Date:        date,
			Channel:     channel,
			SellerID:    sellerID,
			Status:      status,
			UpdatedAt:   updatedAt,
			DeliveredAt: deliveredAt,
		})

		nitems := s.IntBetween(1, 5)
		for i := 0; i < nitems; i++ {
			ds.Items = append(ds.Items, makeItem(s, oid, conf))
		}
	}
	return ds
}

func makeItem(s *Stream, orderID int64, conf config.Config) models.OrderItem {
	sku := fmt.Sprintf("%s-%d", s.Choice(models.SkuCategories), s.IntBetween(1000, 9999))
	qty := s.IntBetween(1, 5)
	if s.Float64() < conf.Generator.BadQtyRate {
		qty = s.IntBetween(0, 1) - 1 // 0 or -1
	}

	baseCost := float64(s.IntBetween(50, 500))
	markup := s.FloatBetween(0.15, 0.70)
	revenue := round2(baseCost * (1 + markup) * float64(qty))
	cost := round2(baseCost * float64(qty))
	// pricing error, revenue ends up below cost
	if s.Float64() < conf.Generator.InvertedMarginRate {
		revenue = math.Max(0, round2(cost*s.FloatBetween(0.3, 0.9)))
	}

	return models.OrderItem{OrderID: orderID, Sku: sku, Qty: qty, Revenue: revenue, Cost: cost}
}

func drawChannel(s *Stream) string {
	r := s.Float64()
	switch {
	case r < 0.5:
		return models.ChannelSite
	case r < 0.8:
		return models.ChannelOzon
	default:
		return models.ChannelB24
	}
}

// cumulative thresholds, most orders end up delivered or cancelled
func drawStatus(s *Stream) string {
	r := s.Float64()
	switch {
	case r < 0.72:
		return models.StatusDelivered
	case r < 0.87:
		return models.StatusCancelled
	case r < 0.90:
		return models.StatusShipped
	case r < 0.94:
		return models.StatusProdStarted
	case r < 0.98:
		return models.StatusPaid
	default:
		return models.StatusCreated
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
