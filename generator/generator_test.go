package generator

import (
	"reflect"
	"testing"
	"time"

	"orderdata/config"
	"orderdata/models"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func testParams(orders int) Params {
	return Params{Orders: orders, Days: 150, Now: testNow}
}

func TestGenerateIsDeterministic(t *testing.T) {
	conf := config.DefaultConfig()
	a := Generate(NewStream("user@example.com"), testParams(500), conf)
	b := Generate(NewStream("user@example.com"), testParams(500), conf)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("two runs with the same token produced different datasets")
	}
}

func TestGenerateReferentialCompleteness(t *testing.T) {
	conf := config.DefaultConfig()
	ds := Generate(NewStream("user@example.com"), testParams(300), conf)

	if len(ds.Orders) != 300 {
		t.Fatalf("want 300 orders, got %d", len(ds.Orders))
	}
	if len(ds.Sellers) != conf.Generator.Sellers {
		t.Fatalf("want %d sellers, got %d", conf.Generator.Sellers, len(ds.Sellers))
	}

	orderIDs := make(map[int64]bool, len(ds.Orders))
	for _, o := range ds.Orders {
		orderIDs[o.ID] = true
	}
	itemCount := make(map[int64]int)
	for _, it := range ds.Items {
		if !orderIDs[it.OrderID] {
			t.Fatalf("item references unknown order %d", it.OrderID)
		}
		itemCount[it.OrderID]++
	}
	for _, o := range ds.Orders {
		n := itemCount[o.ID]
		if n < 1 || n > 5 {
			t.Fatalf("order %d has %d items, want 1..5", o.ID, n)
		}
	}
}

func TestGenerateDeliveredInvariant(t *testing.T) {
	ds := Generate(NewStream("user@example.com"), testParams(2000), config.DefaultConfig())
	for _, o := range ds.Orders {
		if (o.Status == models.StatusDelivered) != (o.DeliveredAt != nil) {
			t.Fatalf("order %d: status %s but delivered_at presence %v", o.ID, o.Status, o.DeliveredAt != nil)
		}
		if o.DeliveredAt != nil && o.DeliveredAt.Before(o.Date) {
			t.Fatalf("order %d delivered before it was created", o.ID)
		}
		if o.UpdatedAt.Before(o.Date) {
			t.Fatalf("order %d updated before it was created", o.ID)
		}
	}
}

func TestGenerateDatesWithinWindow(t *testing.T) {
	p := testParams(1000)
	ds := Generate(NewStream("user@example.com"), p, config.DefaultConfig())
	earliest := testNow.AddDate(0, 0, -p.Days)
	for _, o := range ds.Orders {
		if o.Date.Before(earliest) || o.Date.After(testNow) {
			t.Fatalf("order %d dated %v outside the last %d days", o.ID, o.Date, p.Days)
		}
	}
}

func TestGenerateInjectsDefects(t *testing.T) {
	conf := config.DefaultConfig()
	ds := Generate(NewStream("user@example.com"), testParams(4000), conf)

	seen := make(map[string]bool)
	dupOrders := 0
	missingSellers := 0
	for _, o := range ds.Orders {
		if seen[o.ExternalID] {
			dupOrders++
		}
		seen[o.ExternalID] = true
		if o.SellerID > int64(conf.Generator.Sellers) {
			missingSellers++
		}
	}
	if dupOrders == 0 {
		t.Error("no duplicated external_id in 4000 orders")
	}
	if missingSellers == 0 {
		t.Error("no dangling seller_id in 4000 orders")
	}

	badQty := 0
	invertedMargin := 0
	for _, it := range ds.Items {
		if it.Qty <= 0 {
			badQty++
		}
		if it.Qty > 0 && it.Revenue < it.Cost {
			invertedMargin++
		}
	}
	if badQty == 0 {
		t.Error("no non-positive qty defects injected")
	}
	if invertedMargin == 0 {
		t.Error("no inverted margin defects injected")
	}
}
