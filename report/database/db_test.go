package database

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"orderdata/config"
	"orderdata/generator"
	"orderdata/models"

	log "github.com/sirupsen/logrus"
)

func openTestDB(t *testing.T) Database {
	t.Helper()
	db, err := NewSqliteDatabase(":memory:", 100, log.StandardLogger())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Error(err)
		}
	})
	if err := db.InitTables(); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestLoadCSVRoundTrip(t *testing.T) {
	conf := config.DefaultConfig()
	ds := generator.Generate(generator.NewStream("user@example.com"), generator.Params{
		Orders: 100,
		Days:   30,
		Now:    time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}, conf)
	dir := t.TempDir()
	if err := generator.WriteCSV(ds, dir); err != nil {
		t.Fatal(err)
	}

	db := openTestDB(t)
	if err := db.LoadCSV(dir); err != nil {
		t.Fatal(err)
	}

	sellers, err := db.FetchSellers()
	if err != nil {
		t.Fatal(err)
	}
	orders, err := db.FetchOrders()
	if err != nil {
		t.Fatal(err)
	}
	items, err := db.FetchItems()
	if err != nil {
		t.Fatal(err)
	}
	if len(sellers) != len(ds.Sellers) || len(orders) != len(ds.Orders) || len(items) != len(ds.Items) {
		t.Fatalf("loaded %d/%d/%d records, want %d/%d/%d",
			len(sellers), len(orders), len(items), len(ds.Sellers), len(ds.Orders), len(ds.Items))
	}

	byID := make(map[int64]models.Order, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
	}
	for _, want := range ds.Orders {
		got, ok := byID[want.ID]
		if !ok {
			t.Fatalf("order %d missing after the round trip", want.ID)
		}
		if !got.Date.Equal(want.Date) || !got.UpdatedAt.Equal(want.UpdatedAt) {
			t.Fatalf("order %d timestamps changed: got %v/%v, want %v/%v",
				want.ID, got.Date, got.UpdatedAt, want.Date, want.UpdatedAt)
		}
		if (got.DeliveredAt != nil) != (want.DeliveredAt != nil) {
			t.Fatalf("order %d delivered_at presence changed", want.ID)
		}
	}
}

func TestLoadCSVRejectsWrongHeader(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "sellers.csv"), []byte("id,title\n1,Seller 001\n"), 0644); err != nil {
		t.Fatal(err)
	}

	db := openTestDB(t)
	if err := db.LoadCSV(dir); err == nil {
		t.Fatal("a header mismatch must abort the load")
	}
}

func TestLoadCSVRejectsMissingFile(t *testing.T) {
	db := openTestDB(t)
	if err := db.LoadCSV(t.TempDir()); err == nil {
		t.Fatal("a missing input file must abort the load")
	}
}

func TestLoadCSVRejectsBadRow(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"sellers.csv":     "id,name\nnot-a-number,Seller 001\n",
		"orders.csv":      "id,external_id,date,channel,seller_id,status,updated_at,delivered_at\n",
		"order_items.csv": "order_id,sku,qty,revenue,cost\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	db := openTestDB(t)
	if err := db.LoadCSV(dir); err == nil {
		t.Fatal("an unparseable row must abort the load")
	}
}
