package generator

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"orderdata/models"
)

// WriteCSV lays the dataset down as the three transport files the report
// builder consumes: sellers.csv, orders.csv and order_items.csv, each with a
// header row.
func WriteCSV(ds Dataset, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	sellers := [][]string{{"id", "name"}}
	for _, s := range ds.Sellers {
		sellers = append(sellers, []string{strconv.FormatInt(s.ID, 10), s.Name})
	}
	if err := writeTable(filepath.Join(dir, "sellers.csv"), sellers); err != nil {
		return err
	}

	orders := [][]string{{"id", "external_id", "date", "channel", "seller_id", "status", "updated_at", "delivered_at"}}
	for _, o := range ds.Orders {
		deliveredAt := ""
		if o.DeliveredAt != nil {
			deliveredAt = o.DeliveredAt.Format(models.TimeLayout)
		}
		orders = append(orders, []string{
			strconv.FormatInt(o.ID, 10),
			o.ExternalID,
			o.Date.Format(models.TimeLayout),
			o.Channel,
			strconv.FormatInt(o.SellerID, 10),
			o.Status,
			o.UpdatedAt.Format(models.TimeLayout),
			deliveredAt,
		})
	}
	if err := writeTable(filepath.Join(dir, "orders.csv"), orders); err != nil {
		return err
	}

	items := [][]string{{"order_id", "sku", "qty", "revenue", "cost"}}
	for _, it := range ds.Items {
		items = append(items, []string{
			strconv.FormatInt(it.OrderID, 10),
			it.Sku,
			strconv.Itoa(it.Qty),
			strconv.FormatFloat(it.Revenue, 'f', 2, 64),
			strconv.FormatFloat(it.Cost, 'f', 2, 64),
		})
	}
	return writeTable(filepath.Join(dir, "order_items.csv"), items)
}

func writeTable(path string, records [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	w := csv.NewWriter(file)
	if err := w.WriteAll(records); err != nil {
		return err
	}
	return file.Close()
}
