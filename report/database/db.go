package database

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"orderdata/models"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Database interface {
	InitTables() error
	LoadCSV(dir string) error
	FetchSellers() ([]models.Seller, error)
	FetchOrders() ([]models.Order, error)
	FetchItems() ([]models.OrderItem, error)
	Close() error
}

type SqliteDatabase struct {
	batchSz int
	db      *gorm.DB
	Logger  *log.Logger
}

// NewSqliteDatabase opens the embedded report database, ":memory:" for an
// ephemeral run or a file path to keep it around.
func NewSqliteDatabase(path string, batchSz int, logger *log.Logger) (Database, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %s: %w", path, err)
	}
	return &SqliteDatabase{db: db, batchSz: batchSz, Logger: logger}, nil
}

func (d *SqliteDatabase) InitTables() error {
	return d.db.AutoMigrate(&models.Seller{}, &models.Order{}, &models.OrderItem{})
}

// LoadCSV bulk loads the three transport files. Any missing file, header
// mismatch or unparseable row aborts the load, nothing downstream should run
// on a half-read input.
func (d *SqliteDatabase) LoadCSV(dir string) error {
	sellers, err := readTable(filepath.Join(dir, "sellers.csv"), "id,name")
	if err != nil {
		return err
	}
	orders, err := readTable(filepath.Join(dir, "orders.csv"), "id,external_id,date,channel,seller_id,status,updated_at,delivered_at")
	if err != nil {
		return err
	}
	items, err := readTable(filepath.Join(dir, "order_items.csv"), "order_id,sku,qty,revenue,cost")
	if err != nil {
		return err
	}

	sellerRecs := make([]models.Seller, len(sellers))
	for i, rec := range sellers {
		if sellerRecs[i], err = parseSeller(rec); err != nil {
			return fmt.Errorf("sellers.csv row %d: %w", i+2, err)
		}
	}
	orderRecs := make([]models.Order, len(orders))
	for i, rec := range orders {
		if orderRecs[i], err = parseOrder(rec); err != nil {
			return fmt.Errorf("orders.csv row %d: %w", i+2, err)
		}
	}
	itemRecs := make([]models.OrderItem, len(items))
	for i, rec := range items {
		if itemRecs[i], err = parseItem(rec); err != nil {
			return fmt.Errorf("order_items.csv row %d: %w", i+2, err)
		}
	}

	// gorm rejects empty slices, and an empty table is a legal input
	if len(sellerRecs) > 0 {
		if tx := d.db.CreateInBatches(sellerRecs, d.batchSz); tx.Error != nil {
			return tx.Error
		}
	}
	if len(orderRecs) > 0 {
		if tx := d.db.CreateInBatches(orderRecs, d.batchSz); tx.Error != nil {
			return tx.Error
		}
	}
	if len(itemRecs) > 0 {
		if tx := d.db.CreateInBatches(itemRecs, d.batchSz); tx.Error != nil {
			return tx.Error
		}
	}
	d.Logger.Infof("loaded %v sellers, %v orders, %v items", len(sellerRecs), len(orderRecs), len(itemRecs))
	return nil
}

func (d *SqliteDatabase) FetchSellers() ([]models.Seller, error) {
	var res []models.Seller
	if tx := d.db.Find(&res); tx.Error != nil {
		return nil, tx.Error
	}
	return res, nil
}

func (d *SqliteDatabase) FetchOrders() ([]models.Order, error) {
	var res []models.Order
	if tx := d.db.Find(&res); tx.Error != nil {
		return nil, tx.Error
	}
	return res, nil
}

func (d *SqliteDatabase) FetchItems() ([]models.OrderItem, error) {
	var res []models.OrderItem
	if tx := d.db.Find(&res); tx.Error != nil {
		return nil, tx.Error
	}
	return res, nil
}

func (d *SqliteDatabase) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func readTable(path string, wantHeader string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: missing header row", filepath.Base(path))
	}
	if strings.Join(records[0], ",") != wantHeader {
		return nil, fmt.Errorf("%s: unexpected header %q, want %q", filepath.Base(path), strings.Join(records[0], ","), wantHeader)
	}
	return records[1:], nil
}

func parseSeller(rec []string) (models.Seller, error) {
	id, err := strconv.ParseInt(rec[0], 10, 64)
	if err != nil {
		return models.Seller{}, err
	}
	return models.Seller{ID: id, Name: rec[1]}, nil
}

func parseOrder(rec []string) (models.Order, error) {
	var o models.Order
	var err error
	if o.ID, err = strconv.ParseInt(rec[0], 10, 64); err != nil {
		return o, err
	}
	o.ExternalID = rec[1]
	if o.Date, err = time.Parse(models.TimeLayout, rec[2]); err != nil {
		return o, err
	}
	o.Channel = rec[3]
	if o.SellerID, err = strconv.ParseInt(rec[4], 10, 64); err != nil {
		return o, err
	}
	o.Status = rec[5]
	if o.UpdatedAt, err = time.Parse(models.TimeLayout, rec[6]); err != nil {
		return o, err
	}
	if rec[7] != "" {
		d, err := time.Parse(models.TimeLayout, rec[7])
		if err != nil {
			return o, err
		}
		o.DeliveredAt = &d
	}
	return o, nil
}

func parseItem(rec []string) (models.OrderItem, error) {
	var it models.OrderItem
	var err error
	if it.OrderID, err = strconv.ParseInt(rec[0], 10, 64); err != nil {
		return it, err
	}
	it.Sku = rec[1]
	if it.Qty, err = strconv.Atoi(rec[2]); err != nil {
		return it, err
	}
	if it.Revenue, err = strconv.ParseFloat(rec[3], 64); err != nil {
		return it, err
	}
	if it.Cost, err = strconv.ParseFloat(rec[4], 64); err != nil {
		return it, err
	}
	return it, nil
}
