package models

import "time"

// TimeLayout is the second precision ISO-8601 form used in every CSV column
// and report cell that carries an instant.
const TimeLayout = "2006-01-02T15:04:05"

// UnknownSeller marks orders whose seller_id resolves to nothing. Such orders
// stay in the export and get reported by the checks instead of being dropped.
const UnknownSeller = "UNKNOWN_SELLER"

const (
	ChannelSite = "site"
	ChannelOzon = "ozon"
	ChannelB24  = "b24"
)

const (
	StatusCreated     = "created"
	StatusPaid        = "paid"
	StatusProdStarted = "prod_started"
	StatusShipped     = "shipped"
	StatusDelivered   = "delivered"
	StatusCancelled   = "cancelled"
)

// FunnelStatuses lists the non-cancelled statuses in lifecycle order.
var FunnelStatuses = []string{StatusCreated, StatusPaid, StatusProdStarted, StatusShipped, StatusDelivered}

// SkuCategories are the prefixes SKUs get minted with.
var SkuCategories = []string{"TB", "ST", "CH", "WD", "DR", "SH"}

type Seller struct {
	ID   int64 `gorm:"primaryKey"`
	Name string
}

type Order struct {
	ID         int64 `gorm:"primaryKey"`
	ExternalID string
	Date       time.Time
	Channel    string
	SellerID   int64
	Status     string
	// autoUpdateTime is off because the column holds generated data, not a
	// gorm-managed modification stamp.
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`
	DeliveredAt *time.Time
}

type OrderItem struct {
	OrderID int64
	Sku     string `gorm:"column:sku"`
	Qty     int
	Revenue float64
	Cost    float64
}

// Row is the canonical item grain view: one kept order crossed with one of
// its items, seller resolved, margin precomputed. Everything downstream
// (Orders sheet, Summary, funnel, checks) works off this shape only.
type Row struct {
	OrderID     int64
	ExternalID  string
	Date        time.Time
	Channel     string
	Seller      string
	Status      string
	UpdatedAt   time.Time
	DeliveredAt *time.Time
	Sku         string
	Qty         int
	Revenue     float64
	Cost        float64
	Margin      float64
}
