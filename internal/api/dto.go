package api

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The commerce API speaks bare JSON numbers for money fields.
	decimal.MarshalJSONWithoutQuotes = true
}

// TokenPair mirrors the auth endpoints' response data.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Product is one catalog entry as served by GET /api/products.
type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	MinStock  int             `json:"minStock"`
	Unit      string          `json:"unit"`
	IsActive  bool            `json:"isActive"`
	Category  Category        `json:"category"`
	CreatedAt time.Time       `json:"createdAt"`
	Image     *string         `json:"image"`
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusRefunded  OrderStatus = "REFUNDED"
)

// OrderStatuses lists the filterable statuses in display order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusCompleted,
	OrderStatusCancelled,
	OrderStatusRefunded,
}

const (
	PaymentMethodCash     = "CASH"
	PaymentMethodCard     = "CARD"
	PaymentMethodTransfer = "TRANSFER"
)

// PaymentMethods lists the filterable payment methods in display order.
var PaymentMethods = []string{PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer}

// OrderItem is one line of an order-create payload.
type OrderItem struct {
	ProductID string          `json:"productId"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// OrderRequest is the POST /api/orders body. It is a transient projection of
// the receipt, built fresh at submission time.
type OrderRequest struct {
	Items          []OrderItem     `json:"items"`
	CustomerName   string          `json:"customerName"`
	CustomerPhone  string          `json:"customerPhone"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	PaymentMethod  string          `json:"paymentMethod"`
	Notes          string          `json:"notes"`
}

// Order is one row of the order history listing.
type Order struct {
	ID            string          `json:"id"`
	OrderNumber   string          `json:"orderNumber"`
	CustomerName  string          `json:"customerName"`
	Total         decimal.Decimal `json:"total"`
	Status        OrderStatus     `json:"status"`
	PaymentMethod string          `json:"paymentMethod"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// OrdersMeta is the pagination block the orders listing may carry.
// TotalPages is optional; callers derive it from Total/Limit when absent.
type OrdersMeta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages *int `json:"totalPages"`
}

// OrdersQuery holds the order-history filters. Zero-valued fields are omitted
// from the request.
type OrdersQuery struct {
	Page          int
	Limit         int
	Search        string
	Status        string
	PaymentMethod string
	StartDate     string // YYYY-MM-DD
	EndDate       string // YYYY-MM-DD
}

type SalesStats struct {
	Today     decimal.Decimal `json:"today"`
	ThisWeek  decimal.Decimal `json:"thisWeek"`
	ThisMonth decimal.Decimal `json:"thisMonth"`
	Growth    decimal.Decimal `json:"growth"`
}

type OrderStats struct {
	Today     int `json:"today"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

type ProductStats struct {
	Total      int `json:"total"`
	LowStock   int `json:"lowStock"`
	OutOfStock int `json:"outOfStock"`
}

type CustomerStats struct {
	Total     int `json:"total"`
	New       int `json:"new"`
	Returning int `json:"returning"`
}

// Stats is the dashboard stats block.
type Stats struct {
	Sales     SalesStats    `json:"sales"`
	Orders    OrderStats    `json:"orders"`
	Products  ProductStats  `json:"products"`
	Customers CustomerStats `json:"customers"`
}

// TopProduct is one row of the dashboard top-products table.
type TopProduct struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	TotalSold   int             `json:"totalSold"`
	Revenue     decimal.Decimal `json:"revenue"`
	Category    string          `json:"category"`
	Unit        string          `json:"unit"`
}

// Activity is one dashboard recent-activity entry.
type Activity struct {
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Timestamp   time.Time       `json:"timestamp"`
	User        string          `json:"user"`
}
