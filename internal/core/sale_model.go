package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus is the point-of-sale transaction state. Counter sales are
// recorded completed; there is no reversal path.
type SaleStatus string

const (
	SalePending   SaleStatus = "pending"
	SaleCompleted SaleStatus = "completed"
	SaleCancelled SaleStatus = "cancelled"
)

// PaymentMethod is how a counter sale was settled.
type PaymentMethod string

const (
	PayCash   PaymentMethod = "cash"
	PayCard   PaymentMethod = "card"
	PayOnline PaymentMethod = "online"
)

func (m PaymentMethod) Valid() bool {
	return m == PayCash || m == PayCard || m == PayOnline
}

// Sale is a point-of-sale transaction. Tax is a flat 12% VAT applied to the
// discounted subtotal; product lines deduct stock immediately through the
// ledger with no reversal path.
type Sale struct {
	ID            int             `json:"id"`
	SaleNumber    string          `json:"sale_number"`
	SaleDate      time.Time       `json:"sale_date"`
	Branch        Branch          `json:"branch"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	CustomerEmail string          `json:"customer_email"`
	CashierID     *int            `json:"cashier_id,omitempty"`
	CashierName   string          `json:"cashier_name,omitempty"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Change        decimal.Decimal `json:"change"`
	Status        SaleStatus      `json:"status"`
	Notes         string          `json:"notes"`
	Items         []SaleItem      `json:"items"`
	CreatedAt     time.Time       `json:"created_at"`
}

// SaleItem is one counter-sale line. ItemName is denormalized so the record
// survives product or service deletion.
type SaleItem struct {
	ID          int             `json:"id"`
	SaleID      int             `json:"sale_id"`
	ItemType    OrderItemType   `json:"item_type"`
	ProductID   *int            `json:"product_id,omitempty"`
	ServiceID   *int            `json:"service_id,omitempty"`
	ItemName    string          `json:"item_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	ServiceSize string          `json:"service_size,omitempty"`
}

// SaleLineInput is one requested line on a new sale. UnitPrice comes from the
// till so sized services and ad-hoc pricing are honored as keyed.
type SaleLineInput struct {
	ItemType    OrderItemType   `json:"item_type"`
	ProductID   int             `json:"product_id"`
	ServiceID   int             `json:"service_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	ServiceSize string          `json:"service_size"`
}

// CreateSaleInput is a new counter-sale request.
type CreateSaleInput struct {
	CashierID     int
	Branch        Branch          `json:"branch"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	CustomerEmail string          `json:"customer_email"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Discount      decimal.Decimal `json:"discount"`
	Notes         string          `json:"notes"`
	Items         []SaleLineInput `json:"items"`
}

// SaleFilter narrows a sale listing or stats query.
type SaleFilter struct {
	Branch *Branch
	Date   *time.Time
	Status *SaleStatus
}

// TopProduct is one row of the best-sellers ranking.
type TopProduct struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// SaleStats aggregates completed sales for the dashboard.
type SaleStats struct {
	TotalSales     int             `json:"total_sales"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalDiscount  decimal.Decimal `json:"total_discount"`
	AvgTransaction decimal.Decimal `json:"avg_transaction"`
	TopProducts    []TopProduct    `json:"top_products"`
}

// vatRate is the flat VAT applied to the discounted subtotal.
var vatRate = decimal.NewFromFloat(0.12)

// SaleTotals computes tax, total, and change for a counter sale.
// tax = (subtotal - discount) * 12%; total = discounted subtotal + tax.
func SaleTotals(subtotal, discount, amountPaid decimal.Decimal) (tax, total, change decimal.Decimal) {
	discounted := subtotal.Sub(discount)
	tax = discounted.Mul(vatRate).Round(2)
	total = discounted.Add(tax)
	change = amountPaid.Sub(total)
	return tax, total, change
}
