package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the pickup-order lifecycle state.
type OrderStatus string

const (
	OrderPending            OrderStatus = "pending"
	OrderAvailableForPickup OrderStatus = "available_for_pickup"
	OrderCompleted          OrderStatus = "completed"
	OrderCancelled          OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderAvailableForPickup, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// OrderItemType distinguishes product lines from service lines.
type OrderItemType string

const (
	ItemProduct OrderItemType = "product"
	ItemService OrderItemType = "service"
)

// Order is a customer pickup order. Product lines reserve stock through the
// inventory ledger at creation; cancellation restores it, un-cancellation
// re-validates and deducts again.
type Order struct {
	ID          int             `json:"id"`
	OrderNumber string          `json:"order_number"`
	UserID      int             `json:"user_id"`
	Username    string          `json:"username,omitempty"`
	Branch      Branch          `json:"branch"`
	Status      OrderStatus     `json:"status"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	AmountPaid  decimal.Decimal `json:"amount_paid"`
	Change      decimal.Decimal `json:"change"`
	Notes       string          `json:"notes"`
	Items       []OrderItem     `json:"items"`
	CreatedAt   time.Time       `json:"created_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

// OrderItem is one priced line, captured at order-time unit price.
type OrderItem struct {
	ID        int             `json:"id"`
	OrderID   int             `json:"order_id"`
	ItemType  OrderItemType   `json:"item_type"`
	ProductID *int            `json:"product_id,omitempty"`
	ServiceID *int            `json:"service_id,omitempty"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// OrderLineInput is one requested line on a new order.
type OrderLineInput struct {
	ItemType OrderItemType `json:"item_type"`
	ID       int           `json:"id"`
	Quantity int           `json:"quantity"`
}

// CreateOrderInput is a new-order request.
type CreateOrderInput struct {
	UserID     int
	Branch     Branch           `json:"branch"`
	Items      []OrderLineInput `json:"items"`
	Notes      string           `json:"notes"`
	AmountPaid *decimal.Decimal `json:"amount_paid"`
	Change     *decimal.Decimal `json:"change"`
}

// OrderFilter narrows an order listing.
type OrderFilter struct {
	Status *OrderStatus
	Branch *Branch
	UserID *int
}

// OrderPaymentInput updates counter payment fields on a staff transition.
type OrderPaymentInput struct {
	AmountPaid *decimal.Decimal `json:"amount_paid"`
	Change     *decimal.Decimal `json:"change"`
}

// Notification is an in-app message tied to an order. Surfaced while unread
// and the order is still awaiting pickup.
type Notification struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	OrderID   int       `json:"order_id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// PurchaseFeedback is a 1-5 star review of a whole completed order. One per
// order; staff-visible only.
type PurchaseFeedback struct {
	ID        int       `json:"id"`
	OrderID   int       `json:"order_id"`
	UserID    int       `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductFeedback is a public 1-5 star review of one product bought in a
// completed order. One per (order, product).
type ProductFeedback struct {
	ID        int       `json:"id"`
	OrderID   int       `json:"order_id"`
	ProductID int       `json:"product_id"`
	UserID    int       `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductRating is the aggregate review summary for one product.
type ProductRating struct {
	ProductID     int             `json:"product_id"`
	AverageRating decimal.Decimal `json:"average_rating"`
	ReviewCount   int             `json:"review_count"`
}
