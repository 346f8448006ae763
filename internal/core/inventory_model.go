package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockOperation is the direction of a ledger adjustment.
type StockOperation string

const (
	OpAdd    StockOperation = "ADD"
	OpDeduct StockOperation = "DEDUCT"
)

func (op StockOperation) Valid() bool {
	return op == OpAdd || op == OpDeduct
}

// TransactionType classifies a stock ledger entry.
type TransactionType string

const (
	TxAddition   TransactionType = "addition"
	TxRestock    TransactionType = "restock"
	TxSale       TransactionType = "sale"
	TxAdjustment TransactionType = "adjustment"
	TxDamaged    TransactionType = "damaged"
	TxReturn     TransactionType = "return"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TxAddition, TxRestock, TxSale, TxAdjustment, TxDamaged, TxReturn:
		return true
	}
	return false
}

// Stock remarks derived from quantity vs reorder_level.
const (
	RemarksOutOfStock  = "Out of Stock"
	RemarksReorderSoon = "Reorder soon"
	RemarksInStock     = "In Stock"
)

// ComputeRemarks derives the stock remark for a quantity/reorder-level pair.
// Quantity zero wins over the reorder threshold.
func ComputeRemarks(quantity, reorderLevel int) string {
	switch {
	case quantity == 0:
		return RemarksOutOfStock
	case quantity <= reorderLevel:
		return RemarksReorderSoon
	default:
		return RemarksInStock
	}
}

// Product is a stocked inventory item. Quantity is mutated only through the
// inventory ledger; every change pairs with exactly one ProductHistory row.
type Product struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	Description     string          `json:"description"`
	Supplier        string          `json:"supplier"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	RetailPrice     decimal.Decimal `json:"retail_price"`
	Quantity        int             `json:"quantity"`
	ReorderLevel    int             `json:"reorder_level"`
	ReorderQuantity int             `json:"reorder_quantity"`
	Branch          Branch          `json:"branch"`
	ItemNumber      int             `json:"item_number"`
	FormattedID     string          `json:"formatted_id"`
	Remarks         string          `json:"remarks"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ProductInput is the caller-supplied portion of a product. ItemNumber,
// RetailPrice, and derived Remarks are assigned by the service.
type ProductInput struct {
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	Description     string          `json:"description"`
	Supplier        string          `json:"supplier"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	Quantity        int             `json:"quantity"`
	ReorderLevel    int             `json:"reorder_level"`
	ReorderQuantity int             `json:"reorder_quantity"`
	Branch          Branch          `json:"branch"`
	Remarks         string          `json:"remarks"` // optional override
}

// ProductHistory is an append-only ledger row. Immutable once written, except
// that AmountPaid may be backfilled later for supplier payment tracking.
// Invariant: NewQuantity == OldQuantity + QuantityChange, and NewQuantity >= 0.
type ProductHistory struct {
	ID              int              `json:"id"`
	ProductID       int              `json:"product_id"`
	ProductName     string           `json:"product_name"`
	UserID          *int             `json:"user_id,omitempty"`
	TransactionType TransactionType  `json:"transaction_type"`
	QuantityChange  int              `json:"quantity_change"`
	OldQuantity     int              `json:"old_quantity"`
	NewQuantity     int              `json:"new_quantity"`
	Supplier        string           `json:"supplier"`
	UnitCost        decimal.Decimal  `json:"unit_cost"`
	TotalCost       decimal.Decimal  `json:"total_cost"`
	AmountPaid      *decimal.Decimal `json:"amount_paid,omitempty"`
	Reason          string           `json:"reason"`
	CreatedAt       time.Time        `json:"created_at"`
}

// AdjustStockInput carries one ledger adjustment request.
type AdjustStockInput struct {
	ProductID       int
	Operation       StockOperation
	Quantity        int
	TransactionType TransactionType
	Reason          string
	UserID          *int
	Supplier        string           // optional; defaults to the product's supplier
	UnitCost        *decimal.Decimal // optional; defaults to the product's unit cost
	AmountPaid      *decimal.Decimal
}

// RestockInput is the convenience restock request: always ADD/restock, and may
// update the product's supplier and unit cost as a side effect.
type RestockInput struct {
	ProductID  int
	Quantity   int
	Supplier   string
	UnitCost   *decimal.Decimal
	AmountPaid *decimal.Decimal
	Reason     string
	UserID     *int
}

// HistoryFilter narrows a ledger query.
type HistoryFilter struct {
	ProductID       *int
	Branch          *Branch
	TransactionType *TransactionType
}

// Supplier is a vendor the store restocks from.
type Supplier struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

// SupplierInput is the caller-supplied portion of a supplier.
type SupplierInput struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
}
