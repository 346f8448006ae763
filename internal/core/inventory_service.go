package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// InventoryService owns product records and their quantity balance. Every
// quantity mutation goes through the ledger: the product row update and the
// ProductHistory append commit in the same transaction, with the product row
// locked for the duration of the check-then-write.
type InventoryService interface {
	// Product master data. UpdateProduct never touches quantity — quantity
	// changes are ledger-only.
	CreateProduct(ctx context.Context, input ProductInput) (*Product, error)
	CreateProducts(ctx context.Context, inputs []ProductInput) ([]Product, error)
	GetProduct(ctx context.Context, productID int) (*Product, error)
	GetProducts(ctx context.Context, branch *Branch) ([]Product, error)
	UpdateProduct(ctx context.Context, productID int, input ProductInput) (*Product, error)
	DeleteProduct(ctx context.Context, productID int) error

	// AdjustStock applies one signed ledger adjustment and returns the updated
	// product together with the history row written for it.
	AdjustStock(ctx context.Context, input AdjustStockInput) (*Product, *ProductHistory, error)
	// Restock is the ADD/restock convenience wrapper; it may also update the
	// product's supplier and unit cost before the retail price is recomputed.
	Restock(ctx context.Context, input RestockInput) (*Product, *ProductHistory, error)

	// History queries the persisted ledger, newest first.
	History(ctx context.Context, filter HistoryFilter) ([]ProductHistory, error)
	// UpdateHistoryPayment backfills amount_paid on an existing ledger row —
	// the only permitted mutation of history.
	UpdateHistoryPayment(ctx context.Context, historyID int, amountPaid decimal.Decimal) (*ProductHistory, error)

	// TX-scoped operations used by OrderService and SaleService so multi-item
	// stock reconciliation commits atomically with the status change.
	DeductStockTx(ctx context.Context, tx pgx.Tx, userID *int, productID, quantity int, txType TransactionType, reason string) (*ProductHistory, error)
	RestoreStockTx(ctx context.Context, tx pgx.Tx, userID *int, productID, quantity int, reason string) (*ProductHistory, error)

	// Suppliers.
	CreateSupplier(ctx context.Context, input SupplierInput) (*Supplier, error)
	GetSuppliers(ctx context.Context) ([]Supplier, error)
	UpdateSupplier(ctx context.Context, supplierID int, input SupplierInput) (*Supplier, error)
	DeleteSupplier(ctx context.Context, supplierID int) error
}

type inventoryService struct {
	pool    *pgxpool.Pool
	pricing PricingEngine
}

func NewInventoryService(pool *pgxpool.Pool, pricing PricingEngine) InventoryService {
	return &inventoryService{pool: pool, pricing: pricing}
}

const productColumns = `id, name, category, description, supplier, unit_cost, retail_price,
	quantity, reorder_level, reorder_quantity, branch, item_number, remarks, created_at, updated_at`

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Category, &p.Description, &p.Supplier, &p.UnitCost, &p.RetailPrice,
		&p.Quantity, &p.ReorderLevel, &p.ReorderQuantity, &p.Branch, &p.ItemNumber, &p.Remarks,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.FormattedID = FormattedProductID(p.Branch, p.Category, p.ItemNumber)
	return &p, nil
}

// ── Product master data ───────────────────────────────────────────────────────

func (s *inventoryService) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	product, err := s.createProductTx(ctx, tx, input)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit product creation: %w", err)
	}
	return product, nil
}

func (s *inventoryService) CreateProducts(ctx context.Context, inputs []ProductInput) ([]Product, error) {
	if len(inputs) == 0 {
		return nil, InvalidArgumentf("at least one product is required")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	products := make([]Product, 0, len(inputs))
	for i, input := range inputs {
		p, err := s.createProductTx(ctx, tx, input)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		products = append(products, *p)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit batch product creation: %w", err)
	}
	return products, nil
}

func (s *inventoryService) createProductTx(ctx context.Context, tx pgx.Tx, input ProductInput) (*Product, error) {
	if input.Name == "" {
		return nil, InvalidArgumentf("product name is required")
	}
	if !ValidCategory(input.Category) {
		return nil, InvalidArgumentf("unknown category %q", input.Category)
	}
	if !input.Branch.Valid() {
		return nil, InvalidArgumentf("unknown branch %q", input.Branch)
	}
	if input.Quantity < 0 {
		return nil, InvalidArgumentf("quantity cannot be negative, got %d", input.Quantity)
	}
	if input.UnitCost.IsNegative() {
		return nil, InvalidArgumentf("unit cost cannot be negative, got %s", input.UnitCost)
	}

	markup, err := resolveMarkup(ctx, tx, input.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve markup for %q: %w", input.Category, err)
	}

	itemNumber, err := nextItemNumber(ctx, tx, input.Branch, input.Category)
	if err != nil {
		return nil, err
	}

	remarks := input.Remarks
	if remarks == "" {
		remarks = ComputeRemarks(input.Quantity, input.ReorderLevel)
	}

	product, err := scanProduct(tx.QueryRow(ctx, `
		INSERT INTO products (name, category, description, supplier, unit_cost, retail_price,
		                      quantity, reorder_level, reorder_quantity, branch, item_number, remarks)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+productColumns,
		input.Name, input.Category, input.Description, input.Supplier,
		input.UnitCost, RetailPrice(input.UnitCost, markup),
		input.Quantity, input.ReorderLevel, input.ReorderQuantity,
		input.Branch, itemNumber, remarks,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	// Opening balance enters the ledger too, so quantity always equals the
	// sum of history changes.
	if input.Quantity > 0 {
		_, err = appendHistory(ctx, tx, historyEntry{
			productID:       product.ID,
			transactionType: TxAddition,
			quantityChange:  input.Quantity,
			oldQuantity:     0,
			newQuantity:     input.Quantity,
			supplier:        product.Supplier,
			unitCost:        product.UnitCost,
			reason:          "Initial stock on product creation",
		})
		if err != nil {
			return nil, err
		}
	}
	return product, nil
}

// nextItemNumber advances the per-(branch,category) sequence and returns the
// new value. The upsert runs in the caller's transaction, so a failed product
// insert rolls the sequence back with it — numbers are gapless and never reused.
func nextItemNumber(ctx context.Context, tx pgx.Tx, branch Branch, category string) (int, error) {
	var n int
	err := tx.QueryRow(ctx, `
		INSERT INTO item_number_sequences (branch, category, last_number)
		VALUES ($1, $2, 1)
		ON CONFLICT (branch, category)
		DO UPDATE SET last_number = item_number_sequences.last_number + 1
		RETURNING last_number
	`, branch, category).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to advance item number sequence: %w", err)
	}
	return n, nil
}

func (s *inventoryService) GetProduct(ctx context.Context, productID int) (*Product, error) {
	product, err := scanProduct(s.pool.QueryRow(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = $1", productID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, NotFoundf("product %d not found", productID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product %d: %w", productID, err)
	}
	return product, nil
}

func (s *inventoryService) GetProducts(ctx context.Context, branch *Branch) ([]Product, error) {
	query := "SELECT " + productColumns + " FROM products"
	args := []any{}
	if branch != nil {
		query += " WHERE branch = $1"
		args = append(args, *branch)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (s *inventoryService) UpdateProduct(ctx context.Context, productID int, input ProductInput) (*Product, error) {
	if !ValidCategory(input.Category) {
		return nil, InvalidArgumentf("unknown category %q", input.Category)
	}
	if !input.Branch.Valid() {
		return nil, InvalidArgumentf("unknown branch %q", input.Branch)
	}
	if input.UnitCost.IsNegative() {
		return nil, InvalidArgumentf("unit cost cannot be negative, got %s", input.UnitCost)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Quantity is deliberately absent from the SET list: stock levels move
	// only through the ledger.
	markup, err := resolveMarkup(ctx, tx, input.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve markup for %q: %w", input.Category, err)
	}

	var quantity, reorderLevel int
	err = tx.QueryRow(ctx,
		"SELECT quantity, reorder_level FROM products WHERE id = $1 FOR UPDATE", productID,
	).Scan(&quantity, &reorderLevel)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, NotFoundf("product %d not found", productID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock product %d: %w", productID, err)
	}

	remarks := input.Remarks
	if remarks == "" {
		remarks = ComputeRemarks(quantity, input.ReorderLevel)
	}

	product, err := scanProduct(tx.QueryRow(ctx, `
		UPDATE products
		SET name = $1, category = $2, description = $3, supplier = $4,
		    unit_cost = $5, retail_price = $6, reorder_level = $7,
		    reorder_quantity = $8, remarks = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING `+productColumns,
		input.Name, input.Category, input.Description, input.Supplier,
		input.UnitCost, RetailPrice(input.UnitCost, markup),
		input.ReorderLevel, input.ReorderQuantity, remarks, productID,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to update product %d: %w", productID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit product update: %w", err)
	}
	return product, nil
}

func (s *inventoryService) DeleteProduct(ctx context.Context, productID int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM products WHERE id = $1", productID)
	if err != nil {
		return fmt.Errorf("failed to delete product %d: %w", productID, err)
	}
	if tag.RowsAffected() == 0 {
		return NotFoundf("product %d not found", productID)
	}
	return nil
}

// ── Ledger adjustments ────────────────────────────────────────────────────────

func (s *inventoryService) AdjustStock(ctx context.Context, input AdjustStockInput) (*Product, *ProductHistory, error) {
	if !input.Operation.Valid() {
		return nil, nil, InvalidArgumentf("operation must be ADD or DEDUCT, got %q", input.Operation)
	}
	if input.Quantity <= 0 {
		return nil, nil, InvalidArgumentf("quantity must be positive, got %d", input.Quantity)
	}
	if !input.TransactionType.Valid() {
		return nil, nil, InvalidArgumentf("unknown transaction type %q", input.TransactionType)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	delta := input.Quantity
	if input.Operation == OpDeduct {
		delta = -input.Quantity
	}

	product, entry, err := applyAdjustment(ctx, tx, adjustment{
		productID:       input.ProductID,
		delta:           delta,
		transactionType: input.TransactionType,
		reason:          input.Reason,
		userID:          input.UserID,
		supplier:        input.Supplier,
		unitCost:        input.UnitCost,
		amountPaid:      input.AmountPaid,
	})
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit stock adjustment: %w", err)
	}
	return product, entry, nil
}

func (s *inventoryService) Restock(ctx context.Context, input RestockInput) (*Product, *ProductHistory, error) {
	if input.Quantity <= 0 {
		return nil, nil, InvalidArgumentf("quantity must be positive, got %d", input.Quantity)
	}
	if input.UnitCost != nil && input.UnitCost.IsNegative() {
		return nil, nil, InvalidArgumentf("unit cost cannot be negative, got %s", input.UnitCost)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Supplier and unit cost updates land first so the ledger row and the
	// recomputed retail price both see the new values.
	if input.Supplier != "" || input.UnitCost != nil {
		var category string
		err = tx.QueryRow(ctx,
			"SELECT category FROM products WHERE id = $1 FOR UPDATE", input.ProductID,
		).Scan(&category)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, NotFoundf("product %d not found", input.ProductID)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to lock product %d: %w", input.ProductID, err)
		}

		if input.Supplier != "" {
			if _, err = tx.Exec(ctx,
				"UPDATE products SET supplier = $1, updated_at = NOW() WHERE id = $2",
				input.Supplier, input.ProductID,
			); err != nil {
				return nil, nil, fmt.Errorf("failed to update supplier for product %d: %w", input.ProductID, err)
			}
		}
		if input.UnitCost != nil {
			markup, err := resolveMarkup(ctx, tx, category)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to resolve markup for %q: %w", category, err)
			}
			if _, err = tx.Exec(ctx,
				"UPDATE products SET unit_cost = $1, retail_price = $2, updated_at = NOW() WHERE id = $3",
				*input.UnitCost, RetailPrice(*input.UnitCost, markup), input.ProductID,
			); err != nil {
				return nil, nil, fmt.Errorf("failed to update unit cost for product %d: %w", input.ProductID, err)
			}
		}
	}

	reason := input.Reason
	if reason == "" {
		reason = "Restock"
	}

	product, entry, err := applyAdjustment(ctx, tx, adjustment{
		productID:       input.ProductID,
		delta:           input.Quantity,
		transactionType: TxRestock,
		reason:          reason,
		userID:          input.UserID,
		supplier:        input.Supplier,
		unitCost:        input.UnitCost,
		amountPaid:      input.AmountPaid,
	})
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit restock: %w", err)
	}
	return product, entry, nil
}

// adjustment is the internal form of one signed ledger mutation.
type adjustment struct {
	productID       int
	delta           int // positive = ADD, negative = DEDUCT
	transactionType TransactionType
	reason          string
	userID          *int
	supplier        string
	unitCost        *decimal.Decimal
	amountPaid      *decimal.Decimal
}

// applyAdjustment locks the product row, enforces the non-negative balance
// invariant, updates the quantity and derived remarks, and appends the paired
// history row — all inside the caller's transaction.
func applyAdjustment(ctx context.Context, tx pgx.Tx, adj adjustment) (*Product, *ProductHistory, error) {
	var (
		oldQuantity, reorderLevel int
		name, supplier            string
		unitCost                  decimal.Decimal
	)
	err := tx.QueryRow(ctx, `
		SELECT quantity, reorder_level, name, supplier, unit_cost
		FROM products WHERE id = $1
		FOR UPDATE
	`, adj.productID).Scan(&oldQuantity, &reorderLevel, &name, &supplier, &unitCost)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, NotFoundf("product %d not found", adj.productID)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to lock product %d: %w", adj.productID, err)
	}

	newQuantity := oldQuantity + adj.delta
	if newQuantity < 0 {
		return nil, nil, InsufficientStockf("insufficient stock for %s: available %d, requested %d",
			name, oldQuantity, -adj.delta)
	}

	product, err := scanProduct(tx.QueryRow(ctx, `
		UPDATE products
		SET quantity = $1, remarks = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING `+productColumns,
		newQuantity, ComputeRemarks(newQuantity, reorderLevel), adj.productID,
	))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to update quantity for product %d: %w", adj.productID, err)
	}

	entrySupplier := adj.supplier
	if entrySupplier == "" {
		entrySupplier = supplier
	}
	entryUnitCost := unitCost
	if adj.unitCost != nil {
		entryUnitCost = *adj.unitCost
	}

	entry, err := appendHistory(ctx, tx, historyEntry{
		productID:       adj.productID,
		userID:          adj.userID,
		transactionType: adj.transactionType,
		quantityChange:  adj.delta,
		oldQuantity:     oldQuantity,
		newQuantity:     newQuantity,
		supplier:        entrySupplier,
		unitCost:        entryUnitCost,
		amountPaid:      adj.amountPaid,
		reason:          adj.reason,
	})
	if err != nil {
		return nil, nil, err
	}
	return product, entry, nil
}

type historyEntry struct {
	productID       int
	userID          *int
	transactionType TransactionType
	quantityChange  int
	oldQuantity     int
	newQuantity     int
	supplier        string
	unitCost        decimal.Decimal
	amountPaid      *decimal.Decimal
	reason          string
}

func appendHistory(ctx context.Context, tx pgx.Tx, e historyEntry) (*ProductHistory, error) {
	totalCost := e.unitCost.Mul(decimal.NewFromInt(int64(abs(e.quantityChange)))).Round(2)

	var h ProductHistory
	err := tx.QueryRow(ctx, `
		INSERT INTO product_history (product_id, user_id, transaction_type, quantity_change,
		                             old_quantity, new_quantity, supplier, unit_cost, total_cost,
		                             amount_paid, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, product_id, user_id, transaction_type, quantity_change,
		          old_quantity, new_quantity, supplier, unit_cost, total_cost,
		          amount_paid, reason, created_at
	`, e.productID, e.userID, e.transactionType, e.quantityChange,
		e.oldQuantity, e.newQuantity, e.supplier, e.unitCost, totalCost,
		e.amountPaid, e.reason,
	).Scan(
		&h.ID, &h.ProductID, &h.UserID, &h.TransactionType, &h.QuantityChange,
		&h.OldQuantity, &h.NewQuantity, &h.Supplier, &h.UnitCost, &h.TotalCost,
		&h.AmountPaid, &h.Reason, &h.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to append history for product %d: %w", e.productID, err)
	}
	return &h, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// ── TX-scoped operations ──────────────────────────────────────────────────────

// DeductStockTx deducts stock for one product inside the caller's transaction.
// Used per order/sale line so a failing line aborts the whole transition.
func (s *inventoryService) DeductStockTx(ctx context.Context, tx pgx.Tx, userID *int, productID, quantity int, txType TransactionType, reason string) (*ProductHistory, error) {
	if quantity <= 0 {
		return nil, InvalidArgumentf("quantity must be positive, got %d", quantity)
	}
	if !txType.Valid() {
		return nil, InvalidArgumentf("unknown transaction type %q", txType)
	}
	_, entry, err := applyAdjustment(ctx, tx, adjustment{
		productID:       productID,
		delta:           -quantity,
		transactionType: txType,
		reason:          reason,
		userID:          userID,
	})
	return entry, err
}

// RestoreStockTx returns previously deducted stock inside the caller's
// transaction, recorded as a restock entry.
func (s *inventoryService) RestoreStockTx(ctx context.Context, tx pgx.Tx, userID *int, productID, quantity int, reason string) (*ProductHistory, error) {
	if quantity <= 0 {
		return nil, InvalidArgumentf("quantity must be positive, got %d", quantity)
	}
	_, entry, err := applyAdjustment(ctx, tx, adjustment{
		productID:       productID,
		delta:           quantity,
		transactionType: TxRestock,
		reason:          reason,
		userID:          userID,
	})
	return entry, err
}

// ── History queries ───────────────────────────────────────────────────────────

func (s *inventoryService) History(ctx context.Context, filter HistoryFilter) ([]ProductHistory, error) {
	query := `
		SELECT h.id, h.product_id, p.name, h.user_id, h.transaction_type, h.quantity_change,
		       h.old_quantity, h.new_quantity, h.supplier, h.unit_cost, h.total_cost,
		       h.amount_paid, h.reason, h.created_at
		FROM product_history h
		JOIN products p ON p.id = h.product_id
		WHERE 1=1
	`
	var args []any
	if filter.ProductID != nil {
		args = append(args, *filter.ProductID)
		query += fmt.Sprintf(" AND h.product_id = $%d", len(args))
	}
	if filter.Branch != nil {
		args = append(args, *filter.Branch)
		query += fmt.Sprintf(" AND p.branch = $%d", len(args))
	}
	if filter.TransactionType != nil {
		args = append(args, *filter.TransactionType)
		query += fmt.Sprintf(" AND h.transaction_type = $%d", len(args))
	}
	query += " ORDER BY h.created_at DESC, h.id DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query product history: %w", err)
	}
	defer rows.Close()

	var entries []ProductHistory
	for rows.Next() {
		var h ProductHistory
		if err := rows.Scan(
			&h.ID, &h.ProductID, &h.ProductName, &h.UserID, &h.TransactionType, &h.QuantityChange,
			&h.OldQuantity, &h.NewQuantity, &h.Supplier, &h.UnitCost, &h.TotalCost,
			&h.AmountPaid, &h.Reason, &h.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, h)
	}
	return entries, rows.Err()
}

func (s *inventoryService) UpdateHistoryPayment(ctx context.Context, historyID int, amountPaid decimal.Decimal) (*ProductHistory, error) {
	if amountPaid.IsNegative() {
		return nil, InvalidArgumentf("amount paid cannot be negative, got %s", amountPaid)
	}

	var h ProductHistory
	err := s.pool.QueryRow(ctx, `
		UPDATE product_history
		SET amount_paid = $1
		WHERE id = $2
		RETURNING id, product_id, user_id, transaction_type, quantity_change,
		          old_quantity, new_quantity, supplier, unit_cost, total_cost,
		          amount_paid, reason, created_at
	`, amountPaid, historyID).Scan(
		&h.ID, &h.ProductID, &h.UserID, &h.TransactionType, &h.QuantityChange,
		&h.OldQuantity, &h.NewQuantity, &h.Supplier, &h.UnitCost, &h.TotalCost,
		&h.AmountPaid, &h.Reason, &h.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, NotFoundf("history entry %d not found", historyID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update payment on history entry %d: %w", historyID, err)
	}
	return &h, nil
}

// ── Suppliers ─────────────────────────────────────────────────────────────────

const supplierColumns = "id, name, contact_person, phone, email, address, is_active, created_at"

func scanSupplier(row pgx.Row) (*Supplier, error) {
	var sp Supplier
	err := row.Scan(&sp.ID, &sp.Name, &sp.ContactPerson, &sp.Phone, &sp.Email, &sp.Address, &sp.IsActive, &sp.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &sp, nil
}

func (s *inventoryService) CreateSupplier(ctx context.Context, input SupplierInput) (*Supplier, error) {
	if input.Name == "" {
		return nil, InvalidArgumentf("supplier name is required")
	}
	supplier, err := scanSupplier(s.pool.QueryRow(ctx, `
		INSERT INTO suppliers (name, contact_person, phone, email, address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+supplierColumns,
		input.Name, input.ContactPerson, input.Phone, input.Email, input.Address,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create supplier %q: %w", input.Name, err)
	}
	return supplier, nil
}

func (s *inventoryService) GetSuppliers(ctx context.Context) ([]Supplier, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+supplierColumns+" FROM suppliers WHERE is_active = true ORDER BY name",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []Supplier
	for rows.Next() {
		sp, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan supplier: %w", err)
		}
		suppliers = append(suppliers, *sp)
	}
	return suppliers, rows.Err()
}

func (s *inventoryService) UpdateSupplier(ctx context.Context, supplierID int, input SupplierInput) (*Supplier, error) {
	if input.Name == "" {
		return nil, InvalidArgumentf("supplier name is required")
	}
	supplier, err := scanSupplier(s.pool.QueryRow(ctx, `
		UPDATE suppliers
		SET name = $1, contact_person = $2, phone = $3, email = $4, address = $5
		WHERE id = $6
		RETURNING `+supplierColumns,
		input.Name, input.ContactPerson, input.Phone, input.Email, input.Address, supplierID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, NotFoundf("supplier %d not found", supplierID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update supplier %d: %w", supplierID, err)
	}
	return supplier, nil
}

func (s *inventoryService) DeleteSupplier(ctx context.Context, supplierID int) error {
	tag, err := s.pool.Exec(ctx, "UPDATE suppliers SET is_active = false WHERE id = $1", supplierID)
	if err != nil {
		return fmt.Errorf("failed to delete supplier %d: %w", supplierID, err)
	}
	if tag.RowsAffected() == 0 {
		return NotFoundf("supplier %d not found", supplierID)
	}
	return nil
}
