package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// SaleService records point-of-sale transactions and answers the dashboard
// stats queries.
type SaleService interface {
	Create(ctx context.Context, input CreateSaleInput) (*Sale, error)
	Get(ctx context.Context, saleID int) (*Sale, error)
	List(ctx context.Context, filter SaleFilter) ([]Sale, error)
	Stats(ctx context.Context, filter SaleFilter) (*SaleStats, error)
}

type saleService struct {
	pool      *pgxpool.Pool
	inventory InventoryService
}

func NewSaleService(pool *pgxpool.Pool, inventory InventoryService) SaleService {
	return &saleService{pool: pool, inventory: inventory}
}

func newSaleNumber() string {
	return "SALE-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}

const saleColumns = `s.id, s.sale_number, s.sale_date, s.branch, s.customer_name,
	s.customer_phone, s.customer_email, s.cashier_id, COALESCE(u.username, ''),
	s.subtotal, s.discount, s.tax, s.total, s.payment_method, s.amount_paid,
	s.change, s.status, s.notes, s.created_at`

const saleJoins = " FROM sales s LEFT JOIN users u ON u.id = s.cashier_id"

func scanSale(row pgx.Row) (*Sale, error) {
	var sl Sale
	err := row.Scan(
		&sl.ID, &sl.SaleNumber, &sl.SaleDate, &sl.Branch, &sl.CustomerName,
		&sl.CustomerPhone, &sl.CustomerEmail, &sl.CashierID, &sl.CashierName,
		&sl.Subtotal, &sl.Discount, &sl.Tax, &sl.Total, &sl.PaymentMethod, &sl.AmountPaid,
		&sl.Change, &sl.Status, &sl.Notes, &sl.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sl, nil
}

func (s *saleService) Create(ctx context.Context, input CreateSaleInput) (*Sale, error) {
	if !input.Branch.Valid() {
		return nil, InvalidArgumentf("unknown branch %q", input.Branch)
	}
	if input.CustomerName == "" {
		return nil, InvalidArgumentf("customer name is required")
	}
	if !input.PaymentMethod.Valid() {
		return nil, InvalidArgumentf("unknown payment method %q", input.PaymentMethod)
	}
	if len(input.Items) == 0 {
		return nil, InvalidArgumentf("sale must contain at least one item")
	}
	if input.Discount.IsNegative() {
		return nil, InvalidArgumentf("discount cannot be negative, got %s", input.Discount)
	}

	subtotal := decimal.Zero
	for _, line := range input.Items {
		if line.ItemType != ItemProduct && line.ItemType != ItemService {
			return nil, InvalidArgumentf("item type must be product or service, got %q", line.ItemType)
		}
		if line.Quantity <= 0 {
			return nil, InvalidArgumentf("item quantity must be positive, got %d", line.Quantity)
		}
		if line.UnitPrice.IsNegative() {
			return nil, InvalidArgumentf("unit price cannot be negative, got %s", line.UnitPrice)
		}
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	tax, total, change := SaleTotals(subtotal, input.Discount, input.AmountPaid)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	saleNumber := newSaleNumber()

	var saleID int
	err = tx.QueryRow(ctx, `
		INSERT INTO sales (sale_number, branch, customer_name, customer_phone, customer_email,
		                   cashier_id, subtotal, discount, tax, total, payment_method,
		                   amount_paid, change, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, 'completed', $14)
		RETURNING id
	`, saleNumber, input.Branch, input.CustomerName, input.CustomerPhone, input.CustomerEmail,
		input.CashierID, subtotal, input.Discount, tax, total, input.PaymentMethod,
		input.AmountPaid, change, input.Notes,
	).Scan(&saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert sale: %w", err)
	}

	for _, line := range input.Items {
		lineSubtotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))

		switch line.ItemType {
		case ItemProduct:
			var name string
			err = tx.QueryRow(ctx,
				"SELECT name FROM products WHERE id = $1", line.ProductID,
			).Scan(&name)
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, NotFoundf("product %d not found", line.ProductID)
			}
			if err != nil {
				return nil, fmt.Errorf("failed to fetch product %d: %w", line.ProductID, err)
			}

			if _, err = tx.Exec(ctx, `
				INSERT INTO sale_items (sale_id, item_type, product_id, item_name, quantity, unit_price, subtotal)
				VALUES ($1, 'product', $2, $3, $4, $5, $6)
			`, saleID, line.ProductID, name, line.Quantity, line.UnitPrice, lineSubtotal); err != nil {
				return nil, fmt.Errorf("failed to insert sale item: %w", err)
			}

			if _, err = s.inventory.DeductStockTx(ctx, tx, &input.CashierID, line.ProductID, line.Quantity,
				TxSale, fmt.Sprintf("Sold in sale %s", saleNumber)); err != nil {
				return nil, err
			}

		case ItemService:
			var name string
			err = tx.QueryRow(ctx,
				"SELECT service_name FROM services WHERE id = $1", line.ServiceID,
			).Scan(&name)
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, NotFoundf("service %d not found", line.ServiceID)
			}
			if err != nil {
				return nil, fmt.Errorf("failed to fetch service %d: %w", line.ServiceID, err)
			}

			if _, err = tx.Exec(ctx, `
				INSERT INTO sale_items (sale_id, item_type, service_id, item_name, quantity, unit_price, subtotal, service_size)
				VALUES ($1, 'service', $2, $3, $4, $5, $6, $7)
			`, saleID, line.ServiceID, name, line.Quantity, line.UnitPrice, lineSubtotal, line.ServiceSize); err != nil {
				return nil, fmt.Errorf("failed to insert sale item: %w", err)
			}
		}
	}

	sale, err := s.fetch(ctx, tx, saleID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit sale: %w", err)
	}
	return sale, nil
}

func (s *saleService) fetch(ctx context.Context, q querier, saleID int) (*Sale, error) {
	sale, err := scanSale(q.QueryRow(ctx,
		"SELECT "+saleColumns+saleJoins+" WHERE s.id = $1", saleID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, NotFoundf("sale %d not found", saleID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sale %d: %w", saleID, err)
	}
	if err := s.loadItems(ctx, q, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

func (s *saleService) loadItems(ctx context.Context, q querier, sale *Sale) error {
	rows, err := q.Query(ctx, `
		SELECT id, sale_id, item_type, product_id, service_id, item_name,
		       quantity, unit_price, subtotal, COALESCE(service_size, '')
		FROM sale_items
		WHERE sale_id = $1
		ORDER BY id
	`, sale.ID)
	if err != nil {
		return fmt.Errorf("failed to query items for sale %d: %w", sale.ID, err)
	}
	defer rows.Close()

	sale.Items = []SaleItem{}
	for rows.Next() {
		var item SaleItem
		if err := rows.Scan(&item.ID, &item.SaleID, &item.ItemType, &item.ProductID,
			&item.ServiceID, &item.ItemName, &item.Quantity, &item.UnitPrice,
			&item.Subtotal, &item.ServiceSize); err != nil {
			return fmt.Errorf("failed to scan sale item: %w", err)
		}
		sale.Items = append(sale.Items, item)
	}
	return rows.Err()
}

func (s *saleService) Get(ctx context.Context, saleID int) (*Sale, error) {
	return s.fetch(ctx, s.pool, saleID)
}

func saleFilterClause(filter SaleFilter, args *[]any) string {
	where := " WHERE 1=1"
	if filter.Branch != nil {
		*args = append(*args, *filter.Branch)
		where += fmt.Sprintf(" AND s.branch = $%d", len(*args))
	}
	if filter.Date != nil {
		*args = append(*args, *filter.Date)
		where += fmt.Sprintf(" AND s.sale_date::date = $%d::date", len(*args))
	}
	if filter.Status != nil {
		*args = append(*args, *filter.Status)
		where += fmt.Sprintf(" AND s.status = $%d", len(*args))
	}
	return where
}

func (s *saleService) List(ctx context.Context, filter SaleFilter) ([]Sale, error) {
	var args []any
	where := saleFilterClause(filter, &args)

	rows, err := s.pool.Query(ctx,
		"SELECT "+saleColumns+saleJoins+where+" ORDER BY s.sale_date DESC", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	var sales []Sale
	for rows.Next() {
		sl, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sales = append(sales, *sl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range sales {
		if err := s.loadItems(ctx, s.pool, &sales[i]); err != nil {
			return nil, err
		}
	}
	return sales, nil
}

func (s *saleService) Stats(ctx context.Context, filter SaleFilter) (*SaleStats, error) {
	completed := SaleCompleted
	filter.Status = &completed

	var args []any
	where := saleFilterClause(filter, &args)

	stats := &SaleStats{
		TotalRevenue:   decimal.Zero,
		TotalDiscount:  decimal.Zero,
		AvgTransaction: decimal.Zero,
		TopProducts:    []TopProduct{},
	}
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(s.total), 0), COALESCE(SUM(s.discount), 0)
		FROM sales s`+where, args...,
	).Scan(&stats.TotalSales, &stats.TotalRevenue, &stats.TotalDiscount)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sales: %w", err)
	}
	if stats.TotalSales > 0 {
		stats.AvgTransaction = stats.TotalRevenue.
			Div(decimal.NewFromInt(int64(stats.TotalSales))).Round(2)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT i.item_name, SUM(i.quantity), SUM(i.subtotal)
		FROM sale_items i
		JOIN sales s ON s.id = i.sale_id`+where+`
		  AND i.item_type = 'product'
		GROUP BY i.item_name
		ORDER BY SUM(i.subtotal) DESC
		LIMIT 5
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to rank products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tp TopProduct
		if err := rows.Scan(&tp.Name, &tp.Quantity, &tp.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan top product: %w", err)
		}
		stats.TopProducts = append(stats.TopProducts, tp)
	}
	return stats, rows.Err()
}
