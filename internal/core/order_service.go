package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// OrderService owns pickup orders and their status state machine. Every
// status change that affects stock runs the ledger reconciliation in the same
// transaction as the status write.
type OrderService interface {
	Create(ctx context.Context, input CreateOrderInput) (*Order, error)
	Get(ctx context.Context, userID int, isStaff bool, orderID int) (*Order, error)
	ListForUser(ctx context.Context, userID int, filter OrderFilter) ([]Order, error)
	ListAll(ctx context.Context, filter OrderFilter) ([]Order, error)

	// CancelOwn lets a customer cancel their own pending order; stock is
	// restored through the ledger.
	CancelOwn(ctx context.Context, userID, orderID int) (*Order, error)
	// UpdateStatus is the staff transition. Entering cancelled restores
	// stock; leaving cancelled to pending or completed re-validates and
	// re-deducts; entering completed stamps completion and marks the
	// order's notifications read.
	UpdateStatus(ctx context.Context, staffUserID, orderID int, status OrderStatus, payment *OrderPaymentInput) (*Order, error)

	ListNotifications(ctx context.Context, userID int) ([]Notification, error)
	MarkNotificationRead(ctx context.Context, userID, notificationID int) error

	CreatePurchaseFeedback(ctx context.Context, userID, orderID, rating int, comment string) (*PurchaseFeedback, error)
	ListPurchaseFeedback(ctx context.Context) ([]PurchaseFeedback, error)
	CreateProductFeedback(ctx context.Context, userID, orderID, productID, rating int, comment string) (*ProductFeedback, error)
	ListProductFeedback(ctx context.Context, productID int) ([]ProductFeedback, error)
	ProductRatings(ctx context.Context) (map[int]ProductRating, error)
}

type orderService struct {
	pool      *pgxpool.Pool
	inventory InventoryService
	notifier  Notifier
	logger    *log.Logger
}

func NewOrderService(pool *pgxpool.Pool, inventory InventoryService, notifier Notifier, logger *log.Logger) OrderService {
	return &orderService{pool: pool, inventory: inventory, notifier: notifier, logger: logger}
}

// newOrderNumber mints a short human-quotable order reference.
func newOrderNumber() string {
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}

const orderColumns = `o.id, o.order_number, o.user_id, u.username, o.branch, o.status,
	o.total_price, o.amount_paid, o.change, o.notes, o.created_at, o.completed_at`

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.Username, &o.Branch, &o.Status,
		&o.TotalPrice, &o.AmountPaid, &o.Change, &o.Notes, &o.CreatedAt, &o.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *orderService) Create(ctx context.Context, input CreateOrderInput) (*Order, error) {
	if !input.Branch.Valid() {
		return nil, InvalidArgumentf("unknown branch %q", input.Branch)
	}
	if len(input.Items) == 0 {
		return nil, InvalidArgumentf("order must contain at least one item")
	}
	for _, line := range input.Items {
		if line.ItemType != ItemProduct && line.ItemType != ItemService {
			return nil, InvalidArgumentf("item type must be product or service, got %q", line.ItemType)
		}
		if line.Quantity <= 0 {
			return nil, InvalidArgumentf("item quantity must be positive, got %d", line.Quantity)
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	orderNumber := newOrderNumber()

	amountPaid := decimal.Zero
	if input.AmountPaid != nil {
		amountPaid = *input.AmountPaid
	}
	change := decimal.Zero
	if input.Change != nil {
		change = *input.Change
	}

	var orderID int
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (order_number, user_id, branch, status, total_price, amount_paid, change, notes)
		VALUES ($1, $2, $3, 'pending', 0, $4, $5, $6)
		RETURNING id
	`, orderNumber, input.UserID, input.Branch, amountPaid, change, input.Notes).Scan(&orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	total := decimal.Zero
	for _, line := range input.Items {
		switch line.ItemType {
		case ItemProduct:
			var price decimal.Decimal
			err = tx.QueryRow(ctx,
				"SELECT retail_price FROM products WHERE id = $1", line.ID,
			).Scan(&price)
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, NotFoundf("product %d not found", line.ID)
			}
			if err != nil {
				return nil, fmt.Errorf("failed to price product %d: %w", line.ID, err)
			}

			if _, err = tx.Exec(ctx, `
				INSERT INTO order_items (order_id, item_type, product_id, quantity, price)
				VALUES ($1, 'product', $2, $3, $4)
			`, orderID, line.ID, line.Quantity, price); err != nil {
				return nil, fmt.Errorf("failed to insert order item: %w", err)
			}

			// Ledger deduction in the same tx: one history row per line,
			// InsufficientStock aborts the whole order.
			if _, err = s.inventory.DeductStockTx(ctx, tx, &input.UserID, line.ID, line.Quantity,
				TxSale, fmt.Sprintf("Sold in order %s", orderNumber)); err != nil {
				return nil, err
			}
			total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))

		case ItemService:
			var price decimal.Decimal
			err = tx.QueryRow(ctx,
				"SELECT base_price FROM services WHERE id = $1", line.ID,
			).Scan(&price)
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, NotFoundf("service %d not found", line.ID)
			}
			if err != nil {
				return nil, fmt.Errorf("failed to price service %d: %w", line.ID, err)
			}

			if _, err = tx.Exec(ctx, `
				INSERT INTO order_items (order_id, item_type, service_id, quantity, price)
				VALUES ($1, 'service', $2, $3, $4)
			`, orderID, line.ID, line.Quantity, price); err != nil {
				return nil, fmt.Errorf("failed to insert order item: %w", err)
			}
			total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}
	}

	if _, err = tx.Exec(ctx,
		"UPDATE orders SET total_price = $1 WHERE id = $2", total, orderID,
	); err != nil {
		return nil, fmt.Errorf("failed to set order total: %w", err)
	}

	if _, err = tx.Exec(ctx, `
		INSERT INTO notifications (user_id, order_id, message)
		VALUES ($1, $2, $3)
	`, input.UserID, orderID,
		fmt.Sprintf("Order #%s is ready to be picked up at %s branch.", orderNumber, input.Branch),
	); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	order, err := s.fetch(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	s.sendOrderEmail(ctx, order)
	return order, nil
}

// sendOrderEmail dispatches the pickup email outside the transaction.
// Failures are logged and swallowed; the order stands either way.
func (s *orderService) sendOrderEmail(ctx context.Context, order *Order) {
	var email, firstName string
	err := s.pool.QueryRow(ctx,
		"SELECT email, first_name FROM users WHERE id = $1", order.UserID,
	).Scan(&email, &firstName)
	if err != nil || email == "" {
		if err != nil {
			s.logger.Printf("order %s: failed to look up recipient: %v", order.OrderNumber, err)
		}
		return
	}
	name := firstName
	if name == "" {
		name = order.Username
	}
	if err := s.notifier.OrderReady(ctx, email, name, order); err != nil {
		s.logger.Printf("order %s: failed to send pickup email: %v", order.OrderNumber, err)
	}
}

func (s *orderService) fetch(ctx context.Context, q querier, orderID int) (*Order, error) {
	order, err := scanOrder(q.QueryRow(ctx,
		"SELECT "+orderColumns+" FROM orders o JOIN users u ON u.id = o.user_id WHERE o.id = $1",
		orderID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, NotFoundf("order %d not found", orderID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order %d: %w", orderID, err)
	}
	if err := s.loadItems(ctx, q, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) loadItems(ctx context.Context, q querier, order *Order) error {
	rows, err := q.Query(ctx, `
		SELECT i.id, i.order_id, i.item_type, i.product_id, i.service_id,
		       COALESCE(p.name, sv.service_name, ''), i.quantity, i.price
		FROM order_items i
		LEFT JOIN products p ON p.id = i.product_id
		LEFT JOIN services sv ON sv.id = i.service_id
		WHERE i.order_id = $1
		ORDER BY i.id
	`, order.ID)
	if err != nil {
		return fmt.Errorf("failed to query items for order %d: %w", order.ID, err)
	}
	defer rows.Close()

	order.Items = []OrderItem{}
	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ItemType, &item.ProductID,
			&item.ServiceID, &item.Name, &item.Quantity, &item.Price); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}
	return rows.Err()
}

func (s *orderService) Get(ctx context.Context, userID int, isStaff bool, orderID int) (*Order, error) {
	order, err := s.fetch(ctx, s.pool, orderID)
	if err != nil {
		return nil, err
	}
	if !isStaff && order.UserID != userID {
		return nil, NotFoundf("order %d not found", orderID)
	}
	return order, nil
}

func (s *orderService) list(ctx context.Context, filter OrderFilter) ([]Order, error) {
	query := "SELECT " + orderColumns + " FROM orders o JOIN users u ON u.id = o.user_id WHERE 1=1"
	var args []any
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		query += fmt.Sprintf(" AND o.user_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND o.status = $%d", len(args))
	}
	if filter.Branch != nil {
		args = append(args, *filter.Branch)
		query += fmt.Sprintf(" AND o.branch = $%d", len(args))
	}
	query += " ORDER BY o.created_at DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range orders {
		if err := s.loadItems(ctx, s.pool, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (s *orderService) ListForUser(ctx context.Context, userID int, filter OrderFilter) ([]Order, error) {
	filter.UserID = &userID
	return s.list(ctx, filter)
}

func (s *orderService) ListAll(ctx context.Context, filter OrderFilter) ([]Order, error) {
	return s.list(ctx, filter)
}

// productLine is one product line loaded for stock reconciliation.
type productLine struct {
	productID int
	quantity  int
}

func (s *orderService) productLines(ctx context.Context, tx pgx.Tx, orderID int) ([]productLine, error) {
	rows, err := tx.Query(ctx, `
		SELECT product_id, quantity FROM order_items
		WHERE order_id = $1 AND item_type = 'product' AND product_id IS NOT NULL
		ORDER BY id
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query product lines for order %d: %w", orderID, err)
	}
	defer rows.Close()

	var lines []productLine
	for rows.Next() {
		var l productLine
		if err := rows.Scan(&l.productID, &l.quantity); err != nil {
			return nil, fmt.Errorf("failed to scan product line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (s *orderService) CancelOwn(ctx context.Context, userID, orderID int) (*Order, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var (
		status      OrderStatus
		orderNumber string
	)
	err = tx.QueryRow(ctx,
		"SELECT status, order_number FROM orders WHERE id = $1 AND user_id = $2 FOR UPDATE",
		orderID, userID,
	).Scan(&status, &orderNumber)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, NotFoundf("order %d not found", orderID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock order %d: %w", orderID, err)
	}
	if status != OrderPending {
		return nil, Conflictf("only pending orders can be cancelled, current status is %q", status)
	}

	if err := s.restoreStock(ctx, tx, &userID, orderID, orderNumber); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx,
		"UPDATE orders SET status = 'cancelled' WHERE id = $1", orderID,
	); err != nil {
		return nil, fmt.Errorf("failed to cancel order %d: %w", orderID, err)
	}

	order, err := s.fetch(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit cancellation: %w", err)
	}
	return order, nil
}

func (s *orderService) restoreStock(ctx context.Context, tx pgx.Tx, userID *int, orderID int, orderNumber string) error {
	lines, err := s.productLines(ctx, tx, orderID)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := s.inventory.RestoreStockTx(ctx, tx, userID, line.productID, line.quantity,
			fmt.Sprintf("Order %s cancelled - stock restored", orderNumber)); err != nil {
			return err
		}
	}
	return nil
}

func (s *orderService) redeductStock(ctx context.Context, tx pgx.Tx, userID *int, orderID int, orderNumber string) error {
	lines, err := s.productLines(ctx, tx, orderID)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := s.inventory.DeductStockTx(ctx, tx, userID, line.productID, line.quantity,
			TxSale, fmt.Sprintf("Order %s un-cancelled - stock deducted", orderNumber)); err != nil {
			return err
		}
	}
	return nil
}

func (s *orderService) UpdateStatus(ctx context.Context, staffUserID, orderID int, newStatus OrderStatus, payment *OrderPaymentInput) (*Order, error) {
	if !newStatus.Valid() {
		return nil, InvalidArgumentf("unknown order status %q", newStatus)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var (
		oldStatus   OrderStatus
		orderNumber string
	)
	err = tx.QueryRow(ctx,
		"SELECT status, order_number FROM orders WHERE id = $1 FOR UPDATE", orderID,
	).Scan(&oldStatus, &orderNumber)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, NotFoundf("order %d not found", orderID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock order %d: %w", orderID, err)
	}

	switch {
	case newStatus == OrderCancelled && oldStatus != OrderCancelled:
		if err := s.restoreStock(ctx, tx, &staffUserID, orderID, orderNumber); err != nil {
			return nil, err
		}
	case oldStatus == OrderCancelled && (newStatus == OrderPending || newStatus == OrderCompleted):
		// Re-activation: every line must fit current stock or the whole
		// transition is rejected. The ledger deduction itself enforces this
		// line by line; the rollback on error discards any partial work.
		if err := s.redeductStock(ctx, tx, &staffUserID, orderID, orderNumber); err != nil {
			return nil, err
		}
	}

	if newStatus == OrderCompleted {
		if _, err := tx.Exec(ctx,
			"UPDATE orders SET status = $1, completed_at = NOW() WHERE id = $2",
			newStatus, orderID,
		); err != nil {
			return nil, fmt.Errorf("failed to update order %d status: %w", orderID, err)
		}
		if _, err := tx.Exec(ctx,
			"UPDATE notifications SET is_read = true WHERE order_id = $1 AND is_read = false",
			orderID,
		); err != nil {
			return nil, fmt.Errorf("failed to mark notifications read for order %d: %w", orderID, err)
		}
	} else {
		if _, err := tx.Exec(ctx,
			"UPDATE orders SET status = $1 WHERE id = $2", newStatus, orderID,
		); err != nil {
			return nil, fmt.Errorf("failed to update order %d status: %w", orderID, err)
		}
	}

	if payment != nil {
		if _, err := tx.Exec(ctx, `
			UPDATE orders
			SET amount_paid = COALESCE($1, amount_paid),
			    change = COALESCE($2, change)
			WHERE id = $3
		`, payment.AmountPaid, payment.Change, orderID); err != nil {
			return nil, fmt.Errorf("failed to record payment on order %d: %w", orderID, err)
		}
	}

	order, err := s.fetch(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit status update: %w", err)
	}
	return order, nil
}

// ── Notifications ─────────────────────────────────────────────────────────────

func (s *orderService) ListNotifications(ctx context.Context, userID int) ([]Notification, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT n.id, n.user_id, n.order_id, n.message, n.is_read, n.created_at
		FROM notifications n
		JOIN orders o ON o.id = n.order_id
		WHERE n.user_id = $1
		  AND n.is_read = false
		  AND o.status IN ('pending', 'available_for_pickup')
		ORDER BY n.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.OrderID, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (s *orderService) MarkNotificationRead(ctx context.Context, userID, notificationID int) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2",
		notificationID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification %d read: %w", notificationID, err)
	}
	if tag.RowsAffected() == 0 {
		return NotFoundf("notification %d not found", notificationID)
	}
	return nil
}

// ── Feedback ──────────────────────────────────────────────────────────────────

func (s *orderService) requireCompletedOwnOrder(ctx context.Context, userID, orderID int) error {
	var status OrderStatus
	err := s.pool.QueryRow(ctx,
		"SELECT status FROM orders WHERE id = $1 AND user_id = $2", orderID, userID,
	).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return NotFoundf("order %d not found", orderID)
	}
	if err != nil {
		return fmt.Errorf("failed to fetch order %d: %w", orderID, err)
	}
	if status != OrderCompleted {
		return Conflictf("feedback is only allowed for completed orders, current status is %q", status)
	}
	return nil
}

func (s *orderService) CreatePurchaseFeedback(ctx context.Context, userID, orderID, rating int, comment string) (*PurchaseFeedback, error) {
	if rating < 1 || rating > 5 {
		return nil, InvalidArgumentf("rating must be between 1 and 5, got %d", rating)
	}
	if err := s.requireCompletedOwnOrder(ctx, userID, orderID); err != nil {
		return nil, err
	}

	var f PurchaseFeedback
	err := s.pool.QueryRow(ctx, `
		INSERT INTO purchase_feedback (order_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, order_id, user_id, rating, comment, created_at
	`, orderID, userID, rating, comment).Scan(
		&f.ID, &f.OrderID, &f.UserID, &f.Rating, &f.Comment, &f.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, Conflictf("order %d already has feedback", orderID)
		}
		return nil, fmt.Errorf("failed to create purchase feedback: %w", err)
	}
	return &f, nil
}

func (s *orderService) ListPurchaseFeedback(ctx context.Context) ([]PurchaseFeedback, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT f.id, f.order_id, f.user_id, u.username, f.rating, f.comment, f.created_at
		FROM purchase_feedback f
		JOIN users u ON u.id = f.user_id
		ORDER BY f.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchase feedback: %w", err)
	}
	defer rows.Close()

	var feedback []PurchaseFeedback
	for rows.Next() {
		var f PurchaseFeedback
		if err := rows.Scan(&f.ID, &f.OrderID, &f.UserID, &f.Username, &f.Rating, &f.Comment, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan purchase feedback: %w", err)
		}
		feedback = append(feedback, f)
	}
	return feedback, rows.Err()
}

func (s *orderService) CreateProductFeedback(ctx context.Context, userID, orderID, productID, rating int, comment string) (*ProductFeedback, error) {
	if rating < 1 || rating > 5 {
		return nil, InvalidArgumentf("rating must be between 1 and 5, got %d", rating)
	}
	if err := s.requireCompletedOwnOrder(ctx, userID, orderID); err != nil {
		return nil, err
	}

	var inOrder bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM order_items
			WHERE order_id = $1 AND product_id = $2 AND item_type = 'product'
		)
	`, orderID, productID).Scan(&inOrder)
	if err != nil {
		return nil, fmt.Errorf("failed to check order contents: %w", err)
	}
	if !inOrder {
		return nil, InvalidArgumentf("product %d was not in order %d", productID, orderID)
	}

	var f ProductFeedback
	err = s.pool.QueryRow(ctx, `
		INSERT INTO product_feedback (order_id, product_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, order_id, product_id, user_id, rating, comment, created_at
	`, orderID, productID, userID, rating, comment).Scan(
		&f.ID, &f.OrderID, &f.ProductID, &f.UserID, &f.Rating, &f.Comment, &f.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, Conflictf("product %d in order %d already has feedback", productID, orderID)
		}
		return nil, fmt.Errorf("failed to create product feedback: %w", err)
	}
	return &f, nil
}

func (s *orderService) ListProductFeedback(ctx context.Context, productID int) ([]ProductFeedback, error) {
	var exists bool
	if err := s.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)", productID,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check product %d: %w", productID, err)
	}
	if !exists {
		return nil, NotFoundf("product %d not found", productID)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT f.id, f.order_id, f.product_id, f.user_id, u.username, f.rating, f.comment, f.created_at
		FROM product_feedback f
		JOIN users u ON u.id = f.user_id
		WHERE f.product_id = $1
		ORDER BY f.created_at DESC
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query product feedback: %w", err)
	}
	defer rows.Close()

	var feedback []ProductFeedback
	for rows.Next() {
		var f ProductFeedback
		if err := rows.Scan(&f.ID, &f.OrderID, &f.ProductID, &f.UserID, &f.Username,
			&f.Rating, &f.Comment, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product feedback: %w", err)
		}
		feedback = append(feedback, f)
	}
	return feedback, rows.Err()
}

func (s *orderService) ProductRatings(ctx context.Context) (map[int]ProductRating, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT product_id, ROUND(AVG(rating)::numeric, 1), COUNT(*)
		FROM product_feedback
		GROUP BY product_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query product ratings: %w", err)
	}
	defer rows.Close()

	ratings := make(map[int]ProductRating)
	for rows.Next() {
		var r ProductRating
		if err := rows.Scan(&r.ProductID, &r.AverageRating, &r.ReviewCount); err != nil {
			return nil, fmt.Errorf("failed to scan product rating: %w", err)
		}
		ratings[r.ProductID] = r
	}
	return ratings, rows.Err()
}
