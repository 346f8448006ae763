package core_test

import (
	"context"
	"io"
	"log"
	"testing"

	"petstore-backend/internal/core"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

func newTestOrders(pool *pgxpool.Pool, inventory core.InventoryService) core.OrderService {
	return core.NewOrderService(pool, inventory, core.NopNotifier{}, log.New(io.Discard, "", 0))
}

func TestOrder_Create_DeductsStock(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()
	inventory := newTestInventory(pool)
	orders := newTestOrders(pool, inventory)
	customer := createTestUser(t, pool, "user")

	product := createTestProduct(t, inventory, 5)

	order, err := orders.Create(ctx, core.CreateOrderInput{
		UserID: customer.ID,
		Branch: core.BranchMatina,
		Items: []core.OrderLineInput{
			{ItemType: core.ItemProduct, ID: product.ID, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if order.Status != core.OrderPending {
		t.Errorf("expected new order pending, got %s", order.Status)
	}
	// Lines are priced at the current retail price: 2 x 300.00.
	if !order.TotalPrice.Equal(decimal.RequireFromString("600.00")) {
		t.Errorf("expected total 600.00, got %s", order.TotalPrice)
	}
	if len(order.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(order.Items))
	}

	after, err := inventory.GetProduct(ctx, product.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if after.Quantity != 3 {
		t.Errorf("expected quantity 3 after ordering 2, got %d", after.Quantity)
	}

	// The customer gets a pickup notification.
	notifications, err := orders.ListNotifications(ctx, customer.ID)
	if err != nil {
		t.Fatalf("ListNotifications: %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifications))
	}
}

func TestOrder_Create_InsufficientStockLeavesNothing(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()
	inventory := newTestInventory(pool)
	orders := newTestOrders(pool, inventory)
	customer := createTestUser(t, pool, "user")

	product := createTestProduct(t, inventory, 1)

	_, err := orders.Create(ctx, core.CreateOrderInput{
		UserID: customer.ID,
		Branch: core.BranchMatina,
		Items: []core.OrderLineInput{
			{ItemType: core.ItemProduct, ID: product.ID, Quantity: 3},
		},
	})
	if !core.IsInsufficientStock(err) {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}

	// The rolled-back order leaves stock untouched and no order behind.
	after, _ := inventory.GetProduct(ctx, product.ID)
	if after.Quantity != 1 {
		t.Errorf("expected quantity to stay 1, got %d", after.Quantity)
	}
	list, err := orders.ListForUser(ctx, customer.ID, core.OrderFilter{})
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected no orders, got %d", len(list))
	}
}

func TestOrder_CancelRestoresStock(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()
	inventory := newTestInventory(pool)
	orders := newTestOrders(pool, inventory)
	customer := createTestUser(t, pool, "user")

	product := createTestProduct(t, inventory, 5)

	order, err := orders.Create(ctx, core.CreateOrderInput{
		UserID: customer.ID,
		Branch: core.BranchMatina,
		Items: []core.OrderLineInput{
			{ItemType: core.ItemProduct, ID: product.ID, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	cancelled, err := orders.CancelOwn(ctx, customer.ID, order.ID)
	if err != nil {
		t.Fatalf("CancelOwn: %v", err)
	}
	if cancelled.Status != core.OrderCancelled {
		t.Errorf("expected cancelled, got %s", cancelled.Status)
	}

	after, _ := inventory.GetProduct(ctx, product.ID)
	if after.Quantity != 5 {
		t.Errorf("expected quantity restored to 5, got %d", after.Quantity)
	}

	// Ledger shows the full round trip: opening +5, sale -2, restock +2.
	history, err := inventory.History(ctx, core.HistoryFilter{ProductID: &product.ID})
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 history rows, got %d", len(history))
	}
	restock := history[0] // newest first
	if restock.TransactionType != core.TxRestock || restock.QuantityChange != 2 {
		t.Errorf("expected restock +2, got %s %d", restock.TransactionType, restock.QuantityChange)
	}

	// A second cancel is rejected.
	if _, err := orders.CancelOwn(ctx, customer.ID, order.ID); core.KindOf(err) != core.KindConflict {
		t.Errorf("expected conflict on double cancel, got %v", err)
	}
}

func TestOrder_UncancelRevalidatesStock(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()
	inventory := newTestInventory(pool)
	orders := newTestOrders(pool, inventory)
	customer := createTestUser(t, pool, "user")
	staff := createTestUser(t, pool, "admin")

	product := createTestProduct(t, inventory, 5)

	order, err := orders.Create(ctx, core.CreateOrderInput{
		UserID: customer.ID,
		Branch: core.BranchMatina,
		Items: []core.OrderLineInput{
			{ItemType: core.ItemProduct, ID: product.ID, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := orders.CancelOwn(ctx, customer.ID, order.ID); err != nil {
		t.Fatalf("CancelOwn: %v", err)
	}

	// Stock drains to 1 while the order sits cancelled.
	if _, _, err := inventory.AdjustStock(ctx, core.AdjustStockInput{
		ProductID:       product.ID,
		Operation:       core.OpDeduct,
		Quantity:        4,
		TransactionType: core.TxSale,
		UserID:          &staff.ID,
	}); err != nil {
		t.Fatalf("AdjustStock: %v", err)
	}

	// Un-cancelling needs 2 units but only 1 remains.
	_, err = orders.UpdateStatus(ctx, staff.ID, order.ID, core.OrderPending, nil)
	if !core.IsInsufficientStock(err) {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}

	after, _ := inventory.GetProduct(ctx, product.ID)
	if after.Quantity != 1 {
		t.Errorf("expected quantity to stay 1, got %d", after.Quantity)
	}
	unchanged, err := orders.Get(ctx, staff.ID, true, order.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if unchanged.Status != core.OrderCancelled {
		t.Errorf("expected order to stay cancelled, got %s", unchanged.Status)
	}

	// With enough stock back, the same transition succeeds.
	if _, _, err := inventory.AdjustStock(ctx, core.AdjustStockInput{
		ProductID:       product.ID,
		Operation:       core.OpAdd,
		Quantity:        10,
		TransactionType: core.TxRestock,
		UserID:          &staff.ID,
	}); err != nil {
		t.Fatalf("AdjustStock: %v", err)
	}
	reactivated, err := orders.UpdateStatus(ctx, staff.ID, order.ID, core.OrderPending, nil)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if reactivated.Status != core.OrderPending {
		t.Errorf("expected pending, got %s", reactivated.Status)
	}
	after, _ = inventory.GetProduct(ctx, product.ID)
	if after.Quantity != 9 {
		t.Errorf("expected quantity 9 after re-deduction, got %d", after.Quantity)
	}
}

func TestOrder_CompleteStampsAndClearsNotifications(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()
	inventory := newTestInventory(pool)
	orders := newTestOrders(pool, inventory)
	customer := createTestUser(t, pool, "user")
	staff := createTestUser(t, pool, "admin")

	product := createTestProduct(t, inventory, 5)

	order, err := orders.Create(ctx, core.CreateOrderInput{
		UserID: customer.ID,
		Branch: core.BranchMatina,
		Items: []core.OrderLineInput{
			{ItemType: core.ItemProduct, ID: product.ID, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	paid := decimal.RequireFromString("300.00")
	completed, err := orders.UpdateStatus(ctx, staff.ID, order.ID, core.OrderCompleted,
		&core.OrderPaymentInput{AmountPaid: &paid})
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if completed.Status != core.OrderCompleted {
		t.Errorf("expected completed, got %s", completed.Status)
	}
	if completed.CompletedAt == nil {
		t.Error("expected completed_at to be stamped")
	}
	if !completed.AmountPaid.Equal(paid) {
		t.Errorf("expected amount paid 300.00, got %v", completed.AmountPaid)
	}

	// Completing the order retires its pickup notification.
	notifications, err := orders.ListNotifications(ctx, customer.ID)
	if err != nil {
		t.Fatalf("ListNotifications: %v", err)
	}
	if len(notifications) != 0 {
		t.Errorf("expected no unread notifications, got %d", len(notifications))
	}

	// Feedback opens up once completed; duplicates conflict.
	if _, err := orders.CreatePurchaseFeedback(ctx, customer.ID, order.ID, 5, "smooth pickup"); err != nil {
		t.Fatalf("CreatePurchaseFeedback: %v", err)
	}
	if _, err := orders.CreatePurchaseFeedback(ctx, customer.ID, order.ID, 4, "again"); core.KindOf(err) != core.KindConflict {
		t.Errorf("expected conflict on duplicate feedback, got %v", err)
	}
}
