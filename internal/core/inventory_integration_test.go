package core_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"petstore-backend/internal/core"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	_ = godotenv.Load("../../.env")

	// Use a dedicated TEST database to avoid wiping the live app database.
	// Set TEST_DATABASE_URL in your .env or environment to run integration tests.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set — skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	// Clean test DB; category_markups keeps its migration seed.
	_, err = pool.Exec(ctx, `
		TRUNCATE TABLE sale_items, sales,
			product_feedback, purchase_feedback, notifications, order_items, orders,
			appointment_feedback, appointment_addons, appointments, services,
			product_history, products, item_number_sequences, suppliers,
			pet_profiles, login_activities, users
		RESTART IDENTITY CASCADE;
	`)
	if err != nil {
		t.Fatalf("Failed to clean test database: %v", err)
	}

	return pool
}

var testUserSeq int

func createTestUser(t *testing.T, pool *pgxpool.Pool, role string) *core.User {
	t.Helper()
	testUserSeq++
	users := core.NewUserService(pool)
	user, err := users.Register(context.Background(), core.RegisterInput{
		Username:  fmt.Sprintf("test_%s_%d", role, testUserSeq),
		Email:     fmt.Sprintf("test%d@example.com", testUserSeq),
		FirstName: "Test",
		LastName:  "User",
		Password:  "correct horse battery",
		Role:      role,
		Location:  core.BranchMatina,
	})
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func newTestInventory(pool *pgxpool.Pool) core.InventoryService {
	return core.NewInventoryService(pool, core.NewPricingEngine(pool))
}

func createTestProduct(t *testing.T, inventory core.InventoryService, quantity int) *core.Product {
	t.Helper()
	product, err := inventory.CreateProduct(context.Background(), core.ProductInput{
		Name:         "Chonky Kibble 5kg",
		Category:     core.CategoryPetFood,
		Supplier:     "Davao Pet Supply Co",
		UnitCost:     decimal.RequireFromString("250.00"),
		Quantity:     quantity,
		ReorderLevel: 3,
		Branch:       core.BranchMatina,
	})
	if err != nil {
		t.Fatalf("Failed to create test product: %v", err)
	}
	return product
}

func TestInventory_CreateProduct(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()
	inventory := newTestInventory(pool)

	product := createTestProduct(t, inventory, 10)

	if product.ItemNumber != 1 {
		t.Errorf("expected item number 1, got %d", product.ItemNumber)
	}
	if product.FormattedID != "M-A-001" {
		t.Errorf("expected formatted ID M-A-001, got %s", product.FormattedID)
	}
	// Seeded markup is 1.20: 250.00 * 1.20 = 300.00.
	if !product.RetailPrice.Equal(decimal.RequireFromString("300.00")) {
		t.Errorf("expected retail price 300.00, got %s", product.RetailPrice)
	}
	if product.Remarks != core.RemarksInStock {
		t.Errorf("expected remarks %q, got %q", core.RemarksInStock, product.Remarks)
	}

	// A non-zero opening quantity writes an addition ledger row.
	history, err := inventory.History(ctx, core.HistoryFilter{ProductID: &product.ID})
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 history row, got %d", len(history))
	}
	if history[0].TransactionType != core.TxAddition || history[0].QuantityChange != 10 {
		t.Errorf("unexpected opening row: %s %d", history[0].TransactionType, history[0].QuantityChange)
	}

	// Same branch and category take the next number; the other branch starts
	// its own sequence.
	second, err := inventory.CreateProduct(ctx, core.ProductInput{
		Name:     "Chonky Kibble 10kg",
		Category: core.CategoryPetFood,
		UnitCost: decimal.RequireFromString("450.00"),
		Branch:   core.BranchMatina,
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if second.ItemNumber != 2 || second.FormattedID != "M-A-002" {
		t.Errorf("expected M-A-002, got %s", second.FormattedID)
	}
	if second.Remarks != core.RemarksOutOfStock {
		t.Errorf("expected zero-quantity product to be %q, got %q", core.RemarksOutOfStock, second.Remarks)
	}

	toril, err := inventory.CreateProduct(ctx, core.ProductInput{
		Name:     "Chonky Kibble 5kg",
		Category: core.CategoryPetFood,
		UnitCost: decimal.RequireFromString("250.00"),
		Branch:   core.BranchToril,
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if toril.FormattedID != "T-A-001" {
		t.Errorf("expected T-A-001, got %s", toril.FormattedID)
	}
}

func TestInventory_AdjustStock_LedgerReconstruction(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()
	inventory := newTestInventory(pool)
	staff := createTestUser(t, pool, "admin")

	product := createTestProduct(t, inventory, 10)

	steps := []core.AdjustStockInput{
		{ProductID: product.ID, Operation: core.OpDeduct, Quantity: 4, TransactionType: core.TxSale, UserID: &staff.ID},
		{ProductID: product.ID, Operation: core.OpAdd, Quantity: 12, TransactionType: core.TxRestock, UserID: &staff.ID},
		{ProductID: product.ID, Operation: core.OpDeduct, Quantity: 2, TransactionType: core.TxDamaged, Reason: "crushed in transit", UserID: &staff.ID},
	}
	var updated *core.Product
	for _, step := range steps {
		var err error
		updated, _, err = inventory.AdjustStock(ctx, step)
		if err != nil {
			t.Fatalf("AdjustStock(%s %d): %v", step.Operation, step.Quantity, err)
		}
	}

	if updated.Quantity != 16 {
		t.Errorf("expected quantity 16, got %d", updated.Quantity)
	}

	// The ledger reconstructs the balance: opening row plus three adjustments.
	history, err := inventory.History(ctx, core.HistoryFilter{ProductID: &product.ID})
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 4 {
		t.Fatalf("expected 4 history rows, got %d", len(history))
	}
	sum := 0
	for _, h := range history {
		sum += h.QuantityChange
		if h.NewQuantity != h.OldQuantity+h.QuantityChange {
			t.Errorf("row %d breaks the ledger invariant: %d != %d + %d",
				h.ID, h.NewQuantity, h.OldQuantity, h.QuantityChange)
		}
	}
	if sum != updated.Quantity {
		t.Errorf("ledger sum %d does not match quantity %d", sum, updated.Quantity)
	}
}

func TestInventory_AdjustStock_InsufficientStock(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()
	inventory := newTestInventory(pool)

	product := createTestProduct(t, inventory, 3)

	_, _, err := inventory.AdjustStock(ctx, core.AdjustStockInput{
		ProductID:       product.ID,
		Operation:       core.OpDeduct,
		Quantity:        5,
		TransactionType: core.TxSale,
	})
	if !core.IsInsufficientStock(err) {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}

	// The failed deduction leaves no trace: quantity unchanged, no ledger row.
	after, err := inventory.GetProduct(ctx, product.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if after.Quantity != 3 {
		t.Errorf("expected quantity to stay 3, got %d", after.Quantity)
	}
	history, err := inventory.History(ctx, core.HistoryFilter{ProductID: &product.ID})
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("expected only the opening row, got %d rows", len(history))
	}
}

func TestInventory_Restock_UpdatesCostAndRetail(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()
	inventory := newTestInventory(pool)
	staff := createTestUser(t, pool, "admin")

	product := createTestProduct(t, inventory, 2)

	newCost := decimal.RequireFromString("300.00")
	updated, entry, err := inventory.Restock(ctx, core.RestockInput{
		ProductID: product.ID,
		Quantity:  20,
		Supplier:  "New Wholesale Partner",
		UnitCost:  &newCost,
		UserID:    &staff.ID,
	})
	if err != nil {
		t.Fatalf("Restock: %v", err)
	}

	if updated.Quantity != 22 {
		t.Errorf("expected quantity 22, got %d", updated.Quantity)
	}
	if updated.Supplier != "New Wholesale Partner" {
		t.Errorf("expected supplier update, got %q", updated.Supplier)
	}
	// Retail price follows the new unit cost: 300.00 * 1.20.
	if !updated.RetailPrice.Equal(decimal.RequireFromString("360.00")) {
		t.Errorf("expected retail price 360.00, got %s", updated.RetailPrice)
	}
	if entry.TransactionType != core.TxRestock || entry.QuantityChange != 20 {
		t.Errorf("unexpected ledger row: %s %d", entry.TransactionType, entry.QuantityChange)
	}
	if !entry.TotalCost.Equal(decimal.RequireFromString("6000.00")) {
		t.Errorf("expected total cost 6000.00, got %s", entry.TotalCost)
	}
}
