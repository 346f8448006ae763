package core_test

import (
	"context"
	"testing"

	"petstore-backend/internal/core"

	"github.com/shopspring/decimal"
)

func TestSale_Create_DeductsStockAndComputesTotals(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()
	inventory := newTestInventory(pool)
	sales := core.NewSaleService(pool, inventory)
	cashier := createTestUser(t, pool, "admin")

	product := createTestProduct(t, inventory, 10)

	sale, err := sales.Create(ctx, core.CreateSaleInput{
		CashierID:     cashier.ID,
		Branch:        core.BranchMatina,
		CustomerName:  "Walk-in",
		PaymentMethod: core.PayCash,
		AmountPaid:    decimal.RequireFromString("700.00"),
		Items: []core.SaleLineInput{
			{
				ItemType:  core.ItemProduct,
				ProductID: product.ID,
				Quantity:  2,
				UnitPrice: decimal.RequireFromString("300.00"),
			},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// subtotal 600.00, VAT 72.00, total 672.00, change 28.00.
	if !sale.Subtotal.Equal(decimal.RequireFromString("600.00")) {
		t.Errorf("expected subtotal 600.00, got %s", sale.Subtotal)
	}
	if !sale.Tax.Equal(decimal.RequireFromString("72.00")) {
		t.Errorf("expected tax 72.00, got %s", sale.Tax)
	}
	if !sale.Total.Equal(decimal.RequireFromString("672.00")) {
		t.Errorf("expected total 672.00, got %s", sale.Total)
	}
	if !sale.Change.Equal(decimal.RequireFromString("28.00")) {
		t.Errorf("expected change 28.00, got %s", sale.Change)
	}
	if sale.Status != core.SaleCompleted {
		t.Errorf("expected completed, got %s", sale.Status)
	}

	// The counter sale hits the same ledger as everything else.
	after, err := inventory.GetProduct(ctx, product.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if after.Quantity != 8 {
		t.Errorf("expected quantity 8, got %d", after.Quantity)
	}
	saleType := core.TxSale
	history, err := inventory.History(ctx, core.HistoryFilter{
		ProductID:       &product.ID,
		TransactionType: &saleType,
	})
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 1 || history[0].QuantityChange != -2 {
		t.Fatalf("expected one sale row of -2, got %+v", history)
	}
}

func TestSale_Create_InsufficientStock(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()
	inventory := newTestInventory(pool)
	sales := core.NewSaleService(pool, inventory)
	cashier := createTestUser(t, pool, "admin")

	product := createTestProduct(t, inventory, 1)

	_, err := sales.Create(ctx, core.CreateSaleInput{
		CashierID:     cashier.ID,
		Branch:        core.BranchMatina,
		CustomerName:  "Walk-in",
		PaymentMethod: core.PayCash,
		AmountPaid:    decimal.RequireFromString("2000.00"),
		Items: []core.SaleLineInput{
			{
				ItemType:  core.ItemProduct,
				ProductID: product.ID,
				Quantity:  5,
				UnitPrice: decimal.RequireFromString("300.00"),
			},
		},
	})
	if !core.IsInsufficientStock(err) {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}

	after, _ := inventory.GetProduct(ctx, product.ID)
	if after.Quantity != 1 {
		t.Errorf("expected quantity to stay 1, got %d", after.Quantity)
	}
	list, err := sales.List(ctx, core.SaleFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected no sales, got %d", len(list))
	}
}

func TestSale_Stats(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()
	inventory := newTestInventory(pool)
	sales := core.NewSaleService(pool, inventory)
	cashier := createTestUser(t, pool, "admin")

	product := createTestProduct(t, inventory, 20)

	for i := 0; i < 2; i++ {
		if _, err := sales.Create(ctx, core.CreateSaleInput{
			CashierID:     cashier.ID,
			Branch:        core.BranchMatina,
			CustomerName:  "Walk-in",
			PaymentMethod: core.PayCash,
			AmountPaid:    decimal.RequireFromString("1000.00"),
			Items: []core.SaleLineInput{
				{
					ItemType:  core.ItemProduct,
					ProductID: product.ID,
					Quantity:  1,
					UnitPrice: decimal.RequireFromString("300.00"),
				},
			},
		}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	branch := core.BranchMatina
	stats, err := sales.Stats(ctx, core.SaleFilter{Branch: &branch})
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalSales != 2 {
		t.Errorf("expected 2 sales, got %d", stats.TotalSales)
	}
	// Each sale totals 336.00 (300.00 + 12% VAT).
	if !stats.TotalRevenue.Equal(decimal.RequireFromString("672.00")) {
		t.Errorf("expected revenue 672.00, got %s", stats.TotalRevenue)
	}
	if !stats.AvgTransaction.Equal(decimal.RequireFromString("336.00")) {
		t.Errorf("expected average 336.00, got %s", stats.AvgTransaction)
	}
	if len(stats.TopProducts) != 1 || stats.TopProducts[0].Quantity != 2 {
		t.Errorf("unexpected top products %+v", stats.TopProducts)
	}

	// The other branch has an empty dashboard.
	other := core.BranchToril
	empty, err := sales.Stats(ctx, core.SaleFilter{Branch: &other})
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if empty.TotalSales != 0 {
		t.Errorf("expected no sales at Toril, got %d", empty.TotalSales)
	}
}
