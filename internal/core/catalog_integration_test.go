package core_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fazalktk93/cda-store/internal/core"

	"github.com/shopspring/decimal"
)

func TestCatalog_CreateAndListVendors(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	catalog := core.NewCatalogService(pool)

	created, err := catalog.CreateVendor(ctx, core.VendorInput{
		Name:    "Acme Supplies",
		Contact: "0300-1234567",
		Address: "Blue Area, Islamabad",
	})
	if err != nil {
		t.Fatalf("CreateVendor failed: %v", err)
	}
	if created.ID == 0 {
		t.Error("Expected assigned vendor id")
	}
	if created.Contact == nil || *created.Contact != "0300-1234567" {
		t.Errorf("Expected contact to round-trip, got %v", created.Contact)
	}

	// Optional fields stay nil when omitted.
	bare, err := catalog.CreateVendor(ctx, core.VendorInput{Name: "Binder Bros"})
	if err != nil {
		t.Fatalf("CreateVendor without contact failed: %v", err)
	}
	if bare.Contact != nil || bare.Address != nil {
		t.Errorf("Expected nil contact/address, got %v / %v", bare.Contact, bare.Address)
	}

	vendors, err := catalog.GetVendors(ctx)
	if err != nil {
		t.Fatalf("GetVendors failed: %v", err)
	}
	if len(vendors) != 2 {
		t.Fatalf("Expected 2 vendors, got %d", len(vendors))
	}
	if vendors[0].Name != "Acme Supplies" || vendors[1].Name != "Binder Bros" {
		t.Errorf("Expected name-ordered listing, got %q, %q", vendors[0].Name, vendors[1].Name)
	}

	fetched, err := catalog.GetVendor(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetVendor failed: %v", err)
	}
	if fetched.Name != created.Name {
		t.Errorf("Expected %q, got %q", created.Name, fetched.Name)
	}
}

func TestCatalog_ValidationErrors(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	catalog := core.NewCatalogService(pool)

	if _, err := catalog.CreateVendor(ctx, core.VendorInput{}); !errors.Is(err, core.ErrValidation) {
		t.Errorf("Empty vendor name: expected ErrValidation, got %v", err)
	}
	if _, err := catalog.CreateStockCategory(ctx, ""); !errors.Is(err, core.ErrValidation) {
		t.Errorf("Empty category name: expected ErrValidation, got %v", err)
	}
	if _, err := catalog.CreateOffice(ctx, core.OfficeInput{}); !errors.Is(err, core.ErrValidation) {
		t.Errorf("Empty office name: expected ErrValidation, got %v", err)
	}

	cases := []struct {
		name  string
		input core.StockItemInput
		want  error
	}{
		{"empty name", core.StockItemInput{Unit: "pcs"}, core.ErrValidation},
		{"negative quantity", core.StockItemInput{Name: "Bolt", Quantity: -1}, core.ErrValidation},
		{"negative price", core.StockItemInput{Name: "Bolt", PurchasePrice: decimal.NewFromFloat(-2)}, core.ErrValidation},
	}
	for _, tc := range cases {
		if _, err := catalog.CreateStockItem(ctx, tc.input); !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestCatalog_StockItemReferenceChecks(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	catalog := core.NewCatalogService(pool)

	bogus := 99999
	_, err := catalog.CreateStockItem(ctx, core.StockItemInput{
		Name: "Bolt", Unit: "pcs", VendorID: &bogus,
	})
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Unknown vendor ref: expected ErrNotFound, got %v", err)
	}

	_, err = catalog.CreateStockItem(ctx, core.StockItemInput{
		Name: "Bolt", Unit: "pcs", CategoryID: &bogus,
	})
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Unknown category ref: expected ErrNotFound, got %v", err)
	}
}

func TestCatalog_StockItemOpeningBalance(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	catalog := core.NewCatalogService(pool)
	ledger := core.NewStockLedger(pool)

	category, err := catalog.CreateStockCategory(ctx, "Hardware")
	if err != nil {
		t.Fatalf("CreateStockCategory failed: %v", err)
	}

	item, err := catalog.CreateStockItem(ctx, core.StockItemInput{
		Name:          "Bolt",
		Unit:          "pcs",
		PurchasePrice: decimal.NewFromFloat(2.50),
		Quantity:      40,
		CategoryID:    &category.ID,
	})
	if err != nil {
		t.Fatalf("CreateStockItem failed: %v", err)
	}
	if item.Quantity != 40 {
		t.Errorf("Expected opening quantity 40, got %d", item.Quantity)
	}
	if !item.TotalPrice.Equal(decimal.NewFromFloat(100)) {
		t.Errorf("Expected derived total_price 100 (40 × 2.50), got %s", item.TotalPrice)
	}
	if item.CategoryID == nil || *item.CategoryID != category.ID {
		t.Errorf("Expected category id %d, got %v", category.ID, item.CategoryID)
	}

	// The opening balance is backed by an opening receipt, so the live ledger
	// aggregate matches the cached quantity from the start.
	if got := mustAvailable(t, ctx, ledger, item.ID); got != 40 {
		t.Fatalf("Expected available=40 from opening receipt, got %d", got)
	}
	var receiptCount int
	if err := pool.QueryRow(ctx,
		"SELECT count(*) FROM receipts WHERE stock_item_id = $1", item.ID,
	).Scan(&receiptCount); err != nil {
		t.Fatalf("Failed to count receipts: %v", err)
	}
	if receiptCount != 1 {
		t.Errorf("Expected 1 opening receipt, got %d", receiptCount)
	}

	// Seeded stock is issuable without any further receipt.
	if _, err := ledger.RecordIssue(ctx, core.IssueInput{
		StockItemID: item.ID, Quantity: 10,
	}); err != nil {
		t.Fatalf("RecordIssue against opening balance failed: %v", err)
	}
	if got := mustAvailable(t, ctx, ledger, item.ID); got != 30 {
		t.Errorf("Expected available=30 after issuing 10, got %d", got)
	}

	// A cache rebuild replays the ledger and preserves the opening balance.
	if _, err := ledger.RebuildQuantities(ctx); err != nil {
		t.Fatalf("RebuildQuantities failed: %v", err)
	}
	rebuilt, err := catalog.GetStockItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetStockItem failed: %v", err)
	}
	if rebuilt.Quantity != 30 {
		t.Errorf("Expected quantity=30 after rebuild, got %d", rebuilt.Quantity)
	}
	if !rebuilt.TotalPrice.Equal(decimal.NewFromFloat(75)) {
		t.Errorf("Expected total_price=75 (30 × 2.50) after rebuild, got %s", rebuilt.TotalPrice)
	}
}

func TestCatalog_NotFoundLookups(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	catalog := core.NewCatalogService(pool)

	if _, err := catalog.GetVendor(ctx, 99999); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("GetVendor: expected ErrNotFound, got %v", err)
	}
	if _, err := catalog.GetOffice(ctx, 99999); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("GetOffice: expected ErrNotFound, got %v", err)
	}
	if _, err := catalog.GetStockItem(ctx, 99999); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("GetStockItem: expected ErrNotFound, got %v", err)
	}
}
