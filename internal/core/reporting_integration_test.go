package core_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fazalktk93/cda-store/internal/core"

	"github.com/shopspring/decimal"
)

// receiptRow is shorthand seed data for reporting tests.
type receiptRow struct {
	itemID  int
	qty     int64
	price   float64
	date    string
	voucher string
}

func seedReceipts(t *testing.T, ctx context.Context, ledger core.StockLedger, rows []receiptRow) {
	t.Helper()
	for _, r := range rows {
		if _, err := ledger.RecordReceipt(ctx, core.ReceiptInput{
			StockItemID:   r.itemID,
			Quantity:      r.qty,
			UnitPrice:     decimal.NewFromFloat(r.price),
			Date:          r.date,
			VoucherNumber: r.voucher,
		}); err != nil {
			t.Fatalf("Seed receipt failed: %v", err)
		}
	}
}

func TestReporting_VoucherSummary_PerLineSums(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	catalog := core.NewCatalogService(pool)
	ledger := core.NewStockLedger(pool)
	reporting := core.NewReportingService(pool)
	vendor, item := seedItem(t, ctx, catalog, "Bolt")

	// Mixed unit prices inside one voucher: the total must be the per-line sum
	// (100×2.00 + 50×2.10 = 305.00), not quantity × an averaged price.
	seedReceipts(t, ctx, ledger, []receiptRow{
		{item.ID, 100, 2.00, "2026-01-05", "V1"},
		{item.ID, 50, 2.10, "2026-01-05", "V1"},
	})

	rows, err := reporting.VoucherSummary(ctx, core.VoucherFilter{})
	if err != nil {
		t.Fatalf("VoucherSummary failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Expected 1 grouped row, got %d", len(rows))
	}
	got := rows[0]
	if got.VoucherNumber != "V1" || got.ItemName != "Bolt" {
		t.Errorf("Unexpected group key: %s / %s", got.VoucherNumber, got.ItemName)
	}
	if got.VendorName != vendor.Name {
		t.Errorf("Expected vendor %q, got %q", vendor.Name, got.VendorName)
	}
	if got.TotalQuantity != 150 {
		t.Errorf("Expected total_quantity=150, got %d", got.TotalQuantity)
	}
	if !got.TotalPrice.Equal(decimal.NewFromFloat(305.00)) {
		t.Errorf("Expected total_price=305.00 (per-line sum), got %s", got.TotalPrice)
	}

	// Idempotent: re-running over the same ledger state yields the same totals.
	again, err := reporting.VoucherSummary(ctx, core.VoucherFilter{})
	if err != nil {
		t.Fatalf("Second VoucherSummary failed: %v", err)
	}
	if len(again) != 1 || !again[0].TotalPrice.Equal(got.TotalPrice) || again[0].TotalQuantity != got.TotalQuantity {
		t.Errorf("VoucherSummary not stable across runs: %+v vs %+v", again, rows)
	}
}

func TestReporting_VoucherSummary_Filters(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	catalog := core.NewCatalogService(pool)
	ledger := core.NewStockLedger(pool)
	reporting := core.NewReportingService(pool)

	vendorA, boltItem := seedItem(t, ctx, catalog, "Bolt")
	vendorB, err := catalog.CreateVendor(ctx, core.VendorInput{Name: "Binder Bros"})
	if err != nil {
		t.Fatalf("CreateVendor failed: %v", err)
	}
	nutItem, err := catalog.CreateStockItem(ctx, core.StockItemInput{
		Name: "Nut", Unit: "pcs", PurchasePrice: decimal.NewFromFloat(0.50), VendorID: &vendorB.ID,
	})
	if err != nil {
		t.Fatalf("CreateStockItem failed: %v", err)
	}

	seedReceipts(t, ctx, ledger, []receiptRow{
		{boltItem.ID, 10, 2.00, "2026-01-05", "V1"},
		{nutItem.ID, 20, 0.50, "2026-02-10", "V2"},
	})

	// Vendor filter.
	rows, err := reporting.VoucherSummary(ctx, core.VoucherFilter{VendorID: &vendorA.ID})
	if err != nil {
		t.Fatalf("VoucherSummary vendor filter failed: %v", err)
	}
	if len(rows) != 1 || rows[0].ItemName != "Bolt" {
		t.Errorf("Vendor filter: expected only Bolt, got %+v", rows)
	}

	// Date range filter: only February.
	rows, err = reporting.VoucherSummary(ctx, core.VoucherFilter{FromDate: "2026-02-01", ToDate: "2026-02-28"})
	if err != nil {
		t.Fatalf("VoucherSummary date filter failed: %v", err)
	}
	if len(rows) != 1 || rows[0].VoucherNumber != "V2" {
		t.Errorf("Date filter: expected only V2, got %+v", rows)
	}

	// Substring item filter.
	rows, err = reporting.VoucherSummary(ctx, core.VoucherFilter{ItemName: "olt"})
	if err != nil {
		t.Fatalf("VoucherSummary item filter failed: %v", err)
	}
	if len(rows) != 1 || rows[0].ItemName != "Bolt" {
		t.Errorf("Item filter: expected only Bolt, got %+v", rows)
	}
}

func TestReporting_VendorVouchers(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	catalog := core.NewCatalogService(pool)
	ledger := core.NewStockLedger(pool)
	reporting := core.NewReportingService(pool)
	vendor, item := seedItem(t, ctx, catalog, "Bolt")

	// Two lines under one voucher: 10 @ 5.00 and 5 @ 5.00 → 15 items, 75.00.
	seedReceipts(t, ctx, ledger, []receiptRow{
		{item.ID, 10, 5.00, "2026-01-05", "V1"},
		{item.ID, 5, 5.00, "2026-01-05", "V1"},
	})

	rows, err := reporting.VendorVouchers(ctx, vendor.ID)
	if err != nil {
		t.Fatalf("VendorVouchers failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Expected 1 voucher row, got %d", len(rows))
	}
	if rows[0].TotalItems != 15 {
		t.Errorf("Expected total_items=15, got %d", rows[0].TotalItems)
	}
	if !rows[0].TotalPrice.Equal(decimal.NewFromFloat(75.00)) {
		t.Errorf("Expected total_price=75.00, got %s", rows[0].TotalPrice)
	}

	_, err = reporting.VendorVouchers(ctx, 99999)
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown vendor, got %v", err)
	}
}

func TestReporting_IssuesReport(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	catalog := core.NewCatalogService(pool)
	ledger := core.NewStockLedger(pool)
	reporting := core.NewReportingService(pool)
	_, item := seedItem(t, ctx, catalog, "Bolt")

	hq, err := catalog.CreateOffice(ctx, core.OfficeInput{Name: "HQ", Location: "Main St"})
	if err != nil {
		t.Fatalf("CreateOffice failed: %v", err)
	}
	branch, err := catalog.CreateOffice(ctx, core.OfficeInput{Name: "Branch", Location: "Side St"})
	if err != nil {
		t.Fatalf("CreateOffice failed: %v", err)
	}

	seedReceipts(t, ctx, ledger, []receiptRow{{item.ID, 100, 2.00, "2026-01-02", "V1"}})

	issues := []struct {
		qty    int64
		office *int
		date   string
	}{
		{5, &hq.ID, "2026-01-10"},
		{7, &hq.ID, "2026-01-10"}, // same (date, office, item) — must merge
		{3, &branch.ID, "2026-01-10"},
		{4, &hq.ID, "2026-01-11"},
	}
	for _, is := range issues {
		if _, err := ledger.RecordIssue(ctx, core.IssueInput{
			StockItemID: item.ID, Quantity: is.qty, OfficeID: is.office, Date: is.date,
		}); err != nil {
			t.Fatalf("Seed issue failed: %v", err)
		}
	}

	rows, err := reporting.IssuesReport(ctx, core.IssueFilter{})
	if err != nil {
		t.Fatalf("IssuesReport failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected 3 grouped rows, got %d: %+v", len(rows), rows)
	}
	// Ordered by date, office, item: Branch/10th, HQ/10th (merged 12), HQ/11th.
	if rows[0].Office != "Branch" || rows[0].TotalQuantity != 3 {
		t.Errorf("Row 0: expected Branch qty 3, got %+v", rows[0])
	}
	if rows[1].Office != "HQ" || rows[1].TotalQuantity != 12 {
		t.Errorf("Row 1: expected HQ qty 12 (5+7 merged), got %+v", rows[1])
	}
	if rows[2].Office != "HQ" || rows[2].Date != "2026-01-11" || rows[2].TotalQuantity != 4 {
		t.Errorf("Row 2: expected HQ 2026-01-11 qty 4, got %+v", rows[2])
	}

	// Office filter composes with the date range.
	rows, err = reporting.IssuesReport(ctx, core.IssueFilter{
		OfficeID: &hq.ID, FromDate: "2026-01-11", ToDate: "2026-01-11",
	})
	if err != nil {
		t.Fatalf("IssuesReport filtered failed: %v", err)
	}
	if len(rows) != 1 || rows[0].TotalQuantity != 4 {
		t.Errorf("Filtered report: expected single HQ row qty 4, got %+v", rows)
	}
}

func TestReporting_BuildReportRows(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	catalog := core.NewCatalogService(pool)
	ledger := core.NewStockLedger(pool)
	reporting := core.NewReportingService(pool)

	vendor, bolt := seedItem(t, ctx, catalog, "Bolt")
	anvil, err := catalog.CreateStockItem(ctx, core.StockItemInput{
		Name: "Anvil", Unit: "pcs", PurchasePrice: decimal.NewFromFloat(30), VendorID: &vendor.ID,
	})
	if err != nil {
		t.Fatalf("CreateStockItem failed: %v", err)
	}
	hq, err := catalog.CreateOffice(ctx, core.OfficeInput{Name: "HQ", Location: "Main St"})
	if err != nil {
		t.Fatalf("CreateOffice failed: %v", err)
	}

	seedReceipts(t, ctx, ledger, []receiptRow{
		{bolt.ID, 50, 2.00, "2026-01-05", "V1"},
		{anvil.ID, 2, 30.00, "2026-01-03", "V2"},
	})
	if _, err := ledger.RecordIssue(ctx, core.IssueInput{
		StockItemID: bolt.ID, Quantity: 10, OfficeID: &hq.ID, Date: "2026-01-08",
	}); err != nil {
		t.Fatalf("RecordIssue failed: %v", err)
	}

	rows, err := reporting.BuildReportRows(ctx, core.ReportFilter{
		IncludeReceipts: true,
		IncludeIssues:   true,
		ShowVendor:      true,
		ShowOffice:      true,
	})
	if err != nil {
		t.Fatalf("BuildReportRows failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d: %+v", len(rows), rows)
	}

	// Item order first (Anvil before Bolt), then chronological within item.
	if rows[0].ItemName != "Anvil" || rows[0].Origin != "Purchase" {
		t.Errorf("Row 0: expected Anvil purchase, got %+v", rows[0])
	}
	if rows[1].ItemName != "Bolt" || rows[1].Origin != "Purchase" || rows[1].Date != "2026-01-05" {
		t.Errorf("Row 1: expected Bolt purchase on 2026-01-05, got %+v", rows[1])
	}
	if rows[2].ItemName != "Bolt" || rows[2].Origin != "Issue" || rows[2].Quantity != 10 {
		t.Errorf("Row 2: expected Bolt issue of 10, got %+v", rows[2])
	}
	if rows[1].Vendor != vendor.Name {
		t.Errorf("Expected vendor column %q on purchase row, got %q", vendor.Name, rows[1].Vendor)
	}
	if rows[2].Office != "HQ" {
		t.Errorf("Expected office column HQ on issue row, got %q", rows[2].Office)
	}

	// With the flags off, annotation columns stay empty.
	plain, err := reporting.BuildReportRows(ctx, core.ReportFilter{
		IncludeReceipts: true,
		IncludeIssues:   true,
	})
	if err != nil {
		t.Fatalf("BuildReportRows without flags failed: %v", err)
	}
	for _, row := range plain {
		if row.Vendor != "" || row.Office != "" {
			t.Errorf("Expected empty vendor/office columns, got %+v", row)
		}
	}

	// Receipts-only side selection.
	purchases, err := reporting.BuildReportRows(ctx, core.ReportFilter{IncludeReceipts: true})
	if err != nil {
		t.Fatalf("BuildReportRows receipts-only failed: %v", err)
	}
	if len(purchases) != 2 {
		t.Errorf("Expected 2 purchase rows, got %d", len(purchases))
	}
	for _, row := range purchases {
		if row.Origin != "Purchase" {
			t.Errorf("Expected only Purchase rows, got %+v", row)
		}
	}
}
