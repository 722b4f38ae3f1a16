package app

import (
	"context"

	"github.com/fazalktk93/cda-store/internal/core"
)

// ApplicationService is the single interface presentation adapters call.
// It decouples the web layer from business logic; implementations contain
// no HTTP types and no display logic of any kind.
type ApplicationService interface {
	// ── Master data ───────────────────────────────────────────────────────────

	// CreateVendor creates a new vendor record.
	CreateVendor(ctx context.Context, req CreateVendorRequest) (*core.Vendor, error)

	// ListVendors returns all vendors, ordered by name.
	ListVendors(ctx context.Context) ([]core.Vendor, error)

	// GetVendor returns a vendor by id.
	GetVendor(ctx context.Context, id int) (*core.Vendor, error)

	// CreateStockCategory creates a category with a unique name.
	CreateStockCategory(ctx context.Context, name string) (*core.StockCategory, error)

	// ListStockCategories returns all categories, ordered by name.
	ListStockCategories(ctx context.Context) ([]core.StockCategory, error)

	// CreateOffice creates an office that stock can be issued to.
	CreateOffice(ctx context.Context, req CreateOfficeRequest) (*core.Office, error)

	// ListOffices returns all offices.
	ListOffices(ctx context.Context) ([]core.Office, error)

	// CreateStockItem creates a stock item, optionally with an opening quantity.
	CreateStockItem(ctx context.Context, req CreateStockItemRequest) (*core.StockItem, error)

	// ListStockItems returns all stock items with their cached quantities.
	ListStockItems(ctx context.Context) ([]core.StockItem, error)

	// GetStockItem returns a stock item by id.
	GetStockItem(ctx context.Context, id int) (*core.StockItem, error)

	// ── Ledger ────────────────────────────────────────────────────────────────

	// RecordReceipt appends a receipt and increases the item's quantity.
	RecordReceipt(ctx context.Context, req RecordReceiptRequest) (*core.Receipt, error)

	// RecordIssue appends an issue after an availability check against the
	// live ledger. Fails with core.ErrInsufficientStock on oversell.
	RecordIssue(ctx context.Context, req RecordIssueRequest) (*core.Issue, error)

	// AvailableQuantity returns the item's live ledger balance.
	AvailableQuantity(ctx context.Context, stockItemID int) (*AvailabilityResult, error)

	// ── Reports ───────────────────────────────────────────────────────────────

	// VoucherSummary groups receipts by (voucher, item) with per-line totals.
	VoucherSummary(ctx context.Context, f core.VoucherFilter) ([]core.VoucherRow, error)

	// IssuesReport groups issues by (date, office, item).
	IssuesReport(ctx context.Context, f core.IssueFilter) ([]core.IssueRow, error)

	// VendorVouchers aggregates per-voucher totals for one vendor.
	VendorVouchers(ctx context.Context, vendorID int) ([]core.VendorVoucherRow, error)

	// BuildReportRows flattens receipts and issues into export rows.
	BuildReportRows(ctx context.Context, f core.ReportFilter) ([]core.ReportRow, error)
}
