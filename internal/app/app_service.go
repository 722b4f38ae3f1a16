package app

import (
	"context"
	"fmt"

	"github.com/fazalktk93/cda-store/internal/core"

	"github.com/shopspring/decimal"
)

type appService struct {
	catalog   core.CatalogService
	ledger    core.StockLedger
	reporting core.ReportingService
}

// NewAppService wires the domain services behind the ApplicationService facade.
func NewAppService(catalog core.CatalogService, ledger core.StockLedger, reporting core.ReportingService) ApplicationService {
	return &appService{catalog: catalog, ledger: ledger, reporting: reporting}
}

// parsePrice converts a decimal string from a request into a decimal.Decimal.
// Empty means zero; anything unparseable is a validation failure.
func parsePrice(field, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s %q is not a valid decimal: %w", field, s, core.ErrValidation)
	}
	return d, nil
}

// ── Master data ───────────────────────────────────────────────────────────────

func (s *appService) CreateVendor(ctx context.Context, req CreateVendorRequest) (*core.Vendor, error) {
	return s.catalog.CreateVendor(ctx, core.VendorInput{
		Name:    req.Name,
		Contact: req.Contact,
		Address: req.Address,
	})
}

func (s *appService) ListVendors(ctx context.Context) ([]core.Vendor, error) {
	return s.catalog.GetVendors(ctx)
}

func (s *appService) GetVendor(ctx context.Context, id int) (*core.Vendor, error) {
	return s.catalog.GetVendor(ctx, id)
}

func (s *appService) CreateStockCategory(ctx context.Context, name string) (*core.StockCategory, error) {
	return s.catalog.CreateStockCategory(ctx, name)
}

func (s *appService) ListStockCategories(ctx context.Context) ([]core.StockCategory, error) {
	return s.catalog.GetStockCategories(ctx)
}

func (s *appService) CreateOffice(ctx context.Context, req CreateOfficeRequest) (*core.Office, error) {
	return s.catalog.CreateOffice(ctx, core.OfficeInput{
		Name:     req.Name,
		Location: req.Location,
	})
}

func (s *appService) ListOffices(ctx context.Context) ([]core.Office, error) {
	return s.catalog.GetOffices(ctx)
}

func (s *appService) CreateStockItem(ctx context.Context, req CreateStockItemRequest) (*core.StockItem, error) {
	price, err := parsePrice("purchase_price", req.PurchasePrice)
	if err != nil {
		return nil, err
	}
	return s.catalog.CreateStockItem(ctx, core.StockItemInput{
		Name:          req.Name,
		Unit:          req.Unit,
		PurchasePrice: price,
		Quantity:      req.Quantity,
		VendorID:      req.VendorID,
		CategoryID:    req.CategoryID,
	})
}

func (s *appService) ListStockItems(ctx context.Context) ([]core.StockItem, error) {
	return s.catalog.GetStockItems(ctx)
}

func (s *appService) GetStockItem(ctx context.Context, id int) (*core.StockItem, error) {
	return s.catalog.GetStockItem(ctx, id)
}

// ── Ledger ────────────────────────────────────────────────────────────────────

func (s *appService) RecordReceipt(ctx context.Context, req RecordReceiptRequest) (*core.Receipt, error) {
	price, err := parsePrice("unit_price", req.UnitPrice)
	if err != nil {
		return nil, err
	}
	return s.ledger.RecordReceipt(ctx, core.ReceiptInput{
		StockItemID:   req.StockItemID,
		Quantity:      req.Quantity,
		UnitPrice:     price,
		Date:          req.Date,
		VoucherNumber: req.VoucherNumber,
	})
}

func (s *appService) RecordIssue(ctx context.Context, req RecordIssueRequest) (*core.Issue, error) {
	return s.ledger.RecordIssue(ctx, core.IssueInput{
		StockItemID: req.StockItemID,
		Quantity:    req.Quantity,
		OfficeID:    req.OfficeID,
		Date:        req.Date,
		Remarks:     req.Remarks,
	})
}

func (s *appService) AvailableQuantity(ctx context.Context, stockItemID int) (*AvailabilityResult, error) {
	item, err := s.catalog.GetStockItem(ctx, stockItemID)
	if err != nil {
		return nil, err
	}
	available, err := s.ledger.AvailableQuantity(ctx, stockItemID)
	if err != nil {
		return nil, err
	}
	return &AvailabilityResult{
		StockItemID:    stockItemID,
		Available:      available,
		CachedQuantity: item.Quantity,
	}, nil
}

// ── Reports ───────────────────────────────────────────────────────────────────

func (s *appService) VoucherSummary(ctx context.Context, f core.VoucherFilter) ([]core.VoucherRow, error) {
	return s.reporting.VoucherSummary(ctx, f)
}

func (s *appService) IssuesReport(ctx context.Context, f core.IssueFilter) ([]core.IssueRow, error) {
	return s.reporting.IssuesReport(ctx, f)
}

func (s *appService) VendorVouchers(ctx context.Context, vendorID int) ([]core.VendorVoucherRow, error) {
	return s.reporting.VendorVouchers(ctx, vendorID)
}

func (s *appService) BuildReportRows(ctx context.Context, f core.ReportFilter) ([]core.ReportRow, error) {
	return s.reporting.BuildReportRows(ctx, f)
}
