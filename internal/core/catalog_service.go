package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// CatalogService provides master data operations: vendors, stock categories,
// offices, and stock items. Receipts and issues go through StockLedger.
type CatalogService interface {
	CreateVendor(ctx context.Context, input VendorInput) (*Vendor, error)
	GetVendors(ctx context.Context) ([]Vendor, error)
	GetVendor(ctx context.Context, id int) (*Vendor, error)

	CreateStockCategory(ctx context.Context, name string) (*StockCategory, error)
	GetStockCategories(ctx context.Context) ([]StockCategory, error)

	CreateOffice(ctx context.Context, input OfficeInput) (*Office, error)
	GetOffices(ctx context.Context) ([]Office, error)
	GetOffice(ctx context.Context, id int) (*Office, error)

	// CreateStockItem creates an item, optionally with an opening quantity.
	// A non-zero opening quantity is recorded as an opening receipt in the
	// same transaction, so the receipt/issue ledger stays the source of truth
	// for the cached quantity. The derived total_price is computed at insert.
	CreateStockItem(ctx context.Context, input StockItemInput) (*StockItem, error)
	GetStockItems(ctx context.Context) ([]StockItem, error)
	GetStockItem(ctx context.Context, id int) (*StockItem, error)
}

// openingVoucher marks the synthetic receipt that seeds an item's opening
// balance at creation.
const openingVoucher = "OPENING"

type catalogService struct {
	pool *pgxpool.Pool
}

// NewCatalogService constructs a CatalogService backed by PostgreSQL.
func NewCatalogService(pool *pgxpool.Pool) CatalogService {
	return &catalogService{pool: pool}
}

func toPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ── Vendors ───────────────────────────────────────────────────────────────────

func (s *catalogService) CreateVendor(ctx context.Context, input VendorInput) (*Vendor, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("vendor name is required: %w", ErrValidation)
	}

	v := &Vendor{}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO vendors (name, contact, address)
		VALUES ($1, $2, $3)
		RETURNING id, name, contact, address, created_at`,
		input.Name, toPtr(input.Contact), toPtr(input.Address),
	).Scan(&v.ID, &v.Name, &v.Contact, &v.Address, &v.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create vendor %q: %w", input.Name, err)
	}
	return v, nil
}

func (s *catalogService) GetVendors(ctx context.Context) ([]Vendor, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, contact, address, created_at
		FROM vendors
		ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("get vendors: %w", err)
	}
	defer rows.Close()

	var vendors []Vendor
	for rows.Next() {
		var v Vendor
		if err := rows.Scan(&v.ID, &v.Name, &v.Contact, &v.Address, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		vendors = append(vendors, v)
	}
	return vendors, rows.Err()
}

func (s *catalogService) GetVendor(ctx context.Context, id int) (*Vendor, error) {
	v := &Vendor{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, contact, address, created_at
		FROM vendors
		WHERE id = $1`, id,
	).Scan(&v.ID, &v.Name, &v.Contact, &v.Address, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("vendor %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get vendor %d: %w", id, err)
	}
	return v, nil
}

// ── Stock categories ──────────────────────────────────────────────────────────

func (s *catalogService) CreateStockCategory(ctx context.Context, name string) (*StockCategory, error) {
	if name == "" {
		return nil, fmt.Errorf("category name is required: %w", ErrValidation)
	}

	c := &StockCategory{}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO stock_categories (name)
		VALUES ($1)
		RETURNING id, name`, name,
	).Scan(&c.ID, &c.Name)
	if err != nil {
		return nil, fmt.Errorf("create stock category %q: %w", name, err)
	}
	return c, nil
}

func (s *catalogService) GetStockCategories(ctx context.Context) ([]StockCategory, error) {
	rows, err := s.pool.Query(ctx, "SELECT id, name FROM stock_categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("get stock categories: %w", err)
	}
	defer rows.Close()

	var categories []StockCategory
	for rows.Next() {
		var c StockCategory
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan stock category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// ── Offices ───────────────────────────────────────────────────────────────────

func (s *catalogService) CreateOffice(ctx context.Context, input OfficeInput) (*Office, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("office name is required: %w", ErrValidation)
	}

	o := &Office{}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO offices (name, location)
		VALUES ($1, $2)
		RETURNING id, name, location`,
		input.Name, input.Location,
	).Scan(&o.ID, &o.Name, &o.Location)
	if err != nil {
		return nil, fmt.Errorf("create office %q: %w", input.Name, err)
	}
	return o, nil
}

func (s *catalogService) GetOffices(ctx context.Context) ([]Office, error) {
	rows, err := s.pool.Query(ctx, "SELECT id, name, location FROM offices ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("get offices: %w", err)
	}
	defer rows.Close()

	var offices []Office
	for rows.Next() {
		var o Office
		if err := rows.Scan(&o.ID, &o.Name, &o.Location); err != nil {
			return nil, fmt.Errorf("scan office: %w", err)
		}
		offices = append(offices, o)
	}
	return offices, rows.Err()
}

func (s *catalogService) GetOffice(ctx context.Context, id int) (*Office, error) {
	o := &Office{}
	err := s.pool.QueryRow(ctx,
		"SELECT id, name, location FROM offices WHERE id = $1", id,
	).Scan(&o.ID, &o.Name, &o.Location)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("office %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get office %d: %w", id, err)
	}
	return o, nil
}

// ── Stock items ───────────────────────────────────────────────────────────────

func (s *catalogService) CreateStockItem(ctx context.Context, input StockItemInput) (*StockItem, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("stock item name is required: %w", ErrValidation)
	}
	if input.Quantity < 0 {
		return nil, fmt.Errorf("opening quantity cannot be negative, got %d: %w", input.Quantity, ErrValidation)
	}
	if input.PurchasePrice.IsNegative() {
		return nil, fmt.Errorf("purchase price cannot be negative, got %s: %w", input.PurchasePrice, ErrValidation)
	}

	if input.VendorID != nil {
		if _, err := s.GetVendor(ctx, *input.VendorID); err != nil {
			return nil, err
		}
	}
	if input.CategoryID != nil {
		var exists bool
		if err := s.pool.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM stock_categories WHERE id = $1)", *input.CategoryID,
		).Scan(&exists); err != nil {
			return nil, fmt.Errorf("resolve stock category %d: %w", *input.CategoryID, err)
		}
		if !exists {
			return nil, fmt.Errorf("stock category %d: %w", *input.CategoryID, ErrNotFound)
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	totalPrice := input.PurchasePrice.Mul(decimal.NewFromInt(input.Quantity))
	item := &StockItem{}
	err = tx.QueryRow(ctx, `
		INSERT INTO stock_items (name, unit, purchase_price, quantity, total_price, vendor_id, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, name, unit, purchase_price, quantity, total_price, vendor_id, category_id, created_at`,
		input.Name, input.Unit, input.PurchasePrice, input.Quantity, totalPrice,
		input.VendorID, input.CategoryID,
	).Scan(
		&item.ID, &item.Name, &item.Unit, &item.PurchasePrice, &item.Quantity,
		&item.TotalPrice, &item.VendorID, &item.CategoryID, &item.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create stock item %q: %w", input.Name, err)
	}

	// An opening balance enters through the ledger like any other stock, so
	// the cached quantity always equals SUM(receipts) − SUM(issues) and the
	// seeded stock survives a cache rebuild.
	if input.Quantity > 0 {
		if _, err := tx.Exec(ctx, `
			INSERT INTO receipts (stock_item_id, quantity_received, unit_price, total_price, date_received, voucher_number)
			VALUES ($1, $2, $3, $4, CURRENT_DATE, $5)`,
			item.ID, input.Quantity, input.PurchasePrice, totalPrice, openingVoucher,
		); err != nil {
			return nil, fmt.Errorf("record opening balance for item %q: %w", input.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit stock item %q: %w", input.Name, err)
	}
	return item, nil
}

func (s *catalogService) GetStockItems(ctx context.Context) ([]StockItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, unit, purchase_price, quantity, total_price, vendor_id, category_id, created_at
		FROM stock_items
		ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("get stock items: %w", err)
	}
	defer rows.Close()

	var items []StockItem
	for rows.Next() {
		var it StockItem
		if err := rows.Scan(
			&it.ID, &it.Name, &it.Unit, &it.PurchasePrice, &it.Quantity,
			&it.TotalPrice, &it.VendorID, &it.CategoryID, &it.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *catalogService) GetStockItem(ctx context.Context, id int) (*StockItem, error) {
	it := &StockItem{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, unit, purchase_price, quantity, total_price, vendor_id, category_id, created_at
		FROM stock_items
		WHERE id = $1`, id,
	).Scan(
		&it.ID, &it.Name, &it.Unit, &it.PurchasePrice, &it.Quantity,
		&it.TotalPrice, &it.VendorID, &it.CategoryID, &it.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("stock item %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get stock item %d: %w", id, err)
	}
	return it, nil
}
