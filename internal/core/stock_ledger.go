package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// StockLedger maintains each stock item's available quantity as the projection
// of its receipt/issue history, and gates issue creation on availability.
//
// The receipts and issues tables are the ledger of record; stock_items.quantity
// is a cached running total kept consistent inside the same transaction as every
// ledger append. RebuildQuantities can restore the cache by replaying the ledger.
type StockLedger interface {
	// RecordReceipt appends a receipt and increases the item's cached quantity.
	// Quantity must be positive and a voucher number is required.
	RecordReceipt(ctx context.Context, input ReceiptInput) (*Receipt, error)

	// RecordIssue appends an issue and decreases the item's cached quantity.
	// The availability check runs against the live ledger aggregate, not the
	// cached field, inside the same transaction that appends the issue. When
	// quantity exceeds availability it fails with ErrInsufficientStock and
	// performs no mutation.
	RecordIssue(ctx context.Context, input IssueInput) (*Issue, error)

	// AvailableQuantity returns SUM(receipts) − SUM(issues) for the item,
	// computed from the ledger tables.
	AvailableQuantity(ctx context.Context, stockItemID int) (int64, error)

	// RebuildQuantities recomputes every item's cached quantity and total_price
	// from the ledger. Returns the number of items updated.
	RebuildQuantities(ctx context.Context) (int, error)
}

type stockLedger struct {
	pool *pgxpool.Pool
}

// NewStockLedger constructs a StockLedger backed by PostgreSQL.
func NewStockLedger(pool *pgxpool.Pool) StockLedger {
	return &stockLedger{pool: pool}
}

// parseLedgerDate parses a YYYY-MM-DD ledger date. Empty means today in the
// server's local timezone.
func parseLedgerDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q is not YYYY-MM-DD: %w", s, ErrValidation)
	}
	return d, nil
}

// ── RecordReceipt ─────────────────────────────────────────────────────────────

func (l *stockLedger) RecordReceipt(ctx context.Context, input ReceiptInput) (*Receipt, error) {
	if input.Quantity <= 0 {
		return nil, fmt.Errorf("receipt quantity must be positive, got %d: %w", input.Quantity, ErrValidation)
	}
	if input.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("unit price cannot be negative, got %s: %w", input.UnitPrice, ErrValidation)
	}
	if input.VoucherNumber == "" {
		return nil, fmt.Errorf("voucher number is required: %w", ErrValidation)
	}
	date, err := parseLedgerDate(input.Date)
	if err != nil {
		return nil, err
	}

	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the item row: serializes this receipt against concurrent receipts
	// and issues on the same item. Other items are untouched.
	var cachedQty int64
	var purchasePrice decimal.Decimal
	err = tx.QueryRow(ctx,
		"SELECT quantity, purchase_price FROM stock_items WHERE id = $1 FOR UPDATE",
		input.StockItemID,
	).Scan(&cachedQty, &purchasePrice)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("stock item %d: %w", input.StockItemID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to lock stock item %d: %w", input.StockItemID, err)
	}

	totalPrice := input.UnitPrice.Mul(decimal.NewFromInt(input.Quantity))
	r := &Receipt{
		StockItemID:      input.StockItemID,
		QuantityReceived: input.Quantity,
		UnitPrice:        input.UnitPrice,
		TotalPrice:       totalPrice,
		DateReceived:     date,
		VoucherNumber:    input.VoucherNumber,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO receipts (stock_item_id, quantity_received, unit_price, total_price, date_received, voucher_number)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, input.StockItemID, input.Quantity, input.UnitPrice, totalPrice,
		date.Format("2006-01-02"), input.VoucherNumber,
	).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert receipt: %w", err)
	}

	// Bump the cached quantity and recompute the derived item total in the
	// same transaction, so the cache is never observed ahead of the ledger.
	newQty := cachedQty + input.Quantity
	if err := l.updateItemCacheTx(ctx, tx, input.StockItemID, newQty, purchasePrice); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit receipt: %w", err)
	}
	return r, nil
}

// ── RecordIssue ───────────────────────────────────────────────────────────────

func (l *stockLedger) RecordIssue(ctx context.Context, input IssueInput) (*Issue, error) {
	if input.Quantity <= 0 {
		return nil, fmt.Errorf("issue quantity must be positive, got %d: %w", input.Quantity, ErrValidation)
	}
	date, err := parseLedgerDate(input.Date)
	if err != nil {
		return nil, err
	}

	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var purchasePrice decimal.Decimal
	err = tx.QueryRow(ctx,
		"SELECT purchase_price FROM stock_items WHERE id = $1 FOR UPDATE",
		input.StockItemID,
	).Scan(&purchasePrice)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("stock item %d: %w", input.StockItemID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to lock stock item %d: %w", input.StockItemID, err)
	}

	if input.OfficeID != nil {
		var exists bool
		if err := tx.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM offices WHERE id = $1)", *input.OfficeID,
		).Scan(&exists); err != nil {
			return nil, fmt.Errorf("failed to resolve office %d: %w", *input.OfficeID, err)
		}
		if !exists {
			return nil, fmt.Errorf("office %d: %w", *input.OfficeID, ErrNotFound)
		}
	}

	// Availability comes from the ledger tables, not the cached field. The row
	// lock above means no concurrent writer can change either sum until commit.
	available, err := availableTx(ctx, tx, input.StockItemID)
	if err != nil {
		return nil, err
	}
	if input.Quantity > available {
		return nil, fmt.Errorf("stock item %d has %d available, requested %d: %w",
			input.StockItemID, available, input.Quantity, ErrInsufficientStock)
	}

	iss := &Issue{
		StockItemID:    input.StockItemID,
		OfficeID:       input.OfficeID,
		QuantityIssued: input.Quantity,
		DateIssued:     date,
		Remarks:        input.Remarks,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO issues (stock_item_id, office_id, quantity_issued, date_issued, remarks)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, input.StockItemID, input.OfficeID, input.Quantity,
		date.Format("2006-01-02"), input.Remarks,
	).Scan(&iss.ID, &iss.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert issue: %w", err)
	}

	// Cache takes the ledger-derived value rather than cached − quantity, so a
	// drifted cache corrects itself on the next issue.
	if err := l.updateItemCacheTx(ctx, tx, input.StockItemID, available-input.Quantity, purchasePrice); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit issue: %w", err)
	}
	return iss, nil
}

// ── Reads ─────────────────────────────────────────────────────────────────────

func (l *stockLedger) AvailableQuantity(ctx context.Context, stockItemID int) (int64, error) {
	var available int64
	err := l.pool.QueryRow(ctx, `
		SELECT COALESCE((SELECT SUM(quantity_received) FROM receipts WHERE stock_item_id = si.id), 0)
		     - COALESCE((SELECT SUM(quantity_issued)   FROM issues   WHERE stock_item_id = si.id), 0)
		FROM stock_items si
		WHERE si.id = $1
	`, stockItemID).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("stock item %d: %w", stockItemID, ErrNotFound)
		}
		return 0, fmt.Errorf("failed to compute available quantity: %w", err)
	}
	return available, nil
}

// availableTx computes the live ledger balance for an item inside a transaction.
func availableTx(ctx context.Context, tx pgx.Tx, stockItemID int) (int64, error) {
	var available int64
	err := tx.QueryRow(ctx, `
		SELECT COALESCE((SELECT SUM(quantity_received) FROM receipts WHERE stock_item_id = $1), 0)
		     - COALESCE((SELECT SUM(quantity_issued)   FROM issues   WHERE stock_item_id = $1), 0)
	`, stockItemID).Scan(&available)
	if err != nil {
		return 0, fmt.Errorf("failed to compute available quantity for item %d: %w", stockItemID, err)
	}
	return available, nil
}

// updateItemCacheTx writes the cached quantity and the derived total_price.
func (l *stockLedger) updateItemCacheTx(ctx context.Context, tx pgx.Tx, stockItemID int, quantity int64, purchasePrice decimal.Decimal) error {
	totalPrice := purchasePrice.Mul(decimal.NewFromInt(quantity))
	_, err := tx.Exec(ctx, `
		UPDATE stock_items SET quantity = $1, total_price = $2 WHERE id = $3
	`, quantity, totalPrice, stockItemID)
	if err != nil {
		return fmt.Errorf("failed to update cached quantity for item %d: %w", stockItemID, err)
	}
	return nil
}

// ── RebuildQuantities ─────────────────────────────────────────────────────────

func (l *stockLedger) RebuildQuantities(ctx context.Context) (int, error) {
	tag, err := l.pool.Exec(ctx, `
		UPDATE stock_items si
		SET quantity = ledger.balance,
		    total_price = si.purchase_price * ledger.balance
		FROM (
		    SELECT s.id,
		           COALESCE((SELECT SUM(quantity_received) FROM receipts WHERE stock_item_id = s.id), 0)
		         - COALESCE((SELECT SUM(quantity_issued)   FROM issues   WHERE stock_item_id = s.id), 0) AS balance
		    FROM stock_items s
		) ledger
		WHERE ledger.id = si.id
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to rebuild cached quantities: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
