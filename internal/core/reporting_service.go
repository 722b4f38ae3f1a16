package core

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ── Report types ──────────────────────────────────────────────────────────────

// VoucherFilter narrows the voucher summary. Zero values mean unbounded;
// filters compose conjunctively.
type VoucherFilter struct {
	VendorID *int
	FromDate string // YYYY-MM-DD, inclusive
	ToDate   string // YYYY-MM-DD, inclusive
	ItemName string // substring match, case-insensitive
}

// VoucherRow is one (voucher, item) group of receipt lines.
// TotalPrice is SUM(quantity_received × unit_price) per line, so it stays
// correct when unit prices differ within a voucher. UnitPrice is the group's
// representative price (groups normally carry a single price; mixed-price
// groups still total per line).
type VoucherRow struct {
	VoucherNumber string          `json:"voucher_number"`
	ItemName      string          `json:"item_name"`
	VendorName    string          `json:"vendor_name"`
	TotalQuantity int64           `json:"total_quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Date          string          `json:"date"`
}

// IssueFilter narrows the issues report. Zero values mean unbounded.
type IssueFilter struct {
	FromDate string
	ToDate   string
	OfficeID *int
	ItemName string // substring match, case-insensitive
}

// IssueRow is one (date, office, item) group of issued stock.
type IssueRow struct {
	Date          string `json:"date"`
	Office        string `json:"office"`
	ItemName      string `json:"item_name"`
	TotalQuantity int64  `json:"total_quantity"`
}

// VendorVoucherRow aggregates one voucher across all receipts of a vendor's items.
type VendorVoucherRow struct {
	VoucherNumber string          `json:"voucher_number"`
	TotalItems    int64           `json:"total_items"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Date          string          `json:"date"`
}

// ReportFilter selects and shapes the flattened ledger projection.
type ReportFilter struct {
	ItemName        string // substring match, case-insensitive
	FromDate        string
	ToDate          string
	IncludeReceipts bool
	IncludeIssues   bool
	ShowVendor      bool
	ShowOffice      bool
}

// ReportRow is one flattened ledger entry for export. Origin is "Purchase" for
// receipts and "Issue" for issues. Vendor and Office are filled only when the
// corresponding filter flag is set, empty string otherwise.
type ReportRow struct {
	Origin   string `json:"origin"`
	ItemName string `json:"item_name"`
	Quantity int64  `json:"quantity"`
	Date     string `json:"date"`
	Vendor   string `json:"vendor"`
	Office   string `json:"office"`
}

// ── Interface ─────────────────────────────────────────────────────────────────

// ReportingService answers reporting questions over the receipt/issue ledger
// without mutating state. Reads may run concurrently with ledger writes; they
// observe only committed mutations.
type ReportingService interface {
	// VoucherSummary groups receipts sharing (voucher_number, stock_item) into
	// one row each. Idempotent and order-independent on the underlying set.
	VoucherSummary(ctx context.Context, f VoucherFilter) ([]VoucherRow, error)

	// IssuesReport groups issues by (date, office, item), summing quantities.
	IssuesReport(ctx context.Context, f IssueFilter) ([]IssueRow, error)

	// VendorVouchers aggregates per-voucher totals across all receipts of the
	// vendor's stock items.
	VendorVouchers(ctx context.Context, vendorID int) ([]VendorVoucherRow, error)

	// BuildReportRows flattens receipts and issues into a single row shape for
	// export, ordered by item name then chronologically within each item.
	BuildReportRows(ctx context.Context, f ReportFilter) ([]ReportRow, error)
}

// ── Implementation ────────────────────────────────────────────────────────────

type reportingService struct {
	pool *pgxpool.Pool
}

// NewReportingService constructs a ReportingService backed by the given pool.
func NewReportingService(pool *pgxpool.Pool) ReportingService {
	return &reportingService{pool: pool}
}

// ── VoucherSummary ────────────────────────────────────────────────────────────

func (s *reportingService) VoucherSummary(ctx context.Context, f VoucherFilter) ([]VoucherRow, error) {
	q := `
		SELECT r.voucher_number,
		       si.name,
		       COALESCE(v.name, ''),
		       SUM(r.quantity_received),
		       MIN(r.unit_price),
		       SUM(r.quantity_received * r.unit_price),
		       MIN(r.date_received)::text
		FROM receipts r
		JOIN stock_items si ON si.id = r.stock_item_id
		LEFT JOIN vendors v ON v.id = si.vendor_id
		WHERE 1 = 1`

	var args []any
	if f.VendorID != nil {
		args = append(args, *f.VendorID)
		q += fmt.Sprintf(" AND si.vendor_id = $%d", len(args))
	}
	if f.FromDate != "" {
		args = append(args, f.FromDate)
		q += fmt.Sprintf(" AND r.date_received >= $%d::date", len(args))
	}
	if f.ToDate != "" {
		args = append(args, f.ToDate)
		q += fmt.Sprintf(" AND r.date_received <= $%d::date", len(args))
	}
	if f.ItemName != "" {
		args = append(args, "%"+f.ItemName+"%")
		q += fmt.Sprintf(" AND si.name ILIKE $%d", len(args))
	}
	q += `
		GROUP BY r.voucher_number, si.id, si.name, v.name
		ORDER BY r.voucher_number, si.name`

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query voucher summary: %w", err)
	}
	defer rows.Close()

	var out []VoucherRow
	for rows.Next() {
		var vr VoucherRow
		if err := rows.Scan(
			&vr.VoucherNumber, &vr.ItemName, &vr.VendorName,
			&vr.TotalQuantity, &vr.UnitPrice, &vr.TotalPrice, &vr.Date,
		); err != nil {
			return nil, fmt.Errorf("failed to scan voucher row: %w", err)
		}
		out = append(out, vr)
	}
	return out, rows.Err()
}

// ── IssuesReport ──────────────────────────────────────────────────────────────

func (s *reportingService) IssuesReport(ctx context.Context, f IssueFilter) ([]IssueRow, error) {
	q := `
		SELECT i.date_issued::text,
		       COALESCE(o.name, ''),
		       si.name,
		       SUM(i.quantity_issued)
		FROM issues i
		JOIN stock_items si ON si.id = i.stock_item_id
		LEFT JOIN offices o ON o.id = i.office_id
		WHERE 1 = 1`

	var args []any
	if f.FromDate != "" {
		args = append(args, f.FromDate)
		q += fmt.Sprintf(" AND i.date_issued >= $%d::date", len(args))
	}
	if f.ToDate != "" {
		args = append(args, f.ToDate)
		q += fmt.Sprintf(" AND i.date_issued <= $%d::date", len(args))
	}
	if f.OfficeID != nil {
		args = append(args, *f.OfficeID)
		q += fmt.Sprintf(" AND i.office_id = $%d", len(args))
	}
	if f.ItemName != "" {
		args = append(args, "%"+f.ItemName+"%")
		q += fmt.Sprintf(" AND si.name ILIKE $%d", len(args))
	}
	q += `
		GROUP BY i.date_issued, o.name, si.name
		ORDER BY i.date_issued, o.name, si.name`

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query issues report: %w", err)
	}
	defer rows.Close()

	var out []IssueRow
	for rows.Next() {
		var ir IssueRow
		if err := rows.Scan(&ir.Date, &ir.Office, &ir.ItemName, &ir.TotalQuantity); err != nil {
			return nil, fmt.Errorf("failed to scan issues report row: %w", err)
		}
		out = append(out, ir)
	}
	return out, rows.Err()
}

// ── VendorVouchers ────────────────────────────────────────────────────────────

func (s *reportingService) VendorVouchers(ctx context.Context, vendorID int) ([]VendorVoucherRow, error) {
	var exists bool
	if err := s.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM vendors WHERE id = $1)", vendorID,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to resolve vendor %d: %w", vendorID, err)
	}
	if !exists {
		return nil, fmt.Errorf("vendor %d: %w", vendorID, ErrNotFound)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT r.voucher_number,
		       SUM(r.quantity_received),
		       SUM(r.quantity_received * r.unit_price),
		       MIN(r.date_received)::text
		FROM receipts r
		JOIN stock_items si ON si.id = r.stock_item_id
		WHERE si.vendor_id = $1
		GROUP BY r.voucher_number
		ORDER BY MIN(r.date_received), r.voucher_number`, vendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query vendor vouchers: %w", err)
	}
	defer rows.Close()

	var out []VendorVoucherRow
	for rows.Next() {
		var vr VendorVoucherRow
		if err := rows.Scan(&vr.VoucherNumber, &vr.TotalItems, &vr.TotalPrice, &vr.Date); err != nil {
			return nil, fmt.Errorf("failed to scan vendor voucher row: %w", err)
		}
		out = append(out, vr)
	}
	return out, rows.Err()
}

// ── BuildReportRows ───────────────────────────────────────────────────────────

// reportLedgerRow carries the per-entry sort keys before projection.
type reportLedgerRow struct {
	ReportRow
	entryID int
}

func (s *reportingService) BuildReportRows(ctx context.Context, f ReportFilter) ([]ReportRow, error) {
	var merged []reportLedgerRow

	if f.IncludeReceipts {
		rows, err := s.queryReportSide(ctx, f, true)
		if err != nil {
			return nil, err
		}
		merged = append(merged, rows...)
	}
	if f.IncludeIssues {
		rows, err := s.queryReportSide(ctx, f, false)
		if err != nil {
			return nil, err
		}
		merged = append(merged, rows...)
	}

	// By item, then chronologically within item. Origin and entry id break
	// date ties so the output is stable for a fixed ledger state.
	sort.Slice(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		if a.ItemName != b.ItemName {
			return a.ItemName < b.ItemName
		}
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Origin != b.Origin {
			return a.Origin < b.Origin
		}
		return a.entryID < b.entryID
	})

	out := make([]ReportRow, len(merged))
	for i, m := range merged {
		out[i] = m.ReportRow
	}
	return out, nil
}

// queryReportSide fetches one side of the ledger (receipts or issues) with the
// shared filters applied. Vendor/office columns are selected only when shown.
func (s *reportingService) queryReportSide(ctx context.Context, f ReportFilter, receipts bool) ([]reportLedgerRow, error) {
	var q, origin, dateCol string
	if receipts {
		origin = "Purchase"
		dateCol = "r.date_received"
		vendorCol := "''"
		if f.ShowVendor {
			vendorCol = "COALESCE(v.name, '')"
		}
		q = fmt.Sprintf(`
			SELECT r.id, si.name, r.quantity_received, %s::text, %s
			FROM receipts r
			JOIN stock_items si ON si.id = r.stock_item_id
			LEFT JOIN vendors v ON v.id = si.vendor_id
			WHERE 1 = 1`, dateCol, vendorCol)
	} else {
		origin = "Issue"
		dateCol = "i.date_issued"
		officeCol := "''"
		if f.ShowOffice {
			officeCol = "COALESCE(o.name, '')"
		}
		q = fmt.Sprintf(`
			SELECT i.id, si.name, i.quantity_issued, %s::text, %s
			FROM issues i
			JOIN stock_items si ON si.id = i.stock_item_id
			LEFT JOIN offices o ON o.id = i.office_id
			WHERE 1 = 1`, dateCol, officeCol)
	}

	var args []any
	if f.ItemName != "" {
		args = append(args, "%"+f.ItemName+"%")
		q += fmt.Sprintf(" AND si.name ILIKE $%d", len(args))
	}
	if f.FromDate != "" {
		args = append(args, f.FromDate)
		q += fmt.Sprintf(" AND %s >= $%d::date", dateCol, len(args))
	}
	if f.ToDate != "" {
		args = append(args, f.ToDate)
		q += fmt.Sprintf(" AND %s <= $%d::date", dateCol, len(args))
	}

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s report rows: %w", origin, err)
	}
	defer rows.Close()

	var out []reportLedgerRow
	for rows.Next() {
		var rr reportLedgerRow
		var annotation string
		if err := rows.Scan(&rr.entryID, &rr.ItemName, &rr.Quantity, &rr.Date, &annotation); err != nil {
			return nil, fmt.Errorf("failed to scan %s report row: %w", origin, err)
		}
		rr.Origin = origin
		if receipts {
			rr.Vendor = annotation
		} else {
			rr.Office = annotation
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}
