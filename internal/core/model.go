package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Vendor is a supplier of stock items.
type Vendor struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Contact   *string   `json:"contact,omitempty"`
	Address   *string   `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// StockCategory groups stock items under a unique name.
type StockCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Office is a destination that stock can be issued to.
type Office struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// StockItem is a tracked inventory line. Quantity is a cached running total
// over the item's receipts and issues; TotalPrice = PurchasePrice × Quantity
// is derived and recomputed inside every mutation that changes its inputs.
// The receipts/issues tables remain the ledger of record.
type StockItem struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Quantity      int64           `json:"quantity"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	VendorID      *int            `json:"vendor_id,omitempty"`
	CategoryID    *int            `json:"category_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Receipt is an append-only ledger entry recording stock received under a
// purchase voucher. TotalPrice = UnitPrice × QuantityReceived, derived at insert.
type Receipt struct {
	ID               int             `json:"id"`
	StockItemID      int             `json:"stock_item_id"`
	QuantityReceived int64           `json:"quantity_received"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	DateReceived     time.Time       `json:"date_received"`
	VoucherNumber    string          `json:"voucher_number"`
	CreatedAt        time.Time       `json:"created_at"`
}

// Issue is an append-only ledger entry recording stock issued to an office.
type Issue struct {
	ID             int       `json:"id"`
	StockItemID    int       `json:"stock_item_id"`
	OfficeID       *int      `json:"office_id,omitempty"`
	QuantityIssued int64     `json:"quantity_issued"`
	DateIssued     time.Time `json:"date_issued"`
	Remarks        string    `json:"remarks"`
	CreatedAt      time.Time `json:"created_at"`
}

// VendorInput holds the fields required to create a vendor.
type VendorInput struct {
	Name    string
	Contact string
	Address string
}

// OfficeInput holds the fields required to create an office.
type OfficeInput struct {
	Name     string
	Location string
}

// StockItemInput holds the fields required to create a stock item.
// A non-zero Quantity seeds an opening balance, recorded as an opening
// receipt; TotalPrice is derived from it.
type StockItemInput struct {
	Name          string
	Unit          string
	PurchasePrice decimal.Decimal
	Quantity      int64
	VendorID      *int
	CategoryID    *int
}

// ReceiptInput holds the fields required to record a receipt.
// Date is YYYY-MM-DD; empty means today.
type ReceiptInput struct {
	StockItemID   int
	Quantity      int64
	UnitPrice     decimal.Decimal
	Date          string
	VoucherNumber string
}

// IssueInput holds the fields required to record an issue.
// Date is YYYY-MM-DD; empty means today. OfficeID is optional.
type IssueInput struct {
	StockItemID int
	Quantity    int64
	OfficeID    *int
	Date        string
	Remarks     string
}
