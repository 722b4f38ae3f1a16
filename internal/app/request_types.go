package app

// CreateVendorRequest holds the fields for creating a vendor.
type CreateVendorRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Address string `json:"address"`
}

// CreateOfficeRequest holds the fields for creating an office.
type CreateOfficeRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// CreateStockItemRequest holds the fields for creating a stock item.
// PurchasePrice is a decimal string; Quantity seeds an opening balance.
type CreateStockItemRequest struct {
	Name          string `json:"name"`
	Unit          string `json:"unit"`
	PurchasePrice string `json:"purchase_price"`
	Quantity      int64  `json:"quantity"`
	VendorID      *int   `json:"vendor_id,omitempty"`
	CategoryID    *int   `json:"category_id,omitempty"`
}

// RecordReceiptRequest holds the fields for recording a purchase receipt.
// Date is YYYY-MM-DD; empty means today.
type RecordReceiptRequest struct {
	StockItemID   int    `json:"stock_item_id"`
	Quantity      int64  `json:"quantity"`
	UnitPrice     string `json:"unit_price"`
	Date          string `json:"date"`
	VoucherNumber string `json:"voucher_number"`
}

// RecordIssueRequest holds the fields for issuing stock to an office.
// Date is YYYY-MM-DD; empty means today. OfficeID is optional.
type RecordIssueRequest struct {
	StockItemID int    `json:"stock_item_id"`
	Quantity    int64  `json:"quantity"`
	OfficeID    *int   `json:"office_id,omitempty"`
	Date        string `json:"date"`
	Remarks     string `json:"remarks"`
}
