package app

// AvailabilityResult reports an item's live ledger balance alongside the
// cached field so callers can spot drift.
type AvailabilityResult struct {
	StockItemID    int   `json:"stock_item_id"`
	Available      int64 `json:"available"`
	CachedQuantity int64 `json:"cached_quantity"`
}
