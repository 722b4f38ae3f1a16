package web

import (
	"net/http"

	"github.com/fazalktk93/cda-store/internal/app"
)

// recordReceipt handles POST /api/receipts.
func (h *Handler) recordReceipt(w http.ResponseWriter, r *http.Request) {
	var req app.RecordReceiptRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	receipt, err := h.svc.RecordReceipt(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeCreated(w, receipt)
}

// recordIssue handles POST /api/issues. An oversell attempt returns HTTP 409
// with code INSUFFICIENT_STOCK and leaves the ledger unmutated.
func (h *Handler) recordIssue(w http.ResponseWriter, r *http.Request) {
	var req app.RecordIssueRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	issue, err := h.svc.RecordIssue(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeCreated(w, issue)
}

// availableQuantity handles GET /api/stock-items/{id}/available.
func (h *Handler) availableQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, "invalid stock item id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.AvailableQuantity(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}
