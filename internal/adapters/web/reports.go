package web

import (
	"net/http"
	"strconv"

	"github.com/fazalktk93/cda-store/internal/core"
)

// optionalIntQuery parses an optional integer query parameter. Absent means nil.
func optionalIntQuery(r *http.Request, name string) (*int, bool) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, false
	}
	return &n, true
}

// boolQuery treats "1" and "true" as true; anything else, including absence,
// as false.
func boolQuery(r *http.Request, name string) bool {
	v := r.URL.Query().Get(name)
	return v == "1" || v == "true"
}

// voucherSummary handles GET /api/reports/vouchers.
// Query: vendor_id, from, to, item — all optional, conjunctive.
func (h *Handler) voucherSummary(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := optionalIntQuery(r, "vendor_id")
	if !ok {
		writeError(w, r, "invalid vendor_id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	f := core.VoucherFilter{
		VendorID: vendorID,
		FromDate: r.URL.Query().Get("from"),
		ToDate:   r.URL.Query().Get("to"),
		ItemName: r.URL.Query().Get("item"),
	}
	rows, err := h.svc.VoucherSummary(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, rows)
}

// issuesReport handles GET /api/reports/issues.
// Query: from, to, office_id, item — all optional, conjunctive.
func (h *Handler) issuesReport(w http.ResponseWriter, r *http.Request) {
	officeID, ok := optionalIntQuery(r, "office_id")
	if !ok {
		writeError(w, r, "invalid office_id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	f := core.IssueFilter{
		FromDate: r.URL.Query().Get("from"),
		ToDate:   r.URL.Query().Get("to"),
		OfficeID: officeID,
		ItemName: r.URL.Query().Get("item"),
	}
	rows, err := h.svc.IssuesReport(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, rows)
}

// vendorVouchers handles GET /api/reports/vendors/{id}/vouchers.
func (h *Handler) vendorVouchers(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, "invalid vendor id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	rows, err := h.svc.VendorVouchers(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, rows)
}

// ledgerReport handles GET /api/reports/ledger — the flattened projection.
// Query: item, from, to, receipts, issues, show_vendor, show_office.
// When neither side is requested explicitly, both are included.
func (h *Handler) ledgerReport(w http.ResponseWriter, r *http.Request) {
	f := core.ReportFilter{
		ItemName:        r.URL.Query().Get("item"),
		FromDate:        r.URL.Query().Get("from"),
		ToDate:          r.URL.Query().Get("to"),
		IncludeReceipts: boolQuery(r, "receipts"),
		IncludeIssues:   boolQuery(r, "issues"),
		ShowVendor:      boolQuery(r, "show_vendor"),
		ShowOffice:      boolQuery(r, "show_office"),
	}
	if !f.IncludeReceipts && !f.IncludeIssues {
		f.IncludeReceipts = true
		f.IncludeIssues = true
	}
	rows, err := h.svc.BuildReportRows(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, rows)
}
