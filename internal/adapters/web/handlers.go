package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/fazalktk93/cda-store/internal/app"

	"github.com/go-chi/chi/v5"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc    app.ApplicationService
	router chi.Router
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins string) http.Handler {
	h := &Handler{svc: svc}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))
	r.Use(RequestBodyLimit(1 << 20)) // 1 MB

	r.Get("/api/health", h.health)

	// ── Master data ───────────────────────────────────────────────────────────
	r.Get("/api/vendors", h.listVendors)
	r.Post("/api/vendors", h.createVendor)
	r.Get("/api/vendors/{id}", h.getVendor)
	r.Get("/api/categories", h.listCategories)
	r.Post("/api/categories", h.createCategory)
	r.Get("/api/offices", h.listOffices)
	r.Post("/api/offices", h.createOffice)
	r.Get("/api/stock-items", h.listStockItems)
	r.Post("/api/stock-items", h.createStockItem)
	r.Get("/api/stock-items/{id}", h.getStockItem)
	r.Get("/api/stock-items/{id}/available", h.availableQuantity)

	// ── Ledger ────────────────────────────────────────────────────────────────
	r.Post("/api/receipts", h.recordReceipt)
	r.Post("/api/issues", h.recordIssue)

	// ── Reports ───────────────────────────────────────────────────────────────
	r.Get("/api/reports/vouchers", h.voucherSummary)
	r.Get("/api/reports/issues", h.issuesReport)
	r.Get("/api/reports/vendors/{id}/vouchers", h.vendorVouchers)
	r.Get("/api/reports/ledger", h.ledgerReport)

	h.router = r
	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: "ok"})
}

// idParam extracts and parses the {id} URL parameter.
func idParam(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

// decodeJSON decodes the request body into v and returns false + writes an
// appropriate error response on failure. Returns HTTP 413 when the body
// exceeds the size limit set by RequestBodyLimit middleware; HTTP 400 for all
// other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
