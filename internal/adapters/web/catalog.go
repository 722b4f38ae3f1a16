package web

import (
	"net/http"

	"github.com/fazalktk93/cda-store/internal/app"
)

// ── Vendors ───────────────────────────────────────────────────────────────────

// listVendors handles GET /api/vendors.
func (h *Handler) listVendors(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.svc.ListVendors(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, vendors)
}

// createVendor handles POST /api/vendors.
func (h *Handler) createVendor(w http.ResponseWriter, r *http.Request) {
	var req app.CreateVendorRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	v, err := h.svc.CreateVendor(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeCreated(w, v)
}

// getVendor handles GET /api/vendors/{id}.
func (h *Handler) getVendor(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, "invalid vendor id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	v, err := h.svc.GetVendor(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, v)
}

// ── Categories ────────────────────────────────────────────────────────────────

// listCategories handles GET /api/categories.
func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.ListStockCategories(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, categories)
}

// createCategory handles POST /api/categories.
func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := h.svc.CreateStockCategory(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeCreated(w, c)
}

// ── Offices ───────────────────────────────────────────────────────────────────

// listOffices handles GET /api/offices.
func (h *Handler) listOffices(w http.ResponseWriter, r *http.Request) {
	offices, err := h.svc.ListOffices(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, offices)
}

// createOffice handles POST /api/offices.
func (h *Handler) createOffice(w http.ResponseWriter, r *http.Request) {
	var req app.CreateOfficeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	o, err := h.svc.CreateOffice(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeCreated(w, o)
}

// ── Stock items ───────────────────────────────────────────────────────────────

// listStockItems handles GET /api/stock-items.
func (h *Handler) listStockItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListStockItems(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, items)
}

// createStockItem handles POST /api/stock-items.
func (h *Handler) createStockItem(w http.ResponseWriter, r *http.Request) {
	var req app.CreateStockItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	item, err := h.svc.CreateStockItem(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeCreated(w, item)
}

// getStockItem handles GET /api/stock-items/{id}.
func (h *Handler) getStockItem(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, "invalid stock item id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	item, err := h.svc.GetStockItem(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, item)
}
