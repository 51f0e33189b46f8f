package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/abdaljehan03-maker/clinic-project/internal/clinic"
	"github.com/abdaljehan03-maker/clinic-project/internal/sse"
	"github.com/abdaljehan03-maker/clinic-project/internal/utils"
)

// TreatmentHandler handles catalog listing and whole-catalog edits.
type TreatmentHandler struct {
	Catalog *clinic.Catalog
	Events  *sse.Broadcaster
}

// NewTreatmentHandler creates a new TreatmentHandler.
func NewTreatmentHandler(catalog *clinic.Catalog, events *sse.Broadcaster) *TreatmentHandler {
	return &TreatmentHandler{Catalog: catalog, Events: events}
}

// ListTreatments returns the catalog ordered by id.
func (h *TreatmentHandler) ListTreatments(c *gin.Context) {
	utils.Success(c, "Treatments fetched successfully", h.Catalog.List())
}

// ReplaceNamesRequest represents the request body for a whole-catalog
// name edit, one entry per editor line.
type ReplaceNamesRequest struct {
	Names []string `json:"names" binding:"required"`
}

// ReplaceNames rebuilds the catalog from a list of names. Known names
// keep their prices, new ones start at the default price.
func (h *TreatmentHandler) ReplaceNames(c *gin.Context) {
	var req ReplaceNamesRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := h.Catalog.ReplaceNames(req.Names); err != nil {
		respondCoreError(c, err)
		return
	}

	h.Events.Broadcast("treatments")
	utils.Success(c, "Treatments updated successfully", h.Catalog.List())
}

// PriceLine mirrors one "name: price" line of the price editor. The
// price stays a string so the catalog can report the offending line on
// a parse failure.
type PriceLine struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

// ReplacePricesRequest represents the request body for a whole-catalog
// price edit.
type ReplacePricesRequest struct {
	Entries []PriceLine `json:"entries" binding:"required"`
}

// ReplacePrices rebuilds the catalog from (name, price) lines. The
// edit is atomic: one bad line rejects the whole request.
func (h *TreatmentHandler) ReplacePrices(c *gin.Context) {
	var req ReplacePricesRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	entries := make([]clinic.PriceEntry, len(req.Entries))
	for i, e := range req.Entries {
		entries[i] = clinic.PriceEntry{Name: e.Name, Price: e.Price}
	}
	if err := h.Catalog.ReplacePrices(entries); err != nil {
		respondCoreError(c, err)
		return
	}

	h.Events.Broadcast("treatments")
	utils.Success(c, "Prices updated successfully", h.Catalog.List())
}
