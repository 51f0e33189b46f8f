package handlers

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abdaljehan03-maker/clinic-project/internal/billstore"
	"github.com/abdaljehan03-maker/clinic-project/internal/clinic"
	"github.com/abdaljehan03-maker/clinic-project/internal/config"
	"github.com/abdaljehan03-maker/clinic-project/internal/utils"
)

// BillHandler generates bills and searches the combined log.
type BillHandler struct {
	Catalog *clinic.Catalog
	Store   *billstore.Store
	Cfg     *config.Config
}

// NewBillHandler creates a new BillHandler.
func NewBillHandler(catalog *clinic.Catalog, store *billstore.Store, cfg *config.Config) *BillHandler {
	return &BillHandler{Catalog: catalog, Store: store, Cfg: cfg}
}

// GenerateBillRequest represents the request body for bill generation.
// Discount is a percentage and only applies to VIP patients; leaving it
// out selects the default VIP discount.
type GenerateBillRequest struct {
	PatientType  string   `json:"patientType" binding:"required,oneof=normal vip"`
	PatientName  string   `json:"patientName" binding:"required"`
	Phone        string   `json:"phone" binding:"required"`
	Discount     *float64 `json:"discount"`
	TreatmentIDs []int    `json:"treatmentIds" binding:"required,min=1"`
	Prescription string   `json:"prescription"`
}

// GenerateBillResponse carries the rendered bill and where it was saved.
type GenerateBillResponse struct {
	BillText       string  `json:"billText"`
	PrintText      string  `json:"printText"`
	Total          float64 `json:"total"`
	OriginalTotal  float64 `json:"originalTotal"`
	CombinedPath   string  `json:"combinedPath"`
	IndividualPath string  `json:"individualPath,omitempty"`
	ReceiptPath    string  `json:"receiptPath,omitempty"`
}

// GenerateBill builds a party from the catalog selection, renders the
// bill and persists it. Store failures do not undo a rendered bill:
// the response still succeeds, with a warning, and the failure is
// logged for the operator.
func (h *BillHandler) GenerateBill(c *gin.Context) {
	var req GenerateBillRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var party *clinic.Party
	var err error
	if req.PatientType == "vip" {
		discount := clinic.DefaultVIPDiscount
		if req.Discount != nil {
			discount = *req.Discount
		}
		party, err = clinic.NewVIPParty(req.PatientName, req.Phone, discount)
	} else {
		party, err = clinic.NewStandardParty(req.PatientName, req.Phone)
	}
	if err != nil {
		respondCoreError(c, err)
		return
	}

	selections, err := h.Catalog.Select(req.TreatmentIDs)
	if err != nil {
		respondCoreError(c, err)
		return
	}
	if err := party.AddSelections(selections); err != nil {
		respondCoreError(c, err)
		return
	}

	now := time.Now()
	billText := party.Render(h.Cfg.ClinicName, now)

	var warnings []string
	if err := h.Store.Append(billText); err != nil {
		slog.Error("combined bill log append failed", "path", h.Store.CombinedPath(), "error", err)
		warnings = append(warnings, "bill could not be appended to the combined log")
	}

	individualPath, err := h.Store.SaveIndividual(billText, party.Name, now)
	if err != nil {
		slog.Error("individual bill file write failed", "patient", party.Name, "error", err)
		warnings = append(warnings, "individual bill file could not be written")
	}

	receiptPath, err := h.Store.SaveReceipt(billstore.Receipt{
		PatientName:  party.Name,
		BillText:     billText,
		Total:        party.Total(),
		Prescription: req.Prescription,
	}, now)
	if err != nil {
		// The workbook is a convenience copy; failures are log-only.
		slog.Warn("receipt workbook write failed", "patient", party.Name, "error", err)
	}

	resp := GenerateBillResponse{
		BillText:       billText,
		PrintText:      printableText(billText, req.Prescription),
		Total:          party.Total(),
		OriginalTotal:  party.RawTotal(),
		CombinedPath:   h.Store.CombinedPath(),
		IndividualPath: individualPath,
		ReceiptPath:    receiptPath,
	}
	if len(warnings) > 0 {
		utils.SuccessWithWarning(c, "Bill generated with persistence warnings", resp, strings.Join(warnings, "; "))
		return
	}
	utils.Created(c, "Bill generated and saved successfully", resp)
}

// printableText is what the desk forwards to a printer: the bill
// followed by the prescription block.
func printableText(billText, prescription string) string {
	prescription = strings.TrimSpace(prescription)
	if prescription == "" {
		prescription = "(No prescription entered)"
	}
	return billText + "\n\n===== Prescription =====\n" + prescription
}

// SearchResponse carries the capped search results for one query.
type SearchResponse struct {
	Total     int      `json:"total"`
	Remaining int      `json:"remaining"`
	Records   []string `json:"records"`
}

// SearchBills scans the combined log for the q query parameter.
func (h *BillHandler) SearchBills(c *gin.Context) {
	result, err := h.Store.Search(c.Query("q"))
	if err != nil {
		respondCoreError(c, err)
		return
	}

	utils.Success(c, fmt.Sprintf("Found %d matching record(s)", result.Total), SearchResponse{
		Total:     result.Total,
		Remaining: result.Remaining(),
		Records:   result.Records,
	})
}
