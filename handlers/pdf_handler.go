package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/atanum62/shyama-erp-sub000/repository"
	"github.com/atanum62/shyama-erp-sub000/utils"
)

type PDFHandler struct {
	Repo     *repository.PDFRepository
	SavePath string
}

// ReturnChallanPDF handles the API request to generate and save a return
// challan PDF for one dispatched item.
func (h *PDFHandler) ReturnChallanPDF(w http.ResponseWriter, r *http.Request) {
	lotIDStr := r.URL.Query().Get("lot")
	itemID := r.URL.Query().Get("item")
	if lotIDStr == "" || itemID == "" {
		http.Error(w, "missing lot or item id", http.StatusBadRequest)
		return
	}

	lotID, err := strconv.ParseInt(lotIDStr, 10, 64)
	if err != nil {
		http.Error(w, "invalid lot id", http.StatusBadRequest)
		return
	}

	// Ensure save directory exists
	saveDir := h.SavePath
	if saveDir == "" {
		saveDir = "./pdfs"
	}
	if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
		http.Error(w, "failed to create save directory: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Generate PDF bytes
	pdfBytes, err := utils.GenerateReturnChallanPDF(h.Repo, lotID, itemID)
	if err != nil {
		http.Error(w, "failed to generate PDF: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if len(pdfBytes) == 0 {
		http.Error(w, "no dispatched item found", http.StatusNotFound)
		return
	}

	// Save PDF to file
	filename := fmt.Sprintf("return_challan_%d_%s_%d.pdf", lotID, itemID, time.Now().Unix())
	savePath := filepath.Join(saveDir, filename)

	if err := os.WriteFile(savePath, pdfBytes, 0644); err != nil {
		http.Error(w, "failed to save PDF: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Keep a copy in R2 so the challan stays reachable after redeploys
	fileURL, err := utils.UploadToR2(pdfBytes, filename, "application/pdf")
	if err != nil {
		// Log the error but don't block the response
		fmt.Printf("failed to upload challan PDF for lot %d item %s: %v\n", lotID, itemID, err)
	}

	// Stamp pdf_created_at on the lot
	if err := h.Repo.LotRepo.UpdatePDFCreatedAt(lotID, time.Now()); err != nil {
		fmt.Printf("failed to update pdf_created_at for lot %d: %v\n", lotID, err)
	}

	// Respond with success
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(fmt.Sprintf(`{"success":true,"file":"%s","url":"%s"}`, filename, fileURL)))
}
