package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/atanum62/shyama-erp-sub000/inspection"
	"github.com/atanum62/shyama-erp-sub000/models"
	"github.com/atanum62/shyama-erp-sub000/repository"
)

// ReturnHandler drives the return/rereceive sub-flow for color-rejected
// items and the permanent return-record ledger.
type ReturnHandler struct {
	Service *inspection.Service
	Records repository.ReturnRecordRepository
}

type dispatchPayload struct {
	Lot       int64    `json:"lot"`
	Items     []string `json:"items"`
	ChallanNo string   `json:"challan_no"`
	Date      string   `json:"date"` // 2006-01-02
}

// Dispatch records the physical return of color-rejected items to the dyeing
// house. Multipart: "payload" JSON plus "images" files; images are uploaded
// before the transition so a failed upload never commits one.
func (h *ReturnHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	payload, images, ok := h.parseMultipart(w, r)
	if !ok {
		return
	}

	var req dispatchPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "invalid payload: " + err.Error()})
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: err.Error()})
		return
	}

	lot, err := h.Service.InitiateReturn(req.Lot, req.Items, req.ChallanNo, date, images)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Return dispatched", Data: lot})
}

type rereceivePayload struct {
	Lot       int64              `json:"lot"`
	Items     []string           `json:"items"`
	NewColor  string             `json:"new_color"`
	ChallanNo string             `json:"challan_no"`
	Date      string             `json:"date"`
	Weights   map[string]float64 `json:"weights,omitempty"`
}

// Rereceive accepts redyed items back into inspection under a new color.
func (h *ReturnHandler) Rereceive(w http.ResponseWriter, r *http.Request) {
	payload, images, ok := h.parseMultipart(w, r)
	if !ok {
		return
	}

	var req rereceivePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "invalid payload: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.NewColor) == "" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "new_color is required"})
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: err.Error()})
		return
	}

	lot, err := h.Service.Rereceive(req.Lot, req.Items, req.NewColor, date, req.ChallanNo, images, req.Weights)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Items rereceived", Data: lot})
}

type archiveRequest struct {
	Lot  int64  `json:"lot"`
	Item string `json:"item"`
}

// Archive promotes a completed return/rereceive cycle to the permanent
// ledger.
func (h *ReturnHandler) Archive(w http.ResponseWriter, r *http.Request) {
	var req archiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "Invalid request payload: " + err.Error()})
		return
	}

	record, err := h.Service.ArchiveReturn(req.Lot, req.Item)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Message: "Return cycle archived", Data: record})
}

// History lists the archived return records.
func (h *ReturnHandler) History(w http.ResponseWriter, r *http.Request) {
	records, err := h.Records.ListReturnRecords()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}
	if records == nil {
		records = []*models.ReturnRecord{}
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: records})
}

// DeleteHistory removes one archived record. Irreversible.
func (h *ReturnHandler) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "invalid record id"})
		return
	}
	if err := h.Records.DeleteReturnRecord(id); err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Return record deleted"})
}

// parseMultipart pulls the "payload" JSON part and uploads the "images"
// files. Also accepts a plain JSON body for image-less calls.
func (h *ReturnHandler) parseMultipart(w http.ResponseWriter, r *http.Request) ([]byte, []string, bool) {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "multipart/form-data") {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: err.Error()})
			return nil, nil, false
		}
		return body, nil, true
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: err.Error()})
		return nil, nil, false
	}
	urls, err := uploadImages(r, "images")
	if err != nil {
		writeUploadError(w, urls, err)
		return nil, nil, false
	}
	return []byte(r.FormValue("payload")), urls, true
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}
