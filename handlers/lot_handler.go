package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/atanum62/shyama-erp-sub000/models"
	"github.com/atanum62/shyama-erp-sub000/repository"
)

type LotHandler struct {
	Repo repository.LotRepository
}

// CreateLot handler. Accepts either a plain JSON body or a multipart form
// with a "payload" JSON part plus "images" files; images are uploaded before
// the lot is written.
func (h *LotHandler) CreateLot(w http.ResponseWriter, r *http.Request) {
	var lot models.Lot

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := json.Unmarshal([]byte(r.FormValue("payload")), &lot); err != nil {
			http.Error(w, "invalid payload: "+err.Error(), http.StatusBadRequest)
			return
		}
		urls, err := uploadImages(r, "images")
		if err != nil {
			writeUploadError(w, urls, err)
			return
		}
		lot.Images = append(lot.Images, urls...)
	} else {
		if err := json.NewDecoder(r.Body).Decode(&lot); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	// Items always enter inspection as Pending with a non-negative weight.
	// The postgres schema enforces the weight check too; rejecting here
	// keeps the mongo and memory backends to the same rule.
	for i := range lot.Items {
		if lot.Items[i].Quantity < 0 {
			http.Error(w, fmt.Sprintf("item %q: quantity must be non-negative", lot.Items[i].ID), http.StatusBadRequest)
			return
		}
		lot.Items[i].Status = models.StatusPending
		lot.Items[i].RejectionCause = ""
		lot.Items[i].ReturnStatus = ""
	}

	if err := h.Repo.CreateLot(&lot); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(lot)
}

// GetAllLots handler. Accepts id/party_id/lot_no/challan_no equality
// filters plus an inward-date range via from/to (2006-01-02, inclusive);
// unknown query keys are ignored.
func (h *LotHandler) GetAllLots(w http.ResponseWriter, r *http.Request) {
	filters := make(map[string]interface{})
	q := r.URL.Query()
	for _, key := range []string{"id", "party_id", "lot_no", "challan_no"} {
		v := q.Get(key)
		if v == "" {
			continue
		}
		if intVal, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters[key] = intVal
		} else {
			filters[key] = v
		}
	}
	for _, key := range []string{"from", "to"} {
		v := q.Get(key)
		if v == "" {
			continue
		}
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			http.Error(w, "invalid "+key+" date, want YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		if key == "to" {
			// Repos treat "to" as an exclusive upper bound.
			t = t.AddDate(0, 0, 1)
		}
		filters[key] = t
	}

	list, err := h.Repo.GetLot(filters, false) // fetch multiple
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []*models.Lot{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// GetLotByID handler
func (h *LotHandler) GetLotByID(w http.ResponseWriter, r *http.Request, id string) {
	lotID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		http.Error(w, "invalid lot ID", http.StatusBadRequest)
		return
	}

	filters := map[string]interface{}{"id": lotID}
	list, err := h.Repo.GetLot(filters, true) // fetch single
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(list) == 0 {
		http.Error(w, "Lot not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list[0])
}

func (h *LotHandler) DeleteLot(w http.ResponseWriter, r *http.Request) {
	lotIDStr := r.URL.Query().Get("id")
	if lotIDStr == "" {
		http.Error(w, "missing lot id", http.StatusBadRequest)
		return
	}

	lotID, err := strconv.ParseInt(lotIDStr, 10, 64)
	if err != nil {
		http.Error(w, "invalid lot id", http.StatusBadRequest)
		return
	}

	if err := h.Repo.DeleteLot(lotID); err != nil {
		http.Error(w, "failed to delete lot: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"success":true,"message":"Lot deleted successfully"}`))
}

func (h *LotHandler) DeleteLotItem(w http.ResponseWriter, r *http.Request) {
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

	if err := h.Repo.DeleteLotItem(lotID, itemID); err != nil {
		http.Error(w, "failed to delete item: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"success":true,"message":"Item deleted successfully"}`))
}
