package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/atanum62/shyama-erp-sub000/inspection"
	"github.com/atanum62/shyama-erp-sub000/models"
)

// InspectionHandler exposes the item state machine and the color-group bulk
// actions. Every mutation responds with the updated lot.
type InspectionHandler struct {
	Service *inspection.Service
}

type itemActionRequest struct {
	Lot   int64    `json:"lot"`
	Items []string `json:"items"`
	Cause string   `json:"cause,omitempty"`
	GSM   *float64 `json:"gsm,omitempty"`
}

func (h *InspectionHandler) Approve(w http.ResponseWriter, r *http.Request) {
	var req itemActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "Invalid request payload: " + err.Error()})
		return
	}

	lot, err := h.Service.ApproveItems(req.Lot, req.Items, req.GSM)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Items approved", Data: lot})
}

func (h *InspectionHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req itemActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "Invalid request payload: " + err.Error()})
		return
	}

	lot, err := h.Service.RejectItems(req.Lot, req.Items, req.Cause)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Items rejected", Data: lot})
}

func (h *InspectionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req itemActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "Invalid request payload: " + err.Error()})
		return
	}

	lot, err := h.Service.ResetItems(req.Lot, req.Items)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Items reset to pending", Data: lot})
}

type groupActionRequest struct {
	Lot    int64    `json:"lot"`
	Keys   []string `json:"keys"`
	Action string   `json:"action"` // approve | reject | reset
	Cause  string   `json:"cause,omitempty"`
	GSM    *float64 `json:"gsm,omitempty"`
}

// Groups applies one bulk action to the union of the selected color groups,
// committed as a single lot write.
func (h *InspectionHandler) Groups(w http.ResponseWriter, r *http.Request) {
	var req groupActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "Invalid request payload: " + err.Error()})
		return
	}

	var (
		lot *models.Lot
		err error
	)
	switch req.Action {
	case "approve":
		lot, err = h.Service.ApproveGroups(req.Lot, req.Keys, req.GSM)
	case "reject":
		lot, err = h.Service.RejectGroups(req.Lot, req.Keys, req.Cause)
	case "reset":
		lot, err = h.Service.ResetGroups(req.Lot, req.Keys)
	default:
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "action must be approve, reject or reset"})
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "Group action applied",
		Data: struct {
			Lot    *models.Lot           `json:"lot"`
			Groups []inspection.ColorGroup `json:"groups"`
		}{lot, inspection.GroupLotItems(lot)},
	})
}

// ListGroups returns the color-group view of one lot.
func (h *InspectionHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	lotID, err := strconv.ParseInt(r.URL.Query().Get("lot"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "invalid lot id"})
		return
	}

	lots, err := h.Service.Lots.GetLot(map[string]interface{}{"id": lotID}, true)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}
	if len(lots) == 0 {
		writeJSON(w, http.StatusNotFound, ApiResponse{Success: false, Message: "lot not found"})
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: inspection.GroupLotItems(lots[0])})
}

type reweighRequest struct {
	Lot         int64   `json:"lot"`
	Item        string  `json:"item"`
	NewQuantity float64 `json:"new_quantity"`
}

func (h *InspectionHandler) Reweigh(w http.ResponseWriter, r *http.Request) {
	var req reweighRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "Invalid request payload: " + err.Error()})
		return
	}

	lot, err := h.Service.Reweigh(req.Lot, req.Item, req.NewQuantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Item reweighed and reinstated", Data: lot})
}
