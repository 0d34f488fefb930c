package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/atanum62/shyama-erp-sub000/models"
	"github.com/atanum62/shyama-erp-sub000/repository"
)

type PartyHandler struct {
	Repo repository.PartyRepository
}

func (h *PartyHandler) CreateParty(w http.ResponseWriter, r *http.Request) {
	var party models.Party
	if err := json.NewDecoder(r.Body).Decode(&party); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if party.Name == "" {
		http.Error(w, "party name is required", http.StatusBadRequest)
		return
	}

	if err := h.Repo.CreateParty(&party); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(party)
}

func (h *PartyHandler) ListParties(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.ListParties()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []*models.Party{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}
