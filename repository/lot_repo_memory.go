package repository

import (
	"fmt"
	"sync"
	"time"

	"github.com/atanum62/shyama-erp-sub000/models"
)

// MemoryLotRepo is an in-memory LotRepository used by tests and by dev mode
// when no database is configured. Lots are deep-copied on the way in and out
// so callers never share slices with the store.
type MemoryLotRepo struct {
	mu     sync.RWMutex
	lots   map[int64]*models.Lot
	nextID int64
	seq    int64
}

func NewMemoryLotRepo() *MemoryLotRepo {
	return &MemoryLotRepo{lots: make(map[int64]*models.Lot), nextID: 1}
}

func (r *MemoryLotRepo) CreateLot(lot *models.Lot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if lot.ID == 0 {
		lot.ID = r.nextID
		r.nextID++
	} else if lot.ID >= r.nextID {
		r.nextID = lot.ID + 1
	}
	if lot.CreatedAt.IsZero() {
		lot.CreatedAt = time.Now().UTC()
	}
	for i := range lot.Items {
		it := &lot.Items[i]
		if it.ID == "" {
			r.seq++
			it.ID = fmt.Sprintf("itm-%d-%d", lot.ID, r.seq)
		}
		if it.Status == "" {
			it.Status = models.StatusPending
		}
	}

	r.lots[lot.ID] = copyLot(lot)
	return nil
}

func (r *MemoryLotRepo) GetLot(filters map[string]interface{}, single bool) ([]*models.Lot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*models.Lot
	for _, lot := range r.lots {
		if !lotMatches(lot, filters) {
			continue
		}
		out = append(out, copyLot(lot))
		if single {
			break
		}
	}
	return out, nil
}

func (r *MemoryLotRepo) SaveLot(lot *models.Lot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.lots[lot.ID]; !ok {
		return fmt.Errorf("lot %d does not exist", lot.ID)
	}
	r.lots[lot.ID] = copyLot(lot)
	return nil
}

func (r *MemoryLotRepo) UpdatePDFCreatedAt(lotID int64, t time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lot, ok := r.lots[lotID]
	if !ok {
		return fmt.Errorf("lot %d does not exist", lotID)
	}
	ts := t
	lot.PdfCreatedAt = &ts
	return nil
}

func (r *MemoryLotRepo) DeleteLot(lotID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.lots, lotID)
	return nil
}

func (r *MemoryLotRepo) DeleteLotItem(lotID int64, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lot, ok := r.lots[lotID]
	if !ok {
		return fmt.Errorf("lot %d does not exist", lotID)
	}
	for i := range lot.Items {
		if lot.Items[i].ID == itemID {
			lot.Items = append(lot.Items[:i], lot.Items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("item %s does not exist in lot %d", itemID, lotID)
}

func lotMatches(lot *models.Lot, filters map[string]interface{}) bool {
	for k, v := range filters {
		switch k {
		case "id", "_id":
			if toInt64(v) != lot.ID {
				return false
			}
		case "party_id":
			if lot.PartyID == nil || toInt64(v) != *lot.PartyID {
				return false
			}
		case "lot_no":
			if s, ok := v.(string); !ok || s != lot.LotNo {
				return false
			}
		case "challan_no":
			if s, ok := v.(string); !ok || s != lot.ChallanNo {
				return false
			}
		case "from":
			if t, ok := v.(time.Time); !ok || lot.InwardDate.Before(t) {
				return false
			}
		case "to": // exclusive
			if t, ok := v.(time.Time); !ok || !lot.InwardDate.Before(t) {
				return false
			}
		}
	}
	return true
}

func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}

func copyLot(lot *models.Lot) *models.Lot {
	cp := *lot
	cp.Images = append([]string(nil), lot.Images...)
	cp.Items = make([]models.LotItem, len(lot.Items))
	for i := range lot.Items {
		cp.Items[i] = copyItem(&lot.Items[i])
	}
	return &cp
}

func copyItem(it *models.LotItem) models.LotItem {
	cp := *it
	cp.ReturnImages = append([]string(nil), it.ReturnImages...)
	cp.RereceiveImages = append([]string(nil), it.RereceiveImages...)
	cp.History = append([]models.WeighEntry(nil), it.History...)
	return cp
}
