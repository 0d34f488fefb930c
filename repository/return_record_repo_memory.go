package repository

import (
	"sort"
	"sync"
	"time"

	"github.com/atanum62/shyama-erp-sub000/models"
)

// MemoryReturnRecordRepo is the in-memory ReturnRecordRepository counterpart
// of MemoryLotRepo.
type MemoryReturnRecordRepo struct {
	mu      sync.RWMutex
	records map[int64]*models.ReturnRecord
	nextID  int64
}

func NewMemoryReturnRecordRepo() *MemoryReturnRecordRepo {
	return &MemoryReturnRecordRepo{records: make(map[int64]*models.ReturnRecord), nextID: 1}
}

func (r *MemoryReturnRecordRepo) SaveReturnRecord(record *models.ReturnRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record.ID == 0 {
		record.ID = r.nextID
		r.nextID++
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	cp := *record
	r.records[record.ID] = &cp
	return nil
}

func (r *MemoryReturnRecordRepo) ListReturnRecords() ([]*models.ReturnRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.ReturnRecord, 0, len(r.records))
	for _, rec := range r.records {
		cp := *rec
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryReturnRecordRepo) DeleteReturnRecord(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, id)
	return nil
}
