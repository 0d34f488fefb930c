package inspection

import (
	"fmt"
	"time"

	"github.com/atanum62/shyama-erp-sub000/models"
	"github.com/atanum62/shyama-erp-sub000/repository"
)

// Service owns the inspection lifecycle of lot items. Every mutation is a
// read-modify-write cycle on the whole lot under the lot's mutex, committed
// with a single SaveLot, and returns the updated lot so callers can refresh
// derived views without a second fetch.
type Service struct {
	Lots    repository.LotRepository
	Records repository.ReturnRecordRepository

	locks *lotLocks
	now   func() time.Time
}

func NewService(lots repository.LotRepository, records repository.ReturnRecordRepository) *Service {
	return &Service{
		Lots:    lots,
		Records: records,
		locks:   newLotLocks(),
		now:     time.Now,
	}
}

// withLot runs fn on the freshly read lot under the lot's lock and persists
// the whole document once.
func (s *Service) withLot(lotID int64, fn func(lot *models.Lot) error) (*models.Lot, error) {
	mu := s.locks.get(lotID)
	mu.Lock()
	defer mu.Unlock()

	lots, err := s.Lots.GetLot(map[string]interface{}{"id": lotID}, true)
	if err != nil {
		return nil, fmt.Errorf("read lot %d: %w", lotID, err)
	}
	if len(lots) == 0 {
		return nil, ErrLotNotFound
	}
	lot := lots[0]

	if err := fn(lot); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	lot.UpdatedAt = &now
	if err := s.Lots.SaveLot(lot); err != nil {
		return nil, fmt.Errorf("save lot %d: %w", lotID, err)
	}
	return lot, nil
}

// eachItem visits the named items. Stale ids are skipped so one of them
// never blocks the rest of a batch, but a request naming no existing item at
// all is an error: a single-item call with a bad id fails hard, and a bulk
// call that would silently do nothing does too.
func eachItem(lot *models.Lot, itemIDs []string, visit func(it *models.LotItem)) error {
	found := false
	for _, id := range itemIDs {
		if it := lot.Item(id); it != nil {
			found = true
			visit(it)
		}
	}
	if !found {
		return ErrItemNotFound
	}
	return nil
}

// ApproveItems approves the named items, recording gsm if supplied.
// Approving an already-approved item is a no-op apart from the gsm
// overwrite.
func (s *Service) ApproveItems(lotID int64, itemIDs []string, gsm *float64) (*models.Lot, error) {
	return s.withLot(lotID, func(lot *models.Lot) error {
		return eachItem(lot, itemIDs, func(it *models.LotItem) {
			it.Approve(gsm)
		})
	})
}

// RejectItems rejects the named items for the given cause.
func (s *Service) RejectItems(lotID int64, itemIDs []string, cause string) (*models.Lot, error) {
	if cause != models.CauseColor && cause != models.CauseWeight {
		return nil, ErrInvalidCause
	}
	return s.withLot(lotID, func(lot *models.Lot) error {
		return eachItem(lot, itemIDs, func(it *models.LotItem) {
			it.Reject(cause)
		})
	})
}

// ResetItems puts the named items back to Pending, voiding any return
// details.
func (s *Service) ResetItems(lotID int64, itemIDs []string) (*models.Lot, error) {
	return s.withLot(lotID, func(lot *models.Lot) error {
		return eachItem(lot, itemIDs, func(it *models.LotItem) {
			it.ResetToPending()
		})
	})
}

// ApproveGroups approves every still-Pending member of the named color
// groups in one lot write.
func (s *Service) ApproveGroups(lotID int64, keys []string, gsm *float64) (*models.Lot, error) {
	return s.withLot(lotID, func(lot *models.Lot) error {
		for _, it := range groupMembers(lot, keys) {
			if it.Status == models.StatusPending {
				it.Approve(gsm)
			}
		}
		return nil
	})
}

// RejectGroups rejects every still-Pending member of the named color groups
// for the given cause, in one lot write.
func (s *Service) RejectGroups(lotID int64, keys []string, cause string) (*models.Lot, error) {
	if cause != models.CauseColor && cause != models.CauseWeight {
		return nil, ErrInvalidCause
	}
	return s.withLot(lotID, func(lot *models.Lot) error {
		for _, it := range groupMembers(lot, keys) {
			if it.Status == models.StatusPending {
				it.Reject(cause)
			}
		}
		return nil
	})
}

// ResetGroups resets every non-Pending member of the named color groups back
// to Pending, in one lot write.
func (s *Service) ResetGroups(lotID int64, keys []string) (*models.Lot, error) {
	return s.withLot(lotID, func(lot *models.Lot) error {
		for _, it := range groupMembers(lot, keys) {
			if it.Status != models.StatusPending {
				it.ResetToPending()
			}
		}
		return nil
	})
}

// Reweigh corrects the recorded weight of a weight-rejected item and
// reinstates it to Pending, appending the audit entry. Calling it on an item
// that is not weight-rejected is a precondition violation and mutates
// nothing.
func (s *Service) Reweigh(lotID int64, itemID string, newQuantity float64) (*models.Lot, error) {
	if newQuantity < 0 {
		return nil, fmt.Errorf("reweigh to %v: %w", newQuantity, ErrNegativeQuantity)
	}
	return s.withLot(lotID, func(lot *models.Lot) error {
		it := lot.Item(itemID)
		if it == nil {
			return ErrItemNotFound
		}
		if !it.IsWeightRejected() {
			return ErrNotWeightRejected
		}
		it.Reweigh(newQuantity, s.now().UTC())
		return nil
	})
}

// DeleteLotItem removes one item from its lot.
func (s *Service) DeleteLotItem(lotID int64, itemID string) error {
	mu := s.locks.get(lotID)
	mu.Lock()
	defer mu.Unlock()
	return s.Lots.DeleteLotItem(lotID, itemID)
}
