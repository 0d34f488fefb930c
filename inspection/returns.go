package inspection

import (
	"fmt"
	"time"

	"github.com/atanum62/shyama-erp-sub000/models"
)

// InitiateReturn records the physical dispatch of color-rejected items back
// to the dyeing house, stamping challan number, date and images on each.
// Items that are not in the color-return sub-flow are skipped (callers
// pre-filter); re-invoking on already-returned items amends their details.
func (s *Service) InitiateReturn(lotID int64, itemIDs []string, challanNo string, date time.Time, images []string) (*models.Lot, error) {
	return s.withLot(lotID, func(lot *models.Lot) error {
		for _, id := range itemIDs {
			it := lot.Item(id)
			if it == nil || !it.IsColorRejected() {
				continue
			}
			it.MarkReturned(challanNo, date, images)
		}
		return nil
	})
}

// Rereceive accepts redyed items back into inspection under their new color.
// Every named item must currently be Returned; a violation fails fast before
// anything is mutated. Missing item ids are skipped so a stale bulk request
// does not block the rest of the batch. perItemWeights optionally supplies a
// replacement weight per item id.
func (s *Service) Rereceive(lotID int64, itemIDs []string, newColor string, date time.Time, challanNo string, images []string, perItemWeights map[string]float64) (*models.Lot, error) {
	return s.withLot(lotID, func(lot *models.Lot) error {
		var targets []*models.LotItem
		for _, id := range itemIDs {
			it := lot.Item(id)
			if it == nil {
				continue
			}
			if it.ReturnStatus != models.ReturnReturned {
				return fmt.Errorf("item %s: %w", id, ErrNotReturned)
			}
			if w, ok := perItemWeights[id]; ok && w < 0 {
				return fmt.Errorf("item %s: %w", id, ErrNegativeQuantity)
			}
			targets = append(targets, it)
		}

		for _, it := range targets {
			var newQty *float64
			if w, ok := perItemWeights[it.ID]; ok {
				q := w
				newQty = &q
			}
			it.Rereceive(newColor, challanNo, date, images, newQty)
		}
		return nil
	})
}

// ArchiveReturn promotes an item's completed return/rereceive cycle into a
// permanent ReturnRecord. The item itself is left untouched; the record is
// immutable from here on (deletion aside).
func (s *Service) ArchiveReturn(lotID int64, itemID string) (*models.ReturnRecord, error) {
	lots, err := s.Lots.GetLot(map[string]interface{}{"id": lotID}, true)
	if err != nil {
		return nil, fmt.Errorf("read lot %d: %w", lotID, err)
	}
	if len(lots) == 0 {
		return nil, ErrLotNotFound
	}
	lot := lots[0]

	it := lot.Item(itemID)
	if it == nil {
		return nil, ErrItemNotFound
	}
	if it.RereceiveChallanNo == "" || it.PreviousQuantity == nil {
		return nil, ErrNotArchivable
	}

	record := &models.ReturnRecord{
		LotID:              lot.ID,
		ItemID:             it.ID,
		PartyID:            lot.PartyID,
		Material:           it.Material,
		Diameter:           it.Diameter,
		Pieces:             it.Pieces,
		OriginalColor:      it.PreviousColor,
		NewColor:           it.Color,
		OriginalQuantity:   *it.PreviousQuantity,
		ReceivedQuantity:   it.Quantity,
		ReturnChallanNo:    it.ReturnChallanNo,
		ReturnDate:         it.ReturnDate,
		RereceiveChallanNo: it.RereceiveChallanNo,
		RereceiveDate:      it.RereceiveDate,
		CreatedAt:          s.now().UTC(),
	}
	if lot.Party != nil {
		record.PartyName = lot.Party.Name
	}

	if err := s.Records.SaveReturnRecord(record); err != nil {
		return nil, fmt.Errorf("archive return for item %s: %w", itemID, err)
	}
	return record, nil
}
