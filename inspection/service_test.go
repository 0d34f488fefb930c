package inspection

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/atanum62/shyama-erp-sub000/models"
	"github.com/atanum62/shyama-erp-sub000/repository"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService() *Service {
	svc := NewService(repository.NewMemoryLotRepo(), repository.NewMemoryReturnRecordRepo())
	svc.now = func() time.Time { return testNow }
	return svc
}

func testItem(id, color string, pieces int, qty float64) models.LotItem {
	return models.LotItem{
		ID:       id,
		Material: "Cotton Lycra",
		Color:    color,
		Diameter: "30",
		Pieces:   pieces,
		Quantity: qty,
		Unit:     "Kg",
		Status:   models.StatusPending,
	}
}

func seedLot(t *testing.T, svc *Service, items ...models.LotItem) *models.Lot {
	t.Helper()
	lot := &models.Lot{
		LotNo:      "LOT-1",
		ChallanNo:  "CH-100",
		InwardDate: testNow.AddDate(0, 0, -2),
		Items:      items,
	}
	if err := svc.Lots.CreateLot(lot); err != nil {
		t.Fatalf("seed lot: %v", err)
	}
	return lot
}

func getItem(t *testing.T, lot *models.Lot, id string) *models.LotItem {
	t.Helper()
	it := lot.Item(id)
	if it == nil {
		t.Fatalf("item %s missing from lot %d", id, lot.ID)
	}
	return it
}

func TestApproveItemsRecordsGSM(t *testing.T) {
	svc := newTestService()
	lot := seedLot(t, svc, testItem("a", "Red", 10, 50))

	gsm := 180.0
	updated, err := svc.ApproveItems(lot.ID, []string{"a"}, &gsm)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}

	it := getItem(t, updated, "a")
	if it.Status != models.StatusApproved || it.GSM == nil || *it.GSM != 180 {
		t.Fatalf("expected approved with gsm 180, got %s gsm %v", it.Status, it.GSM)
	}
	if updated.UpdatedAt == nil || !updated.UpdatedAt.Equal(testNow) {
		t.Fatalf("expected lot stamped at the fixed clock, got %v", updated.UpdatedAt)
	}
}

func TestApproveIsObservablyIdempotent(t *testing.T) {
	svc := newTestService()
	lot := seedLot(t, svc, testItem("a", "Red", 10, 50))

	gsm := 175.0
	first, err := svc.ApproveItems(lot.ID, []string{"a"}, &gsm)
	if err != nil {
		t.Fatalf("first approve: %v", err)
	}
	second, err := svc.ApproveItems(lot.ID, []string{"a"}, nil)
	if err != nil {
		t.Fatalf("second approve: %v", err)
	}

	if !reflect.DeepEqual(getItem(t, first, "a"), getItem(t, second, "a")) {
		t.Fatalf("double approve changed the item:\nfirst:  %+v\nsecond: %+v",
			getItem(t, first, "a"), getItem(t, second, "a"))
	}
}

func TestRejectItemsRejectsUnknownCause(t *testing.T) {
	svc := newTestService()
	lot := seedLot(t, svc, testItem("a", "Red", 10, 50))

	if _, err := svc.RejectItems(lot.ID, []string{"a"}, "Shrinkage"); !errors.Is(err, ErrInvalidCause) {
		t.Fatalf("expected ErrInvalidCause, got %v", err)
	}
}

func TestSingleItemNotFoundIsHardError(t *testing.T) {
	svc := newTestService()
	lot := seedLot(t, svc, testItem("a", "Red", 10, 50))

	if _, err := svc.ApproveItems(lot.ID, []string{"ghost"}, nil); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
	if _, err := svc.ApproveItems(99, []string{"a"}, nil); !errors.Is(err, ErrLotNotFound) {
		t.Fatalf("expected ErrLotNotFound, got %v", err)
	}
}

func TestBulkNamingNoExistingItemIsError(t *testing.T) {
	svc := newTestService()
	lot := seedLot(t, svc, testItem("a", "Red", 10, 50))

	if _, err := svc.ApproveItems(lot.ID, []string{"ghost1", "ghost2"}, nil); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("all-stale batch: expected ErrItemNotFound, got %v", err)
	}

	lots, err := svc.Lots.GetLot(map[string]interface{}{"id": lot.ID}, true)
	if err != nil || len(lots) != 1 {
		t.Fatalf("reload lot: %v", err)
	}
	if getItem(t, lots[0], "a").Status != models.StatusPending {
		t.Fatalf("failed batch must leave the lot untouched")
	}
}

func TestBulkSkipsMissingItems(t *testing.T) {
	svc := newTestService()
	lot := seedLot(t, svc, testItem("a", "Red", 10, 50), testItem("b", "Blue", 5, 25))

	updated, err := svc.ApproveItems(lot.ID, []string{"a", "ghost", "b"}, nil)
	if err != nil {
		t.Fatalf("bulk approve with stale id: %v", err)
	}
	if getItem(t, updated, "a").Status != models.StatusApproved ||
		getItem(t, updated, "b").Status != models.StatusApproved {
		t.Fatalf("surviving items must still be approved")
	}
}

// Scenario: a 50 Kg item fails the weight check, the scale is read again and
// the item re-enters inspection at 47.5 Kg with the correction on record.
func TestWeightRejectThenReweigh(t *testing.T) {
	svc := newTestService()
	lot := seedLot(t, svc, testItem("a", "Red", 10, 50))

	if _, err := svc.RejectItems(lot.ID, []string{"a"}, models.CauseWeight); err != nil {
		t.Fatalf("reject: %v", err)
	}
	updated, err := svc.Reweigh(lot.ID, "a", 47.5)
	if err != nil {
		t.Fatalf("reweigh: %v", err)
	}

	it := getItem(t, updated, "a")
	if it.Status != models.StatusPending || it.Quantity != 47.5 {
		t.Fatalf("expected Pending at 47.5, got %s at %v", it.Status, it.Quantity)
	}
	if len(it.History) != 1 {
		t.Fatalf("expected one weigh entry, got %d", len(it.History))
	}
	h := it.History[0]
	if h.Action != "Reweighted" || h.OldWeight != 50 || h.NewWeight != 47.5 || !h.Timestamp.Equal(testNow) {
		t.Fatalf("unexpected weigh entry %+v", h)
	}
}

func TestReweighRequiresWeightRejection(t *testing.T) {
	svc := newTestService()
	lot := seedLot(t, svc, testItem("a", "Red", 10, 50), testItem("b", "Blue", 5, 25))

	if _, err := svc.Reweigh(lot.ID, "a", 48); !errors.Is(err, ErrNotWeightRejected) {
		t.Fatalf("pending item: expected ErrNotWeightRejected, got %v", err)
	}

	if _, err := svc.RejectItems(lot.ID, []string{"b"}, models.CauseColor); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if _, err := svc.Reweigh(lot.ID, "b", 24); !errors.Is(err, ErrNotWeightRejected) {
		t.Fatalf("color-rejected item: expected ErrNotWeightRejected, got %v", err)
	}

	if _, err := svc.Reweigh(lot.ID, "a", -1); !errors.Is(err, ErrNegativeQuantity) {
		t.Fatalf("negative weight: expected ErrNegativeQuantity, got %v", err)
	}

	lots, err := svc.Lots.GetLot(map[string]interface{}{"id": lot.ID}, true)
	if err != nil || len(lots) != 1 {
		t.Fatalf("reload lot: %v", err)
	}
	if getItem(t, lots[0], "a").Quantity != 50 || len(getItem(t, lots[0], "a").History) != 0 {
		t.Fatalf("failed reweigh must not mutate the item")
	}
}

// Rejecting, resetting, then repeating must land in the same observable
// state as a single reject-reset cycle.
func TestResetAfterRejectIsObservationallyClean(t *testing.T) {
	svc := newTestService()
	lot := seedLot(t, svc, testItem("a", "Red", 10, 50))

	once, err := cycleRejectReset(svc, lot.ID, 1)
	if err != nil {
		t.Fatalf("one cycle: %v", err)
	}

	svc2 := newTestService()
	lot2 := seedLot(t, svc2, testItem("a", "Red", 10, 50))
	thrice, err := cycleRejectReset(svc2, lot2.ID, 3)
	if err != nil {
		t.Fatalf("three cycles: %v", err)
	}

	if !reflect.DeepEqual(getItem(t, once, "a"), getItem(t, thrice, "a")) {
		t.Fatalf("repeated reject/reset cycles diverged:\nonce:   %+v\nthrice: %+v",
			getItem(t, once, "a"), getItem(t, thrice, "a"))
	}
}

func cycleRejectReset(svc *Service, lotID int64, times int) (*models.Lot, error) {
	var lot *models.Lot
	var err error
	for i := 0; i < times; i++ {
		if lot, err = svc.RejectItems(lotID, []string{"a"}, models.CauseColor); err != nil {
			return nil, err
		}
		if lot, err = svc.ResetItems(lotID, []string{"a"}); err != nil {
			return nil, err
		}
	}
	return lot, nil
}

func TestDeleteLotItem(t *testing.T) {
	svc := newTestService()
	lot := seedLot(t, svc, testItem("a", "Red", 10, 50), testItem("b", "Blue", 5, 25))

	if err := svc.DeleteLotItem(lot.ID, "a"); err != nil {
		t.Fatalf("delete item: %v", err)
	}
	lots, err := svc.Lots.GetLot(map[string]interface{}{"id": lot.ID}, true)
	if err != nil || len(lots) != 1 {
		t.Fatalf("reload lot: %v", err)
	}
	if len(lots[0].Items) != 1 || lots[0].Items[0].ID != "b" {
		t.Fatalf("expected only item b to survive, got %+v", lots[0].Items)
	}
}
