package inspection

import (
	"errors"
	"testing"
	"time"

	"github.com/atanum62/shyama-erp-sub000/models"
)

// Scenario: a Red item is rejected for color, dispatched back on challan
// RET-1, redyed Maroon and rereceived at 48 Kg, then archived.
func TestColorReturnCycle(t *testing.T) {
	svc := newTestService()
	lot := seedLot(t, svc, testItem("a", "Red", 10, 50))

	if _, err := svc.RejectItems(lot.ID, []string{"a"}, models.CauseColor); err != nil {
		t.Fatalf("reject: %v", err)
	}

	retDate := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	updated, err := svc.InitiateReturn(lot.ID, []string{"a"}, "RET-1", retDate, []string{"ret.jpg"})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	it := getItem(t, updated, "a")
	if it.ReturnStatus != models.ReturnReturned || it.ReturnChallanNo != "RET-1" {
		t.Fatalf("expected Returned on RET-1, got %s/%s", it.ReturnStatus, it.ReturnChallanNo)
	}

	rercvDate := time.Date(2024, 5, 28, 0, 0, 0, 0, time.UTC)
	updated, err = svc.Rereceive(lot.ID, []string{"a"}, "Maroon", rercvDate, "DY-55", nil,
		map[string]float64{"a": 48})
	if err != nil {
		t.Fatalf("rereceive: %v", err)
	}
	it = getItem(t, updated, "a")
	if it.Status != models.StatusPending || it.Color != "Maroon" || it.Quantity != 48 {
		t.Fatalf("expected Pending Maroon at 48, got %s %s at %v", it.Status, it.Color, it.Quantity)
	}
	if it.ReturnChallanNo != "RET-1" || it.RereceiveChallanNo != "DY-55" {
		t.Fatalf("both challans must survive rereceive, got %q/%q", it.ReturnChallanNo, it.RereceiveChallanNo)
	}
	if len(it.History) != 0 {
		t.Fatalf("rereceive must not write weigh history, got %d entries", len(it.History))
	}

	record, err := svc.ArchiveReturn(lot.ID, "a")
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if record.OriginalColor != "Red" || record.NewColor != "Maroon" {
		t.Fatalf("expected Red→Maroon record, got %s→%s", record.OriginalColor, record.NewColor)
	}
	if record.OriginalQuantity != 50 || record.ReceivedQuantity != 48 {
		t.Fatalf("expected quantities 50/48, got %v/%v", record.OriginalQuantity, record.ReceivedQuantity)
	}
	if record.ReturnChallanNo != "RET-1" || record.RereceiveChallanNo != "DY-55" {
		t.Fatalf("record must carry both challans, got %q/%q", record.ReturnChallanNo, record.RereceiveChallanNo)
	}

	records, err := svc.Records.ListReturnRecords()
	if err != nil || len(records) != 1 {
		t.Fatalf("expected one archived record, got %d (%v)", len(records), err)
	}
}

func TestInitiateReturnSkipsIneligibleItems(t *testing.T) {
	svc := newTestService()
	lot := seedLot(t, svc,
		testItem("a", "Red", 10, 50),
		testItem("b", "Red", 5, 25),
	)
	if _, err := svc.RejectItems(lot.ID, []string{"b"}, models.CauseWeight); err != nil {
		t.Fatalf("reject: %v", err)
	}

	updated, err := svc.InitiateReturn(lot.ID, []string{"a", "b"}, "RET-2", testNow, nil)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if getItem(t, updated, "a").ReturnStatus != "" {
		t.Fatalf("pending item must not be marked returned")
	}
	if getItem(t, updated, "b").ReturnStatus != "" {
		t.Fatalf("weight-rejected item must not enter the return flow")
	}
}

func TestInitiateReturnAmendsDetails(t *testing.T) {
	svc := newTestService()
	lot := seedLot(t, svc, testItem("a", "Red", 10, 50))
	if _, err := svc.RejectItems(lot.ID, []string{"a"}, models.CauseColor); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if _, err := svc.InitiateReturn(lot.ID, []string{"a"}, "RET-3", testNow, nil); err != nil {
		t.Fatalf("first dispatch: %v", err)
	}

	fixed := time.Date(2024, 5, 21, 0, 0, 0, 0, time.UTC)
	updated, err := svc.InitiateReturn(lot.ID, []string{"a"}, "RET-3A", fixed, []string{"fixed.jpg"})
	if err != nil {
		t.Fatalf("amend dispatch: %v", err)
	}
	it := getItem(t, updated, "a")
	if it.ReturnChallanNo != "RET-3A" || it.ReturnDate == nil || !it.ReturnDate.Equal(fixed) {
		t.Fatalf("expected amended challan details, got %q at %v", it.ReturnChallanNo, it.ReturnDate)
	}
}

func TestRereceiveFailsFastOnUnreturnedItem(t *testing.T) {
	svc := newTestService()
	lot := seedLot(t, svc,
		testItem("a", "Red", 10, 50),
		testItem("b", "Red", 5, 25),
	)
	if _, err := svc.RejectItems(lot.ID, []string{"a", "b"}, models.CauseColor); err != nil {
		t.Fatalf("reject: %v", err)
	}
	// Only a is physically dispatched.
	if _, err := svc.InitiateReturn(lot.ID, []string{"a"}, "RET-4", testNow, nil); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	_, err := svc.Rereceive(lot.ID, []string{"a", "b"}, "Maroon", testNow, "DY-1", nil, nil)
	if !errors.Is(err, ErrNotReturned) {
		t.Fatalf("expected ErrNotReturned, got %v", err)
	}

	// The violation must leave even the eligible item untouched.
	lots, err := svc.Lots.GetLot(map[string]interface{}{"id": lot.ID}, true)
	if err != nil || len(lots) != 1 {
		t.Fatalf("reload lot: %v", err)
	}
	if getItem(t, lots[0], "a").Color != "Red" {
		t.Fatalf("failed rereceive must not recolor any item")
	}
}

func TestRereceiveSkipsMissingIDs(t *testing.T) {
	svc := newTestService()
	lot := seedLot(t, svc, testItem("a", "Red", 10, 50))
	if _, err := svc.RejectItems(lot.ID, []string{"a"}, models.CauseColor); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if _, err := svc.InitiateReturn(lot.ID, []string{"a"}, "RET-5", testNow, nil); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	updated, err := svc.Rereceive(lot.ID, []string{"a", "ghost"}, "Navy", testNow, "DY-2", nil, nil)
	if err != nil {
		t.Fatalf("rereceive with stale id: %v", err)
	}
	it := getItem(t, updated, "a")
	if it.Color != "Navy" {
		t.Fatalf("surviving item must be rereceived, got color %q", it.Color)
	}
	if it.Quantity != 50 {
		t.Fatalf("without a replacement weight the quantity stays, got %v", it.Quantity)
	}
}

func TestRereceiveRejectsNegativeWeight(t *testing.T) {
	svc := newTestService()
	lot := seedLot(t, svc, testItem("a", "Red", 10, 50))
	if _, err := svc.RejectItems(lot.ID, []string{"a"}, models.CauseColor); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if _, err := svc.InitiateReturn(lot.ID, []string{"a"}, "RET-7", testNow, nil); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	_, err := svc.Rereceive(lot.ID, []string{"a"}, "Maroon", testNow, "DY-3", nil,
		map[string]float64{"a": -5})
	if !errors.Is(err, ErrNegativeQuantity) {
		t.Fatalf("expected ErrNegativeQuantity, got %v", err)
	}

	lots, err := svc.Lots.GetLot(map[string]interface{}{"id": lot.ID}, true)
	if err != nil || len(lots) != 1 {
		t.Fatalf("reload lot: %v", err)
	}
	it := getItem(t, lots[0], "a")
	if it.Color != "Red" || it.Quantity != 50 || it.ReturnStatus != models.ReturnReturned {
		t.Fatalf("failed rereceive must mutate nothing, got %s at %v (%s)", it.Color, it.Quantity, it.ReturnStatus)
	}
}

func TestArchiveRequiresCompletedCycle(t *testing.T) {
	svc := newTestService()
	lot := seedLot(t, svc, testItem("a", "Red", 10, 50))

	if _, err := svc.ArchiveReturn(lot.ID, "a"); !errors.Is(err, ErrNotArchivable) {
		t.Fatalf("pending item: expected ErrNotArchivable, got %v", err)
	}

	if _, err := svc.RejectItems(lot.ID, []string{"a"}, models.CauseColor); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if _, err := svc.InitiateReturn(lot.ID, []string{"a"}, "RET-6", testNow, nil); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if _, err := svc.ArchiveReturn(lot.ID, "a"); !errors.Is(err, ErrNotArchivable) {
		t.Fatalf("returned but not rereceived: expected ErrNotArchivable, got %v", err)
	}

	if _, err := svc.ArchiveReturn(lot.ID, "ghost"); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
	if _, err := svc.ArchiveReturn(404, "a"); !errors.Is(err, ErrLotNotFound) {
		t.Fatalf("expected ErrLotNotFound, got %v", err)
	}
}
