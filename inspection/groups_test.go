package inspection

import (
	"reflect"
	"testing"
	"time"

	"github.com/atanum62/shyama-erp-sub000/models"
	"github.com/atanum62/shyama-erp-sub000/repository"
)

func TestGroupLotItemsSplitsByColorAndState(t *testing.T) {
	svc := newTestService()
	lot := seedLot(t, svc,
		testItem("a", "Red", 10, 50),
		testItem("b", "red ", 5, 25), // same color, spelling differs
		testItem("c", "Blue", 4, 20),
	)
	if _, err := svc.ApproveItems(lot.ID, []string{"c"}, nil); err != nil {
		t.Fatalf("approve: %v", err)
	}

	lots, _ := svc.Lots.GetLot(map[string]interface{}{"id": lot.ID}, true)
	groups := GroupLotItems(lots[0])

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d: %+v", len(groups), groups)
	}
	red := groups[0]
	if red.Key != "red|Pending" || len(red.Items) != 2 {
		t.Fatalf("expected case-insensitive red pending group of 2, got %+v", red)
	}
	if red.TotalQuantity != 75 || red.TotalPieces != 15 {
		t.Fatalf("expected totals 75/15, got %v/%d", red.TotalQuantity, red.TotalPieces)
	}
	if groups[1].Key != "blue|Approved" {
		t.Fatalf("expected blue approved group, got %q", groups[1].Key)
	}
}

func TestColorRejectedItemsBucketByReturnStatus(t *testing.T) {
	svc := newTestService()
	lot := seedLot(t, svc,
		testItem("a", "Red", 10, 50),
		testItem("b", "Red", 5, 25),
	)
	if _, err := svc.RejectItems(lot.ID, []string{"a", "b"}, models.CauseColor); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if _, err := svc.InitiateReturn(lot.ID, []string{"a"}, "RET-1", testNow, nil); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	lots, _ := svc.Lots.GetLot(map[string]interface{}{"id": lot.ID}, true)
	groups := GroupLotItems(lots[0])

	keys := []string{groups[0].Key, groups[1].Key}
	want := []string{"red|" + BucketReturned, "red|" + BucketAwaitingReturn}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("expected buckets %v, got %v", want, keys)
	}
}

// Bulk group rejection touches only the Pending members of the named group;
// items of other colors or already past inspection are untouched.
func TestRejectGroupTouchesOnlyPendingMembers(t *testing.T) {
	svc := newTestService()
	lot := seedLot(t, svc,
		testItem("a", "Red", 10, 50),
		testItem("b", "Red", 5, 25),
		testItem("c", "Red", 4, 20),
		testItem("d", "Blue", 3, 15),
	)
	if _, err := svc.ApproveItems(lot.ID, []string{"c"}, nil); err != nil {
		t.Fatalf("approve: %v", err)
	}

	updated, err := svc.RejectGroups(lot.ID, []string{"red|Pending"}, models.CauseColor)
	if err != nil {
		t.Fatalf("reject group: %v", err)
	}

	if getItem(t, updated, "a").Status != models.StatusRejected ||
		getItem(t, updated, "b").Status != models.StatusRejected {
		t.Fatalf("pending red items must be rejected")
	}
	if getItem(t, updated, "c").Status != models.StatusApproved {
		t.Fatalf("approved red item must be untouched")
	}
	if getItem(t, updated, "d").Status != models.StatusPending {
		t.Fatalf("blue item must be untouched")
	}
}

func TestResetGroupsRevertsNonPendingMembers(t *testing.T) {
	svc := newTestService()
	lot := seedLot(t, svc,
		testItem("a", "Red", 10, 50),
		testItem("b", "Red", 5, 25),
	)
	if _, err := svc.RejectItems(lot.ID, []string{"a", "b"}, models.CauseColor); err != nil {
		t.Fatalf("reject: %v", err)
	}

	updated, err := svc.ResetGroups(lot.ID, []string{"red|" + BucketAwaitingReturn})
	if err != nil {
		t.Fatalf("reset group: %v", err)
	}
	for _, id := range []string{"a", "b"} {
		it := getItem(t, updated, id)
		if it.Status != models.StatusPending || it.RejectionCause != "" || it.ReturnStatus != "" {
			t.Fatalf("item %s not cleanly reset: %s/%s/%s", id, it.Status, it.RejectionCause, it.ReturnStatus)
		}
	}
}

type saveCountingLotRepo struct {
	*repository.MemoryLotRepo
	saves int
}

func (r *saveCountingLotRepo) SaveLot(lot *models.Lot) error {
	r.saves++
	return r.MemoryLotRepo.SaveLot(lot)
}

// A multi-group action commits as one lot write, and its outcome equals
// approving each member item sequentially.
func TestMultiGroupActionIsOneWriteAndSequentialEquivalent(t *testing.T) {
	counting := &saveCountingLotRepo{MemoryLotRepo: repository.NewMemoryLotRepo()}
	svc := NewService(counting, repository.NewMemoryReturnRecordRepo())
	svc.now = func() time.Time { return testNow }

	lot := seedLot(t, svc,
		testItem("a", "Red", 10, 50),
		testItem("b", "Blue", 5, 25),
		testItem("c", "Green", 4, 20),
	)

	counting.saves = 0
	bulk, err := svc.ApproveGroups(lot.ID, []string{"red|Pending", "blue|Pending"}, nil)
	if err != nil {
		t.Fatalf("approve groups: %v", err)
	}
	if counting.saves != 1 {
		t.Fatalf("expected exactly one lot write, got %d", counting.saves)
	}

	seq := newTestService()
	seqLot := seedLot(t, seq,
		testItem("a", "Red", 10, 50),
		testItem("b", "Blue", 5, 25),
		testItem("c", "Green", 4, 20),
	)
	if _, err := seq.ApproveItems(seqLot.ID, []string{"a"}, nil); err != nil {
		t.Fatalf("sequential approve a: %v", err)
	}
	sequential, err := seq.ApproveItems(seqLot.ID, []string{"b"}, nil)
	if err != nil {
		t.Fatalf("sequential approve b: %v", err)
	}

	for _, id := range []string{"a", "b", "c"} {
		if !reflect.DeepEqual(getItem(t, bulk, id), getItem(t, sequential, id)) {
			t.Fatalf("item %s diverged between bulk and sequential paths:\nbulk: %+v\nseq:  %+v",
				id, getItem(t, bulk, id), getItem(t, sequential, id))
		}
	}
}
