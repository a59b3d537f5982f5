package matching

import "testing"

func TestBidBookOrdering(t *testing.T) {
	b := newSideBook(BUY)
	b.Insert(&Order{ID: 1, Price: 99.0, Qty: 1, Sequence: 1})
	b.Insert(&Order{ID: 2, Price: 101.0, Qty: 1, Sequence: 2})
	b.Insert(&Order{ID: 3, Price: 100.0, Qty: 1, Sequence: 3})

	want := []int64{2, 3, 1} // highest price first
	for _, id := range want {
		got := b.PopBest()
		if got == nil || got.ID != id {
			t.Fatalf("expected order %d next, got %+v", id, got)
		}
	}
	if !b.Empty() {
		t.Errorf("book should be empty after draining")
	}
}

func TestAskBookOrdering(t *testing.T) {
	b := newSideBook(SELL)
	b.Insert(&Order{ID: 1, Price: 101.0, Qty: 1, Sequence: 1})
	b.Insert(&Order{ID: 2, Price: 99.0, Qty: 1, Sequence: 2})
	b.Insert(&Order{ID: 3, Price: 100.0, Qty: 1, Sequence: 3})

	want := []int64{2, 3, 1} // lowest price first
	for _, id := range want {
		if got := b.PopBest(); got == nil || got.ID != id {
			t.Fatalf("expected order %d next, got %+v", id, got)
		}
	}
}

func TestSamePriceLevelIsFIFO(t *testing.T) {
	b := newSideBook(SELL)
	b.Insert(&Order{ID: 1, Price: 100.0, Qty: 1, Sequence: 1})
	b.Insert(&Order{ID: 2, Price: 100.0, Qty: 1, Sequence: 2})
	b.Insert(&Order{ID: 3, Price: 100.0, Qty: 1, Sequence: 3})

	for _, id := range []int64{1, 2, 3} {
		if got := b.PopBest(); got.ID != id {
			t.Fatalf("expected sequence order within level, got %d before %d", got.ID, id)
		}
	}
}

func TestQtyDecrementDoesNotReorder(t *testing.T) {
	b := newSideBook(BUY)
	b.Insert(&Order{ID: 1, Price: 100.0, Qty: 10, Sequence: 1})
	b.Insert(&Order{ID: 2, Price: 100.0, Qty: 10, Sequence: 2})

	top := b.PeekBest()
	top.Qty -= 7

	if again := b.PeekBest(); again.ID != 1 || again.Qty != 3 {
		t.Fatalf("in-place decrement must not move the order, got %+v", again)
	}

	snap := b.Snapshot()
	if len(snap) != 2 || snap[0].OrderID != 1 || snap[0].Qty != 3 {
		t.Errorf("snapshot must reflect mutation without reordering, got %+v", snap)
	}
}

func TestPopBestDropsDrainedLevel(t *testing.T) {
	b := newSideBook(SELL)
	b.Insert(&Order{ID: 1, Price: 100.0, Qty: 1, Sequence: 1})
	b.Insert(&Order{ID: 2, Price: 101.0, Qty: 1, Sequence: 2})

	b.PopBest()
	if _, ok := b.levels[100.0]; ok {
		t.Errorf("drained level must be removed")
	}
	if best := b.PeekBest(); best == nil || best.Price != 101.0 {
		t.Errorf("expected next level to surface, got %+v", best)
	}
}

func TestSnapshotFullPriorityOrder(t *testing.T) {
	b := newSideBook(SELL)
	b.Insert(&Order{ID: 1, Price: 102.0, Qty: 1, Sequence: 1})
	b.Insert(&Order{ID: 2, Price: 100.0, Qty: 1, Sequence: 2})
	b.Insert(&Order{ID: 3, Price: 100.0, Qty: 1, Sequence: 3})
	b.Insert(&Order{ID: 4, Price: 101.0, Qty: 1, Sequence: 4})

	snap := b.Snapshot()
	want := []int64{2, 3, 4, 1}
	if len(snap) != len(want) {
		t.Fatalf("expected %d entries, got %+v", len(want), snap)
	}
	for i, id := range want {
		if snap[i].OrderID != id {
			t.Errorf("position %d: expected order %d, got %+v", i, id, snap[i])
		}
	}
}

func TestPeekEmptyBook(t *testing.T) {
	b := newSideBook(BUY)
	if b.PeekBest() != nil || b.PopBest() != nil {
		t.Errorf("empty book must peek/pop nil")
	}
	if !b.Empty() || b.Len() != 0 {
		t.Errorf("empty book must report empty")
	}
}
