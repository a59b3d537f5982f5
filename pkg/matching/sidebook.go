package matching

import (
	"container/heap"
	"sort"

	"github.com/gammazero/deque"
)

// sideBook holds the resting orders of one side in price-time priority: a
// heap of distinct price levels plus a FIFO queue per level. Submissions are
// serialized and Sequence is assigned at submission, so FIFO order within a
// level is increasing-sequence order; the effective ordering key is
// (price, sequence) and never involves quantity. Decrementing a resting
// order's Qty in place therefore never moves it.
type sideBook struct {
	side   Side
	levels map[float64]*deque.Deque[*Order]
	prices *priceHeap
	size   int
}

func newSideBook(side Side) *sideBook {
	less := func(i, j float64) bool { return i < j } // asks: lowest first
	if side == BUY {
		less = func(i, j float64) bool { return i > j } // bids: highest first
	}
	return &sideBook{
		side:   side,
		levels: make(map[float64]*deque.Deque[*Order]),
		prices: newPriceHeap(less),
	}
}

// Insert adds a resting order with Qty > 0. A price level is created, and its
// price pushed on the heap, only the first time the level is seen.
func (b *sideBook) Insert(order *Order) {
	q := b.levels[order.Price]
	if q == nil {
		q = &deque.Deque[*Order]{}
		b.levels[order.Price] = q
		heap.Push(b.prices, order.Price)
	}
	q.PushBack(order)
	b.size++
}

// PeekBest returns the first-to-match order without removing it, or nil when
// the side is empty.
func (b *sideBook) PeekBest() *Order {
	best, ok := b.prices.Peek()
	if !ok {
		return nil
	}
	return b.levels[best].Front()
}

// PopBest removes and returns the first-to-match order. The price level is
// dropped the moment its queue drains, so empty levels never linger.
func (b *sideBook) PopBest() *Order {
	best, ok := b.prices.Peek()
	if !ok {
		return nil
	}
	q := b.levels[best]
	order := q.PopFront()
	b.size--
	if q.Len() == 0 {
		heap.Pop(b.prices)
		delete(b.levels, best)
	}
	return order
}

func (b *sideBook) Empty() bool { return b.size == 0 }

func (b *sideBook) Len() int { return b.size }

// Snapshot returns every resting order in full priority order.
func (b *sideBook) Snapshot() []BookEntry {
	sorted := make([]float64, len(b.prices.prices))
	copy(sorted, b.prices.prices)
	sort.Slice(sorted, func(i, j int) bool { return b.prices.less(sorted[i], sorted[j]) })

	entries := make([]BookEntry, 0, b.size)
	for _, price := range sorted {
		q := b.levels[price]
		for i := 0; i < q.Len(); i++ {
			o := q.At(i)
			entries = append(entries, BookEntry{
				OrderID:  o.ID,
				Price:    o.Price,
				Qty:      o.Qty,
				Sequence: o.Sequence,
			})
		}
	}
	return entries
}
