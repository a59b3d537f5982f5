package matching

// priceHeap implements heap.Interface over the distinct price levels of one
// side of the book. The side book pushes each price exactly once, when the
// first order at that level arrives.
type priceHeap struct {
	prices []float64
	less   func(i, j float64) bool
}

func newPriceHeap(less func(i, j float64) bool) *priceHeap {
	return &priceHeap{less: less}
}

func (h priceHeap) Len() int { return len(h.prices) }

func (h priceHeap) Less(i, j int) bool { return h.less(h.prices[i], h.prices[j]) }

func (h priceHeap) Swap(i, j int) { h.prices[i], h.prices[j] = h.prices[j], h.prices[i] }

func (h *priceHeap) Push(x any) {
	h.prices = append(h.prices, x.(float64))
}

func (h *priceHeap) Pop() any {
	n := len(h.prices)
	price := h.prices[n-1]
	h.prices = h.prices[:n-1]
	return price
}

func (h *priceHeap) Peek() (float64, bool) {
	if len(h.prices) == 0 {
		return 0, false
	}
	return h.prices[0], true
}
