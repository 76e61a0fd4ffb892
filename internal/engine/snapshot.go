package engine

import "vidar/internal/common"

// LevelSnapshot is a read-only copy of one price level with its orders in
// queue order, front first.
type LevelSnapshot struct {
	Px     common.Price
	Total  common.Qty
	Orders []common.Order
}

// Levels copies one side of the book, best level first. Purely a read path
// for tests, conformance checks and diagnostics.
func (b *OrderBook) Levels(side common.Side) []LevelSnapshot {
	var out []LevelSnapshot
	b.side(side).scan(func(lvl *priceLevel) bool {
		snap := LevelSnapshot{
			Px:     lvl.px,
			Total:  lvl.total,
			Orders: make([]common.Order, 0, lvl.count),
		}
		for n := lvl.head; n != nil; n = n.next {
			snap.Orders = append(snap.Orders, n.order)
		}
		out = append(out, snap)
		return true
	})
	return out
}
