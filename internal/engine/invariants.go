package engine

import (
	"fmt"

	"vidar/internal/common"
)

// check runs the structural invariant sweep after a mutating operation when
// the diag build tag is on. diagChecks is a constant, so in normal builds
// the call compiles away. A violation is an engine defect, not a runtime
// condition, so it panics.
func (b *OrderBook) check() {
	if diagChecks {
		b.verify()
	}
}

func (b *OrderBook) verify() {
	seen := make(map[common.OrderID]struct{}, len(b.byID))
	b.verifySide(common.Buy, seen)
	b.verifySide(common.Sell, seen)

	if len(seen) != len(b.byID) {
		panic(fmt.Sprintf("book: index holds %d ids but ladders hold %d orders",
			len(b.byID), len(seen)))
	}

	bid, hasBid := b.BestBid()
	ask, hasAsk := b.BestAsk()
	if hasBid && hasAsk && bid.Px >= ask.Px {
		panic(fmt.Sprintf("book: crossed after operation, best bid %d >= best ask %d",
			bid.Px, ask.Px))
	}
}

func (b *OrderBook) verifySide(side common.Side, seen map[common.OrderID]struct{}) {
	b.side(side).scan(func(lvl *priceLevel) bool {
		if lvl.empty() {
			panic(fmt.Sprintf("book: empty %s level %d persisted", side, lvl.px))
		}
		var sum common.Qty
		n := 0
		for node := lvl.head; node != nil; node = node.next {
			o := node.order
			if o.Qty <= 0 {
				panic(fmt.Sprintf("book: %s resting with qty %d at level %d", o, o.Qty, lvl.px))
			}
			if o.Px != lvl.px || o.Side != side {
				panic(fmt.Sprintf("book: %s filed under %s level %d", o, side, lvl.px))
			}
			idx, ok := b.byID[o.ID]
			if !ok || idx != node {
				panic(fmt.Sprintf("book: %s not indexed at its slot", o))
			}
			if _, dup := seen[o.ID]; dup {
				panic(fmt.Sprintf("book: id %d resting in more than one slot", o.ID))
			}
			seen[o.ID] = struct{}{}
			sum += o.Qty
			n++
		}
		if sum != lvl.total {
			panic(fmt.Sprintf("book: %s level %d aggregate %d != member sum %d",
				side, lvl.px, lvl.total, sum))
		}
		if n != lvl.count {
			panic(fmt.Sprintf("book: %s level %d count %d != member count %d",
				side, lvl.px, lvl.count, n))
		}
		return true
	})
}
