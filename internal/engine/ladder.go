package engine

import (
	"github.com/tidwall/btree"

	"vidar/internal/common"
)

// ladder is one side's price-ordered collection of levels. The injected
// comparator is the only difference between the bid and ask sides: bids
// compare descending so the highest price is first, asks ascending so the
// lowest is. Either way the best level is the btree minimum.
type ladder struct {
	levels *btree.BTreeG[*priceLevel]
}

func newBidLadder() ladder {
	// Sorted greatest first.
	return ladder{levels: btree.NewBTreeG(func(a, b *priceLevel) bool {
		return a.px > b.px
	})}
}

func newAskLadder() ladder {
	// Sorted least first.
	return ladder{levels: btree.NewBTreeG(func(a, b *priceLevel) bool {
		return a.px < b.px
	})}
}

// ensure returns the level for px, creating it if absent.
func (l ladder) ensure(px common.Price) *priceLevel {
	// The comparator only reads prices, so a stack probe is enough to search.
	if lvl, ok := l.levels.GetMut(&priceLevel{px: px}); ok {
		return lvl
	}
	lvl := newPriceLevel(px)
	l.levels.Set(lvl)
	return lvl
}

// find looks a level up by price without creating one.
func (l ladder) find(px common.Price) (*priceLevel, bool) {
	return l.levels.GetMut(&priceLevel{px: px})
}

// best returns the highest-priority level, or false if the side is empty.
func (l ladder) best() (*priceLevel, bool) {
	return l.levels.MinMut()
}

// dropIfEmpty removes a level once its queue has drained. Levels with
// resting orders are never removed.
func (l ladder) dropIfEmpty(lvl *priceLevel) {
	if lvl.empty() {
		l.levels.Delete(lvl)
	}
}

func (l ladder) len() int {
	return l.levels.Len()
}

// scan visits levels best-first until fn returns false.
func (l ladder) scan(fn func(lvl *priceLevel) bool) {
	l.levels.Scan(fn)
}
