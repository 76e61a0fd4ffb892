package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "vidar/internal/common"
)

func TestPriceLevel_PushPopAggregate(t *testing.T) {
	lvl := newPriceLevel(100)
	assert.True(t, lvl.empty())

	a := lvl.push(limit(1, Sell, 100, 10, 1))
	b := lvl.push(limit(2, Sell, 100, 20, 2))
	lvl.push(limit(3, Sell, 100, 30, 3))

	assert.Equal(t, Qty(60), lvl.total)
	assert.Equal(t, 3, lvl.count)
	assert.Same(t, a, lvl.front())

	lvl.popFront()
	assert.Equal(t, Qty(50), lvl.total)
	assert.Same(t, b, lvl.front())

	// a stays readable after removal.
	assert.Equal(t, OrderID(1), a.order.ID)
}

func TestPriceLevel_UnlinkMiddlePreservesNeighbours(t *testing.T) {
	lvl := newPriceLevel(100)
	a := lvl.push(limit(1, Sell, 100, 10, 1))
	b := lvl.push(limit(2, Sell, 100, 20, 2))
	c := lvl.push(limit(3, Sell, 100, 30, 3))

	lvl.unlink(b)

	assert.Equal(t, Qty(40), lvl.total)
	assert.Equal(t, 2, lvl.count)
	assert.Same(t, a, lvl.front())
	assert.Same(t, c, a.next)
	assert.Same(t, a, c.prev)
}

func TestPriceLevel_UnlinkEnds(t *testing.T) {
	lvl := newPriceLevel(100)
	a := lvl.push(limit(1, Sell, 100, 10, 1))
	b := lvl.push(limit(2, Sell, 100, 20, 2))

	lvl.unlink(b) // tail
	assert.Same(t, a, lvl.front())
	assert.Same(t, a, lvl.tail)

	lvl.unlink(a) // now head == tail
	assert.True(t, lvl.empty())
	assert.Zero(t, lvl.total)
	assert.Zero(t, lvl.count)
}

func TestPriceLevel_ReduceKeepsPosition(t *testing.T) {
	lvl := newPriceLevel(100)
	a := lvl.push(limit(1, Sell, 100, 50, 1))
	b := lvl.push(limit(2, Sell, 100, 30, 2))

	lvl.reduce(b, 20)

	assert.Equal(t, Qty(10), b.order.Qty)
	assert.Equal(t, Qty(60), lvl.total)
	assert.Same(t, a, lvl.front(), "reduce never reorders the queue")

	// Draining via reduce then popFront keeps the aggregate exact: the
	// emptied order contributes zero on removal.
	lvl.reduce(a, 50)
	lvl.popFront()
	assert.Equal(t, Qty(10), lvl.total)
}

func TestLadder_BidAndAskOrdering(t *testing.T) {
	bids := newBidLadder()
	asks := newAskLadder()

	for _, p := range []Price{100, 98, 99} {
		bids.ensure(p).push(limit(OrderID(p), Buy, p, 1, 1))
		asks.ensure(p).push(limit(OrderID(p), Sell, p, 1, 1))
	}

	best, ok := bids.best()
	require.True(t, ok)
	assert.Equal(t, Price(100), best.px, "best bid is the highest price")

	best, ok = asks.best()
	require.True(t, ok)
	assert.Equal(t, Price(98), best.px, "best ask is the lowest price")
}

func TestLadder_EnsureIsIdempotent(t *testing.T) {
	asks := newAskLadder()
	a := asks.ensure(100)
	b := asks.ensure(100)
	assert.Same(t, a, b, "one level per price per side")
	assert.Equal(t, 1, asks.len())
}

func TestLadder_FindDoesNotCreate(t *testing.T) {
	asks := newAskLadder()
	_, ok := asks.find(100)
	assert.False(t, ok)
	assert.Zero(t, asks.len())

	asks.ensure(100)
	lvl, ok := asks.find(100)
	require.True(t, ok)
	assert.Equal(t, Price(100), lvl.px)
}

func TestLadder_DropIfEmpty(t *testing.T) {
	asks := newAskLadder()
	lvl := asks.ensure(100)
	n := lvl.push(limit(1, Sell, 100, 10, 1))

	asks.dropIfEmpty(lvl)
	assert.Equal(t, 1, asks.len(), "non-empty level stays")

	lvl.unlink(n)
	asks.dropIfEmpty(lvl)
	assert.Zero(t, asks.len())
}

func TestLadder_EmptyBest(t *testing.T) {
	bids := newBidLadder()
	_, ok := bids.best()
	assert.False(t, ok)
}
