package engine

import (
	"vidar/internal/common"
)

// Quote is a top-of-book view: the best price on a side and the aggregate
// quantity resting at that price.
type Quote struct {
	Px  common.Price
	Qty common.Qty
}

// Handle locates a resting order placed via Post: its side, price and queue
// slot. A handle is only valid until the order is removed by a fill, cancel
// or modify; after that the id simply misses the index, it is never
// dereferenced.
type Handle struct {
	Side common.Side
	Px   common.Price
	node *orderNode
}

// OrderBook is a single-instrument limit order book with strict price-time
// priority. It is not safe for concurrent use; the caller serializes access.
//
// Three structures are kept mutually consistent under every mutation: the
// two price ladders, the per-level FIFO queues, and the id index that makes
// cancel and modify O(1).
type OrderBook struct {
	bids ladder
	asks ladder

	// Active order id -> its queue node. A node knows its side and price,
	// which is everything needed to find its level again.
	byID map[common.OrderID]*orderNode
}

func NewOrderBook() *OrderBook {
	return &OrderBook{
		bids: newBidLadder(),
		asks: newAskLadder(),
		byID: make(map[common.OrderID]*orderNode),
	}
}

func (b *OrderBook) side(s common.Side) ladder {
	if s == common.Buy {
		return b.bids
	}
	return b.asks
}

// Post inserts an order as resting liquidity with no marketability check:
// the caller either guarantees the order does not cross, or accepts that it
// rests even if it could have matched. Used to seed books and internally by
// AddLimit for remainders.
func (b *OrderBook) Post(o common.Order) Handle {
	lvl := b.side(o.Side).ensure(o.Px)
	n := lvl.push(o)
	b.byID[o.ID] = n
	b.check()
	return Handle{Side: o.Side, Px: o.Px, node: n}
}

// AddLimit matches an incoming limit order against the opposing side and
// posts whatever remains as a brand-new resting order at the taker's limit
// price. The remainder joins the back of its level's queue: it keeps the
// taker's timestamp but earns fresh time priority behind anything already
// resting there.
func (b *OrderBook) AddLimit(o common.Order) []common.Trade {
	trades := b.match(&o, false)
	if o.Qty > 0 {
		b.Post(o)
	}
	b.check()
	return trades
}

// AddMarket matches an incoming market order, sweeping levels best to worst
// with no price constraint. Quantity left unfilled once the opposing side is
// exhausted is dropped: no resting order, no error, just a trade list that
// sums to less than requested.
func (b *OrderBook) AddMarket(o common.Order) []common.Trade {
	o.Type = common.MarketOrder
	trades := b.match(&o, true)
	b.check()
	return trades
}

// match walks the opposing ladder consuming liquidity for the taker, best
// level first, FIFO within each level. Limit takers stop at the first level
// whose price does not cross their limit; market takers take every level.
// Makers trade at their own price with the taker's timestamp.
func (b *OrderBook) match(taker *common.Order, isMarket bool) []common.Trade {
	var out []common.Trade
	opp := b.side(taker.Side.Opposite())

	for taker.Qty > 0 {
		lvl, ok := opp.best()
		if !ok {
			break
		}
		if !isMarket && !crosses(taker, lvl.px) {
			break
		}

		for taker.Qty > 0 && !lvl.empty() {
			maker := lvl.front()
			fill := min(taker.Qty, maker.order.Qty)

			out = append(out, common.Trade{
				TakerID: taker.ID,
				MakerID: maker.order.ID,
				Px:      lvl.px,
				Qty:     fill,
				Ts:      taker.Ts,
			})

			taker.Qty -= fill
			lvl.reduce(maker, fill)

			if maker.order.Qty == 0 {
				lvl.popFront()
				delete(b.byID, maker.order.ID)
			}
		}

		opp.dropIfEmpty(lvl)
	}
	return out
}

// crosses reports whether a level price is marketable against a limit taker.
func crosses(taker *common.Order, levelPx common.Price) bool {
	if taker.Side == common.Buy {
		return levelPx <= taker.Px
	}
	return levelPx >= taker.Px
}

// Modify amends a resting order. A pure quantity reduction at the same price
// is applied in place and keeps the order's queue position. Everything else,
// including a price change, a quantity increase, and even an amend to the
// identical price and quantity, cancels the order and resubmits it through
// AddLimit with ts: it may trade immediately, and any remainder re-queues at
// the back of its level, losing the original time priority. nil newPx and
// newQty mean "unchanged"; a target quantity of zero or below is a cancel.
func (b *OrderBook) Modify(id common.OrderID, newPx *common.Price, newQty *common.Qty, ts common.Ts) []common.Trade {
	n, ok := b.byID[id]
	if !ok {
		return nil
	}
	lvl, ok := b.side(n.order.Side).find(n.order.Px)
	if !ok {
		// Stale handle: the recorded level is gone. Purge the entry rather
		// than touch freed storage.
		delete(b.byID, id)
		return nil
	}

	targetPx := n.order.Px
	if newPx != nil {
		targetPx = *newPx
	}
	targetQty := n.order.Qty
	if newQty != nil {
		targetQty = *newQty
	}

	if targetQty <= 0 {
		b.removeResting(lvl, n)
		b.check()
		return nil
	}

	if targetPx == n.order.Px && targetQty < n.order.Qty {
		lvl.reduce(n, n.order.Qty-targetQty)
		b.check()
		return nil
	}

	side := n.order.Side
	b.removeResting(lvl, n)

	fresh := common.Order{
		ID:   id,
		Side: side,
		Type: common.LimitOrder,
		Px:   targetPx,
		Qty:  targetQty,
		Ts:   ts,
	}
	trades := b.AddLimit(fresh)
	b.check()
	return trades
}

// Cancel removes an order in O(1) via the id index. Returns false when the
// id is unknown or already gone; nothing is mutated in that case.
func (b *OrderBook) Cancel(id common.OrderID) bool {
	n, ok := b.byID[id]
	if !ok {
		return false
	}
	lvl, ok := b.side(n.order.Side).find(n.order.Px)
	if !ok {
		delete(b.byID, id)
		return false
	}
	b.removeResting(lvl, n)
	b.check()
	return true
}

// removeResting takes an order out of its level and the index, collapsing
// the level if it drained.
func (b *OrderBook) removeResting(lvl *priceLevel, n *orderNode) {
	lvl.unlink(n)
	b.side(n.order.Side).dropIfEmpty(lvl)
	delete(b.byID, n.order.ID)
}

// BestBid returns the highest bid price and its aggregate resting quantity.
func (b *OrderBook) BestBid() (Quote, bool) {
	return bestOf(b.bids)
}

// BestAsk returns the lowest ask price and its aggregate resting quantity.
func (b *OrderBook) BestAsk() (Quote, bool) {
	return bestOf(b.asks)
}

func bestOf(l ladder) (Quote, bool) {
	lvl, ok := l.best()
	if !ok {
		return Quote{}, false
	}
	return Quote{Px: lvl.px, Qty: lvl.total}, true
}

// Len reports the number of active resting orders across both sides.
func (b *OrderBook) Len() int {
	return len(b.byID)
}
