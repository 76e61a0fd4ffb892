// Package conformance exercises the order book strictly through its public
// operation set and checks the resulting trade tapes and book states against
// fixed expectations. It is a black box on purpose: nothing here reaches
// into engine internals, so the suite doubles as a compatibility check for
// any reimplementation of the same surface.
package conformance

import (
	"fmt"

	"github.com/rs/zerolog"

	"vidar/internal/common"
	"vidar/internal/engine"
)

type Check struct {
	Name string
	Fn   func() error
}

// Checks returns the full suite in a fixed order.
func Checks() []Check {
	return []Check{
		{"full_fill", checkFullFill},
		{"partial_then_post", checkPartialThenPost},
		{"fifo_within_level", checkFIFO},
		{"modify_qty_down_in_place", checkModifyQtyDownInPlace},
		{"market_buy_residual", checkMarketBuy},
		{"cancel_then_recancel", checkCancel},
		{"post_cancel_round_trip", checkPostCancelRoundTrip},
		{"unknown_id_noops", checkUnknownIDs},
	}
}

// Run executes every check, logging one line per result, and returns the
// number of failures.
func Run(log zerolog.Logger, checks []Check) int {
	fails := 0
	for _, c := range checks {
		if err := c.Fn(); err != nil {
			log.Error().Str("check", c.Name).Err(err).Msg("failed")
			fails++
			continue
		}
		log.Info().Str("check", c.Name).Msg("ok")
	}
	return fails
}

func sell(id common.OrderID, px common.Price, qty common.Qty, ts common.Ts) common.Order {
	return common.Order{ID: id, Side: common.Sell, Type: common.LimitOrder, Px: px, Qty: qty, Ts: ts}
}

func buy(id common.OrderID, px common.Price, qty common.Qty, ts common.Ts) common.Order {
	return common.Order{ID: id, Side: common.Buy, Type: common.LimitOrder, Px: px, Qty: qty, Ts: ts}
}

func expectTrade(got common.Trade, maker common.OrderID, px common.Price, qty common.Qty) error {
	if got.MakerID != maker || got.Px != px || got.Qty != qty {
		return fmt.Errorf("trade %v, want maker=%d px=%d qty=%d", got, maker, px, qty)
	}
	return nil
}

func expectQuote(q engine.Quote, ok bool, px common.Price, qty common.Qty) error {
	if !ok {
		return fmt.Errorf("side empty, want (%d, %d)", px, qty)
	}
	if q.Px != px || q.Qty != qty {
		return fmt.Errorf("quote (%d, %d), want (%d, %d)", q.Px, q.Qty, px, qty)
	}
	return nil
}

// Resting sell 100x100; buy limit 101x100 fills it entirely at the maker's
// price and leaves the ask side empty.
func checkFullFill() error {
	book := engine.NewOrderBook()
	book.Post(sell(1, 100, 100, 1))

	trades := book.AddLimit(buy(2, 101, 100, 2))
	if len(trades) != 1 {
		return fmt.Errorf("got %d trades, want 1", len(trades))
	}
	if err := expectTrade(trades[0], 1, 100, 100); err != nil {
		return err
	}
	if _, ok := book.BestAsk(); ok {
		return fmt.Errorf("ask side should be empty after full fill")
	}
	return nil
}

// Resting sell 100x50; buy limit 101x80 fills 50 and rests the remaining 30
// as a new bid at 101.
func checkPartialThenPost() error {
	book := engine.NewOrderBook()
	book.Post(sell(1, 100, 50, 1))

	trades := book.AddLimit(buy(2, 101, 80, 2))
	if len(trades) != 1 {
		return fmt.Errorf("got %d trades, want 1", len(trades))
	}
	if err := expectTrade(trades[0], 1, 100, 50); err != nil {
		return err
	}
	bb, ok := book.BestBid()
	return expectQuote(bb, ok, 101, 30)
}

// Two sells at the same price fill in arrival order.
func checkFIFO() error {
	book := engine.NewOrderBook()
	book.Post(sell(1, 100, 10, 1))
	book.Post(sell(2, 100, 20, 2))

	trades := book.AddLimit(buy(3, 101, 30, 3))
	if len(trades) != 2 {
		return fmt.Errorf("got %d trades, want 2", len(trades))
	}
	if trades[0].MakerID != 1 || trades[1].MakerID != 2 {
		return fmt.Errorf("makers filled as %d,%d, want 1,2", trades[0].MakerID, trades[1].MakerID)
	}
	return nil
}

// Amending quantity down keeps queue position: the amended order still
// fills second, at its reduced size.
func checkModifyQtyDownInPlace() error {
	book := engine.NewOrderBook()
	book.Post(sell(1, 100, 50, 1))
	book.Post(sell(2, 100, 30, 2))

	ten := common.Qty(10)
	if trades := book.Modify(2, nil, &ten, 5); len(trades) != 0 {
		return fmt.Errorf("amend-down produced %d trades, want 0", len(trades))
	}

	trades := book.AddLimit(buy(3, 101, 60, 6))
	if len(trades) != 2 {
		return fmt.Errorf("got %d trades, want 2", len(trades))
	}
	if err := expectTrade(trades[0], 1, 100, 50); err != nil {
		return err
	}
	if err := expectTrade(trades[1], 2, 100, 10); err != nil {
		return err
	}
	if _, ok := book.BestAsk(); ok {
		return fmt.Errorf("ask side should be empty")
	}
	return nil
}

// Market buy sweeps best-to-worst; the partially consumed second level
// stays, and the book keeps no record of the hypothetical residual.
func checkMarketBuy() error {
	book := engine.NewOrderBook()
	book.Post(sell(1, 100, 50, 1))
	book.Post(sell(2, 101, 70, 2))

	trades := book.AddMarket(common.Order{ID: 3, Side: common.Buy, Type: common.MarketOrder, Qty: 60, Ts: 3})
	if len(trades) != 2 {
		return fmt.Errorf("got %d trades, want 2", len(trades))
	}
	if err := expectTrade(trades[0], 1, 100, 50); err != nil {
		return err
	}
	if err := expectTrade(trades[1], 2, 101, 10); err != nil {
		return err
	}
	ba, ok := book.BestAsk()
	return expectQuote(ba, ok, 101, 60)
}

// Cancel removes exactly the targeted order; a second cancel of the same id
// reports false and mutates nothing.
func checkCancel() error {
	book := engine.NewOrderBook()
	book.Post(sell(1, 100, 30, 1))
	book.Post(sell(2, 100, 40, 2))

	if !book.Cancel(1) {
		return fmt.Errorf("cancel of live order failed")
	}
	ba, ok := book.BestAsk()
	if err := expectQuote(ba, ok, 100, 40); err != nil {
		return err
	}
	if book.Cancel(1) {
		return fmt.Errorf("second cancel of id 1 succeeded")
	}
	ba, ok = book.BestAsk()
	return expectQuote(ba, ok, 100, 40)
}

// Posting then canceling an order restores both best quotes exactly.
func checkPostCancelRoundTrip() error {
	book := engine.NewOrderBook()
	book.Post(buy(1, 99, 10, 1))
	book.Post(sell(2, 101, 20, 2))

	book.Post(buy(3, 100, 5, 3))
	if !book.Cancel(3) {
		return fmt.Errorf("cancel failed")
	}

	bb, ok := book.BestBid()
	if err := expectQuote(bb, ok, 99, 10); err != nil {
		return err
	}
	ba, ok := book.BestAsk()
	return expectQuote(ba, ok, 101, 20)
}

// Unknown ids: cancel reports false, modify returns no trades, and neither
// touches the book.
func checkUnknownIDs() error {
	book := engine.NewOrderBook()
	book.Post(sell(1, 100, 30, 1))

	if book.Cancel(42) {
		return fmt.Errorf("cancel of unknown id succeeded")
	}
	px := common.Price(101)
	if trades := book.Modify(42, &px, nil, 2); len(trades) != 0 {
		return fmt.Errorf("modify of unknown id produced trades")
	}
	ba, ok := book.BestAsk()
	return expectQuote(ba, ok, 100, 30)
}
