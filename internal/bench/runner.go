package bench

import (
	"math/rand"
	"time"

	"vidar/internal/common"
	"vidar/internal/engine"
)

const (
	ScenarioBurst   = "burst"
	ScenarioPoisson = "poisson"

	mid       = common.Price(10000)
	seedDepth = 200
)

// Report summarizes one scenario run. Per-op latencies live in Stats and
// the CSV; this is just the headline throughput number.
type Report struct {
	Scenario string
	Ops      int
	Elapsed  time.Duration
}

func (r Report) Throughput() float64 {
	secs := r.Elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(r.Ops) / secs
}

// Runner drives pseudo-random order flow into a book and times each public
// operation. All of its state (the book, the id/ts generator, the rng, the
// live-order set) is owned here and seeded explicitly, so a run is fully
// reproducible from its seed.
type Runner struct {
	book  *engine.OrderBook
	gen   *SeqGen
	live  *LiveSet
	rng   *rand.Rand
	stats *Stats
	rec   *Recorder
}

func NewRunner(seed int64, rec *Recorder) *Runner {
	return &Runner{
		book:  engine.NewOrderBook(),
		gen:   NewSeqGen(),
		live:  NewLiveSet(),
		rng:   rand.New(rand.NewSource(seed)),
		stats: NewStats(),
		rec:   rec,
	}
}

func (r *Runner) Stats() *Stats { return r.stats }

func (r *Runner) Book() *engine.OrderBook { return r.book }

// Run dispatches on scenario name.
func (r *Runner) Run(scenario string, ops int) Report {
	if scenario == ScenarioPoisson {
		return r.RunPoisson(ops)
	}
	return r.RunBurst(ops)
}

// RunBurst replays a fixed per-tick operation mix: out of every 20 ops, 14
// passive posts, 3 crossing limits, 2 market sweeps, and 1 cancel or
// amend-down alternating.
func (r *Runner) RunBurst(ops int) Report {
	const scen = ScenarioBurst
	r.seedBook(scen, 5)

	start := time.Now()
	for i := 1; i <= ops; i++ {
		switch n := i % 20; {
		case n < 14:
			side := r.side()
			r.doPost(scen, side, r.passivePx(side, 5), r.qty())
		case n < 17:
			side := r.side()
			r.doAddLimit(scen, side, r.crossingPx(side), r.qty())
		case n < 19:
			r.doAddMarket(scen, r.side(), r.qty())
		default:
			if i%2 == 0 {
				r.doCancel(scen)
			} else {
				r.doModifyDown(scen)
			}
		}
	}
	return Report{Scenario: scen, Ops: ops, Elapsed: time.Since(start)}
}

// RunPoisson draws each operation from a weighted choice: 30% post, 50%
// crossing limit, 10% market, 5% cancel, 5% amend-down.
func (r *Runner) RunPoisson(ops int) Report {
	const scen = ScenarioPoisson
	r.seedBook(scen, 8)

	start := time.Now()
	for i := 0; i < ops; i++ {
		switch n := r.rng.Intn(100); {
		case n < 30:
			side := r.side()
			r.doPost(scen, side, r.passivePx(side, 8), r.qty())
		case n < 80:
			side := r.side()
			r.doAddLimit(scen, side, r.crossingPx(side), r.qty())
		case n < 90:
			r.doAddMarket(scen, r.side(), r.qty())
		case n < 95:
			r.doCancel(scen)
		default:
			r.doModifyDown(scen)
		}
	}
	return Report{Scenario: scen, Ops: ops, Elapsed: time.Since(start)}
}

// seedBook rests a couple hundred passive orders around the mid so timed
// operations start against a populated ladder.
func (r *Runner) seedBook(scen string, maxOff int) {
	for i := 0; i < seedDepth; i++ {
		side := common.Sell
		px := mid + r.off(maxOff)
		if i&1 == 1 {
			side = common.Buy
			px = mid - r.off(maxOff)
		}
		r.doPost(scen, side, px, r.qty())
	}
}

func (r *Runner) side() common.Side {
	if r.rng.Intn(2) == 1 {
		return common.Buy
	}
	return common.Sell
}

func (r *Runner) qty() common.Qty {
	return common.Qty(r.rng.Intn(50) + 1)
}

func (r *Runner) off(max int) common.Price {
	return common.Price(r.rng.Intn(max) + 1)
}

// passivePx picks a price on the order's own side of the touch, clamped
// inside the spread so the post cannot cross.
func (r *Runner) passivePx(side common.Side, maxOff int) common.Price {
	off := r.off(maxOff)
	if side == common.Buy {
		px := mid - off
		if ask, ok := r.book.BestAsk(); ok && ask.Px-1 < px {
			px = ask.Px - 1
		}
		return px
	}
	px := mid + off
	if bid, ok := r.book.BestBid(); ok && bid.Px+1 > px {
		px = bid.Px + 1
	}
	return px
}

// crossingPx targets the opposite touch so the limit order trades on
// arrival when liquidity is there.
func (r *Runner) crossingPx(side common.Side) common.Price {
	if side == common.Buy {
		if ask, ok := r.book.BestAsk(); ok {
			return ask.Px
		}
		return mid + 1
	}
	if bid, ok := r.book.BestBid(); ok {
		return bid.Px
	}
	return mid - 1
}

func (r *Runner) doPost(scen string, side common.Side, px common.Price, qty common.Qty) {
	o := common.Order{
		ID: r.gen.NextID(), Side: side, Type: common.LimitOrder,
		Px: px, Qty: qty, Ts: r.gen.NextTS(),
	}
	t0 := time.Now()
	r.book.Post(o)
	r.record(scen, "post", t0)
	r.live.Add(o.ID)
}

func (r *Runner) doAddLimit(scen string, side common.Side, px common.Price, qty common.Qty) {
	o := common.Order{
		ID: r.gen.NextID(), Side: side, Type: common.LimitOrder,
		Px: px, Qty: qty, Ts: r.gen.NextTS(),
	}
	t0 := time.Now()
	r.book.AddLimit(o)
	r.record(scen, "add_limit", t0)
}

func (r *Runner) doAddMarket(scen string, side common.Side, qty common.Qty) {
	o := common.Order{
		ID: r.gen.NextID(), Side: side, Type: common.MarketOrder,
		Qty: qty, Ts: r.gen.NextTS(),
	}
	t0 := time.Now()
	r.book.AddMarket(o)
	r.record(scen, "add_market", t0)
}

func (r *Runner) doCancel(scen string) {
	id := r.live.Pick(r.rng)
	if id == 0 {
		return
	}
	t0 := time.Now()
	ok := r.book.Cancel(id)
	r.record(scen, "cancel", t0)
	if ok {
		r.live.Remove(id)
	}
}

func (r *Runner) doModifyDown(scen string) {
	id := r.live.Pick(r.rng)
	if id == 0 {
		return
	}
	one := common.Qty(1)
	ts := r.gen.NextTS()
	t0 := time.Now()
	r.book.Modify(id, nil, &one, ts)
	r.record(scen, "modify", t0)
}

func (r *Runner) record(scen, op string, t0 time.Time) {
	ns := uint64(time.Since(t0).Nanoseconds())
	r.stats.Add(op, ns)
	if r.rec != nil {
		r.rec.Row(scen, op, ns)
	}
}
