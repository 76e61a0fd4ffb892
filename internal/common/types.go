package common

// Prices and quantities are fixed-point integers (ticks and lots). The
// engine never touches floating point so that identical input sequences
// produce bit-identical books and trade tapes.
type (
	Price   int64
	Qty     int64
	OrderID uint64
	Ts      uint64
)

type Side int

const (
	Buy Side = iota
	Sell
)

// Opposite returns the side an incoming order matches against.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

func (s Side) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	}
	return "unknown"
}

type OrderType int

const (
	// Limit orders are an order to buy or sell at a specified price or
	// better. Limit orders may rest on the order book until filled.
	LimitOrder OrderType = iota
	// Market orders are instructions to buy or sell immediately against
	// whatever liquidity is resting, without guarantees on the execution
	// price.
	MarketOrder
)

func (t OrderType) String() string {
	switch t {
	case LimitOrder:
		return "limit"
	case MarketOrder:
		return "market"
	}
	return "unknown"
}
