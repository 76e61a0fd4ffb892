package common

import "fmt"

// Trade records a single fill between an incoming taker and a resting maker.
// The price is always the maker's level price and the timestamp is the
// taker's. Trades are immutable once emitted; the engine does not keep them.
type Trade struct {
	TakerID OrderID
	MakerID OrderID
	Px      Price
	Qty     Qty
	Ts      Ts
}

func (t Trade) String() string {
	return fmt.Sprintf("trade{taker=%d maker=%d px=%d qty=%d ts=%d}",
		t.TakerID, t.MakerID, t.Px, t.Qty, t.Ts)
}
