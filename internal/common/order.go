package common

import "fmt"

// Order is an order as the matching engine sees it. IDs are assigned by the
// caller and must be unique while the order is active. Qty is the remaining
// quantity and is decremented in place as the order fills. Ts is the arrival
// timestamp; it only has to be monotonically increasing across submissions,
// as it is used purely as the FIFO tie-break within a price level.
type Order struct {
	ID   OrderID
	Side Side
	Type OrderType
	Px   Price // limit price; meaningless for market orders
	Qty  Qty
	Ts   Ts
}

func (o Order) String() string {
	return fmt.Sprintf("order{id=%d %s %s px=%d qty=%d ts=%d}",
		o.ID, o.Side, o.Type, o.Px, o.Qty, o.Ts)
}
