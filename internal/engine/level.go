package engine

import "vidar/internal/common"

// orderNode wraps a resting order with its intra-level links. The node
// pointer is the stable position handle held by the order index: unlinking
// one node never moves or invalidates its neighbours, which is what makes
// cancel and modify O(1).
type orderNode struct {
	order      common.Order
	prev, next *orderNode
}

// priceLevel is the FIFO queue of resting orders sharing one price, with a
// cached aggregate of their remaining quantities. Time priority is purely
// positional: push appends to the tail, matching consumes from the head.
// Price ordering between levels is the ladder's job, not ours.
type priceLevel struct {
	px         common.Price
	head, tail *orderNode
	total      common.Qty
	count      int
}

func newPriceLevel(px common.Price) *priceLevel {
	return &priceLevel{px: px}
}

func (l *priceLevel) empty() bool {
	return l.head == nil
}

// push appends an order at the back of the queue and returns its node.
func (l *priceLevel) push(o common.Order) *orderNode {
	n := &orderNode{order: o}
	if l.head == nil {
		l.head = n
	} else {
		l.tail.next = n
		n.prev = l.tail
	}
	l.tail = n
	l.total += o.Qty
	l.count++
	return n
}

func (l *priceLevel) front() *orderNode {
	return l.head
}

// popFront removes the head order. The node stays readable after removal so
// the caller can still inspect the drained order.
func (l *priceLevel) popFront() {
	if l.head != nil {
		l.unlink(l.head)
	}
}

// unlink removes an arbitrary node from the queue and charges its remaining
// quantity against the aggregate.
func (l *priceLevel) unlink(n *orderNode) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev, n.next = nil, nil
	l.total -= n.order.Qty
	l.count--
}

// reduce shrinks a member order's remaining quantity in place, keeping its
// queue position. Used both by fills and by amend-down.
func (l *priceLevel) reduce(n *orderNode, delta common.Qty) {
	n.order.Qty -= delta
	l.total -= delta
}
