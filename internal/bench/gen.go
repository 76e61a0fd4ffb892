package bench

import (
	"math/rand"

	"vidar/internal/common"
)

// SeqGen hands out monotonically increasing order ids and timestamps. The
// engine owns no id or clock state of its own; the driver injects these.
type SeqGen struct {
	id common.OrderID
	ts common.Ts
}

func NewSeqGen() *SeqGen {
	return &SeqGen{}
}

func (g *SeqGen) NextID() common.OrderID {
	g.id++
	return g.id
}

func (g *SeqGen) NextTS() common.Ts {
	g.ts++
	return g.ts
}

// LiveSet tracks order ids believed to be resting so cancel and modify ops
// can target a uniformly random live order. Removal just drops the id from
// the set; dead entries left in the pick vector are compacted lazily the
// next time they are drawn.
type LiveSet struct {
	vec []common.OrderID
	set map[common.OrderID]struct{}
}

func NewLiveSet() *LiveSet {
	return &LiveSet{set: make(map[common.OrderID]struct{})}
}

func (l *LiveSet) Add(id common.OrderID) {
	if _, ok := l.set[id]; ok {
		return
	}
	l.set[id] = struct{}{}
	l.vec = append(l.vec, id)
}

func (l *LiveSet) Remove(id common.OrderID) bool {
	if _, ok := l.set[id]; !ok {
		return false
	}
	delete(l.set, id)
	return true
}

func (l *LiveSet) Len() int {
	return len(l.set)
}

// Pick returns a random live id, or 0 when none remain.
func (l *LiveSet) Pick(rng *rand.Rand) common.OrderID {
	for len(l.vec) > 0 {
		i := rng.Intn(len(l.vec))
		cand := l.vec[i]
		if _, ok := l.set[cand]; ok {
			return cand
		}
		l.vec[i] = l.vec[len(l.vec)-1]
		l.vec = l.vec[:len(l.vec)-1]
	}
	return 0
}
