package bench

import (
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// Stats accumulates per-operation latency samples and summarizes them as
// nearest-rank percentiles.
type Stats struct {
	byOp map[string][]uint64
}

func NewStats() *Stats {
	return &Stats{byOp: make(map[string][]uint64)}
}

func (s *Stats) Add(op string, ns uint64) {
	s.byOp[op] = append(s.byOp[op], ns)
}

func (s *Stats) Count(op string) int {
	return len(s.byOp[op])
}

// Percentile computes the nearest-rank percentile of v on a copy; the
// sample order is left untouched.
func Percentile(v []uint64, p float64) uint64 {
	if len(v) == 0 {
		return 0
	}
	cp := make([]uint64, len(v))
	copy(cp, v)
	sort.Slice(cp, func(i, j int) bool { return cp[i] < cp[j] })
	k := int(p * float64(len(cp)-1))
	return cp[k]
}

// WriteSummary renders one row per operation with p50/p95/p99 latencies in
// nanoseconds, operations sorted by name for stable output.
func (s *Stats) WriteSummary(w io.Writer) {
	ops := make([]string, 0, len(s.byOp))
	for op := range s.byOp {
		ops = append(ops, op)
	}
	sort.Strings(ops)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"op", "n", "p50 ns", "p95 ns", "p99 ns"})
	for _, op := range ops {
		lat := s.byOp[op]
		table.Append([]string{
			op,
			strconv.Itoa(len(lat)),
			strconv.FormatUint(Percentile(lat, 0.50), 10),
			strconv.FormatUint(Percentile(lat, 0.95), 10),
			strconv.FormatUint(Percentile(lat, 0.99), 10),
		})
	}
	table.SetCaption(true, "per-op latency percentiles")
	table.Render()
}
