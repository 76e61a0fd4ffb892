package bench

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidar/internal/common"
)

func TestSeqGen_Monotonic(t *testing.T) {
	g := NewSeqGen()
	var lastID common.OrderID
	var lastTS common.Ts
	for i := 0; i < 100; i++ {
		id, ts := g.NextID(), g.NextTS()
		assert.Greater(t, id, lastID)
		assert.Greater(t, ts, lastTS)
		lastID, lastTS = id, ts
	}
}

func TestLiveSet_PickSkipsRemoved(t *testing.T) {
	l := NewLiveSet()
	rng := rand.New(rand.NewSource(1))

	for id := common.OrderID(1); id <= 10; id++ {
		l.Add(id)
	}
	for id := common.OrderID(1); id <= 9; id++ {
		require.True(t, l.Remove(id))
	}

	// Only 10 is live; lazy compaction has to chew through the tombstones.
	for i := 0; i < 5; i++ {
		assert.Equal(t, common.OrderID(10), l.Pick(rng))
	}
	assert.Equal(t, 1, l.Len())

	l.Remove(10)
	assert.Equal(t, common.OrderID(0), l.Pick(rng), "empty set picks zero")
}

func TestLiveSet_AddIsIdempotent(t *testing.T) {
	l := NewLiveSet()
	l.Add(7)
	l.Add(7)
	assert.Equal(t, 1, l.Len())
	assert.False(t, l.Remove(8))
}

func TestPercentile(t *testing.T) {
	v := []uint64{50, 10, 40, 20, 30}
	assert.Equal(t, uint64(30), Percentile(v, 0.50))
	assert.Equal(t, uint64(10), Percentile(v, 0.0))
	assert.Equal(t, uint64(50), Percentile(v, 1.0))
	assert.Equal(t, uint64(0), Percentile(nil, 0.5))
	assert.Equal(t, []uint64{50, 10, 40, 20, 30}, v, "input left unsorted")
}

func TestStats_Summary(t *testing.T) {
	s := NewStats()
	for i := uint64(1); i <= 100; i++ {
		s.Add("post", i)
	}
	s.Add("cancel", 5)

	var buf bytes.Buffer
	s.WriteSummary(&buf)
	out := buf.String()
	assert.Contains(t, out, "post")
	assert.Contains(t, out, "cancel")
	assert.Contains(t, out, "100")
	assert.Equal(t, 100, s.Count("post"))
}

func TestRecorder_WritesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	rec, err := NewRecorder(path)
	require.NoError(t, err)

	rec.Row("burst", "post", 120)
	rec.Row("burst", "cancel", 85)
	require.NoError(t, rec.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "scenario,op,latency_ns", lines[0])
	assert.Equal(t, "burst,post,120", lines[1])
	assert.Equal(t, "burst,cancel,85", lines[2])
}

func TestRecorder_BadPath(t *testing.T) {
	_, err := NewRecorder(filepath.Join(t.TempDir(), "missing", "out.csv"))
	assert.Error(t, err)
}

func TestRunner_BurstProducesSamples(t *testing.T) {
	r := NewRunner(42, nil)
	report := r.RunBurst(2000)

	assert.Equal(t, ScenarioBurst, report.Scenario)
	assert.Equal(t, 2000, report.Ops)
	assert.Positive(t, r.Stats().Count("post"))
	assert.Positive(t, r.Stats().Count("add_limit"))
	assert.Positive(t, r.Stats().Count("add_market"))
}

func TestRunner_PoissonProducesSamples(t *testing.T) {
	r := NewRunner(42, nil)
	report := r.RunPoisson(2000)

	assert.Equal(t, ScenarioPoisson, report.Scenario)
	assert.Positive(t, r.Stats().Count("add_limit"))
}

func TestRunner_SameSeedSameBook(t *testing.T) {
	a := NewRunner(7, nil)
	b := NewRunner(7, nil)
	a.Run(ScenarioPoisson, 3000)
	b.Run(ScenarioPoisson, 3000)

	require.Equal(t, a.Book().Levels(common.Buy), b.Book().Levels(common.Buy))
	require.Equal(t, a.Book().Levels(common.Sell), b.Book().Levels(common.Sell))
	assert.Equal(t, a.Book().Len(), b.Book().Len())
}

func TestLoadConfig_Defaults(t *testing.T) {
	// make sure no stray bench.yaml is picked up (t.Chdir needs Go 1.24+)
	oldWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(oldWD) })

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, ScenarioBurst, cfg.Scenario)
	assert.Equal(t, 100000, cfg.Ops)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, "bench_results.csv", cfg.Out)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scenario: poisson\nops: 500\nseed: 9\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ScenarioPoisson, cfg.Scenario)
	assert.Equal(t, 500, cfg.Ops)
	assert.Equal(t, int64(9), cfg.Seed)
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scenario: warp\n"), 0o644))
	_, err := LoadConfig(path)
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err, "explicit missing file is an error")
}
