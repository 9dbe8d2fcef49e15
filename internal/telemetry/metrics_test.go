package telemetry_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"moVRP/internal/opt"
	"moVRP/internal/telemetry"
)

func TestObserveRun(t *testing.T) {
	m := telemetry.New()
	l := prometheus.Labels{"algo": "NSGA2", "instance": "A-n32-k5"}

	m.ObserveRun("NSGA2", "A-n32-k5", opt.Result{Evaluations: 120, Duration: 30 * time.Millisecond})
	m.ObserveRun("NSGA2", "A-n32-k5", opt.NewResult(nil, 80, 3, nil))

	require.Equal(t, 2.0, testutil.ToFloat64(m.Runs.With(l)))
	require.Equal(t, 200.0, testutil.ToFloat64(m.Evaluations.With(l)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Warnings.With(l)))
	require.Equal(t, 0.0, testutil.ToFloat64(m.FrontSize.With(l)))
	require.Equal(t, 1, testutil.CollectAndCount(m.Duration))
}

func TestWriteTextfile(t *testing.T) {
	m := telemetry.New()
	m.ObserveRun("SPEA2", "rand-n30-q50", opt.Result{Evaluations: 5})

	path := filepath.Join(t.TempDir(), "movrp.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `movrp_evaluations_total{algo="SPEA2",instance="rand-n30-q50"} 5`)
}
