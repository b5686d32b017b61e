package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNoopRecorderSatisfiesInterface(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveStageDuration("resolve", time.Millisecond)
	r.ObserveRunDuration(time.Second)
	r.IncStageResult("resolve", ResultSuccess)
	r.IncRunOutcome(RunOutcomeSuccess)
	r.SetPagesResolved(2)
	r.SetEntriesWritten(2)
}

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("resolve", 150*time.Millisecond)
	pr.ObserveRunDuration(500 * time.Millisecond)
	pr.IncStageResult("resolve", ResultSuccess)
	pr.IncStageResult("emit", ResultFatal)
	pr.IncRunOutcome(RunOutcomeFailed)
	pr.SetPagesResolved(12)
	pr.SetEntriesWritten(11)

	require.Equal(t, 1.0, testutil.ToFloat64(pr.stageResults.WithLabelValues("emit", string(ResultFatal))))
	require.Equal(t, 1.0, testutil.ToFloat64(pr.runOutcomes.WithLabelValues(string(RunOutcomeFailed))))
	require.Equal(t, 12.0, testutil.ToFloat64(pr.pagesResolved))
	require.Equal(t, 11.0, testutil.ToFloat64(pr.entriesWritten))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, mfs)
	require.Same(t, reg, pr.Registry())
}

func TestWriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.SetEntriesWritten(7)

	path := filepath.Join(t.TempDir(), "sitemapgen.prom")
	require.NoError(t, WriteTextfile(path, pr.Registry()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), "sitemapgen_entries_written 7"), string(data))
}
