package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/observe-l/eggdrop/locate"
)

func TestLevelFormatFlags(t *testing.T) {
	var l Level
	require.NoError(t, l.Set("WARN"))
	require.Equal(t, LevelWarn, l)
	require.Equal(t, "warn", l.String())
	require.Error(t, l.Set("verbose"))
	require.Error(t, l.Set("panic"))

	var f Format
	require.NoError(t, f.Set("JSON"))
	require.Equal(t, FmtJSON, f)
	require.Equal(t, "json", f.String())
	require.Error(t, f.Set("xml"))
}

func TestParseJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := Parse("info", "json", &buf)
	require.NoError(t, err)
	log.Debug("hidden")
	log.Info("shown", zap.Int("drops", 4))
	require.NoError(t, log.Sync())
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), `"msg":"shown"`)
	require.Contains(t, buf.String(), `"drops":4`)

	_, err = Parse("info", "yaml", &buf)
	require.Error(t, err)
}

func TestProbeLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := locate.DeterministicLocator{Observer: ProbeLogger(zap.New(core))}
	n, err := l.Locate(100, 63)
	require.NoError(t, err)
	entries := logs.FilterMessage("probe").All()
	require.Len(t, entries, n)
	first := entries[0].ContextMap()
	require.EqualValues(t, 50, first["position"])
	require.Equal(t, false, first["broke"])
	require.Equal(t, "deterministic", first["variant"])

	// info level drops probes entirely
	core, logs = observer.New(zap.InfoLevel)
	l.Observer = ProbeLogger(zap.New(core))
	_, err = l.Locate(100, 63)
	require.NoError(t, err)
	require.Zero(t, logs.Len())
}
