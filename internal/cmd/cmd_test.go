package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hephbuild/lockbench/internal/hcore/hlog"
	"github.com/hephbuild/lockbench/internal/hcore/hlog/hlogtest"
	"github.com/hephbuild/lockbench/internal/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestProtocolsFlag(t *testing.T) {
	var ps protocols

	require.NoError(t, ps.Set("enter,tryenter"))
	require.NoError(t, ps.Set("enter"))
	require.NoError(t, ps.Set("scoped"))

	assert.Equal(t, protocols{runner.ProtocolEnter, runner.ProtocolTryEnter, runner.ProtocolScoped}, ps)
	assert.Equal(t, "enter,tryenter,scoped", ps.String())

	assert.ErrorContains(t, ps.Set("spin"), "unknown protocol")
}

func TestLoadConfig(t *testing.T) {
	p := filepath.Join(t.TempDir(), "trials.yaml")
	err := os.WriteFile(p, []byte("runs: 2\ntrials:\n  - name: UsingLockEnter\n    budget: 10\n"), 0644)
	require.NoError(t, err)

	configPath = p
	t.Cleanup(func() {
		configPath = ""
	})

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Runs)
	assert.Equal(t, uint64(10), cfg.Trials[2].Budget)

	configPath = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = loadConfig()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunCommand(t *testing.T) {
	ctx := hlog.ContextWithLogger(context.Background(), hlogtest.NewLogger(t))

	rootCmd.SetArgs([]string{"run", "--plain", "--runs", "1", "--warmup", "0", "--budget", "200", "--threads", "4", "-p", "enter,tryenter"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(ctx)
	require.NoError(t, err)
}

func TestRunCommandUnknownTrial(t *testing.T) {
	ctx := hlog.ContextWithLogger(context.Background(), hlogtest.NewLogger(t))

	rootCmd.SetArgs([]string{"run", "--runs", "1", "nope"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(ctx)
	assert.ErrorContains(t, err, `unknown trial "nope"`)
}

func TestSetupOTelSDKWithoutEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	tp := otel.GetTracerProvider()
	mp := otel.GetMeterProvider()

	ctx := hlog.ContextWithLogger(context.Background(), hlogtest.NewLogger(t))

	shutdown, err := setupOTelSDK(ctx)
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	assert.Equal(t, tp, otel.GetTracerProvider())
	assert.Equal(t, mp, otel.GetMeterProvider())

	assert.NoError(t, shutdown(context.Background()))
	assert.NoError(t, shutdown(context.Background()))
}
