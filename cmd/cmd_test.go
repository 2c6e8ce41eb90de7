package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/revcalc/internal/revenue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChildArgs(t *testing.T) {
	got := childArgs([]string{"daemon", "--detach", "--addr", ":9000", "--detach=true"})
	assert.Equal(t, []string{"daemon", "--addr", ":9000", "--child"}, got)
}

func TestPIDFile_WriteInfoRemove(t *testing.T) {
	pf := pidFile(filepath.Join(t.TempDir(), "run", "revcalcd.pid"))

	want := daemonInfo{PID: os.Getpid(), Addr: "127.0.0.1:9000", Scenario: "Baseline"}
	require.NoError(t, pf.write(want))

	pid, err := pf.pid()
	require.NoError(t, err)
	assert.Equal(t, want.PID, pid)

	info, err := pf.info()
	require.NoError(t, err)
	assert.Equal(t, want, info)

	assert.Error(t, pf.claim(), "a live pid must not be claimed")

	pf.remove()
	_, err = pf.pid()
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NoError(t, pf.claim())
}

func TestPIDFile_RejectsGarbage(t *testing.T) {
	pf := pidFile(filepath.Join(t.TempDir(), "revcalcd.pid"))
	require.NoError(t, os.WriteFile(string(pf), []byte("not-a-pid\n"), 0o600))

	_, err := pf.pid()
	assert.Error(t, err)
}

func TestValidateAddr(t *testing.T) {
	assert.NoError(t, validateAddr("127.0.0.1:8787"))
	assert.NoError(t, validateAddr(" :9000 "))
	assert.Error(t, validateAddr("localhost"))
}

func TestApplyParamOverridesOnlyTouchesChangedFlags(t *testing.T) {
	require.NoError(t, rootCmd.ParseFlags([]string{"--price", "900", "--tax", "0"}))

	p := revenue.Params{PricePerMinute: 450, TaxRatePercent: 11, Channels: 48}
	require.True(t, applyParamOverrides(rootCmd, &p))

	assert.Equal(t, 900.0, p.PricePerMinute)
	assert.Equal(t, 0.0, p.TaxRatePercent)
	assert.Equal(t, 48.0, p.Channels, "unset flags keep the scenario value")
}
