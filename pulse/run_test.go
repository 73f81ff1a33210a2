package main

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastConfig keeps simulated bursts under a second.
const fastConfig = `
meter:
  tick: 1ms
  max_retries: 1
`

func execute(t *testing.T, ctx context.Context, out io.Writer, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})
	return rootCmd.ExecuteContext(ctx)
}

// cancelWriter cancels its context after the first write.
type cancelWriter struct {
	bytes.Buffer
	cancel context.CancelFunc
}

func (w *cancelWriter) Write(p []byte) (int, error) {
	defer w.cancel()
	return w.Buffer.Write(p)
}

func TestRawCmd_Simulated(t *testing.T) {
	var out bytes.Buffer
	err := execute(t, context.Background(), &out,
		"raw", "--simulate", "72", "--config", writeConfig(t, fastConfig))
	require.NoError(t, err)
	assert.Regexp(t, `^Curr bpm: \d+\n$`, out.String())
}

func TestVoltageCmd_Simulated(t *testing.T) {
	var out bytes.Buffer
	err := execute(t, context.Background(), &out,
		"voltage", "-n", "3", "--simulate", "72", "--config", writeConfig(t, fastConfig))
	require.NoError(t, err)
	assert.Regexp(t, `^0;\d+\n1;\d+\n2;\d+\n$`, out.String())
}

func TestRunCmd_Simulated(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := &cancelWriter{cancel: cancel}
	err := execute(t, ctx, out,
		"run", "--simulate", "72", "--config", writeConfig(t, fastConfig))
	require.NoError(t, err, "interrupting run is not an error")
	assert.Regexp(t, `^BPM \d+\n$`, out.String())
}

func TestRunCmd_InvalidGain(t *testing.T) {
	err := execute(t, context.Background(), io.Discard,
		"run", "--simulate", "0", "--gain", "3000", "--config", writeConfig(t, fastConfig))
	assert.ErrorContains(t, err, "invalid gain 3000mV")
}
