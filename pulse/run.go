package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Print the averaged heart rate until interrupted",
	RunE:  runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	m, done, err := openMeter(cmd)
	if err != nil {
		return err
	}
	defer done()

	out := cmd.OutOrStdout()
	err = m.Run(cmd.Context(), func(bpm int) {
		fmt.Fprintf(out, "BPM %d\n", bpm)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

var rawCmd = &cobra.Command{
	Use:   "raw",
	Short: "Measure a single burst and print its raw heart rate",
	RunE:  runRaw,
}

func runRaw(cmd *cobra.Command, args []string) error {
	m, done, err := openMeter(cmd)
	if err != nil {
		return err
	}
	defer done()

	bpm, err := m.RawBPM(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Curr bpm: %d\n", bpm)
	return nil
}

var voltageCount int

var voltageCmd = &cobra.Command{
	Use:   "voltage",
	Short: "Print smoothed samples as index;amplitude",
	RunE:  runVoltage,
}

func init() {
	voltageCmd.Flags().IntVarP(&voltageCount, "count", "n", 100, "Number of samples (0 = until interrupted)")
}

func runVoltage(cmd *cobra.Command, args []string) error {
	m, done, err := openMeter(cmd)
	if err != nil {
		return err
	}
	defer done()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	for j := 0; voltageCount == 0 || j < voltageCount; j++ {
		if ctx.Err() != nil {
			return nil
		}
		v, err := m.Sample(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		} else if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d;%d\n", j, v)
	}

	return nil
}
