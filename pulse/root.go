package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cgxeiji/pulse"
	"github.com/cgxeiji/pulse/ads1115"
	"github.com/cgxeiji/pulse/indicator"
	"github.com/cgxeiji/pulse/sim"
)

var (
	configPath string
	verbose    bool
	jsonLog    bool
)

var rootCmd = &cobra.Command{
	Use:           "pulse",
	Short:         "Heart rate from an analog pulse sensor",
	Long:          "Reads a pulse sensor through an ADS1115 ADC and estimates the heart rate in beats per minute.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	f.String("bus", "", "I²C bus name (first available if empty)")
	f.Uint16("addr", ads1115.Addr, "ADS1115 I²C address")
	f.Int("channel", ads1115.AIN0, "ADS1115 input channel (0-3)")
	f.Int("gain", 4096, "ADS1115 full-scale range in mV")
	f.Int("rate", 860, "ADS1115 data rate in samples/s")
	f.String("led", "", "GPIO pin of the beat LED (none if empty)")
	f.Float64("simulate", 0, "use a simulated sensor beating at this rate")
	f.Int("baseline", pulse.DefaultBaseline, "sensor output at rest in mV")
	f.BoolVarP(&verbose, "verbose", "v", false, "Log every burst")
	f.BoolVar(&jsonLog, "json", false, "Log as JSON")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(rawCmd)
	rootCmd.AddCommand(voltageCmd)
}

func newLogger(w io.Writer, verbose, json bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}

	var handler slog.Handler = slog.NewTextHandler(w, opts)
	if json {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler)
}

// openMeter builds the meter described by the configuration and flags. The
// returned function releases the hardware.
func openMeter(cmd *cobra.Command) (*pulse.Meter, func(), error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := applyFlags(cmd, &cfg); err != nil {
		return nil, nil, err
	}

	log := newLogger(os.Stderr, verbose, jsonLog)
	var closers []func()

	var sensor pulse.Sensor
	if cfg.Simulate > 0 {
		sensor = sim.New(cfg.Simulate, sim.Baseline(cfg.Meter.Baseline), sim.Noise(20, 1))
		cfg.Meter = cfg.Meter.sized(pulse.DefaultSmoothingSize)
		log.Info("using simulated sensor", "bpm", cfg.Simulate)
	} else {
		gain, err := cfg.gain()
		if err != nil {
			return nil, nil, err
		}
		rate, err := cfg.rate()
		if err != nil {
			return nil, nil, err
		}
		adc, err := ads1115.New(cfg.Bus, cfg.Addr, ads1115.Channel(cfg.Channel), ads1115.Gain(gain), ads1115.DataRate(rate))
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func() { adc.Close() })
		sensor = adc
		// each reading is a full conversion
		cfg.Meter = cfg.Meter.sized(readingsPerSample(adc.ConversionTime()))
		log.Debug("using ADS1115", "readings_per_sample", cfg.Meter.Oversample)
	}
	options := append(cfg.Meter.options(), pulse.WithLogger(log))

	if cfg.LED != "" {
		led, err := indicator.New(cfg.LED)
		if err != nil {
			closeAll(closers)
			return nil, nil, err
		}
		closers = append(closers, func() { led.Close() })
		options = append(options, pulse.WithIndicator(led))
	}

	m, err := pulse.New(sensor, options...)
	if err != nil {
		closeAll(closers)
		return nil, nil, err
	}

	return m, func() { closeAll(closers) }, nil
}

func closeAll(closers []func()) {
	for i := len(closers) - 1; i >= 0; i-- {
		closers[i]()
	}
}
