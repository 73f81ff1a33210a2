package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cgxeiji/pulse"
	"github.com/cgxeiji/pulse/ads1115"
)

// config is the YAML configuration of the pulse command. Flags override the
// values read from the file.
type config struct {
	Bus      string  `yaml:"bus"`
	Addr     uint16  `yaml:"addr"`
	Channel  int     `yaml:"channel"`
	Gain     int     `yaml:"gain"` // full-scale range in mV
	Rate     int     `yaml:"rate"` // samples/s
	LED      string  `yaml:"led"`
	Simulate float64 `yaml:"simulate"`

	Meter meterConfig `yaml:"meter"`
}

// meterConfig holds the meter options. A zero smoothing_size or oversample is
// sized from the sensor by openMeter.
type meterConfig struct {
	Baseline      int           `yaml:"baseline"`
	Ceiling       int           `yaml:"ceiling"`
	SmoothingSize int           `yaml:"smoothing_size"`
	Oversample    int           `yaml:"oversample"`
	BurstMin      int           `yaml:"burst_min"`
	BurstMax      int           `yaml:"burst_max"`
	Tick          time.Duration `yaml:"tick"`
	DelayMin      int           `yaml:"delay_min"`
	DelayMax      int           `yaml:"delay_max"`
	Margin        int           `yaml:"margin"`
	WindowSize    int           `yaml:"window_size"`
	RetryBelow    int           `yaml:"retry_below"`
	ResetBelow    int           `yaml:"reset_below"`
	MaxRetries    int           `yaml:"max_retries"`
}

var gains = map[int]int{
	6144: ads1115.FSR6144,
	4096: ads1115.FSR4096,
	2048: ads1115.FSR2048,
	1024: ads1115.FSR1024,
	512:  ads1115.FSR512,
	256:  ads1115.FSR256,
}

var rates = map[int]int{
	8:   ads1115.DR8,
	16:  ads1115.DR16,
	32:  ads1115.DR32,
	64:  ads1115.DR64,
	128: ads1115.DR128,
	250: ads1115.DR250,
	475: ads1115.DR475,
	860: ads1115.DR860,
}

// sampleBudget is the time spent reading the ADC for one smoothed sample.
const sampleBudget = 16 * time.Millisecond

// readingsPerSample returns how many conversions fit in sampleBudget.
func readingsPerSample(conversion time.Duration) int {
	n := int(sampleBudget / conversion)
	if n < 1 {
		return 1
	}
	return n
}

func defaultConfig() config {
	return config{
		Addr:    ads1115.Addr,
		Channel: ads1115.AIN0,
		Gain:    4096,
		Rate:    860,
		Meter: meterConfig{
			Baseline:   pulse.DefaultBaseline,
			Ceiling:    pulse.DefaultCeiling,
			BurstMin:   pulse.DefaultBurstMin,
			BurstMax:   pulse.DefaultBurstMax,
			Tick:       pulse.DefaultTick,
			DelayMin:   pulse.DefaultDelayMin,
			DelayMax:   pulse.DefaultDelayMax,
			Margin:     pulse.DefaultMargin,
			WindowSize: pulse.DefaultWindowSize,
			RetryBelow: pulse.DefaultRetryBelow,
			ResetBelow: pulse.DefaultResetBelow,
			MaxRetries: pulse.DefaultMaxRetries,
		},
	}
}

// loadConfig reads the YAML file at path on top of the defaults. An empty
// path returns the defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("could not read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("could not parse config %s: %w", path, err)
	}

	return cfg, nil
}

// applyFlags overrides cfg with the flags set on the command line.
func applyFlags(cmd *cobra.Command, cfg *config) error {
	f := cmd.Flags()
	var err error
	if f.Changed("bus") {
		cfg.Bus, err = f.GetString("bus")
	}
	if err == nil && f.Changed("addr") {
		cfg.Addr, err = f.GetUint16("addr")
	}
	if err == nil && f.Changed("channel") {
		cfg.Channel, err = f.GetInt("channel")
	}
	if err == nil && f.Changed("gain") {
		cfg.Gain, err = f.GetInt("gain")
	}
	if err == nil && f.Changed("rate") {
		cfg.Rate, err = f.GetInt("rate")
	}
	if err == nil && f.Changed("led") {
		cfg.LED, err = f.GetString("led")
	}
	if err == nil && f.Changed("simulate") {
		cfg.Simulate, err = f.GetFloat64("simulate")
	}
	if err == nil && f.Changed("baseline") {
		cfg.Meter.Baseline, err = f.GetInt("baseline")
	}

	return err
}

func (c config) gain() (int, error) {
	g, ok := gains[c.Gain]
	if !ok {
		return 0, fmt.Errorf("invalid gain %dmV: use 6144, 4096, 2048, 1024, 512 or 256", c.Gain)
	}
	return g, nil
}

func (c config) rate() (int, error) {
	r, ok := rates[c.Rate]
	if !ok {
		return 0, fmt.Errorf("invalid rate %d samples/s: use 8, 16, 32, 64, 128, 250, 475 or 860", c.Rate)
	}
	return r, nil
}

// sized fills a zero smoothing size or oversample with n readings.
func (c meterConfig) sized(n int) meterConfig {
	if c.SmoothingSize == 0 {
		c.SmoothingSize = n
	}
	if c.Oversample == 0 {
		c.Oversample = n
	}
	return c
}

func (c meterConfig) options() []pulse.Option {
	options := []pulse.Option{
		pulse.Baseline(c.Baseline),
		pulse.Ceiling(c.Ceiling),
		pulse.BurstLength(c.BurstMin, c.BurstMax),
		pulse.SampleDelay(c.Tick, c.DelayMin, c.DelayMax),
		pulse.Margin(c.Margin),
		pulse.WindowSize(c.WindowSize),
		pulse.Thresholds(c.RetryBelow, c.ResetBelow),
		pulse.MaxRetries(c.MaxRetries),
	}
	if c.SmoothingSize != 0 {
		options = append(options, pulse.SmoothingSize(c.SmoothingSize))
	}
	if c.Oversample != 0 {
		options = append(options, pulse.Oversample(c.Oversample))
	}
	return options
}
