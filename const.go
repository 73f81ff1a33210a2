package pulse

import "time"

// Sensor defaults, in mV.
const (
	// DefaultBaseline is the output of the sensor with nothing on it
	// (Vref / 2 of a 3.3V supply).
	DefaultBaseline = 1630
	DefaultCeiling  = 150
)

// Smoothing defaults. They suit a sensor read in microseconds; a slower ADC
// should refresh the window within a few tens of ms (see Oversample).
const (
	DefaultSmoothingSize = 150
	DefaultOversample    = DefaultSmoothingSize
)

// Burst defaults.
const (
	DefaultBurstMin = 55
	DefaultBurstMax = 65

	DefaultTick     = 10 * time.Millisecond
	DefaultDelayMin = 1
	DefaultDelayMax = 20

	DefaultMargin = 5
)

// Stabilizer defaults, in beats per minute.
const (
	DefaultWindowSize = 4
	DefaultRetryBelow = 40
	DefaultResetBelow = 30
	DefaultMaxRetries = 20
)
