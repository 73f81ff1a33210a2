package ads1115

// Register addresses
const (
	RegConversion = 0x00
	RegConfig     = 0x01
)

// Config register fields
const (
	// OS starts a single conversion when written and reads 1 when no
	// conversion is in progress.
	OS         uint16 = (1 << 15)
	ModeSingle uint16 = (1 << 8)

	// CompQueDisable disables the comparator and the ALERT/RDY pin.
	CompQueDisable uint16 = 0b11

	muxShift  = 12
	muxSingle = 0b100 // AINx against GND
	pgaShift  = 9
	drShift   = 5
)

// Device constants
const (
	Addr = 0x48
	// ResetConfig is the config register value at power-on.
	ResetConfig = 0x8583
)

// Programmable Gain Amplifier, named by the full-scale range in mV.
const (
	FSR6144 = iota
	FSR4096
	FSR2048
	FSR1024
	FSR512
	FSR256
)

var fullScale = []int{6144, 4096, 2048, 1024, 512, 256}

// Data Rate, in samples/s.
const (
	DR8 = iota
	DR16
	DR32
	DR64
	DR128
	DR250
	DR475
	DR860
)

var samplesPerSecond = []int{8, 16, 32, 64, 128, 250, 475, 860}

// Channels
const (
	AIN0 = iota
	AIN1
	AIN2
	AIN3
)
