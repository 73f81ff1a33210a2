package ads1115

import "fmt"

// Option defines a functional option for the device.
type Option func(d *Device) (Option, error)

// Options set different configuration options and returns the previous value
// of the last option passed. Settings are sent to the device with the next
// conversion.
func (d *Device) Options(options ...Option) (Option, error) {
	var old Option
	var err error
	for _, opt := range options {
		old, err = opt(d)
		if err != nil {
			return nil, err
		}
	}

	return old, nil
}

// Channel selects the analog input (AIN0 to AIN3) measured against GND.
func Channel(ch int) Option {
	return func(d *Device) (Option, error) {
		if ch < AIN0 || ch > AIN3 {
			return nil, fmt.Errorf("ads1115: invalid channel %d", ch)
		}
		old := d.channel
		d.channel = ch

		return Channel(old), nil
	}
}

// Gain sets the full-scale range of the amplifier (FSR6144 to FSR256).
func Gain(fsr int) Option {
	return func(d *Device) (Option, error) {
		if fsr < FSR6144 || fsr > FSR256 {
			return nil, fmt.Errorf("ads1115: invalid gain %d", fsr)
		}
		old := d.gain
		d.gain = fsr

		return Gain(old), nil
	}
}

// DataRate sets the conversion rate (DR8 to DR860).
func DataRate(dr int) Option {
	return func(d *Device) (Option, error) {
		if dr < DR8 || dr > DR860 {
			return nil, fmt.Errorf("ads1115: invalid data rate %d", dr)
		}
		old := d.rate
		d.rate = dr

		return DataRate(old), nil
	}
}
