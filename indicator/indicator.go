// Package indicator drives a GPIO pin, typically an LED, on every beat.
package indicator

import (
	"fmt"

	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
	"periph.io/x/periph/host"
)

// LED defines a LED connected to a GPIO pin.
type LED struct {
	pin gpio.PinOut
}

// New returns the LED connected to the pin with the given name ("GPIO2",
// "P1_3", "2").
func New(name string) (*LED, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("indicator: could not initialize host: %w", err)
	}

	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("indicator: no pin named %q", name)
	}

	l := FromPin(pin)
	if err := l.Set(false); err != nil {
		return nil, err
	}

	return l, nil
}

// FromPin returns a LED on an already opened pin.
func FromPin(pin gpio.PinOut) *LED {
	return &LED{pin: pin}
}

// Set turns the LED on or off.
func (l *LED) Set(on bool) error {
	if err := l.pin.Out(gpio.Level(on)); err != nil {
		return fmt.Errorf("indicator: could not set %s: %w", l.pin, err)
	}
	return nil
}

// Close turns the LED off.
func (l *LED) Close() error {
	return l.Set(false)
}
