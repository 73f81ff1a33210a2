// Package ads1115 reads single-ended voltages from an ADS1115 16-bit ADC over
// I²C.
package ads1115

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/periph/conn/i2c"
	"periph.io/x/periph/conn/i2c/i2creg"
	"periph.io/x/periph/host"
)

var (
	// ErrNotReady throws an error when a conversion does not complete.
	ErrNotReady error = errors.New("ads1115: conversion did not complete")
)

// maxPolls bounds the wait for a conversion. Reading the config register
// takes longer than the slowest conversion (8 samples/s) divided by maxPolls.
const maxPolls = 1000

// conn is the part of *i2c.Dev the device talks through.
type conn interface {
	Tx(w, r []byte) error
	Write(b []byte) (int, error)
}

// Device defines an ADS1115 device.
type Device struct {
	dev conn
	bus i2c.BusCloser

	channel int
	gain    int
	rate    int
}

// New returns a new ADS1115 device. By default, it reads AIN0 with a
// full-scale range of ±4.096V at 860 samples/s.
//
// Argument "busName" can be used to specify the exact bus to use ("/dev/i2c-1", "I2C1", "1").
// Argument "addr" can be used to specify alternative address if default (0x48) is unavailable.
// If "busName" argument is specified as an empty string "" the first available bus will be used.
func New(busName string, addr uint16, options ...Option) (*Device, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("ads1115: could not initialize host: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("ads1115: could not open I2C bus: %w", err)
	}

	d, err := open(bus, addr, options...)
	if err != nil {
		bus.Close()
		return nil, err
	}

	return d, nil
}

func open(bus i2c.BusCloser, addr uint16, options ...Option) (*Device, error) {
	if addr == 0 {
		addr = Addr
	}

	d := &Device{
		dev: &i2c.Dev{
			Addr: addr,
			Bus:  bus,
		},
		bus:     bus,
		channel: AIN0,
		gain:    FSR4096,
		rate:    DR860,
	}

	if _, err := d.Read(RegConfig); err != nil {
		return nil, fmt.Errorf("ads1115: could not find device at %#x: %w", addr, err)
	}

	if _, err := d.Options(options...); err != nil {
		return nil, fmt.Errorf("ads1115: could not initialize device: %w", err)
	}

	return d, nil
}

// Close closes the device and cleans after itself.
func (d *Device) Close() error {
	return d.bus.Close()
}

// Read reads a 16-bit register.
func (d *Device) Read(reg byte) (uint16, error) {
	b := make([]byte, 2)
	if err := d.dev.Tx([]byte{reg}, b); err != nil {
		return 0, fmt.Errorf("ads1115: could not read register %#x: %w", reg, err)
	}

	return uint16(b[0])<<8 | uint16(b[1]), nil
}

// Write writes a 16-bit register.
func (d *Device) Write(reg byte, data uint16) error {
	n, err := d.dev.Write([]byte{reg, byte(data >> 8), byte(data)})
	if err != nil {
		return fmt.Errorf("ads1115: could not write register %#x: %w", reg, err)
	}
	n-- // remove register write
	if n != 2 {
		return fmt.Errorf("ads1115: wrong number of bytes written to %#x: want %d, got %d", reg, 2, n)
	}

	return nil
}

// config returns the config register value that starts a single conversion
// with the current settings.
func (d *Device) config() uint16 {
	return OS |
		uint16(muxSingle|d.channel)<<muxShift |
		uint16(d.gain)<<pgaShift |
		ModeSingle |
		uint16(d.rate)<<drShift |
		CompQueDisable
}

// Raw runs a single conversion and returns the signed ADC value.
func (d *Device) Raw() (int16, error) {
	if err := d.Write(RegConfig, d.config()); err != nil {
		return 0, fmt.Errorf("ads1115: could not start conversion: %w", err)
	}

	if err := d.waitReady(); err != nil {
		return 0, err
	}

	v, err := d.Read(RegConversion)
	if err != nil {
		return 0, fmt.Errorf("ads1115: could not read conversion: %w", err)
	}

	return int16(v), nil
}

func (d *Device) waitReady() error {
	for i := 0; i < maxPolls; i++ {
		state, err := d.Read(RegConfig)
		if err != nil {
			return fmt.Errorf("ads1115: could not wait for conversion: %w", err)
		}
		if state&OS != 0 {
			return nil
		}
	}

	return ErrNotReady
}

// ConversionTime returns how long one conversion takes at the configured data
// rate.
func (d *Device) ConversionTime() time.Duration {
	return time.Second / time.Duration(samplesPerSecond[d.rate])
}

// Voltage runs a single conversion and returns the input voltage in mV.
func (d *Device) Voltage() (int, error) {
	raw, err := d.Raw()
	if err != nil {
		return 0, err
	}

	return int(raw) * fullScale[d.gain] / 32768, nil
}
