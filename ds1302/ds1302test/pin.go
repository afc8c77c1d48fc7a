// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ds1302test

import (
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

type role uint8

const (
	roleClock role = iota
	roleData
	roleChipEnable
)

// Pin is one line of the simulated chip. The embedded gpiotest.Pin records
// the last level driven by the host; Read on the data line returns the level
// driven by the chip while the host has the line as an input.
type Pin struct {
	gpiotest.Pin

	c    *Chip
	role role
}

// Out implements gpio.PinOut.
func (p *Pin) Out(l gpio.Level) error {
	if err := p.Pin.Out(l); err != nil {
		return err
	}
	switch p.role {
	case roleClock:
		p.c.setClock(l)
	case roleData:
		p.c.setData(true, l)
	case roleChipEnable:
		p.c.setEnable(l)
	}
	return nil
}

// In implements gpio.PinIn. Only the data line can be turned into an input.
func (p *Pin) In(pull gpio.Pull, edge gpio.Edge) error {
	if err := p.Pin.In(pull, edge); err != nil {
		return err
	}
	if p.role == roleData {
		p.c.setData(false, gpio.Low)
	}
	return nil
}

// Read implements gpio.PinIn.
func (p *Pin) Read() gpio.Level {
	if p.role == roleData {
		return p.c.sample()
	}
	return p.Pin.Read()
}

var _ gpio.PinIO = &Pin{}
