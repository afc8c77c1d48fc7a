// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ds1302test

import (
	"testing"

	"periph.io/x/conn/v3/gpio"
)

// clockOut shifts b out LSB first, the way a host does.
func clockOut(c *Chip, b byte) {
	for i := range 8 {
		_ = c.IO.Out(gpio.Level(b>>i&1 != 0))
		_ = c.CLK.Out(gpio.Low)
		_ = c.CLK.Out(gpio.High)
	}
}

func clockIn(c *Chip) byte {
	_ = c.IO.In(gpio.Float, gpio.NoEdge)
	var b byte
	for range 8 {
		_ = c.CLK.Out(gpio.High)
		_ = c.CLK.Out(gpio.Low)
		b >>= 1
		if c.IO.Read() == gpio.High {
			b |= 0x80
		}
	}
	return b
}

func frame(c *Chip, f func()) {
	_ = c.CE.Out(gpio.Low)
	_ = c.CLK.Out(gpio.Low)
	_ = c.CE.Out(gpio.High)
	f()
	_ = c.CE.Out(gpio.Low)
	_ = c.CLK.Out(gpio.Low)
}

func TestWriteRead(t *testing.T) {
	c := NewChip()
	frame(c, func() { clockOut(c, 0x8c); clockOut(c, 0x23) })
	if got := c.Register(RegYear); got != 0x23 {
		t.Fatalf("year register = 0x%02x, want 0x23", got)
	}
	var got byte
	frame(c, func() { clockOut(c, 0x8d); got = clockIn(c) })
	if got != 0x23 {
		t.Errorf("read 0x%02x, want 0x23", got)
	}
	frame(c, func() { clockOut(c, 0xc4); clockOut(c, 0x5a) })
	if got := c.RAM(2); got != 0x5a {
		t.Errorf("RAM[2] = 0x%02x, want 0x5a", got)
	}
	if c.Selected() {
		t.Error("chip still selected")
	}
	cmds := c.Commands()
	if len(cmds) != 3 || cmds[0] != 0x8c || cmds[1] != 0x8d || cmds[2] != 0xc4 {
		t.Errorf("Commands() = %x", cmds)
	}
}

func TestWriteProtect(t *testing.T) {
	c := NewChip()
	c.SetRegister(RegWriteProtect, 0x80)
	frame(c, func() { clockOut(c, 0x80); clockOut(c, 0x30) })
	if got := c.Register(RegSeconds); got != 0 {
		t.Errorf("protected seconds register = 0x%02x", got)
	}
	frame(c, func() { clockOut(c, 0x8e); clockOut(c, 0x00) })
	frame(c, func() { clockOut(c, 0x80); clockOut(c, 0x30) })
	if got := c.Register(RegSeconds); got != 0x30 {
		t.Errorf("seconds register = 0x%02x, want 0x30", got)
	}
}

func TestNoFrame(t *testing.T) {
	c := NewChip()
	clockOut(c, 0x8c)
	clockOut(c, 0x23)
	if got := c.Register(RegYear); got != 0 {
		t.Errorf("chip accepted data without CE: 0x%02x", got)
	}
	if len(c.Commands()) != 0 {
		t.Error("chip decoded a command without CE")
	}
}
