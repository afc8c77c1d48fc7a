// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ds1302test simulates a DS1302 chip at the pin level, so the
// ds1302 driver can be exercised without hardware.
//
// The chip decodes the command and data bits clocked on its three lines and
// keeps a register file, the same way the real chip does. It does not count
// time.
package ds1302test

import (
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

// Register indexes in the clock register file.
const (
	RegSeconds = iota
	RegMinutes
	RegHours
	RegDate
	RegMonth
	RegWeekday
	RegYear
	RegWriteProtect
	RegTrickleCharger
	NumRegisters
)

// RAMSize is the number of scratch RAM bytes.
const RAMSize = 31

type phase uint8

const (
	phaseIdle phase = iota
	phaseCommand
	phaseWrite
	phaseRead
	phaseDone
)

// Chip is a simulated DS1302. Connect CLK, IO and CE to the driver.
type Chip struct {
	CLK *Pin
	IO  *Pin
	CE  *Pin

	mu       sync.Mutex
	regs     [NumRegisters]byte
	ram      [RAMSize]byte
	commands []byte

	enabled bool
	clk     gpio.Level
	hostOut bool
	hostIO  gpio.Level
	chipIO  gpio.Level
	phase   phase
	bits    int
	cmd     byte
	data    byte
}

// NewChip returns a chip with cleared registers, the lines idle low.
func NewChip() *Chip {
	c := &Chip{}
	c.CLK = &Pin{Pin: gpiotest.Pin{N: "CLK", Num: 0, Fn: "Out"}, c: c, role: roleClock}
	c.IO = &Pin{Pin: gpiotest.Pin{N: "IO", Num: 1, Fn: "InOut"}, c: c, role: roleData}
	c.CE = &Pin{Pin: gpiotest.Pin{N: "CE", Num: 2, Fn: "Out"}, c: c, role: roleChipEnable}
	return c
}

// Register returns clock register i.
func (c *Chip) Register(i int) byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.regs[i]
}

// SetRegister sets clock register i, bypassing write protection.
func (c *Chip) SetRegister(i int, b byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.regs[i] = b
}

// RAM returns scratch byte i.
func (c *Chip) RAM(i int) byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ram[i]
}

// Commands returns the command bytes received so far, one per transaction.
func (c *Chip) Commands() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]byte(nil), c.commands...)
}

// Selected reports whether a transaction is open, i.e. CE is high.
func (c *Chip) Selected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

func (c *Chip) setEnable(l gpio.Level) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if bool(l) == c.enabled {
		return
	}
	c.enabled = bool(l)
	c.bits, c.cmd, c.data = 0, 0, 0
	c.chipIO = gpio.Low
	if c.enabled {
		c.phase = phaseCommand
	} else {
		c.phase = phaseIdle
	}
}

func (c *Chip) setClock(l gpio.Level) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev := c.clk
	c.clk = l
	if !c.enabled || prev == l {
		return
	}
	if l == gpio.High {
		c.rising()
	} else {
		c.falling()
	}
}

// rising latches the host's bit.
func (c *Chip) rising() {
	var bit byte
	if c.hostOut && c.hostIO == gpio.High {
		bit = 1
	}
	switch c.phase {
	case phaseCommand:
		c.cmd |= bit << c.bits
		c.bits++
		if c.bits < 8 {
			return
		}
		c.commands = append(c.commands, c.cmd)
		c.bits = 0
		switch {
		case c.cmd&0x80 == 0:
			c.phase = phaseDone
		case c.cmd&0x01 != 0:
			c.phase = phaseRead
			c.data = c.load(c.cmd)
		default:
			c.phase = phaseWrite
		}
	case phaseWrite:
		c.data |= bit << c.bits
		c.bits++
		if c.bits == 8 {
			c.store(c.cmd, c.data)
			c.phase = phaseDone
		}
	}
}

// falling drives the next output bit.
func (c *Chip) falling() {
	if c.phase != phaseRead {
		return
	}
	c.chipIO = gpio.Level(c.data>>c.bits&1 != 0)
	c.bits++
	if c.bits == 8 {
		c.phase = phaseDone
	}
}

func (c *Chip) load(cmd byte) byte {
	addr := int(cmd>>1) & 0x1f
	if cmd&0x40 != 0 {
		if addr < RAMSize {
			return c.ram[addr]
		}
		return 0
	}
	if addr < NumRegisters {
		return c.regs[addr]
	}
	return 0
}

func (c *Chip) store(cmd, v byte) {
	addr := int(cmd>>1) & 0x1f
	ram := cmd&0x40 != 0
	if c.regs[RegWriteProtect]&0x80 != 0 && (ram || addr != RegWriteProtect) {
		return
	}
	switch {
	case ram && addr < RAMSize:
		c.ram[addr] = v
	case !ram && addr == RegWriteProtect:
		c.regs[addr] = v & 0x80
	case !ram && addr < NumRegisters:
		c.regs[addr] = v
	}
}

func (c *Chip) setData(out bool, l gpio.Level) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hostOut = out
	if out {
		c.hostIO = l
	}
}

func (c *Chip) sample() gpio.Level {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hostOut {
		return c.hostIO
	}
	if c.phase == phaseRead || c.phase == phaseDone {
		return c.chipIO
	}
	return gpio.Low
}
