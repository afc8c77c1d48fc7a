// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ds1302

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Pins assigns the GPIO lines wired to the chip. The device only references
// the pins; it does not own them beyond its lifetime.
type Pins struct {
	// Clock is SCLK.
	Clock gpio.PinOut
	// Data is the bidirectional I/O line.
	Data gpio.PinIO
	// ChipEnable is CE, labeled RST on older datasheets.
	ChipEnable gpio.PinOut
}

// Opts holds the configuration options for the device.
type Opts struct {
	// ClockDelay is the time each clock level is held. The datasheet requires
	// at least 1µs at 2V. Default is 2µs. Leave 0 to use default.
	ClockDelay time.Duration
	// Logger receives a debug record per register transaction. If nil,
	// logging is disabled.
	Logger *slog.Logger
}

// DefaultOpts holds the default configuration options for the device.
var DefaultOpts = Opts{
	ClockDelay: 2 * time.Microsecond,
}

// Dev is a handle to a DS1302 chip.
type Dev struct {
	mu     sync.Mutex
	t      transport
	pins   Pins
	halted bool
}

// New returns a device driving the chip through p. The lines are claimed
// until Halt is called and left as low outputs. The Opts can be nil.
func New(p *Pins, opts *Opts) (*Dev, error) {
	if p == nil || p.Clock == nil || p.Data == nil || p.ChipEnable == nil {
		return nil, ErrInvalidPins
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	o := *opts
	if o.ClockDelay <= 0 {
		o.ClockDelay = DefaultOpts.ClockDelay
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	if err := claim(p.Clock, p.Data, p.ChipEnable); err != nil {
		return nil, err
	}
	d := &Dev{
		pins: *p,
		t: transport{
			clk:   p.Clock,
			io:    p.Data,
			ce:    p.ChipEnable,
			delay: o.ClockDelay,
			log:   o.Logger,
		},
	}
	if err := d.t.idle(); err != nil {
		release(p.Clock, p.Data, p.ChipEnable)
		return nil, fmt.Errorf("ds1302: idle lines: %w", err)
	}
	return d, nil
}

// Read returns the date and time. Each register is read in its own
// transaction, so a rollover between two reads is not detected.
func (d *Dev) Read() (DateTime, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.halted {
		return DateTime{}, ErrHalted
	}
	var dt DateTime
	for _, r := range []struct {
		f Field
		v *int
	}{
		{Year, &dt.Year},
		{Month, &dt.Month},
		{Date, &dt.Day},
		{Weekday, &dt.Weekday},
	} {
		v, err := d.readField(r.f)
		if err != nil {
			return DateTime{}, err
		}
		*r.v = v
	}
	b, err := d.t.readReg(regHours | readBit)
	if err != nil {
		return DateTime{}, err
	}
	dt.Hour = decodeHour(b)
	if dt.Minute, err = d.readField(Minutes); err != nil {
		return DateTime{}, err
	}
	if dt.Second, err = d.readField(Seconds); err != nil {
		return DateTime{}, err
	}
	return dt, nil
}

// Set writes the date and time. It returns an error wrapping ErrOutOfRange
// without touching the chip if dt does not validate. Writing the seconds
// clears the clock halt flag, so Set also starts the oscillator.
//
// The chip ignores writes while write protection is enabled.
func (d *Dev) Set(dt DateTime) error {
	if err := dt.Validate(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.halted {
		return ErrHalted
	}
	for _, w := range []struct {
		cmd byte
		v   byte
	}{
		{Year.WriteAddr(), Encode(Year, dt.Year)},
		{Month.WriteAddr(), Encode(Month, dt.Month)},
		{Date.WriteAddr(), Encode(Date, dt.Day)},
		{Weekday.WriteAddr(), Encode(Weekday, dt.Weekday)},
		{regHours, encodeHour(dt.Hour)},
		{Minutes.WriteAddr(), Encode(Minutes, dt.Minute)},
		{Seconds.WriteAddr(), Encode(Seconds, dt.Second)},
	} {
		if err := d.t.writeReg(w.cmd, w.v); err != nil {
			return err
		}
	}
	d.t.log.Debug("ds1302 set", "datetime", dt.String())
	return nil
}

// Now returns the chip's time as a time.Time in UTC, assuming the 21st
// century.
func (d *Dev) Now() (time.Time, error) {
	dt, err := d.Read()
	if err != nil {
		return time.Time{}, err
	}
	return dt.Time(time.UTC), nil
}

// SetTime sets the chip to t converted to UTC, in 24 hour format.
func (d *Dev) SetTime(t time.Time) error {
	dt, err := FromTime(t.UTC())
	if err != nil {
		return err
	}
	return d.Set(dt)
}

// ReadField reads the register holding f and decodes it. For the fields
// sharing the hours register, the value is decoded regardless of the hour
// format; use Hour to get a consistent reading.
func (d *Dev) ReadField(f Field) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.halted {
		return 0, ErrHalted
	}
	return d.readField(f)
}

func (d *Dev) readField(f Field) (int, error) {
	b, err := d.t.readReg(f.ReadAddr())
	if err != nil {
		return 0, err
	}
	return Decode(f, b), nil
}

// Seconds returns the seconds register.
func (d *Dev) Seconds() (int, error) {
	return d.ReadField(Seconds)
}

// Minutes returns the minutes register.
func (d *Dev) Minutes() (int, error) {
	return d.ReadField(Minutes)
}

// Hour returns the hours register, decoded according to the format stored
// with it.
func (d *Dev) Hour() (Hour, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.halted {
		return Hour{}, ErrHalted
	}
	b, err := d.t.readReg(regHours | readBit)
	if err != nil {
		return Hour{}, err
	}
	return decodeHour(b), nil
}

// SetWriteProtection enables or disables the write protect bit. It must be
// disabled before any other write is accepted by the chip.
func (d *Dev) SetWriteProtection(enabled bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.halted {
		return ErrHalted
	}
	var v byte
	if enabled {
		v = bitWriteProtect
	}
	d.t.log.Debug("ds1302 write protection", "enabled", enabled)
	return d.t.writeReg(regWriteProtect, v)
}

// WriteProtected reports whether the write protect bit is set.
func (d *Dev) WriteProtected() (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.halted {
		return false, ErrHalted
	}
	b, err := d.t.readReg(regWriteProtect | readBit)
	return b&bitWriteProtect != 0, err
}

// Halted reports whether the oscillator is stopped. A chip that lost both
// supply and battery powers up halted.
func (d *Dev) Halted() (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.halted {
		return false, ErrHalted
	}
	b, err := d.t.readReg(regSeconds | readBit)
	return b&bitClockHalt != 0, err
}

// SetHalted stops or restarts the oscillator, keeping the seconds count.
func (d *Dev) SetHalted(halted bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.halted {
		return ErrHalted
	}
	b, err := d.t.readReg(regSeconds | readBit)
	if err != nil {
		return err
	}
	b &^= bitClockHalt
	if halted {
		b |= bitClockHalt
	}
	return d.t.writeReg(regSeconds, b)
}

func ramAddr(i int) (byte, error) {
	if i < 0 || i >= RAMSize {
		return 0, fmt.Errorf("%w: RAM index %d not in [0, %d]", ErrOutOfRange, i, RAMSize-1)
	}
	return regRAM + byte(2*i), nil
}

// ReadRAM returns byte i of the battery backed scratch RAM.
func (d *Dev) ReadRAM(i int) (byte, error) {
	cmd, err := ramAddr(i)
	if err != nil {
		return 0, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.halted {
		return 0, ErrHalted
	}
	return d.t.readReg(cmd | readBit)
}

// WriteRAM sets byte i of the battery backed scratch RAM.
func (d *Dev) WriteRAM(i int, v byte) error {
	cmd, err := ramAddr(i)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.halted {
		return ErrHalted
	}
	return d.t.writeReg(cmd, v)
}

// Halt implements conn.Resource. It leaves the lines low and releases them
// for another device. The chip keeps counting on its own.
//
// Every other operation returns ErrHalted afterwards. Calling Halt again is a
// no-op, so it never touches lines claimed by a newer device.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.halted {
		return nil
	}
	d.halted = true
	err := d.t.idle()
	release(d.pins.Clock, d.pins.Data, d.pins.ChipEnable)
	return err
}

func (d *Dev) String() string {
	f := physic.PeriodToFrequency(2 * d.t.delay)
	return fmt.Sprintf("ds1302{%s, %s, %s, %s}", d.pins.Clock, d.pins.Data, d.pins.ChipEnable, f)
}

var _ conn.Resource = &Dev{}
