// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ds1302

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/pin"
)

// transport bit-bangs the three wire protocol. Every access is one
// transaction: CE high, a command byte, one data byte, CE low.
type transport struct {
	clk   gpio.PinOut
	io    gpio.PinIO
	ce    gpio.PinOut
	delay time.Duration
	log   *slog.Logger
}

// errorHandler keeps the first pin error of a sequence and turns the
// following pin operations into no-ops.
type errorHandler struct {
	t   *transport
	err error
}

func (eh *errorHandler) out(p gpio.PinOut, l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = p.Out(l)
}

func (eh *errorHandler) wait() {
	if eh.err != nil || eh.t.delay <= 0 {
		return
	}
	time.Sleep(eh.t.delay)
}

// writeByte shifts v out LSB first. The chip latches I/O on the rising edge
// of the clock.
func (eh *errorHandler) writeByte(v byte) {
	for range 8 {
		eh.out(eh.t.io, gpio.Level(v&1 != 0))
		eh.out(eh.t.clk, gpio.Low)
		eh.wait()
		eh.out(eh.t.clk, gpio.High)
		eh.wait()
		v >>= 1
	}
}

// readByte releases I/O and shifts a byte in LSB first. The chip drives the
// next bit after each falling edge of the clock; the first falling edge is
// the one closing the command byte.
func (eh *errorHandler) readByte() byte {
	if eh.err == nil {
		eh.err = eh.t.io.In(gpio.Float, gpio.NoEdge)
	}
	var v byte
	for range 8 {
		eh.out(eh.t.clk, gpio.High)
		eh.wait()
		eh.out(eh.t.clk, gpio.Low)
		eh.wait()
		v >>= 1
		if eh.err == nil && eh.t.io.Read() == gpio.High {
			v |= 0x80
		}
	}
	return v
}

// stop drives CE and the clock low. It does not skip on a previous error so a
// failed transaction still leaves the chip deselected.
func (t *transport) stop() error {
	return errors.Join(t.ce.Out(gpio.Low), t.clk.Out(gpio.Low))
}

// tx runs one framed transaction. The command byte is not validated.
func (t *transport) tx(cmd byte, write bool, value byte) (byte, error) {
	eh := errorHandler{t: t}
	eh.err = t.stop()
	eh.out(t.ce, gpio.High)
	eh.writeByte(cmd)
	var r byte
	if write {
		eh.writeByte(value)
	} else {
		r = eh.readByte()
	}
	if err := errors.Join(eh.err, t.stop()); err != nil {
		t.log.Debug("ds1302 transaction failed", "cmd", cmd, "err", err)
		return 0, fmt.Errorf("ds1302: command 0x%02x: %w", cmd, err)
	}
	if write {
		t.log.Debug("ds1302 write", "cmd", cmd, "value", value)
	} else {
		t.log.Debug("ds1302 read", "cmd", cmd, "value", r)
	}
	return r, nil
}

func (t *transport) writeReg(cmd, value byte) error {
	_, err := t.tx(cmd, true, value)
	return err
}

func (t *transport) readReg(cmd byte) (byte, error) {
	return t.tx(cmd, false, 0)
}

// idle drives all three lines low as outputs.
func (t *transport) idle() error {
	return errors.Join(t.stop(), t.io.Out(gpio.Low))
}

var (
	claimMu sync.Mutex
	claimed = map[pin.Pin]struct{}{}
)

// claim reserves the lines for one device. Pins are compared by identity;
// a pin whose type is not comparable is rejected with ErrInvalidPins.
func claim(pins ...pin.Pin) error {
	for _, p := range pins {
		if t := reflect.TypeOf(p); t == nil || !t.Comparable() {
			return fmt.Errorf("%w: %T is not comparable", ErrInvalidPins, p)
		}
	}
	claimMu.Lock()
	defer claimMu.Unlock()
	for i, p := range pins {
		if _, ok := claimed[p]; ok {
			return fmt.Errorf("%w: %s", ErrPinBusy, p)
		}
		for _, q := range pins[:i] {
			if p == q {
				return fmt.Errorf("%w: %s assigned twice", ErrPinBusy, p)
			}
		}
	}
	for _, p := range pins {
		claimed[p] = struct{}{}
	}
	return nil
}

func release(pins ...pin.Pin) {
	claimMu.Lock()
	defer claimMu.Unlock()
	for _, p := range pins {
		delete(claimed, p)
	}
}
