// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ds1302 controls a Maxim DS1302 trickle-charge timekeeping chip
// over its three-wire serial interface.
//
// The interface is not SPI. It uses a clock line (SCLK), a bidirectional
// data line (I/O) and a chip enable line (CE), all driven in software through
// plain GPIO pins. Every register access is its own transaction, framed by
// chip enable.
//
// The chip keeps seconds, minutes, hours, date, month, weekday and a two
// digit year in packed BCD. Hours are either 24 hour or 12 hour with an AM/PM
// bit; the mode is stored in the hours register itself.
//
// # Datasheet
//
// https://www.analog.com/media/en/technical-documentation/data-sheets/DS1302.pdf
package ds1302
