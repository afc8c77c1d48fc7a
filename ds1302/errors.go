// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ds1302

import "errors"

var (
	// ErrInvalidPins is returned by New when the pin assignment is missing,
	// incomplete or uses pins that cannot be told apart.
	ErrInvalidPins = errors.New("ds1302: clock, data and chip enable pins are required")
	// ErrPinBusy is returned by New when one of the lines is already driven by
	// another DS1302 device that was not halted.
	ErrPinBusy = errors.New("ds1302: pin already in use")
	// ErrHalted is returned by every operation on a device after Halt.
	ErrHalted = errors.New("ds1302: device halted")
	// ErrOutOfRange is returned when a value does not fit the register it is
	// written to.
	ErrOutOfRange = errors.New("ds1302: value out of range")
)
