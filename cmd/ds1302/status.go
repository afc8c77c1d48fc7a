// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"image/color"
	"io"

	"github.com/GermanBionicSystems/clockdevices/ds1302"
	"github.com/maruel/ansi256"
)

var (
	colorRunning   = color.NRGBA{0x00, 0xc0, 0x00, 0xff}
	colorHalted    = color.NRGBA{0xe0, 0x00, 0x00, 0xff}
	colorProtected = color.NRGBA{0xe0, 0xc0, 0x00, 0xff}
	colorWritable  = color.NRGBA{0x40, 0x40, 0x40, 0xff}
)

type status struct {
	dt        ds1302.DateTime
	halted    bool
	protected bool
}

// print writes one line: an oscillator block, a write protection block and
// the date and time.
func (s *status) print(w io.Writer, p *ansi256.Palette) error {
	osc, oscText := colorRunning, "running"
	if s.halted {
		osc, oscText = colorHalted, "halted"
	}
	wp, wpText := colorWritable, "writable"
	if s.protected {
		wp, wpText = colorProtected, "protected"
	}
	_, err := fmt.Fprintf(w, "%s\033[0m %-7s %s\033[0m %-9s 20%s\n", p.Block(osc), oscText, p.Block(wp), wpText, s.dt)
	return err
}
