// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ds1302

import (
	"fmt"

	"github.com/GermanBionicSystems/clockdevices/common"
)

// Register write addresses. The matching read address has bit 0 set.
const (
	regSeconds      byte = 0x80
	regMinutes      byte = 0x82
	regHours        byte = 0x84
	regDate         byte = 0x86
	regMonth        byte = 0x88
	regWeekday      byte = 0x8a
	regYear         byte = 0x8c
	regWriteProtect byte = 0x8e
	regRAM          byte = 0xc0

	readBit byte = 0x01
)

const (
	bitClockHalt    byte = 1 << 7
	bitWriteProtect byte = 1 << 7
	bit12Hour       byte = 1 << 7
	bitPM           byte = 1 << 5

	// RAMSize is the number of battery backed scratch bytes.
	RAMSize = 31
)

// Field is one logical value stored in the clock registers.
//
// Hours24, Hours12, FormatFlag and AMPMFlag share the hours register.
type Field uint8

const (
	Seconds Field = iota
	Minutes
	Hours24
	Hours12
	Weekday
	Date
	Month
	Year
	FormatFlag
	AMPMFlag
)

var fieldNames = [...]string{
	Seconds:    "Seconds",
	Minutes:    "Minutes",
	Hours24:    "Hours24",
	Hours12:    "Hours12",
	Weekday:    "Weekday",
	Date:       "Date",
	Month:      "Month",
	Year:       "Year",
	FormatFlag: "FormatFlag",
	AMPMFlag:   "AMPMFlag",
}

func (f Field) String() string {
	if int(f) < len(fieldNames) {
		return fieldNames[f]
	}
	return fmt.Sprintf("Field(%d)", uint8(f))
}

// WriteAddr returns the command byte that selects the field's register for
// writing.
func (f Field) WriteAddr() byte {
	switch f {
	case Seconds:
		return regSeconds
	case Minutes:
		return regMinutes
	case Hours24, Hours12, FormatFlag, AMPMFlag:
		return regHours
	case Weekday:
		return regWeekday
	case Date:
		return regDate
	case Month:
		return regMonth
	case Year:
		return regYear
	}
	panic(fmt.Sprintf("ds1302: unknown field %s", f))
}

// ReadAddr returns the command byte that selects the field's register for
// reading.
func (f Field) ReadAddr() byte {
	return f.WriteAddr() | readBit
}

// Encode packs v into the bits the field occupies in its register. Flags take
// 0 or 1. Values are not range checked; see DateTime.Validate.
//
// Encode panics on an unknown field.
func Encode(f Field, v int) byte {
	switch f {
	case Seconds, Minutes:
		return common.BCD(v) & 0x7f
	case Hours24, Date:
		return common.BCD(v) & 0x3f
	case Hours12, Month:
		return common.BCD(v) & 0x1f
	case Weekday:
		return byte(v) & 0x07
	case Year:
		return common.BCD(v)
	case FormatFlag:
		if v != 0 {
			return bit12Hour
		}
		return 0
	case AMPMFlag:
		if v != 0 {
			return bitPM
		}
		return 0
	}
	panic(fmt.Sprintf("ds1302: unknown field %s", f))
}

// Decode extracts the field's value from a register byte. Bits that belong to
// other fields, like the clock halt bit in the seconds register, are ignored.
//
// Decode panics on an unknown field.
func Decode(f Field, b byte) int {
	switch f {
	case Seconds, Minutes:
		return common.FromBCD(b & 0x7f)
	case Hours24, Date:
		return common.FromBCD(b & 0x3f)
	case Hours12, Month:
		return common.FromBCD(b & 0x1f)
	case Weekday:
		return int(b & 0x07)
	case Year:
		return common.FromBCD(b)
	case FormatFlag:
		return int(b>>7) & 1
	case AMPMFlag:
		return int(b>>5) & 1
	}
	panic(fmt.Sprintf("ds1302: unknown field %s", f))
}

// HourFormat selects how the hours register counts.
type HourFormat uint8

const (
	// Format24 counts hours 0 to 23.
	Format24 HourFormat = iota
	// Format12 counts hours 1 to 12 with an AM/PM bit.
	Format12
)

func (h HourFormat) String() string {
	if h == Format12 {
		return "12h"
	}
	return "24h"
}

// Hour is the decoded content of the hours register. PM is only meaningful
// when Format is Format12.
type Hour struct {
	Value  int
	Format HourFormat
	PM     bool
}

// H24 returns a 24 hour Hour.
func H24(h int) Hour {
	return Hour{Value: h, Format: Format24}
}

// H12 returns a 12 hour Hour.
func H12(h int, pm bool) Hour {
	return Hour{Value: h, Format: Format12, PM: pm}
}

// In24 returns the hour in the range [0, 23] whatever the format.
func (h Hour) In24() int {
	if h.Format == Format24 {
		return h.Value
	}
	v := h.Value % 12
	if h.PM {
		v += 12
	}
	return v
}

// To12 returns the same hour in 12 hour format.
func (h Hour) To12() Hour {
	v := h.In24()
	pm := v >= 12
	if v %= 12; v == 0 {
		v = 12
	}
	return H12(v, pm)
}

// To24 returns the same hour in 24 hour format.
func (h Hour) To24() Hour {
	return H24(h.In24())
}

func (h Hour) String() string {
	if h.Format == Format24 {
		return fmt.Sprintf("%02d", h.Value)
	}
	if h.PM {
		return fmt.Sprintf("%02d PM", h.Value)
	}
	return fmt.Sprintf("%02d AM", h.Value)
}

// field returns the Field holding the hour value for the format.
func (h Hour) field() Field {
	if h.Format == Format12 {
		return Hours12
	}
	return Hours24
}

// encodeHour composes the hours register from the format flag, the AM/PM bit
// and the hour digits.
func encodeHour(h Hour) byte {
	if h.Format == Format12 {
		pm := 0
		if h.PM {
			pm = 1
		}
		return Encode(FormatFlag, 1) | Encode(AMPMFlag, pm) | Encode(Hours12, h.Value)
	}
	return Encode(FormatFlag, 0) | Encode(Hours24, h.Value)
}

// decodeHour reads the format flag first, as it decides how the remaining
// bits of the hours register are laid out.
func decodeHour(b byte) Hour {
	if Decode(FormatFlag, b) == 1 {
		return H12(Decode(Hours12, b), Decode(AMPMFlag, b) == 1)
	}
	return H24(Decode(Hours24, b))
}
