// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ds1302

import (
	"testing"
)

var allFields = []Field{Seconds, Minutes, Hours24, Hours12, Weekday, Date, Month, Year, FormatFlag, AMPMFlag}

func fieldMax(f Field) int {
	if f == Date {
		return 31
	}
	return f.Max()
}

func TestRoundTrip(t *testing.T) {
	for _, f := range allFields {
		for v := f.Min(); v <= fieldMax(f); v++ {
			if got := Decode(f, Encode(f, v)); got != v {
				t.Errorf("Decode(%s, Encode(%s, %d)) = %d", f, f, v, got)
			}
		}
	}
}

func TestEncode(t *testing.T) {
	for _, test := range []struct {
		f    Field
		v    int
		want byte
	}{
		{Seconds, 45, 0x45},
		{Seconds, 0, 0x00},
		{Minutes, 59, 0x59},
		{Hours24, 23, 0x23},
		{Hours12, 12, 0x12},
		{Weekday, 7, 0x07},
		{Weekday, 15, 0x07},
		{Date, 31, 0x31},
		{Month, 12, 0x12},
		{Year, 99, 0x99},
		{FormatFlag, 1, 0x80},
		{FormatFlag, 0, 0x00},
		{AMPMFlag, 1, 0x20},
	} {
		if got := Encode(test.f, test.v); got != test.want {
			t.Errorf("Encode(%s, %d) = 0x%02x, want 0x%02x", test.f, test.v, got, test.want)
		}
	}
}

func TestDecodeMasksOtherBits(t *testing.T) {
	for _, test := range []struct {
		f    Field
		b    byte
		want int
	}{
		{Seconds, 0x45, 45},
		{Seconds, 0x80 | 0x45, 45}, // clock halt
		{Hours24, 0x23, 23},
		{Hours12, 0x80 | 0x20 | 0x11, 11},
		{AMPMFlag, 0x80 | 0x20 | 0x11, 1},
		{FormatFlag, 0x80 | 0x12, 1},
		{FormatFlag, 0x23, 0},
		{Weekday, 0xff, 7},
		{Month, 0xf2, 12},
		{Date, 0xf1, 31},
	} {
		if got := Decode(test.f, test.b); got != test.want {
			t.Errorf("Decode(%s, 0x%02x) = %d, want %d", test.f, test.b, got, test.want)
		}
	}
}

func TestHourRegister(t *testing.T) {
	b := encodeHour(H12(11, true))
	if b != 0xb1 {
		t.Fatalf("encodeHour(11 PM) = 0x%02x, want 0xb1", b)
	}
	if Decode(FormatFlag, b) != 1 {
		t.Error("FormatFlag not set")
	}
	if Decode(AMPMFlag, b) != 1 {
		t.Error("AMPMFlag not set")
	}
	if got := Decode(Hours12, b); got != 11 {
		t.Errorf("Hours12 = %d, want 11", got)
	}

	for _, h := range []Hour{H24(0), H24(14), H24(23), H12(12, false), H12(1, true), H12(12, true)} {
		if got := decodeHour(encodeHour(h)); got != h {
			t.Errorf("decodeHour(encodeHour(%v)) = %v", h, got)
		}
	}
	if b := encodeHour(H24(20)); b != 0x20 {
		t.Errorf("encodeHour(20) = 0x%02x, want 0x20", b)
	}
}

func TestHourIn24(t *testing.T) {
	for _, test := range []struct {
		h    Hour
		want int
	}{
		{H24(0), 0},
		{H24(17), 17},
		{H12(12, false), 0},
		{H12(1, false), 1},
		{H12(12, true), 12},
		{H12(11, true), 23},
	} {
		if got := test.h.In24(); got != test.want {
			t.Errorf("%v.In24() = %d, want %d", test.h, got, test.want)
		}
	}
}

func TestHourConversion(t *testing.T) {
	for h := range 24 {
		h12 := H24(h).To12()
		if h12.Format != Format12 || h12.Value < 1 || h12.Value > 12 {
			t.Errorf("H24(%d).To12() = %+v", h, h12)
		}
		if back := h12.To24(); back != H24(h) {
			t.Errorf("H24(%d).To12().To24() = %v", h, back)
		}
	}
	if got := H24(0).To12(); got != H12(12, false) {
		t.Errorf("midnight = %v, want 12 AM", got)
	}
	if got := H24(12).To12(); got != H12(12, true) {
		t.Errorf("noon = %v, want 12 PM", got)
	}
}

func TestAddresses(t *testing.T) {
	for _, test := range []struct {
		f           Field
		read, write byte
	}{
		{Seconds, 0x81, 0x80},
		{Minutes, 0x83, 0x82},
		{Hours24, 0x85, 0x84},
		{Hours12, 0x85, 0x84},
		{FormatFlag, 0x85, 0x84},
		{AMPMFlag, 0x85, 0x84},
		{Date, 0x87, 0x86},
		{Month, 0x89, 0x88},
		{Weekday, 0x8b, 0x8a},
		{Year, 0x8d, 0x8c},
	} {
		if got := test.f.ReadAddr(); got != test.read {
			t.Errorf("%s.ReadAddr() = 0x%02x, want 0x%02x", test.f, got, test.read)
		}
		if got := test.f.WriteAddr(); got != test.write {
			t.Errorf("%s.WriteAddr() = 0x%02x, want 0x%02x", test.f, got, test.write)
		}
	}
}

func expectPanic(t *testing.T, name string, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s did not panic", name)
		}
	}()
	f()
}

func TestUnknownField(t *testing.T) {
	bad := Field(42)
	if s := bad.String(); s != "Field(42)" {
		t.Errorf("String() = %q", s)
	}
	expectPanic(t, "Encode", func() { Encode(bad, 1) })
	expectPanic(t, "Decode", func() { Decode(bad, 1) })
	expectPanic(t, "WriteAddr", func() { bad.WriteAddr() })
	expectPanic(t, "ReadAddr", func() { bad.ReadAddr() })
	expectPanic(t, "Min", func() { bad.Min() })
	expectPanic(t, "Max", func() { bad.Max() })
}
