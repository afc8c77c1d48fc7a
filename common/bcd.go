// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package common contains functions used across multiple packages. For
// example, packed BCD conversion used by real time clock registers.
package common

// BCD packs a value in the range [0, 99] as two binary coded decimal digits,
// tens in the high nibble and units in the low nibble. Out of range values
// are not checked; the caller masks the result to the register width.
func BCD(v int) byte {
	return byte((v/10)<<4) | byte(v%10)
}

// FromBCD unpacks two binary coded decimal digits. The caller masks away
// bits that are not part of the value before calling.
func FromBCD(b byte) int {
	return int(b&0x0f) + int(b>>4)*10
}
