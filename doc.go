// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package clockdevices is a container for real time clock device drivers.
//
// The drivers are built on periph.io/x/conn/v3 and bit-bang their bus over
// plain GPIO lines.
package clockdevices
