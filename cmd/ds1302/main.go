// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// ds1302 reads and sets a DS1302 real time clock wired to three GPIO lines.
//
// Usage:
//
//	ds1302 [flags] <command>
//
// Commands:
//
//	read                  print the date, time and chip status
//	set <RFC3339|now>     set the date and time
//	wp <on|off>           enable or disable write protection
//	halt                  stop the oscillator
//	run                   restart the oscillator
//	ram get <index>       print a scratch RAM byte
//	ram set <index> <v>   write a scratch RAM byte
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/GermanBionicSystems/clockdevices/ds1302"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

const usage = `ds1302 - DS1302 real time clock tool

Usage:
  ds1302 [flags] <command>

Commands:
  read                  print the date, time and chip status
  set <RFC3339|now>     set the date and time
  wp <on|off>           enable or disable write protection
  halt                  stop the oscillator
  run                   restart the oscillator
  ram get <index>       print a scratch RAM byte
  ram set <index> <v>   write a scratch RAM byte

Flags:
`

var errUsage = errors.New("invalid arguments, see -help")

func mainImpl() error {
	cfgPath := flag.String("config", "", "YAML file holding pin names and options")
	clk := flag.String("clk", "", "clock line name, overrides the config file")
	dio := flag.String("io", "", "data line name, overrides the config file")
	ce := flag.String("ce", "", "chip enable line name, overrides the config file")
	twelve := flag.Bool("12h", false, "store hours in 12 hour format when setting the time")
	noColor := flag.Bool("nocolor", false, "disable ANSI colors")
	verbose := flag.Bool("v", false, "log every register transaction")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	for _, o := range []struct {
		flag string
		dst  *string
	}{{*clk, &cfg.Pins.Clock}, {*dio, &cfg.Pins.Data}, {*ce, &cfg.Pins.ChipEnable}} {
		if o.flag != "" {
			*o.dst = o.flag
		}
	}
	cfg.TwelveHour = cfg.TwelveHour || *twelve

	args := flag.Args()
	if len(args) == 0 {
		return errUsage
	}

	if _, err := host.Init(); err != nil {
		return err
	}
	pins, err := openPins(&cfg.Pins)
	if err != nil {
		return err
	}
	dev, err := ds1302.New(pins, &ds1302.Opts{ClockDelay: cfg.ClockDelay, Logger: logger})
	if err != nil {
		return err
	}
	defer dev.Halt()

	var w io.Writer = colorable.NewColorableStdout()
	if *noColor {
		w = colorable.NewNonColorable(os.Stdout)
	}
	return run(dev, &cfg, args, w)
}

func openPins(n *pinNames) (*ds1302.Pins, error) {
	var l [3]gpio.PinIO
	for i, name := range []string{n.Clock, n.Data, n.ChipEnable} {
		if l[i] = gpioreg.ByName(name); l[i] == nil {
			return nil, fmt.Errorf("unknown pin %q", name)
		}
	}
	return &ds1302.Pins{Clock: l[0], Data: l[1], ChipEnable: l[2]}, nil
}

// clock is the subset of *ds1302.Dev used by the commands.
type clock interface {
	Read() (ds1302.DateTime, error)
	Set(ds1302.DateTime) error
	Halted() (bool, error)
	SetHalted(bool) error
	WriteProtected() (bool, error)
	SetWriteProtection(bool) error
	ReadRAM(int) (byte, error)
	WriteRAM(int, byte) error
}

func run(dev clock, cfg *config, args []string, w io.Writer) error {
	switch args[0] {
	case "read":
		if len(args) != 1 {
			return errUsage
		}
		return printStatus(dev, w)
	case "set":
		if len(args) != 2 {
			return errUsage
		}
		t := time.Now()
		if args[1] != "now" {
			var err error
			if t, err = time.Parse(time.RFC3339, args[1]); err != nil {
				return err
			}
		}
		dt, err := ds1302.FromTime(t.UTC())
		if err != nil {
			return err
		}
		if cfg.TwelveHour {
			dt.Hour = dt.Hour.To12()
		}
		return setUnprotected(dev, dt)
	case "wp":
		if len(args) != 2 || (args[1] != "on" && args[1] != "off") {
			return errUsage
		}
		return dev.SetWriteProtection(args[1] == "on")
	case "halt", "run":
		if len(args) != 1 {
			return errUsage
		}
		return dev.SetHalted(args[0] == "halt")
	case "ram":
		return ramCmd(dev, args[1:], w)
	}
	return errUsage
}

func printStatus(dev clock, w io.Writer) error {
	var s status
	var err error
	if s.dt, err = dev.Read(); err != nil {
		return err
	}
	if s.halted, err = dev.Halted(); err != nil {
		return err
	}
	if s.protected, err = dev.WriteProtected(); err != nil {
		return err
	}
	return s.print(w, ansi256.Default)
}

// setUnprotected lifts write protection for the duration of the write.
func setUnprotected(dev clock, dt ds1302.DateTime) error {
	wp, err := dev.WriteProtected()
	if err != nil {
		return err
	}
	if wp {
		if err := dev.SetWriteProtection(false); err != nil {
			return err
		}
	}
	err = dev.Set(dt)
	if wp {
		err = errors.Join(err, dev.SetWriteProtection(true))
	}
	return err
}

func ramCmd(dev clock, args []string, w io.Writer) error {
	if len(args) < 2 {
		return errUsage
	}
	i, err := strconv.Atoi(args[1])
	if err != nil {
		return err
	}
	switch {
	case args[0] == "get" && len(args) == 2:
		v, err := dev.ReadRAM(i)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "0x%02x\n", v)
		return err
	case args[0] == "set" && len(args) == 3:
		v, err := strconv.ParseUint(args[2], 0, 8)
		if err != nil {
			return err
		}
		return dev.WriteRAM(i, byte(v))
	}
	return errUsage
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "ds1302: %s.\n", err)
		os.Exit(1)
	}
}
