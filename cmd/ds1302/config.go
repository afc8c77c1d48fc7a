// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// config is the content of the -config file.
//
//	pins:
//	  clock: GPIO17
//	  data: GPIO27
//	  chip_enable: GPIO22
//	clock_delay: 2us
//	twelve_hour: false
type config struct {
	Pins       pinNames      `yaml:"pins"`
	ClockDelay time.Duration `yaml:"clock_delay"`
	TwelveHour bool          `yaml:"twelve_hour"`
}

type pinNames struct {
	Clock      string `yaml:"clock"`
	Data       string `yaml:"data"`
	ChipEnable string `yaml:"chip_enable"`
}

var defaultConfig = config{
	Pins: pinNames{Clock: "GPIO17", Data: "GPIO27", ChipEnable: "GPIO22"},
}

// loadConfig reads path over the defaults. An empty path returns the
// defaults.
func loadConfig(path string) (config, error) {
	c := defaultConfig
	if path == "" {
		return c, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	if c.ClockDelay < 0 {
		return c, fmt.Errorf("%s: negative clock_delay %s", path, c.ClockDelay)
	}
	return c, nil
}
