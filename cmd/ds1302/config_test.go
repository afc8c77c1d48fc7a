// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ds1302.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	for _, test := range []struct {
		name    string
		content string
		want    config
	}{
		{
			name: "full",
			content: `pins:
  clock: GPIO5
  data: GPIO6
  chip_enable: GPIO13
clock_delay: 5us
twelve_hour: true
`,
			want: config{
				Pins:       pinNames{Clock: "GPIO5", Data: "GPIO6", ChipEnable: "GPIO13"},
				ClockDelay: 5 * time.Microsecond,
				TwelveHour: true,
			},
		},
		{
			name:    "partial",
			content: "pins:\n  chip_enable: GPIO4\n",
			want: config{
				Pins: pinNames{Clock: "GPIO17", Data: "GPIO27", ChipEnable: "GPIO4"},
			},
		},
		{
			name:    "empty",
			content: "",
			want:    defaultConfig,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			got, err := loadConfig(writeConfig(t, test.content))
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(got, test.want); diff != "" {
				t.Errorf("loadConfig() difference (-got +want):\n%s", diff)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	got, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(got, defaultConfig); diff != "" {
		t.Errorf("loadConfig(\"\") difference (-got +want):\n%s", diff)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	for _, content := range []string{
		"pins: [1, 2",
		"clock_delay: fast\n",
		"clock_delay: -1us\n",
	} {
		if _, err := loadConfig(writeConfig(t, content)); err == nil {
			t.Errorf("loadConfig(%q) succeeded", content)
		}
	}
	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("loadConfig() of a missing file succeeded")
	}
}
