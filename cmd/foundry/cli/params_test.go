// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestBindFlags_BasicTypes(t *testing.T) {
	type params struct {
		ROM      string        `flag:"rom" desc:"ROM image"`
		Force    bool          `flag:"force,f" desc:"write past the budget"`
		World    int           `flag:"world" desc:"world number"`
		Offset   int           `flag:"offset" desc:"ROM offset"`
		Debounce time.Duration `flag:"debounce" desc:"quiet period"`
		Fields   []string      `flag:"fields" desc:"fields to show"`
		Untagged string
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}

	err := flagSet.Parse([]string{
		"--rom", "smb3.nes",
		"-f",
		"--world", "7",
		"--offset", "0x1FB92",
		"--debounce", "250ms",
		"--fields", "header,actors",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.ROM != "smb3.nes" {
		t.Errorf("ROM = %q, want smb3.nes", p.ROM)
	}
	if !p.Force {
		t.Error("Force = false, want true")
	}
	if p.World != 7 {
		t.Errorf("World = %d, want 7", p.World)
	}
	if p.Offset != 0x1FB92 {
		t.Errorf("Offset = 0x%X, want 0x1FB92", p.Offset)
	}
	if p.Debounce != 250*time.Millisecond {
		t.Errorf("Debounce = %v, want 250ms", p.Debounce)
	}
	if len(p.Fields) != 2 || p.Fields[0] != "header" || p.Fields[1] != "actors" {
		t.Errorf("Fields = %v, want [header actors]", p.Fields)
	}
	if p.Untagged != "" {
		t.Errorf("Untagged = %q, want empty", p.Untagged)
	}
}

func TestBindFlags_Defaults(t *testing.T) {
	type params struct {
		Format   string        `flag:"format" desc:"output format" default:"json"`
		Offset   int           `flag:"offset" desc:"ROM offset" default:"0x10"`
		Backup   bool          `flag:"backup" desc:"keep a backup" default:"true"`
		Debounce time.Duration `flag:"debounce" desc:"quiet period" default:"100ms"`
		Fields   []string      `flag:"fields" desc:"fields" default:"a,b"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	if err := flagSet.Parse(nil); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Format != "json" || p.Offset != 0x10 || !p.Backup || p.Debounce != 100*time.Millisecond {
		t.Errorf("defaults = %+v", p)
	}
	if len(p.Fields) != 2 {
		t.Errorf("Fields = %v, want [a b]", p.Fields)
	}
}

func TestBindFlags_EmbeddedJSONOutput(t *testing.T) {
	type params struct {
		JSONOutput
		World int `flag:"world" desc:"world number"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	if err := flagSet.Parse([]string{"--json"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !p.OutputJSON {
		t.Error("OutputJSON = false after --json")
	}
}

func TestBindFlags_Errors(t *testing.T) {
	tests := []struct {
		name   string
		params any
		want   string
	}{
		{"not a pointer", struct{}{}, "pointer to a struct"},
		{"unsupported type", &struct {
			Ratio float32 `flag:"ratio"`
		}{}, "unsupported type"},
		{"bad int default", &struct {
			Count int `flag:"count" default:"many"`
		}{}, "default for --count"},
		{"bad bool default", &struct {
			Force bool `flag:"force" default:"sometimes"`
		}{}, "default for --force"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := BindFlags(test.params, pflag.NewFlagSet("test", pflag.ContinueOnError))
			if err == nil || !strings.Contains(err.Error(), test.want) {
				t.Errorf("BindFlags error = %v, want it to mention %q", err, test.want)
			}
		})
	}
}

func TestFlagsFromParams_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("FlagsFromParams did not panic on a non-pointer")
		}
	}()
	FlagsFromParams("test", struct{}{})
}
