// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/bureau-foundation/foundry/cmd/foundry/cli"
	"github.com/bureau-foundation/foundry/lib/version"
)

// TestCommandTree walks the command tree and checks that every leaf
// command can run and documents itself, and that sibling names are
// unique.
func TestCommandTree(t *testing.T) {
	walkCommands(Root(&bytes.Buffer{}), nil, func(command *cli.Command, path []string) {
		name := strings.Join(path, " ")
		if command.Run == nil && len(command.Subcommands) == 0 {
			t.Errorf("%s: neither runnable nor a group", name)
		}
		if len(path) > 1 && command.Summary == "" {
			t.Errorf("%s: missing Summary", name)
		}
		seen := make(map[string]bool)
		for _, sub := range command.Subcommands {
			if seen[sub.Name] {
				t.Errorf("%s: subcommand %q listed twice", name, sub.Name)
			}
			seen[sub.Name] = true
		}
	})
}

func walkCommands(command *cli.Command, path []string, visit func(*cli.Command, []string)) {
	current := make([]string, len(path)+1)
	copy(current, path)
	current[len(path)] = command.Name
	visit(command, current)
	for _, sub := range command.Subcommands {
		walkCommands(sub, current, visit)
	}
}

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	if err := Root(&out).Execute(context.Background(), []string{"version"}, nil); err != nil {
		t.Fatalf("version: %v", err)
	}
	if want := "foundry " + version.Full() + "\n"; out.String() != want {
		t.Errorf("version printed %q, want %q", out.String(), want)
	}

	out.Reset()
	if err := Root(&out).Execute(context.Background(), []string{"version", "--json"}, nil); err != nil {
		t.Fatalf("version --json: %v", err)
	}
	var build version.Build
	if err := json.Unmarshal(out.Bytes(), &build); err != nil {
		t.Fatalf("decoding version JSON: %v\n%s", err, out.String())
	}
	if build != version.Current() {
		t.Errorf("version --json = %+v, want %+v", build, version.Current())
	}
}

func TestUnknownCommand(t *testing.T) {
	err := Root(&bytes.Buffer{}).Execute(context.Background(), []string{"levle"}, nil)
	if err == nil || !strings.Contains(err.Error(), "level") {
		t.Errorf("error = %v, want a suggestion for level", err)
	}
}
