// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "foundry",
		Subcommands: []*Command{
			{
				Name: "version",
				Run: func(context.Context, []string, *slog.Logger) error {
					called = "version"
					return nil
				},
			},
			{
				Name: "level",
				Run: func(context.Context, []string, *slog.Logger) error {
					called = "level"
					return nil
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"level"}, nil); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "level" {
		t.Errorf("dispatched to %q, want %q", called, "level")
	}
}

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var receivedArgs []string

	root := &Command{
		Name: "foundry",
		Subcommands: []*Command{
			{
				Name: "level",
				Subcommands: []*Command{
					{
						Name: "inspect",
						Run: func(_ context.Context, args []string, _ *slog.Logger) error {
							receivedArgs = args
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"level", "inspect", "1-1"}, nil); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "1-1" {
		t.Errorf("args = %v, want [1-1]", receivedArgs)
	}
}

func TestCommand_Execute_Params(t *testing.T) {
	type params struct {
		JSONOutput
		World  int    `flag:"world" desc:"world number"`
		Offset int    `flag:"offset" desc:"ROM offset"`
		Format string `flag:"format" desc:"output format" default:"json"`
	}
	var p params
	var receivedArgs []string

	command := &Command{
		Name:   "dump",
		Params: func() any { return &p },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			receivedArgs = args
			return nil
		},
	}

	err := command.Execute(context.Background(), []string{"--world", "3", "--offset", "0x1FB92", "--json", "level.m3l"}, nil)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if p.World != 3 || p.Offset != 0x1FB92 || !p.OutputJSON || p.Format != "json" {
		t.Errorf("params = %+v", p)
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "level.m3l" {
		t.Errorf("args = %v, want [level.m3l]", receivedArgs)
	}
}

func TestCommand_Execute_Flags(t *testing.T) {
	var force bool
	command := &Command{
		Name: "import",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("import", pflag.ContinueOnError)
			flagSet.BoolVar(&force, "force", false, "write past the budget")
			return flagSet
		},
		Run: func(context.Context, []string, *slog.Logger) error { return nil },
	}
	if err := command.Execute(context.Background(), []string{"--force"}, nil); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !force {
		t.Error("--force was not parsed")
	}
}

func TestCommand_Execute_ScopesLogger(t *testing.T) {
	var buffer bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buffer, nil))

	root := &Command{
		Name: "foundry",
		Subcommands: []*Command{
			{
				Name: "version",
				Run: func(_ context.Context, _ []string, logger *slog.Logger) error {
					logger.Info("ran")
					return nil
				},
			},
		},
	}
	if err := root.Execute(context.Background(), []string{"version"}, logger); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(buffer.String(), `command="foundry version"`) {
		t.Errorf("log output %q lacks the command path", buffer.String())
	}
}

func TestCommand_Execute_UnknownSubcommandSuggests(t *testing.T) {
	root := &Command{
		Name: "foundry",
		Subcommands: []*Command{
			{Name: "level", Run: func(context.Context, []string, *slog.Logger) error { return nil }},
			{Name: "rom", Run: func(context.Context, []string, *slog.Logger) error { return nil }},
		},
	}

	err := root.Execute(context.Background(), []string{"levl"}, nil)
	if err == nil {
		t.Fatal("expected error for unknown subcommand")
	}
	if !strings.Contains(err.Error(), `did you mean "level"`) {
		t.Errorf("error = %q, want suggestion for level", err)
	}

	err = root.Execute(context.Background(), []string{"zzzzzzzz"}, nil)
	if err == nil || strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %v, want unknown command without suggestion", err)
	}
}

func TestCommand_Execute_UnknownFlagSuggests(t *testing.T) {
	type params struct {
		Force bool `flag:"force" desc:"write past the budget"`
	}
	var p params
	command := &Command{
		Name:   "import",
		Params: func() any { return &p },
		Run:    func(context.Context, []string, *slog.Logger) error { return nil },
	}

	err := command.Execute(context.Background(), []string{"--forse"}, nil)
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(err.Error(), "did you mean --force?") {
		t.Errorf("error = %q, want suggestion for --force", err)
	}
}

func TestCommand_Execute_SubcommandRequired(t *testing.T) {
	root := &Command{
		Name: "foundry",
		Subcommands: []*Command{
			{Name: "level", Run: func(context.Context, []string, *slog.Logger) error { return nil }},
		},
	}
	if err := root.Execute(context.Background(), nil, nil); err == nil {
		t.Error("expected error when no subcommand is given")
	}
}

func TestCommand_Execute_HelpIsNotAnError(t *testing.T) {
	command := &Command{
		Name: "foundry",
		Run: func(context.Context, []string, *slog.Logger) error {
			t.Error("Run called for --help")
			return nil
		},
	}
	if err := command.Execute(context.Background(), []string{"--help"}, nil); err != nil {
		t.Errorf("Execute(--help) error: %v", err)
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	type params struct {
		JSONOutput
	}
	var p params
	root := &Command{
		Name:        "foundry",
		Description: "Level tools.",
		Subcommands: []*Command{
			{Name: "level", Summary: "Inspect and edit levels"},
			{Name: "rom", Summary: "Inspect ROM images"},
		},
		Params: func() any { return &p },
		Examples: []Example{
			{Description: "Show world 1", Command: "foundry level list --world 1"},
		},
	}

	var buffer bytes.Buffer
	root.PrintHelp(&buffer)
	help := buffer.String()

	for _, want := range []string{
		"Level tools.",
		"Usage:\n  foundry <command> [flags]",
		"level",
		"Inspect ROM images",
		"--json",
		"# Show world 1",
		"foundry level list --world 1",
		"Run 'foundry <command> --help'",
	} {
		if !strings.Contains(help, want) {
			t.Errorf("help output missing %q:\n%s", want, help)
		}
	}
}

func TestExitError(t *testing.T) {
	var err error = &ExitError{Code: 2}
	coder, ok := err.(interface{ ExitCode() int })
	if !ok {
		t.Fatal("ExitError does not expose ExitCode")
	}
	if coder.ExitCode() != 2 {
		t.Errorf("ExitCode = %d, want 2", coder.ExitCode())
	}
	if err.Error() != "exit code 2" {
		t.Errorf("Error = %q", err.Error())
	}
}
