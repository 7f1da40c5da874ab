// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package level

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/foundry/cmd/foundry/cli"
	"github.com/bureau-foundation/foundry/lib/binhash"
	liblevel "github.com/bureau-foundation/foundry/lib/level"
)

type inspectParams struct {
	cli.JSONOutput
	cli.ROMParams
	Entities bool `json:"entities" flag:"entities,e" desc:"also list every object, jump and actor"`
}

func inspectCommand(out io.Writer) *cli.Command {
	var params inspectParams

	return &cli.Command{
		Name:    "inspect",
		Summary: "Show a level's header, pointers and capacity",
		Description: `Decode one level from the ROM and print its header fields, geometry,
auxiliary pointers, entity counts and how much of each stream's on-disk
budget it uses.

With --json, prints the full level snapshot, including every entity.
The snapshot's "source" is the BLAKE3 fingerprint of the ROM image.`,
		Usage:  "foundry level inspect <W-L> [flags]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Inspect world 1, level 1 from the configured ROM",
				Command:     "foundry level inspect 1-1",
			},
			{
				Description: "Inspect a level the catalog does not list",
				Command:     "foundry level inspect --rom smb3.nes --object-offset 0x1FB92 --actor-offset 0xC537 --object-set 1",
			},
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			selector, rest := params.SplitLevel(args)
			if len(rest) > 0 {
				return fmt.Errorf("unexpected argument %q", rest[0])
			}
			source, err := params.Load()
			if err != nil {
				return err
			}
			image, err := params.OpenROM(source, logger)
			if err != nil {
				return err
			}
			entry, err := params.Entry(source, selector)
			if err != nil {
				return err
			}
			loaded, err := image.LoadLevel(entry, source.Registry)
			if err != nil {
				return err
			}

			snapshot := loaded.Snapshot()
			snapshot.Source = binhash.FormatDigest(image.Fingerprint())
			if done, err := params.EmitJSON(out, snapshot); done {
				return err
			}
			return writeInspection(out, loaded, params.Entities)
		},
	}
}

// labelWidth is the column labels are padded to.
const labelWidth = 18

func writeInspection(out io.Writer, target *liblevel.Level, entities bool) error {
	renderer := lipgloss.NewRenderer(out)
	titleStyle := renderer.NewStyle().Bold(true)
	labelStyle := renderer.NewStyle().Faint(true)
	warningStyle := renderer.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	header := target.Header()
	location := target.Location()
	pointers := target.Pointers()
	width, height := target.Size()

	var builder strings.Builder
	field := func(label, value string) {
		styled := labelStyle.Render(label)
		padding := max(labelWidth-ansi.StringWidth(styled), 1)
		fmt.Fprintf(&builder, "  %s%s%s\n", styled, strings.Repeat(" ", padding), value)
	}

	fmt.Fprintln(&builder, titleStyle.Render(target.Name()))
	field("object set", fmt.Sprintf("%d (%s)", location.ObjectSet, target.ObjectSet().Name))
	field("offsets", fmt.Sprintf("header 0x%05X, actors 0x%05X", location.StructuralOffset, location.ActorOffset))
	field("size", fmt.Sprintf("%d x %d tiles, %s", width, height, orientation(header.Vertical())))
	field("start", fmt.Sprintf("row %d, column %d, action %d", header.StartRow(), header.StartColumn(), header.StartAction()))
	field("palettes", fmt.Sprintf("objects %d, actors %d", header.ObjectPalette(), header.ActorPalette()))
	field("graphics set", fmt.Sprintf("%d", header.GraphicsSet()))
	field("scroll type", fmt.Sprintf("%d", header.ScrollType()))
	field("time", fmt.Sprintf("%d", header.TimeIndex()))
	field("music", fmt.Sprintf("%d", header.MusicIndex()))
	field("pipe ends level", yesNo(header.PipeEndsLevel()))
	field("auxiliary set", fmt.Sprintf("%d", header.AuxiliaryObjectSet()))
	auxiliary := "no auxiliary area"
	if pointers.HasAuxiliaryArea {
		auxiliary = "auxiliary area"
	}
	field("pointers", fmt.Sprintf("structural 0x%05X, actors 0x%05X (%s)", pointers.Structural, pointers.Actor, auxiliary))
	field("entities", fmt.Sprintf("%d objects, %d jumps, %d actors",
		len(target.Objects()), len(target.Jumps()), len(target.Actors())))
	capacity := capacityLine(target)
	if target.CapacityExceeded() {
		capacity = warningStyle.Render(capacity)
	}
	field("capacity", capacity)

	if entities {
		fmt.Fprintln(&builder)
		for _, record := range target.Records() {
			switch record := record.(type) {
			case *liblevel.Object:
				x, y := record.Position()
				fmt.Fprintf(&builder, "  object  %d/0x%02X at (%d, %d)  %s\n", record.Domain(), record.Type(), x, y, record.Description())
			case *liblevel.Jump:
				fmt.Fprintf(&builder, "  jump    %s\n", record.Description())
			}
		}
		for _, actor := range target.Actors() {
			x, y := actor.Position()
			fmt.Fprintf(&builder, "  actor   0x%02X at (%d, %d)  %s\n", actor.Type(), x, y, actor.Description())
		}
	}

	_, err := io.WriteString(out, builder.String())
	return err
}

func orientation(vertical bool) string {
	if vertical {
		return "vertical"
	}
	return "horizontal"
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
