// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rom

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/bureau-foundation/foundry/lib/binhash"
	"github.com/bureau-foundation/foundry/lib/catalog"
	"github.com/bureau-foundation/foundry/lib/level"
	"github.com/bureau-foundation/foundry/lib/objectset"
)

// iNES header layout.
const (
	HeaderSize  = 16
	PRGBankSize = 16 * 1024
	CHRBankSize = 8 * 1024
)

// Magic is the iNES signature at the start of every image.
var Magic = []byte("NES\x1a")

var (
	// ErrNotINES is returned for data without the iNES signature.
	ErrNotINES = errors.New("not an iNES image")

	// ErrModifiedOnDisk is returned by [Image.Save] when the file the
	// image was opened from changed since it was read.
	ErrModifiedOnDisk = errors.New("ROM file changed on disk since it was opened")

	// ErrLocked is returned by [Image.Save] when another process holds
	// the destination's lock.
	ErrLocked = errors.New("ROM file is locked by another process")
)

// Config configures [Open].
type Config struct {
	// Path is the ROM file to read.
	Path string

	// Logger receives capacity overrides and saves. If nil, a no-op
	// logger is used.
	Logger *slog.Logger
}

// Header is the decoded iNES header.
type Header struct {
	PRGBanks int  `json:"prg_banks"`
	CHRBanks int  `json:"chr_banks"`
	Mapper   int  `json:"mapper"`
	Trainer  bool `json:"trainer"`
}

// Image is a ROM image held in memory. Level reads and writes operate
// on the in-memory copy; nothing touches the disk until [Image.Save].
//
// An Image is not safe for concurrent use.
type Image struct {
	path   string
	data   []byte
	opened binhash.Digest
	logger *slog.Logger
}

// Open reads and validates the ROM file at cfg.Path.
func Open(cfg Config) (*Image, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("rom: Path is required")
	}
	data, err := os.ReadFile(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("reading ROM: %w", err)
	}
	image, err := New(data, cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Path, err)
	}
	image.path = cfg.Path
	return image, nil
}

// New validates data and wraps a copy of it. The image has no path
// until it is saved.
func New(data []byte, logger *slog.Logger) (*Image, error) {
	if len(data) < HeaderSize || !bytes.HasPrefix(data, Magic) {
		return nil, ErrNotINES
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	image := &Image{
		data:   bytes.Clone(data),
		logger: logger,
	}
	image.opened = image.Fingerprint()
	return image, nil
}

// Path returns the file the image was opened from or last saved to.
func (i *Image) Path() string { return i.path }

// Size returns the image size in bytes.
func (i *Image) Size() int { return len(i.data) }

// Bytes returns a copy of the image.
func (i *Image) Bytes() []byte { return bytes.Clone(i.data) }

// Header decodes the iNES header.
func (i *Image) Header() Header {
	return Header{
		PRGBanks: int(i.data[4]),
		CHRBanks: int(i.data[5]),
		Mapper:   int(i.data[6]>>4) | int(i.data[7]&0xF0),
		Trainer:  i.data[6]&0x04 != 0,
	}
}

// Fingerprint returns the digest of the image's current contents.
func (i *Image) Fingerprint() binhash.Digest {
	return binhash.HashBytes(i.data)
}

// Modified reports whether the image differs from what was read or
// last saved.
func (i *Image) Modified() bool {
	return i.Fingerprint() != i.opened
}

// LoadLevel decodes the level a catalog entry describes.
func (i *Image) LoadLevel(entry catalog.Entry, registry *objectset.Registry) (*level.Level, error) {
	return i.LoadLocation(entry.Location(), registry)
}

// LoadLocation decodes the level at an explicit location.
func (i *Image) LoadLocation(location level.Location, registry *objectset.Registry) (*level.Level, error) {
	set, err := registry.Lookup(location.ObjectSet)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", location.DisplayName(), err)
	}
	return level.Load(i.data, location, set)
}

// WriteLevel writes a level's sections into the image at its offsets.
// A level whose encoded streams exceed the budget captured at load time
// is refused with [level.ErrCapacityExceeded] unless force is set; a
// forced overflow overwrites whatever follows the level and is logged.
func (i *Image) WriteLevel(target *level.Level, force bool) error {
	if !target.Attached() {
		return fmt.Errorf("%s: %w", target.Name(), level.ErrDetached)
	}

	budget := target.Budget()
	if target.CapacityExceeded() {
		if !force {
			return fmt.Errorf("%s: structural %d/%d bytes, actors %d/%d bytes: %w",
				target.Name(), target.StructuralSize(), budget.Structural,
				target.ActorSize(), budget.Actor, level.ErrCapacityExceeded)
		}
		i.logger.Warn("writing level past its on-disk capacity",
			"level", target.Name(),
			"structural_size", target.StructuralSize(),
			"structural_budget", budget.Structural,
			"actor_size", target.ActorSize(),
			"actor_budget", budget.Actor,
		)
	}

	structural, actors := target.Sections()
	for _, section := range []level.Section{structural, actors} {
		if section.Offset < 0 || section.Offset+len(section.Data) > len(i.data) {
			return fmt.Errorf("%s: %d bytes at 0x%X run past the end of the image",
				target.Name(), len(section.Data), section.Offset)
		}
	}
	copy(i.data[structural.Offset:], structural.Data)
	copy(i.data[actors.Offset:], actors.Data)

	target.MarkClean()
	return nil
}

// ImportLevel replaces the level at a catalog entry with incoming,
// typically decoded from an exchange file. incoming is attached to the
// entry's offsets with the budget of the level it replaces, then
// written as by [Image.WriteLevel].
func (i *Image) ImportLevel(entry catalog.Entry, incoming *level.Level, registry *objectset.Registry, force bool) error {
	current, err := i.LoadLevel(entry, registry)
	if err != nil {
		return fmt.Errorf("reading level to replace: %w", err)
	}
	if err := incoming.Attach(entry.Location(), current.Budget()); err != nil {
		return err
	}
	return i.WriteLevel(incoming, force)
}
