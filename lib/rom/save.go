// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rom

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/bureau-foundation/foundry/lib/binhash"
)

// BackupSuffix is appended to the destination path for the copy made
// by [Image.Save] before overwriting.
const BackupSuffix = ".bak"

// LockSuffix is appended to the destination path to name the file
// [Image.Save] holds an exclusive flock on while writing. The lock file
// is left in place after the save.
const LockSuffix = ".lock"

// Save writes the image to path, or to the file it was opened from when
// path is empty. An exclusive flock on path+".lock" is held for the
// duration of the write, and the new contents are written to a
// temporary file in the same directory and renamed into place, so a
// reader never sees a partial image.
//
// When saving over the file the image was opened from, Save refuses
// with [ErrModifiedOnDisk] if that file no longer matches what was
// read. With backup set, the existing destination is copied to
// path+".bak" first.
func (i *Image) Save(path string, backup bool) error {
	if path == "" {
		path = i.path
	}
	if path == "" {
		return fmt.Errorf("rom: no path to save to")
	}

	lock, err := lockFile(path + LockSuffix)
	if err != nil {
		return err
	}
	defer lock.Close()

	existing, err := os.ReadFile(path)
	exists := err == nil
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if exists && path == i.path && binhash.HashBytes(existing) != i.opened {
		return fmt.Errorf("%s: %w", path, ErrModifiedOnDisk)
	}

	if exists && backup {
		if err := writeAtomic(path+BackupSuffix, existing); err != nil {
			return fmt.Errorf("writing backup: %w", err)
		}
	}
	if err := writeAtomic(path, i.data); err != nil {
		return err
	}

	i.path = path
	i.opened = i.Fingerprint()
	i.logger.Info("ROM saved",
		"path", path,
		"size", len(i.data),
		"fingerprint", binhash.ShortDigest(i.opened),
		"backup", exists && backup,
	)
	return nil
}

// lockFile opens (creating if needed) and exclusively locks path. The
// lock is released when the returned file is closed. The destination
// itself is never locked: writeAtomic replaces its inode, and a lock on
// the old inode would not exclude a writer that opens the new one.
func lockFile(path string) (*os.File, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening %s for locking: %w", path, err)
	}
	if err := unix.Flock(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		file.Close()
		if errors.Is(err, unix.EWOULDBLOCK) {
			return nil, fmt.Errorf("%s: %w", path, ErrLocked)
		}
		return nil, fmt.Errorf("locking %s: %w", path, err)
	}
	return file, nil
}

// writeAtomic writes data to a temporary file next to path, syncs it
// and renames it over path.
func writeAtomic(path string, data []byte) error {
	directory := filepath.Dir(path)
	file, err := os.CreateTemp(directory, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary file for %s: %w", path, err)
	}
	temporaryPath := file.Name()

	// Write, sync, close in that order. If any step fails, remove the
	// temporary file and report the first error.
	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("writing %s: %w", temporaryPath, err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("syncing %s: %w", temporaryPath, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("closing %s: %w", temporaryPath, err)
	}
	if err := os.Chmod(temporaryPath, 0644); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("setting mode on %s: %w", temporaryPath, err)
	}

	if err := os.Rename(temporaryPath, path); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("renaming %s into place: %w", path, err)
	}

	// Sync the parent directory so the rename survives a crash.
	parent, err := os.Open(directory)
	if err == nil {
		parent.Sync()
		parent.Close()
	}
	return nil
}
