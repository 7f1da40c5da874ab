// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"bytes"
	"fmt"
	"testing"
)

// Layout of the image returned by [SampleROM].
const (
	SampleROMSize     = 0x100
	SampleLevelOffset = 0x20
	SampleActorOffset = 0x60
)

// SampleROM returns a 256-byte iNES image (16 PRG banks, 16 CHR banks,
// mapper 4) holding one level of object set 1 (Plains):
//
//   - header at [SampleLevelOffset]: 00 A0 34 12 23 2A 81 45 83
//   - structural records: a 4-byte extendable ground record and one
//     3-byte record, 7 bytes in all, then FF
//   - actor prefix byte at [SampleActorOffset], then a Goomba (0x72) at
//     (8, 25) and actor 0x6C at (32, 16), 6 bytes in all, then FF
//
// Every other byte is 0xEA.
func SampleROM(t testing.TB) []byte {
	t.Helper()
	image := bytes.Repeat([]byte{0xEA}, SampleROMSize)
	copy(image, MustHex(t, "4E 45 53 1A 10 10 40 00"))
	copy(image[SampleLevelOffset:], MustHex(t, `
		00 A0 34 12 23 2A 81 45 83
		45 10 10 07
		1A 30 02
		FF 01`))
	copy(image[SampleActorOffset:], MustHex(t, `
		01
		72 08 19
		6C 20 10
		FF`))
	return image
}

// SampleCatalogYAML is a level catalog listing the [SampleROM] level as
// 1-1.
var SampleCatalogYAML = fmt.Sprintf(`levels:
  - world: 1
    level: 1
    name: Sample
    object_set: 1
    object_offset: 0x%X
    actor_offset: 0x%X
`, SampleLevelOffset, SampleActorOffset)
