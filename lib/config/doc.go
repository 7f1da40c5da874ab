// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for foundry.
//
// Configuration comes from a single file named by either the --config
// flag (via [LoadFile]) or the FOUNDRY_CONFIG environment variable (via
// [Load]). There is no ~/.config discovery and no file search: without
// either, [Resolve] returns [Default], which uses the embedded object
// set table, no level catalog, and refuses to overflow level budgets.
//
//	rom: ${HOME}/roms/smb3.nes
//	object_sets: ./object-sets.jsonc
//	catalog: ./levels.yaml
//	write:
//	  allow_overflow: false
//	  backup: true
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. No environment
// variable overrides a config value directly.
//
// This package depends on no other foundry packages.
package config
