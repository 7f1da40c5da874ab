// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Write.AllowOverflow {
		t.Error("expected allow_overflow=false by default")
	}
	if !cfg.Write.Backup {
		t.Error("expected backup=true by default")
	}
	if cfg.ObjectSets != "" || cfg.Catalog != "" {
		t.Errorf("expected no descriptor or catalog files, got %q and %q", cfg.ObjectSets, cfg.Catalog)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoad_RequiresFoundryConfig(t *testing.T) {
	t.Setenv(EnvironmentVariable, "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when FOUNDRY_CONFIG not set, got nil")
	}
	if !strings.HasPrefix(err.Error(), "FOUNDRY_CONFIG environment variable not set") {
		t.Errorf("unexpected error message %q", err.Error())
	}
}

func TestLoad_WithFoundryConfig(t *testing.T) {
	directory := t.TempDir()
	romPath := filepath.Join(directory, "smb3.nes")
	if err := os.WriteFile(romPath, []byte("NES\x1a"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	configPath := filepath.Join(directory, "foundry.yaml")
	if err := os.WriteFile(configPath, []byte("rom: "+romPath+"\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv(EnvironmentVariable, configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.ROM != romPath {
		t.Errorf("ROM = %q, want %q", cfg.ROM, romPath)
	}
}

func TestLoadFile(t *testing.T) {
	directory := t.TempDir()
	for _, name := range []string{"smb3.nes", "sets.jsonc", "levels.yaml"} {
		if err := os.WriteFile(filepath.Join(directory, name), nil, 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}

	configPath := filepath.Join(directory, "foundry.yaml")
	content := `
rom: ${FOUNDRY_TEST_DIR}/smb3.nes
object_sets: ${FOUNDRY_TEST_DIR}/sets.jsonc
catalog: ${FOUNDRY_TEST_DIR}/levels.yaml
write:
  allow_overflow: true
  backup: false
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("FOUNDRY_TEST_DIR", directory)

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.ROM != filepath.Join(directory, "smb3.nes") {
		t.Errorf("ROM = %q", cfg.ROM)
	}
	if cfg.ObjectSets != filepath.Join(directory, "sets.jsonc") {
		t.Errorf("ObjectSets = %q", cfg.ObjectSets)
	}
	if cfg.Catalog != filepath.Join(directory, "levels.yaml") {
		t.Errorf("Catalog = %q", cfg.Catalog)
	}
	if !cfg.Write.AllowOverflow || cfg.Write.Backup {
		t.Errorf("Write = %+v, want overflow allowed and no backup", cfg.Write)
	}
}

func TestLoadFilePartialKeepsDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "foundry.yaml")
	if err := os.WriteFile(configPath, []byte("write:\n  allow_overflow: true\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if !cfg.Write.Backup {
		t.Error("backup default lost when the file does not mention it")
	}
}

func TestLoadFileErrors(t *testing.T) {
	directory := t.TempDir()

	if _, err := LoadFile(filepath.Join(directory, "missing.yaml")); err == nil {
		t.Error("LoadFile accepted a missing file")
	}

	malformed := filepath.Join(directory, "malformed.yaml")
	if err := os.WriteFile(malformed, []byte("rom: [unterminated\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadFile(malformed); err == nil {
		t.Error("LoadFile accepted malformed YAML")
	}

	dangling := filepath.Join(directory, "dangling.yaml")
	if err := os.WriteFile(dangling, []byte("catalog: /nonexistent/levels.yaml\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadFile(dangling); err == nil {
		t.Error("LoadFile accepted a catalog path that does not exist")
	}
}

func TestResolve(t *testing.T) {
	t.Setenv(EnvironmentVariable, "")
	cfg, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !cfg.Write.Backup {
		t.Error("Resolve without a file should return the defaults")
	}

	configPath := filepath.Join(t.TempDir(), "foundry.yaml")
	if err := os.WriteFile(configPath, []byte("write:\n  backup: false\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv(EnvironmentVariable, configPath)
	cfg, err = Resolve("")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Write.Backup {
		t.Error("Resolve ignored FOUNDRY_CONFIG")
	}

	if _, err := Resolve(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("an explicit path must not fall back to the environment")
	}
}

func TestExpandVars(t *testing.T) {
	tests := []struct {
		input    string
		vars     map[string]string
		expected string
	}{
		{
			input:    "${HOME}/roms",
			vars:     map[string]string{"HOME": "/home/user"},
			expected: "/home/user/roms",
		},
		{
			input:    "${FOUNDRY_TEST_MISSING:-default}",
			vars:     map[string]string{},
			expected: "default",
		},
		{
			input:    "${PRESENT:-default}",
			vars:     map[string]string{"PRESENT": "value"},
			expected: "value",
		},
		{
			input:    "${A}/${B}",
			vars:     map[string]string{"A": "first", "B": "second"},
			expected: "first/second",
		},
		{
			input:    "no variables here",
			vars:     map[string]string{},
			expected: "no variables here",
		},
	}

	for _, tt := range tests {
		result := expandVars(tt.input, tt.vars)
		if result != tt.expected {
			t.Errorf("expandVars(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestValidate(t *testing.T) {
	directory := t.TempDir()

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "missing rom",
			modify: func(c *Config) {
				c.ROM = filepath.Join(directory, "missing.nes")
			},
			wantErr: true,
		},
		{
			name: "object sets is a directory",
			modify: func(c *Config) {
				c.ObjectSets = directory
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
