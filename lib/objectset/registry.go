// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package objectset

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultTables []byte

// File is the on-disk layout of a descriptor file. The shared sections
// are appended to every object set's own rules.
type File struct {
	JumpDomains []int        `yaml:"jump_domains,omitempty" json:"jump_domains,omitempty"`
	Records     []RecordRule `yaml:"records,omitempty" json:"records,omitempty"`
	Actors      []ActorRule  `yaml:"actors,omitempty" json:"actors,omitempty"`
	ObjectSets  []Descriptor `yaml:"object_sets" json:"object_sets"`
}

// Registry maps object set numbers to descriptors.
type Registry struct {
	sets map[int]*Descriptor
}

// NewRegistry builds a registry from fully resolved descriptors.
// Duplicate numbers and invalid descriptors are errors.
func NewRegistry(descriptors ...*Descriptor) (*Registry, error) {
	registry := &Registry{sets: make(map[int]*Descriptor, len(descriptors))}
	for _, descriptor := range descriptors {
		if err := descriptor.Validate(); err != nil {
			return nil, err
		}
		if _, exists := registry.sets[descriptor.Number]; exists {
			return nil, fmt.Errorf("object set %d defined twice", descriptor.Number)
		}
		registry.sets[descriptor.Number] = descriptor
	}
	return registry, nil
}

// Lookup returns the descriptor for an object set number.
func (r *Registry) Lookup(number int) (*Descriptor, error) {
	descriptor, ok := r.sets[number]
	if !ok {
		return nil, fmt.Errorf("object set %d: %w", number, ErrUnknownObjectSet)
	}
	return descriptor, nil
}

// Numbers returns the described object set numbers in ascending order.
func (r *Registry) Numbers() []int {
	numbers := make([]int, 0, len(r.sets))
	for number := range r.sets {
		numbers = append(numbers, number)
	}
	sort.Ints(numbers)
	return numbers
}

// Default returns the registry built from the embedded tables. The
// embedded file is part of the binary, so a parse failure is a build
// defect and panics.
func Default() *Registry {
	registry, err := ParseYAML(defaultTables)
	if err != nil {
		panic("objectset: embedded defaults: " + err.Error())
	}
	return registry
}

// LoadFile reads a descriptor file. Files ending in .json or .jsonc are
// parsed as JSONC; everything else as YAML.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var registry *Registry
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		registry, err = ParseJSONC(data)
	default:
		registry, err = ParseYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return registry, nil
}

// ParseYAML builds a registry from YAML descriptor data.
func ParseYAML(data []byte) (*Registry, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	return file.Registry()
}

// ParseJSONC builds a registry from JSON descriptor data. Comments and
// trailing commas are stripped before parsing.
func ParseJSONC(data []byte) (*Registry, error) {
	var file File
	if err := json.Unmarshal(jsonc.ToJSON(data), &file); err != nil {
		return nil, err
	}
	return file.Registry()
}

// Registry resolves the shared sections into every object set and
// builds the registry.
func (f *File) Registry() (*Registry, error) {
	if len(f.ObjectSets) == 0 {
		return nil, fmt.Errorf("no object sets defined")
	}
	descriptors := make([]*Descriptor, 0, len(f.ObjectSets))
	for index := range f.ObjectSets {
		descriptor := f.ObjectSets[index]
		if len(descriptor.JumpDomains) == 0 {
			descriptor.JumpDomains = slices.Clone(f.JumpDomains)
		}
		descriptor.Records = append(slices.Clone(descriptor.Records), f.Records...)
		descriptor.Actors = append(slices.Clone(descriptor.Actors), f.Actors...)
		descriptors = append(descriptors, &descriptor)
	}
	return NewRegistry(descriptors...)
}
