package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest describes the entries of an archive.
type Manifest struct {
	Entries []Entry `yaml:"entries"`
}

// Entry maps a source path to a name inside the archive.
type Entry struct {
	// Path is the source file on disk.
	Path string `yaml:"path"`

	// Name is the entry name inside the archive. Defaults to the base
	// name of Path.
	Name string `yaml:"name"`
}

// loadManifest reads and validates a YAML manifest.
func loadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, err
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	for i := range m.Entries {
		e := &m.Entries[i]
		if e.Path == "" {
			return Manifest{}, fmt.Errorf("manifest %s: entry %d has no path", path, i)
		}
		if e.Name == "" {
			e.Name = filepath.Base(e.Path)
		}
	}
	return m, nil
}
