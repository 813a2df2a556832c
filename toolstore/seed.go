package toolstore

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SeedFile is the YAML layout read by LoadSeed.
//
//	tools:
//	  - name: Hash Text
//	    path: /tools/crypto/hash-text
//	    category: crypto
//	    enabled: true
type SeedFile struct {
	Tools []ToolRecord `yaml:"tools"`
}

// LoadSeed reads seed records from a YAML file.
func LoadSeed(path string) ([]ToolRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	var file SeedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse seed %s: %w", path, err)
	}
	return file.Tools, nil
}

// Seed creates every record whose path and ID are not stored yet and returns how
// many were added. Existing rows keep their switches.
func Seed(ctx context.Context, s Store, records []ToolRecord) (int, error) {
	added := 0
	for _, rec := range records {
		if _, err := s.Create(ctx, rec); err != nil {
			if errors.Is(err, ErrDuplicatePath) || errors.Is(err, ErrDuplicateID) {
				continue
			}
			return added, fmt.Errorf("seed %s: %w", rec.Path, err)
		}
		added++
	}
	return added, nil
}
