package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidTarget is returned when a target is missing required fields or
// names an unknown provider.
var ErrInvalidTarget = errors.New("invalid target")

var validate = validator.New()

// LoadTargets returns the default targets merged with the override file at path.
// Entries in the file replace defaults with the same ID, new IDs are appended
// in file order, and entries marked disabled are removed.
// A missing file is not an error; malformed JSON returns an error.
func LoadTargets(path string) ([]Target, error) {
	targets := DefaultTargets()

	if path != "" {
		merged, err := mergeTargetsFile(targets, path)
		if err != nil {
			return nil, fmt.Errorf("loading targets: %w", err)
		}
		targets = merged
	}

	if err := ValidateTargets(targets); err != nil {
		return nil, err
	}

	return targets, nil
}

// ValidateTargets checks required fields and provider names on every target.
func ValidateTargets(targets []Target) error {
	seen := make(map[string]bool, len(targets))
	for _, t := range targets {
		if err := validate.Struct(t); err != nil {
			return fmt.Errorf("%w %q: %v", ErrInvalidTarget, t.ID, err)
		}
		if seen[t.ID] {
			return fmt.Errorf("%w %q: duplicate id", ErrInvalidTarget, t.ID)
		}
		seen[t.ID] = true
	}
	return nil
}

// mergeTargetsFile reads a targets file and merges it into base.
// Missing files are silently skipped.
func mergeTargetsFile(base []Target, path string) ([]Target, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return base, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var loaded TargetsFile
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	index := make(map[string]int, len(base))
	for i, t := range base {
		index[t.ID] = i
	}

	for _, t := range loaded.Targets {
		if i, ok := index[t.ID]; ok {
			base[i] = t
			continue
		}
		index[t.ID] = len(base)
		base = append(base, t)
	}

	// Drop disabled entries, keeping order
	merged := base[:0]
	for _, t := range base {
		if !t.Disabled {
			merged = append(merged, t)
		}
	}

	return merged, nil
}
