package imagedata

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

// ErrMalformedInput is returned when a lookup table cannot be parsed or an
// entry is missing a required field.
var ErrMalformedInput = errors.New("malformed input")

var validate = validator.New()

// LoadWorkerTypeMap reads and validates the worker-type map at path.
func LoadWorkerTypeMap(path string) (WorkerTypeMap, error) {
	var m WorkerTypeMap
	if err := readJSON(path, &m); err != nil {
		return nil, err
	}

	for workerType, d := range m {
		if err := validate.Struct(d); err != nil {
			return nil, fmt.Errorf("%w: %s: worker type %q: %v", ErrMalformedInput, path, workerType, err)
		}
	}

	return m, nil
}

// LoadManifest reads and validates the image manifest at path.
// Only Windows entries are held to the full set of required fields since
// nothing else is ever joined against.
func LoadManifest(path string) (Manifest, error) {
	var m Manifest
	if err := readJSON(path, &m); err != nil {
		return nil, err
	}

	for i, img := range m {
		if img.OS == "" {
			return nil, fmt.Errorf("%w: %s: entry %d: missing os", ErrMalformedInput, path, i)
		}
		if img.OS != WindowsOS {
			continue
		}
		if err := validate.Struct(img); err != nil {
			return nil, fmt.Errorf("%w: %s: entry %d: %v", ErrMalformedInput, path, i, err)
		}
		if img.Unattend == "" {
			return nil, fmt.Errorf("%w: %s: entry %d: missing unattend", ErrMalformedInput, path, i)
		}
	}

	return m, nil
}

// readJSON decodes the file at path into v, tagging parse failures as malformed input.
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: parsing %s: %v", ErrMalformedInput, path, err)
	}
	return nil
}
