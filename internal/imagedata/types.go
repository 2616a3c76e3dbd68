package imagedata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"path"
	"strings"
)

// WindowsOS is the only operating system the manifest join considers.
const WindowsOS = "Windows"

// Scalar holds a JSON scalar in canonical form so values compare equal only
// when both type and value match: 10, 10.0 and 1e1 are equal, 10 and "10"
// are not. Strings keep their compact JSON text, numbers are reduced to their
// shortest decimal form.
type Scalar string

// numberPrec is wide enough that distinct manifest numbers never collapse.
const numberPrec = 256

// UnmarshalJSON stores the canonical form. null leaves the value empty.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}

	if len(data) > 0 && (data[0] == '-' || (data[0] >= '0' && data[0] <= '9')) {
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		f, _, err := big.ParseFloat(n.String(), 10, numberPrec, big.ToNearestEven)
		if err != nil {
			return fmt.Errorf("parsing number %s: %w", n, err)
		}
		if f.Sign() == 0 {
			// -0 and 0 are the same build number
			*s = "0"
			return nil
		}
		*s = Scalar(f.Text('g', -1))
		return nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return err
	}
	*s = Scalar(buf.String())
	return nil
}

// String renders the value without JSON string quoting.
func (s Scalar) String() string {
	var str string
	if err := json.Unmarshal([]byte(s), &str); err == nil {
		return str
	}
	return string(s)
}

// Build is the OS build number triple.
type Build struct {
	Major   Scalar `json:"major" validate:"required"`
	Release Scalar `json:"release" validate:"required"`
	Build   Scalar `json:"build" validate:"required"`
}

// Descriptor identifies one OS build. Worker-type map values are descriptors.
type Descriptor struct {
	Build        Build  `json:"build"`
	Version      Scalar `json:"version" validate:"required"`
	Edition      Scalar `json:"edition" validate:"required"`
	Language     Scalar `json:"language" validate:"required"`
	Architecture Scalar `json:"architecture" validate:"required"`
}

// Matches reports whether every build field of d equals the one in other.
func (d Descriptor) Matches(other Descriptor) bool {
	return d.Build == other.Build &&
		d.Version == other.Version &&
		d.Edition == other.Edition &&
		d.Language == other.Language &&
		d.Architecture == other.Architecture
}

// Image is one manifest entry: an OS build and the unattend file that installs it.
type Image struct {
	Descriptor
	OS       string `json:"os"`
	Unattend string `json:"unattend"` // Path to the answer file, relative to the repo
}

// UnattendFile returns the base name of the unattend path.
// Both / and \ are treated as separators.
func (i Image) UnattendFile() string {
	return path.Base(strings.ReplaceAll(i.Unattend, `\`, "/"))
}

// WorkerTypeMap maps a worker type to the OS build it runs.
type WorkerTypeMap map[string]Descriptor

// Manifest is the ordered list of known OS images.
type Manifest []Image
