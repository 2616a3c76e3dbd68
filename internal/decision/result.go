package decision

import (
	"encoding/json"

	"github.com/mozilla-platform-ops/relops-image-builder/internal/config"
)

// Outcome is what the runner decided for one target.
type Outcome string

const (
	OutcomeSubmitted        Outcome = "submitted"
	OutcomeSkippedUnmapped  Outcome = "skipped-unmapped"
	OutcomeSkippedUnchanged Outcome = "skipped-unchanged"
	OutcomeFailed           Outcome = "failed"
)

// Result records the decision for one target.
type Result struct {
	Target       config.Target
	Outcome      Outcome
	UnattendPath string          // Empty when the worker type did not resolve
	TaskID       string          // Set once a submission was attempted
	Response     json.RawMessage // Raw queue response for submitted tasks
	Error        error
}
