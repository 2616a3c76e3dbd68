package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/mozilla-platform-ops/relops-image-builder/internal/task"
)

// DryRun logs task definitions instead of submitting them.
type DryRun struct {
	l hclog.Logger
}

// NewDryRun creates a dry-run queue writing to l.
func NewDryRun(l hclog.Logger) *DryRun {
	return &DryRun{l: l}
}

type dryRunResponse struct {
	DryRun bool   `json:"dryRun"`
	TaskID string `json:"taskId"`
}

// CreateTask implements Queue.
func (d *DryRun) CreateTask(ctx context.Context, taskID string, def *task.Definition) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, err := json.MarshalIndent(def, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding task %s: %w", taskID, err)
	}
	d.l.Info("dry run, task not submitted", "task-id", taskID, "definition", string(body))

	return json.Marshal(dryRunResponse{DryRun: true, TaskID: taskID})
}
