package queue

import (
	"context"
	"encoding/json"

	"github.com/taskcluster/slugid-go/slugid"

	"github.com/mozilla-platform-ops/relops-image-builder/internal/task"
)

// Queue is the task queue the decision runner submits builds to.
type Queue interface {
	// CreateTask submits def under taskID and returns the queue's response.
	CreateTask(ctx context.Context, taskID string, def *task.Definition) (json.RawMessage, error)
}

// NewTaskID returns a fresh task id in the queue's slug format.
// Nice slugs never start with a dash, so they are safe as CLI arguments.
func NewTaskID() string {
	return slugid.Nice()
}
