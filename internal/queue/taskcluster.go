package queue

import (
	"context"
	"encoding/json"
	"fmt"

	tcclient "github.com/taskcluster/taskcluster/v44/clients/client-go"
	"github.com/taskcluster/taskcluster/v44/clients/client-go/tcqueue"

	"github.com/mozilla-platform-ops/relops-image-builder/internal/task"
)

// Taskcluster submits tasks to a Taskcluster queue service.
type Taskcluster struct {
	queue *tcqueue.Queue
}

// NewTaskcluster creates a queue client for rootURL.
// credentials may be nil when rootURL is a taskcluster proxy, which signs
// requests itself.
func NewTaskcluster(rootURL string, credentials *tcclient.Credentials) *Taskcluster {
	return &Taskcluster{
		queue: tcqueue.New(credentials, rootURL),
	}
}

// CredentialsFromEnv returns client credentials from the TASKCLUSTER_* variables,
// or nil when no client id is set.
func CredentialsFromEnv() *tcclient.Credentials {
	creds := tcclient.CredentialsFromEnvVars()
	if creds == nil || creds.ClientID == "" {
		return nil
	}
	return creds
}

// CreateTask implements Queue.
func (t *Taskcluster) CreateTask(ctx context.Context, taskID string, def *task.Definition) (json.RawMessage, error) {
	req, err := toRequest(def)
	if err != nil {
		return nil, err
	}

	// Copy the client so the context is scoped to this call
	q := *t.queue
	q.Context = ctx

	resp, err := q.CreateTask(taskID, req)
	if err != nil {
		return nil, fmt.Errorf("creating task %s: %w", taskID, err)
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("encoding response for task %s: %w", taskID, err)
	}
	return raw, nil
}

// toRequest converts a task definition to the queue client's request type.
// Expires is set one year past the deadline; left zero it would precede the
// deadline and the queue would reject the task.
func toRequest(def *task.Definition) (*tcqueue.TaskDefinitionRequest, error) {
	payload, err := json.Marshal(def.Payload)
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}

	return &tcqueue.TaskDefinitionRequest{
		Created:       tcclient.Time(def.Created.Time()),
		Deadline:      tcclient.Time(def.Deadline.Time()),
		Expires:       tcclient.Time(def.Deadline.Time().AddDate(1, 0, 0)),
		ProvisionerID: def.ProvisionerID,
		WorkerType:    def.WorkerType,
		SchedulerID:   def.SchedulerID,
		TaskGroupID:   def.TaskGroupID,
		Routes:        def.Routes,
		Scopes:        def.Scopes,
		Payload:       json.RawMessage(payload),
		Metadata: tcqueue.TaskMetadata{
			Name:        def.Metadata.Name,
			Description: def.Metadata.Description,
			Owner:       def.Metadata.Owner,
			Source:      def.Metadata.Source,
		},
	}, nil
}
