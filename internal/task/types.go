package task

import (
	"time"
)

// timestampLayout is the queue's date format: UTC with millisecond precision.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Timestamp is a time that serialises in the queue's date format.
type Timestamp time.Time

// MarshalJSON renders the timestamp in UTC with millisecond precision.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// String renders the timestamp in UTC with millisecond precision.
func (t Timestamp) String() string {
	return time.Time(t).UTC().Format(timestampLayout)
}

// Time returns the underlying time.
func (t Timestamp) Time() time.Time { return time.Time(t) }

// Artifact is a path the worker uploads when the task finishes.
type Artifact struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"` // "file" or "directory"
}

// Features toggles generic-worker features for the task.
type Features struct {
	RunAsAdministrator bool `json:"runAsAdministrator"`
	TaskclusterProxy   bool `json:"taskclusterProxy"`
}

// Payload is the generic-worker payload of an image build task.
type Payload struct {
	OSGroups   []string   `json:"osGroups"`
	MaxRunTime int        `json:"maxRunTime"` // Seconds
	Artifacts  []Artifact `json:"artifacts"`
	Command    []string   `json:"command"`
	Features   Features   `json:"features"`
}

// Metadata describes the task to humans.
type Metadata struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Owner       string `json:"owner"`
	Source      string `json:"source"`
}

// Definition is the task submitted to the queue for one eligible target.
type Definition struct {
	Created       Timestamp `json:"created"`
	Deadline      Timestamp `json:"deadline"`
	ProvisionerID string    `json:"provisionerId"`
	WorkerType    string    `json:"workerType"`
	SchedulerID   string    `json:"schedulerId"`
	TaskGroupID   string    `json:"taskGroupId"`
	Routes        []string  `json:"routes"`
	Scopes        []string  `json:"scopes"`
	Payload       Payload   `json:"payload"`
	Metadata      Metadata  `json:"metadata"`
}
