package decision

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/mozilla-platform-ops/relops-image-builder/internal/config"
	"github.com/mozilla-platform-ops/relops-image-builder/internal/imagedata"
	"github.com/mozilla-platform-ops/relops-image-builder/internal/queue"
	"github.com/mozilla-platform-ops/relops-image-builder/internal/task"
)

// Config holds everything a decision run reads. None of it is modified.
type Config struct {
	Targets      []config.Target
	WorkerTypes  imagedata.WorkerTypeMap
	Manifest     imagedata.Manifest
	ChangedFiles ChangedFiles
	Env          *config.RunEnv
	Queue        queue.Queue
	Logger       hclog.Logger     // Optional, defaults to a null logger
	Now          func() time.Time // Optional, defaults to time.Now
	NewTaskID    func() string    // Optional, defaults to queue.NewTaskID
}

// Runner decides, target by target, whether an image build is needed and
// submits one task per eligible target.
type Runner struct {
	config Config
	l      hclog.Logger
}

// NewRunner creates a runner, filling in optional dependencies.
func NewRunner(cfg Config) *Runner {
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewTaskID == nil {
		cfg.NewTaskID = queue.NewTaskID
	}

	return &Runner{
		config: cfg,
		l:      cfg.Logger,
	}
}

// Run processes every target in order and returns one result per target
// considered. Skips are not errors. The first failed submission stops the
// run; its result is included and the error is returned.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	results := make([]Result, 0, len(r.config.Targets))

	for _, target := range r.config.Targets {
		result, err := r.decide(ctx, target)
		results = append(results, result)
		if err != nil {
			return results, fmt.Errorf("target %s: %w", target.ID, err)
		}
	}

	return results, nil
}

// decide runs the resolve, change-detection and submit steps for one target.
func (r *Runner) decide(ctx context.Context, target config.Target) (Result, error) {
	result := Result{Target: target}

	img, ok := r.config.Manifest.Resolve(r.config.WorkerTypes, target.WorkerType)
	if !ok {
		r.l.Info(fmt.Sprintf("no mapping found for worker type: %s. skipping build task.", target.WorkerType),
			"target", target.ID)
		result.Outcome = OutcomeSkippedUnmapped
		return result, nil
	}

	r.l.Debug("resolved image", "target", target.ID, "worker-type", target.WorkerType,
		"version", img.Version.String(), "edition", img.Edition.String(),
		"language", img.Language.String(), "architecture", img.Architecture.String(),
		"build", fmt.Sprintf("%s.%s.%s", img.Build.Major, img.Build.Release, img.Build.Build),
		"unattend", img.Unattend)

	result.UnattendPath = UnattendPath(target.Provider, img)
	if !r.config.ChangedFiles.Contains(result.UnattendPath) {
		r.l.Info(fmt.Sprintf("no change detected in unattend file: %s, for worker type: %s. skipping build task.",
			result.UnattendPath, target.WorkerType), "target", target.ID)
		result.Outcome = OutcomeSkippedUnchanged
		return result, nil
	}

	def, err := task.Build(target, r.config.Env, r.config.Now())
	if err != nil {
		result.Outcome = OutcomeFailed
		result.Error = err
		return result, err
	}

	result.TaskID = r.config.NewTaskID()
	r.l.Info(fmt.Sprintf("creating task: %s, for worker type: %s", result.TaskID, target.WorkerType),
		"target", target.ID, "task-group", r.config.Env.TaskGroupID,
		"inspector", InspectorURL(r.config.Env.RootURL, r.config.Env.TaskGroupID, result.TaskID))

	resp, err := r.config.Queue.CreateTask(ctx, result.TaskID, def)
	if err != nil {
		result.Outcome = OutcomeFailed
		result.Error = err
		return result, err
	}

	r.l.Info("task created", "task-id", result.TaskID, "response", string(resp))
	result.Outcome = OutcomeSubmitted
	result.Response = resp
	return result, nil
}

// UnattendPath is the repository path whose change triggers a rebuild of img
// for provider: unattend/<file> for ec2 and unattend/gcp/<file> for gcp.
func UnattendPath(provider string, img imagedata.Image) string {
	if provider == config.ProviderGCP {
		return "unattend/gcp/" + img.UnattendFile()
	}
	return "unattend/" + img.UnattendFile()
}

// InspectorURL links to a task in the task group view of the deployment at rootURL.
func InspectorURL(rootURL, taskGroupID, taskID string) string {
	return fmt.Sprintf("%s/tasks/groups/%s/tasks/%s", strings.TrimSuffix(rootURL, "/"), taskGroupID, taskID)
}
