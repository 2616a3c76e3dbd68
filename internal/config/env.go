package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingEnv is returned when a required environment variable is unset or empty.
var ErrMissingEnv = errors.New("missing required environment")

// RunEnv carries everything the decision run takes from its environment:
// the triggering commit, the task group and the location of input files.
type RunEnv struct {
	ChangedFiles string `mapstructure:"changed_files"` // Newline-separated paths
	TaskGroupID  string `mapstructure:"task_group_id"`
	HeadSHA      string `mapstructure:"head_sha"`
	HeadRepoURL  string `mapstructure:"head_repo_url"`
	HeadRepoName string `mapstructure:"head_repo_name"`
	OwnerEmail   string `mapstructure:"owner_email"`
	RootURL      string `mapstructure:"root_url"` // Proxy URL when running inside a task
	DataDir      string `mapstructure:"data_dir"`
	TargetsFile  string `mapstructure:"targets_file"`
	Project      string `mapstructure:"project"`
	LogLevel     string `mapstructure:"log_level"`
	DryRun       bool   `mapstructure:"dry_run"`
}

// envBinding ties a RunEnv key to the variables it is read from, first set wins.
type envBinding struct {
	key      string
	vars     []string
	required bool
	liveOnly bool // Required only when tasks are really submitted
}

var envBindings = []envBinding{
	{key: "changed_files", vars: []string{"git_changed_files"}, required: true},
	{key: "task_group_id", vars: []string{"TASK_ID"}, required: true},
	{key: "head_sha", vars: []string{"GITHUB_HEAD_SHA"}, required: true},
	{key: "head_repo_url", vars: []string{"GITHUB_HEAD_REPO_URL"}, required: true},
	{key: "head_repo_name", vars: []string{"GITHUB_HEAD_REPO_NAME"}},
	{key: "owner_email", vars: []string{"GITHUB_HEAD_USER_EMAIL"}, required: true},
	{key: "root_url", vars: []string{"TASKCLUSTER_PROXY_URL", "TASKCLUSTER_ROOT_URL"}, required: true, liveOnly: true},
	{key: "data_dir", vars: []string{"DECISION_DATA_DIR"}},
	{key: "targets_file", vars: []string{"DECISION_TARGETS_FILE"}},
	{key: "project", vars: []string{"DECISION_PROJECT"}},
	{key: "log_level", vars: []string{"DECISION_LOG_LEVEL"}},
	{key: "dry_run", vars: []string{"DECISION_DRY_RUN"}},
}

// LoadEnv reads the run environment. If dotenvPath names an existing file its
// variables are loaded first; variables already set in the process win.
func LoadEnv(dotenvPath string) (*RunEnv, error) {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", dotenvPath, err)
		}
	}

	v := viper.New()

	v.SetDefault("head_repo_name", "relops-image-builder")
	v.SetDefault("data_dir", "./relops-image-builder")
	v.SetDefault("project", "relops-image-builder")
	v.SetDefault("log_level", "info")
	v.SetDefault("dry_run", false)

	for _, b := range envBindings {
		if err := v.BindEnv(append([]string{b.key}, b.vars...)...); err != nil {
			return nil, fmt.Errorf("binding %s: %w", b.key, err)
		}
	}

	// Collect every missing variable so one failed run reports them all
	var missing []string
	dryRun := v.GetBool("dry_run")
	for _, b := range envBindings {
		if !b.required || (b.liveOnly && dryRun) {
			continue
		}
		if strings.TrimSpace(v.GetString(b.key)) == "" {
			missing = append(missing, strings.Join(b.vars, " or "))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(missing, ", "))
	}

	var env RunEnv
	if err := v.Unmarshal(&env); err != nil {
		return nil, fmt.Errorf("error unmarshaling environment: %w", err)
	}

	if env.TargetsFile == "" {
		env.TargetsFile = filepath.Join(env.DataDir, "ci", "targets.json")
	}

	return &env, nil
}

// WorkerTypeMapPath is the worker-type map inside the data directory.
func (e *RunEnv) WorkerTypeMapPath() string {
	return filepath.Join(e.DataDir, "worker-type-map.json")
}

// ManifestPath is the image manifest inside the data directory.
func (e *RunEnv) ManifestPath() string {
	return filepath.Join(e.DataDir, "manifest.json")
}
