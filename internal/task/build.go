package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/mozilla-platform-ops/relops-image-builder/internal/config"
)

const (
	// SchedulerID is the scheduler that owns tasks created from GitHub events.
	SchedulerID = "taskcluster-github"

	// DeadlineAfter is how long the queue keeps an unresolved task.
	DeadlineAfter = 3 * 24 * time.Hour

	// MaxRunTime is the build timeout in seconds.
	MaxRunTime = 10800

	administratorsGroup = "Administrators"
	screenshotArtifact  = "public/screenshot"
)

// gcpSDKSetup points gcloud at its bundled python and installs the beta
// components the vhd import needs.
var gcpSDKSetup = []string{
	`for /F "delims=" %%i in ('"C:\Program Files (x86)\Google\Cloud SDK\google-cloud-sdk\bin\gcloud.cmd" components copy-bundled-python') do (set CLOUDSDK_PYTHON=%%i)`,
	`gcloud components install beta --quiet`,
}

// Build assembles the task definition for an eligible target.
// now becomes the task's created time.
func Build(target config.Target, env *config.RunEnv, now time.Time) (*Definition, error) {
	owner, err := repoOwner(env.HeadRepoURL)
	if err != nil {
		return nil, err
	}

	pool := target.Builder.WorkerPool
	workerType := target.Builder.WorkerType
	created := now.UTC().Truncate(time.Millisecond)

	def := &Definition{
		Created:       Timestamp(created),
		Deadline:      Timestamp(created.Add(DeadlineAfter)),
		ProvisionerID: pool,
		WorkerType:    workerType,
		SchedulerID:   SchedulerID,
		TaskGroupID:   env.TaskGroupID,
		Routes: []string{
			fmt.Sprintf("index.project.releng.%s.v1.revision.%s", env.Project, env.HeadSHA),
		},
		Scopes: []string{
			fmt.Sprintf("generic-worker:os-group:%s/%s/%s", pool, workerType, administratorsGroup),
			fmt.Sprintf("generic-worker:run-as-administrator:%s/%s", pool, workerType),
		},
		Payload: Payload{
			OSGroups:   []string{administratorsGroup},
			MaxRunTime: MaxRunTime,
			Artifacts:  artifacts(target.Provider),
			Command:    commands(target, env, owner),
			Features: Features{
				RunAsAdministrator: true,
				TaskclusterProxy:   true,
			},
		},
		Metadata: Metadata{
			Name:        fmt.Sprintf("%s :: %s :: %s", target.Provider, target.WorkerType, target.Name),
			Description: fmt.Sprintf("%s for %s", target.Description, target.WorkerType),
			Owner:       env.OwnerEmail,
			Source:      fmt.Sprintf("%s/commit/%s", strings.TrimSuffix(env.HeadRepoURL, ".git"), shortSHA(env.HeadSHA)),
		},
	}

	return def, nil
}

// artifacts returns the screenshot directory for ec2 builds and nothing otherwise.
// The empty case is a non-nil slice so it serialises as [].
func artifacts(provider string) []Artifact {
	if provider != config.ProviderEC2 {
		return []Artifact{}
	}
	return []Artifact{
		{Name: screenshotArtifact, Path: screenshotArtifact, Type: "directory"},
	}
}

// commands clones the head commit and runs the target's build script.
func commands(target config.Target, env *config.RunEnv, owner string) []string {
	dir := env.Project
	gitDir := fmt.Sprintf(`git --git-dir=.\%s\.git --work-tree=.\%s`, dir, dir)

	cmds := []string{
		fmt.Sprintf("git clone %s %s", env.HeadRepoURL, dir),
		gitDir + " config advice.detachedHead false",
		gitDir + " checkout " + env.HeadSHA,
	}

	if target.Provider == config.ProviderGCP {
		cmds = append(cmds, gcpSDKSetup...)
	}

	return append(cmds, fmt.Sprintf(`powershell -NoProfile -InputFormat None -File .\%s\%s %s %s %s %s`,
		dir, target.BuildScript, target.WorkerType, owner, env.HeadRepoName, env.HeadSHA))
}

// repoOwner extracts the organisation from a URL like https://github.com/<owner>/<repo>.git.
func repoOwner(repoURL string) (string, error) {
	parts := strings.Split(repoURL, "/")
	if len(parts) < 4 || parts[3] == "" {
		return "", fmt.Errorf("cannot determine repository owner from %q", repoURL)
	}
	return parts[3], nil
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
