package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/hashicorp/go-hclog"

	"github.com/mozilla-platform-ops/relops-image-builder/internal/config"
	"github.com/mozilla-platform-ops/relops-image-builder/internal/decision"
	"github.com/mozilla-platform-ops/relops-image-builder/internal/imagedata"
	"github.com/mozilla-platform-ops/relops-image-builder/internal/queue"
	"github.com/mozilla-platform-ops/relops-image-builder/internal/report"
)

func main() {
	// Create signal-aware context so a cancelled CI job stops the queue call
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run performs one decision run, writing logs and the summary to out.
func run(ctx context.Context, out io.Writer) error {
	env, err := config.LoadEnv(".env")
	if err != nil {
		return err
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "decision-task",
		Level:  hclog.LevelFromString(env.LogLevel),
		Output: out,
	})

	targets, err := config.LoadTargets(env.TargetsFile)
	if err != nil {
		return err
	}

	workerTypes, err := imagedata.LoadWorkerTypeMap(env.WorkerTypeMapPath())
	if err != nil {
		return err
	}

	manifest, err := imagedata.LoadManifest(env.ManifestPath())
	if err != nil {
		return err
	}

	changed := decision.ParseChangedFiles(env.ChangedFiles)
	logger.Info("changed files", "count", len(changed), "files", changed.Sorted())

	var q queue.Queue
	if env.DryRun {
		q = queue.NewDryRun(logger.Named("dry-run"))
	} else {
		q = queue.NewTaskcluster(env.RootURL, queue.CredentialsFromEnv())
	}

	runner := decision.NewRunner(decision.Config{
		Targets:      targets,
		WorkerTypes:  workerTypes,
		Manifest:     manifest,
		ChangedFiles: changed,
		Env:          env,
		Queue:        q,
		Logger:       logger,
	})

	results, err := runner.Run(ctx)
	fmt.Fprint(out, report.Render(results))
	return err
}
