package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func gcpTarget(id string) Target {
	return Target{
		ID:         id,
		Provider:   ProviderGCP,
		WorkerType: "gecko-t-win10-64-gamma",
		WorkerPool: "gcp",
		Builder: BuilderConfig{
			WorkerType: "win2016-gamma",
			WorkerPool: "sandbox-1",
		},
		BuildScript: "build_vhd.ps1",
		Name:        id,
		Description: "build windows 10 google cloud image from iso",
	}
}

func writeTargetsFile(t *testing.T, file TargetsFile) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "targets.json")
	data, err := json.Marshal(file)
	if err != nil {
		t.Fatalf("marshaling targets file: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing targets file: %v", err)
	}
	return path
}

func TestLoadTargets(t *testing.T) {
	overridden := DefaultTargets()[0]
	overridden.BuildScript = "build_ami_v2.ps1"

	tests := []struct {
		name        string
		file        *TargetsFile
		expectIDs   []string
		checkID     string
		checkScript string
	}{
		{
			name:      "No override file - returns defaults",
			file:      nil,
			expectIDs: []string{"iso-to-ec2-ami-win-10", "iso-to-ec2-ami-win-10-gpu"},
		},
		{
			name: "New target appended after defaults",
			file: &TargetsFile{Targets: []Target{gcpTarget("iso-to-gcp-img-win-10")}},
			expectIDs: []string{
				"iso-to-ec2-ami-win-10",
				"iso-to-ec2-ami-win-10-gpu",
				"iso-to-gcp-img-win-10",
			},
		},
		{
			name:        "Existing id overridden in place",
			file:        &TargetsFile{Targets: []Target{overridden}},
			expectIDs:   []string{"iso-to-ec2-ami-win-10", "iso-to-ec2-ami-win-10-gpu"},
			checkID:     "iso-to-ec2-ami-win-10",
			checkScript: "build_ami_v2.ps1",
		},
		{
			name:      "Disabled entry removes a default",
			file:      &TargetsFile{Targets: []Target{{ID: "iso-to-ec2-ami-win-10", Disabled: true}}},
			expectIDs: []string{"iso-to-ec2-ami-win-10-gpu"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "absent.json")
			if tt.file != nil {
				path = writeTargetsFile(t, *tt.file)
			}

			targets, err := LoadTargets(path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(targets) != len(tt.expectIDs) {
				t.Fatalf("targets count = %d, want %d", len(targets), len(tt.expectIDs))
			}
			for i, id := range tt.expectIDs {
				if targets[i].ID != id {
					t.Errorf("targets[%d].ID = %q, want %q", i, targets[i].ID, id)
				}
			}

			if tt.checkID != "" {
				for _, target := range targets {
					if target.ID == tt.checkID && target.BuildScript != tt.checkScript {
						t.Errorf("target %q build script = %q, want %q", tt.checkID, target.BuildScript, tt.checkScript)
					}
				}
			}
		})
	}
}

func TestLoadTargets_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.json")
	if err := os.WriteFile(path, []byte("{invalid json"), 0644); err != nil {
		t.Fatalf("writing malformed targets file: %v", err)
	}

	if _, err := LoadTargets(path); err == nil {
		t.Fatal("expected error for malformed JSON, got nil")
	}
}

func TestLoadTargets_RejectsInvalidTargets(t *testing.T) {
	unknownProvider := gcpTarget("iso-to-azure-img-win-10")
	unknownProvider.Provider = "azure"

	missingScript := gcpTarget("iso-to-gcp-img-win-7")
	missingScript.BuildScript = ""

	missingBuilder := gcpTarget("iso-to-gcp-img-win-2012")
	missingBuilder.Builder = BuilderConfig{}

	tests := []struct {
		name   string
		target Target
	}{
		{name: "Unknown provider", target: unknownProvider},
		{name: "Missing build script", target: missingScript},
		{name: "Missing builder", target: missingBuilder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTargetsFile(t, TargetsFile{Targets: []Target{tt.target}})

			_, err := LoadTargets(path)
			if !errors.Is(err, ErrInvalidTarget) {
				t.Fatalf("expected ErrInvalidTarget, got %v", err)
			}
		})
	}
}

func TestDefaultTargets_ReturnsFreshSlice(t *testing.T) {
	first := DefaultTargets()
	first[0].WorkerType = "mutated"

	if got := DefaultTargets()[0].WorkerType; got != "gecko-t-win10-64-alpha" {
		t.Errorf("defaults were mutated: worker type = %q", got)
	}
}
