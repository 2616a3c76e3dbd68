package config

// Provider names accepted on a target.
const (
	ProviderEC2 = "ec2"
	ProviderGCP = "gcp"
)

// BuilderConfig identifies the worker pool that runs the image build itself.
type BuilderConfig struct {
	WorkerType string `json:"worker_type" validate:"required"`
	WorkerPool string `json:"worker_pool" validate:"required"`
}

// Target is one image that may need rebuilding: a worker type on a cloud
// provider, plus the builder and script that produce its image.
type Target struct {
	ID          string        `json:"id" validate:"required"`
	Provider    string        `json:"provider" validate:"required,oneof=ec2 gcp"` // "ec2" or "gcp"
	WorkerType  string        `json:"worker_type" validate:"required"`            // Key into the worker-type map
	WorkerPool  string        `json:"worker_pool" validate:"required"`
	Builder     BuilderConfig `json:"builder"`
	BuildScript string        `json:"build_script" validate:"required"` // Script at the repo root, e.g. build_ami.ps1
	Name        string        `json:"name" validate:"required"`
	Description string        `json:"description"`
	Disabled    bool          `json:"disabled,omitempty"` // Only meaningful in an override file
}

// TargetsFile is the on-disk shape of a targets override file.
type TargetsFile struct {
	Targets []Target `json:"targets"`
}
