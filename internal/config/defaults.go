package config

// DefaultTargets returns the compiled-in target list.
// A fresh slice is returned on every call so callers may modify it freely.
func DefaultTargets() []Target {
	return []Target{
		{
			ID:         "iso-to-ec2-ami-win-10",
			Provider:   ProviderEC2,
			WorkerType: "gecko-t-win10-64-alpha",
			WorkerPool: "aws-provisioner-v1",
			Builder: BuilderConfig{
				WorkerType: "relops-image-builder",
				WorkerPool: "aws-provisioner-v1",
			},
			BuildScript: "build_ami.ps1",
			Name:        "iso-to-ec2-ami-win-10",
			Description: "build windows 10 amazon ec2 ami from iso",
		},
		{
			ID:         "iso-to-ec2-ami-win-10-gpu",
			Provider:   ProviderEC2,
			WorkerType: "gecko-t-win10-64-gpu-a",
			WorkerPool: "aws-provisioner-v1",
			Builder: BuilderConfig{
				WorkerType: "relops-image-builder",
				WorkerPool: "aws-provisioner-v1",
			},
			BuildScript: "build_ami.ps1",
			Name:        "iso-to-ec2-ami-win-10-gpu",
			Description: "build windows 10 gpu amazon ec2 ami from iso",
		},
	}
}
