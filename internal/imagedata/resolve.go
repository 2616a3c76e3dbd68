package imagedata

// Resolve finds the manifest image for workerType.
// The worker type is looked up in wt and the first Windows image whose
// descriptor matches is returned. ok is false when the worker type is not
// mapped or no image matches.
func (m Manifest) Resolve(wt WorkerTypeMap, workerType string) (img Image, ok bool) {
	want, mapped := wt[workerType]
	if !mapped {
		return Image{}, false
	}

	for _, candidate := range m {
		if candidate.OS == WindowsOS && candidate.Descriptor.Matches(want) {
			return candidate, true
		}
	}

	return Image{}, false
}
