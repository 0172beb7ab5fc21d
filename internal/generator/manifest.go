package generator

import "encoding/json"

const manifestVersion = 1

// buildManifest records artifact checksums for a build. It carries no
// timestamps so unchanged content marshals to identical bytes.
type buildManifest struct {
	Version   int               `json:"version"`
	Artifacts map[string]string `json:"artifacts"`
}

func newBuildManifest() *buildManifest {
	return &buildManifest{
		Version:   manifestVersion,
		Artifacts: map[string]string{},
	}
}

func (m *buildManifest) set(path, checksum string) {
	if m == nil || path == "" {
		return
	}
	m.Artifacts[path] = checksum
}

func (m *buildManifest) marshal() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
