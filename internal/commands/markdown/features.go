package markdowncmd

// FeatureGates exposes runtime feature toggles required by the import command
// handlers. Callers supply closures reading from runtime configuration so
// handlers stay decoupled from the config surface.
type FeatureGates struct {
	ImportEnabled func() bool
}

func (g FeatureGates) importEnabled() bool {
	if g.ImportEnabled == nil {
		return true
	}
	return g.ImportEnabled()
}
