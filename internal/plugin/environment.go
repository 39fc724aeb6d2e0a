package plugin

import (
	"path/filepath"
	"strings"
)

// Spec names one plugin library to load.
type Spec struct {
	// Name is the plugin name the library must declare. Empty accepts
	// whatever the library declares.
	Name string `koanf:"name" json:"name,omitempty"`
	// Path is the filesystem path of the built library.
	Path string `koanf:"path" json:"path"`
}

func (s Spec) displayName() string {
	if s.Name != "" {
		return s.Name
	}
	return strings.TrimSuffix(filepath.Base(s.Path), filepath.Ext(s.Path))
}

// Environment is the resolved plugin configuration for one run. It is built
// once by the caller; nothing in this package reads process state.
type Environment struct {
	Plugins    []Spec
	BuildFlags []string
}

// SpecsFromPaths turns bare library paths into specs without name checks.
func SpecsFromPaths(paths []string) []Spec {
	specs := make([]Spec, 0, len(paths))
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		specs = append(specs, Spec{Path: p})
	}
	return specs
}
