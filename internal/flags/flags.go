// Package flags holds the feature switches from the config file's flags
// section. A Registry is read-only once built.
package flags

import (
	"maps"
	"slices"

	"github.com/zjrosen/inkwell/internal/log"
)

const (
	// FlagCursorResume restores the last cursor position when a file is reopened.
	FlagCursorResume = "cursor-resume"
	// FlagExternalReload reloads an unmodified buffer when its file changes
	// on disk. Off, the editor only warns.
	FlagExternalReload = "external-reload"
)

// Known lists every flag the editor reads with its default.
var Known = map[string]bool{
	FlagCursorResume:   true,
	FlagExternalReload: true,
}

// Registry answers whether a flag is on.
type Registry struct {
	on map[string]bool
}

// New lays the configured values over the Known defaults. Names the editor
// does not read are kept, so a typo shows up in All, and logged.
func New(configured map[string]bool) *Registry {
	on := maps.Clone(Known)
	for name, v := range configured {
		if _, ok := Known[name]; !ok {
			log.Warn(log.CatConfig, "Unknown feature flag in config", "flag", name)
		}
		on[name] = v
	}
	log.Debug(log.CatConfig, "Feature flags loaded", "flags", on)
	return &Registry{on: on}
}

// Enabled reports whether name is on. Unknown names and a nil Registry are off.
func (r *Registry) Enabled(name string) bool {
	if r == nil {
		return false
	}
	return r.on[name]
}

// All returns a copy of every flag value.
func (r *Registry) All() map[string]bool {
	if r == nil {
		return map[string]bool{}
	}
	return maps.Clone(r.on)
}

// Names returns the flag names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(r.on))
}
