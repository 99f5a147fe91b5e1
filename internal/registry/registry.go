package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/blacnova/dashboard-server/internal/model"
)

var _ model.ClientRegistry = (*Registry)(nil)

// Registry is an immutable client-profile lookup loaded once at startup
// from a declarative YAML file.
type Registry struct {
	clients map[string]model.ClientProfile
}

type registryFile struct {
	Clients map[string]model.ClientProfile `yaml:"clients"`
}

// Load reads client profiles from the YAML file at path.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read clients file: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse clients file: %w", err)
	}

	clients := make(map[string]model.ClientProfile, len(file.Clients))
	for id, profile := range file.Clients {
		profile.ID = id
		clients[id] = profile
	}

	return &Registry{clients: clients}, nil
}

// Get returns the profile for clientID.
func (r *Registry) Get(clientID string) (model.ClientProfile, bool) {
	profile, ok := r.clients[clientID]
	return profile, ok
}

// EnabledTabs returns the client's tabs filtered by the enabled flag,
// preserving their declared order. Unknown clients get an empty list.
func (r *Registry) EnabledTabs(clientID string) []model.Tab {
	profile, ok := r.clients[clientID]
	if !ok {
		return nil
	}

	tabs := make([]model.Tab, 0, len(profile.Tabs))
	for _, tab := range profile.Tabs {
		if tab.Enabled {
			tabs = append(tabs, tab)
		}
	}
	return tabs
}

// HasFeature reports whether the client has the feature enabled. Unknown
// clients and unknown features are false.
func (r *Registry) HasFeature(clientID string, feature string) bool {
	profile, ok := r.clients[clientID]
	if !ok {
		return false
	}
	return profile.Features[feature]
}
