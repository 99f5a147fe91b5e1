package model

// ClientRegistry resolves per-client dashboard configuration. The registry
// is immutable at runtime; lookups never fail with I/O errors.
type ClientRegistry interface {
	Get(clientID string) (ClientProfile, bool)
	EnabledTabs(clientID string) []Tab
	HasFeature(clientID string, feature string) bool
}

// Tab is a single dashboard tab in a client profile.
type Tab struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Icon    string `json:"icon" yaml:"icon"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

// RepoLocation identifies a content document in a remote repository.
type RepoLocation struct {
	Owner       string `yaml:"owner"`
	Repo        string `yaml:"repo"`
	Branch      string `yaml:"branch"`
	ContentPath string `yaml:"content_path"`
}

// ClientProfile describes the dashboard shape of a single tenant: its tabs,
// feature flags and the remote location of its content document. The repo
// location is never serialized to API clients.
type ClientProfile struct {
	ID        string          `json:"id" yaml:"-"`
	Name      string          `json:"name" yaml:"name"`
	Type      string          `json:"type" yaml:"type"`
	Dashboard string          `json:"dashboard" yaml:"dashboard"`
	Tabs      []Tab           `json:"tabs" yaml:"tabs"`
	Features  map[string]bool `json:"features" yaml:"features"`
	Repo      RepoLocation    `json:"-" yaml:"repo"`
}
