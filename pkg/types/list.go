package types

// TrackedList is one configured ClickUp list. Entries are created from
// configuration or auto-discovery and are immutable during a run.
type TrackedList struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Type    ListType `json:"type"`
	Enabled bool     `json:"enabled"`

	// Bookkeeping for auto-discovered entries.
	Space         string `json:"space,omitempty"`
	Folder        string `json:"folder,omitempty"`
	Discovered    bool   `json:"discovered,omitempty"`
	DiscoveryDate string `json:"discovery_date,omitempty"`
}

// FallbackBehavior selects the mention used when a source username has
// no configured mapping.
type FallbackBehavior string

const (
	// FallbackSourceName mentions the source-system username verbatim.
	FallbackSourceName FallbackBehavior = "use_source_name"
	// FallbackDefault mentions the configured default (e.g. @channel).
	FallbackDefault FallbackBehavior = "use_default"
)

// UserMappings maps ClickUp usernames to Slack usernames or user IDs.
type UserMappings struct {
	Mappings         map[string]string `json:"user_mappings"`
	DefaultMention   string            `json:"default_mention"`
	FallbackBehavior FallbackBehavior  `json:"fallback_behavior"`
}
