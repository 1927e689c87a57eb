package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/clintrovert/nudgebot/pkg/types"
)

const (
	defaultListConfigFile  = "clickup_config.json"
	defaultUserMappingFile = "user_mapping.json"
	defaultPostDelay       = 3 * time.Minute
)

// ErrMissingCredential indicates a required credential was not set.
// It is the only error class that aborts a run before any network call.
type ErrMissingCredential struct {
	Vars []string
}

func (e *ErrMissingCredential) Error() string {
	return fmt.Sprintf("missing required environment variables: %v", e.Vars)
}

// Config holds everything a run needs. It is built once at process
// start and passed by value into each component.
type Config struct {
	ClickUpAPIKey  string
	ClickUpListID  string
	ClickUpTeamID  string
	ListConfigFile string

	OpenAIAPIKey string
	OpenAIModel  string

	SlackBotToken   string
	SlackChannelID  string
	UserMappingFile string

	PostDelay    time.Duration
	SkipWeekends bool
}

// Load reads configuration from the environment. It fails only when a
// required credential is absent.
func Load() (Config, error) {
	cfg := Config{
		ClickUpAPIKey:   os.Getenv("CLICKUP_API_KEY"),
		ClickUpListID:   os.Getenv("CLICKUP_LIST_ID"),
		ClickUpTeamID:   os.Getenv("CLICKUP_TEAM_ID"),
		ListConfigFile:  getEnv("CLICKUP_CONFIG_FILE", defaultListConfigFile),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     os.Getenv("OPENAI_MODEL"),
		SlackBotToken:   os.Getenv("SLACK_BOT_TOKEN"),
		SlackChannelID:  os.Getenv("SLACK_CHANNEL_ID"),
		UserMappingFile: getEnv("USER_MAPPING_FILE", defaultUserMappingFile),
		PostDelay:       defaultPostDelay,
		SkipWeekends:    true,
	}

	if v := os.Getenv("POST_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.PostDelay = d
		}
	}
	if v := os.Getenv("SKIP_WEEKENDS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.SkipWeekends = b
		}
	}

	var missing []string
	for _, req := range []struct {
		name, value string
	}{
		{"CLICKUP_API_KEY", cfg.ClickUpAPIKey},
		{"OPENAI_API_KEY", cfg.OpenAIAPIKey},
		{"SLACK_BOT_TOKEN", cfg.SlackBotToken},
		{"SLACK_CHANNEL_ID", cfg.SlackChannelID},
	} {
		if req.value == "" {
			missing = append(missing, req.name)
		}
	}
	if len(missing) > 0 {
		return Config{}, &ErrMissingCredential{Vars: missing}
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// DiscoverySettings filters which spaces, folders and lists the
// auto-discovery walk considers.
type DiscoverySettings struct {
	IncludeFolders   []string `json:"include_folders,omitempty"`
	ExcludeFolders   []string `json:"exclude_folders,omitempty"`
	ExcludeListNames []string `json:"exclude_list_names,omitempty"`
}

// ListConfig is the on-disk multi-list configuration.
type ListConfig struct {
	Lists     []types.TrackedList `json:"lists"`
	Discovery DiscoverySettings   `json:"discovery_settings,omitempty"`
}

// DefaultExcludePatterns are applied when the config file does not set
// its own discovery filters.
var DefaultExcludePatterns = []string{"template", "archived"}

// LoadListConfig reads the multi-list configuration file. A missing
// file is not an error; it returns an empty config so legacy
// single-list mode can take over.
func LoadListConfig(path string) (ListConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return ListConfig{}, nil
	}
	if err != nil {
		return ListConfig{}, fmt.Errorf("failed to read list config: %w", err)
	}

	var cfg ListConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return ListConfig{}, fmt.Errorf("failed to parse list config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveListConfig writes the multi-list configuration back to disk.
// Discovery uses this to persist merged entries.
func SaveListConfig(path string, cfg ListConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode list config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write list config %s: %w", path, err)
	}
	return nil
}

// LoadUserMappings reads the user mapping file. A missing file yields
// the default mapping (no entries, @channel, source-name fallback).
func LoadUserMappings(path string) (types.UserMappings, error) {
	mappings := types.UserMappings{
		Mappings:         map[string]string{},
		DefaultMention:   "@channel",
		FallbackBehavior: types.FallbackSourceName,
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return mappings, nil
	}
	if err != nil {
		return mappings, fmt.Errorf("failed to read user mappings: %w", err)
	}

	if err := json.Unmarshal(data, &mappings); err != nil {
		return mappings, fmt.Errorf("failed to parse user mappings %s: %w", path, err)
	}
	if mappings.Mappings == nil {
		mappings.Mappings = map[string]string{}
	}
	if mappings.DefaultMention == "" {
		mappings.DefaultMention = "@channel"
	}
	switch mappings.FallbackBehavior {
	case types.FallbackSourceName, types.FallbackDefault:
	case "use_clickup_name": // legacy name from older config files
		mappings.FallbackBehavior = types.FallbackSourceName
	default:
		mappings.FallbackBehavior = types.FallbackSourceName
	}
	return mappings, nil
}

// SaveUserMappings writes the user mapping file.
func SaveUserMappings(path string, mappings types.UserMappings) error {
	data, err := json.MarshalIndent(mappings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode user mappings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write user mappings %s: %w", path, err)
	}
	return nil
}
