// Package config provides YAML configuration parsing for the standalone
// slotwatch binary.
//
// This package enables running slotwatch from a configuration file, as an
// alternative to the programmatic SDK approach.
//
// Example configuration:
//
//	location:
//	  zip: "78701"
//	radius_miles: 25
//	poll_interval: 3s
//
//	window:
//	  start: 2026-09-05
//	  end: 2026-09-12
//
//	discord_webhook: ${DISCORD_WEBHOOK}
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// minPollInterval is the minimum allowed polling interval. This prevents
// accidentally hammering the scheduling provider, which bans aggressive
// clients.
const minPollInterval = 1 * time.Second

// Config is the root configuration structure for slotwatch.
//
// It maps directly to the YAML configuration file structure. Use [Load] or
// [Parse] to create a Config from YAML.
type Config struct {
	// Location is the geographic center of the search. Exactly one of
	// ZIP or City+State must be set.
	Location LocationConfig `yaml:"location"`

	// RadiusMiles is the search radius. Defaults to 10.
	RadiusMiles int `yaml:"radius_miles"`

	// PollInterval is the pause between full-window scan cycles.
	// Accepts duration strings like "3s", "1m", "500ms". Defaults to 3s.
	PollInterval Duration `yaml:"poll_interval"`

	// Adults and Minors set the party composition. Adults defaults to 1.
	Adults int `yaml:"adults"`
	Minors int `yaml:"minors"`

	// Category is the appointment category. Defaults to PASSPORT, which
	// is also the only supported value.
	Category string `yaml:"category"`

	// Window optionally bounds the scanned dates. Bounds outside
	// [tomorrow, tomorrow+30] are clamped at scan time.
	Window WindowConfig `yaml:"window"`

	// ChunkSize is how many dates are scanned concurrently. Defaults to 5.
	ChunkSize int `yaml:"chunk_size"`

	// DateTolerance widens facility selection by the given number of
	// days around each scanned date. Defaults to 0 (exact date only).
	DateTolerance int `yaml:"date_tolerance"`

	// DiscordWebhook is the webhook URL notifications are delivered to.
	// Supports environment variable substitution: ${VAR} or
	// ${VAR:-default}. When empty, notifications are logged instead.
	DiscordWebhook string `yaml:"discord_webhook"`

	// StatusPort enables the HTTP status API on the given port.
	// 0 (the default) disables it.
	StatusPort int `yaml:"status_port"`

	// BaseURL overrides the scheduler API base URL. Leave empty for the
	// real scheduler; set it to run against a local mock server.
	BaseURL string `yaml:"base_url"`

	// Booking configures the experimental auto-booking path.
	Booking BookingConfig `yaml:"booking"`
}

// LocationConfig holds the raw location fields. XOR validation between the
// two forms happens in the core at construction time.
type LocationConfig struct {
	ZIP   string `yaml:"zip"`
	City  string `yaml:"city"`
	State string `yaml:"state"`
}

// WindowConfig holds the optional date window bounds.
type WindowConfig struct {
	Start Date `yaml:"start"`
	End   Date `yaml:"end"`
}

// BookingConfig holds the auto-booking flag and the customer identity it
// requires.
type BookingConfig struct {
	// Auto enables the experimental auto-booking path. When true, all
	// identity fields below are required.
	Auto bool `yaml:"auto"`

	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Email     string `yaml:"email"`
	Phone     string `yaml:"phone"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Date wraps time.Time for YAML unmarshalling of YYYY-MM-DD values.
type Date time.Time

// UnmarshalYAML implements yaml.Unmarshaler for Date.
func (d *Date) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseInLocation(time.DateOnly, s, time.Local)
	if err != nil {
		return fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}

	*d = Date(parsed)
	return nil
}

// Time returns the underlying time.Time value.
func (d Date) Time() time.Time {
	return time.Time(d)
}

// IsZero reports whether the date was left unset.
func (d Date) IsZero() bool {
	return time.Time(d).IsZero()
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with
// environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		// already have an error, skip processing
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		// submatches[2] is ":-..." (non-empty if default syntax was used)
		// submatches[3] is the actual default value (may be empty for ${VAR:-})
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
//
// Environment variables in the file are expanded before validation.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in DiscordWebhook. Defaults are
// applied for RadiusMiles (10), PollInterval (3s), Adults (1), Category
// (PASSPORT), and ChunkSize (5). Structural validation happens here;
// cross-field constraints (location XOR, booking identity) are enforced by
// the core when [Build] constructs the watcher.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.RadiusMiles == 0 {
		cfg.RadiusMiles = 10
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = Duration(3 * time.Second)
	}
	if cfg.Adults == 0 {
		cfg.Adults = 1
	}
	if cfg.Category == "" {
		cfg.Category = "PASSPORT"
	}
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = 5
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// expandAndValidate expands environment variables and validates the
// structural fields.
func (c *Config) expandAndValidate() error {
	if c.PollInterval.Duration() < minPollInterval {
		return fmt.Errorf("poll_interval must be at least %s, got %s", minPollInterval, c.PollInterval.Duration())
	}

	if c.DiscordWebhook != "" {
		expanded, err := expandEnvVars(c.DiscordWebhook)
		if err != nil {
			return fmt.Errorf("discord_webhook: %w", err)
		}
		c.DiscordWebhook = expanded
	}

	if c.RadiusMiles < 0 {
		return fmt.Errorf("radius_miles cannot be negative, got %d", c.RadiusMiles)
	}
	if c.ChunkSize < 0 {
		return fmt.Errorf("chunk_size cannot be negative, got %d", c.ChunkSize)
	}
	if c.DateTolerance < 0 {
		return fmt.Errorf("date_tolerance cannot be negative, got %d", c.DateTolerance)
	}
	if c.StatusPort != 0 && (c.StatusPort < 1 || c.StatusPort > 65535) {
		return fmt.Errorf("status_port must be between 1 and 65535, got %d", c.StatusPort)
	}

	return nil
}
