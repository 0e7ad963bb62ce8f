package common

import (
	"fmt"
	"strings"
)

// Config holds all configuration parameters of a pmKV process.
type Config struct {
	// Persistence
	DataDir string

	// Bootstrap feeds (only read when DataDir holds no prior state)
	RosterPath string
	RosterKey  string
	LoginsPath string

	// Logging configuration
	LogLevel  string
	LogFormat string

	// Metrics dumps all collected metrics to stderr on exit
	Metrics bool
}

// Validate checks that the configuration can be used to open an application.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory is required")
	}
	if c.RosterKey == "" {
		return fmt.Errorf("roster key field is required")
	}
	if _, err := parseLogLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "json", "pretty":
	default:
		return fmt.Errorf("invalid log format: %s. must be one of json, pretty", c.LogFormat)
	}
	return nil
}

// String returns a formatted string representation of the configuration
func (c *Config) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Storage")
	addField("Data Directory", c.DataDir)

	addSection("Bootstrap")
	addField("Roster", c.RosterPath)
	addField("Roster Key", c.RosterKey)
	if c.LoginsPath == "" {
		addField("Logins", "(generated)")
	} else {
		addField("Logins", c.LoginsPath)
	}

	addSection("Logging")
	addField("Log Level", c.LogLevel)
	addField("Log Format", c.LogFormat)
	addField("Metrics", fmt.Sprintf("%t", c.Metrics))

	return sb.String()
}
