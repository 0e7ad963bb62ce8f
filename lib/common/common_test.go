package common

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lni/dragonboat/v4/logger"
)

func validConfig() *Config {
	return &Config{
		DataDir:   "database",
		RosterKey: "ID",
		LogLevel:  "info",
		LogFormat: "json",
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"Valid", func(c *Config) {}, false},
		{"UpperCaseLevel", func(c *Config) { c.LogLevel = "WARN" }, false},
		{"NoDataDir", func(c *Config) { c.DataDir = "" }, true},
		{"NoRosterKey", func(c *Config) { c.RosterKey = "" }, true},
		{"BadLevel", func(c *Config) { c.LogLevel = "verbose" }, true},
		{"BadFormat", func(c *Config) { c.LogFormat = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigString(t *testing.T) {
	out := validConfig().String()
	for _, want := range []string{"STORAGE", "BOOTSTRAP", "LOGGING", "(generated)", "database"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected config string to contain %q, got:\n%s", want, out)
		}
	}
}

func TestLoggerFactory(t *testing.T) {
	var buf bytes.Buffer
	old := output
	output = &buf
	defer func() { output = old }()

	l := newLoggerFactory("json")("test")
	l.SetLevel(logger.WARNING)
	l.Infof("hidden %d", 1)
	l.Warningf("shown %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Expected info message to be filtered, got %s", out)
	}
	if !strings.Contains(out, "shown 2") || !strings.Contains(out, `"pkg":"test"`) {
		t.Errorf("Expected warning with package field, got %s", out)
	}
}

func TestMetrics(t *testing.T) {
	CountLogin(true)
	CountAction("create-project", false)

	var buf bytes.Buffer
	WriteMetrics(&buf)
	out := buf.String()
	for _, want := range []string{`pmkv_logins_total{result="ok"}`, `pmkv_actions_total{action="create-project",result="rejected"}`} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected metrics to contain %s, got:\n%s", want, out)
		}
	}
}
