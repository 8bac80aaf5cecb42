package types

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Default endpoint paths served by the backend.
const (
	DefaultBackendURL     = "http://localhost:8000"
	DefaultTimeoutSeconds = 120
)

// Endpoints holds the backend paths for every call.
type Endpoints struct {
	Statement  string `json:"statement" yaml:"statement" toml:"statement"`
	Receipt    string `json:"receipt" yaml:"receipt" toml:"receipt"`
	Categories string `json:"categories" yaml:"categories" toml:"categories"`
	Weekly     string `json:"weekly" yaml:"weekly" toml:"weekly"`
	Analysis   string `json:"analysis" yaml:"analysis" toml:"analysis"`
	Chat       string `json:"chat" yaml:"chat" toml:"chat"`
}

// DefaultEndpoints returns the paths the backend exposes out of the box.
// Receipts share the statement ingestion path and are told apart by their form fields.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Statement:  "/upload/",
		Receipt:    "/upload/",
		Categories: "/get_graph_data/",
		Weekly:     "/get_bar_graph_data/",
		Analysis:   "/analyze",
		Chat:       "/query",
	}
}

// ArchiveConfig points at the S3 location exported reports are copied to.
type ArchiveConfig struct {
	Bucket string `json:"bucket" yaml:"bucket" toml:"bucket"`
	Prefix string `json:"prefix" yaml:"prefix" toml:"prefix"`
	Region string `json:"region" yaml:"region" toml:"region"`
}

// Enabled reports whether archival was requested.
func (a ArchiveConfig) Enabled() bool {
	return a.Bucket != ""
}

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	BackendURL     string        `json:"backend_url" yaml:"backend_url" toml:"backend_url"`
	TimeoutSeconds int           `json:"timeout_seconds" yaml:"timeout_seconds" toml:"timeout_seconds"`
	Endpoints      Endpoints     `json:"endpoints" yaml:"endpoints" toml:"endpoints"`
	ReportName     string        `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType     []string      `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir            string        `json:"dir" yaml:"dir" toml:"dir"`
	Archive        ArchiveConfig `json:"archive" yaml:"archive" toml:"archive"`
	Debug          bool          `json:"debug" yaml:"debug" toml:"debug"`
}

// DefaultConfig returns the configuration used when nothing else is provided.
func DefaultConfig() *Config {
	return &Config{
		BackendURL:     DefaultBackendURL,
		TimeoutSeconds: DefaultTimeoutSeconds,
		Endpoints:      DefaultEndpoints(),
		ReportType:     []string{"csv"},
	}
}

// Timeout returns the HTTP timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// FillDefaults replaces empty values with their defaults.
func (c *Config) FillDefaults() {
	def := DefaultConfig()
	if c.BackendURL == "" {
		c.BackendURL = def.BackendURL
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = def.TimeoutSeconds
	}
	if len(c.ReportType) == 0 {
		c.ReportType = def.ReportType
	}
	e := &c.Endpoints
	d := def.Endpoints
	for _, pair := range []struct {
		field *string
		value string
	}{
		{&e.Statement, d.Statement},
		{&e.Receipt, d.Receipt},
		{&e.Categories, d.Categories},
		{&e.Weekly, d.Weekly},
		{&e.Analysis, d.Analysis},
		{&e.Chat, d.Chat},
	} {
		if *pair.field == "" {
			*pair.field = pair.value
		}
	}
}

// ReportTypes lists the export formats understood by the export repository.
var ReportTypes = []string{"csv", "json", "pdf", "xlsx"}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errors []string

	if parsed, err := url.Parse(c.BackendURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid backend URL '%s': %v", c.BackendURL, err))
	} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
		errors = append(errors, fmt.Sprintf("invalid backend URL scheme '%s': must be 'http' or 'https'", parsed.Scheme))
	} else if parsed.Host == "" {
		errors = append(errors, fmt.Sprintf("invalid backend URL '%s': missing host", c.BackendURL))
	}

	if c.TimeoutSeconds <= 0 {
		errors = append(errors, fmt.Sprintf("invalid timeout %d: must be at least 1 second", c.TimeoutSeconds))
	}

	for _, rt := range c.ReportType {
		known := false
		for _, t := range ReportTypes {
			if rt == t {
				known = true
				break
			}
		}
		if !known {
			errors = append(errors, fmt.Sprintf("invalid report type '%s': must be one of %v", rt, ReportTypes))
		}
	}

	if c.Archive.Enabled() && c.ReportName == "" {
		errors = append(errors, "archive bucket requires a report name to export")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}
