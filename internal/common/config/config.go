// internal/common/config/config.go
package config

import (
	"fmt"
	"net/url"
)

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig               `mapstructure:"app"`
	Camunda   CamundaConfig           `mapstructure:"camunda"`
	Database  DatabaseConfig          `mapstructure:"database"`
	Providers ProvidersConfig         `mapstructure:"providers"`
	Ownership OwnershipConfig         `mapstructure:"ownership"`
	Server    ServerConfig            `mapstructure:"server"`
	Tracing   TracingConfig           `mapstructure:"tracing"`
	Workers   map[string]WorkerConfig `mapstructure:"workers"`
	Logging   LoggingConfig           `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Registry RegistryConfig `mapstructure:"registry"`
}

// RegistryConfig points at the license / corporate registry store.
// Leaving both URL and Host empty disables registry matching.
type RegistryConfig struct {
	URL             string `mapstructure:"url"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Database        string `mapstructure:"database"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	MaxConnections  int    `mapstructure:"max_connections"`
	MaxIdle         int    `mapstructure:"max_idle"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // milliseconds
	SSLMode         string `mapstructure:"sslmode"`
}

// Configured reports whether a registry store has been set up.
func (r RegistryConfig) Configured() bool {
	return r.URL != "" || r.Host != ""
}

// GetDSN returns the PostgreSQL connection string
func (r RegistryConfig) GetDSN() string {
	if r.URL != "" {
		return r.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		r.Host, r.Port, r.User, r.Password, r.Database, r.SSLMode,
	)
}

// MigrationURL returns the store address in URL form, which schema
// migrations require even when the pool is configured by host fields.
func (r RegistryConfig) MigrationURL() string {
	if r.URL != "" {
		return r.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(r.User, r.Password),
		Host:     fmt.Sprintf("%s:%d", r.Host, r.Port),
		Path:     "/" + r.Database,
		RawQuery: url.Values{"sslmode": {r.SSLMode}}.Encode(),
	}
	return u.String()
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

// --- Provider Configuration ---

type ProvidersConfig struct {
	Smarty     SmartyConfig     `mapstructure:"smarty"`
	GoogleMaps GoogleMapsConfig `mapstructure:"google_maps"`
}

// SmartyConfig holds credentials for the parcel enrichment API.
type SmartyConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	AuthID    string `mapstructure:"auth_id"`
	AuthToken string `mapstructure:"auth_token"`
	Timeout   int    `mapstructure:"timeout"` // milliseconds
}

// GoogleMapsConfig holds settings for geocoding and places lookups.
type GoogleMapsConfig struct {
	BaseURL      string `mapstructure:"base_url"`
	APIKey       string `mapstructure:"api_key"`
	NearbyRadius int    `mapstructure:"nearby_radius"` // meters
	Timeout      int    `mapstructure:"timeout"`       // milliseconds
}

// OwnershipConfig tunes owner/tenant name comparison.
type OwnershipConfig struct {
	MinMatchLength int `mapstructure:"min_match_length"` // 0 keeps plain substring matching
}

// ServerConfig holds the HTTP API listener settings.
type ServerConfig struct {
	Address      string `mapstructure:"address"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // milliseconds
	WriteTimeout int    `mapstructure:"write_timeout"` // milliseconds
}

// TracingConfig configures span export.
type TracingConfig struct {
	Enabled        bool    `mapstructure:"enabled"`
	JaegerEndpoint string  `mapstructure:"jaeger_endpoint"`
	SampleRatio    float64 `mapstructure:"sample_ratio"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
