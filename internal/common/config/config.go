// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	Scoring ScoringConfig `mapstructure:"scoring"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	MetricsPort    int    `mapstructure:"metrics_port"`
	ReadTimeout    int    `mapstructure:"read_timeout"`    // milliseconds
	WriteTimeout   int    `mapstructure:"write_timeout"`   // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

// ListenAddress returns the host:port string for the API listener.
func (s ServerConfig) ListenAddress() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// MetricsAddress returns the host:port string for the metrics listener.
func (s ServerConfig) MetricsAddress() string {
	return fmt.Sprintf("%s:%d", s.Host, s.MetricsPort)
}

// ScoringConfig holds the scoring engine settings. The requested loan amount
// is fixed per deployment, not client-supplied.
type ScoringConfig struct {
	RequestedLoanAmount float64 `mapstructure:"requested_loan_amount"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
