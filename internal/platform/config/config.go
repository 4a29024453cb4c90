package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	defaultAddr    = ":8080"
	defaultMode    = "development"
	defaultVersion = "0.0.0-dev"
)

// ModeProduction is the deployment mode that enables the monitoring client.
// Any other mode leaves reporting as a no-op.
const ModeProduction = "production"

// Server captures process-level configuration sourced from the environment.
type Server struct {
	Addr       string `mapstructure:"addr"`
	Mode       string `mapstructure:"mode"`
	MonitorDSN string `mapstructure:"monitor-dsn"`
	Version    string `mapstructure:"version"`
}

// FromEnv builds a Server config from FAULTLINE_* environment variables so
// main stays lean. Unset variables fall back to development defaults.
func FromEnv() (Server, error) {
	v := viper.New()
	v.SetEnvPrefix("FAULTLINE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("addr", defaultAddr)
	v.SetDefault("mode", defaultMode)
	v.SetDefault("monitor-dsn", "")
	v.SetDefault("version", defaultVersion)

	var cfg Server
	if err := v.Unmarshal(&cfg); err != nil {
		return Server{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}

// Production reports whether the monitoring client should be constructed.
func (s Server) Production() bool {
	return s.Mode == ModeProduction
}
