package config

import (
	"zonesync/common"

	"go.uber.org/zap/zapcore"
)

type Config struct {
	Service  Service  `toml:"service" json:"service" yaml:"service"`
	Log      Log      `toml:"log" json:"log" yaml:"log"`
	Provider Provider `toml:"provider" json:"provider" yaml:"provider"`
	Address  Address  `toml:"address" json:"address" yaml:"address"`
	Hosts    []Host   `toml:"host" json:"host" yaml:"host"`
}

type Service struct {
	Name        string          `toml:"name" json:"name" yaml:"name"`
	RefreshRate common.Duration `toml:"refresh_rate" json:"refresh_rate" yaml:"refresh_rate"`
}

type Log struct {
	Level     *zapcore.Level `toml:"level" json:"level" yaml:"level"`
	Encoding  *string        `toml:"encoding" json:"encoding" yaml:"encoding"`
	InfoPath  *[]string      `toml:"info_path" json:"info_path" yaml:"info_path"`
	ErrorPath *[]string      `toml:"error_path" json:"error_path" yaml:"error_path"`
}

// Provider selects and configures the DNS provider holding the zones.
type Provider struct {
	Type   string         `toml:"type" json:"type" yaml:"type"`
	Config map[string]any `toml:"config,omitempty" json:"config,omitempty" yaml:"config,omitempty"`
}

type ProviderCloudflareConfig struct {
	APIToken string `mapstructure:"api_token"`
	TTL      int    `mapstructure:"ttl"`
	Proxied  bool   `mapstructure:"proxied"`
}

// Address selects how the machine's current public address is discovered.
type Address struct {
	Type     string         `toml:"type" json:"type" yaml:"type"`
	Endpoint string         `toml:"endpoint" json:"endpoint" yaml:"endpoint"`
	Config   map[string]any `toml:"config,omitempty" json:"config,omitempty" yaml:"config,omitempty"`
}

type AddressHTTPConfig struct {
	Timeout common.Duration `mapstructure:"timeout"`
}

// Host names one record to keep in sync. An empty subdomain means the bare
// zone itself carries the record.
type Host struct {
	Subdomain string `toml:"subdomain" json:"subdomain" yaml:"subdomain"`
	Zone      string `toml:"zone" json:"zone" yaml:"zone"`
}
