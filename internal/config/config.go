// Package config holds runtime configuration for the effects analyzer.
package config

import "fmt"

// Well-known network passphrases.
const (
	PubnetPassphrase  = "Public Global Stellar Network ; September 2015"
	TestnetPassphrase = "Test SDF Network ; September 2015"
)

// Config is the complete analyzer configuration, assembled from defaults,
// an optional config file and environment variables.
type Config struct {
	// Network is the network passphrase used for contract-id derivation.
	Network string `mapstructure:"network"`

	// MapSac keeps an asset/contract map so token events of asset
	// contracts resolve to their classic asset.
	MapSac bool `mapstructure:"map_sac"`

	// ProcessSystemEvents enables interpretation of diagnostic events when
	// the input carries them.
	ProcessSystemEvents bool `mapstructure:"process_system_events"`

	// SacCacheSize bounds the asset/contract map, entries per direction.
	SacCacheSize int `mapstructure:"sac_cache_size"`

	// Parallelism caps concurrent operation analysis. Zero means one
	// worker per CPU.
	Parallelism int `mapstructure:"parallelism"`
}

// Validate checks the configuration for values no component can work with.
func Validate(cfg *Config) error {
	if cfg.Network == "" {
		return fmt.Errorf("network passphrase cannot be empty")
	}
	if cfg.SacCacheSize < 0 {
		return fmt.Errorf("sac_cache_size cannot be negative: %d", cfg.SacCacheSize)
	}
	if cfg.Parallelism < 0 {
		return fmt.Errorf("parallelism cannot be negative: %d", cfg.Parallelism)
	}
	return nil
}
