package config

import "github.com/spf13/viper"

// setDefaults seeds every configuration key so unmarshalling always yields
// a complete Config even without a config file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("network", PubnetPassphrase)
	v.SetDefault("map_sac", true)
	v.SetDefault("process_system_events", true)
	v.SetDefault("sac_cache_size", 4096)
	v.SetDefault("parallelism", 0)
}
