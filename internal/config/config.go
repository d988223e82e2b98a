// Package config loads customerctl settings from file, environment and
// defaults.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/goliatone/go-customer-directory/cache"
)

// Config holds runtime settings for the customerctl CLI.
type Config struct {
	API   APIConfig
	Cache cache.Config
}

// APIConfig points at the remote customer store.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// Load reads config.yaml from path (current directory when empty). A missing
// file is fine: defaults apply and CUSTOMERCTL_* environment variables
// override everything, e.g. CUSTOMERCTL_API_BASE_URL.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if path != "" {
		v.AddConfigPath(path)
	} else {
		v.AddConfigPath(".")
	}

	defaults := cache.DefaultConfig()
	v.SetDefault("api.base_url", "http://127.0.0.1:8080")
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("cache.capacity", defaults.Capacity)
	v.SetDefault("cache.num_shards", defaults.NumShards)
	v.SetDefault("cache.ttl", defaults.TTL.String())
	v.SetDefault("cache.eviction_percentage", defaults.EvictionPercentage)
	v.SetDefault("cache.missing_record_storage", defaults.MissingRecordStorage)
	v.SetDefault("cache.eviction_interval", defaults.EvictionInterval.String())
	v.SetDefault("cache.early_refresh.enabled", defaults.EarlyRefresh != nil)
	if defaults.EarlyRefresh != nil {
		v.SetDefault("cache.early_refresh.min_async_refresh_time", defaults.EarlyRefresh.MinAsyncRefreshTime.String())
		v.SetDefault("cache.early_refresh.max_async_refresh_time", defaults.EarlyRefresh.MaxAsyncRefreshTime.String())
		v.SetDefault("cache.early_refresh.sync_refresh_time", defaults.EarlyRefresh.SyncRefreshTime.String())
		v.SetDefault("cache.early_refresh.retry_base_delay", defaults.EarlyRefresh.RetryBaseDelay.String())
	}

	v.SetEnvPrefix("CUSTOMERCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	var early *cache.EarlyRefreshConfig
	if v.GetBool("cache.early_refresh.enabled") {
		early = &cache.EarlyRefreshConfig{
			MinAsyncRefreshTime: v.GetDuration("cache.early_refresh.min_async_refresh_time"),
			MaxAsyncRefreshTime: v.GetDuration("cache.early_refresh.max_async_refresh_time"),
			SyncRefreshTime:     v.GetDuration("cache.early_refresh.sync_refresh_time"),
			RetryBaseDelay:      v.GetDuration("cache.early_refresh.retry_base_delay"),
		}
	}

	cfg := Config{
		API: APIConfig{
			BaseURL: v.GetString("api.base_url"),
			Timeout: v.GetDuration("api.timeout"),
		},
		Cache: cache.Config{
			Capacity:             v.GetInt("cache.capacity"),
			NumShards:            v.GetInt("cache.num_shards"),
			TTL:                  v.GetDuration("cache.ttl"),
			EvictionPercentage:   v.GetInt("cache.eviction_percentage"),
			EarlyRefresh:         early,
			MissingRecordStorage: v.GetBool("cache.missing_record_storage"),
			EvictionInterval:     v.GetDuration("cache.eviction_interval"),
		},
	}

	if err := cfg.Cache.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
