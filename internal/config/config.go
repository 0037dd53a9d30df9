package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the price bot.
type Config struct {
	// Chat platform credential. Without it nothing can be delivered.
	TelegramBotToken string `mapstructure:"telegram_bot_token"`

	// Instrument quoted by the price command. Both must be set for the
	// command to answer; the bot tells the user otherwise.
	DefaultDexChain    string `mapstructure:"default_dex_chain"`
	DefaultDexContract string `mapstructure:"default_dex_contract"`

	// Base URLs for upstream APIs (configurable for testing)
	DexScreenerBaseURL string `mapstructure:"dexscreener_base_url"`
	CoinStatsBaseURL   string `mapstructure:"coinstats_base_url"`

	// Upstream fetch tuning.
	RequestTimeoutSec int `mapstructure:"request_timeout_sec"`
	MaxAttempts       int `mapstructure:"max_attempts"`

	// Temporal state tuning.
	CacheTTLSec           int `mapstructure:"cache_ttl_sec"`
	CommandCooldownSec    int `mapstructure:"command_cooldown_sec"`
	CooldownMaxRequesters int `mapstructure:"cooldown_max_requesters"`

	// HTTP frontend.
	Port int `mapstructure:"port"`
}

// RequestTimeout bounds each upstream call, independent of backoff.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

// CacheTTL is how long a fetched quote is served without refetching.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSec) * time.Second
}

// CommandCooldown is the minimum spacing between commands per chat.
func (c *Config) CommandCooldown() time.Duration {
	return time.Duration(c.CommandCooldownSec) * time.Second
}

// Load reads configuration from environment variables and an optional
// config file. Environment variables take precedence over config file
// values.
//
// Expected environment variables:
//   - TELEGRAM_BOT_TOKEN (required)
//   - DEFAULT_DEX_CHAIN, DEFAULT_DEX_CONTRACT
//   - DEXSCREENER_BASE_URL (optional, defaults to production)
//   - COINSTATS_BASE_URL (optional, defaults to production)
//   - REQUEST_TIMEOUT_SEC, MAX_ATTEMPTS
//   - CACHE_TTL_SEC, COMMAND_COOLDOWN_SEC, COOLDOWN_MAX_REQUESTERS
//   - PORT
func Load() (*Config, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.SetDefault("dexscreener_base_url", "https://api.dexscreener.com/latest/dex")
	v.SetDefault("coinstats_base_url", "https://api.sendcoin.markets")
	v.SetDefault("request_timeout_sec", 15)
	v.SetDefault("max_attempts", 3)
	v.SetDefault("cache_ttl_sec", 20)
	v.SetDefault("command_cooldown_sec", 30)
	v.SetDefault("cooldown_max_requesters", 10_000)
	v.SetDefault("port", 8080)

	// Optionally read from config file if it exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.BindEnv("telegram_bot_token", "TELEGRAM_BOT_TOKEN")
	v.BindEnv("default_dex_chain", "DEFAULT_DEX_CHAIN")
	v.BindEnv("default_dex_contract", "DEFAULT_DEX_CONTRACT")
	v.BindEnv("dexscreener_base_url", "DEXSCREENER_BASE_URL")
	v.BindEnv("coinstats_base_url", "COINSTATS_BASE_URL")
	v.BindEnv("request_timeout_sec", "REQUEST_TIMEOUT_SEC")
	v.BindEnv("max_attempts", "MAX_ATTEMPTS")
	v.BindEnv("cache_ttl_sec", "CACHE_TTL_SEC")
	v.BindEnv("command_cooldown_sec", "COMMAND_COOLDOWN_SEC")
	v.BindEnv("cooldown_max_requesters", "COOLDOWN_MAX_REQUESTERS")
	v.BindEnv("port", "PORT")

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var missing []string
	if config.TelegramBotToken == "" {
		missing = append(missing, "TELEGRAM_BOT_TOKEN")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	return config, nil
}
