package config

import (
	"sort"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/dkeye/greenroom/internal/core"
)

// Environment keys for the transport credentials. All three are required;
// absence of any one is a hard configuration failure.
const (
	EnvLiveKitHost      = "LIVEKIT_HOST"
	EnvLiveKitAPIKey    = "LIVEKIT_API_KEY"
	EnvLiveKitAPISecret = "LIVEKIT_API_SECRET"
)

type Config struct {
	Mode     string
	Port     int
	TokenTTL time.Duration

	LiveKitHost      string
	LiveKitAPIKey    string
	LiveKitAPISecret string
}

// Load reads configuration from the environment, with a best-effort .env
// file for local development. Missing required keys are collected and
// reported together, by name only.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("token_ttl", "6h")

	_ = v.BindEnv("mode", "MODE")
	_ = v.BindEnv("port", "PORT")
	_ = v.BindEnv("token_ttl", "TOKEN_TTL")
	_ = v.BindEnv("livekit_host", EnvLiveKitHost)
	_ = v.BindEnv("livekit_api_key", EnvLiveKitAPIKey)
	_ = v.BindEnv("livekit_api_secret", EnvLiveKitAPISecret)

	cfg := &Config{
		Mode:             v.GetString("mode"),
		Port:             v.GetInt("port"),
		TokenTTL:         v.GetDuration("token_ttl"),
		LiveKitHost:      v.GetString("livekit_host"),
		LiveKitAPIKey:    v.GetString("livekit_api_key"),
		LiveKitAPISecret: v.GetString("livekit_api_secret"),
	}

	var missing []string
	for key, val := range map[string]string{
		EnvLiveKitHost:      cfg.LiveKitHost,
		EnvLiveKitAPIKey:    cfg.LiveKitAPIKey,
		EnvLiveKitAPISecret: cfg.LiveKitAPISecret,
	} {
		if val == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &core.ConfigurationError{Keys: missing}
	}
	return cfg, nil
}
