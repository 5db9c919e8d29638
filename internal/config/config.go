package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DB           DBConfig           `mapstructure:"db"`
	JWT          JWTConfig          `mapstructure:"jwt"`
	Storage      StorageConfig      `mapstructure:"storage"`
	HTTP         HTTPConfig         `mapstructure:"http"`
	Log          LogConfig          `mapstructure:"log"`
	CORS         CORSConfig         `mapstructure:"cors"`
	Availability AvailabilityConfig `mapstructure:"availability"`
	AppHost      string             `mapstructure:"host"`
}

type DBConfig struct {
	Source string `mapstructure:"source"`
}

// JWTConfig describes how identity tokens issued by the auth provider are verified.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

type StorageConfig struct {
	Path           string        `mapstructure:"path"`
	Secret         string        `mapstructure:"secret"`
	URLTTL         time.Duration `mapstructure:"url_ttl"`
	UploadTTL      time.Duration `mapstructure:"upload_ttl"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes"`
	SweepSchedule  string        `mapstructure:"sweep_schedule"`
	OrphanGrace    time.Duration `mapstructure:"orphan_grace"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type AvailabilityConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", "http://localhost:8080")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("db.source", "")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "")
	v.SetDefault("storage.path", "./data/blobs")
	v.SetDefault("storage.secret", "")
	v.SetDefault("storage.url_ttl", 15*time.Minute)
	v.SetDefault("storage.upload_ttl", 10*time.Minute)
	v.SetDefault("storage.max_upload_bytes", int64(5<<20))
	v.SetDefault("storage.sweep_schedule", "@hourly")
	v.SetDefault("storage.orphan_grace", 24*time.Hour)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("availability.debounce", 500*time.Millisecond)
}

func Load() (*Config, error) {
	v := viper.New()
	v.AddConfigPath("./configs")
	v.AddConfigPath("/configs")
	v.SetConfigName("settings")
	v.SetConfigType("yml")

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// The blob signer falls back to the identity secret when no dedicated one is configured.
	if cfg.Storage.Secret == "" {
		cfg.Storage.Secret = cfg.JWT.Secret
	}

	return &cfg, nil
}
