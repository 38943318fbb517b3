package models

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"gitlab.com/ranfdev/sqadmin/internal/utils"
)

const (
	EnvPrefix     = "SQ_"
	ConfigPathEnv = "SQ_CONFIG_PATH"
)

type EnvConfig struct {
	DatabaseURL string `koanf:"database_url" validate:"required"`
	Port        string `koanf:"port" validate:"required,numeric"`
	Debug       bool   `koanf:"debug"`
	JWTSecret   string `koanf:"jwt_secret" validate:"required,min=16"`

	TrackerURL       string        `koanf:"tracker_url" validate:"required,url"`
	TrackerStatsPath string        `koanf:"tracker_stats_path" validate:"required,startswith=/"`
	TrackerTimeout   time.Duration `koanf:"tracker_timeout" validate:"gt=0,ltfield=RequestTimeout"`
	RequestTimeout   time.Duration `koanf:"request_timeout" validate:"gt=0"`

	ReportsPerMinute int      `koanf:"reports_per_minute" validate:"gte=1"`
	CORSOrigins      []string `koanf:"cors_origins"`
}

func defaultEnvConfig() EnvConfig {
	return EnvConfig{
		Port:             "23495",
		TrackerStatsPath: "/stats",
		TrackerTimeout:   2 * time.Second,
		RequestTimeout:   10 * time.Second,
		ReportsPerMinute: 5,
		CORSOrigins:      []string{"*"},
	}
}

// ReadEnvConfig layers defaults, an optional YAML file named by SQ_CONFIG_PATH
// and SQ_* environment variables, in that order of precedence.
func ReadEnvConfig() (EnvConfig, error) {
	k := koanf.New(".")

	defaults := defaultEnvConfig()
	if err := k.Load(structs.Provider(&defaults, "koanf"), nil); err != nil {
		return EnvConfig{}, fmt.Errorf("loading defaults: %w", err)
	}
	if path := os.Getenv(ConfigPathEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return EnvConfig{}, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return EnvConfig{}, fmt.Errorf("loading environment: %w", err)
	}

	// Lists arrive from the environment as comma separated strings.
	if raw, ok := k.Get("cors_origins").(string); ok {
		if err := k.Set("cors_origins", splitList(raw)); err != nil {
			return EnvConfig{}, fmt.Errorf("cors_origins: %w", err)
		}
	}

	var config EnvConfig
	if err := k.Unmarshal("", &config); err != nil {
		return EnvConfig{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := utils.Validate().Struct(config); err != nil {
		return EnvConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

func splitList(raw string) []string {
	list := []string{}
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
