package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides.
const EnvPrefix = "TOOLCATALOG"

// Store and favorites drivers.
const (
	DriverMemory = "memory"
	DriverBolt   = "bolt"
	DriverMongo  = "mongo"
)

// Config is the validated runtime configuration.
type Config struct {
	Remote        RemoteConfig
	Server        ServerConfig
	Store         StoreConfig
	Favorites     FavoritesConfig
	Search        SearchConfig
	MCP           MCPConfig
	Observability ObservabilityConfig
	Log           LogConfig
}

// RemoteConfig locates the tool configuration service. An empty BaseURL
// means the builder reads the local store directly.
type RemoteConfig struct {
	BaseURL     string
	Token       string
	TokenEnv    string
	Timeout     time.Duration
	MaxAttempts int
	RetryDelay  time.Duration
}

type ServerConfig struct {
	ListenAddress string
	AdminToken    string
	PremiumToken  string
}

type StoreConfig struct {
	Driver string
	Path   string
	Seed   string
	Mongo  MongoConfig
}

type MongoConfig struct {
	URI          string
	Database     string
	Collection   string
	QueryTimeout time.Duration
}

type FavoritesConfig struct {
	Driver string
	Path   string
}

type SearchConfig struct {
	NameBoost     float64
	CategoryBoost float64
	MaxDocs       int
}

type MCPConfig struct {
	Name         string
	Version      string
	AllowPremium bool
}

type ObservabilityConfig struct {
	Metrics bool
	Healthz bool
}

type LogConfig struct {
	Level       string
	Development bool
}

type rawConfig struct {
	Remote struct {
		BaseURL          string `mapstructure:"baseURL"`
		Token            string `mapstructure:"token"`
		TokenEnv         string `mapstructure:"tokenEnv"`
		TimeoutSeconds   int    `mapstructure:"timeoutSeconds"`
		MaxAttempts      int    `mapstructure:"maxAttempts"`
		RetryDelayMillis int    `mapstructure:"retryDelayMillis"`
	} `mapstructure:"remote"`
	Server struct {
		ListenAddress string `mapstructure:"listenAddress"`
		AdminToken    string `mapstructure:"adminToken"`
		PremiumToken  string `mapstructure:"premiumToken"`
	} `mapstructure:"server"`
	Store struct {
		Driver string `mapstructure:"driver"`
		Path   string `mapstructure:"path"`
		Seed   string `mapstructure:"seed"`
		Mongo  struct {
			URI                 string `mapstructure:"uri"`
			Database            string `mapstructure:"database"`
			Collection          string `mapstructure:"collection"`
			QueryTimeoutSeconds int    `mapstructure:"queryTimeoutSeconds"`
		} `mapstructure:"mongo"`
	} `mapstructure:"store"`
	Favorites struct {
		Driver string `mapstructure:"driver"`
		Path   string `mapstructure:"path"`
	} `mapstructure:"favorites"`
	Search struct {
		NameBoost     float64 `mapstructure:"nameBoost"`
		CategoryBoost float64 `mapstructure:"categoryBoost"`
		MaxDocs       int     `mapstructure:"maxDocs"`
	} `mapstructure:"search"`
	MCP struct {
		Name         string `mapstructure:"name"`
		Version      string `mapstructure:"version"`
		AllowPremium bool   `mapstructure:"allowPremium"`
	} `mapstructure:"mcp"`
	Observability struct {
		Metrics bool `mapstructure:"metrics"`
		Healthz bool `mapstructure:"healthz"`
	} `mapstructure:"observability"`
	Log struct {
		Level       string `mapstructure:"level"`
		Development bool   `mapstructure:"development"`
	} `mapstructure:"log"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("remote.baseURL", "")
	v.SetDefault("remote.token", "")
	v.SetDefault("remote.tokenEnv", "")
	v.SetDefault("remote.timeoutSeconds", 10)
	v.SetDefault("remote.maxAttempts", 1)
	v.SetDefault("remote.retryDelayMillis", 200)
	v.SetDefault("server.listenAddress", "127.0.0.1:8080")
	v.SetDefault("server.adminToken", "")
	v.SetDefault("server.premiumToken", "")
	v.SetDefault("store.driver", DriverMemory)
	v.SetDefault("store.path", "")
	v.SetDefault("store.seed", "")
	v.SetDefault("store.mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("store.mongo.database", "it_tools")
	v.SetDefault("store.mongo.collection", "tools")
	v.SetDefault("store.mongo.queryTimeoutSeconds", 5)
	v.SetDefault("favorites.driver", DriverMemory)
	v.SetDefault("favorites.path", "")
	v.SetDefault("search.nameBoost", 3)
	v.SetDefault("search.categoryBoost", 2)
	v.SetDefault("search.maxDocs", 0)
	v.SetDefault("mcp.name", "toolcatalog")
	v.SetDefault("mcp.version", "0.1.0")
	v.SetDefault("mcp.allowPremium", false)
	v.SetDefault("observability.metrics", true)
	v.SetDefault("observability.healthz", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}

// Load reads the YAML file at path, applies environment overrides and
// validates the result. An empty path loads defaults and environment only.
func Load(path string) (Config, error) {
	v := newViper()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	var raw rawConfig
	if err := v.Unmarshal(&raw); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	cfg, errs := normalize(raw)
	if len(errs) > 0 {
		return Config{}, errors.New(strings.Join(errs, "; "))
	}
	return cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("default config is invalid: %v", err))
	}
	return cfg
}

func normalize(raw rawConfig) (Config, []string) {
	var errs []string

	cfg := Config{
		Remote: RemoteConfig{
			BaseURL:     strings.TrimRight(strings.TrimSpace(raw.Remote.BaseURL), "/"),
			Token:       raw.Remote.Token,
			TokenEnv:    strings.TrimSpace(raw.Remote.TokenEnv),
			Timeout:     time.Duration(raw.Remote.TimeoutSeconds) * time.Second,
			MaxAttempts: raw.Remote.MaxAttempts,
			RetryDelay:  time.Duration(raw.Remote.RetryDelayMillis) * time.Millisecond,
		},
		Server: ServerConfig{
			ListenAddress: strings.TrimSpace(raw.Server.ListenAddress),
			AdminToken:    raw.Server.AdminToken,
			PremiumToken:  raw.Server.PremiumToken,
		},
		Store: StoreConfig{
			Driver: strings.ToLower(strings.TrimSpace(raw.Store.Driver)),
			Path:   strings.TrimSpace(raw.Store.Path),
			Seed:   strings.TrimSpace(raw.Store.Seed),
			Mongo: MongoConfig{
				URI:          strings.TrimSpace(raw.Store.Mongo.URI),
				Database:     strings.TrimSpace(raw.Store.Mongo.Database),
				Collection:   strings.TrimSpace(raw.Store.Mongo.Collection),
				QueryTimeout: time.Duration(raw.Store.Mongo.QueryTimeoutSeconds) * time.Second,
			},
		},
		Favorites: FavoritesConfig{
			Driver: strings.ToLower(strings.TrimSpace(raw.Favorites.Driver)),
			Path:   strings.TrimSpace(raw.Favorites.Path),
		},
		Search: SearchConfig{
			NameBoost:     raw.Search.NameBoost,
			CategoryBoost: raw.Search.CategoryBoost,
			MaxDocs:       raw.Search.MaxDocs,
		},
		MCP: MCPConfig{
			Name:         strings.TrimSpace(raw.MCP.Name),
			Version:      strings.TrimSpace(raw.MCP.Version),
			AllowPremium: raw.MCP.AllowPremium,
		},
		Observability: ObservabilityConfig{
			Metrics: raw.Observability.Metrics,
			Healthz: raw.Observability.Healthz,
		},
		Log: LogConfig{
			Level:       strings.ToLower(strings.TrimSpace(raw.Log.Level)),
			Development: raw.Log.Development,
		},
	}

	if cfg.Remote.BaseURL != "" && !strings.HasPrefix(cfg.Remote.BaseURL, "http://") && !strings.HasPrefix(cfg.Remote.BaseURL, "https://") {
		errs = append(errs, "remote.baseURL must be an http(s) URL")
	}
	if raw.Remote.TimeoutSeconds < 0 {
		errs = append(errs, "remote.timeoutSeconds must be >= 0")
	}
	if cfg.Remote.MaxAttempts < 1 {
		errs = append(errs, "remote.maxAttempts must be >= 1")
	}
	if raw.Remote.RetryDelayMillis < 0 {
		errs = append(errs, "remote.retryDelayMillis must be >= 0")
	}
	if cfg.Server.ListenAddress == "" {
		errs = append(errs, "server.listenAddress is required")
	}

	switch cfg.Store.Driver {
	case DriverMemory:
	case DriverBolt:
		if cfg.Store.Path == "" {
			errs = append(errs, "store.path is required for the bolt driver")
		}
	case DriverMongo:
		if cfg.Store.Mongo.URI == "" {
			errs = append(errs, "store.mongo.uri is required for the mongo driver")
		}
		if cfg.Store.Mongo.QueryTimeout <= 0 {
			errs = append(errs, "store.mongo.queryTimeoutSeconds must be > 0")
		}
	default:
		errs = append(errs, fmt.Sprintf("store.driver %q is not one of memory, bolt, mongo", cfg.Store.Driver))
	}

	switch cfg.Favorites.Driver {
	case DriverMemory:
	case DriverBolt:
		if cfg.Favorites.Path == "" {
			errs = append(errs, "favorites.path is required for the bolt driver")
		}
	default:
		errs = append(errs, fmt.Sprintf("favorites.driver %q is not one of memory, bolt", cfg.Favorites.Driver))
	}

	if cfg.Search.NameBoost < 0 || cfg.Search.CategoryBoost < 0 {
		errs = append(errs, "search boosts must be >= 0")
	}
	if cfg.MCP.Name == "" {
		errs = append(errs, "mcp.name is required")
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level %q is not one of debug, info, warn, error", cfg.Log.Level))
	}

	return cfg, errs
}

// RemoteToken resolves the bearer token for the configuration service.
// A literal token wins over TokenEnv.
func (c RemoteConfig) RemoteToken() string {
	if c.Token != "" {
		return c.Token
	}
	if c.TokenEnv != "" {
		return os.Getenv(c.TokenEnv)
	}
	return ""
}
