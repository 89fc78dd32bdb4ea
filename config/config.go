package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"locator/internal/domain/entity"
	"locator/internal/domain/lifecycle"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"

	defaultDirectionsBaseURL = "https://api.mapbox.com"
	defaultDirectionsProfile = "mapbox/driving"
	defaultGeometries        = "geojson"
	DefaultMaxFixAge         = 30 * time.Second
	defaultSnapshotKey       = "locator:catalog:snapshot"
	defaultViewportPadding   = 50
	defaultAccessTokenTTL    = 12 * time.Hour

	PlatformProviderStatic   = "static"
	PlatformProviderReported = "reported"

	SnapshotProviderMemory   = "memory"
	SnapshotProviderPostgres = "postgres"
	SnapshotProviderRedis    = "redis"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	SecretKey struct {
		Access    string        `json:"access" yaml:"access"`
		AccessTTL time.Duration `json:"accessTtl" yaml:"accessTtl"`
	} `json:"secretKey" yaml:"secretKey"`

	// Directions service used by the route resolver
	Directions *DirectionsConfig `json:"directions" yaml:"directions"`

	// Clinic directory service
	Directory *DirectoryConfig `json:"directory" yaml:"directory"`

	// Platform location/permission service
	Platform *PlatformConfig `json:"platform" yaml:"platform"`

	Catalog *CatalogConfig `json:"catalog" yaml:"catalog"`

	Viewport *ViewportConfig `json:"viewport" yaml:"viewport"`

	// Snapshot store for the last good clinic catalog
	Snapshot *SnapshotConfig `json:"snapshot" yaml:"snapshot"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// DirectionsConfig defines the Mapbox-compatible directions service
type DirectionsConfig struct {
	BaseURL     string `json:"baseUrl" yaml:"baseUrl"`
	AccessToken string `json:"accessToken" yaml:"accessToken"`

	// Routing profile, e.g. "mapbox/driving"
	Profile string `json:"profile" yaml:"profile"`

	// Geometry encoding: geojson, polyline or polyline6
	Geometries string `json:"geometries" yaml:"geometries"`

	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// DirectoryConfig defines the clinic directory service
type DirectoryConfig struct {
	URL     string        `json:"url" yaml:"url"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// PlatformConfig defines where permission answers and position fixes come from
type PlatformConfig struct {
	// Provider type: "static" for a configured device or "reported" for client-reported fixes
	Provider string `json:"provider" yaml:"provider"`

	Static StaticPlatformConfig `json:"static" yaml:"static"`

	PromptTimeout   time.Duration `json:"promptTimeout" yaml:"promptTimeout"`
	LocationTimeout time.Duration `json:"locationTimeout" yaml:"locationTimeout"`

	// Oldest reported fix a position request accepts
	MaxFixAge time.Duration `json:"maxFixAge" yaml:"maxFixAge"`
}

// StaticPlatformConfig is the fixed device used by the static provider
type StaticPlatformConfig struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
	Granted   bool    `json:"granted" yaml:"granted"`
}

// CatalogConfig defines clinic catalog behaviour
type CatalogConfig struct {
	FetchTimeout time.Duration `json:"fetchTimeout" yaml:"fetchTimeout"`
}

// ViewportConfig defines the padding applied to fitted camera regions
type ViewportConfig struct {
	Padding entity.Padding `json:"padding" yaml:"padding"`
}

// SnapshotConfig defines the catalog snapshot store
type SnapshotConfig struct {
	// Provider type: "memory", "postgres" or "redis"
	Provider string `json:"provider" yaml:"provider"`

	Postgres *PostgresConfig `json:"postgres" yaml:"postgres"`
	Redis    *RedisConfig    `json:"redis" yaml:"redis"`
}

// PostgresConfig defines the gorm connection for the postgres snapshot store
type PostgresConfig struct {
	DSN             string        `json:"dsn" yaml:"dsn"`
	MaxIdleConns    int           `json:"maxIdleConns" yaml:"maxIdleConns"`
	MaxOpenConns    int           `json:"maxOpenConns" yaml:"maxOpenConns"`
	ConnMaxLifetime time.Duration `json:"connMaxLifetime" yaml:"connMaxLifetime"`
}

// RedisConfig defines the redis snapshot store
type RedisConfig struct {
	Addr     string        `json:"addr" yaml:"addr"`
	Password string        `json:"password" yaml:"password"`
	DB       int           `json:"db" yaml:"db"`
	Key      string        `json:"key" yaml:"key"`
	TTL      time.Duration `json:"ttl" yaml:"ttl"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile == "" {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Example: DIRECTIONS_ACCESSTOKEN -> directions.accessToken
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Case-insensitive to match env vars
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	return cfg, nil
}

// applyDefaults fills every missing section so consumers never see a nil section
func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if cfg.SecretKey.AccessTTL <= 0 {
		cfg.SecretKey.AccessTTL = defaultAccessTokenTTL
	}

	if cfg.Directions == nil {
		cfg.Directions = &DirectionsConfig{}
	}
	if cfg.Directions.BaseURL == "" {
		cfg.Directions.BaseURL = defaultDirectionsBaseURL
	}
	if cfg.Directions.Profile == "" {
		cfg.Directions.Profile = defaultDirectionsProfile
	}
	if cfg.Directions.Geometries == "" {
		cfg.Directions.Geometries = defaultGeometries
	}
	if cfg.Directions.Timeout <= 0 {
		cfg.Directions.Timeout = lifecycle.DefaultExternalCallTimeout
	}

	if cfg.Directory == nil {
		cfg.Directory = &DirectoryConfig{}
	}
	if cfg.Directory.Timeout <= 0 {
		cfg.Directory.Timeout = lifecycle.DefaultExternalCallTimeout
	}

	if cfg.Platform == nil {
		cfg.Platform = &PlatformConfig{}
	}
	if cfg.Platform.Provider == "" {
		cfg.Platform.Provider = PlatformProviderReported
	}
	if cfg.Platform.PromptTimeout <= 0 {
		cfg.Platform.PromptTimeout = lifecycle.DefaultExternalCallTimeout
	}
	if cfg.Platform.LocationTimeout <= 0 {
		cfg.Platform.LocationTimeout = lifecycle.DefaultExternalCallTimeout
	}
	if cfg.Platform.MaxFixAge <= 0 {
		cfg.Platform.MaxFixAge = DefaultMaxFixAge
	}

	if cfg.Catalog == nil {
		cfg.Catalog = &CatalogConfig{}
	}
	if cfg.Catalog.FetchTimeout <= 0 {
		cfg.Catalog.FetchTimeout = lifecycle.DefaultExternalCallTimeout
	}

	if cfg.Viewport == nil {
		cfg.Viewport = &ViewportConfig{
			Padding: entity.Padding{
				Top:    defaultViewportPadding,
				Right:  defaultViewportPadding,
				Bottom: defaultViewportPadding,
				Left:   defaultViewportPadding,
			},
		}
	}

	if cfg.Snapshot == nil {
		cfg.Snapshot = &SnapshotConfig{}
	}
	if cfg.Snapshot.Provider == "" {
		cfg.Snapshot.Provider = SnapshotProviderMemory
	}
	if cfg.Snapshot.Redis != nil && cfg.Snapshot.Redis.Key == "" {
		cfg.Snapshot.Redis.Key = defaultSnapshotKey
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
