package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/mind-engage/suggestify/internal/rbac"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// PathEnvVar overrides the config file location.
const PathEnvVar = "CONFIG_PATH"

var DefaultPaths = []string{"config.yaml", "config.yml", "/etc/suggestify/config.yaml"}

type Config struct {
	Mode      Mode   `koanf:"mode"`
	HTTPAddr  string `koanf:"http_addr"`
	PublicURL string `koanf:"public_url"`

	DBDriver string `koanf:"db_driver"` // sqlite|postgres
	DBDSN    string `koanf:"db_dsn"`

	BlobBasePath string `koanf:"blob_base_path"`

	// CatalogCSV seeds the show table at start-up; empty means load from the DB.
	CatalogCSV     string `koanf:"catalog_csv"`
	CatalogMatcher string `koanf:"catalog_matcher"` // substring|token
	RecommendLimit int    `koanf:"recommend_limit"`

	// QuizBatteryPath points at a JSON battery; empty uses the built-in quiz.
	QuizBatteryPath string `koanf:"quiz_battery_path"`

	EnableAdmin    bool   `koanf:"enable_admin"`
	AdminUser      string `koanf:"admin_user"`
	AdminPassHash  string `koanf:"admin_pass_hash"` // bcrypt
	AdminRole      string `koanf:"admin_role"`      // admin|operator
	AuthHMACSecret string `koanf:"auth_hmac_secret"`

	CORSOriginsOnline  []string `koanf:"cors_origins_online"`
	CORSOriginsOffline []string `koanf:"cors_origins_offline"`

	RateLimitPerMinute int `koanf:"rate_limit_per_minute"` // 0 disables

	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`
}

func Default() Config {
	return Config{
		Mode:               ModeOffline,
		HTTPAddr:           ":5000",
		DBDriver:           "sqlite",
		BlobBasePath:       "./data",
		CatalogMatcher:     "substring",
		RecommendLimit:     5,
		EnableAdmin:        true,
		AdminUser:          "admin",
		AdminRole:          "admin",
		AuthHMACSecret:     "supersecret-dev-key",
		CORSOriginsOnline:  []string{"https://suggestify.example.com"},
		CORSOriginsOffline: []string{"http://localhost:3000", "http://localhost:5500", "http://127.0.0.1:5500"},
		RateLimitPerMinute: 120,
		LogLevel:           "info",
		LogFormat:          "json",
	}
}

// Load layers defaults, an optional YAML file and the environment, in that
// order. An explicit path that does not exist is an error; the default
// locations are only used when present.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	} else if _, err := os.Stat(path); err != nil {
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}
	if err := splitSliceFields(k); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	switch c.Mode {
	case ModeOffline, ModeOnline:
	default:
		errs = append(errs, fmt.Errorf("mode must be offline or online, got %q", c.Mode))
	}
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("unsupported db_driver %q", c.DBDriver))
	}
	switch c.CatalogMatcher {
	case "substring", "token":
	default:
		errs = append(errs, fmt.Errorf("unsupported catalog_matcher %q", c.CatalogMatcher))
	}
	if c.RecommendLimit <= 0 {
		errs = append(errs, errors.New("recommend_limit must be positive"))
	}
	if c.RateLimitPerMinute < 0 {
		errs = append(errs, errors.New("rate_limit_per_minute must not be negative"))
	}
	if _, ok := rbac.RolePermissions[c.AdminRole]; c.EnableAdmin && !ok {
		errs = append(errs, fmt.Errorf("unknown admin_role %q", c.AdminRole))
	}
	if c.EnableAdmin && c.AuthHMACSecret == "" {
		errs = append(errs, errors.New("auth_hmac_secret required when admin is enabled"))
	}
	if c.Mode == ModeOnline && c.EnableAdmin && c.AuthHMACSecret == Default().AuthHMACSecret {
		errs = append(errs, errors.New("auth_hmac_secret must be changed in online mode"))
	}
	return errors.Join(errs...)
}

// CORSOrigins returns the origin list for the active mode.
func (c Config) CORSOrigins() []string {
	if c.Mode == ModeOnline {
		return c.CORSOriginsOnline
	}
	return c.CORSOriginsOffline
}

func findConfigFile() string {
	if p := os.Getenv(PathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

var envKeys = func() map[string]struct{} {
	out := map[string]struct{}{}
	t := reflect.TypeOf(Config{})
	for i := 0; i < t.NumField(); i++ {
		if tag := t.Field(i).Tag.Get("koanf"); tag != "" {
			out[tag] = struct{}{}
		}
	}
	return out
}()

// envKey maps HTTP_ADDR style variables onto config keys and drops the rest.
func envKey(s string) string {
	k := strings.ToLower(s)
	if _, ok := envKeys[k]; ok {
		return k
	}
	return ""
}

var sliceKeys = []string{"cors_origins_online", "cors_origins_offline"}

// splitSliceFields turns comma separated env values into string slices.
func splitSliceFields(k *koanf.Koanf) error {
	for _, key := range sliceKeys {
		s, ok := k.Get(key).(string)
		if !ok {
			continue
		}
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if err := k.Set(key, out); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
	}
	return nil
}
