package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the runtime configuration of the quotation service
type Config struct {
	App struct {
		Env string
	} `mapstructure:"app"`

	HTTP struct {
		Addr    string
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"http"`

	Storage struct {
		Driver  string // file | postgres | redis | memory
		SlotKey string `mapstructure:"slot_key"`
		FileDir string `mapstructure:"file_dir"`
	} `mapstructure:"storage"`

	Postgres struct {
		DSN string
	} `mapstructure:"postgres"`

	Redis struct {
		Addr     string
		Password string
		DB       int
	} `mapstructure:"redis"`

	Gemini struct {
		APIKey   string        `mapstructure:"api_key"`
		Model    string
		Endpoint string
		Timeout  time.Duration
	} `mapstructure:"gemini"`

	Chrome struct {
		Path    string
		Timeout time.Duration
	} `mapstructure:"chrome"`

	Google struct {
		Credentials string
	} `mapstructure:"google"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`
}

// DefaultSlotKey is the name of the persisted quotation slot
const DefaultSlotKey = "sofa-quotation-data"

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("http.addr", "0.0.0.0:8080")
	v.SetDefault("http.base_url", "")
	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.slot_key", DefaultSlotKey)
	v.SetDefault("storage.file_dir", "data")
	v.SetDefault("postgres.dsn", "")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-3-flash-preview")
	v.SetDefault("gemini.endpoint", "")
	v.SetDefault("gemini.timeout", 20*time.Second)
	v.SetDefault("chrome.path", "")
	v.SetDefault("chrome.timeout", 30*time.Second)
	v.SetDefault("google.credentials", "")
	v.SetDefault("metrics.enabled", true)
}

// Load reads the optional config file at path, then overlays QUOTE_* environment
// variables (QUOTE_HTTP_ADDR, QUOTE_STORAGE_DRIVER, ...) and the conventional
// unprefixed variables (API_KEY, GEMINI_API_KEY, CHROME_PATH, DATABASE_URL,
// GOOGLE_APPLICATION_CREDENTIALS, PORT).
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("QUOTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var c Config
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return c, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("failed to decode config: %w", err)
	}

	applyConventionalEnv(&c)
	return c, nil
}

func applyConventionalEnv(c *Config) {
	if c.Gemini.APIKey == "" {
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			c.Gemini.APIKey = key
		} else {
			c.Gemini.APIKey = os.Getenv("API_KEY")
		}
	}
	if c.Chrome.Path == "" {
		c.Chrome.Path = os.Getenv("CHROME_PATH")
	}
	if c.Postgres.DSN == "" {
		c.Postgres.DSN = os.Getenv("DATABASE_URL")
	}
	if c.Google.Credentials == "" {
		c.Google.Credentials = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	}
	// PORT from the hosting platform does not include the colon
	if port := strings.TrimPrefix(os.Getenv("PORT"), ":"); port != "" {
		c.HTTP.Addr = "0.0.0.0:" + port
	}
}

// IsProduction reports whether the service runs with production settings
func (c Config) IsProduction() bool {
	return c.App.Env == "production"
}

// PublicURL is the address clients use to reach the API. It is http.base_url
// when set, otherwise derived from the listen address.
func (c Config) PublicURL() string {
	if base := strings.TrimRight(strings.TrimSpace(c.HTTP.BaseURL), "/"); base != "" {
		return base
	}
	return "http://" + strings.Replace(c.HTTP.Addr, "0.0.0.0", "localhost", 1)
}
