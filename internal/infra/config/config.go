package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultConfigFile = "otmget.yaml"
	DefaultBaseURL    = "https://garmin.opentopomap.org"
	DefaultWorkers    = 4
	DefaultChunkSize  = 1024 * 1024
)

// BaseCamp answers for European records
const (
	BaseCampAsk = "ask"
	BaseCampYes = "yes"
	BaseCampNo  = "no"
)

type Config struct {
	Catalog  CatalogConfig  `mapstructure:"catalog" yaml:"catalog"`
	Download DownloadConfig `mapstructure:"download" yaml:"download"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

type CatalogConfig struct {
	BaseURL string        `mapstructure:"base_url" yaml:"base_url"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

type DownloadConfig struct {
	OutDir    string `mapstructure:"out_dir" yaml:"out_dir"`
	Workers   int    `mapstructure:"workers" yaml:"workers"`
	ChunkSize int    `mapstructure:"chunk_size" yaml:"chunk_size"`
	BaseCamp  string `mapstructure:"basecamp" yaml:"basecamp"`
}

type LogConfig struct {
	Path          string `mapstructure:"path" yaml:"path"`
	Level         string `mapstructure:"level" yaml:"level"`
	IncludeStdout bool   `mapstructure:"include_stdout" yaml:"include_stdout"`
}

// New returns a viper instance with defaults and env overrides set up.
// Callers may bind flags to it before passing it to Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("catalog.base_url", DefaultBaseURL)
	v.SetDefault("catalog.timeout", 30*time.Second)
	v.SetDefault("download.out_dir", "")
	v.SetDefault("download.workers", DefaultWorkers)
	v.SetDefault("download.chunk_size", DefaultChunkSize)
	v.SetDefault("download.basecamp", BaseCampAsk)
	v.SetDefault("log.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.include_stdout", true)

	// Support Environment Variables
	v.SetEnvPrefix("OTMGET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads path into a fresh viper instance. See LoadWith.
func Load(path string) (*Config, error) {
	return LoadWith(New(), path)
}

// LoadWith reads the YAML file at path (if any) into v and returns the
// validated Config. An empty path looks for otmget.yaml in the working
// directory and silently falls back to defaults when it is missing.
func LoadWith(v *viper.Viper, path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	c.Catalog.BaseURL = strings.TrimRight(strings.TrimSpace(c.Catalog.BaseURL), "/")
	if c.Catalog.BaseURL == "" {
		return errors.New("catalog.base_url is required")
	}

	u, err := url.Parse(c.Catalog.BaseURL)
	if err != nil {
		return fmt.Errorf("catalog.base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("catalog.base_url must be an http(s) URL, got %q", c.Catalog.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("catalog.base_url has no host: %q", c.Catalog.BaseURL)
	}

	if c.Catalog.Timeout < 0 {
		c.Catalog.Timeout = 0
	}

	if c.Download.Workers <= 0 {
		// Default to a sane value
		c.Download.Workers = DefaultWorkers
	}

	if c.Download.ChunkSize <= 0 {
		c.Download.ChunkSize = DefaultChunkSize
	}

	c.Download.BaseCamp = strings.ToLower(strings.TrimSpace(c.Download.BaseCamp))
	switch c.Download.BaseCamp {
	case "":
		c.Download.BaseCamp = BaseCampAsk
	case BaseCampAsk, BaseCampYes, BaseCampNo:
	default:
		return fmt.Errorf("download.basecamp must be one of ask, yes, no; got %q", c.Download.BaseCamp)
	}

	return nil
}
