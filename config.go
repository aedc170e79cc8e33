package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configFileName = ".soranarc"
	envPrefix      = "SORANA"
)

var defaultSlides = []string{
	"images/satellite.png",
	"images/www.png",
	"images/aaron.png",
	"images/iran.png",
	"images/web3.png",
}

type Config struct {
	APIBaseURL        string
	LogLevel          string
	LogsDir           string
	CounterInterval   time.Duration
	CounterTimeout    time.Duration
	SlideshowInterval time.Duration
	SlideshowFade     time.Duration
	SlideshowImages   []string
	FrameInterval     time.Duration
	ExportDirectory   string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("apiBaseUrl", "https://api.sorana.io")
	v.SetDefault("logLevel", "info")
	v.SetDefault("logsDir", "~/.sorana/logs")

	v.SetDefault("counter.interval", "5s")
	v.SetDefault("counter.timeout", "4s")

	v.SetDefault("slideshow.interval", "5s")
	v.SetDefault("slideshow.fade", "1s")
	v.SetDefault("slideshow.images", strings.Join(defaultSlides, ","))

	v.SetDefault("frame.interval", "33ms")
	v.SetDefault("exportDirectory", "")
}

// loadConfig reads the config file at path, or ~/.soranarc when path is
// empty. A missing default file is not an error; every key falls back to its
// default and can be overridden with SORANA_* environment variables.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	homeDir, _ := os.UserHomeDir()

	explicit := path != ""
	if !explicit && homeDir != "" {
		path = filepath.Join(homeDir, configFileName)
	}
	if path != "" {
		v.SetConfigFile(path)
		if filepath.Ext(path) == "" || filepath.Base(path) == configFileName {
			v.SetConfigType("yaml")
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
			if explicit || !missing {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	return fromViper(v, homeDir), nil
}

func fromViper(v *viper.Viper, homeDir string) *Config {
	return &Config{
		APIBaseURL:        strings.TrimRight(v.GetString("apiBaseUrl"), "/"),
		LogLevel:          v.GetString("logLevel"),
		LogsDir:           expandPath(homeDir, v.GetString("logsDir")),
		CounterInterval:   v.GetDuration("counter.interval"),
		CounterTimeout:    v.GetDuration("counter.timeout"),
		SlideshowInterval: v.GetDuration("slideshow.interval"),
		SlideshowFade:     v.GetDuration("slideshow.fade"),
		SlideshowImages:   splitList(v.Get("slideshow.images")),
		FrameInterval:     v.GetDuration("frame.interval"),
		ExportDirectory:   expandPath(homeDir, v.GetString("exportDirectory")),
	}
}

// splitList accepts either a YAML list or a comma separated string, which
// is how the value arrives from the environment.
func splitList(raw any) []string {
	var items []string
	switch val := raw.(type) {
	case []any:
		for _, item := range val {
			items = append(items, fmt.Sprint(item))
		}
	case []string:
		items = val
	case string:
		items = strings.Split(val, ",")
	}
	var out []string
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func expandPath(homeDir, value string) string {
	if value == "" {
		return ""
	}
	if strings.HasPrefix(value, "~") && homeDir != "" {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

// GetExportPath places filename in the export directory, creating it if
// needed. Without an export directory the file lands in the working directory.
func (c *Config) GetExportPath(filename string) (string, error) {
	if c.ExportDirectory == "" {
		return filename, nil
	}
	if err := os.MkdirAll(c.ExportDirectory, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	return filepath.Join(c.ExportDirectory, filename), nil
}
