package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"potarig/internal/adif"
	"potarig/internal/flrig"
	"potarig/internal/logger"
	"potarig/internal/pota"

	"github.com/spf13/viper"
)

const (
	envPrefix = "POTARIG"

	defaultConfigDir  = "configs" // configs/config.yml
	defaultConfigName = "config"

	DefaultHost     = "localhost"
	DefaultPort     = 8080
	DefaultDBPath   = "potarig.db"
	DefaultLogFile  = "potarig.log"
	DefaultADIFFile = "potarig.adi"
)

// Config is the effective application configuration.
type Config struct {
	HTTP  HTTPConfig        `mapstructure:"http" yaml:"http"`
	DB    DBConfig          `mapstructure:"db" yaml:"db"`
	Log   LogConfig         `mapstructure:"log" yaml:"log"`
	POTA  POTAConfig        `mapstructure:"pota" yaml:"pota"`
	Flrig FlrigConfig       `mapstructure:"flrig" yaml:"flrig"`
	Modes map[string]string `mapstructure:"modes" yaml:"modes"`
	ADIF  ADIFConfig        `mapstructure:"adif" yaml:"adif"`
}

type HTTPConfig struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`
}

// Addr is the listen address, host:port.
func (c HTTPConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

type DBConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"` // empty disables the file sink
}

type POTAConfig struct {
	URL     string        `mapstructure:"url" yaml:"url"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

type FlrigConfig struct {
	URL     string        `mapstructure:"url" yaml:"url"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
	// Simulate replaces flrig with the in-process rig simulator.
	Simulate bool `mapstructure:"simulate" yaml:"simulate"`
}

type ADIFConfig struct {
	Filename string `mapstructure:"filename" yaml:"filename"` // empty disables contact logging
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.host", DefaultHost)
	v.SetDefault("http.port", DefaultPort)
	v.SetDefault("db.path", DefaultDBPath)
	v.SetDefault("log.level", logger.InfoLevel)
	v.SetDefault("log.file", DefaultLogFile)
	v.SetDefault("pota.url", pota.DefaultURL)
	v.SetDefault("pota.timeout", pota.DefaultTimeout)
	v.SetDefault("flrig.url", flrig.DefaultURL)
	v.SetDefault("flrig.timeout", flrig.DefaultTimeout)
	v.SetDefault("flrig.simulate", false)
	v.SetDefault("adif.filename", DefaultADIFFile)
}

// Load reads the configuration. With an empty path it looks for
// configs/config.yml and falls back to defaults when there is none;
// an explicit path must exist. POTARIG_* environment variables
// (POTARIG_HTTP_PORT, POTARIG_FLRIG_URL, ...) override both.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(defaultConfigDir)
		v.SetConfigName(defaultConfigName)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("config: http.port %d out of range", c.HTTP.Port)
	}
	if c.DB.Path == "" {
		return errors.New("config: db.path is required")
	}
	if c.POTA.Timeout < 0 || c.Flrig.Timeout < 0 {
		return errors.New("config: timeouts must not be negative")
	}
	return nil
}

// ADIFWriter returns the contact log writer for the configured file.
func (c *Config) ADIFWriter() *adif.Writer {
	return adif.NewWriter(c.ADIF.Filename)
}
