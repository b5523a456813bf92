// Package config loads helm-cleaner settings from flags, environment variables and an
// optional config file.
//
// Precedence: flags > HELM_CLEANER_* environment variables > config file > defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/devantler-tech/helm-cleaner/pkg/utils/envvar"
	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "HELM_CLEANER"

// Config file lookup.
const (
	FileName = "helm-cleaner"
	FileType = "yaml"
)

// Keys shared between flags, environment variables and the config file.
const (
	KeyKubeconfig = "kubeconfig"
	KeyContext    = "context"
	KeyHelmBinary = "helm-binary"
	KeyDriver     = "driver"
	KeyTimeout    = "timeout"
	KeyVerbose    = "verbose"
)

// DefaultHelmBinary is the helm executable looked up on PATH when none is configured.
const DefaultHelmBinary = "helm"

// Driver names the uninstall backend.
type Driver string

const (
	// DriverCLI shells out to the helm binary.
	DriverCLI Driver = "cli"
	// DriverSDK uses the Helm Go SDK in-process.
	DriverSDK Driver = "sdk"
)

// ErrUnknownDriver is returned when the configured driver is not supported.
var ErrUnknownDriver = errors.New("unknown uninstall driver")

// Config is the resolved configuration.
type Config struct {
	Kubeconfig string        `mapstructure:"kubeconfig"`
	Context    string        `mapstructure:"context"`
	HelmBinary string        `mapstructure:"helm-binary"`
	Driver     Driver        `mapstructure:"driver"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Verbose    bool          `mapstructure:"verbose"`
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	if !slices.Contains([]Driver{DriverCLI, DriverSDK}, c.Driver) {
		return fmt.Errorf("%w %q (expected %q or %q)", ErrUnknownDriver, c.Driver, DriverCLI, DriverSDK)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}

	return nil
}

// InitializeViper returns a viper instance with defaults, environment handling and
// config file search paths set up.
func InitializeViper() *viper.Viper {
	viperInstance := viper.New()

	viperInstance.SetDefault(KeyKubeconfig, "")
	viperInstance.SetDefault(KeyContext, "")
	viperInstance.SetDefault(KeyHelmBinary, DefaultHelmBinary)
	viperInstance.SetDefault(KeyDriver, string(DriverCLI))
	viperInstance.SetDefault(KeyTimeout, time.Duration(0))
	viperInstance.SetDefault(KeyVerbose, false)

	viperInstance.SetEnvPrefix(EnvPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viperInstance.AutomaticEnv()

	viperInstance.SetConfigName(FileName)
	viperInstance.SetConfigType(FileType)
	viperInstance.AddConfigPath(".")

	if configDir, err := os.UserConfigDir(); err == nil {
		viperInstance.AddConfigPath(filepath.Join(configDir, FileName))
	}

	return viperInstance
}

// BindFlags binds every flag in the set whose name is a config key.
func BindFlags(viperInstance *viper.Viper, flags *pflag.FlagSet) error {
	for _, key := range []string{KeyKubeconfig, KeyContext, KeyHelmBinary, KeyDriver, KeyTimeout, KeyVerbose} {
		flag := flags.Lookup(key)
		if flag == nil {
			continue
		}

		err := viperInstance.BindPFlag(key, flag)
		if err != nil {
			return fmt.Errorf("bind flag %q: %w", key, err)
		}
	}

	return nil
}

// Load reads the config file (explicit path, or the search paths when empty), decodes
// the merged settings and validates them. A missing config file in the search paths is
// not an error; a missing explicit file is.
func Load(viperInstance *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		viperInstance.SetConfigFile(configFile)
	}

	err := viperInstance.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config

	err = viperInstance.Unmarshal(&cfg, viper.DecodeHook(mapstructure.StringToTimeDurationHookFunc()))
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.Driver = Driver(strings.ToLower(string(cfg.Driver)))
	cfg.Kubeconfig = envvar.ExpandPath(cfg.Kubeconfig)
	cfg.HelmBinary = envvar.ExpandPath(cfg.HelmBinary)

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
