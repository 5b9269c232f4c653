package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the base name for configuration files (without extension).
	ConfigFileName = "barcodefont"

	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "BARCODEFONT"
)

// Loader handles loading configuration from various sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a configuration loader around v. A nil v gets a fresh
// viper instance.
func NewLoader(v *viper.Viper) *Loader {
	if v == nil {
		v = viper.New()
	}
	return &Loader{v: v}
}

// Load reads defaults, the first config file found on the search path and
// environment variables, then validates the result. A missing config file
// is not an error.
func (l *Loader) Load() (*Config, error) {
	l.v.SetConfigName(ConfigFileName)
	l.v.SetConfigType("yaml")
	l.addConfigPaths()
	return l.load(false)
}

// LoadWithFile loads configuration from a specific file path.
func (l *Loader) LoadWithFile(configFile string) (*Config, error) {
	if configFile == "" {
		return l.Load()
	}
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configFile)
	}
	l.v.SetConfigFile(configFile)
	return l.load(true)
}

func (l *Loader) load(requireFile bool) (*Config, error) {
	l.setupEnvironmentVariables()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if requireFile || !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := l.v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// GetViper returns the underlying viper instance, e.g. for flag binding.
func (l *Loader) GetViper() *viper.Viper {
	return l.v
}

// GetConfigFileUsed returns the path of the config file used.
func (l *Loader) GetConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

func (l *Loader) addConfigPaths() {
	l.v.AddConfigPath(".")
	if configDir, exists := os.LookupEnv("XDG_CONFIG_HOME"); exists {
		l.v.AddConfigPath(filepath.Join(configDir, "barcodefont"))
	} else if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(filepath.Join(home, ".config", "barcodefont"))
	}
	l.v.AddConfigPath("/etc/barcodefont")
}

func (l *Loader) setupEnvironmentVariables() {
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.AutomaticEnv()
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
}

func (l *Loader) setDefaults() {
	defaults := DefaultConfig()
	l.v.SetDefault("log_level", defaults.LogLevel)
	l.v.SetDefault("verbose", defaults.Verbose)
	l.v.SetDefault("encoding.symbology", defaults.Encoding.Symbology)
	l.v.SetDefault("encoding.code_set", defaults.Encoding.CodeSet)
	l.v.SetDefault("encoding.font", defaults.Encoding.Font)
	l.v.SetDefault("encoding.extended_latin1", defaults.Encoding.ExtendedLatin1)
	l.v.SetDefault("output.format", defaults.Output.Format)
}
