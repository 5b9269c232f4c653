// Package config loads CLI configuration from files, environment variables
// and flags.
package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ericlevine/barcodefont"
	"github.com/ericlevine/barcodefont/font"
)

// Config is the complete configuration of the code128font command.
type Config struct {
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	Encoding EncodingConfig `mapstructure:"encoding" yaml:"encoding" json:"encoding"`
	Output   OutputConfig   `mapstructure:"output" yaml:"output" json:"output"`
}

// EncodingConfig holds the defaults applied to every encode request.
type EncodingConfig struct {
	Symbology      string `mapstructure:"symbology" yaml:"symbology" json:"symbology"`
	CodeSet        string `mapstructure:"code_set" yaml:"code_set" json:"code_set"`
	Font           string `mapstructure:"font" yaml:"font" json:"font"`
	ExtendedLatin1 bool   `mapstructure:"extended_latin1" yaml:"extended_latin1" json:"extended_latin1"`
}

// OutputConfig controls how results are printed.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Encoding: EncodingConfig{
			Symbology: barcodefont.SymbologyCode128.String(),
			CodeSet:   barcodefont.CodeSetAuto.String(),
			Font:      font.Default.Name(),
		},
		Output: OutputConfig{Format: "text"},
	}
}

var (
	validLogLevels     = []string{"debug", "info", "warn", "error"}
	validOutputFormats = []string{"text", "json", "yaml"}
)

// Validate checks the configuration for unsupported values.
func (c *Config) Validate() error {
	if !slices.Contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}
	if c.Output.Format != "" && !slices.Contains(validOutputFormats, c.Output.Format) {
		return fmt.Errorf("invalid output format: %s (must be one of: %s)", c.Output.Format, strings.Join(validOutputFormats, ", "))
	}
	if _, err := barcodefont.ParseSymbology(c.Encoding.Symbology); err != nil {
		return fmt.Errorf("encoding.symbology: %w", err)
	}
	if _, err := barcodefont.ParseCodeSet(c.Encoding.CodeSet); err != nil {
		return fmt.Errorf("encoding.code_set: %w", err)
	}
	if _, err := font.Lookup(c.Encoding.Font); err != nil {
		return fmt.Errorf("encoding.font: %w", err)
	}
	return nil
}

// Request builds an encode request for text from the encoding settings.
func (c EncodingConfig) Request(text string) (barcodefont.Request, error) {
	symbology, err := barcodefont.ParseSymbology(c.Symbology)
	if err != nil {
		return barcodefont.Request{}, err
	}
	codeSet, err := barcodefont.ParseCodeSet(c.CodeSet)
	if err != nil {
		return barcodefont.Request{}, err
	}
	mapping, err := font.Lookup(c.Font)
	if err != nil {
		return barcodefont.Request{}, err
	}
	return barcodefont.Request{
		Text:           text,
		Symbology:      symbology,
		CodeSet:        codeSet,
		ExtendedLatin1: c.ExtendedLatin1,
		Font:           mapping,
	}, nil
}
