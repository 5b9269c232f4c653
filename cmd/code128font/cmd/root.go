package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ericlevine/barcodefont"
	"github.com/ericlevine/barcodefont/internal/config"

	// Register the Code 128 encoders.
	_ "github.com/ericlevine/barcodefont/oned"
)

var version = "dev"

// SetVersion sets the version string reported by --version.
func SetVersion(v string) { version = v }

// flagKeys maps configuration keys to the flags that may override them.
var flagKeys = map[string]string{
	"verbose":                  "verbose",
	"log_level":                "log-level",
	"encoding.symbology":       "symbology",
	"encoding.code_set":        "code-set",
	"encoding.font":            "font",
	"encoding.extended_latin1": "latin1",
	"output.format":            "format",
}

// app carries the state shared by one command tree.
type app struct {
	v        *viper.Viper
	cfgFile  string
	cfg      *config.Config
	logger   *slog.Logger
	provider *barcodefont.Provider
}

// NewRootCommand builds the complete command tree with its own configuration
// state.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}
	root := &cobra.Command{
		Use:   "code128font",
		Short: "Encode text as Code 128 barcode font text",
		Long: `Encode text as Code 128, GS1-128 or ISBT 128 symbols rendered for a
barcode font, validate input, and decode font text back to data.

Examples:
  code128font encode "PO-000123"
  code128font encode --symbology gs1-128 "(01)09501101530003(10)LOT7"
  code128font validate --latin1 "Größe"
  code128font decode --format json "$(code128font encode PO-000123)"`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is search in ., $XDG_CONFIG_HOME/barcodefont, /etc/barcodefont)")
	root.PersistentFlags().BoolP("verbose", "v", false, "verbose output (equivalent to --log-level=debug)")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("format", "text", "output format (text, json, yaml)")

	root.AddCommand(
		newEncodeCommand(a),
		newValidateCommand(a),
		newDecodeCommand(a),
		newCapabilitiesCommand(a),
	)
	return root
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

// init binds the running command's flags, loads configuration and sets up
// logging.
func (a *app) init(cmd *cobra.Command) error {
	for key, name := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := a.v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}

	cfg, err := config.NewLoader(a.v).LoadWithFile(a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logLevel := slog.LevelInfo
	if cfg.Verbose {
		logLevel = slog.LevelDebug
	} else {
		switch cfg.LogLevel {
		case "debug":
			logLevel = slog.LevelDebug
		case "warn":
			logLevel = slog.LevelWarn
		case "error":
			logLevel = slog.LevelError
		}
	}
	a.logger = slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(a.logger)
	a.provider = barcodefont.NewProvider(barcodefont.WithLogger(a.logger))

	a.logger.Debug("configuration loaded",
		"config_file", a.v.ConfigFileUsed(),
		"symbology", cfg.Encoding.Symbology,
		"font", cfg.Encoding.Font)
	return nil
}

// addEncodingFlags declares the flags that map onto encoding settings.
func addEncodingFlags(cmd *cobra.Command) {
	defaults := config.DefaultConfig().Encoding
	cmd.Flags().String("symbology", defaults.Symbology, "symbology (code-128, gs1-128, isbt-128)")
	cmd.Flags().String("code-set", defaults.CodeSet, "preferred start code set (auto, A, B, C)")
	cmd.Flags().String("font", defaults.Font, "target font mapping (idautomation, private-use)")
	cmd.Flags().Bool("latin1", defaults.ExtendedLatin1, "allow ISO-8859-1 characters via FNC4")
}
