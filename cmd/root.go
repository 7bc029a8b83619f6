// =============================================================================
// Metadata Generator - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Every other command
// is attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (metagen)
//   ├── fieldCmd   (metagen field generate | convert)
//   ├── objectCmd  (metagen object generate | convert | template)
//   ├── profileCmd (metagen profile generate | convert)
//   └── versionCmd (metagen version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up the global flags (--config, --verbose)
//   2. Loading .env, the YAML config file and METAGEN_ variables
//   3. Setting up logging
//
// Reports are written to stdout, logs to stderr.
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ginjaninja78/metadata-generator/internal/config"
	"github.com/ginjaninja78/metadata-generator/internal/converter"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

var (
	// cfgFile is the path given by --config. Empty means .metagen.yaml in
	// the working directory or $HOME.
	cfgFile string

	// verbose forces debug logging.
	verbose bool

	// cfg is loaded by the root command before any subcommand runs.
	cfg *config.Config

	// configErr is the error of reading the config file in initConfig.
	configErr error
)

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

var rootCmd = &cobra.Command{
	Use:   "metagen",
	Short: "Generate Salesforce metadata XML from CSV or XLSX tables",
	Long: `metagen turns spreadsheet rows into Salesforce metadata files and back.

  field    CustomField files (<fullName>.field-meta.xml)
  object   CustomObject files (<fullName>/<fullName>.object-meta.xml)
  profile  permission updates applied to a .profile-meta.xml

Every row is validated before anything is written. If any row fails, the
failures are listed and no file is created.

Example Usage:
  metagen field generate -i fields.csv -o force-app/main/default/objects/Book__c/fields
  metagen object template -o . --format xlsx
  metagen profile generate -i perms.csv -o out -s Admin.profile-meta.xml -u`,

	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if configErr != nil {
			return fmt.Errorf("failed to read config file: %w", configErr)
		}
		loaded, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}
		cfg = loaded
		return setupLogging(cfg, os.Stderr)
	},

	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},

	SilenceUsage:  true,
	SilenceErrors: true,
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command and exits non-zero on any error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .metagen.yaml in the working directory or $HOME)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// initConfig loads .env, then the config file. Environment variables are
// bound by config.SetDefaults.
func initConfig() {
	configErr = nil
	_ = godotenv.Load()

	v := viper.GetViper()
	config.SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigType("yaml")
		v.SetConfigName(".metagen")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			configErr = err
		}
		return
	}
	slog.Debug("using config file", "file", v.ConfigFileUsed())
}

// setupLogging installs the slog handler selected by the config.
func setupLogging(c *config.Config, w io.Writer) error {
	level, err := c.Level()
	if err != nil {
		return err
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if c.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

// newConverter builds the converter for one command run.
func newConverter(cmd *cobra.Command) *converter.Converter {
	return converter.New(cfg, slog.Default(), cmd.OutOrStdout())
}
