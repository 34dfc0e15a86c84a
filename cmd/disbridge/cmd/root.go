package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gift-interop/disbridge/internal/config"
)

var (
	configDir string
	settings  config.Settings
)

var rootCmd = &cobra.Command{
	Use:   "disbridge",
	Short: "DIS interoperability bridge",
	Long: `disbridge translates between DIS (IEEE 1278.1) PDU records and the training
platform's internal events.

Available commands:
  run          Translate a stream of newline delimited JSON messages
  encode       Translate one platform event into a PDU record
  decode       Translate one PDU record into a platform event
  timestamp    Show the DIS time encoding of an instant
  geo          Convert between geodetic and DIS world coordinates
  journal      Read the translated traffic journal

Use "disbridge [command] --help" for more information about a specific command.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Directory holding "+config.FileName)
}

// loadSettings reads the config file when there is one. Defaults and
// environment variables apply either way.
func loadSettings(cmd *cobra.Command, args []string) error {
	err := config.Load(configDir)
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return err
	}

	settings, err = config.Get()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
