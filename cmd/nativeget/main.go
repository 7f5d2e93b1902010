// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the nativeget CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is the process-wide logger, configured in PersistentPreRun.
var logger = zerolog.Nop()

// rootCmd is the base command for the nativeget CLI.
var rootCmd = &cobra.Command{
	Use:   "nativeget",
	Short: "Retrieve native structures from RCSB by accession code",
	Long: `nativeget downloads native (reference) structure files from the RCSB
repository. It takes either a single 4-character accession code or a CSV
manifest listing many, downloads each entry, and renames the files to
caller-supplied identifiers.

Retrieved entries are recorded in a SQLite catalog under the output
directory; the catalog subcommand inspects and exports it.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = zerolog.DebugLevel
		}
		output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		logger = zerolog.New(output).Level(level).With().Timestamp().Logger()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./nativeget.yaml or ~/.config/nativeget/nativeget.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("nativeget")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "nativeget"))
		}
	}

	viper.SetEnvPrefix("NATIVEGET")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
