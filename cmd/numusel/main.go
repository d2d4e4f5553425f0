// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the numusel CLI, the muon
// neutrino 1muNp selection over spill record files.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the numusel CLI.
var rootCmd = &cobra.Command{
	Use:   "numusel",
	Short: "Select and tabulate 1muNp muon neutrino interactions",
	Long: `numusel runs the 1muNp selection over spill record files: it pairs truth
and reconstructed interaction candidates, applies the topology, fiducial,
containment, and flash cuts, and tabulates the selection variables as CSV
rows for downstream analysis.

Each stage is a subcommand: process tabulates spill files, plot renders
comparison histograms from the tabulated rows.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./numusel.yaml or ~/.config/numusel/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("numusel")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "numusel"))
		}
	}

	viper.SetEnvPrefix("NUMUSEL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setting returns the flag value when set on the command line, then the
// config file value, then the flag default.
func setting(cmd *cobra.Command, flag, key string) string {
	if cmd.Flags().Changed(flag) || !viper.IsSet(key) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	return viper.GetString(key)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
