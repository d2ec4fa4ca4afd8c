// Package app implements the command line of FieldCMS.
package app

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Keys of the settings shared by all commands. Each can be set with a flag or
// with the FIELDCMS_ prefixed environment variable, e.g. FIELDCMS_CONFIG.
const (
	keyConfig = "config"
	keyDev    = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "fieldcms",
	Short: "FieldCMS is a small content management system with date fields",
	Long: `FieldCMS manages content types built from fields. It ships a date field,
a publishing window that hides content outside of it, and helpers to check
and try out PHP style date formats.`,
	Args:          cobra.OnlyValidArgs,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() { //nolint:gochecknoinits
	rootCmd.PersistentFlags().String(keyConfig, "./etc/", "Directory holding main.toml")
	rootCmd.PersistentFlags().Bool(keyDev, false, "Enable dev mode")

	_ = viper.BindPFlag(keyConfig, rootCmd.PersistentFlags().Lookup(keyConfig))
	_ = viper.BindPFlag(keyDev, rootCmd.PersistentFlags().Lookup(keyDev))

	viper.SetEnvPrefix("FIELDCMS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
