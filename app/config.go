package app

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fieldcms/fieldcms/internal/config"
	"github.com/fieldcms/fieldcms/internal/db/controller/setting"
)

func init() { //nolint:gochecknoinits
	configCmd.Flags().Bool("json", false, "Print JSON instead of TOML")
	configCmd.Flags().Bool("settings", false, "Also print the settings stored in the database")

	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration, defaults and env overrides applied",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		asJSON, _ := cmd.Flags().GetBool("json")

		dump := config.DumpConfig
		if asJSON {
			dump = config.DumpConfigJSON
		}

		out, err := dump(&cfg)
		if err != nil {
			return err //nolint:wrapcheck
		}

		_, _ = fmt.Fprint(cmd.OutOrStdout(), out)

		if withSettings, _ := cmd.Flags().GetBool("settings"); withSettings {
			return printSettings(cmd.OutOrStdout(), &cfg)
		}

		return nil
	},
}

// printSettings lists the database settings, one "name = value" per line.
func printSettings(w io.Writer, cfg *config.Config) error {
	database, closeDB, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	settings, err := setting.GetAll(database)
	if err != nil {
		return err //nolint:wrapcheck
	}

	_, _ = fmt.Fprintf(w, "\n# database settings (%d)\n", len(settings))

	for _, s := range settings {
		_, _ = fmt.Fprintf(w, "%s = %s\n", s.Name, s.Value)
	}

	return nil
}
