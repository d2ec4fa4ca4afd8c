package app

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fieldcms/fieldcms/internal/config"
	"github.com/fieldcms/fieldcms/internal/daemon"
	"github.com/fieldcms/fieldcms/internal/logger"
)

func init() { //nolint:gochecknoinits
	startCmd.Flags().BoolVar(
		&browseStatic,
		"browse",
		false,
		"Enable static file browsing (for development purposes only)",
	)

	rootCmd.AddCommand(startCmd)
}

var (
	browseStatic bool

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the FieldCMS web service",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if browseStatic {
				cfg.Webserver.BrowseStatic = true
			}

			if err = logger.Init(cfg.Log); err != nil {
				return err //nolint:wrapcheck
			}

			d, err := daemon.New(&cfg)
			if err != nil {
				return err //nolint:wrapcheck
			}

			return d.Start()
		},
	}
)

// loadConfig reads main.toml from the configured directory and applies the dev flag.
func loadConfig() (config.Config, error) {
	dir := viper.GetString(keyConfig)
	if dir != "" && !strings.HasSuffix(dir, "/") {
		dir += "/"
	}

	cfg, err := config.ReadConfig(dir)
	if err != nil {
		return cfg, err //nolint:wrapcheck
	}

	if viper.GetBool(keyDev) {
		cfg.DevMode = true
	}

	return cfg, nil
}
