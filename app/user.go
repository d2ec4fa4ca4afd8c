package app

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/fieldcms/fieldcms/internal/auth"
	"github.com/fieldcms/fieldcms/internal/config"
	"github.com/fieldcms/fieldcms/internal/db"
)

func init() { //nolint:gochecknoinits
	userAddCmd.Flags().String("email", "", "Email address")
	userAddCmd.Flags().String("password", "", "Initial password")
	userAddCmd.Flags().String("first-name", "", "First name")
	userAddCmd.Flags().String("last-name", "", "Last name")
	_ = userAddCmd.MarkFlagRequired("password")

	userPasswdCmd.Flags().String("password", "", "New password")
	_ = userPasswdCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userAddCmd, userPasswdCmd, userListCmd, userEnableCmd, userDisableCmd)
	rootCmd.AddCommand(userCmd)
}

// openDB connects to the configured database. The returned func closes it.
func openDB(cfg *config.Config) (*gorm.DB, func(), error) {
	database, err := db.Open(cfg)
	if err != nil {
		return nil, nil, err //nolint:wrapcheck
	}

	closeDB := func() {
		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	return database, closeDB, nil
}

// accounts opens the configured database for the user commands.
func accounts() (*auth.Accounts, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	database, closeDB, err := openDB(&cfg)
	if err != nil {
		return nil, nil, err
	}

	return auth.NewAccounts(database), closeDB, nil
}

func setActive(active bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, closeDB, err := accounts()
		if err != nil {
			return err
		}
		defer closeDB()

		if err = a.SetActive(args[0], active); err != nil {
			return err //nolint:wrapcheck
		}

		state := "disabled"
		if active {
			state = "enabled"
		}

		cmd.Printf("user %q %s\n", args[0], state)

		return nil
	}
}

var (
	userCmd = &cobra.Command{
		Use:   "user",
		Short: "Manage administrator accounts",
	}

	userAddCmd = &cobra.Command{
		Use:   "add USERNAME",
		Short: "Create an administrator account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			firstName, _ := cmd.Flags().GetString("first-name")
			lastName, _ := cmd.Flags().GetString("last-name")

			a, closeDB, err := accounts()
			if err != nil {
				return err
			}
			defer closeDB()

			user, err := a.CreateUser(args[0], email, password, firstName, lastName)
			if err != nil {
				return err //nolint:wrapcheck
			}

			cmd.Printf("created user %q (id %d)\n", user.Username, user.ID)

			return nil
		},
	}

	userPasswdCmd = &cobra.Command{
		Use:   "passwd USERNAME",
		Short: "Set a new password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, _ := cmd.Flags().GetString("password")

			a, closeDB, err := accounts()
			if err != nil {
				return err
			}
			defer closeDB()

			if err = a.ResetPassword(args[0], password); err != nil {
				return err //nolint:wrapcheck
			}

			cmd.Printf("password of %q changed\n", args[0])

			return nil
		},
	}

	userListCmd = &cobra.Command{
		Use:   "list",
		Short: "List administrator accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, closeDB, err := accounts()
			if err != nil {
				return err
			}
			defer closeDB()

			users, err := a.ListUsers()
			if err != nil {
				return err //nolint:wrapcheck
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0) //nolint:mnd
			_, _ = fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tACTIVE")

			for _, u := range users {
				_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%t\n", u.ID, u.Username, u.Email, u.Active)
			}

			return w.Flush() //nolint:wrapcheck
		},
	}

	userEnableCmd = &cobra.Command{
		Use:   "enable USERNAME",
		Short: "Allow an account to log in",
		Args:  cobra.ExactArgs(1),
		RunE:  setActive(true),
	}

	userDisableCmd = &cobra.Command{
		Use:   "disable USERNAME",
		Short: "Block an account from logging in",
		Args:  cobra.ExactArgs(1),
		RunE:  setActive(false),
	}
)
