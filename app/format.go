package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fieldcms/fieldcms/internal/datetoolbox"
)

var (
	// ErrInvalidFormat is returned by "format check" for a rejected format.
	ErrInvalidFormat = errors.New("invalid format")

	errNothingToCheck = errors.New("pass --date and/or --time")
)

func init() { //nolint:gochecknoinits
	formatCheckCmd.Flags().String("date", "", "Date format to check, e.g. Y-m-d")
	formatCheckCmd.Flags().String("time", "", "Time format to check, e.g. H:i")

	formatParseCmd.Flags().String("format", "", "Format the value was entered with")
	formatParseCmd.Flags().String("timezone", "UTC", "IANA time zone the value is read in")
	_ = formatParseCmd.MarkFlagRequired("format")

	formatCmd.AddCommand(formatCheckCmd, formatParseCmd)
	rootCmd.AddCommand(formatCmd)
}

var (
	formatCmd = &cobra.Command{
		Use:   "format",
		Short: "Check and try out date/time formats",
	}

	formatCheckCmd = &cobra.Command{
		Use:   "check",
		Short: "Check date and time formats the way field settings are checked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			date, _ := cmd.Flags().GetString("date")
			clock, _ := cmd.Flags().GetString("time")

			if date == "" && clock == "" {
				return errNothingToCheck
			}

			out := cmd.OutOrStdout()
			valid := true

			if date != "" {
				ok := datetoolbox.ValidateDateFormat(date)
				valid = valid && ok
				_, _ = fmt.Fprintf(out, "date %q: %s\n", date, verdict(ok))
			}

			if clock != "" {
				ok := datetoolbox.ValidateTimeFormat(clock)
				valid = valid && ok
				_, _ = fmt.Fprintf(out, "time %q: %s\n", clock, verdict(ok))
			}

			if !valid {
				return ErrInvalidFormat
			}

			return nil
		},
	}

	formatParseCmd = &cobra.Command{
		Use:   "parse VALUE",
		Short: "Parse a value with a format and print its Unix timestamp",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			zone, _ := cmd.Flags().GetString("timezone")

			loc, err := time.LoadLocation(zone)
			if err != nil {
				return fmt.Errorf("timezone %q: %w", zone, err)
			}

			t, err := datetoolbox.CreateFromFormatIn(format, args[0], loc)
			if err != nil {
				return fmt.Errorf("%q does not match %q: %w", args[0], format, err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d %s\n", t.Unix(), t.Format(time.RFC3339))

			return nil
		},
	}
)

func verdict(ok bool) string {
	if ok {
		return "valid"
	}

	return "invalid"
}
