package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/uconv/pkg/config"
	"github.com/charlie0129/uconv/pkg/convert"
	"github.com/charlie0129/uconv/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s\n", version.Version, version.GitCommit)
		},
	}
}

func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "status",
		Short:       "Show the daemon configuration",
		GroupID:     gDaemon,
		Annotations: daemonClient,
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := apiClient.GetConfig()
			if err != nil {
				return fmt.Errorf("failed to get config: %w", err)
			}

			if outputFormat == outputJSON {
				return printJSON(cmd, raw)
			}

			conf := config.NewFileFromConfig(raw, "")
			cmd.Println(bold("Daemon:"))
			cmd.Printf("  Socket: %s\n", apiClient.SocketPath())
			cmd.Println()
			cmd.Println(bold("Configuration:"))
			cmd.Printf("  Precision: %s\n", bold("%d decimals", conf.Precision()))
			cmd.Printf("  Group digits: %s\n", bool2Text(conf.GroupDigits()))
			cmd.Printf("  Default category: %s\n", bold("%s", conf.DefaultCategory()))
			cmd.Printf("  Dimension unit: %s\n", bold("%s", conf.DimensionUnit()))
			cmd.Printf("  Allow non-root users to access the daemon: %s\n", bool2Text(conf.AllowNonRootAccess()))
			return nil
		},
	}
}

func NewPrecisionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "precision [decimals]",
		Short:       "Set the number of decimals shown for results",
		GroupID:     gDaemon,
		Annotations: daemonClient,
		Long: fmt.Sprintf(`Set the number of decimals shown for results.

This is a number from 0 to %d. Rounding only affects how results are shown,
never the value used for further conversions. Local conversions read the same
setting from the config file.`, convert.MaxPrecision),
		RunE: func(_ *cobra.Command, args []string) error {
			p, err := parseIntArg(args, "precision")
			if err != nil {
				return err
			}
			if p < 0 || p > convert.MaxPrecision {
				return fmt.Errorf("precision must be between 0 and %d", convert.MaxPrecision)
			}

			ret, err := apiClient.SetPrecision(p)
			if err != nil {
				return fmt.Errorf("failed to set precision: %w", err)
			}

			if ret != "" {
				logrus.Infof("daemon responded: %s", ret)
			}

			logrus.Infof("successfully set precision to %d", p)

			return nil
		},
	}
}

func NewGroupDigitsCommand() *cobra.Command {
	return newEnableDisableCommand(
		"group-digits",
		"thousands separators in results",
		"Show results with thousands separators, e.g. 1,234,567.000000.",
		func() (string, error) { return apiClient.SetGroupDigits(true) },
		func() (string, error) { return apiClient.SetGroupDigits(false) },
	)
}
