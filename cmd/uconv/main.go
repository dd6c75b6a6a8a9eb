package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/charlie0129/uconv/pkg/client"
	"github.com/charlie0129/uconv/pkg/units"
	"github.com/charlie0129/uconv/pkg/version"
)

var (
	logLevel       = "info"
	unixSocketPath = "/var/run/uconv.sock"
	configPath     = "/etc/uconv.json"
	remote         = false
	outputFormat   = outputText
)

var (
	gConversion   = "Conversion:"
	gDaemon       = "Daemon:"
	gInstallation = "Installation:"
	commandGroups = []string{
		gConversion,
		gDaemon,
		gInstallation,
	}
)

var apiClient = client.NewClient(unixSocketPath)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func handleCmdError(err error) {
	switch {
	case errors.Is(err, client.ErrDaemonNotRunning):
		fmt.Fprintln(os.Stderr, "\nError: uconv daemon is not running")
		fmt.Fprintln(os.Stderr, "Start it with 'uconv daemon', or drop '--remote' to convert locally.")
	case errors.Is(err, client.ErrPermissionDenied):
		fmt.Fprintln(os.Stderr, "\nError: Permission Denied")
		fmt.Fprintln(os.Stderr, "  - Try running the command again with 'sudo'")
		fmt.Fprintln(os.Stderr, "  - Or restart the daemon with '--always-allow-non-root-access'")
	case errors.Is(err, units.ErrUnknownCategory), errors.Is(err, units.ErrUnknownUnit):
		fmt.Fprintln(os.Stderr, "\nRun 'uconv categories' or 'uconv units CATEGORY' to list what is available.")
	}
}

func main() {
	cmd := NewCommand()
	cmd.SetArgs(separateNegativeNumbers(cmd, os.Args[1:]))
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uconv",
		Short: "uconv converts values between units of length, mass, temperature, area and volume",
		Long: `uconv converts values between units of length, mass, temperature, area and volume.

Conversions run in-process by default. With --remote they are sent to a
running uconv daemon, which also serves the results to 'uconv watch'.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			err := setupLogger()
			if err != nil {
				return err
			}

			if err := validateOutputFormat(outputFormat); err != nil {
				return err
			}

			apiClient = client.NewClient(unixSocketPath)

			if !needsDaemon(cmd) {
				return nil
			}

			if daemonVersion, err := apiClient.GetVersion(); err == nil {
				if daemonVersion != version.Version {
					logrus.WithFields(logrus.Fields{
						"clientVersion": version.Version,
						"daemonVersion": daemonVersion,
					}).Warn("Version mismatch between client and daemon. Results may differ from a local conversion.")
				}
			} else if errors.Is(err, client.ErrNotFound) {
				logrus.Error("uconv daemon is too old to report its version.")
			}

			return nil
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", configPath, "config file path")
	globalFlags.StringVar(&unixSocketPath, "daemon-socket", unixSocketPath, "uconv daemon unix socket path")
	globalFlags.BoolVar(&remote, "remote", false, "send conversions to the uconv daemon")
	globalFlags.StringVarP(&outputFormat, "output", "o", outputText, "output format (text, json)")

	for _, i := range commandGroups {
		cmd.AddGroup(&cobra.Group{
			ID:    i,
			Title: i,
		})
	}

	cmd.AddCommand(
		NewVersionCommand(),
		NewConvertCommand(),
		NewAreaCommand(),
		NewVolumeCommand(),
		NewCategoriesCommand(),
		NewUnitsCommand(),
		NewStatusCommand(),
		NewPrecisionCommand(),
		NewGroupDigitsCommand(),
		NewWatchCommand(),
		NewDaemonCommand(),
		NewInstallCommand(),
		NewUninstallCommand(),
	)

	return cmd
}

// needsDaemon reports whether cmd talks to the daemon. Those commands get a
// client/daemon version check.
func needsDaemon(cmd *cobra.Command) bool {
	if cmd.Annotations[annotationDaemonClient] == "true" {
		return true
	}
	return remote && cmd.GroupID == gConversion
}
