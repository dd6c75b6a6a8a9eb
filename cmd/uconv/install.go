package main

import (
	"fmt"
	"os"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/uconv/pkg/config"
	daemonutils "github.com/charlie0129/uconv/pkg/utils/daemon"
)

// NewInstallCommand .
func NewInstallCommand() *cobra.Command {
	allowNonRootAccess := false

	cmd := &cobra.Command{
		Use:     "install",
		Short:   "Install uconv daemon (system-wide)",
		GroupID: gInstallation,
		Long: `Install uconv daemon as a systemd service (system-wide).

This makes the daemon run in the background and start on boot. You must run this command as root.

By default, only root user is allowed to access the daemon socket. Use --allow-non-root-access to let other users run 'uconv --remote' and 'uconv watch' without sudo.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := config.NewFile(configPath)
			if err != nil {
				return err
			}

			conf.SetAllowNonRootAccess(allowNonRootAccess)
			if allowNonRootAccess {
				logrus.Info("non-root users are allowed to access the uconv daemon.")
			} else {
				logrus.Info("only root user is allowed to access the uconv daemon.")
			}

			err = conf.Save()
			if err != nil {
				return pkgerrors.Wrapf(err, "failed to save config")
			}

			err = daemonutils.Install(configPath, unixSocketPath)
			if err != nil {
				// check if current user is root
				if os.Geteuid() != 0 {
					logrus.Errorf("you must run this command as root")
				}
				return fmt.Errorf("failed to install daemon: %w", err)
			}

			logrus.Infof("installation succeeded")

			exePath, _ := os.Executable()

			cmd.Printf("systemd will start the current binary (%s) at boot, so do not move it. If it is moved or deleted, run 'uconv install' again.\n", exePath)

			return nil
		},
	}

	cmd.Flags().BoolVar(&allowNonRootAccess, "allow-non-root-access", false, "Allow non-root users to access uconv daemon.")

	return cmd
}

// NewUninstallCommand .
func NewUninstallCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "uninstall",
		Short:   "Uninstall uconv daemon (system-wide)",
		GroupID: gInstallation,
		Long: `Uninstall uconv daemon from systemd (system-wide).

This stops the daemon and removes its unit file. You must run this command as root.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := daemonutils.Uninstall()
			if err != nil {
				// check if current user is root
				if os.Geteuid() != 0 {
					logrus.Errorf("you must run this command as root")
				}
				return fmt.Errorf("failed to uninstall daemon: %w", err)
			}

			cmd.Println("successfully uninstalled")

			cmd.Printf("Your config is kept in %s. Remove it and the uconv binary manually for a complete uninstall.\n", configPath)

			return nil
		},
	}
}
