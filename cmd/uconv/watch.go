package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/uconv/pkg/events"
)

func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "watch",
		Short:       "Print conversions served by the daemon as they happen",
		GroupID:     gDaemon,
		Annotations: daemonClient,
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ch, err := apiClient.SubscribeEvents(ctx)
			if err != nil {
				return fmt.Errorf("failed to watch daemon: %w", err)
			}
			logrus.Infof("watching %s, press Ctrl-C to stop", apiClient.SocketPath())

			for ev := range ch {
				line, err := formatEvent(ev)
				if err != nil {
					logrus.Warnf("skipping malformed %s event: %v", ev.Name, err)
					continue
				}
				if line == "" {
					continue
				}
				if outputFormat == outputJSON {
					fmt.Fprintln(cmd.OutOrStdout(), string(ev.Data))
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}

			if ctx.Err() == nil {
				return fmt.Errorf("daemon closed the event stream")
			}
			return nil
		},
	}
}

// formatEvent renders one daemon event as a line of text. Unknown events give
// an empty line.
func formatEvent(ev events.Event) (string, error) {
	switch ev.Name {
	case events.ConversionCompleted:
		e, err := events.DecodeAs[events.ConversionEvent](ev)
		if err != nil {
			return "", err
		}
		result := e.Formatted
		if e.Result == nil {
			result = color.YellowString("no result (%s)", e.Reason)
		}
		return fmt.Sprintf("%s %s %s -> %s: %s",
			time.Unix(e.Ts, 0).Format(time.Kitchen), bold("%s", e.Category), e.From, e.To, result), nil
	case events.ConfigChanged:
		e, err := events.DecodeAs[events.ConfigChangedEvent](ev)
		if err != nil {
			return "", err
		}
		if e.Key == "*" {
			return fmt.Sprintf("%s config reloaded", time.Unix(e.Ts, 0).Format(time.Kitchen)), nil
		}
		return fmt.Sprintf("%s config %s set to %v", time.Unix(e.Ts, 0).Format(time.Kitchen), e.Key, e.Value), nil
	default:
		return "", nil
	}
}
