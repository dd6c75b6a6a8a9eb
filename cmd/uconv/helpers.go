package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/charlie0129/uconv/pkg/config"
	"github.com/charlie0129/uconv/pkg/convert"
	"github.com/charlie0129/uconv/pkg/types"
	"github.com/charlie0129/uconv/pkg/units"
)

const (
	outputText = "text"
	outputJSON = "json"
)

// annotationDaemonClient marks commands that always talk to the daemon.
const annotationDaemonClient = "uconv/daemon-client"

var daemonClient = map[string]string{annotationDaemonClient: "true"}

func validateOutputFormat(f string) error {
	switch f {
	case outputText, outputJSON:
		return nil
	default:
		return fmt.Errorf("invalid output format %q, must be %s or %s", f, outputText, outputJSON)
	}
}

func parseIntArg(args []string, valueName string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("invalid number of arguments")
	}

	value, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", valueName, err)
	}

	return value, nil
}

// separateNegativeNumbers lets positional values such as "-40" through flag
// parsing. When args hold a negative number that is not a flag value, the
// flags are moved in front of it and the positionals after a "--".
func separateNegativeNumbers(root *cobra.Command, args []string) []string {
	for _, a := range args {
		if a == "--" {
			return args
		}
	}

	target, _, err := root.Find(args)
	if err != nil {
		return args
	}

	var flags, positional []string
	negative := false
	for i := 0; i < len(args); i++ {
		a := args[i]
		if _, err := strconv.ParseFloat(a, 64); err == nil {
			negative = negative || strings.HasPrefix(a, "-")
			positional = append(positional, a)
			continue
		}
		if len(a) < 2 || a[0] != '-' {
			positional = append(positional, a)
			continue
		}
		flags = append(flags, a)
		if takesValue(target, a) && i+1 < len(args) {
			i++
			flags = append(flags, args[i])
		}
	}
	if !negative {
		return args
	}

	// command names stay in front so that cobra still finds the subcommand
	depth := len(strings.Fields(target.CommandPath())) - 1
	if depth > len(positional) {
		return args
	}
	ret := make([]string, 0, len(args)+1)
	ret = append(ret, positional[:depth]...)
	ret = append(ret, flags...)
	ret = append(ret, "--")
	return append(ret, positional[depth:]...)
}

// takesValue reports whether the flag in arg reads the next argument as its
// value, e.g. "--category length" or "-c length".
func takesValue(cmd *cobra.Command, arg string) bool {
	if strings.Contains(arg, "=") {
		return false
	}
	lookup := func(fs *pflag.FlagSet) *pflag.Flag {
		switch {
		case strings.HasPrefix(arg, "--"):
			return fs.Lookup(arg[2:])
		case len(arg) == 2:
			return fs.ShorthandLookup(arg[1:])
		default:
			return nil
		}
	}
	f := lookup(cmd.Flags())
	if f == nil {
		f = lookup(cmd.InheritedFlags())
	}
	return f != nil && f.NoOptDefVal == ""
}

func newEnableDisableCommand(
	use, short, long string,
	enableFunc func() (string, error),
	disableFunc func() (string, error),
) *cobra.Command {
	cmd := &cobra.Command{
		Use:         use,
		Short:       short,
		Long:        long,
		GroupID:     gDaemon,
		Annotations: daemonClient,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:         "enable",
			Short:       "Enable " + short,
			Annotations: daemonClient,
			RunE: func(_ *cobra.Command, _ []string) error {
				ret, err := enableFunc()
				if err != nil {
					return fmt.Errorf("failed to enable %s: %w", use, err)
				}
				if ret != "" {
					logrus.Infof("daemon responded: %s", ret)
				}
				logrus.Infof("successfully enabled %s", use)
				return nil
			},
		},
		&cobra.Command{
			Use:         "disable",
			Short:       "Disable " + short,
			Annotations: daemonClient,
			RunE: func(_ *cobra.Command, _ []string) error {
				ret, err := disableFunc()
				if err != nil {
					return fmt.Errorf("failed to disable %s: %w", use, err)
				}
				if ret != "" {
					logrus.Infof("daemon responded: %s", ret)
				}
				logrus.Infof("successfully disabled %s", use)
				return nil
			},
		},
	)

	return cmd
}

func bool2Text(b bool) string {
	if b {
		return color.New(color.Bold, color.FgGreen).Sprint("✔")
	}
	return color.New(color.Bold, color.FgRed).Sprint("✘")
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}

// converter evaluates a request either in-process or through the daemon.
type converter interface {
	Convert(req types.ConvertRequest) (*types.ConvertResponse, error)
}

// localConverter runs the engine in-process with settings from a config file.
type localConverter struct {
	conf config.Config
}

func (l localConverter) Convert(req types.ConvertRequest) (*types.ConvertResponse, error) {
	conv := convert.New(units.Default(), convert.WithDimensionUnit(l.conf.DimensionUnit()))
	res, err := conv.Evaluate(req)
	if err != nil {
		return nil, err
	}
	resp := types.NewConvertResponse(req, res, l.conf.Precision(), l.conf.GroupDigits())
	return &resp, nil
}

// loadLocalConfig reads configPath. An unreadable or invalid file falls back
// to defaults so local conversions keep working.
func loadLocalConfig() config.Config {
	conf, err := config.NewFile(configPath)
	if err == nil {
		err = conf.Validate()
	}
	if err != nil {
		logrus.Debugf("using default settings: %v", err)
		return config.NewFileFromConfig(nil, "")
	}
	return conf
}

func newConverter() converter {
	if remote {
		return apiClient
	}
	return localConverter{conf: loadLocalConfig()}
}

// printResponse writes resp as text or JSON. A response without a result
// prints an empty line in text mode.
func printResponse(cmd *cobra.Command, resp *types.ConvertResponse) error {
	if outputFormat == outputJSON {
		return printJSON(cmd, resp)
	}

	if resp.Result == nil {
		logrus.Debugf("no result: %s", resp.Reason)
		fmt.Fprintln(cmd.OutOrStdout())
		return nil
	}

	label := resp.To
	if u, err := units.Default().Unit(resp.Category, resp.To); err == nil {
		label = u.Label
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", bold("%s", resp.Formatted), label)
	return nil
}
