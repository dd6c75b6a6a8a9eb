package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/charlie0129/uconv/pkg/convert"
	"github.com/charlie0129/uconv/pkg/types"
	"github.com/charlie0129/uconv/pkg/units"
)

func NewConvertCommand() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:     "convert VALUE FROM TO",
		Short:   "Convert a value between two units",
		GroupID: gConversion,
		Long: `Convert a value between two units of the same category.

Without --category, the configured default category is used if it has both
units. Otherwise the first category that has both units is picked.

Negative values are accepted as they are. A "--" before VALUE also keeps it
from being read as a flag.

Examples:
  uconv convert 5 kilometers miles
  uconv convert -c temperature 100 celsius fahrenheit
  uconv convert -c temperature -40 celsius fahrenheit
  uconv convert -- -40 celsius fahrenheit`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, from, to := args[0], args[1], args[2]

			if category == "" {
				def, err := defaultCategory()
				if err != nil {
					return err
				}
				category, err = resolveCategory(units.Default(), def, from, to)
				if err != nil {
					return err
				}
			}

			resp, err := newConverter().Convert(types.ConvertRequest{
				Category: category,
				From:     from,
				To:       to,
				Value:    value,
			})
			if err != nil {
				return fmt.Errorf("failed to convert: %w", err)
			}

			return printResponse(cmd, resp)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "unit category (length, mass, temperature, area, volume)")

	return cmd
}

// defaultCategory returns the configured default category, asking the daemon
// in remote mode.
func defaultCategory() (string, error) {
	if !remote {
		return loadLocalConfig().DefaultCategory(), nil
	}
	conf, err := apiClient.GetConfig()
	if err != nil {
		return "", fmt.Errorf("failed to get config: %w", err)
	}
	if conf.DefaultCategory == nil {
		return units.Length, nil
	}
	return *conf.DefaultCategory, nil
}

// resolveCategory picks preferred if it has both units, else the first
// category in registry order that does.
func resolveCategory(reg *units.Registry, preferred, from, to string) (string, error) {
	if c, err := reg.Category(preferred); err == nil && c.Has(from) && c.Has(to) {
		return c.ID, nil
	}
	for _, c := range reg.Categories() {
		if c.Has(from) && c.Has(to) {
			return c.ID, nil
		}
	}
	return "", fmt.Errorf("%w: no category has both %s and %s", units.ErrUnknownUnit, from, to)
}

// dimensionFlags holds the raw dimension flags of the area and volume commands.
type dimensionFlags struct {
	values map[string]*string
	units  map[string]*string
}

func addDimensionFlags(cmd *cobra.Command, kind units.Kind) *dimensionFlags {
	d := &dimensionFlags{
		values: map[string]*string{},
		units:  map[string]*string{},
	}
	for _, name := range kind.Dimensions() {
		d.values[name] = cmd.Flags().String(name, "", name+" of the "+string(kind))
		d.units[name] = cmd.Flags().String(name+"-unit", "", "length unit of --"+name+" (default from config dimensionUnit)")
	}
	return d
}

func (d *dimensionFlags) raw() map[string]convert.RawDimension {
	out := make(map[string]convert.RawDimension, len(d.values))
	for name, v := range d.values {
		out[name] = convert.RawDimension{Value: *v, Unit: *d.units[name]}
	}
	return out
}

func newDimensionCommand(kind units.Kind, category, use, short, long string) *cobra.Command {
	var flags *dimensionFlags

	cmd := &cobra.Command{
		Use:     use,
		Short:   short,
		Long:    long,
		GroupID: gConversion,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to := args[0], args[1]

			u, err := units.Default().Unit(category, from)
			if err != nil {
				return err
			}
			if !u.IsMultiInput() {
				return fmt.Errorf("%s is not computed from dimensions, use 'uconv convert' instead", from)
			}

			resp, err := newConverter().Convert(types.ConvertRequest{
				Category:   category,
				From:       from,
				To:         to,
				Dimensions: flags.raw(),
			})
			if err != nil {
				return fmt.Errorf("failed to convert: %w", err)
			}

			return printResponse(cmd, resp)
		},
	}

	flags = addDimensionFlags(cmd, kind)

	return cmd
}

func NewAreaCommand() *cobra.Command {
	return newDimensionCommand(units.KindArea, units.Area,
		"area FROM TO",
		"Compute an area from length and width",
		`Compute an area from length and width and express it in TO.

FROM must be an area unit computed from dimensions, such as squareFeet. Each
dimension may use its own length unit.

Examples:
  uconv area squareMeters acres --length 120 --width 80
  uconv area squareFeet squareMeters --length 12 --length-unit feet --width 3 --width-unit meters`)
}

func NewVolumeCommand() *cobra.Command {
	return newDimensionCommand(units.KindVolume, units.Volume,
		"volume FROM TO",
		"Compute a volume from length, width and height",
		`Compute a volume from length, width and height and express it in TO.

FROM must be a volume unit computed from dimensions, such as cubicMeters.

Examples:
  uconv volume cubicMeters liters --length 1 --width 0.5 --height 0.4
  uconv volume cubicFeet gallons --length 2 --width 2 --height 1 --height-unit feet`)
}
