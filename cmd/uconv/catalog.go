package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/charlie0129/uconv/pkg/types"
	"github.com/charlie0129/uconv/pkg/units"
)

func listCategories() ([]types.CategoryInfo, error) {
	if remote {
		return apiClient.ListCategories()
	}
	cats := units.Default().Categories()
	out := make([]types.CategoryInfo, 0, len(cats))
	for _, c := range cats {
		out = append(out, types.NewCategoryInfo(c))
	}
	return out, nil
}

func getCategory(id string) (*types.CategoryInfo, error) {
	if remote {
		return apiClient.GetCategory(id)
	}
	c, err := units.Default().Category(id)
	if err != nil {
		return nil, err
	}
	info := types.NewCategoryInfo(c)
	return &info, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}

func NewCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "categories",
		Short:   "List unit categories",
		GroupID: gConversion,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cats, err := listCategories()
			if err != nil {
				return fmt.Errorf("failed to list categories: %w", err)
			}

			if outputFormat == outputJSON {
				return printJSON(cmd, cats)
			}

			for _, c := range cats {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d units)\n", bold("%-12s", c.ID), c.Name, len(c.Units))
			}
			return nil
		},
	}
}

func NewUnitsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "units CATEGORY",
		Short:   "List the units of a category",
		GroupID: gConversion,
		Long: `List the units of a category in display order.

The base unit is marked with *. Units computed from dimensions show the
dimensions they take.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := getCategory(args[0])
			if err != nil {
				return fmt.Errorf("failed to get category: %w", err)
			}

			if outputFormat == outputJSON {
				return printJSON(cmd, c)
			}

			fmt.Fprintln(cmd.OutOrStdout(), bold("%s:", c.Name))
			for _, u := range c.Units {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", describeUnit(u))
			}
			return nil
		},
	}
}

func describeUnit(u types.UnitInfo) string {
	s := fmt.Sprintf("%-20s %s", u.ID, u.Label)
	if u.Base {
		s += " " + color.New(color.Bold, color.FgGreen).Sprint("*")
	}
	if u.MultiInput != nil {
		s += " " + color.CyanString("[%s]", joinDimensions(u.MultiInput.Kind))
	}
	return s
}

func joinDimensions(k units.Kind) string {
	s := ""
	for i, d := range k.Dimensions() {
		if i > 0 {
			s += " x "
		}
		s += d
	}
	return s
}
