// Package convert implements the uconv conversion engine on top of the unit
// registry in pkg/units.
//
// Values reach the engine in one of two shapes. A typed value is expressed in
// its from-unit and goes through the unit multiplier. A BaseScalar comes from
// ReduceDimensions and is already in square or cubic meters, so its from-unit
// multiplier is skipped.
package convert

import (
	pkgerrors "github.com/pkg/errors"

	"github.com/charlie0129/uconv/pkg/units"
)

// LitersPerCubicMeter scales a cubic-meter scalar to the volume base unit.
const LitersPerCubicMeter = 1000

// Converter converts values using a registry.
type Converter struct {
	reg           *units.Registry
	dimensionUnit string
}

// Option configures a Converter.
type Option func(*Converter)

// WithDimensionUnit sets the length unit assumed for dimensions submitted
// without one. Defaults to meters.
func WithDimensionUnit(unit string) Option {
	return func(c *Converter) {
		if unit != "" {
			c.dimensionUnit = unit
		}
	}
}

// New returns a Converter backed by reg.
func New(reg *units.Registry, opts ...Option) *Converter {
	c := &Converter{
		reg:           reg,
		dimensionUnit: units.Meters,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

var std = New(units.Default())

// Default returns the Converter backed by the built-in registry.
func Default() *Converter {
	return std
}

// Registry returns the registry the converter reads from.
func (c *Converter) Registry() *units.Registry {
	return c.reg
}

// Convert converts value from one unit to another within category.
//
// When fromUnit is a multi-input unit, value must already be in square meters
// (area) or cubic meters (volume), as produced by ReduceDimensions. So
// Convert(x, u, u, category) is not x for a multi-input u; use ConvertValue for
// a value typed in u.
func Convert(value float64, fromUnit, toUnit, category string) (float64, error) {
	return std.Convert(value, fromUnit, toUnit, category)
}

// Convert is the method form of the package-level Convert.
func (c *Converter) Convert(value float64, fromUnit, toUnit, category string) (float64, error) {
	cat, from, to, err := c.lookup(category, fromUnit, toUnit)
	if err != nil {
		return 0, err
	}

	if from.ID == to.ID && !from.IsMultiInput() {
		return value, nil
	}

	if cat.IsTemperature() {
		return convertTemperature(value, from.ID, to.ID), nil
	}

	if from.IsMultiInput() {
		s := BaseScalar{Kind: from.MultiInput.Kind, Value: value}
		return s.inCategoryBase() / to.Multiplier, nil
	}

	return value * from.Multiplier / to.Multiplier, nil
}

// ConvertValue converts a value typed in fromUnit. Unlike Convert, the
// multiplier of a multi-input from-unit is applied.
func (c *Converter) ConvertValue(value float64, fromUnit, toUnit, category string) (float64, error) {
	cat, from, to, err := c.lookup(category, fromUnit, toUnit)
	if err != nil {
		return 0, err
	}

	if from.ID == to.ID {
		return value, nil
	}

	if cat.IsTemperature() {
		return convertTemperature(value, from.ID, to.ID), nil
	}

	return value * from.Multiplier / to.Multiplier, nil
}

// ConvertScalar converts a dimension-derived scalar. fromUnit must be a
// multi-input unit of the same kind as s.
func (c *Converter) ConvertScalar(s BaseScalar, fromUnit, toUnit, category string) (float64, error) {
	_, from, to, err := c.lookup(category, fromUnit, toUnit)
	if err != nil {
		return 0, err
	}

	if !from.IsMultiInput() {
		return 0, pkgerrors.Wrapf(ErrScalarKindMismatch, "%s scalar given for %q, which is not built from dimensions", s.Kind, from.ID)
	}
	if from.MultiInput.Kind != s.Kind {
		return 0, pkgerrors.Wrapf(ErrScalarKindMismatch, "%s scalar given for %s unit %q", s.Kind, from.MultiInput.Kind, from.ID)
	}

	return s.inCategoryBase() / to.Multiplier, nil
}

func (c *Converter) lookup(category, fromUnit, toUnit string) (*units.Category, units.Unit, units.Unit, error) {
	cat, err := c.reg.Category(category)
	if err != nil {
		return nil, units.Unit{}, units.Unit{}, err
	}
	from, err := cat.Unit(fromUnit)
	if err != nil {
		return nil, units.Unit{}, units.Unit{}, err
	}
	to, err := cat.Unit(toUnit)
	if err != nil {
		return nil, units.Unit{}, units.Unit{}, err
	}
	return cat, from, to, nil
}

// convertTemperature goes through Celsius. Unit ids have been validated.
func convertTemperature(value float64, from, to string) float64 {
	var celsius float64
	switch from {
	case units.Fahrenheit:
		celsius = (value - 32) * 5 / 9
	case units.Kelvin:
		celsius = value - 273.15
	default:
		celsius = value
	}

	switch to {
	case units.Fahrenheit:
		return celsius*9/5 + 32
	case units.Kelvin:
		return celsius + 273.15
	default:
		return celsius
	}
}
