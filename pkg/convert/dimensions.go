package convert

import (
	"errors"

	"github.com/charlie0129/uconv/pkg/units"
)

// ErrScalarKindMismatch is returned when a BaseScalar is converted from a unit
// that is not built from dimensions of the same kind.
var ErrScalarKindMismatch = errors.New("scalar kind does not match unit")

// BaseScalar is a value reduced from dimensions: square meters for KindArea,
// cubic meters for KindVolume.
type BaseScalar struct {
	Kind  units.Kind `json:"kind"`
	Value float64    `json:"value"`
}

// inCategoryBase expresses the scalar in the base unit of its category. The
// volume base unit is liters, not cubic meters.
func (s BaseScalar) inCategoryBase() float64 {
	if s.Kind == units.KindVolume {
		return s.Value * LitersPerCubicMeter
	}
	return s.Value
}

// Dimension is one measured side, in a unit of the length category.
type Dimension struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// DimensionSet holds the sides of a rectangle or a box. Height is nil for an
// area.
type DimensionSet struct {
	Length Dimension  `json:"length"`
	Width  Dimension  `json:"width"`
	Height *Dimension `json:"height,omitempty"`
}

// Kind returns KindVolume if a height is present, KindArea otherwise.
func (d DimensionSet) Kind() units.Kind {
	if d.Height != nil {
		return units.KindVolume
	}
	return units.KindArea
}

// ReduceDimensions multiplies the sides of d after converting each one to
// meters. Each side may use a different unit.
func ReduceDimensions(d DimensionSet) (BaseScalar, error) {
	return std.ReduceDimensions(d)
}

// ReduceDimensions is the method form of the package-level ReduceDimensions.
func (c *Converter) ReduceDimensions(d DimensionSet) (BaseScalar, error) {
	length, err := c.toMeters(d.Length)
	if err != nil {
		return BaseScalar{}, err
	}
	width, err := c.toMeters(d.Width)
	if err != nil {
		return BaseScalar{}, err
	}

	if d.Height == nil {
		return BaseScalar{Kind: units.KindArea, Value: length * width}, nil
	}

	height, err := c.toMeters(*d.Height)
	if err != nil {
		return BaseScalar{}, err
	}

	return BaseScalar{Kind: units.KindVolume, Value: length * width * height}, nil
}

func (c *Converter) toMeters(d Dimension) (float64, error) {
	u, err := c.reg.Unit(units.Length, d.Unit)
	if err != nil {
		return 0, err
	}
	return d.Value * u.Multiplier, nil
}

// ConvertDimensions reduces d and converts the scalar from fromUnit to toUnit.
func (c *Converter) ConvertDimensions(d DimensionSet, fromUnit, toUnit, category string) (float64, error) {
	s, err := c.ReduceDimensions(d)
	if err != nil {
		return 0, err
	}
	return c.ConvertScalar(s, fromUnit, toUnit, category)
}
