package convert

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlie0129/uconv/pkg/units"
)

func TestReduceDimensions(t *testing.T) {
	tests := []struct {
		name string
		d    DimensionSet
		want BaseScalar
	}{
		{
			name: "area in meters",
			d:    DimensionSet{Length: Dimension{2, "meters"}, Width: Dimension{3, "meters"}},
			want: BaseScalar{Kind: units.KindArea, Value: 6},
		},
		{
			name: "area with mixed units",
			d:    DimensionSet{Length: Dimension{10, "feet"}, Width: Dimension{2, "meters"}},
			want: BaseScalar{Kind: units.KindArea, Value: 6.096},
		},
		{
			name: "volume with mixed units",
			d: DimensionSet{
				Length: Dimension{1, "meters"},
				Width:  Dimension{1, "meters"},
				Height: &Dimension{1, "feet"},
			},
			want: BaseScalar{Kind: units.KindVolume, Value: 0.3048},
		},
		{
			name: "volume in centimeters",
			d: DimensionSet{
				Length: Dimension{100, "centimeters"},
				Width:  Dimension{50, "centimeters"},
				Height: &Dimension{20, "centimeters"},
			},
			want: BaseScalar{Kind: units.KindVolume, Value: 0.1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReduceDimensions(tt.d)
			require.NoError(t, err)
			assert.Equal(t, tt.want.Kind, got.Kind)
			assert.InDelta(t, tt.want.Value, got.Value, 1e-12)
			assert.Equal(t, tt.d.Kind(), got.Kind)
		})
	}
}

func TestReduceDimensionsUnknownUnit(t *testing.T) {
	_, err := ReduceDimensions(DimensionSet{Length: Dimension{1, "meters"}, Width: Dimension{1, "cubits"}})
	assert.True(t, errors.Is(err, units.ErrUnknownUnit), "got %v", err)

	// dimensions are lengths, never masses
	_, err = ReduceDimensions(DimensionSet{Length: Dimension{1, "kilograms"}, Width: Dimension{1, "meters"}})
	assert.True(t, errors.Is(err, units.ErrUnknownUnit), "got %v", err)
}

func TestAreaThenConvert(t *testing.T) {
	s, err := ReduceDimensions(DimensionSet{Length: Dimension{2, "meters"}, Width: Dimension{3, "meters"}})
	require.NoError(t, err)
	require.Equal(t, 6.0, s.Value)

	got, err := Default().ConvertScalar(s, "squareMeters", "squareFeet", units.Area)
	require.NoError(t, err)
	assert.InDelta(t, 64.58349, got, 1e-5)

	// area scalars are never scaled by 1000
	got, err = Default().ConvertScalar(s, "squareMeters", "hectares", units.Area)
	require.NoError(t, err)
	assert.InDelta(t, 0.0006, got, 1e-15)
}

func TestVolumeThenConvert(t *testing.T) {
	got, err := Default().ConvertDimensions(DimensionSet{
		Length: Dimension{1, "meters"},
		Width:  Dimension{1, "meters"},
		Height: &Dimension{1, "feet"},
	}, "cubicMeters", "liters", units.Volume)
	require.NoError(t, err)
	assert.InDelta(t, 304.8, got, 1e-9)

	got, err = Default().ConvertDimensions(DimensionSet{
		Length: Dimension{1, "feet"},
		Width:  Dimension{1, "feet"},
		Height: &Dimension{1, "feet"},
	}, "cubicFeet", "cubicFeet", units.Volume)
	require.NoError(t, err)
	// 1 ft³ through the registry's rounded cubic-foot factor
	assert.InDelta(t, 1, got, 1e-5)
}

func TestConvertScalarKindMismatch(t *testing.T) {
	area := BaseScalar{Kind: units.KindArea, Value: 6}
	volume := BaseScalar{Kind: units.KindVolume, Value: 6}

	_, err := Default().ConvertScalar(volume, "squareMeters", "squareFeet", units.Area)
	assert.True(t, errors.Is(err, ErrScalarKindMismatch), "got %v", err)

	_, err = Default().ConvertScalar(area, "cubicMeters", "liters", units.Volume)
	assert.True(t, errors.Is(err, ErrScalarKindMismatch), "got %v", err)

	_, err = Default().ConvertScalar(area, "acres", "hectares", units.Area)
	assert.True(t, errors.Is(err, ErrScalarKindMismatch), "got %v", err)
}
