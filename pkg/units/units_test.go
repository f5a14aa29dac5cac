package units_test

import (
	"testing"

	"github.com/altiumtools/rulegen/pkg/errors"
	"github.com/altiumtools/rulegen/pkg/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  units.Unit
	}{
		{"mil", units.Mil},
		{"mils", units.Mil},
		{"MIL", units.Mil},
		{"  mil  ", units.Mil},
		{"mm", units.MM},
		{"millimeter", units.MM},
		{"Millimeters", units.MM},
		{"inch", units.Inch},
		{"inches", units.Inch},
		{"in", units.Inch},
		{"IN", units.Inch},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := units.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, input := range []string{"", "furlong", "m", "cm", "10mil"} {
		t.Run("rejects_"+input, func(t *testing.T) {
			_, err := units.Parse(input)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidUnit))
			// Message should tell the user what is accepted
			assert.Contains(t, err.Error(), "mil")
			assert.Contains(t, err.Error(), "inches")
		})
	}
}

func TestConvert(t *testing.T) {
	t.Run("mil_inch_fixed_points", func(t *testing.T) {
		assert.Equal(t, 1.0, units.Convert(1000, units.Mil, units.Inch))
		assert.Equal(t, 1000.0, units.Convert(1, units.Inch, units.Mil))
	})

	t.Run("mil_mm_exact_factor", func(t *testing.T) {
		assert.InDelta(t, 0.0254, units.Convert(1, units.Mil, units.MM), 1e-15)
		assert.InDelta(t, 39.37007874015748, units.Convert(1, units.MM, units.Mil), 1e-12)
	})

	t.Run("identity_is_exact", func(t *testing.T) {
		for _, u := range []units.Unit{units.Mil, units.MM, units.Inch} {
			assert.Equal(t, 8.5, units.Convert(8.5, u, u))
		}
	})

	t.Run("round_trip_within_tolerance", func(t *testing.T) {
		pairs := [][2]units.Unit{
			{units.Mil, units.MM},
			{units.Mil, units.Inch},
			{units.MM, units.Inch},
		}
		for _, p := range pairs {
			for _, v := range []float64{0.001, 0.1, 5, 10, 1234.56} {
				back := units.Convert(units.Convert(v, p[0], p[1]), p[1], p[0])
				assert.InDelta(t, v, back, v*1e-12)
			}
		}
	})
}

func TestSuffix(t *testing.T) {
	assert.Equal(t, "mil", units.Mil.Suffix())
	assert.Equal(t, "mm", units.MM.Suffix())
	assert.Equal(t, "inch", units.Inch.Suffix())
}
