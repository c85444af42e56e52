package convert

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon string
		wantLat  string
		wantLon  string
		valid    bool
		y, x     float64
	}{
		{"plain", "50.775", "6.08333", "50.775", "6.08333", true, 50.775, 6.08333},
		{"padded", "  -33.5 ", "\t151.2", "-33.5", "151.2", true, -33.5, 151.2},
		{"zero", "0", "0", "0", "0", true, 0, 0},
		{"both empty", "", "", "", "", false, 0, 0},
		{"lat empty", "", "6.1", "", "6.1", false, 0, 0},
		{"lon blank", "50.1", "   ", "50.1", "", false, 0, 0},
		{"lat garbage", "north", "6.1", "north", "6.1", false, 0, 0},
		{"lon garbage", "50.1", "6,1", "50.1", "6,1", false, 0, 0},
		{"grouped digits", "1_000.5", "2_0", "1_000.5", "2_0", true, 1000.5, 20},
		{"exponent", "5e1", "-1.5E-1", "5e1", "-1.5E-1", true, 50, -0.15},
		{"hex float", "0x1p4", "6.1", "0x1p4", "6.1", false, 0, 0},
		{"leading underscore", "_1", "6.1", "_1", "6.1", false, 0, 0},
		{"trailing underscore", "1_", "6.1", "1_", "6.1", false, 0, 0},
		{"double underscore", "1__0", "6.1", "1__0", "6.1", false, 0, 0},
		{"underscore before point", "1_.5", "6.1", "1_.5", "6.1", false, 0, 0},
		{"bare sign", "-", "6.1", "-", "6.1", false, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ParseCoordinate(tt.lat, tt.lon)
			assert.Equal(t, tt.wantLat, c.Lat)
			assert.Equal(t, tt.wantLon, c.Lon)
			assert.Equal(t, tt.valid, c.Valid())
			if !tt.valid {
				assert.Nil(t, c.Point)
				return
			}
			require.NotNil(t, c.Point)
			assert.InDelta(t, tt.y, c.Point.Y(), 1e-12)
			assert.InDelta(t, tt.x, c.Point.X(), 1e-12)
			assert.Equal(t, wgs84, c.Point.SRID())
		})
	}
}

func TestParseCoordinate_NonFinite(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon string
		check    func(t *testing.T, y, x float64)
	}{
		{"nan lat", "nan", "10", func(t *testing.T, y, x float64) {
			assert.True(t, math.IsNaN(y))
			assert.Equal(t, 10.0, x)
		}},
		{"signed nan", "-NaN", "+nan", func(t *testing.T, y, x float64) {
			assert.True(t, math.IsNaN(y))
			assert.True(t, math.IsNaN(x))
		}},
		{"inf", "inf", "-Infinity", func(t *testing.T, y, x float64) {
			assert.True(t, math.IsInf(y, 1))
			assert.True(t, math.IsInf(x, -1))
		}},
		{"overflow", "1e400", "-1e400", func(t *testing.T, y, x float64) {
			assert.True(t, math.IsInf(y, 1))
			assert.True(t, math.IsInf(x, -1))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ParseCoordinate(tt.lat, tt.lon)
			require.True(t, c.Valid())
			assert.Equal(t, tt.lat, c.Lat)
			assert.Equal(t, tt.lon, c.Lon)
			tt.check(t, c.Point.Y(), c.Point.X())
		})
	}
}
