package astrogeom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReducePrecision(t *testing.T) {
	p := Pt(1.234567891, -0.000004)
	p.ReducePrecision()
	assert.Equal(t, 1.23457, p.X)
	assert.Zero(t, p.Y)

	v := Vec(6.123233995736766e-17, 0.9999999999)
	v.ReducePrecision()
	assert.Equal(t, Vec(0, 1), v)
}

func TestAngle(t *testing.T) {
	tests := []struct {
		name   string
		v1, v2 Vector
		want   float64
	}{
		{"same direction", Vec(1, 0), Vec(5, 0), 0},
		{"perpendicular", Vec(1, 0), Vec(0, -3), math.Pi / 2},
		{"opposite", Vec(1, 0), Vec(-2, 0), math.Pi},
		{"diagonal", Vec(1, 1), Vec(1, 0), math.Pi / 4},
		{"nearly parallel", Vec(0.70711, 0.70711), Vec(3, 3), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Angle(tt.v1, tt.v2), 1e-7)
		})
	}
}

func TestAngleZeroVector(t *testing.T) {
	assert.True(t, math.IsNaN(Angle(Vec(0, 0), Vec(1, 0))))
}

func TestAngleLeavesInputsAlone(t *testing.T) {
	v := Vec(0.123456789, 1)
	Angle(v, Vec(1, 0))
	assert.Equal(t, 0.123456789, v.X)
}

func TestRotate(t *testing.T) {
	v := Vec(1, 0)
	r := Rotate(v, math.Pi/2)
	assert.InDelta(t, 0, r.X, 1e-12)
	assert.InDelta(t, 1, r.Y, 1e-12)
	assert.Equal(t, Vec(1, 0), v)

	r = Rotate(Vec(0, 1), math.Pi)
	assert.InDelta(t, 0, r.X, 1e-12)
	assert.InDelta(t, -1, r.Y, 1e-12)
}

func TestDistance(t *testing.T) {
	// Horizontal line y = 2.
	assert.InDelta(t, 3, Distance(Pt(4, 5), Pt(0, 2), Vec(1, 0)), 1e-12)
	// Vertical line x = 1 takes the special case.
	assert.Equal(t, 3.0, Distance(Pt(4, 5), Pt(1, -7), Vec(0, 1)))
	// Line y = x, point (0, 2).
	assert.InDelta(t, math.Sqrt2, Distance(Pt(0, 2), Pt(0, 0), Vec(1, 1)), 1e-12)
}

func TestIntersection(t *testing.T) {
	t.Run("general", func(t *testing.T) {
		pt, ok := Intersection(Pt(0, 0), Vec(1, 1), Pt(0, 2), Vec(1, -1))
		require.True(t, ok)
		assert.InDelta(t, 1, pt.X, 1e-12)
		assert.InDelta(t, 1, pt.Y, 1e-12)
	})

	t.Run("first vertical", func(t *testing.T) {
		pt, ok := Intersection(Pt(3, 9), Vec(0, 1), Pt(0, 1), Vec(1, 0))
		require.True(t, ok)
		assert.Equal(t, Pt(3, 1), pt)
	})

	t.Run("second vertical", func(t *testing.T) {
		pt, ok := Intersection(Pt(0, 1), Vec(1, 0), Pt(3, 9), Vec(0, -1))
		require.True(t, ok)
		assert.Equal(t, Pt(3, 1), pt)
	})

	t.Run("nearly vertical rounds to vertical", func(t *testing.T) {
		pt, ok := Intersection(Pt(2, 0), Vec(6e-17, 1), Pt(0, 4), Vec(-1, 0))
		require.True(t, ok)
		assert.Equal(t, Pt(2, 4), pt)
	})

	t.Run("both vertical", func(t *testing.T) {
		_, ok := Intersection(Pt(0, 0), Vec(0, 1), Pt(1, 0), Vec(0, -1))
		assert.False(t, ok)
	})

	t.Run("parallel", func(t *testing.T) {
		_, ok := Intersection(Pt(0, 0), Vec(1, 1), Pt(0, 1), Vec(2, 2))
		assert.False(t, ok)
	})

	t.Run("identical", func(t *testing.T) {
		_, err := Intersect(Pt(0, 0), Vec(1, 2), Pt(1, 2), Vec(1, 2))
		assert.ErrorIs(t, err, ErrNoIntersection)
	})
}
