package vmath_test

import (
	"testing"

	"github.com/plus3/bardmages/vmath"
	"github.com/stretchr/testify/assert"
)

func TestDistance2DIgnoresHeight(t *testing.T) {
	a := vmath.Vec3{X: 0, Y: 0, Z: 0}
	b := vmath.Vec3{X: 3, Y: 100, Z: 4}

	assert.InDelta(t, 5.0, vmath.Distance2D(a, b), 1e-9)
	assert.Greater(t, a.Distance(b), 100.0)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, vmath.Vec2{}, vmath.Vec2{}.Normalize())
	assert.Equal(t, vmath.Vec3{}, vmath.Vec3{X: 1e-9}.Normalize())

	n := vmath.Vec2{X: 3, Y: 4}.Normalize()
	assert.InDelta(t, 1.0, n.Len(), 1e-12)
	assert.InDelta(t, 0.6, n.X, 1e-12)
}

func TestAngle(t *testing.T) {
	tests := []struct {
		name string
		a, b vmath.Vec2
		want float64
	}{
		{"same direction", vmath.Vec2{X: 1}, vmath.Vec2{X: 2}, 0},
		{"right angle", vmath.Vec2{X: 1}, vmath.Vec2{Y: 1}, 90},
		{"opposite", vmath.Vec2{X: 1}, vmath.Vec2{X: -1}, 180},
		{"zero vector", vmath.Vec2{X: 1}, vmath.Vec2{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, vmath.Angle(tt.a, tt.b), 1e-9)
		})
	}
}

func TestRotateTowards(t *testing.T) {
	from := vmath.Vec2{X: 1}
	to := vmath.Vec2{Y: 1}

	step := vmath.RotateTowards(from, to, 30)
	assert.InDelta(t, 30, vmath.Angle(from, step), 1e-9)
	assert.InDelta(t, 60, vmath.Angle(step, to), 1e-9)

	assert.Equal(t, to, vmath.RotateTowards(from, to, 120))

	clockwise := vmath.RotateTowards(from, vmath.Vec2{Y: -1}, 45)
	assert.Less(t, clockwise.Y, 0.0)

	assert.Equal(t, to, vmath.RotateTowards(vmath.Vec2{}, to, 1))
}
