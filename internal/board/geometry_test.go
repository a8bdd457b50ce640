package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectEdgesAndCenter(t *testing.T) {
	r := Rect{Left: 10, Top: 20, Width: 100, Height: 40}
	assert.Equal(t, 110.0, r.Right())
	assert.Equal(t, 60.0, r.Bottom())
	assert.Equal(t, 4000.0, r.Area())
	assert.Equal(t, Point{X: 60, Y: 40}, r.Center())
}

func TestRectContains(t *testing.T) {
	r := Rect{Left: 0, Top: 0, Width: 10, Height: 10}
	assert.True(t, r.Contains(Point{X: 5, Y: 5}))
	assert.True(t, r.Contains(Point{X: 0, Y: 0}), "edges are inclusive")
	assert.True(t, r.Contains(Point{X: 10, Y: 10}))
	assert.False(t, r.Contains(Point{X: 11, Y: 5}))
	assert.False(t, r.Contains(Point{X: 5, Y: -1}))
}

func TestIntersectionArea(t *testing.T) {
	a := Rect{Left: 0, Top: 0, Width: 10, Height: 10}
	b := Rect{Left: 5, Top: 5, Width: 10, Height: 10}
	assert.Equal(t, 25.0, intersectionArea(a, b))

	disjoint := Rect{Left: 20, Top: 20, Width: 5, Height: 5}
	assert.Equal(t, 0.0, intersectionArea(a, disjoint))

	// Touching edges do not count as overlap.
	touching := Rect{Left: 10, Top: 0, Width: 10, Height: 10}
	assert.Equal(t, 0.0, intersectionArea(a, touching))
}

func TestIntersectionRatio(t *testing.T) {
	a := Rect{Left: 0, Top: 0, Width: 10, Height: 10}
	assert.Equal(t, 1.0, intersectionRatio(a, a), "identical rects overlap fully")

	b := Rect{Left: 5, Top: 0, Width: 10, Height: 10}
	ratio := intersectionRatio(a, b)
	assert.InDelta(t, 50.0/150.0, ratio, 1e-9)

	disjoint := Rect{Left: 100, Top: 100, Width: 10, Height: 10}
	assert.Equal(t, 0.0, intersectionRatio(a, disjoint))
}

func TestCornersDistance(t *testing.T) {
	a := Rect{Left: 0, Top: 0, Width: 10, Height: 10}
	assert.Equal(t, 0.0, cornersDistance(a, a))

	// Pure horizontal shift: every corner pair is exactly 30 apart.
	shifted := Rect{Left: 30, Top: 0, Width: 10, Height: 10}
	assert.Equal(t, 30.0, cornersDistance(a, shifted))
}
