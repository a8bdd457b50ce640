// Package board resolves drag gestures on the pipeline board to drop targets.
package board

import "math"

// Point is a position in board coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned bounding box in board coordinates.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Area returns the rectangle's area.
func (r Rect) Area() float64 { return r.Width * r.Height }

// Center returns the rectangle's center point.
func (r Rect) Center() Point {
	return Point{X: r.Left + r.Width/2, Y: r.Top + r.Height/2}
}

// Contains reports whether p lies inside the rectangle (edges inclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right() && p.Y >= r.Top && p.Y <= r.Bottom()
}

// Corners returns the four corners in top-left, top-right, bottom-left,
// bottom-right order.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{X: r.Left, Y: r.Top},
		{X: r.Right(), Y: r.Top},
		{X: r.Left, Y: r.Bottom()},
		{X: r.Right(), Y: r.Bottom()},
	}
}

func distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// intersectionArea returns the area shared by a and b, zero when disjoint.
func intersectionArea(a, b Rect) float64 {
	left := math.Max(a.Left, b.Left)
	right := math.Min(a.Right(), b.Right())
	top := math.Max(a.Top, b.Top)
	bottom := math.Min(a.Bottom(), b.Bottom())
	if right <= left || bottom <= top {
		return 0
	}
	return (right - left) * (bottom - top)
}

// intersectionRatio scores the overlap of a and b as shared area over union
// area, in (0, 1]. Zero means no overlap.
func intersectionRatio(a, b Rect) float64 {
	shared := intersectionArea(a, b)
	if shared == 0 {
		return 0
	}
	union := a.Area() + b.Area() - shared
	if union <= 0 {
		return 0
	}
	return shared / union
}

// cornersDistance averages the distances between corresponding corners of
// a and b. Smaller means closer.
func cornersDistance(a, b Rect) float64 {
	ca, cb := a.Corners(), b.Corners()
	var sum float64
	for i := range ca {
		sum += distance(ca[i], cb[i])
	}
	return sum / float64(len(ca))
}
