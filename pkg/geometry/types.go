// Package geometry provides basic geometric types used throughout the application.
package geometry

import (
	"math"
)

// Point2D represents a 2D point with floating-point coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPoint2D creates a new Point2D.
func NewPoint2D(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// Distance returns the Euclidean distance to another point.
func (p Point2D) Distance(other Point2D) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// PointInt represents a 2D point with integer coordinates.
type PointInt struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ToFloat converts to Point2D.
func (p PointInt) ToFloat() Point2D {
	return Point2D{X: float64(p.X), Y: float64(p.Y)}
}

// Rect represents a rectangle with floating-point coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewRect creates a new Rect.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Point2D) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point2D {
	return Point2D{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Size represents a 2D size.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewSize creates a new Size.
func NewSize(width, height float64) Size {
	return Size{Width: width, Height: height}
}

// Ellipse represents an axis-aligned ellipse in image coordinates.
// Width and Height are the full axis lengths, not the semi-axes.
type Ellipse struct {
	Center Point2D `json:"center"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewEllipse creates a new Ellipse from a center point and full axis lengths.
func NewEllipse(cx, cy, width, height float64) Ellipse {
	return Ellipse{Center: Point2D{X: cx, Y: cy}, Width: width, Height: height}
}

// SemiAxes returns the semi-axis lengths along X and Y.
func (e Ellipse) SemiAxes() (rx, ry float64) {
	return e.Width / 2, e.Height / 2
}

// Valid reports whether the ellipse has positive extent on both axes.
func (e Ellipse) Valid() bool {
	return e.Width > 0 && e.Height > 0
}

// Contains returns true if the point lies inside or on the ellipse.
func (e Ellipse) Contains(p Point2D) bool {
	rx, ry := e.SemiAxes()
	if rx <= 0 || ry <= 0 {
		return false
	}
	dx := (p.X - e.Center.X) / rx
	dy := (p.Y - e.Center.Y) / ry
	return dx*dx+dy*dy <= 1.0
}

// Area returns the analytic area of the ellipse.
func (e Ellipse) Area() float64 {
	rx, ry := e.SemiAxes()
	return math.Pi * rx * ry
}

// BoundingBox returns the axis-aligned bounding rectangle of the ellipse.
func (e Ellipse) BoundingBox() Rect {
	rx, ry := e.SemiAxes()
	return Rect{X: e.Center.X - rx, Y: e.Center.Y - ry, Width: 2 * rx, Height: 2 * ry}
}
