package geometry

import (
	"math"
	"testing"
)

func TestPoint2DDistance(t *testing.T) {
	a := NewPoint2D(0, 0)
	b := NewPoint2D(3, 4)
	if d := a.Distance(b); d != 5 {
		t.Errorf("Distance() = %v, want 5", d)
	}
}

func TestEllipseContains(t *testing.T) {
	e := NewEllipse(100, 100, 80, 40)

	tests := []struct {
		name string
		p    Point2D
		want bool
	}{
		{"center", Point2D{100, 100}, true},
		{"on x vertex", Point2D{140, 100}, true},
		{"on y vertex", Point2D{100, 120}, true},
		{"just past x vertex", Point2D{141, 100}, false},
		{"inside corner of bounding box", Point2D{135, 118}, false},
		{"far outside", Point2D{0, 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestEllipseValid(t *testing.T) {
	if !NewEllipse(0, 0, 10, 10).Valid() {
		t.Error("positive extent should be valid")
	}
	if NewEllipse(0, 0, 0, 10).Valid() {
		t.Error("zero width should be invalid")
	}
	if NewEllipse(0, 0, 10, -5).Valid() {
		t.Error("negative height should be invalid")
	}
}

func TestEllipseArea(t *testing.T) {
	e := NewEllipse(0, 0, 20, 10)
	want := math.Pi * 10 * 5
	if got := e.Area(); math.Abs(got-want) > 1e-9 {
		t.Errorf("Area() = %v, want %v", got, want)
	}
}

func TestEllipseBoundingBox(t *testing.T) {
	e := NewEllipse(50, 60, 20, 40)
	box := e.BoundingBox()
	want := Rect{X: 40, Y: 40, Width: 20, Height: 40}
	if box != want {
		t.Errorf("BoundingBox() = %+v, want %+v", box, want)
	}
	if !box.Contains(e.Center) {
		t.Error("bounding box should contain the ellipse center")
	}
}

func TestEllipseContainsDegenerate(t *testing.T) {
	e := Ellipse{}
	if e.Contains(Point2D{0, 0}) {
		t.Error("degenerate ellipse should contain nothing")
	}
}
