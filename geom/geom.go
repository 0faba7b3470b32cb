// Package geom holds the small amount of 2D math shared by components and systems.
package geom

import "math"

// Vec2 is a 2D vector in world units
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// V is shorthand for Vec2{x, y}
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Mul multiplies component-wise
func (v Vec2) Mul(o Vec2) Vec2 {
	return Vec2{v.X * o.X, v.Y * o.Y}
}

// Lerp interpolates from v to o by t
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// Box is an axis-aligned box given by its min and max corners
type Box struct {
	Min Vec2
	Max Vec2
}

// BoxAt builds a box centered on c with the given size
func BoxAt(c Vec2, w, h float64) Box {
	return Box{Min: Vec2{c.X - w/2, c.Y - h/2}, Max: Vec2{c.X + w/2, c.Y + h/2}}
}

func (b Box) Width() float64 {
	return b.Max.X - b.Min.X
}

func (b Box) Height() float64 {
	return b.Max.Y - b.Min.Y
}

// Center returns the midpoint of the box
func (b Box) Center() Vec2 {
	return Vec2{(b.Min.X + b.Max.X) / 2, (b.Min.Y + b.Max.Y) / 2}
}

// Overlaps reports whether two boxes intersect with positive area
func (b Box) Overlaps(o Box) bool {
	return b.Min.X < o.Max.X && o.Min.X < b.Max.X && b.Min.Y < o.Max.Y && o.Min.Y < b.Max.Y
}

// Inset shrinks the box by dx on the left and right and dy on the top and bottom
func (b Box) Inset(dx, dy float64) Box {
	return Box{Min: Vec2{b.Min.X + dx, b.Min.Y + dy}, Max: Vec2{b.Max.X - dx, b.Max.Y - dy}}
}

// Clamp limits v to [lo, hi]. When lo > hi the midpoint is returned.
func Clamp(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	return math.Max(lo, math.Min(hi, v))
}

// Sign returns -1, 0 or 1
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
