// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package math2d implements the 2-D geometry primitives used by the
// kinematic core: points, affine matrices and angle arithmetic on the
// unit circle.
package math2d

import "math"

// Point is a 2-D point/vector with X and Y components.
type Point struct {
	X float64
	Y float64
}

// NewPoint creates and returns a new Point with the specified x and y
// components.
func NewPoint(x, y float64) Point {

	return Point{X: x, Y: y}
}

// Add returns the sum of this point and other.
func (p Point) Add(other Point) Point {

	return Point{p.X + other.X, p.Y + other.Y}
}

// Sub returns the difference of this point and other.
func (p Point) Sub(other Point) Point {

	return Point{p.X - other.X, p.Y - other.Y}
}

// Negate returns the point with each component negated.
func (p Point) Negate() Point {

	return Point{-p.X, -p.Y}
}

// Scale returns the point with each component multiplied by k.
func (p Point) Scale(k float64) Point {

	return Point{p.X * k, p.Y * k}
}

// Equals returns true if p and other have bitwise identical components.
func (p Point) Equals(other Point) bool {

	return math.Float64bits(p.X) == math.Float64bits(other.X) && math.Float64bits(p.Y) == math.Float64bits(other.Y)
}

// Distance returns the Euclidean distance between u and v.
func Distance(u, v Point) float64 {

	dx := u.X - v.X
	dy := u.Y - v.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// AngleFromUToV returns the angle, in radians, of the ray from u to v.
func AngleFromUToV(u, v Point) float64 {

	diff := v.Sub(u)
	return math.Atan2(diff.Y, diff.X)
}

// PointOnLineAtDistance returns the point at distance d from u along the
// ray from u toward v. The direction is preserved; the distance need not
// match |v-u|.
func PointOnLineAtDistance(u, v Point, d float64) Point {

	pt := Point{u.X + d, u.Y}
	return Transform(pt, RotateAboutPointMatrix(u, AngleFromUToV(u, v)))
}
