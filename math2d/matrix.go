// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math2d

import "math"

// Matrix3 is a 3x3 affine matrix for homogeneous 2-D transforms,
// organized internally as a column matrix (mirrors the teacher's
// Matrix3 layout convention in math32/matrix3.go).
type Matrix3 [9]float64

// NewMatrix3 creates and returns a new Matrix3 initialized as the
// identity matrix.
func NewMatrix3() *Matrix3 {

	var m Matrix3
	m.Identity()
	return &m
}

// Set sets all the elements of the matrix row by row starting at
// row1,col1, row1,col2, row1,col3 and so forth. Returns the pointer
// to this updated matrix.
func (m *Matrix3) Set(n11, n12, n13, n21, n22, n23, n31, n32, n33 float64) *Matrix3 {

	m[0] = n11
	m[3] = n12
	m[6] = n13
	m[1] = n21
	m[4] = n22
	m[7] = n23
	m[2] = n31
	m[5] = n32
	m[8] = n33
	return m
}

// Identity sets this matrix as the identity matrix. Returns the
// pointer to this updated matrix.
func (m *Matrix3) Identity() *Matrix3 {

	m.Set(
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	)
	return m
}

// Multiply returns the product m * other.
func (m *Matrix3) Multiply(other *Matrix3) *Matrix3 {

	a11, a12, a13 := m[0], m[3], m[6]
	a21, a22, a23 := m[1], m[4], m[7]
	a31, a32, a33 := m[2], m[5], m[8]

	b11, b12, b13 := other[0], other[3], other[6]
	b21, b22, b23 := other[1], other[4], other[7]
	b31, b32, b33 := other[2], other[5], other[8]

	var result Matrix3
	result.Set(
		a11*b11+a12*b21+a13*b31, a11*b12+a12*b22+a13*b32, a11*b13+a12*b23+a13*b33,
		a21*b11+a22*b21+a23*b31, a21*b12+a22*b22+a23*b32, a21*b13+a22*b23+a23*b33,
		a31*b11+a32*b21+a33*b31, a31*b12+a32*b22+a33*b32, a31*b13+a32*b23+a33*b33,
	)
	return &result
}

// Identity3 returns a new identity matrix.
func Identity3() *Matrix3 {

	return NewMatrix3()
}

// TranslationMatrix returns the matrix that translates by (x, y).
func TranslationMatrix(x, y float64) *Matrix3 {

	var m Matrix3
	m.Set(
		1, 0, x,
		0, 1, y,
		0, 0, 1,
	)
	return &m
}

// RotationMatrix returns the matrix that rotates by theta radians
// about the origin.
func RotationMatrix(theta float64) *Matrix3 {

	return RotationMatrixCosSin(math.Cos(theta), math.Sin(theta))
}

// RotationMatrixCosSin returns the rotation matrix built directly from
// a cosine/sine pair, avoiding a redundant trig call when both are
// already known.
func RotationMatrixCosSin(cosTheta, sinTheta float64) *Matrix3 {

	var m Matrix3
	m.Set(
		cosTheta, -sinTheta, 0,
		sinTheta, cosTheta, 0,
		0, 0, 1,
	)
	return &m
}

// ScaleMatrix returns the matrix that scales x and y independently.
func ScaleMatrix(xScale, yScale float64) *Matrix3 {

	var m Matrix3
	m.Set(
		xScale, 0, 0,
		0, yScale, 0,
		0, 0, 1,
	)
	return &m
}

// RotateAboutPointMatrix returns T(pt) * R(theta) * T(-pt): rotation by
// theta radians about the point pt.
func RotateAboutPointMatrix(pt Point, theta float64) *Matrix3 {

	return TranslationMatrix(pt.X, pt.Y).
		Multiply(RotationMatrix(theta)).
		Multiply(TranslationMatrix(-pt.X, -pt.Y))
}

// Transform applies the affine matrix m to pt in homogeneous
// coordinates and returns the resulting point.
func Transform(pt Point, m *Matrix3) Point {

	x := m[0]*pt.X + m[3]*pt.Y + m[6]
	y := m[1]*pt.X + m[4]*pt.Y + m[7]
	return Point{x, y}
}
