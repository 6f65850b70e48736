// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math2d

import "math"

// Pi is exported for callers that want to build angle ranges without
// importing "math" themselves, matching the teacher's math32.Pi.
const Pi = math.Pi

const twoPi = 2.0 * math.Pi

// AngleRange is a half-open arc on the unit circle: it starts at
// Start and sweeps Span radians in the positive direction.
// Start is normalized to (-Pi, Pi]; Span is in [0, 2*Pi].
type AngleRange struct {
	Start float64
	Span  float64
}

// NewAngleRange returns an AngleRange with a normalized Start.
func NewAngleRange(start, span float64) AngleRange {

	return AngleRange{Start: NormalizeAngle(start), Span: span}
}

// NormalizeAngle maps theta into (-Pi, Pi].
func NormalizeAngle(theta float64) float64 {

	r := math.Atan2(math.Sin(theta), math.Cos(theta))
	if r <= -math.Pi {
		return math.Pi
	}
	return r
}

// AngularDistance returns the signed shortest arc from a to b, in
// [-Pi, Pi] (a half-turn difference may come out as either -Pi or Pi).
func AngularDistance(a, b float64) float64 {

	diff := b - a
	return math.Atan2(math.Sin(diff), math.Cos(diff))
}

// AngleInRange reports whether theta lies on the arc described by r.
func AngleInRange(theta float64, r AngleRange) bool {

	endAngle := r.Start + r.Span
	if endAngle <= math.Pi {
		return theta >= r.Start && theta <= endAngle
	}
	if theta >= r.Start && theta <= math.Pi {
		return true
	}
	wrapAround := endAngle - twoPi
	return theta >= -math.Pi && theta <= wrapAround
}

// IntersectAngleRanges returns the set-intersection of a and b as 0, 1,
// or 2 disjoint arcs (two arcs arise when the union wraps around the
// circle). The result is symmetric in a and b.
func IntersectAngleRanges(a, b AngleRange) []AngleRange {

	var originAngle, originSweep, greaterAngle, greaterSweep float64
	if a.Start < b.Start {
		originAngle, originSweep = a.Start, a.Span
		greaterAngle, greaterSweep = b.Start, b.Span
	} else {
		originAngle, originSweep = b.Start, b.Span
		greaterAngle, greaterSweep = a.Start, a.Span
	}

	var intersections []AngleRange

	greaterAngleRel := greaterAngle - originAngle
	if greaterAngleRel < originSweep {
		span := greaterSweep
		if originSweep-greaterAngleRel < span {
			span = originSweep - greaterAngleRel
		}
		intersections = append(intersections, AngleRange{greaterAngle, span})
	}

	wrapped := greaterAngleRel + greaterSweep
	if wrapped > twoPi {
		span := wrapped - twoPi
		if originSweep < span {
			span = originSweep
		}
		intersections = append(intersections, AngleRange{originAngle, span})
	}

	return intersections
}
