// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package constraint derives and applies the rotation limits a bone's
// rotation constraint imposes during forward kinematics and FABRIK
// solving.
package constraint

import (
	"math"

	"github.com/stickfig/kinematics/math2d"
	"github.com/stickfig/kinematics/skeleton"
)

// Neighborhood is the local context a rotation constraint is
// evaluated against: the bone currently being positioned (Current),
// the bone visited immediately before it in the traversal (Prev, nil
// at the start of a walk), and the node the walk started from
// (StartNode, needed to recover the current node when Prev is nil).
type Neighborhood struct {
	StartNode *skeleton.Node
	Prev      *skeleton.Bone
	Current   *skeleton.Bone
}

// CurrentNode returns the node shared between Current and Prev, or
// StartNode if there is no Prev.
func (n Neighborhood) CurrentNode() *skeleton.Node {

	if n.Prev == nil {
		return n.StartNode
	}
	shared, ok := n.Current.SharedNode(n.Prev)
	if !ok {
		panic("constraint: current and prev bones share no node")
	}
	return shared
}

// PredNode returns the node on the far side of Prev from CurrentNode,
// i.e. the node the walk was at before reaching Current. It reports
// false when there is no Prev.
func (n Neighborhood) PredNode() (*skeleton.Node, bool) {

	if n.Prev == nil {
		return nil, false
	}
	return n.Prev.OppositeNode(n.CurrentNode()), true
}

// forwardRelative derives the constraint for the ordinary case: Current
// has a relative-to-parent constraint and Prev is its parent bone.
func (n Neighborhood) forwardRelative() (math2d.AngleRange, bool) {

	if n.Prev == nil {
		return math2d.AngleRange{}, false
	}
	c, ok := n.Current.RotationConstraint()
	if !ok || !c.RelativeToParent {
		return math2d.AngleRange{}, false
	}
	if parent, ok := n.Current.ParentBone(); ok && parent != n.Prev {
		return math2d.AngleRange{}, false
	}

	currPos := n.CurrentNode().WorldPos()
	predNode, _ := n.PredNode()
	anchor := math2d.AngleFromUToV(predNode.WorldPos(), currPos)

	return math2d.AngleRange{
		Start: math2d.NormalizeAngle(c.StartAngle + anchor),
		Span:  c.SpanAngle,
	}, true
}

// backwardRelative derives the constraint for the mirrored case: Prev
// has a relative-to-parent constraint and Current is Prev's parent
// bone, i.e. the walk is heading back up through a constrained joint.
func (n Neighborhood) backwardRelative() (math2d.AngleRange, bool) {

	if n.Prev == nil {
		return math2d.AngleRange{}, false
	}
	predConstraint, ok := n.Prev.RotationConstraint()
	if !ok || !predConstraint.RelativeToParent {
		return math2d.AngleRange{}, false
	}
	predParent, ok := n.Prev.ParentBone()
	if !ok || predParent != n.Current {
		return math2d.AngleRange{}, false
	}

	currPos := n.CurrentNode().WorldPos()
	predNode, _ := n.PredNode()
	anchor := math2d.AngleFromUToV(predNode.WorldPos(), currPos)
	start := -(predConstraint.StartAngle + predConstraint.SpanAngle)

	return math2d.AngleRange{
		Start: math2d.NormalizeAngle(start + anchor),
		Span:  predConstraint.SpanAngle,
	}, true
}

// relative returns the forward-relative constraint if one applies,
// else the backward-relative constraint.
func (n Neighborhood) relative() (math2d.AngleRange, bool) {

	if r, ok := n.forwardRelative(); ok {
		return r, true
	}
	return n.backwardRelative()
}

// absoluteConstraint builds a world-frame angle range, mirroring it
// across the circle when the pivot is the bone's child node instead
// of its parent node (so the same constraint reads correctly no
// matter which direction the walk is crossing the bone).
func absoluteConstraint(isForward bool, startAngle, spanAngle float64) math2d.AngleRange {

	start := startAngle
	if !isForward {
		start = math2d.NormalizeAngle(startAngle + math2d.Pi)
	}
	return math2d.AngleRange{Start: start, Span: spanAngle}
}

// absolute derives the world-frame constraint on Current, if it has a
// non-relative rotation constraint.
func (n Neighborhood) absolute() (math2d.AngleRange, bool) {

	c, ok := n.Current.RotationConstraint()
	if !ok || c.RelativeToParent {
		return math2d.AngleRange{}, false
	}
	pivot := n.CurrentNode()
	isForward := pivot == n.Current.ParentNode()
	return absoluteConstraint(isForward, c.StartAngle, c.SpanAngle), true
}

// ApplicableRanges returns every angle range that constrains Current's
// rotation in this neighborhood: its own absolute constraint (if any)
// followed by a relative constraint inherited from the walk's
// direction (if any). Zero, one or two ranges may be returned.
func (n Neighborhood) ApplicableRanges() []math2d.AngleRange {

	var ranges []math2d.AngleRange
	if r, ok := n.absolute(); ok {
		ranges = append(ranges, r)
	}
	if r, ok := n.relative(); ok {
		ranges = append(ranges, r)
	}
	return ranges
}

// intersectRanges intersects up to two angle ranges. With zero ranges
// it returns nil; with one, that range; with two, their set
// intersection (possibly empty, possibly two disjoint arcs).
func intersectRanges(ranges []math2d.AngleRange) []math2d.AngleRange {

	switch len(ranges) {
	case 0:
		return nil
	case 1:
		return ranges
	case 2:
		return math2d.IntersectAngleRanges(ranges[0], ranges[1])
	default:
		panic("constraint: more than two rotation constraints in one neighborhood")
	}
}

// ConstrainAngleToRanges returns theta unchanged if it already falls
// in one of ranges, otherwise the endpoint of ranges closest to theta
// by angular distance.
func ConstrainAngleToRanges(theta float64, ranges []math2d.AngleRange) float64 {

	for _, r := range ranges {
		if math2d.AngleInRange(theta, r) {
			return theta
		}
	}

	closest := theta
	closestDist := math.MaxFloat64
	for _, r := range ranges {
		for _, endpoint := range []float64{r.Start, math2d.NormalizeAngle(r.Start + r.Span)} {
			dist := math.Abs(math2d.AngularDistance(theta, endpoint))
			if dist < closestDist {
				closestDist = dist
				closest = endpoint
			}
		}
	}
	return closest
}

// Apply projects theta onto the angle range(s) this neighborhood's
// rotation constraints allow, returning theta unchanged (ok=false) if
// Current carries no applicable constraint. When the constraints
// conflict and their intersection is empty, it falls back to the
// first constraint rather than leaving theta unconstrained.
func (n Neighborhood) Apply(theta float64) (result float64, ok bool) {

	ranges := n.ApplicableRanges()
	if len(ranges) == 0 {
		return theta, false
	}

	intersection := intersectRanges(ranges)
	if len(intersection) == 0 {
		intersection = ranges[:1]
	}
	return ConstrainAngleToRanges(theta, intersection), true
}

// ApplyToPoint projects freePt, taken as a candidate new position for
// the node opposite CurrentNode() on Current, onto the rotation
// constraints' allowed arc around CurrentNode(). When Current carries
// no applicable constraint, freePt is returned unchanged.
func (n Neighborhood) ApplyToPoint(freePt math2d.Point) math2d.Point {

	pivot := n.CurrentNode().WorldPos()
	oldTheta := math2d.AngleFromUToV(pivot, freePt)
	newTheta, ok := n.Apply(oldTheta)
	if !ok {
		return freePt
	}
	return rotateAboutByDistance(pivot, newTheta, math2d.Distance(pivot, freePt))
}

// ConstrainAngularVelocity caps how far freePt may swing Current's
// rotation away from originalRot in a single step, independent of any
// rotation constraint: it clamps the implied rotation to
// [originalRot-maxAngDelta, originalRot+maxAngDelta].
func (n Neighborhood) ConstrainAngularVelocity(originalRot, maxAngDelta float64, freePt math2d.Point) math2d.Point {

	pivot := n.CurrentNode()
	isForward := pivot == n.Current.ParentNode()
	oldTheta := math2d.AngleFromUToV(pivot.WorldPos(), freePt)

	start := math2d.NormalizeAngle(originalRot - maxAngDelta)
	newTheta := ConstrainAngleToRanges(oldTheta, []math2d.AngleRange{absoluteConstraint(isForward, start, 2.0*maxAngDelta)})

	return rotateAboutByDistance(pivot.WorldPos(), newTheta, math2d.Distance(pivot.WorldPos(), freePt))
}

// ApplyAll runs, in order, the rotation-constraint projection (when
// useConstraints) and the angular-velocity cap (when maxAngDelta>0)
// against currPos, returning the resulting point.
func (n Neighborhood) ApplyAll(currPos math2d.Point, useConstraints bool, maxAngDelta, oldBoneRotation float64) math2d.Point {

	newPos := currPos
	if useConstraints {
		newPos = n.ApplyToPoint(newPos)
	}
	if maxAngDelta > 0 {
		newPos = n.ConstrainAngularVelocity(oldBoneRotation, maxAngDelta, newPos)
	}
	return newPos
}

func rotateAboutByDistance(pivot math2d.Point, theta, d float64) math2d.Point {

	m := math2d.TranslationMatrix(pivot.X, pivot.Y).Multiply(math2d.RotationMatrix(theta))
	return math2d.Transform(math2d.Point{X: d, Y: 0}, m)
}

// Rotation constrains theta, a proposed new world rotation for b
// measured about b's parent node, against b's own rotation constraint.
// It is the single-bone entry point used by forward kinematics: b's
// parent bone, if any, stands in as the predecessor bone, so a
// relative-to-parent constraint is measured against it.
func Rotation(b *skeleton.Bone, theta float64) float64 {

	parent, _ := b.ParentBone()
	n := Neighborhood{StartNode: b.ParentNode(), Prev: parent, Current: b}
	result, ok := n.Apply(theta)
	if !ok {
		return theta
	}
	return result
}
