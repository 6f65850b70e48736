// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package skeleton

import (
	"math"

	"github.com/stickfig/kinematics/math2d"
)

// RotConstraint limits the angle a bone may take, either in world
// space (RelativeToParent false) or relative to its parent bone's
// current world rotation (RelativeToParent true).
type RotConstraint struct {
	RelativeToParent bool
	StartAngle       float64
	SpanAngle        float64
}

// Bone connects two nodes, u (its parent node) and v (its child
// node). v gains bone as its parent bone; u gains bone as a child
// bone. A bone's length is fixed at construction time to its initial
// scaled length, so later uniform scaling of an ancestor bone can be
// detected via AbsoluteScale/Scale.
type Bone struct {
	name          string
	u, v          *Node
	length        float64
	rotConstraint *RotConstraint
	userData      interface{}
}

func newBone(name string, u, v *Node) *Bone {

	b := &Bone{name: name, u: u, v: v}
	v.setParent(b)
	u.addChild(b)
	b.length = b.ScaledLength()
	return b
}

// Name returns the bone's name, unique within its skeleton.
func (b *Bone) Name() string {

	return b.name
}

func (b *Bone) setName(name string) {

	b.name = name
}

// ParentNode returns the bone's parent-side node, u.
func (b *Bone) ParentNode() *Node {

	return b.u
}

// ChildNode returns the bone's child-side node, v.
func (b *Bone) ChildNode() *Node {

	return b.v
}

// OppositeNode returns whichever of u/v is not n.
func (b *Bone) OppositeNode(n *Node) *Node {

	if n == b.u {
		return b.v
	}
	return b.u
}

// HasNode reports whether n is one of the bone's two endpoints.
func (b *Bone) HasNode(n *Node) bool {

	return n == b.u || n == b.v
}

// ParentBone returns the bone attached to this bone's parent node, if
// any.
func (b *Bone) ParentBone() (*Bone, bool) {

	return b.u.ParentBone()
}

// ChildBones returns the bones attached to this bone's child node.
func (b *Bone) ChildBones() []*Bone {

	return b.v.ChildBones()
}

// SiblingBones returns the other bones sharing this bone's parent
// node.
func (b *Bone) SiblingBones() []*Bone {

	var out []*Bone
	for _, sib := range b.u.ChildBones() {
		if sib != b {
			out = append(out, sib)
		}
	}
	return out
}

// IsSibling reports whether b and other share a parent node.
func (b *Bone) IsSibling(other *Bone) bool {

	return b.ParentNode() == other.ParentNode()
}

// SharedNode returns the node common to b and other, if any.
func (b *Bone) SharedNode(other *Bone) (*Node, bool) {

	if b.u == other.u || b.u == other.v {
		return b.u, true
	}
	if b.v == other.u || b.v == other.v {
		return b.v, true
	}
	return nil, false
}

// Owner returns the skeleton b belongs to.
func (b *Bone) Owner() *Skeleton {

	return b.u.owner
}

// LineSegment returns the world positions of u and v.
func (b *Bone) LineSegment() (math2d.Point, math2d.Point) {

	return b.u.WorldPos(), b.v.WorldPos()
}

// Length returns the bone's fixed reference length, set at creation.
func (b *Bone) Length() float64 {

	return b.length
}

// ScaledLength returns the current world-space distance between u and
// v, which may differ from Length if an ancestor bone scaled it.
func (b *Bone) ScaledLength() float64 {

	u, v := b.LineSegment()
	return math2d.Distance(u, v)
}

// WorldRotation returns the bone's orientation in world space.
func (b *Bone) WorldRotation() float64 {

	u, v := b.LineSegment()
	return math.Atan2(v.Y-u.Y, v.X-u.X)
}

// Rotation returns the bone's orientation relative to its parent
// bone's world rotation, or its world rotation if it has no parent.
func (b *Bone) Rotation() float64 {

	parent, ok := b.ParentBone()
	if !ok {
		return b.WorldRotation()
	}
	return b.WorldRotation() - parent.WorldRotation()
}

// AbsoluteScale returns how much longer or shorter the bone currently
// is than its fixed reference length.
func (b *Bone) AbsoluteScale() float64 {

	return b.ScaledLength() / b.length
}

// Scale returns the bone's scale relative to its parent bone's scale,
// or its absolute scale if it has no parent.
func (b *Bone) Scale() float64 {

	parent, ok := b.ParentBone()
	if !ok {
		return b.AbsoluteScale()
	}
	return b.AbsoluteScale() / parent.AbsoluteScale()
}

// RotationConstraint returns the bone's rotation constraint, if any.
func (b *Bone) RotationConstraint() (RotConstraint, bool) {

	if b.rotConstraint == nil {
		return RotConstraint{}, false
	}
	return *b.rotConstraint, true
}

// SetRotationConstraint attaches a rotation constraint to the bone. A
// relative-to-parent constraint requires the bone to have a parent
// bone.
func (b *Bone) SetRotationConstraint(start, span float64, relativeToParent bool) Result {

	if relativeToParent {
		if _, ok := b.ParentBone(); !ok {
			return NoParent
		}
	}
	b.rotConstraint = &RotConstraint{RelativeToParent: relativeToParent, StartAngle: start, SpanAngle: span}
	return Success
}

// RemoveRotationConstraint detaches any rotation constraint from the
// bone.
func (b *Bone) RemoveRotationConstraint() {

	b.rotConstraint = nil
}

// UserData returns the arbitrary value last attached to b with
// SetUserData, or nil.
func (b *Bone) UserData() interface{} {

	return b.userData
}

// SetUserData attaches an arbitrary value to b.
func (b *Bone) SetUserData(data interface{}) {

	b.userData = data
}

// ClearUserData removes any value attached to b.
func (b *Bone) ClearUserData() {

	b.userData = nil
}

func (b *Bone) copyTo(skel *Skeleton) (*Bone, Result) {

	if skel.ContainsBone(b.name) {
		return nil, NonUniqueName
	}
	u, uok := skel.NodeByName(b.u.name)
	v, vok := skel.NodeByName(b.v.name)
	if !uok || !vok {
		return nil, NoParent
	}

	copied, res := skel.owner.createBoneInSkeleton(b.name, u, v)
	if res != Success {
		return nil, res
	}
	if b.rotConstraint != nil {
		copied.SetRotationConstraint(b.rotConstraint.StartAngle, b.rotConstraint.SpanAngle, b.rotConstraint.RelativeToParent)
	}
	skel.registerBone(copied)
	return copied, Success
}
