// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package skeleton

import "github.com/stickfig/kinematics/math2d"

// Node is a point in an articulated figure: the shared endpoint of
// zero or more bones. Every node belongs to exactly one Skeleton and
// has at most one parent bone; a node with no parent bone is its
// skeleton's root.
type Node struct {
	name       string
	x, y       float64
	owner      *Skeleton
	parentBone *Bone
	children   []*Bone
	userData   interface{}
}

func newNode(owner *Skeleton, name string, x, y float64) *Node {

	return &Node{name: name, x: x, y: y, owner: owner}
}

// Name returns the node's name, unique within its skeleton.
func (n *Node) Name() string {

	return n.name
}

func (n *Node) setName(name string) {

	n.name = name
}

// IsRoot reports whether n is its skeleton's root node.
func (n *Node) IsRoot() bool {

	return n.parentBone == nil
}

// ParentBone returns the bone whose child end is n, if any.
func (n *Node) ParentBone() (*Bone, bool) {

	if n.parentBone == nil {
		return nil, false
	}
	return n.parentBone, true
}

// ChildBones returns the bones whose parent end is n.
func (n *Node) ChildBones() []*Bone {

	out := make([]*Bone, len(n.children))
	copy(out, n.children)
	return out
}

// AdjacentBones returns every bone touching n: its parent bone (unless
// n is root) followed by its child bones.
func (n *Node) AdjacentBones() []*Bone {

	bones := make([]*Bone, 0, len(n.children)+1)
	if !n.IsRoot() {
		bones = append(bones, n.parentBone)
	}
	bones = append(bones, n.children...)
	return bones
}

func (n *Node) setParent(b *Bone) {

	n.parentBone = b
}

func (n *Node) addChild(b *Bone) {

	n.children = append(n.children, b)
}

// Owner returns the skeleton n belongs to.
func (n *Node) Owner() *Skeleton {

	return n.owner
}

// WorldPos returns n's position in world space.
func (n *Node) WorldPos() math2d.Point {

	return math2d.Point{X: n.x, Y: n.y}
}

// SetWorldPos sets n's position in world space.
func (n *Node) SetWorldPos(pt math2d.Point) {

	n.x = pt.X
	n.y = pt.Y
}

// Apply transforms n's position by m.
func (n *Node) Apply(m *math2d.Matrix3) {

	n.SetWorldPos(math2d.Transform(n.WorldPos(), m))
}

// UserData returns the arbitrary value last attached to n with
// SetUserData, or nil.
func (n *Node) UserData() interface{} {

	return n.userData
}

// SetUserData attaches an arbitrary value to n.
func (n *Node) SetUserData(data interface{}) {

	n.userData = data
}

// ClearUserData removes any value attached to n.
func (n *Node) ClearUserData() {

	n.userData = nil
}

func (n *Node) copyTo(skel *Skeleton) (*Node, Result) {

	if skel.ContainsNode(n.name) {
		return nil, NonUniqueName
	}
	copied := skel.owner.createNode(skel, n.name, n.x, n.y)
	skel.registerNode(copied)
	return copied, Success
}
