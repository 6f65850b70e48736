// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package skeleton

import (
	"strconv"
	"strings"

	"github.com/stickfig/kinematics/math2d"
)

// Skeleton is a named, rooted tree of nodes and bones. A Skeleton does
// not own its nodes and bones — its World does — it only holds
// name-keyed references into the World's storage.
type Skeleton struct {
	owner    *World
	name     string
	root     *Node
	userData interface{}
	nodes    map[string]*Node
	bones    map[string]*Bone
}

func newSkeleton(owner *World) *Skeleton {

	return &Skeleton{
		owner: owner,
		nodes: make(map[string]*Node),
		bones: make(map[string]*Bone),
	}
}

// Name returns the skeleton's name, unique within its world.
func (s *Skeleton) Name() string {

	return s.name
}

func (s *Skeleton) setName(name string) {

	s.name = name
}

// Empty reports whether the skeleton has no root node yet.
func (s *Skeleton) Empty() bool {

	return s.root == nil
}

// RootNode returns the skeleton's root node.
func (s *Skeleton) RootNode() (*Node, bool) {

	if s.root == nil {
		return nil, false
	}
	return s.root, true
}

func (s *Skeleton) setRoot(n *Node) {

	s.root = n
}

// Owner returns the world that owns the skeleton's storage.
func (s *Skeleton) Owner() *World {

	return s.owner
}

// UserData returns the arbitrary value last attached to s with
// SetUserData, or nil.
func (s *Skeleton) UserData() interface{} {

	return s.userData
}

// SetUserData attaches an arbitrary value to s.
func (s *Skeleton) SetUserData(data interface{}) {

	s.userData = data
}

// ClearUserData removes any value attached to s.
func (s *Skeleton) ClearUserData() {

	s.userData = nil
}

// NodeByName looks up one of the skeleton's nodes by name.
func (s *Skeleton) NodeByName(name string) (*Node, bool) {

	n, ok := s.nodes[name]
	return n, ok
}

// BoneByName looks up one of the skeleton's bones by name.
func (s *Skeleton) BoneByName(name string) (*Bone, bool) {

	b, ok := s.bones[name]
	return b, ok
}

// ContainsNode reports whether the skeleton has a node with the given
// name.
func (s *Skeleton) ContainsNode(name string) bool {

	_, ok := s.nodes[name]
	return ok
}

// ContainsBone reports whether the skeleton has a bone with the given
// name.
func (s *Skeleton) ContainsBone(name string) bool {

	_, ok := s.bones[name]
	return ok
}

// Nodes returns every node belonging to the skeleton, in no particular
// order.
func (s *Skeleton) Nodes() []*Node {

	out := make([]*Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		out = append(out, n)
	}
	return out
}

// Bones returns every bone belonging to the skeleton, in no
// particular order.
func (s *Skeleton) Bones() []*Bone {

	out := make([]*Bone, 0, len(s.bones))
	for _, b := range s.bones {
		out = append(out, b)
	}
	return out
}

func (s *Skeleton) registerNode(n *Node) {

	s.nodes[n.name] = n
	if s.root == nil {
		s.root = n
	}
}

func (s *Skeleton) registerBone(b *Bone) {

	s.bones[b.name] = b
}

// RenameNode renames one of the skeleton's nodes, failing if the new
// name is already taken.
func (s *Skeleton) RenameNode(n *Node, newName string) Result {

	if s.ContainsNode(newName) {
		return NonUniqueName
	}
	oldName := n.name
	n.setName(newName)
	delete(s.nodes, oldName)
	s.nodes[newName] = n
	return Success
}

// RenameBone renames one of the skeleton's bones, failing if the new
// name is already taken.
func (s *Skeleton) RenameBone(b *Bone, newName string) Result {

	if s.ContainsBone(newName) {
		return NonUniqueName
	}
	oldName := b.name
	b.setName(newName)
	delete(s.bones, oldName)
	s.bones[newName] = b
	return Success
}

// CurrentPose captures the world position of every node in the
// skeleton, keyed by node name.
func (s *Skeleton) CurrentPose() map[string]math2d.Point {

	pose := make(map[string]math2d.Point, len(s.nodes))
	for name, n := range s.nodes {
		pose[name] = n.WorldPos()
	}
	return pose
}

// SetPose restores a pose previously captured with CurrentPose. It
// fails with OutOfBounds if the pose doesn't name exactly the
// skeleton's current nodes.
func (s *Skeleton) SetPose(pose map[string]math2d.Point) Result {

	if len(pose) != len(s.nodes) {
		return OutOfBounds
	}
	for name := range pose {
		if _, ok := s.nodes[name]; !ok {
			return OutOfBounds
		}
	}
	for name, pt := range pose {
		s.nodes[name].SetWorldPos(pt)
	}
	return Success
}

// Apply transforms every node in the skeleton by m. Bones move
// implicitly, since their endpoints are nodes.
func (s *Skeleton) Apply(m *math2d.Matrix3) {

	for _, n := range s.nodes {
		n.Apply(m)
	}
}

// CopyTo deep-copies the skeleton's nodes and bones, by name, into a
// new skeleton in dstWorld. An empty newName reuses the source
// skeleton's name.
func (s *Skeleton) CopyTo(dstWorld *World, newName string) (*Skeleton, Result) {

	name := newName
	if name == "" {
		name = s.name
	}
	dst, res := dstWorld.CreateSkeletonNamed(name)
	if res != Success {
		return nil, res
	}
	for _, n := range s.Nodes() {
		copied, res := n.copyTo(dst)
		if res != Success {
			return nil, res
		}
		if n.IsRoot() {
			dst.setRoot(copied)
		}
	}
	for _, b := range s.Bones() {
		if _, res := b.copyTo(dst); res != Success {
			return nil, res
		}
	}
	return dst, Success
}

// onNewBone re-derives every node and bone name reachable from the
// skeleton's root after a bone merge brought a second skeleton's nodes
// and bones into this one. Names collapse to their prefix (stripping
// a trailing "-N" disambiguator) and are then handed out again in
// traversal order, so two merged skeletons that each had a "bone-1"
// come out as "bone" and "bone-1" rather than colliding. It also
// re-homes every merged-in node's owner to s: the nodes walked in from
// the other skeleton still point at it, which by now has been dropped
// from the world's skeleton table.
func (s *Skeleton) onNewBone() {

	root, ok := s.RootNode()
	if !ok {
		return
	}

	var orderedNodes []*Node
	var orderedBones []*Bone
	Walk(root,
		func(n *Node) VisitResult {
			n.owner = s
			orderedNodes = append(orderedNodes, n)
			return Continue
		},
		func(b *Bone) VisitResult {
			orderedBones = append(orderedBones, b)
			return Continue
		},
		false,
	)

	for _, n := range orderedNodes {
		if n != root && n.name == "root" {
			// A second, merged-in root would otherwise collide with
			// the receiving skeleton's own "root"; rename it to the
			// generic "node" base so the uniquifying pass below gives
			// it "node" or "node-N" instead.
			n.setName("node")
			break
		}
	}

	s.nodes = make(map[string]*Node, len(orderedNodes))
	s.bones = make(map[string]*Bone, len(orderedBones))

	for name, n := range uniqueNames(orderedNodes, func(n *Node) string { return n.name }) {
		n.setName(name)
		s.nodes[name] = n
	}
	for name, b := range uniqueNames(orderedBones, func(b *Bone) string { return b.name }) {
		b.setName(name)
		s.bones[name] = b
	}
}

// uniqueNames assigns each item a name derived from its current name
// with any trailing "-N" disambiguator stripped, appending "-1", "-2"
// etc for the second and later item sharing a stripped name. Input
// order is preserved so repeated runs over an unchanged traversal
// order are stable.
func uniqueNames[T any](items []T, nameOf func(T) string) map[string]T {

	seen := make(map[string]int)
	out := make(map[string]T, len(items))
	for _, item := range items {
		base := normalizeName(nameOf(item))
		index := seen[base]
		seen[base] = index + 1
		name := base
		if index > 0 {
			name = base + "-" + strconv.Itoa(index)
		}
		out[name] = item
	}
	return out
}

// normalizeName strips a trailing "-N" disambiguator (N a positive
// integer) from a name, leaving the rest unchanged.
func normalizeName(name string) string {

	if name == "" {
		return name
	}
	hyphen := strings.LastIndexByte(name, '-')
	if hyphen < 0 || hyphen == len(name)-1 {
		return name
	}
	suffix := name[hyphen+1:]
	for _, c := range suffix {
		if c < '0' || c > '9' {
			return name
		}
	}
	if strings.TrimLeft(suffix, "0") == "" {
		return name
	}
	return name[:hyphen]
}
