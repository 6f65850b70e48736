// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package skeleton

import (
	"sort"
	"strconv"
	"strings"

	"github.com/stickfig/kinematics/math2d"
)

// World owns the storage for every node, bone and skeleton created
// through it. A Skeleton never outlives the World that created its
// nodes and bones, and never holds them by value — only by pointer
// into the World's arena.
type World struct {
	nodes     []*Node
	bones     []*Bone
	skeletons map[string]*Skeleton
}

// NewWorld returns an empty world.
func NewWorld() *World {

	return &World{skeletons: make(map[string]*Skeleton)}
}

// Clear discards every skeleton, node and bone the world owns.
func (w *World) Clear() {

	w.nodes = nil
	w.bones = nil
	w.skeletons = make(map[string]*Skeleton)
}

// Empty reports whether the world has no skeletons.
func (w *World) Empty() bool {

	return len(w.skeletons) == 0
}

// CreateSkeleton creates a new skeleton rooted at (x, y), with an
// auto-generated unique name.
func (w *World) CreateSkeleton(x, y float64) *Skeleton {

	name := uniqueName("skeleton", w.SkeletonNames())
	skel := newSkeleton(w)
	skel.setName(name)
	root := w.createNode(skel, "root", x, y)
	skel.registerNode(root)
	w.skeletons[name] = skel
	return skel
}

// CreateSkeletonNamed creates a new, empty (rootless) skeleton with
// the given name, failing if the name is already taken.
func (w *World) CreateSkeletonNamed(name string) (*Skeleton, Result) {

	if w.ContainsSkeleton(name) {
		return nil, NonUniqueName
	}
	skel := newSkeleton(w)
	skel.setName(name)
	w.skeletons[name] = skel
	return skel, Success
}

// Skeleton looks up a skeleton by name.
func (w *World) Skeleton(name string) (*Skeleton, bool) {

	s, ok := w.skeletons[name]
	return s, ok
}

// DeleteSkeleton removes a skeleton and every node and bone it owns.
func (w *World) DeleteSkeleton(name string) Result {

	skel, ok := w.skeletons[name]
	if !ok {
		return NotFound
	}

	remainingNodes := w.nodes[:0:0]
	for _, n := range w.nodes {
		if n.owner != skel {
			remainingNodes = append(remainingNodes, n)
		}
	}
	remainingBones := w.bones[:0:0]
	for _, b := range w.bones {
		if b.Owner() != skel {
			remainingBones = append(remainingBones, b)
		}
	}
	w.nodes = remainingNodes
	w.bones = remainingBones
	delete(w.skeletons, name)
	return Success
}

// SkeletonNames returns the names of every skeleton in the world, in
// no particular order.
func (w *World) SkeletonNames() []string {

	out := make([]string, 0, len(w.skeletons))
	for name := range w.skeletons {
		out = append(out, name)
	}
	return out
}

// ContainsSkeleton reports whether the world has a skeleton with the
// given name.
func (w *World) ContainsSkeleton(name string) bool {

	_, ok := w.skeletons[name]
	return ok
}

// Skeletons returns every skeleton in the world, in no particular
// order.
func (w *World) Skeletons() []*Skeleton {

	out := make([]*Skeleton, 0, len(w.skeletons))
	for _, s := range w.skeletons {
		out = append(out, s)
	}
	return out
}

// SetSkeletonName renames a skeleton already in the world, failing if
// the new name is already taken.
func (w *World) SetSkeletonName(skel *Skeleton, newName string) Result {

	if w.ContainsSkeleton(newName) {
		return NonUniqueName
	}
	oldName := skel.name
	skel.setName(newName)
	w.skeletons[newName] = skel
	delete(w.skeletons, oldName)
	return Success
}

func (w *World) createNode(skel *Skeleton, name string, x, y float64) *Node {

	n := newNode(skel, name, x, y)
	w.nodes = append(w.nodes, n)
	return n
}

// buildBone constructs a bone between u and v unconditionally and adds
// it to the world's storage. Callers are responsible for any
// same-skeleton or cross-skeleton validation before calling this.
func (w *World) buildBone(name string, u, v *Node) *Bone {

	b := newBone(name, u, v)
	w.bones = append(w.bones, b)
	return b
}

// createBoneInSkeleton creates a bone between two nodes that must
// already belong to the same skeleton. This is the intra-skeleton
// sanity check used when copying a skeleton node-by-node and
// bone-by-bone (CopyTo): u and v are always looked up within the same
// destination skeleton, so a mismatch here indicates a genuine bug
// rather than an ordinary merge.
func (w *World) createBoneInSkeleton(name string, u, v *Node) (*Bone, Result) {

	if !v.IsRoot() {
		return nil, MultiParentNode
	}
	if u.owner != v.owner {
		return nil, CrossSkeletonBone
	}
	return w.buildBone(name, u, v), Success
}

// CreateBone creates a bone between u and v. v must currently be a
// root node; if it is the root of a different skeleton than u, the
// two skeletons are merged into u's skeleton and every node and bone
// name in the merged skeleton is re-derived to stay unique. Creating a
// bone within a single skeleton (u and v already share one) would
// close a cycle and is rejected.
func (w *World) CreateBone(name string, u, v *Node) (*Bone, Result) {

	if !v.IsRoot() {
		return nil, MultiParentNode
	}

	skelU, skelV := u.owner, v.owner
	if skelU == skelV {
		return nil, CyclicBones
	}

	delete(w.skeletons, skelV.name)

	boneName := name
	if boneName == "" {
		boneName = "bone-1"
	}
	b := w.buildBone(boneName, u, v)
	skelU.onNewBone()
	return b, Success
}

// CopySkeleton deep-copies skel's nodes and bones, by name, into a new
// skeleton in w (skel may belong to w itself or to another world). An
// empty newName reuses skel's own name.
func (w *World) CopySkeleton(skel *Skeleton, newName string) (*Skeleton, Result) {

	return skel.CopyTo(w, newName)
}

// Apply transforms every skeleton in the world by m.
func (w *World) Apply(m *math2d.Matrix3) {

	for _, s := range w.skeletons {
		s.Apply(m)
	}
}

func isPrefix(prefix, s string) bool {

	return strings.HasPrefix(s, prefix)
}

// extractPrefixedIntegers returns, for every name starting with
// prefix, the positive integer suffix following it (names with no
// valid positive-integer suffix are skipped).
func extractPrefixedIntegers(prefix string, names []string) []int {

	var out []int
	for _, n := range names {
		if !isPrefix(prefix, n) {
			continue
		}
		numStr := n[len(prefix):]
		v, err := strconv.Atoi(numStr)
		if err != nil || v <= 0 {
			continue
		}
		out = append(out, v)
	}
	return out
}

// smallestExcludedPositiveInteger returns the smallest positive
// integer not present in nums.
func smallestExcludedPositiveInteger(nums []int) int {

	n := len(nums) + 1
	appears := make([]bool, n+1)
	for _, v := range nums {
		if v < len(appears) {
			appears[v] = true
		}
	}
	for i := 1; i < len(appears); i++ {
		if !appears[i] {
			return i
		}
	}
	return n
}

// uniqueName returns prefix-N for the smallest N not already used by
// names, e.g. uniqueName("skeleton", []string{"skeleton-1"}) ==
// "skeleton-2".
func uniqueName(prefix string, names []string) string {

	sort.Strings(names)
	prefixWithHyphen := prefix + "-"
	taken := extractPrefixedIntegers(prefixWithHyphen, names)
	index := smallestExcludedPositiveInteger(taken)
	return prefix + "-" + strconv.Itoa(index)
}
