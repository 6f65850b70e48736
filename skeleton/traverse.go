// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package skeleton

// VisitResult is returned by a visitor to control how a traversal
// proceeds after the current node or bone has been visited.
type VisitResult int

const (
	// Continue proceeds to the neighbors of the just-visited item.
	Continue VisitResult = iota
	// SkipBranch abandons the current branch but continues the
	// traversal elsewhere.
	SkipBranch
	// Stop ends the traversal immediately.
	Stop
)

// NodeVisitor is called once for every node a traversal reaches.
type NodeVisitor func(*Node) VisitResult

// BoneVisitor is called once for every bone a traversal reaches.
type BoneVisitor func(*Bone) VisitResult

type nodeOrBone struct {
	node *Node
	bone *Bone
}

// Walk performs a bipartite depth-first traversal of the node/bone
// graph starting at root. visitNode and visitBone are each called
// exactly once per node/bone reached; either may be nil to skip that
// half of the graph. When downstreamOnly is true, the walk never
// crosses a node's parent-bone edge, so it only reaches what lies
// below root in the skeleton's rooted tree.
func Walk(root *Node, visitNode NodeVisitor, visitBone BoneVisitor, downstreamOnly bool) {

	walk(nodeOrBone{node: root}, visitNode, visitBone, downstreamOnly)
}

// WalkFromBone is Walk's counterpart for starting the traversal at a
// bone rather than a node.
func WalkFromBone(root *Bone, visitNode NodeVisitor, visitBone BoneVisitor, downstreamOnly bool) {

	walk(nodeOrBone{bone: root}, visitNode, visitBone, downstreamOnly)
}

func walk(root nodeOrBone, visitNode NodeVisitor, visitBone BoneVisitor, downstreamOnly bool) {

	stack := []nodeOrBone{root}
	visitedNodes := make(map[*Node]bool)
	visitedBones := make(map[*Bone]bool)

	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		var result VisitResult
		if item.node != nil {
			if visitedNodes[item.node] {
				continue
			}
			if visitNode != nil {
				result = visitNode(item.node)
			}
			visitedNodes[item.node] = true
		} else {
			if visitedBones[item.bone] {
				continue
			}
			if visitBone != nil {
				result = visitBone(item.bone)
			}
			visitedBones[item.bone] = true
		}

		if result == Stop {
			return
		}
		if result == SkipBranch {
			continue
		}

		stack = append(stack, neighbors(item, downstreamOnly)...)
	}
}

func neighbors(item nodeOrBone, downstreamOnly bool) []nodeOrBone {

	var out []nodeOrBone
	if item.node != nil {
		for _, c := range item.node.ChildBones() {
			out = append(out, nodeOrBone{bone: c})
		}
		if !downstreamOnly {
			if p, ok := item.node.ParentBone(); ok {
				out = append(out, nodeOrBone{bone: p})
			}
		}
		return out
	}

	if !downstreamOnly {
		out = append(out, nodeOrBone{node: item.bone.ParentNode()})
	}
	out = append(out, nodeOrBone{node: item.bone.ChildNode()})
	return out
}

// VisitNodes visits every node reachable downstream of j.
func VisitNodes(j *Node, visit NodeVisitor) {

	Walk(j, visit, nil, true)
}

// VisitBones visits every bone reachable downstream of j.
func VisitBones(j *Node, visit BoneVisitor) {

	Walk(j, nil, visit, true)
}

// HierarchyVisitor is called once for every bone reached by
// WalkHierarchy, along with the bone that was visited immediately
// before it (nil for the bones adjacent to the walk's starting node).
type HierarchyVisitor func(prev *Bone, curr *Bone) VisitResult

// WalkHierarchy performs the constrained walk used by forward
// kinematics and the FABRIK solver: starting from every bone adjacent
// to src, it follows a bone's children and its parent bone back toward
// the skeleton root, and follows sibling bones only for a bone that has
// no parent bone (i.e. one attached to the skeleton's own root node).
// The prev bone passed with each visited bone is therefore its parent
// or one of its children, never a sibling, except between bones that
// share the skeleton's root node.
func WalkHierarchy(src *Node, visit HierarchyVisitor) {

	type item struct {
		prev *Bone
		curr *Bone
	}

	var stack []item
	for _, b := range src.AdjacentBones() {
		stack = append(stack, item{nil, b})
	}

	visited := make(map[*Bone]bool)
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[it.curr] {
			continue
		}
		result := visit(it.prev, it.curr)
		visited[it.curr] = true

		if result == Stop {
			return
		}
		if result == SkipBranch {
			continue
		}

		for _, n := range hierarchyNeighbors(it.curr, visited) {
			stack = append(stack, item{it.curr, n})
		}
	}
}

func hierarchyNeighbors(b *Bone, visited map[*Bone]bool) []*Bone {

	var candidates []*Bone
	candidates = append(candidates, b.ChildBones()...)
	if parent, ok := b.ParentBone(); ok {
		candidates = append(candidates, parent)
	} else {
		candidates = append(candidates, b.SiblingBones()...)
	}

	var out []*Bone
	for _, c := range candidates {
		if !visited[c] {
			out = append(out, c)
		}
	}
	return out
}
