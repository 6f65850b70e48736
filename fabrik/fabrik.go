// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fabrik implements the FABRIK (forward-and-backward reaching
// inverse kinematics) solver: given one or more target positions and
// optionally a set of pinned nodes, it repositions a skeleton's nodes
// to reach those targets while respecting bone lengths and rotation
// constraints.
package fabrik

import (
	"github.com/stickfig/kinematics/constraint"
	"github.com/stickfig/kinematics/math2d"
	"github.com/stickfig/kinematics/skeleton"
)

// Options configures a Solve call.
type Options struct {
	// MaxIterations caps the outer reach-for-targets loop.
	MaxIterations int
	// Tolerance is the distance below which a node is considered to
	// have reached its target, or to have stopped moving between
	// iterations.
	Tolerance float64
	// MaxAngDelta caps how far any single bone may rotate away from
	// its world rotation at the start of the Solve call; zero disables
	// the cap.
	MaxAngDelta float64
}

// DefaultOptions mirrors the teacher domain's usual defaults: a
// generous iteration budget and a tight but not unreasonable
// tolerance.
func DefaultOptions() Options {

	return Options{
		MaxIterations: 100,
		Tolerance:     0.005,
	}
}

// Target pairs a node with the world position it should move toward.
type Target struct {
	Node *skeleton.Node
	Pos  math2d.Point
}

type targetedNode struct {
	node     *skeleton.Node
	targetPos math2d.Point
	prevPos   math2d.Point
	hasPrev   bool
}

type boneInfo struct {
	length   float64
	rotation float64
}

// Solve repositions the nodes reachable from effectors' skeleton
// toward their target positions. pinned nodes are held fixed at their
// own current position and are satisfied before effectors are
// relaxed again, the same priority order the original algorithm uses
// so that pins act as anchors rather than being dragged by the
// effectors' reach.
//
// Solve returns skeleton.FabrikTargetReached if every targeted node
// (effector or pin) ends within tolerance of its target,
// skeleton.FabrikConverged if every one of them stopped moving short
// of its target, skeleton.FabrikMixed if some reached their target and
// the rest stopped moving short of it, and
// skeleton.FabrikNoSolutionFound if the iteration cap was hit while at
// least one was still neither at its target nor stopped — the
// discrimination the original implementation's own TODO left
// unfinished.
func Solve(effectors []Target, pinned []*skeleton.Node, opts Options) skeleton.Result {

	if len(effectors) == 0 {
		return skeleton.Success
	}

	boneTbl := buildBoneTable(effectors[0].Node)

	pins := make([]*targetedNode, len(pinned))
	for i, n := range pinned {
		pins[i] = &targetedNode{node: n, targetPos: n.WorldPos()}
	}
	targets := make([]*targetedNode, len(effectors))
	for i, e := range effectors {
		targets[i] = &targetedNode{node: e.Node, targetPos: e.Pos}
	}

	all := append(append([]*targetedNode{}, pins...), targets...)
	hasPins := len(pins) > 0

	iter := 0
	for {
		iter++
		if iter >= opts.MaxIterations {
			return finalResult(all, opts.Tolerance)
		}
		updatePrevPositions(all)

		solveForMultipleTargets(targets, boneTbl, opts, !hasPins)
		if hasPins {
			solveForMultipleTargets(pins, boneTbl, opts, true)
		}

		if foundSolution(all, opts.Tolerance) {
			return finalResult(all, opts.Tolerance)
		}
	}
}

func buildBoneTable(start *skeleton.Node) map[*skeleton.Bone]boneInfo {

	tbl := make(map[*skeleton.Bone]boneInfo)
	skeleton.Walk(start, nil, func(b *skeleton.Bone) skeleton.VisitResult {
		tbl[b] = boneInfo{length: b.ScaledLength(), rotation: b.WorldRotation()}
		return skeleton.Continue
	}, false)
	return tbl
}

func updatePrevPositions(nodes []*targetedNode) {

	for _, n := range nodes {
		n.prevPos = n.node.WorldPos()
		n.hasPrev = true
	}
}

func solveForMultipleTargets(targets []*targetedNode, boneTbl map[*skeleton.Bone]boneInfo, opts Options, useConstraints bool) {

	j := 0
	for {
		j++
		if j > opts.MaxIterations {
			return
		}
		for _, t := range targets {
			performOnePass(t.node, t.targetPos, boneTbl, useConstraints, opts.MaxAngDelta)
		}
		if foundSolution(targets, opts.Tolerance) {
			return
		}
	}
}

func performOnePass(start *skeleton.Node, targetPt math2d.Point, boneTbl map[*skeleton.Bone]boneInfo, useConstraints bool, maxAngDelta float64) {

	start.SetWorldPos(targetPt)

	skeleton.WalkHierarchy(start, func(prev, curr *skeleton.Bone) skeleton.VisitResult {
		n := constraint.Neighborhood{StartNode: start, Prev: prev, Current: curr}
		leader := n.CurrentNode()
		follower := curr.OppositeNode(leader)

		info := boneTbl[curr]
		newFollowerPos := math2d.PointOnLineAtDistance(leader.WorldPos(), follower.WorldPos(), info.length)
		newFollowerPos = n.ApplyAll(newFollowerPos, useConstraints, maxAngDelta, info.rotation)

		follower.SetWorldPos(newFollowerPos)
		return skeleton.Continue
	})
}

func targetSatisfaction(t *targetedNode, tolerance float64) skeleton.Result {

	if math2d.Distance(t.node.WorldPos(), t.targetPos) < tolerance {
		return skeleton.FabrikTargetReached
	}
	if t.hasPrev && math2d.Distance(t.node.WorldPos(), t.prevPos) < tolerance {
		return skeleton.FabrikConverged
	}
	return skeleton.FabrikNoSolutionFound
}

func isSatisfied(t *targetedNode, tolerance float64) bool {

	r := targetSatisfaction(t, tolerance)
	return r == skeleton.FabrikTargetReached || r == skeleton.FabrikConverged
}

func foundSolution(targets []*targetedNode, tolerance float64) bool {

	for _, t := range targets {
		if !isSatisfied(t, tolerance) {
			return false
		}
	}
	return true
}

// finalResult inspects every targeted node's outcome and discriminates
// among the four FABRIK result codes, rather than collapsing to a
// single reached/not-reached bit.
func finalResult(all []*targetedNode, tolerance float64) skeleton.Result {

	var anyReached, anyConverged, anyUnsolved bool
	for _, t := range all {
		switch targetSatisfaction(t, tolerance) {
		case skeleton.FabrikTargetReached:
			anyReached = true
		case skeleton.FabrikConverged:
			anyConverged = true
		default:
			anyUnsolved = true
		}
	}

	switch {
	case anyUnsolved:
		return skeleton.FabrikNoSolutionFound
	case anyReached && anyConverged:
		return skeleton.FabrikMixed
	case anyConverged:
		return skeleton.FabrikConverged
	default:
		return skeleton.FabrikTargetReached
	}
}
