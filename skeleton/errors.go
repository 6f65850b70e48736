// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package skeleton implements the graph model of an articulated figure:
// nodes, bones, the skeletons that group them by name, and the world
// that owns their storage.
package skeleton

// Result is the single error enumeration shared by every package in
// this module: structural errors from the graph model and outcome
// codes from the FABRIK solver are both Results. A zero Result reads
// as Success, so a freshly-declared Result never needs a separate "ok"
// sentinel.
type Result int

const (
	// Success indicates the operation completed with no error.
	Success Result = iota

	// MultiParentNode indicates a node was asked to accept a second
	// incoming bone; nodes have at most one parent bone.
	MultiParentNode

	// CyclicBones indicates an operation would close a cycle in the
	// bone graph.
	CyclicBones

	// NonUniqueName indicates a requested name is already in use
	// within the scope that must be unique.
	NonUniqueName

	// NotFound indicates a name or identity did not resolve to an
	// existing node, bone or skeleton.
	NotFound

	// NoParent indicates an operation that requires a parent bone was
	// attempted on a root node.
	NoParent

	// OutOfBounds indicates an argument or state outside what the
	// operation accepts (e.g. a pose that does not name exactly the
	// skeleton's nodes, or a skeleton with no root node).
	OutOfBounds

	// InvalidJSON indicates a persisted document failed to parse or
	// did not match the expected schema.
	InvalidJSON

	// CrossSkeletonBone indicates a bone operation mixed nodes that
	// belong to different skeletons.
	CrossSkeletonBone

	// FabrikTargetReached indicates every targeted node reached its
	// target within tolerance.
	FabrikTargetReached

	// FabrikConverged indicates the solver stopped because successive
	// iterations no longer reduced target error, without every target
	// being reached.
	FabrikConverged

	// FabrikMixed indicates some targeted nodes reached their target
	// and others only converged.
	FabrikMixed

	// FabrikNoSolutionFound indicates the solver exhausted its
	// iteration budget with at least one targeted node neither
	// reaching nor converging on its target.
	FabrikNoSolutionFound

	// UnknownError is a catch-all for conditions that should not be
	// reachable but are reported rather than panicked.
	UnknownError
)

var resultText = map[Result]string{
	Success:               "success",
	MultiParentNode:       "node already has a parent bone",
	CyclicBones:           "operation would create a cycle in the bone graph",
	NonUniqueName:         "name is not unique in its scope",
	NotFound:              "name or identity not found",
	NoParent:              "node has no parent bone",
	OutOfBounds:           "value out of bounds",
	InvalidJSON:           "invalid JSON document",
	CrossSkeletonBone:     "bone spans more than one skeleton",
	FabrikTargetReached:   "fabrik: every target reached",
	FabrikConverged:       "fabrik: converged without reaching every target",
	FabrikMixed:           "fabrik: some targets reached, others only converged",
	FabrikNoSolutionFound: "fabrik: no solution found",
	UnknownError:          "unknown error",
}

// Error implements the error interface, so a Result can be returned
// and compared anywhere Go code expects an error.
func (r Result) Error() string {

	if s, ok := resultText[r]; ok {
		return s
	}
	return "unknown error"
}

// OK reports whether r represents a successful outcome. FabrikMixed is
// deliberately not OK: it means at least one target was not reached.
func (r Result) OK() bool {

	return r == Success || r == FabrikTargetReached
}
