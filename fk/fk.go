// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fk implements the forward-kinematics mutators that move a
// bone (and, rigidly, everything downstream of it) directly, as
// opposed to fabrik's target-driven solving.
//
// These are package-level functions rather than methods on
// skeleton.Bone: both RotateBy and SetWorldRotation must consult the
// same rotation-constraint machinery the FABRIK solver uses, and a
// skeleton package that imported constraint while constraint imported
// skeleton would cycle. Keeping the mutators here, depending on both,
// breaks the cycle without duplicating the constraint logic.
package fk

import (
	"math"

	"github.com/stickfig/kinematics/constraint"
	"github.com/stickfig/kinematics/math2d"
	"github.com/stickfig/kinematics/skeleton"
)

// SetWorldRotation sets b's orientation in world space to theta. Every
// bone downstream of b keeps its own world orientation and length —
// only its position shifts, to stay attached as b's child node moves.
func SetWorldRotation(b *skeleton.Bone, theta float64) {

	type info struct {
		length        float64
		worldRotation float64
	}

	tbl := make(map[*skeleton.Bone]info)
	skeleton.WalkFromBone(b, nil, func(bone *skeleton.Bone) skeleton.VisitResult {
		tbl[bone] = info{length: bone.ScaledLength(), worldRotation: bone.WorldRotation()}
		return skeleton.Continue
	}, true)
	tbl[b] = info{length: tbl[b].length, worldRotation: theta}

	skeleton.WalkFromBone(b, nil, func(bone *skeleton.Bone) skeleton.VisitResult {
		rot := constraint.Rotation(bone, tbl[bone].worldRotation)
		u := bone.ParentNode().WorldPos()
		v := u.Add(math2d.Point{X: tbl[bone].length, Y: 0})
		bone.ChildNode().SetWorldPos(math2d.Transform(v, math2d.RotateAboutPointMatrix(u, rot)))
		return skeleton.Continue
	}, true)
}

type rotationInfo struct {
	length        float64
	relRotation   float64
	worldRotation float64
}

// buildBoneRotationTable walks the hierarchy rooted at axis, recording
// each bone's length and its rotation relative to whichever bone
// precedes it in the walk (relative to world space for the bones
// adjacent to axis itself). rotatingBone's own relative rotation is
// offset by theta. The first bone reached walking away from
// rotatingBone back through axis — recognized because it, like
// rotatingBone, touches axis — has theta subtracted back out: axis is
// a hinge, and rotating one side of it must not also swing whatever
// continues through axis on the other side.
func buildBoneRotationTable(axis *skeleton.Node, rotatingBone *skeleton.Bone, theta float64) map[*skeleton.Bone]rotationInfo {

	tbl := make(map[*skeleton.Bone]rotationInfo)
	skeleton.WalkHierarchy(axis, func(prev, curr *skeleton.Bone) skeleton.VisitResult {
		u := axis
		if prev != nil {
			if shared, ok := curr.SharedNode(prev); ok {
				u = shared
			}
		}
		v := curr.OppositeNode(u)
		worldRot := math2d.AngleFromUToV(u.WorldPos(), v.WorldPos())

		relRot := worldRot
		if prev != nil {
			relRot = worldRot - tbl[prev].worldRotation
		}
		if curr == rotatingBone {
			relRot += theta
		}
		if prev == rotatingBone && curr.HasNode(axis) {
			relRot -= theta
		}

		tbl[curr] = rotationInfo{length: curr.ScaledLength(), relRotation: relRot, worldRotation: worldRot}
		return skeleton.Continue
	})
	return tbl
}

// RotateBy rotates b by theta radians about axis, carrying every bone
// downstream of axis along rigidly except where a rotation constraint
// intervenes. A nil axis defaults to b's parent node, the ordinary
// case of rotating a bone about its own base.
func RotateBy(b *skeleton.Bone, theta float64, axis *skeleton.Node) {

	if axis == nil {
		axis = b.ParentNode()
	}

	oldTbl := buildBoneRotationTable(axis, b, theta)
	newWorldRotation := make(map[*skeleton.Bone]float64)

	skeleton.WalkHierarchy(axis, func(prev, curr *skeleton.Bone) skeleton.VisitResult {
		u := axis
		if prev != nil {
			if shared, ok := curr.SharedNode(prev); ok {
				u = shared
			}
		}
		v := curr.OppositeNode(u)

		parentWorldRotation := 0.0
		if prev != nil {
			parentWorldRotation = newWorldRotation[prev]
		}

		info := oldTbl[curr]
		rotated := math2d.RotateAboutPointMatrix(u.WorldPos(), info.relRotation+parentWorldRotation)
		newVPos := math2d.Transform(u.WorldPos().Add(math2d.Point{X: info.length, Y: 0}), rotated)

		n := constraint.Neighborhood{StartNode: axis, Prev: prev, Current: curr}
		newVPos = n.ApplyToPoint(newVPos)

		v.SetWorldPos(newVPos)
		newWorldRotation[curr] = math2d.AngleFromUToV(u.WorldPos(), v.WorldPos())
		return skeleton.Continue
	})
}

// SetLength changes b's current (scaled) length to newLen, keeping
// every bone's world orientation and its own fixed reference length
// unchanged, and cascading the resulting position shift down through
// every bone downstream of b.
func SetLength(b *skeleton.Bone, newLen float64) {

	type info struct {
		length   float64
		rotation float64
	}

	tbl := make(map[*skeleton.Bone]info)
	var topoOrder []*skeleton.Bone
	skeleton.WalkFromBone(b, nil, func(bone *skeleton.Bone) skeleton.VisitResult {
		tbl[bone] = info{length: bone.ScaledLength(), rotation: bone.WorldRotation()}
		topoOrder = append(topoOrder, bone)
		return skeleton.Continue
	}, true)
	tbl[b] = info{length: newLen, rotation: b.WorldRotation()}

	for _, bone := range topoOrder {
		in := tbl[bone]
		offset := math2d.Point{X: in.length * math.Cos(in.rotation), Y: in.length * math.Sin(in.rotation)}
		bone.ChildNode().SetWorldPos(bone.ParentNode().WorldPos().Add(offset))
	}
}
