// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package persist encodes and decodes a skeleton.World as a JSON
// document: one object per skeleton, naming its nodes and bones
// explicitly rather than relying on traversal order.
package persist

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/stickfig/kinematics/skeleton"
)

// CurrentVersion is the document schema version Encode writes.
const CurrentVersion = 1

type document struct {
	Version   int                `json:"version"`
	Skeletons []skeletonDocument `json:"skeletons"`
}

type skeletonDocument struct {
	Name  string         `json:"name"`
	Root  string         `json:"root"`
	Nodes []nodeDocument `json:"nodes"`
	Bones []boneDocument `json:"bones"`
}

type nodeDocument struct {
	Name string        `json:"name"`
	Pos  pointDocument `json:"pos"`
}

type pointDocument struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type boneDocument struct {
	Name          string                 `json:"name"`
	U             string                 `json:"u"`
	V             string                 `json:"v"`
	RotConstraint *rotConstraintDocument `json:"rot_constraint,omitempty"`
}

type rotConstraintDocument struct {
	RelativeToParent bool    `json:"relative_to_parent"`
	StartAngle       float64 `json:"start_angle"`
	SpanAngle        float64 `json:"span_angle"`
}

// Encode serializes every skeleton in w into a document, in
// alphabetical order by skeleton, node and bone name so that the
// output is deterministic regardless of internal map iteration order.
func Encode(w *skeleton.World) ([]byte, error) {

	doc := document{Version: CurrentVersion}

	names := w.SkeletonNames()
	sort.Strings(names)
	for _, name := range names {
		skel, _ := w.Skeleton(name)
		sd, err := encodeSkeleton(skel)
		if err != nil {
			return nil, err
		}
		doc.Skeletons = append(doc.Skeletons, sd)
	}

	return json.MarshalIndent(&doc, "", "  ")
}

func encodeSkeleton(skel *skeleton.Skeleton) (skeletonDocument, error) {

	root, ok := skel.RootNode()
	if !ok {
		return skeletonDocument{}, skeleton.OutOfBounds
	}
	sd := skeletonDocument{Name: skel.Name(), Root: root.Name()}

	var nodeNames []string
	for _, n := range skel.Nodes() {
		nodeNames = append(nodeNames, n.Name())
	}
	sort.Strings(nodeNames)
	for _, name := range nodeNames {
		n, _ := skel.NodeByName(name)
		pos := n.WorldPos()
		sd.Nodes = append(sd.Nodes, nodeDocument{Name: name, Pos: pointDocument{X: pos.X, Y: pos.Y}})
	}

	var boneNames []string
	for _, b := range skel.Bones() {
		boneNames = append(boneNames, b.Name())
	}
	sort.Strings(boneNames)
	for _, name := range boneNames {
		b, _ := skel.BoneByName(name)
		bd := boneDocument{Name: name, U: b.ParentNode().Name(), V: b.ChildNode().Name()}
		if rc, ok := b.RotationConstraint(); ok {
			bd.RotConstraint = &rotConstraintDocument{
				RelativeToParent: rc.RelativeToParent,
				StartAngle:       rc.StartAngle,
				SpanAngle:        rc.SpanAngle,
			}
		}
		sd.Bones = append(sd.Bones, bd)
	}

	return sd, nil
}

// Decode parses data and builds a fresh skeleton.World from it. The
// world is assembled entirely in a staging instance and only returned
// once every skeleton has parsed and linked successfully, so a caller
// that keeps its previous world around on error never observes a
// partially-loaded one.
func Decode(data []byte) (*skeleton.World, error) {

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, skeleton.InvalidJSON
	}

	staging := skeleton.NewWorld()
	for _, sd := range doc.Skeletons {
		if err := decodeSkeleton(staging, sd); err != nil {
			return nil, err
		}
	}
	return staging, nil
}

type placedNode struct {
	node         *skeleton.Node
	declaredName string
}

type placedBone struct {
	bone         *skeleton.Bone
	declaredName string
}

func decodeSkeleton(w *skeleton.World, sd skeletonDocument) error {

	if sd.Name == "" || sd.Root == "" || len(sd.Nodes) == 0 {
		return skeleton.InvalidJSON
	}

	nodesByDeclaredName := make(map[string]*skeleton.Node, len(sd.Nodes))
	var placedNodes []placedNode

	for _, nd := range sd.Nodes {
		if nd.Name == "" {
			return skeleton.InvalidJSON
		}
		if _, dup := nodesByDeclaredName[nd.Name]; dup {
			return skeleton.InvalidJSON
		}
		// Each node can only enter the world as the root of its own
		// skeleton; CreateBone below merges these singleton skeletons
		// together in document order.
		tempSkel := w.CreateSkeleton(nd.Pos.X, nd.Pos.Y)
		root, _ := tempSkel.RootNode()
		nodesByDeclaredName[nd.Name] = root
		placedNodes = append(placedNodes, placedNode{node: root, declaredName: nd.Name})
	}

	bonesByDeclaredName := make(map[string]*skeleton.Bone, len(sd.Bones))
	var placedBones []placedBone

	for _, bd := range sd.Bones {
		if bd.Name == "" {
			return skeleton.InvalidJSON
		}
		if _, dup := bonesByDeclaredName[bd.Name]; dup {
			return skeleton.InvalidJSON
		}
		u, ok := nodesByDeclaredName[bd.U]
		if !ok {
			return skeleton.NotFound
		}
		v, ok := nodesByDeclaredName[bd.V]
		if !ok {
			return skeleton.NotFound
		}

		b, res := w.CreateBone(bd.Name, u, v)
		if !res.OK() {
			return res
		}
		bonesByDeclaredName[bd.Name] = b
		placedBones = append(placedBones, placedBone{bone: b, declaredName: bd.Name})
	}

	// Constraints are set once every bone exists: a relative-to-parent
	// constraint needs its parent bone, and the document's bone order
	// (alphabetical, as Encode writes it) need not list parents first.
	for _, bd := range sd.Bones {
		if bd.RotConstraint == nil {
			continue
		}
		b := bonesByDeclaredName[bd.Name]
		res := b.SetRotationConstraint(bd.RotConstraint.StartAngle, bd.RotConstraint.SpanAngle, bd.RotConstraint.RelativeToParent)
		if res != skeleton.Success {
			return res
		}
	}

	rootNode, ok := nodesByDeclaredName[sd.Root]
	if !ok || !rootNode.IsRoot() {
		return skeleton.InvalidJSON
	}
	skel := rootNode.Owner()

	if err := restoreDeclaredNames(skel, placedNodes, placedBones); err != nil {
		return err
	}

	if skel.Name() != sd.Name {
		if res := w.SetSkeletonName(skel, sd.Name); res != skeleton.Success {
			return res
		}
	}
	return nil
}

// restoreDeclaredNames re-asserts every node's and bone's name to
// exactly what the document declared. Every CreateBone call above
// merges the node's singleton skeleton into the growing one, and a
// merge re-derives every name in the result for uniqueness — the
// right behavior for interactive editing, but at odds with a document
// format whose whole point is that its declared names are already
// unique and authoritative. The rename happens through disposable
// temporary names first, so a declared name reclaiming a slot another
// node is about to vacate never collides with it mid-pass.
func restoreDeclaredNames(skel *skeleton.Skeleton, nodes []placedNode, bones []placedBone) error {

	for i, p := range nodes {
		if res := skel.RenameNode(p.node, tempName("node", i)); res != skeleton.Success {
			return res
		}
	}
	for i, p := range bones {
		if res := skel.RenameBone(p.bone, tempName("bone", i)); res != skeleton.Success {
			return res
		}
	}
	for _, p := range nodes {
		if res := skel.RenameNode(p.node, p.declaredName); res != skeleton.Success {
			return res
		}
	}
	for _, p := range bones {
		if res := skel.RenameBone(p.bone, p.declaredName); res != skeleton.Success {
			return res
		}
	}
	return nil
}

func tempName(kind string, i int) string {

	return "__persist_tmp_" + kind + "_" + strconv.Itoa(i)
}
