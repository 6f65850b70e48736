package constraint

import (
	"math"
	"testing"

	"github.com/stickfig/kinematics/math2d"
	"github.com/stickfig/kinematics/skeleton"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoBoneChain(t *testing.T) (*skeleton.World, *skeleton.Skeleton, *skeleton.Node, *skeleton.Bone, *skeleton.Node, *skeleton.Bone, *skeleton.Node) {
	t.Helper()

	w := skeleton.NewWorld()
	skel := w.CreateSkeleton(0, 0)
	root, _ := skel.RootNode()

	mid, boneA := attachChild(t, w, "bone-a", root, 1, 0)
	tip, boneB := attachChild(t, w, "bone-b", mid, 2, 0)

	return w, skel, root, boneA, mid, boneB, tip
}

// attachChild connects a new node at (x, y) to parent via a bone
// named boneName. Only World/Skeleton's public surface is used, since
// a node can only join an existing skeleton by being the root of a
// fresh one that then merges in via CreateBone — skeleton's own
// package tests exercise creation more directly.
func attachChild(t *testing.T, w *skeleton.World, boneName string, parent *skeleton.Node, x, y float64) (*skeleton.Node, *skeleton.Bone) {
	t.Helper()

	tempSkel := w.CreateSkeleton(x, y)
	tempRoot, _ := tempSkel.RootNode()

	b, res := w.CreateBone(boneName, parent, tempRoot)
	require.Equal(t, skeleton.Success, res)
	return b.ChildNode(), b
}

func TestAbsoluteConstraintMirrorsAcrossPivot(t *testing.T) {
	forward := absoluteConstraint(true, 0.1, 0.5)
	backward := absoluteConstraint(false, 0.1, 0.5)

	assert.InDelta(t, 0.1, forward.Start, 1e-9)
	assert.InDelta(t, math2d.NormalizeAngle(0.1+math.Pi), backward.Start, 1e-9)
}

func TestConstrainAngleToRangesReturnsClosestEndpoint(t *testing.T) {
	ranges := []math2d.AngleRange{{Start: 0, Span: math.Pi / 4}}

	// theta inside the range passes through unchanged.
	got := ConstrainAngleToRanges(math.Pi/8, ranges)
	assert.InDelta(t, math.Pi/8, got, 1e-9)

	// theta outside snaps to the nearer endpoint.
	got = ConstrainAngleToRanges(math.Pi, ranges)
	assert.InDelta(t, math.Pi/4, got, 1e-9)
}

func TestNeighborhoodApplyNoConstraintIsNoop(t *testing.T) {
	_, _, root, boneA, _, _, _ := twoBoneChain(t)

	n := Neighborhood{StartNode: root, Prev: nil, Current: boneA}
	theta, ok := n.Apply(1.23)
	assert.False(t, ok)
	assert.InDelta(t, 1.23, theta, 1e-9)
}

func TestNeighborhoodApplyAbsoluteConstraint(t *testing.T) {
	_, _, root, boneA, _, _, _ := twoBoneChain(t)

	res := boneA.SetRotationConstraint(0, math.Pi/4, false)
	require.Equal(t, skeleton.Success, res)

	n := Neighborhood{StartNode: root, Prev: nil, Current: boneA}
	theta, ok := n.Apply(math.Pi)
	require.True(t, ok)
	assert.InDelta(t, math.Pi/4, theta, 1e-9)
}

func TestNeighborhoodForwardRelativeConstraint(t *testing.T) {
	_, _, root, boneA, _, boneB, _ := twoBoneChain(t)

	res := boneB.SetRotationConstraint(-math.Pi/8, math.Pi/4, true)
	require.Equal(t, skeleton.Success, res)

	n := Neighborhood{StartNode: root, Prev: boneA, Current: boneB}
	ranges := n.ApplicableRanges()
	require.Len(t, ranges, 1)
}

func TestRotationAppliesBoneOwnConstraint(t *testing.T) {
	_, _, _, boneA, _, _, _ := twoBoneChain(t)

	res := boneA.SetRotationConstraint(0, math.Pi/4, false)
	require.Equal(t, skeleton.Success, res)

	got := Rotation(boneA, math.Pi)
	assert.InDelta(t, math.Pi/4, got, 1e-9)
}

func TestApplyToPointPreservesDistanceWhenUnconstrained(t *testing.T) {
	_, _, root, boneA, _, _, _ := twoBoneChain(t)

	n := Neighborhood{StartNode: root, Prev: nil, Current: boneA}
	free := math2d.Point{X: 5, Y: 5}
	got := n.ApplyToPoint(free)
	assert.Equal(t, free, got)
}
