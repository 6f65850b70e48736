package fabrik

import (
	"math"
	"testing"

	"github.com/stickfig/kinematics/math2d"
	"github.com/stickfig/kinematics/skeleton"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTwoBoneChain(t *testing.T) (*skeleton.Node, *skeleton.Bone, *skeleton.Node, *skeleton.Bone, *skeleton.Node) {
	t.Helper()

	w := skeleton.NewWorld()
	skel := w.CreateSkeleton(0, 0)
	root, _ := skel.RootNode()

	midSkel := w.CreateSkeleton(1, 0)
	mid, _ := midSkel.RootNode()
	boneA, res := w.CreateBone("bone-a", root, mid)
	require.Equal(t, skeleton.Success, res)

	tipSkel := w.CreateSkeleton(2, 0)
	tip, _ := tipSkel.RootNode()
	boneB, res := w.CreateBone("bone-b", mid, tip)
	require.Equal(t, skeleton.Success, res)

	return root, boneA, mid, boneB, tip
}

func TestSolveReachesTargetWithinReach(t *testing.T) {
	root, _, _, _, tip := buildTwoBoneChain(t)
	_ = root

	opts := DefaultOptions()
	res := Solve([]Target{{Node: tip, Pos: math2d.Point{X: 1, Y: 1}}}, nil, opts)

	assert.Equal(t, skeleton.FabrikTargetReached, res)
	assert.InDelta(t, 1, tip.WorldPos().X, opts.Tolerance*2)
	assert.InDelta(t, 1, tip.WorldPos().Y, opts.Tolerance*2)
}

func TestSolveUnreachableTargetConverges(t *testing.T) {
	_, _, _, _, tip := buildTwoBoneChain(t)

	opts := DefaultOptions()
	// total chain length is 2, so (100,100) can never be reached.
	res := Solve([]Target{{Node: tip, Pos: math2d.Point{X: 100, Y: 100}}}, nil, opts)

	assert.True(t, res == skeleton.FabrikConverged || res == skeleton.FabrikNoSolutionFound)
}

func TestSolvePreservesBoneLengths(t *testing.T) {
	root, boneA, _, boneB, tip := buildTwoBoneChain(t)
	lenA := boneA.ScaledLength()
	lenB := boneB.ScaledLength()
	_ = root

	Solve([]Target{{Node: tip, Pos: math2d.Point{X: 0.5, Y: 1.5}}}, nil, DefaultOptions())

	assert.InDelta(t, lenA, boneA.ScaledLength(), 1e-6)
	assert.InDelta(t, lenB, boneB.ScaledLength(), 1e-6)
}

func TestSolveWithPinnedRootHoldsItInPlace(t *testing.T) {
	root, _, _, _, tip := buildTwoBoneChain(t)
	rootPos := root.WorldPos()

	Solve([]Target{{Node: tip, Pos: math2d.Point{X: -1, Y: 1}}}, []*skeleton.Node{root}, DefaultOptions())

	assert.Equal(t, rootPos, root.WorldPos())
}

func TestSolveRespectsAbsoluteRotationConstraint(t *testing.T) {
	root, _, _, boneB, tip := buildTwoBoneChain(t)

	res := boneB.SetRotationConstraint(0, math.Pi/8, false)
	require.Equal(t, skeleton.Success, res)
	_ = root

	Solve([]Target{{Node: tip, Pos: math2d.Point{X: 0, Y: -2}}}, nil, DefaultOptions())

	// the target direction lies outside [0, pi/8]; the nearer endpoint is 0.
	rot := boneB.WorldRotation()
	assert.InDelta(t, 0, rot, 1e-9,
		"world rotation should snap to the nearer end of the constrained range")
}

func TestSolveNoEffectorsIsNoop(t *testing.T) {
	res := Solve(nil, nil, DefaultOptions())
	assert.Equal(t, skeleton.Success, res)
}
