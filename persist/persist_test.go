package persist

import (
	"math"
	"testing"

	"github.com/stickfig/kinematics/skeleton"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSampleWorld(t *testing.T) *skeleton.World {
	t.Helper()

	w := skeleton.NewWorld()
	skel := w.CreateSkeleton(0, 0)
	root, _ := skel.RootNode()
	require.Equal(t, skeleton.Success, skel.RenameNode(root, "hip"))

	midSkel := w.CreateSkeleton(1, 0)
	mid, _ := midSkel.RootNode()
	knee, res := w.CreateBone("upper-leg", root, mid)
	require.Equal(t, skeleton.Success, res)
	finalSkel := knee.Owner()
	require.Equal(t, skeleton.Success, finalSkel.RenameNode(mid, "knee"))

	tipSkel := w.CreateSkeleton(1, 1)
	tip, _ := tipSkel.RootNode()
	ankleBone, res := w.CreateBone("lower-leg", mid, tip)
	require.Equal(t, skeleton.Success, res)
	require.Equal(t, skeleton.Success, ankleBone.Owner().RenameNode(tip, "ankle"))

	res = ankleBone.SetRotationConstraint(-math.Pi/4, math.Pi/2, true)
	require.Equal(t, skeleton.Success, res)

	require.Equal(t, skeleton.Success, w.SetSkeletonName(knee.Owner(), "leg"))

	return w
}

func TestEncodeDecodeRoundTripPreservesNamesAndPositions(t *testing.T) {
	w := buildSampleWorld(t)

	data, err := Encode(w)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)

	skel, ok := decoded.Skeleton("leg")
	require.True(t, ok)

	hip, ok := skel.NodeByName("hip")
	require.True(t, ok)
	assert.InDelta(t, 0, hip.WorldPos().X, 1e-9)
	assert.InDelta(t, 0, hip.WorldPos().Y, 1e-9)

	ankle, ok := skel.NodeByName("ankle")
	require.True(t, ok)
	assert.InDelta(t, 1, ankle.WorldPos().X, 1e-9)
	assert.InDelta(t, 1, ankle.WorldPos().Y, 1e-9)

	lowerLeg, ok := skel.BoneByName("lower-leg")
	require.True(t, ok)
	rc, ok := lowerLeg.RotationConstraint()
	require.True(t, ok)
	assert.True(t, rc.RelativeToParent)
	assert.InDelta(t, -math.Pi/4, rc.StartAngle, 1e-9)
	assert.InDelta(t, math.Pi/2, rc.SpanAngle, 1e-9)
}

func TestEncodeDecodeRoundTripIsStable(t *testing.T) {
	w := buildSampleWorld(t)

	first, err := Encode(w)
	require.NoError(t, err)

	decoded, err := Decode(first)
	require.NoError(t, err)

	second, err := Encode(decoded)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	_, err := Decode([]byte("not json"))
	assert.Equal(t, skeleton.InvalidJSON, err)
}

func TestDecodeRejectsMissingBoneEndpoint(t *testing.T) {
	doc := `{
		"version": 1,
		"skeletons": [{
			"name": "leg",
			"root": "hip",
			"nodes": [{"name": "hip", "pos": {"x": 0, "y": 0}}],
			"bones": [{"name": "upper-leg", "u": "hip", "v": "missing"}]
		}]
	}`
	_, err := Decode([]byte(doc))
	assert.Equal(t, skeleton.NotFound, err)
}

func TestDecodeRejectsDuplicateNodeName(t *testing.T) {
	doc := `{
		"version": 1,
		"skeletons": [{
			"name": "leg",
			"root": "hip",
			"nodes": [
				{"name": "hip", "pos": {"x": 0, "y": 0}},
				{"name": "hip", "pos": {"x": 1, "y": 0}}
			],
			"bones": []
		}]
	}`
	_, err := Decode([]byte(doc))
	assert.Equal(t, skeleton.InvalidJSON, err)
}

func TestDecodeRejectsRelativeConstraintOnRootBone(t *testing.T) {
	doc := `{
		"version": 1,
		"skeletons": [{
			"name": "leg",
			"root": "hip",
			"nodes": [
				{"name": "hip", "pos": {"x": 0, "y": 0}},
				{"name": "knee", "pos": {"x": 1, "y": 0}}
			],
			"bones": [{
				"name": "upper-leg", "u": "hip", "v": "knee",
				"rot_constraint": {"relative_to_parent": true, "start_angle": 0, "span_angle": 1}
			}]
		}]
	}`
	_, err := Decode([]byte(doc))
	assert.Equal(t, skeleton.NoParent, err)
}

func TestDecodeFailurePreservesPreviousWorld(t *testing.T) {
	w := buildSampleWorld(t)
	data, err := Encode(w)
	require.NoError(t, err)

	_, err = Decode([]byte("{invalid"))
	require.Error(t, err)

	// w itself is untouched by a failed Decode call — the staging
	// world it builds into is discarded, never swapped in.
	_, ok := w.Skeleton("leg")
	assert.True(t, ok)
	_ = data
}
