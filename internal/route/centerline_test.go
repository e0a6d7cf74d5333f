package route

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/pathsafety/internal/perception"
)

// straightLine builds a centerline along +X with 1m spacing.
func straightLine(points int) Centerline {
	line := make(Centerline, points)
	for i := range line {
		line[i] = PathPoint{
			Pose:   perception.Pose{Position: r2.Vec{X: float64(i)}},
			LaneID: 1,
		}
	}
	return line
}

func TestNearestSegmentIndex(t *testing.T) {
	t.Parallel()

	line := straightLine(5) // x = 0..4

	assert.Equal(t, 0, line.NearestSegmentIndex(r2.Vec{X: -2, Y: 0}))
	assert.Equal(t, 0, line.NearestSegmentIndex(r2.Vec{X: 0.4, Y: 1}))
	assert.Equal(t, 2, line.NearestSegmentIndex(r2.Vec{X: 2.4, Y: -1}))
	// Just before a vertex the point projects onto the incoming segment.
	assert.Equal(t, 1, line.NearestSegmentIndex(r2.Vec{X: 1.9, Y: 0}))
	assert.Equal(t, 3, line.NearestSegmentIndex(r2.Vec{X: 10, Y: 0}))

	assert.Equal(t, -1, Centerline{}.NearestSegmentIndex(r2.Vec{}))
	assert.Equal(t, -1, straightLine(1).NearestSegmentIndex(r2.Vec{}))
}

func TestSignedArcLength(t *testing.T) {
	t.Parallel()

	line := straightLine(11) // x = 0..10

	t.Run("ahead is positive", func(t *testing.T) {
		t.Parallel()
		d := line.SignedArcLength(r2.Vec{X: 2}, r2.Vec{X: 7.5})
		assert.InDelta(t, 5.5, d, 1e-9)
	})

	t.Run("behind is negative", func(t *testing.T) {
		t.Parallel()
		d := line.SignedArcLength(r2.Vec{X: 6}, r2.Vec{X: 1})
		assert.InDelta(t, -5, d, 1e-9)
	})

	t.Run("lateral offset does not change arc length", func(t *testing.T) {
		t.Parallel()
		d := line.SignedArcLength(r2.Vec{X: 2, Y: 3}, r2.Vec{X: 7, Y: -2})
		assert.InDelta(t, 5, d, 1e-9)
	})

	t.Run("same point is zero", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 0, line.SignedArcLength(r2.Vec{X: 4.2}, r2.Vec{X: 4.2}), 1e-9)
	})

	t.Run("degenerate line yields zero", func(t *testing.T) {
		t.Parallel()
		assert.Zero(t, Centerline{}.SignedArcLength(r2.Vec{}, r2.Vec{X: 5}))
	})
}

func TestToFrenet(t *testing.T) {
	t.Parallel()

	line := straightLine(5)

	fp := line.ToFrenet(r2.Vec{X: 2.5, Y: 1.5}, 2)
	assert.InDelta(t, 2.5, fp.Length, 1e-9)
	assert.InDelta(t, 1.5, fp.Distance, 1e-9)

	// Right of the path is negative lateral distance.
	fp = line.ToFrenet(r2.Vec{X: 0.5, Y: -2}, 0)
	assert.InDelta(t, 0.5, fp.Length, 1e-9)
	assert.InDelta(t, -2, fp.Distance, 1e-9)

	assert.Equal(t, FrenetPoint{}, line.ToFrenet(r2.Vec{}, -1))
	assert.Equal(t, FrenetPoint{}, line.ToFrenet(r2.Vec{}, 4))
}

func TestInterpolatePose(t *testing.T) {
	t.Parallel()

	t.Run("interpolates within segments", func(t *testing.T) {
		t.Parallel()
		line := straightLine(5)
		pose, ok := line.InterpolatePose(2.25)
		require.True(t, ok)
		assert.InDelta(t, 2.25, pose.Position.X, 1e-9)
		assert.InDelta(t, 0, pose.Yaw, 1e-9)
	})

	t.Run("clamps to the ends", func(t *testing.T) {
		t.Parallel()
		line := straightLine(5)
		pose, ok := line.InterpolatePose(-3)
		require.True(t, ok)
		assert.InDelta(t, 0, pose.Position.X, 1e-9)

		pose, ok = line.InterpolatePose(100)
		require.True(t, ok)
		assert.InDelta(t, 4, pose.Position.X, 1e-9)
	})

	t.Run("yaw follows segment heading", func(t *testing.T) {
		t.Parallel()
		line := Centerline{
			{Pose: perception.Pose{Position: r2.Vec{X: 0, Y: 0}}},
			{Pose: perception.Pose{Position: r2.Vec{X: 1, Y: 0}}},
			{Pose: perception.Pose{Position: r2.Vec{X: 1, Y: 2}}},
		}
		pose, ok := line.InterpolatePose(1.5)
		require.True(t, ok)
		assert.InDelta(t, 1, pose.Position.X, 1e-9)
		assert.InDelta(t, 0.5, pose.Position.Y, 1e-9)
		assert.InDelta(t, math.Pi/2, pose.Yaw, 1e-9)
	})

	t.Run("empty centerline is undefined", func(t *testing.T) {
		t.Parallel()
		_, ok := Centerline{}.InterpolatePose(0)
		assert.False(t, ok)
	})
}

func TestTotalLength(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 4, straightLine(5).TotalLength(), 1e-9)
	assert.Zero(t, Centerline{}.TotalLength())
	assert.Zero(t, straightLine(1).TotalLength())
}

func TestStaticNetworkAdjacency(t *testing.T) {
	t.Parallel()

	current := Lanelet{ID: 1}
	left := Lanelet{ID: 2}
	leftOpp := Lanelet{ID: 3}
	network := &StaticNetwork{
		Left:         map[int64][]Lanelet{1: {left}},
		LeftOpposite: map[int64][]Lanelet{1: {leftOpp}},
	}

	t.Run("same direction only by default", func(t *testing.T) {
		t.Parallel()
		got := network.LeftSharedLanelets(current, false, false)
		require.Len(t, got, 1)
		assert.Equal(t, int64(2), got[0].ID)
	})

	t.Run("includeOpposite appends opposite lanes", func(t *testing.T) {
		t.Parallel()
		got := network.LeftSharedLanelets(current, true, false)
		require.Len(t, got, 2)
		assert.Equal(t, int64(3), got[1].ID)
	})

	t.Run("invertOpposite keeps only opposite lanes", func(t *testing.T) {
		t.Parallel()
		got := network.LeftSharedLanelets(current, true, true)
		require.Len(t, got, 1)
		assert.Equal(t, int64(3), got[0].ID)
	})

	t.Run("right side with no table is empty", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, network.RightSharedLanelets(current, true, false))
	})
}
