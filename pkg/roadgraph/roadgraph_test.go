package roadgraph_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"lintang/locroute/pkg/datastructure"
	"lintang/locroute/pkg/geo"
	"lintang/locroute/pkg/roadgraph"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func residential(id int64, oneway string, nodeIDs ...int64) datastructure.RawWay {
	tags := map[string]string{"highway": "residential"}
	if oneway != "" {
		tags["oneway"] = oneway
	}
	return datastructure.RawWay{ID: id, NodeIDs: nodeIDs, Tags: tags}
}

func abcNodes() []datastructure.RawNode {
	return []datastructure.RawNode{
		{ID: 1, Lat: 0, Lon: 0},
		{ID: 2, Lat: 0, Lon: 0.001},
		{ID: 3, Lat: 0, Lon: 0.002},
	}
}

func mustCoord(t *testing.T, lat, lon float64) geo.Coordinate {
	t.Helper()
	c, err := geo.NewCoordinate(lat, lon)
	require.NoError(t, err)
	return c
}

func TestBuildGraph(t *testing.T) {
	t.Run("single two-way way", func(t *testing.T) {
		g, stats := roadgraph.BuildGraph(abcNodes()[:2], []datastructure.RawWay{residential(10, "", 1, 2)},
			roadgraph.WithLogger(zaptest.NewLogger(t)))
		assert.Equal(t, 1, g.EdgeCount())
		assert.Equal(t, 2, g.NodeCount())
		assert.Equal(t, 2, g.DirectedEdgeCount())
		assert.Equal(t, 1, stats.WaysAccepted)
		assert.Equal(t, []int64{2}, g.Neighbors(1))
		assert.Equal(t, []int64{1}, g.Neighbors(2))
	})

	t.Run("one-way edge only forward", func(t *testing.T) {
		g, _ := roadgraph.BuildGraph(abcNodes()[:2], []datastructure.RawWay{residential(10, "yes", 1, 2)})
		_, ok := g.Edge(1, 2)
		assert.True(t, ok)
		_, ok = g.Edge(2, 1)
		assert.False(t, ok)
		assert.Equal(t, 1, g.EdgeCount())
		assert.Empty(t, g.Neighbors(2))
		assert.Equal(t, 1, g.OutDegree(1))
		assert.Equal(t, 0, g.OutDegree(2))
		assert.False(t, g.IsRoutable(2))
	})

	t.Run("reversed one-way", func(t *testing.T) {
		g, _ := roadgraph.BuildGraph(abcNodes()[:2], []datastructure.RawWay{residential(10, "-1", 1, 2)})
		_, ok := g.Edge(2, 1)
		assert.True(t, ok)
		_, ok = g.Edge(1, 2)
		assert.False(t, ok)
	})

	t.Run("parallel ways keep the faster edge", func(t *testing.T) {
		slow := datastructure.RawWay{ID: 10, NodeIDs: []int64{1, 2},
			Tags: map[string]string{"highway": "residential", "maxspeed_mph": "25"}}
		fast := datastructure.RawWay{ID: 11, NodeIDs: []int64{1, 2},
			Tags: map[string]string{"highway": "residential", "maxspeed_mph": "35"}}

		for _, order := range [][]datastructure.RawWay{{slow, fast}, {fast, slow}} {
			g, stats := roadgraph.BuildGraph(abcNodes()[:2], order)
			e, ok := g.Edge(1, 2)
			require.True(t, ok)
			assert.Equal(t, 35.0, e.SpeedMph)
			assert.Equal(t, int64(11), e.WayID)
			assert.Equal(t, 1, g.EdgeCount())
			assert.Equal(t, 2, stats.DuplicateEdgesReplaced+stats.DuplicateEdgesDropped)
		}
	})

	t.Run("equal speed keeps the first way", func(t *testing.T) {
		g, _ := roadgraph.BuildGraph(abcNodes()[:2], []datastructure.RawWay{residential(10, "", 1, 2), residential(11, "", 1, 2)})
		e, ok := g.Edge(1, 2)
		require.True(t, ok)
		assert.Equal(t, int64(10), e.WayID)
	})

	t.Run("non road highways are filtered", func(t *testing.T) {
		footway := datastructure.RawWay{ID: 10, NodeIDs: []int64{1, 2}, Tags: map[string]string{"highway": "footway"}}
		noHighway := datastructure.RawWay{ID: 11, NodeIDs: []int64{1, 2}, Tags: map[string]string{"building": "yes"}}
		g, stats := roadgraph.BuildGraph(abcNodes()[:2], []datastructure.RawWay{footway, noHighway})
		assert.Equal(t, 0, g.EdgeCount())
		assert.Equal(t, 2, stats.WaysFiltered)
		assert.Equal(t, 0, g.RoutableNodeCount())
	})

	t.Run("invalid records are skipped", func(t *testing.T) {
		nodes := append(abcNodes(), datastructure.RawNode{ID: 4, Lat: 95, Lon: 0})
		ways := []datastructure.RawWay{residential(10, "", 1), residential(11, "", 1, 2, 3)}
		g, stats := roadgraph.BuildGraph(nodes, ways)
		assert.Equal(t, 1, stats.NodesRejected)
		assert.Equal(t, 1, stats.WaysRejected)
		assert.Equal(t, 3, g.NodeCount())
		assert.Equal(t, 2, g.EdgeCount())
	})

	t.Run("self loops are skipped", func(t *testing.T) {
		g, stats := roadgraph.BuildGraph(abcNodes(), []datastructure.RawWay{residential(10, "", 1, 1, 2)})
		assert.Equal(t, 1, stats.SelfLoopsSkipped)
		_, ok := g.Edge(1, 1)
		assert.False(t, ok)
		assert.Equal(t, 1, g.EdgeCount())
	})

	t.Run("missing nodes are synthesized and never routable", func(t *testing.T) {
		g, stats := roadgraph.BuildGraph(abcNodes()[:1], []datastructure.RawWay{residential(10, "", 1, 99)})
		assert.Equal(t, 1, stats.SynthesizedNodes)
		n, ok := g.Node(99)
		require.True(t, ok)
		assert.True(t, n.Synthesized)
		assert.False(t, n.HasCoordinate())
		assert.Equal(t, 1, g.OutDegree(99))
		assert.False(t, g.IsRoutable(99))
		_, ok = g.Coordinate(99)
		assert.False(t, ok)
		n, ok = g.Node(1)
		require.True(t, ok)
		assert.True(t, n.HasCoordinate())
		assert.True(t, g.IsRoutable(1))
		assert.Equal(t, 1, g.RoutableNodeCount())
	})

	t.Run("neighbors and out edges sorted by id", func(t *testing.T) {
		nodes := []datastructure.RawNode{{ID: 5, Lat: 0, Lon: 0}, {ID: 9, Lat: 0, Lon: 0.001},
			{ID: 2, Lat: 0.001, Lon: 0}, {ID: 7, Lat: -0.001, Lon: 0}}
		ways := []datastructure.RawWay{residential(1, "", 5, 9), residential(2, "", 5, 2), residential(3, "", 5, 7)}
		g, _ := roadgraph.BuildGraph(nodes, ways)
		assert.Equal(t, []int64{2, 7, 9}, g.Neighbors(5))
		out := g.OutEdges(5)
		require.Len(t, out, 3)
		assert.Equal(t, int64(2), out[0].ToNodeID)
		assert.Equal(t, int64(9), out[2].ToNodeID)
		assert.Empty(t, g.Neighbors(12345))
	})
}

func TestBuilder(t *testing.T) {
	t.Run("add node is idempotent", func(t *testing.T) {
		b := roadgraph.NewBuilder()
		require.NoError(t, b.AddNode(datastructure.RawNode{ID: 1, Lat: 1, Lon: 1}))
		require.NoError(t, b.AddNode(datastructure.RawNode{ID: 1, Lat: 2, Lon: 2}))
		g, err := b.Build()
		require.NoError(t, err)
		n, ok := g.Node(1)
		require.True(t, ok)
		assert.Equal(t, 1.0, n.Coord.Lat())
		assert.Equal(t, 1, b.Stats().NodesDuplicate)
	})

	t.Run("late node record resolves synthesized node", func(t *testing.T) {
		b := roadgraph.NewBuilder()
		require.NoError(t, b.AddWay(residential(10, "", 1, 2)))
		require.NoError(t, b.AddNode(datastructure.RawNode{ID: 1, Lat: 0, Lon: 0}))
		g, err := b.Build()
		require.NoError(t, err)
		assert.True(t, g.IsRoutable(1))
		assert.False(t, g.IsRoutable(2))
	})

	t.Run("single record errors", func(t *testing.T) {
		b := roadgraph.NewBuilder()
		err := b.AddNode(datastructure.RawNode{ID: 1, Lat: 0, Lon: 200})
		assert.True(t, errors.Is(err, geo.ErrInvalidCoordinate))
		err = b.AddWay(residential(10, "", 1))
		assert.True(t, errors.Is(err, roadgraph.ErrWayTooShort))
	})

	t.Run("sealed after build", func(t *testing.T) {
		b := roadgraph.NewBuilder()
		_, err := b.Build()
		require.NoError(t, err)
		assert.ErrorIs(t, b.AddNode(datastructure.RawNode{ID: 1}), roadgraph.ErrBuilderSealed)
		assert.ErrorIs(t, b.AddWay(residential(10, "", 1, 2)), roadgraph.ErrBuilderSealed)
		assert.ErrorIs(t, b.AddWays([]datastructure.RawWay{residential(10, "", 1, 2)}), roadgraph.ErrBuilderSealed)
		_, err = b.Build()
		assert.ErrorIs(t, err, roadgraph.ErrBuilderSealed)
	})

	t.Run("speed table is injected", func(t *testing.T) {
		table, err := datastructure.DefaultSpeedTable().WithOverrides(map[string]float64{"residential": 12})
		require.NoError(t, err)
		g, _ := roadgraph.BuildGraph(abcNodes()[:2], []datastructure.RawWay{residential(10, "", 1, 2)},
			roadgraph.WithSpeedTable(table))
		e, ok := g.Edge(1, 2)
		require.True(t, ok)
		assert.Equal(t, 12.0, e.SpeedMph)
	})

	t.Run("node tags are not shared with the caller", func(t *testing.T) {
		tags := map[string]string{"amenity": "cafe"}
		g, _ := roadgraph.BuildGraph([]datastructure.RawNode{{ID: 1, Lat: 0, Lon: 0, Tags: tags}}, nil)
		tags["amenity"] = "bar"
		n, _ := g.Node(1)
		assert.Equal(t, "cafe", n.Tags["amenity"])
		n.Tags["amenity"] = "pub"
		again, _ := g.Node(1)
		assert.Equal(t, "cafe", again.Tags["amenity"])
	})
}

func TestNearestRoutableNode(t *testing.T) {
	t.Run("isolated node is never returned", func(t *testing.T) {
		nodes := []datastructure.RawNode{
			{ID: 1, Lat: 0, Lon: 0},
			{ID: 2, Lat: 0, Lon: 0.001},
			{ID: 4, Lat: 0.01, Lon: 0.01},
		}
		g, _ := roadgraph.BuildGraph(nodes, []datastructure.RawWay{residential(10, "", 1, 2)})
		n, ok := g.NearestRoutableNode(mustCoord(t, 0.01, 0.01))
		require.True(t, ok)
		assert.Equal(t, int64(2), n.ID)
	})

	t.Run("one-way sink is not routable", func(t *testing.T) {
		g, _ := roadgraph.BuildGraph(abcNodes()[:2], []datastructure.RawWay{residential(10, "yes", 1, 2)})
		n, ok := g.NearestRoutableNode(mustCoord(t, 0, 0.001))
		require.True(t, ok)
		assert.Equal(t, int64(1), n.ID)
	})

	t.Run("empty graph", func(t *testing.T) {
		g, _ := roadgraph.BuildGraph(nil, nil)
		_, ok := g.NearestRoutableNode(mustCoord(t, 0, 0))
		assert.False(t, ok)
	})

	t.Run("ties resolve to the lowest id", func(t *testing.T) {
		nodes := []datastructure.RawNode{
			{ID: 8, Lat: 0, Lon: 0.001},
			{ID: 3, Lat: 0, Lon: -0.001},
		}
		g, _ := roadgraph.BuildGraph(nodes, []datastructure.RawWay{residential(10, "", 8, 3)})
		n, ok := g.NearestRoutableNode(mustCoord(t, 0, 0))
		require.True(t, ok)
		assert.Equal(t, int64(3), n.ID)
	})

	t.Run("near the antimeridian", func(t *testing.T) {
		nodes := []datastructure.RawNode{
			{ID: 1, Lat: 0, Lon: 179.999},
			{ID: 2, Lat: 0, Lon: -179.999},
		}
		g, _ := roadgraph.BuildGraph(nodes, []datastructure.RawWay{residential(10, "", 1, 2)})
		n, ok := g.NearestRoutableNode(mustCoord(t, 0, -179.9995))
		require.True(t, ok)
		assert.Equal(t, int64(2), n.ID)
	})

	t.Run("matches a linear scan", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))
		nodes := make([]datastructure.RawNode, 0, 400)
		ways := make([]datastructure.RawWay, 0, 200)
		for i := int64(0); i < 400; i++ {
			nodes = append(nodes, datastructure.RawNode{
				ID:  i,
				Lat: 60 + rng.Float64()*0.2,
				Lon: 10 + rng.Float64()*0.4,
			})
			if i%2 == 1 && i%7 != 0 {
				ways = append(ways, residential(i, "", i-1, i))
			}
		}
		g, _ := roadgraph.BuildGraph(nodes, ways)

		for q := 0; q < 200; q++ {
			query := mustCoord(t, 59.95+rng.Float64()*0.3, 9.95+rng.Float64()*0.5)
			got, ok := g.NearestRoutableNode(query)
			require.True(t, ok)

			wantID, wantDist := int64(-1), math.Inf(1)
			for _, id := range g.NodeIDs() {
				if !g.IsRoutable(id) {
					continue
				}
				n, _ := g.Node(id)
				if d := geo.HaversineDistance(query, n.Coord); d < wantDist {
					wantID, wantDist = id, d
				}
			}
			assert.Equal(t, wantID, got.ID)
		}
	})
}
