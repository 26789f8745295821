package routing_test

import (
	"context"
	"errors"
	"testing"

	"lintang/locroute/pkg/datastructure"
	"lintang/locroute/pkg/engine/routing"
	"lintang/locroute/pkg/geo"
	"lintang/locroute/pkg/roadgraph"
	"lintang/locroute/pkg/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func mustCoord(t *testing.T, lat, lon float64) geo.Coordinate {
	t.Helper()
	c, err := geo.NewCoordinate(lat, lon)
	require.NoError(t, err)
	return c
}

func residential(id int64, oneway string, nodeIDs ...int64) datastructure.RawWay {
	tags := map[string]string{"highway": "residential"}
	if oneway != "" {
		tags["oneway"] = oneway
	}
	return datastructure.RawWay{ID: id, NodeIDs: nodeIDs, Tags: tags}
}

// A(0,0) B(0,0.001) C(0,0.002), plus isolated D far away
func testGraph(t *testing.T, ways ...datastructure.RawWay) *roadgraph.Graph {
	t.Helper()
	nodes := []datastructure.RawNode{
		{ID: 1, Lat: 0, Lon: 0},
		{ID: 2, Lat: 0, Lon: 0.001},
		{ID: 3, Lat: 0, Lon: 0.002},
		{ID: 4, Lat: 0.5, Lon: 0.5},
	}
	g, _ := roadgraph.BuildGraph(nodes, ways)
	return g
}

func TestRoute(t *testing.T) {
	ctx := context.Background()

	t.Run("routes along A-B-C", func(t *testing.T) {
		g := testGraph(t, residential(10, "", 1, 2, 3))
		svc := routing.NewService(zaptest.NewLogger(t), g, routing.DefaultConfig())

		for _, metric := range []routing.Metric{routing.MetricDistance, routing.MetricTime} {
			res, err := svc.Route(ctx, mustCoord(t, 0.0001, 0), mustCoord(t, 0.0001, 0.002), metric)
			require.NoError(t, err)
			require.True(t, res.Found)
			assert.Equal(t, routing.ReasonNone, res.Reason)
			assert.Equal(t, []int64{1, 2, 3}, res.Route.NodeIDs())
			assert.Equal(t, int64(1), res.Start.Node.ID)
			assert.Equal(t, int64(3), res.End.Node.ID)
			assert.Greater(t, res.Route.TotalTimeMinutes(), 0.0)
		}
	})

	t.Run("snapped point lies on the road", func(t *testing.T) {
		g := testGraph(t, residential(10, "", 1, 2, 3))
		res, err := routing.Route(ctx, g, mustCoord(t, 0.0001, 0.0003), mustCoord(t, 0, 0.002), routing.MetricDistance)
		require.NoError(t, err)
		require.True(t, res.Found)
		assert.InDelta(t, 0, res.Start.OnRoad.Lat(), 1e-7)
		assert.InDelta(t, 0.0003, res.Start.OnRoad.Lon(), 1e-7)
	})

	t.Run("same node", func(t *testing.T) {
		g := testGraph(t, residential(10, "", 1, 2, 3))
		res, err := routing.Route(ctx, g, mustCoord(t, 0, 0.001), mustCoord(t, 0.00001, 0.001), routing.MetricDistance)
		require.NoError(t, err)
		assert.False(t, res.Found)
		assert.Equal(t, routing.ReasonSameNode, res.Reason)
		assert.True(t, res.Route.Empty())
	})

	t.Run("destination beyond the snap threshold", func(t *testing.T) {
		g := testGraph(t, residential(10, "", 1, 2, 3))
		// ~11 km north of C
		res, err := routing.Route(ctx, g, mustCoord(t, 0, 0), mustCoord(t, 0.1, 0.002), routing.MetricDistance)
		require.NoError(t, err)
		assert.False(t, res.Found)
		assert.Equal(t, routing.ReasonOutOfCoverage, res.Reason)
		assert.Greater(t, res.End.DistanceKm, 5.0)

		wide := routing.NewService(nil, g, routing.Config{MaxSnapDistanceKm: 20})
		res, err = wide.Route(ctx, mustCoord(t, 0, 0), mustCoord(t, 0.1, 0.002), routing.MetricDistance)
		require.NoError(t, err)
		assert.True(t, res.Found)
	})

	t.Run("one-way C to B blocks A to C", func(t *testing.T) {
		g := testGraph(t, residential(10, "", 1, 2), residential(11, "yes", 3, 2))
		res, err := routing.Route(ctx, g, mustCoord(t, 0, 0), mustCoord(t, 0, 0.0021), routing.MetricDistance)
		require.NoError(t, err)
		assert.False(t, res.Found)
		assert.Equal(t, routing.ReasonNoRoute, res.Reason)
	})

	t.Run("isolated node is never snapped", func(t *testing.T) {
		g := testGraph(t, residential(10, "", 1, 2, 3))
		res, err := routing.Route(ctx, g, mustCoord(t, 0, 0), mustCoord(t, 0.5, 0.5), routing.MetricDistance)
		require.NoError(t, err)
		assert.NotEqual(t, int64(4), res.End.Node.ID)
		assert.Equal(t, routing.ReasonOutOfCoverage, res.Reason)
	})

	t.Run("graph without roads", func(t *testing.T) {
		g := testGraph(t)
		res, err := routing.Route(ctx, g, mustCoord(t, 0, 0), mustCoord(t, 0, 0.002), routing.MetricTime)
		require.NoError(t, err)
		assert.Equal(t, routing.ReasonNoRoutableNode, res.Reason)
	})

	t.Run("search budget", func(t *testing.T) {
		g := testGraph(t, residential(10, "", 1, 2, 3))
		svc := routing.NewService(nil, g, routing.Config{MaxSettledNodes: 1})
		res, err := svc.Route(ctx, mustCoord(t, 0, 0), mustCoord(t, 0, 0.002), routing.MetricDistance)
		require.NoError(t, err)
		assert.Equal(t, routing.ReasonBudgetExceeded, res.Reason)
	})

	t.Run("unknown metric", func(t *testing.T) {
		g := testGraph(t, residential(10, "", 1, 2, 3))
		_, err := routing.Route(ctx, g, mustCoord(t, 0, 0), mustCoord(t, 0, 0.002), routing.Metric("scenic"))
		assert.True(t, errors.Is(err, util.ErrBadParamInput))
	})
}

func TestParseMetric(t *testing.T) {
	for in, want := range map[string]routing.Metric{
		"":         routing.MetricDistance,
		"distance": routing.MetricDistance,
		"SHORTEST": routing.MetricDistance,
		"time":     routing.MetricTime,
		"fastest":  routing.MetricTime,
	} {
		got, err := routing.ParseMetric(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := routing.ParseMetric("walking")
	assert.True(t, errors.Is(err, util.ErrBadParamInput))
}
