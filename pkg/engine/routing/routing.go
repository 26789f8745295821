package routing

import (
	"context"
	"math"
	"time"

	"lintang/locroute/pkg/datastructure"
	"lintang/locroute/pkg/engine/routingalgorithm"
	"lintang/locroute/pkg/geo"

	"go.uber.org/zap"
)

const DefaultMaxSnapDistanceKm = 5.0

// Graph road graph yang bisa di snap & di search.
type Graph interface {
	routingalgorithm.Graph
	NearestRoutableNode(coord geo.Coordinate) (datastructure.GraphNode, bool)
}

type Config struct {
	// MaxSnapDistanceKm jarak maksimum node tujuan hasil snap dari koordinat tujuan.
	MaxSnapDistanceKm float64
	// MaxSettledNodes <= 0 berarti tanpa batas.
	MaxSettledNodes int
	// SearchTimeout <= 0 berarti pakai deadline ctx caller saja.
	SearchTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{MaxSnapDistanceKm: DefaultMaxSnapDistanceKm}
}

// Snap hasil resolve koordinat ke node graph.
type Snap struct {
	Requested  geo.Coordinate
	Node       datastructure.GraphNode
	DistanceKm float64
	// OnRoad titik terdekat dengan Requested di salah satu edge yang keluar dari Node.
	OnRoad geo.Coordinate
}

type Result struct {
	Found  bool
	Reason Reason
	Metric Metric
	Route  datastructure.Route
	// Cost total cost sesuai metric (km atau menit).
	Cost  float64
	Start *Snap
	End   *Snap
}

// Service snap koordinat ke road graph lalu cari shortest path. Aman dipakai concurrent.
type Service struct {
	log   *zap.Logger
	graph Graph
	cfg   Config
}

func NewService(log *zap.Logger, graph Graph, cfg Config) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if !(cfg.MaxSnapDistanceKm > 0) {
		cfg.MaxSnapDistanceKm = DefaultMaxSnapDistanceKm
	}
	return &Service{log: log, graph: graph, cfg: cfg}
}

func (s *Service) Config() Config {
	return s.cfg
}

// Route route dari start ke end. "no route" bukan error, Result.Found false dengan Reason nya.
// error hanya untuk metric yang tidak dikenal atau kontrak graph yang dilanggar.
func (s *Service) Route(ctx context.Context, start, end geo.Coordinate, metric Metric) (Result, error) {
	cost, err := metric.costFunc()
	if err != nil {
		return Result{}, err
	}
	res := Result{Metric: metric}

	startNode, ok := s.graph.NearestRoutableNode(start)
	if !ok {
		res.Reason = ReasonNoRoutableNode
		return res, nil
	}
	res.Start = s.snap(start, startNode)

	endNode, ok := s.graph.NearestRoutableNode(end)
	if !ok {
		res.Reason = ReasonNoRoutableNode
		return res, nil
	}
	res.End = s.snap(end, endNode)

	if startNode.ID == endNode.ID {
		res.Reason = ReasonSameNode
		return res, nil
	}
	if res.End.DistanceKm > s.cfg.MaxSnapDistanceKm {
		s.log.Debug("destination outside road coverage",
			zap.Float64("snap_km", res.End.DistanceKm), zap.Int64("node_id", endNode.ID))
		res.Reason = ReasonOutOfCoverage
		return res, nil
	}

	if s.cfg.SearchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.SearchTimeout)
		defer cancel()
	}

	pf := routingalgorithm.NewPathFinder(s.graph, cost, routingalgorithm.WithMaxSettledNodes(s.cfg.MaxSettledNodes))
	sp, err := pf.ShortestPath(ctx, startNode.ID, endNode.ID)
	if err != nil {
		return Result{}, err
	}

	switch sp.Status {
	case routingalgorithm.StatusFound:
		res.Found = true
		res.Route = sp.Route
		res.Cost = sp.Cost
	case routingalgorithm.StatusBudgetExceeded:
		s.log.Warn("shortest path search budget exceeded",
			zap.Int64("from", startNode.ID), zap.Int64("to", endNode.ID), zap.Int("settled", sp.Settled))
		res.Reason = ReasonBudgetExceeded
	default:
		res.Reason = ReasonNoRoute
	}
	return res, nil
}

func (s *Service) snap(requested geo.Coordinate, node datastructure.GraphNode) *Snap {
	return &Snap{
		Requested:  requested,
		Node:       node,
		DistanceKm: geo.HaversineDistance(requested, node.Coord),
		OnRoad:     s.projectOnRoad(requested, node),
	}
}

// projectOnRoad project titik ke edge keluar dari node yang paling dekat.
func (s *Service) projectOnRoad(p geo.Coordinate, node datastructure.GraphNode) geo.Coordinate {
	best := node.Coord
	bestDist := geo.HaversineDistance(p, node.Coord)
	s.graph.VisitOutEdges(node.ID, func(e datastructure.RoadEdge) bool {
		to, ok := s.graph.Coordinate(e.ToNodeID)
		if !ok {
			return true
		}
		projection := geo.ProjectToSegment(p, node.Coord, to)
		if d := geo.HaversineDistance(p, projection); d < bestDist && !math.IsNaN(d) {
			best = projection
			bestDist = d
		}
		return true
	})
	return best
}

// Route route dengan config default.
func Route(ctx context.Context, graph Graph, start, end geo.Coordinate, metric Metric) (Result, error) {
	return NewService(nil, graph, DefaultConfig()).Route(ctx, start, end, metric)
}
