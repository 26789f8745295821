package roadgraph

import (
	"errors"
	"fmt"
	"maps"

	"lintang/locroute/pkg/datastructure"
	"lintang/locroute/pkg/geo"

	"go.uber.org/zap"
)

var (
	ErrWayTooShort   = errors.New("way must reference at least 2 nodes")
	ErrBuilderSealed = errors.New("graph builder already built")
)

// BuildStats jumlah record yang masuk, di skip, dan di filter waktu build graph.
type BuildStats struct {
	NodesAccepted          int
	NodesDuplicate         int
	NodesRejected          int
	WaysAccepted           int
	WaysFiltered           int
	WaysRejected           int
	SynthesizedNodes       int
	ResolvedSynthesized    int
	SelfLoopsSkipped       int
	DuplicateEdgesReplaced int
	DuplicateEdgesDropped  int
	DirectedEdges          int
}

type Option func(*Builder)

func WithSpeedTable(table datastructure.SpeedTable) Option {
	return func(b *Builder) {
		b.speeds = table
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(b *Builder) {
		if log != nil {
			b.log = log
		}
	}
}

// Builder satu-satunya tipe yang bisa mutate road graph. Tidak aman dipakai concurrent.
type Builder struct {
	nodes     map[int64]*datastructure.GraphNode
	adjacency map[int64]map[int64]datastructure.RoadEdge
	speeds    datastructure.SpeedTable
	log       *zap.Logger
	stats     BuildStats
	sealed    bool
}

func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		nodes:     make(map[int64]*datastructure.GraphNode),
		adjacency: make(map[int64]map[int64]datastructure.RoadEdge),
		speeds:    datastructure.DefaultSpeedTable(),
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AddNode insert node kalau belum ada. Node synthesized (dari way yang node recordnya belum ada) diisi koordinatnya.
func (b *Builder) AddNode(raw datastructure.RawNode) error {
	if b.sealed {
		return ErrBuilderSealed
	}
	coord, err := geo.NewCoordinate(raw.Lat, raw.Lon)
	if err != nil {
		b.stats.NodesRejected++
		return fmt.Errorf("node %d: %w", raw.ID, err)
	}

	if existing, ok := b.nodes[raw.ID]; ok {
		if !existing.Synthesized {
			b.stats.NodesDuplicate++
			return nil
		}
		existing.Coord = coord
		existing.Synthesized = false
		existing.Tags = maps.Clone(raw.Tags)
		b.stats.ResolvedSynthesized++
		b.stats.NodesAccepted++
		return nil
	}

	b.nodes[raw.ID] = &datastructure.GraphNode{
		ID:    raw.ID,
		Coord: coord,
		Tags:  maps.Clone(raw.Tags),
	}
	b.stats.NodesAccepted++
	return nil
}

// AddWay decompose way jadi edge antar node yang berurutan. Way dengan highway selain kelas jalan kendaraan diabaikan.
func (b *Builder) AddWay(raw datastructure.RawWay) error {
	if b.sealed {
		return ErrBuilderSealed
	}
	if len(raw.NodeIDs) < 2 {
		b.stats.WaysRejected++
		return fmt.Errorf("way %d: %w", raw.ID, ErrWayTooShort)
	}

	tags := datastructure.ParseWayTags(raw.Tags)
	if !tags.Highway.IsRoutable() {
		b.stats.WaysFiltered++
		return nil
	}
	speed := b.speeds.EffectiveSpeedMph(tags)

	for i := 0; i+1 < len(raw.NodeIDs); i++ {
		from, to := raw.NodeIDs[i], raw.NodeIDs[i+1]
		if from == to {
			b.stats.SelfLoopsSkipped++
			continue
		}
		b.ensureNode(from)
		b.ensureNode(to)

		switch tags.OneWay {
		case datastructure.OneWayForward:
			b.addEdge(from, to, raw.ID, tags, speed)
		case datastructure.OneWayReverse:
			b.addEdge(to, from, raw.ID, tags, speed)
		default:
			b.addEdge(from, to, raw.ID, tags, speed)
			b.addEdge(to, from, raw.ID, tags, speed)
		}
	}
	b.stats.WaysAccepted++
	return nil
}

// AddNodes batch AddNode, node yang invalid di skip.
func (b *Builder) AddNodes(nodes []datastructure.RawNode) error {
	for _, n := range nodes {
		if err := b.AddNode(n); err != nil {
			if errors.Is(err, ErrBuilderSealed) {
				return err
			}
			b.log.Debug("skipping node", zap.Int64("node_id", n.ID), zap.Error(err))
		}
	}
	return nil
}

// AddWays batch AddWay, way yang invalid di skip.
func (b *Builder) AddWays(ways []datastructure.RawWay) error {
	for _, w := range ways {
		if err := b.AddWay(w); err != nil {
			if errors.Is(err, ErrBuilderSealed) {
				return err
			}
			b.log.Debug("skipping way", zap.Int64("way_id", w.ID), zap.Error(err))
		}
	}
	return nil
}

func (b *Builder) Stats() BuildStats {
	return b.stats
}

func (b *Builder) ensureNode(id int64) {
	if _, ok := b.nodes[id]; ok {
		return
	}
	b.nodes[id] = &datastructure.GraphNode{ID: id, Synthesized: true}
	b.stats.SynthesizedNodes++
}

// addEdge paling banyak satu edge per (from,to). kalau duplikat, ambil yang speednya lebih tinggi.
func (b *Builder) addEdge(from, to, wayID int64, tags datastructure.WayTags, speed float64) {
	out, ok := b.adjacency[from]
	if !ok {
		out = make(map[int64]datastructure.RoadEdge)
		b.adjacency[from] = out
	}

	edge := datastructure.RoadEdge{
		FromNodeID: from,
		ToNodeID:   to,
		WayID:      wayID,
		Tags:       tags,
		SpeedMph:   speed,
	}
	existing, ok := out[to]
	if !ok {
		out[to] = edge
		b.stats.DirectedEdges++
		return
	}
	if edge.SpeedMph > existing.SpeedMph {
		out[to] = edge
		b.stats.DuplicateEdgesReplaced++
		return
	}
	b.stats.DuplicateEdgesDropped++
}

// Build seal builder dan return graph immutable.
func (b *Builder) Build() (*Graph, error) {
	if b.sealed {
		return nil, ErrBuilderSealed
	}
	b.sealed = true

	g := newGraph(b.nodes, b.adjacency)
	b.nodes = nil
	b.adjacency = nil
	return g, nil
}

// BuildGraph build road graph dari raw node & way. record yang invalid di skip dan dihitung di BuildStats.
func BuildGraph(nodes []datastructure.RawNode, ways []datastructure.RawWay, opts ...Option) (*Graph, BuildStats) {
	b := NewBuilder(opts...)
	// builder baru, tidak mungkin ErrBuilderSealed
	_ = b.AddNodes(nodes)
	_ = b.AddWays(ways)
	g, _ := b.Build()

	stats := b.Stats()
	b.log.Sugar().Infof("road graph built: %d nodes (%d synthesized), %d edges, %d routable nodes",
		g.NodeCount(), stats.SynthesizedNodes-stats.ResolvedSynthesized, g.EdgeCount(), g.RoutableNodeCount())
	if skipped := stats.NodesRejected + stats.WaysRejected; skipped > 0 {
		b.log.Sugar().Warnf("skipped %d invalid nodes and %d invalid ways", stats.NodesRejected, stats.WaysRejected)
	}
	return g, stats
}
