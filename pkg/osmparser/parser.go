package osmparser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"lintang/locroute/pkg/datastructure"

	"github.com/k0kubun/go-ansi"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

var ErrUnsupportedFormat = errors.New("unsupported openstreetmap file format")

// tag node yang membuat node disimpan walaupun tidak dipakai way jalan (POI untuk location search).
var poiTagKeys = []string{"amenity", "shop", "name"}

type OsmParser struct {
	log      *zap.Logger
	progress bool
}

type Option func(*OsmParser)

// WithProgressBar tampilkan progress bar di stdout.
func WithProgressBar(show bool) Option {
	return func(p *OsmParser) {
		p.progress = show
	}
}

func NewOsmParser(log *zap.Logger, opts ...Option) *OsmParser {
	if log == nil {
		log = zap.NewNop()
	}
	p := &OsmParser{log: log}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type openFunc func(ctx context.Context, r io.Reader) osm.Scanner

func scannerFor(path string) (openFunc, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".osm.pbf"), strings.HasSuffix(lower, ".pbf"):
		return func(ctx context.Context, r io.Reader) osm.Scanner {
			return osmpbf.New(ctx, r, runtime.GOMAXPROCS(-1))
		}, nil
	case strings.HasSuffix(lower, ".osm"), strings.HasSuffix(lower, ".xml"):
		return func(ctx context.Context, r io.Reader) osm.Scanner {
			return osmxml.New(ctx, r)
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ParseFile parse file .osm.pbf atau .osm dalam 2 pass: pass pertama ambil way highway,
// pass kedua ambil node yang dipakai way tsb atau node POI.
func (p *OsmParser) ParseFile(ctx context.Context, path string) ([]datastructure.RawNode, []datastructure.RawWay, error) {
	open, err := scannerFor(path)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	bar := p.newProgressBar("[cyan][1/2][reset] scanning openstreetmap ways...")
	scanner := open(ctx, f)
	ways, wayNodes, err := p.scanWays(scanner, bar)
	scanner.Close()
	if err != nil {
		return nil, nil, fmt.Errorf("scan ways %s: %w", path, err)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, nil, err
	}
	bar = p.newProgressBar("[cyan][2/2][reset] scanning openstreetmap nodes...")
	scanner = open(ctx, f)
	nodes, err := p.scanNodes(scanner, bar, func(n *osm.Node) bool {
		_, used := wayNodes[int64(n.ID)]
		return used || isPOI(n.Tags)
	})
	scanner.Close()
	if err != nil {
		return nil, nil, fmt.Errorf("scan nodes %s: %w", path, err)
	}

	p.log.Sugar().Infof("parsed %s: %d nodes, %d highway ways", filepath.Base(path), len(nodes), len(ways))
	return nodes, ways, nil
}

// Parse satu pass, semua node disimpan dan hanya way dengan tag highway.
func (p *OsmParser) Parse(ctx context.Context, scanner osm.Scanner) ([]datastructure.RawNode, []datastructure.RawWay, error) {
	defer scanner.Close()

	nodes := make([]datastructure.RawNode, 0)
	ways := make([]datastructure.RawWay, 0)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		switch o := scanner.Object().(type) {
		case *osm.Node:
			nodes = append(nodes, toRawNode(o))
		case *osm.Way:
			if w, ok := toRawWay(o); ok {
				ways = append(ways, w)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	return nodes, ways, nil
}

func (p *OsmParser) scanWays(scanner osm.Scanner, bar *progressbar.ProgressBar) ([]datastructure.RawWay, map[int64]struct{}, error) {
	if pbf, ok := scanner.(*osmpbf.Scanner); ok {
		pbf.SkipNodes = true
		pbf.SkipRelations = true
	}

	ways := make([]datastructure.RawWay, 0)
	wayNodes := make(map[int64]struct{})
	for scanner.Scan() {
		w, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}
		raw, ok := toRawWay(w)
		if !ok {
			continue
		}
		for _, id := range raw.NodeIDs {
			wayNodes[id] = struct{}{}
		}
		ways = append(ways, raw)
		if bar != nil {
			bar.Add(1)
		}
	}
	return ways, wayNodes, scanner.Err()
}

func (p *OsmParser) scanNodes(scanner osm.Scanner, bar *progressbar.ProgressBar, keep func(n *osm.Node) bool) ([]datastructure.RawNode, error) {
	if pbf, ok := scanner.(*osmpbf.Scanner); ok {
		pbf.SkipWays = true
		pbf.SkipRelations = true
	}

	nodes := make([]datastructure.RawNode, 0)
	for scanner.Scan() {
		n, ok := scanner.Object().(*osm.Node)
		if !ok || !keep(n) {
			continue
		}
		nodes = append(nodes, toRawNode(n))
		if bar != nil {
			bar.Add(1)
		}
	}
	return nodes, scanner.Err()
}

func toRawNode(n *osm.Node) datastructure.RawNode {
	raw := datastructure.RawNode{
		ID:  int64(n.ID),
		Lat: n.Lat,
		Lon: n.Lon,
	}
	if len(n.Tags) > 0 {
		raw.Tags = n.Tags.Map()
	}
	return raw
}

// toRawWay hanya way dengan tag highway. validasi jumlah node dan kelas jalan dilakukan graph builder.
func toRawWay(w *osm.Way) (datastructure.RawWay, bool) {
	if w.Tags.Find("highway") == "" {
		return datastructure.RawWay{}, false
	}
	ids := make([]int64, len(w.Nodes))
	for i, wn := range w.Nodes {
		ids[i] = int64(wn.ID)
	}
	return datastructure.RawWay{
		ID:      int64(w.ID),
		NodeIDs: ids,
		Tags:    w.Tags.Map(),
	}, true
}

func isPOI(tags osm.Tags) bool {
	for _, key := range poiTagKeys {
		if tags.Find(key) != "" {
			return true
		}
	}
	return false
}

func (p *OsmParser) newProgressBar(desc string) *progressbar.ProgressBar {
	if !p.progress {
		return nil
	}
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()), //you should install "github.com/k0kubun/go-ansi"
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription(desc),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
