package kv

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"lintang/locroute/pkg/concurrent"
	"lintang/locroute/pkg/datastructure"

	"github.com/cockroachdb/pebble"
	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
	"github.com/uber/h3-go/v4"
	"go.uber.org/zap"
)

var ErrSnapshotNotFound = errors.New("graph snapshot not found")

const (
	nodePrefix = "node/"
	wayPrefix  = "way/"
	metaKey    = "meta"

	// resolusi h3 untuk bucket node, satu cell res 5 ~250 km2
	nodeCellResolution = 5
	wayChunkSize       = 10000
)

type snapshotMeta struct {
	Source     string
	NodeCount  int
	WayCount   int
	NodeChunks int
	WayChunks  int
	CreatedAt  int64
}

// SnapshotInfo ringkasan snapshot yang tersimpan.
type SnapshotInfo struct {
	// Source nama file osm (tanpa direktori) yang jadi sumber snapshot.
	Source    string
	NodeCount int
	WayCount  int
	CreatedAt time.Time
}

// BuiltFrom true kalau snapshot dibuat dari file osm dengan nama yang sama.
func (s SnapshotInfo) BuiltFrom(osmFile string) bool {
	return s.Source == filepath.Base(osmFile)
}

type saveChunkJob struct {
	key   []byte
	nodes []datastructure.RawNode
	ways  []datastructure.RawWay
}

type KVDB struct {
	db         *pebble.DB
	log        *zap.Logger
	numWorkers int
	progress   bool
}

type Option func(*KVDB)

func WithWorkers(n int) Option {
	return func(k *KVDB) {
		k.numWorkers = n
	}
}

// WithProgressBar tampilkan progress bar di stdout waktu save.
func WithProgressBar(show bool) Option {
	return func(k *KVDB) {
		k.progress = show
	}
}

func NewKVDB(db *pebble.DB, log *zap.Logger, opts ...Option) *KVDB {
	if log == nil {
		log = zap.NewNop()
	}
	k := &KVDB{db: db, log: log, numWorkers: 4}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

func nodeKey(n datastructure.RawNode) []byte {
	cell := h3.LatLngToCell(h3.NewLatLng(n.Lat, n.Lon), nodeCellResolution)
	return []byte(nodePrefix + cell.String())
}

func wayKey(seq int) []byte {
	return []byte(fmt.Sprintf("%s%08d", wayPrefix, seq))
}

// prefixUpperBound key terkecil yang lebih besar dari semua key dengan prefix tsb.
func prefixUpperBound(prefix string) []byte {
	end := []byte(prefix)
	end[len(end)-1]++
	return end
}

// SaveSnapshot simpan raw node & way hasil parse file osm source ke pebble.
// snapshot lama dihapus dulu, meta ditulis paling akhir.
func (k *KVDB) SaveSnapshot(source string, nodes []datastructure.RawNode, ways []datastructure.RawWay) error {
	if err := k.db.Delete([]byte(metaKey), pebble.Sync); err != nil {
		return fmt.Errorf("delete snapshot meta: %w", err)
	}
	for _, prefix := range []string{nodePrefix, wayPrefix} {
		if err := k.db.DeleteRange([]byte(prefix), prefixUpperBound(prefix), pebble.Sync); err != nil {
			return fmt.Errorf("delete old snapshot %s: %w", prefix, err)
		}
	}

	buckets := make(map[string][]datastructure.RawNode)
	for _, n := range nodes {
		key := string(nodeKey(n))
		buckets[key] = append(buckets[key], n)
	}
	wayChunks := (len(ways) + wayChunkSize - 1) / wayChunkSize

	jobCount := len(buckets) + wayChunks
	workers := concurrent.NewWorkerPool[saveChunkJob, error](k.numWorkers, jobCount)
	for key, bucket := range buckets {
		workers.AddJob(saveChunkJob{key: []byte(key), nodes: bucket})
	}
	for seq := 0; seq < wayChunks; seq++ {
		end := min((seq+1)*wayChunkSize, len(ways))
		workers.AddJob(saveChunkJob{key: wayKey(seq), ways: ways[seq*wayChunkSize : end]})
	}
	workers.Close()

	bar := k.newProgressBar(jobCount, "[cyan]saving graph snapshot to pebble db...")
	workers.Start(k.saveChunk)
	workers.Wait()

	var errs []error
	for err := range workers.CollectResults() {
		if err != nil {
			errs = append(errs, err)
		}
		if bar != nil {
			bar.Add(1)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("save snapshot: %w", errors.Join(errs...))
	}

	meta, err := encode(snapshotMeta{
		Source:     filepath.Base(source),
		NodeCount:  len(nodes),
		WayCount:   len(ways),
		NodeChunks: len(buckets),
		WayChunks:  wayChunks,
		CreatedAt:  time.Now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("encode snapshot meta: %w", err)
	}
	if err := k.db.Set([]byte(metaKey), meta, pebble.Sync); err != nil {
		return fmt.Errorf("save snapshot meta: %w", err)
	}

	k.log.Sugar().Infof("graph snapshot saved: %d nodes in %d h3 cells, %d ways in %d chunks",
		len(nodes), len(buckets), len(ways), wayChunks)
	return nil
}

func (k *KVDB) saveChunk(job saveChunkJob) error {
	var (
		val []byte
		err error
	)
	if job.nodes != nil {
		val, err = encode(job.nodes)
	} else {
		val, err = encode(job.ways)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", job.key, err)
	}
	if err := k.db.Set(job.key, val, pebble.Sync); err != nil {
		return fmt.Errorf("set %s: %w", job.key, err)
	}
	return nil
}

func (k *KVDB) loadMeta() (snapshotMeta, error) {
	val, closer, err := k.db.Get([]byte(metaKey))
	if errors.Is(err, pebble.ErrNotFound) {
		return snapshotMeta{}, ErrSnapshotNotFound
	}
	if err != nil {
		return snapshotMeta{}, err
	}
	defer closer.Close()
	return decode[snapshotMeta](val)
}

func (k *KVDB) Info() (SnapshotInfo, error) {
	meta, err := k.loadMeta()
	if err != nil {
		return SnapshotInfo{}, err
	}
	return SnapshotInfo{
		Source:    meta.Source,
		NodeCount: meta.NodeCount,
		WayCount:  meta.WayCount,
		CreatedAt: time.Unix(meta.CreatedAt, 0),
	}, nil
}

// LoadSnapshot baca semua node (ascending id) dan way (urutan waktu disimpan).
func (k *KVDB) LoadSnapshot() ([]datastructure.RawNode, []datastructure.RawWay, error) {
	meta, err := k.loadMeta()
	if err != nil {
		return nil, nil, err
	}

	nodes := make([]datastructure.RawNode, 0, meta.NodeCount)
	err = k.scanPrefix(nodePrefix, func(val []byte) error {
		bucket, err := decode[[]datastructure.RawNode](val)
		if err != nil {
			return err
		}
		nodes = append(nodes, bucket...)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("load snapshot nodes: %w", err)
	}
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].ID < nodes[j].ID
	})

	ways := make([]datastructure.RawWay, 0, meta.WayCount)
	err = k.scanPrefix(wayPrefix, func(val []byte) error {
		chunk, err := decode[[]datastructure.RawWay](val)
		if err != nil {
			return err
		}
		ways = append(ways, chunk...)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("load snapshot ways: %w", err)
	}

	if len(nodes) != meta.NodeCount || len(ways) != meta.WayCount {
		return nil, nil, fmt.Errorf("corrupt graph snapshot: want %d nodes %d ways, got %d nodes %d ways",
			meta.NodeCount, meta.WayCount, len(nodes), len(ways))
	}
	k.log.Sugar().Infof("graph snapshot loaded: %d nodes, %d ways", len(nodes), len(ways))
	return nodes, ways, nil
}

func (k *KVDB) scanPrefix(prefix string, fn func(val []byte) error) error {
	iter, err := k.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(prefix),
		UpperBound: prefixUpperBound(prefix),
	})
	if err != nil {
		return err
	}
	for iter.First(); iter.Valid(); iter.Next() {
		if err := fn(iter.Value()); err != nil {
			iter.Close()
			return err
		}
	}
	if err := iter.Error(); err != nil {
		iter.Close()
		return err
	}
	return iter.Close()
}

func (k *KVDB) newProgressBar(total int, desc string) *progressbar.ProgressBar {
	if !k.progress {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
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

func (k *KVDB) Close() error {
	return k.db.Close()
}
