package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"lintang/locroute/pkg/config"
	"lintang/locroute/pkg/kv"
	"lintang/locroute/pkg/logger"
	"lintang/locroute/pkg/osmparser"
	"lintang/locroute/pkg/roadgraph"

	"github.com/cockroachdb/pebble"
	"go.uber.org/zap"
)

var (
	configFile = flag.String("config", "", "path file config yaml")
	mapFile    = flag.String("f", "", "openstreeetmap file buat road network graphnya")
	dbPath     = flag.String("db", "", "direktori pebble buat snapshot graph")
)

// parse file osm lalu simpan raw node & way ke pebble, biar server tidak perlu parse ulang.
func main() {
	flag.Parse()
	cfg, err := config.Load(*configFile)
	if err != nil {
		panic(err)
	}
	if *mapFile != "" {
		cfg.Data.OSMFile = *mapFile
	}
	if *dbPath != "" {
		cfg.Data.DBPath = *dbPath
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	parser := osmparser.NewOsmParser(log, osmparser.WithProgressBar(true))
	nodes, ways, err := parser.ParseFile(ctx, cfg.Data.OSMFile)
	if err != nil {
		log.Fatal("parse openstreetmap file", zap.String("file", cfg.Data.OSMFile), zap.Error(err))
	}

	speeds, err := cfg.SpeedTable()
	if err != nil {
		log.Fatal("speed table", zap.Error(err))
	}
	// build sekali buat cek data nya, graph nya sendiri tidak disimpan
	_, stats := roadgraph.BuildGraph(nodes, ways, roadgraph.WithSpeedTable(speeds), roadgraph.WithLogger(log))
	log.Info("build stats",
		zap.Int("nodes_accepted", stats.NodesAccepted), zap.Int("ways_accepted", stats.WaysAccepted),
		zap.Int("ways_filtered", stats.WaysFiltered), zap.Int("synthesized_nodes", stats.SynthesizedNodes),
		zap.Int("directed_edges", stats.DirectedEdges))

	db, err := pebble.Open(cfg.Data.DBPath, &pebble.Options{})
	if err != nil {
		log.Fatal("open pebble", zap.Error(err))
	}
	kvDB := kv.NewKVDB(db, log, kv.WithWorkers(cfg.Data.Workers), kv.WithProgressBar(true))
	defer kvDB.Close()

	if err := kvDB.SaveSnapshot(cfg.Data.OSMFile, nodes, ways); err != nil {
		log.Fatal("save graph snapshot", zap.Error(err))
	}
	info, err := kvDB.Info()
	if err != nil {
		log.Fatal("read snapshot info", zap.Error(err))
	}
	log.Info("graph snapshot saved", zap.String("db", cfg.Data.DBPath), zap.Any("info", info))
}
