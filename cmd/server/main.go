package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	_ "lintang/locroute/docs"
	"lintang/locroute/pkg/config"
	"lintang/locroute/pkg/datastructure"
	"lintang/locroute/pkg/engine/routing"
	"lintang/locroute/pkg/kv"
	"lintang/locroute/pkg/location"
	"lintang/locroute/pkg/logger"
	"lintang/locroute/pkg/osmparser"
	"lintang/locroute/pkg/roadgraph"
	"lintang/locroute/pkg/server/rest"
	"lintang/locroute/pkg/server/rest/service"

	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

var (
	configFile = flag.String("config", "", "path file config yaml")
	listenAddr = flag.String("listenaddr", "", "server listen address")
	mapFile    = flag.String("f", "", "openstreeetmap file buat road network graphnya")
	dbPath     = flag.String("db", "", "direktori pebble buat snapshot graph")
)

//	@title			locroute API
//	@version		1.0
//	@description	openstreetmap routing untuk pencarian restaurant dan store terdekat

//	@contact.name	lintang birda saputra

//	@license.name	GNU Affero General Public License v3.0
//	@license.url	https://www.gnu.org/licenses/gpl-3.0.en.html

// @host		localhost:5000
// @BasePath	/api
// @schemes	http
func main() {
	flag.Parse()
	cfg, err := config.Load(*configFile)
	if err != nil {
		panic(err)
	}
	overrideFromFlags(&cfg)

	log, err := logger.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	nodes, ways, err := loadRecords(ctx, cfg, log)
	if err != nil {
		log.Fatal("load openstreetmap data", zap.Error(err))
	}

	speeds, err := cfg.SpeedTable()
	if err != nil {
		log.Fatal("speed table", zap.Error(err))
	}
	graph, stats := roadgraph.BuildGraph(nodes, ways, roadgraph.WithSpeedTable(speeds), roadgraph.WithLogger(log))
	log.Info("road network ready",
		zap.Int("nodes", graph.NodeCount()), zap.Int("routable_nodes", graph.RoutableNodeCount()),
		zap.Int("edges", graph.EdgeCount()), zap.Int("ways_filtered", stats.WaysFiltered))

	var idxOpts []location.Option
	if cfg.Bounds != nil {
		idxOpts = append(idxOpts, location.WithBounds(*cfg.Bounds))
	}
	locations := location.BuildIndex(nodes, idxOpts...)
	log.Info("location index ready", zap.Int("locations", locations.Len()))

	nodes, ways = nil, nil
	runtime.GC() // raw records sudah tidak dipakai

	engine := routing.NewService(log, graph, cfg.RoutingConfig())
	navigatorSvc := service.NewNavigationService(log, engine, graph, locations)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	r := rest.NewRouter(navigatorSvc, reg, rest.RouterOptions{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AccessLog:      true,
	})

	srv := &http.Server{
		Addr:         cfg.Server.ListenAddr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		log.Info("server started", zap.String("addr", cfg.Server.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}

func overrideFromFlags(cfg *config.Config) {
	if *listenAddr != "" {
		cfg.Server.ListenAddr = *listenAddr
	}
	if *mapFile != "" {
		cfg.Data.OSMFile = *mapFile
	}
	if *dbPath != "" {
		cfg.Data.DBPath = *dbPath
	}
}

// loadRecords baca snapshot dari pebble, kalau belum ada atau dibuat dari file osm lain
// parse file osm lalu simpan snapshot nya.
func loadRecords(ctx context.Context, cfg config.Config, log *zap.Logger) ([]datastructure.RawNode, []datastructure.RawWay, error) {
	db, err := pebble.Open(cfg.Data.DBPath, &pebble.Options{})
	if err != nil {
		return nil, nil, err
	}
	kvDB := kv.NewKVDB(db, log, kv.WithWorkers(cfg.Data.Workers), kv.WithProgressBar(true))
	defer kvDB.Close()

	info, err := kvDB.Info()
	switch {
	case err == nil && info.BuiltFrom(cfg.Data.OSMFile):
		nodes, ways, err := kvDB.LoadSnapshot()
		if err != nil {
			return nil, nil, err
		}
		log.Info("graph snapshot loaded", zap.String("db", cfg.Data.DBPath), zap.String("source", info.Source))
		return nodes, ways, nil
	case err == nil:
		log.Info("graph snapshot built from another openstreetmap file, parsing again",
			zap.String("snapshot_source", info.Source), zap.String("file", cfg.Data.OSMFile))
	case errors.Is(err, kv.ErrSnapshotNotFound):
		log.Info("graph snapshot not found, parsing openstreetmap file", zap.String("file", cfg.Data.OSMFile))
	default:
		return nil, nil, err
	}

	parser := osmparser.NewOsmParser(log, osmparser.WithProgressBar(true))
	nodes, ways, err := parser.ParseFile(ctx, cfg.Data.OSMFile)
	if err != nil {
		return nil, nil, err
	}
	if err := kvDB.SaveSnapshot(cfg.Data.OSMFile, nodes, ways); err != nil {
		log.Warn("save graph snapshot", zap.Error(err))
	}
	return nodes, ways, nil
}
