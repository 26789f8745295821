package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"lintang/locroute/pkg/datastructure"
	"lintang/locroute/pkg/engine/routing"
	"lintang/locroute/pkg/geo"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig       `yaml:"server"`
	Data    DataConfig         `yaml:"data"`
	Routing RoutingConfig      `yaml:"routing"`
	Speeds  map[string]float64 `yaml:"speeds"`
	Bounds  *geo.Bounds        `yaml:"bounds"`
	Log     LogConfig          `yaml:"log"`
}

type ServerConfig struct {
	ListenAddr      string        `yaml:"listen_addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
}

type DataConfig struct {
	OSMFile string `yaml:"osm_file"`
	DBPath  string `yaml:"db_path"`
	Workers int    `yaml:"workers"`
}

type RoutingConfig struct {
	MaxSnapDistanceKm float64       `yaml:"max_snap_distance_km"`
	MaxSettledNodes   int           `yaml:"max_settled_nodes"`
	SearchTimeout     time.Duration `yaml:"search_timeout"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			ListenAddr:      ":5000",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			AllowedOrigins:  []string{"https://*", "http://*"},
		},
		Data: DataConfig{
			OSMFile: "west-la.osm.pbf",
			DBPath:  "locrouteDB",
			Workers: 4,
		},
		Routing: RoutingConfig{
			MaxSnapDistanceKm: routing.DefaultMaxSnapDistanceKm,
			MaxSettledNodes:   2_000_000,
			SearchTimeout:     5 * time.Second,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load baca config yaml di atas nilai default. path kosong berarti default saja.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Server.ListenAddr == "" {
		errs = append(errs, errors.New("server.listen_addr is required"))
	}
	if !(c.Routing.MaxSnapDistanceKm > 0) {
		errs = append(errs, fmt.Errorf("routing.max_snap_distance_km must be positive, got %v", c.Routing.MaxSnapDistanceKm))
	}
	if c.Routing.MaxSettledNodes < 0 {
		errs = append(errs, fmt.Errorf("routing.max_settled_nodes must not be negative, got %d", c.Routing.MaxSettledNodes))
	}
	if _, err := c.SpeedTable(); err != nil {
		errs = append(errs, err)
	}
	if c.Bounds != nil {
		if _, err := geo.NewBounds(c.Bounds.MinLat, c.Bounds.MinLon, c.Bounds.MaxLat, c.Bounds.MaxLon); err != nil {
			errs = append(errs, fmt.Errorf("bounds: %w", err))
		}
	}
	return errors.Join(errs...)
}

// SpeedTable speed table default dengan override dari section speeds.
func (c Config) SpeedTable() (datastructure.SpeedTable, error) {
	return datastructure.DefaultSpeedTable().WithOverrides(c.Speeds)
}

func (c Config) RoutingConfig() routing.Config {
	return routing.Config{
		MaxSnapDistanceKm: c.Routing.MaxSnapDistanceKm,
		MaxSettledNodes:   c.Routing.MaxSettledNodes,
		SearchTimeout:     c.Routing.SearchTimeout,
	}
}
