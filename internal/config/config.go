// Package config loads the elbow command configuration with viper.
//
// Values come from built-in defaults, an optional YAML, TOML or JSON file and
// KMEANS_* environment variables, in increasing order of precedence. Nested
// keys map to environment variables by replacing dots with underscores, e.g.
// sweep.max_k becomes KMEANS_SWEEP_MAX_K.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hupe1980/kmeans"
	"github.com/hupe1980/kmeans/codec"
	"github.com/hupe1980/kmeans/snapshot"
	"github.com/spf13/viper"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full command configuration.
type Config struct {
	Input   InputConfig   `mapstructure:"input"`
	Sweep   SweepConfig   `mapstructure:"sweep"`
	Cluster ClusterConfig `mapstructure:"cluster"`
	Output  OutputConfig  `mapstructure:"output"`
	Store   StoreConfig   `mapstructure:"store"`
	Log     LogConfig     `mapstructure:"log"`
}

// InputConfig selects the CSV file and its feature columns.
type InputConfig struct {
	Path    string   `mapstructure:"path"`
	Columns []string `mapstructure:"columns"`
	Scale   bool     `mapstructure:"scale"`
}

// SweepConfig controls the model-selection sweep.
type SweepConfig struct {
	MinK        int    `mapstructure:"min_k"`
	MaxK        int    `mapstructure:"max_k"`
	Seed        uint64 `mapstructure:"seed"`
	Concurrency int    `mapstructure:"concurrency"`
	FailFast    bool   `mapstructure:"fail_fast"`
}

// ClusterConfig controls every clustering run. K is the group count of the
// final run; 0 picks the elbow of the sweep.
type ClusterConfig struct {
	K             int     `mapstructure:"k"`
	MaxIterations int     `mapstructure:"max_iterations"`
	Tolerance     float64 `mapstructure:"tolerance"`
	EmptyCluster  string  `mapstructure:"empty_cluster"`
}

// OutputConfig names the report files. Empty paths disable an output.
type OutputConfig struct {
	ElbowChart   string `mapstructure:"elbow_chart"`
	ScatterChart string `mapstructure:"scatter_chart"`
	MetricsFile  string `mapstructure:"metrics_file"`
}

// StoreConfig selects where snapshots go.
type StoreConfig struct {
	Type               string `mapstructure:"type"` // none, memory, local, minio, s3
	Path               string `mapstructure:"path"`
	Bucket             string `mapstructure:"bucket"`
	Prefix             string `mapstructure:"prefix"`
	Endpoint           string `mapstructure:"endpoint"`
	Region             string `mapstructure:"region"`
	AccessKey          string `mapstructure:"access_key"`
	SecretKey          string `mapstructure:"secret_key"`
	Secure             bool   `mapstructure:"secure"`
	IOLimitBytesPerSec int64  `mapstructure:"io_limit_bytes_per_sec"`
	Compression        string `mapstructure:"compression"`
	Codec              string `mapstructure:"codec"`
}

// LogConfig controls logging. An empty File logs to stderr; otherwise logs
// go to a rotated file.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"` // MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
	Compress   bool   `mapstructure:"compress"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("input.path", "Mall_Customers.csv")
	v.SetDefault("input.columns", []string{"Annual Income (k$)", "Spending Score (1-100)"})
	v.SetDefault("input.scale", true)

	v.SetDefault("sweep.min_k", 1)
	v.SetDefault("sweep.max_k", 10)
	v.SetDefault("sweep.seed", 42)
	v.SetDefault("sweep.concurrency", 1)
	v.SetDefault("sweep.fail_fast", false)

	v.SetDefault("cluster.k", 0)
	v.SetDefault("cluster.max_iterations", kmeans.DefaultMaxIterations)
	v.SetDefault("cluster.tolerance", kmeans.DefaultTolerance)
	v.SetDefault("cluster.empty_cluster", kmeans.ReseedUniform.String())

	v.SetDefault("output.elbow_chart", "elbow_method.html")
	v.SetDefault("output.scatter_chart", "kmeans_clustering_result.html")
	v.SetDefault("output.metrics_file", "")

	v.SetDefault("store.type", "none")
	v.SetDefault("store.path", "snapshots")
	v.SetDefault("store.bucket", "")
	v.SetDefault("store.prefix", "")
	v.SetDefault("store.endpoint", "")
	v.SetDefault("store.region", "")
	v.SetDefault("store.access_key", "")
	v.SetDefault("store.secret_key", "")
	v.SetDefault("store.secure", true)
	v.SetDefault("store.io_limit_bytes_per_sec", 0)
	v.SetDefault("store.compression", snapshot.CompressionZSTD.String())
	v.SetDefault("store.codec", codec.Default.Name())

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
	v.SetDefault("log.compress", false)
}

// Load reads the configuration. An empty path uses defaults and the
// environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("KMEANS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config error: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config error: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Input.Path != "", "input.path is required")
	check(c.Sweep.MinK >= 1, "sweep.min_k must be at least 1, got %d", c.Sweep.MinK)
	check(c.Sweep.MaxK >= c.Sweep.MinK, "sweep.max_k (%d) must not be below sweep.min_k (%d)", c.Sweep.MaxK, c.Sweep.MinK)
	check(c.Sweep.Concurrency >= 1, "sweep.concurrency must be at least 1, got %d", c.Sweep.Concurrency)
	check(c.Cluster.K >= 0, "cluster.k must not be negative, got %d", c.Cluster.K)
	check(c.Cluster.MaxIterations >= 1, "cluster.max_iterations must be at least 1, got %d", c.Cluster.MaxIterations)
	check(c.Cluster.Tolerance >= 0, "cluster.tolerance must not be negative, got %g", c.Cluster.Tolerance)
	check(c.Store.IOLimitBytesPerSec >= 0, "store.io_limit_bytes_per_sec must not be negative")

	if _, err := c.Cluster.Policy(); err != nil {
		errs = append(errs, err)
	}
	if _, err := snapshot.ParseCompression(c.Store.Compression); err != nil {
		errs = append(errs, err)
	}
	if _, ok := codec.ByName(c.Store.Codec); !ok {
		errs = append(errs, fmt.Errorf("store.codec %q is not one of %v", c.Store.Codec, codec.Names()))
	}

	switch c.Store.Type {
	case "none", "memory":
	case "local":
		check(c.Store.Path != "", "store.path is required for the local store")
	case "minio":
		check(c.Store.Endpoint != "", "store.endpoint is required for the minio store")
		check(c.Store.Bucket != "", "store.bucket is required for the minio store")
	case "s3":
		check(c.Store.Bucket != "", "store.bucket is required for the s3 store")
	default:
		errs = append(errs, fmt.Errorf("store.type %q is not one of none, memory, local, minio, s3", c.Store.Type))
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	check(c.Log.Format == "text" || c.Log.Format == "json", "log.format must be text or json, got %q", c.Log.Format)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// Ks lists the sweep candidates in increasing order.
func (s SweepConfig) Ks() []int {
	ks := make([]int, 0, s.MaxK-s.MinK+1)
	for k := s.MinK; k <= s.MaxK; k++ {
		ks = append(ks, k)
	}
	return ks
}

// Policy parses the empty-cluster policy name.
func (c ClusterConfig) Policy() (kmeans.EmptyClusterPolicy, error) {
	for _, p := range []kmeans.EmptyClusterPolicy{kmeans.ReseedUniform, kmeans.ReseedFromData} {
		if p.String() == c.EmptyCluster {
			return p, nil
		}
	}
	return 0, fmt.Errorf("cluster.empty_cluster %q is not one of %s, %s", c.EmptyCluster, kmeans.ReseedUniform, kmeans.ReseedFromData)
}

// Options converts the run settings to clustering options.
func (c ClusterConfig) Options() []kmeans.Option {
	policy, _ := c.Policy()
	return []kmeans.Option{
		kmeans.WithMaxIterations(c.MaxIterations),
		kmeans.WithTolerance(c.Tolerance),
		kmeans.WithEmptyClusterPolicy(policy),
	}
}

// SnapshotOptions converts the store settings to snapshot options.
func (s StoreConfig) SnapshotOptions() []snapshot.Option {
	compression, _ := snapshot.ParseCompression(s.Compression)
	c, _ := codec.ByName(s.Codec)
	return []snapshot.Option{snapshot.WithCompression(compression), snapshot.WithCodec(c)}
}
