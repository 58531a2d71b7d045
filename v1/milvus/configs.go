package milvus

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/docuseek/docstore/v1/docstore"
)

// Supported index types for the embedding field.
const (
	IndexIvfFlat   = "IVF_FLAT"
	IndexHNSW      = "HNSW"
	IndexFlat      = "FLAT"
	IndexAutoIndex = "AUTOINDEX"
)

// Field names of the collection schema. Fixed: the schema is owned by
// this package, not by callers.
const (
	idField     = "id"
	textField   = "text"
	vectorField = "embedding"
)

// Config holds connection and behavior settings for the Milvus gateway.
//
// Precedence is three-tier: explicit overrides (builder helpers or struct
// literals) > environment variables (ConfigFromEnv) > defaults
// (DefaultConfig).
type Config struct {
	// Host of the Milvus server, e.g. "localhost".
	Host string

	// Port is the gRPC port of the Milvus server. Defaults to 19530.
	Port int

	// Username and Password authenticate against secured deployments.
	// Leave empty for open instances.
	Username string
	Password string

	// CollectionName is the default collection this gateway operates on.
	CollectionName string

	// Dimension is the embedding dimension used when creating the default
	// collection.
	Dimension int

	// MaxTextLength bounds the VARCHAR text field. Defaults to 5000.
	MaxTextLength int

	// Metric is the similarity metric for index build and search.
	Metric docstore.MetricType

	// IndexType selects the similarity index built on the embedding field.
	IndexType string

	// IndexNlist is the IVF partition count (IVF_FLAT only).
	IndexNlist int

	// HNSWM and HNSWEfConstruction are the HNSW build parameters.
	HNSWM              int
	HNSWEfConstruction int

	// SearchNprobe is the number of IVF partitions probed per search.
	SearchNprobe int

	// SearchEf is the HNSW search-time candidate list size.
	SearchEf int

	// DefaultTopK is the result count callers fall back to when no
	// explicit limit is given. The gateway itself requires topK > 0.
	DefaultTopK int

	// ConnectTimeout bounds session establishment. Defaults to 10s.
	ConnectTimeout time.Duration
}

// DefaultConfig mirrors the defaults of a local single-node deployment:
// IVF_FLAT over L2 with nlist=128 and nprobe=10, 384-dimension embeddings.
func DefaultConfig() *Config {
	return &Config{
		Host:               "localhost",
		Port:               19530,
		CollectionName:     "document_collection",
		Dimension:          384,
		MaxTextLength:      5000,
		Metric:             docstore.L2,
		IndexType:          IndexIvfFlat,
		IndexNlist:         128,
		HNSWM:              16,
		HNSWEfConstruction: 200,
		SearchNprobe:       10,
		SearchEf:           64,
		DefaultTopK:        5,
		ConnectTimeout:     10 * time.Second,
	}
}

// ConfigFromEnv returns DefaultConfig with MILVUS_* environment variables
// applied on top.
func ConfigFromEnv() *Config {
	cfg := DefaultConfig()
	if v := os.Getenv("MILVUS_HOST"); v != "" {
		cfg.Host = v
	}
	if v := envInt("MILVUS_PORT"); v > 0 {
		cfg.Port = v
	}
	if v := os.Getenv("MILVUS_USERNAME"); v != "" {
		cfg.Username = v
	}
	if v := os.Getenv("MILVUS_PASSWORD"); v != "" {
		cfg.Password = v
	}
	if v := os.Getenv("MILVUS_COLLECTION"); v != "" {
		cfg.CollectionName = v
	}
	if v := envInt("MILVUS_DIMENSION"); v > 0 {
		cfg.Dimension = v
	}
	if v := envInt("MILVUS_MAX_LENGTH"); v > 0 {
		cfg.MaxTextLength = v
	}
	if v := os.Getenv("MILVUS_METRIC"); v != "" {
		cfg.Metric = docstore.MetricType(v)
	}
	if v := os.Getenv("MILVUS_INDEX_TYPE"); v != "" {
		cfg.IndexType = v
	}
	if v := envInt("MILVUS_INDEX_NLIST"); v > 0 {
		cfg.IndexNlist = v
	}
	if v := envInt("MILVUS_SEARCH_NPROBE"); v > 0 {
		cfg.SearchNprobe = v
	}
	if v := envInt("MILVUS_TOPK"); v > 0 {
		cfg.DefaultTopK = v
	}
	return cfg
}

// Validate checks the settings a gateway cannot run without.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("milvus: host cannot be empty")
	}
	if c.Port <= 0 {
		return fmt.Errorf("milvus: port must be positive, got %d", c.Port)
	}
	if c.CollectionName == "" {
		return fmt.Errorf("milvus: collection name cannot be empty")
	}
	if !c.Metric.Valid() {
		return fmt.Errorf("milvus: unsupported metric %q", c.Metric)
	}
	switch c.IndexType {
	case IndexIvfFlat, IndexHNSW, IndexFlat, IndexAutoIndex:
	default:
		return fmt.Errorf("milvus: unsupported index type %q", c.IndexType)
	}
	return nil
}

// Address returns the host:port dial target.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Builder-style helpers for explicit overrides.

func (c *Config) WithHost(host string) *Config {
	c.Host = host
	return c
}

func (c *Config) WithPort(port int) *Config {
	c.Port = port
	return c
}

func (c *Config) WithCollection(name string) *Config {
	c.CollectionName = name
	return c
}

func (c *Config) WithDimension(dim int) *Config {
	c.Dimension = dim
	return c
}

func (c *Config) WithMetric(m docstore.MetricType) *Config {
	c.Metric = m
	return c
}

func (c *Config) WithCredentials(username, password string) *Config {
	c.Username = username
	c.Password = password
	return c
}

func envInt(key string) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}
