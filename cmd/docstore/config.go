package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/docuseek/docstore/v1/docstore"
	"github.com/docuseek/docstore/v1/embedding"
	"github.com/docuseek/docstore/v1/logger"
	"github.com/docuseek/docstore/v1/milvus"
	"github.com/docuseek/docstore/v1/tracer"
)

// AppConfig aggregates the per-package configurations the CLI wires
// together. Precedence per setting: command-line flag > environment
// variable > config file > package default.
type AppConfig struct {
	LogLevel       string
	LogDevelopment bool

	Milvus    *milvus.Config
	Embedding *embedding.Config

	MetricsEnabled bool
	MetricsAddress string

	Tracing tracer.Config
}

// loadConfig builds the aggregate configuration. The package
// constructors apply MILVUS_*/EMBEDDING_* environment variables on top
// of their defaults; the YAML file then fills in only the keys whose
// environment variable is unset, keeping the documented precedence.
// A missing file is an error only when the path was given explicitly.
func loadConfig(path string) (*AppConfig, error) {
	cfg := &AppConfig{
		LogLevel:       "info",
		LogDevelopment: true,
		Milvus:         milvus.ConfigFromEnv(),
		Embedding:      embedding.NewConfig(),
		MetricsAddress: ":9090",
	}

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("docstore")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.docstore")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && path == "" {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	// fileSet reports whether the file sets a key that is not already
	// pinned by its environment variable. Keys without an environment
	// counterpart pass an empty envVar.
	fileSet := func(key, envVar string) bool {
		return v.IsSet(key) && os.Getenv(envVar) == ""
	}

	if fileSet("log.level", "") {
		cfg.LogLevel = v.GetString("log.level")
	}
	if fileSet("log.development", "") {
		cfg.LogDevelopment = v.GetBool("log.development")
	}

	if fileSet("milvus.host", "MILVUS_HOST") {
		cfg.Milvus.Host = v.GetString("milvus.host")
	}
	if fileSet("milvus.port", "MILVUS_PORT") {
		cfg.Milvus.Port = v.GetInt("milvus.port")
	}
	if fileSet("milvus.username", "MILVUS_USERNAME") {
		cfg.Milvus.Username = v.GetString("milvus.username")
	}
	if fileSet("milvus.password", "MILVUS_PASSWORD") {
		cfg.Milvus.Password = v.GetString("milvus.password")
	}
	if fileSet("milvus.collection", "MILVUS_COLLECTION") {
		cfg.Milvus.CollectionName = v.GetString("milvus.collection")
	}
	if fileSet("milvus.dimension", "MILVUS_DIMENSION") {
		cfg.Milvus.Dimension = v.GetInt("milvus.dimension")
	}
	if fileSet("milvus.metric", "MILVUS_METRIC") {
		cfg.Milvus.Metric = docstore.MetricType(v.GetString("milvus.metric"))
	}
	if fileSet("milvus.index_type", "MILVUS_INDEX_TYPE") {
		cfg.Milvus.IndexType = v.GetString("milvus.index_type")
	}
	if fileSet("milvus.top_k", "MILVUS_TOPK") {
		cfg.Milvus.DefaultTopK = v.GetInt("milvus.top_k")
	}

	if fileSet("embedding.endpoint", "EMBEDDING_ENDPOINT") {
		cfg.Embedding.Endpoint = v.GetString("embedding.endpoint")
	}
	if fileSet("embedding.model", "EMBEDDING_MODEL") {
		cfg.Embedding.Model = v.GetString("embedding.model")
	}
	if fileSet("embedding.api_key", "EMBEDDING_API_KEY") {
		cfg.Embedding.APIKey = v.GetString("embedding.api_key")
	}
	if fileSet("embedding.dimension", "EMBEDDING_DIMENSION") {
		cfg.Embedding.Dimension = v.GetInt("embedding.dimension")
	}
	if fileSet("embedding.batch_size", "EMBEDDING_BATCH_SIZE") {
		cfg.Embedding.BatchSize = v.GetInt("embedding.batch_size")
	}

	if fileSet("metrics.enabled", "") {
		cfg.MetricsEnabled = v.GetBool("metrics.enabled")
	}
	if fileSet("metrics.address", "") {
		cfg.MetricsAddress = v.GetString("metrics.address")
	}

	if fileSet("tracing.endpoint", "") {
		cfg.Tracing.Endpoint = v.GetString("tracing.endpoint")
	}
	if fileSet("tracing.insecure", "") {
		cfg.Tracing.Insecure = v.GetBool("tracing.insecure")
	}
	if fileSet("tracing.sample_rate", "") {
		cfg.Tracing.SampleRate = v.GetFloat64("tracing.sample_rate")
	}

	return cfg, nil
}

// loggerConfig translates the aggregate settings for the logger package.
func (c *AppConfig) loggerConfig() logger.Config {
	return logger.Config{
		Level:       logger.ParseLevel(c.LogLevel),
		ServiceName: "docstore",
		Development: c.LogDevelopment,
	}
}

func (c *AppConfig) tracerConfig() tracer.Config {
	t := c.Tracing
	t.ServiceName = "docstore"
	return t
}
