package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/geteat/tablerec/core"
)

// Config 是服务进程的配置。环境变量（.env 已由 godotenv 载入）
// 覆盖文件里的连接信息，便于容器化部署。
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Postgres struct {
		DSN string `yaml:"dsn"`
	} `yaml:"postgres"`

	Redis struct {
		Addr string `yaml:"addr"`
		DB   int    `yaml:"db"`
	} `yaml:"redis"`

	Model struct {
		Dim int `yaml:"dim"`
	} `yaml:"model"`

	// UserVectorSource 选择用户向量的读来源：postgres（默认）或 feast。
	// 餐厅空间数据与预热遍历始终走 Postgres（Feast 不支持全量流式读）。
	UserVectorSource string `yaml:"user_vector_source"`

	Feast struct {
		Host        string `yaml:"host"`
		Port        int    `yaml:"port"`
		Project     string `yaml:"project"`
		EntityKey   string `yaml:"entity_key"`
		FeatureView string `yaml:"feature_view"`
	} `yaml:"feast"`

	Index struct {
		Resolution int `yaml:"resolution"`
	} `yaml:"index"`

	Cache struct {
		TTLSeconds int `yaml:"ttl_seconds"`
	} `yaml:"cache"`

	Prewarm struct {
		Enabled       bool `yaml:"enabled"`
		ChunkSize     int  `yaml:"chunk_size"`
		MaxConcurrent int  `yaml:"max_concurrent"`
	} `yaml:"prewarm"`

	Defaults struct {
		Size         int `yaml:"size"`
		MaxDistanceM int `yaml:"max_dis"`
	} `yaml:"defaults"`

	// PipelineFile 可选：自定义 Pipeline 的 YAML 路径，
	// 为空时使用标准链（config.DefaultPipeline）。
	PipelineFile string `yaml:"pipeline_file"`
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8000"
	}
	if cfg.Index.Resolution == 0 {
		cfg.Index.Resolution = core.DefaultCellResolution
	}
	if cfg.Cache.TTLSeconds == 0 {
		cfg.Cache.TTLSeconds = core.DefaultCacheTTLSeconds
	}
	if cfg.Defaults.Size == 0 {
		cfg.Defaults.Size = core.DefaultSize
	}
	if cfg.Defaults.MaxDistanceM == 0 {
		cfg.Defaults.MaxDistanceM = core.DefaultMaxDistanceM
	}

	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("postgres dsn is required (config or POSTGRES_DSN)")
	}
	if cfg.Model.Dim <= 0 {
		return nil, fmt.Errorf("model dim is required")
	}

	switch cfg.UserVectorSource {
	case "":
		cfg.UserVectorSource = "postgres"
	case "postgres":
	case "feast":
		if cfg.Feast.Host == "" {
			return nil, fmt.Errorf("feast host is required when user_vector_source is feast")
		}
		if cfg.Feast.FeatureView == "" {
			return nil, fmt.Errorf("feast feature_view is required when user_vector_source is feast")
		}
	default:
		return nil, fmt.Errorf("unknown user_vector_source %q (postgres or feast)", cfg.UserVectorSource)
	}
	return &cfg, nil
}
