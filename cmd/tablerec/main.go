package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/geteat/tablerec/config"
	"github.com/geteat/tablerec/core"
	"github.com/geteat/tablerec/feast"
	"github.com/geteat/tablerec/feature"
	"github.com/geteat/tablerec/geo"
	"github.com/geteat/tablerec/knn"
	"github.com/geteat/tablerec/pipeline"
	"github.com/geteat/tablerec/service"
	"github.com/geteat/tablerec/store"
)

func main() {
	configPath := flag.String("config", "config.yaml", "配置文件路径")
	flag.Parse()

	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(context.Background(), *configPath, logger); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string, logger *slog.Logger) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	pg, err := store.NewPostgresStore(ctx, cfg.Postgres.DSN, cfg.Model.Dim)
	if err != nil {
		return err
	}
	defer pg.Close()

	// Redis 不可用时降级为纯直读模式：每次请求都打到 Postgres，
	// 慢但可用，与缓存透明性的约定一致。
	var cache *store.RedisStore
	if cfg.Redis.Addr != "" {
		cache, err = store.NewRedisStore(cfg.Redis.Addr, cfg.Redis.DB)
		if err != nil {
			logger.Warn("redis unavailable, running without cache", "err", err)
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	engine, err := knn.NewEngine(cfg.Model.Dim)
	if err != nil {
		return err
	}
	index, err := geo.NewIndex(pg, cfg.Index.Resolution)
	if err != nil {
		return err
	}

	// 用户向量默认从 Postgres 读；物化到 Feast 在线存储的部署
	// 可切换读路径，餐厅空间数据与预热遍历不受影响。
	var userSource core.UserVectorSource = pg
	if cfg.UserVectorSource == "feast" {
		fc, err := feast.NewGrpcClient(cfg.Feast.Host, cfg.Feast.Port, cfg.Feast.Project)
		if err != nil {
			return err
		}
		defer fc.Close()

		features := make([]string, cfg.Model.Dim)
		for i := range features {
			features[i] = fmt.Sprintf("%s:feature_%d", cfg.Feast.FeatureView, i)
		}
		userSource = feast.NewVectorSource(fc, cfg.Feast.EntityKey, features)
		logger.Info("user vectors served from feast",
			"endpoint", fmt.Sprintf("%s:%d", cfg.Feast.Host, cfg.Feast.Port))
	}

	var features *feature.Service
	if cache != nil {
		features = feature.NewService(cache, userSource, cfg.Model.Dim,
			feature.WithCacheTTL(cfg.Cache.TTLSeconds))
	} else {
		features = feature.NewService(nil, userSource, cfg.Model.Dim)
	}

	deps := config.Deps{Index: index, Engine: engine}
	var pipe *pipeline.Pipeline
	if cfg.PipelineFile != "" {
		pcfg, err := pipeline.LoadFromYAML(cfg.PipelineFile)
		if err != nil {
			return err
		}
		pipe, err = pcfg.BuildPipeline(config.NewFactory(deps))
		if err != nil {
			return err
		}
	} else {
		pipe = config.DefaultPipeline(deps)
	}

	rec := &service.Recommender{Features: features, Pipeline: pipe}

	// 预热失败不阻塞启动：缓存会被请求路径懒填充。
	if cfg.Prewarm.Enabled && cache != nil {
		start := time.Now()
		warmer := &feature.Prewarmer{
			Cache:         cache,
			Store:         pg,
			ChunkSize:     cfg.Prewarm.ChunkSize,
			TTLSeconds:    cfg.Cache.TTLSeconds,
			MaxConcurrent: cfg.Prewarm.MaxConcurrent,
		}
		n, err := warmer.Warm(ctx)
		if err != nil {
			logger.Warn("cache prewarm aborted", "warmed", n, "err", err)
		} else {
			logger.Info("cache prewarm done", "users", n, "took", time.Since(start).String())
		}
	}

	srv := newServer(rec, cfg, logger)
	logger.Info("listening", "addr", cfg.Server.Addr)
	return http.ListenAndServe(cfg.Server.Addr, srv.routes())
}
