package feature

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/geteat/tablerec/core"
)

// Prewarmer 在服务开始接流量前，把全量用户特征从持久存储灌进缓存。
// 按有界块流式读取，绝不把全量用户集合驻留在内存里；块的写入通过
// errgroup 限并发执行。写入是按 key 幂等的，与管道的懒填充并发竞争
// 是安全的，不需要任何锁。
type Prewarmer struct {
	Cache core.Store
	Store core.FeatureStore

	// ChunkSize 每块用户数，默认 core.DefaultPrewarmChunkSize。
	ChunkSize int

	// TTLSeconds 写入缓存的 TTL（秒），默认 core.DefaultCacheTTLSeconds。
	TTLSeconds int

	// MaxConcurrent 同时在途的块写入数，默认 4。
	MaxConcurrent int
}

// Warm 执行预热，返回成功写入缓存的用户数。
// 任何一块失败都会中止整个预热并返回错误（以及中止前的计数），
// 不允许静默产出半热的缓存。
func (p *Prewarmer) Warm(ctx context.Context) (int, error) {
	chunkSize := p.ChunkSize
	if chunkSize <= 0 {
		chunkSize = core.DefaultPrewarmChunkSize
	}
	ttl := p.TTLSeconds
	if ttl <= 0 {
		ttl = core.DefaultCacheTTLSeconds
	}
	concurrent := p.MaxConcurrent
	if concurrent <= 0 {
		concurrent = 4
	}

	var loaded atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrent)

	err := p.Store.StreamUsers(gctx, chunkSize, func(users []core.UserRecord) error {
		// 某个在途写入已失败时停止继续读流
		if gctx.Err() != nil {
			return gctx.Err()
		}

		kvs := make(map[string][]byte, len(users))
		for _, u := range users {
			kvs[u.ID] = core.EncodeVector(u.Vector)
		}

		g.Go(func() error {
			if err := p.Cache.BatchSet(gctx, kvs, ttl); err != nil {
				return fmt.Errorf("prewarm: batch set %d users: %w", len(kvs), err)
			}
			loaded.Add(int64(len(kvs)))
			return nil
		})
		return nil
	})

	if werr := g.Wait(); werr != nil && err == nil {
		err = werr
	}
	return int(loaded.Load()), err
}
