// Package feature 实现用户特征向量的解析与缓存预热。
//
// 读路径是"缓存优先、存储回退"：命中缓存直接解码返回；miss 时回源持久
// 存储，并尽力回填缓存（回填失败吞掉，不影响本次请求）。缓存状态只影响
// 延迟，不影响结果——冷缓存与热缓存对同一用户必须产出相同的向量。
package feature

import (
	"context"

	"github.com/geteat/tablerec/core"
)

// Service 解析用户特征向量：缓存 -> 持久存储回退。
type Service struct {
	cache core.Store
	store core.UserVectorSource

	ttl int // 懒回填的缓存 TTL（秒）
	dim int // 模型特征维度，解码后校验
}

// ServiceOption 是特征服务的配置选项，采用函数式选项模式。
type ServiceOption func(*Service)

// WithCacheTTL 设置懒回填写入的 TTL（秒），默认 core.DefaultCacheTTLSeconds。
func WithCacheTTL(seconds int) ServiceOption {
	return func(s *Service) {
		s.ttl = seconds
	}
}

// NewService 创建特征服务。cache 可为 nil（纯直读模式，测试常用）。
func NewService(cache core.Store, store core.UserVectorSource, dim int, opts ...ServiceOption) *Service {
	s := &Service{
		cache: cache,
		store: store,
		ttl:   core.DefaultCacheTTLSeconds,
		dim:   dim,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UserVector 解析用户特征向量。
//
// 缓存值解码失败或维度不符时按 miss 处理（回源覆盖坏值），
// 用户两边都不存在时返回 USER_NOT_FOUND。
func (s *Service) UserVector(ctx context.Context, userID string) ([]float32, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, userID); err == nil {
			if vec, derr := core.DecodeVector(data); derr == nil && len(vec) == s.dim {
				return vec, nil
			}
		}
	}

	vec, err := s.store.LoadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		// 回填尽力而为：同 key 的并发写是幂等的，失败不影响本次请求
		_ = s.cache.Set(ctx, userID, core.EncodeVector(vec), s.ttl)
	}
	return vec, nil
}
