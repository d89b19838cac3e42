package core

import "context"

// Store 是特征缓存的领域接口（进程外共享 KV，如 Redis）。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（store）实现
//   - 遵循依赖倒置原则：领域层定义接口，基础设施层实现接口
//   - 核心必须容忍任意时刻的 miss，不得假设 key 一定存在
//     （外部可能施加 TTL / 淘汰策略）
//
// 写语义：同一 key 的值只由 user id 决定，并发写入天然幂等，
// last-writer-wins 即可，核心不做任何跨 worker 协调。
//
// 实现：
//   - store.MemoryStore（测试/开发/原型）
//   - store.RedisStore（生产）
type Store interface {
	// Name 返回存储后端名称（用于日志/监控）
	Name() string

	// Get 读取单个 key 的值；key 不存在时返回 NOT_FOUND 码的领域错误
	Get(ctx context.Context, key string) ([]byte, error)

	// Set 写入单个 key-value；ttl 可选，单位秒，0 表示不过期
	Set(ctx context.Context, key string, value []byte, ttl ...int) error

	// Delete 删除单个 key
	Delete(ctx context.Context, key string) error

	// BatchGet 批量读取（减少网络往返；缺失的 key 不出现在结果中）
	BatchGet(ctx context.Context, keys []string) (map[string][]byte, error)

	// BatchSet 批量写入（预热任务按块写入时使用）
	BatchSet(ctx context.Context, kvs map[string][]byte, ttl ...int) error

	// Close 关闭连接/释放资源
	Close() error
}
