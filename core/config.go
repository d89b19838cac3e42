package core

// 推荐链路的默认参数。
// 环扩张步长与最小候选阈值是可调参数而非固定常量，
// 默认值在此集中声明，边界层和空间索引按需覆盖。
const (
	// DefaultSize 默认返回条数
	DefaultSize = 20

	// DefaultMaxDistanceM 默认测地距离上限（米）
	DefaultMaxDistanceM = 5000

	// DefaultCacheTTLSeconds 缓存条目默认过期时间（秒）
	DefaultCacheTTLSeconds = 3600

	// DefaultPrewarmChunkSize 预热任务每块用户数
	DefaultPrewarmChunkSize = 5000

	// DefaultCellResolution 空间索引的 H3 分辨率（cell 边长约 174m）
	DefaultCellResolution = 9

	// DefaultRingStep 候选不足时每次环扩张的步数
	DefaultRingStep = 1
)
