package core

import "context"

// UserVectorSource 是用户特征向量的最小读取接口。
// 持久存储适配器实现它；Feast 等远端特征平台也可实现它作为替代来源。
type UserVectorSource interface {
	// Name 返回来源名称（用于日志/监控）
	Name() string

	// LoadUser 读取用户特征向量。
	// 用户不存在时返回 USER_NOT_FOUND 码的领域错误（正常可报告结果，不是故障）；
	// 存储不可达时返回 UNAVAILABLE 码的领域错误。
	LoadUser(ctx context.Context, userID string) ([]float32, error)
}

// RestaurantSource 按空间 cell 集合读取餐厅记录。
// 返回的记录顺序在输入不变时必须稳定，管道的平局规则依赖它。
type RestaurantSource interface {
	// LoadRestaurantsByCells 读取 spatial_cell 命中给定集合的全部餐厅
	LoadRestaurantsByCells(ctx context.Context, cells []string) ([]Restaurant, error)
}

// FeatureStore 是持久存储的完整读取面，对核心只读。
//
// 设计原则：
//   - 核心假设 user id 与 spatial cell 上均存在 O(log n) 级索引，
//     索引的创建属于协作方职责
//   - 所有读取都是阻塞调用，占用当前 worker 直至完成，核心内部不重试
type FeatureStore interface {
	UserVectorSource
	RestaurantSource

	// StreamUsers 按 chunkSize 分块流式遍历全部用户记录，逐块回调 fn。
	// 任何时刻内存中最多只驻留一个块；fn 返回错误时立即中止遍历并透传该错误。
	StreamUsers(ctx context.Context, chunkSize int, fn func(users []UserRecord) error) error

	// Close 关闭连接池
	Close() error
}
