package store

// 注意：此包只包含实现，接口定义在 core 包。
//
// 特征缓存（core.Store）：
//   cache := NewMemoryStore()          // 测试/开发
//   cache, err := NewRedisStore(...)   // 生产
//
// 持久存储（core.FeatureStore）：
//   fs, err := NewPostgresStore(...)
