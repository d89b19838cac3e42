// Package feast 提供 Feast Feature Store 的用户向量来源适配。
//
// 用户特征向量默认存在 PostgreSQL（store.PostgresStore）；对于已经把
// 离线特征物化到 Feast 在线存储的部署，可以用本包把 Feast 适配为
// core.UserVectorSource，替换持久存储的用户读路径。
// 注意：Feast 不支持全量用户流式遍历，预热任务仍需直连持久存储。
package feast

import (
	"context"
	"time"
)

// Client 是 Feast Feature Server 的客户端接口。
// 推荐链路只消费在线特征（实时读路径），历史特征/物化等离线操作
// 属于训练侧职责，不在此接口范围。
//
// 参考：https://github.com/feast-dev/feast
type Client interface {
	// GetOnlineFeatures 获取在线特征
	//
	// 参数：
	//   - features: 特征名称列表，例如 ["user_features:f0", "user_features:f1"]
	//   - entityRows: 实体行，例如 [{"user_id": "u40099"}]
	GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error)

	// Close 关闭客户端连接
	Close() error
}

// GetOnlineFeaturesRequest 获取在线特征请求
type GetOnlineFeaturesRequest struct {
	// Features 特征名称列表
	Features []string

	// EntityRows 实体行
	EntityRows []map[string]any

	// Project 项目名称（可选，缺省用客户端配置）
	Project string
}

// GetOnlineFeaturesResponse 获取在线特征响应
type GetOnlineFeaturesResponse struct {
	// FeatureVectors 特征向量列表，每个元素对应一个实体行
	FeatureVectors []FeatureVector
}

// FeatureVector 一个实体行的特征值集合
type FeatureVector struct {
	// Values 特征值，key 为特征名称
	Values map[string]float64

	// Missing 为 true 表示该实体在在线存储中没有特征
	Missing bool
}

// ClientConfig Feast 客户端配置
type ClientConfig struct {
	Endpoint string
	Project  string
	Timeout  time.Duration
}

// ClientOption Feast 客户端配置选项
type ClientOption func(*ClientConfig)

// WithTimeout 设置请求超时时间
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.Timeout = timeout
	}
}
