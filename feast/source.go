package feast

import (
	"context"
	"fmt"

	"github.com/geteat/tablerec/core"
)

// VectorSource 把 Feast 在线特征适配为 core.UserVectorSource。
// features 按维度顺序声明（f0, f1, ...），向量维度即 len(features)，
// 与模型维度的一致性由上层的特征服务校验。
type VectorSource struct {
	client    Client
	entityKey string
	features  []string
}

// NewVectorSource 创建 Feast 用户向量来源。
// entityKey 为空时默认 "user_id"。
func NewVectorSource(client Client, entityKey string, features []string) *VectorSource {
	if entityKey == "" {
		entityKey = "user_id"
	}
	return &VectorSource{
		client:    client,
		entityKey: entityKey,
		features:  features,
	}
}

func (s *VectorSource) Name() string { return "feast" }

// LoadUser 读取用户特征向量（实现 core.UserVectorSource）。
// Feast 侧没有该用户的任一特征值都视为用户不存在；
// 服务不可达映射为 UNAVAILABLE（与持久存储同语义）。
func (s *VectorSource) LoadUser(ctx context.Context, userID string) ([]float32, error) {
	resp, err := s.client.GetOnlineFeatures(ctx, &GetOnlineFeaturesRequest{
		Features:   s.features,
		EntityRows: []map[string]any{{s.entityKey: userID}},
	})
	if err != nil {
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeUnavailable,
			fmt.Sprintf("feast: %v", err))
	}
	if len(resp.FeatureVectors) == 0 || resp.FeatureVectors[0].Missing {
		return nil, core.ErrUserNotFound
	}

	values := resp.FeatureVectors[0].Values
	vec := make([]float32, len(s.features))
	for i, name := range s.features {
		vec[i] = float32(values[name])
	}
	return vec, nil
}

var _ core.UserVectorSource = (*VectorSource)(nil)
