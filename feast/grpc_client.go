package feast

import (
	"context"
	"fmt"
	"time"

	feastsdk "github.com/feast-dev/feast/sdk/go"
	feasttypes "github.com/feast-dev/feast/sdk/go/protos/feast/types"
)

// GrpcClient 是基于官方 Feast Go SDK 的 gRPC 客户端实现。
type GrpcClient struct {
	client  *feastsdk.GrpcClient
	project string
	timeout time.Duration
}

// NewGrpcClient 创建 Feast gRPC 客户端。port 为 0 时用默认端口 6565。
func NewGrpcClient(host string, port int, project string, opts ...ClientOption) (*GrpcClient, error) {
	if port == 0 {
		port = 6565
	}

	config := &ClientConfig{
		Endpoint: fmt.Sprintf("%s:%d", host, port),
		Project:  project,
		Timeout:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(config)
	}

	client, err := feastsdk.NewGrpcClient(host, port)
	if err != nil {
		return nil, fmt.Errorf("feast: grpc client: %w", err)
	}

	return &GrpcClient{
		client:  client,
		project: config.Project,
		timeout: config.Timeout,
	}, nil
}

// GetOnlineFeatures 获取在线特征（实现 Client 接口）。
func (c *GrpcClient) GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error) {
	if len(req.Features) == 0 {
		return nil, fmt.Errorf("feast: features are required")
	}
	if len(req.EntityRows) == 0 {
		return nil, fmt.Errorf("feast: entity rows are required")
	}

	project := req.Project
	if project == "" {
		project = c.project
	}

	entityRows := make([]feastsdk.Row, len(req.EntityRows))
	for i, row := range req.EntityRows {
		entityRow := make(feastsdk.Row, len(row))
		for k, v := range row {
			entityRow[k] = sdkValue(v)
		}
		entityRows[i] = entityRow
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	sdkResp, err := c.client.GetOnlineFeatures(ctx, &feastsdk.OnlineFeaturesRequest{
		Features: req.Features,
		Entities: entityRows,
		Project:  project,
	})
	if err != nil {
		return nil, fmt.Errorf("feast: get online features: %w", err)
	}

	rows := sdkResp.Rows()
	if len(rows) != len(req.EntityRows) {
		return nil, fmt.Errorf("feast: response row count mismatch: expected %d, got %d",
			len(req.EntityRows), len(rows))
	}

	vectors := make([]FeatureVector, len(rows))
	for i, row := range rows {
		values := make(map[string]float64, len(req.Features))
		missing := false
		for _, name := range req.Features {
			val, exists := row[name]
			if !exists {
				missing = true
				continue
			}
			if f, ok := floatFromValue(val); ok {
				values[name] = f
			} else {
				missing = true
			}
		}
		vectors[i] = FeatureVector{Values: values, Missing: missing}
	}

	return &GetOnlineFeaturesResponse{FeatureVectors: vectors}, nil
}

// Close 关闭客户端连接（实现 Client 接口）。
// SDK 的 gRPC 连接由 grpc 库管理，这里只释放引用。
func (c *GrpcClient) Close() error {
	c.client = nil
	return nil
}

// sdkValue 把实体 key 转为 SDK 的 *types.Value。
func sdkValue(v any) *feasttypes.Value {
	switch val := v.(type) {
	case string:
		return feastsdk.StrVal(val)
	case int:
		return feastsdk.Int64Val(int64(val))
	case int64:
		return feastsdk.Int64Val(val)
	case float64:
		return feastsdk.DoubleVal(val)
	default:
		return feastsdk.StrVal(fmt.Sprintf("%v", val))
	}
}

// floatFromValue 从 SDK 的 *types.Value 提取数值特征。
func floatFromValue(v *feasttypes.Value) (float64, bool) {
	if v == nil {
		return 0, false
	}
	switch t := v.Val.(type) {
	case *feasttypes.Value_DoubleVal:
		return t.DoubleVal, true
	case *feasttypes.Value_FloatVal:
		return float64(t.FloatVal), true
	case *feasttypes.Value_Int64Val:
		return float64(t.Int64Val), true
	case *feasttypes.Value_Int32Val:
		return float64(t.Int32Val), true
	default:
		return 0, false
	}
}

var _ Client = (*GrpcClient)(nil)
