// Package service 组装请求时刻的推荐流程：参数校验 -> 用户向量解析
// （缓存 -> 持久存储回退）-> Pipeline（空间召回 -> 距离过滤 -> 相似度
// 排序 -> 重排/截断）。
//
// 一次请求由单个 worker 同步处理到底，四个阶段严格顺序执行；跨请求的
// 并发来自并行的 worker，而不是请求内部的协作式调度。共享资源只有
// 缓存、存储连接池和只读的相似度引擎，全部可无锁并发使用。
package service

import (
	"context"
	"math"

	"github.com/geteat/tablerec/core"
	"github.com/geteat/tablerec/feature"
	"github.com/geteat/tablerec/pipeline"
)

// Request 是一次推荐请求。默认值（size=20, max_dis=5000）由边界层
// 填充；这里按字面值执行，size=0 就是要空结果。
type Request struct {
	UserID         string
	Lat            float64
	Lon            float64
	Size           int
	MaxDistanceM   float64
	SortByDistance bool
}

// Recommender 是推荐服务的顶层入口。进程启动时构造一次，
// 持有全部共享协作方，可被任意多 worker 并发调用。
type Recommender struct {
	Features *feature.Service
	Pipeline *pipeline.Pipeline
}

// Recommend 返回按请求排序的候选序列，每条同时携带模型距离（Score）
// 与测地距离（DistanceM），边界层按需呈现其一。
//
// 错误语义：
//   - INVALID_PARAMS：参数非法，未做任何管道工作
//   - USER_NOT_FOUND：用户不存在，召回与排序均未执行
//   - UNAVAILABLE / MODEL_FAILURE：按原样透传
//
// 空结果是合法的零匹配产出，不是错误。
func (r *Recommender) Recommend(ctx context.Context, req Request) ([]*core.Item, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	vec, err := r.Features.UserVector(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	rctx := &core.RecommendContext{
		UserID:         req.UserID,
		Lat:            req.Lat,
		Lon:            req.Lon,
		Size:           req.Size,
		MaxDistanceM:   req.MaxDistanceM,
		SortByDistance: req.SortByDistance,
		UserVector:     vec,
	}

	items, err := r.Pipeline.Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*core.Item{}
	}
	return items, nil
}

func validate(req Request) error {
	if req.UserID == "" {
		return invalidParams("user_id is required")
	}
	if !isFinite(req.Lat) || req.Lat < -90 || req.Lat > 90 {
		return invalidParams("latitude out of range")
	}
	if !isFinite(req.Lon) || req.Lon < -180 || req.Lon > 180 {
		return invalidParams("longitude out of range")
	}
	if !isFinite(req.MaxDistanceM) || req.MaxDistanceM < 0 {
		return invalidParams("max_dis must be >= 0")
	}
	return nil
}

func invalidParams(msg string) error {
	return core.NewDomainError(core.ModuleService, core.ErrorCodeInvalidParams, "service: "+msg)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
