// Package knn 封装预训练的最近邻模型：给定查询向量与候选矩阵，
// 返回按特征空间欧氏距离升序的 (下标, 距离) 序列。
//
// 引擎只做推理，不 refit、不训练、不改写任何模型状态；进程启动时
// 构造一次，只读，可被所有 worker 无同步并发使用。
package knn

import (
	"fmt"
	"math"
	"sort"

	"github.com/geteat/tablerec/core"
)

// Neighbor 是一条排序结果：候选矩阵中的原始下标与模型距离。
type Neighbor struct {
	Index    int
	Distance float64
}

// Engine 是相似度引擎。维度 d 由训练产物固定，构造时声明。
type Engine struct {
	dim int
}

// NewEngine 创建固定维度的相似度引擎。
// 维度非法属于配置缺陷，立即失败而不是逐请求报错。
func NewEngine(dim int) (*Engine, error) {
	if dim <= 0 {
		return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeModelFailure,
			fmt.Sprintf("model: invalid dimension %d", dim))
	}
	return &Engine{dim: dim}, nil
}

// Dim 返回模型的特征维度。
func (e *Engine) Dim() int { return e.dim }

// Rank 对候选矩阵按与查询向量的欧氏距离升序排序，平局保持候选原始顺序
// （稳定排序）。查询向量或任一候选行维度不符即返回 MODEL_FAILURE ——
// 这是配置缺陷，不可重试。
func (e *Engine) Rank(query []float32, candidates [][]float32) ([]Neighbor, error) {
	if len(query) != e.dim {
		return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeModelFailure,
			fmt.Sprintf("model: query dimension %d, want %d", len(query), e.dim))
	}

	neighbors := make([]Neighbor, len(candidates))
	for i, row := range candidates {
		if len(row) != e.dim {
			return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeModelFailure,
				fmt.Sprintf("model: candidate %d dimension %d, want %d", i, len(row), e.dim))
		}
		neighbors[i] = Neighbor{Index: i, Distance: euclidean(query, row)}
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Distance < neighbors[j].Distance
	})
	return neighbors, nil
}

func euclidean(a, b []float32) float64 {
	var sum float64
	for i := range a {
		diff := float64(a[i]) - float64(b[i])
		sum += diff * diff
	}
	return math.Sqrt(sum)
}
