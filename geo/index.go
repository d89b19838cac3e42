// Package geo 实现基于 H3 六边形网格的空间索引：把一个经纬度点映射为
// 搜索半径内的候选餐厅集合。
//
// 用 cell + 同心环枚举近似圆形搜索，换取一次有界的小查询，而不是对全量
// 餐厅做测地距离扫描。环内可能混入真实距离超过半径的餐厅（假阳性），
// 精确裁剪由管道的距离过滤节点完成；索引只保证常见情况下不漏召回。
package geo

import (
	"context"
	"fmt"
	"math"

	h3 "github.com/uber/h3-go/v4"

	"github.com/geteat/tablerec/core"
)

// defaultInitialRings 首次枚举的环数。覆盖不足时按 RingStep 逐步扩张。
const defaultInitialRings = 4

// Index 是 H3 空间索引。进程启动时构造一次，只读，可并发使用。
type Index struct {
	Source     core.RestaurantSource
	Resolution int

	// RingStep 候选不足时每次扩张的环数，默认 core.DefaultRingStep。
	RingStep int

	// spacingM 相邻 cell 中心间距（≈ √3 × 平均边长），
	// 用于把半径换算成环数。
	spacingM float64
}

// NewIndex 创建固定分辨率的空间索引。
// 分辨率非法时立即失败（配置错误，不进入服务）。
func NewIndex(source core.RestaurantSource, resolution int) (*Index, error) {
	edgeM, err := h3.HexagonEdgeLengthAvgM(resolution)
	if err != nil {
		return nil, fmt.Errorf("geo: invalid resolution %d: %w", resolution, err)
	}
	return &Index{
		Source:     source,
		Resolution: resolution,
		RingStep:   core.DefaultRingStep,
		spacingM:   edgeM * math.Sqrt(3),
	}, nil
}

// Candidates 返回 (lat, lon) 周围 maxRadiusM 内的候选餐厅（超集语义）。
//
// 算法：计算坐标所在 cell，从初始环数开始枚举 grid disk 并按 cell 集合
// 取回餐厅；若候选数低于 minCandidates 且已枚举半径仍小于 maxRadiusM，
// 则扩张一步后重试，直到覆盖 maxRadiusM 为止。此后有多少返回多少
// （可能为空）——稀疏区域不保证凑满 minCandidates，这是有意的近似。
func (ix *Index) Candidates(ctx context.Context, lat, lon, maxRadiusM float64, minCandidates int) ([]core.Restaurant, error) {
	cell, err := h3.LatLngToCell(h3.NewLatLng(lat, lon), ix.Resolution)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleGeo, core.ErrorCodeInvalidParams,
			fmt.Sprintf("geo: cell for (%f, %f): %v", lat, lon, err))
	}

	maxK := ix.ringsFor(maxRadiusM)
	step := ix.RingStep
	if step <= 0 {
		step = core.DefaultRingStep
	}

	k := defaultInitialRings
	if k > maxK {
		k = maxK
	}

	for {
		restaurants, err := ix.fetchDisk(ctx, cell, k)
		if err != nil {
			return nil, err
		}
		if len(restaurants) >= minCandidates || k >= maxK {
			return restaurants, nil
		}
		k += step
		if k > maxK {
			k = maxK
		}
	}
}

// ringsFor 把搜索半径换算成覆盖它所需的环数。
func (ix *Index) ringsFor(radiusM float64) int {
	if radiusM <= 0 {
		return 0
	}
	return int(math.Ceil(radiusM / ix.spacingM))
}

func (ix *Index) fetchDisk(ctx context.Context, cell h3.Cell, k int) ([]core.Restaurant, error) {
	disk, err := cell.GridDisk(k)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleGeo, core.ErrorCodeInternalError,
			fmt.Sprintf("geo: grid disk k=%d: %v", k, err))
	}

	cells := make([]string, len(disk))
	for i, c := range disk {
		cells[i] = c.String()
	}
	return ix.Source.LoadRestaurantsByCells(ctx, cells)
}
