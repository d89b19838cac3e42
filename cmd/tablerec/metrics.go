package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tablerec",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "推荐接口耗时分布",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "status"})

	recommendResults = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "tablerec",
		Name:      "recommend_result_count",
		Help:      "单次请求返回的餐厅数量",
		Buckets:   []float64{0, 1, 5, 10, 20, 50, 100},
	})
)
