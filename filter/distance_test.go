package filter

import (
	"context"
	"errors"
	"testing"

	"github.com/geteat/tablerec/core"
	"github.com/geteat/tablerec/geo"
)

func TestMaxDistanceBoundary(t *testing.T) {
	userLat, userLon := 31.2304, 121.4737
	itemLat, itemLon := 31.2400, 121.4800
	exact := geo.DistanceM(userLat, userLon, itemLat, itemLon)

	tests := []struct {
		name       string
		maxDis     float64
		wantFilter bool
	}{
		{name: "well within", maxDis: exact + 1000, wantFilter: false},
		// max_dis 为闭区间：恰好压着边界的候选保留
		{name: "exactly at boundary", maxDis: exact, wantFilter: false},
		{name: "just beyond", maxDis: exact - 1, wantFilter: true},
		{name: "zero radius distant item", maxDis: 0, wantFilter: true},
	}

	f := &MaxDistance{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rctx := &core.RecommendContext{Lat: userLat, Lon: userLon, MaxDistanceM: tt.maxDis}
			item := &core.Item{ID: "r1", Lat: itemLat, Lon: itemLon}

			got, err := f.ShouldFilter(context.Background(), rctx, item)
			if err != nil {
				t.Fatalf("ShouldFilter: %v", err)
			}
			if got != tt.wantFilter {
				t.Errorf("ShouldFilter = %v, want %v", got, tt.wantFilter)
			}
			if item.DistanceM != exact {
				t.Errorf("DistanceM not backfilled: got %f, want %f", item.DistanceM, exact)
			}
		})
	}
}

func TestMaxDistanceSamePoint(t *testing.T) {
	f := &MaxDistance{}
	rctx := &core.RecommendContext{Lat: 31.23, Lon: 121.47, MaxDistanceM: 0}
	item := &core.Item{ID: "here", Lat: 31.23, Lon: 121.47}

	got, err := f.ShouldFilter(context.Background(), rctx, item)
	if err != nil {
		t.Fatalf("ShouldFilter: %v", err)
	}
	if got {
		t.Error("item at the user's own position must survive max_dis=0")
	}
}

func TestFilterNodeRemovesAndLabels(t *testing.T) {
	node := &Node{Filters: []Filter{&MaxDistance{}}}
	rctx := &core.RecommendContext{Lat: 31.23, Lon: 121.47, MaxDistanceM: 2000}

	near := &core.Item{ID: "near", Lat: 31.235, Lon: 121.475}
	far := &core.Item{ID: "far", Lat: 31.40, Lon: 121.60}

	out, err := node.Process(context.Background(), rctx, []*core.Item{near, far})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(out) != 1 || out[0].ID != "near" {
		t.Fatalf("Process kept %v, want only near", out)
	}
	lbl, ok := far.Labels["filtered"]
	if !ok || lbl.Source != "filter.max_distance" {
		t.Errorf("filtered item not labeled: %v", far.Labels)
	}
}

// failingFilter 总是求值失败。
type failingFilter struct{}

func (f *failingFilter) Name() string { return "filter.failing" }

func (f *failingFilter) ShouldFilter(_ context.Context, _ *core.RecommendContext, _ *core.Item) (bool, error) {
	return false, errors.New("eval failed")
}

func TestFilterNodeFailsOpenAndLabels(t *testing.T) {
	node := &Node{Filters: []Filter{&failingFilter{}}}
	item := &core.Item{ID: "survivor"}

	out, err := node.Process(context.Background(), &core.RecommendContext{}, []*core.Item{item})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(out) != 1 || out[0].ID != "survivor" {
		t.Fatal("a failing filter must keep the item (fail open)")
	}
	lbl, ok := out[0].Labels["filter_error"]
	if !ok || lbl.Source != "filter.failing" {
		t.Errorf("failing filter left no trace label: %v", out[0].Labels)
	}
}

func TestFilterNodeErrorDoesNotMaskLaterFilters(t *testing.T) {
	// 失败的过滤器不拦截后续过滤器的裁剪
	node := &Node{Filters: []Filter{&failingFilter{}, &MaxDistance{}}}
	rctx := &core.RecommendContext{Lat: 31.23, Lon: 121.47, MaxDistanceM: 1000}
	far := &core.Item{ID: "far", Lat: 31.40, Lon: 121.60}

	out, err := node.Process(context.Background(), rctx, []*core.Item{far})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(out) != 0 {
		t.Error("distance cut must still apply after an erroring filter")
	}
}

func TestFilterNodeNoFilters(t *testing.T) {
	node := &Node{}
	items := []*core.Item{{ID: "a"}, {ID: "b"}}
	out, err := node.Process(context.Background(), &core.RecommendContext{}, items)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(out) != 2 {
		t.Errorf("Process dropped items with no filters: %d", len(out))
	}
}
