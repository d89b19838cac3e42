package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/geteat/tablerec/geo"
	"github.com/geteat/tablerec/knn"
	"github.com/geteat/tablerec/pipeline"
)

func testDeps(t *testing.T) Deps {
	t.Helper()
	engine, err := knn.NewEngine(4)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	index, err := geo.NewIndex(nil, 9)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	return Deps{Index: index, Engine: engine}
}

func TestDefaultPipelineShape(t *testing.T) {
	p := DefaultPipeline(testDeps(t))

	wantKinds := []pipeline.Kind{
		pipeline.KindRecall,
		pipeline.KindFilter,
		pipeline.KindRank,
		pipeline.KindReRank,
		pipeline.KindReRank,
	}
	if len(p.Nodes) != len(wantKinds) {
		t.Fatalf("got %d nodes, want %d", len(p.Nodes), len(wantKinds))
	}
	for i, n := range p.Nodes {
		if n.Kind() != wantKinds[i] {
			t.Errorf("node %d (%s) kind = %s, want %s", i, n.Name(), n.Kind(), wantKinds[i])
		}
	}
}

func TestBuildPipelineFromYAML(t *testing.T) {
	yml := `
pipeline:
  name: standard
  nodes:
    - type: recall.spatial
    - type: filter
      config:
        max_distance: true
        rules:
          - 'label.blocked == "true"'
    - type: rank.knn
    - type: rerank.distance
    - type: rerank.topn
`
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}

	cfg, err := pipeline.LoadFromYAML(path)
	if err != nil {
		t.Fatalf("LoadFromYAML: %v", err)
	}
	p, err := cfg.BuildPipeline(NewFactory(testDeps(t)))
	if err != nil {
		t.Fatalf("BuildPipeline: %v", err)
	}
	if len(p.Nodes) != 5 {
		t.Errorf("got %d nodes, want 5", len(p.Nodes))
	}
}

func TestBuildPipelineUnknownNode(t *testing.T) {
	cfg := &pipeline.Config{}
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{{Type: "rank.xgboost"}}

	if _, err := cfg.BuildPipeline(NewFactory(testDeps(t))); err == nil {
		t.Error("expected error for unknown node type")
	}
}

func TestBuildFilterNodeBadRule(t *testing.T) {
	cfg := &pipeline.Config{}
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{{
		Type:   "filter",
		Config: map[string]any{"rules": []any{"item.score >"}},
	}}

	if _, err := cfg.BuildPipeline(NewFactory(testDeps(t))); err == nil {
		t.Error("expected error for malformed rule expression")
	}
}

func TestFactoryRequiresDeps(t *testing.T) {
	f := NewFactory(Deps{})
	for _, typ := range []string{"recall.spatial", "rank.knn"} {
		if _, err := f.Build(typ, nil); err == nil {
			t.Errorf("Build(%s) without deps expected error", typ)
		}
	}
}
