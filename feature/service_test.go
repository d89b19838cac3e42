package feature

import (
	"context"
	"errors"
	"testing"

	"github.com/geteat/tablerec/core"
)

type fakeVectorSource struct {
	users map[string][]float32
	calls int
}

func (f *fakeVectorSource) Name() string { return "fake" }

func (f *fakeVectorSource) LoadUser(_ context.Context, userID string) ([]float32, error) {
	f.calls++
	vec, ok := f.users[userID]
	if !ok {
		return nil, core.ErrUserNotFound
	}
	return vec, nil
}

// fakeCache 是可注入故障的内存缓存。
type fakeCache struct {
	data   map[string][]byte
	setErr error
	getErr error
	sets   int
	gets   int
}

func newFakeCache() *fakeCache { return &fakeCache{data: make(map[string][]byte)} }

func (f *fakeCache) Name() string { return "fake-cache" }

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	v, ok := f.data[key]
	if !ok {
		return nil, core.ErrCacheNotFound
	}
	return v, nil
}

func (f *fakeCache) Set(_ context.Context, key string, value []byte, _ ...int) error {
	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	return nil
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func (f *fakeCache) BatchGet(_ context.Context, keys []string) (map[string][]byte, error) {
	out := make(map[string][]byte)
	for _, k := range keys {
		if v, ok := f.data[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (f *fakeCache) BatchSet(_ context.Context, kvs map[string][]byte, _ ...int) error {
	if f.setErr != nil {
		return f.setErr
	}
	for k, v := range kvs {
		f.data[k] = v
	}
	return nil
}

func (f *fakeCache) Close() error { return nil }

var _ core.Store = (*fakeCache)(nil)

func vecEqual(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestUserVectorCacheHit(t *testing.T) {
	want := []float32{1, 2, 3}
	cache := newFakeCache()
	cache.data["u1"] = core.EncodeVector(want)
	src := &fakeVectorSource{users: map[string][]float32{}}

	s := NewService(cache, src, 3)
	got, err := s.UserVector(context.Background(), "u1")
	if err != nil {
		t.Fatalf("UserVector: %v", err)
	}
	if !vecEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if src.calls != 0 {
		t.Errorf("store called %d times on cache hit, want 0", src.calls)
	}
}

func TestUserVectorMissFallbackAndBackfill(t *testing.T) {
	want := []float32{0.5, -1.5}
	cache := newFakeCache()
	src := &fakeVectorSource{users: map[string][]float32{"u2": want}}

	s := NewService(cache, src, 2)
	got, err := s.UserVector(context.Background(), "u2")
	if err != nil {
		t.Fatalf("UserVector: %v", err)
	}
	if !vecEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if src.calls != 1 {
		t.Errorf("store called %d times, want 1", src.calls)
	}

	// miss 后缓存被回填，二次读取不再回源
	cached, ok := cache.data["u2"]
	if !ok {
		t.Fatal("cache not backfilled after miss")
	}
	dec, err := core.DecodeVector(cached)
	if err != nil || !vecEqual(dec, want) {
		t.Errorf("backfilled value decodes to %v (err %v), want %v", dec, err, want)
	}

	if _, err := s.UserVector(context.Background(), "u2"); err != nil {
		t.Fatalf("second UserVector: %v", err)
	}
	if src.calls != 1 {
		t.Errorf("store called %d times after warm read, want still 1", src.calls)
	}
}

func TestUserVectorBadCacheValueTreatedAsMiss(t *testing.T) {
	want := []float32{1, 2, 3}
	src := &fakeVectorSource{users: map[string][]float32{"u3": want}}

	tests := []struct {
		name   string
		cached []byte
	}{
		{name: "corrupted length", cached: []byte{1, 2, 3}},
		{name: "wrong dimension", cached: core.EncodeVector([]float32{9, 9})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := newFakeCache()
			cache.data["u3"] = tt.cached
			src.calls = 0

			s := NewService(cache, src, 3)
			got, err := s.UserVector(context.Background(), "u3")
			if err != nil {
				t.Fatalf("UserVector: %v", err)
			}
			if !vecEqual(got, want) {
				t.Errorf("got %v, want %v", got, want)
			}
			if src.calls != 1 {
				t.Errorf("store called %d times, want 1 (bad cache value is a miss)", src.calls)
			}
		})
	}
}

func TestUserVectorNotFound(t *testing.T) {
	cache := newFakeCache()
	src := &fakeVectorSource{users: map[string][]float32{}}

	s := NewService(cache, src, 3)
	_, err := s.UserVector(context.Background(), "ghost")
	if !core.IsUserNotFound(err) {
		t.Errorf("expected USER_NOT_FOUND, got %v", err)
	}
	if len(cache.data) != 0 {
		t.Error("cache written for a missing user")
	}
}

func TestUserVectorBackfillFailureSwallowed(t *testing.T) {
	want := []float32{4, 5}
	cache := newFakeCache()
	cache.setErr = errors.New("redis down")
	src := &fakeVectorSource{users: map[string][]float32{"u4": want}}

	s := NewService(cache, src, 2)
	got, err := s.UserVector(context.Background(), "u4")
	if err != nil {
		t.Fatalf("UserVector must not fail on backfill error: %v", err)
	}
	if !vecEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestUserVectorNilCache(t *testing.T) {
	want := []float32{7}
	src := &fakeVectorSource{users: map[string][]float32{"u5": want}}

	s := NewService(nil, src, 1)
	got, err := s.UserVector(context.Background(), "u5")
	if err != nil {
		t.Fatalf("UserVector: %v", err)
	}
	if !vecEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
