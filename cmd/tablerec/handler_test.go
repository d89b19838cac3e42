package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/geteat/tablerec/core"
)

func testServer() *server {
	cfg := &Config{}
	cfg.Defaults.Size = core.DefaultSize
	cfg.Defaults.MaxDistanceM = core.DefaultMaxDistanceM
	return newServer(nil, cfg, slog.New(slog.DiscardHandler))
}

func requestFor(rawQuery, userID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/recommend/"+userID+"?"+rawQuery, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("user_id", userID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestParseRequestDefaults(t *testing.T) {
	s := testServer()

	req, err := s.parseRequest(requestFor("latitude=31.23&longitude=121.47", "u40099"))
	if err != nil {
		t.Fatalf("parseRequest: %v", err)
	}
	if req.UserID != "u40099" {
		t.Errorf("UserID = %q", req.UserID)
	}
	if req.Lat != 31.23 || req.Lon != 121.47 {
		t.Errorf("coords = (%f, %f)", req.Lat, req.Lon)
	}
	if req.Size != core.DefaultSize {
		t.Errorf("Size = %d, want default %d", req.Size, core.DefaultSize)
	}
	if req.MaxDistanceM != float64(core.DefaultMaxDistanceM) {
		t.Errorf("MaxDistanceM = %f, want default %d", req.MaxDistanceM, core.DefaultMaxDistanceM)
	}
	if req.SortByDistance {
		t.Error("SortByDistance should default to false")
	}
}

func TestParseRequestExplicitParams(t *testing.T) {
	s := testServer()

	req, err := s.parseRequest(requestFor(
		"latitude=31.23&longitude=121.47&size=5&max_dis=20000&sort_dis=1", "u1"))
	if err != nil {
		t.Fatalf("parseRequest: %v", err)
	}
	if req.Size != 5 || req.MaxDistanceM != 20000 || !req.SortByDistance {
		t.Errorf("parsed = %+v", req)
	}
}

func TestParseRequestErrors(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "missing latitude", query: "longitude=121.47"},
		{name: "latitude not a number", query: "latitude=abc&longitude=121.47"},
		{name: "longitude not a number", query: "latitude=31.23&longitude=east"},
		{name: "size not an integer", query: "latitude=31.23&longitude=121.47&size=ten"},
		{name: "negative max_dis", query: "latitude=31.23&longitude=121.47&max_dis=-5"},
		{name: "sort_dis out of range", query: "latitude=31.23&longitude=121.47&sort_dis=2"},
	}
	s := testServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.parseRequest(requestFor(tt.query, "u1"))
			if !core.IsInvalidParams(err) {
				t.Errorf("expected INVALID_PARAMS, got %v", err)
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "user not found", err: core.ErrUserNotFound, want: http.StatusNotFound},
		{name: "invalid params", err: core.ErrInvalidParams, want: http.StatusBadRequest},
		{name: "store unavailable", err: core.ErrStoreUnavailable, want: http.StatusServiceUnavailable},
		{name: "model failure", err: core.ErrModelFailure, want: http.StatusInternalServerError},
		{name: "generic", err: context.DeadlineExceeded, want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusFor(tt.err); got != tt.want {
				t.Errorf("statusFor = %d, want %d", got, tt.want)
			}
		})
	}
}
