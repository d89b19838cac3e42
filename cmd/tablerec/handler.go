package main

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/geteat/tablerec/core"
	"github.com/geteat/tablerec/service"
)

type server struct {
	rec      *service.Recommender
	defaults struct {
		size   int
		maxDis int
	}
	logger *slog.Logger
}

func newServer(rec *service.Recommender, cfg *Config, logger *slog.Logger) *server {
	s := &server{rec: rec, logger: logger}
	s.defaults.size = cfg.Defaults.Size
	s.defaults.maxDis = cfg.Defaults.MaxDistanceM
	return s
}

func (s *server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleWelcome)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/recommend/{user_id}", s.handleRecommend)
	r.Post("/recommend/{user_id}", s.handleRecommend)
	return r
}

func (s *server) handleWelcome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the restaurant recommendation service"})
}

type restaurantView struct {
	ID           string  `json:"id"`
	Difference   float64 `json:"difference"`
	Displacement float64 `json:"displacement"`
}

type recommendResponse struct {
	Restaurants []restaurantView `json:"restaurants"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := http.StatusOK
	defer func() {
		requestDuration.WithLabelValues("/recommend", strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	}()

	req, err := s.parseRequest(r)
	if err != nil {
		status = http.StatusBadRequest
		writeJSON(w, status, errorResponse{Detail: err.Error()})
		return
	}

	items, err := s.rec.Recommend(r.Context(), req)
	if err != nil {
		status = statusFor(err)
		s.logger.Warn("recommend failed",
			"user_id", req.UserID, "status", status, "err", err)
		writeJSON(w, status, errorResponse{Detail: err.Error()})
		return
	}

	recommendResults.Observe(float64(len(items)))

	resp := recommendResponse{Restaurants: make([]restaurantView, 0, len(items))}
	for _, it := range items {
		resp.Restaurants = append(resp.Restaurants, restaurantView{
			ID:           it.ID,
			Difference:   it.Score,
			Displacement: math.Round(it.DistanceM),
		})
	}
	writeJSON(w, status, resp)
}

func (s *server) parseRequest(r *http.Request) (service.Request, error) {
	q := r.URL.Query()
	req := service.Request{
		UserID:       chi.URLParam(r, "user_id"),
		Size:         s.defaults.size,
		MaxDistanceM: float64(s.defaults.maxDis),
	}

	lat, err := strconv.ParseFloat(q.Get("latitude"), 64)
	if err != nil {
		return req, core.NewDomainError(core.ModuleService, core.ErrorCodeInvalidParams, "latitude is not a valid number")
	}
	lon, err := strconv.ParseFloat(q.Get("longitude"), 64)
	if err != nil {
		return req, core.NewDomainError(core.ModuleService, core.ErrorCodeInvalidParams, "longitude is not a valid number")
	}
	req.Lat, req.Lon = lat, lon

	if v := q.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, core.NewDomainError(core.ModuleService, core.ErrorCodeInvalidParams, "size is not a valid integer")
		}
		req.Size = n
	}
	if v := q.Get("max_dis"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return req, core.NewDomainError(core.ModuleService, core.ErrorCodeInvalidParams, "max_dis is not a valid non-negative integer")
		}
		req.MaxDistanceM = float64(n)
	}
	if v := q.Get("sort_dis"); v != "" {
		switch v {
		case "0":
		case "1":
			req.SortByDistance = true
		default:
			return req, core.NewDomainError(core.ModuleService, core.ErrorCodeInvalidParams, "sort_dis must be 0 or 1")
		}
	}
	return req, nil
}

func statusFor(err error) int {
	switch {
	case core.IsUserNotFound(err), core.IsNotFound(err):
		return http.StatusNotFound
	case core.IsInvalidParams(err):
		return http.StatusBadRequest
	case core.IsStoreUnavailable(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
