package store

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/geteat/tablerec/core"
)

// PostgresStore 是 PostgreSQL 实现的持久存储读取面，对核心只读。
// 建表/建索引/灌数据由离线协作方完成，这里假设 users(user_id) 与
// restaurants(h3_index) 上已有索引。
//
// 表结构：
//   users(user_id TEXT PRIMARY KEY, features REAL[])
//   restaurants(restaurant_id TEXT PRIMARY KEY,
//               latitude DOUBLE PRECISION, longitude DOUBLE PRECISION,
//               h3_index TEXT, features REAL[])
type PostgresStore struct {
	pool *pgxpool.Pool
	dim  int
}

// NewPostgresStore 建立连接池并校验连通性。
// dim 为模型特征维度，所有读出的向量都在此边界校验。
func NewPostgresStore(ctx context.Context, dsn string, dim int) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: parse dsn: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, unavailableErr(err)
	}
	return &PostgresStore{pool: pool, dim: dim}, nil
}

func (s *PostgresStore) Name() string { return "postgres" }

// LoadUser 读取用户特征向量。
func (s *PostgresStore) LoadUser(ctx context.Context, userID string) ([]float32, error) {
	var vec []float32
	err := s.pool.QueryRow(ctx,
		`SELECT features FROM users WHERE user_id = $1`, userID,
	).Scan(&vec)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.ErrUserNotFound
	}
	if err != nil {
		return nil, unavailableErr(err)
	}
	if len(vec) != s.dim {
		return nil, dimensionErr("user", userID, len(vec), s.dim)
	}
	return vec, nil
}

// LoadRestaurantsByCells 读取 h3_index 命中给定集合的全部餐厅。
// 按 restaurant_id 排序返回，保证同一输入下的稳定顺序（平局规则依赖它）。
// 坐标为非有限值的脏行在此丢弃，管道不处理无效坐标。
func (s *PostgresStore) LoadRestaurantsByCells(ctx context.Context, cells []string) ([]core.Restaurant, error) {
	if len(cells) == 0 {
		return nil, nil
	}

	rows, err := s.pool.Query(ctx,
		`SELECT restaurant_id, latitude, longitude, h3_index, features
		   FROM restaurants
		  WHERE h3_index = ANY($1)
		  ORDER BY restaurant_id`, cells)
	if err != nil {
		return nil, unavailableErr(err)
	}
	defer rows.Close()

	var out []core.Restaurant
	for rows.Next() {
		var r core.Restaurant
		if err := rows.Scan(&r.ID, &r.Lat, &r.Lon, &r.Cell, &r.Vector); err != nil {
			return nil, unavailableErr(err)
		}
		if !isFinite(r.Lat) || !isFinite(r.Lon) {
			continue
		}
		if len(r.Vector) != s.dim {
			return nil, dimensionErr("restaurant", r.ID, len(r.Vector), s.dim)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailableErr(err)
	}
	return out, nil
}

// StreamUsers 按 chunkSize 分块流式遍历全部用户。
// 结果集在服务端游标上迭代，任意时刻内存中只驻留一个块。
func (s *PostgresStore) StreamUsers(ctx context.Context, chunkSize int, fn func(users []core.UserRecord) error) error {
	if chunkSize <= 0 {
		chunkSize = core.DefaultPrewarmChunkSize
	}

	rows, err := s.pool.Query(ctx, `SELECT user_id, features FROM users`)
	if err != nil {
		return unavailableErr(err)
	}
	defer rows.Close()

	chunk := make([]core.UserRecord, 0, chunkSize)
	for rows.Next() {
		var u core.UserRecord
		if err := rows.Scan(&u.ID, &u.Vector); err != nil {
			return unavailableErr(err)
		}
		chunk = append(chunk, u)
		if len(chunk) == chunkSize {
			if err := fn(chunk); err != nil {
				return err
			}
			chunk = make([]core.UserRecord, 0, chunkSize)
		}
	}
	if err := rows.Err(); err != nil {
		return unavailableErr(err)
	}
	if len(chunk) > 0 {
		return fn(chunk)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func unavailableErr(err error) error {
	return core.NewDomainError(core.ModuleStore, core.ErrorCodeUnavailable,
		fmt.Sprintf("store: postgres: %v", err))
}

func dimensionErr(kind, id string, got, want int) error {
	return core.NewDomainError(core.ModuleModel, core.ErrorCodeModelFailure,
		fmt.Sprintf("store: %s %s feature dimension %d, want %d", kind, id, got, want))
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

var _ core.FeatureStore = (*PostgresStore)(nil)
