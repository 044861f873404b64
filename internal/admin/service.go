// AngelaMos | 2026
// service.go

// Package admin exposes read-only operator views over the record store.
package admin

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/pizzeria/internal/auth"
	"github.com/carterperez-dev/pizzeria/internal/cart"
	"github.com/carterperez-dev/pizzeria/internal/order"
	"github.com/carterperez-dev/pizzeria/internal/store"
	"github.com/carterperez-dev/pizzeria/internal/user"
)

type Service struct {
	store      store.Store
	users      user.Repository
	tokens     auth.Repository
	carts      cart.Repository
	orders     order.Repository
	dbStats    func() sql.DBStats
	redisStats func() *redis.PoolStats
}

type Config struct {
	Store      store.Store
	DBStats    func() sql.DBStats
	RedisStats func() *redis.PoolStats
}

func NewService(cfg Config) *Service {
	return &Service{
		store:      cfg.Store,
		users:      user.NewRepository(cfg.Store),
		tokens:     auth.NewRepository(cfg.Store),
		carts:      cart.NewRepository(cfg.Store),
		orders:     order.NewRepository(cfg.Store),
		dbStats:    cfg.DBStats,
		redisStats: cfg.RedisStats,
	}
}

func (s *Service) Stats(ctx context.Context) (*SystemStats, error) {
	counts := RecordCounts{}

	for _, c := range []struct {
		name string
		dst  *int
	}{
		{store.Users, &counts.Users},
		{store.Tokens, &counts.Tokens},
		{store.Carts, &counts.Carts},
		{store.Orders, &counts.Orders},
	} {
		keys, err := s.store.List(ctx, c.name)
		if err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
		*c.dst = len(keys)
	}

	stats := &SystemStats{
		Store: StoreStatus{
			Healthy: s.store.Ping(ctx) == nil,
			Records: counts,
			Pool:    s.dbPoolStats(),
		},
		Runtime: readRuntimeStats(),
	}

	if s.redisStats != nil {
		stats.Redis = redisPoolStats(s.redisStats())
	}

	return stats, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]string, error) {
	return sorted(s.users.ListEmails(ctx))
}

func (s *Service) GetUser(ctx context.Context, email string) (*user.UserResponse, error) {
	u, err := s.users.GetByEmail(ctx, auth.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	resp := user.ToUserResponse(u)
	return &resp, nil
}

func (s *Service) ListCarts(ctx context.Context) ([]string, error) {
	return sorted(s.carts.ListIDs(ctx))
}

func (s *Service) GetCart(ctx context.Context, id string) (*cart.Cart, error) {
	return s.carts.GetByID(ctx, id)
}

func (s *Service) ListOrders(ctx context.Context) ([]string, error) {
	return sorted(s.orders.ListIDs(ctx))
}

func (s *Service) GetOrder(ctx context.Context, id string) (*order.Order, error) {
	return s.orders.GetByID(ctx, id)
}

func (s *Service) dbPoolStats() *DBPoolStats {
	if s.dbStats == nil {
		return nil
	}

	stats := s.dbStats()
	return &DBPoolStats{
		MaxOpenConnections: stats.MaxOpenConnections,
		OpenConnections:    stats.OpenConnections,
		InUse:              stats.InUse,
		Idle:               stats.Idle,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration.String(),
	}
}

func redisPoolStats(stats *redis.PoolStats) *RedisPoolStats {
	if stats == nil {
		return nil
	}
	return &RedisPoolStats{
		Hits:       stats.Hits,
		Misses:     stats.Misses,
		Timeouts:   stats.Timeouts,
		TotalConns: stats.TotalConns,
		IdleConns:  stats.IdleConns,
	}
}

func readRuntimeStats() RuntimeStats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return RuntimeStats{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     mem.Alloc,
		MemSys:       mem.Sys,
		NumGC:        mem.NumGC,
	}
}

func sorted(keys []string, err error) ([]string, error) {
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

type SystemStats struct {
	Store   StoreStatus     `json:"store"`
	Redis   *RedisPoolStats `json:"redis,omitempty"`
	Runtime RuntimeStats    `json:"runtime"`
}

type StoreStatus struct {
	Healthy bool         `json:"healthy"`
	Records RecordCounts `json:"records"`
	Pool    *DBPoolStats `json:"pool,omitempty"`
}

type RecordCounts struct {
	Users  int `json:"users"`
	Tokens int `json:"tokens"`
	Carts  int `json:"carts"`
	Orders int `json:"orders"`
}

type DBPoolStats struct {
	MaxOpenConnections int    `json:"max_open_connections"`
	OpenConnections    int    `json:"open_connections"`
	InUse              int    `json:"in_use"`
	Idle               int    `json:"idle"`
	WaitCount          int64  `json:"wait_count"`
	WaitDuration       string `json:"wait_duration"`
}

type RedisPoolStats struct {
	Hits       uint32 `json:"hits"`
	Misses     uint32 `json:"misses"`
	Timeouts   uint32 `json:"timeouts"`
	TotalConns uint32 `json:"total_conns"`
	IdleConns  uint32 `json:"idle_conns"`
}

type RuntimeStats struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	NumCPU       int    `json:"num_cpu"`
	MemAlloc     uint64 `json:"mem_alloc_bytes"`
	MemSys       uint64 `json:"mem_sys_bytes"`
	NumGC        uint32 `json:"num_gc"`
}
