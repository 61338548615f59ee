package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/nexa-sys/internal/domain"
	"github.com/spec-kit/nexa-sys/internal/events"
	"github.com/spec-kit/nexa-sys/internal/repository"
)

const (
	dashboardCacheKey = "nexa:dashboard:stats"
	securityLevel     = "NIVEL 1"
)

// DashboardStats is the summary shown on the landing page.
type DashboardStats struct {
	TotalClients  int                       `json:"total_cl"`
	TotalTasks    int                       `json:"total_tasks"`
	TasksByStatus map[domain.TaskStatus]int `json:"tasks_by_status"`
	SecurityLevel string                    `json:"security_level"`
}

// DashboardService computes dashboard stats, cached in Redis when available.
type DashboardService struct {
	clients repository.ClientRepository
	tasks   repository.TaskRepository
	cache   *redis.Client
	ttl     time.Duration
	logger  *zap.Logger
}

// DashboardDependencies bundles collaborators for the dashboard service.
// A nil Cache or zero TTL disables caching.
type DashboardDependencies struct {
	ClientRepo repository.ClientRepository
	TaskRepo   repository.TaskRepository
	Cache      *redis.Client
	TTL        time.Duration
	Logger     *zap.Logger
}

// NewDashboardService constructs the service.
func NewDashboardService(deps DashboardDependencies) *DashboardService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		clients: deps.ClientRepo,
		tasks:   deps.TaskRepo,
		cache:   deps.Cache,
		ttl:     deps.TTL,
		logger:  logger,
	}
}

// Stats returns the dashboard summary. Cache failures fall through to the
// repositories.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	if cached, ok := s.fromCache(ctx); ok {
		return cached, nil
	}

	active := true
	totalClients, err := s.clients.Count(ctx, repository.ClientFilter{Active: &active})
	if err != nil {
		return nil, err
	}
	counts, err := s.tasks.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalClients:  totalClients,
		TasksByStatus: make(map[domain.TaskStatus]int, len(domain.TaskStatuses)),
		SecurityLevel: securityLevel,
	}
	for _, status := range domain.TaskStatuses {
		stats.TasksByStatus[status] = counts[status]
		stats.TotalTasks += counts[status]
	}

	s.store(ctx, stats)
	return stats, nil
}

// Invalidate drops the cached stats.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if !s.cacheEnabled() {
		return
	}
	if err := s.cache.Del(ctx, dashboardCacheKey).Err(); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}

// RegisterHandlers drops the cache whenever task counts change.
func (s *DashboardService) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	invalidate := func(ctx context.Context, _ events.Event) error {
		s.Invalidate(ctx)
		return nil
	}
	dispatcher.Subscribe(events.EventTaskCreated, invalidate)
	dispatcher.Subscribe(events.EventTaskStatusChanged, invalidate)
}

func (s *DashboardService) cacheEnabled() bool {
	return s.cache != nil && s.ttl > 0
}

func (s *DashboardService) fromCache(ctx context.Context) (*DashboardStats, bool) {
	if !s.cacheEnabled() {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, dashboardCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("dashboard cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var stats DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		s.logger.Warn("dashboard cache entry unreadable", zap.Error(err))
		return nil, false
	}
	return &stats, true
}

func (s *DashboardService) store(ctx context.Context, stats *DashboardStats) {
	if !s.cacheEnabled() {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, dashboardCacheKey, raw, s.ttl).Err(); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.Error(err))
	}
}
