package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/nexa-sys/internal/domain"
)

func TestDashboardStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tasks := env.taskService()
	task := createTask(t, env, tasks)
	if _, err := tasks.SetStatus(ctx, actorFor(env.manager), task.ID, domain.TaskStatusApproved); err != nil {
		t.Fatalf("approve: %v", err)
	}
	createTask(t, env, tasks)
	if err := env.repos.Clients.Create(ctx, &domain.Client{Name: "Old", Active: false}); err != nil {
		t.Fatalf("create client: %v", err)
	}

	svc := NewDashboardService(DashboardDependencies{ClientRepo: env.repos.Clients, TaskRepo: env.repos.Tasks})
	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalClients != 1 {
		t.Fatalf("expected 1 active client, got %d", stats.TotalClients)
	}
	if stats.TotalTasks != 2 || stats.TasksByStatus[domain.TaskStatusApproved] != 1 || stats.TasksByStatus[domain.TaskStatusPending] != 1 {
		t.Fatalf("unexpected task counts %+v", stats)
	}
	if _, ok := stats.TasksByStatus[domain.TaskStatusCompleted]; !ok {
		t.Fatalf("every status must be reported")
	}
	if stats.SecurityLevel != "NIVEL 1" {
		t.Fatalf("unexpected security level %q", stats.SecurityLevel)
	}
}

func TestDashboardStatsCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	env := newTestEnv(t)
	ctx := context.Background()
	tasks := env.taskService()

	svc := NewDashboardService(DashboardDependencies{
		ClientRepo: env.repos.Clients,
		TaskRepo:   env.repos.Tasks,
		Cache:      client,
		TTL:        time.Minute,
		Logger:     zap.NewNop(),
	})
	svc.RegisterHandlers(env.dispatcher)

	first, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if first.TotalTasks != 0 {
		t.Fatalf("expected no tasks, got %d", first.TotalTasks)
	}
	if !mr.Exists(dashboardCacheKey) {
		t.Fatalf("stats were not cached")
	}
	if ttl := mr.TTL(dashboardCacheKey); ttl != time.Minute {
		t.Fatalf("unexpected ttl %s", ttl)
	}

	createTask(t, env, tasks)
	if mr.Exists(dashboardCacheKey) {
		t.Fatalf("task creation should invalidate the cache")
	}

	second, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if second.TotalTasks != 1 {
		t.Fatalf("expected fresh count 1, got %d", second.TotalTasks)
	}
}

func TestDashboardStatsCacheUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	env := newTestEnv(t)
	svc := NewDashboardService(DashboardDependencies{
		ClientRepo: env.repos.Clients,
		TaskRepo:   env.repos.Tasks,
		Cache:      client,
		TTL:        time.Minute,
	})
	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats should fall back to the store: %v", err)
	}
	if stats.TotalClients != 1 {
		t.Fatalf("expected 1 client, got %d", stats.TotalClients)
	}
}
