package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/altech-app/cloudsync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEngine counts FullSync invocations without touching any store.
type stubEngine struct {
	fullSyncs atomic.Int64
}

func (s *stubEngine) PushToCloud(context.Context, PushOptions) (models.PushReport, error) {
	return models.PushReport{}, nil
}

func (s *stubEngine) PullFromCloud(context.Context) ([]models.Conflict, error) { return nil, nil }

func (s *stubEngine) ResolveConflict(context.Context, models.DocumentKind, models.Resolution) error {
	return nil
}

func (s *stubEngine) SchedulePush(context.Context) {}

func (s *stubEngine) FullSync(context.Context) ([]models.Conflict, error) {
	s.fullSyncs.Add(1)
	return nil, nil
}

func (s *stubEngine) DeleteCloudData(context.Context) error { return nil }

func (s *stubEngine) Status() models.SyncStatus { return models.SyncStatus{} }

func (s *stubEngine) Subscribe(func(models.SyncEvent)) func() { return func() {} }

func TestClientSyncJob_RunsPeriodically(t *testing.T) {
	engine := &stubEngine{}
	job := NewClientSyncJob(engine)

	job.Start(context.Background(), 20*time.Millisecond)
	defer job.Stop()

	require.Eventually(t, func() bool {
		return engine.fullSyncs.Load() >= 2
	}, time.Second, 5*time.Millisecond)
}

func TestClientSyncJob_StopHaltsSyncing(t *testing.T) {
	engine := &stubEngine{}
	job := NewClientSyncJob(engine)

	job.Start(context.Background(), 10*time.Millisecond)

	require.Eventually(t, func() bool {
		return engine.fullSyncs.Load() >= 1
	}, time.Second, 5*time.Millisecond)

	job.Stop()
	count := engine.fullSyncs.Load()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, count, engine.fullSyncs.Load())
}

func TestClientSyncJob_RestartReplacesPrevious(t *testing.T) {
	engine := &stubEngine{}
	job := NewClientSyncJob(engine)

	job.Start(context.Background(), time.Hour)
	job.Start(context.Background(), 10*time.Millisecond)
	defer job.Stop()

	require.Eventually(t, func() bool {
		return engine.fullSyncs.Load() >= 1
	}, time.Second, 5*time.Millisecond)
}

func TestClientSyncJob_ContextCancelStops(t *testing.T) {
	engine := &stubEngine{}
	job := NewClientSyncJob(engine)

	ctx, cancel := context.WithCancel(context.Background())
	job.Start(ctx, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		return engine.fullSyncs.Load() >= 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	time.Sleep(30 * time.Millisecond)
	count := engine.fullSyncs.Load()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, count, engine.fullSyncs.Load())

	job.Stop()
}
