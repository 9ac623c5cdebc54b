package service

import (
	health_prober "GameHub_Monitor/internal/health-prober"
	mockprober "GameHub_Monitor/internal/health-prober/mocks"
	apperrors "GameHub_Monitor/internal/monitor-service/errors"
	mockrepository "GameHub_Monitor/internal/monitor-service/mocks/repository"
	"GameHub_Monitor/internal/monitor-service/model"
	"GameHub_Monitor/internal/monitor-service/registry"
	"GameHub_Monitor/internal/monitor-service/repository/memstore"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

var syncConfig = RegistrySyncConfig{ProbeConcurrency: 4, LockTTL: time.Minute}

// fakeProber reports hosts listed in online as reachable.
type fakeProber struct {
	mu     sync.Mutex
	online map[string]bool
}

func (f *fakeProber) set(host string, online bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.online[host] = online
}

func (f *fakeProber) Probe(_ context.Context, target health_prober.Target) health_prober.Result {
	f.mu.Lock()
	online := f.online[target.Host]
	f.mu.Unlock()
	checkedAt := time.Now()
	if !online {
		return health_prober.Result{Online: false, Method: health_prober.MethodTCP, Detail: ptr("connection refused"), CheckedAt: checkedAt}
	}
	return health_prober.Result{
		Online:      true,
		Method:      health_prober.MethodTCP,
		MetricName:  ptr("latency"),
		MetricValue: ptr(float64(checkedAt.Nanosecond()%50) + 1),
		MetricUnit:  ptr("ms"),
		CheckedAt:   checkedAt,
	}
}

func newFakeProber(online ...string) *fakeProber {
	f := &fakeProber{online: make(map[string]bool)}
	for _, host := range online {
		f.online[host] = true
	}
	return f
}

func testEntries() []registry.ServerEntry {
	return []registry.ServerEntry{
		{ID: "eu-1", Name: "Europe 1", Host: "10.0.0.1", Port: 27015, Attributes: map[string]interface{}{"region": "eu", "capacity": 64}},
		{ID: "us-1", Host: "10.0.1.1", Port: 27015},
	}
}

func TestRegistrySyncService_Sync_CreatesAndSkips(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name          string
		activeOnly    bool
		expectCreated int
		expectSkipped int
	}{
		{name: "active only skips unreachable new servers", activeOnly: true, expectCreated: 1, expectSkipped: 1},
		{name: "all servers created", activeOnly: false, expectCreated: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := memstore.New()
			svc := NewRegistrySyncService(store.Repositories().Servers, store, newFakeProber("10.0.0.1"), nil, nil, syncConfig, zap.NewNop())

			result, err := svc.Sync(ctx, testGameID, testEntries(), tc.activeOnly)
			require.NoError(t, err)
			assert.Equal(t, 2, result.Total)
			assert.Equal(t, tc.expectCreated, result.Created)
			assert.Equal(t, tc.expectSkipped, result.Skipped)
			assert.Equal(t, 0, result.Updated)
			require.Len(t, result.Servers, 2)

			eu, err := store.Repositories().Servers.GetServerByCode(ctx, testGameID, "eu-1")
			require.NoError(t, err)
			assert.Equal(t, "Europe 1", eu.Name)
			assert.True(t, eu.IsActive)
			var meta map[string]interface{}
			require.NoError(t, json.Unmarshal(eu.Meta, &meta))
			assert.Equal(t, "eu", meta["config"].(map[string]interface{})["attributes"].(map[string]interface{})["region"])
			assert.Equal(t, true, meta["last_probe"].(map[string]interface{})["online"])

			us, err := store.Repositories().Servers.GetServerByCode(ctx, testGameID, "us-1")
			if tc.activeOnly {
				assert.ErrorIs(t, err, apperrors.ErrServerNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "us-1", us.Name)
			assert.False(t, us.IsActive)
		})
	}
}

func TestRegistrySyncService_Sync_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	prober := newFakeProber("10.0.0.1", "10.0.1.1")
	svc := NewRegistrySyncService(store.Repositories().Servers, store, prober, nil, nil, syncConfig, zap.NewNop())

	first, err := svc.Sync(ctx, testGameID, testEntries(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Created)
	writes := store.CatalogWrites()

	second, err := svc.Sync(ctx, testGameID, testEntries(), false)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 0, second.Updated)
	assert.Equal(t, 2, second.Unchanged)
	assert.Equal(t, writes, store.CatalogWrites())
}

func TestRegistrySyncService_Sync_UpdatesDrift(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	_, err := store.Repositories().Servers.CreateServer(ctx, model.Server{
		GameID:   testGameID,
		Code:     "eu-1",
		Name:     "Europe 1",
		Host:     "10.0.0.1",
		Port:     27015,
		IsActive: true,
		Meta:     datatypes.JSON(`{"auto_registered":true}`),
	})
	require.NoError(t, err)
	prober := newFakeProber("10.0.0.1", "10.0.0.2")
	svc := NewRegistrySyncService(store.Repositories().Servers, store, prober, nil, nil, syncConfig, zap.NewNop())
	entries := testEntries()[:1]

	result, err := svc.Sync(ctx, testGameID, entries, false)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated, "meta gains the config and probe snapshots")

	entries[0].Host = "10.0.0.2"
	result, err = svc.Sync(ctx, testGameID, entries, false)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	server := result.Servers[0].Server
	require.NotNil(t, server)
	assert.Equal(t, "10.0.0.2", server.Host)
	var meta map[string]interface{}
	require.NoError(t, json.Unmarshal(server.Meta, &meta))
	assert.Equal(t, true, meta["auto_registered"])
	assert.Equal(t, "10.0.0.2", meta["config"].(map[string]interface{})["host"])

	prober.set("10.0.0.2", false)
	result, err = svc.Sync(ctx, testGameID, entries, true)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated, "known servers are updated even when active only is set")
	assert.False(t, result.Servers[0].Server.IsActive)
	assert.False(t, result.Servers[0].Online)
}

func TestRegistrySyncService_Sync_Rejects(t *testing.T) {
	ctx := context.Background()
	valid := testEntries()

	testCases := []struct {
		name      string
		entries   []registry.ServerEntry
		lockHeld  bool
		expectErr error
	}{
		{name: "duplicate ids", entries: []registry.ServerEntry{valid[0], valid[0]}, expectErr: apperrors.ErrValidation},
		{name: "invalid port", entries: []registry.ServerEntry{{ID: "x", Host: "10.0.0.1", Port: 0}}, expectErr: apperrors.ErrValidation},
		{name: "missing host", entries: []registry.ServerEntry{{ID: "x", Port: 80}}, expectErr: apperrors.ErrValidation},
		{name: "sync already running", entries: valid, lockHeld: true, expectErr: apperrors.ErrSyncInProgress},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := memstore.New()
			if tc.lockHeld {
				_, ok, err := store.TryLock(ctx, testGameID, time.Minute)
				require.NoError(t, err)
				require.True(t, ok)
			}
			svc := NewRegistrySyncService(store.Repositories().Servers, store, newFakeProber(), nil, nil, syncConfig, zap.NewNop())

			_, err := svc.Sync(ctx, testGameID, tc.entries, false)

			assert.ErrorIs(t, err, tc.expectErr)
			assert.Equal(t, int64(0), store.CatalogWrites())
		})
	}
}

func TestRegistrySyncService_Sync_ReleasesLock(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	svc := NewRegistrySyncService(store.Repositories().Servers, store, newFakeProber(), nil, nil, syncConfig, zap.NewNop())

	_, err := svc.Sync(ctx, testGameID, testEntries(), false)
	require.NoError(t, err)

	_, ok, err := store.TryLock(ctx, testGameID, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegistrySyncService_Sync_ContinuesPastStorageFailures(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	servers := mockrepository.NewMockServerRepository(ctrl)
	store := memstore.New()

	servers.EXPECT().GetServersByGame(gomock.Any(), testGameID).Return(nil, nil)
	servers.EXPECT().CreateServer(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, s model.Server) (model.Server, error) {
		if s.Code == "eu-1" {
			return model.Server{}, errors.New("insert failed")
		}
		s.ID = "srv-us-1"
		return s, nil
	}).Times(2)

	svc := NewRegistrySyncService(servers, store, newFakeProber("10.0.0.1", "10.0.1.1"), nil, nil, syncConfig, zap.NewNop())
	result, err := svc.Sync(ctx, testGameID, testEntries(), false)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, SyncActionFailed, result.Servers[0].Action)
	assert.Contains(t, result.Servers[0].Error, "insert failed")
	assert.Equal(t, SyncActionCreated, result.Servers[1].Action)
}

// recordingPublisher keeps every published message and fails for codes in failFor.
type recordingPublisher struct {
	mu        sync.Mutex
	failFor   map[string]bool
	published []model.HealthEventMessage
}

func (p *recordingPublisher) Publish(_ context.Context, msg model.HealthEventMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, msg)
	if p.failFor[msg.ServerCode] {
		return errors.New("broker unavailable")
	}
	return nil
}

func TestRegistrySyncService_Sync_PublishesOutcomes(t *testing.T) {
	ctx := context.Background()
	publisher := &recordingPublisher{failFor: map[string]bool{"us-1": true}}
	store := memstore.New()

	svc := NewRegistrySyncService(store.Repositories().Servers, store, newFakeProber("10.0.0.1"), nil, publisher, syncConfig, zap.NewNop())
	result, err := svc.Sync(ctx, testGameID, testEntries(), false)

	require.NoError(t, err)
	assert.Equal(t, 1, result.PublishFailed)
	published := publisher.published
	require.Len(t, published, 2)
	assert.Equal(t, "eu-1", published[0].ServerCode)
	assert.Equal(t, model.StatusUp, published[0].Status)
	assert.Equal(t, model.MethodTCP, published[0].Method)
	assert.Equal(t, "Europe 1", *published[0].DisplayName)
	assert.Equal(t, model.StatusDown, published[1].Status)
	assert.Equal(t, "connection refused", *published[1].Detail)
	assert.Equal(t, testGameID+"/us-1", published[1].Key())
}

func TestRegistrySyncService_Sync_InProcessIngestion(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	ingestion := newTestIngestion(store, IngestionConfig{})
	prober := newFakeProber("10.0.0.1")
	svc := NewRegistrySyncService(store.Repositories().Servers, store, prober, nil,
		NewIngestionOutcomePublisher(ingestion), syncConfig, zap.NewNop())

	_, err := svc.Sync(ctx, testGameID, testEntries(), false)
	require.NoError(t, err)
	writes := store.CatalogWrites()
	second, err := svc.Sync(ctx, testGameID, testEntries(), false)
	require.NoError(t, err)
	assert.Equal(t, 0, second.PublishFailed)
	assert.Equal(t, writes, store.CatalogWrites())

	us, err := store.Repositories().Servers.GetServerByCode(ctx, testGameID, "us-1")
	require.NoError(t, err)
	open, err := store.Repositories().Outages.GetOpenOutage(ctx, us.ID)
	require.NoError(t, err)
	assert.NotNil(t, open)
	latest, err := store.Repositories().Events.GetLatestEvent(ctx, us.ID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, model.StatusDown, latest.Status)
}

// countingProber records the highest number of probes in flight.
type countingProber struct {
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (c *countingProber) Probe(context.Context, health_prober.Target) health_prober.Result {
	n := c.inFlight.Add(1)
	for {
		peak := c.peak.Load()
		if n <= peak || c.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	time.Sleep(20 * time.Millisecond)
	c.inFlight.Add(-1)
	return health_prober.Result{Online: true, Method: health_prober.MethodTCP, CheckedAt: time.Now()}
}

func TestRegistrySyncService_Sync_BoundsProbeConcurrency(t *testing.T) {
	store := memstore.New()
	prober := &countingProber{}
	var entries []registry.ServerEntry
	for i := 0; i < 20; i++ {
		entries = append(entries, registry.ServerEntry{ID: "srv-" + string(rune('a'+i)), Host: "10.0.0.1", Port: 9000 + i})
	}
	svc := NewRegistrySyncService(store.Repositories().Servers, store, prober, nil, nil,
		RegistrySyncConfig{ProbeConcurrency: 3, LockTTL: time.Minute}, zap.NewNop())

	result, err := svc.Sync(context.Background(), testGameID, entries, false)

	require.NoError(t, err)
	assert.Equal(t, 20, result.Created)
	assert.LessOrEqual(t, prober.peak.Load(), int32(3))
	assert.Greater(t, prober.peak.Load(), int32(1))
}

func TestRegistrySyncService_SyncConfigured(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	prober := mockprober.NewMockProber(ctrl)
	prober.EXPECT().Probe(gomock.Any(), gomock.Any()).Return(health_prober.Result{Online: true, Method: health_prober.MethodHTTP}).Times(2)
	store := memstore.New()
	source := registry.NewStaticSource(map[string][]registry.ServerEntry{testGameID: testEntries()})
	svc := NewRegistrySyncService(store.Repositories().Servers, store, prober, source, nil, syncConfig, zap.NewNop())

	result, err := svc.SyncConfigured(ctx, testGameID, true)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)

	_, err = svc.SyncConfigured(ctx, "unknown-game", true)
	assert.ErrorIs(t, err, apperrors.ErrRegistryNotFound)
}

func TestRegistrySyncService_SyncAll(t *testing.T) {
	store := memstore.New()
	source := registry.NewStaticSource(map[string][]registry.ServerEntry{
		"game-a": testEntries(),
		"game-b": testEntries()[:1],
	})
	svc := NewRegistrySyncService(store.Repositories().Servers, store, newFakeProber("10.0.0.1"), source, nil, syncConfig, zap.NewNop())

	results := svc.SyncAll(context.Background(), true)

	require.Len(t, results, 2)
	assert.Equal(t, "game-a", results[0].GameID)
	assert.Equal(t, 1, results[0].Created)
	assert.Equal(t, 1, results[0].Skipped)
	assert.Equal(t, "game-b", results[1].GameID)
	assert.Equal(t, 1, results[1].Created)
}
