package service

import (
	health_prober "GameHub_Monitor/internal/health-prober"
	apperrors "GameHub_Monitor/internal/monitor-service/errors"
	"GameHub_Monitor/internal/monitor-service/model"
	"GameHub_Monitor/internal/monitor-service/registry"
	"GameHub_Monitor/internal/monitor-service/repository"
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
)

const (
	SyncActionCreated   = "created"
	SyncActionUpdated   = "updated"
	SyncActionUnchanged = "unchanged"
	SyncActionSkipped   = "skipped"
	SyncActionFailed    = "failed"
)

type RegistrySyncConfig struct {
	ProbeConcurrency int
	LockTTL          time.Duration
}

type SyncedServer struct {
	Code   string
	Action string
	Online bool
	Server *model.Server
	Error  string
}

type SyncResult struct {
	GameID        string
	Created       int
	Updated       int
	Unchanged     int
	Skipped       int
	Failed        int
	PublishFailed int
	Total         int
	Servers       []SyncedServer
}

type RegistrySyncService interface {
	// Sync reconciles entries against the catalog of gameID. Running it twice with
	// the same entries and the same live status writes nothing the second time.
	Sync(ctx context.Context, gameID string, entries []registry.ServerEntry, activeOnly bool) (SyncResult, error)
	// SyncConfigured syncs the entries the registry source holds for gameID.
	SyncConfigured(ctx context.Context, gameID string, activeOnly bool) (SyncResult, error)
	// SyncAll syncs every game of the registry source, continuing past failures.
	SyncAll(ctx context.Context, activeOnly bool) []SyncResult
}

type registrySyncService struct {
	servers   repository.ServerRepository
	locks     repository.SyncLockRepository
	prober    health_prober.Prober
	source    registry.Source
	publisher OutcomePublisher
	cfg       RegistrySyncConfig
	logger    *zap.Logger
}

func (r *registrySyncService) SyncConfigured(ctx context.Context, gameID string, activeOnly bool) (SyncResult, error) {
	var entries []registry.ServerEntry
	ok := false
	if r.source != nil {
		entries, ok = r.source.Entries(gameID)
	}
	if !ok {
		return SyncResult{}, fmt.Errorf("RegistrySyncService.SyncConfigured: %w", apperrors.ErrRegistryNotFound)
	}
	result, err := r.Sync(ctx, gameID, entries, activeOnly)
	if err != nil {
		return result, fmt.Errorf("RegistrySyncService.SyncConfigured: %w", err)
	}
	return result, nil
}

func (r *registrySyncService) SyncAll(ctx context.Context, activeOnly bool) []SyncResult {
	if r.source == nil {
		return nil
	}
	var results []SyncResult
	for _, gameID := range r.source.Games() {
		result, err := r.SyncConfigured(ctx, gameID, activeOnly)
		if err != nil {
			r.logger.Error("registry sync failed", zap.String("game_id", gameID), zap.Error(err))
			continue
		}
		r.logger.Info("registry sync finished",
			zap.String("game_id", gameID),
			zap.Int("total", result.Total),
			zap.Int("created", result.Created),
			zap.Int("updated", result.Updated),
			zap.Int("skipped", result.Skipped),
			zap.Int("failed", result.Failed))
		results = append(results, result)
	}
	return results
}

func (r *registrySyncService) Sync(ctx context.Context, gameID string, entries []registry.ServerEntry, activeOnly bool) (SyncResult, error) {
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return SyncResult{}, fmt.Errorf("RegistrySyncService.Sync: %w",
				apperrors.NewValidationError("entries", fmt.Sprintf("entry %q: %s", entry.ID, err.Error())))
		}
		if _, dup := seen[entry.ID]; dup {
			return SyncResult{}, fmt.Errorf("RegistrySyncService.Sync: %w",
				apperrors.NewValidationError("entries", fmt.Sprintf("duplicate server id %q", entry.ID)))
		}
		seen[entry.ID] = struct{}{}
	}

	release, locked, err := r.locks.TryLock(ctx, gameID, r.cfg.LockTTL)
	if err != nil {
		return SyncResult{}, fmt.Errorf("RegistrySyncService.Sync: %w", err)
	}
	if !locked {
		return SyncResult{}, fmt.Errorf("RegistrySyncService.Sync: %w", apperrors.ErrSyncInProgress)
	}
	defer func() {
		if e := release(context.WithoutCancel(ctx)); e != nil {
			r.logger.Warn("failed to release sync lock", zap.String("game_id", gameID), zap.Error(e))
		}
	}()

	existing, err := r.servers.GetServersByGame(ctx, gameID)
	if err != nil {
		return SyncResult{}, fmt.Errorf("RegistrySyncService.Sync: %w", err)
	}
	byCode := make(map[string]model.Server, len(existing))
	for _, s := range existing {
		byCode[s.Code] = s
	}

	probes := r.probeAll(ctx, entries)

	result := SyncResult{GameID: gameID, Total: len(entries)}
	for i, entry := range entries {
		synced := r.reconcile(ctx, gameID, entry, probes[i], byCode, activeOnly)
		switch synced.Action {
		case SyncActionCreated:
			result.Created++
		case SyncActionUpdated:
			result.Updated++
		case SyncActionUnchanged:
			result.Unchanged++
		case SyncActionSkipped:
			result.Skipped++
		case SyncActionFailed:
			result.Failed++
		}
		if synced.Server != nil && r.publisher != nil {
			if e := r.publisher.Publish(ctx, outcomeMessage(gameID, entry, probes[i])); e != nil {
				result.PublishFailed++
				r.logger.Warn("failed to publish probe outcome",
					zap.String("game_id", gameID),
					zap.String("server_code", entry.ID),
					zap.Error(e))
			}
		}
		result.Servers = append(result.Servers, synced)
	}
	return result, nil
}

// probeAll runs one probe per entry with at most ProbeConcurrency in flight.
// Probes never fail, so the group only bounds concurrency.
func (r *registrySyncService) probeAll(ctx context.Context, entries []registry.ServerEntry) []health_prober.Result {
	results := make([]health_prober.Result, len(entries))
	var g errgroup.Group
	g.SetLimit(max(r.cfg.ProbeConcurrency, 1))
	for i, entry := range entries {
		g.Go(func() error {
			results[i] = r.prober.Probe(ctx, entry.Target())
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (r *registrySyncService) reconcile(ctx context.Context, gameID string, entry registry.ServerEntry, probe health_prober.Result, byCode map[string]model.Server, activeOnly bool) SyncedServer {
	synced := SyncedServer{Code: entry.ID, Online: probe.Online}

	current, found := byCode[entry.ID]
	if !found {
		if activeOnly && !probe.Online {
			synced.Action = SyncActionSkipped
			return synced
		}
		meta, err := syncMeta(nil, entry, probe)
		if err == nil {
			var created model.Server
			created, err = r.servers.CreateServer(ctx, model.Server{
				GameID:   gameID,
				Code:     entry.ID,
				Name:     entry.DisplayName(),
				Host:     entry.Host,
				Port:     entry.Port,
				IsActive: probe.Online,
				Meta:     meta,
			})
			if err == nil {
				synced.Action = SyncActionCreated
				synced.Server = &created
				return synced
			}
		}
		return r.failed(synced, gameID, err)
	}

	changes := make(map[string]interface{})
	if current.Name != entry.DisplayName() {
		changes["name"] = entry.DisplayName()
	}
	if current.Host != entry.Host {
		changes["host"] = entry.Host
	}
	if current.Port != entry.Port {
		changes["port"] = entry.Port
	}
	if current.IsActive != probe.Online {
		changes["is_active"] = probe.Online
	}
	meta, err := syncMeta(current.Meta, entry, probe)
	if err != nil {
		return r.failed(synced, gameID, err)
	}
	if !sameJSON(current.Meta, meta) {
		changes["meta"] = meta
	}
	if len(changes) == 0 {
		synced.Action = SyncActionUnchanged
		synced.Server = &current
		return synced
	}
	updated, err := r.servers.UpdateServer(ctx, current.ID, changes)
	if err != nil {
		return r.failed(synced, gameID, err)
	}
	synced.Action = SyncActionUpdated
	synced.Server = &updated
	return synced
}

func (r *registrySyncService) failed(synced SyncedServer, gameID string, err error) SyncedServer {
	err = fmt.Errorf("RegistrySyncService.Sync: %w", err)
	r.logger.Error("failed to reconcile server",
		zap.String("game_id", gameID),
		zap.String("server_code", synced.Code),
		zap.Error(err))
	synced.Action = SyncActionFailed
	synced.Error = err.Error()
	return synced
}

type configSnapshot struct {
	Host       string                   `json:"host"`
	Port       int                      `json:"port"`
	Check      *health_prober.HTTPCheck `json:"check,omitempty"`
	Attributes map[string]interface{}   `json:"attributes,omitempty"`
}

// probeSnapshot leaves out latency and timestamps so an unchanged server keeps an unchanged meta.
type probeSnapshot struct {
	Online     bool    `json:"online"`
	Method     string  `json:"method"`
	HTTPStatus *int    `json:"http_status,omitempty"`
	Detail     *string `json:"detail,omitempty"`
}

// syncMeta merges the config and last probe snapshots into the existing meta,
// keeping keys written by others (auto_registered, ...).
func syncMeta(existing datatypes.JSON, entry registry.ServerEntry, probe health_prober.Result) (datatypes.JSON, error) {
	meta := make(map[string]interface{})
	if len(existing) > 0 {
		if err := json.Unmarshal(existing, &meta); err != nil {
			return nil, err
		}
	}
	meta["config"] = configSnapshot{
		Host:       entry.Host,
		Port:       entry.Port,
		Check:      entry.Check,
		Attributes: entry.Attributes,
	}
	meta["last_probe"] = probeSnapshot{
		Online:     probe.Online,
		Method:     string(probe.Method),
		HTTPStatus: probe.HTTPStatus,
		Detail:     probe.Detail,
	}
	b, err := json.Marshal(meta)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func sameJSON(a datatypes.JSON, b datatypes.JSON) bool {
	var va, vb interface{}
	if err := json.Unmarshal(a, &va); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &vb); err != nil {
		return false
	}
	return reflect.DeepEqual(va, vb)
}

func outcomeMessage(gameID string, entry registry.ServerEntry, probe health_prober.Result) model.HealthEventMessage {
	status := model.StatusDown
	if probe.Online {
		status = model.StatusUp
	}
	observedAt := probe.CheckedAt
	host := entry.Host
	port := entry.Port
	displayName := entry.DisplayName()
	return model.HealthEventMessage{
		GameID:      gameID,
		ServerCode:  entry.ID,
		ObservedAt:  &observedAt,
		Status:      status,
		Method:      string(probe.Method),
		MetricName:  probe.MetricName,
		MetricValue: probe.MetricValue,
		MetricUnit:  probe.MetricUnit,
		HTTPStatus:  probe.HTTPStatus,
		Detail:      probe.Detail,
		Host:        &host,
		Port:        &port,
		DisplayName: &displayName,
	}
}

// NewRegistrySyncService wires the sync job. source and publisher may be nil.
func NewRegistrySyncService(servers repository.ServerRepository, locks repository.SyncLockRepository, prober health_prober.Prober, source registry.Source, publisher OutcomePublisher, cfg RegistrySyncConfig, logger *zap.Logger) RegistrySyncService {
	return &registrySyncService{
		servers:   servers,
		locks:     locks,
		prober:    prober,
		source:    source,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger,
	}
}
