package request

import "GameHub_Monitor/internal/monitor-service/registry"

// SyncRegistryRequest overrides the configured server list when Entries is set.
type SyncRegistryRequest struct {
	Entries []registry.ServerEntry `json:"entries"`
}
