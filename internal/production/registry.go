package production

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/comalice/storex/internal/core"
	"github.com/comalice/storex/internal/primitives"
)

// MemoryRegistry is an in-memory implementation of core.Registry. Versions
// are derived from the snapshot's state tree via primitives.ComputeVersion.
// Safe for sharing across stores.
type MemoryRegistry struct {
	mu       sync.Mutex
	versions map[string][]core.StoreSnapshotVersion // per store, oldest first
}

// NewMemoryRegistry creates an empty MemoryRegistry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		versions: make(map[string][]core.StoreSnapshotVersion),
	}
}

func (r *MemoryRegistry) Register(ctx context.Context, storeID string, snapshot core.StoreSnapshot) error {
	version := primitives.ComputeVersion(snapshot.State)

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.versions[storeID] {
		if v.Version == version {
			return core.ErrExists
		}
	}
	r.versions[storeID] = append(r.versions[storeID], core.StoreSnapshotVersion{
		StoreSnapshot: snapshot,
		Version:       version,
		Registered:    time.Now(),
	})
	return nil
}

func (r *MemoryRegistry) Latest(ctx context.Context, storeID string) (core.StoreSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	versions := r.versions[storeID]
	if len(versions) == 0 {
		return core.StoreSnapshot{}, core.ErrNotFound
	}
	return versions[len(versions)-1].StoreSnapshot, nil
}

func (r *MemoryRegistry) Version(ctx context.Context, storeID, version string) (core.StoreSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.versions[storeID] {
		if v.Version == version {
			return v.StoreSnapshot, nil
		}
	}
	return core.StoreSnapshot{}, core.ErrNotFound
}

func (r *MemoryRegistry) ListVersions(ctx context.Context, storeID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	versions := r.versions[storeID]
	if len(versions) == 0 {
		return nil, core.ErrNotFound
	}
	out := make([]string, 0, len(versions))
	for i := len(versions) - 1; i >= 0; i-- { // newest first
		out = append(out, versions[i].Version)
	}
	return out, nil
}

func (r *MemoryRegistry) ListStores(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.versions))
	for storeID := range r.versions {
		out = append(out, storeID)
	}
	sort.Strings(out)
	return out, nil
}
