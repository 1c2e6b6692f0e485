package catalog

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	log "github.com/sirupsen/logrus"

	"sunray/navigator/internal/domain"
)

// Adapter normalizes one vendor's raw data into catalog tree nodes.
type Adapter interface {
	Vendor() domain.Vendor
	Load() ([]domain.Node, error)
}

// Loader owns the per-vendor catalog trees. Trees are immutable once built
// and shared read-only across all sessions; a reload swaps in a replacement
// under a fresh version stamp, which is how stale sessions get detected.
type Loader struct {
	adapters map[domain.Vendor]Adapter

	mu      sync.RWMutex
	trees   map[domain.Vendor]*domain.Tree
	version atomic.Uint64
}

func NewLoader(adapters ...Adapter) *Loader {
	l := &Loader{
		adapters: make(map[domain.Vendor]Adapter, len(adapters)),
		trees:    make(map[domain.Vendor]*domain.Tree, len(adapters)),
	}
	for _, a := range adapters {
		l.adapters[a.Vendor()] = a
	}
	return l
}

// Load builds all vendor trees concurrently. A vendor whose source is broken
// stays unavailable without affecting the others; Load only fails when no
// vendor could be loaded at all.
func (l *Loader) Load(ctx context.Context) error {
	var loaded atomic.Int32

	g, _ := errgroup.WithContext(ctx)
	for vendor := range l.adapters {
		g.Go(func() error {
			if err := l.Reload(vendor); err != nil {
				log.Errorf("❌ Failed to load %s catalog: %v", vendor, err)
				return nil
			}
			loaded.Add(1)
			return nil
		})
	}
	g.Wait()

	if loaded.Load() == 0 {
		return fmt.Errorf("%w: no vendor catalog could be loaded", domain.ErrDataUnavailable)
	}
	return nil
}

// Reload rebuilds one vendor's tree from its source.
func (l *Loader) Reload(vendor domain.Vendor) error {
	adapter, ok := l.adapters[vendor]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownVendor, vendor)
	}

	nodes, err := adapter.Load()
	if err != nil {
		return err
	}

	tree := &domain.Tree{
		Vendor:  vendor,
		Version: l.version.Add(1),
		Nodes:   nodes,
	}

	l.mu.Lock()
	l.trees[vendor] = tree
	l.mu.Unlock()

	log.Infof("✅ %s catalog loaded: %d top-level entries (version %d)",
		vendor.DisplayName(), len(nodes), tree.Version)
	return nil
}

// Tree returns the current tree for a vendor.
func (l *Loader) Tree(vendor domain.Vendor) (*domain.Tree, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	tree, ok := l.trees[vendor]
	if !ok {
		return nil, fmt.Errorf("%w: %s catalog not loaded", domain.ErrDataUnavailable, vendor)
	}
	return tree, nil
}
