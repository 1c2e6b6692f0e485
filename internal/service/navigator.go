package service

import (
	"context"
	"slices"
	"time"

	log "github.com/sirupsen/logrus"

	"sunray/navigator/internal/availability"
	"sunray/navigator/internal/domain"
	"sunray/navigator/internal/navigation"
	"sunray/navigator/internal/repository"
	"sunray/navigator/internal/session"
)

// Result is the outcome of one navigation step. Record is set only when the
// step finished a selection and triggered an availability lookup.
type Result struct {
	View   *navigation.View
	Record *domain.AvailabilityRecord
}

// Navigator is the session-facing API: every operation loads the session
// state, applies one navigation step, and persists the state back.
type Navigator interface {
	SelectVendor(ctx context.Context, sessionID string, vendor domain.Vendor) (*navigation.View, error)
	CurrentView(ctx context.Context, sessionID string) (*navigation.View, error)
	ApplyChoice(ctx context.Context, sessionID string, index int) (*Result, error)
	GoBack(ctx context.Context, sessionID string) (*navigation.View, error)
	ChangePage(ctx context.Context, sessionID string, page int) (*navigation.View, error)
	Reset(ctx context.Context, sessionID string) error
}

type navigator struct {
	engine      *navigation.Engine
	store       session.Store
	resolver    *availability.Registry
	resolutions repository.ResolutionRepository
	timeout     time.Duration
}

// NewNavigator wires the navigation service. resolutions may be nil, in
// which case finished lookups are not logged anywhere.
func NewNavigator(
	engine *navigation.Engine,
	store session.Store,
	resolver *availability.Registry,
	resolutions repository.ResolutionRepository,
	timeout time.Duration,
) Navigator {
	return &navigator{
		engine:      engine,
		store:       store,
		resolver:    resolver,
		resolutions: resolutions,
		timeout:     timeout,
	}
}

func (n *navigator) SelectVendor(ctx context.Context, sessionID string, vendor domain.Vendor) (*navigation.View, error) {
	st, err := n.engine.Start(vendor)
	if err != nil {
		return nil, err
	}
	if err := n.store.Put(ctx, sessionID, st); err != nil {
		return nil, err
	}

	log.Debugf("Session %s started on %s catalog", sessionID, vendor)
	return n.engine.View(st)
}

func (n *navigator) CurrentView(ctx context.Context, sessionID string) (*navigation.View, error) {
	st, err := n.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return n.engine.View(st)
}

func (n *navigator) ApplyChoice(ctx context.Context, sessionID string, index int) (*Result, error) {
	st, err := n.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	item, err := n.engine.ApplyChoice(st, index)
	if err != nil {
		return nil, err
	}
	if err := n.store.Put(ctx, sessionID, st); err != nil {
		return nil, err
	}

	view, err := n.engine.View(st)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return &Result{View: view}, nil
	}

	record := n.resolve(ctx, sessionID, st, *item)
	return &Result{View: view, Record: &record}, nil
}

// resolve runs the availability lookup for a finished selection. The lookup
// talks to a slow external source, so before trusting its answer the session
// is read back: when the user has already navigated away the answer is
// discarded as superseded rather than shown against the wrong selection.
func (n *navigator) resolve(ctx context.Context, sessionID string, st *navigation.State, item domain.Item) domain.AvailabilityRecord {
	lookupCtx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	sel := availability.Selection{
		Vendor:  st.Vendor,
		Group:   item.Group,
		Variant: item.Variant,
		Item:    item,
	}
	if len(st.Path) > 0 {
		sel.Category = st.Path[0]
	}

	record := n.resolver.Resolve(lookupCtx, sel)

	current, err := n.store.Get(ctx, sessionID)
	if err != nil || current.Version != st.Version || !current.Resolved || !slices.Equal(current.Path, st.Path) {
		log.Debugf("Session %s moved on during lookup, discarding answer", sessionID)
		return domain.AvailabilityRecord{
			Status:      domain.StatusUnknown,
			DisplayName: item.Name,
			ImageURL:    item.ImageURL,
			Tier:        domain.MatchNone,
			Reason:      availability.ReasonSuperseded,
		}
	}

	n.logResolution(ctx, sessionID, st, item, record)
	return record
}

func (n *navigator) logResolution(ctx context.Context, sessionID string, st *navigation.State, item domain.Item, record domain.AvailabilityRecord) {
	if n.resolutions == nil {
		return
	}

	res := &repository.Resolution{
		SessionID:  sessionID,
		Vendor:     st.Vendor,
		Path:       st.Path,
		Item:       item,
		Record:     record,
		ResolvedAt: time.Now().UTC(),
	}
	if err := n.resolutions.SaveResolution(ctx, res); err != nil {
		log.Errorf("❌ Failed to log resolution for session %s: %v", sessionID, err)
	}
}

func (n *navigator) GoBack(ctx context.Context, sessionID string) (*navigation.View, error) {
	st, err := n.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := n.engine.GoBack(st); err != nil {
		return nil, err
	}
	if err := n.store.Put(ctx, sessionID, st); err != nil {
		return nil, err
	}
	return n.engine.View(st)
}

func (n *navigator) ChangePage(ctx context.Context, sessionID string, page int) (*navigation.View, error) {
	st, err := n.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := n.engine.ChangePage(st, page); err != nil {
		return nil, err
	}
	if err := n.store.Put(ctx, sessionID, st); err != nil {
		return nil, err
	}
	return n.engine.View(st)
}

func (n *navigator) Reset(ctx context.Context, sessionID string) error {
	return n.store.Delete(ctx, sessionID)
}
