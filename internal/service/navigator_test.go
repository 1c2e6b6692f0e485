package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sunray/navigator/internal/availability"
	"sunray/navigator/internal/domain"
	"sunray/navigator/internal/navigation"
	"sunray/navigator/internal/session"
)

type fakeSource struct {
	trees map[domain.Vendor]*domain.Tree
}

func (f *fakeSource) Tree(vendor domain.Vendor) (*domain.Tree, error) {
	tree, ok := f.trees[vendor]
	if !ok {
		return nil, domain.ErrDataUnavailable
	}
	return tree, nil
}

type stubResolver struct {
	vendor  domain.Vendor
	record  domain.AvailabilityRecord
	onCall  func()
	lastSel availability.Selection
}

func (s *stubResolver) Vendor() domain.Vendor { return s.vendor }

func (s *stubResolver) Resolve(_ context.Context, sel availability.Selection) domain.AvailabilityRecord {
	s.lastSel = sel
	if s.onCall != nil {
		s.onCall()
	}
	return s.record
}

func testNavigator(t *testing.T, resolver *stubResolver) (Navigator, session.Store) {
	t.Helper()

	source := &fakeSource{trees: map[domain.Vendor]*domain.Tree{
		domain.VendorAmigo: {
			Vendor:  domain.VendorAmigo,
			Version: 1,
			Nodes: []domain.Node{
				{
					Label: "Рулонные шторы",
					Children: []domain.Node{
						{Label: "Dune", Leaves: []domain.Item{
							{Name: "Dune White", Group: "Dune", Variant: "White"},
							{Name: "Dune Cream", Group: "Dune", Variant: "Cream"},
						}},
					},
				},
			},
		},
	}}

	engine := navigation.NewEngine(source, 10, nil)
	store := session.NewMemoryStore()
	registry := availability.NewRegistry(resolver)
	return NewNavigator(engine, store, registry, nil, 5*time.Second), store
}

func TestNavigatorEndToEnd(t *testing.T) {
	ctx := context.Background()
	resolver := &stubResolver{
		vendor: domain.VendorAmigo,
		record: domain.AvailabilityRecord{
			Status:      domain.StatusInStock,
			DisplayName: "Dune White",
			Tier:        domain.MatchExact,
		},
	}
	nav, _ := testNavigator(t, resolver)

	view, err := nav.SelectVendor(ctx, "7", domain.VendorAmigo)
	require.NoError(t, err)
	assert.Equal(t, navigation.LevelMenu, view.Kind)

	res, err := nav.ApplyChoice(ctx, "7", 0) // category
	require.NoError(t, err)
	assert.Nil(t, res.Record)

	res, err = nav.ApplyChoice(ctx, "7", 0) // group
	require.NoError(t, err)
	assert.Nil(t, res.Record)

	res, err = nav.ApplyChoice(ctx, "7", 0) // variant: triggers the lookup
	require.NoError(t, err)
	require.NotNil(t, res.Record)
	assert.Equal(t, navigation.LevelResolved, res.View.Kind)
	assert.Equal(t, domain.StatusInStock, res.Record.Status)
	assert.Equal(t, "Рулонные шторы", resolver.lastSel.Category)
	assert.Equal(t, "Dune", resolver.lastSel.Group)
	assert.Equal(t, "White", resolver.lastSel.Variant)

	// state survives: the resolved view is re-renderable
	view, err = nav.CurrentView(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, navigation.LevelResolved, view.Kind)
	require.NotNil(t, view.Item)
	assert.Equal(t, "Dune White", view.Item.Name)

	view, err = nav.GoBack(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, navigation.LevelVariants, view.Kind)
	assert.Equal(t, []string{"White", "Cream"}, view.Labels)
}

func TestNavigatorDiscardsSupersededAnswer(t *testing.T) {
	ctx := context.Background()
	resolver := &stubResolver{
		vendor: domain.VendorAmigo,
		record: domain.AvailabilityRecord{Status: domain.StatusInStock, Tier: domain.MatchExact},
	}
	nav, store := testNavigator(t, resolver)

	_, err := nav.SelectVendor(ctx, "7", domain.VendorAmigo)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err = nav.ApplyChoice(ctx, "7", 0)
		require.NoError(t, err)
	}

	// the user navigates away while the lookup is in flight
	resolver.onCall = func() {
		st, err := store.Get(ctx, "7")
		require.NoError(t, err)
		st.Resolved = false
		st.Item = nil
		st.Path = nil
		require.NoError(t, store.Put(ctx, "7", st))
	}

	res, err := nav.ApplyChoice(ctx, "7", 0)
	require.NoError(t, err)
	require.NotNil(t, res.Record)
	assert.Equal(t, domain.StatusUnknown, res.Record.Status)
	assert.Equal(t, availability.ReasonSuperseded, res.Record.Reason)
}

func TestNavigatorResetAndMissingSession(t *testing.T) {
	ctx := context.Background()
	resolver := &stubResolver{vendor: domain.VendorAmigo}
	nav, _ := testNavigator(t, resolver)

	_, err := nav.CurrentView(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = nav.SelectVendor(ctx, "7", domain.VendorAmigo)
	require.NoError(t, err)
	require.NoError(t, nav.Reset(ctx, "7"))

	_, err = nav.CurrentView(ctx, "7")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestNavigatorUnknownVendor(t *testing.T) {
	ctx := context.Background()
	nav, _ := testNavigator(t, &stubResolver{vendor: domain.VendorAmigo})

	_, err := nav.SelectVendor(ctx, "7", domain.VendorCortin)
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)
}
