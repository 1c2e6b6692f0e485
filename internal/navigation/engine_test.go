package navigation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sunray/navigator/internal/domain"
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

func group(label string, variants ...string) domain.Node {
	leaves := make([]domain.Item, len(variants))
	for i, v := range variants {
		leaves[i] = domain.Item{
			Name:    label + " " + v,
			Group:   label,
			Variant: v,
		}
	}
	return domain.Node{Label: label, Leaves: leaves}
}

func testTree() *domain.Tree {
	return &domain.Tree{
		Vendor:  domain.VendorAmigo,
		Version: 1,
		Nodes: []domain.Node{
			{
				Label: "Рулонные шторы",
				Children: []domain.Node{
					group("Apple", "Green", "Red"),
					group("Ash", "Grey"),
					group("Birch", "White", "Cream", "Sand"),
				},
			},
			{
				Label:    "Зебра",
				Children: []domain.Node{group("Dune", "White")},
			},
		},
	}
}

func newTestEngine(letterFilter bool) (*Engine, *fakeSource) {
	src := &fakeSource{trees: map[domain.Vendor]*domain.Tree{
		domain.VendorAmigo: testTree(),
	}}
	return NewEngine(src, 10, map[domain.Vendor]bool{domain.VendorAmigo: letterFilter}), src
}

func TestStartUnknownVendor(t *testing.T) {
	e, _ := newTestEngine(false)

	_, err := e.Start(domain.VendorCortin)
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)
}

func TestDrillDownToVariant(t *testing.T) {
	e, _ := newTestEngine(false)

	st, err := e.Start(domain.VendorAmigo)
	require.NoError(t, err)

	view, err := e.View(st)
	require.NoError(t, err)
	assert.Equal(t, LevelMenu, view.Kind)
	assert.Equal(t, []string{"Рулонные шторы", "Зебра"}, view.Labels)

	item, err := e.ApplyChoice(st, 0)
	require.NoError(t, err)
	assert.Nil(t, item)

	view, err = e.View(st)
	require.NoError(t, err)
	assert.Equal(t, LevelGroups, view.Kind)
	assert.Equal(t, []string{"Apple", "Ash", "Birch"}, view.Labels)

	item, err = e.ApplyChoice(st, 2)
	require.NoError(t, err)
	assert.Nil(t, item)

	view, err = e.View(st)
	require.NoError(t, err)
	assert.Equal(t, LevelVariants, view.Kind)
	assert.Equal(t, []string{"White", "Cream", "Sand"}, view.Labels)

	item, err = e.ApplyChoice(st, 0)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "Birch White", item.Name)
	assert.True(t, st.Resolved)

	view, err = e.View(st)
	require.NoError(t, err)
	assert.Equal(t, LevelResolved, view.Kind)
	assert.Equal(t, item, view.Item)
}

func TestLetterFilterDerivedFromGroups(t *testing.T) {
	e, _ := newTestEngine(true)

	st, err := e.Start(domain.VendorAmigo)
	require.NoError(t, err)
	_, err = e.ApplyChoice(st, 0)
	require.NoError(t, err)

	view, err := e.View(st)
	require.NoError(t, err)
	assert.Equal(t, LevelLetters, view.Kind)
	assert.Equal(t, []string{"A", "B"}, view.Labels)

	_, err = e.ApplyChoice(st, 0) // letter A
	require.NoError(t, err)

	view, err = e.View(st)
	require.NoError(t, err)
	assert.Equal(t, LevelGroups, view.Kind)
	assert.Equal(t, []string{"Apple", "Ash"}, view.Labels)
	assert.Equal(t, "A", view.Letter)
}

func TestLetterWithoutGroupsShowsEmptyLevel(t *testing.T) {
	e, _ := newTestEngine(true)

	st, err := e.Start(domain.VendorAmigo)
	require.NoError(t, err)
	_, err = e.ApplyChoice(st, 0)
	require.NoError(t, err)

	// a letter that partitions to nothing (possible after a reload under
	// the same version) renders an empty level, not an error
	st.Letter = "C"
	view, err := e.View(st)
	require.NoError(t, err)
	assert.Equal(t, LevelGroups, view.Kind)
	assert.Empty(t, view.Labels)
	assert.Equal(t, 0, view.Total)

	_, err = e.ApplyChoice(st, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidChoice)

	require.NoError(t, e.GoBack(st))
	view, err = e.View(st)
	require.NoError(t, err)
	assert.Equal(t, LevelLetters, view.Kind)
}

func TestGoBackRestoresPriorLevel(t *testing.T) {
	e, _ := newTestEngine(true)

	st, err := e.Start(domain.VendorAmigo)
	require.NoError(t, err)

	for _, idx := range []int{0, 1, 0, 0} { // category, letter B, Birch, White
		_, err = e.ApplyChoice(st, idx)
		require.NoError(t, err)
	}
	require.True(t, st.Resolved)

	// resolved -> variants
	require.NoError(t, e.GoBack(st))
	view, err := e.View(st)
	require.NoError(t, err)
	assert.Equal(t, LevelVariants, view.Kind)

	// variants -> filtered groups
	require.NoError(t, e.GoBack(st))
	view, err = e.View(st)
	require.NoError(t, err)
	assert.Equal(t, LevelGroups, view.Kind)
	assert.Equal(t, []string{"Birch"}, view.Labels)
	assert.Equal(t, 0, view.Page)

	// groups -> letters
	require.NoError(t, e.GoBack(st))
	view, err = e.View(st)
	require.NoError(t, err)
	assert.Equal(t, LevelLetters, view.Kind)

	// letters -> categories
	require.NoError(t, e.GoBack(st))
	view, err = e.View(st)
	require.NoError(t, err)
	assert.Equal(t, LevelMenu, view.Kind)

	assert.ErrorIs(t, e.GoBack(st), domain.ErrAtRoot)
}

func TestChangePageAndPageRelativeChoice(t *testing.T) {
	groups := make([]domain.Node, 23)
	for i := range groups {
		groups[i] = group(fmt.Sprintf("Fabric %02d", i), "Plain")
	}
	src := &fakeSource{trees: map[domain.Vendor]*domain.Tree{
		domain.VendorCortin: {Vendor: domain.VendorCortin, Version: 1, Nodes: groups},
	}}
	e := NewEngine(src, 10, nil)

	st, err := e.Start(domain.VendorCortin)
	require.NoError(t, err)

	require.NoError(t, e.ChangePage(st, 2))
	view, err := e.View(st)
	require.NoError(t, err)
	assert.Len(t, view.Labels, 3)
	assert.True(t, view.HasPrev)
	assert.False(t, view.HasNext)

	assert.ErrorIs(t, e.ChangePage(st, 3), domain.ErrInvalidPage)

	// index is page-relative: entry 1 on page 2 is the 22nd group
	_, err = e.ApplyChoice(st, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fabric 21"}, st.Path)

	_, err = e.ApplyChoice(st, 5)
	assert.ErrorIs(t, err, domain.ErrInvalidChoice)
}

func TestStaleStateAfterReload(t *testing.T) {
	e, src := newTestEngine(false)

	st, err := e.Start(domain.VendorAmigo)
	require.NoError(t, err)
	_, err = e.ApplyChoice(st, 0)
	require.NoError(t, err)

	reloaded := testTree()
	reloaded.Version = 2
	src.trees[domain.VendorAmigo] = reloaded

	_, err = e.View(st)
	assert.ErrorIs(t, err, domain.ErrStaleState)
	_, err = e.ApplyChoice(st, 0)
	assert.ErrorIs(t, err, domain.ErrStaleState)
}

func TestGoBackOnResolvedSkipsVersionCheck(t *testing.T) {
	e, src := newTestEngine(false)

	st, err := e.Start(domain.VendorAmigo)
	require.NoError(t, err)
	for _, idx := range []int{1, 0, 0} {
		_, err = e.ApplyChoice(st, idx)
		require.NoError(t, err)
	}
	require.True(t, st.Resolved)

	reloaded := testTree()
	reloaded.Version = 2
	src.trees[domain.VendorAmigo] = reloaded

	// unresolving is a pure state change; staleness surfaces on the next view
	require.NoError(t, e.GoBack(st))
	_, err = e.View(st)
	assert.ErrorIs(t, err, domain.ErrStaleState)
}
