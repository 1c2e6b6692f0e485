package navigation

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"sunray/navigator/internal/domain"
	"sunray/navigator/internal/page"
)

// CatalogSource yields the current tree for a vendor.
type CatalogSource interface {
	Tree(vendor domain.Vendor) (*domain.Tree, error)
}

// Engine applies navigation operations to session states. It is stateless
// itself; all position lives in State, all catalog data in the source trees.
type Engine struct {
	source       CatalogSource
	pageSize     int
	letterFilter map[domain.Vendor]bool
}

func NewEngine(source CatalogSource, pageSize int, letterFilter map[domain.Vendor]bool) *Engine {
	return &Engine{
		source:       source,
		pageSize:     pageSize,
		letterFilter: letterFilter,
	}
}

// Start opens a fresh session at the root of a vendor catalog.
func (e *Engine) Start(vendor domain.Vendor) (*State, error) {
	tree, err := e.source.Tree(vendor)
	if err != nil {
		return nil, err
	}
	return &State{Vendor: vendor, Version: tree.Version}, nil
}

// level is the resolved content of the state's current position. leaves is
// set only for LevelVariants; labels always mirrors what the menu shows.
type level struct {
	kind   LevelKind
	labels []string
	leaves []domain.Item
}

func (e *Engine) level(st *State) (*level, error) {
	tree, err := e.source.Tree(st.Vendor)
	if err != nil {
		return nil, err
	}
	if st.Version != tree.Version {
		return nil, fmt.Errorf("%w: state version %d, catalog version %d",
			domain.ErrStaleState, st.Version, tree.Version)
	}

	children, leaves, leaf, err := tree.Level(st.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStaleState, err)
	}

	if leaf {
		labels := make([]string, len(leaves))
		for i, item := range leaves {
			labels[i] = item.Label()
		}
		return &level{kind: LevelVariants, labels: labels, leaves: leaves}, nil
	}

	if e.groupLevel(st.Vendor, children) {
		if st.Letter == "" {
			return &level{kind: LevelLetters, labels: letters(children)}, nil
		}
		return &level{kind: LevelGroups, labels: filterByLetter(children, st.Letter)}, nil
	}

	return &level{kind: LevelMenu, labels: domain.Labels(children)}, nil
}

// groupLevel reports whether the letter filter applies here: the vendor has
// it enabled and every entry of the level is a terminal group.
func (e *Engine) groupLevel(vendor domain.Vendor, nodes []domain.Node) bool {
	if !e.letterFilter[vendor] || len(nodes) == 0 {
		return false
	}
	for i := range nodes {
		if !nodes[i].Terminal() {
			return false
		}
	}
	return true
}

// letters derives the letter menu from the group labels present: one entry
// per distinct first letter, sorted. The menu is recomputed on every visit
// rather than persisted, so it always reflects the loaded catalog.
func letters(nodes []domain.Node) []string {
	seen := make(map[string]struct{})
	var out []string
	for i := range nodes {
		l := firstLetter(nodes[i].Label)
		if l == "" {
			continue
		}
		if _, ok := seen[l]; !ok {
			seen[l] = struct{}{}
			out = append(out, l)
		}
	}
	sort.Strings(out)
	return out
}

func filterByLetter(nodes []domain.Node, letter string) []string {
	var out []string
	for i := range nodes {
		if firstLetter(nodes[i].Label) == letter {
			out = append(out, nodes[i].Label)
		}
	}
	return out
}

func firstLetter(label string) string {
	for _, r := range strings.TrimSpace(label) {
		return string(unicode.ToUpper(r))
	}
	return ""
}

// View renders the state's current page.
func (e *Engine) View(st *State) (*View, error) {
	if st.Resolved {
		return &View{
			Vendor:      st.Vendor,
			Kind:        LevelResolved,
			Breadcrumbs: append([]string(nil), st.Path...),
			Letter:      st.Letter,
			Item:        st.Item,
		}, nil
	}

	lvl, err := e.level(st)
	if err != nil {
		return nil, err
	}

	labels, hasPrev, hasNext, err := page.Slice(lvl.labels, e.pageSize, st.Page)
	if err != nil {
		return nil, err
	}

	return &View{
		Vendor:      st.Vendor,
		Kind:        lvl.kind,
		Labels:      labels,
		Page:        st.Page,
		PageCount:   page.Count(len(lvl.labels), e.pageSize),
		HasPrev:     hasPrev,
		HasNext:     hasNext,
		Total:       len(lvl.labels),
		Breadcrumbs: append([]string(nil), st.Path...),
		Letter:      st.Letter,
	}, nil
}

// ApplyChoice selects the index-th entry of the current page. When the
// choice is a terminal variant the chosen item is returned and the state
// marked resolved; otherwise the state descends and the item is nil.
func (e *Engine) ApplyChoice(st *State, index int) (*domain.Item, error) {
	if st.Resolved {
		return nil, fmt.Errorf("%w: selection already resolved", domain.ErrInvalidChoice)
	}

	lvl, err := e.level(st)
	if err != nil {
		return nil, err
	}

	pageLabels, _, _, err := page.Slice(lvl.labels, e.pageSize, st.Page)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(pageLabels) {
		return nil, fmt.Errorf("%w: index %d on a page of %d entries",
			domain.ErrInvalidChoice, index, len(pageLabels))
	}
	abs := st.Page*e.pageSize + index

	switch lvl.kind {
	case LevelLetters:
		st.Letter = lvl.labels[abs]
		st.Page = 0
		return nil, nil
	case LevelVariants:
		item := lvl.leaves[abs]
		st.Resolved = true
		st.Item = &item
		return &item, nil
	default:
		st.Path = append(st.Path, lvl.labels[abs])
		st.Page = 0
		return nil, nil
	}
}

// GoBack steps one level up, undoing the most recent choice. The restored
// list opens at page 0. At the catalog root there is nothing to undo.
func (e *Engine) GoBack(st *State) error {
	if st.Resolved {
		st.Resolved = false
		st.Item = nil
		return nil
	}

	lvl, err := e.level(st)
	if err != nil {
		return err
	}

	if lvl.kind == LevelGroups && st.Letter != "" {
		st.Letter = ""
		st.Page = 0
		return nil
	}

	if len(st.Path) == 0 {
		return domain.ErrAtRoot
	}

	st.Path = st.Path[:len(st.Path)-1]
	st.Page = 0
	return nil
}

// ChangePage moves to an explicit page of the current level.
func (e *Engine) ChangePage(st *State, pageIndex int) error {
	if st.Resolved {
		return fmt.Errorf("%w: page %d on resolved selection", domain.ErrInvalidPage, pageIndex)
	}

	lvl, err := e.level(st)
	if err != nil {
		return err
	}
	if _, _, _, err := page.Slice(lvl.labels, e.pageSize, pageIndex); err != nil {
		return err
	}
	st.Page = pageIndex
	return nil
}
