package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"sunray/navigator/internal/domain"
)

// interAllowedCategories is the whitelist of Inter catalog sections exposed
// to navigation; everything else in the dump is ignored.
var interAllowedCategories = map[string]struct{}{
	"Ткани рулонные":           {},
	"Лента алюминиевая":        {},
	"Пластик 89 мм":            {},
	"Алюминий 89 мм":           {},
	"Дерево":                   {},
	"Ткани плиссе":             {},
	"Ткани Комбо":              {},
	"Ткани вертикальные 89 мм": {},
	"Ткани римские":            {},
}

type interItem struct {
	ID               json.Number `json:"id"`
	Name             string      `json:"name"`
	Image            string      `json:"image"`
	AvailabilityText string      `json:"availability_text"`
}

type interCategory struct {
	Name    string      `json:"name"`
	Section string      `json:"section"`
	Items   []interItem `json:"items"`
}

type interDocument struct {
	Catalog  json.RawMessage `json:"catalog"`
	Metadata *struct {
		UpdatedAt       string `json:"updated_at"`
		TotalCategories int    `json:"total_categories"`
		TotalItems      int    `json:"total_items"`
	} `json:"metadata"`
}

// InterAdapter builds the Inter catalog tree from a single catalog dump.
// Two dump formats exist: the current one nests categories under main
// sections with a metadata header, the legacy one is a bare category list.
// Item names embed the fabric group and the color behind a marker character;
// SplitComposite turns them into the group/variant levels.
type InterAdapter struct {
	catalogFile string
	baseURL     string
}

func NewInterAdapter(catalogFile, baseURL string) *InterAdapter {
	return &InterAdapter{catalogFile: catalogFile, baseURL: baseURL}
}

func (a *InterAdapter) Vendor() domain.Vendor {
	return domain.VendorInter
}

func (a *InterAdapter) Load() ([]domain.Node, error) {
	raw, err := os.ReadFile(a.catalogFile)
	if err != nil {
		return nil, fmt.Errorf("%w: inter catalog: %v", domain.ErrDataUnavailable, err)
	}

	categories, err := a.decodeCategories(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: inter catalog: %v", domain.ErrDataUnavailable, err)
	}

	nodes := make([]domain.Node, 0, len(categories))
	for _, cat := range categories {
		name := strings.TrimSpace(cat.Name)
		if _, allowed := interAllowedCategories[name]; !allowed {
			continue
		}
		if cat.Section != "Да" || len(cat.Items) == 0 {
			continue
		}
		nodes = append(nodes, domain.Node{
			Label:    cat.Name,
			Children: a.groupItems(cat.Items),
		})
	}
	return nodes, nil
}

func (a *InterAdapter) decodeCategories(raw []byte) ([]interCategory, error) {
	var doc interDocument
	if err := json.Unmarshal(raw, &doc); err == nil && doc.Metadata != nil && len(doc.Catalog) > 0 {
		log.Infof("inter catalog from %s: %d categories, %d items",
			doc.Metadata.UpdatedAt, doc.Metadata.TotalCategories, doc.Metadata.TotalItems)
		return a.flattenCatalog(doc.Catalog)
	}

	// Legacy dump: a bare list of categories.
	var categories []interCategory
	if err := json.Unmarshal(raw, &categories); err != nil {
		return nil, err
	}
	log.Warn("inter catalog loaded in legacy format")
	return categories, nil
}

// flattenCatalog walks {main: {subcategory: [items]}} in document order and
// flattens it into a subcategory list; the main sections only group the dump.
func (a *InterAdapter) flattenCatalog(raw json.RawMessage) ([]interCategory, error) {
	if len(raw) > 0 && raw[0] == '[' {
		var categories []interCategory
		err := json.Unmarshal(raw, &categories)
		return categories, err
	}

	mains, err := decodeOrderedObject(raw)
	if err != nil {
		return nil, err
	}

	var categories []interCategory
	for _, main := range mains {
		subs, err := decodeOrderedObject(main.Value)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", main.Key, err)
		}
		for _, sub := range subs {
			var items []interItem
			if err := json.Unmarshal(sub.Value, &items); err != nil {
				return nil, fmt.Errorf("category %q: %w", sub.Key, err)
			}
			categories = append(categories, interCategory{
				Name:    sub.Key,
				Section: "Да",
				Items:   items,
			})
		}
	}
	return categories, nil
}

// groupItems buckets a category's items by the group half of their composite
// name, preserving first-seen order on both levels.
func (a *InterAdapter) groupItems(items []interItem) []domain.Node {
	var groups []domain.Node
	index := make(map[string]int)

	for _, it := range items {
		group, variant := SplitComposite(it.Name)
		leaf := domain.Item{
			Name:      it.Name,
			ID:        it.ID.String(),
			ImageURL:  AbsoluteURL(a.baseURL, it.Image),
			Group:     group,
			Variant:   variant,
			RawStatus: it.AvailabilityText,
		}

		at, seen := index[group]
		if !seen {
			at = len(groups)
			index[group] = at
			groups = append(groups, domain.Node{Label: group, Leaves: []domain.Item{}})
		}
		groups[at].Leaves = append(groups[at].Leaves, leaf)
	}
	return groups
}
