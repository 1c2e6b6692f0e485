package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"sunray/navigator/internal/domain"
)

// Cortin ships two files: grouped_materials.json, a flat list of fabric-type
// groups each carrying its selectable variants, and shutters.json, finished
// products bucketed by category.
type cortinVariant struct {
	ID    json.Number `json:"id"`
	Name  string      `json:"name"`
	Image string      `json:"image"`
}

type cortinGroup struct {
	Fabric   string          `json:"fabric"`
	Variants []cortinVariant `json:"variants"`
}

type cortinShutterCategory struct {
	Category string          `json:"category"`
	Items    []cortinVariant `json:"items"`
}

const (
	cortinShuttersBranch = "Готовые шторы"
	cortinFabricsBranch  = "Ткани"
)

// CortinAdapter builds the Cortin catalog tree: a shutters branch and a
// fabrics branch under the root.
type CortinAdapter struct {
	dataDir string
	baseURL string
}

func NewCortinAdapter(dataDir, baseURL string) *CortinAdapter {
	return &CortinAdapter{dataDir: dataDir, baseURL: baseURL}
}

func (c *CortinAdapter) Vendor() domain.Vendor {
	return domain.VendorCortin
}

// Load reads both source files. Materials are mandatory; a missing shutters
// file only drops that branch, the fabric drill-down still works.
func (c *CortinAdapter) Load() ([]domain.Node, error) {
	fabrics, err := c.loadFabrics()
	if err != nil {
		return nil, err
	}

	var nodes []domain.Node
	shutters, err := c.loadShutters()
	if err != nil {
		log.Warnf("cortin shutters unavailable, branch dropped: %v", err)
	} else if len(shutters) > 0 {
		nodes = append(nodes, domain.Node{Label: cortinShuttersBranch, Children: shutters})
	}

	nodes = append(nodes, domain.Node{Label: cortinFabricsBranch, Children: fabrics})
	return nodes, nil
}

func (c *CortinAdapter) loadFabrics() ([]domain.Node, error) {
	raw, err := os.ReadFile(filepath.Join(c.dataDir, "grouped_materials.json"))
	if err != nil {
		return nil, fmt.Errorf("%w: cortin materials: %v", domain.ErrDataUnavailable, err)
	}

	var groups []cortinGroup
	if err := json.Unmarshal(raw, &groups); err != nil {
		return nil, fmt.Errorf("%w: cortin materials: %v", domain.ErrDataUnavailable, err)
	}

	nodes := make([]domain.Node, 0, len(groups))
	for _, g := range groups {
		if g.Fabric == "" {
			continue
		}
		leaves := make([]domain.Item, 0, len(g.Variants))
		for _, v := range g.Variants {
			leaves = append(leaves, domain.Item{
				Name:     v.Name,
				ID:       v.ID.String(),
				ImageURL: AbsoluteURL(c.baseURL, v.Image),
				Group:    g.Fabric,
				Variant:  v.Name,
			})
		}
		nodes = append(nodes, domain.Node{Label: g.Fabric, Leaves: leaves})
	}
	return nodes, nil
}

func (c *CortinAdapter) loadShutters() ([]domain.Node, error) {
	raw, err := os.ReadFile(filepath.Join(c.dataDir, "shutters.json"))
	if err != nil {
		return nil, err
	}

	var categories []cortinShutterCategory
	if err := json.Unmarshal(raw, &categories); err != nil {
		return nil, err
	}

	nodes := make([]domain.Node, 0, len(categories))
	for _, cat := range categories {
		if cat.Category == "" {
			continue
		}
		leaves := make([]domain.Item, 0, len(cat.Items))
		for _, it := range cat.Items {
			leaves = append(leaves, domain.Item{
				Name:     it.Name,
				ID:       it.ID.String(),
				ImageURL: AbsoluteURL(c.baseURL, it.Image),
			})
		}
		nodes = append(nodes, domain.Node{Label: cat.Category, Leaves: leaves})
	}
	return nodes, nil
}
