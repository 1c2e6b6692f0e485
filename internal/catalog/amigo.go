package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"sunray/navigator/internal/domain"
)

// Amigo ships one JSON file per curtain category, each shaped as
// {"<category>": {"<fabric>": ["<variant>", ...], ...}}. Plisse is the
// exception: a directory of per-model files merged into a single fabric list,
// with each fabric remembering which model file it came from so the resolver
// can pick the model-specific API endpoint later.
var amigoCategories = []struct {
	Name string
	File string
}{
	{"Рулонные шторы", "rulon.json"},
	{"Рулонные шторы Зебра", "zebra.json"},
	{"Шторы плиссе", ""},
	{"Горизонтальные алюминиевые", "horizontal_aluminum.json"},
	{"Горизонтальные деревянные", "horizontal_wood.json"},
	{"Вертикальные", "vertical.json"},
	{"Портьеры и римские шторы", "curtains_roman.json"},
}

const (
	amigoPlisseCategory = "Шторы плиссе"
	amigoGofreCategory  = "Шторы гофре"
)

// AmigoCategoryIDs maps a category to the customizer API model id used when
// no finer model tag applies.
var AmigoCategoryIDs = map[string]int{
	"Рулонные шторы":             1,
	"Рулонные шторы Зебра":       6,
	"Шторы плиссе":               15,
	"Шторы гофре":                19,
	"Горизонтальные алюминиевые": 28,
	"Горизонтальные деревянные":  38,
	"Вертикальные":               43,
	"Портьеры и римские шторы":   360,
}

// AmigoPlisseModelIDs maps a plisse model tag to its API model id.
var AmigoPlisseModelIDs = map[string]int{
	"MIDI": 56,
	"MAXI": 113,
	"MINI": 53,
	"RUS":  223,
}

// AmigoGofreModelIDs maps a gofre model tag to its API model id. Tags carry
// the GOFRE- prefix because the model names collide with the plisse ones.
var AmigoGofreModelIDs = map[string]int{
	"GOFRE-MIDI": 86,
	"GOFRE-MAXI": 230,
	"GOFRE-RUS":  224,
}

// AmigoDefaultModelID is the API fallback when a category has no known id.
const AmigoDefaultModelID = 1

var (
	amigoPlisseModels = []string{"MIDI", "MAXI", "MINI", "RUS"}
	amigoGofreModels  = []string{"MIDI", "MAXI", "RUS"}
)

// AmigoAdapter builds the Amigo catalog tree from its on-disk JSON files.
// The gofre category exists in the source data but is withdrawn from sale,
// so it only loads when explicitly enabled.
type AmigoAdapter struct {
	dataDir      string
	includeGofre bool
}

func NewAmigoAdapter(dataDir string, includeGofre bool) *AmigoAdapter {
	return &AmigoAdapter{dataDir: dataDir, includeGofre: includeGofre}
}

func (a *AmigoAdapter) Vendor() domain.Vendor {
	return domain.VendorAmigo
}

// Load reads every category file. Any missing or malformed file fails the
// whole load so a broken deployment cannot masquerade as an empty catalog.
func (a *AmigoAdapter) Load() ([]domain.Node, error) {
	nodes := make([]domain.Node, 0, len(amigoCategories)+1)
	for _, cat := range amigoCategories {
		var fabrics []domain.Node
		var err error
		if cat.Name == amigoPlisseCategory {
			fabrics, err = a.loadModelDir("plisse", amigoPlisseModels, "")
		} else {
			fabrics, err = a.loadCategoryFile(cat.Name, cat.File)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: amigo category %q: %v", domain.ErrDataUnavailable, cat.Name, err)
		}
		nodes = append(nodes, domain.Node{Label: cat.Name, Children: fabrics})
	}

	if a.includeGofre {
		fabrics, err := a.loadModelDir("gofre", amigoGofreModels, "GOFRE-")
		if err != nil {
			return nil, fmt.Errorf("%w: amigo category %q: %v", domain.ErrDataUnavailable, amigoGofreCategory, err)
		}
		nodes = append(nodes, domain.Node{Label: amigoGofreCategory, Children: fabrics})
	}
	return nodes, nil
}

func (a *AmigoAdapter) loadCategoryFile(category, file string) ([]domain.Node, error) {
	raw, err := os.ReadFile(filepath.Join(a.dataDir, file))
	if err != nil {
		return nil, err
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	inner, ok := doc[category]
	if !ok {
		return nil, fmt.Errorf("file %s has no %q section", file, category)
	}

	return amigoFabricNodes(inner, "")
}

// loadModelDir merges a directory of per-model files (plisse, gofre) into a
// single fabric list. A fabric repeated across models keeps its first
// position but takes the later model's variants, matching how the source
// data is curated. tagPrefix disambiguates model tags between directories.
func (a *AmigoAdapter) loadModelDir(dir string, models []string, tagPrefix string) ([]domain.Node, error) {
	var merged []domain.Node
	index := make(map[string]int)

	for _, model := range models {
		raw, err := os.ReadFile(filepath.Join(a.dataDir, dir, model+".json"))
		if err != nil {
			return nil, err
		}

		var doc map[string]json.RawMessage
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
		inner, ok := doc[model]
		if !ok {
			return nil, fmt.Errorf("%s file %s.json has no %q section", dir, model, model)
		}

		fabrics, err := amigoFabricNodes(inner, tagPrefix+model)
		if err != nil {
			return nil, err
		}
		for _, f := range fabrics {
			if at, seen := index[f.Label]; seen {
				merged[at] = f
				continue
			}
			index[f.Label] = len(merged)
			merged = append(merged, f)
		}
	}

	log.Debugf("amigo %s merged into %d fabrics", dir, len(merged))
	return merged, nil
}

func amigoFabricNodes(raw json.RawMessage, modelTag string) ([]domain.Node, error) {
	entries, err := decodeOrderedObject(raw)
	if err != nil {
		return nil, err
	}

	nodes := make([]domain.Node, 0, len(entries))
	for _, e := range entries {
		var variants []string
		if err := json.Unmarshal(e.Value, &variants); err != nil {
			return nil, fmt.Errorf("fabric %q: %w", e.Key, err)
		}

		leaves := make([]domain.Item, 0, len(variants))
		for _, v := range variants {
			leaves = append(leaves, domain.Item{
				Name:     e.Key + " " + v,
				Group:    e.Key,
				Variant:  v,
				ModelTag: modelTag,
			})
		}
		nodes = append(nodes, domain.Node{Label: e.Key, Leaves: leaves})
	}
	return nodes, nil
}
