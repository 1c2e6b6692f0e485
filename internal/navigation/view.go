package navigation

import "sunray/navigator/internal/domain"

// LevelKind tells the caller what the current menu lists.
type LevelKind string

const (
	LevelMenu     LevelKind = "menu"
	LevelLetters  LevelKind = "letters"
	LevelGroups   LevelKind = "groups"
	LevelVariants LevelKind = "variants"
	LevelResolved LevelKind = "resolved"
)

// View is a render-ready snapshot of the current level: the labels of the
// current page plus everything needed to draw pagination and breadcrumbs.
type View struct {
	Vendor      domain.Vendor `json:"vendor"`
	Kind        LevelKind     `json:"kind"`
	Labels      []string      `json:"labels"`
	Page        int           `json:"page"`
	PageCount   int           `json:"page_count"`
	HasPrev     bool          `json:"has_prev"`
	HasNext     bool          `json:"has_next"`
	Total       int           `json:"total"`
	Breadcrumbs []string      `json:"breadcrumbs,omitempty"`
	Letter      string        `json:"letter,omitempty"`
	Item        *domain.Item  `json:"item,omitempty"`
}
