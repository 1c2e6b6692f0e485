package navigation

import "sunray/navigator/internal/domain"

// State is one session's position inside a vendor catalog. It holds chosen
// labels rather than indices, so it survives repagination, and carries the
// version stamp of the tree it was computed against. JSON tags allow the
// state to live in an external session store.
type State struct {
	Vendor  domain.Vendor `json:"vendor"`
	Version uint64        `json:"version"`
	Path    []string      `json:"path,omitempty"`
	Letter  string        `json:"letter,omitempty"`
	Page    int           `json:"page"`

	Resolved bool         `json:"resolved"`
	Item     *domain.Item `json:"item,omitempty"`
}

// Clone returns an independent copy of the state.
func (s *State) Clone() *State {
	cp := *s
	cp.Path = append([]string(nil), s.Path...)
	if s.Item != nil {
		item := *s.Item
		cp.Item = &item
	}
	return &cp
}
