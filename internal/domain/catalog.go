package domain

import "fmt"

// Item is a terminal catalog entry. Items are immutable once loaded.
type Item struct {
	Name      string `json:"name"`
	ID        string `json:"id,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
	Group     string `json:"group,omitempty"`
	Variant   string `json:"variant,omitempty"`
	ModelTag  string `json:"model_tag,omitempty"`
	RawStatus string `json:"raw_status,omitempty"`
}

// Label is the string shown for the item on a variant menu. Items whose
// composite name carried no variant half fall back to their group key.
func (i Item) Label() string {
	if i.Variant != "" {
		return i.Variant
	}
	if i.Group != "" {
		return i.Group
	}
	return i.Name
}

// Node is one entry of a catalog level: either a nested level (Children set)
// or a terminal one (Leaves set, kept non-nil even when empty). Exactly one
// of the two is populated. Sibling labels are unique and keep the order the
// vendor source listed them in, so pagination is stable across requests.
type Node struct {
	Label    string
	Children []Node
	Leaves   []Item
}

// Terminal reports whether the node holds leaf items rather than a nested level.
func (n *Node) Terminal() bool {
	return n.Children == nil
}

// Tree is a vendor-agnostic drill-down hierarchy. Built once per vendor at
// load time and read-only afterwards; a reload replaces the whole tree under
// a new version stamp.
type Tree struct {
	Vendor  Vendor
	Version uint64
	Nodes   []Node
}

// Level resolves a path of chosen labels to the level it points at: either
// the child nodes of the last segment or, when the path ends on a terminal
// node, its leaf items (leaf reported true).
func (t *Tree) Level(path []string) (children []Node, leaves []Item, leaf bool, err error) {
	nodes := t.Nodes
	for i, label := range path {
		match := findNode(nodes, label)
		if match == nil {
			return nil, nil, false, fmt.Errorf("no catalog entry %q at depth %d", label, i)
		}
		if match.Terminal() {
			if i != len(path)-1 {
				return nil, nil, false, fmt.Errorf("path descends past terminal entry %q", label)
			}
			return nil, match.Leaves, true, nil
		}
		nodes = match.Children
	}
	return nodes, nil, false, nil
}

func findNode(nodes []Node, label string) *Node {
	for i := range nodes {
		if nodes[i].Label == label {
			return &nodes[i]
		}
	}
	return nil
}

// Labels extracts the display labels of a level in order.
func Labels(nodes []Node) []string {
	out := make([]string, len(nodes))
	for i := range nodes {
		out[i] = nodes[i].Label
	}
	return out
}
