package match

import (
	"strings"

	"sunray/navigator/internal/domain"
)

// Result reports which candidate matched and how. Index is -1 when nothing
// matched.
type Result struct {
	Tier  domain.MatchTier
	Index int
}

// Match reconciles a catalog selection with a list of externally sourced
// names. Tiers, in order: exact match on the full "group variant" query,
// then the variant as a substring, then the group as a substring. The first
// candidate in original order wins within each tier. Empty query halves
// cannot win their substring tier, otherwise they would match everything.
func (n *Normalizer) Match(names []string, group, variant string) Result {
	query := n.Normalize(strings.TrimSpace(group + " " + variant))
	variantQ := n.Normalize(variant)
	groupQ := n.Normalize(group)

	normalized := make([]string, len(names))
	for i, name := range names {
		normalized[i] = n.Normalize(name)
	}

	for i, name := range normalized {
		if name == query {
			return Result{Tier: domain.MatchExact, Index: i}
		}
	}

	if variantQ != "" {
		for i, name := range normalized {
			if strings.Contains(name, variantQ) {
				return Result{Tier: domain.MatchPartial, Index: i}
			}
		}
	}

	if groupQ != "" {
		for i, name := range normalized {
			if strings.Contains(name, groupQ) {
				return Result{Tier: domain.MatchPartial, Index: i}
			}
		}
	}

	return Result{Tier: domain.MatchNone, Index: -1}
}
