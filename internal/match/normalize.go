package match

import "strings"

// Normalizer canonicalizes free-text material names for comparison. The
// noise prefixes are vendor-specific qualifier words that sometimes prefix a
// material name in one source but not the other (e.g. "зебра ").
type Normalizer struct {
	prefixes []string
}

func NewNormalizer(noisePrefixes []string) *Normalizer {
	prefixes := make([]string, 0, len(noisePrefixes))
	for _, p := range noisePrefixes {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			prefixes = append(prefixes, p+" ")
		}
	}
	return &Normalizer{prefixes: prefixes}
}

// Normalize lowercases, trims, and strips noise prefixes until none apply,
// which makes it idempotent: Normalize(Normalize(s)) == Normalize(s).
func (n *Normalizer) Normalize(s string) string {
	out := strings.TrimSpace(strings.ToLower(s))
	for stripped := true; stripped; {
		stripped = false
		for _, p := range n.prefixes {
			if strings.HasPrefix(out, p) {
				out = strings.TrimSpace(strings.TrimPrefix(out, p))
				stripped = true
			}
		}
	}
	return out
}
