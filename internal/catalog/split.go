package catalog

import "strings"

// compositeMarker separates the descriptive prefix of a raw Inter item name
// from the embedded "group + variant" token, e.g. "Ткань `Дюна Белый`".
const compositeMarker = "`"

// SplitComposite splits a composite item name into its grouping key and
// variant label. The token is everything between the first marker and the
// next one (or the end of the string); its first whitespace-separated word is
// the group and the remaining words, rejoined, are the variant. A token of
// fewer than two words is all group with an empty variant. Names without a
// marker are their own group.
//
// The same rule runs at catalog build time (grouping) and at resolution time
// (variant extraction), so the two always agree on a given input.
func SplitComposite(name string) (group, variant string) {
	idx := strings.Index(name, compositeMarker)
	if idx < 0 {
		return name, ""
	}
	token := name[idx+len(compositeMarker):]
	if end := strings.Index(token, compositeMarker); end >= 0 {
		token = token[:end]
	}
	words := strings.Fields(token)
	if len(words) < 2 {
		return strings.TrimSpace(token), ""
	}
	return words[0], strings.Join(words[1:], " ")
}
