package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitComposite(t *testing.T) {
	cases := []struct {
		name    string
		group   string
		variant string
	}{
		{"`Dune White`", "Dune", "White"},
		{"`Dune`", "Dune", ""},
		{"`Dune White` 240 см", "Dune", "White"},
		{"Ткань `Aurora Gold`", "Aurora", "Gold"},
		{"Dune White", "Dune White", ""},
		{"", "", ""},
		{"`  Dune   White  `", "Dune", "White"},
	}
	for _, tc := range cases {
		group, variant := SplitComposite(tc.name)
		assert.Equal(t, tc.group, group, "group of %q", tc.name)
		assert.Equal(t, tc.variant, variant, "variant of %q", tc.name)
	}
}

func TestAbsoluteURL(t *testing.T) {
	assert.Equal(t, "", AbsoluteURL("https://x.ru", ""))
	assert.Equal(t, "https://cdn.x.ru/a.jpg", AbsoluteURL("https://x.ru", "https://cdn.x.ru/a.jpg"))
	assert.Equal(t, "https://x.ru/img/a.jpg", AbsoluteURL("https://x.ru", "/img/a.jpg"))
	assert.Equal(t, "https://x.ru/img/a.jpg", AbsoluteURL("https://x.ru/", "img/a.jpg"))
}
