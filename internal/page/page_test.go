package page

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sunray/navigator/internal/domain"
)

func TestSliceConcatenationCoversAll(t *testing.T) {
	items := make([]string, 23)
	for i := range items {
		items[i] = fmt.Sprintf("item-%02d", i)
	}

	var got []string
	for p := 0; p < Count(len(items), 10); p++ {
		pageItems, hasPrev, hasNext, err := Slice(items, 10, p)
		require.NoError(t, err)
		assert.Equal(t, p > 0, hasPrev)
		assert.Equal(t, p < 2, hasNext)
		got = append(got, pageItems...)
	}
	assert.Equal(t, items, got)
}

func TestSliceOutOfRange(t *testing.T) {
	items := []string{"a", "b", "c"}

	_, _, _, err := Slice(items, 2, 2)
	assert.ErrorIs(t, err, domain.ErrInvalidPage)

	_, _, _, err = Slice(items, 2, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidPage)
}

func TestSliceEmptyList(t *testing.T) {
	pageItems, hasPrev, hasNext, err := Slice([]string{}, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, pageItems)
	assert.False(t, hasPrev)
	assert.False(t, hasNext)

	_, _, _, err = Slice([]string{}, 10, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidPage)
}

func TestSliceExactMultiple(t *testing.T) {
	items := []int{1, 2, 3, 4}

	pageItems, _, hasNext, err := Slice(items, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, pageItems)
	assert.False(t, hasNext)
	assert.Equal(t, 2, Count(len(items), 2))
}
