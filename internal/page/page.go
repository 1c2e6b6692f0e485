// Package page slices ordered candidate lists into fixed-size menu pages.
package page

import (
	"fmt"

	"sunray/navigator/internal/domain"
)

// Slice returns the items on pageIndex plus previous/next page availability.
// An out-of-range index on a non-empty list fails with ErrInvalidPage rather
// than clamping, so navigation logic has to compute valid indices itself.
// An empty list has exactly one valid (empty) page, index 0.
func Slice[T any](items []T, pageSize, pageIndex int) (pageItems []T, hasPrev, hasNext bool, err error) {
	if pageSize <= 0 {
		return nil, false, false, fmt.Errorf("%w: page size %d", domain.ErrInvalidPage, pageSize)
	}
	if len(items) == 0 {
		if pageIndex != 0 {
			return nil, false, false, fmt.Errorf("%w: page %d of empty list", domain.ErrInvalidPage, pageIndex)
		}
		return nil, false, false, nil
	}

	total := Count(len(items), pageSize)
	if pageIndex < 0 || pageIndex >= total {
		return nil, false, false, fmt.Errorf("%w: page %d of %d", domain.ErrInvalidPage, pageIndex, total)
	}

	start := pageIndex * pageSize
	end := min(start+pageSize, len(items))
	return items[start:end], pageIndex > 0, end < len(items), nil
}

// Count is the number of pages needed for n items.
func Count(n, pageSize int) int {
	if n <= 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}
