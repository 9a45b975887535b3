package hycuapi

import (
	"context"
	"fmt"
)

// PageFunc fetches one page, numbered from 1.
type PageFunc func(ctx context.Context, pageNumber int) (Page, error)

// FetchAll calls fetch with increasing page numbers and concatenates the
// entities, stopping at the first page that is empty or shorter than
// pageSize. Any error aborts the sweep; partial results are discarded.
func FetchAll(ctx context.Context, pageSize int, fetch PageFunc) ([]Object, error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("page size must be positive, got %d", pageSize)
	}
	var out []Object
	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := fetch(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		out = append(out, p.Entities...)
		if len(p.Entities) < pageSize {
			return out, nil
		}
	}
}
