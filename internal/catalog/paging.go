package catalog

import (
	"context"
)

const defaultPageSize = 100

// fetchAll pages through a listing until the backend returns a short page.
// Pages start at 1. A page larger than requested means the backend ignored
// paging and returned everything at once.
func fetchAll[T any](
	ctx context.Context,
	fetch func(ctx context.Context, page, limit int) ([]T, error),
	pageSize int,
) ([]T, error) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	var all []T
	for page := 1; ; page++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		items, err := fetch(ctx, page, pageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)

		if len(items) != pageSize {
			break
		}
	}
	return all, nil
}
