package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"opera_mock/internal/domain"
)

const (
	DefaultContentLimit     = 20
	DefaultReservationLimit = 100
	DefaultSummaryLimit     = 200
	DefaultStatisticsLimit  = 20
)

// fetchPage runs the page and count queries concurrently. A non-empty page raises the
// total to cover the rows actually returned, so a write landing between the two queries
// cannot yield total < offset+len(page). An empty page keeps the counted total.
func fetchPage[T any](
	ctx context.Context,
	pg domain.Page,
	page func(context.Context) ([]T, error),
	count func(context.Context) (int, error),
) ([]T, int, error) {
	var (
		items []T
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = page(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	if floor := pg.Offset + len(items); len(items) > 0 && total < floor {
		total = floor
	}
	return items, total, nil
}

func hasMore(pg domain.Page, count, total int) bool {
	return pg.Offset+count < total
}
