package lots

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// FIFOBySymbol computes one independent position per symbol found in trades.
// Positions are computed concurrently; the returned symbols are sorted.
//
// Trades without symbol are grouped under the empty symbol.
func FIFOBySymbol(ctx context.Context, trades []Trade) (map[string]Position, []string, error) {
	groups, symbols := SplitBySymbol(trades)

	var mu sync.Mutex
	positions := make(map[string]Position, len(symbols))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, s := range symbols {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pos := FIFO(groups[s])
			mu.Lock()
			positions[s] = pos
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return positions, symbols, nil
}
