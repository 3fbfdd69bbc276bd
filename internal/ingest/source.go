// Package ingest is the DataSource boundary: it fetches the MarketingData
// bundle over HTTP or from disk, normalizes it, and exports rendered views
// to an external sink.
package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/AngelCh415/marketing-dash/internal/models"
)

type DataSource interface {
	FetchMarketingData(ctx context.Context) (models.MarketingData, error)
}

// FetchError is the only failure a DataSource reports.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// SourceFunc adapts a plain function to DataSource.
type SourceFunc func(ctx context.Context) (models.MarketingData, error)

func (f SourceFunc) FetchMarketingData(ctx context.Context) (models.MarketingData, error) {
	return f(ctx)
}

// Observed reports the latency and outcome of every fetch to obs.
func Observed(src DataSource, obs func(d time.Duration, err error)) DataSource {
	return SourceFunc(func(ctx context.Context) (models.MarketingData, error) {
		start := time.Now()
		data, err := src.FetchMarketingData(ctx)
		obs(time.Since(start), err)
		return data, err
	})
}
