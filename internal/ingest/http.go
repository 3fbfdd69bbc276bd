package ingest

import (
	"context"
	"errors"
	"log/slog"

	"github.com/AngelCh415/marketing-dash/internal/models"
	"github.com/AngelCh415/marketing-dash/internal/utils"
)

// HTTPSource GETs the bundle from URL. With the zero Backoff it makes a
// single attempt.
type HTTPSource struct {
	c       HTTPClient
	url     string
	backoff utils.Backoff
	log     *slog.Logger
}

func NewHTTPSource(c HTTPClient, url string, backoff utils.Backoff, log *slog.Logger) *HTTPSource {
	if log == nil {
		log = slog.Default()
	}
	return &HTTPSource{c: c, url: url, backoff: backoff, log: log}
}

func (s *HTTPSource) FetchMarketingData(ctx context.Context) (models.MarketingData, error) {
	var data models.MarketingData
	err := s.backoff.Do(ctx, func(i int) error {
		var err error
		data, err = fetchJSON[models.MarketingData](ctx, s.c, s.url)
		if err == nil {
			return nil
		}
		var se *StatusError
		if errors.As(err, &se) && !se.Retryable() {
			return utils.Permanent(err)
		}
		if i+1 < s.backoff.Attempts() {
			s.log.Warn("fetch attempt failed", slog.Int("attempt", i+1), slog.String("err", err.Error()))
		}
		return err
	})
	if err != nil {
		return models.MarketingData{}, &FetchError{Source: s.url, Err: err}
	}
	return Normalize(data), nil
}
