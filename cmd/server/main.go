package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/AngelCh415/marketing-dash/internal/config"
	"github.com/AngelCh415/marketing-dash/internal/httpx"
	"github.com/AngelCh415/marketing-dash/internal/ingest"
	"github.com/AngelCh415/marketing-dash/internal/page"
	"github.com/AngelCh415/marketing-dash/internal/store"
	"github.com/AngelCh415/marketing-dash/internal/telemetry"
	"github.com/AngelCh415/marketing-dash/internal/utils"
	"github.com/AngelCh415/marketing-dash/internal/views"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		slog.Error("config", slog.String("err", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	m := telemetry.New()
	st := store.NewMemoryStore(cfg.ViewCacheSize)
	st.OnLookup(m.CacheHit, m.CacheMiss)
	svc := views.NewService(st)
	svc.OnBuild(m.ViewBuilt)

	cl := ingest.NewHTTPClient(cfg.HTTPTimeout)
	src := ingest.SourceFor(cfg.Location(), func(url string) ingest.DataSource {
		return ingest.NewHTTPSource(cl, url, utils.NewBackoff(cfg.RetryBase, cfg.FetchRetries), logger)
	})
	src = ingest.Observed(src, m.ObserveFetch)
	exp := ingest.NewExporter(cl, cfg.SinkURL, cfg.SinkSecret)

	sess := page.New()
	sess.OnLoad(func(c page.Context) {
		if c.Err != nil {
			logger.Error("ingest failed", slog.String("err", c.Err.Error()))
			return
		}
		st.Purge()
		logger.Info("ingest complete",
			slog.Int("campaigns", len(c.Data.Campaigns)),
			slog.String("version", c.Version))
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess.Load(ctx, src)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpx.NewRouter(logger, sess, src, svc, exp, m),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server", slog.String("port", cfg.Port), slog.String("source", cfg.Location()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		sess.Unmount()
		return srv.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", slog.String("err", err.Error()))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
