package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AngelCh415/marketing-dash/internal/analytics"
	"github.com/AngelCh415/marketing-dash/internal/ingest"
	"github.com/AngelCh415/marketing-dash/internal/page"
	"github.com/AngelCh415/marketing-dash/internal/telemetry"
	"github.com/AngelCh415/marketing-dash/internal/utils"
	"github.com/AngelCh415/marketing-dash/internal/views"
)

func NewRouter(log *slog.Logger, sess *page.Session, src ingest.DataSource, svc *views.Service, exp *ingest.Exporter, m *telemetry.Metrics) http.Handler {
	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(log))
	mux.Use(m.Middleware)

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		st := sess.State()
		if st != page.Loaded {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(st.String()))
			return
		}
		w.WriteHeader(200)
		w.Write([]byte("ready"))
	})

	if m != nil {
		mux.Handle("/metrics", m.Handler())
	}

	mux.Post("/ingest/run", func(w http.ResponseWriter, r *http.Request) {
		// the fetch outlives a disconnecting client; the HTTP client timeout bounds it
		<-sess.Load(context.WithoutCancel(r.Context()), src)
		c := sess.Context()
		if err := c.Ready(); err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusAccepted, map[string]any{
			"state":     c.State.String(),
			"campaigns": len(c.Data.Campaigns),
			"version":   c.Version,
		})
	})

	mux.Get("/views/{view}", func(w http.ResponseWriter, r *http.Request) {
		q, err := views.ParseQuery(r.URL.Query())
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		out, err := sess.Context().WithQuery(q).Render(svc, chi.URLParam(r, "view"))
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	})

	mux.Post("/export/run", func(w http.ResponseWriter, r *http.Request) {
		view := r.URL.Query().Get("view")
		if view == "" {
			writeError(w, http.StatusBadRequest, errors.New("view required (campaigns, devices, regions, weekly)"))
			return
		}
		q, err := views.ParseQuery(r.URL.Query())
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		out, err := sess.Context().WithQuery(q).Render(svc, view)
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		n, err := exp.Export(r.Context(), view, out)
		if errors.Is(err, ingest.ErrSinkNotConfigured) {
			writeError(w, http.StatusServiceUnavailable, err)
			return
		}
		if err != nil {
			writeError(w, http.StatusBadGateway, err)
			return
		}
		log.Info("export complete", slog.String("view", view), slog.Int("bytes", n))
		writeJSON(w, http.StatusOK, map[string]any{"view": view, "exported": n})
	})

	return mux
}

func statusFor(err error) int {
	var fe *ingest.FetchError
	switch {
	case errors.Is(err, views.ErrUnknownView):
		return http.StatusNotFound
	case errors.Is(err, analytics.ErrUnknownColumn), errors.Is(err, analytics.ErrBadDirection):
		return http.StatusBadRequest
	case errors.Is(err, page.ErrNotLoaded):
		return http.StatusServiceUnavailable
	case errors.As(err, &fe):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
