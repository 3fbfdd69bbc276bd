// Package page owns the load lifecycle of one dashboard consumer: the single
// asynchronous fetch, its outcome, and the filter/sort state rendered against it.
package page

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/AngelCh415/marketing-dash/internal/ingest"
	"github.com/AngelCh415/marketing-dash/internal/models"
	"github.com/AngelCh415/marketing-dash/internal/views"
)

var ErrNotLoaded = errors.New("data not loaded yet")

type State int

const (
	NotLoaded State = iota
	Loading
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case NotLoaded:
		return "not_loaded"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return "state(" + strconv.Itoa(int(s)) + ")"
}

// Session is page-scoped state. Each consumer owns its own Session; nothing is
// shared between sessions.
type Session struct {
	mu      sync.Mutex
	state   State
	data    models.MarketingData
	version string
	err     error
	query   views.Query
	mounted bool
	gen     uint64
	onLoad  func(Context)
}

func New() *Session {
	return &Session{mounted: true, query: views.DefaultQuery()}
}

// OnLoad is called after each committed load, successful or not.
func (s *Session) OnLoad(f func(Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLoad = f
}

// Load starts a fetch and returns a channel closed once the fetch has
// finished, whether or not its result was committed. A result is dropped if
// the session was unmounted or a newer Load was started in the meantime.
// Previously loaded data stays visible while a reload is in flight.
func (s *Session) Load(ctx context.Context, src ingest.DataSource) <-chan struct{} {
	done := make(chan struct{})

	s.mu.Lock()
	if !s.mounted {
		s.mu.Unlock()
		close(done)
		return done
	}
	s.gen++
	gen := s.gen
	if s.state != Loaded {
		s.state = Loading
	}
	s.mu.Unlock()

	go func() {
		defer close(done)
		data, err := src.FetchMarketingData(ctx)
		var version string
		if err == nil {
			version, err = Version(data)
		}

		s.mu.Lock()
		if !s.mounted || gen != s.gen {
			s.mu.Unlock()
			return
		}
		if err != nil {
			s.state, s.err = Failed, err
			s.data, s.version = models.MarketingData{}, ""
		} else {
			s.state, s.err = Loaded, nil
			s.data, s.version = data, version
		}
		c := s.contextLocked()
		cb := s.onLoad
		s.mu.Unlock()

		if cb != nil {
			cb(c)
		}
	}()
	return done
}

// Unmount tears the session down; in-flight results are discarded and the
// session reads as NotLoaded from then on.
func (s *Session) Unmount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mounted = false
	s.state, s.err = NotLoaded, nil
	s.data = models.MarketingData{}
	s.version = ""
}

func (s *Session) SetQuery(q views.Query) error {
	if err := q.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = q
	return nil
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Context snapshots the session for rendering.
func (s *Session) Context() Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contextLocked()
}

func (s *Session) contextLocked() Context {
	return Context{State: s.state, Data: s.data, Version: s.version, Err: s.err, Query: s.query}
}

// Version is a content hash of the bundle, used to key cached views.
func Version(data models.MarketingData) (string, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(xxhash.Sum64(b), 16), nil
}
