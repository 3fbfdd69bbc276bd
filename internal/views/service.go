// Package views builds the per-page view-models (cards, chart points, table
// rows) that the dashboard renderer consumes.
package views

import (
	"errors"
	"fmt"

	"github.com/AngelCh415/marketing-dash/internal/models"
	"github.com/AngelCh415/marketing-dash/internal/store"
)

const (
	Campaigns = "campaigns"
	Devices   = "devices"
	Regions   = "regions"
	Weekly    = "weekly"
)

var Names = []string{Campaigns, Devices, Regions, Weekly}

var ErrUnknownView = errors.New("unknown view")

// Service renders views, memoizing them in st by data version and query.
type Service struct {
	st      *store.MemoryStore
	onBuild func(view string)
}

func NewService(st *store.MemoryStore) *Service { return &Service{st: st} }

// OnBuild is called every time a view is actually rebuilt (cache miss).
func (s *Service) OnBuild(f func(view string)) { s.onBuild = f }

// Render builds the named view. An empty version disables caching.
func (s *Service) Render(view string, data models.MarketingData, version string, q Query) (any, error) {
	switch view {
	case Campaigns:
		return memo(s, view, version, q, func() (CampaignView, error) { return BuildCampaigns(data.Campaigns, q) })
	case Devices:
		return memo(s, view, version, q, func() (DeviceView, error) { return BuildDevices(data.Campaigns, q), nil })
	case Regions:
		return memo(s, view, version, q, func() (RegionView, error) { return BuildRegions(data.Campaigns, q) })
	case Weekly:
		return memo(s, view, version, q, func() (WeeklyView, error) { return BuildWeekly(data.Campaigns, q) })
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownView, view)
}

func memo[T any](s *Service, view, version string, q Query, build func() (T, error)) (T, error) {
	st := s.st
	if version == "" {
		st = nil
	}
	return store.Memo(st, store.Key(append([]string{view, version}, q.Key()...)...), func() (T, error) {
		if s.onBuild != nil {
			s.onBuild(view)
		}
		return build()
	})
}
