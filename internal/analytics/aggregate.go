package analytics

import (
	"slices"
	"strings"

	"github.com/AngelCh415/marketing-dash/internal/models"
)

// Groups is the result of a grouping pass: one summary per distinct key,
// kept in first-seen order.
type Groups[K models.GroupKey] struct {
	order []K
	byKey map[K]*models.GroupSummary[K]
}

func (g Groups[K]) Len() int { return len(g.order) }

func (g Groups[K]) Get(key K) (models.GroupSummary[K], bool) {
	s, ok := g.byKey[key]
	if !ok {
		return models.GroupSummary[K]{}, false
	}
	return *s, true
}

// Summaries returns copies of the buckets in first-seen order.
func (g Groups[K]) Summaries() []models.GroupSummary[K] {
	out := make([]models.GroupSummary[K], 0, len(g.order))
	for _, k := range g.order {
		out = append(out, *g.byKey[k])
	}
	return out
}

// GroupBy walks the nested rows of every campaign and folds them into one
// bucket per key. A nil nested collection contributes nothing. fold is called
// with created set for the first row of each key.
func GroupBy[R any, K models.GroupKey](
	campaigns []models.Campaign,
	extract func(models.Campaign) []R,
	keyOf func(R) K,
	fold func(sum *models.GroupSummary[K], row R, created bool),
) Groups[K] {
	g := Groups[K]{byKey: make(map[K]*models.GroupSummary[K])}
	for _, c := range campaigns {
		for _, row := range extract(c) {
			k := keyOf(row)
			sum, ok := g.byKey[k]
			if !ok {
				sum = &models.GroupSummary[K]{Key: k}
				g.byKey[k] = sum
				g.order = append(g.order, k)
			}
			fold(sum, row, !ok)
		}
	}
	return g
}

func ByDevice(campaigns []models.Campaign) Groups[models.DeviceKey] {
	return GroupBy(campaigns,
		func(c models.Campaign) []models.DevicePerf { return c.DevicePerformance },
		func(r models.DevicePerf) models.DeviceKey { return models.DeviceKey(r.Device) },
		func(s *models.GroupSummary[models.DeviceKey], r models.DevicePerf, _ bool) {
			s.Revenue += r.Revenue
			s.Spend += r.Spend
			s.Impressions += r.Impressions
		})
}

// ByRegion tags each region with the country of the first row seen for it.
func ByRegion(campaigns []models.Campaign) Groups[models.RegionKey] {
	return GroupBy(campaigns,
		func(c models.Campaign) []models.RegionPerf { return c.RegionalPerformance },
		func(r models.RegionPerf) models.RegionKey { return models.RegionKey(r.Region) },
		func(s *models.GroupSummary[models.RegionKey], r models.RegionPerf, created bool) {
			if created {
				s.Country = r.Country
			}
			s.Revenue += r.Revenue
			s.Spend += r.Spend
		})
}

func ByWeek(campaigns []models.Campaign) Groups[models.WeekKey] {
	return GroupBy(campaigns,
		func(c models.Campaign) []models.WeekPerf { return c.WeeklyPerformance },
		func(r models.WeekPerf) models.WeekKey { return models.WeekKey(r.WeekStart) },
		func(s *models.GroupSummary[models.WeekKey], r models.WeekPerf, _ bool) {
			s.Revenue += r.Revenue
			s.Spend += r.Spend
		})
}

// ByMedium groups whole campaigns by advertising channel.
func ByMedium(campaigns []models.Campaign) Groups[models.MediumKey] {
	return GroupBy(campaigns,
		func(c models.Campaign) []models.Campaign { return []models.Campaign{c} },
		func(c models.Campaign) models.MediumKey { return models.MediumKey(c.Medium) },
		func(s *models.GroupSummary[models.MediumKey], c models.Campaign, _ bool) {
			s.Revenue += c.Revenue
			s.Spend += c.Spend
			s.Conversions += c.Conversions
		})
}

// SortedWeeks orders week buckets chronologically. ISO dates sort lexically.
func SortedWeeks(g Groups[models.WeekKey]) []models.GroupSummary[models.WeekKey] {
	out := g.Summaries()
	slices.SortStableFunc(out, func(a, b models.GroupSummary[models.WeekKey]) int {
		return strings.Compare(string(a.Key), string(b.Key))
	})
	return out
}
