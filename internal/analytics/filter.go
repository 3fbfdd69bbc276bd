// Package analytics holds the pure transforms between raw campaign data and
// dashboard view-models: filtering, grouping, metric derivation and sorting.
// Nothing here mutates its input.
package analytics

import (
	"strings"

	"github.com/AngelCh415/marketing-dash/internal/models"
)

// TypeSet is a multi-select of campaign objectives. Empty means no filter.
type TypeSet map[string]struct{}

func NewTypeSet(values ...string) TypeSet {
	out := TypeSet{}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out[v] = struct{}{}
		}
	}
	return out
}

func (t TypeSet) Has(v string) bool {
	_, ok := t[v]
	return ok
}

// Filter keeps campaigns whose name contains nameQuery (case-insensitive)
// and whose objective is in types. Relative order is preserved.
func Filter(campaigns []models.Campaign, nameQuery string, types TypeSet) []models.Campaign {
	q := strings.ToLower(nameQuery)
	out := make([]models.Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		if q != "" && !strings.Contains(strings.ToLower(c.Name), q) {
			continue
		}
		if len(types) > 0 && !types.Has(c.Objective) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// DistinctObjectives returns each objective once, in first-seen order.
func DistinctObjectives(campaigns []models.Campaign) []string {
	seen := make(map[string]struct{}, len(campaigns))
	out := []string{}
	for _, c := range campaigns {
		if _, ok := seen[c.Objective]; ok {
			continue
		}
		seen[c.Objective] = struct{}{}
		out = append(out, c.Objective)
	}
	return out
}
