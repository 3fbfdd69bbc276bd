package views

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/AngelCh415/marketing-dash/internal/analytics"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Query is the filter and sort state of a view.
type Query struct {
	Name   string             `json:"name" yaml:"name"`
	Types  []string           `json:"types" yaml:"types"`
	Sort   analytics.SortSpec `json:"sort" yaml:"sort"`
	Limit  int                `json:"limit" yaml:"limit"`
	Offset int                `json:"offset" yaml:"offset"`
}

func DefaultQuery() Query {
	return Query{Types: []string{}, Sort: analytics.DefaultCampaignSort, Limit: DefaultLimit}
}

// ParseQuery reads name, type (comma separated or repeated), sort, dir,
// limit and offset. Unknown sort columns and directions are errors.
func ParseQuery(v url.Values) (Query, error) {
	q := DefaultQuery()
	q.Name = strings.TrimSpace(v.Get("name"))
	q.Types = csvList(strings.Join(v["type"], ","))
	if k := v.Get("sort"); k != "" {
		q.Sort.Key = k
	}
	if d := v.Get("dir"); d != "" {
		q.Sort.Direction = analytics.Direction(strings.ToLower(d))
	}
	if err := q.Validate(); err != nil {
		return q, err
	}
	q.Limit = atoiDef(v.Get("limit"), DefaultLimit)
	q.Offset = atoiDef(v.Get("offset"), 0)
	return q, nil
}

func (q Query) Validate() error {
	if _, ok := analytics.CampaignColumns[q.Sort.Key]; !ok {
		return fmt.Errorf("%w: %q", analytics.ErrUnknownColumn, q.Sort.Key)
	}
	if q.Sort.Direction != analytics.Asc && q.Sort.Direction != analytics.Desc {
		return fmt.Errorf("%w: %q", analytics.ErrBadDirection, q.Sort.Direction)
	}
	return nil
}

func (q Query) TypeSet() analytics.TypeSet { return analytics.NewTypeSet(q.Types...) }

// Key lists the cache key parts for q, one per field and one per type.
// Type order does not matter.
func (q Query) Key() []string {
	types := slices.Clone(q.Types)
	slices.Sort(types)
	parts := make([]string, 0, len(types)+6)
	parts = append(parts, q.Name, strconv.Itoa(len(types)))
	parts = append(parts, types...)
	return append(parts,
		q.Sort.Key,
		string(q.Sort.Direction),
		strconv.Itoa(q.Limit),
		strconv.Itoa(q.Offset),
	)
}

func csvList(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" && !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out
}

func paginate[T any](rows []T, limit, offset int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

func atoiDef(s string, d int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return v
}

func clampLimitOffset(limit, offset, n int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = n
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset > n {
		offset = n
	}
	return limit, offset
}
