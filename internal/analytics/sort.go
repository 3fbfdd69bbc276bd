package analytics

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/AngelCh415/marketing-dash/internal/models"
)

var (
	ErrUnknownColumn = errors.New("analytics: unknown sort column")
	ErrBadDirection  = errors.New("analytics: sort direction must be asc or desc")
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

type SortType string

const (
	SortString SortType = "string"
	SortNumber SortType = "number"
)

type SortSpec struct {
	Key       string    `json:"key" yaml:"key"`
	Direction Direction `json:"direction" yaml:"direction"`
}

// Column describes how to read one sortable field off a row.
type Column[T any] struct {
	Key      string
	Type     SortType
	Text     func(T) string
	Number   func(T) float64
	FoldCase bool
}

type Columns[T any] map[string]Column[T]

func (c Column[T]) compare(a, b T) int {
	if c.Type == SortNumber {
		return cmp.Compare(c.Number(a), c.Number(b))
	}
	x, y := c.Text(a), c.Text(b)
	if c.FoldCase {
		x, y = strings.ToLower(x), strings.ToLower(y)
	}
	return strings.Compare(x, y)
}

// SortRows returns a stably sorted copy of rows.
func SortRows[T any](rows []T, cols Columns[T], spec SortSpec) ([]T, error) {
	col, ok := cols[spec.Key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, spec.Key)
	}
	var sign int
	switch spec.Direction {
	case Asc:
		sign = 1
	case Desc:
		sign = -1
	default:
		return nil, fmt.Errorf("%w: %q", ErrBadDirection, spec.Direction)
	}
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b T) int { return sign * col.compare(a, b) })
	return out, nil
}

func textCol[T any](key string, f func(T) string) Column[T] {
	return Column[T]{Key: key, Type: SortString, Text: f}
}

func numCol[T any](key string, f func(T) float64) Column[T] {
	return Column[T]{Key: key, Type: SortNumber, Number: f}
}

func columns[T any](cols ...Column[T]) Columns[T] {
	out := make(Columns[T], len(cols))
	for _, c := range cols {
		out[c.Key] = c
	}
	return out
}

var DefaultCampaignSort = SortSpec{Key: "revenue", Direction: Desc}

var CampaignColumns = columns(
	textCol("name", func(c models.Campaign) string { return c.Name }),
	textCol("objective", func(c models.Campaign) string { return c.Objective }),
	textCol("status", func(c models.Campaign) string { return string(c.Status) }),
	textCol("medium", func(c models.Campaign) string { return c.Medium }),
	numCol("budget", func(c models.Campaign) float64 { return c.Budget }),
	numCol("spend", func(c models.Campaign) float64 { return c.Spend }),
	numCol("revenue", func(c models.Campaign) float64 { return c.Revenue }),
	numCol("conversions", func(c models.Campaign) float64 { return float64(c.Conversions) }),
	numCol("conversion_rate", func(c models.Campaign) float64 { return c.ConversionRate }),
	numCol("roas", func(c models.Campaign) float64 { return c.ROAS }),
)

// SummaryColumns sorts group buckets of any dimension.
func SummaryColumns[K models.GroupKey]() Columns[models.GroupSummary[K]] {
	return columns(
		textCol("key", func(s models.GroupSummary[K]) string { return string(s.Key) }),
		textCol("country", func(s models.GroupSummary[K]) string { return s.Country }),
		numCol("revenue", func(s models.GroupSummary[K]) float64 { return s.Revenue }),
		numCol("spend", func(s models.GroupSummary[K]) float64 { return s.Spend }),
		numCol("impressions", func(s models.GroupSummary[K]) float64 { return float64(s.Impressions) }),
		numCol("conversions", func(s models.GroupSummary[K]) float64 { return float64(s.Conversions) }),
		numCol("roas", SummaryROAS[K]),
	)
}
