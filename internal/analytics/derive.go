package analytics

import (
	"errors"

	"github.com/AngelCh415/marketing-dash/internal/models"
)

// ErrEmptyInput is returned when a best-of, peak or average has nothing to work on.
var ErrEmptyInput = errors.New("analytics: empty input")

func Sum[T any](rows []T, field func(T) float64) float64 {
	var total float64
	for _, r := range rows {
		total += field(r)
	}
	return total
}

// ROAS is revenue/spend, or 0 when there is no spend.
func ROAS(revenue, spend float64) float64 {
	if spend <= 0 {
		return 0
	}
	return revenue / spend
}

// SummaryROAS scores a group bucket by its return on ad spend.
func SummaryROAS[K models.GroupKey](s models.GroupSummary[K]) float64 {
	return ROAS(s.Revenue, s.Spend)
}

// BestBy returns the first item with the highest score.
func BestBy[T any](items []T, score func(T) float64) (T, error) {
	var best T
	if len(items) == 0 {
		return best, ErrEmptyInput
	}
	best = items[0]
	bestScore := score(best)
	for _, it := range items[1:] {
		if s := score(it); s > bestScore {
			best, bestScore = it, s
		}
	}
	return best, nil
}

func Average(total float64, count int) (float64, error) {
	if count <= 0 {
		return 0, ErrEmptyInput
	}
	return total / float64(count), nil
}

func Peak(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyInput
	}
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m, nil
}

// TopN returns a copy of the first n items.
func TopN[T any](items []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if n > len(items) {
		n = len(items)
	}
	out := make([]T, n)
	copy(out, items[:n])
	return out
}

type Rating string

const (
	RatingExcellent        Rating = "Excellent"
	RatingGood             Rating = "Good"
	RatingAverage          Rating = "Average"
	RatingNeedsImprovement Rating = "Needs Improvement"
)

// Efficiency buckets an aggregate ROAS for the summary panel.
func Efficiency(roas float64) Rating {
	switch {
	case roas > 10:
		return RatingExcellent
	case roas > 5:
		return RatingGood
	case roas > 2:
		return RatingAverage
	default:
		return RatingNeedsImprovement
	}
}
