package views

import (
	"errors"
	"strconv"

	"github.com/AngelCh415/marketing-dash/internal/analytics"
	"github.com/AngelCh415/marketing-dash/internal/format"
	"github.com/AngelCh415/marketing-dash/internal/models"
)

const noWeeksString = "No weekly performance data found for the loaded campaigns."

type WeeklySummary struct {
	TotalRevenue         float64          `json:"total_revenue" yaml:"total_revenue"`
	TotalSpend           float64          `json:"total_spend" yaml:"total_spend"`
	AverageROAS          float64          `json:"average_roas" yaml:"average_roas"`
	WeekCount            int              `json:"week_count" yaml:"week_count"`
	AverageWeeklyRevenue float64          `json:"average_weekly_revenue" yaml:"average_weekly_revenue"`
	AverageWeeklySpend   float64          `json:"average_weekly_spend" yaml:"average_weekly_spend"`
	RevenuePeak          float64          `json:"revenue_peak" yaml:"revenue_peak"`
	SpendPeak            float64          `json:"spend_peak" yaml:"spend_peak"`
	Efficiency           analytics.Rating `json:"efficiency" yaml:"efficiency"`
}

// WeeklyView holds the time series in chronological order.
type WeeklyView struct {
	Weeks        []models.GroupSummary[models.WeekKey] `json:"weeks" yaml:"weeks"`
	Revenue      []models.ChartPoint                   `json:"revenue" yaml:"revenue"`
	Spend        []models.ChartPoint                   `json:"spend" yaml:"spend"`
	Summary      *WeeklySummary                        `json:"summary" yaml:"summary"`
	Cards        []models.Card                         `json:"cards" yaml:"cards"`
	EmptyMessage string                                `json:"empty_message,omitempty" yaml:"empty_message,omitempty"`
}

func BuildWeekly(campaigns []models.Campaign, q Query) (WeeklyView, error) {
	filtered := analytics.Filter(campaigns, q.Name, q.TypeSet())
	weeks := analytics.SortedWeeks(analytics.ByWeek(filtered))

	v := WeeklyView{
		Weeks:   weeks,
		Revenue: make([]models.ChartPoint, 0, len(weeks)),
		Spend:   make([]models.ChartPoint, 0, len(weeks)),
		Cards:   []models.Card{},
	}
	revenues := make([]float64, 0, len(weeks))
	spends := make([]float64, 0, len(weeks))
	for _, w := range weeks {
		label := format.WeekLabel(string(w.Key))
		v.Revenue = append(v.Revenue, models.ChartPoint{Label: label, Value: w.Revenue, Color: colorRevenue})
		v.Spend = append(v.Spend, models.ChartPoint{Label: label, Value: w.Spend, Color: colorSpend})
		revenues = append(revenues, w.Revenue)
		spends = append(spends, w.Spend)
	}

	revPeak, err := analytics.Peak(revenues)
	if errors.Is(err, analytics.ErrEmptyInput) {
		v.EmptyMessage = noWeeksString
		return v, nil
	}
	spendPeak, err := analytics.Peak(spends)
	if err != nil {
		return WeeklyView{}, err
	}

	s := &WeeklySummary{
		TotalRevenue: analytics.Sum(weeks, summaryRevenue[models.WeekKey]),
		TotalSpend:   analytics.Sum(weeks, summarySpend[models.WeekKey]),
		WeekCount:    len(weeks),
		RevenuePeak:  revPeak,
		SpendPeak:    spendPeak,
	}
	s.AverageROAS = analytics.ROAS(s.TotalRevenue, s.TotalSpend)
	s.Efficiency = analytics.Efficiency(s.AverageROAS)
	if s.AverageWeeklyRevenue, err = analytics.Average(s.TotalRevenue, s.WeekCount); err != nil {
		return WeeklyView{}, err
	}
	if s.AverageWeeklySpend, err = analytics.Average(s.TotalSpend, s.WeekCount); err != nil {
		return WeeklyView{}, err
	}
	v.Summary = s
	v.Cards = []models.Card{
		{Title: "Total Revenue", Value: format.Money(s.TotalRevenue)},
		{Title: "Total Spend", Value: format.Money(s.TotalSpend)},
		{Title: "Average ROAS", Value: format.Multiple(s.AverageROAS)},
		{Title: "Weeks Tracked", Value: strconv.Itoa(s.WeekCount)},
		{Title: "Average Weekly Revenue", Value: format.Money(s.AverageWeeklyRevenue)},
		{Title: "Average Weekly Spend", Value: format.Money(s.AverageWeeklySpend)},
		{Title: "Revenue Peak", Value: format.Money(s.RevenuePeak)},
		{Title: "Spend Peak", Value: format.Money(s.SpendPeak)},
		{Title: "Efficiency", Value: string(s.Efficiency)},
	}
	return v, nil
}
