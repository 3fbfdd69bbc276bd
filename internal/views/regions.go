package views

import (
	"strconv"

	"github.com/AngelCh415/marketing-dash/internal/analytics"
	"github.com/AngelCh415/marketing-dash/internal/format"
	"github.com/AngelCh415/marketing-dash/internal/models"
)

const (
	leadersTopN     = 3
	noRegionsString = "No regional performance data found for the loaded campaigns."
)

// RegionPoint feeds the bubble map; Value is whichever measure the map shows.
type RegionPoint struct {
	Region  string  `json:"region" yaml:"region"`
	Country string  `json:"country" yaml:"country"`
	Value   float64 `json:"value" yaml:"value"`
	Revenue float64 `json:"revenue" yaml:"revenue"`
	Spend   float64 `json:"spend" yaml:"spend"`
}

type Leader struct {
	Rank    int     `json:"rank" yaml:"rank"`
	Region  string  `json:"region" yaml:"region"`
	Value   float64 `json:"value" yaml:"value"`
	Display string  `json:"display" yaml:"display"`
}

type RegionSummary struct {
	TotalRevenue     float64 `json:"total_revenue" yaml:"total_revenue"`
	TotalSpend       float64 `json:"total_spend" yaml:"total_spend"`
	AverageROAS      float64 `json:"average_roas" yaml:"average_roas"`
	RegionCount      int     `json:"region_count" yaml:"region_count"`
	TopRegion        string  `json:"top_region" yaml:"top_region"`
	TopRegionRevenue float64 `json:"top_region_revenue" yaml:"top_region_revenue"`
}

type RegionView struct {
	Regions        []models.GroupSummary[models.RegionKey] `json:"regions" yaml:"regions"`
	Summary        *RegionSummary                          `json:"summary" yaml:"summary"`
	Cards          []models.Card                           `json:"cards" yaml:"cards"`
	RevenueBubbles []RegionPoint                           `json:"revenue_bubbles" yaml:"revenue_bubbles"`
	SpendBubbles   []RegionPoint                           `json:"spend_bubbles" yaml:"spend_bubbles"`
	TopByRevenue   []models.ChartPoint                     `json:"top_by_revenue" yaml:"top_by_revenue"`
	TopBySpend     []models.ChartPoint                     `json:"top_by_spend" yaml:"top_by_spend"`
	RevenueLeaders []Leader                                `json:"revenue_leaders" yaml:"revenue_leaders"`
	SpendLeaders   []Leader                                `json:"spend_leaders" yaml:"spend_leaders"`
	EmptyMessage   string                                  `json:"empty_message,omitempty" yaml:"empty_message,omitempty"`
}

func BuildRegions(campaigns []models.Campaign, q Query) (RegionView, error) {
	filtered := analytics.Filter(campaigns, q.Name, q.TypeSet())
	regions := analytics.ByRegion(filtered).Summaries()

	v := RegionView{
		Regions:        regions,
		Cards:          []models.Card{},
		RevenueBubbles: make([]RegionPoint, 0, len(regions)),
		SpendBubbles:   make([]RegionPoint, 0, len(regions)),
	}
	for _, r := range regions {
		p := RegionPoint{Region: string(r.Key), Country: r.Country, Revenue: r.Revenue, Spend: r.Spend}
		p.Value = r.Revenue
		v.RevenueBubbles = append(v.RevenueBubbles, p)
		p.Value = r.Spend
		v.SpendBubbles = append(v.SpendBubbles, p)
	}

	cols := analytics.SummaryColumns[models.RegionKey]()
	byRevenue, err := analytics.SortRows(regions, cols, analytics.SortSpec{Key: "revenue", Direction: analytics.Desc})
	if err != nil {
		return RegionView{}, err
	}
	bySpend, err := analytics.SortRows(regions, cols, analytics.SortSpec{Key: "spend", Direction: analytics.Desc})
	if err != nil {
		return RegionView{}, err
	}
	v.TopByRevenue = regionChart(analytics.TopN(byRevenue, chartTopN), summaryRevenue[models.RegionKey], colorRevenue)
	v.TopBySpend = regionChart(analytics.TopN(bySpend, chartTopN), summarySpend[models.RegionKey], colorSpend)
	v.RevenueLeaders = leaders(analytics.TopN(byRevenue, leadersTopN), summaryRevenue[models.RegionKey])
	v.SpendLeaders = leaders(analytics.TopN(bySpend, leadersTopN), summarySpend[models.RegionKey])

	top, err := analytics.BestBy(regions, summaryRevenue[models.RegionKey])
	if err != nil {
		v.EmptyMessage = noRegionsString
		return v, nil
	}
	s := &RegionSummary{
		TotalRevenue:     analytics.Sum(regions, summaryRevenue[models.RegionKey]),
		TotalSpend:       analytics.Sum(regions, summarySpend[models.RegionKey]),
		RegionCount:      len(regions),
		TopRegion:        string(top.Key),
		TopRegionRevenue: top.Revenue,
	}
	s.AverageROAS = analytics.ROAS(s.TotalRevenue, s.TotalSpend)
	v.Summary = s
	v.Cards = []models.Card{
		{Title: "Total Regions", Value: strconv.Itoa(s.RegionCount)},
		{Title: "Total Revenue", Value: format.Money(s.TotalRevenue)},
		{Title: "Total Spend", Value: format.Money(s.TotalSpend)},
		{Title: "Top Region", Value: s.TopRegion},
	}
	return v, nil
}

func regionChart(rs []models.GroupSummary[models.RegionKey], value func(models.GroupSummary[models.RegionKey]) float64, color string) []models.ChartPoint {
	out := make([]models.ChartPoint, 0, len(rs))
	for _, r := range rs {
		out = append(out, models.ChartPoint{Label: string(r.Key), Value: value(r), Color: color})
	}
	return out
}

func leaders(rs []models.GroupSummary[models.RegionKey], value func(models.GroupSummary[models.RegionKey]) float64) []Leader {
	out := make([]Leader, 0, len(rs))
	for i, r := range rs {
		out = append(out, Leader{Rank: i + 1, Region: string(r.Key), Value: value(r), Display: format.Money(value(r))})
	}
	return out
}
