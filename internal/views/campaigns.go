package views

import (
	"strings"

	"github.com/AngelCh415/marketing-dash/internal/analytics"
	"github.com/AngelCh415/marketing-dash/internal/format"
	"github.com/AngelCh415/marketing-dash/internal/models"
)

const (
	chartTopN         = 6
	noCampaignsString = "No campaigns match the current filters"
)

const (
	colorRevenue    = "#10B981"
	colorROAS       = "#3B82F6"
	colorConversion = "#F59E0B"
	colorSpend      = "#EF4444"
)

var mediumColors = map[string]string{
	"Instagram":  "#E1306C",
	"Facebook":   "#1877F2",
	"Google Ads": "#4285F4",
}

const colorOtherMedium = "#8B5CF6"

// CampaignRow is one line of the campaign table.
type CampaignRow struct {
	ID             models.CampaignID `json:"id" yaml:"id"`
	Name           string            `json:"name" yaml:"name"`
	Objective      string            `json:"objective" yaml:"objective"`
	Status         models.Status     `json:"status" yaml:"status"`
	Medium         string            `json:"medium" yaml:"medium"`
	Budget         float64           `json:"budget" yaml:"budget"`
	Spend          float64           `json:"spend" yaml:"spend"`
	Revenue        float64           `json:"revenue" yaml:"revenue"`
	Conversions    int64             `json:"conversions" yaml:"conversions"`
	ConversionRate float64           `json:"conversion_rate" yaml:"conversion_rate"`
	ROAS           float64           `json:"roas" yaml:"roas"`
}

type CampaignView struct {
	Query           Query               `json:"query" yaml:"query"`
	Types           []string            `json:"types" yaml:"types"`
	Total           int                 `json:"total" yaml:"total"`
	Shown           int                 `json:"shown" yaml:"shown"`
	Cards           []models.Card       `json:"cards" yaml:"cards"`
	TopRevenue      []models.ChartPoint `json:"top_revenue" yaml:"top_revenue"`
	ROAS            []models.ChartPoint `json:"roas" yaml:"roas"`
	ByMedium        []models.ChartPoint `json:"by_medium" yaml:"by_medium"`
	ConversionRates []models.ChartPoint `json:"conversion_rates" yaml:"conversion_rates"`
	Rows            []CampaignRow       `json:"rows" yaml:"rows"`
	EmptyMessage    string              `json:"empty_message,omitempty" yaml:"empty_message,omitempty"`
}

// BuildCampaigns renders the campaign page for the given filter and sort state.
// Charts use the filtered campaigns in source order; the table uses q.Sort.
func BuildCampaigns(campaigns []models.Campaign, q Query) (CampaignView, error) {
	filtered := analytics.Filter(campaigns, q.Name, q.TypeSet())
	sorted, err := analytics.SortRows(filtered, analytics.CampaignColumns, q.Sort)
	if err != nil {
		return CampaignView{}, err
	}

	limit, offset := clampLimitOffset(q.Limit, q.Offset, len(sorted))
	q.Limit, q.Offset = limit, offset
	page := paginate(sorted, limit, offset)
	rows := make([]CampaignRow, 0, len(page))
	for _, c := range page {
		rows = append(rows, campaignRow(c))
	}

	v := CampaignView{
		Query: q,
		Types: analytics.DistinctObjectives(campaigns),
		Total: len(campaigns),
		Shown: len(filtered),
		Cards: []models.Card{
			{Title: "Filtered Campaigns", Value: format.Count(int64(len(filtered)))},
			{Title: "Total Spend", Value: format.Money(analytics.Sum(filtered, campaignSpend))},
			{Title: "Total Revenue", Value: format.Money(analytics.Sum(filtered, campaignRevenue))},
			{Title: "Total Conversions", Value: format.Count(int64(analytics.Sum(filtered, campaignConversions)))},
		},
		Rows: rows,
	}

	top := analytics.TopN(filtered, chartTopN)
	v.TopRevenue = campaignChart(top, campaignRevenue, colorRevenue)
	v.ROAS = campaignChart(top, func(c models.Campaign) float64 { return c.ROAS }, colorROAS)
	v.ConversionRates = campaignChart(top, func(c models.Campaign) float64 { return c.ConversionRate }, colorConversion)

	v.ByMedium = []models.ChartPoint{}
	for _, m := range analytics.ByMedium(filtered).Summaries() {
		v.ByMedium = append(v.ByMedium, models.ChartPoint{
			Label: string(m.Key),
			Value: m.Revenue,
			Color: MediumColor(string(m.Key)),
		})
	}

	if len(filtered) == 0 {
		v.EmptyMessage = noCampaignsString
	}
	return v, nil
}

func MediumColor(medium string) string {
	if c, ok := mediumColors[medium]; ok {
		return c
	}
	return colorOtherMedium
}

// ShortName is the part of a campaign name before " - ".
func ShortName(name string) string {
	short, _, _ := strings.Cut(name, " - ")
	return short
}

func campaignChart(cs []models.Campaign, value func(models.Campaign) float64, color string) []models.ChartPoint {
	out := make([]models.ChartPoint, 0, len(cs))
	for _, c := range cs {
		out = append(out, models.ChartPoint{Label: ShortName(c.Name), Value: value(c), Color: color})
	}
	return out
}

func campaignRow(c models.Campaign) CampaignRow {
	return CampaignRow{
		ID:             c.ID,
		Name:           c.Name,
		Objective:      c.Objective,
		Status:         c.Status,
		Medium:         c.Medium,
		Budget:         c.Budget,
		Spend:          c.Spend,
		Revenue:        c.Revenue,
		Conversions:    c.Conversions,
		ConversionRate: c.ConversionRate,
		ROAS:           c.ROAS,
	}
}

func campaignSpend(c models.Campaign) float64       { return c.Spend }
func campaignRevenue(c models.Campaign) float64     { return c.Revenue }
func campaignConversions(c models.Campaign) float64 { return float64(c.Conversions) }
