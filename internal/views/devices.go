package views

import (
	"strings"

	"github.com/AngelCh415/marketing-dash/internal/analytics"
	"github.com/AngelCh415/marketing-dash/internal/format"
	"github.com/AngelCh415/marketing-dash/internal/models"
)

const noDevicesString = "No device performance data found for the loaded campaigns."

type DeviceSummary struct {
	TotalRevenue     float64 `json:"total_revenue" yaml:"total_revenue"`
	TotalSpend       float64 `json:"total_spend" yaml:"total_spend"`
	TotalImpressions int64   `json:"total_impressions" yaml:"total_impressions"`
	AverageROAS      float64 `json:"average_roas" yaml:"average_roas"`
	BestDevice       string  `json:"best_device" yaml:"best_device"`
}

type DeviceRow struct {
	Device  string  `json:"device" yaml:"device"`
	Revenue float64 `json:"revenue" yaml:"revenue"`
	ROAS    float64 `json:"roas" yaml:"roas"`
}

// DeviceView is nil-summary when no campaign carries device rows.
type DeviceView struct {
	Devices      []models.GroupSummary[models.DeviceKey] `json:"devices" yaml:"devices"`
	Summary      *DeviceSummary                          `json:"summary" yaml:"summary"`
	Cards        []models.Card                           `json:"cards" yaml:"cards"`
	Revenue      []models.ChartPoint                     `json:"revenue" yaml:"revenue"`
	Spend        []models.ChartPoint                     `json:"spend" yaml:"spend"`
	Breakdown    []DeviceRow                             `json:"breakdown" yaml:"breakdown"`
	EmptyMessage string                                  `json:"empty_message,omitempty" yaml:"empty_message,omitempty"`
}

func isMobile(device string) bool { return strings.Contains(device, "Mobile") }

func BuildDevices(campaigns []models.Campaign, q Query) DeviceView {
	filtered := analytics.Filter(campaigns, q.Name, q.TypeSet())
	devices := analytics.ByDevice(filtered).Summaries()

	v := DeviceView{
		Devices:   devices,
		Cards:     []models.Card{},
		Revenue:   make([]models.ChartPoint, 0, len(devices)),
		Spend:     make([]models.ChartPoint, 0, len(devices)),
		Breakdown: make([]DeviceRow, 0, len(devices)),
	}
	for _, d := range devices {
		revColor, spendColor := "#10B981", "#EF4444"
		if isMobile(string(d.Key)) {
			revColor, spendColor = "#3B82F6", "#F59E0B"
		}
		v.Revenue = append(v.Revenue, models.ChartPoint{Label: string(d.Key), Value: d.Revenue, Color: revColor})
		v.Spend = append(v.Spend, models.ChartPoint{Label: string(d.Key), Value: d.Spend, Color: spendColor})
		v.Breakdown = append(v.Breakdown, DeviceRow{Device: string(d.Key), Revenue: d.Revenue, ROAS: analytics.SummaryROAS(d)})
	}

	best, err := analytics.BestBy(devices, analytics.SummaryROAS[models.DeviceKey])
	if err != nil {
		v.EmptyMessage = noDevicesString
		return v
	}
	s := &DeviceSummary{
		TotalRevenue: analytics.Sum(devices, summaryRevenue[models.DeviceKey]),
		TotalSpend:   analytics.Sum(devices, summarySpend[models.DeviceKey]),
		BestDevice:   string(best.Key),
	}
	for _, d := range devices {
		s.TotalImpressions += d.Impressions
	}
	s.AverageROAS = analytics.ROAS(s.TotalRevenue, s.TotalSpend)
	v.Summary = s
	v.Cards = []models.Card{
		{Title: "Total Revenue", Value: format.Money(s.TotalRevenue)},
		{Title: "Total Impressions", Value: format.Count(s.TotalImpressions)},
		{Title: "Avg. ROAS", Value: format.Ratio(s.AverageROAS)},
		{Title: "Best Performing Device", Value: s.BestDevice},
	}
	return v
}

func summaryRevenue[K models.GroupKey](s models.GroupSummary[K]) float64 { return s.Revenue }
func summarySpend[K models.GroupKey](s models.GroupSummary[K]) float64   { return s.Spend }
