package ingest

import (
	"strings"

	"github.com/AngelCh415/marketing-dash/internal/models"
)

// Normalize cleans a fetched bundle: trims text, clamps negative amounts to
// zero, defaults blank objective/medium and drops repeated campaign IDs
// (first one wins). Nested collections are copied, never shared.
func Normalize(in models.MarketingData) models.MarketingData {
	seen := make(map[models.CampaignID]struct{}, len(in.Campaigns))
	out := models.MarketingData{Campaigns: make([]models.Campaign, 0, len(in.Campaigns))}
	for _, c := range in.Campaigns {
		c.ID = models.CampaignID(strings.TrimSpace(string(c.ID)))
		if c.ID != "" {
			if _, dup := seen[c.ID]; dup {
				continue
			}
			seen[c.ID] = struct{}{}
		}
		c.Name = strings.TrimSpace(c.Name)
		c.Objective = coalesce(c.Objective, "Unknown")
		c.Medium = coalesce(c.Medium, "Unknown")
		c.Status = models.Status(strings.TrimSpace(string(c.Status)))
		c.Budget = maxf(c.Budget)
		c.Spend = maxf(c.Spend)
		c.Revenue = maxf(c.Revenue)
		c.Conversions = max0(c.Conversions)
		c.ConversionRate = maxf(c.ConversionRate)
		c.ROAS = maxf(c.ROAS)

		if c.DevicePerformance != nil {
			rows := make([]models.DevicePerf, len(c.DevicePerformance))
			for i, r := range c.DevicePerformance {
				rows[i] = models.DevicePerf{
					Device:      strings.TrimSpace(r.Device),
					Revenue:     maxf(r.Revenue),
					Spend:       maxf(r.Spend),
					Impressions: max0(r.Impressions),
				}
			}
			c.DevicePerformance = rows
		}
		if c.RegionalPerformance != nil {
			rows := make([]models.RegionPerf, len(c.RegionalPerformance))
			for i, r := range c.RegionalPerformance {
				rows[i] = models.RegionPerf{
					Region:  strings.TrimSpace(r.Region),
					Country: strings.TrimSpace(r.Country),
					Revenue: maxf(r.Revenue),
					Spend:   maxf(r.Spend),
				}
			}
			c.RegionalPerformance = rows
		}
		if c.WeeklyPerformance != nil {
			rows := make([]models.WeekPerf, len(c.WeeklyPerformance))
			for i, r := range c.WeeklyPerformance {
				rows[i] = models.WeekPerf{
					WeekStart: strings.TrimSpace(r.WeekStart),
					Revenue:   maxf(r.Revenue),
					Spend:     maxf(r.Spend),
				}
			}
			c.WeeklyPerformance = rows
		}
		out.Campaigns = append(out.Campaigns, c)
	}
	return out
}

func coalesce(s, def string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	return s
}
func max0(i int64) int64 {
	if i < 0 {
		return 0
	}
	return i
}
func maxf(f float64) float64 {
	if f < 0 {
		return 0
	}
	return f
}
