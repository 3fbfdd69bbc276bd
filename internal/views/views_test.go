package views

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/marketing-dash/internal/analytics"
	"github.com/AngelCh415/marketing-dash/internal/models"
	"github.com/AngelCh415/marketing-dash/internal/store"
)

func fixture() []models.Campaign {
	return []models.Campaign{
		{
			ID: "1", Name: "Summer Sale - US", Objective: "Awareness", Status: models.StatusActive, Medium: "Instagram",
			Revenue: 100, Spend: 50, Conversions: 4, ConversionRate: 1.5, ROAS: 2.0,
			DevicePerformance: []models.DevicePerf{
				{Device: "Mobile", Revenue: 50, Spend: 10, Impressions: 1000},
				{Device: "Desktop", Revenue: 20, Spend: 4, Impressions: 200},
			},
			RegionalPerformance: []models.RegionPerf{
				{Region: "North", Country: "US", Revenue: 60, Spend: 30},
				{Region: "South", Country: "US", Revenue: 40, Spend: 20},
			},
			WeeklyPerformance: []models.WeekPerf{
				{WeekStart: "2024-01-08", Revenue: 70, Spend: 20},
				{WeekStart: "2024-01-01", Revenue: 30, Spend: 30},
			},
		},
		{
			ID: "2", Name: "Winter Sale", Objective: "Conversion", Status: models.StatusPaused, Medium: "Google Ads",
			Revenue: 300, Spend: 100, Conversions: 9, ConversionRate: 3.25, ROAS: 3.0,
			DevicePerformance: []models.DevicePerf{
				{Device: "Mobile", Revenue: 30, Spend: 5, Impressions: 500},
			},
			RegionalPerformance: []models.RegionPerf{
				{Region: "West", Country: "CA", Revenue: 300, Spend: 100},
			},
		},
	}
}

func TestBuildCampaignsDefault(t *testing.T) {
	v, err := BuildCampaigns(fixture(), DefaultQuery())
	require.NoError(t, err)

	assert.Equal(t, 2, v.Total)
	assert.Equal(t, 2, v.Shown)
	assert.Equal(t, []string{"Awareness", "Conversion"}, v.Types)
	require.Len(t, v.Rows, 2)
	assert.Equal(t, "Winter Sale", v.Rows[0].Name)

	wantCards := []models.Card{
		{Title: "Filtered Campaigns", Value: "2"},
		{Title: "Total Spend", Value: "$150"},
		{Title: "Total Revenue", Value: "$400"},
		{Title: "Total Conversions", Value: "13"},
	}
	if diff := cmp.Diff(wantCards, v.Cards); diff != "" {
		t.Errorf("cards mismatch (-want +got):\n%s", diff)
	}

	// charts keep source order and short names
	wantTop := []models.ChartPoint{
		{Label: "Summer Sale", Value: 100, Color: "#10B981"},
		{Label: "Winter Sale", Value: 300, Color: "#10B981"},
	}
	if diff := cmp.Diff(wantTop, v.TopRevenue); diff != "" {
		t.Errorf("top revenue mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2.0, v.ROAS[0].Value)
	assert.Equal(t, 3.0, v.ROAS[1].Value)
	assert.Equal(t, 3.25, v.ConversionRates[1].Value)

	wantMedium := []models.ChartPoint{
		{Label: "Instagram", Value: 100, Color: "#E1306C"},
		{Label: "Google Ads", Value: 300, Color: "#4285F4"},
	}
	if diff := cmp.Diff(wantMedium, v.ByMedium); diff != "" {
		t.Errorf("by medium mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, v.EmptyMessage)
}

func TestBuildCampaignsFiltered(t *testing.T) {
	q := DefaultQuery()
	q.Name = "summer"
	v, err := BuildCampaigns(fixture(), q)
	require.NoError(t, err)
	assert.Equal(t, 1, v.Shown)
	assert.Equal(t, 2, v.Total)
	require.Len(t, v.Rows, 1)
	assert.Equal(t, "Summer Sale - US", v.Rows[0].Name)

	q = DefaultQuery()
	q.Types = []string{"Retention"}
	v, err = BuildCampaigns(fixture(), q)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Shown)
	assert.Empty(t, v.Rows)
	assert.Equal(t, "No campaigns match the current filters", v.EmptyMessage)
	assert.Equal(t, "$0", v.Cards[1].Value)
}

func TestBuildCampaignsPaginates(t *testing.T) {
	q := DefaultQuery()
	q.Sort = analytics.SortSpec{Key: "name", Direction: analytics.Asc}
	q.Limit, q.Offset = 1, 1
	v, err := BuildCampaigns(fixture(), q)
	require.NoError(t, err)
	require.Len(t, v.Rows, 1)
	assert.Equal(t, "Winter Sale", v.Rows[0].Name)

	q.Offset = 5
	v, err = BuildCampaigns(fixture(), q)
	require.NoError(t, err)
	assert.Empty(t, v.Rows)
}

func TestBuildDevices(t *testing.T) {
	v := BuildDevices(fixture(), DefaultQuery())
	require.NotNil(t, v.Summary)
	assert.Equal(t, "Mobile", v.Summary.BestDevice)
	assert.Equal(t, 100.0, v.Summary.TotalRevenue)
	assert.Equal(t, 19.0, v.Summary.TotalSpend)
	assert.Equal(t, int64(1700), v.Summary.TotalImpressions)
	assert.InDelta(t, 100.0/19.0, v.Summary.AverageROAS, 1e-9)

	wantRevenue := []models.ChartPoint{
		{Label: "Mobile", Value: 80, Color: "#3B82F6"},
		{Label: "Desktop", Value: 20, Color: "#10B981"},
	}
	if diff := cmp.Diff(wantRevenue, v.Revenue); diff != "" {
		t.Errorf("revenue mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "#F59E0B", v.Spend[0].Color)
	assert.Equal(t, "#EF4444", v.Spend[1].Color)
	assert.InDelta(t, 80.0/15.0, v.Breakdown[0].ROAS, 1e-9)
	assert.Equal(t, "Best Performing Device", v.Cards[3].Title)
	assert.Equal(t, "1,700", v.Cards[1].Value)
}

func TestBuildDevicesEmpty(t *testing.T) {
	v := BuildDevices([]models.Campaign{{Name: "bare"}}, DefaultQuery())
	assert.Nil(t, v.Summary)
	assert.Empty(t, v.Devices)
	assert.NotEmpty(t, v.EmptyMessage)
}

func TestBuildRegions(t *testing.T) {
	v, err := BuildRegions(fixture(), DefaultQuery())
	require.NoError(t, err)
	require.NotNil(t, v.Summary)
	assert.Equal(t, 3, v.Summary.RegionCount)
	assert.Equal(t, "West", v.Summary.TopRegion)
	assert.Equal(t, 300.0, v.Summary.TopRegionRevenue)
	assert.Equal(t, 400.0, v.Summary.TotalRevenue)
	assert.Equal(t, 150.0, v.Summary.TotalSpend)

	// bubbles keep first-seen order
	assert.Equal(t, RegionPoint{Region: "North", Country: "US", Value: 60, Revenue: 60, Spend: 30}, v.RevenueBubbles[0])
	assert.Equal(t, RegionPoint{Region: "North", Country: "US", Value: 30, Revenue: 60, Spend: 30}, v.SpendBubbles[0])

	var labels []string
	for _, p := range v.TopByRevenue {
		labels = append(labels, p.Label)
	}
	assert.Equal(t, []string{"West", "North", "South"}, labels)

	require.Len(t, v.RevenueLeaders, 3)
	assert.Equal(t, Leader{Rank: 1, Region: "West", Value: 300, Display: "$300"}, v.RevenueLeaders[0])
	assert.Equal(t, "West", v.SpendLeaders[0].Region)
}

func TestBuildRegionsEmpty(t *testing.T) {
	v, err := BuildRegions(nil, DefaultQuery())
	require.NoError(t, err)
	assert.Nil(t, v.Summary)
	assert.Empty(t, v.TopByRevenue)
	assert.NotEmpty(t, v.EmptyMessage)
}

func TestBuildWeekly(t *testing.T) {
	v, err := BuildWeekly(fixture(), DefaultQuery())
	require.NoError(t, err)
	require.Len(t, v.Weeks, 2)
	assert.Equal(t, models.WeekKey("2024-01-01"), v.Weeks[0].Key)
	assert.Equal(t, models.WeekKey("2024-01-08"), v.Weeks[1].Key)
	assert.Equal(t, "Jan 1", v.Revenue[0].Label)
	assert.Equal(t, "Jan 8", v.Spend[1].Label)

	require.NotNil(t, v.Summary)
	want := &WeeklySummary{
		TotalRevenue:         100,
		TotalSpend:           50,
		AverageROAS:          2,
		WeekCount:            2,
		AverageWeeklyRevenue: 50,
		AverageWeeklySpend:   25,
		RevenuePeak:          70,
		SpendPeak:            30,
		Efficiency:           analytics.RatingNeedsImprovement,
	}
	if diff := cmp.Diff(want, v.Summary); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "2.0x", v.Cards[2].Value)
}

func TestBuildWeeklyEmpty(t *testing.T) {
	q := DefaultQuery()
	q.Name = "winter"
	v, err := BuildWeekly(fixture(), q)
	require.NoError(t, err)
	assert.Nil(t, v.Summary)
	assert.Empty(t, v.Revenue)
	assert.NotEmpty(t, v.EmptyMessage)
}

func TestParseQuery(t *testing.T) {
	q, err := ParseQuery(url.Values{
		"name":  {" sale "},
		"type":  {"Awareness,Conversion", "Awareness"},
		"sort":  {"roas"},
		"dir":   {"ASC"},
		"limit": {"10"},
	})
	require.NoError(t, err)
	assert.Equal(t, "sale", q.Name)
	assert.Equal(t, []string{"Awareness", "Conversion"}, q.Types)
	assert.Equal(t, analytics.SortSpec{Key: "roas", Direction: analytics.Asc}, q.Sort)
	assert.Equal(t, 10, q.Limit)
	assert.Equal(t, 0, q.Offset)

	q, err = ParseQuery(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, DefaultQuery(), q)

	_, err = ParseQuery(url.Values{"sort": {"bogus"}})
	assert.ErrorIs(t, err, analytics.ErrUnknownColumn)

	_, err = ParseQuery(url.Values{"dir": {"sideways"}})
	assert.ErrorIs(t, err, analytics.ErrBadDirection)
}

func TestQueryKeyIgnoresTypeOrder(t *testing.T) {
	a, b := DefaultQuery(), DefaultQuery()
	a.Types = []string{"X", "Y"}
	b.Types = []string{"Y", "X"}
	assert.Equal(t, a.Key(), b.Key())
	b.Name = "n"
	assert.NotEqual(t, a.Key(), b.Key())
}

func TestQueryKeyKeepsFieldsApart(t *testing.T) {
	a, b := DefaultQuery(), DefaultQuery()
	a.Name, a.Types = "a|", []string{"b"}
	b.Name, b.Types = "a", []string{"|b"}
	assert.NotEqual(t, a.Key(), b.Key())

	c, d := DefaultQuery(), DefaultQuery()
	c.Types = []string{"x,y"}
	d.Types = []string{"x", "y"}
	assert.NotEqual(t, c.Key(), d.Key())
}

func TestServiceCacheNeverCrossesQueries(t *testing.T) {
	data := models.MarketingData{Campaigns: []models.Campaign{
		{ID: "1", Name: "a| promo", Objective: "b", Revenue: 10, Spend: 5},
		{ID: "2", Name: "a plain", Objective: "|b", Revenue: 20, Spend: 5},
	}}
	qa, qb := DefaultQuery(), DefaultQuery()
	qa.Name, qa.Types = "a|", []string{"b"}
	qb.Name, qb.Types = "a", []string{"|b"}

	svc := NewService(store.NewMemoryStore(16))
	outA, err := svc.Render(Campaigns, data, "v1", qa)
	require.NoError(t, err)
	require.Len(t, outA.(CampaignView).Rows, 1)
	assert.Equal(t, "a| promo", outA.(CampaignView).Rows[0].Name)

	outB, err := svc.Render(Campaigns, data, "v1", qb)
	require.NoError(t, err)
	want, err := BuildCampaigns(data.Campaigns, qb)
	require.NoError(t, err)
	if diff := cmp.Diff(want, outB.(CampaignView)); diff != "" {
		t.Fatalf("cached view differs from a fresh build (-want +got):\n%s", diff)
	}
	assert.Equal(t, "a plain", outB.(CampaignView).Rows[0].Name)
}

func TestServiceMemoizesByVersion(t *testing.T) {
	svc := NewService(store.NewMemoryStore(16))
	builds := map[string]int{}
	svc.OnBuild(func(view string) { builds[view]++ })
	data := models.MarketingData{Campaigns: fixture()}

	for i := 0; i < 3; i++ {
		_, err := svc.Render(Devices, data, "v1", DefaultQuery())
		require.NoError(t, err)
	}
	assert.Equal(t, 1, builds[Devices])

	_, err := svc.Render(Devices, data, "v2", DefaultQuery())
	require.NoError(t, err)
	assert.Equal(t, 2, builds[Devices])

	// no version, no caching
	for i := 0; i < 2; i++ {
		_, err := svc.Render(Weekly, data, "", DefaultQuery())
		require.NoError(t, err)
	}
	assert.Equal(t, 2, builds[Weekly])

	out, err := svc.Render(Campaigns, data, "v1", DefaultQuery())
	require.NoError(t, err)
	assert.IsType(t, CampaignView{}, out)

	_, err = svc.Render("funnel", data, "v1", DefaultQuery())
	assert.ErrorIs(t, err, ErrUnknownView)
}
