package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/marketing-dash/internal/models"
)

func TestNormalize(t *testing.T) {
	in := models.MarketingData{Campaigns: []models.Campaign{
		{ID: " 1 ", Name: "  A ", Spend: -5, Revenue: 10, Conversions: -1,
			DevicePerformance: []models.DevicePerf{{Device: " Mobile ", Revenue: -1, Spend: 2, Impressions: -3}}},
		{ID: "1", Name: "duplicate"},
		{Name: "no id", Objective: " ", Medium: "Facebook"},
		{Name: "no id either"},
	}}
	out := Normalize(in)
	require.Len(t, out.Campaigns, 3)

	a := out.Campaigns[0]
	assert.Equal(t, models.CampaignID("1"), a.ID)
	assert.Equal(t, "A", a.Name)
	assert.Equal(t, 0.0, a.Spend)
	assert.Equal(t, int64(0), a.Conversions)
	assert.Equal(t, "Unknown", a.Objective)
	assert.Equal(t, models.DevicePerf{Device: "Mobile", Revenue: 0, Spend: 2, Impressions: 0}, a.DevicePerformance[0])

	assert.Equal(t, "no id", out.Campaigns[1].Name)
	assert.Equal(t, "Unknown", out.Campaigns[1].Objective)
	assert.Equal(t, "Facebook", out.Campaigns[1].Medium)
	assert.Nil(t, out.Campaigns[1].WeeklyPerformance)

	// input rows are not shared with the output
	assert.Equal(t, " Mobile ", in.Campaigns[0].DevicePerformance[0].Device)
}

func TestNormalizeEmpty(t *testing.T) {
	out := Normalize(models.MarketingData{})
	assert.NotNil(t, out.Campaigns)
	assert.Empty(t, out.Campaigns)
}
