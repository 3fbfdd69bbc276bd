package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/marketing-dash/internal/models"
)

const yamlBundle = `campaigns:
  - id: 7
    name: Spring Push
    objective: Awareness
    status: Active
    medium: Facebook
    spend: 20
    revenue: 60
    regional_performance:
      - region: North
        country: US
        revenue: 60
        spend: 20
    weekly_performance:
      - week_start: "2024-03-04"
        revenue: 60
        spend: 20
`

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestFileSourceJSON(t *testing.T) {
	p := writeTemp(t, "data.json", bundle)
	data, err := NewFileSource(p).FetchMarketingData(context.Background())
	require.NoError(t, err)
	assert.Len(t, data.Campaigns, 2)
}

func TestFileSourceYAML(t *testing.T) {
	p := writeTemp(t, "data.yaml", yamlBundle)
	data, err := NewFileSource(p).FetchMarketingData(context.Background())
	require.NoError(t, err)
	require.Len(t, data.Campaigns, 1)
	c := data.Campaigns[0]
	assert.Equal(t, models.CampaignID("7"), c.ID)
	assert.Equal(t, "US", c.RegionalPerformance[0].Country)
	assert.Equal(t, "2024-03-04", c.WeeklyPerformance[0].WeekStart)
}

func TestFileSourceMissingFile(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "nope.json")).FetchMarketingData(context.Background())
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
}

func TestFileSourceBadContent(t *testing.T) {
	p := writeTemp(t, "data.json", "not json")
	_, err := NewFileSource(p).FetchMarketingData(context.Background())
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
}

func TestSourceFor(t *testing.T) {
	var gotURL string
	newHTTP := func(url string) DataSource {
		gotURL = url
		return SourceFunc(func(ctx context.Context) (models.MarketingData, error) { return models.MarketingData{}, nil })
	}
	_, isFile := SourceFor("./data.json", newHTTP).(*FileSource)
	assert.True(t, isFile)

	SourceFor("https://example.test/data.json", newHTTP)
	assert.Equal(t, "https://example.test/data.json", gotURL)
}
