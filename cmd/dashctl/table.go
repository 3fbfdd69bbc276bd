package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/AngelCh415/marketing-dash/internal/analytics"
	"github.com/AngelCh415/marketing-dash/internal/format"
	"github.com/AngelCh415/marketing-dash/internal/models"
	"github.com/AngelCh415/marketing-dash/internal/views"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	emptyStyle  = lipgloss.NewStyle().Italic(true).Faint(true)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

func cardsTable(cards []models.Card) *table.Table {
	t := newTable("Metric", "Value")
	for _, c := range cards {
		t.Row(c.Title, c.Value)
	}
	return t
}

func writeTables(w io.Writer, v any) error {
	var blocks []string
	switch v := v.(type) {
	case views.CampaignView:
		blocks = append(blocks, cardsTable(v.Cards).String())
		if v.EmptyMessage != "" {
			blocks = append(blocks, emptyStyle.Render(v.EmptyMessage))
			break
		}
		t := newTable("Name", "Objective", "Status", "Medium", "Spend", "Revenue", "Conversions", "Conv. Rate", "ROAS")
		for _, r := range v.Rows {
			t.Row(r.Name, r.Objective, string(r.Status), r.Medium,
				format.Money(r.Spend), format.Money(r.Revenue), format.Count(r.Conversions),
				format.Percent(r.ConversionRate), format.Multiple(r.ROAS))
		}
		blocks = append(blocks, t.String(), fmt.Sprintf("showing %d of %d", v.Shown, v.Total))
	case views.DeviceView:
		if v.Summary == nil {
			blocks = append(blocks, emptyStyle.Render(v.EmptyMessage))
			break
		}
		blocks = append(blocks, cardsTable(v.Cards).String())
		t := newTable("Device", "Revenue", "Spend", "Impressions", "ROAS")
		for _, d := range v.Devices {
			t.Row(string(d.Key), format.Money(d.Revenue), format.Money(d.Spend), format.Count(d.Impressions), format.Multiple(analytics.SummaryROAS(d)))
		}
		blocks = append(blocks, t.String())
	case views.RegionView:
		if v.Summary == nil {
			blocks = append(blocks, emptyStyle.Render(v.EmptyMessage))
			break
		}
		blocks = append(blocks, cardsTable(v.Cards).String())
		t := newTable("Region", "Country", "Revenue", "Spend", "ROAS")
		for _, r := range v.Regions {
			t.Row(string(r.Key), r.Country, format.Money(r.Revenue), format.Money(r.Spend), format.Multiple(analytics.SummaryROAS(r)))
		}
		blocks = append(blocks, t.String())
	case views.WeeklyView:
		if v.Summary == nil {
			blocks = append(blocks, emptyStyle.Render(v.EmptyMessage))
			break
		}
		blocks = append(blocks, cardsTable(v.Cards).String())
		t := newTable("Week", "Revenue", "Spend", "ROAS")
		for _, wk := range v.Weeks {
			t.Row(format.WeekLabel(string(wk.Key)), format.Money(wk.Revenue), format.Money(wk.Spend), format.Multiple(analytics.SummaryROAS(wk)))
		}
		blocks = append(blocks, t.String())
	default:
		return fmt.Errorf("no table layout for %T", v)
	}
	_, err := io.WriteString(w, strings.Join(blocks, "\n")+"\n")
	return err
}

