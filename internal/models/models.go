package models

import (
	"encoding/json"
	"strings"
)

type Status string

const (
	StatusActive Status = "Active"
	StatusPaused Status = "Paused"
	StatusEnded  Status = "Ended"
)

// CampaignID accepts both JSON numbers and strings; the data source is not consistent.
type CampaignID string

func (id *CampaignID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*id = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*id = CampaignID(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = CampaignID(n.String())
	return nil
}

type Campaign struct {
	ID                  CampaignID   `json:"id" yaml:"id"`
	Name                string       `json:"name" yaml:"name"`
	Objective           string       `json:"objective" yaml:"objective"`
	Status              Status       `json:"status" yaml:"status"`
	Medium              string       `json:"medium" yaml:"medium"`
	Budget              float64      `json:"budget" yaml:"budget"`
	Spend               float64      `json:"spend" yaml:"spend"`
	Revenue             float64      `json:"revenue" yaml:"revenue"`
	Conversions         int64        `json:"conversions" yaml:"conversions"`
	ConversionRate      float64      `json:"conversion_rate" yaml:"conversion_rate"`
	ROAS                float64      `json:"roas" yaml:"roas"`
	DevicePerformance   []DevicePerf `json:"device_performance,omitempty" yaml:"device_performance,omitempty"`
	RegionalPerformance []RegionPerf `json:"regional_performance,omitempty" yaml:"regional_performance,omitempty"`
	WeeklyPerformance   []WeekPerf   `json:"weekly_performance,omitempty" yaml:"weekly_performance,omitempty"`
}

type DevicePerf struct {
	Device      string  `json:"device" yaml:"device"`
	Revenue     float64 `json:"revenue" yaml:"revenue"`
	Spend       float64 `json:"spend" yaml:"spend"`
	Impressions int64   `json:"impressions" yaml:"impressions"`
}

type RegionPerf struct {
	Region  string  `json:"region" yaml:"region"`
	Country string  `json:"country" yaml:"country"`
	Revenue float64 `json:"revenue" yaml:"revenue"`
	Spend   float64 `json:"spend" yaml:"spend"`
}

// WeekPerf.WeekStart is an ISO-8601 date; it sorts lexically.
type WeekPerf struct {
	WeekStart string  `json:"week_start" yaml:"week_start"`
	Revenue   float64 `json:"revenue" yaml:"revenue"`
	Spend     float64 `json:"spend" yaml:"spend"`
}

type MarketingData struct {
	Campaigns []Campaign `json:"campaigns" yaml:"campaigns"`
}

// Group keys. They are opaque and never parsed.
type (
	DeviceKey string
	RegionKey string
	WeekKey   string
	MediumKey string
)

type GroupKey interface {
	~string
}

type GroupSummary[K GroupKey] struct {
	Key         K       `json:"key" yaml:"key"`
	Revenue     float64 `json:"revenue" yaml:"revenue"`
	Spend       float64 `json:"spend" yaml:"spend"`
	Impressions int64   `json:"impressions,omitempty" yaml:"impressions,omitempty"`
	Conversions int64   `json:"conversions,omitempty" yaml:"conversions,omitempty"`
	Country     string  `json:"country,omitempty" yaml:"country,omitempty"`
}

// ChartPoint is one bar or line point handed to the renderer.
type ChartPoint struct {
	Label string  `json:"label" yaml:"label"`
	Value float64 `json:"value" yaml:"value"`
	Color string  `json:"color" yaml:"color"`
}

type Card struct {
	Title string `json:"title" yaml:"title"`
	Value string `json:"value" yaml:"value"`
}
