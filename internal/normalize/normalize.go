// Package normalize converts the service's 0-5 report payload into the
// uniform 0-100 display model. Pure transformation, no I/O.
package normalize

import (
	"math"
	"sort"

	"github.com/JonathanAHerrera/Fitprint/internal/models"
)

// Metric is one category rescaled for display.
type Metric struct {
	Label       string `json:"label" yaml:"label"`
	Score       int    `json:"score" yaml:"score"`
	Description string `json:"description" yaml:"description"`
}

// Alert is one active regional warning.
type Alert struct {
	Region string `json:"region" yaml:"region"`
	Text   string `json:"text" yaml:"text"`
}

// Display is the renderable model derived from one report.
type Display struct {
	Brand              string   `json:"brand" yaml:"brand"`
	OverallScore       int      `json:"overall_score" yaml:"overall_score"`
	OverallDescription string   `json:"overall_description" yaml:"overall_description"`
	Metrics            []Metric `json:"metrics" yaml:"metrics"`
	Alerts             []Alert  `json:"alerts" yaml:"alerts"`
}

// knownRegions is the region set the service emits today, in display
// order. Unknown regions are accepted and sorted after these.
var knownRegions = []string{"EU", "CA", "US", "UK"}

// Scale rescales a 0-5 score to the 0-100 display scale. Out-of-range
// inputs are clamped; the upstream score is not fully trusted.
func Scale(score float64) int {
	n := int(math.Round(score * 20))
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

// Report derives the display model from a report. Metric order is fixed
// across all inputs and the whole transformation is deterministic, so two
// calls on the same report yield identical output.
func Report(r models.SustainabilityReport) Display {
	c := r.Categories
	metrics := []Metric{
		{Label: "Material Origin", Score: Scale(c.MaterialOrigin.Score), Description: c.MaterialOrigin.Description},
		{Label: "Production Impact", Score: Scale(c.ProductionImpact.Score), Description: c.ProductionImpact.Description},
		{Label: "Labor Ethics", Score: Scale(c.LaborEthics.Score), Description: c.LaborEthics.Description},
		{Label: "End of Life", Score: Scale(c.EndOfLife.Score), Description: c.EndOfLife.Description},
		{Label: "Brand Transparency", Score: Scale(c.BrandTransparency.Score), Description: c.BrandTransparency.Description},
	}

	return Display{
		Brand:              r.Brand,
		OverallScore:       Scale(r.OverallScore),
		OverallDescription: r.OverallDescription,
		Metrics:            metrics,
		Alerts:             activeAlerts(r.RegionalAlerts),
	}
}

// activeAlerts keeps only regions with non-empty text, known regions
// first in their fixed order, then any others sorted by region code.
func activeAlerts(alerts map[string]string) []Alert {
	out := make([]Alert, 0, len(alerts))

	for _, region := range knownRegions {
		if text := alerts[region]; text != "" {
			out = append(out, Alert{Region: region, Text: text})
		}
	}

	var rest []string
	for region, text := range alerts {
		if text == "" || isKnownRegion(region) {
			continue
		}
		rest = append(rest, region)
	}
	sort.Strings(rest)
	for _, region := range rest {
		out = append(out, Alert{Region: region, Text: alerts[region]})
	}

	return out
}

func isKnownRegion(region string) bool {
	for _, r := range knownRegions {
		if r == region {
			return true
		}
	}
	return false
}
