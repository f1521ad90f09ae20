package cmd

import (
	"fmt"
	"io"

	"github.com/JonathanAHerrera/Fitprint/internal/models"
	"github.com/JonathanAHerrera/Fitprint/internal/normalize"
	"gopkg.in/yaml.v3"
)

// reportDoc is the yaml output shape for one analysis.
type reportDoc struct {
	AnalysisID   string                      `yaml:"analysis_id"`
	CreatedAt    string                      `yaml:"created_at"`
	Report       normalize.Display           `yaml:"report"`
	Alternatives []models.AlternativeProduct `yaml:"alternatives"`
}

func writeReportYAML(w io.Writer, result *models.AnalysisResult, display normalize.Display) error {
	doc := reportDoc{
		AnalysisID:   result.AnalysisID,
		CreatedAt:    result.CreatedAt,
		Report:       display,
		Alternatives: result.Alternatives,
	}

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

func printReport(w io.Writer, result *models.AnalysisResult, display normalize.Display) {
	brand := display.Brand
	if brand == "" {
		brand = "Unknown Brand"
	}

	fmt.Fprintf(w, "Sustainability Report: %s\n", brand)
	fmt.Fprintf(w, "Overall Score: %d/100\n", display.OverallScore)
	if display.OverallDescription != "" {
		fmt.Fprintf(w, "%s\n", display.OverallDescription)
	}

	fmt.Fprintf(w, "\nBreakdown:\n")
	for _, m := range display.Metrics {
		fmt.Fprintf(w, "  %-20s %3d/100  %s\n", m.Label, m.Score, m.Description)
	}

	if len(display.Alerts) > 0 {
		fmt.Fprintf(w, "\nRegional Alerts:\n")
		for _, a := range display.Alerts {
			fmt.Fprintf(w, "  %s: %s\n", a.Region, a.Text)
		}
	}

	if len(result.Alternatives) > 0 {
		fmt.Fprintf(w, "\nBetter Alternatives:\n")
		for i, alt := range result.Alternatives {
			fmt.Fprintf(w, "  %d. %s (%s) %d/100\n", i+1, alt.Name, alt.Brand, normalize.Scale(alt.SustainabilityScore))
			if alt.WhySustainable != "" {
				fmt.Fprintf(w, "     %s\n", alt.WhySustainable)
			}
			if alt.Link != "" {
				fmt.Fprintf(w, "     %s\n", alt.Link)
			}
		}
	}

	fmt.Fprintf(w, "\nAnalysis ID: %s\n", result.AnalysisID)
}
