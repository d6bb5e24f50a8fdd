// Package report renders a sizing result for people: unit labels, locale
// grouping and presentation rounding. It never changes the result values.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/Agrid-Dev/solarthermal/internal/sizing"
)

const (
	SectionBaseline = "baseline"
	SectionSolar    = "solar"
)

type Line struct {
	Section string `json:"section" yaml:"section"`
	Label   string `json:"label" yaml:"label"`
	Value   string `json:"value" yaml:"value"`
}

type Report struct {
	Title    string `json:"title" yaml:"title"`
	Subtitle string `json:"subtitle" yaml:"subtitle"`
	Solar    string `json:"solar_heading" yaml:"solar_heading"`
	Lines    []Line `json:"lines" yaml:"lines"`
}

// ParseLocale falls back to American English for empty or malformed tags.
func ParseLocale(s string) language.Tag {
	if s == "" {
		return language.AmericanEnglish
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.AmericanEnglish
	}
	return tag
}

func percent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}

// Render formats r for the given locale.
func Render(r sizing.Result, tag language.Tag) Report {
	p := message.NewPrinter(tag)

	grouped := func(v float64) string {
		return p.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
	}
	whole := func(v float64) string {
		return p.Sprint(number.Decimal(v, number.MaxFractionDigits(0)))
	}
	count := func(n int) string {
		return p.Sprint(number.Decimal(n))
	}
	coverage := percent(sizing.SolarCoverageFraction)

	return Report{
		Title:    "Solar Thermal Calculator",
		Subtitle: fmt.Sprintf("Sizing assumes system covers %s of building hot water needs.", coverage),
		Solar:    fmt.Sprintf("Solar system covers %s of hot water BTU demand:", coverage),
		Lines: []Line{
			{SectionBaseline, "Total hot water used per day", grouped(r.DailyHotWaterGallons) + " gal"},
			{SectionBaseline, "Daily BTU load (hot water)", grouped(r.DailyHeatLoadBTU) + " BTU"},
			{SectionBaseline, fmt.Sprintf("Boiler gas input per day (%s eff.)", percent(sizing.BoilerEfficiency)), grouped(r.DailyBoilerGasInputBTU) + " BTU"},
			{SectionBaseline, "Daily therms consumed", p.Sprint(number.Decimal(r.DailyThermsConsumed, number.MinFractionDigits(2), number.MaxFractionDigits(2)))},
			{SectionBaseline, "Annual therms consumed", whole(r.AnnualThermsConsumed)},
			{SectionBaseline, "Annual gas cost (baseline)", "$" + whole(r.AnnualBaselineGasCost)},
			{SectionSolar, fmt.Sprintf("Solar BTU load per day (%s)", coverage), grouped(r.DailySolarCoveredBTU) + " BTU"},
			{SectionSolar, fmt.Sprintf("Number of panels needed for %s demand", coverage), count(r.PanelsNeededForSolarFraction)},
			{SectionSolar, "Number of panels that fit on roof", count(r.PanelsFittingRoof)},
			{SectionSolar, "Panels to install", count(r.PanelsToInstall)},
			{SectionSolar, "Total storage required", count(r.ThermalStorageGallons) + " gallons"},
			{SectionSolar, "Annual dollar saved (panels installed)", "$" + whole(r.AnnualDollarSaved)},
		},
	}
}

// WriteText prints rep as an aligned plain-text block.
func WriteText(w io.Writer, rep Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)

	fmt.Fprintln(tw, rep.Title)
	fmt.Fprintln(tw, rep.Subtitle)
	fmt.Fprintln(tw)

	section := SectionBaseline
	for _, l := range rep.Lines {
		if l.Section != section {
			section = l.Section
			fmt.Fprintln(tw)
			fmt.Fprintln(tw, rep.Solar)
		}
		fmt.Fprintf(tw, "%s:\t%s\n", l.Label, l.Value)
	}
	return tw.Flush()
}
