package console

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "320px"

// ActivityChartProvider renders activity-per-category charts server-side via
// go-echarts.
type ActivityChartProvider struct {
	api   AuditAPI
	theme string
}

// ActivityChartOption customizes the provider.
type ActivityChartOption func(*ActivityChartProvider)

// WithChartTheme overrides the echarts theme.
func WithChartTheme(theme string) ActivityChartOption {
	return func(p *ActivityChartProvider) {
		p.theme = theme
	}
}

// NewActivityChartProvider builds the provider.
func NewActivityChartProvider(api AuditAPI, options ...ActivityChartOption) *ActivityChartProvider {
	p := &ActivityChartProvider{api: api, theme: types.ThemeWesteros}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Fetch aggregates audit stats into chart markup for the widget template.
func (p *ActivityChartProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	stats, err := p.api.GetAuditStats(ctx)
	if err != nil {
		return nil, err
	}
	categories := make([]string, 0, len(stats.ByCategory))
	for category := range stats.ByCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	values := make([]opts.BarData, 0, len(categories))
	lineValues := make([]opts.LineData, 0, len(categories))
	for _, category := range categories {
		values = append(values, opts.BarData{Value: stats.ByCategory[category]})
		lineValues = append(lineValues, opts.LineData{Value: stats.ByCategory[category]})
	}

	title := stringValue(meta.Widget.Config["title"], meta.Widget.Title)
	chartType := stringValue(meta.Widget.Config["chart_type"], "bar")

	var buf bytes.Buffer
	switch chartType {
	case "line":
		chart := charts.NewLine()
		chart.SetGlobalOptions(
			charts.WithTitleOpts(opts.Title{Title: title}),
			charts.WithInitializationOpts(opts.Initialization{Theme: p.theme, Height: defaultChartHeight}),
		)
		chart.SetXAxis(categories).AddSeries("activity", lineValues)
		if err := chart.Render(&buf); err != nil {
			return nil, fmt.Errorf("console: render activity chart: %w", err)
		}
	case "bar":
		chart := charts.NewBar()
		chart.SetGlobalOptions(
			charts.WithTitleOpts(opts.Title{Title: title}),
			charts.WithInitializationOpts(opts.Initialization{Theme: p.theme, Height: defaultChartHeight}),
		)
		chart.SetXAxis(categories).AddSeries("activity", values)
		if err := chart.Render(&buf); err != nil {
			return nil, fmt.Errorf("console: render activity chart: %w", err)
		}
	default:
		return nil, fmt.Errorf("console: unsupported chart type %q", chartType)
	}

	return WidgetData{
		"chart_type": chartType,
		"title":      title,
		"total":      stats.Total,
		"html":       buf.String(),
	}, nil
}

func stringValue(value any, fallback string) string {
	if s, ok := value.(string); ok && s != "" {
		return s
	}
	return fallback
}
