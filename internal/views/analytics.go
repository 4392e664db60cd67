package views

import "matchboard/internal/placeholder"

// AnalyticsModel pairs counts computed from the fetched data with the
// illustrative chart series.
type AnalyticsModel struct {
	Stats       StatsModel         `json:"stats"`
	Charts      placeholder.Series `json:"charts"`
	Placeholder bool               `json:"placeholder"`
}

// Analytics projects the analytics screen.
func Analytics(d Data) AnalyticsModel {
	return AnalyticsModel{
		Stats:       Stats(d),
		Charts:      placeholder.ChartSeries(),
		Placeholder: true,
	}
}
