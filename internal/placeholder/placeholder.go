// Package placeholder holds synthetic values shown where the product has no
// real data source yet: match scores for fixture matches and the analytics
// chart series. Nothing here is computed from user data.
package placeholder

import "math/rand/v2"

const (
	MinMatchScore = 60
	MaxMatchScore = 100
)

// ProfileScore is the fixed rating shown on the overview stats card.
const ProfileScore = 4.8

// Trend captions shown under the overview stat cards.
const (
	MatchesTrendCaption  = "+12% from last month"
	MessagesTrendCaption = "+8% from last week"
)

// MatchScore returns a synthetic score in [MinMatchScore, MaxMatchScore].
// A nil rng uses the package-level source.
func MatchScore(rng *rand.Rand) int {
	span := MaxMatchScore - MinMatchScore + 1
	if rng == nil {
		return MinMatchScore + rand.IntN(span)
	}
	return MinMatchScore + rng.IntN(span)
}

// MonthlyPoint is one month of the matching trend chart.
type MonthlyPoint struct {
	Month    string `json:"month"`
	Matches  int    `json:"matches"`
	Messages int    `json:"messages"`
}

// Slice is one wedge of the status distribution chart.
type Slice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// Bucket is one bar of the age distribution chart.
type Bucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// DailyActivity is one day of the weekly activity chart.
type DailyActivity struct {
	Day     string `json:"day"`
	Logins  int    `json:"logins"`
	Matches int    `json:"matches"`
}

// Series bundles every placeholder chart series.
type Series struct {
	MatchingTrend      []MonthlyPoint  `json:"matching_trend"`
	StatusDistribution []Slice         `json:"status_distribution"`
	AgeDistribution    []Bucket        `json:"age_distribution"`
	WeeklyActivity     []DailyActivity `json:"weekly_activity"`
}

// ChartSeries returns a fresh copy of the placeholder series.
func ChartSeries() Series {
	return Series{
		MatchingTrend: []MonthlyPoint{
			{Month: "Jan", Matches: 12, Messages: 45},
			{Month: "Feb", Matches: 19, Messages: 62},
			{Month: "Mar", Matches: 15, Messages: 38},
			{Month: "Apr", Matches: 25, Messages: 78},
			{Month: "May", Matches: 22, Messages: 65},
			{Month: "Jun", Matches: 30, Messages: 95},
		},
		StatusDistribution: []Slice{
			{Name: "Accepted", Value: 45, Color: "#10b981"},
			{Name: "Pending", Value: 30, Color: "#f59e0b"},
			{Name: "Declined", Value: 25, Color: "#ef4444"},
		},
		AgeDistribution: []Bucket{
			{Range: "18-24", Count: 15},
			{Range: "25-29", Count: 35},
			{Range: "30-34", Count: 28},
			{Range: "35-39", Count: 18},
			{Range: "40+", Count: 12},
		},
		WeeklyActivity: []DailyActivity{
			{Day: "Mon", Logins: 45, Matches: 8},
			{Day: "Tue", Logins: 52, Matches: 12},
			{Day: "Wed", Logins: 38, Matches: 6},
			{Day: "Thu", Logins: 61, Matches: 15},
			{Day: "Fri", Logins: 73, Matches: 18},
			{Day: "Sat", Logins: 89, Matches: 22},
			{Day: "Sun", Logins: 67, Matches: 14},
		},
	}
}
