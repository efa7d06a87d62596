package model

// IntentKind identifies which aggregation a query resolves to
type IntentKind string

const (
	IntentAnalyzeArea  IntentKind = "analyze_area"
	IntentCompareAreas IntentKind = "compare_areas"
	IntentPriceGrowth  IntentKind = "price_growth"
	IntentDemandTrend  IntentKind = "demand_trend"
	IntentListAreas    IntentKind = "list_areas"
	IntentListYears    IntentKind = "list_years"
	IntentDataOverview IntentKind = "data_overview"
	IntentFallback     IntentKind = "fallback"
)

// Intent is the router's output: the intent kind plus the entities
// extracted for it.
type Intent struct {
	Kind IntentKind `json:"kind"`

	// Area is the (title-cased) primary area. Empty for DemandTrend means
	// "rank across all areas".
	Area string `json:"area,omitempty"`

	// OtherArea is the second area of a comparison.
	OtherArea string `json:"other_area,omitempty"`

	// Years restricts PriceGrowth to the last N years; 0 means no window.
	Years int `json:"years,omitempty"`

	// Query is the lower-cased query text, forwarded by Fallback.
	Query string `json:"query,omitempty"`
}
