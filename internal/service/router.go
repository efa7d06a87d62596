package service

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/abhisheksol/Real-Estate-Analysis-Chatbot/internal/model"
	"github.com/abhisheksol/Real-Estate-Analysis-Chatbot/internal/utils"
)

var (
	comparePattern     = regexp.MustCompile(`compare\s+(.+?)\s+and\s+(.+?)(?:\s|$)`)
	growthPattern      = regexp.MustCompile(`(?:price growth|growth) for\s+(.+?)(?:\s+over|$)`)
	growthYearsPattern = regexp.MustCompile(`over last\s+(\d+)\s+years`)
	demandPattern      = regexp.MustCompile(`(?:demand trend|demand) for\s+(.+?)(?:\s|$)`)
)

// rule is one entry of the routing table. The first rule whose match
// reports true owns the query; if its extract fails the query goes to
// the fallback, later rules are not tried.
type rule struct {
	name    string
	match   func(q string) bool
	extract func(q string) (model.Intent, bool)
}

// Router classifies free-text queries into intents
type Router struct {
	rules []rule
}

// NewRouter creates a router with the fixed rule order:
// analyze, compare, growth, demand, list.
func NewRouter() *Router {
	return &Router{
		rules: []rule{
			{name: "analyze", match: containsAll("analyze"), extract: extractAnalyze},
			{name: "compare", match: containsAll("compare", "and"), extract: extractCompare},
			{name: "growth", match: containsAny("price growth", "growth"), extract: extractGrowth},
			{name: "demand", match: containsAny("demand trend", "demand"), extract: extractDemand},
			{name: "list", match: containsAny("list", "show all", "available"), extract: extractList},
		},
	}
}

// Route lower-cases the query and returns the intent of the first
// matching rule, or a fallback intent carrying the query.
func (r *Router) Route(query string) model.Intent {
	q := strings.ToLower(query)

	for _, rl := range r.rules {
		if !rl.match(q) {
			continue
		}
		if intent, ok := rl.extract(q); ok {
			intent.Query = q
			return intent
		}
		break
	}

	return model.Intent{Kind: model.IntentFallback, Query: q}
}

func containsAll(subs ...string) func(string) bool {
	return func(q string) bool {
		for _, s := range subs {
			if !strings.Contains(q, s) {
				return false
			}
		}
		return true
	}
}

func containsAny(subs ...string) func(string) bool {
	return func(q string) bool {
		for _, s := range subs {
			if strings.Contains(q, s) {
				return true
			}
		}
		return false
	}
}

func areaName(s string) string {
	return utils.TitleCase(strings.TrimSpace(s))
}

func extractAnalyze(q string) (model.Intent, bool) {
	return model.Intent{
		Kind: model.IntentAnalyzeArea,
		Area: areaName(strings.ReplaceAll(q, "analyze", "")),
	}, true
}

func extractCompare(q string) (model.Intent, bool) {
	m := comparePattern.FindStringSubmatch(q)
	if m == nil {
		return model.Intent{}, false
	}
	return model.Intent{
		Kind:      model.IntentCompareAreas,
		Area:      areaName(m[1]),
		OtherArea: areaName(m[2]),
	}, true
}

func extractGrowth(q string) (model.Intent, bool) {
	m := growthPattern.FindStringSubmatch(q)
	if m == nil {
		return model.Intent{}, false
	}

	intent := model.Intent{Kind: model.IntentPriceGrowth, Area: areaName(m[1])}
	if strings.Contains(q, "over last") {
		if ym := growthYearsPattern.FindStringSubmatch(q); ym != nil {
			if n, err := strconv.Atoi(ym[1]); err == nil {
				intent.Years = n
			}
		}
	}
	return intent, true
}

// extractDemand never fails: without "demand for <area>" the intent ranks
// all areas.
func extractDemand(q string) (model.Intent, bool) {
	intent := model.Intent{Kind: model.IntentDemandTrend}
	if m := demandPattern.FindStringSubmatch(q); m != nil {
		intent.Area = areaName(m[1])
	}
	return intent, true
}

func extractList(q string) (model.Intent, bool) {
	switch {
	case strings.Contains(q, "areas") || strings.Contains(q, "locations"):
		return model.Intent{Kind: model.IntentListAreas}, true
	case strings.Contains(q, "years"):
		return model.Intent{Kind: model.IntentListYears}, true
	case strings.Contains(q, "data"):
		return model.Intent{Kind: model.IntentDataOverview}, true
	default:
		return model.Intent{}, false
	}
}
