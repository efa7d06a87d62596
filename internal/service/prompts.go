package service

import "fmt"

const (
	analyzePrompt = "Give a short 2-3 line summary of real estate trends for %s based on flat price and demand over the years. Mention key trends."

	comparePrompt = "Compare real estate trends between %s and %s in a 2-3 line summary. Focus on price differences and growth patterns."

	growthPrompt = "Summarize price growth for %s over the %s. Total growth is %.2f%% with average annual growth of %.2f%%."

	areaDemandPrompt = "Analyze the demand trends for %s based on sales data over time. How have flat, shop, and office sales changed?"

	topDemandPrompt = "Summarize the demand trends across different areas, highlighting the top areas by sales volume."

	overviewPrompt = "Give an overview of the real estate dataset which has %d records covering %d years and %d areas."

	fallbackPrompt = "Answer this real estate data question: '%s'. If you can't answer it specifically, suggest what kinds of queries would be better."
)

func growthPeriod(years int) string {
	if years > 0 {
		return fmt.Sprintf("last %d years", years)
	}
	return "available period"
}
