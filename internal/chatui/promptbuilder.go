package chatui

import "strings"

// PromptInputs are the four free-text fields of the advisor form.
type PromptInputs struct {
	HomeDescription string
	UsageDetails    string
	Location        string
	DataSources     string
}

const (
	fallbackHome     = "Not provided; ask for construction year, dwelling type, insulation and floor area."
	fallbackUsage    = "Not provided; ask for annual gas/electricity consumption and current installations."
	fallbackLocation = "No location provided; assume a typical Dutch climate profile and grid load."
	fallbackData     = "No online data supplied; rely on generic assumptions and name the data still needed."
)

// BuildGasFreePrompt composes the fixed gas-free-home advisor prompt,
// substituting literal fallback sentences for any blank input.
func BuildGasFreePrompt(in PromptInputs) string {
	description := normalizeInput(in.HomeDescription, fallbackHome)
	usage := normalizeInput(in.UsageDetails, fallbackUsage)
	location := normalizeInput(in.Location, fallbackLocation)
	dataSources := normalizeInput(in.DataSources, fallbackData)

	bulletLines := strings.Join([]string{
		"- Home: " + description,
		"- Consumption/installations: " + usage,
		"- Location/climate: " + location,
		"- Data/preferences: " + dataSources,
	}, "\n")

	return strings.Join([]string{
		"You are a Dutch energy advisor specialised in gas-free living.",
		"Draw up an optimised roadmap with concrete measures, their order, investment indications and expected savings.",
		"Use public weather data, grid load and typical dwelling profiles to fill gaps, and ask targeted follow-up questions where needed.",
		"Available input:",
		bulletLines,
		"Deliver three scenarios: (1) quick wins/low budget, (2) balanced, (3) maximally future-proof.",
		"Per scenario: insulation, ventilation, heating (all-electric or hybrid heat pump), generation (PV), storage/controls, subsidies (ISDE etc.), payback period, CO2 reduction, comfort impact and grid-congestion caveats.",
		"Close with required surveys/permits, the order of steps, a contractor/installer checklist and metrics to track progress.",
	}, "\n")
}

func normalizeInput(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}
