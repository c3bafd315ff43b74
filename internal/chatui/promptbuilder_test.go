package chatui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildGasFreePromptWithInputs(t *testing.T) {
	prompt := BuildGasFreePrompt(PromptInputs{
		HomeDescription: "  1970s terraced house, 120 m2  ",
		UsageDetails:    "1400 m3 gas/year",
		Location:        "Utrecht",
		DataSources:     "KNMI weather data",
	})

	assert.Contains(t, prompt, "- Home: 1970s terraced house, 120 m2")
	assert.Contains(t, prompt, "- Consumption/installations: 1400 m3 gas/year")
	assert.Contains(t, prompt, "- Location/climate: Utrecht")
	assert.Contains(t, prompt, "- Data/preferences: KNMI weather data")
	assert.Contains(t, prompt, "three scenarios")
}

func TestBuildGasFreePromptFallbacks(t *testing.T) {
	prompt := BuildGasFreePrompt(PromptInputs{})

	assert.Contains(t, prompt, fallbackHome)
	assert.Contains(t, prompt, fallbackUsage)
	assert.Contains(t, prompt, fallbackLocation)
	assert.Contains(t, prompt, fallbackData)
}

func TestBuildGasFreePromptStableSections(t *testing.T) {
	prompt := BuildGasFreePrompt(PromptInputs{})
	lines := strings.Split(prompt, "\n")

	assert.Equal(t, "You are a Dutch energy advisor specialised in gas-free living.", lines[0])
	assert.Contains(t, lines, "Available input:")
}

func TestComposeAdvisorPromptDoesNotSend(t *testing.T) {
	relay := &fakeRelay{}
	c := NewController(&MemStore{}, relay)

	c.ComposeAdvisorPrompt(PromptInputs{Location: "Utrecht"})

	assert.Contains(t, c.Input(), "Utrecht")
	assert.Zero(t, relay.calls)
	assert.Equal(t, LevelInfo, c.Status().Level)
}
