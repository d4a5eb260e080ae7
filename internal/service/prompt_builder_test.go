package service

import (
	"strings"
	"testing"

	"CO-PO-Mapping-Backend/internal/model"
)

func TestBuildMappingPrompt(t *testing.T) {
	prompts := NewPromptBuilder()

	prompt := prompts.BuildMappingPrompt([]LabeledOutcome{
		{Label: "CO1", Description: "Explain neural networks"},
		{Label: "CO2", Description: "Apply regression models"},
	})

	for _, want := range []string{
		"Bloom's Taxonomy",
		"PO1:", "PO12:",
		`"CO1":"Explain neural networks"`,
		`"CO2":"Apply regression models"`,
		"Output format:",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildAlignmentPrompt(t *testing.T) {
	prompts := NewPromptBuilder()

	prompt := prompts.BuildAlignmentPrompt(
		[]model.CourseOutcome{
			{ID: 1, Description: "Explain neural networks"},
			{ID: 2, Description: "Apply regression models"},
		},
		[]model.ExtractedQuestion{
			{Text: "What is backpropagation?", Page: 1},
			{Text: "Fit a line to the data.", Page: 2},
		},
	)

	for _, want := range []string{
		"CO1: Explain neural networks",
		"CO2: Apply regression models",
		"1. What is backpropagation?",
		"2. Fit a line to the data.",
		"at most 3 COs",
		"aligned_COs",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

// The same input must always render the same prompt; nothing in the
// builder may depend on time or randomness.
func TestBuildMappingPromptDeterministic(t *testing.T) {
	prompts := NewPromptBuilder()
	outcomes := []LabeledOutcome{{Label: "CO1", Description: "Explain neural networks"}}

	if prompts.BuildMappingPrompt(outcomes) != prompts.BuildMappingPrompt(outcomes) {
		t.Error("mapping prompt is not deterministic")
	}
}
