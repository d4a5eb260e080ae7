package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"CO-PO-Mapping-Backend/internal/model"
)

const mappingPromptHeader = `You are an AI expert in Bloom's Taxonomy and Outcome-Based Education (OBE).
Given a Course Outcome (CO), classify it based on Bloom's levels and predict its mapping to Program Outcomes (POs).
The POs are :-
PO1: Apply engineering knowledge to solve problems, PO2: Analyze and solve complex problems, PO3: Design safe and sustainable solutions.
PO4: Conduct research and analyze data, PO5: Use modern tools effectively, PO6: Assess societal and legal impacts, PO7: Promote environmental sustainability,
PO8: Follow ethical practices, PO9: Work individually and in teams, PO10: Communicate effectively.
PO11: Manage projects and finances, PO12: Engage in lifelong learning.
Give Rank 1 for low, 2 for medium and 3 for high.
Provide a justification.
Output format:[
  {
    "CO_number": "",
    "CO_Objective": "",
    "Bloom_Level": "",
    "Mapped_POs": [
      {
        "PO": "",
        "Justification": "",
        "Rank": ""
      },...
    ]
  },..
]
`

const alignmentPromptHeader = `You are an AI expert in Outcome-Based Education (OBE).
Given the Course Outcomes (COs) of a subject and a list of exam questions, align each question to the COs it assesses.
Align each question to at most 3 COs, referenced by their identifiers (CO1, CO2, ...).
Rate the overall alignment strength of each question as High, Medium or Low.
Output format:[
  {
    "question": "",
    "aligned_COs": ["CO1", ...],
    "alignment_strength": ""
  },..
]
`

// PromptBuilder renders the two fixed prompt templates. Pure string
// templating, no external calls.
type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// LabeledOutcome pairs a "CO<n>" label with its description for prompt
// serialization.
type LabeledOutcome struct {
	Label       string
	Description string
}

// BuildMappingPrompt embeds the labeled COs into the classification
// template as a serialized list.
func (b *PromptBuilder) BuildMappingPrompt(outcomes []LabeledOutcome) string {
	serialized := make([]map[string]string, 0, len(outcomes))
	for _, o := range outcomes {
		serialized = append(serialized, map[string]string{o.Label: o.Description})
	}
	data, _ := json.Marshal(serialized)

	return mappingPromptHeader + fmt.Sprintf(" course outcomes are %s. Give me the data in json object to send it to frontend", string(data))
}

// BuildAlignmentPrompt embeds the subject's CO catalogue and the extracted
// exam questions into the alignment template.
func (b *PromptBuilder) BuildAlignmentPrompt(outcomes []model.CourseOutcome, questions []model.ExtractedQuestion) string {
	var sb strings.Builder
	sb.WriteString(alignmentPromptHeader)

	sb.WriteString("\nCourse Outcomes:\n")
	for _, o := range outcomes {
		sb.WriteString(fmt.Sprintf("CO%d: %s\n", o.ID, o.Description))
	}

	sb.WriteString("\nExam Questions:\n")
	for i, q := range questions {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, q.Text))
	}

	sb.WriteString("\nGive me the data in json object to send it to frontend")
	return sb.String()
}
