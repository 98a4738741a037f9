package quiz

import "github.com/abhisek/mentor/internal/llm"

// QuizSchema defines the JSON shape of a generated question set.
var QuizSchema = &llm.Schema{
	Name:        "mcq-set",
	Description: "A set of multiple-choice questions, each with its options and the correct option text",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question stem in plain text",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly 4 answer options without letter prefixes",
						},
						"answer": map[string]any{
							"type":        "string",
							"description": "The exact text of the correct option",
						},
					},
					"required":             []any{"question", "options", "answer"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
