package tools

import (
	"context"

	"github.com/vinayprograms/edinburgh/internal/entropy"
)

const classifyEntropyName = "classify-entropy"

// classifyEntropyTool exposes the entropy classifier.
type classifyEntropyTool struct{}

func (t *classifyEntropyTool) Name() string { return classifyEntropyName }

func (t *classifyEntropyTool) Description() string {
	return "Analyze input for entropy level and structure. Returns a score from 0 (clear) to 1 (chaotic), " +
		"the issues found, recommendations, and the entities and actions extracted from the text."
}

func (t *classifyEntropyTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"input": map[string]interface{}{
				"type":        "string",
				"description": "The user input to analyze",
			},
			"context": map[string]interface{}{
				"type":        "string",
				"description": "Additional context about the domain",
			},
		},
		"required": []string{"input"},
	}
}

func (t *classifyEntropyTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	input, err := requireString(t.Name(), args, "input")
	if err != nil {
		return nil, err
	}
	domain, _ := stringArg(args, "context")
	return entropy.Classify(input, domain), nil
}
