package tools

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/expr-lang/expr"
)

const calculatorName = "calculator"

// unsafeChars matches everything the calculator refuses to evaluate.
var unsafeChars = regexp.MustCompile(`[^0-9+\-*/().^sqrt ]`)

// Calculation is the calculator result. Expression is the sanitised input
// that was actually evaluated.
type Calculation struct {
	Result     float64 `json:"result"`
	Expression string  `json:"expression"`
}

// calculatorTool evaluates arithmetic expressions.
type calculatorTool struct{}

func (t *calculatorTool) Name() string { return calculatorName }

func (t *calculatorTool) Description() string {
	return "Perform mathematical calculations. Supports basic arithmetic (+, -, *, /), exponents (^), square root (sqrt), and parentheses."
}

func (t *calculatorTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"expression": map[string]interface{}{
				"type":        "string",
				"description": `Mathematical expression to evaluate, e.g., "2 + 2", "sqrt(16) * 3", "(10 - 2) / 4"`,
			},
		},
		"required": []string{"expression"},
	}
}

func (t *calculatorTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	expression, err := requireString(t.Name(), args, "expression")
	if err != nil {
		return nil, err
	}
	return Calculate(expression)
}

// Calculate sanitises and evaluates expression. ^ is exponentiation and
// sqrt(x) is the square root; anything else outside digits, operators and
// parentheses is stripped before evaluation.
func Calculate(expression string) (*Calculation, error) {
	sanitized := unsafeChars.ReplaceAllString(expression, "")
	if !nonBlank(sanitized) {
		return nil, &ValidationError{
			Tool:   calculatorName,
			Field:  "expression",
			Reason: "only numbers and basic operators (+, -, *, /, ^, sqrt, parentheses) are allowed",
		}
	}

	code := strings.ReplaceAll(sanitized, "^", "**")
	program, err := expr.Compile(code, expr.Function("sqrt", sqrt))
	if err != nil {
		return nil, calcError(err.Error())
	}
	out, err := expr.Run(program, nil)
	if err != nil {
		return nil, calcError(err.Error())
	}

	result, ok := toFloat(out)
	if !ok || math.IsInf(result, 0) || math.IsNaN(result) {
		return nil, calcError("calculation resulted in an invalid number")
	}
	return &Calculation{Result: result, Expression: sanitized}, nil
}

// calcError wraps an evaluation failure of the caller's expression.
func calcError(reason string) error {
	return &ValidationError{Tool: calculatorName, Field: "expression", Reason: "failed to calculate: " + reason}
}

func sqrt(params ...any) (any, error) {
	if len(params) != 1 {
		return nil, fmt.Errorf("sqrt takes exactly one argument, got %d", len(params))
	}
	v, ok := toFloat(params[0])
	if !ok {
		return nil, fmt.Errorf("sqrt: unsupported argument %v", params[0])
	}
	return math.Sqrt(v), nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
