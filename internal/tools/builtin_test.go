package tools

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClassifyEntropy_Validation(t *testing.T) {
	tool := &classifyEntropyTool{}

	tests := []struct {
		name   string
		args   map[string]interface{}
		reason string
	}{
		{"missing", map[string]interface{}{}, "is required"},
		{"null", map[string]interface{}{"input": nil}, "is required"},
		{"number", map[string]interface{}{"input": 42.0}, "must be a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tool.Execute(context.Background(), tt.args)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Reason != tt.reason {
				t.Errorf("expected reason %q, got %q", tt.reason, verr.Reason)
			}
			if !strings.Contains(err.Error(), "classify-entropy") {
				t.Errorf("error should name the tool: %v", err)
			}
		})
	}
}

func TestClassifyEntropy_EmptyInputIsValid(t *testing.T) {
	tool := &classifyEntropyTool{}

	if _, err := tool.Execute(context.Background(), map[string]interface{}{"input": ""}); err != nil {
		t.Errorf("empty string is a valid input: %v", err)
	}
}

func TestCalculator(t *testing.T) {
	tests := []struct {
		expression string
		want       float64
		sanitized  string
	}{
		{"2 + 2", 4, "2 + 2"},
		{"sqrt(16) * 3", 12, "sqrt(16) * 3"},
		{"(10 - 2) / 4", 2, "(10 - 2) / 4"},
		{"2^10", 1024, "2^10"},
		{"7 / 2", 3.5, "7 / 2"},
		{"-3 * -3", 9, "-3 * -3"},
		{"7 * 6 = ?", 42, "7 * 6  "},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			got, err := Calculate(tt.expression)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got.Result-tt.want) > 1e-9 {
				t.Errorf("expected %v, got %v", tt.want, got.Result)
			}
			if got.Expression != tt.sanitized {
				t.Errorf("expected sanitized %q, got %q", tt.sanitized, got.Expression)
			}
		})
	}
}

func TestCalculator_Errors(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		reason     string
	}{
		{"nothing left after sanitising", "hello", "only numbers"},
		{"blank", "   ", "only numbers"},
		{"division by zero", "1/0", "invalid number"},
		{"negative root", "sqrt(-1)", "invalid number"},
		{"syntax", "2 + * 3", "failed to calculate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate(tt.expression)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != "expression" || !strings.Contains(verr.Reason, tt.reason) {
				t.Errorf("expected reason containing %q, got %+v", tt.reason, verr)
			}
		})
	}
}

func TestCalculator_Tool(t *testing.T) {
	tool := &calculatorTool{}

	out, err := tool.Execute(context.Background(), map[string]interface{}{"expression": "1 + 2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(&Calculation{Result: 3, Expression: "1 + 2"}, out); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}

	_, err = tool.Execute(context.Background(), map[string]interface{}{})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("expected ValidationError for missing expression, got %v", err)
	}
}

func TestMockAPI(t *testing.T) {
	tool := &mockAPITool{}

	tests := []struct {
		userID string
		want   UserLookup
	}{
		{
			userID: "USR-42",
			want:   UserLookup{Result: &User{ID: "USR-42", Name: "Alice Agentic", Status: "active"}},
		},
		{
			userID: "usr-42",
			want:   UserLookup{Error: `Validation Error: userId must strictly begin with the prefix "USR-".`},
		},
		{
			userID: "42",
			want:   UserLookup{Error: `Validation Error: userId must strictly begin with the prefix "USR-".`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.userID, func(t *testing.T) {
			out, err := tool.Execute(context.Background(), map[string]interface{}{"userId": tt.userID})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, out); diff != "" {
				t.Errorf("lookup mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIntArg(t *testing.T) {
	args := map[string]interface{}{"f": 3.0, "i": 4, "s": "5"}
	if v, ok := intArg(args, "f"); !ok || v != 3 {
		t.Errorf("float: got %d %v", v, ok)
	}
	if v, ok := intArg(args, "i"); !ok || v != 4 {
		t.Errorf("int: got %d %v", v, ok)
	}
	if _, ok := intArg(args, "s"); ok {
		t.Error("string should not parse as int")
	}
	if _, ok := intArg(args, "missing"); ok {
		t.Error("missing key should not parse")
	}
}
