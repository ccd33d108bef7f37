package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"
)

type Tool interface {
	Name() string
	Title() string
	Description() string
	InputSchema() *jsonschema.Schema
	OutputSchema() *jsonschema.Schema
	Run(ctx context.Context, input map[string]any) (output map[string]any, err error)
}

type Call struct {
	Name  string         `json:"name"`
	Input map[string]any `json:"input"`
}

// toMap marshals v -> map[string]any to keep outputs uniform
func toMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// intArg reads an integer input. JSON numbers decode as float64; whole
// numbers sent as strings are not accepted.
func intArg(input map[string]any, key string) (int, bool, error) {
	raw, ok := input[key]
	if !ok || raw == nil {
		return 0, false, nil
	}
	switch v := raw.(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, true, fmt.Errorf("%s must be an integer, got %v", key, v)
		}
		return int(v), true, nil
	case int:
		return v, true, nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, true, fmt.Errorf("%s must be an integer: %w", key, err)
		}
		return int(n), true, nil
	default:
		return 0, true, fmt.Errorf("%s must be an integer, got %T", key, raw)
	}
}

// ValidateInput checks input against the tool's input schema.
func ValidateInput(t Tool, input map[string]any) error {
	resolved, err := t.InputSchema().Resolve(nil)
	if err != nil {
		return fmt.Errorf("resolve input schema: %w", err)
	}
	return resolved.Validate(input)
}

func stringArg(input map[string]any, key string) string {
	s, _ := input[key].(string)
	return s
}
