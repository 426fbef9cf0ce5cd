package api

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// payloadSchema is a JSON Schema applied to a response body before it is
// decoded into a Go type.
type payloadSchema struct {
	Name       string
	Definition string
}

var itemSchema = payloadSchema{
	Name: "item",
	Definition: `{
		"type": "object",
		"required": ["item_id", "question_text", "correct_answer"],
		"properties": {
			"item_id":         {"type": "string", "minLength": 1},
			"skill_id":        {"type": "string"},
			"question_text":   {"type": "string"},
			"question_type":   {"type": "string"},
			"difficulty":      {"type": "integer"},
			"parameters":      {"type": ["object", "null"]},
			"correct_answer":  {"type": "string"},
			"hint":            {"type": ["string", "null"]},
			"explanation":     {"type": ["string", "null"]},
			"validation_rule": {"type": ["string", "null"]}
		}
	}`,
}

var dailyStatusSchema = payloadSchema{
	Name: "daily_status",
	Definition: `{
		"type": "object",
		"required": ["student_id", "completed_questions", "target_questions"],
		"properties": {
			"student_id":          {"type": "string"},
			"session_date":        {"type": "string"},
			"completed_questions": {"type": "integer", "minimum": 0},
			"target_questions":    {"type": "integer", "minimum": 0},
			"is_completed":        {"type": "boolean"}
		}
	}`,
}

// schemaCache caches compiled schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// checkPayload validates raw against schema. Failures are *DecodingError.
func checkPayload(schema payloadSchema, raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &DecodingError{Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := compiledSchema(schema)
	if err != nil {
		return &DecodingError{Err: fmt.Errorf("compile schema %q: %w", schema.Name, err)}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &DecodingError{Err: fmt.Errorf("%s payload: %w", schema.Name, err)}
	}
	return nil
}

func compiledSchema(schema payloadSchema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(schema.Definition))
	if err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}
