package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid  = errors.New("validation: schema invalid")
	ErrPayloadInvalid = errors.New("validation: payload invalid")
)

// Issue captures a single validation failure with its instance location.
type Issue struct {
	Location string
	Message  string
}

// PayloadError surfaces schema validation issues with enough context for the
// presentation layer to place complaints next to form fields.
type PayloadError struct {
	Issues []Issue
	Cause  error
}

func (e *PayloadError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrPayloadInvalid.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *PayloadError) Unwrap() error {
	return ErrPayloadInvalid
}

// Issues extracts validation issues from an error.
func Issues(err error) []Issue {
	if err == nil {
		return nil
	}
	var payloadErr *PayloadError
	if errors.As(err, &payloadErr) && payloadErr != nil {
		return payloadErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectIssues(validationErr)
	}
	return []Issue{{Message: err.Error()}}
}

// ValidateSchema ensures a descriptor schema can be compiled before the
// registry accepts it.
func ValidateSchema(schema map[string]any) error {
	if len(schema) == 0 {
		return nil
	}
	if _, err := compile(schema); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	return nil
}

// ValidatePayload validates a create payload against the descriptor schema.
// A nil or empty schema accepts everything.
func ValidatePayload(schema map[string]any, payload map[string]any) error {
	return validate(schema, payload, false)
}

// ValidatePartialPayload validates an update patch without enforcing required
// fields, since patches are partial by definition.
func ValidatePartialPayload(schema map[string]any, payload map[string]any) error {
	return validate(schema, payload, true)
}

func validate(schema map[string]any, payload map[string]any, partial bool) error {
	if len(schema) == 0 {
		return nil
	}
	if partial {
		schema = cloneMap(schema)
		delete(schema, "required")
	}
	compiled, err := compile(schema)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	if payload == nil {
		payload = map[string]any{}
	}
	if err := compiled.Validate(normalizeForValidation(payload)); err != nil {
		return &PayloadError{Issues: Issues(err), Cause: err}
	}
	return nil
}

func compile(schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("schema.json")
}

// normalizeForValidation round-trips the payload through JSON so typed Go
// values (int, custom slices) match what the validator expects.
func normalizeForValidation(payload map[string]any) any {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return payload
	}
	var normalized any
	if err := json.Unmarshal(encoded, &normalized); err != nil {
		return payload
	}
	return normalized
}

func cloneMap(src map[string]any) map[string]any {
	copied := make(map[string]any, len(src))
	for key, value := range src {
		copied[key] = value
	}
	return copied
}

func collectIssues(err *jsonschema.ValidationError) []Issue {
	if err == nil {
		return nil
	}
	issues := []Issue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
