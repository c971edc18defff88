package metadata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-sitefile/internal/source"
	"github.com/goliatone/go-sitefile/pkg/interfaces"
)

var (
	ErrSchemaInvalid    = errors.New("metadata: schema invalid")
	ErrSchemaValidation = errors.New("metadata: schema validation failed")
)

// Issue is a single schema violation.
type Issue struct {
	Location string
	Message  string
}

// ValidationError lists the schema violations of one metadata block.
type ValidationError struct {
	Kind   source.Kind
	Issues []Issue
	Cause  error
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
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
	return fmt.Sprintf("%s metadata: %s", e.Kind, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// SchemaValidator checks metadata blocks against one compiled schema per
// content kind. Kinds without a schema accept anything.
type SchemaValidator struct {
	schemas map[source.Kind]*jsonschema.Schema
}

// NewSchemaValidator compiles the supplied JSON schema documents.
func NewSchemaValidator(documents map[source.Kind][]byte) (*SchemaValidator, error) {
	validator := &SchemaValidator{schemas: make(map[source.Kind]*jsonschema.Schema, len(documents))}
	for kind, document := range documents {
		if len(bytes.TrimSpace(document)) == 0 {
			continue
		}
		compiled, err := compileSchema(kind.String()+".schema.json", document)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrSchemaInvalid, kind, err)
		}
		validator.schemas[kind] = compiled
	}
	return validator, nil
}

// LoadSchemaValidator reads schema documents from disk, keyed by kind root
// ("pages", "layouts", "includes").
func LoadSchemaValidator(paths map[string]string) (*SchemaValidator, error) {
	documents := make(map[source.Kind][]byte, len(paths))
	for root, path := range paths {
		kind, err := source.ParseKind(root)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrSchemaInvalid, path, err)
		}
		documents[kind] = data
	}
	return NewSchemaValidator(documents)
}

// Validate checks meta against the schema registered for kind. A nil block is
// validated as an empty object so required keys are still enforced.
func (v *SchemaValidator) Validate(kind source.Kind, meta *interfaces.Metadata) error {
	if v == nil {
		return nil
	}
	schema, ok := v.schemas[kind]
	if !ok {
		return nil
	}

	payload, err := jsonPayload(meta)
	if err != nil {
		return &ValidationError{Kind: kind, Cause: err}
	}
	if err := schema.Validate(payload); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return &ValidationError{Kind: kind, Issues: collectIssues(validationErr), Cause: err}
		}
		return &ValidationError{Kind: kind, Cause: err}
	}
	return nil
}

// Kinds reports which kinds have a schema registered.
func (v *SchemaValidator) Kinds() []source.Kind {
	if v == nil {
		return nil
	}
	var out []source.Kind
	for _, kind := range source.Kinds() {
		if _, ok := v.schemas[kind]; ok {
			out = append(out, kind)
		}
	}
	return out
}

// Issues extracts schema violations from err.
func Issues(err error) []Issue {
	if err == nil {
		return nil
	}
	var validationErr *ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return validationErr.Issues
	}
	return []Issue{{Message: err.Error()}}
}

func compileSchema(name string, document []byte) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(name, bytes.NewReader(document)); err != nil {
		return nil, err
	}
	return compiler.Compile(name)
}

// jsonPayload round-trips the raw block through encoding/json so dates and
// integer types take the shapes the schema compiler expects.
func jsonPayload(meta *interfaces.Metadata) (any, error) {
	raw := map[string]any{}
	if meta != nil && meta.Raw != nil {
		raw = meta.Raw
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var payload any
	if err := json.Unmarshal(encoded, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func collectIssues(err *jsonschema.ValidationError) []Issue {
	var issues []Issue
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
