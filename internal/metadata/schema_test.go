package metadata

import (
	"errors"
	"testing"

	"github.com/goliatone/go-sitefile/internal/source"
	"github.com/goliatone/go-sitefile/pkg/interfaces"
)

func TestSchemaValidatorAcceptsMatchingMetadata(t *testing.T) {
	validator := loadPageValidator(t)

	meta := FromMap(map[string]any{"title": "About", "tags": []any{"x"}})
	if err := validator.Validate(source.KindPage, meta); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestSchemaValidatorReportsIssues(t *testing.T) {
	validator := loadPageValidator(t)

	meta := FromMap(map[string]any{"tags": "plain string"})

	err := validator.Validate(source.KindPage, meta)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
	if len(Issues(err)) < 2 {
		t.Fatalf("expected missing title and tag type issues, got %#v", Issues(err))
	}
}

func TestSchemaValidatorEnforcesRequiredOnMissingBlock(t *testing.T) {
	validator := loadPageValidator(t)

	if err := validator.Validate(source.KindPage, nil); err == nil {
		t.Fatal("expected required title to fail for files without metadata")
	}
}

func TestSchemaValidatorIgnoresKindsWithoutSchema(t *testing.T) {
	validator := loadPageValidator(t)

	if err := validator.Validate(source.KindLayout, &interfaces.Metadata{}); err != nil {
		t.Fatalf("expected layouts to pass without schema, got %v", err)
	}
	kinds := validator.Kinds()
	if len(kinds) != 1 || kinds[0] != source.KindPage {
		t.Fatalf("unexpected kinds %v", kinds)
	}
}

func TestNewSchemaValidatorRejectsBrokenSchema(t *testing.T) {
	_, err := NewSchemaValidator(map[source.Kind][]byte{
		source.KindPage: []byte(`{"type": 12}`),
	})
	if !errors.Is(err, ErrSchemaInvalid) {
		t.Fatalf("expected ErrSchemaInvalid, got %v", err)
	}
}

func TestLoadSchemaValidatorRejectsUnknownRoot(t *testing.T) {
	_, err := LoadSchemaValidator(map[string]string{"posts": "testdata/page.schema.json"})
	if !errors.Is(err, ErrSchemaInvalid) {
		t.Fatalf("expected ErrSchemaInvalid, got %v", err)
	}
}

func loadPageValidator(t *testing.T) *SchemaValidator {
	t.Helper()
	validator, err := LoadSchemaValidator(map[string]string{"pages": "testdata/page.schema.json"})
	if err != nil {
		t.Fatalf("LoadSchemaValidator: %v", err)
	}
	return validator
}
