package service

import (
	"errors"
	"testing"

	providerdomain "github.com/revstack-dev/revstack/internal/provider/domain"
	"github.com/revstack-dev/revstack/internal/providerconfig/domain"
)

func testSchema() map[string]providerdomain.ConfigField {
	return map[string]providerdomain.ConfigField{
		"secret_key": {Type: "string", Required: true, Pattern: `^sk_(test|live)_[A-Za-z0-9]+$`, Secure: true},
		"test_mode":  {Type: "bool"},
	}
}

func TestValidateSchemaAcceptsValidValues(t *testing.T) {
	err := validateSchema(testSchema(), map[string]any{
		"secret_key": "sk_test_abc123",
		"test_mode":  true,
	})
	if err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestValidateSchemaRequiresMandatoryFields(t *testing.T) {
	err := validateSchema(testSchema(), map[string]any{"test_mode": false})
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	var violation *domain.SchemaViolation
	if !errors.As(err, &violation) || violation.Field != "secret_key" {
		t.Fatalf("expected violation on secret_key, got %v", err)
	}
}

func TestValidateSchemaEnforcesPattern(t *testing.T) {
	err := validateSchema(testSchema(), map[string]any{"secret_key": "pk_test_abc123"})
	var violation *domain.SchemaViolation
	if !errors.As(err, &violation) || violation.Field != "secret_key" {
		t.Fatalf("expected pattern violation on secret_key, got %v", err)
	}
}

func TestValidateSchemaRejectsUnknownKeys(t *testing.T) {
	err := validateSchema(testSchema(), map[string]any{
		"secret_key": "sk_test_abc123",
		"api_token":  "oops",
	})
	var violation *domain.SchemaViolation
	if !errors.As(err, &violation) || violation.Field != "api_token" {
		t.Fatalf("expected violation on unknown key, got %v", err)
	}
}

func TestValidateSchemaEnforcesTypes(t *testing.T) {
	err := validateSchema(testSchema(), map[string]any{
		"secret_key": "sk_test_abc123",
		"test_mode":  "yes",
	})
	var violation *domain.SchemaViolation
	if !errors.As(err, &violation) || violation.Field != "test_mode" {
		t.Fatalf("expected type violation on test_mode, got %v", err)
	}
}
