package service

import (
	"regexp"
	"strings"

	providerdomain "github.com/revstack-dev/revstack/internal/provider/domain"
	"github.com/revstack-dev/revstack/internal/providerconfig/domain"
)

// validateSchema checks submitted config values against a provider's
// declared config schema. Unknown keys are rejected so typos cannot
// silently store dead credentials.
func validateSchema(schema map[string]providerdomain.ConfigField, values map[string]any) error {
	for key := range values {
		if _, ok := schema[key]; !ok {
			return &domain.SchemaViolation{Field: key, Reason: "is not part of the config schema"}
		}
	}

	for key, field := range schema {
		raw, present := values[key]
		if !present {
			if field.Required {
				return &domain.SchemaViolation{Field: key, Reason: "is required"}
			}
			continue
		}

		switch field.Type {
		case "string", "":
			value, ok := raw.(string)
			if !ok {
				return &domain.SchemaViolation{Field: key, Reason: "must be a string"}
			}
			if field.Required && strings.TrimSpace(value) == "" {
				return &domain.SchemaViolation{Field: key, Reason: "is required"}
			}
			if field.Pattern != "" {
				re, err := regexp.Compile(field.Pattern)
				if err != nil {
					return &domain.SchemaViolation{Field: key, Reason: "has an invalid pattern"}
				}
				if !re.MatchString(value) {
					return &domain.SchemaViolation{Field: key, Reason: "does not match the expected format"}
				}
			}
		case "bool":
			if _, ok := raw.(bool); !ok {
				return &domain.SchemaViolation{Field: key, Reason: "must be a boolean"}
			}
		case "number":
			switch raw.(type) {
			case float64, float32, int, int32, int64:
			default:
				return &domain.SchemaViolation{Field: key, Reason: "must be a number"}
			}
		default:
			return &domain.SchemaViolation{Field: key, Reason: "has an unsupported schema type"}
		}
	}
	return nil
}
