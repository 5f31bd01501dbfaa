package validation

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/craftly-living/backend/errs"
	"github.com/craftly-living/backend/models"
)

const invalidBuilderMessage = "Invalid builder data"

var builderRequiredKeys = []string{
	"businessName",
	"contactName",
	"email",
	"phone",
	"businessAddress",
	"serviceAreas",
	"specialties",
	"yearsExperience",
	"description",
}

// builderOptionalStrings are accepted as "" from clients and stored as null.
var builderOptionalStrings = []string{
	"abn",
	"licenseNumber",
	"websiteUrl",
	"insuranceDetails",
	"profileImageUrl",
	"priceRangeMin",
	"priceRangeMax",
}

// NormalizeBuilderPayload rewrites a decoded builder payload in place: blank
// optional strings become null, a missing portfolioImages becomes [] and the
// email is trimmed and lower-cased.
func NormalizeBuilderPayload(payload map[string]any) {
	for _, key := range builderOptionalStrings {
		if s, ok := payload[key].(string); ok && strings.TrimSpace(s) == "" {
			payload[key] = nil
		}
	}
	if v, ok := payload["portfolioImages"]; !ok || v == nil {
		payload["portfolioImages"] = []any{}
	}
	if s, ok := payload["email"].(string); ok {
		payload["email"] = strings.ToLower(strings.TrimSpace(s))
	}
}

// ValidateBuilderInput normalizes and checks a raw builder signup payload and
// decodes it into a create input.
func ValidateBuilderInput(ctx context.Context, raw []byte) (models.BuilderInput, error) {
	payload, err := decodeObject(raw, "builder")
	if err != nil {
		return models.BuilderInput{}, err
	}
	NormalizeBuilderPayload(payload)

	normalized, err := json.Marshal(payload)
	if err != nil {
		return models.BuilderInput{}, errs.NewMalformedPayloadError("builder", err)
	}

	fields := requireKeys(payload, builderRequiredKeys...)
	schemaFields, err := checkSchema(ctx, builderSchema, normalized)
	if err != nil {
		return models.BuilderInput{}, errs.NewMalformedPayloadError("builder", err)
	}
	fields = append(fields, schemaFields...)
	fields = append(fields, builderFormatChecks(payload)...)
	fields = append(fields, requireIntegers(payload, "yearsExperience")...)
	fields = append(fields, invalidTextFields(raw)...)
	if len(fields) > 0 {
		return models.BuilderInput{}, errs.NewValidationError(invalidBuilderMessage, fields)
	}

	var in models.BuilderInput
	if err := json.Unmarshal(normalized, &in); err != nil {
		return models.BuilderInput{}, errs.NewMalformedPayloadError("builder", err)
	}
	return in, nil
}

func builderFormatChecks(payload map[string]any) []errs.FieldError {
	var fields []errs.FieldError
	if email := stringField(payload, "email"); email != nil && *email != "" && !ValidEmail(*email) {
		fields = append(fields, errs.FieldError{Field: "email", Message: "must be a valid email address"})
	}
	if site := stringField(payload, "websiteUrl"); site != nil && !ValidWebURL(*site) {
		fields = append(fields, errs.FieldError{Field: "websiteUrl", Message: "must be a valid http(s) URL"})
	}
	checkDecimalPair(&fields, "priceRangeMin", "priceRangeMax",
		stringField(payload, "priceRangeMin"), stringField(payload, "priceRangeMax"))
	return fields
}
