package validation

import (
	"context"
	"encoding/json"

	"github.com/craftly-living/backend/errs"
	"github.com/craftly-living/backend/models"
)

const invalidProjectMessage = "Invalid project data"

var projectRequiredKeys = []string{"renovationType", "postcode", "style", "timeline"}

// ValidateProjectInput checks a raw project form payload and decodes it. Missing
// required fields, wrong types and empty required strings are all reported
// together.
func ValidateProjectInput(ctx context.Context, raw []byte) (models.ProjectForm, error) {
	payload, err := decodeObject(raw, "project")
	if err != nil {
		return models.ProjectForm{}, err
	}

	fields := requireKeys(payload, projectRequiredKeys...)
	schemaFields, err := checkSchema(ctx, projectFormSchema, raw)
	if err != nil {
		return models.ProjectForm{}, errs.NewMalformedPayloadError("project", err)
	}
	fields = append(fields, schemaFields...)
	fields = append(fields, requireIntegers(payload, "userId")...)
	fields = append(fields, invalidTextFields(raw)...)
	if len(fields) > 0 {
		return models.ProjectForm{}, errs.NewValidationError(invalidProjectMessage, fields)
	}

	var form models.ProjectForm
	if err := json.Unmarshal(raw, &form); err != nil {
		return models.ProjectForm{}, errs.NewMalformedPayloadError("project", err)
	}
	return form, nil
}

// CheckProjectInput is the authoritative check on a normalized create input.
func CheckProjectInput(in models.RenovationProjectInput) error {
	var fields []errs.FieldError
	requireString(&fields, "renovationType", in.RenovationType)
	requireString(&fields, "postcode", in.Postcode)
	requireString(&fields, "style", in.Style)
	requireString(&fields, "timeline", in.Timeline)
	checkDecimalPair(&fields, "budgetMin", "budgetMax", in.BudgetMin, in.BudgetMax)
	if in.UserID != nil && *in.UserID <= 0 {
		fields = append(fields, errs.FieldError{Field: "userId", Message: "must be a positive integer"})
	}

	if len(fields) > 0 {
		return errs.NewValidationError(invalidProjectMessage, fields)
	}
	return nil
}
