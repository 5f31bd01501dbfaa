// Package validation checks untrusted create payloads before they reach
// storage. Raw JSON is checked against embedded JSON schemas; the checks a
// schema can't express (email and URL formats, decimal bounds, range order)
// run in Go. Every violation is collected into one errs.ValidationError.
package validation

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/craftly-living/backend/errs"
	"github.com/qri-io/jsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var (
	projectFormSchema = mustLoadSchema("schemas/project_form.json")
	builderSchema     = mustLoadSchema("schemas/builder.json")
)

// at most eight integer digits and two fraction digits, the range of a decimal(10,2)
var decimalPattern = regexp.MustCompile(`^\d{1,8}(\.\d{1,2})?$`)

func mustLoadSchema(name string) *jsonschema.Schema {
	data, err := schemaFS.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("read schema %s: %v", name, err))
	}
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal(data, rs); err != nil {
		panic(fmt.Sprintf("compile schema %s: %v", name, err))
	}
	return rs
}

// decodeObject parses raw as a JSON object, keeping numbers exact.
func decodeObject(raw []byte, payloadType string) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, errs.NewMalformedPayloadError(payloadType, err)
	}
	if payload == nil {
		return nil, errs.NewMalformedPayloadError(payloadType, fmt.Errorf("payload is not a JSON object"))
	}
	return payload, nil
}

// checkSchema validates raw against rs and maps each key error to the
// top-level field it concerns.
func checkSchema(ctx context.Context, rs *jsonschema.Schema, raw []byte) ([]errs.FieldError, error) {
	keyErrs, err := rs.ValidateBytes(ctx, raw)
	if err != nil {
		return nil, err
	}

	fields := make([]errs.FieldError, 0, len(keyErrs))
	for _, ke := range keyErrs {
		fields = append(fields, errs.FieldError{
			Field:   fieldFromPath(ke.PropertyPath),
			Message: ke.Message,
		})
	}
	return fields, nil
}

// fieldFromPath turns a JSON pointer such as "/serviceAreas/0" into "serviceAreas".
func fieldFromPath(path string) string {
	trimmed := strings.Trim(strings.TrimPrefix(path, "#"), "/")
	if trimmed == "" {
		return "payload"
	}
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		trimmed = trimmed[:i]
	}
	return trimmed
}

// requireKeys reports every key that is absent or null.
func requireKeys(payload map[string]any, keys ...string) []errs.FieldError {
	var fields []errs.FieldError
	for _, key := range keys {
		if v, ok := payload[key]; !ok || v == nil {
			fields = append(fields, errs.FieldError{Field: key, Message: "is required"})
		}
	}
	return fields
}

// requireIntegers reports numeric keys whose value is not a whole int64.
// The schema's integer check accepts forms such as 2.0 that can't be decoded.
func requireIntegers(payload map[string]any, keys ...string) []errs.FieldError {
	var fields []errs.FieldError
	for _, key := range keys {
		n, ok := payload[key].(json.Number)
		if !ok {
			continue
		}
		if _, err := n.Int64(); err != nil {
			fields = append(fields, errs.FieldError{Field: key, Message: "must be an integer"})
		}
	}
	return fields
}

// invalidTextFields reports the top-level keys whose raw value is not valid
// UTF-8. Decoding would otherwise replace those bytes with U+FFFD.
func invalidTextFields(raw []byte) []errs.FieldError {
	if utf8.Valid(raw) {
		return nil
	}

	var values map[string]json.RawMessage
	if err := json.Unmarshal(raw, &values); err != nil {
		return []errs.FieldError{{Field: "payload", Message: "must be valid UTF-8 text"}}
	}
	var fields []errs.FieldError
	for key, value := range values {
		if !utf8.Valid(value) {
			fields = append(fields, errs.FieldError{Field: key, Message: "must be valid UTF-8 text"})
		}
	}
	if len(fields) == 0 {
		fields = append(fields, errs.FieldError{Field: "payload", Message: "must be valid UTF-8 text"})
	}
	return fields
}

func requireString(fields *[]errs.FieldError, field, value string) {
	if strings.TrimSpace(value) == "" {
		*fields = append(*fields, errs.FieldError{Field: field, Message: "is required"})
	}
}

// checkDecimalPair validates an optional decimal-as-string range.
func checkDecimalPair(fields *[]errs.FieldError, minField, maxField string, min, max *string) {
	minOK := checkDecimal(fields, minField, min)
	maxOK := checkDecimal(fields, maxField, max)
	if !minOK || !maxOK || min == nil || max == nil {
		return
	}

	lo, _ := strconv.ParseFloat(*min, 64)
	hi, _ := strconv.ParseFloat(*max, 64)
	if lo > hi {
		*fields = append(*fields, errs.FieldError{
			Field:   maxField,
			Message: fmt.Sprintf("must be greater than or equal to %s", minField),
		})
	}
}

func checkDecimal(fields *[]errs.FieldError, field string, value *string) bool {
	if value == nil {
		return true
	}
	if !decimalPattern.MatchString(*value) {
		*fields = append(*fields, errs.FieldError{
			Field:   field,
			Message: "must be a non-negative decimal with at most 8 integer and 2 fraction digits",
		})
		return false
	}
	return true
}

// ValidEmail accepts a bare address such as sam@example.com, without a display name.
func ValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// ValidWebURL accepts absolute http and https URLs.
func ValidWebURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func stringField(payload map[string]any, key string) *string {
	if s, ok := payload[key].(string); ok {
		return &s
	}
	return nil
}
