package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
)

// EncodedList is a list of strings persisted as JSON text. Writes always
// encode; reads fall back to an empty list when the stored text is not a JSON
// array of strings.
type EncodedList []string

// NewEncodedList copies items so callers can't mutate a stored list.
func NewEncodedList(items []string) EncodedList {
	out := make(EncodedList, len(items))
	copy(out, items)
	return out
}

// Encode returns the JSON text form. A nil list encodes as "[]".
func (l EncodedList) Encode() string {
	if l == nil {
		return "[]"
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		// a []string always marshals
		return "[]"
	}
	return string(b)
}

// DecodeList parses JSON text into a list. Blank or malformed text yields an
// empty list; malformed text is logged as a data-integrity warning.
func DecodeList(text string) EncodedList {
	if text == "" {
		return EncodedList{}
	}
	var items []string
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		log.Warn().Err(err).Str("text", text).Msg("malformed encoded list, falling back to empty list")
		return EncodedList{}
	}
	if items == nil {
		return EncodedList{}
	}
	return EncodedList(items)
}

// Value implements driver.Valuer
func (l EncodedList) Value() (driver.Value, error) {
	return l.Encode(), nil
}

// Scan implements sql.Scanner
func (l *EncodedList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = EncodedList{}
	case string:
		*l = DecodeList(v)
	case []byte:
		*l = DecodeList(string(v))
	default:
		return fmt.Errorf("encoded list: unsupported source type %T", src)
	}
	return nil
}

// MarshalJSON renders the list as a JSON array, never null.
func (l EncodedList) MarshalJSON() ([]byte, error) {
	return []byte(l.Encode()), nil
}
