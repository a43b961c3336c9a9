package jsonlist

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// Encode marshals a list of names into its canonical stored form: a
// single-encoded JSON array. A nil slice encodes as [].
func Encode(items []string) (datatypes.JSON, error) {
	if items == nil {
		items = []string{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// Decode parses a stored list column back into names. Legacy writers
// occasionally stored the array double-encoded (a JSON string containing a
// JSON array); Decode unwraps that one level so `"[\"France\"]"` comes back
// as ["France"], not as the raw string.
func Decode(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return []string{}, nil
	}

	var items []string
	if err := json.Unmarshal(raw, &items); err == nil {
		return items, nil
	}

	var inner string
	if err := json.Unmarshal(raw, &inner); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(inner), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// IsCanonical reports whether raw is already in the canonical single-encoded
// form. Used by the startup normalization pass to find legacy rows.
func IsCanonical(raw []byte) bool {
	if len(raw) == 0 {
		return false
	}
	var items []string
	return json.Unmarshal(raw, &items) == nil
}
