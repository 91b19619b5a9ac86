package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// productFields are the writable product attributes of the JSON API.
var productFields = []string{"name", "description", "price", "is_active", "category_id"}

// DecodeProduct applies the supplied JSON attributes on top of base. Values
// of the wrong JSON type are reported as field errors so they surface
// together with the rule violations.
func DecodeProduct(raw map[string]json.RawMessage, base ProductForm) (ProductForm, FieldSet, Errors) {
	form := base
	supplied := FieldSet{}
	errs := Errors{}

	for _, field := range productFields {
		value, ok := raw[field]
		if !ok {
			continue
		}
		supplied[field] = true

		switch field {
		case "name":
			s, ok := decodeNullableString(value)
			if !ok {
				errs.Add(field, fmt.Sprintf("The %s field must be a string.", label(field)))
			}
			form.Name = s
		case "description":
			s, ok := decodeNullableString(value)
			if !ok {
				errs.Add(field, fmt.Sprintf("The %s field must be a string.", label(field)))
			}
			form.Description = s
		case "price":
			t, ok := decodeScalar(value)
			if !ok {
				errs.Add(field, fmt.Sprintf("The %s field must be a number.", label(field)))
			}
			form.Price = t
		case "is_active":
			b, ok := decodeBool(value)
			if !ok {
				errs.Add(field, fmt.Sprintf("The %s field must be true or false.", label(field)))
			}
			form.IsActive = b
		case "category_id":
			t, ok := decodeScalar(value)
			if !ok {
				errs.Add(field, fmt.Sprintf("The selected %s is invalid.", label(field)))
			}
			form.CategoryID = t
		}
	}

	return form, supplied, errs
}

func decodeNullableString(raw json.RawMessage) (string, bool) {
	if isNull(raw) {
		return "", true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// decodeScalar accepts a string, a number or null.
func decodeScalar(raw json.RawMessage) (Text, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", false
	}
	if trimmed[0] != '"' && trimmed[0] != '-' && (trimmed[0] < '0' || trimmed[0] > '9') && !isNull(trimmed) {
		return "", false
	}

	var t Text
	if err := t.UnmarshalJSON(trimmed); err != nil {
		return "", false
	}
	return t, true
}

// decodeBool accepts true, false, 0, 1, "0" and "1".
func decodeBool(raw json.RawMessage) (bool, bool) {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b, true
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return parseBinary(n.String())
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return parseBinary(s)
	}
	return false, false
}

func parseBinary(s string) (bool, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || (n != 0 && n != 1) {
		return false, false
	}
	return n == 1, true
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
