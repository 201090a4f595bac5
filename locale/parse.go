package locale

import (
	"encoding/json"
	"errors"

	"github.com/ZaguanLabs/i18nmark"
	"github.com/tidwall/gjson"
)

// Parse decodes a JSON object into a table. Nested objects are flattened to
// dotted keys; non-string leaves are stored as raw JSON. Duplicate keys
// resolve to the last occurrence.
func Parse(data []byte) (*Table, error) {
	if !gjson.ValidBytes(data) {
		return nil, syntaxError(data)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, &i18nmark.ParseError{
			Offset: 0,
			Cause:  errors.New("top-level value is not an object"),
		}
	}

	t := NewTable()
	flatten(t, "", root)
	return t, nil
}

func flatten(t *Table, prefix string, obj gjson.Result) {
	obj.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if prefix != "" {
			name = prefix + "." + name
		}

		switch {
		case value.IsObject():
			t.nested = true
			flatten(t, name, value)
		case value.Type == gjson.String:
			t.Set(name, value.String())
		case value.Type == gjson.Null:
			t.Set(name, "")
		default:
			t.SetRaw(name, value.Raw)
		}
		return true
	})
}

// syntaxError builds a ParseError carrying the byte offset of the first
// syntax error in data.
func syntaxError(data []byte) error {
	var v any
	err := json.Unmarshal(data, &v)

	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		return &i18nmark.ParseError{Offset: syn.Offset, Cause: err}
	}
	if err == nil {
		err = errors.New("invalid JSON")
	}
	return &i18nmark.ParseError{Offset: -1, Cause: err}
}
