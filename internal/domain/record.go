package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// Field is a record field that is not part of the known schema.
// Value holds the submitted JSON compacted, with repeated keys in nested
// objects resolved the same way as at the top level.
type Field struct {
	Key   string
	Value json.RawMessage
}

// LinkRecord is a friend link entry decoded from an issue's data block.
// Fields are ordered to minimize memory padding.
type LinkRecord struct {
	Avatar      *string
	Name        string
	URL         string
	Description string
	Extra       []Field
}

// Known record keys.
const (
	keyName        = "name"
	keyURL         = "url"
	keyDescription = "description"
	keyAvatar      = "avatar"
)

// DecodeRecord decodes the contents of a data block as a strict JSON object.
//
// name and url are required strings. description and avatar are optional
// strings where null counts as absent. Any other key is kept in Extra in the
// order it was written; for repeated keys the last value wins, at any depth.
func DecodeRecord(data string) (*LinkRecord, error) {
	raw := bytes.TrimSpace([]byte(data))

	if !utf8.Valid(raw) {
		return nil, fmt.Errorf("%w: invalid UTF-8", ErrInvalidJSON)
	}
	if !json.Valid(raw) {
		var probe any
		err := json.Unmarshal(raw, &probe)
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if kind := jsonKind(raw); kind != "object" {
		return nil, fmt.Errorf("%w: got %s", ErrNotAnObject, kind)
	}

	fields, err := orderedFields(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	rec := &LinkRecord{}
	var haveName, haveURL bool
	for _, f := range fields {
		switch f.Key {
		case keyName:
			rec.Name, haveName = stringValue(f.Value)
		case keyURL:
			rec.URL, haveURL = stringValue(f.Value)
		case keyDescription:
			s, ok, err := optionalString(f)
			if err != nil {
				return nil, err
			}
			if ok {
				rec.Description = s
			}
		case keyAvatar:
			s, ok, err := optionalString(f)
			if err != nil {
				return nil, err
			}
			if ok {
				rec.Avatar = &s
			}
		default:
			rec.Extra = append(rec.Extra, f)
		}
	}

	if !haveName {
		return nil, fmt.Errorf("%w: %q must be a string", ErrMissingRequiredField, keyName)
	}
	if !haveURL {
		return nil, fmt.Errorf("%w: %q must be a string", ErrMissingRequiredField, keyURL)
	}
	return rec, nil
}

// WithoutExtra returns a copy of the record with no extra fields.
func (r LinkRecord) WithoutExtra() LinkRecord {
	r.Extra = nil
	return r
}

// MarshalJSON writes name, url, description, avatar (when set) and then the
// extra fields in their original order.
func (r LinkRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	writeMember(&buf, keyName, r.Name, false)
	writeMember(&buf, keyURL, r.URL, true)
	writeMember(&buf, keyDescription, r.Description, true)
	if r.Avatar != nil {
		writeMember(&buf, keyAvatar, *r.Avatar, true)
	}
	for _, f := range r.Extra {
		buf.WriteByte(',')
		writeString(&buf, f.Key)
		buf.WriteByte(':')
		if err := json.Compact(&buf, f.Value); err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Key, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// orderedFields returns the members of a JSON object in source order.
// A repeated key keeps its first position and takes the last value.
func orderedFields(raw []byte) ([]Field, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	var fields []Field
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		if value, err = canonicalValue(value); err != nil {
			return nil, err
		}

		if i, ok := index[key]; ok {
			fields[i].Value = value
			continue
		}
		index[key] = len(fields)
		fields = append(fields, Field{Key: key, Value: value})
	}
	return fields, nil
}

// canonicalValue compacts a JSON value and resolves repeated object keys in
// it, keeping the first position and the last value.
func canonicalValue(raw json.RawMessage) (json.RawMessage, error) {
	switch jsonKind(raw) {
	case "object":
		fields, err := orderedFields(raw)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, f := range fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeString(&buf, f.Key)
			buf.WriteByte(':')
			buf.Write(f.Value)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	case "array":
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range items {
			v, err := canonicalValue(item)
			if err != nil {
				return nil, err
			}
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.Write(v)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	default:
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}

// stringValue unmarshals v if it is a JSON string.
func stringValue(v json.RawMessage) (string, bool) {
	if len(v) == 0 || v[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", false
	}
	return s, true
}

// optionalString reads an optional string field. null reads as absent.
func optionalString(f Field) (string, bool, error) {
	if string(f.Value) == "null" {
		return "", false, nil
	}
	s, ok := stringValue(f.Value)
	if !ok {
		return "", false, fmt.Errorf("%w: %q must be a string", ErrInvalidFieldType, f.Key)
	}
	return s, true, nil
}

// jsonKind names the type of a valid, trimmed JSON value by its first byte.
func jsonKind(raw []byte) string {
	switch raw[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}

func writeMember(buf *bytes.Buffer, key, value string, comma bool) {
	if comma {
		buf.WriteByte(',')
	}
	writeString(buf, key)
	buf.WriteByte(':')
	writeString(buf, value)
}

// writeString writes s as a JSON string without HTML escaping.
func writeString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	// Encode appends a newline.
	buf.Truncate(buf.Len() - 1)
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
