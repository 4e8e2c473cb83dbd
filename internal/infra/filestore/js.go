package filestore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z_$][a-zA-Z0-9_$]*$`)

// reservedWords cannot be used as bare object keys or export names.
var reservedWords = map[string]bool{
	"class": true, "const": true, "let": true, "var": true, "function": true,
	"return": true, "if": true, "else": true, "for": true, "while": true,
	"do": true, "switch": true, "case": true, "default": true, "break": true,
	"continue": true, "try": true, "catch": true, "finally": true, "throw": true,
	"new": true, "this": true, "super": true, "extends": true, "import": true,
	"export": true, "from": true, "as": true, "async": true, "await": true,
	"yield": true, "static": true, "public": true, "private": true, "protected": true,
}

// IsIdentifier reports whether s can be written as a bare JavaScript identifier.
func IsIdentifier(s string) bool {
	return identifierPattern.MatchString(s) && !reservedWords[s]
}

// renderJS converts canonical JSON into an ES module exporting an object literal.
func renderJS(data []byte, export string) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var b bytes.Buffer
	if export == "" {
		b.WriteString("export default ")
	} else {
		fmt.Fprintf(&b, "export const %s = ", export)
	}
	if err := writeJSValue(&b, dec, 0); err != nil {
		return nil, err
	}
	b.WriteString(";\n")
	return b.Bytes(), nil
}

func writeJSValue(b *bytes.Buffer, dec *json.Decoder, depth int) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	switch v := tok.(type) {
	case json.Delim:
		if v == '{' {
			return writeJSContainer(b, dec, depth, '{', '}', true)
		}
		return writeJSContainer(b, dec, depth, '[', ']', false)
	case string:
		return writeJSString(b, v)
	case json.Number:
		b.WriteString(v.String())
	case bool:
		b.WriteString(strconv.FormatBool(v))
	case nil:
		b.WriteString("null")
	}
	return nil
}

func writeJSContainer(b *bytes.Buffer, dec *json.Decoder, depth int, open, closing byte, object bool) error {
	if !dec.More() {
		b.WriteByte(open)
		b.WriteByte(closing)
		_, err := dec.Token()
		return err
	}

	b.WriteByte(open)
	b.WriteByte('\n')
	for first := true; dec.More(); first = false {
		if !first {
			b.WriteString(",\n")
		}
		b.WriteString(strings.Repeat("  ", depth+1))
		if object {
			tok, err := dec.Token()
			if err != nil {
				return err
			}
			key, _ := tok.(string)
			if err := writeJSKey(b, key); err != nil {
				return err
			}
			b.WriteString(": ")
		}
		if err := writeJSValue(b, dec, depth+1); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteByte(closing)
	return nil
}

func writeJSKey(b *bytes.Buffer, key string) error {
	if IsIdentifier(key) {
		b.WriteString(key)
		return nil
	}
	return writeJSString(b, key)
}

// writeJSString writes s as a double-quoted literal. JSON string escaping is
// valid JavaScript and also covers U+2028 and U+2029.
func writeJSString(b *bytes.Buffer, s string) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	b.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
	return nil
}
