package canonical

import (
	"bytes"
	"encoding/hex"
	"strconv"
)

// EncodeJSON returns the deterministic JSON-like encoding of v: minimal
// single-line form, no trailing whitespace, map keys in canonical order per
// the KeyOrder table. order may be nil, in which case every map's keys are
// ordered lexically.
func EncodeJSON(v any, order KeyOrder) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v, "", "", order); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v any, shape, path string, order KeyOrder) error {
	switch x := v.(type) {
	case nil:
		buf.WriteString("null")
		return nil
	case string:
		writeJSONString(buf, x)
		return nil
	case []any:
		buf.WriteByte('[')
		for i, item := range x {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item, shape, indexPath(path, i), order); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case map[string]any:
		buf.WriteByte('{')
		for i, k := range sortedKeys(x, order[shape]) {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSONString(buf, k)
			buf.WriteByte(':')
			if err := writeJSON(buf, x[k], childShape(shape, k), childPath(path, k), order); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	}
	if n, ok := asInt(v); ok {
		buf.WriteString(strconv.FormatInt(n, 10))
		return nil
	}
	return &UnsupportedTypeError{Path: path, Value: v}
}

// writeJSONString escapes backslash, double-quote, and the five shorthand
// control characters; all remaining control characters use \u00xx with
// lowercase hex.
func writeJSONString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '\\':
			buf.WriteString(`\\`)
		case r == '"':
			buf.WriteString(`\"`)
		case r == '\n':
			buf.WriteString(`\n`)
		case r == '\r':
			buf.WriteString(`\r`)
		case r == '\t':
			buf.WriteString(`\t`)
		case r == '\f':
			buf.WriteString(`\f`)
		case r == '\b':
			buf.WriteString(`\b`)
		case r <= 0x1f:
			var b [6]byte
			b[0] = '\\'
			b[1] = 'u'
			b[2] = '0'
			b[3] = '0'
			hex.Encode(b[4:], []byte{byte(r)})
			buf.Write(b[:])
		default:
			buf.WriteRune(r)
		}
	}
	buf.WriteByte('"')
}
