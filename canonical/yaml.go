package canonical

import (
	"bytes"
	"strconv"
	"strings"
)

// EncodeYAML returns the deterministic YAML-like encoding of v: block style,
// two-space indent per nesting level, map keys in canonical order per the
// KeyOrder table. Scalars, nulls, and empty containers render inline; other
// containers open an indented block. The output is not a general-purpose
// YAML document: it only needs to round-trip through this system's own
// reader, so strings are single-quoted with internal quotes doubled and no
// further escaping.
func EncodeYAML(v any, order KeyOrder) ([]byte, error) {
	var buf bytes.Buffer
	if s, ok, err := yamlInline(v, ""); err != nil {
		return nil, err
	} else if ok {
		buf.WriteString(s)
		buf.WriteByte('\n')
		return buf.Bytes(), nil
	}
	if err := writeYAMLBlock(&buf, v, 0, "", "", order); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// yamlInline renders v in inline form if it is a scalar, null, or empty
// container. ok is false for non-empty containers.
func yamlInline(v any, path string) (string, bool, error) {
	switch x := v.(type) {
	case nil:
		return "~", true, nil
	case string:
		return "'" + strings.ReplaceAll(x, "'", "''") + "'", true, nil
	case []any:
		if len(x) == 0 {
			return "[]", true, nil
		}
		return "", false, nil
	case map[string]any:
		if len(x) == 0 {
			return "{}", true, nil
		}
		return "", false, nil
	}
	if n, ok := asInt(v); ok {
		return strconv.FormatInt(n, 10), true, nil
	}
	return "", false, &UnsupportedTypeError{Path: path, Value: v}
}

func writeYAMLBlock(buf *bytes.Buffer, v any, indent int, shape, path string, order KeyOrder) error {
	pad := strings.Repeat("  ", indent)

	switch x := v.(type) {
	case []any:
		for i, item := range x {
			ip := indexPath(path, i)
			s, ok, err := yamlInline(item, ip)
			if err != nil {
				return err
			}
			if ok {
				buf.WriteString(pad)
				buf.WriteString("- ")
				buf.WriteString(s)
				buf.WriteByte('\n')
				continue
			}
			buf.WriteString(pad)
			buf.WriteString("-\n")
			if err := writeYAMLBlock(buf, item, indent+1, shape, ip, order); err != nil {
				return err
			}
		}
		return nil
	case map[string]any:
		for _, k := range sortedKeys(x, order[shape]) {
			kp := childPath(path, k)
			s, ok, err := yamlInline(x[k], kp)
			if err != nil {
				return err
			}
			if ok {
				buf.WriteString(pad)
				buf.WriteString(k)
				buf.WriteString(": ")
				buf.WriteString(s)
				buf.WriteByte('\n')
				continue
			}
			buf.WriteString(pad)
			buf.WriteString(k)
			buf.WriteString(":\n")
			if err := writeYAMLBlock(buf, x[k], indent+1, childShape(shape, k), kp, order); err != nil {
				return err
			}
		}
		return nil
	}
	return &UnsupportedTypeError{Path: path, Value: v}
}
