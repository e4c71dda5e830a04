package repair

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// QuoteScalar encodes s as a single-line double-quoted YAML scalar that decodes
// back to exactly s.
func QuoteScalar(s string) string {
	node := yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s, Style: yaml.DoubleQuotedStyle}
	if out, err := yaml.Marshal(&node); err == nil {
		quoted := strings.TrimSuffix(string(out), "\n")
		if !strings.Contains(quoted, "\n") && decodesTo(quoted, s) {
			return quoted
		}
	}
	return escapeQuoted(s)
}

func decodesTo(quoted, want string) bool {
	var got string
	if err := yaml.Unmarshal([]byte(quoted), &got); err != nil {
		return false
	}
	return got == want
}

// escapeQuoted writes s as a double-quoted scalar using only escapes every YAML 1.2
// reader accepts. Line break characters are always escaped so the result stays on one line.
func escapeQuoted(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"':
			b.WriteString(`\"`)
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20, r == 0x7f, r >= 0x80 && r < 0xa0,
			r == 0x2028, r == 0x2029, r == 0xfeff, r == 0xfffe, r == 0xffff:
			fmt.Fprintf(&b, `\u%04X`, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
