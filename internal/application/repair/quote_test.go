package repair

import (
	"strings"
	"testing"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

func TestQuoteScalarIsSingleLine(t *testing.T) {
	long := strings.Repeat("word ", 60) + "end: x"
	for _, s := range []string{long, "a\nb", "tab\there", " sep", "\x00nul"} {
		q := QuoteScalar(s)
		if strings.Contains(q, "\n") {
			t.Errorf("QuoteScalar(%q) spans lines: %q", s, q)
		}
		if !strings.HasPrefix(q, `"`) || !strings.HasSuffix(q, `"`) {
			t.Errorf("QuoteScalar(%q) = %q is not double-quoted", s, q)
		}
	}
}

func TestEscapeQuotedDecodesAsYAML(t *testing.T) {
	for _, s := range []string{"a:b", `q"uote`, `back\slash`, "<>&", "line\nbreak", "\x07bell", "nel\u0085", "del\x7f", "\ufeffbom", ""} {
		quoted := escapeQuoted(s)
		if strings.Contains(quoted, "\n") {
			t.Errorf("escapeQuoted(%q) spans lines", s)
		}
		var got string
		if err := yaml.Unmarshal([]byte(quoted), &got); err != nil {
			t.Fatalf("decode %q: %v", quoted, err)
		}
		if got != s {
			t.Errorf("escapeQuoted round trip of %q gave %q", s, got)
		}
	}
}

func FuzzQuoteScalarRoundTrip(f *testing.F) {
	for _, seed := range []string{
		"",
		"echo a:b",
		"a: b: c",
		`"double" 'single'`,
		`back\slash \n not newline`,
		"  leading and trailing  ",
		"# comment",
		"null",
		"~",
		"0x1F",
		"multi\nline",
		"*alias &anchor !tag",
		"ünïcödé ✓",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, s string) {
		if !utf8.ValidString(s) {
			t.Skip()
		}
		line := "- cmd: " + QuoteScalar(s)
		var entries []struct {
			Cmd string `yaml:"cmd"`
		}
		if err := yaml.Unmarshal([]byte(line), &entries); err != nil {
			t.Fatalf("decode %q: %v", line, err)
		}
		if len(entries) != 1 || entries[0].Cmd != s {
			t.Fatalf("round trip of %q gave %+v", s, entries)
		}
	})
}
