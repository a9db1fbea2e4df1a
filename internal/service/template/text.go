package template

import (
	"html"
	"regexp"
	"strings"
)

var slotPattern = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}`)

type segment struct {
	literal string
	slot    string // non-empty for a placeholder
}

// Text is a template body split into literal runs and named slots.
type Text struct {
	segments []segment
}

// Parse scans s once for {{ name }} placeholders.
func Parse(s string) Text {
	var segs []segment
	last := 0
	for _, m := range slotPattern.FindAllStringSubmatchIndex(s, -1) {
		if m[0] > last {
			segs = append(segs, segment{literal: s[last:m[0]]})
		}
		segs = append(segs, segment{slot: s[m[2]:m[3]]})
		last = m[1]
	}
	if last < len(s) {
		segs = append(segs, segment{literal: s[last:]})
	}
	return Text{segments: segs}
}

// Render fills every slot in one pass. Names match case-insensitively and
// a missing name renders as "". Substituted values are not rescanned.
func (t Text) Render(vars map[string]string) string {
	return t.render(vars, false)
}

// RenderHTML is Render with every substituted value HTML-escaped. Literal
// template text is written as is.
func (t Text) RenderHTML(vars map[string]string) string {
	return t.render(vars, true)
}

func (t Text) render(vars map[string]string, escape bool) string {
	folded := make(map[string]string, len(vars))
	for k, v := range vars {
		folded[strings.ToLower(k)] = v
	}

	var b strings.Builder
	for _, seg := range t.segments {
		if seg.slot == "" {
			b.WriteString(seg.literal)
			continue
		}
		v, ok := vars[seg.slot]
		if !ok {
			v = folded[strings.ToLower(seg.slot)]
		}
		if escape {
			v = html.EscapeString(v)
		}
		b.WriteString(v)
	}
	return b.String()
}

// Variables returns the distinct slot names in first-occurrence order.
// Names differing only in case count once; the first spelling wins.
func (t Text) Variables() []string {
	return appendVariables(nil, make(map[string]bool), t)
}

func appendVariables(out []string, seen map[string]bool, t Text) []string {
	for _, seg := range t.segments {
		if seg.slot == "" {
			continue
		}
		key := strings.ToLower(seg.slot)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, seg.slot)
	}
	return out
}

// Render parses text and renders it with vars.
func Render(text string, vars map[string]string) string {
	return Parse(text).Render(vars)
}

// RenderHTML parses text and renders it with HTML-escaped vars.
func RenderHTML(text string, vars map[string]string) string {
	return Parse(text).RenderHTML(vars)
}

// ExtractVariables returns the distinct placeholder names across all given
// texts, in first-occurrence order.
func ExtractVariables(texts ...string) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, s := range texts {
		out = appendVariables(out, seen, Parse(s))
	}
	return out
}
