package config

import (
	"sort"
	"strings"
)

// UpsertSection inserts or replaces the key/value lines of a [section] table,
// leaving every other line of the file as written.
func UpsertSection(existing, section string, values map[string]any) string {
	header := "[" + section + "]"
	lines := strings.Split(existing, "\n")
	out := make([]string, 0, len(lines)+len(values)*2)
	replaced := false

	for i := 0; i < len(lines); {
		line := lines[i]
		if strings.TrimSpace(line) == header {
			out = append(out, line)
			appendSectionOptions(&out, section, values)
			replaced = true
			i++
			for i < len(lines) && !isSectionHeader(strings.TrimSpace(lines[i])) {
				i++
			}
			continue
		}
		out = append(out, line)
		i++
	}

	if !replaced {
		if len(out) > 0 && strings.TrimSpace(out[len(out)-1]) != "" {
			out = append(out, "")
		}
		out = append(out, header)
		appendSectionOptions(&out, section, values)
	}
	return strings.Join(out, "\n")
}

// DeleteSection removes a [section] table if present.
func DeleteSection(existing, section string) (string, bool) {
	header := "[" + section + "]"
	lines := strings.Split(existing, "\n")
	out := make([]string, 0, len(lines))
	removed := false

	for i := 0; i < len(lines); {
		if strings.TrimSpace(lines[i]) == header {
			removed = true
			i++
			for i < len(lines) && !isSectionHeader(strings.TrimSpace(lines[i])) {
				i++
			}
			continue
		}
		out = append(out, lines[i])
		i++
	}
	return strings.Join(out, "\n"), removed
}

func appendSectionOptions(out *[]string, section string, values map[string]any) {
	comments := make(map[string]string)
	for _, o := range GetConfigOptions() {
		if k, ok := strings.CutPrefix(o.Key, section+"."); ok {
			comments[k] = o.Comment
		}
	}
	for _, key := range sectionOptionOrder(section, values) {
		writeTOMLOptionLines(out, key, values[key], comments[key])
	}
}

// sectionOptionOrder lists known keys in declaration order, then the rest sorted.
func sectionOptionOrder(section string, values map[string]any) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, o := range GetConfigOptions() {
		k, ok := strings.CutPrefix(o.Key, section+".")
		if !ok {
			continue
		}
		if _, present := values[k]; present {
			out = append(out, k)
			seen[k] = true
		}
	}
	rest := make([]string, 0, len(values))
	for k := range values {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func isSectionHeader(trim string) bool {
	if trim == "" || strings.HasPrefix(trim, "#") || strings.HasPrefix(trim, ";") {
		return false
	}
	return strings.HasPrefix(trim, "[") && strings.HasSuffix(trim, "]")
}
