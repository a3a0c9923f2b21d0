package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

const banner = "# viralscript configuration (TOML)"

// tableOf splits "section.key" into its table and key; top-level keys have no table.
func tableOf(fullKey string) (table, key string) {
	if t, k, ok := strings.Cut(fullKey, "."); ok {
		return t, k
	}
	return "", fullKey
}

// groupOptions returns top-level options and per-table options in declaration order.
func groupOptions(opts []ConfigOption) (top []ConfigOption, tables map[string][]ConfigOption, order []string) {
	tables = make(map[string][]ConfigOption)
	for _, o := range opts {
		table, key := tableOf(o.Key)
		if table == "" {
			top = append(top, o)
			continue
		}
		if _, ok := tables[table]; !ok {
			order = append(order, table)
		}
		tables[table] = append(tables[table], ConfigOption{Key: key, Default: o.Default, Comment: o.Comment})
	}
	return top, tables, order
}

// RenderDefaultTOML renders a commented config.toml holding every default.
func RenderDefaultTOML() string {
	lines := []string{banner}
	top, tables, order := groupOptions(GetConfigOptions())
	for _, o := range top {
		writeTOMLOptionLines(&lines, o.Key, o.Default, o.Comment)
	}
	for _, table := range order {
		lines = append(lines, "["+table+"]")
		for _, o := range tables[table] {
			writeTOMLOptionLines(&lines, o.Key, o.Default, o.Comment)
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

// UpdateTOML appends missing options to an existing config and comments out
// keys that are no longer recognised. Other lines are kept as written.
func UpdateTOML(existing string) (string, bool) {
	known := make(map[string]bool)
	for _, o := range GetConfigOptions() {
		known[o.Key] = true
	}

	seen := make(map[string]bool)
	table := ""
	changed := false
	out := make([]string, 0, strings.Count(existing, "\n")+1)
	for _, line := range strings.Split(existing, "\n") {
		trim := strings.TrimSpace(line)
		if isSectionHeader(trim) {
			table = strings.TrimSpace(trim[1 : len(trim)-1])
			out = append(out, line)
			continue
		}
		key, ok := parseTOMLKey(trim)
		if !ok {
			out = append(out, line)
			continue
		}
		full := key
		if table != "" {
			full = table + "." + key
		}
		seen[full] = true
		if !known[full] {
			indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			out = append(out, indent+"# OUTDATED: option removed from config schema", indent+"# "+trim)
			changed = true
			continue
		}
		out = append(out, line)
	}

	var missing []ConfigOption
	for _, o := range GetConfigOptions() {
		if !seen[o.Key] {
			missing = append(missing, o)
		}
	}
	if len(missing) == 0 {
		return strings.Join(out, "\n"), changed
	}

	top, tables, order := groupOptions(missing)
	if len(top) > 0 {
		// top-level keys must precede the first table
		block := []string{"# Added by config update"}
		for _, o := range top {
			writeTOMLOptionLines(&block, o.Key, o.Default, o.Comment)
		}
		at := len(out)
		for i, line := range out {
			if isSectionHeader(strings.TrimSpace(line)) {
				at = i
				break
			}
		}
		out = insertLines(out, at, block)
	}
	for _, t := range order {
		block := []string{"# Added by config update"}
		for _, o := range tables[t] {
			writeTOMLOptionLines(&block, o.Key, o.Default, o.Comment)
		}
		if at, ok := tableEnd(out, t); ok {
			out = insertLines(out, at, block)
			continue
		}
		out = append(out, "")
		out = append(out, "["+t+"]")
		out = append(out, block[1:]...)
	}
	return strings.Join(out, "\n"), true
}

func insertLines(lines []string, at int, block []string) []string {
	out := make([]string, 0, len(lines)+len(block))
	out = append(out, lines[:at]...)
	out = append(out, block...)
	return append(out, lines[at:]...)
}

// tableEnd returns the index just past the body of [table], if present.
func tableEnd(lines []string, table string) (int, bool) {
	header := "[" + table + "]"
	for i, line := range lines {
		if strings.TrimSpace(line) != header {
			continue
		}
		for j := i + 1; j < len(lines); j++ {
			if isSectionHeader(strings.TrimSpace(lines[j])) {
				return j, true
			}
		}
		return len(lines), true
	}
	return 0, false
}

// parseTOMLKey returns the bare key of a "key = value" line.
func parseTOMLKey(trim string) (string, bool) {
	if trim == "" || strings.HasPrefix(trim, "#") || strings.HasPrefix(trim, ";") {
		return "", false
	}
	key, _, ok := strings.Cut(trim, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" || strings.ContainsAny(key[:1], `["'`) {
		return "", false
	}
	return key, true
}

// encodeValue renders one "key = value" line with TOML escaping.
func encodeValue(key string, value any) (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(map[string]any{key: value}); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// writeTOMLOptionLines appends an optional comment, the option and a blank line.
// Values the encoder rejects are written commented out.
func writeTOMLOptionLines(lines *[]string, key string, value any, comment string) {
	if comment != "" {
		*lines = append(*lines, "# "+comment)
	}
	line, err := encodeValue(key, value)
	if err != nil {
		line = fmt.Sprintf("# %s: %v", key, err)
	}
	*lines = append(*lines, line, "")
}
