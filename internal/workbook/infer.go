package workbook

import (
	"fmt"
	"strings"
	"time"
)

// uniqueColumnNames names blank headers "Unnamed: <i>" and suffixes repeated
// names with ".1", ".2", ... skipping suffixes that are already taken.
func uniqueColumnNames(names []string) []string {
	out := make([]string, len(names))
	counts := make(map[string]int, len(names))

	for i, name := range names {
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		count := counts[name]
		for count > 0 {
			counts[name] = count + 1
			name = fmt.Sprintf("%s.%d", name, count)
			count = counts[name]
		}
		out[i] = name
		counts[name] = count + 1
	}

	return out
}

// isBuiltinDateFormat reports whether a built-in number format ID is a date or time format.
// See ECMA-376 Part 1, 18.8.30.
func isBuiltinDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 22:
		return true
	case id >= 27 && id <= 36:
		return true
	case id >= 45 && id <= 47:
		return true
	case id >= 50 && id <= 58:
		return true
	case id >= 71 && id <= 81:
		return true
	}
	return false
}

// isDateFormatCode reports whether a custom number format code contains
// date or time tokens outside of literals, colors and locale sections.
func isDateFormatCode(code string) bool {
	// only the first (positive) section decides
	if i := indexUnquoted(code, ';'); i >= 0 {
		code = code[:i]
	}

	var b strings.Builder
	inQuote, inBracket := false, false
	for i := 0; i < len(code); i++ {
		ch := code[i]
		switch {
		case inQuote:
			if ch == '"' {
				inQuote = false
			}
		case inBracket:
			if ch == ']' {
				inBracket = false
			}
		case ch == '"':
			inQuote = true
		case ch == '[':
			// elapsed time like [h]:mm is still a time format
			if end := strings.IndexByte(code[i:], ']'); end > 0 {
				inner := strings.ToLower(code[i+1 : i+end])
				if strings.Trim(inner, "hms") == "" && inner != "" {
					b.WriteByte('h')
				}
			}
			inBracket = true
		case ch == '\\', ch == '_', ch == '*':
			i++
		default:
			b.WriteByte(ch)
		}
	}

	return strings.ContainsAny(strings.ToLower(b.String()), "dmyhs")
}

func indexUnquoted(s string, sep byte) int {
	inQuote := false
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '"':
			inQuote = !inQuote
		case s[i] == '\\':
			i++
		case s[i] == sep && !inQuote:
			return i
		}
	}
	return -1
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseISODate parses the value of a cell stored with t="d".
func parseISODate(s string) (time.Time, bool) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
