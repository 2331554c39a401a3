package services

import (
	"fmt"
	"regexp"
	"strings"
)

// ExtractField pulls the value of a `FIELD: value` line out of a model
// response. The response has no schema guarantee, so extraction is a chain
// of increasingly permissive patterns: an exact labeled-line match first,
// then variants tolerating markdown bold markers around the label. The
// first capture wins. A missing field yields an empty string, never an
// error.
func ExtractField(responseText, fieldName string) string {
	if responseText == "" || fieldName == "" {
		return ""
	}

	label := regexp.QuoteMeta(fieldName)
	patterns := []string{
		fmt.Sprintf(`(?im)^\s*%s\s*:\s*(.+?)\s*$`, label),
		fmt.Sprintf(`(?im)^\s*\*{1,2}\s*%s\s*\*{1,2}\s*:\s*(.+?)\s*$`, label),
		fmt.Sprintf(`(?im)\*{1,2}%s\*{1,2}\s*:\s*(.+?)\s*(?:\n|$)`, label),
		fmt.Sprintf(`(?is)%s\s*:\s*(.+?)(?:\n|$)`, label),
	}

	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			continue
		}
		if m := re.FindStringSubmatch(responseText); m != nil {
			return strings.Trim(strings.TrimSpace(m[1]), "*")
		}
	}

	return ""
}
