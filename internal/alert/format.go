package alert

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\{(\d+)\}`)

// FormatPositional substitutes {0}, {1}, ... placeholders in a reporting
// template with the corresponding arguments. A placeholder whose index is
// past the end of the argument list is an error; the template is never
// emitted half-substituted. The error names only the offending indices —
// callers feed it into fallback record text, which must not echo the
// template or its placeholder tokens.
func FormatPositional(tmpl string, args []any) (string, error) {
	var missing []string
	out := placeholderPattern.ReplaceAllStringFunc(tmpl, func(m string) string {
		digits := m[1 : len(m)-1]
		idx, err := strconv.Atoi(digits)
		if err != nil || idx >= len(args) {
			missing = append(missing, digits)
			return m
		}
		return fmt.Sprint(args[idx])
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("placeholder index %s out of range for %d argument(s)",
			strings.Join(missing, ", "), len(args))
	}
	return out, nil
}
