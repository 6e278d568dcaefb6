package audit

import (
	"fmt"
	"strconv"
	"strings"
)

// toStr renders any raw field value as a trimmed string. Whole numbers come
// back without a fractional part even though JSON decoding hands them to us
// as float64.
func toStr(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// toFloat coerces any raw quantity value to a float64, never failing.
// Strings are parsed permissively: a comma with no period is taken as the
// decimal separator, otherwise commas are stripped as thousands separators.
// Anything unparsable coerces to 0, which makes an unparsable positive
// quantity indistinguishable from genuinely zero stock — accepted policy,
// matching the observed upstream data (decimal commas, no mixed separators).
func toFloat(value any) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case bool:
		if v {
			return 1
		}
		return 0
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
		cleaned := strings.ReplaceAll(s, " ", "")
		if strings.Contains(cleaned, ",") && !strings.Contains(cleaned, ".") {
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// groupSortKey turns a group id into its integer sort key. The substring
// before any '+' guards against scientific-notation artifacts in ids; any
// parse failure sorts as 0.
func groupSortKey(id string) int {
	head, _, _ := strings.Cut(id, "+")
	n, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return 0
	}
	return n
}
