package coach

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Validator checks a value after JSON extraction.
type Validator[T any] func(T) error

// ExtractJSON decodes the first JSON object found in a free-form coach reply.
// Markdown fences, surrounding prose, comments, and bare decimals such as
// ".5" are tolerated. A non-nil validate is applied to the decoded value.
func ExtractJSON[T any](raw string, validate Validator[T]) (T, error) {
	var zero T

	obj := firstObject(unfence(raw))
	if obj == "" {
		return zero, fmt.Errorf("%w: no JSON object found in reply", ErrInvalidOutput)
	}

	var out T
	if err := json.Unmarshal([]byte(sanitize(obj)), &out); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if validate != nil {
		if err := validate(out); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}
	return out, nil
}

// unfence drops markdown fence lines, keeping their contents.
func unfence(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// scanJSON walks s calling visit for every byte outside string literals.
// visit returns how many bytes it consumed starting at i; zero means the
// byte is passed to emit unchanged.
func scanJSON(s string, emit func(string), visit func(s string, i int) int) {
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case !inString:
			if n := visit(s, i); n > 0 {
				i += n - 1
				continue
			}
		}
		emit(s[i : i+1])
	}
}

// firstObject returns the first balanced {...} block in s.
func firstObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}
	depth, end := 0, -1
	scanJSON(s[start:], func(string) {}, func(t string, i int) int {
		if end >= 0 {
			return 0
		}
		switch t[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				end = start + i + 1
			}
		}
		return 0
	})
	if end < 0 {
		return ""
	}
	return s[start:end]
}

// sanitize removes comments and rewrites ".5" as "0.5" outside strings.
func sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	scanJSON(s, func(p string) { b.WriteString(p) }, func(t string, i int) int {
		c := t[i]
		if c == '/' && i+1 < len(t) {
			switch t[i+1] {
			case '/':
				end := strings.IndexByte(t[i:], '\n')
				if end < 0 {
					return len(t) - i
				}
				return end
			case '*':
				end := strings.Index(t[i+2:], "*/")
				if end < 0 {
					return len(t) - i
				}
				return end + 4
			}
		}
		if c == '.' && i+1 < len(t) && isDigit(t[i+1]) && numberStart(t, i-1) {
			b.WriteByte('0')
		}
		return 0
	})
	return b.String()
}

// numberStart reports whether the last non-space byte before i can precede
// a number.
func numberStart(s string, i int) bool {
	for ; i >= 0; i-- {
		switch s[i] {
		case ' ', '\n', '\r', '\t':
			continue
		case ':', ',', '[', '{', '-':
			return true
		default:
			return false
		}
	}
	return true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
