package genai

// ExtractJSON locates the first balanced JSON object or array embedded in s
// and returns it. Models frequently wrap the requested JSON in prose or
// markdown fences, so a plain json.Unmarshal of the whole response is not an
// option. The scan is quote- and escape-aware: brackets inside string
// literals do not affect nesting depth.
func ExtractJSON(s string) (string, bool) {
	start := -1
	for i := 0; i < len(s); i++ {
		if s[i] == '{' || s[i] == '[' {
			start = i
			break
		}
	}
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	// Opened but never closed: unbalanced, treat as absent.
	return "", false
}
