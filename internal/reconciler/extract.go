package reconciler

import (
	"fmt"
	"regexp"
	"strings"
)

// matches an opening or closing fence, including a language tag
// like ```json
var fencePattern = regexp.MustCompile("```[A-Za-z0-9_-]*")

func cleanSuggestion(raw string) string {
	cleaned := fencePattern.ReplaceAllString(raw, "")
	return strings.Trim(cleaned, " \t\r\n\"'`")
}

// locateLiteral finds the first balanced JSON array in s. Objects are
// only considered when there is no array at all.
func locateLiteral(s string) (string, error) {
	if literal, ok := findBalanced(s, '[', ']'); ok {
		return literal, nil
	}
	if literal, ok := findBalanced(s, '{', '}'); ok {
		return literal, nil
	}
	return "", fmt.Errorf("%w: no JSON array or object found", ErrUnparsableResponse)
}

// findBalanced returns the balanced literal with the earliest opener,
// in a single pass. Brackets inside string literals are ignored; string
// tracking starts at the first opener so stray quotes in leading prose
// don't hide the literal.
func findBalanced(s string, open, close byte) (string, bool) {
	first := strings.IndexByte(s, open)
	if first < 0 {
		return "", false
	}

	openers := []int{}
	bestStart, bestEnd := -1, -1
	inString := false
	escaped := false

	for i := first; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case open:
			openers = append(openers, i)
		case close:
			if len(openers) == 0 {
				continue
			}
			start := openers[len(openers)-1]
			openers = openers[:len(openers)-1]
			// nothing earlier is still open, so no later match can start before this one
			if len(openers) == 0 {
				return s[start : i+1], true
			}
			if bestStart < 0 || start < bestStart {
				bestStart, bestEnd = start, i
			}
		}
	}

	if bestStart < 0 {
		return "", false
	}
	return s[bestStart : bestEnd+1], true
}
