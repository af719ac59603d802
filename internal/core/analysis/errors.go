// Package analysis provides heuristic, pattern-based signals over raw source
// text. These are best-effort classifiers, not a parser: every function is
// total, and malformed or empty input yields the no-signal default instead of
// an error.
package analysis

import (
	"strings"
	"unicode"
)

// ErrorCategory tags the kind of problem a heuristic detected.
type ErrorCategory string

const (
	CategoryTypo   ErrorCategory = "typo"
	CategoryParens ErrorCategory = "parens"
	CategoryBraces ErrorCategory = "braces"
)

// SyntaxError is one detected problem. Line is 1-based and best-effort;
// callers should rely on presence and category, not the exact wording.
type SyntaxError struct {
	Category ErrorCategory `json:"category"`
	Message  string        `json:"message"`
	Line     int           `json:"line"`
}

// typoDictionary holds common keyword misspellings per language. Matching is
// edit-style: a token hits when it equals an entry or sits within one edit of
// it, so close variants of a known typo are still caught.
var typoDictionary = map[string]map[string]string{
	"javascript": {
		"fucntion": "function",
		"funciton": "function",
		"functoin": "function",
		"retunr":   "return",
		"retrun":   "return",
		"reutrn":   "return",
		"cosnt":    "const",
		"conts":    "const",
		"whlie":    "while",
		"esle":     "else",
	},
	"python": {
		"dfe":    "def",
		"improt": "import",
		"imoprt": "import",
		"retunr": "return",
		"retrun": "return",
		"prnit":  "print",
		"whlie":  "while",
		"esle":   "else",
		"eilf":   "elif",
	},
}

// DetectSyntaxErrors scans code for keyword misspellings, unmatched
// parentheses and unmatched braces. At most one error is reported per
// bracket category; every misspelled token reports once. Empty input
// yields an empty list.
func DetectSyntaxErrors(code string, language string) []SyntaxError {
	if strings.TrimSpace(code) == "" {
		return nil
	}

	var found []SyntaxError
	found = append(found, detectTypos(code, language)...)
	if e, ok := detectUnbalanced(code, '(', ')'); ok {
		e.Category = CategoryParens
		found = append(found, e)
	}
	if e, ok := detectUnbalanced(code, '{', '}'); ok {
		e.Category = CategoryBraces
		found = append(found, e)
	}

	return found
}

// Categories reduces a detected-error list to its distinct category set.
func Categories(errs []SyntaxError) []ErrorCategory {
	seen := make(map[ErrorCategory]struct{}, len(errs))
	var out []ErrorCategory
	for _, e := range errs {
		if _, dup := seen[e.Category]; dup {
			continue
		}
		seen[e.Category] = struct{}{}
		out = append(out, e.Category)
	}
	return out
}

func detectTypos(code string, language string) []SyntaxError {
	dict, ok := typoDictionary[language]
	if !ok {
		// Unknown language tags get the union of both dictionaries.
		dict = make(map[string]string)
		for _, d := range typoDictionary {
			for typo, keyword := range d {
				dict[typo] = keyword
			}
		}
	}

	keywords := make(map[string]struct{}, len(dict))
	for _, keyword := range dict {
		keywords[keyword] = struct{}{}
	}

	var found []SyntaxError
	for lineIdx, line := range strings.Split(code, "\n") {
		for _, token := range splitIdentifiers(line) {
			lower := strings.ToLower(token)
			if _, isKeyword := keywords[lower]; isKeyword {
				continue
			}
			for typo, keyword := range dict {
				if lower == typo || (len(lower) > 3 && levenshteinDistance(lower, typo) == 1) {
					found = append(found, SyntaxError{
						Category: CategoryTypo,
						Message:  "possible misspelling of \"" + keyword + "\": \"" + token + "\"",
						Line:     lineIdx + 1,
					})
					break
				}
			}
		}
	}

	return found
}

// detectUnbalanced tracks a running open/close balance across the text.
// A dip below zero or a nonzero final balance signals an error.
func detectUnbalanced(code string, opener rune, closer rune) (SyntaxError, bool) {
	balance := 0
	line := 1
	for _, r := range code {
		switch r {
		case '\n':
			line++
		case opener:
			balance++
		case closer:
			balance--
			if balance < 0 {
				return SyntaxError{
					Message: "unmatched " + string(closer),
					Line:    line,
				}, true
			}
		}
	}
	if balance != 0 {
		return SyntaxError{
			Message: "unmatched " + string(opener),
			Line:    line,
		}, true
	}
	return SyntaxError{}, false
}

// splitIdentifiers breaks a line into identifier-shaped tokens, dropping
// punctuation and digits-only runs.
func splitIdentifiers(line string) []string {
	var tokens []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}
	for _, r := range line {
		if unicode.IsLetter(r) || r == '_' || (current.Len() > 0 && unicode.IsDigit(r)) {
			current.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	return tokens
}

func levenshteinDistance(a string, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			curr[j] = min3(
				prev[j]+1,
				curr[j-1]+1,
				prev[j-1]+cost,
			)
		}
		copy(prev, curr)
	}

	return prev[len(rb)]
}

func min3(a int, b int, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
