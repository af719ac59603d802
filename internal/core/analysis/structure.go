package analysis

import (
	"regexp"
	"strings"
)

var (
	jsFuncDecl = regexp.MustCompile(`function\s+([A-Za-z_$][A-Za-z0-9_$]*)\s*\(`)
	pyFuncDecl = regexp.MustCompile(`def\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(`)
)

// DetectRecursion reports whether any function declared in the text calls
// itself within its own body. The body is approximated as the span from
// the declaration to the next declaration of the same style (or end of
// text). Empty code is never recursive.
func DetectRecursion(code string) bool {
	if code == "" {
		return false
	}
	return selfCalls(code, jsFuncDecl) || selfCalls(code, pyFuncDecl)
}

func selfCalls(code string, decl *regexp.Regexp) bool {
	matches := decl.FindAllStringSubmatchIndex(code, -1)
	for i, m := range matches {
		name := code[m[2]:m[3]]
		bodyStart := m[1]
		bodyEnd := len(code)
		if i+1 < len(matches) {
			bodyEnd = matches[i+1][0]
		}
		body := code[bodyStart:bodyEnd]

		call := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\s*\(`)
		if call.MatchString(body) {
			return true
		}
	}
	return false
}

// DetectComments reports whether the text contains any of the common
// comment marker forms. The scan is language-agnostic: "//", "/*" or "#"
// anywhere counts.
func DetectComments(code string) bool {
	return strings.Contains(code, "//") ||
		strings.Contains(code, "/*") ||
		strings.Contains(code, "#")
}
