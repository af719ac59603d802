package analysis

import "strings"

// NestingDepth returns the maximum structural nesting of the code.
//
// Brace-delimited code is measured as the deepest concurrent open-brace
// count in a left-to-right scan. Code without braces is treated as
// indentation-based: the depth is the deepest indentation, in 4-space
// units, of any non-blank line after a block opener (a line ending in
// ":"). Braces inside string or comment literals are not excluded — this
// is a heuristic, not a parser. Empty code is depth 0.
func NestingDepth(code string) int {
	if strings.ContainsRune(code, '{') {
		return braceDepth(code)
	}
	return indentDepth(code)
}

func braceDepth(code string) int {
	depth := 0
	maxDepth := 0
	for _, r := range code {
		switch r {
		case '{':
			depth++
			if depth > maxDepth {
				maxDepth = depth
			}
		case '}':
			if depth > 0 {
				depth--
			}
		}
	}
	return maxDepth
}

func indentDepth(code string) int {
	maxUnits := 0
	inBlock := false
	for _, line := range strings.Split(code, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if inBlock {
			if units := indentUnits(line); units > maxUnits {
				maxUnits = units
			}
		}
		if strings.HasSuffix(trimmed, ":") {
			inBlock = true
		}
	}
	return maxUnits
}

// indentUnits counts leading whitespace in 4-space units; a tab counts as
// one unit.
func indentUnits(line string) int {
	spaces := 0
	units := 0
	for _, r := range line {
		switch r {
		case ' ':
			spaces++
			if spaces == 4 {
				units++
				spaces = 0
			}
		case '\t':
			units++
			spaces = 0
		default:
			return units
		}
	}
	return units
}
