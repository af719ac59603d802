package services

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/akashsahu54/symphony/internal/core/domain"
)

// Planner partitions a full source text into ordered sections and assigns
// each a duration, notes, tempo and instrument. Plan is total: empty input
// yields a composition with no sections, and the section durations never
// sum past domain.CompositionBudget.
type Planner struct {
	classifier *Classifier
}

// NewPlanner constructs a Planner. The classifier supplies the overall
// mood that picks the scale family for note generation.
func NewPlanner(classifier *Classifier) *Planner {
	return &Planner{classifier: classifier}
}

const (
	sectionFloor = 0.5 // seconds, minimum for any section
	importFloor  = 1.5 // seconds, imports keep a steady share
)

var (
	importLine      = regexp.MustCompile(`^\s*(import\b|from\s+\S+\s+import\b|(const|let|var)\s+.*=\s*require\s*\()`)
	declLine        = regexp.MustCompile(`^\s*(export\s+)?(async\s+)?(function\b|def\b)`)
	returnLine      = regexp.MustCompile(`^\s*return\b`)
	loopLine        = regexp.MustCompile(`^\s*(for|while)\b`)
	conditionalLine = regexp.MustCompile(`^\s*(if|else|elif|switch)\b`)
)

// rawSection is a classified span of lines before musical assignment.
// Line indices are 0-based and inclusive.
type rawSection struct {
	kind  domain.SectionType
	start int
	end   int
}

// Plan scans code top to bottom, classifies contiguous spans, budgets the
// fixed 15-second composition across them, and assigns notes and
// instruments per section type.
func (p *Planner) Plan(code string, language string) domain.Composition {
	comp := domain.Composition{ID: uuid.NewString()}
	if strings.TrimSpace(code) == "" {
		return comp
	}

	lines := strings.Split(code, "\n")
	raws := partition(lines)
	if len(raws) == 0 {
		return comp
	}

	mood := p.classifier.Analyze(code, language)
	comp.Key = mood.RootKey
	durations := allocateDurations(raws)

	roundRobin := 0
	for i, raw := range raws {
		section := domain.CompositionSection{
			Type:      raw.kind,
			StartLine: raw.start + 1,
			EndLine:   raw.end + 1,
			Duration:  durations[i],
			Notes:     notesFor(raw.kind, mood.RootKey),
			Tempo:     mood.Tempo,
		}
		section.Instrument = instrumentFor(raw.kind, &roundRobin)
		if err := comp.AppendSection(section); err != nil {
			// partition emits spans in ascending order, so this only
			// guards against a future regression there.
			continue
		}
	}

	return comp
}

// partition walks the lines once, emitting classified spans in source
// order. Blank lines between spans belong to no section.
func partition(lines []string) []rawSection {
	var raws []rawSection
	i := 0
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			i++
			continue
		}

		switch {
		case importLine.MatchString(lines[i]):
			start := i
			end := i
			for j := i + 1; j < len(lines); j++ {
				if strings.TrimSpace(lines[j]) == "" {
					continue
				}
				if !importLine.MatchString(lines[j]) {
					break
				}
				end = j
			}
			raws = append(raws, rawSection{kind: domain.SectionImport, start: start, end: end})
			i = end + 1

		case declLine.MatchString(lines[i]):
			end := blockEnd(lines, i)
			split := returnSplit(lines, i, end)
			if split > i {
				raws = append(raws, rawSection{kind: domain.SectionFunction, start: i, end: split - 1})
				raws = append(raws, rawSection{kind: domain.SectionReturn, start: split, end: end})
			} else {
				raws = append(raws, rawSection{kind: domain.SectionFunction, start: i, end: end})
			}
			i = end + 1

		case loopLine.MatchString(lines[i]):
			end := blockEnd(lines, i)
			raws = append(raws, rawSection{kind: domain.SectionLoop, start: i, end: end})
			i = end + 1

		case conditionalLine.MatchString(lines[i]):
			end := blockEnd(lines, i)
			raws = append(raws, rawSection{kind: domain.SectionConditional, start: i, end: end})
			i = end + 1

		case returnLine.MatchString(lines[i]):
			raws = append(raws, rawSection{kind: domain.SectionReturn, start: i, end: i})
			i++

		default:
			start := i
			end := i
			for j := i + 1; j < len(lines); j++ {
				line := lines[j]
				if strings.TrimSpace(line) == "" {
					break
				}
				if importLine.MatchString(line) || declLine.MatchString(line) ||
					loopLine.MatchString(line) || conditionalLine.MatchString(line) ||
					returnLine.MatchString(line) {
					break
				}
				end = j
			}
			raws = append(raws, rawSection{kind: domain.SectionOther, start: start, end: end})
			i = end + 1
		}
	}
	return raws
}

// blockEnd finds the inclusive last line of the block opened at start.
// Brace-delimited blocks close when the running brace balance returns to
// zero; indentation blocks end before the first non-blank line at or
// below the opener's indent.
func blockEnd(lines []string, start int) int {
	if strings.Contains(lines[start], "{") || followingLineOpensBrace(lines, start) {
		balance := 0
		opened := false
		for j := start; j < len(lines); j++ {
			for _, r := range lines[j] {
				switch r {
				case '{':
					balance++
					opened = true
				case '}':
					balance--
				}
			}
			if opened && balance <= 0 {
				return j
			}
		}
		return len(lines) - 1
	}

	openerIndent := indentWidth(lines[start])
	end := start
	for j := start + 1; j < len(lines); j++ {
		trimmed := strings.TrimSpace(lines[j])
		if trimmed == "" {
			continue
		}
		if indentWidth(lines[j]) <= openerIndent {
			break
		}
		end = j
	}
	return end
}

// followingLineOpensBrace handles the Allman style where the opening brace
// sits on the line after the declaration.
func followingLineOpensBrace(lines []string, start int) bool {
	if start+1 >= len(lines) {
		return false
	}
	return strings.TrimSpace(lines[start+1]) == "{"
}

func indentWidth(line string) int {
	width := 0
	for _, r := range line {
		switch r {
		case ' ':
			width++
		case '\t':
			width += 4
		default:
			return width
		}
	}
	return width
}

// returnSplit finds the first return statement after the opener whose
// trailing lines close out the section; 0 means none found.
func returnSplit(lines []string, start int, end int) int {
	for j := start + 1; j <= end && j < len(lines); j++ {
		if returnLine.MatchString(lines[j]) {
			return j
		}
	}
	return 0
}

// allocateDurations spreads the 15-second budget proportionally to span
// line counts, with per-type floors. When the floored proportional total
// would exceed the budget, every duration scales by one common factor so
// the sum lands exactly on the budget.
func allocateDurations(raws []rawSection) []float64 {
	totalLines := 0
	for _, raw := range raws {
		totalLines += raw.end - raw.start + 1
	}

	durations := make([]float64, len(raws))
	var sum float64
	for i, raw := range raws {
		share := domain.CompositionBudget * float64(raw.end-raw.start+1) / float64(totalLines)
		floor := sectionFloor
		if raw.kind == domain.SectionImport {
			floor = importFloor
		}
		if share < floor {
			share = floor
		}
		durations[i] = share
		sum += share
	}

	if sum > domain.CompositionBudget {
		factor := domain.CompositionBudget / sum
		for i := range durations {
			durations[i] *= factor
		}
	}

	return durations
}

// notesFor assigns each section type its note pattern from the overall
// key's scale.
func notesFor(kind domain.SectionType, rootKey string) []string {
	scale := domain.ScaleNotes(rootKey)
	switch kind {
	case domain.SectionImport:
		return domain.ChordTones(rootKey)
	case domain.SectionFunction:
		// walked scale: up to the fifth and back down
		return []string{scale[0], scale[1], scale[2], scale[3], scale[4], scale[3], scale[2], scale[1]}
	case domain.SectionReturn:
		return domain.Triad(rootKey)
	case domain.SectionLoop:
		return []string{scale[0], scale[4], scale[0], scale[4]}
	case domain.SectionConditional:
		return []string{scale[2], scale[3], scale[2], scale[3]}
	default:
		return []string{scale[0], scale[0]}
	}
}

func instrumentFor(kind domain.SectionType, roundRobin *int) domain.Instrument {
	switch kind {
	case domain.SectionImport, domain.SectionLoop:
		return domain.InstrumentRhythm
	case domain.SectionFunction:
		return domain.InstrumentMelody
	case domain.SectionReturn, domain.SectionConditional:
		return domain.InstrumentHarmony
	default:
		order := []domain.Instrument{domain.InstrumentRhythm, domain.InstrumentHarmony, domain.InstrumentMelody}
		inst := order[*roundRobin%len(order)]
		*roundRobin++
		return inst
	}
}
