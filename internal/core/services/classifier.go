package services

import (
	"hash/fnv"
	"strings"

	"github.com/akashsahu54/symphony/internal/core/analysis"
	"github.com/akashsahu54/symphony/internal/core/domain"
)

// Classifier turns heuristic signals into musical parameters. Analyze is a
// total function: any string, including empty, resolves to a valid MoodData
// through a fixed priority order.
type Classifier struct{}

// NewClassifier constructs a Classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Analyze classifies code into a mood and derives key, intensity and tempo.
//
// Priority order, first match wins:
//  1. any detected syntax error        -> discordant, minor key
//  2. commented and shallow (depth<=2) -> harmonious, major key
//  3. recursive or deep (depth>4)      -> intense, minor key
//  4. everything else                  -> harmonious default
func (c *Classifier) Analyze(code string, language string) domain.MoodData {
	errs := analysis.DetectSyntaxErrors(code, language)
	depth := analysis.NestingDepth(code)
	recursive := analysis.DetectRecursion(code)
	commented := analysis.DetectComments(code)

	switch {
	case len(errs) > 0:
		categories := len(analysis.Categories(errs))
		intensity := 0.7 + 0.15*float64(categories-1)
		if intensity > 1.0 {
			intensity = 1.0
		}
		return domain.NewMoodData(domain.MoodDiscordant, pickKey(domain.DiscordantKeys, code), intensity)

	case commented && depth <= 2:
		intensity := 0.2 + 0.1*float64(depth)
		if len(strings.TrimSpace(code)) > 400 {
			intensity += 0.1
		}
		if intensity > 0.5 {
			intensity = 0.5
		}
		return domain.NewMoodData(domain.MoodHarmonious, pickKey(domain.HarmoniousKeys, code), intensity)

	case recursive || depth > 4:
		intensity := 0.6
		if depth > 4 {
			intensity += 0.05 * float64(minInt(depth-4, 4))
		}
		if recursive {
			intensity += 0.1
		}
		if intensity > 0.9 {
			intensity = 0.9
		}
		return domain.NewMoodData(domain.MoodIntense, pickKey(domain.IntenseKeys, code), intensity)

	default:
		return domain.NewMoodData(domain.MoodHarmonious, "G", 0.5)
	}
}

// pickKey selects a key from the set deterministically by hashing the code,
// so identical input always lands on the identical key.
func pickKey(keys []string, code string) string {
	hasher := fnv.New32a()
	_, _ = hasher.Write([]byte(code))
	return keys[int(hasher.Sum32())%len(keys)]
}

func minInt(a int, b int) int {
	if a < b {
		return a
	}
	return b
}
