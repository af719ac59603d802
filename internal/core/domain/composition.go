package domain

import "errors"

// ErrSectionOrder signals an attempt to append a section that overlaps or
// precedes the sections already in a composition.
var ErrSectionOrder = errors.New("domain: section out of line order")

// CompositionBudget is the fixed upper bound, in seconds, on a full
// commit composition.
const CompositionBudget = 15.0

// SectionType classifies a contiguous span of source lines by structural role.
type SectionType string

const (
	SectionImport      SectionType = "import"
	SectionFunction    SectionType = "function"
	SectionReturn      SectionType = "return"
	SectionLoop        SectionType = "loop"
	SectionConditional SectionType = "conditional"
	SectionOther       SectionType = "other"
)

// Instrument names one of the three voices of the synth backend.
type Instrument string

const (
	InstrumentRhythm  Instrument = "rhythm"
	InstrumentHarmony Instrument = "harmony"
	InstrumentMelody  Instrument = "melody"
)

// CompositionSection is one span of source lines with its assigned
// musical parameters.
type CompositionSection struct {
	Type       SectionType `json:"type"`
	StartLine  int         `json:"start_line"`
	EndLine    int         `json:"end_line"`
	Duration   float64     `json:"duration"` // seconds, > 0
	Notes      []string    `json:"notes"`
	Tempo      int         `json:"tempo"` // BPM
	Instrument Instrument  `json:"instrument"`
}

// Composition is an ordered, contiguous sequence of sections summarizing
// one file. Sections ascend by StartLine and never overlap; the total
// duration never exceeds CompositionBudget.
type Composition struct {
	ID       string               `json:"id"`
	Key      string               `json:"key"`
	Sections []CompositionSection `json:"sections"`
}

// AppendSection adds a section while preserving line ordering. A section
// that starts before the previous section ends is rejected with
// ErrSectionOrder.
func (c *Composition) AppendSection(s CompositionSection) error {
	if n := len(c.Sections); n > 0 {
		if s.StartLine <= c.Sections[n-1].EndLine {
			return ErrSectionOrder
		}
	}
	c.Sections = append(c.Sections, s)
	return nil
}

// TotalDuration sums the section durations in seconds.
func (c Composition) TotalDuration() float64 {
	var total float64
	for _, s := range c.Sections {
		total += s.Duration
	}
	return total
}

// NoteEvent is one timed trigger instruction for the synth backend.
// StartTime is a logical transport time in seconds from playback start.
type NoteEvent struct {
	Notes      []string   `json:"notes"`
	Duration   float64    `json:"duration"` // seconds
	Instrument Instrument `json:"instrument"`
	StartTime  float64    `json:"start_time"`
}
