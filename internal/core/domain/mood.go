package domain

import "math"

// Mood is the top-level classification of a code sample's feel.
type Mood int

const (
	MoodDiscordant Mood = iota
	MoodHarmonious
	MoodIntense
)

func (m Mood) String() string {
	switch m {
	case MoodDiscordant:
		return "discordant"
	case MoodHarmonious:
		return "harmonious"
	case MoodIntense:
		return "intense"
	default:
		return "unknown"
	}
}

// MinorKey reports whether the mood is expressed in a minor key family.
// Harmonious code plays in major; everything else leans minor.
func (m Mood) MinorKey() bool {
	return m != MoodHarmonious
}

// MoodData carries the musical parameters derived from one analysis pass.
// It is a value object: every analysis call produces a fresh instance and
// nothing mutates it afterwards.
type MoodData struct {
	Tempo     int     `json:"tempo"`      // beats per minute, always within [60,180]
	RootKey   string  `json:"root_key"`   // e.g. "C", "G" (major) or "Dm", "Am" (minor)
	Intensity float64 `json:"intensity"`  // normalized complexity proxy in [0,1]
	Mood      Mood    `json:"-"`
	MoodName  string  `json:"mood"`
}

// NewMoodData builds a MoodData from a mood, root key and intensity,
// deriving tempo as round(60 + intensity*120) clamped to [60,180].
// Intensity is clamped to [0,1] first so the tempo invariant always holds.
func NewMoodData(mood Mood, rootKey string, intensity float64) MoodData {
	if intensity < 0 {
		intensity = 0
	}
	if intensity > 1 {
		intensity = 1
	}

	tempo := int(math.Round(60 + intensity*120))
	if tempo < 60 {
		tempo = 60
	}
	if tempo > 180 {
		tempo = 180
	}

	return MoodData{
		Tempo:     tempo,
		RootKey:   rootKey,
		Intensity: intensity,
		Mood:      mood,
		MoodName:  mood.String(),
	}
}
