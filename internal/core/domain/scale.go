package domain

// Key sets per mood bucket. Discordant and intense moods draw from minor
// keys, harmonious from major. Exposed so the classifier and planner share
// one source of truth.
var (
	DiscordantKeys = []string{"Dm", "Am", "Em"}
	HarmoniousKeys = []string{"C", "G"}
	IntenseKeys    = []string{"Am", "Dm"}
	DefaultKeys    = []string{"G", "F"}
)

// scales maps a root key label to its seven scale-degree note names
// (natural minor for keys suffixed "m", major otherwise). Octaves sit in
// the synth backend's comfortable middle register.
var scales = map[string][]string{
	"C":  {"C4", "D4", "E4", "F4", "G4", "A4", "B4"},
	"G":  {"G3", "A3", "B3", "C4", "D4", "E4", "F#4"},
	"F":  {"F3", "G3", "A3", "Bb3", "C4", "D4", "E4"},
	"D":  {"D4", "E4", "F#4", "G4", "A4", "B4", "C#5"},
	"Dm": {"D4", "E4", "F4", "G4", "A4", "Bb4", "C5"},
	"Am": {"A3", "B3", "C4", "D4", "E4", "F4", "G4"},
	"Em": {"E3", "F#3", "G3", "A3", "B3", "C4", "D4"},
}

// ScaleNotes returns the seven notes of the named key's scale. Unknown
// keys fall back to C major so callers always get a playable scale.
func ScaleNotes(rootKey string) []string {
	if s, ok := scales[rootKey]; ok {
		out := make([]string, len(s))
		copy(out, s)
		return out
	}
	out := make([]string, len(scales["C"]))
	copy(out, scales["C"])
	return out
}

// Triad returns the root, third and fifth of the named key's scale — the
// resolving chord used for return sections.
func Triad(rootKey string) []string {
	s := ScaleNotes(rootKey)
	return []string{s[0], s[2], s[4]}
}

// ChordTones returns the sparse root+fifth pair used for import sections.
func ChordTones(rootKey string) []string {
	s := ScaleNotes(rootKey)
	return []string{s[0], s[4]}
}
