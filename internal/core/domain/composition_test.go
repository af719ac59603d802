package domain

import (
	"errors"
	"testing"
)

func TestComposition_AppendSection(t *testing.T) {
	tests := []struct {
		name     string
		existing []CompositionSection
		toAdd    CompositionSection
		wantErr  error
		wantLen  int
	}{
		{
			name:     "appends to empty composition",
			existing: nil,
			toAdd:    CompositionSection{Type: SectionImport, StartLine: 1, EndLine: 3, Duration: 2},
			wantErr:  nil,
			wantLen:  1,
		},
		{
			name: "appends after previous end line",
			existing: []CompositionSection{
				{Type: SectionImport, StartLine: 1, EndLine: 3, Duration: 2},
			},
			toAdd:   CompositionSection{Type: SectionFunction, StartLine: 4, EndLine: 9, Duration: 5},
			wantErr: nil,
			wantLen: 2,
		},
		{
			name: "rejects overlapping section",
			existing: []CompositionSection{
				{Type: SectionImport, StartLine: 1, EndLine: 3, Duration: 2},
			},
			toAdd:   CompositionSection{Type: SectionOther, StartLine: 3, EndLine: 6, Duration: 1},
			wantErr: ErrSectionOrder,
			wantLen: 1,
		},
	}

	for _, tc := range tests {
		tc := tc // capture range variable
		t.Run(tc.name, func(t *testing.T) {
			c := Composition{ID: "comp-1", Sections: tc.existing}

			err := c.AppendSection(tc.toAdd)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got: %v", err)
				}
			} else if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}

			if got := len(c.Sections); got != tc.wantLen {
				t.Fatalf("expected %d sections, got %d", tc.wantLen, got)
			}
		})
	}
}

func TestComposition_TotalDuration(t *testing.T) {
	c := Composition{
		Sections: []CompositionSection{
			{Duration: 1.5},
			{Duration: 6.0},
			{Duration: 7.5},
		},
	}
	if got := c.TotalDuration(); got != 15.0 {
		t.Fatalf("total duration: got %f, want 15.0", got)
	}

	empty := Composition{}
	if got := empty.TotalDuration(); got != 0 {
		t.Fatalf("empty composition duration: got %f, want 0", got)
	}
}

func TestScaleNotes(t *testing.T) {
	tests := []struct {
		name    string
		rootKey string
		want    int
	}{
		{name: "known major key", rootKey: "C", want: 7},
		{name: "known minor key", rootKey: "Am", want: 7},
		{name: "unknown key falls back", rootKey: "Zb", want: 7},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			notes := ScaleNotes(tc.rootKey)
			if len(notes) != tc.want {
				t.Fatalf("expected %d notes, got %d", tc.want, len(notes))
			}
		})
	}
}

func TestTriad(t *testing.T) {
	got := Triad("C")
	want := []string{"C4", "E4", "G4"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("triad: got %v, want %v", got, want)
		}
	}
}
