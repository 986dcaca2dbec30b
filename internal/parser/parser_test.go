package parser

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name            string
		input           string
		expectedEntries int
		expectedSource  string
		expectedTarget  string
		expectedSA      string
		expectedTA      string
	}{
		{
			name:            "simple pair",
			input:           "S: hello\nT: hola",
			expectedEntries: 1,
			expectedSource:  "hello",
			expectedTarget:  "hola",
		},
		{
			name:            "pair with both audio files",
			input:           "S: hello\nT: hola\nSA: audio/hello.mp3\nTA: audio/hola.mp3",
			expectedEntries: 1,
			expectedSource:  "hello",
			expectedTarget:  "hola",
			expectedSA:      "audio/hello.mp3",
			expectedTA:      "audio/hola.mp3",
		},
		{
			name: "multiline target",
			input: `
S: good morning
T: buenos
dias
`,
			expectedEntries: 1,
			expectedSource:  "good morning",
			expectedTarget:  "buenos\ndias",
		},
		{
			name: "two entries separated by dashes",
			input: `
S: hello
T: hola
---
S: goodbye
T: adios
`,
			expectedEntries: 2,
		},
		{
			name: "new source line starts a new entry",
			input: `
S: hello
T: hola
S: goodbye
T: adios
`,
			expectedEntries: 2,
		},
		{
			name: "audio line between entries stays with its entry",
			input: `
S: hello
T: hola
TA: hola.mp3
---
S: goodbye
T: adios
`,
			expectedEntries: 2,
			expectedSource:  "hello",
			expectedTarget:  "hola",
			expectedTA:      "hola.mp3",
		},
		{
			name:            "empty input",
			input:           "",
			expectedEntries: 0,
		},
		{
			name:            "separator only",
			input:           "---\n---",
			expectedEntries: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			entries, err := Parse(strings.NewReader(tc.input))
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if len(entries) != tc.expectedEntries {
				t.Fatalf("expected %d entries, got %d", tc.expectedEntries, len(entries))
			}
			if tc.expectedEntries == 0 {
				return
			}

			first := entries[0]
			if tc.expectedSource != "" && first.SourceText != tc.expectedSource {
				t.Errorf("expected source %q, got %q", tc.expectedSource, first.SourceText)
			}
			if tc.expectedTarget != "" && first.TargetText != tc.expectedTarget {
				t.Errorf("expected target %q, got %q", tc.expectedTarget, first.TargetText)
			}
			if first.SourceAudioPath != tc.expectedSA {
				t.Errorf("expected source audio path %q, got %q", tc.expectedSA, first.SourceAudioPath)
			}
			if first.TargetAudioPath != tc.expectedTA {
				t.Errorf("expected target audio path %q, got %q", tc.expectedTA, first.TargetAudioPath)
			}
		})
	}
}

func TestParseAudioOrderIndependent(t *testing.T) {
	input := `
S: hello
SA: hello.mp3
T: hola
TA: hola.mp3
`
	entries, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.SourceText != "hello" || e.TargetText != "hola" {
		t.Errorf("unexpected texts: %+v", e)
	}
	if e.SourceAudioPath != "hello.mp3" || e.TargetAudioPath != "hola.mp3" {
		t.Errorf("unexpected audio paths: %+v", e)
	}
}
