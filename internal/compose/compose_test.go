package compose

import (
	"strings"
	"testing"

	"github.com/ankigen/ankigen/internal/domain"
	"github.com/ankigen/ankigen/internal/media"
)

func TestComposeFields(t *testing.T) {
	testCases := []struct {
		name          string
		cards         []domain.Card
		position      int
		expectedFront string
		expectedBack  string
	}{
		{
			name: "no audio",
			cards: []domain.Card{
				{SourceText: "hello", TargetText: "hola"},
			},
			position:      0,
			expectedFront: "hola",
			expectedBack:  "hello",
		},
		{
			name: "target audio only",
			cards: []domain.Card{
				{SourceText: "hello", TargetText: "hola", TargetAudio: []byte("t")},
			},
			position:      0,
			expectedFront: "hola[sound:0.mp3]",
			expectedBack:  "hello",
		},
		{
			name: "source audio only",
			cards: []domain.Card{
				{SourceText: "hello", TargetText: "hola", SourceAudio: []byte("s")},
			},
			position:      0,
			expectedFront: "hello[sound:0.mp3]",
			expectedBack:  "hola",
		},
		{
			name: "both audios",
			cards: []domain.Card{
				{SourceText: "hello", TargetText: "hola", SourceAudio: []byte("s"), TargetAudio: []byte("t")},
			},
			position:      0,
			expectedFront: "hola[sound:0.mp3]",
			expectedBack:  "hello[sound:1.mp3]",
		},
		{
			name: "indices follow two-pass assignment across cards",
			cards: []domain.Card{
				{SourceText: "hello", TargetText: "hola", TargetAudio: []byte("t0")},
				{SourceText: "goodbye", TargetText: "adios", SourceAudio: []byte("s1"), TargetAudio: []byte("t1")},
			},
			position:      1,
			expectedFront: "adios[sound:1.mp3]",
			expectedBack:  "goodbye[sound:2.mp3]",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ix := media.ComputeIndex(tc.cards)
			fields := ComposeFields(tc.cards[tc.position], tc.position, ix)
			if fields.Front != tc.expectedFront {
				t.Errorf("expected front %q, got %q", tc.expectedFront, fields.Front)
			}
			if fields.Back != tc.expectedBack {
				t.Errorf("expected back %q, got %q", tc.expectedBack, fields.Back)
			}
		})
	}
}

func TestComposeIdentity(t *testing.T) {
	const base = int64(1700000000000)

	t.Run("ids are monotone with position", func(t *testing.T) {
		prev := ComposeIdentity(0, base)
		for pos := 1; pos < 10; pos++ {
			id := ComposeIdentity(pos, base)
			if id.NoteID <= prev.NoteID {
				t.Fatalf("note id %d not greater than previous %d", id.NoteID, prev.NoteID)
			}
			if id.CardID <= prev.CardID {
				t.Fatalf("card id %d not greater than previous %d", id.CardID, prev.CardID)
			}
			prev = id
		}
	})

	t.Run("note and card bands do not overlap", func(t *testing.T) {
		last := ComposeIdentity(500000, base)
		first := ComposeIdentity(0, base)
		if last.NoteID >= first.CardID {
			t.Errorf("note id %d reached into the card band starting at %d", last.NoteID, first.CardID)
		}
	})

	t.Run("guids are unique", func(t *testing.T) {
		seen := make(map[string]bool)
		for pos := 0; pos < 100; pos++ {
			id := ComposeIdentity(pos, base)
			if id.GUID == "" {
				t.Fatal("expected a non-empty guid")
			}
			if seen[id.GUID] {
				t.Fatalf("duplicate guid %s", id.GUID)
			}
			seen[id.GUID] = true
		}
	})
}

func TestChecksum(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		if Checksum("hola") != Checksum("hola") {
			t.Error("expected identical checksums for identical text")
		}
	})

	t.Run("content derived", func(t *testing.T) {
		if Checksum("hola") == Checksum("adios") {
			t.Error("expected different checksums for different text")
		}
	})

	t.Run("fits 32 bits and is non-negative", func(t *testing.T) {
		for _, text := range []string{"", "hola", strings.Repeat("x", 10000)} {
			c := Checksum(text)
			if c < 0 || c > 0xFFFFFFFF {
				t.Errorf("checksum %d out of range for %q", c, text)
			}
		}
	})
}
