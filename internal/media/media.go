package media

import (
	"fmt"

	"github.com/ankigen/ankigen/internal/domain"
)

// Side identifies which audio buffer of a card an index entry refers to.
type Side int

const (
	Target Side = iota
	Source
)

// Entry is one indexed audio buffer, ready to be written into the archive
// under its numeric filename.
type Entry struct {
	Index    int
	Filename string
	Data     []byte
}

type slot struct {
	position int
	side     Side
}

// Index maps (card position, side) to the integer media index shared by the
// record composer and the package assembler. It is computed once per deck
// build and read-only afterwards.
type Index struct {
	entries []Entry
	slots   map[slot]int
}

// ComputeIndex assigns a contiguous integer index, starting at zero, to
// every non-empty audio buffer. Assignment is two-pass: all target-side
// buffers in card order first, then all source-side buffers in card order,
// continuing the same counter. Both the embedded [sound:N.mp3] references
// and the archive manifest depend on this exact order.
func ComputeIndex(cards []domain.Card) *Index {
	ix := &Index{slots: make(map[slot]int)}
	for pos, card := range cards {
		if card.HasTargetAudio() {
			ix.add(slot{pos, Target}, card.TargetAudio)
		}
	}
	for pos, card := range cards {
		if card.HasSourceAudio() {
			ix.add(slot{pos, Source}, card.SourceAudio)
		}
	}
	return ix
}

func (ix *Index) add(s slot, data []byte) {
	n := len(ix.entries)
	ix.slots[s] = n
	ix.entries = append(ix.entries, Entry{
		Index:    n,
		Filename: fmt.Sprintf("%d.mp3", n),
		Data:     data,
	})
}

// Lookup returns the index assigned to the given card position and side.
func (ix *Index) Lookup(position int, side Side) (int, bool) {
	n, ok := ix.slots[slot{position, side}]
	return n, ok
}

// Entries returns all indexed buffers in assignment order.
func (ix *Index) Entries() []Entry {
	return ix.entries
}

// Len returns the number of indexed buffers.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Manifest returns the media manifest in the shape Anki expects:
// {"0": "0.mp3", "1": "1.mp3", ...}.
func (ix *Index) Manifest() map[string]string {
	m := make(map[string]string, len(ix.entries))
	for _, e := range ix.entries {
		m[fmt.Sprintf("%d", e.Index)] = e.Filename
	}
	return m
}
