package domain

// Card is one flashcard entry as supplied by the caller: two language
// fields plus optional audio for either side. Audio buffers of length
// zero are treated as absent throughout the pipeline.
type Card struct {
	SourceText  string
	TargetText  string
	SourceAudio []byte
	TargetAudio []byte
}

// HasSourceAudio reports whether the card carries a non-empty source-side buffer.
func (c Card) HasSourceAudio() bool {
	return len(c.SourceAudio) > 0
}

// HasTargetAudio reports whether the card carries a non-empty target-side buffer.
func (c Card) HasTargetAudio() bool {
	return len(c.TargetAudio) > 0
}
