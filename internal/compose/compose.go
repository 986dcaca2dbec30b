package compose

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"

	"github.com/ankigen/ankigen/internal/domain"
	"github.com/ankigen/ankigen/internal/media"
)

// cardIDBand separates card ids from note ids derived from the same base
// timestamp. 2^20 leaves ample per-build id space before the bands could
// meet, even for very large decks.
const cardIDBand = 1 << 20

// Fields holds the two rendered sides of a card.
type Fields struct {
	Front string
	Back  string
}

// Identity holds the database identifiers for one note/card pair.
type Identity struct {
	NoteID int64
	CardID int64
	GUID   string
}

// ComposeFields decides which text goes on which side and appends inline
// sound markers. A side that has audio is promoted to the front so the
// learner hears it on first exposure; when both sides have audio the target
// text stays on the front to keep the recall direction consistent.
func ComposeFields(card domain.Card, position int, ix *media.Index) Fields {
	hasSource := card.HasSourceAudio()
	hasTarget := card.HasTargetAudio()

	switch {
	case hasTarget && hasSource:
		return Fields{
			Front: card.TargetText + soundTag(mustLookup(ix, position, media.Target)),
			Back:  card.SourceText + soundTag(mustLookup(ix, position, media.Source)),
		}
	case hasTarget:
		return Fields{
			Front: card.TargetText + soundTag(mustLookup(ix, position, media.Target)),
			Back:  card.SourceText,
		}
	case hasSource:
		return Fields{
			Front: card.SourceText + soundTag(mustLookup(ix, position, media.Source)),
			Back:  card.TargetText,
		}
	default:
		return Fields{Front: card.TargetText, Back: card.SourceText}
	}
}

// ComposeIdentity derives the note and card ids for the card at the given
// position from a shared millisecond base timestamp. Ids are monotone with
// input order and far from any small sequential range a real collection
// could contain.
func ComposeIdentity(position int, base int64) Identity {
	return Identity{
		NoteID: base + int64(position),
		CardID: base + cardIDBand + int64(position),
		GUID:   uuid.NewString(),
	}
}

// Checksum returns Anki's field checksum for the given text: the first
// 32 bits of its SHA-1 digest. It is only a duplicate-scan hint, never a
// correctness input.
func Checksum(text string) int64 {
	sum := sha1.Sum([]byte(text))
	return int64(binary.BigEndian.Uint32(sum[:4]))
}

func soundTag(index int) string {
	return fmt.Sprintf("[sound:%d.mp3]", index)
}

func mustLookup(ix *media.Index, position int, side media.Side) int {
	n, ok := ix.Lookup(position, side)
	if !ok {
		// The index was built from the same card list; a miss here means
		// the caller passed a map computed from different input.
		panic(fmt.Sprintf("media index missing entry for card %d side %d", position, side))
	}
	return n
}
