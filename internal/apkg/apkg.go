// Package apkg is the public entry point of the deck generator: it turns a
// list of cards and a deck name into a complete Anki package file held in
// memory.
package apkg

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ankigen/ankigen/internal/archive"
	"github.com/ankigen/ankigen/internal/domain"
	"github.com/ankigen/ankigen/internal/media"
	"github.com/ankigen/ankigen/internal/storage"
)

// CreateDeck builds a complete .apkg byte buffer from the given cards. Each
// call works in its own temporary directory, which is removed on every exit
// path; concurrent calls share no state. On failure the returned error
// wraps the underlying cause and no buffer is returned.
func CreateDeck(cards []domain.Card, deckName string) ([]byte, error) {
	dir, err := os.MkdirTemp("", "ankigen-")
	if err != nil {
		return nil, wrap(err)
	}
	defer func() {
		// Best effort: a failed cleanup is logged, never returned in
		// place of the build result.
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			slog.Warn("failed to remove temporary deck directory", "dir", dir, "error", rmErr)
		}
	}()

	dbPath := filepath.Join(dir, archive.CollectionEntry)

	// One index shared by field composition and archive assembly, so the
	// embedded sound references and the manifest cannot drift apart.
	ix := media.ComputeIndex(cards)

	if err := buildDatabase(dbPath, cards, deckName, ix); err != nil {
		return nil, wrap(err)
	}

	out, err := archive.Assemble(dbPath, ix)
	if err != nil {
		return nil, wrap(err)
	}
	return out, nil
}

func buildDatabase(dbPath string, cards []domain.Card, deckName string, ix *media.Index) error {
	b, err := storage.Open(dbPath)
	if err != nil {
		return err
	}

	if err := b.Build(cards, deckName, ix); err != nil {
		b.Close()
		return err
	}
	// Close flushes the database to disk; assembly reads the file bytes.
	return b.Close()
}

func wrap(err error) error {
	return fmt.Errorf("Failed to create Anki deck: %w", err)
}
