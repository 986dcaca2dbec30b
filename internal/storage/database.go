package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Registers the sqlite driver

	"github.com/ankigen/ankigen/internal/compose"
	"github.com/ankigen/ankigen/internal/domain"
	"github.com/ankigen/ankigen/internal/media"
)

// fieldSeparator joins the two field values inside a note's flds blob.
const fieldSeparator = "\x1f"

// Builder writes one complete collection database to a fresh file. It is
// single-use: Open, Build, Close.
type Builder struct {
	conn *sql.DB
}

// Open creates a database connection to the given (empty) file.
func Open(path string) (*Builder, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Builder{conn: conn}, nil
}

// Close closes the database connection, flushing all writes to the file.
func (b *Builder) Close() error {
	return b.conn.Close()
}

// Build creates the schema and populates the collection row plus one note
// row and one card row per input card, in input order. The media index must
// have been computed from the same card list so [sound:N.mp3] references
// agree with the archive layout. Any failure aborts the build; the caller
// must discard the file.
func (b *Builder) Build(cards []domain.Card, deckName string, ix *media.Index) error {
	now := time.Now()

	if err := b.createSchema(); err != nil {
		return err
	}

	modelID := now.UnixMilli()
	deckID := modelID + 1
	if err := b.insertCollection(now, modelID, deckID, deckName); err != nil {
		return &InsertError{Position: -1, Err: err}
	}

	base := now.UnixMilli()
	for pos, card := range cards {
		fields := compose.ComposeFields(card, pos, ix)
		id := compose.ComposeIdentity(pos, base)
		if err := b.insertNote(id, fields, card, now, pos, modelID); err != nil {
			return &InsertError{Position: pos, Err: err}
		}
		if err := b.insertCard(id, now, deckID); err != nil {
			return &InsertError{Position: pos, Err: err}
		}
	}

	return nil
}

// createSchema executes every DDL statement in order: all tables, then all
// indexes. Execution stops at the first failure.
func (b *Builder) createSchema() error {
	for _, stmts := range [][]string{tableStatements, indexStatements} {
		for _, stmt := range stmts {
			if _, err := b.conn.Exec(stmt); err != nil {
				return &SchemaError{Statement: firstLine(stmt), Err: err}
			}
		}
	}
	return nil
}

func (b *Builder) insertCollection(now time.Time, modelID, deckID int64, deckName string) error {
	models, err := encodeModels(modelID, deckID, now.Unix())
	if err != nil {
		return err
	}
	decks, err := encodeDecks(deckID, now.Unix(), deckName)
	if err != nil {
		return err
	}
	conf, err := encodeConf(modelID, deckID)
	if err != nil {
		return err
	}

	_, err = b.conn.Exec(`
		INSERT INTO col (id, crt, mod, scm, ver, dty, usn, ls, conf, models, decks, dconf, tags)
		VALUES (1, ?, ?, ?, 11, 0, 0, 0, ?, ?, ?, ?, '{}')
	`,
		now.Unix(),
		now.UnixMilli(),
		now.UnixMilli(),
		conf,
		models,
		decks,
		dconfDefault,
	)
	return err
}

func (b *Builder) insertNote(id compose.Identity, fields compose.Fields, card domain.Card, now time.Time, pos int, modelID int64) error {
	// Per-note offset keeps modification timestamps distinct across notes.
	mod := now.Unix() + int64(pos)

	_, err := b.conn.Exec(`
		INSERT INTO notes (id, guid, mid, mod, usn, tags, flds, sfld, csum, flags, data)
		VALUES (?, ?, ?, ?, -1, '', ?, ?, ?, 0, '')
	`,
		id.NoteID,
		id.GUID,
		modelID,
		mod,
		fields.Front+fieldSeparator+fields.Back,
		fields.Front,
		compose.Checksum(card.TargetText),
	)
	return err
}

// insertCard writes one card row with every scheduling field at its
// "new/unstudied" sentinel. This exporter never produces review history.
func (b *Builder) insertCard(id compose.Identity, now time.Time, deckID int64) error {
	_, err := b.conn.Exec(`
		INSERT INTO cards (id, nid, did, ord, mod, usn, type, queue, due, ivl, factor, reps, lapses, left, odue, odid, flags, data)
		VALUES (?, ?, ?, 0, ?, -1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, '')
	`,
		id.CardID,
		id.NoteID,
		deckID,
		now.Unix(),
	)
	return err
}

func firstLine(stmt string) string {
	for i := 0; i < len(stmt); i++ {
		if stmt[i] == '\n' {
			return stmt[:i]
		}
	}
	return stmt
}
