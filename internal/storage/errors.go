package storage

import "fmt"

// SchemaError reports a failed table or index creation. The database file
// is unusable and must be discarded.
type SchemaError struct {
	Statement string
	Err       error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema creation failed at %q: %v", e.Statement, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// InsertError reports a failed row insertion. Position is the input-order
// card index, or -1 for the collection-metadata row.
type InsertError struct {
	Position int
	Err      error
}

func (e *InsertError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("failed to insert collection row: %v", e.Err)
	}
	return fmt.Sprintf("failed to insert rows for card %d: %v", e.Position, e.Err)
}

func (e *InsertError) Unwrap() error { return e.Err }
