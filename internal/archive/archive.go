package archive

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ankigen/ankigen/internal/media"
)

// Fixed entry names inside the apkg container.
const (
	CollectionEntry = "collection.anki2"
	ManifestEntry   = "media"
)

// PackagingError reports a failed archive assembly, naming the step or
// entry that failed.
type PackagingError struct {
	Step string
	Err  error
}

func (e *PackagingError) Error() string {
	return fmt.Sprintf("packaging failed at %s: %v", e.Step, e.Err)
}

func (e *PackagingError) Unwrap() error { return e.Err }

// Assemble bundles the finished collection database, the indexed media
// buffers, and the JSON manifest into one zip archive and returns it as a
// byte buffer. Media entries are written in index order, so filenames and
// the manifest always agree with the [sound:N.mp3] references already
// embedded in the database.
func Assemble(dbPath string, ix *media.Index) ([]byte, error) {
	if err := checkDatabaseFile(dbPath); err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	if err := writeCollection(zw, dbPath); err != nil {
		return nil, err
	}
	for _, entry := range ix.Entries() {
		w, err := zw.Create(strconv.Itoa(entry.Index))
		if err != nil {
			return nil, &PackagingError{Step: "media entry " + strconv.Itoa(entry.Index), Err: err}
		}
		if _, err := w.Write(entry.Data); err != nil {
			return nil, &PackagingError{Step: "media entry " + strconv.Itoa(entry.Index), Err: err}
		}
	}
	if err := writeManifest(zw, ix); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, &PackagingError{Step: "archive finalization", Err: err}
	}
	return buf.Bytes(), nil
}

// checkDatabaseFile guards against packaging a database that was never
// written: the file must exist, be regular, and be non-empty.
func checkDatabaseFile(dbPath string) error {
	info, err := os.Stat(dbPath)
	if err != nil {
		return &PackagingError{Step: "database precondition", Err: err}
	}
	if !info.Mode().IsRegular() {
		return &PackagingError{Step: "database precondition", Err: fmt.Errorf("%s is not a regular file", dbPath)}
	}
	if info.Size() == 0 {
		return &PackagingError{Step: "database precondition", Err: fmt.Errorf("%s is empty", dbPath)}
	}
	return nil
}

func writeCollection(zw *zip.Writer, dbPath string) error {
	f, err := os.Open(dbPath)
	if err != nil {
		return &PackagingError{Step: CollectionEntry, Err: err}
	}
	defer f.Close()

	w, err := zw.Create(CollectionEntry)
	if err != nil {
		return &PackagingError{Step: CollectionEntry, Err: err}
	}
	if _, err := io.Copy(w, f); err != nil {
		return &PackagingError{Step: CollectionEntry, Err: err}
	}
	return nil
}

func writeManifest(zw *zip.Writer, ix *media.Index) error {
	manifest, err := json.Marshal(ix.Manifest())
	if err != nil {
		return &PackagingError{Step: ManifestEntry, Err: err}
	}
	w, err := zw.Create(ManifestEntry)
	if err != nil {
		return &PackagingError{Step: ManifestEntry, Err: err}
	}
	if _, err := w.Write(manifest); err != nil {
		return &PackagingError{Step: ManifestEntry, Err: err}
	}
	return nil
}
