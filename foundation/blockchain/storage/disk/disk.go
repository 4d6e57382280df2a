// Package disk implements the ability to read and write documents to disk
// with one json file per key.
package disk

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Disk represents the storage implementation for reading and storing
// documents in their own separate files on disk. This implements the
// storage.Storage interface.
type Disk struct {
	dbPath string
}

// New constructs a Disk value for use.
func New(dbPath string) (*Disk, error) {
	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return nil, err
	}

	return &Disk{dbPath: dbPath}, nil
}

// Close in this implementation has nothing to do since a file is opened and
// closed for every read and write.
func (d *Disk) Close() error {
	return nil
}

// Read returns the contents of the document stored under the key.
func (d *Disk) Read(key string) ([]byte, error) {
	return os.ReadFile(d.getPath(key))
}

// Write replaces the document stored under the key. The data is written to a
// temporary file in the same folder and renamed over the old document so a
// crash never leaves a partially written file behind.
func (d *Disk) Write(key string, data []byte) error {
	f, err := os.CreateTemp(d.dbPath, key+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()

	// Remove the temporary file if anything fails before the rename.
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmp)
		}
	}()

	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmp, 0600); err != nil {
		return err
	}

	if err := os.Rename(tmp, d.getPath(key)); err != nil {
		return fmt.Errorf("replacing %s: %w", key, err)
	}
	committed = true

	return nil
}

// Remove deletes the document stored under the key. Removing a document that
// does not exist is not an error.
func (d *Disk) Remove(key string) error {
	err := os.Remove(d.getPath(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}

// getPath forms the path to the specified document.
func (d *Disk) getPath(key string) string {
	return filepath.Join(d.dbPath, fmt.Sprintf("%s.json", key))
}
