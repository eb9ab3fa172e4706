// Package history keeps a ledger of APK renames in a BoltDB database inside
// the project (.andromeda/history.db), so earlier output names can be traced
// back to the variant and version that produced them.
package history

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

const (
	// DefaultDir is the per-project directory holding the database
	DefaultDir = ".andromeda"

	// FileName is the database file name
	FileName = "history.db"

	// bucketName is the BoltDB bucket name for rename records
	bucketName = "renames"
)

// History stores rename records using BoltDB
type History struct {
	db   *bbolt.DB
	root string
}

// Open opens (creating if needed) the history database in dir.
// If dir is empty, uses DefaultDir in the current working directory.
func Open(dir string) (*History, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}

		dir = filepath.Join(cwd, DefaultDir)
	}

	// Ensure history directory exists
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	dbPath := filepath.Join(dir, FileName)
	db, err := bbolt.Open(dbPath, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// Create bucket if it doesn't exist
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history bucket: %w", err)
	}

	return &History{
		db:   db,
		root: dir,
	}, nil
}

// Path returns the database file path
func (h *History) Path() string {
	return filepath.Join(h.root, FileName)
}

// Close closes the history database
func (h *History) Close() error {
	if h.db != nil {
		return h.db.Close()
	}

	return nil
}

// Record appends a rename record. A zero Timestamp is set to now.
func (h *History) Record(rec Record) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode history record: %w", err)
	}

	err = h.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))

		// Sequence keys keep records in insertion order
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}

		return b.Put(itob(seq), data)
	})
	if err != nil {
		return fmt.Errorf("failed to store history record: %w", err)
	}

	return nil
}

// List returns all records, oldest first
func (h *History) List() ([]Record, error) {
	var records []Record

	err := h.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))

		return b.ForEach(func(k, v []byte) error {
			var rec Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("corrupt history record %d: %w", binary.BigEndian.Uint64(k), err)
			}

			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// Latest returns the most recent record for variant
func (h *History) Latest(variant string) (*Record, error) {
	var found *Record

	err := h.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(bucketName)).Cursor()

		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			var rec Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("corrupt history record %d: %w", binary.BigEndian.Uint64(k), err)
			}

			if rec.Variant == variant {
				found = &rec
				return nil
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return found, nil
}

// Clear removes all records
func (h *History) Clear() error {
	// Clear BoltDB
	err := h.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketName)); err != nil {
			return err
		}

		// Recreate bucket
		_, err := tx.CreateBucket([]byte(bucketName))
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	return nil
}

// Stats returns the number of records and the database file size
func (h *History) Stats() (int, int64, error) {
	var count int

	err := h.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))

		count = b.Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	info, err := os.Stat(h.Path())
	if err != nil {
		return count, 0, nil
	}

	return count, info.Size(), nil
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)

	return b
}
