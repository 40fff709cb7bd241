// Package store keeps compiled printf formats in a bbolt database, so that
// they survive across processes.
package store

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"src.shprintf.dev/pkg/logutil"
	"src.shprintf.dev/pkg/printf"
)

var logger = logutil.GetLogger("[store] ")

// Names of buckets.
const (
	bucketFormat = "format"
	bucketMeta   = "meta"
)

// initDB is the registry of functions that prepare a newly opened database.
// They are run in one transaction, in no particular order.
var initDB = map[string](func(*bolt.Tx) error){}

// DBStore is the permanent storage for compiled formats. It implements
// printf.Backing.
type DBStore interface {
	printf.Backing
	// Texts returns the text of all stored formats, in lexicographic order.
	Texts() ([]string, error)
	// Delete removes a stored format. Deleting a missing format is not an
	// error.
	Delete(text string) error
	Close() error
}

type dbStore struct {
	db *bolt.DB
}

// NewStore opens or creates the database at dbname.
func NewStore(dbname string) (DBStore, error) {
	db, err := bolt.Open(dbname, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	return NewStoreFromDB(db)
}

// NewStoreFromDB creates a new Store from a bolt DB.
func NewStoreFromDB(db *bolt.DB) (DBStore, error) {
	logger.Println("initializing store")
	defer logger.Println("initialized store")
	st := &dbStore{db}

	err := db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				return fmt.Errorf("failed to %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return st, nil
}

// Close closes the database.
func (s *dbStore) Close() error {
	return s.db.Close()
}
