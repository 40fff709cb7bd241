package store

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	bolt "go.etcd.io/bbolt"

	"src.shprintf.dev/pkg/printf"
)

// Load returns the stored format for text, or nil if there is none.
func (s *dbStore) Load(text string) (*printf.Format, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketFormat))
		if v := b.Get([]byte(text)); v != nil {
			// v is only valid within the transaction.
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil || data == nil {
		return nil, err
	}
	var rec formatRecord
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode stored format %q: %w", text, err)
	}
	if rec.Text != text {
		return nil, fmt.Errorf("stored format %q has text %q", text, rec.Text)
	}
	return rec.format()
}

// Save stores a format, replacing any stored format with the same text.
func (s *dbStore) Save(f *printf.Format) error {
	data, err := msgpack.Marshal(newFormatRecord(f))
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketFormat))
		return b.Put([]byte(f.Text), data)
	})
}

func (s *dbStore) Texts() ([]string, error) {
	var texts []string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketFormat))
		return b.ForEach(func(k, _ []byte) error {
			texts = append(texts, string(k))
			return nil
		})
	})
	return texts, err
}

func (s *dbStore) Delete(text string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketFormat))
		return b.Delete([]byte(text))
	})
}
