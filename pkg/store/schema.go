package store

import (
	bolt "go.etcd.io/bbolt"
)

// SchemaVersion is the version of the encoding of stored formats. Formats
// stored under another version are dropped when the database is opened.
const SchemaVersion = "1"

var keySchema = []byte("schema")

func init() {
	initDB["check schema version"] = func(tx *bolt.Tx) error {
		meta, err := tx.CreateBucketIfNotExists([]byte(bucketMeta))
		if err != nil {
			return err
		}
		if v := meta.Get(keySchema); v != nil && string(v) != SchemaVersion {
			logger.Printf("dropping formats stored with schema %q", v)
			if err := tx.DeleteBucket([]byte(bucketFormat)); err != nil && err != bolt.ErrBucketNotFound {
				return err
			}
		}
		if _, err := tx.CreateBucketIfNotExists([]byte(bucketFormat)); err != nil {
			return err
		}
		return meta.Put(keySchema, []byte(SchemaVersion))
	}
}
