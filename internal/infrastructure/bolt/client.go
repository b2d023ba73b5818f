package bolt

import (
	"os"
	"path/filepath"
	"time"

	boltlib "go.etcd.io/bbolt"
)

// Open initializes the bbolt file and ensures the named bucket exists.
func Open(path string, bucket string) (*boltlib.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := boltlib.Open(path, 0o600, &boltlib.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *boltlib.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
