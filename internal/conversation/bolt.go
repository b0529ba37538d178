package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var sessionBucket = []byte("sessions")

// BoltStore keeps sessions in a single-file embedded database, for
// deployments that want durable sessions without an external cache.
type BoltStore struct {
	db *bolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create session bucket: %w", err)
	}
	return &BoltStore{db: db}, nil
}

func (b *BoltStore) Close() error {
	return b.db.Close()
}

func (b *BoltStore) Get(_ context.Context, token string) (*Session, error) {
	var sess *Session
	err := b.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(sessionBucket).Get([]byte(token))
		if data == nil {
			return nil
		}
		var s Session
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode session: %w", err)
		}
		sess = &s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (b *BoltStore) Put(_ context.Context, token string, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionBucket).Put([]byte(token), data)
	})
}

func (b *BoltStore) Clear(_ context.Context, token string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionBucket).Delete([]byte(token))
	})
}
