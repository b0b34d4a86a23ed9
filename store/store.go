// Package store keeps the soundscape library, the presets and the run
// history in a bbolt database
package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/breathe/internal/static"
)

const (
	soundscapeBucket = "soundscapes"
	presetBucket     = "presets"
	runBucket        = "runs"
	metaBucket       = "meta"
)

const (
	keyDefaultSoundscape = "default_soundscape"
	keyDefaultPreset     = "default_preset"
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
	soundsDir string
}

// open creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, errAlreadyRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection. Soundscape tracks are
// looked up in soundsDir.
func NewClient(dbPath, soundsDir string) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	// Create the necessary buckets for storing data if they do not exist already
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{
			soundscapeBucket,
			presetBucket,
			runBucket,
			metaBucket,
		} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Client{
		DB:        db,
		soundsDir: soundsDir,
	}, nil
}

// Seed adds the built-in library. Existing records and defaults are kept,
// so seeding on every start is safe.
func (c *Client) Seed(lib *static.Library) error {
	return c.Update(func(tx *bolt.Tx) error {
		sb := tx.Bucket([]byte(soundscapeBucket))

		for i := range lib.Soundscapes {
			s := lib.Soundscapes[i]
			if sb.Get([]byte(s.Name)) != nil {
				continue
			}

			if err := putJSON(sb, s.Name, s); err != nil {
				return err
			}
		}

		pb := tx.Bucket([]byte(presetBucket))

		for i := range lib.Presets {
			p := lib.Presets[i]
			if pb.Get([]byte(p.Name)) != nil {
				continue
			}

			if err := putJSON(pb, p.Name, p); err != nil {
				return err
			}
		}

		meta := tx.Bucket([]byte(metaBucket))

		defaults := map[string]string{
			keyDefaultSoundscape: lib.DefaultSoundscape,
			keyDefaultPreset:     lib.DefaultPreset,
		}

		for k, v := range defaults {
			if v == "" || meta.Get([]byte(k)) != nil {
				continue
			}

			if err := meta.Put([]byte(k), []byte(v)); err != nil {
				return err
			}
		}

		return nil
	})
}

func putJSON(b *bolt.Bucket, key string, v any) error {
	value, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return b.Put([]byte(key), value)
}

func meta(tx *bolt.Tx, key string) string {
	return string(tx.Bucket([]byte(metaBucket)).Get([]byte(key)))
}
