package store

import (
	"bytes"
	"encoding/json"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/breathe/internal/models"
	"github.com/ayoisaiah/breathe/internal/timeutil"
)

// SaveRun records a finished session, keyed by its start time.
func (c *Client) SaveRun(r *models.Run) error {
	value, err := json.Marshal(r)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(runBucket)).Put(timeutil.ToKey(r.Start), value)
	})
}

// Runs returns the sessions active between since and until, oldest first.
// A run that started before since is included if it ended after it. A zero
// until means now.
func (c *Client) Runs(since, until time.Time) ([]models.Run, error) {
	if until.IsZero() {
		until = time.Now()
	}

	var runs []models.Run

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(runBucket)).Cursor()
		lo := timeutil.ToKey(since)
		hi := timeutil.ToKey(until)

		k, v := cur.Seek(lo)

		// the previous run may overlap the start of the range
		var pk, pv []byte
		if k == nil {
			pk, pv = cur.Last()
		} else {
			pk, pv = cur.Prev()
		}

		if pk != nil {
			var prev models.Run
			if err := json.Unmarshal(pv, &prev); err != nil {
				return err
			}

			if prev.End.After(since) {
				runs = append(runs, prev)
			}
		}

		k, v = cur.Seek(lo)

		for ; k != nil && bytes.Compare(k, hi) <= 0; k, v = cur.Next() {
			var r models.Run
			if err := json.Unmarshal(v, &r); err != nil {
				return err
			}

			runs = append(runs, r)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return runs, nil
}
