package store

import (
	"encoding/json"
	"slices"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/breathe/breath"
	"github.com/ayoisaiah/breathe/internal/models"
)

// SavePreset creates or replaces a preset. Its settings must parse into a
// valid session configuration.
func (c *Client) SavePreset(p *models.Preset) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return errEmptyName.Fmt("preset")
	}

	if _, err := breath.ParseConfig(p.Settings); err != nil {
		return errInvalidPreset.Fmt(p.Name).Wrap(err)
	}

	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}

	return c.Update(func(tx *bolt.Tx) error {
		return putJSON(tx.Bucket([]byte(presetBucket)), p.Name, p)
	})
}

// Preset returns the preset called name.
func (c *Client) Preset(name string) (*models.Preset, error) {
	var p models.Preset

	err := c.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(presetBucket)).Get([]byte(name))
		if v == nil {
			return ErrNotFound.Wrap(errPresetNotFound.Fmt(name))
		}

		return json.Unmarshal(v, &p)
	})
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// Presets lists the saved presets in natural name order.
func (c *Client) Presets() ([]models.Preset, error) {
	var list []models.Preset

	err := c.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(presetBucket)).ForEach(func(_, v []byte) error {
			var p models.Preset
			if err := json.Unmarshal(v, &p); err != nil {
				return err
			}

			list = append(list, p)

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(list, func(a, b models.Preset) int {
		return compareNatural(a.Name, b.Name)
	})

	return list, nil
}

// DeletePreset removes a preset. The default preset cannot be removed.
func (c *Client) DeletePreset(name string) error {
	return c.Update(func(tx *bolt.Tx) error {
		if meta(tx, keyDefaultPreset) == name {
			return errDefaultPreset.Fmt(name)
		}

		b := tx.Bucket([]byte(presetBucket))
		if b.Get([]byte(name)) == nil {
			return ErrNotFound.Wrap(errPresetNotFound.Fmt(name))
		}

		return b.Delete([]byte(name))
	})
}

// SetDefaultPreset makes name the preset used when none is requested.
func (c *Client) SetDefaultPreset(name string) error {
	return c.Update(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(presetBucket)).Get([]byte(name)) == nil {
			return ErrNotFound.Wrap(errPresetNotFound.Fmt(name))
		}

		return tx.Bucket([]byte(metaBucket)).Put(
			[]byte(keyDefaultPreset),
			[]byte(name),
		)
	})
}

// DefaultPreset returns the default preset, or nil when none is set.
func (c *Client) DefaultPreset() (*models.Preset, error) {
	var name string

	_ = c.View(func(tx *bolt.Tx) error {
		name = meta(tx, keyDefaultPreset)
		return nil
	})

	if name == "" {
		return nil, nil
	}

	return c.Preset(name)
}
