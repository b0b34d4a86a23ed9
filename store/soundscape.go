package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/maruel/natural"
	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/breathe/internal/models"
	"github.com/ayoisaiah/breathe/playback"
	"github.com/ayoisaiah/breathe/sound"
)

// SaveSoundscape creates or replaces a soundscape.
func (c *Client) SaveSoundscape(s *models.Soundscape) error {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return errEmptyName.Fmt("soundscape")
	}

	if strings.TrimSpace(s.Primary) == "" {
		return errNoPrimary.Fmt(s.Name)
	}

	return c.Update(func(tx *bolt.Tx) error {
		return putJSON(tx.Bucket([]byte(soundscapeBucket)), s.Name, s)
	})
}

// Soundscape returns the soundscape called name.
func (c *Client) Soundscape(name string) (*models.Soundscape, error) {
	var s models.Soundscape

	err := c.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(soundscapeBucket)).Get([]byte(name))
		if v == nil {
			return ErrNotFound.Wrap(errSoundscapeNotFound.Fmt(name))
		}

		return json.Unmarshal(v, &s)
	})
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// Soundscapes lists the library in natural name order.
func (c *Client) Soundscapes() ([]models.Soundscape, error) {
	var list []models.Soundscape

	err := c.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(soundscapeBucket)).ForEach(func(_, v []byte) error {
			var s models.Soundscape
			if err := json.Unmarshal(v, &s); err != nil {
				return err
			}

			list = append(list, s)

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(list, func(a, b models.Soundscape) int {
		return compareNatural(a.Name, b.Name)
	})

	return list, nil
}

// DeleteSoundscape removes a soundscape. The default one cannot be removed.
func (c *Client) DeleteSoundscape(name string) error {
	return c.Update(func(tx *bolt.Tx) error {
		if meta(tx, keyDefaultSoundscape) == name {
			return errDefaultSoundscape.Fmt(name)
		}

		b := tx.Bucket([]byte(soundscapeBucket))
		if b.Get([]byte(name)) == nil {
			return ErrNotFound.Wrap(errSoundscapeNotFound.Fmt(name))
		}

		return b.Delete([]byte(name))
	})
}

// DefaultSoundscape returns the name of the soundscape used when none is
// configured.
func (c *Client) DefaultSoundscape() (string, error) {
	var name string

	err := c.View(func(tx *bolt.Tx) error {
		name = meta(tx, keyDefaultSoundscape)
		return nil
	})

	return name, err
}

// ResolveSoundscape maps a soundscape to the files of its tracks. An empty
// id selects the default soundscape.
func (c *Client) ResolveSoundscape(id string) (playback.Resolved, error) {
	if id == "" {
		def, err := c.DefaultSoundscape()
		if err != nil {
			return playback.Resolved{}, err
		}

		id = def
	}

	s, err := c.Soundscape(id)
	if err != nil {
		return playback.Resolved{}, err
	}

	primary, err := c.resolveTrack(s.Primary)
	if err != nil {
		return playback.Resolved{}, err
	}

	res := playback.Resolved{Primary: primary}

	if s.Secondary != "" {
		secondary, err := c.resolveTrack(s.Secondary)
		if err != nil {
			return playback.Resolved{}, err
		}

		res.Secondary = &secondary
	}

	return res, nil
}

// resolveTrack finds the file of a track. Names without an extension match
// the first supported format present.
func (c *Client) resolveTrack(name string) (playback.Resource, error) {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.soundsDir, name)
	}

	candidates := []string{path}

	if filepath.Ext(name) == "" {
		candidates = candidates[:0]
		for _, ext := range sound.Extensions {
			candidates = append(candidates, path+ext)
		}
	}

	for _, p := range candidates {
		if !sound.Supported(p) {
			continue
		}

		_, err := os.Stat(p)
		if err == nil {
			return playback.Resource{Name: name, Path: p}, nil
		}

		if !errors.Is(err, os.ErrNotExist) {
			return playback.Resource{}, err
		}
	}

	return playback.Resource{}, ErrNotFound.Wrap(
		errTrackNotFound.Fmt(name, c.soundsDir),
	)
}

func compareNatural(a, b string) int {
	switch {
	case natural.Less(a, b):
		return -1
	case natural.Less(b, a):
		return 1
	default:
		return 0
	}
}
