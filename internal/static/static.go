// Package static embeds the soundscape library shipped with the binary and
// copies it to the filesystem
package static

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ayoisaiah/breathe/internal/apperr"
	"github.com/ayoisaiah/breathe/internal/models"
	"github.com/ayoisaiah/breathe/internal/osutil"
)

const (
	filesDir    = "files"
	libraryFile = "library.yml"
)

var errLibrary = &apperr.Error{
	Message: "the built-in library is invalid",
}

//go:embed files/*
var embeddedFiles embed.FS

// Library is the seed content of a new store.
type Library struct {
	DefaultSoundscape string              `yaml:"default_soundscape"`
	DefaultPreset     string              `yaml:"default_preset"`
	Soundscapes       []models.Soundscape `yaml:"soundscapes"`
	Presets           []models.Preset     `yaml:"presets"`
}

// Load parses the embedded library. Every entry is marked as built in.
func Load() (*Library, error) {
	b, err := embeddedFiles.ReadFile(filesDir + "/" + libraryFile)
	if err != nil {
		return nil, errLibrary.Wrap(err)
	}

	return parse(b)
}

func parse(b []byte) (*Library, error) {
	var lib Library

	if err := yaml.Unmarshal(b, &lib); err != nil {
		return nil, errLibrary.Wrap(err)
	}

	for i := range lib.Soundscapes {
		lib.Soundscapes[i].Builtin = true
	}

	for i := range lib.Presets {
		lib.Presets[i].Builtin = true
	}

	return &lib, nil
}

// Install copies the embedded files into dataDir. Files that already exist
// are left alone so user edits survive upgrades.
func Install(dataDir string) error {
	return fs.WalkDir(
		embeddedFiles,
		filesDir,
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				return nil
			}

			b, err := embeddedFiles.ReadFile(path)
			if err != nil {
				return err
			}

			stripped := strings.TrimPrefix(path, filesDir+"/")

			destPath := filepath.Join(dataDir, filepath.FromSlash(stripped))

			// Only write if file does not already exist
			if _, err := os.Stat(destPath); os.IsNotExist(err) {
				if err := os.MkdirAll(filepath.Dir(destPath), osutil.DirPermission); err != nil {
					return err
				}

				if err := os.WriteFile(destPath, b, osutil.FilePermission); err != nil {
					return err
				}
			}

			return nil
		},
	)
}
