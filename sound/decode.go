package sound

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// Extensions lists the supported sound file extensions.
var Extensions = []string{".mp3", ".ogg", ".flac", ".wav"}

// Supported reports whether path has a playable extension.
func Supported(path string) bool {
	return slices.Contains(Extensions, strings.ToLower(filepath.Ext(path)))
}

// decode opens path and returns a stream over its samples. Closing the
// stream closes the file.
func decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !Supported(path) {
		return nil, beep.Format{}, errUnsupportedFormat.Fmt(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, errOpenTrack.Fmt(path).Wrap(err)
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)

	switch ext {
	case ".ogg":
		stream, format, err = vorbis.Decode(f)
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".flac":
		stream, format, err = flac.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	}

	if err != nil {
		_ = f.Close()

		return nil, beep.Format{}, errDecodeTrack.Fmt(path).Wrap(err)
	}

	return stream, format, nil
}
