// Package source opens audio files and presents them as a uniform
// stream of interleaved signed 16-bit little-endian PCM.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat reports a file extension no decoder handles.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Decoder is a finite, non-restartable stream of s16le PCM.
type Decoder interface {
	io.Reader
	io.Closer

	// SampleRate is the stream rate in Hz.
	SampleRate() int
	// Channels is the number of interleaved channels.
	Channels() int
	// Length is the total decoded stream size in bytes, 0 if unknown.
	Length() int64
}

// Open detects the format of the file at path by extension and returns
// a Decoder owning the underlying file handle.
func Open(path string) (Decoder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var (
		d   Decoder
		ext = strings.ToLower(filepath.Ext(path))
	)
	switch ext {
	case ".wav":
		d, err = newWAVDecoder(f)
	case ".mp3":
		d, err = newMP3Decoder(f)
	case ".flac":
		d, err = newFLACDecoder(f)
	case ".ogg":
		d, err = newOGGDecoder(f)
	default:
		f.Close()
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	return d, nil
}
