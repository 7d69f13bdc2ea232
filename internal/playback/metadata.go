package playback

import (
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
)

// TrackInfo is what the header shows about the playing file.
type TrackInfo struct {
	Title  string
	Artist string
}

// ReadTrackInfo reads ID3v2 tags from the file, falling back to the
// bare filename when no usable tag is present.
func ReadTrackInfo(path string) TrackInfo {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err == nil {
		defer tag.Close()
		info := TrackInfo{
			Title:  strings.TrimSpace(tag.Title()),
			Artist: strings.TrimSpace(tag.Artist()),
		}
		if info.Title != "" {
			return info
		}
	}

	base := filepath.Base(path)
	return TrackInfo{Title: strings.TrimSuffix(base, filepath.Ext(base))}
}
