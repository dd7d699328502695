package subtitle

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/mgpai22/subssa/internal/ass"
)

// represents supported subtitle formats
type Format string

const (
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"
	FormatASS Format = "ass"
	FormatSSA Format = "ssa"
)

// interface for writing a script to a file in some encoding
type Exporter interface {
	Format() Format
	Export(doc *ass.Document, path, encoding string) error
}

// single timed cue read from SRT or VTT
type cue struct {
	Index     int
	StartTime time.Duration
	EndTime   time.Duration
	Text      string
}

// subtitle format based on file extension
func GetFormatFromExtension(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".srt":
		return FormatSRT, true
	case ".vtt":
		return FormatVTT, true
	case ".ass":
		return FormatASS, true
	case ".ssa":
		return FormatSSA, true
	default:
		return "", false
	}
}

// file extension for a format
func GetExtensionForFormat(format Format) string {
	switch format {
	case FormatVTT:
		return ".vtt"
	case FormatASS:
		return ".ass"
	case FormatSSA:
		return ".ssa"
	default:
		return ".srt"
	}
}
