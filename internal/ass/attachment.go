package ass

import (
	"fmt"
	"path/filepath"
	"strings"
)

// which script section an attachment belongs to
type Group int

const (
	GroupOther Group = iota
	GroupFont
	GroupGraphic
)

func (g Group) String() string {
	switch g {
	case GroupFont:
		return "font"
	case GroupGraphic:
		return "graphic"
	default:
		return "other"
	}
}

// embedded file, stored in its encoded text form
type Attachment struct {
	Group    Group
	Filename string
	// encoded payload, one entry per script line
	Lines []string
}

var fontExtensions = map[string]bool{
	".ttf": true,
	".ttc": true,
	".otf": true,
	".pfb": true,
	".pfm": true,
	".fon": true,
}

// group implied by a file name
func GroupForFilename(name string) Group {
	if fontExtensions[strings.ToLower(filepath.Ext(name))] {
		return GroupFont
	}
	return GroupGraphic
}

// NewAttachment encodes data for embedding. Font names get the _0 suffix
// the format uses to mark an unmodified font file.
func NewAttachment(name string, data []byte) Attachment {
	name = filepath.Base(name)
	group := GroupForFilename(name)
	if group == GroupFont {
		ext := filepath.Ext(name)
		name = strings.TrimSuffix(name, ext) + "_0" + ext
	}

	return Attachment{
		Group:    group,
		Filename: name,
		Lines:    UUEncode(data),
	}
}

// header line followed by the encoded lines, newline separated
func (a Attachment) EntryData() string {
	header := "filename: " + a.Filename
	if a.Group == GroupFont {
		header = "fontname: " + a.Filename
	}
	if len(a.Lines) == 0 {
		return header
	}
	return header + "\n" + strings.Join(a.Lines, "\n")
}

func (a Attachment) Decode() ([]byte, error) {
	data, err := UUDecode(strings.Join(a.Lines, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to decode attachment %s: %w", a.Filename, err)
	}
	return data, nil
}

const uuLineLength = 80

// UUEncode applies the script attachment encoding: each 6-bit group is
// offset by 33, and a trailing partial group emits only the characters
// it needs. Output is split into lines of 80 characters.
func UUEncode(data []byte) []string {
	var (
		lines []string
		sb    strings.Builder
	)
	size := len(data)

	for pos := 0; pos < size; pos += 3 {
		var src [3]byte
		copy(src[:], data[pos:])

		dst := [4]byte{
			src[0] >> 2,
			(src[0]&0x3)<<4 | (src[1]&0xF0)>>4,
			(src[1]&0xF)<<2 | (src[2]&0xC0)>>6,
			src[2] & 0x3F,
		}

		n := min(size-pos+1, 4)
		for i := 0; i < n; i++ {
			sb.WriteByte(dst[i] + 33)
			if sb.Len() == uuLineLength {
				lines = append(lines, sb.String())
				sb.Reset()
			}
		}
	}

	if sb.Len() > 0 {
		lines = append(lines, sb.String())
	}
	return lines
}

// UUDecode reverses UUEncode. Whitespace between characters is ignored.
func UUDecode(s string) ([]byte, error) {
	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\r' || c == '\n' || c == ' ' || c == '\t' {
			continue
		}
		if c < 33 || c > 33+63 {
			return nil, fmt.Errorf("invalid character %q at offset %d", c, i)
		}
		buf = append(buf, c-33)
	}

	if len(buf)%4 == 1 {
		return nil, fmt.Errorf("truncated data: %d characters", len(buf))
	}

	out := make([]byte, 0, len(buf)*3/4)
	for pos := 0; pos < len(buf); pos += 4 {
		var src [4]byte
		n := copy(src[:], buf[pos:])

		dst := [3]byte{
			src[0]<<2 | src[1]>>4,
			(src[1]&0xF)<<4 | src[2]>>2,
			(src[2]&0x3)<<6 | src[3],
		}
		out = append(out, dst[:n-1]...)
	}
	return out, nil
}
