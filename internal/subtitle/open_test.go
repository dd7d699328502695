package subtitle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mgpai22/subssa/internal/ass"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestOpenSRT(t *testing.T) {
	content := "\ufeff" + `1
00:00:01,000 --> 00:00:04,000
Hello, world!

2
00:00:05,500 --> 00:00:08,200
This is a <i>test</i>.
With multiple lines.

3
00:00:10,000 --> 00:00:12,500
Final subtitle.
`
	doc, err := Open(writeFixture(t, "episode.srt", content))
	require.NoError(t, err)

	require.Len(t, doc.Events, 3)
	assert.Equal(t, time.Second, doc.Events[0].Start)
	assert.Equal(t, 4*time.Second, doc.Events[0].End)
	assert.Equal(t, "Hello, world!", doc.Events[0].Text)
	assert.Equal(t, `This is a {\i1}test{\i0}.\NWith multiple lines.`, doc.Events[1].Text)
	assert.Equal(t, 12500*time.Millisecond, doc.Events[2].End)

	for _, ev := range doc.Events {
		assert.Equal(t, "Default", ev.Style)
		assert.False(t, ev.Comment)
	}

	title, ok := doc.GetInfo("Title")
	assert.True(t, ok)
	assert.Equal(t, "episode", title)

	require.Len(t, doc.Styles, 1)
	assert.Equal(t, "Arial", doc.Styles[0].Font)
}

func TestOpenSRTWithCRLF(t *testing.T) {
	content := "1\r\n00:00:01,000 --> 00:00:02,000\r\nOne\r\n\r\n2\r\n00:00:03,000 --> 00:00:04,000\r\nTwo\r\n"
	doc, err := Open(writeFixture(t, "crlf.srt", content))
	require.NoError(t, err)

	require.Len(t, doc.Events, 2)
	assert.Equal(t, "One", doc.Events[0].Text)
	assert.Equal(t, "Two", doc.Events[1].Text)
}

func TestOpenVTT(t *testing.T) {
	content := `WEBVTT
Kind: captions

NOTE this block is skipped
and so is this line

1
00:00:01.000 --> 00:00:04.000 align:start
Hello, world!

2
00:00:05.500 --> 00:00:08.200
<v Roger>This is a test.
With multiple lines.

00:10.000 --> 00:12.500
No cue identifier.
`
	doc, err := OpenWithOptions(writeFixture(t, "test.vtt", content), ImportOptions{
		FontName: "Noto Sans",
		FontSize: 28,
	})
	require.NoError(t, err)

	require.Len(t, doc.Events, 3)
	assert.Equal(t, time.Second, doc.Events[0].Start)
	assert.Equal(t, "Hello, world!", doc.Events[0].Text)
	assert.Equal(t, `This is a test.\NWith multiple lines.`, doc.Events[1].Text)
	assert.Equal(t, 10*time.Second, doc.Events[2].Start)
	assert.Equal(t, "No cue identifier.", doc.Events[2].Text)

	require.Len(t, doc.Styles, 1)
	assert.Equal(t, "Noto Sans", doc.Styles[0].Font)
	assert.Equal(t, 28.0, doc.Styles[0].FontSize)
}

func TestOpenASS(t *testing.T) {
	content := `[Script Info]
; Script generated by something
Title: Test Subtitles
ScriptType: v4.00+
PlayResX: 1920

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: Default,Arial,20,&H00FFFFFF,&H000000FF,&H00101010,&H80000000,0,0,0,0,100,100,0,0,1,2,2,2,10,10,10,1
Style: Sign,Georgia,36.5,&H0000FFFF,&H000000FF,&H00000000,&H00000000,-1,1,0,0,100,100,0,0,3,1.5,0,8,20,30,40,128

[Fonts]
fontname: Georgia_0.ttf
97*D

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
Dialogue: 0,0:00:01.00,0:00:04.00,Default,,0,0,0,,Hello, world!
Comment: 1,0:00:05.50,0:00:08.20,Sign,Narrator,5,6,7,Banner;1,{\pos(100,200)}Note
Dialogue: 0,0:00:10.00,0:00:12.50,Default,,0,0,0,,Line with\Nnewline.
`
	doc, err := Open(writeFixture(t, "test.ass", content))
	require.NoError(t, err)

	require.Len(t, doc.Info, 3)
	assert.Equal(t, ass.InfoEntry{Key: "Title", Value: "Test Subtitles"}, doc.Info[0])
	assert.Equal(t, "ScriptType", doc.Info[1].Key)

	require.Len(t, doc.Styles, 2)
	sign := doc.Styles[1]
	assert.Equal(t, "Sign", sign.Name)
	assert.Equal(t, "Georgia", sign.Font)
	assert.Equal(t, 36.5, sign.FontSize)
	assert.Equal(t, ass.Color{R: 255, G: 255}, sign.Primary)
	assert.True(t, sign.Bold)
	assert.True(t, sign.Italic)
	assert.Equal(t, 3, sign.BorderStyle)
	assert.Equal(t, 1.5, sign.OutlineW)
	assert.Equal(t, 8, sign.Alignment)
	assert.Equal(t, [3]int{20, 30, 40}, sign.Margin)
	assert.Equal(t, 128, sign.Encoding)
	assert.Equal(t, ass.Color{A: 0x80}, doc.Styles[0].Shadow)

	require.Len(t, doc.Attachments, 1)
	assert.Equal(t, ass.GroupFont, doc.Attachments[0].Group)
	assert.Equal(t, "Georgia_0.ttf", doc.Attachments[0].Filename)
	data, err := doc.Attachments[0].Decode()
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))

	require.Len(t, doc.Events, 3)
	assert.Equal(t, "Hello, world!", doc.Events[0].Text)

	note := doc.Events[1]
	assert.True(t, note.Comment)
	assert.Equal(t, 1, note.Layer)
	assert.Equal(t, 5500*time.Millisecond, note.Start)
	assert.Equal(t, "Narrator", note.Actor)
	assert.Equal(t, [3]int{5, 6, 7}, note.Margin)
	assert.Equal(t, "Banner;1", note.Effect)
	assert.Equal(t, `{\pos(100,200)}Note`, note.Text)

	assert.Equal(t, `Line with\Nnewline.`, doc.Events[2].Text)
}

func TestOpenSSAConvertsAlignment(t *testing.T) {
	content := `[Script Info]
ScriptType: v4.00

[V4 Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, TertiaryColour, BackColour, Bold, Italic, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, AlphaLevel, Encoding
Style: Top,Arial,20,16777215,255,0,0,-1,0,1,2,2,6,10,10,10,0,0

[Events]
Format: Marked, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
Dialogue: Marked=0,0:00:01.00,0:00:02.00,Top,,0000,0000,0000,,Hi
`
	doc, err := Open(writeFixture(t, "legacy.ssa", content))
	require.NoError(t, err)

	require.Len(t, doc.Styles, 1)
	assert.Equal(t, 8, doc.Styles[0].Alignment)
	assert.Equal(t, ass.Color{R: 255, G: 255, B: 255}, doc.Styles[0].Primary)
	assert.True(t, doc.Styles[0].Bold)
	// SSA has no scale columns; defaults apply
	assert.Equal(t, 100.0, doc.Styles[0].ScaleX)

	require.Len(t, doc.Events, 1)
	assert.Equal(t, "Top", doc.Events[0].Style)
	assert.Equal(t, "Hi", doc.Events[0].Text)
}

func TestOpenASSKeepsBracketedAttachmentLines(t *testing.T) {
	// a full 80-character data line that happens to be "[...]"
	bracketed := "[" + strings.Repeat("!", 78) + "]"
	payload, err := ass.UUDecode(bracketed + "97*D")
	require.NoError(t, err)

	doc := ass.NewDocument()
	doc.AddStyle(ass.DefaultStyle())
	doc.AddAttachment(ass.Attachment{
		Group:    ass.GroupFont,
		Filename: "Title_0.ttf",
		Lines:    []string{bracketed, "97*D"},
	})
	doc.AddAttachment(ass.Attachment{
		Group:    ass.GroupGraphic,
		Filename: "logo.png",
		Lines:    []string{bracketed},
	})
	doc.AddEvent(ass.Event{End: time.Second, Style: "Default", Text: "after"})

	path := filepath.Join(t.TempDir(), "fonts.ssa")
	require.NoError(t, newTestExporter(nil).Export(doc, path, ""))

	got, err := Open(path)
	require.NoError(t, err)

	require.Len(t, got.Attachments, 2)
	assert.Equal(t, []string{bracketed, "97*D"}, got.Attachments[0].Lines)
	data, err := got.Attachments[0].Decode()
	require.NoError(t, err)
	assert.Equal(t, payload, data)
	assert.Equal(t, []string{bracketed}, got.Attachments[1].Lines)

	// the real section headers after each block still switch sections
	require.Len(t, got.Events, 1)
	assert.Equal(t, "after", got.Events[0].Text)
}

func TestOpenSSAWithoutEventFormat(t *testing.T) {
	content := `[Script Info]
ScriptType: v4.00

[Events]
Dialogue: Marked=0,0:00:01.00,0:00:02.00,Default,Bob,0,0,0,,Hi, there
`
	doc, err := Open(writeFixture(t, "bare.ssa", content))
	require.NoError(t, err)

	require.Len(t, doc.Events, 1)
	assert.Equal(t, 0, doc.Events[0].Layer)
	assert.Equal(t, "Bob", doc.Events[0].Actor)
	assert.Equal(t, "Hi, there", doc.Events[0].Text)
}

func TestOpenASSToleratesMarkedUnderLayer(t *testing.T) {
	content := `[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
Dialogue: Marked=0,0:00:01.00,0:00:02.00,Default,,0,0,0,,Hi
`
	doc, err := Open(writeFixture(t, "marked.ass", content))
	require.NoError(t, err)

	require.Len(t, doc.Events, 1)
	assert.Equal(t, 0, doc.Events[0].Layer)
	assert.Equal(t, "Hi", doc.Events[0].Text)
}

func TestOpenASSKeepsTrailingSpacesInText(t *testing.T) {
	content := "[Events]\n" +
		"Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n" +
		"  Dialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,padded  \r\n"
	doc, err := Open(writeFixture(t, "spaces.ass", content))
	require.NoError(t, err)

	require.Len(t, doc.Events, 1)
	assert.Equal(t, "padded  ", doc.Events[0].Text)
}

func TestOpenASSReportsLine(t *testing.T) {
	content := `[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
Dialogue: 0,not-a-time,0:00:02.00,Default,,0,0,0,,Hi
`
	_, err := Open(writeFixture(t, "bad.ass", content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse Dialogue at line 3")
	assert.ErrorIs(t, err, ass.ErrInvalidTime)
}

func TestOpenASSTooFewFields(t *testing.T) {
	content := `[V4+ Styles]
Format: Name, Fontname, Fontsize
Style: Default,Arial
`
	_, err := Open(writeFixture(t, "short.ass", content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse Style at line 3")
}

func TestOpenUnsupportedFormat(t *testing.T) {
	_, err := Open(writeFixture(t, "test.txt", "test"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.ass"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSplitASSFields(t *testing.T) {
	tests := []struct {
		content string
		n       int
		want    []string
	}{
		{"a,b,c", 3, []string{"a", "b", "c"}},
		{"a,b,c,d", 3, []string{"a", "b", "c,d"}},
		{"a,b", 3, []string{"a", "b", ""}},
		{"a", 3, []string{"a", ""}},
		{"", 1, []string{""}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, splitASSFields(tt.content, tt.n), tt.content)
	}
	assert.Nil(t, splitASSFields("a", 0))
}
