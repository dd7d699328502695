package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgpai22/subssa/internal/ass"
)

// ImportOptions style scripts built from SRT/VTT cues.
type ImportOptions struct {
	FontName string
	FontSize float64
}

func DefaultImportOptions() ImportOptions {
	return ImportOptions{
		FontName: "Arial",
		FontSize: 20,
	}
}

// reads a subtitle file into a script document
func Open(path string) (*ass.Document, error) {
	return OpenWithOptions(path, DefaultImportOptions())
}

func OpenWithOptions(path string, opts ImportOptions) (*ass.Document, error) {
	format, ok := GetFormatFromExtension(path)
	if !ok {
		return nil, fmt.Errorf("unsupported subtitle format: %s", filepath.Ext(path))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file: %w", strings.ToUpper(string(format)), err)
	}
	defer func() {
		_ = file.Close()
	}()

	switch format {
	case FormatASS, FormatSSA:
		return parseASS(file)
	case FormatSRT:
		cues, err := parseSRT(file)
		if err != nil {
			return nil, err
		}
		return cuesToDocument(cues, titleFromPath(path), opts), nil
	default:
		cues, err := parseVTT(file)
		if err != nil {
			return nil, err
		}
		return cuesToDocument(cues, titleFromPath(path), opts), nil
	}
}

func titleFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

var markupReplacer = strings.NewReplacer(
	"<i>", `{\i1}`, "</i>", `{\i0}`,
	"<b>", `{\b1}`, "</b>", `{\b0}`,
	"<u>", `{\u1}`, "</u>", `{\u0}`,
	"<s>", `{\s1}`, "</s>", `{\s0}`,
	"&amp;", "&", "&lt;", "<", "&gt;", ">", "&nbsp;", `\h`,
)

// builds a single-style script from plain cues
func cuesToDocument(cues []cue, title string, opts ImportOptions) *ass.Document {
	doc := ass.NewDocument()
	doc.SetInfo("Title", title)
	doc.SetInfo("ScriptType", "v4.00+")
	doc.SetInfo("WrapStyle", "0")
	doc.SetInfo("PlayResX", "384")
	doc.SetInfo("PlayResY", "288")

	style := ass.DefaultStyle()
	if opts.FontName != "" {
		style.Font = opts.FontName
	}
	if opts.FontSize > 0 {
		style.FontSize = opts.FontSize
	}
	doc.AddStyle(style)

	for _, c := range cues {
		text := markupReplacer.Replace(c.Text)
		text = strings.ReplaceAll(text, "\n", `\N`)

		doc.AddEvent(ass.Event{
			Start: c.StartTime,
			End:   c.EndTime,
			Style: style.Name,
			Text:  text,
		})
	}

	return doc
}
