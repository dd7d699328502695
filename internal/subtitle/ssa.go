package subtitle

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mgpai22/subssa/internal/ass"
	"github.com/mgpai22/subssa/internal/logging"
	"github.com/mgpai22/subssa/internal/textfile"
	"github.com/mgpai22/subssa/internal/version"
)

const (
	ssaStylesFormat = "Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, TertiaryColour, BackColour, Bold, Italic, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, AlphaLevel, Encoding"
	ssaEventsFormat = "Format: Marked, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text"
	ssaScriptType   = "ScriptType: v4.00"
)

// destination for one line of output at a time
type LineWriter interface {
	WriteLine(line string) error
}

type lineSink interface {
	LineWriter
	Close() error
}

// SubStation Alpha v4 format
type SSAExporter struct {
	Generator  string
	URL        string
	Version    version.Provider
	LineEnding string
	Logger     *logging.Logger

	create func(path, encoding string) (lineSink, error)
}

func NewSSAExporter(
	generator, url string,
	v version.Provider,
) *SSAExporter {
	return &SSAExporter{
		Generator:  generator,
		URL:        url,
		Version:    v,
		LineEnding: "\n",
		Logger:     logging.NewNop(),
	}
}

func (e *SSAExporter) Format() Format {
	return FormatSSA
}

// Export writes doc to path in the given encoding. The file is always
// closed; errors from the file are returned unchanged.
func (e *SSAExporter) Export(
	doc *ass.Document,
	path, encoding string,
) (err error) {
	file, err := e.open(path, encoding)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	if err := e.WriteTo(doc, file); err != nil {
		return err
	}

	if e.Logger != nil {
		e.Logger.Debugw("Wrote SSA script",
			"path", path,
			"encoding", encoding,
			"styles", len(doc.Styles),
			"attachments", len(doc.Attachments),
			"events", len(doc.Events),
		)
	}
	return nil
}

func (e *SSAExporter) open(path, encoding string) (lineSink, error) {
	if e.create != nil {
		return e.create(path, encoding)
	}
	ending := e.LineEnding
	if ending == "" {
		ending = "\n"
	}
	return textfile.Create(path, encoding, textfile.WithLineEnding(ending))
}

// WriteTo emits the script line by line, stopping at the first failed
// write.
func (e *SSAExporter) WriteTo(doc *ass.Document, out LineWriter) error {
	w := &errLineWriter{out: out}

	// script info section
	w.line("[Script Info]")
	w.line("; Script generated by " + e.Generator + " " + e.longVersion())
	w.line("; " + e.URL)
	for _, info := range doc.Info {
		if strings.EqualFold(info.Key, "scripttype") {
			w.line(ssaScriptType)
		} else {
			w.line(info.EntryData())
		}
	}

	// v4 styles section
	w.line("")
	w.line("[V4 Styles]")
	w.line(ssaStylesFormat)
	for _, s := range doc.Styles {
		w.line(formatSSAStyle(s))
	}

	w.line("")
	w.line("[Fonts]")
	for _, a := range doc.Attachments {
		if a.Group == ass.GroupFont {
			w.line(a.EntryData())
		}
	}

	w.line("")
	w.line("[Graphics]")
	for _, a := range doc.Attachments {
		if a.Group == ass.GroupGraphic {
			w.line(a.EntryData())
		}
	}

	// events section
	w.line("")
	w.line("[Events]")
	w.line(ssaEventsFormat)
	for _, ev := range doc.Events {
		w.line(formatSSAEvent(ev))
	}

	return w.err
}

func (e *SSAExporter) longVersion() string {
	if e.Version == nil {
		return version.Current().LongVersion()
	}
	return e.Version.LongVersion()
}

func formatSSAStyle(s ass.Style) string {
	return fmt.Sprintf("Style: %s,%s,%s,%s,%s,0,%s,%d,%d,%d,%s,%s,%d,%d,%d,%d,0,%d",
		s.Name,
		s.Font,
		formatNumber(s.FontSize),
		s.Primary.SSAFormatted(),
		s.Secondary.SSAFormatted(),
		s.Shadow.SSAFormatted(),
		ssaBool(s.Bold),
		ssaBool(s.Italic),
		s.BorderStyle,
		formatNumber(s.OutlineW),
		formatNumber(s.ShadowW),
		ass.AssToSsa(s.Alignment),
		s.Margin[ass.MarginLeft],
		s.Margin[ass.MarginRight],
		s.Margin[ass.MarginVert],
		s.Encoding,
	)
}

func formatSSAEvent(ev ass.Event) string {
	kind := "Dialogue"
	if ev.Comment {
		kind = "Comment"
	}

	return fmt.Sprintf("%s: Marked=0,%s,%s,%s,%s,%d,%d,%d,%s,%s",
		kind,
		ass.FormatTime(ev.Start),
		ass.FormatTime(ev.End),
		ReplaceCommas(ev.Style),
		ReplaceCommas(ev.Actor),
		ev.Margin[ass.MarginLeft],
		ev.Margin[ass.MarginRight],
		ev.Margin[ass.MarginVert],
		ReplaceCommas(ev.Effect),
		StripNewlines(ev.Text),
	)
}

// -1 is true in SSA
func ssaBool(b bool) int {
	if b {
		return -1
	}
	return 0
}

// shortest decimal form, never an exponent
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ReplaceCommas swaps every comma for a semicolon. The format has no
// escape for commas inside a field.
func ReplaceCommas(s string) string {
	return strings.ReplaceAll(s, ",", ";")
}

// StripNewlines deletes CR and LF. Line breaks inside dialogue must
// already be encoded as \N.
func StripNewlines(s string) string {
	s = strings.ReplaceAll(s, "\n", "")
	return strings.ReplaceAll(s, "\r", "")
}

// remembers the first error and drops every write after it
type errLineWriter struct {
	out LineWriter
	err error
}

func (w *errLineWriter) line(s string) {
	if w.err != nil {
		return
	}
	w.err = w.out.WriteLine(s)
}
