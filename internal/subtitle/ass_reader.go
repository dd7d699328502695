package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mgpai22/subssa/internal/ass"
)

var (
	assStyleColumns = []string{
		"Name", "Fontname", "Fontsize", "PrimaryColour", "SecondaryColour",
		"OutlineColour", "BackColour", "Bold", "Italic", "Underline",
		"StrikeOut", "ScaleX", "ScaleY", "Spacing", "Angle", "BorderStyle",
		"Outline", "Shadow", "Alignment", "MarginL", "MarginR", "MarginV",
		"Encoding",
	}
	ssaStyleColumns = []string{
		"Name", "Fontname", "Fontsize", "PrimaryColour", "SecondaryColour",
		"TertiaryColour", "BackColour", "Bold", "Italic", "BorderStyle",
		"Outline", "Shadow", "Alignment", "MarginL", "MarginR", "MarginV",
		"AlphaLevel", "Encoding",
	}
	eventColumns = []string{
		"Layer", "Start", "End", "Style", "Name", "MarginL", "MarginR",
		"MarginV", "Effect", "Text",
	}
	ssaEventColumns = []string{
		"Marked", "Start", "End", "Style", "Name", "MarginL", "MarginR",
		"MarginV", "Effect", "Text",
	}
)

// state carried between lines of an ASS/SSA script
type assReader struct {
	doc          *ass.Document
	section      string
	styleColumns []string
	eventColumns []string
	attachment   *ass.Attachment
	// set by "ScriptType: v4.00" or a [V4 Styles] section
	ssa bool
}

func parseASS(r io.Reader) (*ass.Document, error) {
	rd := &assReader{doc: ass.NewDocument()}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNum := 0

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		trimmedLine := strings.TrimSpace(line)

		if rd.isSectionHeader(trimmedLine) {
			rd.endAttachment()
			rd.section = strings.ToLower(
				strings.TrimSuffix(strings.TrimPrefix(trimmedLine, "["), "]"),
			)
			continue
		}

		// the final Text column keeps its trailing spaces
		if err := rd.readLine(strings.TrimLeft(line, " \t"), lineNum); err != nil {
			return nil, err
		}
	}
	rd.endAttachment()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASS file: %w", err)
	}

	return rd.doc, nil
}

// attachment data may itself look like "[...]" since both brackets are
// inside the encoding alphabet
func (rd *assReader) isSectionHeader(line string) bool {
	if !strings.HasPrefix(line, "[") || !strings.HasSuffix(line, "]") {
		return false
	}
	return rd.attachment == nil || !isAttachmentData(line)
}

func isAttachmentData(line string) bool {
	if len(line) == 0 || len(line) > 80 {
		return false
	}
	for i := 0; i < len(line); i++ {
		if line[i] < 33 || line[i] > 33+63 {
			return false
		}
	}
	return true
}

func (rd *assReader) readLine(line string, lineNum int) error {
	switch rd.section {
	case "script info":
		rd.readInfo(line)
	case "v4 styles":
		rd.ssa = true
		if err := rd.readStyle(line); err != nil {
			return fmt.Errorf("failed to parse Style at line %d: %w", lineNum, err)
		}
	case "v4+ styles", "v4 styles+":
		if err := rd.readStyle(line); err != nil {
			return fmt.Errorf("failed to parse Style at line %d: %w", lineNum, err)
		}
	case "events":
		if err := rd.readEvent(line); err != nil {
			return fmt.Errorf("failed to parse Dialogue at line %d: %w", lineNum, err)
		}
	case "fonts":
		rd.readAttachment(line, ass.GroupFont, "fontname:")
	case "graphics":
		rd.readAttachment(line, ass.GroupGraphic, "filename:")
	}
	return nil
}

func (rd *assReader) readInfo(line string) {
	line = strings.TrimSpace(line)
	// comments, including the header an exporter writes, are dropped
	if line == "" || strings.HasPrefix(line, ";") {
		return
	}

	key, value, ok := strings.Cut(line, ":")
	if !ok {
		rd.doc.Info = append(rd.doc.Info, ass.InfoEntry{Value: line})
		return
	}
	if strings.EqualFold(strings.TrimSpace(key), "scripttype") &&
		strings.EqualFold(strings.TrimSpace(value), "v4.00") {
		rd.ssa = true
	}
	rd.doc.Info = append(rd.doc.Info, ass.InfoEntry{
		Key:   strings.TrimSpace(key),
		Value: strings.TrimSpace(value),
	})
}

func (rd *assReader) readStyle(line string) error {
	if strings.HasPrefix(line, "Format:") {
		rd.styleColumns = parseFormatLine(line)
		return nil
	}
	if !strings.HasPrefix(line, "Style:") {
		return nil
	}

	columns := rd.styleColumns
	if columns == nil {
		columns = assStyleColumns
		if rd.section == "v4 styles" {
			columns = ssaStyleColumns
		}
	}

	content := strings.TrimSpace(strings.TrimPrefix(line, "Style:"))
	rec, err := newRecord(columns, content)
	if err != nil {
		return err
	}

	style, err := rec.style(rd.section == "v4 styles")
	if err != nil {
		return fmt.Errorf("style %q: %w", rec.str("name"), err)
	}
	rd.doc.AddStyle(style)
	return nil
}

func (rd *assReader) readEvent(line string) error {
	if strings.HasPrefix(line, "Format:") {
		rd.eventColumns = parseFormatLine(line)
		return nil
	}

	var comment bool
	var content string
	switch {
	case strings.HasPrefix(line, "Dialogue:"):
		content = strings.TrimPrefix(line, "Dialogue:")
	case strings.HasPrefix(line, "Comment:"):
		comment = true
		content = strings.TrimPrefix(line, "Comment:")
	default:
		return nil
	}

	columns := rd.eventColumns
	if columns == nil {
		columns = eventColumns
		if rd.ssa {
			columns = ssaEventColumns
		}
	}

	rec, err := newRecord(columns, strings.TrimLeft(content, " "))
	if err != nil {
		return err
	}

	event, err := rec.event()
	if err != nil {
		return err
	}
	event.Comment = comment
	rd.doc.AddEvent(event)
	return nil
}

func (rd *assReader) readAttachment(line string, group ass.Group, prefix string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	if strings.HasPrefix(line, prefix) {
		rd.endAttachment()
		rd.attachment = &ass.Attachment{
			Group:    group,
			Filename: strings.TrimSpace(strings.TrimPrefix(line, prefix)),
		}
		return
	}
	if rd.attachment != nil {
		rd.attachment.Lines = append(rd.attachment.Lines, line)
	}
}

func (rd *assReader) endAttachment() {
	if rd.attachment != nil {
		rd.doc.AddAttachment(*rd.attachment)
		rd.attachment = nil
	}
}

func parseFormatLine(line string) []string {
	formatPart := strings.TrimPrefix(line, "Format:")
	columns := strings.Split(formatPart, ",")
	for i, col := range columns {
		columns[i] = strings.TrimSpace(col)
	}
	return columns
}

// splits content into numFields fields; the last one keeps any commas
func splitASSFields(content string, numFields int) []string {
	if numFields <= 0 {
		return nil
	}

	parts := make([]string, 0, numFields)
	remaining := content

	for i := 0; i < numFields-1; i++ {
		idx := strings.Index(remaining, ",")
		if idx == -1 {
			parts = append(parts, remaining)
			remaining = ""
			break
		}
		parts = append(parts, remaining[:idx])
		remaining = remaining[idx+1:]
	}

	parts = append(parts, remaining)

	return parts
}

// one data line keyed by lowercased Format column names
type record map[string]string

func newRecord(columns []string, content string) (record, error) {
	parts := splitASSFields(content, len(columns))
	if len(parts) < len(columns) {
		return nil, fmt.Errorf(
			"expected %d fields, got %d",
			len(columns),
			len(parts),
		)
	}

	rec := make(record, len(columns))
	for i, col := range columns {
		rec[strings.ToLower(col)] = parts[i]
	}
	return rec, nil
}

func (r record) has(key string) bool {
	_, ok := r[key]
	return ok
}

func (r record) str(key string) string {
	return r[key]
}

func (r record) int(key string, dst *int) error {
	v, ok := r[key]
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		// some tools write integral fields as decimals
		f, ferr := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if ferr != nil {
			return fmt.Errorf("invalid %s %q", key, v)
		}
		n = int(f)
	}
	*dst = n
	return nil
}

func (r record) float(key string, dst *float64) error {
	v, ok := r[key]
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return fmt.Errorf("invalid %s %q", key, v)
	}
	*dst = f
	return nil
}

func (r record) bool(key string, dst *bool) error {
	var n int
	if err := r.int(key, &n); err != nil {
		return err
	}
	if r.has(key) {
		*dst = n != 0
	}
	return nil
}

func (r record) color(key string, dst *ass.Color) error {
	v, ok := r[key]
	if !ok {
		return nil
	}
	c, err := ass.ParseColor(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = c
	return nil
}

func (r record) style(ssa bool) (ass.Style, error) {
	s := ass.DefaultStyle()
	s.Name = strings.TrimSpace(r.str("name"))
	if r.has("fontname") {
		s.Font = strings.TrimSpace(r.str("fontname"))
	}

	steps := []error{
		r.float("fontsize", &s.FontSize),
		r.color("primarycolour", &s.Primary),
		r.color("secondarycolour", &s.Secondary),
		r.color("outlinecolour", &s.Outline),
		r.color("tertiarycolour", &s.Outline),
		r.color("backcolour", &s.Shadow),
		r.bool("bold", &s.Bold),
		r.bool("italic", &s.Italic),
		r.bool("underline", &s.Underline),
		r.bool("strikeout", &s.StrikeOut),
		r.float("scalex", &s.ScaleX),
		r.float("scaley", &s.ScaleY),
		r.float("spacing", &s.Spacing),
		r.float("angle", &s.Angle),
		r.int("borderstyle", &s.BorderStyle),
		r.float("outline", &s.OutlineW),
		r.float("shadow", &s.ShadowW),
		r.int("alignment", &s.Alignment),
		r.int("marginl", &s.Margin[ass.MarginLeft]),
		r.int("marginr", &s.Margin[ass.MarginRight]),
		r.int("marginv", &s.Margin[ass.MarginVert]),
		r.int("encoding", &s.Encoding),
	}
	for _, err := range steps {
		if err != nil {
			return s, err
		}
	}

	if ssa {
		s.Alignment = ass.SsaToAss(s.Alignment)
	}
	return s, nil
}

func (r record) event() (ass.Event, error) {
	var ev ass.Event

	// SSA's Marked column is ignored; a "Marked=" value under a Layer
	// heading is treated the same way
	if !strings.HasPrefix(strings.TrimSpace(r.str("layer")), "Marked=") {
		if err := r.int("layer", &ev.Layer); err != nil {
			return ev, err
		}
	}

	start, err := ass.ParseTime(r.str("start"))
	if err != nil {
		return ev, err
	}
	end, err := ass.ParseTime(r.str("end"))
	if err != nil {
		return ev, err
	}
	ev.Start = start
	ev.End = end

	ev.Style = strings.TrimSpace(r.str("style"))
	ev.Actor = strings.TrimSpace(r.str("name"))
	if r.has("actor") {
		ev.Actor = strings.TrimSpace(r.str("actor"))
	}
	ev.Effect = strings.TrimSpace(r.str("effect"))
	ev.Text = r.str("text")

	steps := []error{
		r.int("marginl", &ev.Margin[ass.MarginLeft]),
		r.int("marginr", &ev.Margin[ass.MarginRight]),
		r.int("marginv", &ev.Margin[ass.MarginVert]),
	}
	for _, err := range steps {
		if err != nil {
			return ev, err
		}
	}
	return ev, nil
}
