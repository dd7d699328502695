package ass

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidTime  = errors.New("ass: invalid timestamp")
	ErrInvalidColor = errors.New("ass: invalid color")
)

// single [Script Info] line
type InfoEntry struct {
	Key   string
	Value string
}

// line as it appears in the script, raw value when there is no key
func (e InfoEntry) EntryData() string {
	if e.Key == "" {
		return e.Value
	}
	return e.Key + ": " + e.Value
}

// margin indexes shared by styles and events
const (
	MarginLeft = iota
	MarginRight
	MarginVert
)

// single Dialogue or Comment line
type Event struct {
	Comment bool
	Layer   int
	Start   time.Duration
	End     time.Duration
	Style   string
	Actor   string
	Margin  [3]int
	Effect  string
	Text    string
}

// in-memory subtitle script; every slice keeps insertion order
type Document struct {
	Info        []InfoEntry
	Styles      []Style
	Attachments []Attachment
	Events      []Event
}

func NewDocument() *Document {
	return &Document{
		Info:        make([]InfoEntry, 0),
		Styles:      make([]Style, 0),
		Attachments: make([]Attachment, 0),
		Events:      make([]Event, 0),
	}
}

// updates the first entry matching key (case-insensitive) or appends one
func (d *Document) SetInfo(key, value string) {
	for i := range d.Info {
		if strings.EqualFold(d.Info[i].Key, key) {
			d.Info[i].Value = value
			return
		}
	}
	d.Info = append(d.Info, InfoEntry{Key: key, Value: value})
}

func (d *Document) GetInfo(key string) (string, bool) {
	for _, e := range d.Info {
		if strings.EqualFold(e.Key, key) {
			return e.Value, true
		}
	}
	return "", false
}

func (d *Document) AddStyle(s Style) {
	d.Styles = append(d.Styles, s)
}

// Style returns the first style with the given name, or nil.
func (d *Document) Style(name string) *Style {
	for i := range d.Styles {
		if d.Styles[i].Name == name {
			return &d.Styles[i]
		}
	}
	return nil
}

func (d *Document) AddEvent(e Event) {
	d.Events = append(d.Events, e)
}

func (d *Document) AddAttachment(a Attachment) {
	d.Attachments = append(d.Attachments, a)
}

// attachments of one group, in document order
func (d *Document) AttachmentsByGroup(group Group) []Attachment {
	out := make([]Attachment, 0)
	for _, a := range d.Attachments {
		if a.Group == group {
			out = append(out, a)
		}
	}
	return out
}
